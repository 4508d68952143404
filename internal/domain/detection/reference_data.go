package detection

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed reference_data.yaml
var defaultReferenceData []byte

// referenceData is the on-disk shape of the reference lists
type referenceData struct {
	SuspiciousKeywords []string `yaml:"suspicious_keywords"`
	SuspiciousTLDs     []string `yaml:"suspicious_tlds"`
	URLShorteners      []string `yaml:"url_shorteners"`
	HighRiskBrands     []string `yaml:"high_risk_brands"`
	UrgencyPhrases     []string `yaml:"urgency_phrases"`
}

// DefaultRuleContext returns the built-in reference lists
//
// The embedded document is part of the binary, so a parse failure is a build defect.
func DefaultRuleContext() *RuleContext {
	context, err := ParseRuleContext(defaultReferenceData, nil)
	if err != nil {
		panic(fmt.Sprintf("detection: embedded reference data is invalid: %v", err))
	}
	return context
}

// LoadRuleContext builds the rule context from the built-in lists, replacing any
// list that the YAML file at path defines. An empty path yields the defaults.
func LoadRuleContext(path string) (*RuleContext, error) {
	defaults := DefaultRuleContext()
	if path == "" {
		return defaults, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read reference data: %w", err)
	}

	return ParseRuleContext(data, defaults)
}

// ParseRuleContext decodes a YAML reference document. Lists missing from the
// document are taken from base (when non-nil). All entries are lowercased and
// trimmed; blank entries are dropped.
func ParseRuleContext(data []byte, base *RuleContext) (*RuleContext, error) {
	var doc referenceData
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse reference data: %w", err)
	}

	context := &RuleContext{}
	if base != nil {
		*context = *base
	}

	overrides := []struct {
		name   string
		values []string
		target *[]string
	}{
		{"suspicious_keywords", doc.SuspiciousKeywords, &context.SuspiciousKeywords},
		{"suspicious_tlds", doc.SuspiciousTLDs, &context.SuspiciousTLDs},
		{"url_shorteners", doc.URLShorteners, &context.URLShorteners},
		{"high_risk_brands", doc.HighRiskBrands, &context.HighRiskBrands},
		{"urgency_phrases", doc.UrgencyPhrases, &context.UrgencyPhrases},
	}

	for _, o := range overrides {
		if o.values != nil {
			*o.target = normalizeList(o.values)
		}
		if len(*o.target) == 0 {
			return nil, fmt.Errorf("reference list %s is empty", o.name)
		}
	}

	return context, nil
}

func normalizeList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.ToLower(strings.TrimSpace(v))
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
