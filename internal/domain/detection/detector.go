package detection

import (
	"fmt"

	"github.com/stoik/phishguard/internal/domain"
)

// Detector scores text for phishing indicators using a fixed, ordered rule set per input kind
//
// The Detector holds only the immutable RuleContext and the rule lists, so one
// instance can serve any number of concurrent analyses. Analysis is a pure
// function of (text, kind): no I/O, no clock, no randomness.
type Detector struct {
	urlRules   []Rule
	emailRules []Rule
	context    *RuleContext
}

// NewDetector creates a detector with the standard URL and email rule sets
func NewDetector(context *RuleContext) *Detector {
	// Declaration order is explanation order
	urlRules := []Rule{
		NewURLKeywordRule(),
		NewIPHostRule(),
		NewExcessiveSubdomainsRule(),
		NewSuspiciousTLDRule(),
		NewURLShortenerRule(),
		NewDomainSpoofingRule(),
	}

	emailRules := []Rule{
		NewEmailKeywordRule(),
		NewUrgencyRule(),
		NewLinkMismatchRule(),
	}

	detector, err := NewDetectorWithRules(context, urlRules, emailRules)
	if err != nil {
		panic(fmt.Sprintf("detection: standard rule set is inconsistent: %v", err))
	}
	return detector
}

// NewDetectorWithRules creates a detector with caller-supplied rule sets.
// Every rule must apply to the kind of the list it is placed in.
func NewDetectorWithRules(context *RuleContext, urlRules, emailRules []Rule) (*Detector, error) {
	if err := checkRuleKinds(domain.KindURL, urlRules); err != nil {
		return nil, err
	}
	if err := checkRuleKinds(domain.KindEmail, emailRules); err != nil {
		return nil, err
	}

	return &Detector{
		urlRules:   urlRules,
		emailRules: emailRules,
		context:    context,
	}, nil
}

func checkRuleKinds(kind domain.InputKind, rules []Rule) error {
	for i, rule := range rules {
		if rule.AppliesTo() != kind {
			return fmt.Errorf("rule %q at position %d of the %s rules applies to %q inputs", rule.Name(), i, kind, rule.AppliesTo())
		}
	}
	return nil
}

// RuleNames lists the names of the rules run for kind, in evaluation order
func (d *Detector) RuleNames(kind domain.InputKind) []string {
	rules, err := d.Rules(kind)
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(rules))
	for _, rule := range rules {
		names = append(names, rule.Name())
	}
	return names
}

// Rules returns the rule set used for kind
func (d *Detector) Rules(kind domain.InputKind) ([]Rule, error) {
	switch kind {
	case domain.KindURL:
		return d.urlRules, nil
	case domain.KindEmail:
		return d.emailRules, nil
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidKind, kind)
	}
}

// Evaluate normalizes text, runs every rule of the matching set and
// aggregates their outcomes. No rule short-circuits another.
func (d *Detector) Evaluate(text string, kind domain.InputKind) (domain.Evaluation, error) {
	rules, err := d.Rules(kind)
	if err != nil {
		return domain.Evaluation{}, err
	}

	normalized := NormalizeText(text)
	if normalized == "" {
		return domain.Evaluation{}, domain.ErrEmptyInput
	}

	eval := domain.Evaluation{
		Kind:         kind,
		Explanations: make([]string, 0),
	}
	for _, rule := range rules {
		outcome := rule.Evaluate(normalized, d.context)
		eval.RawScore += outcome.Points
		eval.Explanations = append(eval.Explanations, outcome.Explanations...)
	}
	eval.Score = domain.ClampScore(eval.RawScore)

	return eval, nil
}

// Analyze evaluates text and formats the result with its risk tier and summary
func (d *Detector) Analyze(text string, kind domain.InputKind) (domain.AnalysisResult, error) {
	eval, err := d.Evaluate(text, kind)
	if err != nil {
		return domain.AnalysisResult{}, err
	}
	return domain.FormatResult(eval), nil
}
