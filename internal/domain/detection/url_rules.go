package detection

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/stoik/phishguard/internal/domain"
)

// Points contributed by each URL rule per trigger
const (
	URLKeywordPoints          = 15
	IPHostPoints              = 40
	ExcessiveSubdomainsPoints = 20
	SuspiciousTLDPoints       = 25
	URLShortenerPoints        = 30
	DomainSpoofingPoints      = 35
)

// maxHostDots is the number of dots a host may contain before it is flagged
const maxHostDots = 3

var ipv4HostPattern = regexp.MustCompile(`^\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}$`)

// URLKeywordRule flags suspicious keywords anywhere in the URL
//
// Every distinct keyword scores separately and the rule is not capped,
// unlike its email counterpart.
type URLKeywordRule struct{}

// NewURLKeywordRule creates a new URL keyword rule
func NewURLKeywordRule() *URLKeywordRule {
	return &URLKeywordRule{}
}

// Name returns the rule name
func (r *URLKeywordRule) Name() string {
	return "Suspicious keyword in URL"
}

// AppliesTo returns the input kind this rule is part of
func (r *URLKeywordRule) AppliesTo() domain.InputKind {
	return domain.KindURL
}

// Evaluate scans the full URL string, parseable or not
func (r *URLKeywordRule) Evaluate(input string, context *RuleContext) domain.RuleOutcome {
	found := findKeywords(strings.ToLower(input), context.SuspiciousKeywords)
	if len(found) == 0 {
		return noOutcome()
	}

	outcome := domain.RuleOutcome{Points: URLKeywordPoints * len(found)}
	for _, keyword := range found {
		outcome.Explanations = append(outcome.Explanations, fmt.Sprintf("Suspicious keyword in URL: '%s'", keyword))
	}
	return outcome
}

// IPHostRule flags URLs whose host is a dotted-quad IPv4 literal
type IPHostRule struct{}

// NewIPHostRule creates a new IP-literal host rule
func NewIPHostRule() *IPHostRule {
	return &IPHostRule{}
}

// Name returns the rule name
func (r *IPHostRule) Name() string {
	return "IP-literal host"
}

// AppliesTo returns the input kind this rule is part of
func (r *IPHostRule) AppliesTo() domain.InputKind {
	return domain.KindURL
}

// Evaluate checks the host against the IPv4 pattern
func (r *IPHostRule) Evaluate(input string, context *RuleContext) domain.RuleOutcome {
	if !ipv4HostPattern.MatchString(extractHost(input)) {
		return noOutcome()
	}
	return domain.RuleOutcome{
		Points:       IPHostPoints,
		Explanations: []string{"URL uses IP address instead of domain name"},
	}
}

// ExcessiveSubdomainsRule flags hosts with more than three dots
type ExcessiveSubdomainsRule struct{}

// NewExcessiveSubdomainsRule creates a new excessive subdomains rule
func NewExcessiveSubdomainsRule() *ExcessiveSubdomainsRule {
	return &ExcessiveSubdomainsRule{}
}

// Name returns the rule name
func (r *ExcessiveSubdomainsRule) Name() string {
	return "Excessive subdomains"
}

// AppliesTo returns the input kind this rule is part of
func (r *ExcessiveSubdomainsRule) AppliesTo() domain.InputKind {
	return domain.KindURL
}

// Evaluate counts the dots in the host
func (r *ExcessiveSubdomainsRule) Evaluate(input string, context *RuleContext) domain.RuleOutcome {
	dots := strings.Count(extractHost(input), ".")
	if dots <= maxHostDots {
		return noOutcome()
	}
	return domain.RuleOutcome{
		Points:       ExcessiveSubdomainsPoints,
		Explanations: []string{fmt.Sprintf("Excessive subdomains detected: %d dots", dots)},
	}
}

// SuspiciousTLDRule flags hosts ending with a throwaway top-level domain
type SuspiciousTLDRule struct{}

// NewSuspiciousTLDRule creates a new suspicious TLD rule
func NewSuspiciousTLDRule() *SuspiciousTLDRule {
	return &SuspiciousTLDRule{}
}

// Name returns the rule name
func (r *SuspiciousTLDRule) Name() string {
	return "Suspicious TLD"
}

// AppliesTo returns the input kind this rule is part of
func (r *SuspiciousTLDRule) AppliesTo() domain.InputKind {
	return domain.KindURL
}

// Evaluate reports the first configured suffix the host ends with
func (r *SuspiciousTLDRule) Evaluate(input string, context *RuleContext) domain.RuleOutcome {
	host := extractHost(input)
	if host == "" {
		return noOutcome()
	}

	for _, tld := range context.SuspiciousTLDs {
		if strings.HasSuffix(host, tld) {
			return domain.RuleOutcome{
				Points:       SuspiciousTLDPoints,
				Explanations: []string{fmt.Sprintf("Suspicious TLD detected: %s", tld)},
			}
		}
	}
	return noOutcome()
}

// URLShortenerRule flags links routed through a URL shortening service
type URLShortenerRule struct{}

// NewURLShortenerRule creates a new URL shortener rule
func NewURLShortenerRule() *URLShortenerRule {
	return &URLShortenerRule{}
}

// Name returns the rule name
func (r *URLShortenerRule) Name() string {
	return "URL shortener"
}

// AppliesTo returns the input kind this rule is part of
func (r *URLShortenerRule) AppliesTo() domain.InputKind {
	return domain.KindURL
}

// Evaluate looks for a shortener domain in the full URL, which covers the host
// and still works when the URL does not parse
func (r *URLShortenerRule) Evaluate(input string, context *RuleContext) domain.RuleOutcome {
	shortener, ok := firstContained(strings.ToLower(input), context.URLShorteners)
	if !ok {
		return noOutcome()
	}
	return domain.RuleOutcome{
		Points:       URLShortenerPoints,
		Explanations: []string{fmt.Sprintf("URL shortener detected: %s", shortener)},
	}
}

// DomainSpoofingRule flags hosts that borrow a high-risk brand name without
// being that brand's www host
type DomainSpoofingRule struct{}

// NewDomainSpoofingRule creates a new domain spoofing rule
func NewDomainSpoofingRule() *DomainSpoofingRule {
	return &DomainSpoofingRule{}
}

// Name returns the rule name
func (r *DomainSpoofingRule) Name() string {
	return "Domain spoofing"
}

// AppliesTo returns the input kind this rule is part of
func (r *DomainSpoofingRule) AppliesTo() domain.InputKind {
	return domain.KindURL
}

// Evaluate reports the first brand found in the host
func (r *DomainSpoofingRule) Evaluate(input string, context *RuleContext) domain.RuleOutcome {
	host := extractHost(input)
	if host == "" {
		return noOutcome()
	}

	for _, brand := range context.HighRiskBrands {
		if strings.Contains(host, brand) && !strings.HasPrefix(host, "www."+brand) {
			return domain.RuleOutcome{
				Points:       DomainSpoofingPoints,
				Explanations: []string{fmt.Sprintf("Potential domain spoofing: contains '%s'", brand)},
			}
		}
	}
	return noOutcome()
}
