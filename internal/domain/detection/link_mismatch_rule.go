package detection

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/stoik/phishguard/internal/domain"
)

// LinkMismatchPoints is scored for every link whose text names a brand the URL lacks
const LinkMismatchPoints = 40

// Both link syntaxes capture into named groups so that the visible text and
// the target never depend on positional group order.
var linkPatterns = []*regexp.Regexp{
	// Bracket style: [text](url)
	regexp.MustCompile(`(?i)\[(?P<text>[^\]]+)\]\((?P<url>[^)]+)\)`),
	// Inline markup: <a href="url">text</a>
	regexp.MustCompile(`(?i)<a[^>]+href="(?P<url>[^"]+)"[^>]*>(?P<text>[^<]+)</a>`),
}

// link is a single inline link found in an email body
type link struct {
	Text string
	URL  string
}

// LinkMismatchRule flags links whose visible text mentions a high-risk brand
// while the underlying URL does not
type LinkMismatchRule struct{}

// NewLinkMismatchRule creates a new link/text mismatch rule
func NewLinkMismatchRule() *LinkMismatchRule {
	return &LinkMismatchRule{}
}

// Name returns the rule name
func (r *LinkMismatchRule) Name() string {
	return "Link/text mismatch"
}

// AppliesTo returns the input kind this rule is part of
func (r *LinkMismatchRule) AppliesTo() domain.InputKind {
	return domain.KindEmail
}

// Evaluate checks every link, bracket-style links first; each link is
// flagged at most once, for the first brand that mismatches
func (r *LinkMismatchRule) Evaluate(input string, context *RuleContext) domain.RuleOutcome {
	outcome := noOutcome()

	for _, l := range extractLinks(input) {
		text := strings.ToLower(l.Text)
		target := strings.ToLower(l.URL)

		for _, brand := range context.HighRiskBrands {
			if strings.Contains(text, brand) && !strings.Contains(target, brand) {
				outcome.Points += LinkMismatchPoints
				outcome.Explanations = append(outcome.Explanations,
					fmt.Sprintf("Link mismatch: text shows '%s' but URL differs", brand))
				break
			}
		}
	}

	return outcome
}

// extractLinks returns all links in input, grouped by syntax in pattern order
func extractLinks(input string) []link {
	var links []link
	for _, pattern := range linkPatterns {
		textIdx := pattern.SubexpIndex("text")
		urlIdx := pattern.SubexpIndex("url")

		for _, match := range pattern.FindAllStringSubmatch(input, -1) {
			links = append(links, link{Text: match[textIdx], URL: match[urlIdx]})
		}
	}
	return links
}
