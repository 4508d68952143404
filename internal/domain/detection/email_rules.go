package detection

import (
	"fmt"
	"strings"

	"github.com/stoik/phishguard/internal/domain"
)

// Points contributed by each email rule
const (
	EmailKeywordPoints    = 10
	EmailKeywordMaxPoints = 50
	UrgencyPoints         = 20
)

// maxListedKeywords is how many matched keywords the explanation spells out
const maxListedKeywords = 5

// EmailKeywordRule counts distinct suspicious keywords in the body
//
// Unlike the URL keyword rule, the score is capped and all matches are
// reported as a single explanation (plus an overflow line).
type EmailKeywordRule struct{}

// NewEmailKeywordRule creates a new email keyword rule
func NewEmailKeywordRule() *EmailKeywordRule {
	return &EmailKeywordRule{}
}

// Name returns the rule name
func (r *EmailKeywordRule) Name() string {
	return "Suspicious keywords"
}

// AppliesTo returns the input kind this rule is part of
func (r *EmailKeywordRule) AppliesTo() domain.InputKind {
	return domain.KindEmail
}

// Evaluate scores min(count*10, 50) for the distinct keywords found
func (r *EmailKeywordRule) Evaluate(input string, context *RuleContext) domain.RuleOutcome {
	found := findKeywords(strings.ToLower(input), context.SuspiciousKeywords)
	if len(found) == 0 {
		return noOutcome()
	}

	listed := found[:min(len(found), maxListedKeywords)]
	outcome := domain.RuleOutcome{
		Points:       min(len(found)*EmailKeywordPoints, EmailKeywordMaxPoints),
		Explanations: []string{"Suspicious keywords found: " + strings.Join(listed, ", ")},
	}
	if extra := len(found) - maxListedKeywords; extra > 0 {
		outcome.Explanations = append(outcome.Explanations, fmt.Sprintf("... and %d more", extra))
	}
	return outcome
}

// UrgencyRule flags pressure phrases; every phrase found scores on its own
type UrgencyRule struct{}

// NewUrgencyRule creates a new urgency indicator rule
func NewUrgencyRule() *UrgencyRule {
	return &UrgencyRule{}
}

// Name returns the rule name
func (r *UrgencyRule) Name() string {
	return "Urgency indicators"
}

// AppliesTo returns the input kind this rule is part of
func (r *UrgencyRule) AppliesTo() domain.InputKind {
	return domain.KindEmail
}

// Evaluate reports each urgency phrase contained in the body
func (r *UrgencyRule) Evaluate(input string, context *RuleContext) domain.RuleOutcome {
	found := findKeywords(strings.ToLower(input), context.UrgencyPhrases)
	if len(found) == 0 {
		return noOutcome()
	}

	outcome := domain.RuleOutcome{Points: UrgencyPoints * len(found)}
	for _, phrase := range found {
		outcome.Explanations = append(outcome.Explanations, fmt.Sprintf("Urgency indicator: '%s'", phrase))
	}
	return outcome
}
