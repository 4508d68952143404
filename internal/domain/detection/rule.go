package detection

import (
	"github.com/stoik/phishguard/internal/domain"
)

// Rule defines the interface that every phishing heuristic must implement
//
// Each rule is an independent predicate over normalized input. Rules never
// fail: input a rule cannot make sense of (e.g. a URL without a host) simply
// contributes nothing.
type Rule interface {
	// Evaluate inspects the normalized input and returns the points and explanations it contributes
	Evaluate(input string, context *RuleContext) domain.RuleOutcome

	// Name returns the human-readable name of this rule
	Name() string

	// AppliesTo returns the input kind this rule is part of
	AppliesTo() domain.InputKind
}

// RuleContext carries the immutable reference lists shared by all rules
//
// It is built once at startup and only read afterwards.
type RuleContext struct {
	// SuspiciousKeywords are scanned for in both URLs and email bodies
	SuspiciousKeywords []string

	// SuspiciousTLDs are host suffixes frequently used for throwaway domains (e.g. ".tk")
	SuspiciousTLDs []string

	// URLShorteners are shortening-service domains that hide the real destination
	URLShorteners []string

	// HighRiskBrands are trusted brand names used as spoofing anchors (e.g. "paypal")
	HighRiskBrands []string

	// UrgencyPhrases are pressure phrases commonly found in phishing emails
	UrgencyPhrases []string
}

// noOutcome is returned by rules that did not fire
func noOutcome() domain.RuleOutcome {
	return domain.RuleOutcome{}
}
