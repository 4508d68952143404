package domain

import "fmt"

// MaxScore is the upper bound of a capped score
const MaxScore = 100

// Tier thresholds (closed-open): [0,40) Low, [40,70) Medium, [70,100] High
const (
	MediumRiskThreshold = 40
	HighRiskThreshold   = 70
)

// RiskTier is the categorical risk derived from a capped score
type RiskTier string

const (
	RiskLow    RiskTier = "Low"
	RiskMedium RiskTier = "Medium"
	RiskHigh   RiskTier = "High"
)

// RiskTierFromScore converts a capped score to a risk tier
func RiskTierFromScore(score int) RiskTier {
	switch {
	case score >= HighRiskThreshold:
		return RiskHigh
	case score >= MediumRiskThreshold:
		return RiskMedium
	default:
		return RiskLow
	}
}

// Summary describes the tier and the number of triggered rule entries.
// indicators is the count of explanation strings, not of distinct rules.
func Summary(tier RiskTier, indicators int) string {
	switch tier {
	case RiskHigh:
		return fmt.Sprintf("High risk detected! %d suspicious indicators found. This appears to be a phishing attempt.", indicators)
	case RiskMedium:
		return fmt.Sprintf("Medium risk detected. %d suspicious indicators found. Exercise caution.", indicators)
	default:
		return fmt.Sprintf("Low risk detected. %d suspicious indicators found. Appears relatively safe.", indicators)
	}
}

// ClampScore truncates a raw score to [0, MaxScore]
func ClampScore(raw int) int {
	return max(0, min(raw, MaxScore))
}

// FormatResult derives the tier and summary for an evaluation
func FormatResult(eval Evaluation) AnalysisResult {
	explanations := eval.Explanations
	if explanations == nil {
		explanations = []string{}
	}

	tier := RiskTierFromScore(eval.Score)
	return AnalysisResult{
		Kind:         eval.Kind,
		RawScore:     eval.RawScore,
		Score:        eval.Score,
		RiskTier:     tier,
		Explanations: explanations,
		Summary:      Summary(tier, len(explanations)),
	}
}
