package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// InputKind identifies what the submitted text is
type InputKind string

const (
	KindURL   InputKind = "url"
	KindEmail InputKind = "email"
)

var (
	// ErrInvalidKind is returned when the input kind is neither "url" nor "email"
	ErrInvalidKind = errors.New("invalid input kind")

	// ErrEmptyInput is returned when the text is empty after normalization
	ErrEmptyInput = errors.New("input is empty")

	// ErrInvalidURL is returned by callers that validate URL syntax before analysis
	ErrInvalidURL = errors.New("invalid URL format")
)

// ParseInputKind trims and lowercases the raw kind and checks it against the supported kinds
func ParseInputKind(raw string) (InputKind, error) {
	kind := InputKind(strings.ToLower(strings.TrimSpace(raw)))
	if !kind.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidKind, raw)
	}
	return kind, nil
}

// Valid reports whether k is one of the supported kinds
func (k InputKind) Valid() bool {
	return k == KindURL || k == KindEmail
}

// AnalysisInput is a single piece of text submitted for analysis
type AnalysisInput struct {
	Text string
	Kind InputKind
}

// RuleOutcome is what a single rule contributes to an analysis.
// A rule that does not fire returns zero points and no explanations.
type RuleOutcome struct {
	Points       int
	Explanations []string
}

// Fired reports whether the rule contributed anything
func (o RuleOutcome) Fired() bool {
	return o.Points > 0 || len(o.Explanations) > 0
}

// Evaluation is the aggregated output of a rule set, before tiering
type Evaluation struct {
	Kind         InputKind
	RawScore     int      // sum of all fired rule points, uncapped
	Score        int      // RawScore clamped to [0, MaxScore]
	Explanations []string // in rule declaration order
}

// AnalysisResult is the complete result returned to callers.
// Transports map it to their own wire format.
type AnalysisResult struct {
	Kind         InputKind
	RawScore     int
	Score        int
	RiskTier     RiskTier
	Explanations []string
	Summary      string
}

// AnalysisReport wraps a result with the metadata the application layer attaches to it.
// The engine never produces IDs or timestamps, so identical inputs always yield identical results.
type AnalysisReport struct {
	ID         uuid.UUID
	Result     AnalysisResult
	AnalyzedAt time.Time
}
