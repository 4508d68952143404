package ports

import (
	"context"

	"github.com/stoik/phishguard/internal/domain"
)

// PhishingAnalyzer defines the contract the transport layer uses to score submitted text
type PhishingAnalyzer interface {
	// Analyze validates the input and scores it. Rejections are reported with
	// domain.ErrEmptyInput, domain.ErrInvalidKind or domain.ErrInvalidURL.
	Analyze(ctx context.Context, input domain.AnalysisInput) (domain.AnalysisReport, error)
}
