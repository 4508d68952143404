package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/stoik/phishguard/internal/domain"
	"github.com/stoik/phishguard/internal/domain/detection"
)

// AnalysisService validates submissions and runs them through the phishing detector
//
// The detector is a pure function of its input; everything request-specific
// (validation, analysis IDs, timestamps, logging) lives here.
type AnalysisService struct {
	detector *detection.Detector
	logger   *slog.Logger

	now   func() time.Time
	newID func() uuid.UUID
}

// NewAnalysisService creates a new analysis service with dependency injection
func NewAnalysisService(detector *detection.Detector, logger *slog.Logger) *AnalysisService {
	return &AnalysisService{
		detector: detector,
		logger:   logger,
		now:      time.Now,
		newID:    uuid.New,
	}
}

// Analyze checks the submission in the same order the API reports problems:
// empty input, unknown type, then malformed URL. Valid input is scored.
func (s *AnalysisService) Analyze(ctx context.Context, input domain.AnalysisInput) (domain.AnalysisReport, error) {
	if strings.TrimSpace(input.Text) == "" {
		return domain.AnalysisReport{}, domain.ErrEmptyInput
	}

	kind, err := domain.ParseInputKind(string(input.Kind))
	if err != nil {
		return domain.AnalysisReport{}, err
	}

	text := detection.NormalizeText(input.Text)
	if kind == domain.KindURL && !IsValidURL(text) {
		return domain.AnalysisReport{}, domain.ErrInvalidURL
	}

	result, err := s.detector.Analyze(text, kind)
	if err != nil {
		return domain.AnalysisReport{}, fmt.Errorf("analysis failed: %w", err)
	}

	report := domain.AnalysisReport{
		ID:         s.newID(),
		Result:     result,
		AnalyzedAt: s.now().UTC(),
	}

	s.logger.InfoContext(ctx, "analysis completed",
		slog.String("analysis_id", report.ID.String()),
		slog.String("input_type", string(kind)),
		slog.Int("score", result.Score),
		slog.String("risk_level", string(result.RiskTier)),
		slog.Int("triggered", len(result.Explanations)),
		slog.Time("analyzed_at", report.AnalyzedAt),
	)

	// Console alert for likely phishing attempts
	if result.RiskTier == domain.RiskHigh {
		s.logger.WarnContext(ctx, "high risk input detected",
			slog.String("analysis_id", report.ID.String()),
			slog.Any("triggered_rules", result.Explanations),
		)
	}

	return report, nil
}

// IsValidURL reports whether raw has a scheme and a host. Bad escapes, odd
// ports or stray spaces do not make a URL invalid; they are scored instead.
func IsValidURL(raw string) bool {
	return detection.HasSchemeAndHost(raw)
}
