package application

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stoik/phishguard/internal/domain"
	"github.com/stoik/phishguard/internal/domain/detection"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(buf *bytes.Buffer) *AnalysisService {
	logger := slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	service := NewAnalysisService(detection.NewDetector(detection.DefaultRuleContext()), logger)
	service.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }
	service.newID = func() uuid.UUID { return uuid.MustParse("6f1c2b7e-2f0a-4f43-9b3a-1d2c3e4f5a6b") }
	return service
}

func TestAnalysisService_Analyze_Rejections(t *testing.T) {
	service := newTestService(&bytes.Buffer{})

	tests := []struct {
		name     string
		input    domain.AnalysisInput
		expected error
	}{
		{"Empty input", domain.AnalysisInput{Text: "", Kind: "url"}, domain.ErrEmptyInput},
		{"Whitespace only", domain.AnalysisInput{Text: " \n\t", Kind: "email"}, domain.ErrEmptyInput},
		{"Empty input wins over bad type", domain.AnalysisInput{Text: "  ", Kind: "sms"}, domain.ErrEmptyInput},
		{"Unknown type", domain.AnalysisInput{Text: "hello", Kind: "sms"}, domain.ErrInvalidKind},
		{"Missing type", domain.AnalysisInput{Text: "hello"}, domain.ErrInvalidKind},
		{"URL without scheme", domain.AnalysisInput{Text: "example.com/login", Kind: "url"}, domain.ErrInvalidURL},
		{"URL without host", domain.AnalysisInput{Text: "mailto:someone", Kind: "url"}, domain.ErrInvalidURL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Analyze(context.Background(), tt.input)
			assert.True(t, errors.Is(err, tt.expected), "got %v", err)
		})
	}
}

func TestAnalysisService_Analyze_URL(t *testing.T) {
	var logs bytes.Buffer
	service := newTestService(&logs)

	report, err := service.Analyze(context.Background(), domain.AnalysisInput{
		Text: "  http://192.168.1.1/login \n",
		Kind: " URL ",
	})
	require.NoError(t, err)

	assert.Equal(t, "6f1c2b7e-2f0a-4f43-9b3a-1d2c3e4f5a6b", report.ID.String())
	assert.Equal(t, time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC), report.AnalyzedAt)
	assert.Equal(t, domain.KindURL, report.Result.Kind)
	assert.Equal(t, 55, report.Result.Score)
	assert.Equal(t, domain.RiskMedium, report.Result.RiskTier)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(logs.Bytes(), &entry))
	assert.Equal(t, "analysis completed", entry["msg"])
	assert.Equal(t, "url", entry["input_type"])
	assert.Equal(t, float64(55), entry["score"])
	assert.Equal(t, "Medium", entry["risk_level"])
	assert.Equal(t, "2024-05-01T12:00:00Z", entry["analyzed_at"])
}

func TestAnalysisService_Analyze_LenientURLsAreScored(t *testing.T) {
	service := newTestService(&bytes.Buffer{})

	tests := []struct {
		url                  string
		expectedScore        int
		expectedExplanations []string
	}{
		{
			url:           "http://paypal-login.com/%zz",
			expectedScore: 50,
			expectedExplanations: []string{
				"Suspicious keyword in URL: 'login'",
				"Potential domain spoofing: contains 'paypal'",
			},
		},
		{
			url:           "http://paypal-login.com:abc/",
			expectedScore: 50,
			expectedExplanations: []string{
				"Suspicious keyword in URL: 'login'",
				"Potential domain spoofing: contains 'paypal'",
			},
		},
		{
			url:           "http://paypal-login.com /verify",
			expectedScore: 65,
			expectedExplanations: []string{
				"Suspicious keyword in URL: 'verify'",
				"Suspicious keyword in URL: 'login'",
				"Potential domain spoofing: contains 'paypal'",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			report, err := service.Analyze(context.Background(), domain.AnalysisInput{Text: tt.url, Kind: "url"})
			require.NoError(t, err)

			assert.Equal(t, tt.expectedScore, report.Result.Score)
			assert.Equal(t, domain.RiskMedium, report.Result.RiskTier)
			assert.Equal(t, tt.expectedExplanations, report.Result.Explanations)
		})
	}
}

func TestAnalysisService_Analyze_HighRiskEmailIsAlerted(t *testing.T) {
	var logs bytes.Buffer
	service := newTestService(&logs)

	report, err := service.Analyze(context.Background(), domain.AnalysisInput{
		Text: "Act now! Your account will be closed within 24 hours. Verify your password: [PayPal](http://evil.example)",
		Kind: "email",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.RiskHigh, report.Result.RiskTier)
	assert.Contains(t, logs.String(), "high risk input detected")
	assert.Equal(t, 2, strings.Count(strings.TrimSpace(logs.String()), "\n")+1)
}

func TestIsValidURL(t *testing.T) {
	assert.True(t, IsValidURL("http://example.com"))
	assert.True(t, IsValidURL("https://192.168.1.1:8443/login?x=1"))
	assert.False(t, IsValidURL("example.com"))
	assert.False(t, IsValidURL("http://"))
	assert.True(t, IsValidURL("http://%zz/"))
	assert.True(t, IsValidURL("http://paypal-login.com:abc/"))
	assert.False(t, IsValidURL(""))
}
