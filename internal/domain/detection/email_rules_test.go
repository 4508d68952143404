package detection

import (
	"testing"

	"github.com/stoik/phishguard/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestEmailKeywordRule_Evaluate(t *testing.T) {
	context := DefaultRuleContext()

	tests := []struct {
		name                 string
		body                 string
		expectedPoints       int
		expectedExplanations []string
	}{
		{
			name:           "No keywords",
			body:           "Lunch is at noon on Friday.",
			expectedPoints: 0,
		},
		{
			name:                 "Two keywords",
			body:                 "Please CONFIRM your password.",
			expectedPoints:       20,
			expectedExplanations: []string{"Suspicious keywords found: password, confirm"},
		},
		{
			name:           "Six keywords are capped and overflow is reported",
			body:           "Urgent: verify your account login, password and bank details.",
			expectedPoints: 50,
			expectedExplanations: []string{
				"Suspicious keywords found: urgent, verify, account, login, password",
				"... and 1 more",
			},
		},
		{
			name:                 "Repeated keyword counts once",
			body:                 "verify verify verify",
			expectedPoints:       10,
			expectedExplanations: []string{"Suspicious keywords found: verify"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome := NewEmailKeywordRule().Evaluate(tt.body, context)

			assert.Equal(t, tt.expectedPoints, outcome.Points)
			if tt.expectedExplanations == nil {
				assert.Empty(t, outcome.Explanations)
			} else {
				assert.Equal(t, tt.expectedExplanations, outcome.Explanations)
			}
		})
	}
}

func TestUrgencyRule_Evaluate(t *testing.T) {
	context := DefaultRuleContext()

	outcome := NewUrgencyRule().Evaluate("ACT NOW! Your profile will be deleted within 24 hours. Act now.", context)
	assert.Equal(t, 40, outcome.Points, "each phrase scores once, every distinct phrase scores")
	assert.Equal(t, []string{
		"Urgency indicator: 'act now'",
		"Urgency indicator: 'within 24 hours'",
	}, outcome.Explanations)

	outcome = NewUrgencyRule().Evaluate("See you tomorrow.", context)
	assert.False(t, outcome.Fired())
}

func TestEmailRules_AppliesTo(t *testing.T) {
	for _, rule := range []Rule{NewEmailKeywordRule(), NewUrgencyRule(), NewLinkMismatchRule()} {
		assert.Equal(t, domain.KindEmail, rule.AppliesTo(), rule.Name())
	}
}
