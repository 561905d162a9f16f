package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/legalmind/legalmind/internal/models"
)

func TestNewWithConfigDefaults(t *testing.T) {
	analyzer, err := NewWithConfig(AnalyzerConfig{})

	require.NoError(t, err)
	require.NotNil(t, analyzer)
	assert.Equal(t, "gpt-3.5-turbo", analyzer.config.Model)
	assert.Equal(t, 2.0, analyzer.config.RateLimit)
	assert.Nil(t, analyzer.model)
}

func TestMissingKeyIsConfigFailure(t *testing.T) {
	analyzer, err := NewWithConfig(AnalyzerConfig{})
	require.NoError(t, err)

	result := analyzer.ExplainClause(context.Background(), "The seller warrants the goods.")

	require.False(t, result.OK())
	assert.Equal(t, models.FailureConfig, result.Failure.Kind)
	assert.Contains(t, result.Message(), "API key not configured")
}

func TestMissingKeyDocumentWarrantiesDegraded(t *testing.T) {
	analyzer, err := NewWithConfig(AnalyzerConfig{})
	require.NoError(t, err)

	analysis := analyzer.AnalyzeDocumentWarranties(context.Background(), "Seller disclaims all warranties.")

	assert.Contains(t, analysis.Analysis, "Error:")
	assert.Equal(t, models.RiskUnknown, analysis.Summary.RiskLevel)
	assert.False(t, analysis.Summary.HasWarranties)
	assert.False(t, analysis.Summary.HasGuarantees)
}

func TestClassifyFailure(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		kind     models.FailureKind
		contains string
	}{
		{
			name:     "authentication failure",
			err:      errors.New("API returned unexpected status code: 401 Unauthorized"),
			kind:     models.FailureAuth,
			contains: "Invalid OpenAI API key",
		},
		{
			name:     "incorrect key phrase",
			err:      errors.New("Incorrect API key provided"),
			kind:     models.FailureAuth,
			contains: "Invalid OpenAI API key",
		},
		{
			name:     "rate limit by status",
			err:      errors.New("API returned unexpected status code: 429 Too Many Requests"),
			kind:     models.FailureQuota,
			contains: "rate limit exceeded",
		},
		{
			name:     "quota phrase",
			err:      errors.New("you exceeded your current quota"),
			kind:     models.FailureQuota,
			contains: "rate limit exceeded",
		},
		{
			name:     "generic service failure",
			err:      errors.New("connection reset by peer"),
			kind:     models.FailureService,
			contains: "OpenAI API error - connection reset by peer",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := classifyFailure(tt.err)
			require.False(t, result.OK())
			assert.Equal(t, tt.kind, result.Failure.Kind)
			assert.Contains(t, result.Message(), tt.contains)
		})
	}
}

func TestDegradedMessagesAreDistinctPerClass(t *testing.T) {
	auth := classifyFailure(errors.New("401")).Message()
	quota := classifyFailure(errors.New("429")).Message()
	generic := classifyFailure(errors.New("boom")).Message()

	assert.NotEqual(t, auth, quota)
	assert.NotEqual(t, auth, generic)
	assert.NotEqual(t, quota, generic)
}
