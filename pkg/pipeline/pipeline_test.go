package pipeline_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/legalmind/legalmind/internal/models"
	"github.com/legalmind/legalmind/pkg/pipeline"
	"github.com/legalmind/legalmind/pkg/segmenter"
	"github.com/legalmind/legalmind/pkg/triage"
)

// stubAnalyzer lets tests script per-clause outcomes without a network.
type stubAnalyzer struct {
	explain  func(clause string) models.AnalysisResult
	warranty func(clause string) models.AnalysisResult
}

func (s stubAnalyzer) ExplainClause(_ context.Context, clause string) models.AnalysisResult {
	if s.explain != nil {
		return s.explain(clause)
	}
	return models.AnalysisResult{Text: "explained: " + clause}
}

func (s stubAnalyzer) AnalyzeClauseWarranties(_ context.Context, clause string) models.AnalysisResult {
	if s.warranty != nil {
		return s.warranty(clause)
	}
	return models.AnalysisResult{Text: "warranty: " + clause}
}

func (s stubAnalyzer) AnalyzeDocumentWarranties(_ context.Context, text string) models.WarrantyAnalysis {
	return models.WarrantyAnalysis{
		Analysis: "document warranty analysis",
		Summary:  triage.DocumentSummary(text),
	}
}

func (s stubAnalyzer) Summarize(_ context.Context, _ string) models.AnalysisResult {
	return models.AnalysisResult{Text: "summary"}
}

func newPipeline(analyzer stubAnalyzer, maxConcurrent int) *pipeline.Pipeline {
	seg := segmenter.NewWithConfig(segmenter.SegmenterConfig{})
	return pipeline.NewWithConfig(seg, analyzer, pipeline.PipelineConfig{
		MaxConcurrent: maxConcurrent,
	})
}

const sampleDocument = `The buyer shall pay the purchase price within 30 days.

The seller warrants the goods against defects for 12 months.

This agreement is governed by the laws of England.
`

func TestAnalyzeUploadRecordPerClause(t *testing.T) {
	p := newPipeline(stubAnalyzer{}, 1)

	records := p.AnalyzeUpload(context.Background(), "contract.txt", []byte(sampleDocument))

	require.Len(t, records, 3)
	assert.Equal(t, "The buyer shall pay the purchase price within 30 days.", records[0].Clause)
	assert.Equal(t, "The seller warrants the goods against defects for 12 months.", records[1].Clause)
	assert.Equal(t, "This agreement is governed by the laws of England.", records[2].Clause)
}

func TestWarrantyAnalysisPresenceInvariant(t *testing.T) {
	p := newPipeline(stubAnalyzer{}, 1)

	records := p.AnalyzeUpload(context.Background(), "contract.txt", []byte(sampleDocument))

	for _, record := range records {
		if record.HasWarrantyTerms {
			assert.NotEmpty(t, record.WarrantyAnalysis)
		} else {
			assert.Empty(t, record.WarrantyAnalysis)
		}
	}

	// Only the warranty clause is flagged.
	require.Len(t, records, 3)
	assert.False(t, records[0].HasWarrantyTerms)
	assert.True(t, records[1].HasWarrantyTerms)
	assert.False(t, records[2].HasWarrantyTerms)
}

func TestEmptyDocumentReturnsSyntheticErrorRecord(t *testing.T) {
	p := newPipeline(stubAnalyzer{}, 1)

	records := p.AnalyzeUpload(context.Background(), "empty.txt", []byte("  \n\n "))

	require.Len(t, records, 1)
	assert.Equal(t, "Error processing document", records[0].Clause)
	assert.Contains(t, records[0].Analysis, "Failed to analyze document")
	assert.False(t, records[0].HasWarrantyTerms)
}

func TestUnreadableDocumentReturnsSyntheticErrorRecord(t *testing.T) {
	p := newPipeline(stubAnalyzer{}, 1)

	records := p.AnalyzeUpload(context.Background(), "broken.docx", []byte("not a docx"))

	require.Len(t, records, 1)
	assert.Equal(t, "Error processing document", records[0].Clause)
}

func TestServiceFailureIsAbsorbedPerClause(t *testing.T) {
	analyzer := stubAnalyzer{
		explain: func(clause string) models.AnalysisResult {
			if strings.Contains(clause, "warrants") {
				return models.AnalysisResult{
					Failure: &models.CallFailure{
						Kind:    models.FailureAuth,
						Message: "Error: Invalid OpenAI API key. Please check your configuration.",
					},
				}
			}
			return models.AnalysisResult{Text: "explained: " + clause}
		},
	}
	p := newPipeline(analyzer, 1)

	records := p.AnalyzeUpload(context.Background(), "contract.txt", []byte(sampleDocument))

	require.Len(t, records, 3)
	assert.Contains(t, records[1].Analysis, "Invalid OpenAI API key")
	assert.Contains(t, records[0].Analysis, "explained:")
	assert.Contains(t, records[2].Analysis, "explained:")
}

func TestConcurrentFanOutPreservesOrder(t *testing.T) {
	var lines []string
	for i := 0; i < 40; i++ {
		lines = append(lines, "Clause number "+strings.Repeat("x", i%7)+" describing an obligation.")
	}
	document := strings.Join(lines, "\n")

	p := newPipeline(stubAnalyzer{}, 8)
	records := p.AnalyzeUpload(context.Background(), "big.txt", []byte(document))

	require.Len(t, records, len(lines))
	for i, record := range records {
		assert.Equal(t, lines[i], record.Clause)
		assert.Equal(t, "explained: "+lines[i], record.Analysis)
	}
}

func TestFullAnalysisAggregates(t *testing.T) {
	p := newPipeline(stubAnalyzer{}, 1)

	result := p.FullAnalysis(context.Background(), "contract.txt", []byte(sampleDocument))

	assert.Equal(t, "contract.txt", result.Filename)
	require.Len(t, result.Clauses, 3)

	require.NotNil(t, result.WarrantyAnalysis)
	assert.Equal(t, "document warranty analysis", result.WarrantyAnalysis.Analysis)
	assert.True(t, result.WarrantyAnalysis.Summary.HasWarranties)

	require.NotNil(t, result.Compliance)
	assert.Equal(t, len(result.Compliance.Issues), result.Compliance.TotalIssues)
}

func TestStats(t *testing.T) {
	records := []models.ClauseAnalysisRecord{
		models.NewClauseRecord("a", "x"),
		models.NewWarrantyClauseRecord("b", "x", "w"),
		models.NewClauseRecord("c", "x"),
	}

	stats := pipeline.Stats(records)

	assert.Equal(t, 3, stats.TotalClauses)
	assert.Equal(t, 1, stats.WarrantyRelatedClauses)
	assert.Equal(t, 33.33, stats.WarrantyPercentage)
}

func TestStatsEmpty(t *testing.T) {
	stats := pipeline.Stats(nil)

	assert.Equal(t, 0, stats.TotalClauses)
	assert.Equal(t, 0.0, stats.WarrantyPercentage)
}

func TestProgressCallback(t *testing.T) {
	var calls []int
	seg := segmenter.NewWithConfig(segmenter.SegmenterConfig{})
	p := pipeline.NewWithConfig(seg, stubAnalyzer{}, pipeline.PipelineConfig{
		OnProgress: func(done, total int) {
			assert.Equal(t, 3, total)
			calls = append(calls, done)
		},
	})

	p.AnalyzeUpload(context.Background(), "contract.txt", []byte(sampleDocument))

	assert.Equal(t, []int{1, 2, 3}, calls)
}
