package types

import (
	"context"

	"github.com/legalmind/legalmind/internal/models"
)

// Core interfaces

// Segmenter turns a raw document into an ordered sequence of clauses.
type Segmenter interface {
	Segment(data []byte, filename string) ([]models.Clause, error)
}

// ClauseAnalyzer produces plain-language analysis text. Implementations
// absorb service failures into the returned values; they never propagate
// per-call errors to the orchestrator.
type ClauseAnalyzer interface {
	ExplainClause(ctx context.Context, clause string) models.AnalysisResult
	AnalyzeClauseWarranties(ctx context.Context, clause string) models.AnalysisResult
	AnalyzeDocumentWarranties(ctx context.Context, text string) models.WarrantyAnalysis
	Summarize(ctx context.Context, text string) models.AnalysisResult
}

// SpeechSynthesizer renders analysis text as narrated audio.
type SpeechSynthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

// DocumentPipeline drives the full per-document analysis flow.
type DocumentPipeline interface {
	AnalyzeUpload(ctx context.Context, filename string, content []byte) []models.ClauseAnalysisRecord
	FullAnalysis(ctx context.Context, filename string, content []byte) models.DocumentAnalysisResult
}
