package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/legalmind/legalmind/internal/models"
	"github.com/legalmind/legalmind/internal/types"
	"github.com/legalmind/legalmind/pkg/triage"
)

type PipelineConfig struct {
	// MaxConcurrent bounds the per-clause completion-call fan-out.
	// 1 means fully sequential.
	MaxConcurrent int

	// OnProgress, when set, is called after each clause finishes.
	OnProgress func(done, total int)

	Logger *slog.Logger
}

// Pipeline drives the per-document flow: temp-document lifecycle,
// segmentation, keyword triage, per-clause analysis with the conditional
// warranty pass, and assembly of the aggregate result.
type Pipeline struct {
	segmenter types.Segmenter
	analyzer  types.ClauseAnalyzer
	config    PipelineConfig
	logger    *slog.Logger
}

func NewWithConfig(segmenter types.Segmenter, analyzer types.ClauseAnalyzer, config PipelineConfig) *Pipeline {
	if config.MaxConcurrent <= 0 {
		config.MaxConcurrent = 1
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		segmenter: segmenter,
		analyzer:  analyzer,
		config:    config,
		logger:    logger,
	}
}

// AnalyzeUpload runs segmentation and per-clause analysis over an uploaded
// document. Structural failures (unreadable upload, nothing left after
// filtering) never propagate: they surface as a single synthetic error
// record so the response shape stays stable.
func (p *Pipeline) AnalyzeUpload(ctx context.Context, filename string, content []byte) []models.ClauseAnalysisRecord {
	records, err := p.analyze(ctx, filename, content)
	if err != nil {
		p.logger.Error("document analysis aborted", "filename", filename, "error", err)
		return []models.ClauseAnalysisRecord{
			models.NewClauseRecord(
				"Error processing document",
				fmt.Sprintf("Failed to analyze document: %v", err),
			),
		}
	}
	return records
}

// FullAnalysis runs the complete flow: per-clause records, the document-wide
// warranty pass over the concatenation of all clause texts, and the
// compliance check over the flagged subset.
func (p *Pipeline) FullAnalysis(ctx context.Context, filename string, content []byte) models.DocumentAnalysisResult {
	records := p.AnalyzeUpload(ctx, filename, content)

	texts := make([]string, len(records))
	for i, record := range records {
		texts[i] = record.Clause
	}
	fullText := strings.Join(texts, " ")

	warranty := p.analyzer.AnalyzeDocumentWarranties(ctx, fullText)
	compliance := triage.CheckCompliance(records)

	return models.DocumentAnalysisResult{
		Clauses:          records,
		WarrantyAnalysis: &warranty,
		Compliance:       &compliance,
		Filename:         filename,
	}
}

func (p *Pipeline) analyze(ctx context.Context, filename string, content []byte) ([]models.ClauseAnalysisRecord, error) {
	runID := uuid.New().String()
	p.logger.Info("analysis started", "run_id", runID, "filename", filename, "bytes", len(content))

	var records []models.ClauseAnalysisRecord
	err := withTempDocument(filename, content, func(path string) error {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read document: %w", err)
		}

		clauses, err := p.segmenter.Segment(data, filename)
		if err != nil {
			return err
		}
		p.logger.Info("document segmented", "run_id", runID, "clauses", len(clauses))

		records = p.analyzeClauses(ctx, clauses)
		return nil
	})
	if err != nil {
		return nil, err
	}

	p.logger.Info("analysis complete", "run_id", runID, "records", len(records))
	return records, nil
}

// analyzeClauses fans the per-clause work out across a bounded number of
// workers. Result slots are keyed by clause index, so output order always
// equals document order regardless of completion order.
func (p *Pipeline) analyzeClauses(ctx context.Context, clauses []models.Clause) []models.ClauseAnalysisRecord {
	records := make([]models.ClauseAnalysisRecord, len(clauses))

	var (
		wg   sync.WaitGroup
		done int
		mu   sync.Mutex
	)
	sem := make(chan struct{}, p.config.MaxConcurrent)

	for _, clause := range clauses {
		wg.Add(1)
		sem <- struct{}{}
		go func(c models.Clause) {
			defer wg.Done()
			defer func() { <-sem }()

			records[c.Index] = p.analyzeClause(ctx, c)

			if p.config.OnProgress != nil {
				mu.Lock()
				done++
				p.config.OnProgress(done, len(clauses))
				mu.Unlock()
			}
		}(clause)
	}
	wg.Wait()

	return records
}

// analyzeClause runs triage before any network call; only flagged clauses
// pay for the warranty analysis pass.
func (p *Pipeline) analyzeClause(ctx context.Context, clause models.Clause) models.ClauseAnalysisRecord {
	flagged := triage.HasWarrantyTerms(clause.Text)

	analysis := p.analyzer.ExplainClause(ctx, clause.Text)
	if !analysis.OK() {
		p.logger.Warn("clause analysis degraded", "clause", clause.Index, "kind", analysis.Failure.Kind)
	}

	if !flagged {
		return models.NewClauseRecord(clause.Text, analysis.Message())
	}

	warranty := p.analyzer.AnalyzeClauseWarranties(ctx, clause.Text)
	return models.NewWarrantyClauseRecord(clause.Text, analysis.Message(), warranty.Message())
}

// Stats summarizes an analyzed document: clause counts and the share of
// warranty-related clauses, rounded to two decimals.
func Stats(records []models.ClauseAnalysisRecord) models.DocumentStats {
	stats := models.DocumentStats{TotalClauses: len(records)}
	for _, record := range records {
		if record.HasWarrantyTerms {
			stats.WarrantyRelatedClauses++
		}
	}
	if stats.TotalClauses > 0 {
		pct := float64(stats.WarrantyRelatedClauses) / float64(stats.TotalClauses) * 100
		stats.WarrantyPercentage = math.Round(pct*100) / 100
	}
	return stats
}

// withTempDocument spills the upload to a scoped temporary file and
// guarantees its removal on every exit path.
func withTempDocument(filename string, content []byte, fn func(path string) error) error {
	tmp, err := os.CreateTemp("", "legalmind-*"+filepath.Ext(filename))
	if err != nil {
		return fmt.Errorf("failed to create temporary document: %w", err)
	}
	path := tmp.Name()
	defer os.Remove(path)

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write temporary document: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temporary document: %w", err)
	}

	return fn(path)
}
