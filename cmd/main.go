package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"

	"github.com/legalmind/legalmind/internal/models"
	"github.com/legalmind/legalmind/internal/types"
	"github.com/legalmind/legalmind/pkg/config"
	"github.com/legalmind/legalmind/pkg/llm"
	"github.com/legalmind/legalmind/pkg/pipeline"
	"github.com/legalmind/legalmind/pkg/segmenter"
	"github.com/legalmind/legalmind/pkg/triage"
	"github.com/legalmind/legalmind/pkg/tts"
	"github.com/legalmind/legalmind/server"
)

type flags struct {
	ConfigPath  string
	Serve       bool
	Addr        string
	File        string
	Mode        string
	Summary     bool
	Concurrency int
}

func main() {
	f := parseFlags()

	if err := run(f); err != nil {
		log.Fatal(err)
	}
}

func parseFlags() flags {
	var f flags

	flag.StringVar(&f.ConfigPath, "config", "", "Path to config file")
	flag.BoolVar(&f.Serve, "serve", false, "Start the HTTP server")
	flag.StringVar(&f.Addr, "addr", "", "HTTP listen address (overrides config)")
	flag.StringVar(&f.File, "file", "", "Document to analyze (.docx, .html or plain text)")
	flag.StringVar(&f.Mode, "mode", "ai", "Analysis mode: ai or keyword")
	flag.BoolVar(&f.Summary, "summary", false, "Also print a document summary")
	flag.IntVar(&f.Concurrency, "concurrency", 0, "Max concurrent clause analyses (overrides config)")
	flag.Parse()

	return f
}

func run(f flags) error {
	cfg, err := config.LoadConfig(f.ConfigPath)
	if err != nil {
		return err
	}
	if errs := cfg.Validate(); len(errs) > 0 {
		for _, e := range errs {
			color.Red("config: %v", e)
		}
		return fmt.Errorf("invalid configuration")
	}

	if f.Addr != "" {
		cfg.Server.Addr = f.Addr
	}
	if f.Concurrency > 0 {
		cfg.Analyzer.MaxConcurrent = f.Concurrency
	}

	analyzer, minLength, err := buildAnalyzer(f.Mode, cfg)
	if err != nil {
		return err
	}

	if f.Serve {
		return serve(cfg, analyzer, minLength)
	}
	if f.File == "" {
		return fmt.Errorf("nothing to do: pass -file to analyze a document or -serve to start the server")
	}
	return analyzeFile(f, cfg, analyzer, minLength)
}

func buildAnalyzer(mode string, cfg *config.Config) (types.ClauseAnalyzer, int, error) {
	switch mode {
	case "keyword":
		return triage.OfflineAnalyzer{}, cfg.Analyzer.KeywordMinClauseLength, nil
	case "ai":
		analyzer, err := llm.NewWithConfig(llm.AnalyzerConfig{
			APIKey:    cfg.LLM.APIKey,
			BaseURL:   cfg.LLM.BaseURL,
			Model:     cfg.LLM.Model,
			RateLimit: cfg.LLM.RateLimit,
		})
		if err != nil {
			return nil, 0, err
		}
		return analyzer, cfg.Analyzer.MinClauseLength, nil
	default:
		return nil, 0, fmt.Errorf("unknown mode %q (want ai or keyword)", mode)
	}
}

func serve(cfg *config.Config, analyzer types.ClauseAnalyzer, minLength int) error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	seg := segmenter.NewWithConfig(segmenter.SegmenterConfig{MinClauseLength: minLength})
	pipe := pipeline.NewWithConfig(seg, analyzer, pipeline.PipelineConfig{
		MaxConcurrent: cfg.Analyzer.MaxConcurrent,
		Logger:        logger,
	})
	synthesizer := tts.NewWithConfig(tts.SynthesizerConfig{
		APIKey:          cfg.TTS.APIKey,
		Voice:           cfg.TTS.Voice,
		Stability:       cfg.TTS.Stability,
		SimilarityBoost: cfg.TTS.SimilarityBoost,
	})

	srv := server.New(server.Config{Addr: cfg.Server.Addr}, pipe, analyzer, synthesizer, logger)
	return srv.Run()
}

func analyzeFile(f flags, cfg *config.Config, analyzer types.ClauseAnalyzer, minLength int) error {
	content, err := os.ReadFile(f.File)
	if err != nil {
		return fmt.Errorf("failed to read %s: %v", f.File, err)
	}
	filename := filepath.Base(f.File)

	color.Blue("\nAnalyzing %s\n", filename)

	var bar *progressbar.ProgressBar
	seg := segmenter.NewWithConfig(segmenter.SegmenterConfig{MinClauseLength: minLength})
	pipe := pipeline.NewWithConfig(seg, analyzer, pipeline.PipelineConfig{
		MaxConcurrent: cfg.Analyzer.MaxConcurrent,
		Logger:        slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})),
		OnProgress: func(done, total int) {
			if bar == nil {
				bar = getProgressBar(total, "Analyzing clauses...")
			}
			bar.Set(done)
		},
	})

	ctx := context.Background()
	result := pipe.FullAnalysis(ctx, filename, content)
	if bar != nil {
		bar.Finish()
	}

	printResult(result)

	stats := pipeline.Stats(result.Clauses)
	color.Blue("\n%d clauses, %d warranty-related (%.2f%%)\n",
		stats.TotalClauses, stats.WarrantyRelatedClauses, stats.WarrantyPercentage)

	if f.Summary {
		fullText := ""
		for _, record := range result.Clauses {
			fullText += record.Clause + " "
		}
		summary := analyzer.Summarize(ctx, fullText)
		color.Cyan("\nSummary\n")
		fmt.Println(summary.Message())
	}

	return nil
}

func printResult(result models.DocumentAnalysisResult) {
	clauseHeader := color.New(color.FgGreen, color.Bold).PrintfFunc()
	warrantyHeader := color.New(color.FgYellow).PrintfFunc()

	for i, record := range result.Clauses {
		clauseHeader("\nClause %d", i+1)
		if record.HasWarrantyTerms {
			warrantyHeader("  [warranty terms]")
		}
		fmt.Printf("\n%s\n\n", record.Clause)
		fmt.Println(record.Analysis)
		if record.WarrantyAnalysis != "" {
			warrantyHeader("\nWarranty analysis\n")
			fmt.Println(record.WarrantyAnalysis)
		}
	}

	if result.WarrantyAnalysis != nil {
		color.Cyan("\nDocument warranty analysis\n")
		fmt.Println(result.WarrantyAnalysis.Analysis)
		summary := result.WarrantyAnalysis.Summary
		fmt.Printf("\nwarranties: %v  guarantees: %v  risk: %s\n",
			summary.HasWarranties, summary.HasGuarantees, summary.RiskLevel)
	}

	if result.Compliance != nil {
		color.Cyan("\nCompliance\n")
		for _, issue := range result.Compliance.Issues {
			color.Red("  ! %s\n", issue)
		}
		for _, rec := range result.Compliance.Recommendations {
			fmt.Printf("  - %s\n", rec)
		}
		if result.Compliance.TotalIssues == 0 {
			color.Green("  no issues found\n")
		}
	}
}

func getProgressBar(total int, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetDescription(color.BlueString(description)),
		progressbar.OptionSetItsString("clauses"),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "█",
			SaucerHead:    "█",
			SaucerPadding: "░",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionFullWidth(),
		progressbar.OptionSetRenderBlankState(true),
	)
}
