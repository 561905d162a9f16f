package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/schema"
	"golang.org/x/time/rate"

	"github.com/legalmind/legalmind/internal/models"
	"github.com/legalmind/legalmind/pkg/triage"
)

// AnalyzerConfig represents the configuration for the completion-service
// analyzer.
type AnalyzerConfig struct {
	APIKey    string
	BaseURL   string // optional OpenAI-compatible endpoint
	Model     string
	RateLimit float64 // completion calls per second
}

// Analyzer issues single-turn prompts to the completion service and turns
// every failure into a degraded textual result instead of an error.
type Analyzer struct {
	config  AnalyzerConfig
	model   llms.Model
	limiter *rate.Limiter
}

// NewWithConfig creates a new Analyzer with the given configuration. A
// missing API key is not a constructor error: calls made without one return
// a configuration-failure result, so the service can start degraded.
func NewWithConfig(config AnalyzerConfig) (*Analyzer, error) {
	if config.Model == "" {
		config.Model = "gpt-3.5-turbo"
	}
	if config.RateLimit <= 0 {
		config.RateLimit = 2
	}

	analyzer := &Analyzer{
		config:  config,
		limiter: rate.NewLimiter(rate.Limit(config.RateLimit), 1),
	}
	if config.APIKey == "" {
		return analyzer, nil
	}

	opts := []openai.Option{
		openai.WithToken(config.APIKey),
		openai.WithModel(config.Model),
	}
	if config.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(config.BaseURL))
	}

	model, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize completion client: %w", err)
	}
	analyzer.model = model
	return analyzer, nil
}

const explainPrompt = "Please explain the meaning of this legal clause in simple language:\n\n%s"

const warrantyPrompt = `Analyze this legal clause specifically for warranties, guarantees, and related terms:

%s

Please identify:
1. Any warranties mentioned (express or implied)
2. Any guarantees provided
3. Limitations or disclaimers
4. Risk level for the recipient (Low/Medium/High)
5. Key terms to watch out for

Provide a clear, simple explanation suitable for non-lawyers.`

const documentWarrantyPrompt = `Analyze the following legal document text for warranties, guarantees, and related terms:

%s

Please provide:
1. Summary of all warranties found
2. Summary of all guarantees found
3. Any disclaimers or limitations
4. Overall risk assessment (High/Medium/Low)
5. Key recommendations for the document recipient

Format your response as a detailed analysis.`

const summarizePrompt = `Summarize the following legal text in clear, simple terms:

%s

Please provide a concise summary that explains:
1. The main purpose of this document
2. Key obligations and rights
3. Important terms to be aware of
4. Any potential risks or benefits

Keep the summary accessible to non-lawyers.`

// ExplainClause asks for a plain-language reading of one clause.
func (a *Analyzer) ExplainClause(ctx context.Context, clause string) models.AnalysisResult {
	return a.complete(ctx, fmt.Sprintf(explainPrompt, clause), 0.3, 300)
}

// AnalyzeClauseWarranties runs the warranty-specific prompt over one
// flagged clause.
func (a *Analyzer) AnalyzeClauseWarranties(ctx context.Context, clause string) models.AnalysisResult {
	return a.complete(ctx, fmt.Sprintf(warrantyPrompt, clause), 0.3, 350)
}

// AnalyzeDocumentWarranties runs the document-wide warranty prompt over the
// concatenated clause text. The keyword summary is computed locally and
// independently of the completion call; on failure the risk level is
// Unknown.
func (a *Analyzer) AnalyzeDocumentWarranties(ctx context.Context, text string) models.WarrantyAnalysis {
	result := a.complete(ctx, fmt.Sprintf(documentWarrantyPrompt, text), 0.3, 500)
	if !result.OK() {
		return models.WarrantyAnalysis{
			Analysis: result.Message(),
			Summary:  models.RiskAssessment{RiskLevel: models.RiskUnknown},
		}
	}
	return models.WarrantyAnalysis{
		Analysis: result.Text,
		Summary:  triage.DocumentSummary(text),
	}
}

// Summarize asks for a short plain-language synopsis of the full document.
func (a *Analyzer) Summarize(ctx context.Context, text string) models.AnalysisResult {
	return a.complete(ctx, fmt.Sprintf(summarizePrompt, text), 0.4, 400)
}

func (a *Analyzer) complete(ctx context.Context, prompt string, temperature float64, maxTokens int) models.AnalysisResult {
	if a.model == nil {
		return failure(models.FailureConfig, "Error: OpenAI API key not configured. Set OPENAI_API_KEY or llm.api_key.")
	}

	if err := a.limiter.Wait(ctx); err != nil {
		return failure(models.FailureService, fmt.Sprintf("Error: OpenAI API error - %v", err))
	}

	content := []llms.MessageContent{
		llms.TextParts(schema.ChatMessageTypeHuman, prompt),
	}

	response, err := a.model.GenerateContent(ctx, content,
		llms.WithTemperature(temperature),
		llms.WithMaxTokens(maxTokens),
	)
	if err != nil {
		return classifyFailure(err)
	}
	if len(response.Choices) == 0 || response.Choices[0].Content == "" {
		return failure(models.FailureService, "Error: OpenAI API error - empty response")
	}

	return models.AnalysisResult{Text: strings.TrimSpace(response.Choices[0].Content)}
}

// classifyFailure sorts a completion error into the small failure taxonomy.
// The client library surfaces HTTP failures as opaque errors, so matching
// is on status codes and provider phrases embedded in the error text.
func classifyFailure(err error) models.AnalysisResult {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "401") ||
		strings.Contains(msg, "invalid api key") ||
		strings.Contains(msg, "incorrect api key") ||
		strings.Contains(msg, "authentication"):
		return failure(models.FailureAuth, "Error: Invalid OpenAI API key. Please check your configuration.")
	case strings.Contains(msg, "429") ||
		strings.Contains(msg, "rate limit") ||
		strings.Contains(msg, "quota"):
		return failure(models.FailureQuota, "Error: OpenAI rate limit exceeded. Please try again later or check your account balance.")
	default:
		return failure(models.FailureService, fmt.Sprintf("Error: OpenAI API error - %v", err))
	}
}

func failure(kind models.FailureKind, message string) models.AnalysisResult {
	return models.AnalysisResult{
		Failure: &models.CallFailure{Kind: kind, Message: message},
	}
}
