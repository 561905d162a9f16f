package triage

import (
	"context"
	"strings"

	"github.com/legalmind/legalmind/internal/models"
)

// OfflineAnalyzer is the keyword-only fallback used when no completion
// service is configured. Same interface as the service-backed analyzer,
// but every answer is derived locally from keyword rules.
type OfflineAnalyzer struct{}

type clauseRule struct {
	keywords []string
	note     string
}

var clauseRules = []clauseRule{
	{[]string{"shall", "must", "required"}, "This appears to be a mandatory obligation clause."},
	{[]string{"may", "can", "permitted"}, "This clause grants permissions or rights."},
	{[]string{"terminate", "end", "cancel"}, "This relates to termination or cancellation."},
	{[]string{"payment", "pay", "fee", "cost"}, "This clause involves financial obligations."},
	{[]string{"liability", "responsible", "damages"}, "This clause addresses liability and responsibility."},
	{[]string{"confidential", "non-disclosure", "proprietary"}, "This relates to confidentiality and information protection."},
}

var (
	offlineHighRiskTerms   = []string{"penalty", "breach", "default", "liability", "damages", "terminate"}
	offlineMediumRiskTerms = []string{"obligation", "requirement", "must", "shall"}
)

// ExplainClause produces a rule-based plain-language reading of one clause.
func (OfflineAnalyzer) ExplainClause(_ context.Context, clause string) models.AnalysisResult {
	lower := strings.ToLower(clause)

	var b strings.Builder
	b.WriteString("Legal Clause Analysis:\n\n")

	for _, rule := range clauseRules {
		if containsAny(lower, rule.keywords) {
			b.WriteString("- " + rule.note + "\n")
		}
	}

	switch {
	case containsAny(lower, offlineHighRiskTerms):
		b.WriteString("\nHIGH RISK: This clause may have significant consequences if not followed.\n")
	case containsAny(lower, offlineMediumRiskTerms):
		b.WriteString("\nMEDIUM RISK: This clause creates specific obligations.\n")
	default:
		b.WriteString("\nLOW RISK: This appears to be an informational or standard clause.\n")
	}

	b.WriteString("\nRecommendation: Consider consulting with a legal professional for detailed interpretation.")

	return models.AnalysisResult{Text: b.String()}
}

// AnalyzeClauseWarranties produces a rule-based warranty reading of one clause.
func (OfflineAnalyzer) AnalyzeClauseWarranties(_ context.Context, clause string) models.AnalysisResult {
	return models.AnalysisResult{Text: warrantyNotes(clause)}
}

// AnalyzeDocumentWarranties runs the rule-based warranty reading over the
// whole document text and pairs it with the keyword summary.
func (OfflineAnalyzer) AnalyzeDocumentWarranties(_ context.Context, text string) models.WarrantyAnalysis {
	return models.WarrantyAnalysis{
		Analysis: warrantyNotes(text),
		Summary:  DocumentSummary(text),
	}
}

// Summarize produces a keyword-level overview of the full document text.
func (OfflineAnalyzer) Summarize(_ context.Context, text string) models.AnalysisResult {
	lower := strings.ToLower(text)

	var b strings.Builder
	b.WriteString("Document Overview:\n\n")

	matched := false
	for _, rule := range clauseRules {
		if containsAny(lower, rule.keywords) {
			b.WriteString("- " + rule.note + "\n")
			matched = true
		}
	}
	if !matched {
		b.WriteString("- No common contractual patterns detected.\n")
	}

	b.WriteString("\nThis summary is keyword-based. For a plain-language reading, configure the completion service.")

	return models.AnalysisResult{Text: b.String()}
}

func warrantyNotes(text string) string {
	lower := strings.ToLower(text)

	var b strings.Builder
	b.WriteString("Warranty & Guarantee Analysis:\n\n")

	if containsAny(lower, []string{"warrant", "warranty"}) {
		b.WriteString("- WARRANTY FOUND: This text contains warranty terms.\n")
		if strings.Contains(lower, "disclaim") || strings.Contains(lower, "no warranty") {
			b.WriteString("  - Contains warranty disclaimers\n")
			b.WriteString("  - Risk Level: HIGH - Limited protection\n")
		} else {
			b.WriteString("  - Risk Level: MEDIUM - Review warranty scope\n")
		}
	}

	if containsAny(lower, []string{"guarantee", "assure", "promise"}) {
		b.WriteString("- GUARANTEE FOUND: This text contains guarantee terms.\n")
	}

	if containsAny(lower, []string{"as-is", "disclaim", "limitation"}) {
		b.WriteString("- DISCLAIMER FOUND: This text limits liability or warranties.\n")
		b.WriteString("  - Risk Level: HIGH - Reduced legal protection\n")
	}

	if containsAny(lower, []string{"liable", "liability", "responsible"}) {
		b.WriteString("- LIABILITY TERMS: This text addresses responsibility for damages.\n")
	}

	if !containsAny(lower, []string{"warrant", "warranty", "guarantee", "assure", "promise", "disclaim", "liable"}) {
		b.WriteString("- No specific warranty or guarantee terms detected.\n")
	}

	return b.String()
}
