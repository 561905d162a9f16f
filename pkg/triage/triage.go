package triage

import (
	"strings"

	"github.com/legalmind/legalmind/internal/models"
)

// Keyword sets are fixed; matching is case-insensitive substring matching.
// The per-clause triage set and the document-level summary sets are
// intentionally separate signals and are not reconciled.
var (
	warrantyKeywords = []string{"warrant", "guarantee", "assure", "promise", "liability", "disclaim", "as-is"}

	highRiskKeywords   = []string{"disclaim", "as-is", "no warranty", "liability", "limitation"}
	mediumRiskKeywords = []string{"limited warranty", "conditional", "subject to"}

	documentWarrantyKeywords  = []string{"warrant", "warranty", "guaranteed"}
	documentGuaranteeKeywords = []string{"guarantee", "assure", "promise"}
)

// HasWarrantyTerms reports whether a clause contains warranty or guarantee
// terminology. Pure and deterministic; it gates the more expensive
// warranty analysis call, so it must run before any network call.
func HasWarrantyTerms(clause string) bool {
	return containsAny(strings.ToLower(clause), warrantyKeywords)
}

// AssessRisk maps text to a coarse risk tier. High-risk terms are checked
// first and short-circuit; a text carrying both a high-risk and a
// medium-risk term is High.
func AssessRisk(text string) models.RiskLevel {
	lower := strings.ToLower(text)
	if containsAny(lower, highRiskKeywords) {
		return models.RiskHigh
	}
	if containsAny(lower, mediumRiskKeywords) {
		return models.RiskMedium
	}
	return models.RiskLow
}

// DocumentSummary computes the document-wide keyword assessment. It uses
// coarser keyword sets than the per-clause triage because it runs over the
// concatenation of all clause texts rather than a single clause.
func DocumentSummary(text string) models.RiskAssessment {
	lower := strings.ToLower(text)
	return models.RiskAssessment{
		HasWarranties: containsAny(lower, documentWarrantyKeywords),
		HasGuarantees: containsAny(lower, documentGuaranteeKeywords),
		RiskLevel:     AssessRisk(text),
	}
}

func containsAny(lower string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}
