package triage

import (
	"strings"

	"github.com/legalmind/legalmind/internal/models"
)

var vagueTerms = []string{"reasonable", "satisfactory", "appropriate"}

var timeTerms = []string{"days", "months", "years", "period"}

// CheckCompliance runs the heuristic compliance pass over the
// warranty-flagged subset of the analyzed clauses. Pure, no network calls.
// Issue and recommendation order follows clause order; the document-level
// consistency recommendation, when present, comes last.
func CheckCompliance(records []models.ClauseAnalysisRecord) models.ComplianceReport {
	issues := make([]string, 0)
	recommendations := make([]string, 0)

	var flagged []models.ClauseAnalysisRecord
	for _, record := range records {
		if record.HasWarrantyTerms {
			flagged = append(flagged, record)
		}
	}

	if len(flagged) == 0 {
		return models.ComplianceReport{
			Issues:          issues,
			Recommendations: []string{"Consider adding clear warranty terms for transparency"},
		}
	}

	for _, record := range flagged {
		text := strings.ToLower(record.Clause)

		if containsAny(text, vagueTerms) {
			issues = append(issues, "Vague warranty terms found - consider more specific language")
		}

		if strings.Contains(text, "disclaim") && !strings.Contains(text, "notice") {
			issues = append(issues, "Warranty disclaimer may lack proper notice requirements")
		}

		if strings.Contains(text, "warranty") && !containsAny(text, timeTerms) {
			recommendations = append(recommendations, "Consider adding specific time limits for warranty coverage")
		}
	}

	if len(flagged) > 3 {
		recommendations = append(recommendations, "Multiple warranty clauses found - ensure consistency across all terms")
	}

	return models.ComplianceReport{
		Issues:          issues,
		Recommendations: recommendations,
		TotalIssues:     len(issues),
	}
}
