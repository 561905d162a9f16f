package models

// RiskLevel is the coarse risk tier assigned to warranty-related text.
type RiskLevel string

const (
	RiskHigh    RiskLevel = "High"
	RiskMedium  RiskLevel = "Medium"
	RiskLow     RiskLevel = "Low"
	RiskUnknown RiskLevel = "Unknown"
)

// Clause is one segmented unit of document text. Index is the clause's
// position in document order and keys result placement downstream.
type Clause struct {
	Text  string
	Index int
}

// ClauseAnalysisRecord is the per-clause analysis unit returned to callers.
// WarrantyAnalysis is set if and only if HasWarrantyTerms is true; use the
// constructors below rather than building records by hand.
type ClauseAnalysisRecord struct {
	Clause           string `json:"clause"`
	Analysis         string `json:"analysis"`
	HasWarrantyTerms bool   `json:"has_warranty_terms"`
	WarrantyAnalysis string `json:"grantie_analysis,omitempty"`
}

// NewClauseRecord builds a record for a clause without warranty terms.
func NewClauseRecord(clause, analysis string) ClauseAnalysisRecord {
	return ClauseAnalysisRecord{
		Clause:   clause,
		Analysis: analysis,
	}
}

// NewWarrantyClauseRecord builds a record for a warranty-flagged clause.
func NewWarrantyClauseRecord(clause, analysis, warrantyAnalysis string) ClauseAnalysisRecord {
	return ClauseAnalysisRecord{
		Clause:           clause,
		Analysis:         analysis,
		HasWarrantyTerms: true,
		WarrantyAnalysis: warrantyAnalysis,
	}
}

// RiskAssessment summarizes warranty and guarantee presence for a span of
// document text. RiskLevel is Unknown only when the completion service
// failed before an assessment could be made.
type RiskAssessment struct {
	HasWarranties bool      `json:"has_warranties"`
	HasGuarantees bool      `json:"has_guarantees"`
	RiskLevel     RiskLevel `json:"risk_level"`
}

// WarrantyAnalysis is the document-wide warranty section: free-text analysis
// from the completion service plus an independently computed keyword summary.
type WarrantyAnalysis struct {
	Analysis string         `json:"analysis"`
	Summary  RiskAssessment `json:"summary"`
}

// ComplianceReport lists heuristic compliance findings over the
// warranty-flagged clauses of one document. Recomputed fresh per invocation.
type ComplianceReport struct {
	Issues          []string `json:"compliance_issues"`
	Recommendations []string `json:"recommendations"`
	TotalIssues     int      `json:"total_issues"`
}

// DocumentAnalysisResult is the aggregate returned by a full pipeline run.
type DocumentAnalysisResult struct {
	Clauses          []ClauseAnalysisRecord `json:"clauses"`
	WarrantyAnalysis *WarrantyAnalysis      `json:"warranty_analysis,omitempty"`
	Compliance       *ComplianceReport      `json:"compliance,omitempty"`
	Filename         string                 `json:"filename"`
}

// DocumentStats summarizes an analyzed document.
type DocumentStats struct {
	TotalClauses           int     `json:"total_clauses"`
	WarrantyRelatedClauses int     `json:"warranty_related_clauses"`
	WarrantyPercentage     float64 `json:"warranty_percentage"`
}
