package models

// FailureKind classifies a completion-service failure.
type FailureKind int

const (
	FailureConfig FailureKind = iota // missing credential, detected before any network call
	FailureAuth
	FailureQuota
	FailureService
)

// CallFailure describes a classified completion-service failure. Message is
// the human-readable, error-prefixed text that stands in for the analysis.
type CallFailure struct {
	Kind    FailureKind
	Message string
}

// AnalysisResult is the outcome of one completion-service call. A failed
// call carries a Failure instead of raising; one bad clause must never fail
// the whole document.
type AnalysisResult struct {
	Text    string
	Failure *CallFailure
}

// OK reports whether the call succeeded.
func (r AnalysisResult) OK() bool {
	return r.Failure == nil
}

// Message returns the analysis text, or the degraded failure text when the
// call did not succeed. Always safe to place in a response field.
func (r AnalysisResult) Message() string {
	if r.Failure != nil {
		return r.Failure.Message
	}
	return r.Text
}
