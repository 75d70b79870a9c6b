package pipeline

import "fmt"

// ExtractionErrorKind classifies content extraction failures.
type ExtractionErrorKind string

const (
	ExtractUnreachable ExtractionErrorKind = "unreachable"
	ExtractBlocked     ExtractionErrorKind = "blocked"
	ExtractEmpty       ExtractionErrorKind = "empty"
)

// ExtractionError reports a failed scrape. It is never fatal to a run; the
// orchestrator substitutes placeholder content and continues.
type ExtractionError struct {
	Kind  ExtractionErrorKind
	URL   string
	Cause error
}

func (e *ExtractionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("extract %s: %s: %v", e.URL, e.Kind, e.Cause)
	}
	return fmt.Sprintf("extract %s: %s", e.URL, e.Kind)
}

func (e *ExtractionError) Unwrap() error { return e.Cause }

// AnalysisErrorKind classifies opportunity analysis failures.
type AnalysisErrorKind string

const (
	AnalysisInsufficientContent AnalysisErrorKind = "insufficient_content"
	AnalysisMalformedOutput     AnalysisErrorKind = "malformed_output"
)

// AnalysisError reports a failed analysis. Never fatal to a run; the
// orchestrator substitutes the generic opportunity set.
type AnalysisError struct {
	Kind  AnalysisErrorKind
	Cause error
}

func (e *AnalysisError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("analyze: %s: %v", e.Kind, e.Cause)
	}
	return fmt.Sprintf("analyze: %s", e.Kind)
}

func (e *AnalysisError) Unwrap() error { return e.Cause }

// RequestErrorKind classifies structurally invalid inbound requests.
type RequestErrorKind string

const (
	RequestInvalidURL   RequestErrorKind = "invalid_url"
	RequestMissingField RequestErrorKind = "missing_field"
)

// RequestError is the only caller-fatal error class. The API layer maps it
// to a non-200 response; every other failure degrades into the voice summary.
type RequestError struct {
	Kind    RequestErrorKind
	Message string
}

func (e *RequestError) Error() string { return e.Message }
