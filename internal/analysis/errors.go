package analysis

import "fmt"

// AnalysisErrorKind classifies an analysis failure.
type AnalysisErrorKind string

const (
	// ErrQuotaExceeded means the provider returned HTTP 429.
	ErrQuotaExceeded AnalysisErrorKind = "quota_exceeded"
	// ErrProviderError covers any other non-success provider status.
	ErrProviderError AnalysisErrorKind = "provider_error"
	// ErrBadEnvelope means the provider response envelope was missing or malformed.
	ErrBadEnvelope AnalysisErrorKind = "bad_envelope"
	// ErrUnparseableResponse means the model text was not valid JSON.
	ErrUnparseableResponse AnalysisErrorKind = "unparseable_response"
)

// AnalysisError is the single error type Analyze fails with. All kinds are
// recoverable; the user may simply retry.
type AnalysisError struct {
	Kind    AnalysisErrorKind
	Status  int
	Message string
	Err     error
}

func (e *AnalysisError) Error() string {
	switch e.Kind {
	case ErrQuotaExceeded:
		return "API quota exceeded. Please check your API quota or try again later."
	case ErrProviderError:
		if e.Message != "" {
			return fmt.Sprintf("API error: %d - %s", e.Status, e.Message)
		}
		if e.Status == 0 && e.Err != nil {
			return fmt.Sprintf("API request failed: %v", e.Err)
		}
		return fmt.Sprintf("API error: %d", e.Status)
	case ErrBadEnvelope:
		return "invalid response envelope from the model API"
	case ErrUnparseableResponse:
		return "invalid response format from AI"
	default:
		return string(e.Kind)
	}
}

func (e *AnalysisError) Unwrap() error {
	return e.Err
}

// EnrichmentError records a failed per-token price lookup. It is never
// surfaced to the user; Analyze keeps it inspectable on the result only.
type EnrichmentError struct {
	Symbol string
	Err    error
}

func (e *EnrichmentError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("enrichment failed for %s: %v", e.Symbol, e.Err)
	}
	return fmt.Sprintf("enrichment failed for %s", e.Symbol)
}

func (e *EnrichmentError) Unwrap() error {
	return e.Err
}
