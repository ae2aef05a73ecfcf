package geocode

import "errors"

// UnsupportedOperationError reports a request the provider can never serve,
// such as an empty query or reverse geocoding. It is not retryable.
type UnsupportedOperationError struct {
	Provider string
	Reason   string
}

func (e *UnsupportedOperationError) Error() string {
	return "The " + e.Provider + " provider " + e.Reason + "."
}

// NoResultReason tells why a provider produced no result.
type NoResultReason string

const (
	// ReasonEmptyResponse means the transport failed or returned no body.
	ReasonEmptyResponse NoResultReason = "empty_response"
	// ReasonMalformedResponse means the body was not valid JSON.
	ReasonMalformedResponse NoResultReason = "malformed_response"
	// ReasonNotFound means the upstream answered but held no usable record.
	ReasonNotFound NoResultReason = "not_found"
)

// NoResultError reports that the upstream call yielded no usable record.
// URL is the exact endpoint that was attempted.
type NoResultError struct {
	URL    string
	Reason NoResultReason
	Err    error
}

func (e *NoResultError) Error() string {
	return "Could not execute query " + e.URL
}

func (e *NoResultError) Unwrap() error {
	return e.Err
}

// IsUnsupportedOperation returns true if err (or any error in its chain) is an
// UnsupportedOperationError.
func IsUnsupportedOperation(err error) bool {
	var ue *UnsupportedOperationError
	return errors.As(err, &ue)
}

// IsNoResult returns true if err (or any error in its chain) is a NoResultError.
func IsNoResult(err error) bool {
	var ne *NoResultError
	return errors.As(err, &ne)
}
