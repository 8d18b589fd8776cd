package recon

import (
	"errors"
	"fmt"
)

// Failure taxonomy for a reconciliation run. Contract retrieval failures are
// fatal; payment pagination failures degrade to a partial-data warning.
var (
	// ErrInputInvalid indicates missing or malformed run parameters.
	ErrInputInvalid = errors.New("input invalid")
	// ErrUpstreamUnavailable indicates the provider could not be reached.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
	// ErrUpstreamRejected indicates the provider refused the request.
	ErrUpstreamRejected = errors.New("upstream rejected")
	// ErrUpstreamMalformed indicates an unexpected provider response shape.
	ErrUpstreamMalformed = errors.New("upstream response malformed")
)

// PartialError reports that pagination aborted mid-window. The records
// accumulated before the failure are still usable; the run completes with a
// warning instead of failing.
type PartialError struct {
	Offset int
	Err    error
}

func (e *PartialError) Error() string {
	return fmt.Sprintf("pagination aborted at offset %d: %v", e.Offset, e.Err)
}

func (e *PartialError) Unwrap() error { return e.Err }
