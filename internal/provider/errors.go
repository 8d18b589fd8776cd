// Package provider implements the payroll data provider client: typed
// failures, response-shape normalization and offset-based pagination.
package provider

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/payrecon/payrecon/internal/recon"
)

// Typed provider failures. Each wraps the engine-level taxonomy so callers
// can branch on either granularity with errors.Is.
var (
	ErrUnavailable  = errors.New("provider unreachable")
	ErrAccessDenied = errors.New("provider access denied")
	ErrNotFound     = errors.New("provider resource not found")
	ErrRateLimited  = errors.New("provider rate limited")
	ErrMalformed    = errors.New("provider response malformed")
)

// statusError classifies an HTTP status into the failure taxonomy.
func statusError(status int) error {
	switch {
	case status == http.StatusUnauthorized, status == http.StatusForbidden:
		return fmt.Errorf("%w (status %d): %w", ErrAccessDenied, status, recon.ErrUpstreamRejected)
	case status == http.StatusNotFound:
		return fmt.Errorf("%w (status %d): %w", ErrNotFound, status, recon.ErrUpstreamRejected)
	case status == http.StatusTooManyRequests:
		return fmt.Errorf("%w (status %d): %w", ErrRateLimited, status, recon.ErrUpstreamUnavailable)
	default:
		return fmt.Errorf("%w (status %d): %w", ErrUnavailable, status, recon.ErrUpstreamUnavailable)
	}
}

// transportError classifies a network or timeout failure.
func transportError(err error) error {
	return fmt.Errorf("%w: %v: %w", ErrUnavailable, err, recon.ErrUpstreamUnavailable)
}

// malformedError classifies an unexpected response shape.
func malformedError(err error) error {
	return fmt.Errorf("%w: %v: %w", ErrMalformed, err, recon.ErrUpstreamMalformed)
}
