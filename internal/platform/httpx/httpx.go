// Package httpx provides HTTP response utilities following RFC7807 problem
// details, plus the mapping from reconciliation failures to status codes.
package httpx

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/payrecon/payrecon/internal/recon"
)

// ProblemDetail represents RFC7807 problem details.
type ProblemDetail struct {
	Type   string `json:"type,omitempty"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

// JSON sends a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// Problem sends an RFC7807 problem details response.
func Problem(w http.ResponseWriter, status int, title, detail string) {
	JSON(w, status, ProblemDetail{
		Title:  title,
		Status: status,
		Detail: detail,
	})
}

// RespondError maps reconciliation failures to HTTP responses. Upstream
// failures surface as gateway errors so a client can tell its own bad input
// apart from a provider outage.
func RespondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, recon.ErrInputInvalid):
		Problem(w, http.StatusBadRequest, "Invalid Input", err.Error())
	case errors.Is(err, recon.ErrUpstreamRejected):
		Problem(w, http.StatusBadGateway, "Upstream Rejected", err.Error())
	case errors.Is(err, recon.ErrUpstreamMalformed):
		Problem(w, http.StatusBadGateway, "Upstream Malformed", err.Error())
	case errors.Is(err, recon.ErrUpstreamUnavailable):
		Problem(w, http.StatusServiceUnavailable, "Upstream Unavailable", err.Error())
	default:
		Problem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}
