package api

import (
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/okian/crease/internal/adapters/repository"
	service "github.com/okian/crease/internal/app"
	"github.com/okian/crease/internal/domain/reports"
)

// Sentinel kinds for API errors.
var (
	ErrBadRequest       = errors.New("bad request")
	ErrMethodNotAllowed = errors.New("method not allowed")
	ErrRateLimited      = errors.New("rate limit exceeded")
)

// classify maps an error to an HTTP status and a stable error code.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, reports.ErrUnknownReport):
		return http.StatusNotFound, "unknown_report"
	case errors.Is(err, reports.ErrInvalidParams),
		errors.Is(err, service.ErrInvalidQuery),
		errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest, "bad_request"
	case errors.Is(err, repository.ErrNotLoaded):
		return http.StatusServiceUnavailable, "not_loaded"
	case errors.Is(err, ErrMethodNotAllowed):
		return http.StatusMethodNotAllowed, "method_not_allowed"
	case errors.Is(err, ErrRateLimited):
		return http.StatusTooManyRequests, "rate_limited"
	case errors.Is(err, repository.ErrSource), errors.Is(err, repository.ErrMalformed):
		return http.StatusBadGateway, "source_error"
	}
	return http.StatusInternalServerError, "internal_error"
}
