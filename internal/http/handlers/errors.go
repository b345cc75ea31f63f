// Package handlers defines HTTP-layer error codes used across all API endpoints.
//
// Codes are stable, machine-readable strings mapped to HTTP responses via the
// fail() helper in this package. Generic codes mirror common HTTP status
// semantics; domain-specific codes distinguish failure classes operators need
// to tell apart (misconfiguration vs. a transient upstream outage).
package handlers

const (
	ErrCodeBadRequest       = "bad_request"
	ErrCodeNotFound         = "not_found"
	ErrCodeRateLimited      = "too_many_requests"
	ErrCodeInternal         = "internal_error"
	ErrCodeMethodNotAllowed = "method_not_allowed"

	// Domain-specific:

	// ErrCodeNotConfigured signals missing upstream credentials. The casing
	// is part of the public contract consumed by front ends.
	ErrCodeNotConfigured = "IGDB_NOT_CONFIGURED"

	// ErrCodeUpstreamAuth signals a failed OAuth exchange with the identity
	// provider. Unlike query failures, this cannot degrade to an empty
	// result: no lookup can succeed without a token.
	ErrCodeUpstreamAuth = "upstream_auth_failed"
)
