// Package igdb implements the upstream side of the proxy: OAuth token
// acquisition against the Twitch identity provider, the APIcalypse query
// client for the IGDB metadata API, and the image URL upgrader applied to
// every record before it leaves the system.
//
// Error semantics:
//   - AuthError wraps any failure of the client-credentials exchange. It
//     propagates to callers, since no metadata query can succeed without a
//     valid token.
//   - QueryError wraps metadata-query failures (network error, timeout,
//     non-2xx). Callers at the HTTP seam absorb it into an empty result;
//     deeper layers never swallow it so the behavior stays testable and the
//     logging intact.
package igdb

import (
	"errors"
	"fmt"
)

// AuthError indicates that the OAuth client-credentials exchange failed:
// missing credentials, a provider rejection, a timeout, or a network error.
type AuthError struct {
	Status int // HTTP status from the identity provider, 0 when not reached
	Err    error
}

func (e *AuthError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("igdb oauth exchange failed: status %d", e.Status)
	}
	return fmt.Sprintf("igdb oauth exchange failed: %v", e.Err)
}

func (e *AuthError) Unwrap() error { return e.Err }

// QueryError indicates that a metadata query failed, timed out, or returned
// a non-2xx status. Mode identifies the query shape ("single", "multi",
// "list", "by_id") for logs and metrics.
type QueryError struct {
	Mode   string
	Status int // HTTP status from the provider, 0 when not reached
	Err    error
}

func (e *QueryError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("igdb %s query failed: status %d", e.Mode, e.Status)
	}
	return fmt.Sprintf("igdb %s query failed: %v", e.Mode, e.Err)
}

func (e *QueryError) Unwrap() error { return e.Err }

// ErrMissingCredentials is returned by the OAuth client when it is asked to
// exchange without a client id or secret.
var ErrMissingCredentials = errors.New("client id or secret is empty")
