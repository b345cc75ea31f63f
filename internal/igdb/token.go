package igdb

import (
	"context"
	"sync"
	"time"
)

// expiryMargin is subtracted from the provider-declared token lifetime before
// the store considers a token expired, so a token cannot lapse mid-flight
// between the validity check and the upstream call that uses it.
const expiryMargin = 5 * time.Minute

// AccessToken is an OAuth access token with its computed expiry. Tokens are
// immutable once issued; the store replaces them on refresh, never mutates.
type AccessToken struct {
	Value     string
	ExpiresAt time.Time
}

// Exchanger performs the client-credentials exchange against the identity
// provider. Implemented by OAuthClient; faked in tests.
type Exchanger interface {
	Exchange(ctx context.Context) (*AccessToken, error)
}

// refreshCall is a shared in-flight refresh. The first caller that needs a
// fresh token creates one and performs the exchange; concurrent callers wait
// on done and read the shared outcome instead of starting their own exchange.
type refreshCall struct {
	done  chan struct{}
	token string
	err   error
}

// TokenStore holds the current access token for the process and guards
// refreshes with a single-flight handle: exactly one network call per genuine
// refresh need, regardless of how many requests race into it.
//
// The zero value is not usable; construct with NewTokenStore. The store is
// safe for concurrent use. The clock is injectable for expiry tests.
type TokenStore struct {
	mu      sync.Mutex
	token   *AccessToken
	pending *refreshCall

	exchanger Exchanger
	now       func() time.Time
}

// NewTokenStore returns a TokenStore that refreshes through ex.
func NewTokenStore(ex Exchanger) *TokenStore {
	return &TokenStore{exchanger: ex, now: time.Now}
}

// GetValidToken returns a token that is valid for at least the expiry margin.
// A cached token inside its margin is returned without any I/O. Otherwise the
// caller either joins an in-flight refresh or starts one. On exchange failure
// the pending handle is cleared before the error is propagated to all
// waiters, so a later call can retry; a stuck handle would wedge the proxy.
func (s *TokenStore) GetValidToken(ctx context.Context) (string, error) {
	s.mu.Lock()

	if s.token != nil && s.now().Before(s.token.ExpiresAt.Add(-expiryMargin)) {
		v := s.token.Value
		s.mu.Unlock()
		return v, nil
	}

	if call := s.pending; call != nil {
		s.mu.Unlock()
		select {
		case <-call.done:
			return call.token, call.err
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	call := &refreshCall{done: make(chan struct{})}
	s.pending = call
	s.mu.Unlock()

	tok, err := s.exchanger.Exchange(ctx)

	s.mu.Lock()
	if err != nil {
		call.err = err
		tokenRefreshes.WithLabelValues("error").Inc()
	} else {
		s.token = tok
		call.token = tok.Value
		tokenRefreshes.WithLabelValues("ok").Inc()
	}
	s.pending = nil
	s.mu.Unlock()
	close(call.done)

	return call.token, call.err
}
