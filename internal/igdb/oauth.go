package igdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/kpavlou/go-igdb-proxy/internal/config"
)

// OAuthClient performs the client-credentials grant against the Twitch
// identity provider and produces AccessTokens for the TokenStore.
type OAuthClient struct {
	HTTPClient   *http.Client
	TokenURL     string
	ClientID     string
	ClientSecret string
	Timeout      time.Duration

	now func() time.Time
}

// NewOAuthClient builds an OAuthClient from the upstream configuration.
func NewOAuthClient(cfg config.IGDBConfig) *OAuthClient {
	return &OAuthClient{
		HTTPClient:   &http.Client{},
		TokenURL:     cfg.TokenURL,
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Timeout:      cfg.OAuthTimeout,
		now:          time.Now,
	}
}

// tokenResponse is the identity provider's token payload.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"` // seconds
	TokenType   string `json:"token_type"`
}

// Exchange issues the client-credentials POST and returns the issued token
// with its computed expiry. Every failure mode (missing credentials, network
// error, timeout, non-2xx, bad payload) is reported as an *AuthError.
func (c *OAuthClient) Exchange(ctx context.Context) (*AccessToken, error) {
	if strings.TrimSpace(c.ClientID) == "" || strings.TrimSpace(c.ClientSecret) == "" {
		return nil, &AuthError{Err: ErrMissingCredentials}
	}

	ctx, cancel := context.WithTimeout(ctx, c.Timeout)
	defer cancel()

	form := url.Values{
		"client_id":     {c.ClientID},
		"client_secret": {c.ClientSecret},
		"grant_type":    {"client_credentials"},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, &AuthError{Err: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, &AuthError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Drain so the connection can be reused; the body is not useful.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))
		return nil, &AuthError{Status: resp.StatusCode, Err: fmt.Errorf("token endpoint returned %s", resp.Status)}
	}

	var tr tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return nil, &AuthError{Err: fmt.Errorf("decode token response: %w", err)}
	}
	if tr.AccessToken == "" {
		return nil, &AuthError{Err: fmt.Errorf("token response missing access_token")}
	}

	return &AccessToken{
		Value:     tr.AccessToken,
		ExpiresAt: c.now().Add(time.Duration(tr.ExpiresIn) * time.Second),
	}, nil
}
