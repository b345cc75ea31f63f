package igdb

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/kpavlou/go-igdb-proxy/internal/config"
	"github.com/kpavlou/go-igdb-proxy/internal/domain"
)

// TokenSource supplies a valid bearer token for upstream queries.
// Implemented by TokenStore; faked in tests.
type TokenSource interface {
	GetValidToken(ctx context.Context) (string, error)
}

// Client sends APIcalypse queries to the IGDB games endpoint. Each query mode
// carries its own timeout budget; a timeout or non-2xx resolves to a typed
// *QueryError, never a panic or hang. The Client is safe for concurrent use.
type Client struct {
	HTTPClient *http.Client
	BaseURL    string
	ClientID   string
	Tokens     TokenSource
	Builder    *QueryBuilder

	SearchTimeout time.Duration
	MultiTimeout  time.Duration
	ListTimeout   time.Duration
}

// NewClient builds a query client from the upstream configuration.
func NewClient(cfg config.IGDBConfig, tokens TokenSource) *Client {
	return &Client{
		HTTPClient:    &http.Client{},
		BaseURL:       cfg.APIURL,
		ClientID:      cfg.ClientID,
		Tokens:        tokens,
		Builder:       NewQueryBuilder(),
		SearchTimeout: cfg.SearchTimeout,
		MultiTimeout:  cfg.MultiTimeout,
		ListTimeout:   cfg.ListTimeout,
	}
}

// SearchOne returns the best candidate for a name search, or nil when the
// provider finds nothing. The provider's relevance ranking is trusted as-is.
func (c *Client) SearchOne(ctx context.Context, name string) (*domain.GameRecord, error) {
	recs, err := c.query(ctx, "single", c.Builder.SingleSearch(name), c.SearchTimeout)
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, nil
	}
	return &recs[0], nil
}

// SearchMulti returns up to eight autocomplete candidates with the reduced
// field set.
func (c *Client) SearchMulti(ctx context.Context, name string) ([]domain.GameRecord, error) {
	return c.query(ctx, "multi", c.Builder.MultiSearch(name), c.MultiTimeout)
}

// GetByID returns the record with the exact id, or nil when it does not exist.
func (c *Client) GetByID(ctx context.Context, id int64) (*domain.GameRecord, error) {
	recs, err := c.query(ctx, "by_id", c.Builder.ByID(id), c.SearchTimeout)
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, nil
	}
	return &recs[0], nil
}

// ListByCriteria returns a criteria listing (recent, upcoming, top rated, ...).
func (c *Client) ListByCriteria(ctx context.Context, cr Criteria, limit int) ([]domain.GameRecord, error) {
	return c.query(ctx, "list", c.Builder.CriteriaListing(cr, limit), c.ListTimeout)
}

// query sends one APIcalypse body to the games endpoint and decodes the
// result array. Token acquisition errors propagate untouched (they are
// *AuthError); everything after that maps to *QueryError.
func (c *Client) query(ctx context.Context, mode, body string, timeout time.Duration) ([]domain.GameRecord, error) {
	tok, err := c.Tokens.GetValidToken(ctx)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/games", strings.NewReader(body))
	if err != nil {
		return nil, &QueryError{Mode: mode, Err: err}
	}
	req.Header.Set("Client-ID", c.ClientID)
	req.Header.Set("Authorization", "Bearer "+tok)
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		upstreamRequests.WithLabelValues(mode, "error").Inc()
		return nil, &QueryError{Mode: mode, Err: err}
	}
	defer resp.Body.Close()

	upstreamRequests.WithLabelValues(mode, strconv.Itoa(resp.StatusCode)).Inc()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Includes 429: rate limiting degrades to "no result" like any other
		// upstream hiccup, with the status recorded for operators.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))
		return nil, &QueryError{Mode: mode, Status: resp.StatusCode}
	}

	var recs []domain.GameRecord
	if err := json.NewDecoder(resp.Body).Decode(&recs); err != nil {
		return nil, &QueryError{Mode: mode, Err: err}
	}
	return recs, nil
}
