// Game proxy HTTP handler.
//
// This file exposes the single proxy endpoint:
//   - POST /games   (single search, multi search, criteria listings, by-id)
//
// The handler is transport-thin: it validates configuration and input,
// dispatches to the right service mode, and translates results and typed
// errors into the uniform response envelope. Upstream query failures are
// absorbed into empty results here, and only here, so helper layers keep
// returning real errors and stay testable.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/kpavlou/go-igdb-proxy/internal/domain"
	"github.com/kpavlou/go-igdb-proxy/internal/http/middleware"
	"github.com/kpavlou/go-igdb-proxy/internal/igdb"
	"github.com/kpavlou/go-igdb-proxy/internal/services"
)

//
// Service contract (context-aware)
//

// GameService defines the proxied query operations consumed by the handler.
//
// Implementations must be safe for concurrent use and honor the provided
// context for cancellation and timeouts.
type GameService interface {
	// Lookup resolves a single game by name or "id:<n>", read-through
	// against the result cache. The bool reports a cache hit.
	Lookup(ctx context.Context, name string) (*domain.GameRecord, bool, error)

	// MultiSearch returns autocomplete candidates. Never cached.
	MultiSearch(ctx context.Context, name string) ([]domain.GameRecord, error)

	// ListByCriteria returns a criteria listing. Never cached.
	ListByCriteria(ctx context.Context, queryType string, limit int) ([]domain.GameRecord, error)
}

//
// Handler wiring
//

// Handlers groups the proxy's HTTP endpoints. configured is checked before
// any work per request, so a missing-credentials deployment answers with a
// distinct 503 instead of failing mid-pipeline.
type Handlers struct {
	svc        GameService
	configured func() bool
}

// New constructs a Handlers instance bound to the given service.
func New(svc GameService, configured func() bool) *Handlers {
	return &Handlers{svc: svc, configured: configured}
}

//
// DTOs
//

// GameQueryRequest is the JSON payload accepted by the proxy endpoint.
type GameQueryRequest struct {
	// GameName is the search term. The literal form "id:<digits>" selects a
	// by-id lookup. Required unless QueryType selects a criteria listing.
	GameName string `json:"gameName" example:"The Witcher 3"`
	// SearchMode selects "single" (default, cached) or "multi"
	// (autocomplete, never cached).
	SearchMode string `json:"searchMode" example:"single"`
	// QueryType is "search" (default) or a criteria listing:
	// recent_releases | latest_games | upcoming | top_rated | popular.
	QueryType string `json:"queryType" example:"search"`
	// Limit caps criteria listing sizes (default 10).
	Limit int `json:"limit" example:"10"`
}

// maxBodyEcho caps how much of a malformed body is echoed back in the
// diagnostic message, to avoid log and response bloat.
const maxBodyEcho = 100

//
// Handlers
//

// QueryGames godoc
// @ID          queryGames
// @Summary     Proxy a game metadata query
// @Description Dispatches to single search (cached), multi search, criteria listing, or by-id lookup against IGDB.
// @Tags        Games
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.GameQueryRequest  true  "Query payload"
//
// @Success     200  {object}  handlers.ProxyResponse
// @Failure     400  {object}  handlers.ProxyResponse  "Malformed body or missing gameName"
// @Failure     502  {object}  handlers.ProxyResponse  "Upstream authentication failed"
// @Failure     503  {object}  handlers.ProxyResponse  "IGDB credentials not configured"
// @Router      /games [post]
func (h *Handlers) QueryGames(c *gin.Context) {
	if !h.configured() {
		fail(c, http.StatusServiceUnavailable, ErrCodeNotConfigured, "IGDB credentials are not configured")
		return
	}

	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "unable to read request body")
		return
	}
	var req GameQueryRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest,
			fmt.Sprintf("invalid JSON body: %v (body: %s)", err, truncateBody(raw, maxBodyEcho)))
		return
	}

	ctx := c.Request.Context()

	// Route on two independent signals: a non-"search" queryType selects a
	// criteria listing; otherwise searchMode selects multi or single.
	if qt := strings.TrimSpace(req.QueryType); qt != "" && qt != "search" {
		h.criteriaListing(c, ctx, qt, req.Limit)
		return
	}
	if strings.TrimSpace(req.GameName) == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "gameName is required")
		return
	}
	if strings.EqualFold(strings.TrimSpace(req.SearchMode), "multi") {
		h.multiSearch(c, ctx, req.GameName)
		return
	}
	h.singleLookup(c, ctx, req.GameName)
}

// singleLookup serves the cached single-game path.
func (h *Handlers) singleLookup(c *gin.Context, ctx context.Context, name string) {
	rec, cached, err := h.svc.Lookup(ctx, name)
	if err != nil {
		h.respondQueryError(c, err, false)
		return
	}
	var data any
	if rec != nil {
		data = rec
	}
	ok(c, http.StatusOK, ProxyResponse{Success: true, Data: data, Cached: &cached})
}

// multiSearch serves the autocomplete path.
func (h *Handlers) multiSearch(c *gin.Context, ctx context.Context, name string) {
	recs, err := h.svc.MultiSearch(ctx, name)
	if err != nil {
		h.respondQueryError(c, err, true)
		return
	}
	if recs == nil {
		recs = []domain.GameRecord{}
	}
	ok(c, http.StatusOK, ProxyResponse{Success: true, Data: recs})
}

// criteriaListing serves the release-window/rating listing path.
func (h *Handlers) criteriaListing(c *gin.Context, ctx context.Context, queryType string, limit int) {
	recs, err := h.svc.ListByCriteria(ctx, queryType, limit)
	if err != nil {
		h.respondQueryError(c, err, true)
		return
	}
	if recs == nil {
		recs = []domain.GameRecord{}
	}
	ok(c, http.StatusOK, ProxyResponse{Success: true, Data: recs})
}

// respondQueryError is the single seam where upstream query failures turn
// into empty successes. Validation errors map to 400; OAuth failures map to
// 502 (the one runtime failure that surfaces as an error, since nothing can
// succeed without a token); anything else is a 500.
func (h *Handlers) respondQueryError(c *gin.Context, err error, wantList bool) {
	var authErr *igdb.AuthError
	var queryErr *igdb.QueryError

	switch {
	case errors.Is(err, services.ErrMissingGameName):
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "gameName is required")
	case errors.Is(err, services.ErrUnknownQueryType):
		fail(c, http.StatusBadRequest, ErrCodeBadRequest,
			"queryType must be one of: search, recent_releases, latest_games, upcoming, top_rated, popular")
	case errors.As(err, &authErr):
		fail(c, http.StatusBadGateway, ErrCodeUpstreamAuth, "upstream authentication failed")
	case errors.As(err, &queryErr):
		// A provider hiccup degrades to "nothing found" so a transient
		// outage never breaks the caller's UI.
		middleware.LoggerFrom(c).Warn().Err(err).Msg("upstream query failed, serving empty result")
		if wantList {
			ok(c, http.StatusOK, ProxyResponse{Success: true, Data: []domain.GameRecord{}})
			return
		}
		cached := false
		ok(c, http.StatusOK, ProxyResponse{Success: true, Data: nil, Cached: &cached})
	default:
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
	}
}

// truncateBody renders up to max bytes of a request body for diagnostics.
func truncateBody(b []byte, max int) string {
	if len(b) <= max {
		return string(b)
	}
	return string(b[:max]) + "…"
}
