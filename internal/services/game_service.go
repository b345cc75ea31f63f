// Package services – GameService
//
// GameService orchestrates a proxied lookup: normalize the request into a
// cache key, consult the result cache for single-game lookups, acquire a
// token and query upstream on a miss, upgrade image URLs exactly once, and
// write the result back best-effort. Multi search and criteria listings
// bypass the cache entirely: the former is keyed on partial user-typed
// strings, the latter is time-dependent by construction.
package services

import (
	"context"
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/text/cases"
	"gorm.io/gorm"

	"github.com/kpavlou/go-igdb-proxy/internal/domain"
	"github.com/kpavlou/go-igdb-proxy/internal/igdb"
	"github.com/kpavlou/go-igdb-proxy/internal/repo"
	"github.com/kpavlou/go-igdb-proxy/internal/utils"
)

// GameFinder is the upstream query contract required by GameService.
// Implemented by igdb.Client; faked in tests.
type GameFinder interface {
	// SearchOne returns the best candidate for a name, or nil when none.
	SearchOne(ctx context.Context, name string) (*domain.GameRecord, error)

	// SearchMulti returns autocomplete candidates with the reduced field set.
	SearchMulti(ctx context.Context, name string) ([]domain.GameRecord, error)

	// GetByID returns the record with the exact id, or nil when none.
	GetByID(ctx context.Context, id int64) (*domain.GameRecord, error)

	// ListByCriteria returns a release-window/rating listing.
	ListByCriteria(ctx context.Context, cr igdb.Criteria, limit int) ([]domain.GameRecord, error)
}

// CacheRepo is the persistence contract for the result cache.
type CacheRepo interface {
	// Get returns the non-expired row for key, or repo.ErrNotFound.
	Get(ctx context.Context, db *gorm.DB, key string, now time.Time) (*domain.GameCache, error)

	// Upsert writes a row for key with expiry now+ttl.
	Upsert(ctx context.Context, db *gorm.DB, key, payload string, igdbID int64, ttl time.Duration) (*domain.GameCache, error)
}

// GameService provides the three proxied query modes. It is safe for
// concurrent use; the only shared mutable state in the process lives behind
// the token store inside the Finder.
type GameService struct {
	// DB is the GORM handle backing the result cache.
	DB *gorm.DB
	// Cache is the result-cache repository.
	Cache CacheRepo
	// Finder is the upstream query client.
	Finder GameFinder

	// TTL is the result-cache lifetime for single lookups.
	TTL time.Duration
	// Now is the clock, injectable for TTL tests.
	Now func() time.Time

	// DefaultLimit and MaxLimit bound criteria listing sizes.
	DefaultLimit int
	MaxLimit     int
}

// NewGameService constructs a GameService with production defaults.
func NewGameService(db *gorm.DB, cache CacheRepo, finder GameFinder, ttl time.Duration) *GameService {
	return &GameService{
		DB:           db,
		Cache:        cache,
		Finder:       finder,
		TTL:          ttl,
		Now:          time.Now,
		DefaultLimit: 10,
		MaxLimit:     50,
	}
}

// keyFolder performs Unicode case folding for cache keys, so "Ōkami" and
// "ōKAMI" share one cache row.
var keyFolder = cases.Fold()

// idKeyRE matches the literal "id:<digits>" lookup form.
var idKeyRE = regexp.MustCompile(`^id:(\d+)$`)

// NormalizeKey turns a raw game name into the cache key: trimmed and
// case-folded.
func NormalizeKey(name string) string {
	return keyFolder.String(strings.TrimSpace(name))
}

// Lookup resolves a single game by name (or by id for the "id:<n>" form),
// read-through against the cache. The returned bool reports whether the
// result came from the cache. Cache failures on either side are logged and
// degrade to miss/no-op: a broken cache store must never fail a lookup that
// upstream can still answer. A nil record with a nil error means upstream
// found nothing.
func (s *GameService) Lookup(ctx context.Context, name string) (*domain.GameRecord, bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, false, ErrMissingGameName
	}
	key := NormalizeKey(name)

	if rec := s.cacheGet(ctx, key); rec != nil {
		return rec, true, nil
	}

	var (
		g   *domain.GameRecord
		err error
	)
	if m := idKeyRE.FindStringSubmatch(name); m != nil {
		id, _ := strconv.ParseInt(m[1], 10, 64)
		g, err = s.Finder.GetByID(ctx, id)
	} else {
		g, err = s.Finder.SearchOne(ctx, name)
	}
	if err != nil {
		return nil, false, err
	}
	if g == nil {
		return nil, false, nil
	}

	// Upgrade exactly once, before caching, so cached entries are already
	// upgraded and never re-processed.
	igdb.UpgradeImages(g)
	s.cachePut(ctx, key, g)

	return g, false, nil
}

// MultiSearch returns autocomplete candidates. Never cached.
func (s *GameService) MultiSearch(ctx context.Context, name string) ([]domain.GameRecord, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrMissingGameName
	}
	recs, err := s.Finder.SearchMulti(ctx, name)
	if err != nil {
		return nil, err
	}
	igdb.UpgradeAll(recs)
	return recs, nil
}

// ListByCriteria returns a criteria listing for queryType. Never cached.
// The limit is clamped to [1, MaxLimit] with DefaultLimit for zero/negative.
func (s *GameService) ListByCriteria(ctx context.Context, queryType string, limit int) ([]domain.GameRecord, error) {
	cr := igdb.Criteria(strings.TrimSpace(queryType))
	if !cr.Valid() {
		return nil, ErrUnknownQueryType
	}
	if limit <= 0 {
		limit = s.DefaultLimit
	}
	limit = utils.ClampInt(limit, 1, s.MaxLimit)
	recs, err := s.Finder.ListByCriteria(ctx, cr, limit)
	if err != nil {
		return nil, err
	}
	igdb.UpgradeAll(recs)
	return recs, nil
}

// cacheGet returns the cached record for key, or nil on miss, expiry,
// storage failure, or an undecodable payload. Failures are logged and
// absorbed here: this is the documented best-effort boundary for reads.
func (s *GameService) cacheGet(ctx context.Context, key string) *domain.GameRecord {
	hit, err := s.Cache.Get(ctx, s.DB, key, s.Now())
	if err != nil {
		if err != repo.ErrNotFound {
			log.Warn().Err(err).Str("key", key).Msg("cache read failed, treating as miss")
			cacheResults.WithLabelValues("error").Inc()
		} else {
			cacheResults.WithLabelValues("miss").Inc()
		}
		return nil
	}
	var g domain.GameRecord
	if err := json.Unmarshal([]byte(hit.Payload), &g); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache payload undecodable, treating as miss")
		cacheResults.WithLabelValues("error").Inc()
		return nil
	}
	cacheResults.WithLabelValues("hit").Inc()
	return &g
}

// cachePut stores the upgraded record under key, best-effort. The response
// has already been computed; a failed write only costs the next caller an
// upstream query.
func (s *GameService) cachePut(ctx context.Context, key string, g *domain.GameRecord) {
	payload, err := json.Marshal(g)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache payload marshal failed, skipping write")
		return
	}
	if _, err := s.Cache.Upsert(ctx, s.DB, key, string(payload), g.ID, s.TTL); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache write failed, serving uncached")
	}
}
