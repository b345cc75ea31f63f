// Package repo implements the persistence layer for the result cache,
// backed by GORM. This file provides repository functions for the GameCache
// row: a point lookup filtered on expiry and a write-through upsert.
//
// Error semantics:
//   - A missing or expired row yields ErrNotFound.
//   - Storage failures propagate as raw errors; the service layer decides
//     that cache failures degrade to a miss (the cache is an optimization,
//     never a correctness dependency), so nothing is swallowed here.
package repo

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/kpavlou/go-igdb-proxy/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist or has
// expired. It aliases gorm.ErrRecordNotFound for consistency across layers.
var ErrNotFound = gorm.ErrRecordNotFound

// GetGameCache returns the non-expired cache row for key, or ErrNotFound.
// Expired rows are invisible to readers; they are superseded in place by the
// next upsert rather than evicted by a background job.
func GetGameCache(ctx context.Context, db *gorm.DB, key string, now time.Time) (*domain.GameCache, error) {
	if strings.TrimSpace(key) == "" {
		return nil, ErrNotFound
	}
	var rec domain.GameCache
	err := db.WithContext(ctx).
		Where("key = ? AND expires_at > ?", key, now).
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// UpsertGameCache writes a cache row for key with expiry now+ttl, replacing
// any previous row with the same key. Concurrent writers for the same key
// race to last-write-wins, which is fine: both computed the same upstream
// result within the same TTL window.
func UpsertGameCache(ctx context.Context, db *gorm.DB, key, payload string, igdbID int64, ttl time.Duration) (*domain.GameCache, error) {
	now := time.Now().UTC()
	rec := &domain.GameCache{
		Key:       key,
		Payload:   payload,
		IGDBID:    igdbID,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
	err := db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"payload", "igdb_id", "created_at", "expires_at"}),
		}).
		Create(rec).Error
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// PurgeExpiredGameCache deletes rows whose expiry has passed and reports how
// many were removed. Reads already filter on expiry, so this is housekeeping
// to keep the table small, not a correctness requirement.
func PurgeExpiredGameCache(ctx context.Context, db *gorm.DB, now time.Time) (int64, error) {
	res := db.WithContext(ctx).
		Where("expires_at <= ?", now).
		Delete(&domain.GameCache{})
	return res.RowsAffected, res.Error
}
