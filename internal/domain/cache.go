// Package domain defines the core persistence models for the application.
// These types are used by GORM for database schema mapping and are shared
// across the repository and service layers.
package domain

import "time"

// GameCache is a persisted single-lookup result, keyed by the case-folded,
// trimmed game name (or the literal "id:<n>" form for by-id lookups).
// Payload holds the serialized GameRecord with image URLs already upgraded,
// so cached entries are never re-processed on read. Reads filter on
// ExpiresAt; there is no background eviction.
type GameCache struct {
	Key       string    `gorm:"type:TEXT NOT NULL;primaryKey"`
	Payload   string    `gorm:"type:TEXT NOT NULL"`
	IGDBID    int64     `gorm:"column:igdb_id;type:INTEGER NOT NULL;index"`
	CreatedAt time.Time `gorm:"type:DATETIME NOT NULL"`
	ExpiresAt time.Time `gorm:"type:DATETIME NOT NULL;index"`
}

// TableName implements the GORM tabler interface.
func (GameCache) TableName() string { return "game_cache" }
