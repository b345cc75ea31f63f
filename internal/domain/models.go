// Package domain defines the data model for the proxy: the normalized
// GameRecord returned by the upstream metadata provider (IGDB) and the
// persisted cache row. GameRecord and its sub-entities are value objects
// decoded straight from the provider's JSON; only image URLs are rewritten
// before a record leaves the system.
package domain

// NamedRef is a minimal id/name pair used for genres, themes, game modes,
// franchises, collections, keywords, and game engines.
type NamedRef struct {
	ID   int64  `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
}

// Platform is a platform reference with its short label (e.g. "PS5").
type Platform struct {
	ID           int64  `json:"id,omitempty"`
	Name         string `json:"name,omitempty"`
	Abbreviation string `json:"abbreviation,omitempty"`
}

// Company is a nested company entity inside an involved-company link.
type Company struct {
	ID   int64  `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
}

// InvolvedCompany links a game to a company and its role on the title.
type InvolvedCompany struct {
	ID        int64   `json:"id,omitempty"`
	Company   Company `json:"company,omitempty"`
	Developer bool    `json:"developer,omitempty"`
	Publisher bool    `json:"publisher,omitempty"`
}

// Image is a CDN image reference (cover, screenshot, or artwork). URL is the
// only field the proxy mutates: thumbnail variants are upgraded to
// high-resolution ones before caching and before serialization.
type Image struct {
	ID      int64  `json:"id,omitempty"`
	ImageID string `json:"image_id,omitempty"`
	URL     string `json:"url,omitempty"`
	Width   int    `json:"width,omitempty"`
	Height  int    `json:"height,omitempty"`
}

// Video is an external video reference (provider-hosted id).
type Video struct {
	ID      int64  `json:"id,omitempty"`
	Name    string `json:"name,omitempty"`
	VideoID string `json:"video_id,omitempty"`
}

// Website is an external link categorized by the provider.
type Website struct {
	ID       int64  `json:"id,omitempty"`
	Category int    `json:"category,omitempty"`
	URL      string `json:"url,omitempty"`
}

// AgeRating is a rating-board classification (ESRB, PEGI, ...).
type AgeRating struct {
	ID       int64 `json:"id,omitempty"`
	Category int   `json:"category,omitempty"`
	Rating   int   `json:"rating,omitempty"`
}

// RelatedGame is a stub reference to another game (similar games, DLCs,
// expansions). Its cover gets the same URL upgrade as the parent record.
// Full details are fetched on demand via the "id:<n>" lookup form.
type RelatedGame struct {
	ID               int64   `json:"id,omitempty"`
	Name             string  `json:"name,omitempty"`
	Cover            *Image  `json:"cover,omitempty"`
	Rating           float64 `json:"rating,omitempty"`
	FirstReleaseDate int64   `json:"first_release_date,omitempty"`
}

// GameRecord is the normalized game metadata entity returned by the proxy.
// Field names mirror the provider's wire format so responses stay compatible
// with what clients of the upstream API already expect.
type GameRecord struct {
	ID               int64   `json:"id"`
	Name             string  `json:"name,omitempty"`
	Summary          string  `json:"summary,omitempty"`
	Storyline        string  `json:"storyline,omitempty"`
	Rating           float64 `json:"rating,omitempty"`
	AggregatedRating float64 `json:"aggregated_rating,omitempty"`
	TotalRating      float64 `json:"total_rating,omitempty"`
	RatingCount      int     `json:"rating_count,omitempty"`
	Hypes            int     `json:"hypes,omitempty"`
	FirstReleaseDate int64   `json:"first_release_date,omitempty"`
	Category         int     `json:"category,omitempty"`
	Status           int     `json:"status,omitempty"`

	Genres             []NamedRef        `json:"genres,omitempty"`
	Platforms          []Platform        `json:"platforms,omitempty"`
	Themes             []NamedRef        `json:"themes,omitempty"`
	GameModes          []NamedRef        `json:"game_modes,omitempty"`
	PlayerPerspectives []NamedRef        `json:"player_perspectives,omitempty"`
	InvolvedCompanies  []InvolvedCompany `json:"involved_companies,omitempty"`
	Cover              *Image            `json:"cover,omitempty"`
	Screenshots        []Image           `json:"screenshots,omitempty"`
	Artworks           []Image           `json:"artworks,omitempty"`
	Videos             []Video           `json:"videos,omitempty"`
	SimilarGames       []RelatedGame     `json:"similar_games,omitempty"`
	Websites           []Website         `json:"websites,omitempty"`
	AgeRatings         []AgeRating       `json:"age_ratings,omitempty"`
	Franchises         []NamedRef        `json:"franchises,omitempty"`
	Collections        []NamedRef        `json:"collections,omitempty"`
	DLCs               []RelatedGame     `json:"dlcs,omitempty"`
	Expansions         []RelatedGame     `json:"expansions,omitempty"`
	GameEngines        []NamedRef        `json:"game_engines,omitempty"`
	Keywords           []NamedRef        `json:"keywords,omitempty"`
}
