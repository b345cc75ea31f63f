package igdb

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
)

// fullFields is the field set for single-result and by-id lookups: the whole
// normalized record, including the heavy sub-entity joins.
const fullFields = "fields id,name,summary,storyline,rating,aggregated_rating," +
	"total_rating,rating_count,hypes,first_release_date,category,status," +
	"genres.name,platforms.name,platforms.abbreviation,themes.name," +
	"game_modes.name,player_perspectives.name," +
	"involved_companies.company.name,involved_companies.developer,involved_companies.publisher," +
	"cover.url,cover.image_id,cover.width,cover.height," +
	"screenshots.url,screenshots.image_id,artworks.url,artworks.image_id," +
	"videos.name,videos.video_id," +
	"similar_games.name,similar_games.cover.url,similar_games.rating,similar_games.first_release_date," +
	"websites.url,websites.category,age_ratings.category,age_ratings.rating," +
	"franchises.name,collections.name," +
	"dlcs.name,dlcs.cover.url,expansions.name,expansions.cover.url," +
	"game_engines.name,keywords.name"

// compactFields is the reduced field set for autocomplete multi search:
// no screenshots, artworks, or videos, trading completeness for latency.
const compactFields = "fields id,name,summary,rating,total_rating,rating_count," +
	"first_release_date,category,genres.name,platforms.abbreviation," +
	"cover.url,cover.image_id"

const (
	singleSearchLimit = 5
	multiSearchLimit  = 8

	day  = 24 * time.Hour
	year = 365 * day
)

// Criteria selects a release-window/rating listing instead of a name search.
type Criteria string

const (
	CriteriaRecentReleases Criteria = "recent_releases"
	CriteriaLatestGames    Criteria = "latest_games"
	CriteriaUpcoming       Criteria = "upcoming"
	CriteriaTopRated       Criteria = "top_rated"
	CriteriaPopular        Criteria = "popular"
)

// Valid reports whether c is a known criteria value.
func (c Criteria) Valid() bool {
	switch c {
	case CriteriaRecentReleases, CriteriaLatestGames, CriteriaUpcoming,
		CriteriaTopRated, CriteriaPopular:
		return true
	}
	return false
}

// searchEscaper escapes backslashes and double quotes inside a quoted
// APIcalypse search term.
var searchEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// QueryBuilder assembles APIcalypse query bodies. Now and Offset are seams:
// production uses the wall clock and a random 0-19 offset (so repeated
// criteria refreshes surface varied results instead of an identical top-N);
// tests freeze both.
type QueryBuilder struct {
	Now    func() time.Time
	Offset func() int
}

// NewQueryBuilder returns a builder with the production clock and offset.
func NewQueryBuilder() *QueryBuilder {
	return &QueryBuilder{
		Now:    time.Now,
		Offset: func() int { return rand.Intn(20) },
	}
}

// SingleSearch builds the query for a single-result name lookup. The provider
// ranks by relevance; the proxy trusts that ranking and takes the first of up
// to five candidates.
func (b *QueryBuilder) SingleSearch(name string) string {
	return fmt.Sprintf("%s; search \"%s\"; limit %d;", fullFields, searchEscaper.Replace(name), singleSearchLimit)
}

// MultiSearch builds the autocomplete query: same shape as SingleSearch but
// with a reduced field set and a larger candidate count.
func (b *QueryBuilder) MultiSearch(name string) string {
	return fmt.Sprintf("%s; search \"%s\"; limit %d;", compactFields, searchEscaper.Replace(name), multiSearchLimit)
}

// ByID builds the query for an exact id lookup, used when a request key has
// the "id:<n>" shape (fetching full detail on an already-referenced game).
func (b *QueryBuilder) ByID(id int64) string {
	return fmt.Sprintf("%s; where id = %d; limit 1;", fullFields, id)
}

// CriteriaListing builds a where-clause listing for cr using the builder's
// clock. Every listing is restricted to main games (category = 0).
func (b *QueryBuilder) CriteriaListing(cr Criteria, limit int) string {
	now := b.Now().Unix()
	var where, sort string

	switch cr {
	case CriteriaRecentReleases:
		// Released in the last 30 days.
		where = fmt.Sprintf("first_release_date >= %d & first_release_date <= %d",
			now-int64((30*day).Seconds()), now)
		sort = "sort first_release_date desc;"
	case CriteriaLatestGames:
		// Last 60 days with a minimum rating-count floor to skip shovelware.
		where = fmt.Sprintf("first_release_date >= %d & first_release_date <= %d & rating_count >= 5",
			now-int64((60*day).Seconds()), now)
		sort = "sort first_release_date desc;"
	case CriteriaUpcoming:
		// Releasing within the next 90 days with a minimum hype floor.
		where = fmt.Sprintf("first_release_date >= %d & first_release_date <= %d & hypes >= 5",
			now, now+int64((90*day).Seconds()))
		sort = "sort hypes desc;"
	case CriteriaTopRated:
		// Released within the last year, rating >= 80, rating_count >= 10.
		where = fmt.Sprintf("first_release_date >= %d & first_release_date <= %d & rating >= 80 & rating_count >= 10",
			now-int64(year.Seconds()), now)
		sort = "sort rating desc;"
	case CriteriaPopular:
		// Released within the last two years, rating >= 75, rating_count >= 20.
		where = fmt.Sprintf("first_release_date >= %d & first_release_date <= %d & rating >= 75 & rating_count >= 20",
			now-int64((2*year).Seconds()), now)
		sort = "sort rating_count desc;"
	default:
		// Callers validate first; an unknown criteria falls back to recent.
		return b.CriteriaListing(CriteriaRecentReleases, limit)
	}

	return fmt.Sprintf("%s; where %s & category = 0; %s limit %d; offset %d;",
		fullFields, where, sort, limit, b.Offset())
}
