package igdb

import (
	"regexp"
	"strings"

	"github.com/kpavlou/go-igdb-proxy/internal/domain"
)

// High-resolution CDN variants. The provider returns t_thumb references;
// swapping the size segment is all it takes to get the larger rendition.
const (
	sizeCover      = "t_cover_big"
	sizeScreenshot = "t_screenshot_huge"
	sizeArtwork    = "t_1080p"
)

// sizeSegmentRE matches the size path segment in a CDN image URL,
// e.g. the "/t_thumb/" in ".../igdb/image/upload/t_thumb/co1wyy.jpg".
var sizeSegmentRE = regexp.MustCompile(`/t_[a-z0-9_]+/`)

// upgradeURL rewrites a CDN image URL to the given size variant and pins the
// scheme (the provider emits protocol-relative URLs). Re-applying with the
// same size is a no-op, which keeps the whole upgrade pass idempotent.
func upgradeURL(raw, size string) string {
	if raw == "" {
		return raw
	}
	out := raw
	if strings.HasPrefix(out, "//") {
		out = "https:" + out
	}
	if strings.Contains(out, "/"+size+"/") {
		return out
	}
	return sizeSegmentRE.ReplaceAllString(out, "/"+size+"/")
}

// UpgradeImages rewrites every image URL on the record in place: cover,
// screenshots, artworks, and the covers of similar games, DLCs, and
// expansions. It runs exactly once per record, at the boundary before caching
// and serialization, so no thumbnail URL ever reaches a caller and cached
// entries never need re-processing.
func UpgradeImages(g *domain.GameRecord) {
	if g == nil {
		return
	}
	if g.Cover != nil {
		g.Cover.URL = upgradeURL(g.Cover.URL, sizeCover)
	}
	for i := range g.Screenshots {
		g.Screenshots[i].URL = upgradeURL(g.Screenshots[i].URL, sizeScreenshot)
	}
	for i := range g.Artworks {
		g.Artworks[i].URL = upgradeURL(g.Artworks[i].URL, sizeArtwork)
	}
	upgradeRelated(g.SimilarGames)
	upgradeRelated(g.DLCs)
	upgradeRelated(g.Expansions)
}

// UpgradeAll applies UpgradeImages to every record of a listing.
func UpgradeAll(recs []domain.GameRecord) {
	for i := range recs {
		UpgradeImages(&recs[i])
	}
}

func upgradeRelated(refs []domain.RelatedGame) {
	for i := range refs {
		if refs[i].Cover != nil {
			refs[i].Cover.URL = upgradeURL(refs[i].Cover.URL, sizeCover)
		}
	}
}
