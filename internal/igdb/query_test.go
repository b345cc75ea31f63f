package igdb

import (
	"fmt"
	"strings"
	"testing"
	"time"
)

func frozenBuilder(at time.Time, offset int) *QueryBuilder {
	return &QueryBuilder{
		Now:    func() time.Time { return at },
		Offset: func() int { return offset },
	}
}

func TestSingleSearch(t *testing.T) {
	b := NewQueryBuilder()
	q := b.SingleSearch("Hollow Knight")

	if !strings.HasPrefix(q, "fields id,name,") {
		t.Errorf("query does not lead with the field list: %q", q)
	}
	if !strings.Contains(q, `search "Hollow Knight";`) {
		t.Errorf("missing search clause: %q", q)
	}
	if !strings.HasSuffix(q, "limit 5;") {
		t.Errorf("missing limit clause: %q", q)
	}
}

func TestSingleSearch_EscapesQuotesAndBackslashes(t *testing.T) {
	b := NewQueryBuilder()
	q := b.SingleSearch(`say "hello" \ goodbye`)

	if !strings.Contains(q, `search "say \"hello\" \\ goodbye";`) {
		t.Errorf("term not escaped: %q", q)
	}
}

func TestMultiSearch(t *testing.T) {
	b := NewQueryBuilder()
	q := b.MultiSearch("zelda")

	if !strings.Contains(q, `search "zelda";`) {
		t.Errorf("missing search clause: %q", q)
	}
	if !strings.HasSuffix(q, "limit 8;") {
		t.Errorf("limit = %q, want 8 candidates", q)
	}
	// The autocomplete field set stays lean.
	for _, heavy := range []string{"screenshots", "artworks", "videos"} {
		if strings.Contains(q, heavy) {
			t.Errorf("multi search should not request %s: %q", heavy, q)
		}
	}
}

func TestByID(t *testing.T) {
	b := NewQueryBuilder()
	q := b.ByID(1942)

	if !strings.Contains(q, "where id = 1942;") {
		t.Errorf("missing where clause: %q", q)
	}
	if !strings.HasSuffix(q, "limit 1;") {
		t.Errorf("by-id lookups must be limit 1: %q", q)
	}
}

func TestCriteriaListing_TopRated(t *testing.T) {
	at := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	b := frozenBuilder(at, 0)

	q := b.CriteriaListing(CriteriaTopRated, 5)

	yearAgo := at.Unix() - int64((365 * 24 * time.Hour).Seconds())
	wantWhere := fmt.Sprintf("where first_release_date >= %d & first_release_date <= %d & rating >= 80 & rating_count >= 10 & category = 0;",
		yearAgo, at.Unix())
	if !strings.Contains(q, wantWhere) {
		t.Errorf("where clause mismatch:\n got  %q\n want substring %q", q, wantWhere)
	}
	if !strings.Contains(q, "sort rating desc;") {
		t.Errorf("missing sort clause: %q", q)
	}
	if !strings.Contains(q, "limit 5;") || !strings.HasSuffix(q, "offset 0;") {
		t.Errorf("limit/offset mismatch: %q", q)
	}
}

func TestCriteriaListing_Windows(t *testing.T) {
	at := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	now := at.Unix()
	daySecs := int64((24 * time.Hour).Seconds())

	cases := []struct {
		cr       Criteria
		wantSub  []string
		wantSort string
	}{
		{
			cr: CriteriaRecentReleases,
			wantSub: []string{
				fmt.Sprintf("first_release_date >= %d", now-30*daySecs),
				fmt.Sprintf("first_release_date <= %d", now),
			},
			wantSort: "sort first_release_date desc;",
		},
		{
			cr: CriteriaLatestGames,
			wantSub: []string{
				fmt.Sprintf("first_release_date >= %d", now-60*daySecs),
				"rating_count >= 5",
			},
			wantSort: "sort first_release_date desc;",
		},
		{
			cr: CriteriaUpcoming,
			wantSub: []string{
				fmt.Sprintf("first_release_date >= %d", now),
				fmt.Sprintf("first_release_date <= %d", now+90*daySecs),
				"hypes >= 5",
			},
			wantSort: "sort hypes desc;",
		},
		{
			cr: CriteriaPopular,
			wantSub: []string{
				fmt.Sprintf("first_release_date >= %d", now-2*365*daySecs),
				"rating >= 75",
				"rating_count >= 20",
			},
			wantSort: "sort rating_count desc;",
		},
	}

	for _, tc := range cases {
		t.Run(string(tc.cr), func(t *testing.T) {
			q := frozenBuilder(at, 3).CriteriaListing(tc.cr, 10)
			for _, sub := range tc.wantSub {
				if !strings.Contains(q, sub) {
					t.Errorf("query missing %q:\n%q", sub, q)
				}
			}
			if !strings.Contains(q, tc.wantSort) {
				t.Errorf("query missing sort %q:\n%q", tc.wantSort, q)
			}
			if !strings.Contains(q, "category = 0") {
				t.Errorf("listing must be restricted to main games: %q", q)
			}
			if !strings.HasSuffix(q, "offset 3;") {
				t.Errorf("offset not applied: %q", q)
			}
		})
	}
}

func TestCriteriaListing_ProductionOffsetRange(t *testing.T) {
	b := NewQueryBuilder()
	for i := 0; i < 100; i++ {
		off := b.Offset()
		if off < 0 || off > 19 {
			t.Fatalf("offset = %d, want in [0,19]", off)
		}
	}
}

func TestCriteriaValid(t *testing.T) {
	for _, cr := range []Criteria{CriteriaRecentReleases, CriteriaLatestGames, CriteriaUpcoming, CriteriaTopRated, CriteriaPopular} {
		if !cr.Valid() {
			t.Errorf("%q should be valid", cr)
		}
	}
	for _, cr := range []Criteria{"", "search", "best_ever"} {
		if cr.Valid() {
			t.Errorf("%q should not be valid", cr)
		}
	}
}
