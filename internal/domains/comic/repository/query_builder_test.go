package repository

import (
	"strings"
	"testing"

	"mangable-backend/internal/domains/comic"
)

func normalized(params comic.SearchParams) comic.SearchParams {
	params.Normalize()
	return params
}

func TestBuildSearchQueryNoFilters(t *testing.T) {
	count, data, args := buildSearchQuery(normalized(comic.SearchParams{}))

	if count != "SELECT COUNT(*) FROM comics" {
		t.Errorf("count query = %q", count)
	}
	if len(args) != 0 {
		t.Errorf("args = %v, want empty", args)
	}
	if !strings.Contains(data, "ORDER BY title ASC, id ASC") {
		t.Errorf("data query missing default order: %q", data)
	}
	if !strings.Contains(data, "LIMIT $1 OFFSET $2") {
		t.Errorf("data query paging placeholders wrong: %q", data)
	}
}

func TestBuildSearchQueryFreeText(t *testing.T) {
	count, data, args := buildSearchQuery(normalized(comic.SearchParams{Q: "akira"}))

	// One bound pattern shared across every searched column.
	if len(args) != 1 {
		t.Fatalf("args = %v, want single pattern", args)
	}
	if args[0] != "%akira%" {
		t.Errorf("arg = %v, want %%akira%%", args[0])
	}

	for _, col := range []string{"title", "series", "summary", "writer", "publisher"} {
		want := col + " ILIKE $1"
		if !strings.Contains(count, want) {
			t.Errorf("count query missing %q: %q", want, count)
		}
	}
	if !strings.Contains(data, "LIMIT $2 OFFSET $3") {
		t.Errorf("paging placeholders should follow filter args: %q", data)
	}
}

func TestBuildSearchQueryArgNumbering(t *testing.T) {
	yearFrom, yearTo := 1980, 1995
	params := normalized(comic.SearchParams{
		Q:         "robot",
		Series:    "akira",
		Publisher: "kodansha",
		YearFrom:  &yearFrom,
		YearTo:    &yearTo,
		Language:  "ja",
	})

	count, data, args := buildSearchQuery(params)

	wantArgs := []interface{}{"%robot%", "%akira%", "%kodansha%", 1980, 1995, "ja"}
	if len(args) != len(wantArgs) {
		t.Fatalf("args = %v, want %v", args, wantArgs)
	}
	for i := range wantArgs {
		if args[i] != wantArgs[i] {
			t.Errorf("args[%d] = %v, want %v", i, args[i], wantArgs[i])
		}
	}

	for _, fragment := range []string{
		"series ILIKE $2",
		"publisher ILIKE $3",
		"year >= $4",
		"year <= $5",
		"language_iso = $6",
	} {
		if !strings.Contains(count, fragment) {
			t.Errorf("count query missing %q: %q", fragment, count)
		}
	}
	if !strings.Contains(data, "LIMIT $7 OFFSET $8") {
		t.Errorf("paging placeholders wrong: %q", data)
	}
}

func TestBuildSearchQueryExactFilters(t *testing.T) {
	params := normalized(comic.SearchParams{
		Manga:     "Yes",
		AgeRating: "Teen",
	})

	count, _, args := buildSearchQuery(params)

	if !strings.Contains(count, "manga = $1") {
		t.Errorf("count query missing manga filter: %q", count)
	}
	if !strings.Contains(count, "age_rating = $2") {
		t.Errorf("count query missing age_rating filter: %q", count)
	}
	if len(args) != 2 || args[0] != "Yes" || args[1] != "Teen" {
		t.Errorf("args = %v", args)
	}
}

func TestBuildSearchQuerySortWithTiebreak(t *testing.T) {
	tests := []struct {
		name      string
		sortBy    string
		sortOrder string
		want      string
	}{
		{"year descending", "year", "desc", "ORDER BY year DESC, id DESC"},
		{"rating ascending", "community_rating", "asc", "ORDER BY community_rating ASC, id ASC"},
		{"created descending", "created_at", "desc", "ORDER BY created_at DESC, id DESC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := normalized(comic.SearchParams{SortBy: tt.sortBy, SortOrder: tt.sortOrder})
			_, data, _ := buildSearchQuery(params)

			if !strings.Contains(data, tt.want) {
				t.Errorf("data query = %q, want order clause %q", data, tt.want)
			}
		})
	}
}

func TestOffsetMath(t *testing.T) {
	params := normalized(comic.SearchParams{Page: 2, PageSize: 20})
	if got := params.Offset(); got != 20 {
		t.Errorf("Offset() = %d, want 20", got)
	}

	params = normalized(comic.SearchParams{Page: 5, PageSize: 50})
	if got := params.Offset(); got != 200 {
		t.Errorf("Offset() = %d, want 200", got)
	}

	params = normalized(comic.SearchParams{})
	if got := params.Offset(); got != 0 {
		t.Errorf("Offset() = %d, want 0 for first page", got)
	}
}
