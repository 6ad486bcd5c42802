package repository

import (
	"fmt"
	"strings"

	"mangable-backend/internal/domains/comic"
)

// Maps the public sort field names onto table columns. Only names present
// here ever reach the SQL text; everything else is rejected upstream at
// validation time.
var sortColumns = map[string]string{
	"title":            "title",
	"year":             "year",
	"publisher":        "publisher",
	"community_rating": "community_rating",
	"created_at":       "created_at",
}

// listColumns is the slim projection used by search results.
const listColumns = "id, title, series, number, year, publisher, cover_url, community_rating"

// buildSearchQuery compiles SearchParams into a count query and a data
// query sharing the same WHERE clause. Filter values are always bound as
// placeholders; the only interpolated identifiers come from the sort
// whitelist above.
func buildSearchQuery(params comic.SearchParams) (countQuery string, dataQuery string, args []interface{}) {
	conditions := []string{}
	args = []interface{}{}
	argIndex := 1

	// Free-text: one bound pattern reused across every searched column.
	if params.Q != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(title ILIKE $%d OR series ILIKE $%d OR summary ILIKE $%d OR writer ILIKE $%d OR publisher ILIKE $%d)",
			argIndex, argIndex, argIndex, argIndex, argIndex))
		args = append(args, "%"+params.Q+"%")
		argIndex++
	}

	if params.Series != "" {
		conditions = append(conditions, fmt.Sprintf("series ILIKE $%d", argIndex))
		args = append(args, "%"+params.Series+"%")
		argIndex++
	}

	if params.Publisher != "" {
		conditions = append(conditions, fmt.Sprintf("publisher ILIKE $%d", argIndex))
		args = append(args, "%"+params.Publisher+"%")
		argIndex++
	}

	if params.Writer != "" {
		conditions = append(conditions, fmt.Sprintf("writer ILIKE $%d", argIndex))
		args = append(args, "%"+params.Writer+"%")
		argIndex++
	}

	if params.Genre != "" {
		conditions = append(conditions, fmt.Sprintf("genre ILIKE $%d", argIndex))
		args = append(args, "%"+params.Genre+"%")
		argIndex++
	}

	// Year range, both ends inclusive.
	if params.YearFrom != nil {
		conditions = append(conditions, fmt.Sprintf("year >= $%d", argIndex))
		args = append(args, *params.YearFrom)
		argIndex++
	}

	if params.YearTo != nil {
		conditions = append(conditions, fmt.Sprintf("year <= $%d", argIndex))
		args = append(args, *params.YearTo)
		argIndex++
	}

	// Exact-match filters.
	if params.Language != "" {
		conditions = append(conditions, fmt.Sprintf("language_iso = $%d", argIndex))
		args = append(args, params.Language)
		argIndex++
	}

	if params.Manga != "" {
		conditions = append(conditions, fmt.Sprintf("manga = $%d", argIndex))
		args = append(args, params.Manga)
		argIndex++
	}

	if params.AgeRating != "" {
		conditions = append(conditions, fmt.Sprintf("age_rating = $%d", argIndex))
		args = append(args, params.AgeRating)
		argIndex++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery = strings.TrimSpace(fmt.Sprintf("SELECT COUNT(*) FROM comics %s", whereClause))

	column := sortColumns[params.SortBy]
	direction := "ASC"
	if params.SortOrder == "desc" {
		direction = "DESC"
	}

	// Secondary id key in the same direction keeps page boundaries stable
	// when the primary sort column has duplicates.
	dataQuery = strings.TrimSpace(fmt.Sprintf(
		"SELECT %s FROM comics %s ORDER BY %s %s, id %s LIMIT $%d OFFSET $%d",
		listColumns, whereClause, column, direction, direction, argIndex, argIndex+1))

	return countQuery, dataQuery, args
}
