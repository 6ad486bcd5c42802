package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"mangable-backend/internal/domains/comic"
)

const comicColumns = `id, title, series, alternate_series, number, count, volume,
	alternate_number, alternate_count, summary, notes, year, month, day,
	publisher, imprint, writer, penciller, inker, colorist, letterer,
	cover_artist, editor, translator, genre, tags, web, age_rating,
	language_iso, format, is_bw, manga, community_rating, review, page_count,
	cover_url, isbn, barcode, series_group, created_by, created_at, updated_at`

// postgresRepository is the concrete pgx implementation of comic.Repository.
type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) comic.Repository {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) Create(ctx context.Context, c *comic.Comic) error {
	query := `
		INSERT INTO comics (
			id, title, series, alternate_series, number, count, volume,
			alternate_number, alternate_count, summary, notes, year, month, day,
			publisher, imprint, writer, penciller, inker, colorist, letterer,
			cover_artist, editor, translator, genre, tags, web, age_rating,
			language_iso, format, is_bw, manga, community_rating, review,
			page_count, cover_url, isbn, barcode, series_group,
			created_by, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
			$15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27,
			$28, $29, $30, $31, $32, $33, $34, $35, $36, $37, $38, $39,
			$40, $41, $42
		)
	`

	_, err := r.pool.Exec(ctx, query, r.writeArgs(c)...)
	if err != nil {
		return fmt.Errorf("create comic: %w", err)
	}

	return nil
}

func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*comic.Comic, error) {
	var c comic.Comic
	query := `SELECT ` + comicColumns + ` FROM comics WHERE id = $1`

	err := r.pool.QueryRow(ctx, query, id).Scan(r.scanTargets(&c)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, comic.ErrComicNotFound
		}
		return nil, fmt.Errorf("find comic: %w", err)
	}

	return &c, nil
}

func (r *postgresRepository) Update(ctx context.Context, c *comic.Comic) error {
	query := `
		UPDATE comics SET
			title = $2, series = $3, alternate_series = $4, number = $5,
			count = $6, volume = $7, alternate_number = $8, alternate_count = $9,
			summary = $10, notes = $11, year = $12, month = $13, day = $14,
			publisher = $15, imprint = $16, writer = $17, penciller = $18,
			inker = $19, colorist = $20, letterer = $21, cover_artist = $22,
			editor = $23, translator = $24, genre = $25, tags = $26, web = $27,
			age_rating = $28, language_iso = $29, format = $30, is_bw = $31,
			manga = $32, community_rating = $33, review = $34, page_count = $35,
			cover_url = $36, isbn = $37, barcode = $38, series_group = $39,
			updated_at = $40
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		c.ID,
		c.Title, c.Series, c.AlternateSeries, c.Number,
		c.Count, c.Volume, c.AlternateNumber, c.AlternateCount,
		c.Summary, c.Notes, c.Year, c.Month, c.Day,
		c.Publisher, c.Imprint, c.Writer, c.Penciller,
		c.Inker, c.Colorist, c.Letterer, c.CoverArtist,
		c.Editor, c.Translator, c.Genre, c.Tags, c.Web,
		c.AgeRating, c.LanguageISO, c.Format, c.IsBW,
		c.Manga, c.CommunityRating, c.Review, c.PageCount,
		c.CoverURL, c.ISBN, c.Barcode, c.SeriesGroup,
		c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update comic: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return comic.ErrComicNotFound
	}

	return nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM comics WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete comic: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return comic.ErrComicNotFound
	}

	return nil
}

// Search runs the compiled count + data queries. Total is counted before
// paging so callers can render page controls.
func (r *postgresRepository) Search(ctx context.Context, params comic.SearchParams) ([]comic.ListItem, int, error) {
	countQuery, dataQuery, args := buildSearchQuery(params)

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count comics: %w", err)
	}

	rows, err := r.pool.Query(ctx, dataQuery, append(args, params.PageSize, params.Offset())...)
	if err != nil {
		return nil, 0, fmt.Errorf("search comics: %w", err)
	}
	defer rows.Close()

	items := []comic.ListItem{}
	for rows.Next() {
		var item comic.ListItem
		err := rows.Scan(
			&item.ID,
			&item.Title,
			&item.Series,
			&item.Number,
			&item.Year,
			&item.Publisher,
			&item.CoverURL,
			&item.CommunityRating,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("scan comic row: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate comics: %w", err)
	}

	return items, total, nil
}

// writeArgs returns the INSERT argument list in comicColumns order.
func (r *postgresRepository) writeArgs(c *comic.Comic) []interface{} {
	return []interface{}{
		c.ID, c.Title, c.Series, c.AlternateSeries, c.Number, c.Count, c.Volume,
		c.AlternateNumber, c.AlternateCount, c.Summary, c.Notes, c.Year, c.Month, c.Day,
		c.Publisher, c.Imprint, c.Writer, c.Penciller, c.Inker, c.Colorist, c.Letterer,
		c.CoverArtist, c.Editor, c.Translator, c.Genre, c.Tags, c.Web, c.AgeRating,
		c.LanguageISO, c.Format, c.IsBW, c.Manga, c.CommunityRating, c.Review, c.PageCount,
		c.CoverURL, c.ISBN, c.Barcode, c.SeriesGroup, c.CreatedBy, c.CreatedAt, c.UpdatedAt,
	}
}

// scanTargets returns pointers in comicColumns order.
func (r *postgresRepository) scanTargets(c *comic.Comic) []interface{} {
	return []interface{}{
		&c.ID, &c.Title, &c.Series, &c.AlternateSeries, &c.Number, &c.Count, &c.Volume,
		&c.AlternateNumber, &c.AlternateCount, &c.Summary, &c.Notes, &c.Year, &c.Month, &c.Day,
		&c.Publisher, &c.Imprint, &c.Writer, &c.Penciller, &c.Inker, &c.Colorist, &c.Letterer,
		&c.CoverArtist, &c.Editor, &c.Translator, &c.Genre, &c.Tags, &c.Web, &c.AgeRating,
		&c.LanguageISO, &c.Format, &c.IsBW, &c.Manga, &c.CommunityRating, &c.Review, &c.PageCount,
		&c.CoverURL, &c.ISBN, &c.Barcode, &c.SeriesGroup, &c.CreatedBy, &c.CreatedAt, &c.UpdatedAt,
	}
}
