package comic

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// Domain bounds for the numeric metadata fields.
const (
	MinYear   = 1800
	MaxYear   = 2100
	MinRating = 0.0
	MaxRating = 5.0
)

// ========================================
// CREATE / UPDATE DTOs
// ========================================

// CreateComicRequest carries the full attribute set; only title is required.
type CreateComicRequest struct {
	Title           string  `json:"title" binding:"required"`
	Series          *string `json:"series,omitempty"`
	AlternateSeries *string `json:"alternate_series,omitempty"`
	Number          *string `json:"number,omitempty"`
	Count           *int    `json:"count,omitempty"`
	Volume          *int    `json:"volume,omitempty"`
	AlternateNumber *string `json:"alternate_number,omitempty"`
	AlternateCount  *int    `json:"alternate_count,omitempty"`
	Summary         *string `json:"summary,omitempty"`
	Notes           *string `json:"notes,omitempty"`
	Year            *int    `json:"year,omitempty"`
	Month           *int    `json:"month,omitempty"`
	Day             *int    `json:"day,omitempty"`
	Publisher       *string `json:"publisher,omitempty"`
	Imprint         *string `json:"imprint,omitempty"`
	Writer          *string `json:"writer,omitempty"`
	Penciller       *string `json:"penciller,omitempty"`
	Inker           *string `json:"inker,omitempty"`
	Colorist        *string `json:"colorist,omitempty"`
	Letterer        *string `json:"letterer,omitempty"`
	CoverArtist     *string `json:"cover_artist,omitempty"`
	Editor          *string `json:"editor,omitempty"`
	Translator      *string `json:"translator,omitempty"`
	Genre           *string `json:"genre,omitempty"`
	Tags            *string `json:"tags,omitempty"`
	Web             *string `json:"web,omitempty"`
	AgeRating       *string `json:"age_rating,omitempty"`
	LanguageISO     *string `json:"language_iso,omitempty"`
	Format          *string `json:"format,omitempty"`
	IsBW            *bool   `json:"is_bw,omitempty"`
	Manga           *string `json:"manga,omitempty"`
	CommunityRating *float64 `json:"community_rating,omitempty"`
	Review          *string  `json:"review,omitempty"`
	PageCount       *int     `json:"page_count,omitempty"`
	CoverURL        *string  `json:"cover_url,omitempty"`
	ISBN            *string  `json:"isbn,omitempty"`
	Barcode         *string  `json:"barcode,omitempty"`
	SeriesGroup     *string  `json:"series_group,omitempty"`
}

func (r CreateComicRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.Length(1, 500),
		),
		validation.Field(&r.Series, validation.Length(0, 500)),
		validation.Field(&r.Publisher, validation.Length(0, 255)),
		validation.Field(&r.LanguageISO, validation.Length(0, 10)),
		validation.Field(&r.CoverURL, validation.Length(0, 1000)),
		validation.Field(&r.Year, validation.Min(MinYear), validation.Max(MaxYear)),
		validation.Field(&r.Month, validation.Min(1), validation.Max(12)),
		validation.Field(&r.Day, validation.Min(1), validation.Max(31)),
		validation.Field(&r.CommunityRating, validation.Min(MinRating), validation.Max(MaxRating)),
		validation.Field(&r.PageCount, validation.Min(0)),
	)
}

// ToComic builds a new entity from the request. ID, creator and timestamps
// are stamped by the service.
func (r CreateComicRequest) ToComic() *Comic {
	return &Comic{
		Title:           r.Title,
		Series:          r.Series,
		AlternateSeries: r.AlternateSeries,
		Number:          r.Number,
		Count:           r.Count,
		Volume:          r.Volume,
		AlternateNumber: r.AlternateNumber,
		AlternateCount:  r.AlternateCount,
		Summary:         r.Summary,
		Notes:           r.Notes,
		Year:            r.Year,
		Month:           r.Month,
		Day:             r.Day,
		Publisher:       r.Publisher,
		Imprint:         r.Imprint,
		Writer:          r.Writer,
		Penciller:       r.Penciller,
		Inker:           r.Inker,
		Colorist:        r.Colorist,
		Letterer:        r.Letterer,
		CoverArtist:     r.CoverArtist,
		Editor:          r.Editor,
		Translator:      r.Translator,
		Genre:           r.Genre,
		Tags:            r.Tags,
		Web:             r.Web,
		AgeRating:       r.AgeRating,
		LanguageISO:     r.LanguageISO,
		Format:          r.Format,
		IsBW:            r.IsBW,
		Manga:           r.Manga,
		CommunityRating: r.CommunityRating,
		Review:          r.Review,
		PageCount:       r.PageCount,
		CoverURL:        r.CoverURL,
		ISBN:            r.ISBN,
		Barcode:         r.Barcode,
		SeriesGroup:     r.SeriesGroup,
	}
}

// UpdateComicRequest implements PATCH semantics: every field is optional and
// only fields present in the request are applied. Omission leaves a field
// untouched; there is no way to clear a field back to NULL.
type UpdateComicRequest struct {
	Title           *string `json:"title,omitempty"`
	Series          *string `json:"series,omitempty"`
	AlternateSeries *string `json:"alternate_series,omitempty"`
	Number          *string `json:"number,omitempty"`
	Count           *int    `json:"count,omitempty"`
	Volume          *int    `json:"volume,omitempty"`
	AlternateNumber *string `json:"alternate_number,omitempty"`
	AlternateCount  *int    `json:"alternate_count,omitempty"`
	Summary         *string `json:"summary,omitempty"`
	Notes           *string `json:"notes,omitempty"`
	Year            *int    `json:"year,omitempty"`
	Month           *int    `json:"month,omitempty"`
	Day             *int    `json:"day,omitempty"`
	Publisher       *string `json:"publisher,omitempty"`
	Imprint         *string `json:"imprint,omitempty"`
	Writer          *string `json:"writer,omitempty"`
	Penciller       *string `json:"penciller,omitempty"`
	Inker           *string `json:"inker,omitempty"`
	Colorist        *string `json:"colorist,omitempty"`
	Letterer        *string `json:"letterer,omitempty"`
	CoverArtist     *string `json:"cover_artist,omitempty"`
	Editor          *string `json:"editor,omitempty"`
	Translator      *string `json:"translator,omitempty"`
	Genre           *string `json:"genre,omitempty"`
	Tags            *string `json:"tags,omitempty"`
	Web             *string `json:"web,omitempty"`
	AgeRating       *string `json:"age_rating,omitempty"`
	LanguageISO     *string `json:"language_iso,omitempty"`
	Format          *string `json:"format,omitempty"`
	IsBW            *bool   `json:"is_bw,omitempty"`
	Manga           *string `json:"manga,omitempty"`
	CommunityRating *float64 `json:"community_rating,omitempty"`
	Review          *string  `json:"review,omitempty"`
	PageCount       *int     `json:"page_count,omitempty"`
	CoverURL        *string  `json:"cover_url,omitempty"`
	ISBN            *string  `json:"isbn,omitempty"`
	Barcode         *string  `json:"barcode,omitempty"`
	SeriesGroup     *string  `json:"series_group,omitempty"`
}

func (r UpdateComicRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Length(1, 500)),
		validation.Field(&r.Series, validation.Length(0, 500)),
		validation.Field(&r.Publisher, validation.Length(0, 255)),
		validation.Field(&r.LanguageISO, validation.Length(0, 10)),
		validation.Field(&r.CoverURL, validation.Length(0, 1000)),
		validation.Field(&r.Year, validation.Min(MinYear), validation.Max(MaxYear)),
		validation.Field(&r.Month, validation.Min(1), validation.Max(12)),
		validation.Field(&r.Day, validation.Min(1), validation.Max(31)),
		validation.Field(&r.CommunityRating, validation.Min(MinRating), validation.Max(MaxRating)),
		validation.Field(&r.PageCount, validation.Min(0)),
	)
}

// ApplyTo merges the supplied fields into an existing record, field by
// field. An explicit merge keeps field names compile-checked; no reflection.
func (r UpdateComicRequest) ApplyTo(c *Comic) {
	if r.Title != nil {
		c.Title = *r.Title
	}
	if r.Series != nil {
		c.Series = r.Series
	}
	if r.AlternateSeries != nil {
		c.AlternateSeries = r.AlternateSeries
	}
	if r.Number != nil {
		c.Number = r.Number
	}
	if r.Count != nil {
		c.Count = r.Count
	}
	if r.Volume != nil {
		c.Volume = r.Volume
	}
	if r.AlternateNumber != nil {
		c.AlternateNumber = r.AlternateNumber
	}
	if r.AlternateCount != nil {
		c.AlternateCount = r.AlternateCount
	}
	if r.Summary != nil {
		c.Summary = r.Summary
	}
	if r.Notes != nil {
		c.Notes = r.Notes
	}
	if r.Year != nil {
		c.Year = r.Year
	}
	if r.Month != nil {
		c.Month = r.Month
	}
	if r.Day != nil {
		c.Day = r.Day
	}
	if r.Publisher != nil {
		c.Publisher = r.Publisher
	}
	if r.Imprint != nil {
		c.Imprint = r.Imprint
	}
	if r.Writer != nil {
		c.Writer = r.Writer
	}
	if r.Penciller != nil {
		c.Penciller = r.Penciller
	}
	if r.Inker != nil {
		c.Inker = r.Inker
	}
	if r.Colorist != nil {
		c.Colorist = r.Colorist
	}
	if r.Letterer != nil {
		c.Letterer = r.Letterer
	}
	if r.CoverArtist != nil {
		c.CoverArtist = r.CoverArtist
	}
	if r.Editor != nil {
		c.Editor = r.Editor
	}
	if r.Translator != nil {
		c.Translator = r.Translator
	}
	if r.Genre != nil {
		c.Genre = r.Genre
	}
	if r.Tags != nil {
		c.Tags = r.Tags
	}
	if r.Web != nil {
		c.Web = r.Web
	}
	if r.AgeRating != nil {
		c.AgeRating = r.AgeRating
	}
	if r.LanguageISO != nil {
		c.LanguageISO = r.LanguageISO
	}
	if r.Format != nil {
		c.Format = r.Format
	}
	if r.IsBW != nil {
		c.IsBW = r.IsBW
	}
	if r.Manga != nil {
		c.Manga = r.Manga
	}
	if r.CommunityRating != nil {
		c.CommunityRating = r.CommunityRating
	}
	if r.Review != nil {
		c.Review = r.Review
	}
	if r.PageCount != nil {
		c.PageCount = r.PageCount
	}
	if r.CoverURL != nil {
		c.CoverURL = r.CoverURL
	}
	if r.ISBN != nil {
		c.ISBN = r.ISBN
	}
	if r.Barcode != nil {
		c.Barcode = r.Barcode
	}
	if r.SeriesGroup != nil {
		c.SeriesGroup = r.SeriesGroup
	}
}

// ========================================
// LIST / SEARCH DTOs
// ========================================

// ListItem is the slim projection returned by list/search.
type ListItem struct {
	ID              uuid.UUID `json:"id"`
	Title           string    `json:"title"`
	Series          *string   `json:"series"`
	Number          *string   `json:"number"`
	Year            *int      `json:"year"`
	Publisher       *string   `json:"publisher"`
	CoverURL        *string   `json:"cover_url"`
	CommunityRating *float64  `json:"community_rating"`
}

// PaginatedComics is the list response envelope.
type PaginatedComics struct {
	Total    int        `json:"total"`
	Page     int        `json:"page"`
	PageSize int        `json:"page_size"`
	Results  []ListItem `json:"results"`
}

// Sort whitelist. Anything else is rejected at validation time, before the
// query compiler ever sees it.
var (
	SortFields = []interface{}{"title", "year", "publisher", "community_rating", "created_at"}
	SortOrders = []interface{}{"asc", "desc"}
)

// SearchParams is the structured filter+sort+page request. All filters are
// optional and AND-ed together when present.
type SearchParams struct {
	Q         string `form:"q"`
	Series    string `form:"series"`
	Publisher string `form:"publisher"`
	Writer    string `form:"writer"`
	Genre     string `form:"genre"`
	YearFrom  *int   `form:"year_from"`
	YearTo    *int   `form:"year_to"`
	Language  string `form:"language"`
	Manga     string `form:"manga"`
	AgeRating string `form:"age_rating"`

	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	SortBy   string `form:"sort_by"`
	SortOrder string `form:"sort_order"`
}

// Normalize fills in the defaults for zero-valued paging/sort fields.
func (p *SearchParams) Normalize() {
	if p.Page == 0 {
		p.Page = 1
	}
	if p.PageSize == 0 {
		p.PageSize = 20
	}
	if p.SortBy == "" {
		p.SortBy = "title"
	}
	if p.SortOrder == "" {
		p.SortOrder = "asc"
	}
}

func (p SearchParams) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Page, validation.Min(1)),
		validation.Field(&p.PageSize, validation.Min(1), validation.Max(100)),
		validation.Field(&p.SortBy, validation.In(SortFields...)),
		validation.Field(&p.SortOrder, validation.In(SortOrders...)),
		validation.Field(&p.YearFrom, validation.Min(MinYear), validation.Max(MaxYear)),
		validation.Field(&p.YearTo, validation.Min(MinYear), validation.Max(MaxYear)),
	)
}

// Offset converts 1-indexed paging into a row offset.
func (p SearchParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}
