package comic

import (
	"time"

	"github.com/google/uuid"
)

// Comic is the domain entity, mapped 1:1 to the comics table. The attribute
// set mirrors the ComicInfo schema; title is the only mandatory descriptive
// field, everything else is optional (nil = not set).
type Comic struct {
	ID uuid.UUID `db:"id" json:"id"`

	// Core identification
	Title           string  `db:"title" json:"title"`
	Series          *string `db:"series" json:"series,omitempty"`
	AlternateSeries *string `db:"alternate_series" json:"alternate_series,omitempty"`
	Number          *string `db:"number" json:"number,omitempty"` // issue number
	Count           *int    `db:"count" json:"count,omitempty"`   // total issues
	Volume          *int    `db:"volume" json:"volume,omitempty"`
	AlternateNumber *string `db:"alternate_number" json:"alternate_number,omitempty"`
	AlternateCount  *int    `db:"alternate_count" json:"alternate_count,omitempty"`

	// Publication info
	Summary   *string `db:"summary" json:"summary,omitempty"`
	Notes     *string `db:"notes" json:"notes,omitempty"`
	Year      *int    `db:"year" json:"year,omitempty"`
	Month     *int    `db:"month" json:"month,omitempty"`
	Day       *int    `db:"day" json:"day,omitempty"`
	Publisher *string `db:"publisher" json:"publisher,omitempty"`
	Imprint   *string `db:"imprint" json:"imprint,omitempty"`

	// Creators
	Writer      *string `db:"writer" json:"writer,omitempty"`
	Penciller   *string `db:"penciller" json:"penciller,omitempty"`
	Inker       *string `db:"inker" json:"inker,omitempty"`
	Colorist    *string `db:"colorist" json:"colorist,omitempty"`
	Letterer    *string `db:"letterer" json:"letterer,omitempty"`
	CoverArtist *string `db:"cover_artist" json:"cover_artist,omitempty"`
	Editor      *string `db:"editor" json:"editor,omitempty"`
	Translator  *string `db:"translator" json:"translator,omitempty"`

	// Classification
	Genre       *string `db:"genre" json:"genre,omitempty"`
	Tags        *string `db:"tags" json:"tags,omitempty"`
	Web         *string `db:"web" json:"web,omitempty"`
	AgeRating   *string `db:"age_rating" json:"age_rating,omitempty"`
	LanguageISO *string `db:"language_iso" json:"language_iso,omitempty"`
	Format      *string `db:"format" json:"format,omitempty"`
	IsBW        *bool   `db:"is_bw" json:"is_bw,omitempty"`
	Manga       *string `db:"manga" json:"manga,omitempty"` // Yes/No/YesAndRightToLeft

	// Ratings
	CommunityRating *float64 `db:"community_rating" json:"community_rating,omitempty"`
	Review          *string  `db:"review" json:"review,omitempty"`

	// Page info (metadata only, no content stored)
	PageCount *int `db:"page_count" json:"page_count,omitempty"`

	// Cover (URL reference only, never bytes)
	CoverURL *string `db:"cover_url" json:"cover_url,omitempty"`

	// Identifiers
	ISBN        *string `db:"isbn" json:"isbn,omitempty"`
	Barcode     *string `db:"barcode" json:"barcode,omitempty"`
	SeriesGroup *string `db:"series_group" json:"series_group,omitempty"`

	// Record metadata
	CreatedBy *uuid.UUID `db:"created_by" json:"created_by,omitempty"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt time.Time  `db:"updated_at" json:"updated_at"`
}

// IsCreator reports whether the given user created this record. Records
// whose creator was deleted (created_by nulled) have no creator.
func (c *Comic) IsCreator(userID uuid.UUID) bool {
	return c.CreatedBy != nil && *c.CreatedBy == userID
}

// ToListItem projects the slim shape used by list/search results.
func (c *Comic) ToListItem() ListItem {
	return ListItem{
		ID:              c.ID,
		Title:           c.Title,
		Series:          c.Series,
		Number:          c.Number,
		Year:            c.Year,
		Publisher:       c.Publisher,
		CoverURL:        c.CoverURL,
		CommunityRating: c.CommunityRating,
	}
}
