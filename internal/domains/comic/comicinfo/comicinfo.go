// Package comicinfo renders catalog records as ComicInfo.xml documents, the
// metadata sidecar format understood by most comic readers and library
// managers.
package comicinfo

import (
	"encoding/xml"
	"fmt"

	"mangable-backend/internal/domains/comic"
)

// document mirrors the ComicInfo schema. Field order here IS the element
// order in the output, so keep it aligned with the schema sequence.
type document struct {
	XMLName  xml.Name `xml:"ComicInfo"`
	XSINS    string   `xml:"xmlns:xsi,attr"`
	XSDNS    string   `xml:"xmlns:xsd,attr"`

	Title           string   `xml:"Title"`
	Series          *string  `xml:"Series,omitempty"`
	Number          *string  `xml:"Number,omitempty"`
	Count           *int     `xml:"Count,omitempty"`
	Volume          *int     `xml:"Volume,omitempty"`
	AlternateSeries *string  `xml:"AlternateSeries,omitempty"`
	AlternateNumber *string  `xml:"AlternateNumber,omitempty"`
	AlternateCount  *int     `xml:"AlternateCount,omitempty"`
	SeriesGroup     *string  `xml:"SeriesGroup,omitempty"`
	Summary         *string  `xml:"Summary,omitempty"`
	Notes           *string  `xml:"Notes,omitempty"`
	Year            *int     `xml:"Year,omitempty"`
	Month           *int     `xml:"Month,omitempty"`
	Day             *int     `xml:"Day,omitempty"`
	Publisher       *string  `xml:"Publisher,omitempty"`
	Imprint         *string  `xml:"Imprint,omitempty"`
	Writer          *string  `xml:"Writer,omitempty"`
	Penciller       *string  `xml:"Penciller,omitempty"`
	Inker           *string  `xml:"Inker,omitempty"`
	Colorist        *string  `xml:"Colorist,omitempty"`
	Letterer        *string  `xml:"Letterer,omitempty"`
	CoverArtist     *string  `xml:"CoverArtist,omitempty"`
	Editor          *string  `xml:"Editor,omitempty"`
	Translator      *string  `xml:"Translator,omitempty"`
	Genre           *string  `xml:"Genre,omitempty"`
	Tags            *string  `xml:"Tags,omitempty"`
	Web             *string  `xml:"Web,omitempty"`
	Format          *string  `xml:"Format,omitempty"`
	AgeRating       *string  `xml:"AgeRating,omitempty"`
	LanguageISO     *string  `xml:"LanguageISO,omitempty"`
	Manga           *string  `xml:"Manga,omitempty"`
	BlackAndWhite   *string  `xml:"BlackAndWhite,omitempty"`
	CommunityRating *float64 `xml:"CommunityRating,omitempty"`
	Review          *string  `xml:"Review,omitempty"`
	PageCount       *int     `xml:"PageCount,omitempty"`
	ISBN            *string  `xml:"ISBN,omitempty"`
	Barcode         *string  `xml:"Barcode,omitempty"`
}

// Filename is the attachment name for a rendered export.
func Filename(c *comic.Comic) string {
	return fmt.Sprintf("ComicInfo-%s.xml", c.ID)
}

// Render serializes the record as a pretty-printed ComicInfo document with
// the standard XML declaration. Unset fields are omitted rather than
// emitted empty.
func Render(c *comic.Comic) ([]byte, error) {
	doc := document{
		XSINS: "http://www.w3.org/2001/XMLSchema-instance",
		XSDNS: "http://www.w3.org/2001/XMLSchema",

		Title:           c.Title,
		Series:          c.Series,
		Number:          c.Number,
		Count:           c.Count,
		Volume:          c.Volume,
		AlternateSeries: c.AlternateSeries,
		AlternateNumber: c.AlternateNumber,
		AlternateCount:  c.AlternateCount,
		SeriesGroup:     c.SeriesGroup,
		Summary:         c.Summary,
		Notes:           c.Notes,
		Year:            c.Year,
		Month:           c.Month,
		Day:             c.Day,
		Publisher:       c.Publisher,
		Imprint:         c.Imprint,
		Writer:          c.Writer,
		Penciller:       c.Penciller,
		Inker:           c.Inker,
		Colorist:        c.Colorist,
		Letterer:        c.Letterer,
		CoverArtist:     c.CoverArtist,
		Editor:          c.Editor,
		Translator:      c.Translator,
		Genre:           c.Genre,
		Tags:            c.Tags,
		Web:             c.Web,
		Format:          c.Format,
		AgeRating:       c.AgeRating,
		LanguageISO:     c.LanguageISO,
		Manga:           c.Manga,
		BlackAndWhite:   renderBool(c.IsBW),
		CommunityRating: c.CommunityRating,
		Review:          c.Review,
		PageCount:       c.PageCount,
		ISBN:            c.ISBN,
		Barcode:         c.Barcode,
	}

	body, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal comicinfo: %w", err)
	}

	out := make([]byte, 0, len(xml.Header)+len(body)+1)
	out = append(out, xml.Header...)
	out = append(out, body...)
	out = append(out, '\n')

	return out, nil
}

// renderBool maps the stored flag onto the schema's Yes/No enumeration.
func renderBool(b *bool) *string {
	if b == nil {
		return nil
	}
	s := "No"
	if *b {
		s = "Yes"
	}
	return &s
}
