package comicinfo

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mangable-backend/internal/domains/comic"
)

func strPtr(s string) *string   { return &s }
func intPtr(n int) *int         { return &n }
func boolPtr(b bool) *bool      { return &b }
func f64Ptr(f float64) *float64 { return &f }

func TestRenderTitleOnly(t *testing.T) {
	c := &comic.Comic{ID: uuid.New(), Title: "Akira"}

	out, err := Render(c)
	require.NoError(t, err)

	s := string(out)
	assert.True(t, strings.HasPrefix(s, `<?xml version="1.0" encoding="UTF-8"?>`))
	assert.Contains(t, s, `xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance"`)
	assert.Contains(t, s, `xmlns:xsd="http://www.w3.org/2001/XMLSchema"`)
	assert.Contains(t, s, "<Title>Akira</Title>")

	// Unset fields are omitted entirely, not emitted empty.
	assert.NotContains(t, s, "<Series>")
	assert.NotContains(t, s, "<Year>")
	assert.NotContains(t, s, "<BlackAndWhite>")
}

func TestRenderFieldOrder(t *testing.T) {
	c := &comic.Comic{
		ID:        uuid.New(),
		Title:     "Akira",
		Series:    strPtr("Akira"),
		Summary:   strPtr("Neo-Tokyo is about to explode."),
		Year:      intPtr(1982),
		Publisher: strPtr("Kodansha"),
		Writer:    strPtr("Katsuhiro Otomo"),
		Genre:     strPtr("Science Fiction"),
		AgeRating: strPtr("Mature"),
		Manga:     strPtr("YesAndRightToLeft"),
		PageCount: intPtr(364),
	}

	out, err := Render(c)
	require.NoError(t, err)

	s := string(out)
	elements := []string{
		"<Title>", "<Series>", "<Summary>", "<Year>", "<Publisher>",
		"<Writer>", "<Genre>", "<AgeRating>", "<Manga>", "<PageCount>",
	}

	last := -1
	for _, el := range elements {
		idx := strings.Index(s, el)
		require.NotEqual(t, -1, idx, "missing element %s", el)
		assert.Greater(t, idx, last, "element %s out of order", el)
		last = idx
	}
}

func TestRenderBlackAndWhite(t *testing.T) {
	c := &comic.Comic{ID: uuid.New(), Title: "A", IsBW: boolPtr(true)}
	out, err := Render(c)
	require.NoError(t, err)
	assert.Contains(t, string(out), "<BlackAndWhite>Yes</BlackAndWhite>")

	c.IsBW = boolPtr(false)
	out, err = Render(c)
	require.NoError(t, err)
	assert.Contains(t, string(out), "<BlackAndWhite>No</BlackAndWhite>")
}

func TestRenderCommunityRating(t *testing.T) {
	c := &comic.Comic{ID: uuid.New(), Title: "A", CommunityRating: f64Ptr(4.5)}

	out, err := Render(c)
	require.NoError(t, err)
	assert.Contains(t, string(out), "<CommunityRating>4.5</CommunityRating>")
}

func TestRenderDeterministic(t *testing.T) {
	c := &comic.Comic{
		ID:     uuid.New(),
		Title:  "Akira",
		Series: strPtr("Akira"),
		Year:   intPtr(1982),
	}

	first, err := Render(c)
	require.NoError(t, err)
	second, err := Render(c)
	require.NoError(t, err)

	assert.True(t, bytes.Equal(first, second))
}

func TestFilename(t *testing.T) {
	id := uuid.MustParse("11111111-2222-3333-4444-555555555555")
	c := &comic.Comic{ID: id, Title: "A"}

	assert.Equal(t, "ComicInfo-11111111-2222-3333-4444-555555555555.xml", Filename(c))
}
