package comic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchParamsNormalizeDefaults(t *testing.T) {
	p := SearchParams{}
	p.Normalize()

	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 20, p.PageSize)
	assert.Equal(t, "title", p.SortBy)
	assert.Equal(t, "asc", p.SortOrder)
}

func TestSearchParamsNormalizeKeepsExplicit(t *testing.T) {
	p := SearchParams{Page: 3, PageSize: 50, SortBy: "year", SortOrder: "desc"}
	p.Normalize()

	assert.Equal(t, 3, p.Page)
	assert.Equal(t, 50, p.PageSize)
	assert.Equal(t, "year", p.SortBy)
	assert.Equal(t, "desc", p.SortOrder)
}

func TestSearchParamsValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*SearchParams)
		wantErr bool
	}{
		{"defaults", func(p *SearchParams) {}, false},
		{"page zero", func(p *SearchParams) { p.Page = -1 }, true},
		{"page size over cap", func(p *SearchParams) { p.PageSize = 101 }, true},
		{"page size at cap", func(p *SearchParams) { p.PageSize = 100 }, false},
		{"unknown sort field", func(p *SearchParams) { p.SortBy = "password_hash" }, true},
		{"unknown sort order", func(p *SearchParams) { p.SortOrder = "sideways" }, true},
		{"valid sort", func(p *SearchParams) { p.SortBy = "community_rating"; p.SortOrder = "desc" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := SearchParams{}
			p.Normalize()
			tt.mutate(&p)

			err := p.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCreateComicRequestValidate(t *testing.T) {
	year := 1700
	rating := 5.5

	req := CreateComicRequest{Title: "Akira"}
	assert.NoError(t, req.Validate())

	req = CreateComicRequest{}
	assert.Error(t, req.Validate(), "title is required")

	req = CreateComicRequest{Title: "Akira", Year: &year}
	assert.Error(t, req.Validate(), "year below range")

	req = CreateComicRequest{Title: "Akira", CommunityRating: &rating}
	assert.Error(t, req.Validate(), "rating above range")
}

func TestUpdateApplyToMergesOnlyPresentFields(t *testing.T) {
	summary := "original summary"
	publisher := "Kodansha"
	existing := &Comic{
		Title:     "Akira",
		Summary:   &summary,
		Publisher: &publisher,
	}

	newSummary := "updated summary"
	patch := UpdateComicRequest{Summary: &newSummary}
	patch.ApplyTo(existing)

	assert.Equal(t, "Akira", existing.Title)
	require.NotNil(t, existing.Summary)
	assert.Equal(t, "updated summary", *existing.Summary)
	require.NotNil(t, existing.Publisher)
	assert.Equal(t, "Kodansha", *existing.Publisher)
}

func TestUpdateApplyToAllFields(t *testing.T) {
	existing := &Comic{Title: "Old"}

	title := "New"
	year := 1988
	bw := true
	rating := 4.2
	patch := UpdateComicRequest{
		Title:           &title,
		Year:            &year,
		IsBW:            &bw,
		CommunityRating: &rating,
	}
	patch.ApplyTo(existing)

	assert.Equal(t, "New", existing.Title)
	require.NotNil(t, existing.Year)
	assert.Equal(t, 1988, *existing.Year)
	require.NotNil(t, existing.IsBW)
	assert.True(t, *existing.IsBW)
	require.NotNil(t, existing.CommunityRating)
	assert.Equal(t, 4.2, *existing.CommunityRating)
}
