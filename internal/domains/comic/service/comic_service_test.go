package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mangable-backend/internal/domains/comic"
	"mangable-backend/internal/domains/user"
)

// fakeRepo is an in-memory comic.Repository.
type fakeRepo struct {
	records map[uuid.UUID]*comic.Comic
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{records: map[uuid.UUID]*comic.Comic{}}
}

func (r *fakeRepo) Create(_ context.Context, c *comic.Comic) error {
	clone := *c
	r.records[c.ID] = &clone
	return nil
}

func (r *fakeRepo) FindByID(_ context.Context, id uuid.UUID) (*comic.Comic, error) {
	c, ok := r.records[id]
	if !ok {
		return nil, comic.ErrComicNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *fakeRepo) Update(_ context.Context, c *comic.Comic) error {
	if _, ok := r.records[c.ID]; !ok {
		return comic.ErrComicNotFound
	}
	clone := *c
	r.records[c.ID] = &clone
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.records[id]; !ok {
		return comic.ErrComicNotFound
	}
	delete(r.records, id)
	return nil
}

func (r *fakeRepo) Search(_ context.Context, params comic.SearchParams) ([]comic.ListItem, int, error) {
	items := []comic.ListItem{}
	for _, c := range r.records {
		items = append(items, c.ToListItem())
	}
	return items, len(items), nil
}

func testUser(admin bool) *user.User {
	return &user.User{ID: uuid.New(), Username: "tester", IsActive: true, IsAdmin: admin}
}

func strPtr(s string) *string { return &s }

func TestCreateStampsCreator(t *testing.T) {
	repo := newFakeRepo()
	svc := NewComicService(repo)
	principal := testUser(false)

	created, err := svc.Create(context.Background(), principal, comic.CreateComicRequest{Title: "Akira"})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, created.ID)
	require.NotNil(t, created.CreatedBy)
	assert.Equal(t, principal.ID, *created.CreatedBy)
	assert.False(t, created.CreatedAt.IsZero())
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)
}

func TestCreateRejectsInvalid(t *testing.T) {
	svc := NewComicService(newFakeRepo())

	_, err := svc.Create(context.Background(), testUser(false), comic.CreateComicRequest{})
	assert.Error(t, err)
}

func TestUpdatePatchesOnlySuppliedFields(t *testing.T) {
	repo := newFakeRepo()
	svc := NewComicService(repo)
	principal := testUser(false)

	created, err := svc.Create(context.Background(), principal, comic.CreateComicRequest{
		Title:     "Akira",
		Publisher: strPtr("Kodansha"),
		Summary:   strPtr("original"),
	})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), principal, created.ID, comic.UpdateComicRequest{
		Summary: strPtr("rewritten"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Akira", updated.Title)
	require.NotNil(t, updated.Publisher)
	assert.Equal(t, "Kodansha", *updated.Publisher)
	require.NotNil(t, updated.Summary)
	assert.Equal(t, "rewritten", *updated.Summary)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt) || updated.UpdatedAt.Equal(created.UpdatedAt))
}

func TestUpdateMissingRecordIsNotFound(t *testing.T) {
	svc := NewComicService(newFakeRepo())

	// A missing record reports not-found even to a non-owner, never
	// forbidden.
	_, err := svc.Update(context.Background(), testUser(false), uuid.New(), comic.UpdateComicRequest{
		Summary: strPtr("x"),
	})
	assert.ErrorIs(t, err, comic.ErrComicNotFound)
}

func TestUpdateOwnership(t *testing.T) {
	repo := newFakeRepo()
	svc := NewComicService(repo)
	creator := testUser(false)
	stranger := testUser(false)
	admin := testUser(true)

	created, err := svc.Create(context.Background(), creator, comic.CreateComicRequest{Title: "Akira"})
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), stranger, created.ID, comic.UpdateComicRequest{Summary: strPtr("x")})
	assert.ErrorIs(t, err, comic.ErrForbidden)

	_, err = svc.Update(context.Background(), admin, created.ID, comic.UpdateComicRequest{Summary: strPtr("by admin")})
	assert.NoError(t, err)

	_, err = svc.Update(context.Background(), creator, created.ID, comic.UpdateComicRequest{Summary: strPtr("by creator")})
	assert.NoError(t, err)
}

func TestDeleteOwnership(t *testing.T) {
	repo := newFakeRepo()
	svc := NewComicService(repo)
	creator := testUser(false)
	stranger := testUser(false)

	created, err := svc.Create(context.Background(), creator, comic.CreateComicRequest{Title: "Akira"})
	require.NoError(t, err)

	err = svc.Delete(context.Background(), stranger, created.ID)
	assert.ErrorIs(t, err, comic.ErrForbidden)

	err = svc.Delete(context.Background(), creator, created.ID)
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), created.ID)
	assert.ErrorIs(t, err, comic.ErrComicNotFound)
}

func TestSearchAppliesDefaults(t *testing.T) {
	repo := newFakeRepo()
	svc := NewComicService(repo)

	_, err := svc.Create(context.Background(), testUser(false), comic.CreateComicRequest{Title: "Akira"})
	require.NoError(t, err)

	page, err := svc.Search(context.Background(), comic.SearchParams{})
	require.NoError(t, err)

	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 20, page.PageSize)
	assert.Equal(t, 1, page.Total)
	assert.Len(t, page.Results, 1)
}

func TestSearchRejectsUnknownSortField(t *testing.T) {
	svc := NewComicService(newFakeRepo())

	_, err := svc.Search(context.Background(), comic.SearchParams{SortBy: "key_hash"})
	assert.Error(t, err)
}

func TestExportComicInfo(t *testing.T) {
	repo := newFakeRepo()
	svc := NewComicService(repo)

	created, err := svc.Create(context.Background(), testUser(false), comic.CreateComicRequest{
		Title:  "Akira",
		Series: strPtr("Akira"),
	})
	require.NoError(t, err)

	export, err := svc.ExportComicInfo(context.Background(), created.ID)
	require.NoError(t, err)

	assert.Equal(t, "ComicInfo-"+created.ID.String()+".xml", export.Filename)
	assert.True(t, strings.Contains(string(export.XML), "<Title>Akira</Title>"))

	_, err = svc.ExportComicInfo(context.Background(), uuid.New())
	assert.ErrorIs(t, err, comic.ErrComicNotFound)
}

func TestCoverURL(t *testing.T) {
	repo := newFakeRepo()
	svc := NewComicService(repo)
	principal := testUser(false)

	withCover, err := svc.Create(context.Background(), principal, comic.CreateComicRequest{
		Title:    "Akira",
		CoverURL: strPtr("https://covers.example.com/akira.jpg"),
	})
	require.NoError(t, err)

	withoutCover, err := svc.Create(context.Background(), principal, comic.CreateComicRequest{Title: "Domu"})
	require.NoError(t, err)

	url, err := svc.CoverURL(context.Background(), withCover.ID)
	require.NoError(t, err)
	assert.Equal(t, "https://covers.example.com/akira.jpg", url)

	_, err = svc.CoverURL(context.Background(), withoutCover.ID)
	assert.ErrorIs(t, err, comic.ErrNoCover)

	_, err = svc.CoverURL(context.Background(), uuid.New())
	assert.ErrorIs(t, err, comic.ErrComicNotFound)
}

// Guards against the update path resetting record metadata.
func TestUpdateKeepsCreatedAt(t *testing.T) {
	repo := newFakeRepo()
	svc := NewComicService(repo)
	principal := testUser(false)

	created, err := svc.Create(context.Background(), principal, comic.CreateComicRequest{Title: "Akira"})
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	updated, err := svc.Update(context.Background(), principal, created.ID, comic.UpdateComicRequest{
		Summary: strPtr("x"),
	})
	require.NoError(t, err)

	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))
}
