package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"mangable-backend/internal/domains/comic"
	"mangable-backend/internal/domains/comic/comicinfo"
	"mangable-backend/internal/domains/user"
	"mangable-backend/pkg/logger"
)

// comicService implements comic.Service on top of the repository.
type comicService struct {
	repo comic.Repository
}

func NewComicService(repo comic.Repository) comic.Service {
	return &comicService{repo: repo}
}

func (s *comicService) Create(ctx context.Context, principal *user.User, req comic.CreateComicRequest) (*comic.Comic, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := time.Now()
	c := req.ToComic()
	c.ID = uuid.New()
	c.CreatedBy = &principal.ID
	c.CreatedAt = now
	c.UpdatedAt = now

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}

	logger.Info("Comic created", map[string]interface{}{
		"comic_id": c.ID.String(),
		"user_id":  principal.ID.String(),
	})

	return c, nil
}

func (s *comicService) Get(ctx context.Context, id uuid.UUID) (*comic.Comic, error) {
	return s.repo.FindByID(ctx, id)
}

// Update applies a partial patch. Existence is resolved before ownership so
// a missing record is always a 404, never a 403.
func (s *comicService) Update(ctx context.Context, principal *user.User, id uuid.UUID, req comic.UpdateComicRequest) (*comic.Comic, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !s.canModify(principal, c) {
		return nil, comic.ErrForbidden
	}

	req.ApplyTo(c)
	c.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

func (s *comicService) Delete(ctx context.Context, principal *user.User, id uuid.UUID) error {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if !s.canModify(principal, c) {
		return comic.ErrForbidden
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	logger.Info("Comic deleted", map[string]interface{}{
		"comic_id": id.String(),
		"user_id":  principal.ID.String(),
	})

	return nil
}

func (s *comicService) Search(ctx context.Context, params comic.SearchParams) (*comic.PaginatedComics, error) {
	params.Normalize()
	if err := params.Validate(); err != nil {
		return nil, err
	}

	items, total, err := s.repo.Search(ctx, params)
	if err != nil {
		return nil, err
	}

	return &comic.PaginatedComics{
		Total:    total,
		Page:     params.Page,
		PageSize: params.PageSize,
		Results:  items,
	}, nil
}

func (s *comicService) ExportComicInfo(ctx context.Context, id uuid.UUID) (*comic.ComicInfoExport, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	data, err := comicinfo.Render(c)
	if err != nil {
		return nil, err
	}

	return &comic.ComicInfoExport{
		Filename: comicinfo.Filename(c),
		XML:      data,
	}, nil
}

func (s *comicService) CoverURL(ctx context.Context, id uuid.UUID) (string, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return "", err
	}

	if c.CoverURL == nil || *c.CoverURL == "" {
		return "", comic.ErrNoCover
	}

	return *c.CoverURL, nil
}

// canModify: the creator or any admin may mutate a record.
func (s *comicService) canModify(principal *user.User, c *comic.Comic) bool {
	if principal == nil {
		return false
	}
	return principal.IsAdmin || c.IsCreator(principal.ID)
}
