package comic

import (
	"context"

	"github.com/google/uuid"

	"mangable-backend/internal/domains/user"
)

// ComicInfoExport is the rendered XML document plus its download filename.
type ComicInfoExport struct {
	Filename string
	XML      []byte
}

// Service is the comic catalog use-case boundary. Mutations take the acting
// principal so ownership can be enforced; reads are open to any
// authenticated caller.
type Service interface {
	Create(ctx context.Context, principal *user.User, req CreateComicRequest) (*Comic, error)
	Get(ctx context.Context, id uuid.UUID) (*Comic, error)
	Update(ctx context.Context, principal *user.User, id uuid.UUID, req UpdateComicRequest) (*Comic, error)
	Delete(ctx context.Context, principal *user.User, id uuid.UUID) error

	Search(ctx context.Context, params SearchParams) (*PaginatedComics, error)

	ExportComicInfo(ctx context.Context, id uuid.UUID) (*ComicInfoExport, error)
	CoverURL(ctx context.Context, id uuid.UUID) (string, error)
}
