package comic

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the persistence boundary for comic records.
type Repository interface {
	Create(ctx context.Context, c *Comic) error
	FindByID(ctx context.Context, id uuid.UUID) (*Comic, error)
	Update(ctx context.Context, c *Comic) error
	Delete(ctx context.Context, id uuid.UUID) error

	// Search runs the compiled filter/sort/page query and returns the
	// matching page plus the total match count before paging.
	Search(ctx context.Context, params SearchParams) ([]ListItem, int, error)
}
