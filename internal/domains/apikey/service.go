package apikey

import (
	"context"

	"github.com/google/uuid"
)

// Service is the business-logic contract for the API key domain.
type Service interface {
	Create(ctx context.Context, userID uuid.UUID, req CreateKeyRequest) (*CreatedKeyDTO, error)
	List(ctx context.Context, userID uuid.UUID) ([]ApiKeyDTO, error)
	Revoke(ctx context.Context, id, userID uuid.UUID) error
}
