package hospital

import (
	"context"

	"github.com/google/uuid"

	"github.com/chikitsa/chikitsa/pkg/pagination"
)

// Repository defines the persistence interface for hospitals.
type Repository interface {
	CreateForUser(ctx context.Context, name string, city *string, createdBy uuid.UUID) (uuid.UUID, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Hospital, error)
	List(ctx context.Context, p pagination.Params) ([]Hospital, int, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}
