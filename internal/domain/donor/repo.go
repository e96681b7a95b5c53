package donor

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the persistence interface for donor profiles.
type Repository interface {
	Upsert(ctx context.Context, donorID uuid.UUID, bloodGroup *string) error
	GetByID(ctx context.Context, id uuid.UUID) (*Donor, error)
	Update(ctx context.Context, d *Donor) error
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	CountAvailable(ctx context.Context) (int, error)
}
