package identity

import (
	"context"

	"github.com/google/uuid"
)

// UserRepository defines the persistence interface for user accounts and the
// role side-rows owned by this domain (patients, doctors).
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	EnsurePatient(ctx context.Context, userID uuid.UUID) error
	UpsertDoctor(ctx context.Context, userID uuid.UUID, name string) error
}

// DonorRegistry is the slice of the donor domain registration needs: create
// or refresh the donor profile row for a newly registered donor.
type DonorRegistry interface {
	Upsert(ctx context.Context, donorID uuid.UUID, bloodGroup *string) error
}

// HospitalRegistry creates the (unapproved) hospital row for a hospital
// admin registration.
type HospitalRegistry interface {
	CreateForUser(ctx context.Context, name string, city *string, createdBy uuid.UUID) (uuid.UUID, error)
}
