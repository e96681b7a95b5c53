package blood

import (
	"context"

	"github.com/google/uuid"
)

// RequestRepository defines the persistence interface for blood requests.
type RequestRepository interface {
	Create(ctx context.Context, req *Request) error
	// ListActive returns ACTIVE requests with hospital name and responder
	// counts, most urgent first, earliest deadline first within an urgency.
	ListActive(ctx context.Context) ([]Request, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Request, error)
	// GetStatus is the lightweight existence and state check used by the
	// respond path.
	GetStatus(ctx context.Context, id uuid.UUID) (RequestStatus, error)
	// TransitionStatus moves a request from one status to another and
	// reports whether a row actually changed.
	TransitionStatus(ctx context.Context, id uuid.UUID, from, to RequestStatus) (bool, error)
	CountByStatus(ctx context.Context, status RequestStatus) (int, error)
}

// ResponseRepository defines the persistence interface for donor responses.
type ResponseRepository interface {
	Create(ctx context.Context, resp *DonorResponse) error
	Exists(ctx context.Context, requestID, donorID uuid.UUID) (bool, error)
}

// DonorDirectory is the slice of the donor domain the blood service needs:
// eligibility and the availability counter for stats.
type DonorDirectory interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	CountAvailable(ctx context.Context) (int, error)
}

// HospitalDirectory is the slice of the hospital domain the blood service
// needs when creating a request.
type HospitalDirectory interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}
