package prescription

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the persistence interface for prescriptions and the
// medicine orders raised from them.
type Repository interface {
	// ListForPatient returns the patient's prescriptions, newest first,
	// each with its items and latest order.
	ListForPatient(ctx context.Context, patientID uuid.UUID) ([]Prescription, error)
	// GetForPatient loads one prescription scoped to its patient.
	GetForPatient(ctx context.Context, id, patientID uuid.UUID) (*Prescription, error)
	// OwnedByPatient reports whether the prescription exists and belongs
	// to the patient.
	OwnedByPatient(ctx context.Context, id, patientID uuid.UUID) (bool, error)
	HasOrder(ctx context.Context, prescriptionID uuid.UUID) (bool, error)
	// CreateOrder inserts the order and copies the prescription items as
	// order items with quantity 1, atomically.
	CreateOrder(ctx context.Context, o *Order, patientID, prescriptionID uuid.UUID) error
}

// ContactDirectory resolves the stored delivery defaults for a patient.
type ContactDirectory interface {
	Contact(ctx context.Context, userID uuid.UUID) (addressLine, phone string, err error)
}
