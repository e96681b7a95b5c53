package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// CreateParams carries the row values for a new appointment. Scheduled time
// starts equal to the requested time until the hospital confirms or moves it.
type CreateParams struct {
	ID                uuid.UUID
	PatientID         uuid.UUID
	DoctorID          *uuid.UUID
	HospitalID        uuid.UUID
	RequestedDateTime time.Time
	Notes             *string
}

// Repository defines the persistence interface for appointments.
type Repository interface {
	Create(ctx context.Context, p CreateParams) error
	// GetForPatient loads one appointment scoped to its patient.
	GetForPatient(ctx context.Context, id, patientID uuid.UUID) (*Appointment, error)
	// ListForPatient returns the patient's appointments, newest requested
	// time first.
	ListForPatient(ctx context.Context, patientID uuid.UUID) ([]Appointment, error)
}

// HospitalDirectory is the slice of the hospital domain booking needs.
type HospitalDirectory interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

// DoctorDirectory answers whether a doctor practices at a hospital.
type DoctorDirectory interface {
	BelongsToHospital(ctx context.Context, doctorID, hospitalID uuid.UUID) (bool, error)
}
