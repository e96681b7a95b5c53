package appointment

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/chikitsa/chikitsa/internal/platform/db"
	"github.com/chikitsa/chikitsa/internal/platform/httperr"
)

// bookedMessage acknowledges a new booking.
const bookedMessage = "Appointment requested successfully. The hospital will confirm your appointment."

type Service struct {
	appointments Repository
	hospitals    HospitalDirectory
	doctors      DoctorDirectory
}

func NewService(appointments Repository, hospitals HospitalDirectory, doctors DoctorDirectory) *Service {
	return &Service{appointments: appointments, hospitals: hospitals, doctors: doctors}
}

// BookInput carries a booking request. DoctorID is optional; a doctor not
// practicing at the chosen hospital is silently dropped and the booking
// becomes a general appointment.
type BookInput struct {
	HospitalID        uuid.UUID
	DoctorID          *uuid.UUID
	RequestedDateTime time.Time
	Notes             *string
}

// BookResult is the created appointment plus the acknowledgement message.
type BookResult struct {
	Appointment *Appointment `json:"appointment"`
	Message     string       `json:"message"`
}

func (s *Service) Book(ctx context.Context, patientID uuid.UUID, in BookInput) (*BookResult, error) {
	if in.RequestedDateTime.IsZero() {
		return nil, httperr.Validation("requested date/time is required")
	}

	exists, err := s.hospitals.Exists(ctx, in.HospitalID)
	if err != nil {
		return nil, storeErr(err, "check hospital")
	}
	if !exists {
		return nil, httperr.NotFound("hospital not found")
	}

	var doctorID *uuid.UUID
	if in.DoctorID != nil {
		ok, err := s.doctors.BelongsToHospital(ctx, *in.DoctorID, in.HospitalID)
		if err != nil {
			return nil, storeErr(err, "check doctor")
		}
		if ok {
			doctorID = in.DoctorID
		}
	}

	id := uuid.New()
	err = s.appointments.Create(ctx, CreateParams{
		ID:                id,
		PatientID:         patientID,
		DoctorID:          doctorID,
		HospitalID:        in.HospitalID,
		RequestedDateTime: in.RequestedDateTime,
		Notes:             in.Notes,
	})
	if err != nil {
		return nil, storeErr(err, "create appointment")
	}

	created, err := s.Get(ctx, id, patientID)
	if err != nil {
		return nil, err
	}
	return &BookResult{Appointment: created, Message: bookedMessage}, nil
}

// List returns the caller's appointments, newest requested time first.
func (s *Service) List(ctx context.Context, patientID uuid.UUID) ([]Appointment, error) {
	appointments, err := s.appointments.ListForPatient(ctx, patientID)
	if err != nil {
		return nil, storeErr(err, "list appointments")
	}
	return appointments, nil
}

// Get loads one appointment scoped to the caller. Another patient's
// appointment id is indistinguishable from a missing one.
func (s *Service) Get(ctx context.Context, id, patientID uuid.UUID) (*Appointment, error) {
	a, err := s.appointments.GetForPatient(ctx, id, patientID)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, httperr.NotFound("appointment not found")
		}
		return nil, storeErr(err, "load appointment")
	}
	return a, nil
}

func storeErr(err error, op string) error {
	if db.IsUnavailable(err) {
		return httperr.Unavailable("database unavailable")
	}
	return fmt.Errorf("%s: %w", op, err)
}
