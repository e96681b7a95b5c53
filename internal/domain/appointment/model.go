package appointment

import (
	"time"

	"github.com/google/uuid"
)

// Status is the appointment lifecycle state. Bookings are created REQUESTED;
// the later states are written by hospital staff workflows.
type Status string

const (
	StatusRequested Status = "REQUESTED"
	StatusConfirmed Status = "CONFIRMED"
	StatusCompleted Status = "COMPLETED"
	StatusCancelled Status = "CANCELLED"
)

// Appointment is the read model: the appointments row plus hospital and
// doctor display names. DoctorID is nil for a general appointment at the
// hospital.
type Appointment struct {
	ID                uuid.UUID  `db:"id" json:"id"`
	PatientID         uuid.UUID  `db:"patient_id" json:"-"`
	RequestedDateTime time.Time  `db:"requested_date_time" json:"requested_date_time"`
	ScheduledDateTime time.Time  `db:"scheduled_date_time" json:"scheduled_date_time"`
	Status            Status     `db:"status" json:"status"`
	Notes             *string    `db:"notes" json:"notes,omitempty"`
	CreatedAt         time.Time  `db:"created_at" json:"created_at"`
	HospitalID        *uuid.UUID `db:"hospital_id" json:"hospital_id,omitempty"`
	HospitalName      *string    `db:"hospital_name" json:"hospital_name,omitempty"`
	DoctorID          *uuid.UUID `db:"doctor_id" json:"doctor_id,omitempty"`
	DoctorName        *string    `db:"doctor_name" json:"doctor_name,omitempty"`
}
