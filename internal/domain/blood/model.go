package blood

import (
	"time"

	"github.com/google/uuid"
)

// Urgency orders requests on the public board. Rank gives the sort key:
// CRITICAL sorts before HIGH before MEDIUM before LOW.
type Urgency string

const (
	UrgencyCritical Urgency = "CRITICAL"
	UrgencyHigh     Urgency = "HIGH"
	UrgencyMedium   Urgency = "MEDIUM"
	UrgencyLow      Urgency = "LOW"
)

// ParseUrgency validates the wire form of an urgency level.
func ParseUrgency(s string) (Urgency, bool) {
	switch Urgency(s) {
	case UrgencyCritical, UrgencyHigh, UrgencyMedium, UrgencyLow:
		return Urgency(s), true
	default:
		return "", false
	}
}

// Rank returns the urgency sort key, 1 (most urgent) through 4.
func (u Urgency) Rank() int {
	switch u {
	case UrgencyCritical:
		return 1
	case UrgencyHigh:
		return 2
	case UrgencyMedium:
		return 3
	default:
		return 4
	}
}

// RequestStatus is the lifecycle state of a blood request. Only ACTIVE
// requests accept responses; FULFILLED and CANCELLED are terminal.
type RequestStatus string

const (
	StatusActive    RequestStatus = "ACTIVE"
	StatusFulfilled RequestStatus = "FULFILLED"
	StatusCancelled RequestStatus = "CANCELLED"
)

// ResponseStatus tracks a donor's response to a request. New responses are
// always INTERESTED; CONFIRMED and CANCELLED are set by hospital follow-up.
type ResponseStatus string

const (
	ResponseInterested ResponseStatus = "INTERESTED"
	ResponseConfirmed  ResponseStatus = "CONFIRMED"
	ResponseCancelled  ResponseStatus = "CANCELLED"
)

// Request is the read model of a blood request: the blood_requests row plus
// the joined hospital display fields and the live count of donor responses.
type Request struct {
	ID                  uuid.UUID     `db:"id" json:"id"`
	PatientNameOrCode   string        `db:"patient_name_or_code" json:"patient_name_or_code"`
	BloodGroupRequired  string        `db:"blood_group_required" json:"blood_group_required"`
	UrgencyLevel        Urgency       `db:"urgency_level" json:"urgency_level"`
	NeededBy            time.Time     `db:"needed_by" json:"needed_by"`
	LocationDescription *string       `db:"location_description" json:"location_description,omitempty"`
	ContactPersonName   *string       `db:"contact_person_name" json:"contact_person_name,omitempty"`
	ContactPhone        *string       `db:"contact_phone" json:"contact_phone,omitempty"`
	Status              RequestStatus `db:"status" json:"status"`
	Notes               *string       `db:"notes" json:"notes,omitempty"`
	CreatedAt           time.Time     `db:"created_at" json:"created_at"`

	HospitalID      *uuid.UUID `db:"hospital_id" json:"hospital_id,omitempty"`
	HospitalName    *string    `db:"hospital_name" json:"hospital_name,omitempty"`
	RespondersCount int        `db:"responders_count" json:"responders_count"`
}

// DonorResponse maps to the blood_donor_responses table. The pair
// (BloodRequestID, DonorID) is unique: one response per donor per request.
type DonorResponse struct {
	ID             uuid.UUID      `db:"id" json:"id"`
	BloodRequestID uuid.UUID      `db:"blood_request_id" json:"blood_request_id"`
	DonorID        uuid.UUID      `db:"donor_id" json:"donor_id"`
	Status         ResponseStatus `db:"status" json:"status"`
	RespondedAt    time.Time      `db:"responded_at" json:"responded_at"`
}

// Stats is the public summary counter set. livesSaved counts fulfilled
// requests, matching what the landing page advertises.
type Stats struct {
	ActiveRequests  int `json:"activeRequests"`
	AvailableDonors int `json:"availableDonors"`
	LivesSaved      int `json:"livesSaved"`
}
