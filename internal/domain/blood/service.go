package blood

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/chikitsa/chikitsa/internal/domain/donor"
	"github.com/chikitsa/chikitsa/internal/platform/db"
	"github.com/chikitsa/chikitsa/internal/platform/httperr"
)

// responseRecordedMessage is the acknowledgement shown to a donor after a
// successful response.
const responseRecordedMessage = "Thank you! Your response has been recorded. The hospital will contact you."

const responseUniqueConstraint = "blood_donor_responses_request_donor_key"

type Service struct {
	requests  RequestRepository
	responses ResponseRepository
	donors    DonorDirectory
	hospitals HospitalDirectory
}

func NewService(requests RequestRepository, responses ResponseRepository, donors DonorDirectory, hospitals HospitalDirectory) *Service {
	return &Service{
		requests:  requests,
		responses: responses,
		donors:    donors,
		hospitals: hospitals,
	}
}

// CreateRequestInput carries the fields for a new blood request.
type CreateRequestInput struct {
	HospitalID          uuid.UUID
	PatientNameOrCode   string
	BloodGroupRequired  string
	UrgencyLevel        string
	NeededBy            time.Time
	LocationDescription *string
	ContactPersonName   *string
	ContactPhone        *string
	Notes               *string
}

// CreateRequest validates the input, checks the hospital, and records a new
// ACTIVE request. It returns the full read model of the created request.
func (s *Service) CreateRequest(ctx context.Context, in CreateRequestInput) (*Request, error) {
	if in.PatientNameOrCode == "" {
		return nil, httperr.Validation("patient name or code is required")
	}
	if !donor.ValidBloodGroup(in.BloodGroupRequired) {
		return nil, httperr.Validation(fmt.Sprintf("unknown blood group %q", in.BloodGroupRequired))
	}
	urgency, ok := ParseUrgency(in.UrgencyLevel)
	if !ok {
		return nil, httperr.Validation("urgency must be CRITICAL, HIGH, MEDIUM or LOW")
	}
	if in.NeededBy.IsZero() {
		return nil, httperr.Validation("needed_by is required")
	}

	exists, err := s.hospitals.Exists(ctx, in.HospitalID)
	if err != nil {
		return nil, storeErr(err, "check hospital")
	}
	if !exists {
		return nil, httperr.NotFound("hospital not found")
	}

	hospitalID := in.HospitalID
	req := &Request{
		ID:                  uuid.New(),
		HospitalID:          &hospitalID,
		PatientNameOrCode:   in.PatientNameOrCode,
		BloodGroupRequired:  in.BloodGroupRequired,
		UrgencyLevel:        urgency,
		NeededBy:            in.NeededBy,
		LocationDescription: in.LocationDescription,
		ContactPersonName:   in.ContactPersonName,
		ContactPhone:        in.ContactPhone,
		Status:              StatusActive,
		Notes:               in.Notes,
		CreatedAt:           time.Now().UTC(),
	}
	if err := s.requests.Create(ctx, req); err != nil {
		return nil, storeErr(err, "create blood request")
	}
	return s.GetByID(ctx, req.ID)
}

// ListActive returns the public board: every ACTIVE request, most urgent
// first, earliest deadline first within an urgency.
func (s *Service) ListActive(ctx context.Context) ([]Request, error) {
	requests, err := s.requests.ListActive(ctx)
	if err != nil {
		return nil, storeErr(err, "list blood requests")
	}
	return requests, nil
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*Request, error) {
	req, err := s.requests.GetByID(ctx, id)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, httperr.NotFound("blood request not found")
		}
		return nil, storeErr(err, "load blood request")
	}
	return req, nil
}

// RespondResult is the acknowledgement returned to a responding donor.
type RespondResult struct {
	ResponseID uuid.UUID `json:"responseId"`
	Message    string    `json:"message"`
}

// Respond records a donor's interest in a request. Preconditions are checked
// in order: the caller must hold a donor registration, the request must
// exist, it must still be ACTIVE, and the donor must not have responded
// before. The unique constraint on (request, donor) catches raced duplicates
// that slip past the pre-check.
func (s *Service) Respond(ctx context.Context, requestID, donorUserID uuid.UUID) (*RespondResult, error) {
	isDonor, err := s.donors.Exists(ctx, donorUserID)
	if err != nil {
		return nil, storeErr(err, "check donor registration")
	}
	if !isDonor {
		return nil, httperr.Forbidden("only registered donors can respond to blood requests").
			WithHint("please register as a donor first")
	}

	status, err := s.requests.GetStatus(ctx, requestID)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, httperr.NotFound("blood request not found")
		}
		return nil, storeErr(err, "load blood request")
	}
	if status != StatusActive {
		return nil, httperr.InvalidState("this blood request is no longer active")
	}

	responded, err := s.responses.Exists(ctx, requestID, donorUserID)
	if err != nil {
		return nil, storeErr(err, "check existing response")
	}
	if responded {
		return nil, httperr.Conflict("you have already responded to this request")
	}

	resp := &DonorResponse{
		ID:             uuid.New(),
		BloodRequestID: requestID,
		DonorID:        donorUserID,
		Status:         ResponseInterested,
		RespondedAt:    time.Now().UTC(),
	}
	if err := s.responses.Create(ctx, resp); err != nil {
		if db.IsUniqueViolation(err, responseUniqueConstraint) {
			return nil, httperr.Conflict("you have already responded to this request")
		}
		return nil, storeErr(err, "record response")
	}

	return &RespondResult{ResponseID: resp.ID, Message: responseRecordedMessage}, nil
}

// Stats computes the public summary counters fresh on every call.
func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	active, err := s.requests.CountByStatus(ctx, StatusActive)
	if err != nil {
		return nil, storeErr(err, "count active requests")
	}
	available, err := s.donors.CountAvailable(ctx)
	if err != nil {
		return nil, storeErr(err, "count available donors")
	}
	fulfilled, err := s.requests.CountByStatus(ctx, StatusFulfilled)
	if err != nil {
		return nil, storeErr(err, "count fulfilled requests")
	}
	return &Stats{
		ActiveRequests:  active,
		AvailableDonors: available,
		LivesSaved:      fulfilled,
	}, nil
}

// Fulfill moves an ACTIVE request to FULFILLED.
func (s *Service) Fulfill(ctx context.Context, id uuid.UUID) (*Request, error) {
	return s.transition(ctx, id, StatusFulfilled, "only active requests can be fulfilled")
}

// Cancel moves an ACTIVE request to CANCELLED.
func (s *Service) Cancel(ctx context.Context, id uuid.UUID) (*Request, error) {
	return s.transition(ctx, id, StatusCancelled, "only active requests can be cancelled")
}

func (s *Service) transition(ctx context.Context, id uuid.UUID, to RequestStatus, stateMsg string) (*Request, error) {
	changed, err := s.requests.TransitionStatus(ctx, id, StatusActive, to)
	if err != nil {
		return nil, storeErr(err, "transition blood request")
	}
	if !changed {
		// Either the request does not exist or it already left ACTIVE.
		if _, err := s.requests.GetStatus(ctx, id); err != nil {
			if db.IsNoRows(err) {
				return nil, httperr.NotFound("blood request not found")
			}
			return nil, storeErr(err, "load blood request")
		}
		return nil, httperr.InvalidState(stateMsg)
	}
	return s.GetByID(ctx, id)
}

func storeErr(err error, op string) error {
	if db.IsUnavailable(err) {
		return httperr.Unavailable("database unavailable")
	}
	return fmt.Errorf("%s: %w", op, err)
}
