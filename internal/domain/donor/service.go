package donor

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/chikitsa/chikitsa/internal/platform/db"
	"github.com/chikitsa/chikitsa/internal/platform/httperr"
)

type Service struct {
	donors Repository
}

func NewService(donors Repository) *Service {
	return &Service{donors: donors}
}

// Profile returns the donor profile for the given user.
func (s *Service) Profile(ctx context.Context, userID uuid.UUID) (*Donor, error) {
	d, err := s.donors.GetByID(ctx, userID)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, httperr.NotFound("donor profile not found").
				WithHint("register as a donor first")
		}
		return nil, storeErr(err, "load donor profile")
	}
	return d, nil
}

// UpdateProfileInput carries optional profile changes; nil fields are left
// unchanged.
type UpdateProfileInput struct {
	BloodGroup   *string
	Availability *string
}

// UpdateProfile validates and applies blood group / availability changes.
func (s *Service) UpdateProfile(ctx context.Context, userID uuid.UUID, in UpdateProfileInput) (*Donor, error) {
	d, err := s.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if in.BloodGroup != nil {
		if !ValidBloodGroup(*in.BloodGroup) {
			return nil, httperr.Validation(fmt.Sprintf("unknown blood group %q", *in.BloodGroup))
		}
		d.BloodGroup = in.BloodGroup
	}
	if in.Availability != nil {
		availability, ok := ParseAvailability(*in.Availability)
		if !ok {
			return nil, httperr.Validation("availability must be AVAILABLE or UNAVAILABLE")
		}
		d.Availability = availability
	}

	if err := s.donors.Update(ctx, d); err != nil {
		return nil, storeErr(err, "update donor profile")
	}
	return d, nil
}

func storeErr(err error, op string) error {
	if db.IsUnavailable(err) {
		return httperr.Unavailable("database unavailable")
	}
	return fmt.Errorf("%s: %w", op, err)
}
