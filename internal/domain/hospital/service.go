package hospital

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/chikitsa/chikitsa/internal/platform/db"
	"github.com/chikitsa/chikitsa/internal/platform/httperr"
	"github.com/chikitsa/chikitsa/pkg/pagination"
)

type Service struct {
	hospitals Repository
}

func NewService(hospitals Repository) *Service {
	return &Service{hospitals: hospitals}
}

func (s *Service) List(ctx context.Context, p pagination.Params) ([]Hospital, int, error) {
	hospitals, total, err := s.hospitals.List(ctx, p)
	if err != nil {
		return nil, 0, storeErr(err, "list hospitals")
	}
	return hospitals, total, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Hospital, error) {
	h, err := s.hospitals.GetByID(ctx, id)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, httperr.NotFound("hospital not found")
		}
		return nil, storeErr(err, "load hospital")
	}
	return h, nil
}

func storeErr(err error, op string) error {
	if db.IsUnavailable(err) {
		return httperr.Unavailable("database unavailable")
	}
	return fmt.Errorf("%s: %w", op, err)
}
