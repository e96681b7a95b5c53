package prescription

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/chikitsa/chikitsa/internal/platform/db"
	"github.com/chikitsa/chikitsa/internal/platform/httperr"
)

const orderUniqueConstraint = "medicine_orders_prescription_id_key"

type Service struct {
	prescriptions Repository
	contacts      ContactDirectory
}

func NewService(prescriptions Repository, contacts ContactDirectory) *Service {
	return &Service{prescriptions: prescriptions, contacts: contacts}
}

// List returns the caller's prescriptions, newest first, with items and the
// latest order.
func (s *Service) List(ctx context.Context, patientID uuid.UUID) ([]Prescription, error) {
	prescriptions, err := s.prescriptions.ListForPatient(ctx, patientID)
	if err != nil {
		return nil, storeErr(err, "list prescriptions")
	}
	return prescriptions, nil
}

// Get loads one prescription scoped to the caller. Another patient's
// prescription id is indistinguishable from a missing one.
func (s *Service) Get(ctx context.Context, id, patientID uuid.UUID) (*Prescription, error) {
	p, err := s.prescriptions.GetForPatient(ctx, id, patientID)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, httperr.NotFound("prescription not found")
		}
		return nil, storeErr(err, "load prescription")
	}
	return p, nil
}

// OrderInput carries the optional delivery overrides. Empty fields fall back
// to the address and phone stored on the user profile.
type OrderInput struct {
	DeliveryAddress string
	ContactPhone    string
}

// CreateOrder raises a medicine order from a prescription. The prescription
// must belong to the caller and may carry at most one order; the unique
// constraint on prescription_id catches raced duplicates that slip past the
// pre-check.
func (s *Service) CreateOrder(ctx context.Context, prescriptionID, patientID uuid.UUID, in OrderInput) (*Order, error) {
	owned, err := s.prescriptions.OwnedByPatient(ctx, prescriptionID, patientID)
	if err != nil {
		return nil, storeErr(err, "check prescription ownership")
	}
	if !owned {
		return nil, httperr.NotFound("prescription not found")
	}

	hasOrder, err := s.prescriptions.HasOrder(ctx, prescriptionID)
	if err != nil {
		return nil, storeErr(err, "check existing order")
	}
	if hasOrder {
		return nil, httperr.Conflict("an order already exists for this prescription")
	}

	address, phone := in.DeliveryAddress, in.ContactPhone
	if address == "" || phone == "" {
		storedAddress, storedPhone, err := s.contacts.Contact(ctx, patientID)
		if err != nil {
			return nil, storeErr(err, "load delivery defaults")
		}
		if address == "" {
			address = storedAddress
		}
		if phone == "" {
			phone = storedPhone
		}
	}

	order := &Order{
		ID:              uuid.New(),
		Status:          OrderPending,
		DeliveryAddress: address,
		ContactPhone:    phone,
		CreatedAt:       time.Now().UTC(),
	}
	if err := s.prescriptions.CreateOrder(ctx, order, patientID, prescriptionID); err != nil {
		if db.IsUniqueViolation(err, orderUniqueConstraint) {
			return nil, httperr.Conflict("an order already exists for this prescription")
		}
		return nil, storeErr(err, "create medicine order")
	}
	return order, nil
}

func storeErr(err error, op string) error {
	if db.IsUnavailable(err) {
		return httperr.Unavailable("database unavailable")
	}
	return fmt.Errorf("%s: %w", op, err)
}
