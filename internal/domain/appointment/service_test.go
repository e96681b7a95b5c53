package appointment

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/chikitsa/chikitsa/internal/platform/httperr"
)

type mockRepo struct {
	appointments map[uuid.UUID]*Appointment
}

func (m *mockRepo) Create(_ context.Context, p CreateParams) error {
	m.appointments[p.ID] = &Appointment{
		ID:                p.ID,
		PatientID:         p.PatientID,
		DoctorID:          p.DoctorID,
		HospitalID:        &p.HospitalID,
		RequestedDateTime: p.RequestedDateTime,
		ScheduledDateTime: p.RequestedDateTime,
		Status:            StatusRequested,
		Notes:             p.Notes,
		CreatedAt:         time.Now(),
	}
	return nil
}

func (m *mockRepo) GetForPatient(_ context.Context, id, patientID uuid.UUID) (*Appointment, error) {
	a, ok := m.appointments[id]
	if !ok || a.PatientID != patientID {
		return nil, pgx.ErrNoRows
	}
	copied := *a
	return &copied, nil
}

func (m *mockRepo) ListForPatient(_ context.Context, patientID uuid.UUID) ([]Appointment, error) {
	mine := make([]Appointment, 0)
	for _, a := range m.appointments {
		if a.PatientID == patientID {
			mine = append(mine, *a)
		}
	}
	sort.Slice(mine, func(i, j int) bool {
		return mine[i].RequestedDateTime.After(mine[j].RequestedDateTime)
	})
	return mine, nil
}

type mockHospitals struct {
	exists map[uuid.UUID]bool
}

func (m *mockHospitals) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	return m.exists[id], nil
}

type mockDoctors struct {
	memberships map[uuid.UUID]uuid.UUID // doctor -> hospital
}

func (m *mockDoctors) BelongsToHospital(_ context.Context, doctorID, hospitalID uuid.UUID) (bool, error) {
	return m.memberships[doctorID] == hospitalID, nil
}

type fixture struct {
	svc       *Service
	repo      *mockRepo
	hospitals *mockHospitals
	doctors   *mockDoctors
}

func newFixture() *fixture {
	repo := &mockRepo{appointments: make(map[uuid.UUID]*Appointment)}
	hospitals := &mockHospitals{exists: make(map[uuid.UUID]bool)}
	doctors := &mockDoctors{memberships: make(map[uuid.UUID]uuid.UUID)}
	return &fixture{
		svc:       NewService(repo, hospitals, doctors),
		repo:      repo,
		hospitals: hospitals,
		doctors:   doctors,
	}
}

func (f *fixture) addHospital() uuid.UUID {
	id := uuid.New()
	f.hospitals.exists[id] = true
	return id
}

func TestBook(t *testing.T) {
	f := newFixture()
	hospitalID := f.addHospital()
	patientID := uuid.New()
	when := time.Now().Add(48 * time.Hour)

	result, err := f.svc.Book(context.Background(), patientID, BookInput{
		HospitalID:        hospitalID,
		RequestedDateTime: when,
	})
	if err != nil {
		t.Fatalf("Book: %v", err)
	}
	a := result.Appointment
	if a.Status != StatusRequested {
		t.Errorf("status = %s, want REQUESTED", a.Status)
	}
	if !a.ScheduledDateTime.Equal(a.RequestedDateTime) {
		t.Error("scheduled time should start equal to requested time")
	}
	if a.DoctorID != nil {
		t.Error("expected general appointment without doctor")
	}
	if result.Message == "" {
		t.Error("expected acknowledgement message")
	}
}

func TestBookUnknownHospital(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Book(context.Background(), uuid.New(), BookInput{
		HospitalID:        uuid.New(),
		RequestedDateTime: time.Now().Add(time.Hour),
	})
	if !httperr.IsKind(err, httperr.KindNotFound) {
		t.Fatalf("expected not_found, got %v", err)
	}
}

func TestBookDoctorMatching(t *testing.T) {
	f := newFixture()
	hospitalID := f.addHospital()
	otherHospital := f.addHospital()
	doctorID := uuid.New()
	f.doctors.memberships[doctorID] = hospitalID

	// Doctor at the chosen hospital is kept.
	result, err := f.svc.Book(context.Background(), uuid.New(), BookInput{
		HospitalID:        hospitalID,
		DoctorID:          &doctorID,
		RequestedDateTime: time.Now().Add(time.Hour),
	})
	if err != nil {
		t.Fatalf("Book: %v", err)
	}
	if result.Appointment.DoctorID == nil || *result.Appointment.DoctorID != doctorID {
		t.Error("expected doctor to be kept")
	}

	// Doctor at a different hospital is dropped, not rejected.
	result, err = f.svc.Book(context.Background(), uuid.New(), BookInput{
		HospitalID:        otherHospital,
		DoctorID:          &doctorID,
		RequestedDateTime: time.Now().Add(time.Hour),
	})
	if err != nil {
		t.Fatalf("Book: %v", err)
	}
	if result.Appointment.DoctorID != nil {
		t.Error("expected mismatched doctor to be dropped")
	}
}

func TestListNewestFirstAndScoped(t *testing.T) {
	f := newFixture()
	hospitalID := f.addHospital()
	patientID := uuid.New()
	otherPatient := uuid.New()
	ctx := context.Background()

	now := time.Now()
	for _, offset := range []time.Duration{24 * time.Hour, 72 * time.Hour, 48 * time.Hour} {
		if _, err := f.svc.Book(ctx, patientID, BookInput{
			HospitalID:        hospitalID,
			RequestedDateTime: now.Add(offset),
		}); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := f.svc.Book(ctx, otherPatient, BookInput{
		HospitalID:        hospitalID,
		RequestedDateTime: now.Add(96 * time.Hour),
	}); err != nil {
		t.Fatal(err)
	}

	mine, err := f.svc.List(ctx, patientID)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(mine) != 3 {
		t.Fatalf("got %d appointments, want 3", len(mine))
	}
	for i := 1; i < len(mine); i++ {
		if mine[i].RequestedDateTime.After(mine[i-1].RequestedDateTime) {
			t.Error("appointments not ordered newest requested first")
		}
	}
}

func TestGetScopedToPatient(t *testing.T) {
	f := newFixture()
	hospitalID := f.addHospital()
	patientID := uuid.New()
	ctx := context.Background()

	result, err := f.svc.Book(ctx, patientID, BookInput{
		HospitalID:        hospitalID,
		RequestedDateTime: time.Now().Add(time.Hour),
	})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := f.svc.Get(ctx, result.Appointment.ID, patientID); err != nil {
		t.Errorf("owner lookup failed: %v", err)
	}
	if _, err := f.svc.Get(ctx, result.Appointment.ID, uuid.New()); !httperr.IsKind(err, httperr.KindNotFound) {
		t.Errorf("foreign lookup: expected not_found, got %v", err)
	}
}
