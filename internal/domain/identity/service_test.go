package identity

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/chikitsa/chikitsa/internal/platform/auth"
	"github.com/chikitsa/chikitsa/internal/platform/httperr"
)

// -- Mock Repositories --

type mockUserRepo struct {
	users     map[uuid.UUID]*User
	patients  map[uuid.UUID]bool
	doctors   map[uuid.UUID]string
	createErr error
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{
		users:    make(map[uuid.UUID]*User),
		patients: make(map[uuid.UUID]bool),
		doctors:  make(map[uuid.UUID]string),
	}
}

func (m *mockUserRepo) Create(_ context.Context, user *User) error {
	if m.createErr != nil {
		return m.createErr
	}
	user.CreatedAt = time.Now()
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id uuid.UUID) (*User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return u, nil
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *mockUserRepo) EnsurePatient(_ context.Context, userID uuid.UUID) error {
	m.patients[userID] = true
	return nil
}

func (m *mockUserRepo) UpsertDoctor(_ context.Context, userID uuid.UUID, name string) error {
	m.doctors[userID] = name
	return nil
}

type mockDonorRegistry struct {
	donors map[uuid.UUID]*string
}

func newMockDonorRegistry() *mockDonorRegistry {
	return &mockDonorRegistry{donors: make(map[uuid.UUID]*string)}
}

func (m *mockDonorRegistry) Upsert(_ context.Context, donorID uuid.UUID, bloodGroup *string) error {
	m.donors[donorID] = bloodGroup
	return nil
}

type mockHospitalRegistry struct {
	hospitals map[uuid.UUID]string
}

func newMockHospitalRegistry() *mockHospitalRegistry {
	return &mockHospitalRegistry{hospitals: make(map[uuid.UUID]string)}
}

func (m *mockHospitalRegistry) CreateForUser(_ context.Context, name string, _ *string, _ uuid.UUID) (uuid.UUID, error) {
	id := uuid.New()
	m.hospitals[id] = name
	return id, nil
}

func newTestService() (*Service, *mockUserRepo, *mockDonorRegistry, *mockHospitalRegistry) {
	users := newMockUserRepo()
	donors := newMockDonorRegistry()
	hospitals := newMockHospitalRegistry()
	svc := NewService(users, donors, hospitals, []byte("test-secret"), time.Hour)
	return svc, users, donors, hospitals
}

func TestRegister_Donor(t *testing.T) {
	svc, users, donors, _ := newTestService()
	bg := "O-"

	result, err := svc.Register(context.Background(), RegisterInput{
		Name:       "Asha",
		Email:      "Asha@Example.com",
		Password:   "secret123",
		Role:       "donor",
		BloodGroup: &bg,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Token == "" {
		t.Error("expected a token")
	}
	if result.User.Role != "donor" {
		t.Errorf("expected donor role, got %s", result.User.Role)
	}

	// Email is normalized to lowercase.
	if _, err := users.GetByEmail(context.Background(), "asha@example.com"); err != nil {
		t.Error("expected user stored under lowercase email")
	}
	if got, ok := donors.donors[result.User.ID]; !ok || got == nil || *got != "O-" {
		t.Error("expected donor profile row with blood group")
	}

	claims, err := auth.Verify([]byte("test-secret"), result.Token)
	if err != nil {
		t.Fatalf("token does not verify: %v", err)
	}
	if claims.Role != "DONOR" {
		t.Errorf("expected DONOR in claims, got %s", claims.Role)
	}
}

func TestRegister_HospitalAdminCreatesHospital(t *testing.T) {
	svc, _, _, hospitals := newTestService()

	_, err := svc.Register(context.Background(), RegisterInput{
		Name:         "City Admin",
		Email:        "admin@cityhospital.example",
		Password:     "secret123",
		Role:         "hospital",
		HospitalName: "City Hospital",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(hospitals.hospitals) != 1 {
		t.Fatalf("expected 1 hospital created, got %d", len(hospitals.hospitals))
	}
}

func TestRegister_PatientAndDoctorSideRows(t *testing.T) {
	svc, users, _, _ := newTestService()

	p, err := svc.Register(context.Background(), RegisterInput{
		Name: "Pat", Email: "pat@example.com", Password: "pw123456", Role: "patient",
	})
	if err != nil {
		t.Fatalf("patient register: %v", err)
	}
	if !users.patients[p.User.ID] {
		t.Error("expected patient side row")
	}

	d, err := svc.Register(context.Background(), RegisterInput{
		Name: "Dr. Rao", Email: "rao@example.com", Password: "pw123456", Role: "doctor",
	})
	if err != nil {
		t.Fatalf("doctor register: %v", err)
	}
	if users.doctors[d.User.ID] != "Dr. Rao" {
		t.Error("expected doctor side row with name")
	}
}

func TestRegister_UnknownRoleRejected(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.Register(context.Background(), RegisterInput{
		Name: "X", Email: "x@example.com", Password: "pw123456", Role: "superuser",
	})
	if !httperr.IsKind(err, httperr.KindValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestRegister_MissingCredentials(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.Register(context.Background(), RegisterInput{Role: "patient"})
	if !httperr.IsKind(err, httperr.KindValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _, _, _ := newTestService()

	in := RegisterInput{Name: "A", Email: "dup@example.com", Password: "pw123456", Role: "patient"}
	if _, err := svc.Register(context.Background(), in); err != nil {
		t.Fatalf("first register: %v", err)
	}
	_, err := svc.Register(context.Background(), in)
	if !httperr.IsKind(err, httperr.KindConflict) {
		t.Errorf("expected conflict, got %v", err)
	}
}

// Two registrations racing on the same email can both pass the lookup; the
// email unique constraint then rejects the second insert, which must surface
// as the same conflict.
func TestRegister_RacedDuplicateEmail(t *testing.T) {
	svc, users, _, _ := newTestService()
	users.createErr = &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}

	_, err := svc.Register(context.Background(), RegisterInput{
		Name: "B", Email: "race@example.com", Password: "pw123456", Role: "patient",
	})
	if !httperr.IsKind(err, httperr.KindConflict) {
		t.Errorf("expected conflict, got %v", err)
	}
}

func TestLogin_RoundTrip(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.Register(context.Background(), RegisterInput{
		Name: "A", Email: "login@example.com", Password: "pw123456", Role: "patient",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	result, err := svc.Login(context.Background(), "login@example.com", "pw123456")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if result.Token == "" {
		t.Error("expected a token")
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _, _, _ := newTestService()

	svc.Register(context.Background(), RegisterInput{
		Name: "A", Email: "wrongpw@example.com", Password: "pw123456", Role: "patient",
	})

	_, err := svc.Login(context.Background(), "wrongpw@example.com", "nope")
	if !httperr.IsKind(err, httperr.KindUnauthorized) {
		t.Errorf("expected unauthorized, got %v", err)
	}
}

func TestLogin_UnknownEmailSameError(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.Login(context.Background(), "ghost@example.com", "pw123456")
	if !httperr.IsKind(err, httperr.KindUnauthorized) {
		t.Errorf("expected unauthorized, got %v", err)
	}
}

func TestMe(t *testing.T) {
	svc, _, _, _ := newTestService()

	reg, _ := svc.Register(context.Background(), RegisterInput{
		Name: "A", Email: "me@example.com", Password: "pw123456", Role: "donor",
	})

	user, err := svc.Me(context.Background(), reg.User.ID)
	if err != nil {
		t.Fatalf("me: %v", err)
	}
	if user.Email != "me@example.com" {
		t.Errorf("unexpected user: %+v", user)
	}

	_, err = svc.Me(context.Background(), uuid.New())
	if !httperr.IsKind(err, httperr.KindNotFound) {
		t.Errorf("expected not_found for unknown id, got %v", err)
	}
}
