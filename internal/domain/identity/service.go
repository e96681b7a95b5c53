package identity

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/chikitsa/chikitsa/internal/platform/auth"
	"github.com/chikitsa/chikitsa/internal/platform/db"
	"github.com/chikitsa/chikitsa/internal/platform/httperr"
)

const bcryptCost = 10

// Service implements registration, login, and identity lookup.
type Service struct {
	users     UserRepository
	donors    DonorRegistry
	hospitals HospitalRegistry
	secret    []byte
	tokenTTL  time.Duration
}

func NewService(users UserRepository, donors DonorRegistry, hospitals HospitalRegistry, secret []byte, tokenTTL time.Duration) *Service {
	return &Service{
		users:     users,
		donors:    donors,
		hospitals: hospitals,
		secret:    secret,
		tokenTTL:  tokenTTL,
	}
}

// RegisterInput carries the registration form. Role uses the public spelling
// ("patient", "donor", "hospital", "doctor").
type RegisterInput struct {
	Name         string
	Email        string
	Phone        *string
	Password     string
	Role         string
	BloodGroup   *string
	HospitalName string
	City         *string
}

// AuthResult is a signed token plus the public user it represents.
type AuthResult struct {
	Token string
	User  PublicUser
}

// Register creates the user account, the role-specific side rows, and issues
// a token. Email uniqueness is pre-checked for a friendly message; the
// database unique constraint is the enforcement backstop under races.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	email := strings.TrimSpace(strings.ToLower(in.Email))
	if email == "" || in.Password == "" {
		return nil, httperr.Validation("email and password are required")
	}
	role, ok := ParseRole(in.Role)
	if !ok {
		return nil, httperr.Validation("role must be one of patient, donor, hospital, doctor")
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, httperr.Conflict("user with this email already exists")
	} else if !db.IsNoRows(err) {
		return nil, storeErr(err, "look up email")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return nil, httperr.Internal("hash password")
	}

	user := &User{
		ID:           uuid.New(),
		Name:         in.Name,
		Email:        email,
		Phone:        in.Phone,
		PasswordHash: string(hash),
		Role:         role,
		City:         in.City,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if db.IsUniqueViolation(err, "users_email_key") {
			return nil, httperr.Conflict("user with this email already exists")
		}
		return nil, storeErr(err, "create user")
	}

	switch role {
	case RoleDonor:
		// A donor row is created even without a blood group; the profile
		// can be completed later.
		if err := s.donors.Upsert(ctx, user.ID, in.BloodGroup); err != nil {
			return nil, storeErr(err, "create donor profile")
		}
	case RoleHospitalAdmin:
		if in.HospitalName != "" {
			if _, err := s.hospitals.CreateForUser(ctx, in.HospitalName, in.City, user.ID); err != nil {
				return nil, storeErr(err, "create hospital")
			}
		}
	case RoleDoctor:
		if err := s.users.UpsertDoctor(ctx, user.ID, user.Name); err != nil {
			return nil, storeErr(err, "create doctor row")
		}
	case RolePatient:
		if err := s.users.EnsurePatient(ctx, user.ID); err != nil {
			return nil, storeErr(err, "create patient row")
		}
	}

	token, err := auth.Issue(s.secret, s.tokenTTL, user.ID.String(), user.Email, string(user.Role))
	if err != nil {
		return nil, httperr.Internal("issue token")
	}
	return &AuthResult{Token: token, User: user.Public()}, nil
}

// Login verifies credentials and issues a token. Unknown email and wrong
// password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return nil, httperr.Validation("email and password are required")
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, httperr.Unauthorized("invalid email or password")
		}
		return nil, storeErr(err, "look up user")
	}
	if user.PasswordHash == "" {
		return nil, httperr.Unauthorized("invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, httperr.Unauthorized("invalid email or password")
	}

	token, err := auth.Issue(s.secret, s.tokenTTL, user.ID.String(), user.Email, string(user.Role))
	if err != nil {
		return nil, httperr.Internal("issue token")
	}
	return &AuthResult{Token: token, User: user.Public()}, nil
}

// Me resolves an authenticated user id back to the stored account.
func (s *Service) Me(ctx context.Context, userID uuid.UUID) (*User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, httperr.NotFound("user not found")
		}
		return nil, storeErr(err, "look up user")
	}
	return user, nil
}

// storeErr classifies store-level failures: connectivity problems become a
// distinct unavailable error, anything else bubbles up wrapped for the error
// handler to log and render as internal.
func storeErr(err error, op string) error {
	if db.IsUnavailable(err) {
		return httperr.Unavailable("database unavailable")
	}
	return fmt.Errorf("%s: %w", op, err)
}
