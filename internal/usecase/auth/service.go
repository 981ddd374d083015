package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"placement-portal/internal/domain/company"
	"placement-portal/internal/domain/user"
)

var (
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrInvalidInput           = errors.New("invalid input")
	ErrInvalidRole            = errors.New("role cannot self-register")
	ErrAccountDisabled        = errors.New("account disabled")
	ErrInternal               = errors.New("internal error")
)

type RegisterInput struct {
	Email       string
	Password    string
	Role        string
	CompanyName string
}

type LoginInput struct {
	Email    string
	Password string
}

type companyWriter interface {
	Upsert(ctx context.Context, p company.Profile) (company.Profile, error)
}

type Service struct {
	users     user.Repository
	companies companyWriter
	cost      int
}

func NewService(users user.Repository, companies companyWriter) *Service {
	return &Service{users: users, companies: companies, cost: bcrypt.DefaultCost}
}

// selfRegisterRole reports the roles open to public sign-up. Admins are
// created through portalctl seed.
func selfRegisterRole(raw string) (user.Role, bool) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if raw == "" {
		return user.RoleStudent, true
	}
	r, ok := user.ParseRole(raw)
	if !ok || r == user.RoleAdmin {
		return "", false
	}
	return r, true
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (user.User, error) {
	email := normalizeEmail(in.Email)
	if email == "" {
		return user.User{}, ErrInvalidInput
	}
	if !isValidPassword(in.Password) {
		return user.User{}, ErrInvalidInput
	}
	role, ok := selfRegisterRole(in.Role)
	if !ok {
		return user.User{}, ErrInvalidRole
	}
	companyName := strings.TrimSpace(in.CompanyName)
	if role == user.RoleCompany && companyName == "" {
		return user.User{}, ErrInvalidInput
	}

	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return user.User{}, ErrInternal
	}
	if exists {
		return user.User{}, ErrEmailAlreadyRegistered
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return user.User{}, ErrInternal
	}

	u := user.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     true,
	}

	if err := s.users.CreateUser(ctx, u); err != nil {
		exists, exErr := s.users.ExistsByEmail(ctx, email)
		if exErr == nil && exists {
			return user.User{}, ErrEmailAlreadyRegistered
		}
		return user.User{}, ErrInternal
	}

	if role == user.RoleCompany && s.companies != nil {
		if _, err := s.companies.Upsert(ctx, company.Profile{ID: uuid.New(), UserID: u.ID, Name: companyName}); err != nil {
			return user.User{}, ErrInternal
		}
	}

	created, err := s.users.GetUserByID(ctx, u.ID)
	if err != nil {
		return user.User{}, ErrInternal
	}
	return sanitizeUser(created), nil
}

func (s *Service) Login(ctx context.Context, in LoginInput) (user.User, error) {
	email := normalizeEmail(in.Email)
	if email == "" {
		return user.User{}, ErrInvalidCredentials
	}
	if in.Password == "" {
		return user.User{}, ErrInvalidCredentials
	}

	u, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, ErrInvalidCredentials
		}
		return user.User{}, ErrInternal
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)); err != nil {
		return user.User{}, ErrInvalidCredentials
	}
	if !u.IsActive {
		return user.User{}, ErrAccountDisabled
	}

	return sanitizeUser(u), nil
}

// HashPassword is shared with the seeder so seeded accounts can log in.
func HashPassword(pw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func normalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	if email == "" {
		return ""
	}
	return strings.ToLower(email)
}

func isValidPassword(pw string) bool {
	pw = strings.TrimSpace(pw)
	return len(pw) >= 8
}

func sanitizeUser(u user.User) user.User {
	u.PasswordHash = ""
	return u
}
