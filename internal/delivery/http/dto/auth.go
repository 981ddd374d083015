package dto

import (
	"time"

	"placement-portal/internal/domain/user"

	"github.com/google/uuid"
)

type RegisterRequest struct {
	Email       string `json:"email" validate:"required,email,max=254"`
	Password    string `json:"password" validate:"required,min=8,max=72"`
	Role        string `json:"role" validate:"omitempty,oneof=student company faculty"`
	CompanyName string `json:"company_name" validate:"required_if=Role company,max=200"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

type AuthResponse struct {
	User         *UserResponse `json:"user,omitempty"`
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token"`
}

func FromUser(u user.User) *UserResponse {
	return &UserResponse{ID: u.ID, Email: u.Email, Role: string(u.Role), IsActive: u.IsActive, CreatedAt: u.CreatedAt}
}

type SetUserActiveRequest struct {
	IsActive *bool `json:"is_active" validate:"required"`
}

func FromUsers(us []user.User) []*UserResponse {
	out := make([]*UserResponse, 0, len(us))
	for _, u := range us {
		out = append(out, FromUser(u))
	}
	return out
}
