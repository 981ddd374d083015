package dto

import (
	"time"

	"placement-portal/internal/domain/company"
	"placement-portal/internal/usecase"

	"github.com/google/uuid"
)

type CompanyProfileRequest struct {
	Name        *string `json:"name" validate:"omitempty,max=200"`
	Description *string `json:"description" validate:"omitempty,max=5000"`
	Website     *string `json:"website" validate:"omitempty,url,max=300"`
	Industry    *string `json:"industry" validate:"omitempty,max=120"`
	Phone       *string `json:"phone" validate:"omitempty,max=32"`
	Address     *string `json:"address" validate:"omitempty,max=500"`
	CompanySize *string `json:"company_size" validate:"omitempty,max=50"`
}

func (r CompanyProfileRequest) ToInput() usecase.CompanyProfileInput {
	return usecase.CompanyProfileInput{
		Name:        r.Name,
		Description: r.Description,
		Website:     r.Website,
		Industry:    r.Industry,
		Phone:       r.Phone,
		Address:     r.Address,
		CompanySize: r.CompanySize,
	}
}

type CompanyProfileResponse struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Website     *string   `json:"website"`
	Industry    *string   `json:"industry"`
	Phone       *string   `json:"phone"`
	Address     *string   `json:"address"`
	CompanySize *string   `json:"company_size"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func FromCompany(c company.Profile) CompanyProfileResponse {
	return CompanyProfileResponse{
		ID:          c.ID,
		UserID:      c.UserID,
		Name:        c.Name,
		Description: c.Description,
		Website:     c.Website,
		Industry:    c.Industry,
		Phone:       c.Phone,
		Address:     c.Address,
		CompanySize: c.CompanySize,
		UpdatedAt:   c.UpdatedAt,
	}
}
