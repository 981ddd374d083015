package usecase

import (
	"context"
	"errors"
	"log"

	"placement-portal/internal/domain/company"
	"placement-portal/internal/repository"
)

// CompanyProfileInput is a partial update with the same nil and blank rules
// as ProfileInput. Name may change but never to blank.
type CompanyProfileInput struct {
	Name        *string
	Description *string
	Website     *string
	Industry    *string
	Phone       *string
	Address     *string
	CompanySize *string
}

type CompanyUsecase interface {
	GetProfile(ctx context.Context, actor Actor) (company.Profile, error)
	UpdateProfile(ctx context.Context, actor Actor, in CompanyProfileInput) (company.Profile, error)
}

type Companies struct {
	companies repository.CompanyRepository
	logger    *log.Logger
}

func NewCompanyUsecase(companies repository.CompanyRepository, logger *log.Logger) *Companies {
	return &Companies{companies: companies, logger: logger}
}

func (u *Companies) GetProfile(ctx context.Context, actor Actor) (company.Profile, error) {
	if !actor.IsCompany() {
		return company.Profile{}, ErrForbidden
	}
	c, err := u.companies.FindByUserID(ctx, actor.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return company.Profile{}, ErrCompanyProfileNotFound
		}
		return company.Profile{}, ErrInternal
	}
	return c, nil
}

func (u *Companies) UpdateProfile(ctx context.Context, actor Actor, in CompanyProfileInput) (company.Profile, error) {
	c, err := u.GetProfile(ctx, actor)
	if err != nil {
		return company.Profile{}, err
	}

	if in.Name != nil {
		name := collapseSpaces(*in.Name)
		if name == "" {
			return company.Profile{}, ErrInvalidInput
		}
		c.Name = name
	}
	applyText(&c.Description, in.Description)
	applyText(&c.Website, in.Website)
	applyText(&c.Industry, in.Industry)
	applyText(&c.Phone, in.Phone)
	applyText(&c.Address, in.Address)
	applyText(&c.CompanySize, in.CompanySize)

	saved, err := u.companies.Upsert(ctx, c)
	if err != nil {
		return company.Profile{}, ErrInternal
	}
	if u.logger != nil {
		u.logger.Printf("[Companies] Profile updated | company_id=%s", saved.ID)
	}
	return saved, nil
}
