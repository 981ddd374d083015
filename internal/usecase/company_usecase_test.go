package usecase

import (
	"context"
	"testing"

	"placement-portal/internal/domain/company"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompanies_UpdateProfileIsPartial(t *testing.T) {
	acme := company.Profile{ID: uuid.New(), UserID: uuid.New(), Name: "Acme", Website: strPtr("https://acme.test"), Industry: strPtr("Fintech")}
	companies := newFakeCompanies(acme)
	uc := NewCompanyUsecase(companies, nil)

	saved, err := uc.UpdateProfile(context.Background(), companyActor(acme.UserID), CompanyProfileInput{
		Phone:       strPtr(" +91 80 4000 0000 "),
		CompanySize: strPtr("51-200"),
		Industry:    strPtr(""),
	})
	require.NoError(t, err)
	assert.Equal(t, acme.ID, saved.ID)
	assert.Equal(t, "Acme", saved.Name)
	require.NotNil(t, saved.Website)
	assert.Equal(t, "https://acme.test", *saved.Website)
	require.NotNil(t, saved.Phone)
	assert.Equal(t, "+91 80 4000 0000", *saved.Phone)
	assert.Nil(t, saved.Industry, "blank clears")

	got, err := uc.GetProfile(context.Background(), companyActor(acme.UserID))
	require.NoError(t, err)
	require.NotNil(t, got.CompanySize)
	assert.Equal(t, "51-200", *got.CompanySize)
}

func TestCompanies_UpdateProfileValidation(t *testing.T) {
	acme := company.Profile{ID: uuid.New(), UserID: uuid.New(), Name: "Acme"}
	uc := NewCompanyUsecase(newFakeCompanies(acme), nil)

	_, err := uc.UpdateProfile(context.Background(), companyActor(acme.UserID), CompanyProfileInput{Name: strPtr("  ")})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.UpdateProfile(context.Background(), studentActor(acme.UserID), CompanyProfileInput{})
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = uc.GetProfile(context.Background(), companyActor(uuid.New()))
	assert.ErrorIs(t, err, ErrCompanyProfileNotFound)
}
