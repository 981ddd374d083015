package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"placement-portal/internal/domain/scoring"
	"placement-portal/internal/domain/student"
	"placement-portal/internal/repository"

	"github.com/google/uuid"
)

// ProfileInput is a partial update. A nil field (or nil slice) was not sent
// and keeps its stored value; a blank string clears the field.
type ProfileInput struct {
	FirstName        *string
	LastName         *string
	Email            *string
	Phone            *string
	DateOfBirth      *time.Time
	ClearDateOfBirth bool
	Course           *string
	Specialization   *string
	Skills           []string
	Education        []student.Education
	ResumePath       *string
	Bio              *string
	Address          *string
}

type ProfileUsecase interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (student.Profile, Completeness, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, in ProfileInput) (student.Profile, Completeness, error)
	GetCompleteness(ctx context.Context, userID uuid.UUID) (Completeness, error)
}

type Profile struct {
	profiles repository.StudentProfileRepository
}

func NewProfileUsecase(profiles repository.StudentProfileRepository) *Profile {
	return &Profile{profiles: profiles}
}

// GetProfile returns an empty profile scored at zero for a student who has
// never saved one.
func (u *Profile) GetProfile(ctx context.Context, userID uuid.UUID) (student.Profile, Completeness, error) {
	if userID == uuid.Nil {
		return student.Profile{}, Completeness{}, ErrUnauthorized
	}
	p, err := u.profiles.FindByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return student.Profile{}, Completeness{}, ErrInternal
		}
		p = student.Profile{UserID: userID, Skills: []string{}}
	}
	return p, assess(scoring.ProfileBreakdown(p)), nil
}

func (u *Profile) UpdateProfile(ctx context.Context, userID uuid.UUID, in ProfileInput) (student.Profile, Completeness, error) {
	if userID == uuid.Nil {
		return student.Profile{}, Completeness{}, ErrUnauthorized
	}

	p, err := u.profiles.FindByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return student.Profile{}, Completeness{}, ErrInternal
		}
		p = student.Profile{ID: uuid.New(), UserID: userID}
	}

	applyText(&p.FirstName, in.FirstName)
	applyText(&p.LastName, in.LastName)
	applyText(&p.Email, in.Email)
	applyText(&p.Phone, in.Phone)
	applyText(&p.Course, in.Course)
	applyText(&p.Specialization, in.Specialization)
	applyText(&p.ResumePath, in.ResumePath)
	applyText(&p.Bio, in.Bio)
	applyText(&p.Address, in.Address)
	switch {
	case in.ClearDateOfBirth:
		p.DateOfBirth = nil
	case in.DateOfBirth != nil:
		p.DateOfBirth = in.DateOfBirth
	}
	if in.Skills != nil {
		p.Skills = student.CleanSkills(in.Skills)
	}
	if in.Education != nil {
		p.Education = in.Education
	}

	saved, err := u.profiles.Upsert(ctx, p)
	if err != nil {
		return student.Profile{}, Completeness{}, ErrInternal
	}
	return saved, assess(scoring.ProfileBreakdown(saved)), nil
}

func (u *Profile) GetCompleteness(ctx context.Context, userID uuid.UUID) (Completeness, error) {
	_, c, err := u.GetProfile(ctx, userID)
	return c, err
}

func applyText(dst **string, v *string) {
	if v != nil {
		*dst = trimmed(v)
	}
}

// trimmed stores blank text as NULL.
func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
