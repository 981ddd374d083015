package dto

import (
	"time"

	"placement-portal/internal/domain/scoring"
	"placement-portal/internal/domain/student"
	"placement-portal/internal/usecase"

	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

type EducationRequest struct {
	Degree      string `json:"degree" validate:"required,max=120"`
	Institution string `json:"institution" validate:"required,max=200"`
	StartYear   int    `json:"start_year" validate:"omitempty,min=1950,max=2100"`
	EndYear     int    `json:"end_year" validate:"omitempty,min=1950,max=2100,gtefield=StartYear"`
	GPA         string `json:"gpa" validate:"max=16"`
}

type ProfileRequest struct {
	FirstName      *string            `json:"first_name" validate:"omitempty,max=100"`
	LastName       *string            `json:"last_name" validate:"omitempty,max=100"`
	Email          *string            `json:"email" validate:"omitempty,email"`
	Phone          *string            `json:"phone" validate:"omitempty,max=32"`
	DateOfBirth    *string            `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	Course         *string            `json:"course" validate:"omitempty,max=120"`
	Specialization *string            `json:"specialization" validate:"omitempty,max=120"`
	Skills         []string           `json:"skills" validate:"max=50,dive,max=64"`
	Education      []EducationRequest `json:"education" validate:"max=10,dive"`
	ResumePath     *string            `json:"resume_path" validate:"omitempty,max=512"`
	Bio            *string            `json:"bio" validate:"omitempty,max=2000"`
	Address        *string            `json:"address" validate:"omitempty,max=500"`
}

// ToInput assumes the request already passed validation. Omitted fields stay
// nil so the update leaves them untouched; an empty date_of_birth clears it.
func (r ProfileRequest) ToInput() usecase.ProfileInput {
	var dob *time.Time
	clearDOB := false
	if r.DateOfBirth != nil {
		if *r.DateOfBirth == "" {
			clearDOB = true
		} else if t, err := time.Parse(dateLayout, *r.DateOfBirth); err == nil {
			dob = &t
		}
	}

	var edu []student.Education
	if r.Education != nil {
		edu = make([]student.Education, 0, len(r.Education))
	}
	for _, e := range r.Education {
		edu = append(edu, student.Education{
			Degree:      e.Degree,
			Institution: e.Institution,
			StartYear:   e.StartYear,
			EndYear:     e.EndYear,
			GPA:         e.GPA,
		})
	}

	return usecase.ProfileInput{
		FirstName:        r.FirstName,
		LastName:         r.LastName,
		Email:            r.Email,
		Phone:            r.Phone,
		DateOfBirth:      dob,
		ClearDateOfBirth: clearDOB,
		Course:           r.Course,
		Specialization:   r.Specialization,
		Skills:           r.Skills,
		Education:        edu,
		ResumePath:       r.ResumePath,
		Bio:              r.Bio,
		Address:          r.Address,
	}
}

type ProfileResponse struct {
	ID             uuid.UUID           `json:"id"`
	UserID         uuid.UUID           `json:"user_id"`
	FirstName      *string             `json:"first_name"`
	LastName       *string             `json:"last_name"`
	Email          *string             `json:"email"`
	Phone          *string             `json:"phone"`
	DateOfBirth    *string             `json:"date_of_birth"`
	Course         *string             `json:"course"`
	Specialization *string             `json:"specialization"`
	Skills         []string            `json:"skills"`
	Education      []student.Education `json:"education"`
	ResumePath     *string             `json:"resume_path"`
	Bio            *string             `json:"bio"`
	Address        *string             `json:"address"`
	UpdatedAt      *time.Time          `json:"updated_at,omitempty"`
}

type FieldCreditResponse struct {
	Field  string `json:"field"`
	Weight int    `json:"weight"`
	Earned int    `json:"earned"`
}

type CompletenessResponse struct {
	Score     int                   `json:"score"`
	Readiness string                `json:"readiness"`
	CanApply  bool                  `json:"can_apply"`
	Tip       string                `json:"tip,omitempty"`
	Missing   []string              `json:"missing"`
	Fields    []FieldCreditResponse `json:"fields"`
}

type ProfileWithCompletenessResponse struct {
	Profile      ProfileResponse      `json:"profile"`
	Completeness CompletenessResponse `json:"completeness"`
}

func FromProfile(p student.Profile) ProfileResponse {
	var dob *string
	if p.DateOfBirth != nil {
		s := p.DateOfBirth.UTC().Format(dateLayout)
		dob = &s
	}
	skills := p.Skills
	if skills == nil {
		skills = []string{}
	}
	edu := p.Education
	if edu == nil {
		edu = []student.Education{}
	}
	var updated *time.Time
	if !p.UpdatedAt.IsZero() {
		u := p.UpdatedAt
		updated = &u
	}

	return ProfileResponse{
		ID:             p.ID,
		UserID:         p.UserID,
		FirstName:      p.FirstName,
		LastName:       p.LastName,
		Email:          p.Email,
		Phone:          p.Phone,
		DateOfBirth:    dob,
		Course:         p.Course,
		Specialization: p.Specialization,
		Skills:         skills,
		Education:      edu,
		ResumePath:     p.ResumePath,
		Bio:            p.Bio,
		Address:        p.Address,
		UpdatedAt:      updated,
	}
}

func FromCompleteness(c usecase.Completeness) CompletenessResponse {
	out := CompletenessResponse{
		Score:     c.Score,
		Readiness: string(c.Readiness),
		CanApply:  c.CanApply,
		Tip:       c.Tip,
		Missing:   make([]string, 0, len(c.Breakdown.Missing)),
		Fields:    make([]FieldCreditResponse, 0, len(c.Breakdown.Fields)),
	}
	for _, f := range c.Breakdown.Missing {
		out.Missing = append(out.Missing, string(f))
	}
	for _, f := range c.Breakdown.Fields {
		out.Fields = append(out.Fields, fromFieldCredit(f))
	}
	return out
}

func fromFieldCredit(f scoring.FieldCredit) FieldCreditResponse {
	return FieldCreditResponse{Field: string(f.Field), Weight: f.Weight, Earned: f.Earned}
}
