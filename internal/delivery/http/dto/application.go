package dto

import (
	"time"

	"placement-portal/internal/domain/application"
	"placement-portal/internal/repository"
	"placement-portal/internal/usecase"

	"github.com/google/uuid"
)

type SubmitApplicationRequest struct {
	OpportunityID string `json:"opportunity_id" validate:"required,uuid"`
	CoverLetter   string `json:"cover_letter" validate:"max=5000"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=shortlisted interview accepted rejected"`
}

type ApplicationResponse struct {
	ID                   uuid.UUID `json:"id"`
	StudentID            uuid.UUID `json:"student_id"`
	OpportunityID        uuid.UUID `json:"opportunity_id"`
	ResumePath           *string   `json:"resume_path"`
	CoverLetter          string    `json:"cover_letter"`
	Status               string    `json:"status"`
	SkillMatchPercentage int       `json:"skill_match_percentage"`
	Notes                *string   `json:"notes"`
	AppliedAt            time.Time `json:"applied_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

type SubmitApplicationResponse struct {
	Application  ApplicationResponse  `json:"application"`
	Completeness CompletenessResponse `json:"completeness"`
	Tip          string               `json:"tip,omitempty"`
}

type MyApplicationResponse struct {
	ApplicationResponse
	OpportunityTitle string `json:"opportunity_title"`
	CompanyName      string `json:"company_name"`
}

type ApplicantResponse struct {
	Application  ApplicationResponse `json:"application"`
	Student      ProfileResponse     `json:"student"`
	FullName     string              `json:"full_name"`
	Completeness int                 `json:"profile_completeness"`
	Eligible     bool                `json:"eligible"`
}

func FromApplication(a application.Application) ApplicationResponse {
	return ApplicationResponse{
		ID:                   a.ID,
		StudentID:            a.StudentID,
		OpportunityID:        a.OpportunityID,
		ResumePath:           a.ResumePath,
		CoverLetter:          a.CoverLetter,
		Status:               string(a.Status),
		SkillMatchPercentage: a.SkillMatchPercentage,
		Notes:                a.Notes,
		AppliedAt:            a.AppliedAt,
		UpdatedAt:            a.UpdatedAt,
	}
}

func FromSubmitResult(r usecase.SubmitResult) SubmitApplicationResponse {
	return SubmitApplicationResponse{
		Application:  FromApplication(r.Application),
		Completeness: FromCompleteness(r.Completeness),
		Tip:          r.Completeness.Tip,
	}
}

func FromApplicationRows(rows []repository.ApplicationListRow) []MyApplicationResponse {
	out := make([]MyApplicationResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, MyApplicationResponse{
			ApplicationResponse: FromApplication(r.Application),
			OpportunityTitle:    r.OpportunityTitle,
			CompanyName:         r.CompanyName,
		})
	}
	return out
}

func FromApplicants(as []usecase.Applicant) []ApplicantResponse {
	out := make([]ApplicantResponse, 0, len(as))
	for _, a := range as {
		out = append(out, ApplicantResponse{
			Application:  FromApplication(a.Application),
			Student:      FromProfile(a.Student),
			FullName:     a.Student.FullName(),
			Completeness: a.Completeness,
			Eligible:     a.Eligible,
		})
	}
	return out
}
