package dto

import (
	"time"

	"placement-portal/internal/domain/externaljob"
	"placement-portal/internal/usecase"

	"github.com/google/uuid"
)

type ExternalJobResponse struct {
	ID             uuid.UUID  `json:"id"`
	Source         string     `json:"source"`
	Title          string     `json:"title"`
	CompanyName    *string    `json:"company_name"`
	Location       *string    `json:"location"`
	JobType        *string    `json:"job_type"`
	Description    *string    `json:"description"`
	ApplicationURL *string    `json:"application_url"`
	RequiredSkills []string   `json:"required_skills"`
	PostedAt       *time.Time `json:"posted_at"`
	FetchedAt      time.Time  `json:"fetched_at"`
}

type ExternalJobMatchResponse struct {
	Job   ExternalJobResponse `json:"job"`
	Match MatchResponse       `json:"match"`
}

func FromExternalJob(j externaljob.Job) ExternalJobResponse {
	skills := j.RequiredSkills
	if skills == nil {
		skills = []string{}
	}
	return ExternalJobResponse{
		ID:             j.ID,
		Source:         j.Source,
		Title:          j.Title,
		CompanyName:    j.CompanyName,
		Location:       j.Location,
		JobType:        j.JobType,
		Description:    j.Description,
		ApplicationURL: j.ApplicationURL,
		RequiredSkills: skills,
		PostedAt:       j.PostedAt,
		FetchedAt:      j.FetchedAt,
	}
}

func FromExternalJobMatch(m usecase.ExternalJobMatch) ExternalJobMatchResponse {
	return ExternalJobMatchResponse{Job: FromExternalJob(m.Job), Match: FromMatch(m.Result)}
}

func FromExternalJobMatches(ms []usecase.ExternalJobMatch) []ExternalJobMatchResponse {
	out := make([]ExternalJobMatchResponse, 0, len(ms))
	for _, m := range ms {
		out = append(out, FromExternalJobMatch(m))
	}
	return out
}
