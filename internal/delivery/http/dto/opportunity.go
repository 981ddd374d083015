package dto

import (
	"time"

	"placement-portal/internal/domain/opportunity"
	"placement-portal/internal/domain/scoring"
	"placement-portal/internal/usecase"

	"github.com/google/uuid"
)

type CreateOpportunityRequest struct {
	Title               string   `json:"title" validate:"required,max=200"`
	Description         string   `json:"description" validate:"required,max=10000"`
	Domain              string   `json:"domain" validate:"required,max=100"`
	RequiredSkills      []string `json:"required_skills" validate:"max=30,dive,max=64"`
	Duration            *string  `json:"duration" validate:"omitempty,max=100"`
	Stipend             *string  `json:"stipend" validate:"omitempty,max=100"`
	Location            *string  `json:"location" validate:"omitempty,max=200"`
	WorkType            *string  `json:"work_type" validate:"omitempty,oneof=remote onsite hybrid"`
	Prerequisites       *string  `json:"prerequisites" validate:"omitempty,max=2000"`
	ApplicationDeadline *string  `json:"application_deadline" validate:"omitempty,datetime=2006-01-02"`
	StartDate           *string  `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
}

func (r CreateOpportunityRequest) ToInput() usecase.OpportunityInput {
	return usecase.OpportunityInput{
		Title:               r.Title,
		Description:         r.Description,
		Domain:              r.Domain,
		RequiredSkills:      r.RequiredSkills,
		Duration:            r.Duration,
		Stipend:             r.Stipend,
		Location:            r.Location,
		WorkType:            r.WorkType,
		Prerequisites:       r.Prerequisites,
		ApplicationDeadline: parseDate(r.ApplicationDeadline),
		StartDate:           parseDate(r.StartDate),
	}
}

// UpdateOpportunityRequest mirrors CreateOpportunityRequest with every field
// optional; omitted fields keep their stored value.
type UpdateOpportunityRequest struct {
	Title               *string  `json:"title" validate:"omitempty,max=200"`
	Description         *string  `json:"description" validate:"omitempty,max=10000"`
	Domain              *string  `json:"domain" validate:"omitempty,max=100"`
	RequiredSkills      []string `json:"required_skills" validate:"max=30,dive,max=64"`
	Duration            *string  `json:"duration" validate:"omitempty,max=100"`
	Stipend             *string  `json:"stipend" validate:"omitempty,max=100"`
	Location            *string  `json:"location" validate:"omitempty,max=200"`
	WorkType            *string  `json:"work_type" validate:"omitempty,oneof=remote onsite hybrid"`
	Prerequisites       *string  `json:"prerequisites" validate:"omitempty,max=2000"`
	ApplicationDeadline *string  `json:"application_deadline" validate:"omitempty,datetime=2006-01-02"`
	StartDate           *string  `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	IsActive            *bool    `json:"is_active"`
}

func (r UpdateOpportunityRequest) ToPatch() usecase.OpportunityPatch {
	return usecase.OpportunityPatch{
		Title:               r.Title,
		Description:         r.Description,
		Domain:              r.Domain,
		RequiredSkills:      r.RequiredSkills,
		Duration:            r.Duration,
		Stipend:             r.Stipend,
		Location:            r.Location,
		WorkType:            r.WorkType,
		Prerequisites:       r.Prerequisites,
		ApplicationDeadline: parseDate(r.ApplicationDeadline),
		StartDate:           parseDate(r.StartDate),
		IsActive:            r.IsActive,
	}
}

type ApprovalRequest struct {
	Approved *bool `json:"approved" validate:"required"`
}

type MatchResponse struct {
	Percentage    int      `json:"percentage"`
	MatchedTags   []string `json:"matched_tags"`
	MissingTags   []string `json:"missing_tags"`
	TotalRequired int      `json:"total_required"`
	MatchedCount  int      `json:"matched_count"`
	Eligible      bool     `json:"eligible"`
}

type OpportunityResponse struct {
	ID                  uuid.UUID      `json:"id"`
	CompanyID           uuid.UUID      `json:"company_id"`
	CompanyName         string         `json:"company_name"`
	Title               string         `json:"title"`
	Description         string         `json:"description"`
	Domain              string         `json:"domain"`
	RequiredSkills      []string       `json:"required_skills"`
	Duration            *string        `json:"duration"`
	Stipend             *string        `json:"stipend"`
	Location            *string        `json:"location"`
	WorkType            *string        `json:"work_type"`
	Prerequisites       *string        `json:"prerequisites"`
	ApplicationDeadline *string        `json:"application_deadline"`
	StartDate           *string        `json:"start_date"`
	IsActive            bool           `json:"is_active"`
	IsApproved          bool           `json:"is_approved"`
	ViewsCount          int            `json:"views_count"`
	ApplicationsCount   int            `json:"applications_count"`
	CreatedAt           time.Time      `json:"created_at"`
	HasApplied          *bool          `json:"has_applied,omitempty"`
	Match               *MatchResponse `json:"match,omitempty"`
}

type MatchViewResponse struct {
	OpportunityID uuid.UUID     `json:"opportunity_id"`
	Match         MatchResponse `json:"match"`
}

type RecommendationResponse struct {
	Opportunity OpportunityResponse `json:"opportunity"`
	Match       MatchResponse       `json:"match"`
	HasApplied  bool                `json:"has_applied"`
}

func FromOpportunity(o opportunity.Opportunity) OpportunityResponse {
	skills := o.RequiredSkills
	if skills == nil {
		skills = []string{}
	}
	var wt *string
	if o.WorkType != nil {
		s := string(*o.WorkType)
		wt = &s
	}
	return OpportunityResponse{
		ID:                  o.ID,
		CompanyID:           o.CompanyID,
		CompanyName:         o.CompanyName,
		Title:               o.Title,
		Description:         o.Description,
		Domain:              o.Domain,
		RequiredSkills:      skills,
		Duration:            o.Duration,
		Stipend:             o.Stipend,
		Location:            o.Location,
		WorkType:            wt,
		Prerequisites:       o.Prerequisites,
		ApplicationDeadline: formatDate(o.ApplicationDeadline),
		StartDate:           formatDate(o.StartDate),
		IsActive:            o.IsActive,
		IsApproved:          o.IsApproved,
		ViewsCount:          o.ViewsCount,
		ApplicationsCount:   o.ApplicationsCount,
		CreatedAt:           o.CreatedAt,
	}
}

// FromOpportunityItem only fills has_applied and match for student viewers.
func FromOpportunityItem(it usecase.OpportunityItem) OpportunityResponse {
	out := FromOpportunity(it.Opportunity)
	if it.Match != nil {
		m := FromMatch(*it.Match)
		out.Match = &m
		applied := it.HasApplied
		out.HasApplied = &applied
	}
	return out
}

func FromOpportunities(os []opportunity.Opportunity) []OpportunityResponse {
	out := make([]OpportunityResponse, 0, len(os))
	for _, o := range os {
		out = append(out, FromOpportunity(o))
	}
	return out
}

func FromMatch(r scoring.MatchResult) MatchResponse {
	matched := r.MatchedTags
	if matched == nil {
		matched = []string{}
	}
	missing := r.MissingTags
	if missing == nil {
		missing = []string{}
	}
	return MatchResponse{
		Percentage:    r.Percentage,
		MatchedTags:   matched,
		MissingTags:   missing,
		TotalRequired: r.TotalRequired,
		MatchedCount:  r.MatchedCount,
		Eligible:      scoring.IsMatchEligible(r.Percentage),
	}
}

func FromRecommendations(rs []usecase.Recommendation) []RecommendationResponse {
	out := make([]RecommendationResponse, 0, len(rs))
	for _, r := range rs {
		out = append(out, RecommendationResponse{
			Opportunity: FromOpportunity(r.Opportunity),
			Match:       FromMatch(r.Result),
			HasApplied:  r.HasApplied,
		})
	}
	return out
}

func parseDate(s *string) *time.Time {
	if s == nil || *s == "" {
		return nil
	}
	t, err := time.Parse(dateLayout, *s)
	if err != nil {
		return nil
	}
	return &t
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(dateLayout)
	return &s
}
