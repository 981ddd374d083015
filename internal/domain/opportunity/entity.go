package opportunity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type WorkType string

const (
	WorkTypeRemote WorkType = "remote"
	WorkTypeOnsite WorkType = "onsite"
	WorkTypeHybrid WorkType = "hybrid"
)

type Opportunity struct {
	ID                  uuid.UUID
	CompanyID           uuid.UUID
	CompanyName         string
	Title               string
	Description         string
	Domain              string
	RequiredSkills      []string
	Duration            *string
	Stipend             *string
	Location            *string
	WorkType            *WorkType
	Prerequisites       *string
	ApplicationDeadline *time.Time
	StartDate           *time.Time
	IsActive            bool
	IsApproved          bool
	ViewsCount          int
	ApplicationsCount   int
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

func (o Opportunity) IsOpen() bool {
	return o.IsActive && o.IsApproved
}

// DeadlinePassed compares calendar dates, so the deadline day itself is still open.
func (o Opportunity) DeadlinePassed(now time.Time) bool {
	if o.ApplicationDeadline == nil {
		return false
	}
	d := o.ApplicationDeadline.UTC()
	n := now.UTC()
	deadline := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	today := time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, time.UTC)
	return deadline.Before(today)
}

func ParseWorkType(s string) (WorkType, bool) {
	switch WorkType(strings.ToLower(strings.TrimSpace(s))) {
	case WorkTypeRemote:
		return WorkTypeRemote, true
	case WorkTypeOnsite:
		return WorkTypeOnsite, true
	case WorkTypeHybrid:
		return WorkTypeHybrid, true
	default:
		return "", false
	}
}
