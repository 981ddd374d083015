package externaljob

import (
	"time"

	"github.com/google/uuid"
)

// Job is a listing imported from an outside job board. It is read-only to
// portal users and never accepts applications.
type Job struct {
	ID             uuid.UUID
	Source         string
	ExternalID     string
	Title          string
	CompanyName    *string
	Location       *string
	JobType        *string
	Description    *string
	ApplicationURL *string
	RequiredSkills []string
	PostedAt       *time.Time
	FetchedAt      time.Time
	IsActive       bool
}

type RunStatus string

const (
	RunRunning  RunStatus = "running"
	RunFinished RunStatus = "finished"
	RunFailed   RunStatus = "failed"
)

type Run struct {
	ID         uuid.UUID
	Source     string
	StartedAt  time.Time
	FinishedAt *time.Time
	Status     RunStatus
	Fetched    int
	Stored     int
	Failed     int
}
