package application

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending     Status = "pending"
	StatusShortlisted Status = "shortlisted"
	StatusInterview   Status = "interview"
	StatusAccepted    Status = "accepted"
	StatusRejected    Status = "rejected"
	StatusWithdrawn   Status = "withdrawn"
)

var AllStatuses = []Status{
	StatusPending,
	StatusShortlisted,
	StatusInterview,
	StatusAccepted,
	StatusRejected,
	StatusWithdrawn,
}

// ReviewStatus parses a status a company may move an application to.
func ReviewStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusShortlisted, StatusInterview, StatusAccepted, StatusRejected:
		return Status(s), true
	default:
		return "", false
	}
}

type Application struct {
	ID                   uuid.UUID
	StudentID            uuid.UUID
	OpportunityID        uuid.UUID
	ResumePath           *string
	CoverLetter          string
	Status               Status
	SkillMatchPercentage int
	Notes                *string
	AppliedAt            time.Time
	UpdatedAt            time.Time
}

// WithdrawableStatuses are the states a student may still withdraw from.
func WithdrawableStatuses() []Status {
	return []Status{StatusPending, StatusShortlisted, StatusInterview}
}

// ReviewableStatuses are the states a company may move an application out of.
func ReviewableStatuses() []Status {
	return []Status{StatusPending, StatusShortlisted, StatusInterview, StatusAccepted, StatusRejected}
}

func (a Application) CanWithdraw() bool {
	return slices.Contains(WithdrawableStatuses(), a.Status)
}

func (a Application) CanReview() bool {
	return slices.Contains(ReviewableStatuses(), a.Status)
}
