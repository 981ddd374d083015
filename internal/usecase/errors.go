package usecase

import (
	"errors"

	"placement-portal/internal/domain/scoring"
)

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrInvalidInput = errors.New("invalid input")
	ErrInternal     = errors.New("internal error")

	ErrProfileNotFound        = errors.New("student profile not found")
	ErrCompanyProfileNotFound = errors.New("company profile not found")
	ErrOpportunityNotFound    = errors.New("opportunity not found")
	ErrApplicationNotFound    = errors.New("application not found")
	ErrNotificationNotFound   = errors.New("notification not found")
	ErrExternalJobNotFound    = errors.New("external job not found")
	ErrUserNotFound           = errors.New("user not found")

	ErrOpportunityClosed    = errors.New("opportunity is not accepting applications")
	ErrDeadlinePassed       = errors.New("application deadline has passed")
	ErrProfileIncomplete    = errors.New("profile is not complete enough to apply")
	ErrAlreadyApplied       = errors.New("already applied to this opportunity")
	ErrSubmissionInProgress = errors.New("application submission already in progress")
	ErrCannotWithdraw       = errors.New("application can no longer be withdrawn")
	ErrInvalidStatus        = errors.New("invalid application status")
	ErrApplicationWithdrawn = errors.New("application was withdrawn")
	ErrSelfDeactivation     = errors.New("admins cannot deactivate their own account")
)

// IncompleteProfileError carries the score that blocked a submission.
type IncompleteProfileError struct {
	Completeness Completeness
}

func (e *IncompleteProfileError) Error() string {
	return ErrProfileIncomplete.Error()
}

func (e *IncompleteProfileError) Is(target error) bool {
	return target == ErrProfileIncomplete
}

// Completeness is the profile score together with its readiness band and
// per-field credit.
type Completeness struct {
	scoring.Assessment
	Breakdown scoring.Breakdown
}

func assess(b scoring.Breakdown) Completeness {
	return Completeness{Assessment: scoring.AssessCompleteness(b.Score), Breakdown: b}
}
