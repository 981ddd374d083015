package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"placement-portal/internal/domain/application"
	"placement-portal/internal/domain/notification"
	"placement-portal/internal/domain/opportunity"
	"placement-portal/internal/domain/scoring"
	"placement-portal/internal/domain/student"
	"placement-portal/internal/domain/user"
	"placement-portal/internal/infrastructure/cache"
	"placement-portal/internal/repository"

	"github.com/google/uuid"
)

const submitLockTTL = 15 * time.Second

// NotificationPublisher delivers a notification to its recipient. Delivery
// failures are the publisher's to log; they never fail the calling operation.
type NotificationPublisher interface {
	Publish(ctx context.Context, n notification.Notification)
}

type SubmitInput struct {
	OpportunityID uuid.UUID
	CoverLetter   string
}

type SubmitResult struct {
	Application  application.Application
	Completeness Completeness
}

type Applicant struct {
	Application  application.Application
	Student      student.Profile
	Completeness int
	Eligible     bool
}

type ApplicationUsecase interface {
	Submit(ctx context.Context, actor Actor, in SubmitInput) (SubmitResult, error)
	Get(ctx context.Context, actor Actor, id uuid.UUID) (application.Application, error)
	ListMine(ctx context.Context, actor Actor) ([]repository.ApplicationListRow, error)
	Withdraw(ctx context.Context, actor Actor, id uuid.UUID) (application.Application, error)
	ListApplicants(ctx context.Context, actor Actor, opportunityID uuid.UUID) ([]Applicant, error)
	UpdateStatus(ctx context.Context, actor Actor, id uuid.UUID, status string) (application.Application, error)
}

type Applications struct {
	applications  repository.ApplicationRepository
	opportunities repository.OpportunityRepository
	profiles      repository.StudentProfileRepository
	companies     repository.CompanyRepository
	cache         Cache
	notifier      NotificationPublisher
	logger        *log.Logger
	now           func() time.Time
}

func NewApplicationUsecase(
	applications repository.ApplicationRepository,
	opportunities repository.OpportunityRepository,
	profiles repository.StudentProfileRepository,
	companies repository.CompanyRepository,
	cache Cache,
	notifier NotificationPublisher,
	logger *log.Logger,
) *Applications {
	return &Applications{
		applications:  applications,
		opportunities: opportunities,
		profiles:      profiles,
		companies:     companies,
		cache:         cache,
		notifier:      notifier,
		logger:        logger,
		now:           time.Now,
	}
}

// Submit gates on opportunity state, then on profile completeness, then on
// duplicates. The skill match is frozen onto the application at this point.
func (u *Applications) Submit(ctx context.Context, actor Actor, in SubmitInput) (SubmitResult, error) {
	if !actor.IsStudent() {
		return SubmitResult{}, ErrForbidden
	}
	if in.OpportunityID == uuid.Nil {
		return SubmitResult{}, ErrInvalidInput
	}

	p, err := u.profiles.FindByUserID(ctx, actor.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return SubmitResult{}, ErrProfileNotFound
		}
		return SubmitResult{}, ErrInternal
	}

	o, err := u.opportunities.FindByID(ctx, in.OpportunityID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return SubmitResult{}, ErrOpportunityNotFound
		}
		return SubmitResult{}, ErrInternal
	}
	if !o.IsOpen() {
		return SubmitResult{}, ErrOpportunityClosed
	}
	if o.DeadlinePassed(u.now()) {
		return SubmitResult{}, ErrDeadlinePassed
	}

	c := assess(scoring.ProfileBreakdown(p))
	if !c.CanApply {
		return SubmitResult{}, &IncompleteProfileError{Completeness: c}
	}

	lockKey := cache.ApplyLockKey(p.ID, o.ID)
	if u.cache != nil {
		token := uuid.NewString()
		ok, err := u.cache.SetIfNotExists(ctx, lockKey, token, submitLockTTL)
		if err == nil && !ok {
			return SubmitResult{}, ErrSubmissionInProgress
		}
		if err == nil {
			defer func() { _, _ = u.cache.DeleteIfValue(context.WithoutCancel(ctx), lockKey, token) }()
		}
	}

	exists, err := u.applications.ExistsForStudent(ctx, p.ID, o.ID)
	if err != nil {
		return SubmitResult{}, ErrInternal
	}
	if exists {
		return SubmitResult{}, ErrAlreadyApplied
	}

	a := application.Application{
		ID:                   uuid.New(),
		StudentID:            p.ID,
		OpportunityID:        o.ID,
		ResumePath:           p.ResumePath,
		CoverLetter:          strings.TrimSpace(in.CoverLetter),
		Status:               application.StatusPending,
		SkillMatchPercentage: scoring.ComputeSkillMatch(p.Skills, o.RequiredSkills),
	}

	created, err := u.applications.Submit(ctx, a)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return SubmitResult{}, ErrAlreadyApplied
		}
		return SubmitResult{}, ErrInternal
	}

	u.logf("[Applications] Submitted | application_id=%s opportunity_id=%s match=%d completeness=%d",
		created.ID, o.ID, created.SkillMatchPercentage, c.Score)

	if companyUserID, ok := u.companyUserID(ctx, o.CompanyID); ok {
		u.notify(ctx, notification.Notification{
			UserID:    companyUserID,
			Kind:      notification.KindNewApplication,
			Title:     "New Application",
			Message:   fmt.Sprintf("%s applied for %q", studentName(p), o.Title),
			RelatedID: &created.ID,
		})
	}

	return SubmitResult{Application: created, Completeness: c}, nil
}

func (u *Applications) Get(ctx context.Context, actor Actor, id uuid.UUID) (application.Application, error) {
	a, err := u.find(ctx, id)
	if err != nil {
		return application.Application{}, err
	}

	switch actor.Role {
	case user.RoleAdmin:
		return a, nil
	case user.RoleStudent:
		if _, err := u.requireApplicant(ctx, actor, a); err != nil {
			return application.Application{}, err
		}
		return a, nil
	case user.RoleCompany:
		if _, err := u.requireOwnedOpportunity(ctx, actor, a.OpportunityID); err != nil {
			return application.Application{}, err
		}
		return a, nil
	default:
		return application.Application{}, ErrForbidden
	}
}

func (u *Applications) ListMine(ctx context.Context, actor Actor) ([]repository.ApplicationListRow, error) {
	if !actor.IsStudent() {
		return nil, ErrForbidden
	}
	p, err := u.profiles.FindByUserID(ctx, actor.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return []repository.ApplicationListRow{}, nil
		}
		return nil, ErrInternal
	}
	rows, err := u.applications.ListByStudent(ctx, p.ID)
	if err != nil {
		return nil, ErrInternal
	}
	return rows, nil
}

func (u *Applications) Withdraw(ctx context.Context, actor Actor, id uuid.UUID) (application.Application, error) {
	if !actor.IsStudent() {
		return application.Application{}, ErrForbidden
	}
	a, err := u.find(ctx, id)
	if err != nil {
		return application.Application{}, err
	}
	p, err := u.requireApplicant(ctx, actor, a)
	if err != nil {
		return application.Application{}, err
	}
	if !a.CanWithdraw() {
		return application.Application{}, ErrCannotWithdraw
	}

	// The status guard is re-checked by the update itself so a concurrent
	// review decision cannot be overwritten.
	updated, err := u.applications.UpdateStatus(ctx, a.ID, application.WithdrawableStatuses(), application.StatusWithdrawn)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrConflict):
			return application.Application{}, ErrCannotWithdraw
		case errors.Is(err, repository.ErrNotFound):
			return application.Application{}, ErrApplicationNotFound
		}
		return application.Application{}, ErrInternal
	}
	u.logf("[Applications] Withdrawn | application_id=%s", a.ID)

	if o, err := u.opportunities.FindByID(ctx, a.OpportunityID); err == nil {
		if companyUserID, ok := u.companyUserID(ctx, o.CompanyID); ok {
			u.notify(ctx, notification.Notification{
				UserID:    companyUserID,
				Kind:      notification.KindApplicationWithdrawn,
				Title:     "Application Withdrawn",
				Message:   fmt.Sprintf("%s withdrew their application for %q", studentName(p), o.Title),
				RelatedID: &updated.ID,
			})
		}
	}
	return updated, nil
}

// ListApplicants ranks by the match stored at submit time; completeness is
// recomputed from each applicant's current profile.
func (u *Applications) ListApplicants(ctx context.Context, actor Actor, opportunityID uuid.UUID) ([]Applicant, error) {
	if _, err := u.requireOwnedOpportunity(ctx, actor, opportunityID); err != nil {
		return nil, err
	}

	apps, err := u.applications.ListByOpportunity(ctx, opportunityID)
	if err != nil {
		return nil, ErrInternal
	}

	ids := make([]uuid.UUID, 0, len(apps))
	for _, a := range apps {
		ids = append(ids, a.StudentID)
	}
	profiles, err := u.profiles.FindByIDs(ctx, ids)
	if err != nil {
		return nil, ErrInternal
	}

	out := make([]Applicant, 0, len(apps))
	for _, a := range apps {
		p := profiles[a.StudentID]
		out = append(out, Applicant{
			Application:  a,
			Student:      p,
			Completeness: scoring.ComputeProfileCompleteness(p),
			Eligible:     scoring.IsMatchEligible(a.SkillMatchPercentage),
		})
	}
	return out, nil
}

func (u *Applications) UpdateStatus(ctx context.Context, actor Actor, id uuid.UUID, status string) (application.Application, error) {
	next, ok := application.ReviewStatus(strings.ToLower(strings.TrimSpace(status)))
	if !ok {
		return application.Application{}, ErrInvalidStatus
	}

	a, err := u.find(ctx, id)
	if err != nil {
		return application.Application{}, err
	}
	o, err := u.requireOwnedOpportunity(ctx, actor, a.OpportunityID)
	if err != nil {
		return application.Application{}, err
	}
	if !a.CanReview() {
		return application.Application{}, ErrApplicationWithdrawn
	}

	updated, err := u.applications.UpdateStatus(ctx, a.ID, application.ReviewableStatuses(), next)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrConflict):
			return application.Application{}, ErrApplicationWithdrawn
		case errors.Is(err, repository.ErrNotFound):
			return application.Application{}, ErrApplicationNotFound
		}
		return application.Application{}, ErrInternal
	}
	u.logf("[Applications] Status changed | application_id=%s from=%s to=%s", a.ID, a.Status, next)

	if p, err := u.profiles.FindByID(ctx, a.StudentID); err == nil {
		u.notify(ctx, notification.Notification{
			UserID:    p.UserID,
			Kind:      notification.KindApplicationStatus,
			Title:     "Application Update",
			Message:   fmt.Sprintf("Your application for %q is now %s", o.Title, next),
			RelatedID: &updated.ID,
		})
	}
	return updated, nil
}

func (u *Applications) find(ctx context.Context, id uuid.UUID) (application.Application, error) {
	if id == uuid.Nil {
		return application.Application{}, ErrApplicationNotFound
	}
	a, err := u.applications.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return application.Application{}, ErrApplicationNotFound
		}
		return application.Application{}, ErrInternal
	}
	return a, nil
}

func (u *Applications) requireApplicant(ctx context.Context, actor Actor, a application.Application) (student.Profile, error) {
	p, err := u.profiles.FindByUserID(ctx, actor.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return student.Profile{}, ErrForbidden
		}
		return student.Profile{}, ErrInternal
	}
	if p.ID != a.StudentID {
		return student.Profile{}, ErrForbidden
	}
	return p, nil
}

// requireOwnedOpportunity lets admins through and otherwise requires the
// caller's company to own the opportunity.
func (u *Applications) requireOwnedOpportunity(ctx context.Context, actor Actor, opportunityID uuid.UUID) (opportunity.Opportunity, error) {
	if opportunityID == uuid.Nil {
		return opportunity.Opportunity{}, ErrOpportunityNotFound
	}
	o, err := u.opportunities.FindByID(ctx, opportunityID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return opportunity.Opportunity{}, ErrOpportunityNotFound
		}
		return opportunity.Opportunity{}, ErrInternal
	}
	if actor.Role == user.RoleAdmin {
		return o, nil
	}
	if !actor.IsCompany() {
		return opportunity.Opportunity{}, ErrForbidden
	}
	c, err := u.companies.FindByUserID(ctx, actor.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return opportunity.Opportunity{}, ErrForbidden
		}
		return opportunity.Opportunity{}, ErrInternal
	}
	if c.ID != o.CompanyID {
		return opportunity.Opportunity{}, ErrForbidden
	}
	return o, nil
}

func (u *Applications) companyUserID(ctx context.Context, companyID uuid.UUID) (uuid.UUID, bool) {
	c, err := u.companies.FindByID(ctx, companyID)
	if err != nil {
		u.logf("[Applications] Company lookup failed | company_id=%s error=%v", companyID, err)
		return uuid.Nil, false
	}
	return c.UserID, true
}

func (u *Applications) notify(ctx context.Context, n notification.Notification) {
	if u.notifier == nil {
		return
	}
	u.notifier.Publish(context.WithoutCancel(ctx), n)
}

func studentName(p student.Profile) string {
	parts := make([]string, 0, 2)
	for _, s := range []*string{p.FirstName, p.LastName} {
		if s != nil && strings.TrimSpace(*s) != "" {
			parts = append(parts, strings.TrimSpace(*s))
		}
	}
	if len(parts) == 0 {
		return "A student"
	}
	return strings.Join(parts, " ")
}

func (u *Applications) logf(format string, args ...any) {
	if u.logger != nil {
		u.logger.Printf(format, args...)
	}
}
