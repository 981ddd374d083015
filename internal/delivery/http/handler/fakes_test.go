package handler

import (
	"context"

	"placement-portal/internal/domain/application"
	"placement-portal/internal/domain/company"
	"placement-portal/internal/domain/externaljob"
	"placement-portal/internal/domain/notification"
	"placement-portal/internal/domain/opportunity"
	"placement-portal/internal/domain/student"
	"placement-portal/internal/domain/user"
	"placement-portal/internal/repository"
	"placement-portal/internal/usecase"
	ucauth "placement-portal/internal/usecase/auth"

	"github.com/google/uuid"
)

type fakeAuth struct {
	register func(in ucauth.RegisterInput) (user.User, string, string, error)
	login    func(in ucauth.LoginInput) (user.User, string, string, error)
}

func (f *fakeAuth) Register(_ context.Context, in ucauth.RegisterInput) (user.User, string, string, error) {
	return f.register(in)
}

func (f *fakeAuth) Login(_ context.Context, in ucauth.LoginInput) (user.User, string, string, error) {
	return f.login(in)
}

func (f *fakeAuth) Refresh(context.Context, string) (string, string, error) {
	return "a", "r", nil
}

type fakeProfiles struct {
	profile student.Profile
	comp    usecase.Completeness
	err     error
	lastIn  usecase.ProfileInput
}

func (f *fakeProfiles) GetProfile(context.Context, uuid.UUID) (student.Profile, usecase.Completeness, error) {
	return f.profile, f.comp, f.err
}

func (f *fakeProfiles) UpdateProfile(_ context.Context, _ uuid.UUID, in usecase.ProfileInput) (student.Profile, usecase.Completeness, error) {
	f.lastIn = in
	return f.profile, f.comp, f.err
}

func (f *fakeProfiles) GetCompleteness(context.Context, uuid.UUID) (usecase.Completeness, error) {
	return f.comp, f.err
}

type fakeOpportunities struct {
	page       usecase.OpportunityPage
	lastParams usecase.OpportunityListParams
	lastViewer usecase.Actor
	lastPatch  usecase.OpportunityPatch
	closed     uuid.UUID
	item       usecase.OpportunityItem
	err        error
}

func (f *fakeOpportunities) List(_ context.Context, viewer usecase.Actor, params usecase.OpportunityListParams) (usecase.OpportunityPage, error) {
	f.lastViewer = viewer
	f.lastParams = params
	return f.page, f.err
}

func (f *fakeOpportunities) Get(_ context.Context, viewer usecase.Actor, _ uuid.UUID) (usecase.OpportunityItem, error) {
	f.lastViewer = viewer
	return f.item, f.err
}

func (f *fakeOpportunities) Domains(context.Context) ([]string, error) {
	return []string{"Backend", "Data"}, f.err
}

func (f *fakeOpportunities) Create(_ context.Context, _ usecase.Actor, in usecase.OpportunityInput) (opportunity.Opportunity, error) {
	return opportunity.Opportunity{ID: uuid.New(), Title: in.Title, Domain: in.Domain, RequiredSkills: in.RequiredSkills}, f.err
}

func (f *fakeOpportunities) ListMine(context.Context, usecase.Actor) ([]opportunity.Opportunity, error) {
	return nil, f.err
}

func (f *fakeOpportunities) Update(_ context.Context, _ usecase.Actor, id uuid.UUID, patch usecase.OpportunityPatch) (opportunity.Opportunity, error) {
	f.lastPatch = patch
	o := opportunity.Opportunity{ID: id, Title: "Go Intern", IsActive: true}
	if patch.Title != nil {
		o.Title = *patch.Title
	}
	return o, f.err
}

func (f *fakeOpportunities) Close(_ context.Context, _ usecase.Actor, id uuid.UUID) (opportunity.Opportunity, error) {
	f.closed = id
	return opportunity.Opportunity{ID: id, IsActive: false}, f.err
}

func (f *fakeOpportunities) SetApproval(_ context.Context, id uuid.UUID, approved bool) (opportunity.Opportunity, error) {
	return opportunity.Opportunity{ID: id, IsApproved: approved}, f.err
}

type fakeMatching struct {
	lastParams usecase.RecommendationParams
	err        error
}

func (f *fakeMatching) Match(_ context.Context, _ usecase.Actor, id uuid.UUID) (usecase.MatchView, error) {
	return usecase.MatchView{OpportunityID: id}, f.err
}

func (f *fakeMatching) Recommend(_ context.Context, _ usecase.Actor, params usecase.RecommendationParams) ([]usecase.Recommendation, error) {
	f.lastParams = params
	return nil, f.err
}

type fakeApplications struct {
	submitErr error
	err       error
	lastIn    usecase.SubmitInput
	lastState string
}

func (f *fakeApplications) Submit(_ context.Context, _ usecase.Actor, in usecase.SubmitInput) (usecase.SubmitResult, error) {
	f.lastIn = in
	if f.submitErr != nil {
		return usecase.SubmitResult{}, f.submitErr
	}
	return usecase.SubmitResult{Application: application.Application{ID: uuid.New(), OpportunityID: in.OpportunityID, Status: application.StatusPending}}, nil
}

func (f *fakeApplications) Get(_ context.Context, _ usecase.Actor, id uuid.UUID) (application.Application, error) {
	return application.Application{ID: id}, f.err
}

func (f *fakeApplications) ListMine(context.Context, usecase.Actor) ([]repository.ApplicationListRow, error) {
	return nil, f.err
}

func (f *fakeApplications) Withdraw(_ context.Context, _ usecase.Actor, id uuid.UUID) (application.Application, error) {
	return application.Application{ID: id, Status: application.StatusWithdrawn}, f.err
}

func (f *fakeApplications) ListApplicants(context.Context, usecase.Actor, uuid.UUID) ([]usecase.Applicant, error) {
	return nil, f.err
}

func (f *fakeApplications) UpdateStatus(_ context.Context, _ usecase.Actor, id uuid.UUID, status string) (application.Application, error) {
	f.lastState = status
	return application.Application{ID: id, Status: application.Status(status)}, f.err
}

type fakeAnalytics struct{}

func (fakeAnalytics) Placements(context.Context, usecase.Actor) (usecase.PlacementReport, error) {
	return usecase.PlacementReport{TotalApplications: 3, ApplicationsByStatus: map[application.Status]int{application.StatusPending: 3}}, nil
}

type fakePinger struct{ err error }

func (f fakePinger) Ping(context.Context) error { return f.err }

type fakeCompanies struct {
	profile company.Profile
	lastIn  usecase.CompanyProfileInput
	err     error
}

func (f *fakeCompanies) GetProfile(context.Context, usecase.Actor) (company.Profile, error) {
	return f.profile, f.err
}

func (f *fakeCompanies) UpdateProfile(_ context.Context, _ usecase.Actor, in usecase.CompanyProfileInput) (company.Profile, error) {
	f.lastIn = in
	p := f.profile
	if in.Name != nil {
		p.Name = *in.Name
	}
	return p, f.err
}

type fakeAdmin struct {
	page       usecase.UserPage
	lastParams usecase.UserListParams
	lastActive *bool
	err        error
}

func (f *fakeAdmin) ListUsers(_ context.Context, _ usecase.Actor, params usecase.UserListParams) (usecase.UserPage, error) {
	f.lastParams = params
	return f.page, f.err
}

func (f *fakeAdmin) SetUserActive(_ context.Context, _ usecase.Actor, id uuid.UUID, active bool) (user.User, error) {
	f.lastActive = &active
	return user.User{ID: id, Email: "x@uni.edu", Role: user.RoleStudent, IsActive: active}, f.err
}

type fakeNotifications struct {
	items      []notification.Notification
	unread     int
	marked     uuid.UUID
	lastParams usecase.NotificationListParams
	err        error
}

func (f *fakeNotifications) List(_ context.Context, _ usecase.Actor, params usecase.NotificationListParams) ([]notification.Notification, error) {
	f.lastParams = params
	return f.items, f.err
}

func (f *fakeNotifications) UnreadCount(context.Context, usecase.Actor) (int, error) {
	return f.unread, f.err
}

func (f *fakeNotifications) MarkRead(_ context.Context, _ usecase.Actor, id uuid.UUID) (notification.Notification, error) {
	f.marked = id
	return notification.Notification{ID: id, IsRead: true}, f.err
}

func (f *fakeNotifications) MarkAllRead(context.Context, usecase.Actor) (int64, error) {
	return int64(f.unread), f.err
}

type fakeExternalJobs struct {
	matches    []usecase.ExternalJobMatch
	lastParams usecase.ExternalJobParams
	err        error
}

func (f *fakeExternalJobs) ListForStudent(_ context.Context, _ usecase.Actor, params usecase.ExternalJobParams) ([]usecase.ExternalJobMatch, error) {
	f.lastParams = params
	return f.matches, f.err
}

func (f *fakeExternalJobs) Match(_ context.Context, _ usecase.Actor, id uuid.UUID) (usecase.ExternalJobMatch, error) {
	return usecase.ExternalJobMatch{Job: externaljob.Job{ID: id, Title: "Go Intern"}}, f.err
}
