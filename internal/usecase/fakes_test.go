package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"placement-portal/internal/domain/application"
	"placement-portal/internal/domain/company"
	"placement-portal/internal/domain/externaljob"
	"placement-portal/internal/domain/notification"
	"placement-portal/internal/domain/opportunity"
	"placement-portal/internal/domain/student"
	"placement-portal/internal/domain/user"
	"placement-portal/internal/repository"

	"github.com/google/uuid"
)

type fakeUsers struct {
	mu   sync.Mutex
	byID map[uuid.UUID]user.User
}

func newFakeUsers() *fakeUsers { return &fakeUsers{byID: map[uuid.UUID]user.User{}} }

func (f *fakeUsers) CreateUser(_ context.Context, u user.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.byID {
		if existing.Email == u.Email {
			return repository.ErrConflict
		}
	}
	f.byID[u.ID] = u
	return nil
}

func (f *fakeUsers) GetUserByID(_ context.Context, id uuid.UUID) (user.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func (f *fakeUsers) GetUserByEmail(_ context.Context, email string) (user.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (f *fakeUsers) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := f.GetUserByEmail(ctx, email)
	return err == nil, nil
}

func (f *fakeUsers) ListUsers(_ context.Context, filter repository.UserFilter) ([]user.User, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]user.User, 0)
	for _, u := range f.byID {
		if filter.Role != "" && u.Role != filter.Role {
			continue
		}
		if filter.Active != nil && u.IsActive != *filter.Active {
			continue
		}
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	total := len(out)
	start := min(filter.Offset, total)
	end := min(start+filter.Limit, total)
	return out[start:end], total, nil
}

func (f *fakeUsers) SetActive(_ context.Context, id uuid.UUID, active bool) (user.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	u.IsActive = active
	f.byID[id] = u
	return u, nil
}

type fakeProfiles struct {
	mu     sync.Mutex
	byUser map[uuid.UUID]student.Profile
}

func newFakeProfiles(ps ...student.Profile) *fakeProfiles {
	f := &fakeProfiles{byUser: map[uuid.UUID]student.Profile{}}
	for _, p := range ps {
		f.byUser[p.UserID] = p
	}
	return f
}

func (f *fakeProfiles) FindByUserID(_ context.Context, userID uuid.UUID) (student.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.byUser[userID]
	if !ok {
		return student.Profile{}, repository.ErrNotFound
	}
	return p, nil
}

func (f *fakeProfiles) FindByID(_ context.Context, id uuid.UUID) (student.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.byUser {
		if p.ID == id {
			return p, nil
		}
	}
	return student.Profile{}, repository.ErrNotFound
}

func (f *fakeProfiles) FindByIDs(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]student.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := map[uuid.UUID]student.Profile{}
	for _, id := range ids {
		for _, p := range f.byUser {
			if p.ID == id {
				out[id] = p
			}
		}
	}
	return out, nil
}

func (f *fakeProfiles) ListAll(context.Context) ([]student.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]student.Profile, 0, len(f.byUser))
	for _, p := range f.byUser {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeProfiles) Upsert(_ context.Context, p student.Profile) (student.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if existing, ok := f.byUser[p.UserID]; ok {
		p.ID = existing.ID
	}
	f.byUser[p.UserID] = p
	return p, nil
}

type fakeOpportunities struct {
	mu        sync.Mutex
	byID      map[uuid.UUID]opportunity.Opportunity
	listCalls int
}

func newFakeOpportunities(os ...opportunity.Opportunity) *fakeOpportunities {
	f := &fakeOpportunities{byID: map[uuid.UUID]opportunity.Opportunity{}}
	for _, o := range os {
		f.byID[o.ID] = o
	}
	return f
}

func (f *fakeOpportunities) FindByID(_ context.Context, id uuid.UUID) (opportunity.Opportunity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.byID[id]
	if !ok {
		return opportunity.Opportunity{}, repository.ErrNotFound
	}
	return o, nil
}

func (f *fakeOpportunities) open(filter repository.OpportunityFilter) []opportunity.Opportunity {
	out := make([]opportunity.Opportunity, 0)
	for _, o := range f.byID {
		if !o.IsOpen() {
			continue
		}
		if filter.Domain != "" && !strings.EqualFold(o.Domain, filter.Domain) {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(o.Title), strings.ToLower(filter.Search)) {
			continue
		}
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (f *fakeOpportunities) ListOpen(_ context.Context, filter repository.OpportunityFilter) ([]opportunity.Opportunity, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	all := f.open(filter)
	start := min(filter.Offset, len(all))
	end := min(start+filter.Limit, len(all))
	return all[start:end], len(all), nil
}

func (f *fakeOpportunities) ListAllOpen(context.Context) ([]opportunity.Opportunity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.open(repository.OpportunityFilter{}), nil
}

func (f *fakeOpportunities) ListByCompany(_ context.Context, companyID uuid.UUID) ([]opportunity.Opportunity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]opportunity.Opportunity, 0)
	for _, o := range f.byID {
		if o.CompanyID == companyID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeOpportunities) ListDomains(context.Context) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	seen := map[string]bool{}
	out := make([]string, 0)
	for _, o := range f.open(repository.OpportunityFilter{}) {
		if !seen[o.Domain] {
			seen[o.Domain] = true
			out = append(out, o.Domain)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (f *fakeOpportunities) Create(_ context.Context, o opportunity.Opportunity) (opportunity.Opportunity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o.CreatedAt = time.Now()
	f.byID[o.ID] = o
	return o, nil
}

func (f *fakeOpportunities) SetApproval(_ context.Context, id uuid.UUID, approved bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.byID[id]
	if !ok {
		return repository.ErrNotFound
	}
	o.IsApproved = approved
	f.byID[id] = o
	return nil
}

func (f *fakeOpportunities) Update(_ context.Context, o opportunity.Opportunity) (opportunity.Opportunity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[o.ID]; !ok {
		return opportunity.Opportunity{}, repository.ErrNotFound
	}
	o.UpdatedAt = time.Now()
	f.byID[o.ID] = o
	return o, nil
}

func (f *fakeOpportunities) Counters(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]repository.OpportunityCounters, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := map[uuid.UUID]repository.OpportunityCounters{}
	for _, id := range ids {
		if o, ok := f.byID[id]; ok {
			out[id] = repository.OpportunityCounters{Views: o.ViewsCount, Applications: o.ApplicationsCount}
		}
	}
	return out, nil
}

func (f *fakeOpportunities) IncrementViews(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	o := f.byID[id]
	o.ViewsCount++
	f.byID[id] = o
	return nil
}

type fakeApplications struct {
	mu    sync.Mutex
	byID  map[uuid.UUID]application.Application
	opps  *fakeOpportunities
	stats repository.ApplicationStats

	// onSubmit and beforeUpdate run outside the lock so a test can interleave
	// another caller at that point.
	onSubmit     func()
	beforeUpdate func()
}

func newFakeApplications(opps *fakeOpportunities, as ...application.Application) *fakeApplications {
	f := &fakeApplications{byID: map[uuid.UUID]application.Application{}, opps: opps}
	for _, a := range as {
		f.byID[a.ID] = a
	}
	return f
}

func (f *fakeApplications) FindByID(_ context.Context, id uuid.UUID) (application.Application, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.byID[id]
	if !ok {
		return application.Application{}, repository.ErrNotFound
	}
	return a, nil
}

func (f *fakeApplications) ExistsForStudent(_ context.Context, studentID, opportunityID uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.byID {
		if a.StudentID == studentID && a.OpportunityID == opportunityID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeApplications) ListAppliedOpportunityIDs(_ context.Context, studentID uuid.UUID) (map[uuid.UUID]struct{}, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := map[uuid.UUID]struct{}{}
	for _, a := range f.byID {
		if a.StudentID == studentID {
			out[a.OpportunityID] = struct{}{}
		}
	}
	return out, nil
}

func (f *fakeApplications) ListByStudent(_ context.Context, studentID uuid.UUID) ([]repository.ApplicationListRow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]repository.ApplicationListRow, 0)
	for _, a := range f.byID {
		if a.StudentID == studentID {
			out = append(out, repository.ApplicationListRow{Application: a})
		}
	}
	return out, nil
}

func (f *fakeApplications) ListByOpportunity(_ context.Context, opportunityID uuid.UUID) ([]application.Application, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]application.Application, 0)
	for _, a := range f.byID {
		if a.OpportunityID == opportunityID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SkillMatchPercentage > out[j].SkillMatchPercentage })
	return out, nil
}

func (f *fakeApplications) Submit(_ context.Context, a application.Application) (application.Application, error) {
	if f.onSubmit != nil {
		f.onSubmit()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.byID {
		if existing.StudentID == a.StudentID && existing.OpportunityID == a.OpportunityID {
			return application.Application{}, repository.ErrConflict
		}
	}
	a.AppliedAt = time.Now()
	f.byID[a.ID] = a
	if f.opps != nil {
		f.opps.mu.Lock()
		o := f.opps.byID[a.OpportunityID]
		o.ApplicationsCount++
		f.opps.byID[a.OpportunityID] = o
		f.opps.mu.Unlock()
	}
	return a, nil
}

func (f *fakeApplications) UpdateStatus(_ context.Context, id uuid.UUID, from []application.Status, status application.Status) (application.Application, error) {
	if hook := f.beforeUpdate; hook != nil {
		f.beforeUpdate = nil
		hook()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.byID[id]
	if !ok {
		return application.Application{}, repository.ErrNotFound
	}
	if !slices.Contains(from, a.Status) {
		return application.Application{}, repository.ErrConflict
	}
	a.Status = status
	f.byID[id] = a
	return a, nil
}

func (f *fakeApplications) Stats(context.Context, int) (repository.ApplicationStats, error) {
	return f.stats, nil
}

type fakeCompanies struct {
	mu   sync.Mutex
	byID map[uuid.UUID]company.Profile
}

func newFakeCompanies(cs ...company.Profile) *fakeCompanies {
	f := &fakeCompanies{byID: map[uuid.UUID]company.Profile{}}
	for _, c := range cs {
		f.byID[c.ID] = c
	}
	return f
}

func (f *fakeCompanies) FindByUserID(_ context.Context, userID uuid.UUID) (company.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.byID {
		if c.UserID == userID {
			return c, nil
		}
	}
	return company.Profile{}, repository.ErrNotFound
}

func (f *fakeCompanies) FindByID(_ context.Context, id uuid.UUID) (company.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.byID[id]
	if !ok {
		return company.Profile{}, repository.ErrNotFound
	}
	return c, nil
}

func (f *fakeCompanies) Upsert(_ context.Context, p company.Profile) (company.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	f.byID[p.ID] = p
	return p, nil
}

type fakeCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newFakeCache() *fakeCache { return &fakeCache{data: map[string][]byte{}} }

func (c *fakeCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, out)
}

func (c *fakeCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = b
	return nil
}

func (c *fakeCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

func (c *fakeCache) DeleteByPattern(_ context.Context, pattern string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	prefix := strings.TrimSuffix(pattern, "*")
	for k := range c.data {
		if strings.HasPrefix(k, prefix) {
			delete(c.data, k)
		}
	}
	return nil
}

func (c *fakeCache) SetIfNotExists(_ context.Context, key string, value string, _ time.Duration) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.data[key]; ok {
		return false, nil
	}
	c.data[key] = []byte(value)
	return true, nil
}

func (c *fakeCache) DeleteIfValue(_ context.Context, key string, value string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if b, ok := c.data[key]; !ok || string(b) != value {
		return false, nil
	}
	delete(c.data, key)
	return true, nil
}

func (c *fakeCache) value(key string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return string(c.data[key])
}

func (c *fakeCache) has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.data[key]
	return ok
}

type fakeNotifier struct {
	mu     sync.Mutex
	events []notification.Notification
}

func (n *fakeNotifier) Publish(_ context.Context, msg notification.Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, msg)
}

func (n *fakeNotifier) last() notification.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.events[len(n.events)-1]
}

type fakeNotifications struct {
	mu      sync.Mutex
	byID    map[uuid.UUID]notification.Notification
	failing bool
}

func newFakeNotifications() *fakeNotifications {
	return &fakeNotifications{byID: map[uuid.UUID]notification.Notification{}}
}

func (f *fakeNotifications) Create(_ context.Context, n notification.Notification) (notification.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing {
		return notification.Notification{}, errors.New("db down")
	}
	n.CreatedAt = time.Now()
	f.byID[n.ID] = n
	return n, nil
}

func (f *fakeNotifications) FindByID(_ context.Context, id uuid.UUID) (notification.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n, ok := f.byID[id]
	if !ok {
		return notification.Notification{}, repository.ErrNotFound
	}
	return n, nil
}

func (f *fakeNotifications) ListByUser(_ context.Context, userID uuid.UUID, unreadOnly bool, limit int) ([]notification.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]notification.Notification, 0)
	for _, n := range f.byID {
		if n.UserID != userID || (unreadOnly && n.IsRead) {
			continue
		}
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeNotifications) MarkRead(_ context.Context, id uuid.UUID) (notification.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n, ok := f.byID[id]
	if !ok {
		return notification.Notification{}, repository.ErrNotFound
	}
	n.IsRead = true
	f.byID[id] = n
	return n, nil
}

func (f *fakeNotifications) MarkAllRead(_ context.Context, userID uuid.UUID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var changed int64
	for id, n := range f.byID {
		if n.UserID == userID && !n.IsRead {
			n.IsRead = true
			f.byID[id] = n
			changed++
		}
	}
	return changed, nil
}

func (f *fakeNotifications) CountUnread(_ context.Context, userID uuid.UUID) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	for _, n := range f.byID {
		if n.UserID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

type fakePusher struct {
	mu     sync.Mutex
	pushed []notification.Notification
}

func (p *fakePusher) PushNotification(n notification.Notification) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pushed = append(p.pushed, n)
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool { return &b }

// completeProfile scores 100 when at least one skill is given, 85 otherwise.
func completeProfile(userID uuid.UUID, skills ...string) student.Profile {
	dob := time.Date(2002, 5, 1, 0, 0, 0, 0, time.UTC)
	return student.Profile{
		ID:          uuid.New(),
		UserID:      userID,
		FirstName:   strPtr("Asha"),
		LastName:    strPtr("Rao"),
		Email:       strPtr("asha@example.edu"),
		Phone:       strPtr("+91 98450 00000"),
		DateOfBirth: &dob,
		Course:      strPtr("B.Tech CSE"),
		Skills:      skills,
		Education:   []student.Education{{Degree: "B.Tech", Institution: "NIT"}},
		ResumePath:  strPtr("resumes/asha.pdf"),
		Bio:         strPtr("Backend enthusiast"),
		Address:     strPtr("Bengaluru"),
	}
}

func openOpportunity(companyID uuid.UUID, title string, created time.Time, tags ...string) opportunity.Opportunity {
	return opportunity.Opportunity{
		ID:             uuid.New(),
		CompanyID:      companyID,
		CompanyName:    "Acme",
		Title:          title,
		Description:    title + " role",
		Domain:         "Software",
		RequiredSkills: tags,
		IsActive:       true,
		IsApproved:     true,
		CreatedAt:      created,
	}
}

func studentActor(id uuid.UUID) Actor { return Actor{UserID: id, Role: user.RoleStudent} }
func companyActor(id uuid.UUID) Actor { return Actor{UserID: id, Role: user.RoleCompany} }

type fakeExternalJobs struct {
	mu   sync.Mutex
	jobs []externaljob.Job
	err  error
}

func newFakeExternalJobs(js ...externaljob.Job) *fakeExternalJobs {
	return &fakeExternalJobs{jobs: js}
}

func (f *fakeExternalJobs) Upsert(_ context.Context, j externaljob.Job) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.jobs = append(f.jobs, j)
	return nil
}

func (f *fakeExternalJobs) DeactivateSource(_ context.Context, source string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for i := range f.jobs {
		if f.jobs[i].Source == source && f.jobs[i].IsActive {
			f.jobs[i].IsActive = false
			n++
		}
	}
	return n, nil
}

func (f *fakeExternalJobs) ListActive(_ context.Context, limit int) ([]externaljob.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	out := make([]externaljob.Job, 0)
	for _, j := range f.jobs {
		if j.IsActive && len(out) < limit {
			out = append(out, j)
		}
	}
	return out, nil
}

func (f *fakeExternalJobs) FindByID(_ context.Context, id uuid.UUID) (externaljob.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, j := range f.jobs {
		if j.ID == id {
			return j, nil
		}
	}
	return externaljob.Job{}, repository.ErrNotFound
}

func (f *fakeExternalJobs) ExpireOlderThan(context.Context, time.Time) (int64, error) { return 0, nil }

func (f *fakeExternalJobs) StartRun(_ context.Context, source string) (externaljob.Run, error) {
	return externaljob.Run{ID: uuid.New(), Source: source, Status: externaljob.RunRunning}, nil
}

func (f *fakeExternalJobs) FinishRun(context.Context, externaljob.Run) error { return nil }

func externalJob(title string, skills ...string) externaljob.Job {
	return externaljob.Job{
		ID:             uuid.New(),
		Source:         "board",
		ExternalID:     title,
		Title:          title,
		RequiredSkills: skills,
		FetchedAt:      time.Now(),
		IsActive:       true,
	}
}
