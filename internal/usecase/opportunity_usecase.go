package usecase

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"placement-portal/internal/domain/opportunity"
	"placement-portal/internal/domain/scoring"
	"placement-portal/internal/domain/student"
	"placement-portal/internal/infrastructure/cache"
	"placement-portal/internal/repository"

	"github.com/google/uuid"
)

const (
	defaultPerPage = 20
	maxPerPage     = 100
)

type OpportunityListParams struct {
	Domain   string
	WorkType string
	Search   string
	Page     int
	PerPage  int
}

type OpportunityItem struct {
	opportunity.Opportunity
	HasApplied bool
	Match      *scoring.MatchResult
}

type OpportunityPage struct {
	Items   []OpportunityItem
	Page    int
	PerPage int
	Total   int
	Pages   int
}

type OpportunityInput struct {
	Title               string
	Description         string
	Domain              string
	RequiredSkills      []string
	Duration            *string
	Stipend             *string
	Location            *string
	WorkType            *string
	Prerequisites       *string
	ApplicationDeadline *time.Time
	StartDate           *time.Time
}

// OpportunityPatch is a partial edit. Nil fields keep their stored value;
// blank optional text clears it.
type OpportunityPatch struct {
	Title               *string
	Description         *string
	Domain              *string
	RequiredSkills      []string
	Duration            *string
	Stipend             *string
	Location            *string
	WorkType            *string
	Prerequisites       *string
	ApplicationDeadline *time.Time
	StartDate           *time.Time
	IsActive            *bool
}

type OpportunityUsecase interface {
	List(ctx context.Context, viewer Actor, params OpportunityListParams) (OpportunityPage, error)
	Get(ctx context.Context, viewer Actor, id uuid.UUID) (OpportunityItem, error)
	Domains(ctx context.Context) ([]string, error)
	Create(ctx context.Context, actor Actor, in OpportunityInput) (opportunity.Opportunity, error)
	ListMine(ctx context.Context, actor Actor) ([]opportunity.Opportunity, error)
	Update(ctx context.Context, actor Actor, id uuid.UUID, patch OpportunityPatch) (opportunity.Opportunity, error)
	Close(ctx context.Context, actor Actor, id uuid.UUID) (opportunity.Opportunity, error)
	SetApproval(ctx context.Context, id uuid.UUID, approved bool) (opportunity.Opportunity, error)
}

type cachedOpportunityPage struct {
	Items []opportunity.Opportunity `json:"items"`
	Total int                       `json:"total"`
}

type Opportunities struct {
	opportunities repository.OpportunityRepository
	profiles      repository.StudentProfileRepository
	applications  repository.ApplicationRepository
	companies     repository.CompanyRepository
	cache         Cache
	logger        *log.Logger
}

func NewOpportunityUsecase(
	opportunities repository.OpportunityRepository,
	profiles repository.StudentProfileRepository,
	applications repository.ApplicationRepository,
	companies repository.CompanyRepository,
	cache Cache,
	logger *log.Logger,
) *Opportunities {
	return &Opportunities{
		opportunities: opportunities,
		profiles:      profiles,
		applications:  applications,
		companies:     companies,
		cache:         cache,
		logger:        logger,
	}
}

func (u *Opportunities) List(ctx context.Context, viewer Actor, params OpportunityListParams) (OpportunityPage, error) {
	page := params.Page
	if page == 0 {
		page = 1
	}
	perPage := params.PerPage
	if perPage == 0 {
		perPage = defaultPerPage
	}
	if page < 0 || perPage < 0 || perPage > maxPerPage {
		return OpportunityPage{}, ErrInvalidInput
	}

	domain := collapseSpaces(params.Domain)
	search := collapseSpaces(params.Search)
	workType := strings.ToLower(collapseSpaces(params.WorkType))
	if workType != "" {
		if _, ok := opportunity.ParseWorkType(workType); !ok {
			return OpportunityPage{}, ErrInvalidInput
		}
	}

	key := cache.OpportunityListKey(domain, workType, search, page, perPage)

	var cached cachedOpportunityPage
	hit := false
	if u.cache != nil {
		ok, err := u.cache.GetJSON(ctx, key, &cached)
		hit = err == nil && ok
		u.logf("[Opportunities] Cache %s: %s", hitOrMiss(hit), key)
	}

	if !hit {
		rows, total, err := u.opportunities.ListOpen(ctx, repository.OpportunityFilter{
			Domain:   domain,
			WorkType: workType,
			Search:   search,
			Limit:    perPage,
			Offset:   (page - 1) * perPage,
		})
		if err != nil {
			return OpportunityPage{}, ErrInternal
		}
		cached = cachedOpportunityPage{Items: rows, Total: total}
		if u.cache != nil {
			_ = u.cache.SetJSON(ctx, key, cached, 0)
		}
	} else {
		u.refreshCounters(ctx, cached.Items)
	}

	sc, err := u.studentContext(ctx, viewer)
	if err != nil {
		return OpportunityPage{}, err
	}

	items := make([]OpportunityItem, 0, len(cached.Items))
	for _, o := range cached.Items {
		items = append(items, sc.decorate(o))
	}

	pages := 0
	if cached.Total > 0 {
		pages = (cached.Total + perPage - 1) / perPage
	}
	return OpportunityPage{Items: items, Page: page, PerPage: perPage, Total: cached.Total, Pages: pages}, nil
}

func (u *Opportunities) Get(ctx context.Context, viewer Actor, id uuid.UUID) (OpportunityItem, error) {
	if id == uuid.Nil {
		return OpportunityItem{}, ErrOpportunityNotFound
	}
	o, err := u.opportunities.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return OpportunityItem{}, ErrOpportunityNotFound
		}
		return OpportunityItem{}, ErrInternal
	}
	if !o.IsOpen() {
		return OpportunityItem{}, ErrOpportunityNotFound
	}

	if err := u.opportunities.IncrementViews(ctx, id); err != nil {
		u.logf("[Opportunities] View count failed | opportunity_id=%s error=%v", id, err)
	} else {
		o.ViewsCount++
	}

	sc, err := u.studentContext(ctx, viewer)
	if err != nil {
		return OpportunityItem{}, err
	}
	return sc.decorate(o), nil
}

func (u *Opportunities) Domains(ctx context.Context) ([]string, error) {
	key := cache.OpportunityDomainsKey()
	if u.cache != nil {
		var cached []string
		if ok, err := u.cache.GetJSON(ctx, key, &cached); err == nil && ok {
			return cached, nil
		}
	}

	domains, err := u.opportunities.ListDomains(ctx)
	if err != nil {
		return nil, ErrInternal
	}
	if u.cache != nil {
		_ = u.cache.SetJSON(ctx, key, domains, 0)
	}
	return domains, nil
}

// Create stores a new listing for the caller's company. Listings stay hidden
// until staff approve them.
func (u *Opportunities) Create(ctx context.Context, actor Actor, in OpportunityInput) (opportunity.Opportunity, error) {
	if !actor.IsCompany() {
		return opportunity.Opportunity{}, ErrForbidden
	}

	title := strings.TrimSpace(in.Title)
	description := strings.TrimSpace(in.Description)
	domain := collapseSpaces(in.Domain)
	if title == "" || description == "" || domain == "" {
		return opportunity.Opportunity{}, ErrInvalidInput
	}

	var workType *opportunity.WorkType
	if in.WorkType != nil && strings.TrimSpace(*in.WorkType) != "" {
		wt, ok := opportunity.ParseWorkType(*in.WorkType)
		if !ok {
			return opportunity.Opportunity{}, ErrInvalidInput
		}
		workType = &wt
	}

	c, err := u.companies.FindByUserID(ctx, actor.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return opportunity.Opportunity{}, ErrCompanyProfileNotFound
		}
		return opportunity.Opportunity{}, ErrInternal
	}

	o := opportunity.Opportunity{
		ID:                  uuid.New(),
		CompanyID:           c.ID,
		Title:               title,
		Description:         description,
		Domain:              domain,
		RequiredSkills:      student.CleanSkills(in.RequiredSkills),
		Duration:            trimmed(in.Duration),
		Stipend:             trimmed(in.Stipend),
		Location:            trimmed(in.Location),
		WorkType:            workType,
		Prerequisites:       trimmed(in.Prerequisites),
		ApplicationDeadline: in.ApplicationDeadline,
		StartDate:           in.StartDate,
		IsActive:            true,
		IsApproved:          false,
	}

	created, err := u.opportunities.Create(ctx, o)
	if err != nil {
		return opportunity.Opportunity{}, ErrInternal
	}
	u.logf("[Opportunities] Created | opportunity_id=%s company_id=%s", created.ID, c.ID)
	return created, nil
}

func (u *Opportunities) ListMine(ctx context.Context, actor Actor) ([]opportunity.Opportunity, error) {
	if !actor.IsCompany() {
		return nil, ErrForbidden
	}
	c, err := u.companies.FindByUserID(ctx, actor.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCompanyProfileNotFound
		}
		return nil, ErrInternal
	}
	out, err := u.opportunities.ListByCompany(ctx, c.ID)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

// Update edits one of the caller's listings. Approval is untouched: a listing
// that staff approved stays approved after edits.
func (u *Opportunities) Update(ctx context.Context, actor Actor, id uuid.UUID, patch OpportunityPatch) (opportunity.Opportunity, error) {
	o, err := u.ownedOpportunity(ctx, actor, id)
	if err != nil {
		return opportunity.Opportunity{}, err
	}

	for _, f := range []struct {
		dst *string
		v   *string
		fn  func(string) string
	}{
		{&o.Title, patch.Title, strings.TrimSpace},
		{&o.Description, patch.Description, strings.TrimSpace},
		{&o.Domain, patch.Domain, collapseSpaces},
	} {
		if f.v == nil {
			continue
		}
		v := f.fn(*f.v)
		if v == "" {
			return opportunity.Opportunity{}, ErrInvalidInput
		}
		*f.dst = v
	}

	if patch.WorkType != nil {
		if strings.TrimSpace(*patch.WorkType) == "" {
			o.WorkType = nil
		} else {
			wt, ok := opportunity.ParseWorkType(*patch.WorkType)
			if !ok {
				return opportunity.Opportunity{}, ErrInvalidInput
			}
			o.WorkType = &wt
		}
	}
	if patch.RequiredSkills != nil {
		o.RequiredSkills = student.CleanSkills(patch.RequiredSkills)
	}
	applyText(&o.Duration, patch.Duration)
	applyText(&o.Stipend, patch.Stipend)
	applyText(&o.Location, patch.Location)
	applyText(&o.Prerequisites, patch.Prerequisites)
	if patch.ApplicationDeadline != nil {
		o.ApplicationDeadline = patch.ApplicationDeadline
	}
	if patch.StartDate != nil {
		o.StartDate = patch.StartDate
	}
	if patch.IsActive != nil {
		o.IsActive = *patch.IsActive
	}

	updated, err := u.save(ctx, o)
	if err != nil {
		return opportunity.Opportunity{}, err
	}
	u.logf("[Opportunities] Updated | opportunity_id=%s active=%t", id, updated.IsActive)
	return updated, nil
}

// Close deactivates one of the caller's listings. Existing applications stay
// reviewable; new submissions are refused.
func (u *Opportunities) Close(ctx context.Context, actor Actor, id uuid.UUID) (opportunity.Opportunity, error) {
	o, err := u.ownedOpportunity(ctx, actor, id)
	if err != nil {
		return opportunity.Opportunity{}, err
	}
	if !o.IsActive {
		return o, nil
	}
	o.IsActive = false

	closed, err := u.save(ctx, o)
	if err != nil {
		return opportunity.Opportunity{}, err
	}
	u.logf("[Opportunities] Closed | opportunity_id=%s", id)
	return closed, nil
}

func (u *Opportunities) save(ctx context.Context, o opportunity.Opportunity) (opportunity.Opportunity, error) {
	updated, err := u.opportunities.Update(ctx, o)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return opportunity.Opportunity{}, ErrOpportunityNotFound
		}
		return opportunity.Opportunity{}, ErrInternal
	}
	u.invalidateListings(ctx)
	return updated, nil
}

func (u *Opportunities) ownedOpportunity(ctx context.Context, actor Actor, id uuid.UUID) (opportunity.Opportunity, error) {
	if !actor.IsCompany() {
		return opportunity.Opportunity{}, ErrForbidden
	}
	if id == uuid.Nil {
		return opportunity.Opportunity{}, ErrOpportunityNotFound
	}
	c, err := u.companies.FindByUserID(ctx, actor.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return opportunity.Opportunity{}, ErrCompanyProfileNotFound
		}
		return opportunity.Opportunity{}, ErrInternal
	}
	o, err := u.opportunities.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return opportunity.Opportunity{}, ErrOpportunityNotFound
		}
		return opportunity.Opportunity{}, ErrInternal
	}
	if o.CompanyID != c.ID {
		return opportunity.Opportunity{}, ErrForbidden
	}
	return o, nil
}

func (u *Opportunities) SetApproval(ctx context.Context, id uuid.UUID, approved bool) (opportunity.Opportunity, error) {
	if err := u.opportunities.SetApproval(ctx, id, approved); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return opportunity.Opportunity{}, ErrOpportunityNotFound
		}
		return opportunity.Opportunity{}, ErrInternal
	}

	u.invalidateListings(ctx)

	o, err := u.opportunities.FindByID(ctx, id)
	if err != nil {
		return opportunity.Opportunity{}, ErrInternal
	}
	u.logf("[Opportunities] Approval changed | opportunity_id=%s approved=%t", id, approved)
	return o, nil
}

func (u *Opportunities) invalidateListings(ctx context.Context) {
	if u.cache == nil {
		return
	}
	if err := u.cache.DeleteByPattern(ctx, cache.OpportunityListPattern()); err != nil {
		u.logf("[Opportunities] Cache invalidate failed: %v", err)
	}
	_ = u.cache.Delete(ctx, cache.OpportunityDomainsKey())
}

// refreshCounters overlays live view and application counts on cached rows,
// which otherwise only change when the listing cache is invalidated.
func (u *Opportunities) refreshCounters(ctx context.Context, items []opportunity.Opportunity) {
	if len(items) == 0 {
		return
	}
	ids := make([]uuid.UUID, 0, len(items))
	for _, o := range items {
		ids = append(ids, o.ID)
	}
	counters, err := u.opportunities.Counters(ctx, ids)
	if err != nil {
		u.logf("[Opportunities] Counter refresh failed: %v", err)
		return
	}
	for i := range items {
		if c, ok := counters[items[i].ID]; ok {
			items[i].ViewsCount = c.Views
			items[i].ApplicationsCount = c.Applications
		}
	}
}

// studentContext holds what a signed-in student needs to see per-listing
// match scores and applied flags. It is empty for every other viewer.
type studentContext struct {
	active  bool
	skills  []string
	applied map[uuid.UUID]struct{}
}

func (u *Opportunities) studentContext(ctx context.Context, viewer Actor) (studentContext, error) {
	if !viewer.IsStudent() {
		return studentContext{}, nil
	}
	sc := studentContext{active: true, applied: map[uuid.UUID]struct{}{}}

	p, err := u.profiles.FindByUserID(ctx, viewer.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return sc, nil
		}
		return studentContext{}, ErrInternal
	}
	sc.skills = p.Skills

	applied, err := u.applications.ListAppliedOpportunityIDs(ctx, p.ID)
	if err != nil {
		return studentContext{}, ErrInternal
	}
	if applied != nil {
		sc.applied = applied
	}
	return sc, nil
}

func (sc studentContext) decorate(o opportunity.Opportunity) OpportunityItem {
	item := OpportunityItem{Opportunity: o}
	if !sc.active {
		return item
	}
	_, item.HasApplied = sc.applied[o.ID]
	m := scoring.MatchSkills(sc.skills, o.RequiredSkills)
	item.Match = &m
	return item
}

func (u *Opportunities) logf(format string, args ...any) {
	if u.logger != nil {
		u.logger.Printf(format, args...)
	}
}

func hitOrMiss(hit bool) string {
	if hit {
		return "HIT"
	}
	return "MISS"
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
