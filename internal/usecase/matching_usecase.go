package usecase

import (
	"context"
	"errors"
	"sort"

	"placement-portal/internal/domain/opportunity"
	"placement-portal/internal/domain/scoring"
	"placement-portal/internal/domain/student"
	"placement-portal/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const (
	defaultRecommendationLimit = 20
	maxRecommendationLimit     = 50
)

type MatchView struct {
	OpportunityID uuid.UUID
	Result        scoring.MatchResult
	Eligible      bool
}

type RecommendationParams struct {
	Limit    int
	MinMatch int
}

type Recommendation struct {
	Opportunity opportunity.Opportunity
	Result      scoring.MatchResult
	Eligible    bool
	HasApplied  bool
}

type MatchingUsecase interface {
	Match(ctx context.Context, actor Actor, opportunityID uuid.UUID) (MatchView, error)
	Recommend(ctx context.Context, actor Actor, params RecommendationParams) ([]Recommendation, error)
}

type Matching struct {
	opportunities repository.OpportunityRepository
	profiles      repository.StudentProfileRepository
	applications  repository.ApplicationRepository
}

func NewMatchingUsecase(opportunities repository.OpportunityRepository, profiles repository.StudentProfileRepository, applications repository.ApplicationRepository) *Matching {
	return &Matching{opportunities: opportunities, profiles: profiles, applications: applications}
}

// Match scores the caller against one open opportunity. A student without a
// saved profile has no skills and scores zero against any tagged listing.
func (u *Matching) Match(ctx context.Context, actor Actor, opportunityID uuid.UUID) (MatchView, error) {
	if !actor.IsStudent() {
		return MatchView{}, ErrForbidden
	}
	if opportunityID == uuid.Nil {
		return MatchView{}, ErrOpportunityNotFound
	}

	o, err := u.opportunities.FindByID(ctx, opportunityID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return MatchView{}, ErrOpportunityNotFound
		}
		return MatchView{}, ErrInternal
	}
	if !o.IsOpen() {
		return MatchView{}, ErrOpportunityNotFound
	}

	p, err := u.optionalProfile(ctx, actor.UserID)
	if err != nil {
		return MatchView{}, err
	}

	r := scoring.MatchSkills(p.Skills, o.RequiredSkills)
	return MatchView{OpportunityID: o.ID, Result: r, Eligible: scoring.IsMatchEligible(r.Percentage)}, nil
}

func (u *Matching) Recommend(ctx context.Context, actor Actor, params RecommendationParams) ([]Recommendation, error) {
	if !actor.IsStudent() {
		return nil, ErrForbidden
	}
	limit := params.Limit
	if limit == 0 {
		limit = defaultRecommendationLimit
	}
	if limit < 0 || limit > maxRecommendationLimit {
		return nil, ErrInvalidInput
	}
	if params.MinMatch < 0 || params.MinMatch > 100 {
		return nil, ErrInvalidInput
	}

	var (
		p    student.Profile
		open []opportunity.Opportunity
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		p, err = u.optionalProfile(gctx, actor.UserID)
		return err
	})
	g.Go(func() error {
		var err error
		open, err = u.opportunities.ListAllOpen(gctx)
		if err != nil {
			return ErrInternal
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	applied := map[uuid.UUID]struct{}{}
	if p.ID != uuid.Nil {
		ids, err := u.applications.ListAppliedOpportunityIDs(ctx, p.ID)
		if err != nil {
			return nil, ErrInternal
		}
		if ids != nil {
			applied = ids
		}
	}

	out := make([]Recommendation, 0, len(open))
	for _, o := range open {
		r := scoring.MatchSkills(p.Skills, o.RequiredSkills)
		if r.Percentage < params.MinMatch {
			continue
		}
		_, has := applied[o.ID]
		out = append(out, Recommendation{
			Opportunity: o,
			Result:      r,
			Eligible:    scoring.IsMatchEligible(r.Percentage),
			HasApplied:  has,
		})
	}

	// open is newest first; the stable sort keeps that order among equal scores.
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Result.Percentage > out[j].Result.Percentage
	})

	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (u *Matching) optionalProfile(ctx context.Context, userID uuid.UUID) (student.Profile, error) {
	p, err := u.profiles.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return student.Profile{UserID: userID}, nil
		}
		return student.Profile{}, ErrInternal
	}
	return p, nil
}
