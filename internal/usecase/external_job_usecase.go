package usecase

import (
	"context"
	"errors"
	"sort"

	"placement-portal/internal/domain/externaljob"
	"placement-portal/internal/domain/scoring"
	"placement-portal/internal/repository"

	"github.com/google/uuid"
)

const (
	defaultExternalJobLimit = 50
	maxExternalJobLimit     = 100
	// externalJobScanLimit bounds how many of the newest active listings are
	// scored per request.
	externalJobScanLimit = 1000
)

type ExternalJobParams struct {
	Limit    int
	MinMatch int
}

type ExternalJobMatch struct {
	Job      externaljob.Job
	Result   scoring.MatchResult
	Eligible bool
}

type ExternalJobUsecase interface {
	ListForStudent(ctx context.Context, actor Actor, params ExternalJobParams) ([]ExternalJobMatch, error)
	Match(ctx context.Context, actor Actor, id uuid.UUID) (ExternalJobMatch, error)
}

type ExternalJobs struct {
	jobs     repository.ExternalJobRepository
	profiles repository.StudentProfileRepository
}

func NewExternalJobUsecase(jobs repository.ExternalJobRepository, profiles repository.StudentProfileRepository) *ExternalJobs {
	return &ExternalJobs{jobs: jobs, profiles: profiles}
}

// ListForStudent returns the active imported listings the caller is
// match-eligible for, best match first. MinMatch can only raise the bar.
// Listings no skill could be tagged on are never returned.
func (u *ExternalJobs) ListForStudent(ctx context.Context, actor Actor, params ExternalJobParams) ([]ExternalJobMatch, error) {
	if !actor.IsStudent() {
		return nil, ErrForbidden
	}
	limit := params.Limit
	if limit == 0 {
		limit = defaultExternalJobLimit
	}
	if limit < 0 || limit > maxExternalJobLimit {
		return nil, ErrInvalidInput
	}
	if params.MinMatch < 0 || params.MinMatch > 100 {
		return nil, ErrInvalidInput
	}

	skills, err := u.studentSkills(ctx, actor)
	if err != nil {
		return nil, err
	}
	if len(skills) == 0 {
		return []ExternalJobMatch{}, nil
	}

	active, err := u.jobs.ListActive(ctx, externalJobScanLimit)
	if err != nil {
		return nil, ErrInternal
	}

	out := make([]ExternalJobMatch, 0)
	for _, j := range active {
		if len(j.RequiredSkills) == 0 {
			continue
		}
		r := scoring.MatchSkills(skills, j.RequiredSkills)
		if !scoring.IsMatchEligible(r.Percentage) || r.Percentage < params.MinMatch {
			continue
		}
		out = append(out, ExternalJobMatch{Job: j, Result: r, Eligible: true})
	}

	// active is newest first; the stable sort keeps that among equal scores.
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Result.Percentage > out[j].Result.Percentage
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (u *ExternalJobs) Match(ctx context.Context, actor Actor, id uuid.UUID) (ExternalJobMatch, error) {
	if !actor.IsStudent() {
		return ExternalJobMatch{}, ErrForbidden
	}
	if id == uuid.Nil {
		return ExternalJobMatch{}, ErrExternalJobNotFound
	}

	j, err := u.jobs.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ExternalJobMatch{}, ErrExternalJobNotFound
		}
		return ExternalJobMatch{}, ErrInternal
	}
	if !j.IsActive {
		return ExternalJobMatch{}, ErrExternalJobNotFound
	}

	skills, err := u.studentSkills(ctx, actor)
	if err != nil {
		return ExternalJobMatch{}, err
	}
	r := scoring.MatchSkills(skills, j.RequiredSkills)
	return ExternalJobMatch{Job: j, Result: r, Eligible: scoring.IsMatchEligible(r.Percentage)}, nil
}

func (u *ExternalJobs) studentSkills(ctx context.Context, actor Actor) ([]string, error) {
	p, err := u.profiles.FindByUserID(ctx, actor.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, ErrInternal
	}
	return p.Skills, nil
}
