package usecase

import (
	"context"

	"placement-portal/internal/domain/application"
	"placement-portal/internal/domain/scoring"
	"placement-portal/internal/domain/student"
	"placement-portal/internal/repository"

	"golang.org/x/sync/errgroup"
)

type PlacementReport struct {
	ApplicationsByStatus map[application.Status]int
	TotalApplications    int
	StudentsByReadiness  map[scoring.Readiness]int
	TotalStudents        int
	AverageCompleteness  float64
	AverageMatch         float64
	EligibleApplications int
}

type AnalyticsUsecase interface {
	Placements(ctx context.Context, actor Actor) (PlacementReport, error)
}

type Analytics struct {
	profiles     repository.StudentProfileRepository
	applications repository.ApplicationRepository
}

func NewAnalyticsUsecase(profiles repository.StudentProfileRepository, applications repository.ApplicationRepository) *Analytics {
	return &Analytics{profiles: profiles, applications: applications}
}

func (u *Analytics) Placements(ctx context.Context, actor Actor) (PlacementReport, error) {
	if !actor.IsStaff() {
		return PlacementReport{}, ErrForbidden
	}

	var (
		profiles []student.Profile
		stats    repository.ApplicationStats
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		profiles, err = u.profiles.ListAll(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		stats, err = u.applications.Stats(gctx, scoring.MatchEligibilityThreshold)
		return err
	})
	if err := g.Wait(); err != nil {
		return PlacementReport{}, ErrInternal
	}

	bands := map[scoring.Readiness]int{
		scoring.ReadinessBlocked:  0,
		scoring.ReadinessAdvisory: 0,
		scoring.ReadinessGood:     0,
	}
	r := PlacementReport{
		ApplicationsByStatus: stats.ByStatus,
		TotalApplications:    stats.Total,
		StudentsByReadiness:  bands,
		TotalStudents:        len(profiles),
		AverageMatch:         stats.AverageMatch,
		EligibleApplications: stats.EligibleMatches,
	}
	if r.ApplicationsByStatus == nil {
		r.ApplicationsByStatus = map[application.Status]int{}
	}

	sum := 0
	for _, p := range profiles {
		score := scoring.ComputeProfileCompleteness(p)
		sum += score
		r.StudentsByReadiness[scoring.AssessCompleteness(score).Readiness]++
	}
	if len(profiles) > 0 {
		r.AverageCompleteness = float64(sum) / float64(len(profiles))
	}
	return r, nil
}
