package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync/atomic"
	"time"

	"placement-portal/internal/domain/externaljob"
	"placement-portal/internal/repository"
	"placement-portal/internal/scraper"

	"github.com/google/uuid"
)

// ImportParams tune how listings are written once fetched.
type ImportParams struct {
	Workers int
	RPS     int
}

// Report is the outcome of importing one source.
type Report struct {
	Source   string        `json:"source"`
	Status   string        `json:"status"`
	Fetched  int           `json:"fetched"`
	Stored   int           `json:"stored"`
	Skipped  int           `json:"skipped"`
	Failed   int           `json:"failed"`
	Error    string        `json:"error,omitempty"`
	Duration time.Duration `json:"duration_ns"`
}

// ExternalJobImporter fetches listings from each source, tags them with the
// skills their text mentions and stores them, one fetch run per source.
type ExternalJobImporter struct {
	jobs   repository.ExternalJobRepository
	logger *log.Logger
	now    func() time.Time
}

func NewExternalJobImporter(jobs repository.ExternalJobRepository, logger *log.Logger) *ExternalJobImporter {
	if logger == nil {
		logger = log.Default()
	}
	return &ExternalJobImporter{jobs: jobs, logger: logger, now: time.Now}
}

// Run imports every source in turn. A failing source is reported and does
// not stop the others; only ctx cancellation aborts the run.
func (p *ExternalJobImporter) Run(ctx context.Context, fetchers []scraper.Fetcher, params ImportParams) ([]Report, error) {
	reports := make([]Report, 0, len(fetchers))
	for _, f := range fetchers {
		if err := ctx.Err(); err != nil {
			return reports, err
		}
		reports = append(reports, p.importSource(ctx, f, params))
	}
	return reports, ctx.Err()
}

func (p *ExternalJobImporter) importSource(ctx context.Context, f scraper.Fetcher, params ImportParams) Report {
	start := p.now()
	rep := Report{Source: f.Source()}

	run, err := p.jobs.StartRun(ctx, f.Source())
	if err != nil {
		p.logger.Printf("[ExternalJobs] Start run failed | source=%s error=%v", f.Source(), err)
	}

	listings, err := f.Fetch(ctx)
	if err != nil {
		rep.Status = string(externaljob.RunFailed)
		rep.Error = err.Error()
		p.logger.Printf("[ExternalJobs] Fetch failed | source=%s error=%v", f.Source(), err)
		p.finish(run, &rep, start)
		return rep
	}
	rep.Fetched = len(listings)

	// Listings missing from this fetch stay inactive; the upserts below
	// reactivate the ones still posted.
	if _, err := p.jobs.DeactivateSource(ctx, f.Source()); err != nil {
		p.logger.Printf("[ExternalJobs] Deactivate failed | source=%s error=%v", f.Source(), err)
	}

	fetchedAt := p.now().UTC()
	jobs := make([]externaljob.Job, 0, len(listings))
	for _, l := range listings {
		j, ok := toJob(f.Source(), l, fetchedAt)
		if !ok {
			rep.Skipped++
			continue
		}
		jobs = append(jobs, j)
	}

	stored, failed := p.store(ctx, jobs, params)
	rep.Stored = stored
	rep.Failed = failed
	rep.Status = string(externaljob.RunFinished)
	if ctx.Err() != nil {
		rep.Status = string(externaljob.RunFailed)
		rep.Error = ctx.Err().Error()
	}

	p.logger.Printf("[ExternalJobs] Imported | source=%s fetched=%d stored=%d skipped=%d failed=%d",
		rep.Source, rep.Fetched, rep.Stored, rep.Skipped, rep.Failed)
	p.finish(run, &rep, start)
	return rep
}

func (p *ExternalJobImporter) store(ctx context.Context, jobs []externaljob.Job, params ImportParams) (int, int) {
	if len(jobs) == 0 {
		return 0, 0
	}
	pool := scraper.NewWorkerPool(max(params.Workers, 1), len(jobs))
	pool.SetRateLimit(params.RPS)
	results := pool.Run(ctx)

	var stored atomic.Int32
	for _, j := range jobs {
		pool.Submit(func(ctx context.Context) error {
			if err := p.jobs.Upsert(ctx, j); err != nil {
				return fmt.Errorf("upsert %s/%s: %w", j.Source, j.ExternalID, err)
			}
			stored.Add(1)
			return nil
		})
	}
	pool.Close()

	failed := 0
	for res := range results {
		if res.Err != nil {
			failed++
			p.logger.Printf("[ExternalJobs] Store failed | error=%v", res.Err)
		}
	}
	// Tasks dropped by cancellation never reported a result.
	n := int(stored.Load())
	if n+failed < len(jobs) {
		failed = len(jobs) - n
	}
	return n, failed
}

func (p *ExternalJobImporter) finish(run externaljob.Run, rep *Report, start time.Time) {
	rep.Duration = p.now().Sub(start)
	if run.ID == uuid.Nil {
		return
	}
	finished := p.now().UTC()
	run.FinishedAt = &finished
	run.Status = externaljob.RunStatus(rep.Status)
	run.Fetched = rep.Fetched
	run.Stored = rep.Stored
	run.Failed = rep.Failed + rep.Skipped
	if err := p.jobs.FinishRun(context.Background(), run); err != nil {
		p.logger.Printf("[ExternalJobs] Finish run failed | source=%s error=%v", run.Source, err)
	}
}

// Expire deactivates listings last seen before now minus olderThan.
func (p *ExternalJobImporter) Expire(ctx context.Context, olderThan time.Duration) (int64, error) {
	if olderThan <= 0 {
		return 0, errors.New("expire window must be positive")
	}
	n, err := p.jobs.ExpireOlderThan(ctx, p.now().UTC().Add(-olderThan))
	if err != nil {
		return 0, err
	}
	p.logger.Printf("[ExternalJobs] Expired | older_than=%s count=%d", olderThan, n)
	return n, nil
}

// toJob tags a listing. Listings without a title or a stable key are
// dropped.
func toJob(source string, l scraper.Listing, fetchedAt time.Time) (externaljob.Job, bool) {
	title := strings.TrimSpace(l.Title)
	key := l.Key()
	if title == "" || key == "" {
		return externaljob.Job{}, false
	}
	return externaljob.Job{
		Source:         source,
		ExternalID:     key,
		Title:          title,
		CompanyName:    optionalText(l.Company),
		Location:       optionalText(l.Location),
		JobType:        optionalText(l.JobType),
		Description:    optionalText(l.Description),
		ApplicationURL: optionalText(l.URL),
		RequiredSkills: externaljob.ExtractSkills(externaljob.TaggingText(title, l.Description)),
		PostedAt:       l.PostedAt,
		FetchedAt:      fetchedAt,
		IsActive:       true,
	}, true
}

func optionalText(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
