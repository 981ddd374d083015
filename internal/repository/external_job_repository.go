package repository

import (
	"context"
	"time"

	"placement-portal/internal/database"
	"placement-portal/internal/domain/externaljob"

	"github.com/google/uuid"
)

type ExternalJobRepository interface {
	// Upsert inserts or refreshes a listing keyed by (source, external_id)
	// and marks it active.
	Upsert(ctx context.Context, j externaljob.Job) error
	DeactivateSource(ctx context.Context, source string) (int64, error)
	ListActive(ctx context.Context, limit int) ([]externaljob.Job, error)
	FindByID(ctx context.Context, id uuid.UUID) (externaljob.Job, error)
	ExpireOlderThan(ctx context.Context, cutoff time.Time) (int64, error)

	StartRun(ctx context.Context, source string) (externaljob.Run, error)
	FinishRun(ctx context.Context, run externaljob.Run) error
}

type PostgresExternalJobRepository struct {
	db database.Querier
}

func NewPostgresExternalJobRepository(db database.Querier) *PostgresExternalJobRepository {
	return &PostgresExternalJobRepository{db: db}
}

const externalJobColumns = `id, source, external_id, title, company_name, location, job_type, description,
	application_url, required_skills, posted_at, fetched_at, is_active`

func (r *PostgresExternalJobRepository) Upsert(ctx context.Context, j externaljob.Job) error {
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	skills := j.RequiredSkills
	if skills == nil {
		skills = []string{}
	}
	_, err := r.db.Exec(ctx,
		`INSERT INTO external_jobs (
			id, source, external_id, title, company_name, location, job_type, description,
			application_url, required_skills, posted_at, fetched_at, is_active
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,TRUE)
		ON CONFLICT (source, external_id) DO UPDATE SET
			title = EXCLUDED.title,
			company_name = COALESCE(EXCLUDED.company_name, external_jobs.company_name),
			location = COALESCE(EXCLUDED.location, external_jobs.location),
			job_type = COALESCE(EXCLUDED.job_type, external_jobs.job_type),
			description = COALESCE(EXCLUDED.description, external_jobs.description),
			application_url = COALESCE(EXCLUDED.application_url, external_jobs.application_url),
			required_skills = EXCLUDED.required_skills,
			posted_at = COALESCE(EXCLUDED.posted_at, external_jobs.posted_at),
			fetched_at = EXCLUDED.fetched_at,
			is_active = TRUE`,
		j.ID, j.Source, j.ExternalID, j.Title, j.CompanyName, j.Location, j.JobType, j.Description,
		j.ApplicationURL, skills, j.PostedAt, j.FetchedAt,
	)
	return err
}

func (r *PostgresExternalJobRepository) DeactivateSource(ctx context.Context, source string) (int64, error) {
	return r.db.Exec(ctx, `UPDATE external_jobs SET is_active = FALSE WHERE source = $1 AND is_active = TRUE`, source)
}

func (r *PostgresExternalJobRepository) ListActive(ctx context.Context, limit int) ([]externaljob.Job, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+externalJobColumns+` FROM external_jobs
		 WHERE is_active = TRUE
		 ORDER BY posted_at DESC NULLS LAST, fetched_at DESC, id ASC
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]externaljob.Job, 0)
	for rows.Next() {
		j, err := scanExternalJob(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresExternalJobRepository) FindByID(ctx context.Context, id uuid.UUID) (externaljob.Job, error) {
	return scanExternalJob(r.db.QueryRow(ctx, `SELECT `+externalJobColumns+` FROM external_jobs WHERE id = $1`, id))
}

func (r *PostgresExternalJobRepository) ExpireOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	return r.db.Exec(ctx, `UPDATE external_jobs SET is_active = FALSE WHERE is_active = TRUE AND fetched_at < $1`, cutoff)
}

func (r *PostgresExternalJobRepository) StartRun(ctx context.Context, source string) (externaljob.Run, error) {
	run := externaljob.Run{ID: uuid.New(), Source: source, Status: externaljob.RunRunning}
	err := r.db.QueryRow(ctx,
		`INSERT INTO fetch_runs (id, source, status) VALUES ($1, $2, $3) RETURNING started_at`,
		run.ID, run.Source, string(run.Status),
	).Scan(&run.StartedAt)
	if err != nil {
		return externaljob.Run{}, err
	}
	return run, nil
}

func (r *PostgresExternalJobRepository) FinishRun(ctx context.Context, run externaljob.Run) error {
	n, err := r.db.Exec(ctx,
		`UPDATE fetch_runs SET finished_at = COALESCE($2, now()), status = $3, fetched = $4, stored = $5, failed = $6
		 WHERE id = $1`,
		run.ID, run.FinishedAt, string(run.Status), run.Fetched, run.Stored, run.Failed,
	)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func scanExternalJob(row database.Row) (externaljob.Job, error) {
	var j externaljob.Job
	err := row.Scan(
		&j.ID, &j.Source, &j.ExternalID, &j.Title, &j.CompanyName, &j.Location, &j.JobType, &j.Description,
		&j.ApplicationURL, &j.RequiredSkills, &j.PostedAt, &j.FetchedAt, &j.IsActive,
	)
	if err != nil {
		if isNoRows(err) {
			return externaljob.Job{}, ErrNotFound
		}
		return externaljob.Job{}, err
	}
	return j, nil
}
