package repository

import (
	"context"
	"errors"

	"placement-portal/internal/database"
	"placement-portal/internal/domain/application"

	"github.com/google/uuid"
)

type ApplicationListRow struct {
	Application      application.Application
	OpportunityTitle string
	CompanyName      string
}

type ApplicationStats struct {
	ByStatus        map[application.Status]int
	Total           int
	AverageMatch    float64
	EligibleMatches int
}

type ApplicationRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (application.Application, error)
	ExistsForStudent(ctx context.Context, studentID, opportunityID uuid.UUID) (bool, error)
	ListAppliedOpportunityIDs(ctx context.Context, studentID uuid.UUID) (map[uuid.UUID]struct{}, error)
	ListByStudent(ctx context.Context, studentID uuid.UUID) ([]ApplicationListRow, error)
	ListByOpportunity(ctx context.Context, opportunityID uuid.UUID) ([]application.Application, error)
	// Submit stores the application and bumps the opportunity's applications_count atomically.
	Submit(ctx context.Context, a application.Application) (application.Application, error)
	// UpdateStatus moves the application to status only while it is still in
	// one of from. ErrConflict means it has left those states; ErrNotFound
	// means it does not exist.
	UpdateStatus(ctx context.Context, id uuid.UUID, from []application.Status, status application.Status) (application.Application, error)
	Stats(ctx context.Context, eligibleThreshold int) (ApplicationStats, error)
}

type PostgresApplicationRepository struct {
	db database.DB
}

func NewPostgresApplicationRepository(db database.DB) *PostgresApplicationRepository {
	return &PostgresApplicationRepository{db: db}
}

const applicationColumns = `a.id, a.student_id, a.opportunity_id, a.resume_path, a.cover_letter, a.status,
	a.skill_match_percentage, a.notes, a.applied_at, a.updated_at`

func (r *PostgresApplicationRepository) FindByID(ctx context.Context, id uuid.UUID) (application.Application, error) {
	return scanApplication(r.db.QueryRow(ctx, `SELECT `+applicationColumns+` FROM applications a WHERE a.id = $1`, id))
}

func (r *PostgresApplicationRepository) ExistsForStudent(ctx context.Context, studentID, opportunityID uuid.UUID) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM applications WHERE student_id = $1 AND opportunity_id = $2)`,
		studentID, opportunityID,
	)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresApplicationRepository) ListAppliedOpportunityIDs(ctx context.Context, studentID uuid.UUID) (map[uuid.UUID]struct{}, error) {
	rows, err := r.db.Query(ctx, `SELECT opportunity_id FROM applications WHERE student_id = $1`, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[uuid.UUID]struct{})
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out[id] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresApplicationRepository) ListByStudent(ctx context.Context, studentID uuid.UUID) ([]ApplicationListRow, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+applicationColumns+`, o.title, c.name
		 FROM applications a
		 JOIN opportunities o ON o.id = a.opportunity_id
		 JOIN company_profiles c ON c.id = o.company_id
		 WHERE a.student_id = $1
		 ORDER BY a.applied_at DESC`,
		studentID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]ApplicationListRow, 0)
	for rows.Next() {
		var it ApplicationListRow
		a, err := scanApplicationWith(rows, &it.OpportunityTitle, &it.CompanyName)
		if err != nil {
			return nil, err
		}
		it.Application = a
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresApplicationRepository) ListByOpportunity(ctx context.Context, opportunityID uuid.UUID) ([]application.Application, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+applicationColumns+` FROM applications a
		 WHERE a.opportunity_id = $1
		 ORDER BY a.skill_match_percentage DESC, a.applied_at ASC`,
		opportunityID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]application.Application, 0)
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresApplicationRepository) Submit(ctx context.Context, a application.Application) (application.Application, error) {
	var created application.Application
	err := database.WithTx(ctx, r.db, func(tx database.Tx) error {
		row := tx.QueryRow(ctx,
			`INSERT INTO applications AS a (id, student_id, opportunity_id, resume_path, cover_letter, status, skill_match_percentage)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)
			 RETURNING `+applicationColumns,
			a.ID, a.StudentID, a.OpportunityID, a.ResumePath, a.CoverLetter, string(a.Status), a.SkillMatchPercentage,
		)
		var err error
		created, err = scanApplication(row)
		if err != nil {
			return err
		}

		n, err := tx.Exec(ctx,
			`UPDATE opportunities SET applications_count = applications_count + 1 WHERE id = $1`,
			a.OpportunityID,
		)
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrNotFound
		}
		return nil
	})
	if err != nil {
		if isUniqueViolation(err) {
			return application.Application{}, ErrConflict
		}
		return application.Application{}, err
	}
	return created, nil
}

func (r *PostgresApplicationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from []application.Status, status application.Status) (application.Application, error) {
	allowed := make([]string, 0, len(from))
	for _, s := range from {
		allowed = append(allowed, string(s))
	}

	row := r.db.QueryRow(ctx,
		`UPDATE applications AS a SET status = $1, updated_at = now()
		WHERE a.id = $2 AND a.status = ANY($3::text[])
		RETURNING `+applicationColumns,
		string(status), id, allowed,
	)
	a, err := scanApplication(row)
	if err == nil || !errors.Is(err, ErrNotFound) {
		return a, err
	}

	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM applications WHERE id = $1)`, id).Scan(&exists); err != nil {
		return application.Application{}, err
	}
	if exists {
		return application.Application{}, ErrConflict
	}
	return application.Application{}, ErrNotFound
}

func (r *PostgresApplicationRepository) Stats(ctx context.Context, eligibleThreshold int) (ApplicationStats, error) {
	stats := ApplicationStats{ByStatus: make(map[application.Status]int, len(application.AllStatuses))}
	for _, s := range application.AllStatuses {
		stats.ByStatus[s] = 0
	}

	rows, err := r.db.Query(ctx, `SELECT status, COUNT(*) FROM applications GROUP BY status`)
	if err != nil {
		return ApplicationStats{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return ApplicationStats{}, err
		}
		stats.ByStatus[application.Status(status)] = n
		stats.Total += n
	}
	if err := rows.Err(); err != nil {
		return ApplicationStats{}, err
	}

	row := r.db.QueryRow(ctx,
		`SELECT COALESCE(AVG(skill_match_percentage), 0)::float8,
			COUNT(*) FILTER (WHERE skill_match_percentage >= $1)
		 FROM applications WHERE status <> 'withdrawn'`,
		eligibleThreshold,
	)
	if err := row.Scan(&stats.AverageMatch, &stats.EligibleMatches); err != nil {
		return ApplicationStats{}, err
	}
	return stats, nil
}

func scanApplication(row database.Row) (application.Application, error) {
	return scanApplicationWith(row)
}

func scanApplicationWith(row database.Row, extra ...any) (application.Application, error) {
	var a application.Application
	var status string
	dest := []any{
		&a.ID, &a.StudentID, &a.OpportunityID, &a.ResumePath, &a.CoverLetter, &status,
		&a.SkillMatchPercentage, &a.Notes, &a.AppliedAt, &a.UpdatedAt,
	}
	dest = append(dest, extra...)
	if err := row.Scan(dest...); err != nil {
		if isNoRows(err) {
			return application.Application{}, ErrNotFound
		}
		return application.Application{}, err
	}
	a.Status = application.Status(status)
	return a, nil
}
