package repository

import (
	"context"
	"fmt"
	"strings"

	"placement-portal/internal/database"
	"placement-portal/internal/domain/opportunity"

	"github.com/google/uuid"
)

type OpportunityFilter struct {
	Domain   string
	WorkType string
	Search   string
	Limit    int
	Offset   int
}

// OpportunityCounters are the columns that change on every view and
// submission, read apart from the cached listing rows.
type OpportunityCounters struct {
	Views        int
	Applications int
}

type OpportunityRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (opportunity.Opportunity, error)
	ListOpen(ctx context.Context, f OpportunityFilter) ([]opportunity.Opportunity, int, error)
	ListAllOpen(ctx context.Context) ([]opportunity.Opportunity, error)
	ListByCompany(ctx context.Context, companyID uuid.UUID) ([]opportunity.Opportunity, error)
	ListDomains(ctx context.Context) ([]string, error)
	Create(ctx context.Context, o opportunity.Opportunity) (opportunity.Opportunity, error)
	// Update writes the company-editable columns of o.
	Update(ctx context.Context, o opportunity.Opportunity) (opportunity.Opportunity, error)
	SetApproval(ctx context.Context, id uuid.UUID, approved bool) error
	IncrementViews(ctx context.Context, id uuid.UUID) error
	Counters(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]OpportunityCounters, error)
}

type PostgresOpportunityRepository struct {
	db database.Querier
}

func NewPostgresOpportunityRepository(db database.Querier) *PostgresOpportunityRepository {
	return &PostgresOpportunityRepository{db: db}
}

const opportunityColumns = `o.id, o.company_id, c.name, o.title, o.description, o.domain, o.required_skills,
	o.duration, o.stipend, o.location, o.work_type, o.prerequisites, o.application_deadline, o.start_date,
	o.is_active, o.is_approved, o.views_count, o.applications_count, o.created_at, o.updated_at`

const opportunityFrom = ` FROM opportunities o JOIN company_profiles c ON c.id = o.company_id`

func (r *PostgresOpportunityRepository) FindByID(ctx context.Context, id uuid.UUID) (opportunity.Opportunity, error) {
	row := r.db.QueryRow(ctx, `SELECT `+opportunityColumns+opportunityFrom+` WHERE o.id = $1`, id)
	return scanOpportunity(row)
}

func (r *PostgresOpportunityRepository) ListOpen(ctx context.Context, f OpportunityFilter) ([]opportunity.Opportunity, int, error) {
	where, args := openOpportunityWhere(f)

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*)`+opportunityFrom+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := f.Limit
	if limit <= 0 {
		limit = 20
	}
	args = append(args, limit, f.Offset)
	q := `SELECT ` + opportunityColumns + opportunityFrom + where +
		fmt.Sprintf(` ORDER BY o.created_at DESC, o.id ASC LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out, err := collectOpportunities(rows)
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *PostgresOpportunityRepository) ListAllOpen(ctx context.Context) ([]opportunity.Opportunity, error) {
	where, args := openOpportunityWhere(OpportunityFilter{})
	rows, err := r.db.Query(ctx, `SELECT `+opportunityColumns+opportunityFrom+where+` ORDER BY o.created_at DESC, o.id ASC`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectOpportunities(rows)
}

func openOpportunityWhere(f OpportunityFilter) (string, []any) {
	conds := []string{"o.is_active = TRUE", "o.is_approved = TRUE"}
	args := make([]any, 0, 3)

	if d := strings.TrimSpace(f.Domain); d != "" {
		args = append(args, d)
		conds = append(conds, fmt.Sprintf("LOWER(o.domain) = LOWER($%d)", len(args)))
	}
	if wt := strings.TrimSpace(f.WorkType); wt != "" {
		args = append(args, wt)
		conds = append(conds, fmt.Sprintf("o.work_type = LOWER($%d)", len(args)))
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		args = append(args, "%"+escapeLike(s)+"%")
		conds = append(conds, fmt.Sprintf("(o.title ILIKE $%d OR o.description ILIKE $%d)", len(args), len(args)))
	}

	return " WHERE " + strings.Join(conds, " AND "), args
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

func (r *PostgresOpportunityRepository) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]opportunity.Opportunity, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+opportunityColumns+opportunityFrom+` WHERE o.company_id = $1 ORDER BY o.created_at DESC`,
		companyID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectOpportunities(rows)
}

func (r *PostgresOpportunityRepository) ListDomains(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx,
		`SELECT DISTINCT domain FROM opportunities WHERE is_approved = TRUE AND is_active = TRUE ORDER BY domain ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]string, 0)
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresOpportunityRepository) Create(ctx context.Context, o opportunity.Opportunity) (opportunity.Opportunity, error) {
	skills := o.RequiredSkills
	if skills == nil {
		skills = []string{}
	}
	var workType *string
	if o.WorkType != nil {
		wt := string(*o.WorkType)
		workType = &wt
	}

	_, err := r.db.Exec(ctx,
		`INSERT INTO opportunities (id, company_id, title, description, domain, required_skills, duration, stipend,
			location, work_type, prerequisites, application_deadline, start_date, is_active, is_approved)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		o.ID, o.CompanyID, o.Title, o.Description, o.Domain, skills, o.Duration, o.Stipend,
		o.Location, workType, o.Prerequisites, o.ApplicationDeadline, o.StartDate, o.IsActive, o.IsApproved,
	)
	if err != nil {
		return opportunity.Opportunity{}, err
	}
	return r.FindByID(ctx, o.ID)
}

func (r *PostgresOpportunityRepository) Update(ctx context.Context, o opportunity.Opportunity) (opportunity.Opportunity, error) {
	skills := o.RequiredSkills
	if skills == nil {
		skills = []string{}
	}
	var workType *string
	if o.WorkType != nil {
		wt := string(*o.WorkType)
		workType = &wt
	}

	n, err := r.db.Exec(ctx,
		`UPDATE opportunities SET title = $2, description = $3, domain = $4, required_skills = $5, duration = $6,
			stipend = $7, location = $8, work_type = $9, prerequisites = $10, application_deadline = $11,
			start_date = $12, is_active = $13, updated_at = now()
		 WHERE id = $1`,
		o.ID, o.Title, o.Description, o.Domain, skills, o.Duration,
		o.Stipend, o.Location, workType, o.Prerequisites, o.ApplicationDeadline,
		o.StartDate, o.IsActive,
	)
	if err != nil {
		return opportunity.Opportunity{}, err
	}
	if n == 0 {
		return opportunity.Opportunity{}, ErrNotFound
	}
	return r.FindByID(ctx, o.ID)
}

func (r *PostgresOpportunityRepository) SetApproval(ctx context.Context, id uuid.UUID, approved bool) error {
	n, err := r.db.Exec(ctx, `UPDATE opportunities SET is_approved = $1, updated_at = now() WHERE id = $2`, approved, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresOpportunityRepository) IncrementViews(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `UPDATE opportunities SET views_count = views_count + 1 WHERE id = $1`, id)
	return err
}

func (r *PostgresOpportunityRepository) Counters(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]OpportunityCounters, error) {
	out := make(map[uuid.UUID]OpportunityCounters, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	rows, err := r.db.Query(ctx, `SELECT id, views_count, applications_count FROM opportunities WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var id uuid.UUID
		var c OpportunityCounters
		if err := rows.Scan(&id, &c.Views, &c.Applications); err != nil {
			return nil, err
		}
		out[id] = c
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func collectOpportunities(rows database.Rows) ([]opportunity.Opportunity, error) {
	out := make([]opportunity.Opportunity, 0)
	for rows.Next() {
		o, err := scanOpportunity(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanOpportunity(row database.Row) (opportunity.Opportunity, error) {
	var o opportunity.Opportunity
	var workType *string
	err := row.Scan(
		&o.ID, &o.CompanyID, &o.CompanyName, &o.Title, &o.Description, &o.Domain, &o.RequiredSkills,
		&o.Duration, &o.Stipend, &o.Location, &workType, &o.Prerequisites, &o.ApplicationDeadline, &o.StartDate,
		&o.IsActive, &o.IsApproved, &o.ViewsCount, &o.ApplicationsCount, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return opportunity.Opportunity{}, ErrNotFound
		}
		return opportunity.Opportunity{}, err
	}
	if workType != nil {
		wt := opportunity.WorkType(*workType)
		o.WorkType = &wt
	}
	return o, nil
}
