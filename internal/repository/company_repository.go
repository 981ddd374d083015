package repository

import (
	"context"

	"placement-portal/internal/database"
	"placement-portal/internal/domain/company"

	"github.com/google/uuid"
)

type CompanyRepository interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) (company.Profile, error)
	FindByID(ctx context.Context, id uuid.UUID) (company.Profile, error)
	Upsert(ctx context.Context, p company.Profile) (company.Profile, error)
}

type PostgresCompanyRepository struct {
	db database.Querier
}

func NewPostgresCompanyRepository(db database.Querier) *PostgresCompanyRepository {
	return &PostgresCompanyRepository{db: db}
}

const companyColumns = `id, user_id, name, description, website, industry, phone, address, company_size,
	created_at, updated_at`

func (r *PostgresCompanyRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (company.Profile, error) {
	return scanCompany(r.db.QueryRow(ctx, `SELECT `+companyColumns+` FROM company_profiles WHERE user_id = $1`, userID))
}

func (r *PostgresCompanyRepository) FindByID(ctx context.Context, id uuid.UUID) (company.Profile, error) {
	return scanCompany(r.db.QueryRow(ctx, `SELECT `+companyColumns+` FROM company_profiles WHERE id = $1`, id))
}

// Upsert writes every column of p; callers merge partial edits first.
func (r *PostgresCompanyRepository) Upsert(ctx context.Context, p company.Profile) (company.Profile, error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	row := r.db.QueryRow(ctx,
		`INSERT INTO company_profiles (id, user_id, name, description, website, industry, phone, address, company_size)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 ON CONFLICT (user_id) DO UPDATE SET
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			website = EXCLUDED.website,
			industry = EXCLUDED.industry,
			phone = EXCLUDED.phone,
			address = EXCLUDED.address,
			company_size = EXCLUDED.company_size,
			updated_at = now()
		 RETURNING `+companyColumns,
		p.ID, p.UserID, p.Name, p.Description, p.Website, p.Industry, p.Phone, p.Address, p.CompanySize,
	)
	return scanCompany(row)
}

func scanCompany(row database.Row) (company.Profile, error) {
	var p company.Profile
	err := row.Scan(
		&p.ID, &p.UserID, &p.Name, &p.Description, &p.Website, &p.Industry, &p.Phone, &p.Address, &p.CompanySize,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return company.Profile{}, ErrNotFound
		}
		return company.Profile{}, err
	}
	return p, nil
}
