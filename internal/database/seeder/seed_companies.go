package seeder

import (
	"context"
	"strings"

	"placement-portal/internal/database"
	"placement-portal/internal/domain/student"
	"placement-portal/internal/domain/user"

	"github.com/google/uuid"
)

// CompaniesSeeder creates company accounts, their profiles and their
// opportunities. An opportunity is matched on (company, title) so reruns
// do not duplicate it.
type CompaniesSeeder struct {
	Companies []CompanyFixture
}

func (CompaniesSeeder) Name() string { return "companies" }

func (s CompaniesSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "company_profiles", "id", "user_id", "name", "industry"); err != nil {
		return err
	}
	if err := EnsureTableColumns(ctx, db, "opportunities", "id", "company_id", "title", "domain", "required_skills", "is_approved"); err != nil {
		return err
	}

	return database.WithTx(ctx, db, func(tx database.Tx) error {
		for _, c := range s.Companies {
			userID, err := ensureUser(ctx, tx, c.Email, c.Password, user.RoleCompany)
			if err != nil {
				return err
			}

			var companyID uuid.UUID
			err = tx.QueryRow(
				ctx,
				`INSERT INTO company_profiles (id, user_id, name, description, website, industry)
				 VALUES ($1, $2, $3, $4, $5, $6)
				 ON CONFLICT (user_id) DO UPDATE SET
					name = EXCLUDED.name,
					description = EXCLUDED.description,
					website = EXCLUDED.website,
					industry = EXCLUDED.industry,
					updated_at = now()
				 RETURNING id`,
				uuid.New(),
				userID,
				strings.TrimSpace(c.Name),
				optionalString(c.Description),
				optionalString(c.Website),
				optionalString(c.Industry),
			).Scan(&companyID)
			if err != nil {
				return err
			}

			for _, o := range c.Opportunities {
				if err := insertOpportunity(ctx, tx, companyID, o); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

func insertOpportunity(ctx context.Context, tx database.Tx, companyID uuid.UUID, o OpportunityFixture) error {
	deadline, err := optionalDate(o.ApplicationDeadline)
	if err != nil {
		return err
	}

	var workType *string
	if wt := optionalString(o.WorkType); wt != nil {
		lower := strings.ToLower(*wt)
		workType = &lower
	}

	_, err = tx.Exec(
		ctx,
		`INSERT INTO opportunities (id, company_id, title, description, domain, required_skills, location, work_type, stipend, duration, application_deadline, is_active, is_approved)
		 SELECT $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, TRUE, $12
		 WHERE NOT EXISTS (SELECT 1 FROM opportunities WHERE company_id = $2 AND title = $3)`,
		uuid.New(),
		companyID,
		strings.TrimSpace(o.Title),
		strings.TrimSpace(o.Description),
		strings.TrimSpace(o.Domain),
		student.CleanSkills(o.RequiredSkills),
		optionalString(o.Location),
		workType,
		optionalString(o.Stipend),
		optionalString(o.Duration),
		deadline,
		o.Approved,
	)
	return err
}
