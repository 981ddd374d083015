package seeder

import (
	"context"
	"encoding/json"

	"placement-portal/internal/database"
	"placement-portal/internal/domain/user"

	"github.com/google/uuid"
)

type StudentsSeeder struct {
	Students []StudentFixture
}

func (StudentsSeeder) Name() string { return "students" }

// Run leaves profiles that already exist untouched so reseeding never
// overwrites edits made through the API.
func (s StudentsSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "student_profiles", "id", "user_id", "skills", "education", "resume_path"); err != nil {
		return err
	}

	return database.WithTx(ctx, db, func(tx database.Tx) error {
		for _, st := range s.Students {
			userID, err := ensureUser(ctx, tx, st.Email, st.Password, user.RoleStudent)
			if err != nil {
				return err
			}

			p, err := st.Profile()
			if err != nil {
				return err
			}
			eduJSON, err := json.Marshal(p.Education)
			if err != nil {
				return err
			}

			_, err = tx.Exec(
				ctx,
				`INSERT INTO student_profiles (id, user_id, first_name, last_name, email, phone, date_of_birth, course, specialization, skills, education, resume_path, bio, address)
				 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
				 ON CONFLICT (user_id) DO NOTHING`,
				uuid.New(),
				userID,
				p.FirstName,
				p.LastName,
				p.Email,
				p.Phone,
				p.DateOfBirth,
				p.Course,
				p.Specialization,
				p.Skills,
				eduJSON,
				p.ResumePath,
				p.Bio,
				p.Address,
			)
			if err != nil {
				return err
			}
		}
		return nil
	})
}
