package repository

import (
	"context"
	"encoding/json"

	"placement-portal/internal/database"
	"placement-portal/internal/domain/student"

	"github.com/google/uuid"
)

type StudentProfileRepository interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) (student.Profile, error)
	FindByID(ctx context.Context, id uuid.UUID) (student.Profile, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]student.Profile, error)
	ListAll(ctx context.Context) ([]student.Profile, error)
	Upsert(ctx context.Context, p student.Profile) (student.Profile, error)
}

type PostgresStudentProfileRepository struct {
	db database.DB
}

func NewPostgresStudentProfileRepository(db database.DB) *PostgresStudentProfileRepository {
	return &PostgresStudentProfileRepository{db: db}
}

const studentProfileColumns = `id, user_id, first_name, last_name, email, phone, date_of_birth, course,
	specialization, skills, education, resume_path, bio, address, created_at, updated_at`

func (r *PostgresStudentProfileRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (student.Profile, error) {
	row := r.db.QueryRow(ctx, `SELECT `+studentProfileColumns+` FROM student_profiles WHERE user_id = $1`, userID)
	return scanStudentProfile(row)
}

func (r *PostgresStudentProfileRepository) FindByID(ctx context.Context, id uuid.UUID) (student.Profile, error) {
	row := r.db.QueryRow(ctx, `SELECT `+studentProfileColumns+` FROM student_profiles WHERE id = $1`, id)
	return scanStudentProfile(row)
}

func (r *PostgresStudentProfileRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]student.Profile, error) {
	out := make(map[uuid.UUID]student.Profile, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	rows, err := r.db.Query(ctx, `SELECT `+studentProfileColumns+` FROM student_profiles WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		p, err := scanStudentProfile(rows)
		if err != nil {
			return nil, err
		}
		out[p.ID] = p
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresStudentProfileRepository) ListAll(ctx context.Context) ([]student.Profile, error) {
	rows, err := r.db.Query(ctx, `SELECT `+studentProfileColumns+` FROM student_profiles ORDER BY created_at ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]student.Profile, 0)
	for rows.Next() {
		p, err := scanStudentProfile(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresStudentProfileRepository) Upsert(ctx context.Context, p student.Profile) (student.Profile, error) {
	edu, err := json.Marshal(educationOrEmpty(p.Education))
	if err != nil {
		return student.Profile{}, err
	}
	skills := p.Skills
	if skills == nil {
		skills = []string{}
	}

	row := r.db.QueryRow(ctx,
		`INSERT INTO student_profiles (id, user_id, first_name, last_name, email, phone, date_of_birth, course,
			specialization, skills, education, resume_path, bio, address)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		 ON CONFLICT (user_id) DO UPDATE SET
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			email = EXCLUDED.email,
			phone = EXCLUDED.phone,
			date_of_birth = EXCLUDED.date_of_birth,
			course = EXCLUDED.course,
			specialization = EXCLUDED.specialization,
			skills = EXCLUDED.skills,
			education = EXCLUDED.education,
			resume_path = EXCLUDED.resume_path,
			bio = EXCLUDED.bio,
			address = EXCLUDED.address,
			updated_at = now()
		 RETURNING `+studentProfileColumns,
		p.ID, p.UserID, p.FirstName, p.LastName, p.Email, p.Phone, p.DateOfBirth, p.Course,
		p.Specialization, skills, edu, p.ResumePath, p.Bio, p.Address,
	)
	return scanStudentProfile(row)
}

func scanStudentProfile(row database.Row) (student.Profile, error) {
	var p student.Profile
	var edu []byte
	err := row.Scan(
		&p.ID, &p.UserID, &p.FirstName, &p.LastName, &p.Email, &p.Phone, &p.DateOfBirth, &p.Course,
		&p.Specialization, &p.Skills, &edu, &p.ResumePath, &p.Bio, &p.Address, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return student.Profile{}, ErrNotFound
		}
		return student.Profile{}, err
	}
	if len(edu) > 0 {
		if err := json.Unmarshal(edu, &p.Education); err != nil {
			return student.Profile{}, err
		}
	}
	return p, nil
}

func educationOrEmpty(in []student.Education) []student.Education {
	if in == nil {
		return []student.Education{}
	}
	return in
}
