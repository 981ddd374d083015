package seeder

import (
	"context"
	"strings"

	"placement-portal/internal/database"
	"placement-portal/internal/domain/user"
	ucauth "placement-portal/internal/usecase/auth"

	"github.com/google/uuid"
)

// ensureUser returns the id of the account with email, creating it when absent.
// Existing accounts keep their password and role.
func ensureUser(ctx context.Context, q database.Querier, email, password string, role user.Role) (uuid.UUID, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	hash, err := ucauth.HashPassword(password)
	if err != nil {
		return uuid.Nil, err
	}

	if _, err := q.Exec(
		ctx,
		`INSERT INTO users (id, email, password_hash, role, is_active) VALUES ($1, $2, $3, $4, TRUE) ON CONFLICT (email) DO NOTHING`,
		uuid.New(),
		email,
		hash,
		string(role),
	); err != nil {
		return uuid.Nil, err
	}

	var id uuid.UUID
	if err := q.QueryRow(ctx, `SELECT id FROM users WHERE email = $1`, email).Scan(&id); err != nil {
		return uuid.Nil, err
	}
	return id, nil
}
