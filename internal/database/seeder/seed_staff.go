package seeder

import (
	"context"

	"placement-portal/internal/database"
	"placement-portal/internal/domain/user"
)

type StaffSeeder struct {
	Accounts []AccountFixture
}

func (StaffSeeder) Name() string { return "staff" }

func (s StaffSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "users", "id", "email", "password_hash", "role", "is_active"); err != nil {
		return err
	}

	return database.WithTx(ctx, db, func(tx database.Tx) error {
		for _, a := range s.Accounts {
			if _, err := ensureUser(ctx, tx, a.Email, a.Password, user.Role(a.Role)); err != nil {
				return err
			}
		}
		return nil
	})
}
