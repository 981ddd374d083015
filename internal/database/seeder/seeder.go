package seeder

import (
	"context"

	"placement-portal/internal/database"
)

type Seeder interface {
	Name() string
	Run(ctx context.Context, db database.DB) error
}
