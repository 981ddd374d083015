package company

import (
	"time"

	"github.com/google/uuid"
)

type Profile struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Name        string
	Description *string
	Website     *string
	Industry    *string
	Phone       *string
	Address     *string
	CompanySize *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
