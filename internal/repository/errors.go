package repository

import (
	"errors"

	"placement-portal/internal/database"
)

var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")
)

func isNoRows(err error) bool {
	return errors.Is(err, database.ErrNoRows)
}

func isUniqueViolation(err error) bool {
	return errors.Is(err, database.ErrUniqueViolation)
}
