package student

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Profile is a student's self-maintained record. Every optional field is a
// pointer so "never filled in" and "cleared" both read as absent.
type Profile struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	FirstName      *string
	LastName       *string
	Email          *string
	Phone          *string
	DateOfBirth    *time.Time
	Course         *string
	Specialization *string
	Skills         []string
	Education      []Education
	ResumePath     *string
	Bio            *string
	Address        *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type Education struct {
	Degree      string `json:"degree" yaml:"degree"`
	Institution string `json:"institution" yaml:"institution"`
	StartYear   int    `json:"start_year,omitempty" yaml:"start_year"`
	EndYear     int    `json:"end_year,omitempty" yaml:"end_year"`
	GPA         string `json:"gpa,omitempty" yaml:"gpa"`
}

func (p Profile) FullName() string {
	return strings.TrimSpace(Value(p.FirstName) + " " + Value(p.LastName))
}

// Present reports whether an optional text field carries a non-blank value.
func Present(s *string) bool {
	return s != nil && strings.TrimSpace(*s) != ""
}

func Value(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// CleanSkills trims entries and drops blanks, keeping the caller's order.
func CleanSkills(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		out = append(out, s)
	}
	return out
}
