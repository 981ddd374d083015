package seeder

import (
	"fmt"
	"os"
	"strings"
	"time"

	"placement-portal/internal/domain/student"

	"gopkg.in/yaml.v3"
)

const fixtureDateLayout = "2006-01-02"

// Fixture is the YAML document accepted by `portalctl seed --file`.
type Fixture struct {
	Staff     []AccountFixture `yaml:"staff"`
	Companies []CompanyFixture `yaml:"companies"`
	Students  []StudentFixture `yaml:"students"`
}

type AccountFixture struct {
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
	Role     string `yaml:"role"`
}

type CompanyFixture struct {
	Email         string               `yaml:"email"`
	Password      string               `yaml:"password"`
	Name          string               `yaml:"name"`
	Description   string               `yaml:"description"`
	Website       string               `yaml:"website"`
	Industry      string               `yaml:"industry"`
	Opportunities []OpportunityFixture `yaml:"opportunities"`
}

type OpportunityFixture struct {
	Title               string   `yaml:"title"`
	Description         string   `yaml:"description"`
	Domain              string   `yaml:"domain"`
	RequiredSkills      []string `yaml:"required_skills"`
	Location            string   `yaml:"location"`
	WorkType            string   `yaml:"work_type"`
	Stipend             string   `yaml:"stipend"`
	Duration            string   `yaml:"duration"`
	ApplicationDeadline string   `yaml:"application_deadline"`
	Approved            bool     `yaml:"approved"`
}

type StudentFixture struct {
	Email          string              `yaml:"email"`
	Password       string              `yaml:"password"`
	FirstName      string              `yaml:"first_name"`
	LastName       string              `yaml:"last_name"`
	Phone          string              `yaml:"phone"`
	DateOfBirth    string              `yaml:"date_of_birth"`
	Course         string              `yaml:"course"`
	Specialization string              `yaml:"specialization"`
	Skills         []string            `yaml:"skills"`
	Education      []student.Education `yaml:"education"`
	ResumePath     string              `yaml:"resume_path"`
	Bio            string              `yaml:"bio"`
	Address        string              `yaml:"address"`
}

func LoadFixture(path string) (Fixture, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Fixture{}, err
	}
	return ParseFixture(b)
}

func ParseFixture(b []byte) (Fixture, error) {
	var f Fixture
	if err := yaml.Unmarshal(b, &f); err != nil {
		return Fixture{}, fmt.Errorf("parse fixture: %w", err)
	}
	if err := f.validate(); err != nil {
		return Fixture{}, err
	}
	return f, nil
}

func (f Fixture) validate() error {
	for i, s := range f.Staff {
		if s.Role != "admin" && s.Role != "faculty" {
			return fmt.Errorf("staff[%d]: role must be admin or faculty, got %q", i, s.Role)
		}
		if err := requireAccount(s.Email, s.Password); err != nil {
			return fmt.Errorf("staff[%d]: %w", i, err)
		}
	}
	for i, c := range f.Companies {
		if err := requireAccount(c.Email, c.Password); err != nil {
			return fmt.Errorf("companies[%d]: %w", i, err)
		}
		if strings.TrimSpace(c.Name) == "" {
			return fmt.Errorf("companies[%d]: name is required", i)
		}
		for j, o := range c.Opportunities {
			if strings.TrimSpace(o.Title) == "" || strings.TrimSpace(o.Domain) == "" {
				return fmt.Errorf("companies[%d].opportunities[%d]: title and domain are required", i, j)
			}
			if _, err := optionalDate(o.ApplicationDeadline); err != nil {
				return fmt.Errorf("companies[%d].opportunities[%d]: %w", i, j, err)
			}
		}
	}
	for i, s := range f.Students {
		if err := requireAccount(s.Email, s.Password); err != nil {
			return fmt.Errorf("students[%d]: %w", i, err)
		}
		if _, err := optionalDate(s.DateOfBirth); err != nil {
			return fmt.Errorf("students[%d]: %w", i, err)
		}
	}
	return nil
}

func requireAccount(email, password string) error {
	if strings.TrimSpace(email) == "" {
		return fmt.Errorf("email is required")
	}
	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}
	return nil
}

func optionalDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(fixtureDateLayout, s)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q", s)
	}
	return &t, nil
}

func optionalString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// Profile converts the fixture into the profile shape the scoring rules read.
func (s StudentFixture) Profile() (student.Profile, error) {
	dob, err := optionalDate(s.DateOfBirth)
	if err != nil {
		return student.Profile{}, err
	}
	edu := s.Education
	if edu == nil {
		edu = []student.Education{}
	}
	return student.Profile{
		FirstName:      optionalString(s.FirstName),
		LastName:       optionalString(s.LastName),
		Email:          optionalString(s.Email),
		Phone:          optionalString(s.Phone),
		DateOfBirth:    dob,
		Course:         optionalString(s.Course),
		Specialization: optionalString(s.Specialization),
		Skills:         student.CleanSkills(s.Skills),
		Education:      edu,
		ResumePath:     optionalString(s.ResumePath),
		Bio:            optionalString(s.Bio),
		Address:        optionalString(s.Address),
	}, nil
}
