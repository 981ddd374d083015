package scoring

import "placement-portal/internal/domain/student"

type Field string

const (
	FieldName        Field = "name"
	FieldEmail       Field = "email"
	FieldPhone       Field = "phone"
	FieldDateOfBirth Field = "date_of_birth"
	FieldCourse      Field = "course"
	FieldSkills      Field = "skills"
	FieldEducation   Field = "education"
	FieldResumePath  Field = "resume_path"
	FieldBio         Field = "bio"
	FieldAddress     Field = "address"
)

type fieldWeight struct {
	field  Field
	weight int
	filled func(p student.Profile) bool
}

// completenessTable must sum to 100. Order is the order breakdowns are reported in.
var completenessTable = [...]fieldWeight{
	{FieldName, 15, func(p student.Profile) bool { return student.Present(p.FirstName) && student.Present(p.LastName) }},
	{FieldEmail, 5, func(p student.Profile) bool { return student.Present(p.Email) }},
	{FieldPhone, 10, func(p student.Profile) bool { return student.Present(p.Phone) }},
	{FieldDateOfBirth, 5, func(p student.Profile) bool { return p.DateOfBirth != nil && !p.DateOfBirth.IsZero() }},
	{FieldCourse, 10, func(p student.Profile) bool { return student.Present(p.Course) }},
	{FieldSkills, 15, func(p student.Profile) bool { return len(p.Skills) > 0 }},
	{FieldEducation, 10, func(p student.Profile) bool { return len(p.Education) > 0 }},
	{FieldResumePath, 20, func(p student.Profile) bool { return student.Present(p.ResumePath) }},
	{FieldBio, 5, func(p student.Profile) bool { return student.Present(p.Bio) }},
	{FieldAddress, 5, func(p student.Profile) bool { return student.Present(p.Address) }},
}

type FieldCredit struct {
	Field  Field
	Weight int
	Earned int
}

type Breakdown struct {
	Score   int
	Fields  []FieldCredit
	Missing []Field
}

// ComputeProfileCompleteness sums the weights of the filled profile fields.
// A fully filled profile scores exactly 100, an empty one 0.
func ComputeProfileCompleteness(p student.Profile) int {
	score := 0
	for _, fw := range completenessTable {
		if fw.filled(p) {
			score += fw.weight
		}
	}
	return score
}

func ProfileBreakdown(p student.Profile) Breakdown {
	b := Breakdown{
		Fields:  make([]FieldCredit, 0, len(completenessTable)),
		Missing: make([]Field, 0),
	}
	for _, fw := range completenessTable {
		fc := FieldCredit{Field: fw.field, Weight: fw.weight}
		if fw.filled(p) {
			fc.Earned = fw.weight
			b.Score += fw.weight
		} else {
			b.Missing = append(b.Missing, fw.field)
		}
		b.Fields = append(b.Fields, fc)
	}
	return b
}

func MaxCompleteness() int {
	total := 0
	for _, fw := range completenessTable {
		total += fw.weight
	}
	return total
}
