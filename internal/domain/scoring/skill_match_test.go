package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeSkillMatch(t *testing.T) {
	tests := []struct {
		name   string
		skills []string
		tags   []string
		want   int
	}{
		{name: "no required tags", skills: []string{"go"}, tags: nil, want: 100},
		{name: "no required tags and no skills", skills: nil, tags: []string{}, want: 100},
		{name: "no skills", skills: nil, tags: []string{"go"}, want: 0},
		{name: "case insensitive", skills: []string{"React"}, tags: []string{"react"}, want: 100},
		{name: "skill inside tag", skills: []string{"js"}, tags: []string{"ReactJS"}, want: 100},
		{name: "tag inside skill", skills: []string{"ReactJS"}, tags: []string{"js"}, want: 100},
		{name: "surrounding whitespace", skills: []string{"  Python "}, tags: []string{"python\t"}, want: 100},
		{name: "half covered", skills: []string{"Python", "SQL"}, tags: []string{"python", "java", "sql", "excel"}, want: 50},
		{name: "loose java match", skills: []string{"java"}, tags: []string{"JavaScript"}, want: 100},
		{name: "one of three rounds down", skills: []string{"go"}, tags: []string{"go", "rust", "zig"}, want: 33},
		{name: "two of three rounds up", skills: []string{"go", "rust"}, tags: []string{"go", "rust", "zig"}, want: 67},
		{name: "nothing in common", skills: []string{"figma"}, tags: []string{"go", "sql"}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeSkillMatch(tt.skills, tt.tags))
		})
	}
}

func TestComputeSkillMatch_DuplicateSkillsDoNotDoubleCount(t *testing.T) {
	got := ComputeSkillMatch([]string{"sql", "SQL", " sql "}, []string{"sql", "python"})
	assert.Equal(t, 50, got)
}

func TestComputeSkillMatch_OrderIndependent(t *testing.T) {
	skills := []string{"Python", "SQL", "Docker"}
	tags := []string{"python", "java", "sql", "excel", "docker"}

	want := ComputeSkillMatch(skills, tags)
	assert.Equal(t, 60, want)

	assert.Equal(t, want, ComputeSkillMatch([]string{"Docker", "Python", "SQL"}, tags))
	assert.Equal(t, want, ComputeSkillMatch(skills, []string{"docker", "excel", "sql", "java", "python"}))
}

func TestComputeSkillMatch_DoesNotMutateInput(t *testing.T) {
	skills := []string{" Go ", "SQL"}
	tags := []string{"GO", "Kafka"}

	first := ComputeSkillMatch(skills, tags)
	second := ComputeSkillMatch(skills, tags)

	assert.Equal(t, first, second)
	assert.Equal(t, []string{" Go ", "SQL"}, skills)
	assert.Equal(t, []string{"GO", "Kafka"}, tags)
}

func TestMatchSkills_ReportsMatchedAndMissing(t *testing.T) {
	res := MatchSkills([]string{"Python", "SQL"}, []string{"python", "Java", "sql", "Excel"})

	require.Equal(t, 50, res.Percentage)
	assert.Equal(t, 4, res.TotalRequired)
	assert.Equal(t, 2, res.MatchedCount)
	assert.Equal(t, []string{"python", "sql"}, res.MatchedTags)
	assert.Equal(t, []string{"Java", "Excel"}, res.MissingTags)
}

func TestMatchSkills_NoSkillsListsEveryTagAsMissing(t *testing.T) {
	res := MatchSkills(nil, []string{"go", "sql"})

	assert.Equal(t, 0, res.Percentage)
	assert.Empty(t, res.MatchedTags)
	assert.Equal(t, []string{"go", "sql"}, res.MissingTags)
}

func TestMatchSkills_ConcurrentCallsAgree(t *testing.T) {
	skills := []string{"Python", "SQL"}
	tags := []string{"python", "java", "sql", "excel"}

	results := make(chan int, 32)
	for i := 0; i < cap(results); i++ {
		go func() { results <- ComputeSkillMatch(skills, tags) }()
	}
	for i := 0; i < cap(results); i++ {
		assert.Equal(t, 50, <-results)
	}
}
