package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) []byte {
	t.Helper()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	require.NoError(t, rootCmd.Execute())
	return out.Bytes()
}

func TestScoreMatch(t *testing.T) {
	raw := execute(t, "score", "match", "--skills", "go,postgres", "--tags", "Go,Docker,PostgreSQL")

	var got matchOutput
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, 67, got.Percentage)
	assert.Equal(t, []string{"Go", "PostgreSQL"}, got.Matched)
	assert.Equal(t, []string{"Docker"}, got.Missing)
	assert.False(t, got.Eligible)
}

func TestScoreProfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ada.yaml")
	doc := `
first_name: Ada
last_name: Lovelace
email: ada@uni.edu
phone: "+44 20 0000"
course: Computer Science
skills: [Go]
resume_path: /resumes/ada.pdf
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	raw := execute(t, "score", "profile", "--file", path)

	var got profileOutput
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, 75, got.Score)
	assert.True(t, got.CanApply)
	assert.Equal(t, "advisory", got.Readiness)
	assert.NotEmpty(t, got.Tip)
	assert.Len(t, got.Fields, 10)
}
