package migration

import (
	"testing"
	"testing/fstest"

	"placement-portal/migrations"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_SortsAndSkipsUnrelatedFiles(t *testing.T) {
	src := fstest.MapFS{
		"V10__later.sql":   {Data: []byte("SELECT 10;")},
		"V2__second.sql":   {Data: []byte("SELECT 2;")},
		"V1__first.sql":    {Data: []byte("  SELECT 1;\n")},
		"README.md":        {Data: []byte("notes")},
		"embed.go":         {Data: []byte("package migrations")},
		"nested/V3__x.sql": {Data: []byte("SELECT 3;")},
	}

	migs, err := Load(src)
	require.NoError(t, err)
	require.Len(t, migs, 3)

	assert.Equal(t, []int64{1, 2, 10}, []int64{migs[0].Version, migs[1].Version, migs[2].Version})
	assert.Equal(t, "first", migs[0].Name)
	assert.Equal(t, "SELECT 1;", migs[0].SQL)
	assert.Len(t, migs[0].Checksum, 64)
}

func TestLoad_RejectsDuplicateVersions(t *testing.T) {
	src := fstest.MapFS{
		"V1__a.sql":  {Data: []byte("SELECT 1;")},
		"V01__b.sql": {Data: []byte("SELECT 1;")},
	}

	_, err := Load(src)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate migration version")
}

func TestLoad_RejectsEmptyFile(t *testing.T) {
	_, err := Load(fstest.MapFS{"V1__empty.sql": {Data: []byte("   ")}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty migration file")
}

func TestPending(t *testing.T) {
	migs, err := Load(fstest.MapFS{
		"V1__a.sql": {Data: []byte("SELECT 1;")},
		"V2__b.sql": {Data: []byte("SELECT 2;")},
	})
	require.NoError(t, err)

	pending, err := Pending(migs, map[int64]appliedMigration{1: {Version: 1, Checksum: migs[0].Checksum}})
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.EqualValues(t, 2, pending[0].Version)

	_, err = Pending(migs, map[int64]appliedMigration{1: {Version: 1, Checksum: "stale"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "checksum mismatch")
}

func TestEmbeddedMigrationsLoad(t *testing.T) {
	migs, err := Load(migrations.FS)
	require.NoError(t, err)
	require.NotEmpty(t, migs)
	assert.EqualValues(t, 1, migs[0].Version)
}
