package migration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/NapatKulnarong/ReMeals/migrations"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"add impact index", "add_impact_index"},
		{"Add-Impact-Index", "add_impact_index"},
		{"ADD__IMPACT__INDEX", "add_impact_index"},
		{"   spaces   ", "spaces"},
		{"special!@#$chars", "specialchars"},
		{"_leading and trailing_", "leading_and_trailing"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, sanitizeName(tt.input))
		})
	}
}

func TestCreateMigration_Sequential(t *testing.T) {
	dir := t.TempDir()

	first, err := CreateMigration(dir, "init schema", "")
	require.NoError(t, err)
	assert.Equal(t, "000001", first.Version)
	assert.Equal(t, filepath.Join(dir, "000001_init_schema.up.sql"), first.UpPath)
	assert.Equal(t, filepath.Join(dir, "000001_init_schema.down.sql"), first.DownPath)

	second, err := CreateMigration(dir, "Add food expiry index", "Speeds up the expiry sweep")
	require.NoError(t, err)
	assert.Equal(t, "000002", second.Version)

	up, err := os.ReadFile(second.UpPath)
	require.NoError(t, err)
	assert.Contains(t, string(up), "-- Migration: add_food_expiry_index")
	assert.Contains(t, string(up), "-- Description: Speeds up the expiry sweep")

	names, err := ListMigrations(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"000001_init_schema", "000002_add_food_expiry_index"}, names)
}

func TestCreateMigration_RejectsEmptyName(t *testing.T) {
	_, err := CreateMigration(t.TempDir(), "!!!", "")
	assert.Error(t, err)
}

func TestListMigrations(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{
		"000010_later.up.sql", "000010_later.down.sql",
		"000002_second.up.sql", "000002_second.down.sql",
		"README.md", "notes.up.sql",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("--"), 0o644))
	}

	names, err := ListMigrations(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"000002_second", "000010_later"}, names)

	missing, err := ListMigrations(filepath.Join(dir, "missing"))
	require.NoError(t, err)
	assert.Empty(t, missing)
}

func TestEmbeddedMigrationsArePaired(t *testing.T) {
	entries, err := migrations.FS.ReadDir(".")
	require.NoError(t, err)

	ups, downs := map[string]bool{}, map[string]bool{}
	for _, e := range entries {
		m := migrationFileRe.FindStringSubmatch(e.Name())
		if m == nil {
			continue
		}
		if m[3] == "up" {
			ups[m[1]+"_"+m[2]] = true
		} else {
			downs[m[1]+"_"+m[2]] = true
		}
	}
	require.NotEmpty(t, ups)
	assert.Equal(t, ups, downs)
}
