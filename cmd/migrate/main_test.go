package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDescriptionFromFilename(t *testing.T) {
	assert.Equal(t, "initial schema", descriptionFromFilename("2026-10-15-001-initial-schema.sql"))
	assert.Equal(t, "no prefix", descriptionFromFilename("no-prefix.sql"))
}

func TestPendingMigrations(t *testing.T) {
	files := []string{
		"db/2026-10-16-001-b.sql",
		"db/2026-10-15-001-a.sql",
		"db/2026-10-17-001-c.sql",
	}
	applied := map[string]bool{"2026-10-15-001-a.sql": true}

	got := pendingMigrations(files, applied)

	assert.Equal(t, []string{"db/2026-10-16-001-b.sql", "db/2026-10-17-001-c.sql"}, got)
	// Input order is untouched.
	assert.Equal(t, "db/2026-10-16-001-b.sql", files[0])
}

func TestPendingMigrations_AllApplied(t *testing.T) {
	got := pendingMigrations([]string{"db/x.sql"}, map[string]bool{"x.sql": true})
	assert.Empty(t, got)
}
