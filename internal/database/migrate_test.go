// Package database provides connection setup for MariaDB and Redis.
// This file validates migration SQL files to catch schema mismatches early.
package database

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// migrationsDir returns the absolute path to db/migrations/ from the project root.
func migrationsDir(t *testing.T) string {
	t.Helper()
	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine test file path")
	}
	// thisFile is internal/database/migrate_test.go, project root is two dirs up.
	projectRoot := filepath.Join(filepath.Dir(thisFile), "..", "..")
	dir := filepath.Join(projectRoot, "db", "migrations")
	if _, err := os.Stat(dir); err != nil {
		t.Fatalf("migrations directory not found at %s: %v", dir, err)
	}
	return dir
}

// TestMigrations_UpDownPairs ensures every .up.sql has a matching .down.sql.
func TestMigrations_UpDownPairs(t *testing.T) {
	dir := migrationsDir(t)
	upFiles, err := filepath.Glob(filepath.Join(dir, "*.up.sql"))
	if err != nil {
		t.Fatalf("globbing up files: %v", err)
	}
	if len(upFiles) == 0 {
		t.Fatal("no migration files found")
	}

	for _, up := range upFiles {
		down := strings.Replace(up, ".up.sql", ".down.sql", 1)
		if _, err := os.Stat(down); err != nil {
			t.Errorf("missing down migration for %s", filepath.Base(up))
		}
	}
}

// TestMigrations_UniqueKeys verifies the unique indexes the seeder relies
// on. Seeding uses INSERT IGNORE, which only stays idempotent under
// concurrent first boots if these keys exist.
func TestMigrations_UniqueKeys(t *testing.T) {
	dir := migrationsDir(t)

	checks := []struct {
		file string
		key  string
	}{
		{"000001_create_users.up.sql", "uq_users_username"},
		{"000002_create_smtp_settings.up.sql", "uq_smtp_settings_provider"},
	}

	for _, check := range checks {
		data, err := os.ReadFile(filepath.Join(dir, check.file))
		if err != nil {
			t.Fatalf("reading %s: %v", check.file, err)
		}
		if !strings.Contains(string(data), check.key) {
			t.Errorf("%s: missing unique key %s", check.file, check.key)
		}
	}
}

// TestMigrations_SeedColumnsPresent catches drift between the seeder's
// INSERT column lists and the schema.
func TestMigrations_SeedColumnsPresent(t *testing.T) {
	dir := migrationsDir(t)

	checks := map[string][]string{
		"000001_create_users.up.sql":         {"username", "password", "email"},
		"000002_create_smtp_settings.up.sql": {"provider", "host", "port", "username", "password_encrypted", "secure"},
		"000003_create_email_log.up.sql":     {"provider", "recipient", "message_id", "status"},
	}

	for file, columns := range checks {
		data, err := os.ReadFile(filepath.Join(dir, file))
		if err != nil {
			t.Fatalf("reading %s: %v", file, err)
		}
		for _, col := range columns {
			if !strings.Contains(string(data), col) {
				t.Errorf("%s: missing column %s", file, col)
			}
		}
	}
}
