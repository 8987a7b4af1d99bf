package db

import (
	"os"
	"path/filepath"
	"testing"
)

func writeMigrations(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return dir
}

func TestLoadMigrations(t *testing.T) {
	dir := writeMigrations(t, map[string]string{
		"001_core.sql":     "CREATE TABLE providers (id UUID PRIMARY KEY);",
		"002_bookings.sql": "CREATE TABLE bookings (id UUID PRIMARY KEY);",
	})

	migrations, err := NewMigrator(nil, dir).LoadMigrations()
	if err != nil {
		t.Fatalf("LoadMigrations: %v", err)
	}
	if len(migrations) != 2 {
		t.Fatalf("got %d migrations, want 2", len(migrations))
	}
	if migrations[0].Version != 1 || migrations[0].Name != "001_core.sql" {
		t.Errorf("first migration = %d %q, want 1 001_core.sql", migrations[0].Version, migrations[0].Name)
	}
	if migrations[0].SQL != "CREATE TABLE providers (id UUID PRIMARY KEY);" {
		t.Errorf("unexpected SQL content: %s", migrations[0].SQL)
	}
}

func TestLoadMigrations_SortsByVersion(t *testing.T) {
	dir := writeMigrations(t, map[string]string{
		"010_indexes.sql":  "SELECT 10;",
		"002_bookings.sql": "SELECT 2;",
		"001_core.sql":     "SELECT 1;",
		"005_payments.sql": "SELECT 5;",
	})

	migrations, err := NewMigrator(nil, dir).LoadMigrations()
	if err != nil {
		t.Fatalf("LoadMigrations: %v", err)
	}
	want := []int{1, 2, 5, 10}
	if len(migrations) != len(want) {
		t.Fatalf("got %d migrations, want %d", len(migrations), len(want))
	}
	for i, v := range want {
		if migrations[i].Version != v {
			t.Errorf("migration[%d].Version = %d, want %d", i, migrations[i].Version, v)
		}
	}
}

func TestLoadMigrations_SkipsUnversionedFiles(t *testing.T) {
	dir := writeMigrations(t, map[string]string{
		"001_core.sql":    "SELECT 1;",
		"readme.sql":      "-- no version prefix",
		"notes.txt":       "not sql",
		"abc_invalid.sql": "-- non-numeric prefix",
	})

	migrations, err := NewMigrator(nil, dir).LoadMigrations()
	if err != nil {
		t.Fatalf("LoadMigrations: %v", err)
	}
	if len(migrations) != 1 {
		t.Fatalf("got %d migrations, want only the versioned one", len(migrations))
	}
	if migrations[0].Name != "001_core.sql" {
		t.Errorf("kept %q, want 001_core.sql", migrations[0].Name)
	}
}

func TestLoadMigrations_EmptyDir(t *testing.T) {
	migrations, err := NewMigrator(nil, t.TempDir()).LoadMigrations()
	if err != nil {
		t.Fatalf("LoadMigrations: %v", err)
	}
	if len(migrations) != 0 {
		t.Errorf("got %d migrations from an empty directory, want 0", len(migrations))
	}
}

func TestLoadMigrations_MissingDir(t *testing.T) {
	if _, err := NewMigrator(nil, "/no/such/migrations").LoadMigrations(); err == nil {
		t.Error("expected an error for a missing migrations directory")
	}
}
