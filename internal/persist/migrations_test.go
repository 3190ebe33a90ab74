package persist

import (
	"io/fs"
	"strings"
	"testing"
)

func TestMigrationsEmbedded(t *testing.T) {
	entries, err := migrations.ReadDir("migrations")
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) == 0 {
		t.Fatal("no migrations embedded")
	}
	raw, err := migrations.ReadFile("migrations/" + entries[0].Name())
	if err != nil {
		t.Fatal(err)
	}
	sql := string(raw)
	for _, want := range []string{"-- +goose Up", "-- +goose Down", "combat_journal", "game_session"} {
		if !strings.Contains(sql, want) {
			t.Errorf("first migration lacks %q", want)
		}
	}
}

func TestMigrationFSRooted(t *testing.T) {
	fsys, err := migrationFS()
	if err != nil {
		t.Fatal(err)
	}
	names, err := fs.Glob(fsys, "*.sql")
	if err != nil {
		t.Fatal(err)
	}
	if len(names) == 0 || names[0] != "00001_journal.sql" {
		t.Errorf("sql files = %v", names)
	}
}
