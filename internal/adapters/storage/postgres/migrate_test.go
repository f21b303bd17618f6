package postgres

import (
	"strings"
	"testing"
	"testing/fstest"
)

func TestLoadMigrations_SortsAndSkips(t *testing.T) {
	files := fstest.MapFS{
		"010_late.sql":   {Data: []byte("SELECT 10;")},
		"002_second.sql": {Data: []byte("SELECT 2;")},
		"001_first.sql":  {Data: []byte("SELECT 1;")},
		"README.md":      {Data: []byte("docs")},
		"draft.sql":      {Data: []byte("SELECT 0;")},
	}

	migs, err := LoadMigrations(files)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(migs) != 3 {
		t.Fatalf("expected 3 migrations, got %d", len(migs))
	}
	want := []int{1, 2, 10}
	for i, m := range migs {
		if m.Version != want[i] {
			t.Fatalf("position %d: expected version %d, got %d", i, want[i], m.Version)
		}
	}
	if migs[0].SQL != "SELECT 1;" || migs[0].Name != "001_first.sql" {
		t.Fatalf("unexpected first migration %#v", migs[0])
	}
}

func TestEmbeddedMigrations_DefineSlotIndex(t *testing.T) {
	m := NewMigrator(nil)
	migs, err := LoadMigrations(m.files)
	if err != nil || len(migs) == 0 {
		t.Fatalf("expected embedded migrations, got %d err=%v", len(migs), err)
	}

	schema := migs[0].SQL
	for _, table := range []string{"clients", "pets", "staff_accounts", "service_types", "appointments"} {
		if !strings.Contains(schema, "CREATE TABLE IF NOT EXISTS "+table) {
			t.Fatalf("expected table %s in %s", table, migs[0].Name)
		}
	}
	if !strings.Contains(schema, "appointments_slot_uq") || !strings.Contains(schema, "WHERE status <> 'CANCELLED'") {
		t.Fatalf("expected partial unique slot index")
	}
}
