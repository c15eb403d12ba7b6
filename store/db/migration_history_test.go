package db

import (
	"context"
	"path/filepath"
	"testing"
)

func newTestDB(t *testing.T) *DB {
	d, err := NewDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { d.Close() })

	stmt := `
		CREATE TABLE migration_history (
			version TEXT NOT NULL PRIMARY KEY,
			created_ts BIGINT NOT NULL DEFAULT (strftime('%s', 'now'))
		)
	`
	if err := d.execute(context.Background(), stmt); err != nil {
		t.Fatalf("Failed to create migration_history: %v", err)
	}
	return d
}

func TestRecordMigrationIsIdempotent(t *testing.T) {
	d := newTestDB(t)
	ctx := context.Background()

	if _, err := d.RecordMigration(ctx, "0.2.0"); err != nil {
		t.Fatalf("Failed to record migration: %v", err)
	}
	if _, err := d.RecordMigration(ctx, "0.2.0"); err != nil {
		t.Fatalf("Failed to re-record migration: %v", err)
	}

	list, err := d.ListMigrations(ctx)
	if err != nil {
		t.Fatalf("Failed to list migrations: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("Expected one row after re-recording, got %d", len(list))
	}
	if list[0].Version != "0.2.0" {
		t.Errorf("Expected version 0.2.0, got %s", list[0].Version)
	}

	if _, err := d.RecordMigration(ctx, "0.1.0"); err != nil {
		t.Fatalf("Failed to record migration: %v", err)
	}
	list, err = d.ListMigrations(ctx)
	if err != nil {
		t.Fatalf("Failed to list migrations: %v", err)
	}
	if len(list) != 2 {
		t.Errorf("Expected two rows, got %d", len(list))
	}
}
