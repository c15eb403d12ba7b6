package store

import (
	"database/sql"
	"embed"
	"fmt"
	"testing"

	"github.com/pkg/errors"
	_ "modernc.org/sqlite"

	"github.com/openleaf/openleaf/config"
	"github.com/openleaf/openleaf/log"
	"github.com/openleaf/openleaf/model"
)

const latestSchemaFileName = "LATEST_SCHEMA.sql"

// Initialize the logger and config
func init() {
	config.Opts = config.GetDefaultOptions()
	log.Logger = log.NewLogger()
}

//go:embed db/migration
var migrationFS embed.FS

func applyLatestSchema(db *sql.DB) error {
	latestSchemaPath := fmt.Sprintf("db/migration/%s", latestSchemaFileName)
	buf, err := migrationFS.ReadFile(latestSchemaPath)
	if err != nil {
		return errors.Wrapf(err, "Failed to read latest schema file: %q", latestSchemaPath)
	}

	stmt := string(buf)
	if err := execute(stmt, db); err != nil {
		return errors.Wrapf(err, "Failed to apply latest schema: %s", stmt)
	}
	return nil
}

func execute(stmt string, d *sql.DB) error {
	tx, err := d.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(stmt); err != nil {
		return err
	}
	return tx.Commit()
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	filename := t.TempDir() + "/openleaf_test.db"
	db, err := sql.Open("sqlite", filename)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := applyLatestSchema(db); err != nil {
		t.Fatalf("Failed to apply schema: %v", err)
	}
	return NewStore(db)
}

func createTestUser(t *testing.T, s *Store, username string) *model.User {
	t.Helper()
	user, err := s.CreateUser(&model.User{
		Username:     username,
		PasswordHash: "test",
		Role:         model.RoleUser,
	})
	if err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	return user
}

func createTestBook(t *testing.T, s *Store, title string, uploaderID int32) *model.Book {
	t.Helper()
	book, err := s.CreateBook(&model.Book{
		Title:      title,
		Author:     "Tester",
		FilePath:   "uploads/" + title + ".pdf",
		UploaderID: uploaderID,
	})
	if err != nil {
		t.Fatalf("Failed to create book: %v", err)
	}
	return book
}

func TestCreateUserAndGet(t *testing.T) {
	s := newTestStore(t)
	created := createTestUser(t, s, "alice")

	found, err := s.GetUser(&model.FindUser{ID: &created.ID})
	if err != nil {
		t.Fatalf("Failed to get user: %v", err)
	}
	if found == nil || found.Username != "alice" {
		t.Errorf("Expected user alice, got %+v", found)
	}

	missing := "nobody"
	none, err := s.GetUser(&model.FindUser{Username: &missing})
	if err != nil {
		t.Fatalf("Failed to query missing user: %v", err)
	}
	if none != nil {
		t.Errorf("Expected nil for missing user, got %+v", none)
	}
}
