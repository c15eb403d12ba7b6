package store

import (
	"testing"

	"github.com/openleaf/openleaf/model"
)

func TestGetReadingProgressDefault(t *testing.T) {
	s := newTestStore(t)
	user := createTestUser(t, s, "reader")
	book := createTestBook(t, s, "fresh", user.ID)

	progress, err := s.GetReadingProgress(user.ID, book.ID)
	if err != nil {
		t.Fatalf("Failed to get progress: %v", err)
	}
	if progress.CurrentPage != 1 || progress.TotalPages != 0 {
		t.Errorf("Expected default progress {1, 0}, got {%d, %d}", progress.CurrentPage, progress.TotalPages)
	}
}

func TestUpsertReadingProgress(t *testing.T) {
	s := newTestStore(t)
	user := createTestUser(t, s, "reader")
	book := createTestBook(t, s, "novel", user.ID)

	first, err := s.UpsertReadingProgress(&model.UpsertReadingProgress{
		UserID:      user.ID,
		BookID:      book.ID,
		CurrentPage: 5,
		TotalPages:  100,
	})
	if err != nil {
		t.Fatalf("Failed to upsert progress: %v", err)
	}
	if first.CurrentPage != 5 {
		t.Errorf("Expected current page 5, got %d", first.CurrentPage)
	}

	second, err := s.UpsertReadingProgress(&model.UpsertReadingProgress{
		UserID:      user.ID,
		BookID:      book.ID,
		CurrentPage: 42,
		TotalPages:  100,
	})
	if err != nil {
		t.Fatalf("Failed to upsert progress again: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("Expected upsert to reuse row %d, got %d", first.ID, second.ID)
	}
	if second.CurrentPage != 42 {
		t.Errorf("Expected current page 42, got %d", second.CurrentPage)
	}

	stored, err := s.GetReadingProgress(user.ID, book.ID)
	if err != nil {
		t.Fatalf("Failed to read back progress: %v", err)
	}
	if stored.CurrentPage != 42 || stored.TotalPages != 100 {
		t.Errorf("Expected stored progress {42, 100}, got {%d, %d}", stored.CurrentPage, stored.TotalPages)
	}
}

func TestUpsertReadingProgressPerUser(t *testing.T) {
	s := newTestStore(t)
	alice := createTestUser(t, s, "alice")
	bob := createTestUser(t, s, "bob")
	book := createTestBook(t, s, "shared", alice.ID)

	if _, err := s.UpsertReadingProgress(&model.UpsertReadingProgress{
		UserID: alice.ID, BookID: book.ID, CurrentPage: 10, TotalPages: 50,
	}); err != nil {
		t.Fatalf("Failed to upsert alice progress: %v", err)
	}

	bobProgress, err := s.GetReadingProgress(bob.ID, book.ID)
	if err != nil {
		t.Fatalf("Failed to get bob progress: %v", err)
	}
	if bobProgress.CurrentPage != 1 {
		t.Errorf("Expected bob to start at page 1, got %d", bobProgress.CurrentPage)
	}
}
