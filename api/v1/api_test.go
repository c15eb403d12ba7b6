package v1

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	_ "modernc.org/sqlite"

	"github.com/openleaf/openleaf/config"
	"github.com/openleaf/openleaf/http/request"
	"github.com/openleaf/openleaf/log"
	"github.com/openleaf/openleaf/model"
	"github.com/openleaf/openleaf/storage"
	"github.com/openleaf/openleaf/store"
)

// Initialize the logger and config
func init() {
	config.Opts = config.GetDefaultOptions()
	log.Logger = log.NewLogger()
}

type fakePool struct {
	jobs []model.Job
}

func (p *fakePool) Push(job model.Job) {
	p.jobs = append(p.jobs, job)
}

func newTestHandler(t *testing.T) (*Handler, *store.Store) {
	t.Helper()
	dir := t.TempDir()
	db, err := sql.Open("sqlite", dir+"/openleaf_test.db")
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	schema, err := os.ReadFile("../../store/db/migration/LATEST_SCHEMA.sql")
	if err != nil {
		t.Fatalf("Failed to read schema: %v", err)
	}
	if _, err := db.Exec(string(schema)); err != nil {
		t.Fatalf("Failed to apply schema: %v", err)
	}

	s := store.NewStore(db)
	return &Handler{
		store:       s,
		storage:     storage.NewLocalStorage(dir),
		analyzePool: &fakePool{},
	}, s
}

func createTestUser(t *testing.T, s *store.Store, username string) *model.User {
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

func createTestBook(t *testing.T, s *store.Store, title string, uploaderID int32) *model.Book {
	t.Helper()
	book, err := s.CreateBook(&model.Book{
		Title:      title,
		FilePath:   "uploads/" + title + ".pdf",
		UploaderID: uploaderID,
	})
	if err != nil {
		t.Fatalf("Failed to create book: %v", err)
	}
	return book
}

// newAuthedRequest builds a request that already went through the
// authentication middleware.
func newAuthedRequest(method, target string, body string, user *model.User, vars map[string]string) *http.Request {
	var r *http.Request
	if body != "" {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
	} else {
		r = httptest.NewRequest(method, target, nil)
	}
	ctx := r.Context()
	ctx = context.WithValue(ctx, request.UserIDContextKey, user.ID)
	ctx = context.WithValue(ctx, request.UserNameContextKey, user.Username)
	ctx = context.WithValue(ctx, request.UserRoleContextKey, user.Role.String())
	r = r.WithContext(ctx)
	if vars != nil {
		r = mux.SetURLVars(r, vars)
	}
	return r
}

func TestGetProgressDefault(t *testing.T) {
	h, s := newTestHandler(t)
	user := createTestUser(t, s, "reader")
	book := createTestBook(t, s, "fresh", user.ID)

	r := newAuthedRequest(http.MethodGet, "/api/v1/progress/1", "", user, map[string]string{"bookId": strconv.Itoa(book.ID)})
	w := httptest.NewRecorder()
	h.getProgress(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	var progress model.ReadingProgress
	if err := json.Unmarshal(w.Body.Bytes(), &progress); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if progress.CurrentPage != 1 || progress.TotalPages != 0 {
		t.Errorf("Expected default progress {1, 0}, got {%d, %d}", progress.CurrentPage, progress.TotalPages)
	}
}

func TestSaveProgressUpserts(t *testing.T) {
	h, s := newTestHandler(t)
	user := createTestUser(t, s, "reader")
	book := createTestBook(t, s, "novel", user.ID)

	body := fmt.Sprintf(`{"bookId": %d, "currentPage": 12, "totalPages": 90}`, book.ID)
	r := newAuthedRequest(http.MethodPost, "/api/v1/progress", body, user, nil)
	w := httptest.NewRecorder()
	h.saveProgress(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	body = fmt.Sprintf(`{"bookId": %d, "currentPage": 30, "totalPages": 90}`, book.ID)
	r = newAuthedRequest(http.MethodPost, "/api/v1/progress", body, user, nil)
	w = httptest.NewRecorder()
	h.saveProgress(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200 on second save, got %d", w.Code)
	}

	progress, err := s.GetReadingProgress(user.ID, book.ID)
	if err != nil {
		t.Fatalf("Failed to read progress: %v", err)
	}
	if progress.CurrentPage != 30 {
		t.Errorf("Expected current page 30, got %d", progress.CurrentPage)
	}
}

func TestSaveProgressDefaultsZeroPage(t *testing.T) {
	h, s := newTestHandler(t)
	user := createTestUser(t, s, "reader")
	book := createTestBook(t, s, "novel", user.ID)

	body := fmt.Sprintf(`{"bookId": %d, "currentPage": 0, "totalPages": 90}`, book.ID)
	r := newAuthedRequest(http.MethodPost, "/api/v1/progress", body, user, nil)
	w := httptest.NewRecorder()
	h.saveProgress(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	progress, err := s.GetReadingProgress(user.ID, book.ID)
	if err != nil {
		t.Fatalf("Failed to read progress: %v", err)
	}
	if progress.CurrentPage != 1 {
		t.Errorf("Expected page 0 to default to 1, got %d", progress.CurrentPage)
	}
}

func TestSaveProgressMissingBook(t *testing.T) {
	h, s := newTestHandler(t)
	user := createTestUser(t, s, "reader")

	r := newAuthedRequest(http.MethodPost, "/api/v1/progress", `{"bookId": 999, "currentPage": 2}`, user, nil)
	w := httptest.NewRecorder()
	h.saveProgress(w, r)
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for missing book, got %d", w.Code)
	}
}

func TestToggleFavoriteRoundTrip(t *testing.T) {
	h, s := newTestHandler(t)
	user := createTestUser(t, s, "collector")
	book := createTestBook(t, s, "keeper", user.ID)
	vars := map[string]string{"bookId": strconv.Itoa(book.ID)}

	var result map[string]bool

	r := newAuthedRequest(http.MethodPost, "/api/v1/favorites/1", "", user, vars)
	w := httptest.NewRecorder()
	h.toggleFavorite(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if !result["favorited"] {
		t.Error("Expected first toggle to favorite")
	}

	r = newAuthedRequest(http.MethodPost, "/api/v1/favorites/1", "", user, vars)
	w = httptest.NewRecorder()
	h.toggleFavorite(w, r)
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if result["favorited"] {
		t.Error("Expected second toggle to unfavorite")
	}
}

func TestDeleteBookRequiresUploader(t *testing.T) {
	h, s := newTestHandler(t)
	owner := createTestUser(t, s, "owner")
	other := createTestUser(t, s, "other")
	book := createTestBook(t, s, "guarded", owner.ID)
	vars := map[string]string{"id": strconv.Itoa(book.ID)}

	r := newAuthedRequest(http.MethodDelete, "/api/v1/books/1", "", other, vars)
	w := httptest.NewRecorder()
	h.deleteBook(w, r)
	if w.Code != http.StatusForbidden {
		t.Fatalf("Expected 403 for non-uploader, got %d", w.Code)
	}

	r = newAuthedRequest(http.MethodDelete, "/api/v1/books/1", "", owner, vars)
	w = httptest.NewRecorder()
	h.deleteBook(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200 for uploader, got %d", w.Code)
	}

	got, err := s.GetBook(&model.FindBook{ID: &book.ID})
	if err != nil {
		t.Fatalf("Failed to query book: %v", err)
	}
	if got != nil {
		t.Error("Expected book to be deleted")
	}
}

func TestListBooksSearchParam(t *testing.T) {
	h, s := newTestHandler(t)
	user := createTestUser(t, s, "searcher")
	createTestBook(t, s, "alpha", user.ID)
	createTestBook(t, s, "beta", user.ID)

	r := newAuthedRequest(http.MethodGet, "/api/v1/books?search=alp", "", user, nil)
	w := httptest.NewRecorder()
	h.listBooks(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	var books []*model.BookListItem
	if err := json.Unmarshal(w.Body.Bytes(), &books); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(books) != 1 || books[0].Title != "alpha" {
		t.Errorf("Expected only alpha, got %d books", len(books))
	}
}

func TestStats(t *testing.T) {
	h, s := newTestHandler(t)
	user := createTestUser(t, s, "counter")
	book := createTestBook(t, s, "counted", user.ID)

	if _, err := s.ToggleFavorite(user.ID, book.ID); err != nil {
		t.Fatalf("Failed to favorite: %v", err)
	}

	r := newAuthedRequest(http.MethodGet, "/api/v1/stats", "", user, nil)
	w := httptest.NewRecorder()
	h.getStats(w, r)

	var stats model.LibraryStats
	if err := json.Unmarshal(w.Body.Bytes(), &stats); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if stats.TotalBooks != 1 || stats.MyBooks != 1 || stats.FavoritesCount != 1 {
		t.Errorf("Unexpected stats: %+v", stats)
	}
}
