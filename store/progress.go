package store

import (
	"database/sql"
	"fmt"

	"github.com/pkg/errors"

	"github.com/openleaf/openleaf/log"
	"github.com/openleaf/openleaf/model"
)

// GetReadingProgress returns the stored progress for a (user, book)
// pair, or the page-1 default when the user never opened the book.
func (s *Store) GetReadingProgress(userID int32, bookID int) (*model.ReadingProgress, error) {
	stmt := `
		SELECT
			id,
			user_id,
			book_id,
			current_page,
			total_pages,
			updated_ts
		FROM reading_progress
		WHERE user_id = ? AND book_id = ?
	`
	var progress model.ReadingProgress
	if err := s.db.QueryRow(stmt, userID, bookID).Scan(
		&progress.ID,
		&progress.UserID,
		&progress.BookID,
		&progress.CurrentPage,
		&progress.TotalPages,
		&progress.UpdatedTs,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.DefaultReadingProgress(userID, bookID), nil
		}
		return nil, errors.Wrap(err, "failed to get reading progress")
	}

	return &progress, nil
}

// UpsertReadingProgress writes the row in a single statement so
// concurrent saves never race between a read and a write.
func (s *Store) UpsertReadingProgress(upsert *model.UpsertReadingProgress) (*model.ReadingProgress, error) {
	stmt := `
		INSERT INTO reading_progress (
			user_id,
			book_id,
			current_page,
			total_pages,
			updated_ts
		)
		VALUES (?, ?, ?, ?, strftime('%s', 'now'))
		ON CONFLICT(user_id, book_id) DO UPDATE
		SET
			current_page=EXCLUDED.current_page,
			total_pages=EXCLUDED.total_pages,
			updated_ts=EXCLUDED.updated_ts
		RETURNING id, user_id, book_id, current_page, total_pages, updated_ts
	`

	log.Fallback("Debug", fmt.Sprintf("UpsertReadingProgress\nstmt: %s\nargs: %v %v %v %v\n", stmt, upsert.UserID, upsert.BookID, upsert.CurrentPage, upsert.TotalPages))

	s.dbLock.Lock()
	defer s.dbLock.Unlock()

	var progress model.ReadingProgress
	if err := s.db.QueryRow(stmt, upsert.UserID, upsert.BookID, upsert.CurrentPage, upsert.TotalPages).Scan(
		&progress.ID,
		&progress.UserID,
		&progress.BookID,
		&progress.CurrentPage,
		&progress.TotalPages,
		&progress.UpdatedTs,
	); err != nil {
		return nil, errors.Wrap(err, "failed to upsert reading progress")
	}

	return &progress, nil
}
