package store

import (
	"github.com/pkg/errors"

	"github.com/openleaf/openleaf/model"
)

// ToggleFavorite flips the favorite mark for a (user, book) pair and
// reports the resulting state. The check and the flip run in one
// transaction under the write lock so a double toggle always lands
// back where it started.
func (s *Store) ToggleFavorite(userID int32, bookID int) (bool, error) {
	s.dbLock.Lock()
	defer s.dbLock.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	res, err := tx.Exec("DELETE FROM favorites WHERE user_id = ? AND book_id = ?", userID, bookID)
	if err != nil {
		return false, errors.Wrap(err, "failed to remove favorite")
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	favorited := false
	if removed == 0 {
		if _, err := tx.Exec("INSERT INTO favorites (user_id, book_id) VALUES (?, ?)", userID, bookID); err != nil {
			return false, errors.Wrap(err, "failed to add favorite")
		}
		favorited = true
	}

	if err := tx.Commit(); err != nil {
		return false, err
	}

	return favorited, nil
}

func (s *Store) IsFavorite(userID int32, bookID int) (bool, error) {
	var count int
	if err := s.db.QueryRow("SELECT COUNT(1) FROM favorites WHERE user_id = ? AND book_id = ?", userID, bookID).Scan(&count); err != nil {
		return false, errors.Wrap(err, "failed to check favorite")
	}
	return count > 0, nil
}

// GetLibraryStats builds the dashboard counters for one user.
func (s *Store) GetLibraryStats(userID int32) (*model.LibraryStats, error) {
	stats := &model.LibraryStats{}

	if err := s.db.QueryRow("SELECT COUNT(1) FROM books").Scan(&stats.TotalBooks); err != nil {
		return nil, errors.Wrap(err, "failed to count books")
	}
	if err := s.db.QueryRow("SELECT COUNT(1) FROM books WHERE uploader_id = ?", userID).Scan(&stats.MyBooks); err != nil {
		return nil, errors.Wrap(err, "failed to count uploaded books")
	}
	if err := s.db.QueryRow("SELECT COUNT(1) FROM favorites WHERE user_id = ?", userID).Scan(&stats.FavoritesCount); err != nil {
		return nil, errors.Wrap(err, "failed to count favorites")
	}
	stmt := `
		SELECT COUNT(DISTINCT book_id)
		FROM reading_progress
		WHERE user_id = ? AND total_pages > 0
	`
	if err := s.db.QueryRow(stmt, userID).Scan(&stats.BooksRead); err != nil {
		return nil, errors.Wrap(err, "failed to count opened books")
	}

	return stats, nil
}
