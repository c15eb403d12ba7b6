package store

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/openleaf/openleaf/log"
	"github.com/openleaf/openleaf/model"
)

func (s *Store) GetBook(find *model.FindBook) (*model.Book, error) {
	if find.ID != nil {
		if cache, ok := s.BookCache.Load(*find.ID); ok {
			return cache.(*model.Book), nil
		}
	}

	list, err := s.ListBooks(find)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}

	book := &list[0].Book
	s.BookCache.Store(book.ID, book)
	return book, nil
}

// ListBooks returns catalog rows. When find.UserID is set each row is
// decorated with that user's favorite flag and current page.
func (s *Store) ListBooks(find *model.FindBook) ([]*model.BookListItem, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.ID; v != nil {
		where, args = append(where, "b.id = ?"), append(args, *v)
	}
	if v := find.Title; v != nil {
		where, args = append(where, "b.title = ?"), append(args, *v)
	}
	if v := find.UploaderID; v != nil {
		where, args = append(where, "b.uploader_id = ?"), append(args, *v)
	}
	if v := find.Search; v != nil {
		pattern := "%" + *v + "%"
		where, args = append(where, "(b.title LIKE ? OR b.author LIKE ?)"), append(args, pattern, pattern)
	}
	if v := find.FavoritedBy; v != nil {
		where, args = append(where, "b.id IN (SELECT book_id FROM favorites WHERE user_id = ?)"), append(args, *v)
	}

	// The decoration user. A NULL user matches nothing in the joins,
	// leaving is_favorite false and current_page 0.
	var decorate any
	if find.UserID != nil {
		decorate = *find.UserID
	}

	orderBy := "b.created_ts DESC"
	if v := find.OrderBy; v != nil {
		orderBy = *v
	}

	query := `
		SELECT
			b.id,
			b.created_ts,
			b.updated_ts,
			b.title,
			b.author,
			b.description,
			b.file_path,
			b.cover_path,
			b.file_size,
			b.page_count,
			b.uploader_id,
			COALESCE(u.username, ''),
			f.id IS NOT NULL,
			COALESCE(rp.current_page, 0)
		FROM books b
		LEFT JOIN users u ON u.id = b.uploader_id
		LEFT JOIN favorites f ON f.book_id = b.id AND f.user_id = ?
		LEFT JOIN reading_progress rp ON rp.book_id = b.id AND rp.user_id = ?
		WHERE ` + strings.Join(where, " AND ") + ` ORDER BY ` + orderBy
	if v := find.Limit; v != nil {
		query += fmt.Sprintf(" LIMIT %d", *v)
	}
	args = append([]any{decorate, decorate}, args...)

	log.Debug("SQL query and args:")
	log.Fallback("Debug", fmt.Sprintf("query: %s\nargs: %v\n", query, args))

	rows, err := s.db.Query(query, args...)
	if err != nil {
		log.Debug("Error querying books", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	list := make([]*model.BookListItem, 0)
	for rows.Next() {
		var item model.BookListItem
		if err := rows.Scan(
			&item.ID,
			&item.CreatedTs,
			&item.UpdatedTs,
			&item.Title,
			&item.Author,
			&item.Description,
			&item.FilePath,
			&item.CoverPath,
			&item.FileSize,
			&item.PageCount,
			&item.UploaderID,
			&item.UploaderName,
			&item.IsFavorite,
			&item.CurrentPage,
		); err != nil {
			return nil, err
		}
		list = append(list, &item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return list, nil
}

func (s *Store) CreateBook(create *model.Book) (*model.Book, error) {
	fields := []string{"`title`", "`author`", "`description`", "`file_path`", "`cover_path`", "`file_size`", "`page_count`", "`uploader_id`"}
	placeholder := []string{"?", "?", "?", "?", "?", "?", "?", "?"}
	args := []any{create.Title, create.Author, create.Description, create.FilePath, create.CoverPath, create.FileSize, create.PageCount, create.UploaderID}
	stmt := "INSERT INTO books (" + strings.Join(fields, ", ") + ") VALUES (" + strings.Join(placeholder, ", ") + ") RETURNING id, created_ts, updated_ts"

	log.Fallback("Debug", fmt.Sprintf("CreateBook\nstmt: %s\nargs: %v\n", stmt, args))

	s.dbLock.Lock()
	defer s.dbLock.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	book := *create
	if book.CoverPath == "" {
		book.CoverPath = model.DefaultCoverPath
		args[4] = book.CoverPath
	}
	if err := tx.QueryRow(stmt, args...).Scan(
		&book.ID,
		&book.CreatedTs,
		&book.UpdatedTs,
	); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &book, nil
}

// SetBookPageCount records the analyzed page total for a book.
func (s *Store) SetBookPageCount(bookID, pageCount int) error {
	s.dbLock.Lock()
	defer s.dbLock.Unlock()

	stmt := "UPDATE books SET page_count = ?, updated_ts = strftime('%s', 'now') WHERE id = ?"
	if _, err := s.db.Exec(stmt, pageCount, bookID); err != nil {
		return errors.Wrap(err, "failed to set page count")
	}
	s.BookCache.Delete(bookID)
	return nil
}

func (s *Store) SetBookCover(bookID int, coverPath string) error {
	s.dbLock.Lock()
	defer s.dbLock.Unlock()

	stmt := "UPDATE books SET cover_path = ?, updated_ts = strftime('%s', 'now') WHERE id = ?"
	if _, err := s.db.Exec(stmt, coverPath, bookID); err != nil {
		return errors.Wrap(err, "failed to set cover path")
	}
	s.BookCache.Delete(bookID)
	return nil
}

// RemoveBook deletes the book row together with every user's progress
// and favorite rows for it.
func (s *Store) RemoveBook(bookID int) error {
	s.dbLock.Lock()
	defer s.dbLock.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM reading_progress WHERE book_id = ?", bookID); err != nil {
		return errors.Wrap(err, "failed to remove reading progress")
	}
	if _, err := tx.Exec("DELETE FROM favorites WHERE book_id = ?", bookID); err != nil {
		return errors.Wrap(err, "failed to remove favorites")
	}
	if _, err := tx.Exec("DELETE FROM books WHERE id = ?", bookID); err != nil {
		return errors.Wrap(err, "failed to remove book")
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.BookCache.Delete(bookID)
	return nil
}
