package model //import "github.com/openleaf/openleaf/model"

// ReadingProgress tracks where a user is in a book. One row per
// (user, book) pair.
type ReadingProgress struct {
	ID     int   `json:"id"`
	UserID int32 `json:"user_id"`
	BookID int   `json:"book_id"`

	CurrentPage int   `json:"current_page"`
	TotalPages  int   `json:"total_pages"`
	UpdatedTs   int64 `json:"updated_ts"`
}

// DefaultReadingProgress is returned when a user has no stored progress
// for a book yet.
func DefaultReadingProgress(userID int32, bookID int) *ReadingProgress {
	return &ReadingProgress{
		UserID:      userID,
		BookID:      bookID,
		CurrentPage: 1,
		TotalPages:  0,
	}
}

type UpsertReadingProgress struct {
	UserID int32 `json:"user_id"`
	BookID int   `json:"book_id"`

	CurrentPage int `json:"current_page"`
	TotalPages  int `json:"total_pages"`
}

type Favorite struct {
	ID        int   `json:"id"`
	UserID    int32 `json:"user_id"`
	BookID    int   `json:"book_id"`
	CreatedTs int64 `json:"created_ts"`
}
