package model //import "github.com/openleaf/openleaf/model"

// DefaultCoverPath marks books that never got a real cover. The catalog
// serves a bundled placeholder for it instead of reading from disk.
const DefaultCoverPath = "assets/default-cover.svg"

type Book struct {
	ID int `json:"id"`

	CreatedTs int64 `json:"created_ts"`
	UpdatedTs int64 `json:"updated_ts"`

	Title       string `json:"title"`
	Author      string `json:"author"`
	Description string `json:"description"`
	FilePath    string `json:"file_path"`
	CoverPath   string `json:"cover_path"`
	FileSize    int64  `json:"file_size"`
	PageCount   int    `json:"page_count"`
	UploaderID  int32  `json:"uploader_id"`
}

// HasCover reports whether the book carries its own cover image.
func (b *Book) HasCover() bool {
	return b.CoverPath != "" && b.CoverPath != DefaultCoverPath
}

type FindBook struct {
	ID         *int    `json:"id"`
	Title      *string `json:"title"`
	UploaderID *int32  `json:"uploader_id"`
	// UserID decorates each row with that user's favorite and progress state.
	UserID *int32 `json:"user_id"`
	// FavoritedBy restricts the list to books that user marked favorite.
	FavoritedBy *int32 `json:"favorited_by"`

	// Search matches title or author with a substring search.
	Search *string `json:"search"`

	OrderBy *string `json:"order_by"`
	// The maximum number of books to return.
	Limit *int `json:"limit"`
}

// BookListItem is a catalog row decorated with per-user state.
type BookListItem struct {
	Book

	UploaderName string `json:"uploader_name"`
	IsFavorite   bool   `json:"is_favorite"`
	// CurrentPage is 0 when the user never opened the book.
	CurrentPage int `json:"current_page"`
}
