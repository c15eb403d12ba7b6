package model //import "github.com/openleaf/openleaf/model"

// LibraryStats summarizes the catalog for one user's dashboard.
type LibraryStats struct {
	TotalBooks     int `json:"total_books"`
	MyBooks        int `json:"my_books"`
	FavoritesCount int `json:"favorites_count"`
	// BooksRead counts distinct books the user has opened far enough
	// for a page total to be recorded.
	BooksRead int `json:"books_read"`
}
