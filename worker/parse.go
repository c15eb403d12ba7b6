package worker // import "github.com/openleaf/openleaf/worker"

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

// GetPageCount reads the page total out of a book file.
func GetPageCount(path string) (int, error) {
	bookType := strings.ToLower(filepath.Ext(path))
	switch bookType {
	case ".pdf":
		return pdfPageCount(path)
	default:
		return 0, fmt.Errorf("Unsupported file type: %s", bookType)
	}
}

func pdfPageCount(path string) (int, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	return r.NumPage(), nil
}
