package reader // import "github.com/openleaf/openleaf/reader"

import (
	"github.com/ledongthuc/pdf"
	"github.com/pkg/errors"
)

// PDFDocument renders pages of a PDF file as plain text.
type PDFDocument struct {
	f      *pdf.Reader
	closer interface{ Close() error }
	pages  int
}

// OpenPDF opens a PDF file for reading.
func OpenPDF(path string) (*PDFDocument, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open %s", path)
	}
	return &PDFDocument{
		f:      r,
		closer: f,
		pages:  r.NumPage(),
	}, nil
}

func (d *PDFDocument) NumPages() int {
	return d.pages
}

func (d *PDFDocument) RenderPage(n int) (*Page, error) {
	if n < 1 || n > d.pages {
		return nil, errors.Errorf("page %d out of range", n)
	}

	page := d.f.Page(n)
	if page.V.IsNull() {
		return nil, errors.Errorf("page %d is missing", n)
	}

	text, err := page.GetPlainText(nil)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to extract text of page %d", n)
	}

	return &Page{Number: n, Text: text}, nil
}

func (d *PDFDocument) Close() error {
	return d.closer.Close()
}
