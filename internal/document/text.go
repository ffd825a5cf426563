// Package document converts downloaded study plan PDFs into plain text.
package document

import (
	"strings"

	"github.com/ledongthuc/pdf"

	domerrors "github.com/abitbot/abit-advisor-go/internal/errors"
)

// ExtractText extracts the plain text of a PDF page by page, joined
// with newlines in page order. A page that yields no extractable text
// (scanned image pages, broken content streams) contributes an empty
// line rather than failing the document. Only an unopenable document
// is an error.
func ExtractText(path string) (string, error) {
	file, reader, err := pdf.Open(path)
	if err != nil {
		return "", domerrors.NewDocumentOpenError(path, err)
	}
	defer func() { _ = file.Close() }()

	pages := make([]string, 0, reader.NumPage())
	for i := 1; i <= reader.NumPage(); i++ {
		pages = append(pages, extractPageText(reader, i))
	}
	return strings.Join(pages, "\n"), nil
}

// extractPageText extracts one page's text, degrading to "" on any
// per-page failure. The pdf library panics on some malformed content
// streams, so the recover is part of the contract here.
func extractPageText(reader *pdf.Reader, pageNum int) (text string) {
	defer func() {
		if r := recover(); r != nil {
			text = ""
		}
	}()

	page := reader.Page(pageNum)
	if page.V.IsNull() {
		return ""
	}

	text, err := page.GetPlainText(nil)
	if err != nil {
		return ""
	}
	return text
}
