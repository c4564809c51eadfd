package validation

import (
	"bytes"

	"github.com/ledongthuc/pdf"
)

// CountPDFPages counts the pages of a PDF held in memory
func CountPDFPages(data []byte) (int, error) {
	if len(data) == 0 {
		return 0, &Error{Message: "empty PDF"}
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return 0, &Error{Message: "failed to read PDF", Cause: err}
	}
	return reader.NumPage(), nil
}

// CheckPageLimit returns a PageLimitError when the PDF has more than limit pages.
// A limit of zero disables the check.
func CheckPageLimit(data []byte, limit int) (int, error) {
	pages, err := CountPDFPages(data)
	if err != nil {
		return 0, err
	}
	if limit > 0 && pages > limit {
		return pages, &PageLimitError{Pages: pages, Limit: limit}
	}
	return pages, nil
}
