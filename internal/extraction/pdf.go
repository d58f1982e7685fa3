package extraction

import (
	"fmt"

	"github.com/ledongthuc/pdf"
)

// ReadPDFPages returns the plain text of each page in page order.
// Pages without a content stream yield an empty string.
func ReadPDFPages(path string) ([]string, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	total := reader.NumPage()
	pages := make([]string, 0, total)
	for i := 1; i <= total; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", i, err)
		}
		pages = append(pages, text)
	}
	return pages, nil
}
