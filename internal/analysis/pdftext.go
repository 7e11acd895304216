package analysis

import (
	"fmt"
	"strings"

	"github.com/gen2brain/go-fitz"
)

// ExtractText pulls the full text layer out of a PDF along with its page
// count. A scanned PDF with no text layer yields an empty string and no
// error; callers decide how to surface that.
func ExtractText(pdfData []byte) (string, int, error) {
	doc, err := fitz.NewFromMemory(pdfData)
	if err != nil {
		return "", 0, fmt.Errorf("opening PDF: %w", err)
	}
	defer doc.Close()

	pages := doc.NumPage()
	var text strings.Builder
	for n := 0; n < pages; n++ {
		pageText, err := doc.Text(n)
		if err != nil {
			return "", 0, fmt.Errorf("extracting text from page %d: %w", n+1, err)
		}
		text.WriteString(pageText)
	}

	return text.String(), pages, nil
}
