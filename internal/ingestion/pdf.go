// Package ingestion turns uploaded documents and posting pages into clean
// text ready for structured extraction.
package ingestion

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gen2brain/go-fitz"
)

// ErrUnreadableDocument is returned when a document cannot yield any text:
// corrupt or encrypted files, scans without a text layer, or empty files.
var ErrUnreadableDocument = errors.New("document has no extractable text")

// ExtractPDFText pulls the text layer out of a PDF, page by page, and cleans
// it. The caller receives one string covering the whole document.
func ExtractPDFText(data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("%w: empty file", ErrUnreadableDocument)
	}

	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnreadableDocument, err)
	}
	defer doc.Close()

	var pages []string
	for i := 0; i < doc.NumPage(); i++ {
		text, err := doc.Text(i)
		if err != nil {
			return "", fmt.Errorf("%w: page %d: %v", ErrUnreadableDocument, i+1, err)
		}
		pages = append(pages, text)
	}

	cleaned := CleanText(strings.Join(pages, "\n"))
	if cleaned == "" {
		return "", fmt.Errorf("%w: no text layer", ErrUnreadableDocument)
	}

	return cleaned, nil
}
