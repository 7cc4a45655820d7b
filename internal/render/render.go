// Package render writes the collected per-slide records to an output file
// in one of the supported document formats.
package render

import (
	"fmt"

	"github.com/deckbrief/deckbrief/internal/notes"
)

// Writer renders an ordered sequence of slide records to a file. Rendering
// is deterministic: identical records produce identical output.
type Writer interface {
	Write(records []notes.Record, path string) error
}

// New returns the writer for an output format name.
func New(format string) (Writer, error) {
	switch format {
	case "docx":
		return &DocxWriter{}, nil
	case "md":
		return &MarkdownWriter{}, nil
	case "pdf":
		return &PDFWriter{}, nil
	case "txt":
		return &TextWriter{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

const (
	docTitle    = "Presentation Notes"
	skippedNote = "Skipped: note below minimum length for summarization."
)

func slideHeading(r notes.Record) string {
	return fmt.Sprintf("Slide %d", r.Index+1)
}
