package render

import (
	"fmt"
	"os"
	"strings"

	"github.com/deckbrief/deckbrief/internal/notes"
)

type TextWriter struct{}

func (w *TextWriter) Write(records []notes.Record, path string) error {
	var b strings.Builder
	b.WriteString(docTitle + "\n\n")

	for _, rec := range records {
		b.WriteString(slideHeading(rec) + "\n")
		if rec.Skipped {
			b.WriteString("[" + skippedNote + "]\n\n")
		}
		if len(rec.Bullets) > 0 {
			b.WriteString("Summary:\n")
			for _, bullet := range rec.Bullets {
				b.WriteString("- " + bullet + "\n")
			}
			b.WriteString("\n")
		}
		if rec.Note != "" {
			b.WriteString("Notes:\n")
			b.WriteString(rec.Note + "\n\n")
		}
	}

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("write text file %s: %w", path, err)
	}
	return nil
}
