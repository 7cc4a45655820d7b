package render

import (
	"fmt"
	"os"
	"strings"

	"github.com/deckbrief/deckbrief/internal/notes"
)

type MarkdownWriter struct{}

func (w *MarkdownWriter) Write(records []notes.Record, path string) error {
	var b strings.Builder
	b.WriteString("# " + docTitle + "\n\n")

	for _, rec := range records {
		fmt.Fprintf(&b, "## %s\n\n", slideHeading(rec))
		if rec.Skipped {
			b.WriteString("_" + skippedNote + "_\n\n")
		}
		if len(rec.Bullets) > 0 {
			b.WriteString("### Summary\n\n")
			for _, bullet := range rec.Bullets {
				b.WriteString("- " + bullet + "\n")
			}
			b.WriteString("\n")
		}
		if rec.Note != "" {
			b.WriteString("### Notes\n\n")
			b.WriteString(rec.Note + "\n\n")
		}
	}

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("write markdown file %s: %w", path, err)
	}
	return nil
}
