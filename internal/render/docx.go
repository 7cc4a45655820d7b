package render

import (
	"fmt"
	"strings"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"

	"github.com/deckbrief/deckbrief/internal/notes"
)

const (
	fontName = "Calibri"
	bodySize = 11
)

type DocxWriter struct{}

func (w *DocxWriter) Write(records []notes.Record, path string) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return fmt.Errorf("create docx document: %w", err)
	}

	addHeading(doc, docTitle, 16)

	for _, rec := range records {
		addHeading(doc, slideHeading(rec), 14)
		if rec.Skipped {
			addBody(doc, skippedNote)
		}
		if len(rec.Bullets) > 0 {
			addHeading(doc, "Summary", 12)
			for _, bullet := range rec.Bullets {
				addBody(doc, "• "+bullet)
			}
		}
		if rec.Note != "" {
			addHeading(doc, "Notes", 12)
			for _, line := range strings.Split(rec.Note, "\n") {
				addBody(doc, line)
			}
		}
	}

	if err := doc.SaveTo(path); err != nil {
		return fmt.Errorf("save docx file %s: %w", path, err)
	}
	return nil
}

func addHeading(doc *docx.RootDoc, text string, size uint64) {
	p := doc.AddParagraph("")
	p.AddText(text).Font(fontName).Size(size).Color("000000").Bold(true)
}

func addBody(doc *docx.RootDoc, text string) {
	p := doc.AddParagraph("")
	p.AddText(text).Font(fontName).Size(bodySize).Color("000000")
}
