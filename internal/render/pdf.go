package render

import (
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/deckbrief/deckbrief/internal/notes"
)

type PDFWriter struct{}

func (w *PDFWriter) Write(records []notes.Record, path string) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	// Zero creation date keeps reruns byte-identical.
	pdf.SetCreationDate(time.Time{})
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(190, 10, docTitle, "", 1, "C", false, 0, "")

	for _, rec := range records {
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(190, 10, slideHeading(rec), "", 1, "L", false, 0, "")
		if rec.Skipped {
			pdf.SetFont("Arial", "I", 10)
			pdf.MultiCell(0, 5, tr(skippedNote), "", "L", false)
			pdf.Ln(2)
		}
		if len(rec.Bullets) > 0 {
			pdf.SetFont("Arial", "B", 12)
			pdf.CellFormat(190, 8, "Summary", "", 1, "L", false, 0, "")
			pdf.SetFont("Arial", "", 10)
			for _, bullet := range rec.Bullets {
				pdf.MultiCell(0, 5, tr("- "+bullet), "", "L", false)
			}
			pdf.Ln(2)
		}
		if rec.Note != "" {
			pdf.SetFont("Arial", "B", 12)
			pdf.CellFormat(190, 8, "Notes", "", 1, "L", false, 0, "")
			pdf.SetFont("Arial", "", 10)
			pdf.MultiCell(0, 5, tr(rec.Note), "", "L", false)
			pdf.Ln(2)
		}
		pdf.Ln(6)
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("write pdf file %s: %w", path, err)
	}
	return nil
}
