// Package deck extracts per-slide speaker notes from .pptx presentation
// containers.
//
// A pptx file is a zip archive: ppt/presentation.xml lists the slides in
// presentation order through relationship ids, each slide part may point at a
// notesSlide part through its own relationships file, and the notes text
// lives in the body placeholder of that part. Only the stdlib zip and xml
// packages are needed; no third-party pptx reader exists worth depending on.
package deck

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/deckbrief/deckbrief/internal/notes"
)

const (
	presentationPart = "ppt/presentation.xml"
	presentationRels = "ppt/_rels/presentation.xml.rels"

	relNS         = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	notesSlideRel = relNS + "/notesSlide"
)

type relationships struct {
	Rels []relationship `xml:"Relationship"`
}

type relationship struct {
	ID     string `xml:"Id,attr"`
	Type   string `xml:"Type,attr"`
	Target string `xml:"Target,attr"`
}

type presentation struct {
	SlideIDs []slideID `xml:"sldIdLst>sldId"`
}

type slideID struct {
	// RelID is the r:id attribute; the plain id attribute on the same
	// element is the deck-internal slide id and is not useful here.
	RelID string `xml:"http://schemas.openxmlformats.org/officeDocument/2006/relationships id,attr"`
}

type notesSlide struct {
	Shapes []shape `xml:"cSld>spTree>sp"`
}

type shape struct {
	Placeholder placeholder `xml:"nvSpPr>nvPr>ph"`
	Paragraphs  []paragraph `xml:"txBody>p"`
}

type placeholder struct {
	Type string `xml:"type,attr"`
}

type paragraph struct {
	Runs []run `xml:"r"`
}

type run struct {
	Text string `xml:"t"`
}

// Extract opens the deck at deckPath and returns one SlideNote per slide in
// presentation order. Slides without a notes part yield an entry with empty
// Text so indices stay contiguous.
func Extract(deckPath string) ([]notes.SlideNote, error) {
	archive, err := zip.OpenReader(deckPath)
	if err != nil {
		return nil, fmt.Errorf("open deck %s: %w", deckPath, err)
	}
	defer archive.Close()

	parts := make(map[string]*zip.File, len(archive.File))
	for _, f := range archive.File {
		parts[f.Name] = f
	}

	var pres presentation
	if err := decodePart(parts, presentationPart, &pres); err != nil {
		return nil, fmt.Errorf("not a pptx container: %w", err)
	}

	var presRels relationships
	if err := decodePart(parts, presentationRels, &presRels); err != nil {
		return nil, fmt.Errorf("not a pptx container: %w", err)
	}

	targets := make(map[string]string, len(presRels.Rels))
	for _, rel := range presRels.Rels {
		targets[rel.ID] = rel.Target
	}

	slideNotes := make([]notes.SlideNote, 0, len(pres.SlideIDs))
	for i, sld := range pres.SlideIDs {
		target, ok := targets[sld.RelID]
		if !ok {
			return nil, fmt.Errorf("slide %d: unresolved relationship %s", i+1, sld.RelID)
		}
		slidePart := resolveTarget("ppt", target)

		text, err := notesText(parts, slidePart)
		if err != nil {
			return nil, fmt.Errorf("slide %d: %w", i+1, err)
		}

		slideNotes = append(slideNotes, notes.SlideNote{Index: i, Text: text})
	}

	return slideNotes, nil
}

// notesText returns the notes body text for one slide part, or empty when
// the slide has no notes part.
func notesText(parts map[string]*zip.File, slidePart string) (string, error) {
	relsPart := path.Join(path.Dir(slidePart), "_rels", path.Base(slidePart)+".rels")
	if _, ok := parts[relsPart]; !ok {
		return "", nil
	}

	var rels relationships
	if err := decodePart(parts, relsPart, &rels); err != nil {
		return "", err
	}

	var notesPart string
	for _, rel := range rels.Rels {
		if rel.Type == notesSlideRel {
			notesPart = resolveTarget(path.Dir(slidePart), rel.Target)
			break
		}
	}
	if notesPart == "" {
		return "", nil
	}

	var ns notesSlide
	if err := decodePart(parts, notesPart, &ns); err != nil {
		return "", err
	}

	var lines []string
	for _, sp := range ns.Shapes {
		// The notes slide also carries slide-image and slide-number
		// placeholders; only the body placeholder holds speaker notes.
		if sp.Placeholder.Type != "body" {
			continue
		}
		for _, p := range sp.Paragraphs {
			var b strings.Builder
			for _, r := range p.Runs {
				b.WriteString(r.Text)
			}
			lines = append(lines, b.String())
		}
	}

	return cleanText(strings.Join(lines, "\n")), nil
}

func decodePart(parts map[string]*zip.File, name string, v any) error {
	f, ok := parts[name]
	if !ok {
		return fmt.Errorf("missing part %s", name)
	}
	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("open part %s: %w", name, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return fmt.Errorf("read part %s: %w", name, err)
	}
	if err := xml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse part %s: %w", name, err)
	}
	return nil
}

// resolveTarget resolves a relationship target (possibly containing ../)
// against the directory of the part that declared it.
func resolveTarget(baseDir, target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(path.Clean(target), "/")
	}
	return path.Clean(path.Join(baseDir, target))
}

// cleanText strips control characters that have no place in note text while
// preserving tabs, newlines, and all printable unicode.
func cleanText(s string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case '\t', '\n', '\r':
			return r
		}
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, s)
	return strings.TrimSpace(cleaned)
}
