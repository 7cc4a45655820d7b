// Package pipeline sequences extraction, summarization, and writing for a
// single run.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/deckbrief/deckbrief/internal/anthropic"
	"github.com/deckbrief/deckbrief/internal/config"
	"github.com/deckbrief/deckbrief/internal/deck"
	"github.com/deckbrief/deckbrief/internal/gemini"
	"github.com/deckbrief/deckbrief/internal/notes"
	"github.com/deckbrief/deckbrief/internal/openai"
	"github.com/deckbrief/deckbrief/internal/providers"
	"github.com/deckbrief/deckbrief/internal/render"
	"github.com/deckbrief/deckbrief/internal/throttle"
)

// Options selects the backend, output format, and run mode. Exactly one
// backend and one format apply per run; ExtractOnly and SummaryOnly are
// mutually exclusive (enforced at the flag layer).
type Options struct {
	Backend     string
	Format      string
	ExtractOnly bool
	SummaryOnly bool
	// Level overrides the configured default bullet count when positive.
	Level int
}

type Pipeline struct {
	cfg        *config.Config
	opts       Options
	summarizer providers.Summarizer
	limiter    *throttle.Limiter
	writer     render.Writer
	extract    func(string) ([]notes.SlideNote, error)
}

// New wires up a pipeline for one run. In extract-only mode no backend is
// constructed, guaranteeing zero remote calls.
func New(cfg *config.Config, opts Options) (*Pipeline, error) {
	writer, err := render.New(opts.Format)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		cfg:     cfg,
		opts:    opts,
		writer:  writer,
		extract: deck.Extract,
	}

	if !opts.ExtractOnly {
		summarizer, err := newSummarizer(opts.Backend, cfg)
		if err != nil {
			return nil, err
		}
		p.summarizer = summarizer
		p.limiter = throttle.New(cfg.Throttle.RateLimit, cfg.Throttle.MaxRetries)
	}

	return p, nil
}

func newSummarizer(backend string, cfg *config.Config) (providers.Summarizer, error) {
	switch backend {
	case "openai":
		return openai.New(cfg.OpenAI), nil
	case "anthropic":
		return anthropic.New(cfg.Anthropic), nil
	case "gemini":
		return gemini.New(cfg.Gemini), nil
	default:
		return nil, fmt.Errorf("unsupported backend: %s", backend)
	}
}

// Run executes the full pipeline. Either the whole requested pipeline
// completes and one output file is written, or an error is returned and no
// output file exists.
func (p *Pipeline) Run(ctx context.Context, deckPath, outPath string) error {
	slog.Info("Extracting notes", "deck", deckPath)
	slideNotes, err := p.extract(deckPath)
	if err != nil {
		return fmt.Errorf("extract notes: %w", err)
	}
	slog.Info("Notes extracted", "slides", len(slideNotes))

	level := p.opts.Level
	if level <= 0 {
		level = p.cfg.Summary.DefaultLevel
	}

	records := make([]notes.Record, 0, len(slideNotes))
	for i, note := range slideNotes {
		rec := notes.Record{Index: note.Index}
		if !p.opts.SummaryOnly {
			rec.Note = note.Text
		}

		if !p.opts.ExtractOnly {
			if tooShort(note.Text, p.cfg.Summary.MinCharacters) {
				rec.Skipped = true
				slog.Debug("Skipping slide, note below minimum length",
					"slide", note.Index+1,
					"chars", utf8.RuneCountInString(note.Text))
			} else {
				if err := ctx.Err(); err != nil {
					return err
				}
				slog.Info("Summarizing slide",
					"slide", note.Index+1,
					"progress", fmt.Sprintf("%d/%d", i+1, len(slideNotes)))

				bullets, err := p.limiter.Invoke(ctx, func(ctx context.Context) ([]string, error) {
					return p.summarizer.Summarize(ctx, note.Text, level)
				})
				if err != nil {
					return fmt.Errorf("summarize slide %d: %w", note.Index+1, err)
				}
				rec.Bullets = bullets
			}
		}

		records = append(records, rec)
	}

	if err := p.writer.Write(records, outPath); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	slog.Info("Output written", "path", outPath, "slides", len(records))
	return nil
}

// tooShort reports whether a note falls under the summarization threshold.
// Whitespace-only notes never qualify, whatever the threshold.
func tooShort(text string, minChars int) bool {
	if strings.TrimSpace(text) == "" {
		return true
	}
	return utf8.RuneCountInString(text) < minChars
}
