package cmd

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/deckbrief/deckbrief/internal/config"
	"github.com/deckbrief/deckbrief/internal/pipeline"
)

func NewRootCmd() *cobra.Command {
	var (
		backend     string
		format      string
		configPath  string
		extractOnly bool
		summaryOnly bool
		verbose     bool
		level       int
	)

	cmd := &cobra.Command{
		Use:   "deckbrief <presentation.pptx> <output>",
		Short: "Extract and summarize speaker notes from slide decks",
		Long: `Deckbrief extracts per-slide speaker notes from a PowerPoint deck and
summarizes them into bullet points with an AI backend of your choice.

The result is written as a single document: docx, markdown, pdf, or plain
text. Notes shorter than the configured minimum are kept in the output but
marked as skipped rather than summarized.`,
		Example: `  # Summarize with the default backend into a Word document
  deckbrief talk.pptx talk-notes.docx

  # Markdown summary via Anthropic, 3 bullets per slide
  deckbrief --ai anthropic --format md --summarization-level 3 talk.pptx notes.md

  # Just pull the raw notes, no remote calls
  deckbrief --extract-only --format txt talk.pptx notes.txt`,
		Args: cobra.ExactArgs(2),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()

			logLevel := slog.LevelWarn
			if verbose {
				logLevel = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: logLevel,
			})))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if !extractOnly {
				if err := cfg.ValidateBackend(backend); err != nil {
					return err
				}
			}

			p, err := pipeline.New(cfg, pipeline.Options{
				Backend:     backend,
				Format:      format,
				ExtractOnly: extractOnly,
				SummaryOnly: summaryOnly,
				Level:       level,
			})
			if err != nil {
				return err
			}

			return p.Run(cmd.Context(), args[0], args[1])
		},
	}

	cmd.Flags().StringVar(&backend, "ai", "openai", "AI backend to use (openai, anthropic, gemini)")
	cmd.Flags().StringVar(&format, "format", "docx", "Output format (docx, md, pdf, txt)")
	cmd.Flags().BoolVar(&extractOnly, "extract-only", false, "Only extract notes, without summarizing")
	cmd.Flags().BoolVar(&summaryOnly, "summary-only", false, "Write summaries without the original notes")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	cmd.Flags().IntVar(&level, "summarization-level", 0, "Target bullet points per slide (overrides config default)")
	cmd.Flags().StringVar(&configPath, "config", "config.yaml", "Path to the configuration file")
	cmd.MarkFlagsMutuallyExclusive("extract-only", "summary-only")

	return cmd
}
