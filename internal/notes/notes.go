// Package notes holds the per-slide data passed between the extractor,
// the summarization backends, and the output writers.
package notes

// SlideNote is the speaker-notes text of a single slide, in source order.
// Index is 0-based and contiguous; slides without a notes part still get an
// entry so indexing lines up with the deck.
type SlideNote struct {
	Index int
	Text  string
}

// Record is one slide's entry in the output document. Note is empty in
// summary-only runs, Bullets is empty in extract-only runs. Skipped marks a
// note that was below the minimum length for summarization.
type Record struct {
	Index   int
	Note    string
	Bullets []string
	Skipped bool
}
