package analysis

import "context"

// Analyzer derives structured fields from a document's text. The returned
// payload is the model's raw JSON object, loosely typed; normalization into
// an ExtractionRecord happens downstream.
type Analyzer interface {
	// Analyze runs the extraction prompt for the detected document class
	// over the given text and returns the raw analysis payload.
	Analyze(ctx context.Context, class string, text string) (map[string]any, error)
	// Close releases the analyzer's resources.
	Close() error
}
