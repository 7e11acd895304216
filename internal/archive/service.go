package archive

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/drios/docscope/internal/analysis"
	"github.com/drios/docscope/internal/document"
	"github.com/drios/docscope/internal/metrics"
)

const textPreviewChars = 500

// AnalysisError is a declared analysis failure: the document was received
// but its content could not be analyzed. It rides a successful transport
// response, unlike an internal fault.
type AnalysisError struct {
	Message string
}

func (e *AnalysisError) Error() string {
	return e.Message
}

// TextExtractor pulls text and a page count out of a PDF.
type TextExtractor func(pdfData []byte) (string, int, error)

// TimeSource provides the current time.
type TimeSource interface {
	Now() time.Time
}

type defaultTimeSource struct{}

func (t *defaultTimeSource) Now() time.Time {
	return time.Now()
}

// Service orchestrates document analysis: extract text, detect the class,
// run the analyzer, normalize, persist.
type Service struct {
	db         DB
	analyzer   analysis.Analyzer
	extract    TextExtractor
	timeSource TimeSource
	metrics    *metrics.Metrics
	service    string
}

// NewService creates a Service with the real PDF extractor and clock.
func NewService(db DB, analyzer analysis.Analyzer, m *metrics.Metrics) *Service {
	return NewServiceWithDeps(db, analyzer, m, analysis.ExtractText, &defaultTimeSource{})
}

// NewServiceWithDeps creates a Service with custom dependencies for testing.
func NewServiceWithDeps(db DB, analyzer analysis.Analyzer, m *metrics.Metrics, extract TextExtractor, timeSrc TimeSource) *Service {
	return &Service{
		db:         db,
		analyzer:   analyzer,
		extract:    extract,
		timeSource: timeSrc,
		metrics:    m,
		service:    "docscope",
	}
}

// ProcessDocument analyzes and persists one uploaded PDF. Failures to read
// or analyze the content come back as *AnalysisError; the caller reports
// them on a successful transport response with the message verbatim.
func (s *Service) ProcessDocument(ctx context.Context, filename string, data []byte) (*document.AnalysisOutcome, error) {
	text, pages, err := s.extract(data)
	if err != nil {
		slog.Error("Failed to read PDF", "filename", filename, "size", len(data), "error", err)
		s.metrics.RecordAnalysisFailure()
		return nil, &AnalysisError{Message: "no se pudo extraer texto del PDF"}
	}
	if strings.TrimSpace(text) == "" {
		s.metrics.RecordAnalysisFailure()
		return nil, &AnalysisError{Message: "no se pudo extraer texto del PDF"}
	}

	class := analysis.DetectClass(text)

	outcome := &document.AnalysisOutcome{
		Filename:      filename,
		PageCount:     pages,
		TextPreview:   preview(text),
		DetectedClass: class,
	}

	raw, err := s.analyzer.Analyze(ctx, class, text)
	if err != nil {
		slog.Error("Failed to analyze document",
			"filename", filename,
			"class", class,
			"pages", pages,
			"error", err,
		)
		s.metrics.RecordAnalysisFailure()
		return nil, &AnalysisError{Message: err.Error()}
	}

	// An empty payload still counts as a successful analysis: the record
	// simply has no data and renders as such.
	rec := document.Normalize(raw)
	outcome.Record = &rec

	doc := &document.StoredDocument{
		Filename:         filename,
		PageCount:        pages,
		CreatedAt:        s.timeSource.Now(),
		ExtractionRecord: rec,
	}
	if err := s.db.SaveDocument(doc); err != nil {
		return nil, fmt.Errorf("saving document: %w", err)
	}

	s.metrics.RecordAnalysis(s.service, class)
	return outcome, nil
}

// ListDocuments returns all stored documents in insertion order.
func (s *Service) ListDocuments() ([]document.StoredDocument, error) {
	docs, err := s.db.ListDocuments()
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	return docs, nil
}

// DeleteDocument removes a stored document. Repeated deletes of the same
// id succeed; the store treats absence as already done.
func (s *Service) DeleteDocument(id int64) error {
	if err := s.db.DeleteDocument(id); err != nil {
		return fmt.Errorf("deleting document: %w", err)
	}
	return nil
}

func preview(text string) string {
	runes := []rune(text)
	if len(runes) <= textPreviewChars {
		return text
	}
	return string(runes[:textPreviewChars])
}
