package archive

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/drios/docscope/internal/document"
)

const defaultCurrency = "MXN"

// Stats computes the dashboard aggregate over the stored documents. The
// client takes this figure as authoritative and never recomputes it.
//
// Totals are unvalidated display text, so only values that survive a
// defensive decimal parse contribute to TotalExpenses. When documents mix
// currencies the sum is over raw magnitudes and the reported currency is
// the most frequent code; there is no conversion.
func (s *Service) Stats() (*document.DashboardStats, error) {
	docs, err := s.db.ListDocuments()
	if err != nil {
		return nil, fmt.Errorf("listing documents for stats: %w", err)
	}

	stats := &document.DashboardStats{
		TotalDocuments:   len(docs),
		TypeDistribution: make(map[string]int),
		Currency:         defaultCurrency,
	}

	currencyCounts := make(map[string]int)
	for _, doc := range docs {
		if doc.DocumentType != "" {
			stats.TypeDistribution[doc.DocumentType]++
		}
		if amount, ok := parseAmount(doc.Total); ok {
			stats.TotalExpenses += amount
		}
		if doc.CurrencyCode != "" {
			currencyCounts[doc.CurrencyCode]++
		}
	}

	best, bestCode := 0, ""
	for code, n := range currencyCounts {
		if n > best || (n == best && (bestCode == "" || code < bestCode)) {
			best, bestCode = n, code
		}
	}
	if bestCode != "" {
		stats.Currency = bestCode
	}

	return stats, nil
}

// parseAmount coerces a display-text total into a number. It tolerates
// currency glyphs, codes, spaces, and thousands separators; anything that
// still does not parse is skipped rather than failing the aggregate.
func parseAmount(text string) (float64, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, false
	}

	var cleaned strings.Builder
	for _, r := range text {
		switch {
		case r >= '0' && r <= '9', r == '.', r == '-':
			cleaned.WriteRune(r)
		case r == ',':
			// thousands separator
		}
	}

	amount, err := strconv.ParseFloat(cleaned.String(), 64)
	if err != nil {
		return 0, false
	}
	return amount, true
}
