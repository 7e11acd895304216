package dashboard

import (
	"fmt"
	"sort"

	"github.com/drios/docscope/internal/document"
)

// chartPalette is the fixed set of slice colors, reused cyclically when
// there are more document types than colors.
var chartPalette = []string{
	"#a855f7", "#ec4899", "#8b5cf6", "#06b6d4", "#10b981", "#f59e0b",
}

// Slice is one chart segment: a document type, its count, and the display
// color assigned by position.
type Slice struct {
	Label string
	Count int
	Color string
}

// ChartSlices derives the type-distribution chart data from the server's
// aggregate. The distribution carries no inherent order, so slices are
// sorted by label to keep colors stable between refreshes.
func ChartSlices(stats document.DashboardStats) []Slice {
	labels := make([]string, 0, len(stats.TypeDistribution))
	for label := range stats.TypeDistribution {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	slices := make([]Slice, len(labels))
	for i, label := range labels {
		slices[i] = Slice{
			Label: label,
			Count: stats.TypeDistribution[label],
			Color: chartPalette[i%len(chartPalette)],
		}
	}
	return slices
}

// DistinctTypes counts the document types present in the aggregate.
func DistinctTypes(stats document.DashboardStats) int {
	return len(stats.TypeDistribution)
}

// FormatExpenses renders the authoritative expense total. The figure comes
// from the server's precomputed aggregate; it is never re-derived from the
// individual documents' display-text totals here.
func FormatExpenses(stats document.DashboardStats) string {
	currency := stats.Currency
	if currency == "" {
		currency = "$"
	}
	return fmt.Sprintf("%s %.2f", currency, stats.TotalExpenses)
}
