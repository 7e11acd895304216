package document

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// ExtractionRecord is the normalized representation of one document's
// extracted fields. Every field is independently optional: the empty value
// means the analyzer produced nothing for it, and the absence of one field
// implies nothing about any other.
type ExtractionRecord struct {
	DocumentType string   `json:"tipo_documento,omitempty"`
	Date         string   `json:"fecha,omitempty"`
	Issuer       Issuer   `json:"emisor"`
	Recipient    string   `json:"receptor,omitempty"`
	Total        string   `json:"total,omitempty"`
	CurrencyCode string   `json:"moneda,omitempty"`
	TaxID        string   `json:"rfc_emisor,omitempty"`
	Subtotal     string   `json:"subtotal,omitempty"`
	Tax          string   `json:"iva,omitempty"`
	LineItems    []string `json:"conceptos,omitempty"`
	Summary      string   `json:"resumen,omitempty"`
}

// StoredDocument is a persisted, identified extraction result plus file
// metadata. Immutable once fetched; removal happens only through an
// explicit delete command.
type StoredDocument struct {
	ID        int64     `json:"id"`
	Filename  string    `json:"filename"`
	PageCount int       `json:"pages"`
	CreatedAt time.Time `json:"created_at"`
	ExtractionRecord
}

// AnalysisOutcome is the payload of a successful analysis round trip.
// Record is nil when the document's text was readable but the analyzer
// could not structure it; that is still a success, not a failure.
type AnalysisOutcome struct {
	Filename      string            `json:"filename"`
	PageCount     int               `json:"pages"`
	TextPreview   string            `json:"text_preview"`
	Record        *ExtractionRecord `json:"analysis,omitempty"`
	DetectedClass string            `json:"detected_type,omitempty"`
}

// DashboardStats is the server-computed aggregate. The client treats it as
// authoritative and never recomputes TotalExpenses from individual records.
type DashboardStats struct {
	TotalDocuments   int            `json:"total_documents"`
	TypeDistribution map[string]int `json:"document_types"`
	TotalExpenses    float64        `json:"total_expenses"`
	Currency         string         `json:"currency"`
}

// Normalize reconciles a raw, loosely typed analysis payload into an
// ExtractionRecord. String values pass through trimmed, numbers are kept as
// display text, string sequences keep their order, and anything else is
// treated as absent. No currency, date, or unit parsing happens here; the
// upstream text is unvalidated model output and downstream consumers must
// coerce defensively themselves.
func Normalize(raw map[string]any) ExtractionRecord {
	rec := ExtractionRecord{
		DocumentType: stringField(raw, "tipo_documento"),
		Date:         stringField(raw, "fecha"),
		Recipient:    stringField(raw, "receptor"),
		Total:        stringField(raw, "total"),
		CurrencyCode: stringField(raw, "moneda"),
		TaxID:        stringField(raw, "rfc_emisor"),
		Subtotal:     stringField(raw, "subtotal"),
		Tax:          stringField(raw, "iva"),
		LineItems:    stringSliceField(raw, "conceptos"),
		Summary:      stringField(raw, "resumen"),
	}

	rec.Issuer = issuerField(raw["emisor"])
	if rec.Issuer.IsZero() {
		// Scientific and academic payloads name their issuers "autores".
		rec.Issuer = issuerField(raw["autores"])
	}

	return rec
}

// HasData reports whether any field was extracted. A record with every
// field absent is valid; callers render it as "no data extracted".
func (r ExtractionRecord) HasData() bool {
	if r.DocumentType != "" || r.Date != "" || r.Recipient != "" ||
		r.Total != "" || r.CurrencyCode != "" || r.TaxID != "" ||
		r.Subtotal != "" || r.Tax != "" || r.Summary != "" {
		return true
	}
	return !r.Issuer.IsZero() || len(r.LineItems) > 0
}

// CurrencySymbol returns the display glyph for the record's currency,
// falling back to a plain "$" when no code was extracted.
func (r ExtractionRecord) CurrencySymbol() string {
	if r.CurrencyCode == "" {
		return "$"
	}
	return r.CurrencyCode
}

func stringField(raw map[string]any, key string) string {
	switch v := raw[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case json.Number:
		return v.String()
	default:
		return ""
	}
}

func stringSliceField(raw map[string]any, key string) []string {
	seq, ok := raw[key].([]any)
	if !ok {
		return nil
	}
	items := make([]string, 0, len(seq))
	for _, v := range seq {
		if s, ok := v.(string); ok {
			if s = strings.TrimSpace(s); s != "" {
				items = append(items, s)
			}
		}
	}
	if len(items) == 0 {
		return nil
	}
	return items
}
