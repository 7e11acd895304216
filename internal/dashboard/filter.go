package dashboard

import (
	"strings"

	"github.com/drios/docscope/internal/document"
)

// TypeAll is the wildcard type selector that matches every document.
const TypeAll = "all"

// Filter applies the search text and type selector over the collection
// and returns the matching subsequence in the original order. The text
// predicate is a case-insensitive substring match against the filename or
// the summary; an empty query matches everything. The two predicates are
// combined with AND.
func Filter(docs []document.StoredDocument, query, docType string) []document.StoredDocument {
	query = strings.ToLower(query)

	out := make([]document.StoredDocument, 0, len(docs))
	for _, doc := range docs {
		if matchesText(doc, query) && matchesType(doc, docType) {
			out = append(out, doc)
		}
	}
	return out
}

func matchesText(doc document.StoredDocument, query string) bool {
	if query == "" {
		return true
	}
	if strings.Contains(strings.ToLower(doc.Filename), query) {
		return true
	}
	// An absent summary never matches, but the document can still match
	// through its filename above.
	return doc.Summary != "" && strings.Contains(strings.ToLower(doc.Summary), query)
}

func matchesType(doc document.StoredDocument, docType string) bool {
	if docType == "" || docType == TypeAll {
		return true
	}
	return doc.DocumentType == docType
}
