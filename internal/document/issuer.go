package document

import (
	"encoding/json"
	"strings"
)

// Issuer is the two-shape union for a document's issuer: a single name or
// an ordered list of names (multi-author works). The two shapes are
// explicit alternatives and are never merged; consumers branch with
// Single/Multiple instead of inspecting the underlying value.
//
// The zero Issuer means "not extracted".
type Issuer struct {
	names    []string
	multiple bool
}

// SingleIssuer wraps one issuer name. An empty name yields the zero Issuer.
func SingleIssuer(name string) Issuer {
	name = strings.TrimSpace(name)
	if name == "" {
		return Issuer{}
	}
	return Issuer{names: []string{name}}
}

// MultipleIssuers wraps an ordered list of issuer names. Empty entries are
// dropped; an empty list yields the zero Issuer.
func MultipleIssuers(names []string) Issuer {
	kept := make([]string, 0, len(names))
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			kept = append(kept, n)
		}
	}
	if len(kept) == 0 {
		return Issuer{}
	}
	return Issuer{names: kept, multiple: true}
}

// IsZero reports whether no issuer was extracted.
func (i Issuer) IsZero() bool {
	return len(i.names) == 0
}

// Single returns the name when the issuer is the single-name shape.
func (i Issuer) Single() (string, bool) {
	if i.multiple || len(i.names) != 1 {
		return "", false
	}
	return i.names[0], true
}

// Multiple returns the names, in extraction order, when the issuer is the
// list shape.
func (i Issuer) Multiple() ([]string, bool) {
	if !i.multiple {
		return nil, false
	}
	out := make([]string, len(i.names))
	copy(out, i.names)
	return out, true
}

// Names returns the issuer names regardless of shape, for display paths
// that render both shapes as a list.
func (i Issuer) Names() []string {
	out := make([]string, len(i.names))
	copy(out, i.names)
	return out
}

// MarshalJSON encodes the wire shape the collaborator uses: a bare string,
// an array of strings, or null.
func (i Issuer) MarshalJSON() ([]byte, error) {
	switch {
	case i.IsZero():
		return []byte("null"), nil
	case i.multiple:
		return json.Marshal(i.names)
	default:
		return json.Marshal(i.names[0])
	}
}

// UnmarshalJSON accepts the collaborator's variant shapes. Any value that
// is neither a string nor a string array is treated as absent rather than
// failing the whole record.
func (i *Issuer) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*i = issuerField(v)
	return nil
}

// issuerField normalizes a raw payload value into an Issuer. A sequence
// materializes the list shape with order preserved, a scalar string the
// single shape, and anything else is absent.
func issuerField(v any) Issuer {
	switch v := v.(type) {
	case string:
		return SingleIssuer(v)
	case []any:
		names := make([]string, 0, len(v))
		for _, e := range v {
			if s, ok := e.(string); ok {
				names = append(names, s)
			}
		}
		return MultipleIssuers(names)
	case []string:
		return MultipleIssuers(v)
	default:
		return Issuer{}
	}
}
