package router

import (
	"encoding/json"
	"slices"
	"sort"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Header is a case-insensitive header map. Names are stored lowercase.
type Header struct {
	values map[string][]string
}

// NewHeader folds the names of raw to lowercase. When two names fold to the
// same key, the one sorting last in raw wins, so results are deterministic.
func NewHeader(raw map[string][]string) Header {
	names := make([]string, 0, len(raw))
	for name := range raw {
		names = append(names, name)
	}
	sort.Strings(names)

	h := Header{values: make(map[string][]string, len(raw))}
	for _, name := range names {
		h.values[foldKey(name)] = slices.Clone(raw[name])
	}
	return h
}

// foldKey lower-cases a header name. Non-ASCII names use Unicode case folding.
func foldKey(name string) string {
	for i := 0; i < len(name); i++ {
		if name[i] >= utf8.RuneSelf {
			return cases.Lower(language.Und).String(name)
		}
	}
	return strings.ToLower(name)
}

// Get returns the first value for name, or "".
func (h Header) Get(name string) string {
	vs := h.values[foldKey(name)]
	if len(vs) == 0 {
		return ""
	}
	return vs[0]
}

// Values returns a copy of all values for name.
func (h Header) Values(name string) []string {
	return slices.Clone(h.values[foldKey(name)])
}

// Has reports whether name is present.
func (h Header) Has(name string) bool {
	_, ok := h.values[foldKey(name)]
	return ok
}

// Keys returns the lowercase names in sorted order.
func (h Header) Keys() []string {
	keys := make([]string, 0, len(h.values))
	for k := range h.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of distinct names.
func (h Header) Len() int {
	return len(h.values)
}

// Map returns a copy of the headers keyed by lowercase name.
func (h Header) Map() map[string][]string {
	out := make(map[string][]string, len(h.values))
	for k, vs := range h.values {
		out[k] = slices.Clone(vs)
	}
	return out
}

// MarshalJSON implements json.Marshaler.
func (h Header) MarshalJSON() ([]byte, error) {
	return json.Marshal(h.Map())
}

// MarshalYAML implements the yaml Marshaler interface.
func (h Header) MarshalYAML() (any, error) {
	return h.Map(), nil
}
