package router

import (
	"encoding/json"
	"strings"
)

// Body is the outcome of decoding a request body.
//
// Decoded is true when a textual body held valid JSON; Value then holds the
// decoded value. Otherwise Value is the body as supplied and Err, if set,
// explains why it was not decoded. A failed decode is never an error of
// ParseRequest; callers validating the body decide what to do with it.
type Body struct {
	Value   any   `json:"value" yaml:"value"`
	Raw     any   `json:"-" yaml:"-"`
	Decoded bool  `json:"decoded" yaml:"decoded"`
	Err     error `json:"-" yaml:"-"`
}

// IsEmpty reports whether the request had no body.
func (b Body) IsEmpty() bool {
	return b.Raw == nil
}

// decodeBody attempts a JSON decode of textual bodies. Structured values are
// kept as supplied.
func decodeBody(raw any) Body {
	var text string
	switch t := raw.(type) {
	case nil:
		return Body{}
	case string:
		text = t
	case []byte:
		text = string(t)
	case json.RawMessage:
		text = string(t)
	default:
		return Body{Value: raw, Raw: raw}
	}

	if strings.TrimSpace(text) == "" {
		return Body{Value: raw, Raw: raw}
	}

	var v any
	if err := json.Unmarshal([]byte(text), &v); err != nil {
		return Body{Value: raw, Raw: raw, Err: err}
	}
	return Body{Value: v, Raw: raw, Decoded: true}
}
