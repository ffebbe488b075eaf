// Package querystring decodes URL query strings into nested values.
//
// Decoding follows the common bracket conventions used by web frameworks:
//
//	a=1&a=2        -> a: ["1", "2"]
//	a[]=1&a[]=2    -> a: ["1", "2"]
//	a[b]=c         -> a: {b: "c"}
//	a[b][c]=d      -> a: {b: {c: "d"}}
//
// With Options.Comma, a value containing commas is split into an array
// before percent-decoding, so "a=1,2" becomes a: ["1", "2"] while an encoded
// "%2C" is kept as a literal comma.
//
// Decoding never fails. Invalid percent escapes are kept as written, empty
// keys are skipped, and keys nested deeper than Options.Depth keep the
// remainder as a literal key segment.
package querystring

import (
	"net/url"
	"strings"
)

// Decoding limits.
const (
	DefaultDepth          = 5
	DefaultParameterLimit = 1000
)

// Options controls decoding.
type Options struct {
	// Comma splits values on "," into arrays.
	Comma bool

	// Depth is the maximum number of bracket segments per key.
	// Zero means DefaultDepth; negative disables bracket parsing.
	Depth int

	// ParameterLimit is the maximum number of key=value pairs decoded.
	// Zero means DefaultParameterLimit.
	ParameterLimit int
}

// Parse decodes raw with default options. A leading "?" is ignored.
func Parse(raw string) Values {
	return ParseWithOptions(raw, Options{})
}

// ParseWithOptions decodes raw. A leading "?" is ignored.
func ParseWithOptions(raw string, opts Options) Values {
	depth := opts.Depth
	if depth == 0 {
		depth = DefaultDepth
	}
	limit := opts.ParameterLimit
	if limit <= 0 {
		limit = DefaultParameterLimit
	}

	out := Values{}
	raw = strings.TrimPrefix(raw, "?")
	if raw == "" {
		return out
	}

	parts := strings.SplitN(raw, "&", limit+1)
	if len(parts) > limit {
		parts = parts[:limit]
	}

	for _, part := range parts {
		if part == "" {
			continue
		}
		rawKey, rawVal, _ := strings.Cut(part, "=")
		key := decodeComponent(rawKey)
		if key == "" {
			continue
		}

		var leaf Value
		if opts.Comma && strings.Contains(rawVal, ",") {
			pieces := strings.Split(rawVal, ",")
			for i, p := range pieces {
				pieces[i] = decodeComponent(p)
			}
			leaf = Array(pieces...)
		} else {
			leaf = String(decodeComponent(rawVal))
		}

		segments := splitKey(key, depth)
		out[segments[0]] = merge(out[segments[0]], nest(segments[1:], leaf))
	}

	return out
}

// decodeComponent turns "+" into a space and percent-decodes s. Invalid
// escapes leave the input as written.
func decodeComponent(s string) string {
	s = strings.ReplaceAll(s, "+", " ")
	if !strings.Contains(s, "%") {
		return s
	}
	if decoded, err := url.PathUnescape(s); err == nil {
		return decoded
	}
	return s
}

// splitKey splits "a[b][c]" into ["a", "b", "c"]. A key that starts with a
// bracket or has an unclosed bracket is a literal key.
func splitKey(key string, depth int) []string {
	open := strings.IndexByte(key, '[')
	if depth < 0 || open <= 0 || !strings.Contains(key[open:], "]") {
		return []string{key}
	}

	segments := []string{key[:open]}
	rest := key[open:]
	for i := 0; i < depth && strings.HasPrefix(rest, "["); i++ {
		end := strings.IndexByte(rest, ']')
		if end < 0 {
			break
		}
		segments = append(segments, rest[1:end])
		rest = rest[end+1:]
	}
	if rest != "" {
		segments = append(segments, rest)
	}
	return segments
}

// nest builds the value for the bracket segments below the root key.
// Empty and numeric segments mark arrays; indices only mark the array and
// values keep their order of appearance.
func nest(segments []string, leaf Value) Value {
	if len(segments) == 0 {
		return leaf
	}
	seg := segments[0]
	if len(segments) == 1 && isArraySegment(seg) {
		if s, ok := leaf.Str(); ok {
			return Array(s)
		}
		return leaf
	}
	return Value{kind: KindObject, fields: map[string]Value{seg: nest(segments[1:], leaf)}}
}

func isArraySegment(seg string) bool {
	if seg == "" {
		return true
	}
	for i := 0; i < len(seg); i++ {
		if seg[i] < '0' || seg[i] > '9' {
			return false
		}
	}
	return true
}

// merge combines a repeated key. Strings and arrays concatenate, objects
// merge field by field, and a kind conflict with an object keeps the later
// value.
func merge(existing, incoming Value) Value {
	if !existing.IsValid() {
		return incoming
	}

	if existing.kind == KindObject && incoming.kind == KindObject {
		fields := make(map[string]Value, len(existing.fields)+len(incoming.fields))
		for k, v := range existing.fields {
			fields[k] = v
		}
		for k, v := range incoming.fields {
			fields[k] = merge(fields[k], v)
		}
		return Value{kind: KindObject, fields: fields}
	}

	if existing.kind == KindObject || incoming.kind == KindObject {
		return incoming
	}

	items := make([]string, 0, len(existing.items)+len(incoming.items)+2)
	items = appendScalar(items, existing)
	items = appendScalar(items, incoming)
	return Value{kind: KindArray, items: items}
}

func appendScalar(items []string, v Value) []string {
	if v.kind == KindString {
		return append(items, v.str)
	}
	return append(items, v.items...)
}
