package querystring

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"sort"
)

// Kind identifies which variant a Value holds.
type Kind uint8

// Value kinds.
const (
	KindInvalid Kind = iota
	KindString
	KindArray
	KindObject
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "invalid"
	}
}

// Value is a decoded query value: a string, an array of strings, or an
// object of nested values. The zero Value is invalid.
type Value struct {
	kind   Kind
	str    string
	items  []string
	fields map[string]Value
}

// String creates a string Value.
func String(s string) Value {
	return Value{kind: KindString, str: s}
}

// Array creates an array Value. The items are copied.
func Array(items ...string) Value {
	cp := make([]string, len(items))
	copy(cp, items)
	return Value{kind: KindArray, items: cp}
}

// Object creates an object Value. The map is copied.
func Object(fields map[string]Value) Value {
	cp := make(map[string]Value, len(fields))
	maps.Copy(cp, fields)
	return Value{kind: KindObject, fields: cp}
}

// Kind returns the variant held by v.
func (v Value) Kind() Kind {
	return v.kind
}

// IsValid reports whether v holds a value.
func (v Value) IsValid() bool {
	return v.kind != KindInvalid
}

// Str returns the string held by v.
func (v Value) Str() (string, bool) {
	return v.str, v.kind == KindString
}

// Strings returns a copy of the items held by an array Value.
func (v Value) Strings() ([]string, bool) {
	if v.kind != KindArray {
		return nil, false
	}
	return slices.Clone(v.items), true
}

// Fields returns a copy of the fields held by an object Value.
func (v Value) Fields() (map[string]Value, bool) {
	if v.kind != KindObject {
		return nil, false
	}
	return maps.Clone(v.fields), true
}

// Field returns a single field of an object Value.
func (v Value) Field(name string) (Value, bool) {
	if v.kind != KindObject {
		return Value{}, false
	}
	f, ok := v.fields[name]
	return f, ok
}

// Interface converts v to plain Go values: string, []string or
// map[string]any. An invalid Value converts to nil.
func (v Value) Interface() any {
	switch v.kind {
	case KindString:
		return v.str
	case KindArray:
		return slices.Clone(v.items)
	case KindObject:
		out := make(map[string]any, len(v.fields))
		for k, f := range v.fields {
			out[k] = f.Interface()
		}
		return out
	default:
		return nil
	}
}

// GoString renders v for debugging and test failure output.
func (v Value) GoString() string {
	switch v.kind {
	case KindString:
		return fmt.Sprintf("querystring.String(%q)", v.str)
	case KindArray:
		return fmt.Sprintf("querystring.Array(%q)", v.items)
	case KindObject:
		keys := make([]string, 0, len(v.fields))
		for k := range v.fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		s := "querystring.Object{"
		for i, k := range keys {
			if i > 0 {
				s += ", "
			}
			s += fmt.Sprintf("%q: %#v", k, v.fields[k])
		}
		return s + "}"
	default:
		return "querystring.Value{}"
	}
}

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Interface())
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := FromAny(raw)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// MarshalYAML implements the yaml Marshaler interface.
func (v Value) MarshalYAML() (any, error) {
	return v.Interface(), nil
}

// FromAny converts plain Go values into a Value. Strings, booleans and
// numbers become strings; slices of those become arrays; maps with string
// keys become objects.
func FromAny(raw any) (Value, error) {
	switch t := raw.(type) {
	case Value:
		return t, nil
	case string:
		return String(t), nil
	case []string:
		return Array(t...), nil
	case []any:
		items := make([]string, 0, len(t))
		for i, item := range t {
			s, ok := scalarString(item)
			if !ok {
				return Value{}, fmt.Errorf("querystring: array item %d has unsupported type %T", i, item)
			}
			items = append(items, s)
		}
		return Array(items...), nil
	case map[string]any:
		fields := make(map[string]Value, len(t))
		for k, item := range t {
			f, err := FromAny(item)
			if err != nil {
				return Value{}, fmt.Errorf("querystring: field %q: %w", k, err)
			}
			fields[k] = f
		}
		return Object(fields), nil
	default:
		if s, ok := scalarString(raw); ok {
			return String(s), nil
		}
		return Value{}, fmt.Errorf("querystring: unsupported value type %T", raw)
	}
}

func scalarString(raw any) (string, bool) {
	switch t := raw.(type) {
	case string:
		return t, true
	case bool, float64, float32, int, int64, int32, uint, uint64, uint32, json.Number:
		return fmt.Sprint(t), true
	default:
		return "", false
	}
}

// Values maps query parameter names to decoded values.
type Values map[string]Value

// Get returns the value for key, or an invalid Value.
func (vs Values) Get(key string) Value {
	return vs[key]
}

// Has reports whether key is present.
func (vs Values) Has(key string) bool {
	_, ok := vs[key]
	return ok
}

// Clone returns a copy of vs. Values are immutable, so the copy is deep.
func (vs Values) Clone() Values {
	if vs == nil {
		return Values{}
	}
	return maps.Clone(vs)
}

// Interface converts vs to a map of plain Go values.
func (vs Values) Interface() map[string]any {
	out := make(map[string]any, len(vs))
	for k, v := range vs {
		out[k] = v.Interface()
	}
	return out
}

// ValuesFromMap converts a map of plain Go values with FromAny.
func ValuesFromMap(raw map[string]any) (Values, error) {
	out := make(Values, len(raw))
	for k, item := range raw {
		v, err := FromAny(item)
		if err != nil {
			return nil, fmt.Errorf("querystring: parameter %q: %w", k, err)
		}
		out[k] = v
	}
	return out, nil
}
