package yamldoc

import (
	"reflect"
	"slices"
)

// Map is a YAML mapping with string keys that remembers insertion order.
// The zero value is not usable; create maps with NewMap.
type Map struct {
	keys   []string
	values map[string]any
}

// Quoted is a string scalar that is always emitted double-quoted.
type Quoted string

// NewMap creates an empty Map.
func NewMap() *Map {
	return &Map{values: make(map[string]any)}
}

// MapOf builds a Map from alternating key/value arguments. It panics on an
// odd number of arguments or a non-string key; it is meant for literals.
func MapOf(kv ...any) *Map {
	if len(kv)%2 != 0 {
		panic("yamldoc.MapOf: odd number of arguments")
	}

	m := NewMap()

	for i := 0; i < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			panic("yamldoc.MapOf: non-string key")
		}

		m.Set(key, kv[i+1])
	}

	return m
}

// Len returns the number of keys. A nil Map has length zero.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}

	return len(m.keys)
}

// Keys returns the keys in insertion order.
func (m *Map) Keys() []string {
	if m == nil {
		return nil
	}

	return slices.Clone(m.keys)
}

// Get returns the value stored under key.
func (m *Map) Get(key string) (any, bool) {
	if m == nil {
		return nil, false
	}

	v, ok := m.values[key]

	return v, ok
}

// Has reports whether key is present.
func (m *Map) Has(key string) bool {
	_, ok := m.Get(key)
	return ok
}

// Set stores value under key. An existing key keeps its position; a new key
// is appended.
func (m *Map) Set(key string, value any) {
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}

	m.values[key] = value
}

// Delete removes key if present.
func (m *Map) Delete(key string) {
	if _, ok := m.values[key]; !ok {
		return
	}

	delete(m.values, key)
	m.keys = slices.DeleteFunc(m.keys, func(k string) bool { return k == key })
}

// Clone returns a deep copy. Nested maps and sequences are copied; scalars
// are shared.
func (m *Map) Clone() *Map {
	if m == nil {
		return nil
	}

	out := &Map{
		keys:   slices.Clone(m.keys),
		values: make(map[string]any, len(m.values)),
	}

	for k, v := range m.values {
		out.values[k] = CloneValue(v)
	}

	return out
}

// Equal reports whether both maps hold the same keys with equal values.
// Key order is not significant.
func (m *Map) Equal(other *Map) bool {
	if m.Len() != other.Len() {
		return false
	}

	for _, k := range m.Keys() {
		ov, ok := other.Get(k)
		if !ok {
			return false
		}

		if !EqualValues(m.values[k], ov) {
			return false
		}
	}

	return true
}

// Each calls fn for every entry in order.
func (m *Map) Each(fn func(key string, value any)) {
	if m == nil {
		return
	}

	for _, k := range m.keys {
		fn(k, m.values[k])
	}
}

// CloneValue deep-copies a decoded YAML value.
func CloneValue(v any) any {
	switch val := v.(type) {
	case *Map:
		return val.Clone()
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = CloneValue(item)
		}

		return out
	default:
		return v
	}
}

// EqualValues compares two decoded YAML values structurally. Quoted and
// plain strings with the same text are equal.
func EqualValues(a, b any) bool {
	if q, ok := a.(Quoted); ok {
		a = string(q)
	}

	if q, ok := b.(Quoted); ok {
		b = string(q)
	}

	switch av := a.(type) {
	case *Map:
		bv, ok := b.(*Map)
		return ok && av.Equal(bv)
	case []any:
		bv, ok := b.([]any)
		if !ok || len(av) != len(bv) {
			return false
		}

		for i := range av {
			if !EqualValues(av[i], bv[i]) {
				return false
			}
		}

		return true
	default:
		return reflect.DeepEqual(a, b)
	}
}
