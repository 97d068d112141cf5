package sanitizer

import "iter"

// Pair is a single key/value entry used to build a Map literal.
type Pair struct {
	Key   string
	Value any
}

// P is shorthand for constructing a Pair.
func P(key string, value any) Pair {
	return Pair{Key: key, Value: value}
}

// Map is a string-keyed mapping that remembers insertion order.
// Keys are unique. Setting an existing key replaces its value and keeps its position.
// The zero value is ready to use.
type Map struct {
	keys   []string
	values map[string]any
}

// NewMap returns an empty Map with room for size entries.
func NewMap(size int) *Map {
	return &Map{
		keys:   make([]string, 0, size),
		values: make(map[string]any, size),
	}
}

// MapOf builds a Map from pairs in the given order.
func MapOf(pairs ...Pair) *Map {
	m := NewMap(len(pairs))
	for _, p := range pairs {
		m.Set(p.Key, p.Value)
	}
	return m
}

// Set stores value under key.
func (m *Map) Set(key string, value any) {
	if m.values == nil {
		m.values = make(map[string]any)
	}
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Get returns the value stored under key.
func (m *Map) Get(key string) (any, bool) {
	if m == nil || m.values == nil {
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

// Delete removes key. Deleting a missing key is a no-op.
func (m *Map) Delete(key string) {
	if m == nil || m.values == nil {
		return
	}
	if _, ok := m.values[key]; !ok {
		return
	}
	delete(m.values, key)
	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
}

// Len returns the number of entries.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Keys returns a copy of the keys in insertion order.
func (m *Map) Keys() []string {
	if m == nil {
		return nil
	}
	keys := make([]string, len(m.keys))
	copy(keys, m.keys)
	return keys
}

// All iterates over entries in insertion order.
func (m *Map) All() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		if m == nil {
			return
		}
		for _, k := range m.keys {
			if !yield(k, m.values[k]) {
				return
			}
		}
	}
}

// Clone returns a shallow copy. Nested maps are shared.
func (m *Map) Clone() *Map {
	if m == nil {
		return nil
	}
	c := NewMap(len(m.keys))
	for k, v := range m.All() {
		c.Set(k, v)
	}
	return c
}

// ToMap converts m into a plain Go map, recursing into nested Maps.
// Ordering is lost; intended for JSON encoding and logging.
func (m *Map) ToMap() map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m.keys))
	for k, v := range m.All() {
		if nested, ok := v.(*Map); ok {
			out[k] = nested.ToMap()
			continue
		}
		out[k] = v
	}
	return out
}
