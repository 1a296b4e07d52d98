package core

import (
	"fmt"
)

// Entry is one named child handed to NewChildMap.
type Entry struct {
	Key   string
	Value DataModel
}

type schema struct {
	keys  []string
	index map[string]int
}

// ChildMap is an ordered name to value container. The key schema is sealed
// at construction and shared by every map derived from it; the values are
// owned per instance.
type ChildMap struct {
	schema *schema
	vals   []DataModel
}

// NewChildMap seals the schema from entries. Duplicate keys panic.
func NewChildMap(entries ...Entry) *ChildMap {
	s := &schema{index: make(map[string]int, len(entries))}
	vals := make([]DataModel, 0, len(entries))
	for i, e := range entries {
		if _, dup := s.index[e.Key]; dup {
			panic(fmt.Sprintf("core: duplicate child key %q", e.Key))
		}
		s.index[e.Key] = i
		s.keys = append(s.keys, e.Key)
		vals = append(vals, e.Value)
	}
	return &ChildMap{schema: s, vals: vals}
}

// Empty returns a map sharing the schema with no values.
func (m *ChildMap) Empty() *ChildMap {
	return &ChildMap{schema: m.schema, vals: make([]DataModel, 0, len(m.schema.keys))}
}

// Clone copies the values and shares the schema.
func (m *ChildMap) Clone() *ChildMap {
	vals := make([]DataModel, len(m.vals), len(m.schema.keys))
	copy(vals, m.vals)
	return &ChildMap{schema: m.schema, vals: vals}
}

// Push appends the value for the next key. Pushing past the schema panics.
func (m *ChildMap) Push(v DataModel) {
	if len(m.vals) >= len(m.schema.keys) {
		panic(fmt.Sprintf("core: child map full at %d entries", len(m.vals)))
	}
	m.vals = append(m.vals, v)
}

// Get returns the value stored under key, if any.
func (m *ChildMap) Get(key string) (DataModel, bool) {
	i, ok := m.schema.index[key]
	if !ok || i >= len(m.vals) {
		return nil, false
	}
	return m.vals[i], true
}

// SetInd replaces the value at position i.
func (m *ChildMap) SetInd(i int, v DataModel) {
	m.vals[i] = v
}

func (m *ChildMap) Vals() []DataModel { return m.vals }

func (m *ChildMap) Keys() []string { return m.schema.keys }

// Key returns the key at position i.
func (m *ChildMap) Key(i int) string { return m.schema.keys[i] }

// Len returns the number of values stored so far.
func (m *ChildMap) Len() int { return len(m.vals) }

// Sealed reports whether every key has a value.
func (m *ChildMap) Sealed() bool { return len(m.vals) == len(m.schema.keys) }

// SameSchema reports whether m and other were derived from one NewChildMap.
func (m *ChildMap) SameSchema(other *ChildMap) bool {
	return m.schema == other.schema
}
