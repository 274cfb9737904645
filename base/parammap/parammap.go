// Package parammap provides the layered parameter map of messages and groups
//
// A Map keeps its own entries sorted by key and delegates lookups of absent keys to its parent. Iteration merges all
// layers in ascending key order, where entries of a child shadow the parent entries of the same keys.
//
// Maps are not safe for concurrent modification. Iterators detect modification of their maps and fail fast.
package parammap

import (
	"fmt"
	"strings"

	"github.com/relex/slog-protocol/defs"
	"golang.org/x/exp/slices"
)

// Map is an ordered key-value store with an optional parent
type Map struct {
	parent  *Map
	entries []entry
	version int // incremented by each Put, checked by iterators
}

type entry struct {
	key   string
	value interface{}
}

// New creates an empty map on top of the given parent, which may be nil
func New(parent *Map) *Map {
	return &Map{
		parent:  parent,
		entries: nil,
		version: 0,
	}
}

// Parent returns the parent map or nil
func (m *Map) Parent() *Map {
	return m.parent
}

// Put adds or replaces a value in the local layer; parents are never modified
func (m *Map) Put(key string, value interface{}) error {
	if key == "" {
		return fmt.Errorf("parameter key is empty: %w", defs.ErrInvalidArgument)
	}
	index, found := m.search(key)
	if found {
		m.entries[index].value = value
	} else {
		if m.entries == nil {
			m.entries = make([]entry, 0, defs.ParamMapInitialCapacity)
		}
		m.entries = slices.Insert(m.entries, index, entry{key, value})
	}
	m.version++
	return nil
}

// Get looks up a value in the local layer first and then in the parent chain
func (m *Map) Get(key string) (interface{}, bool) {
	for layer := m; layer != nil; layer = layer.parent {
		if index, found := layer.search(key); found {
			return layer.entries[index].value, true
		}
	}
	return nil, false
}

// Has checks whether the key exists in this map or any of its parents
func (m *Map) Has(key string) bool {
	_, found := m.Get(key)
	return found
}

// IsEmpty returns true if neither this map nor any of its parents has entries
func (m *Map) IsEmpty() bool {
	for layer := m; layer != nil; layer = layer.parent {
		if len(layer.entries) > 0 {
			return false
		}
	}
	return true
}

// Len counts the distinct keys of all layers
//
// Shadowed keys count once, so the count requires a full iteration
func (m *Map) Len() int {
	count := 0
	it := m.Iterator()
	for it.Next() {
		count++
	}
	return count
}

// Iterator creates a new iterator over the merged layers in ascending key order
func (m *Map) Iterator() *Iterator {
	return newIterator(m)
}

// Range calls the given function for each merged entry in ascending key order until it returns false
func (m *Map) Range(fn func(key string, value interface{}) bool) error {
	it := m.Iterator()
	for it.Next() {
		if !fn(it.Key(), it.Value()) {
			break
		}
	}
	return it.Err()
}

// ToMap copies all merged entries into a new Go map
func (m *Map) ToMap() map[string]interface{} {
	result := make(map[string]interface{}, len(m.entries))
	_ = m.Range(func(key string, value interface{}) bool {
		result[key] = value
		return true
	})
	return result
}

// View returns a read-only view of this map
func (m *Map) View() View {
	return View{m}
}

func (m *Map) String() string {
	builder := strings.Builder{}
	builder.WriteByte('{')
	first := true
	_ = m.Range(func(key string, value interface{}) bool {
		if !first {
			builder.WriteString(", ")
		}
		first = false
		fmt.Fprintf(&builder, "%s=%v", key, value)
		return true
	})
	builder.WriteByte('}')
	return builder.String()
}

func (m *Map) search(key string) (int, bool) {
	return slices.BinarySearchFunc(m.entries, key, func(e entry, target string) int {
		return strings.Compare(e.key, target)
	})
}
