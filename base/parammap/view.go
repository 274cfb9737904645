package parammap

import (
	"fmt"

	"github.com/relex/slog-protocol/defs"
)

// View is a read-only view of Map
//
// Lookups and iteration go to the underlying map, including changes made to it after the view was created.
// Mutating methods always fail with defs.ErrUnsupportedOperation.
type View struct {
	source *Map
}

// EmptyView is a view without any entry
var EmptyView = New(nil).View()

// Get looks up a value by key
func (v View) Get(key string) (interface{}, bool) {
	if v.source == nil {
		return nil, false
	}
	return v.source.Get(key)
}

// Has checks whether the key exists
func (v View) Has(key string) bool {
	return v.source != nil && v.source.Has(key)
}

// IsEmpty returns true if there is no entry
func (v View) IsEmpty() bool {
	return v.source == nil || v.source.IsEmpty()
}

// Len counts the distinct keys
func (v View) Len() int {
	if v.source == nil {
		return 0
	}
	return v.source.Len()
}

// Iterator creates a new iterator over the merged entries in ascending key order
func (v View) Iterator() *Iterator {
	if v.source == nil {
		return EmptyView.source.Iterator()
	}
	return v.source.Iterator()
}

// Range calls the given function for each merged entry in ascending key order until it returns false
func (v View) Range(fn func(key string, value interface{}) bool) error {
	if v.source == nil {
		return nil
	}
	return v.source.Range(fn)
}

// ToMap copies all merged entries into a new Go map
func (v View) ToMap() map[string]interface{} {
	if v.source == nil {
		return map[string]interface{}{}
	}
	return v.source.ToMap()
}

// Put is unsupported
func (v View) Put(key string, value interface{}) error {
	return fmt.Errorf("put '%s' to read-only parameters: %w", key, defs.ErrUnsupportedOperation)
}

// Remove is unsupported
func (v View) Remove(key string) error {
	return fmt.Errorf("remove '%s' from read-only parameters: %w", key, defs.ErrUnsupportedOperation)
}

// Clear is unsupported
func (v View) Clear() error {
	return fmt.Errorf("clear read-only parameters: %w", defs.ErrUnsupportedOperation)
}

func (v View) String() string {
	if v.source == nil {
		return "{}"
	}
	return v.source.String()
}
