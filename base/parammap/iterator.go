package parammap

import (
	"fmt"

	"github.com/relex/slog-protocol/defs"
)

// Iterator walks the merged layers of a Map lazily in ascending key order
//
// An iterator becomes stale once any of the layers it walks is modified by Put; Next then returns false and Err
// reports defs.ErrConcurrentModification.
//
//	it := params.Iterator()
//	for it.Next() {
//		fmt.Println(it.Key(), it.Value())
//	}
//	if err := it.Err(); err != nil {
//		...
//	}
type Iterator struct {
	source  *Map
	version int       // version of source at creation
	index   int       // next local entry
	parent  *Iterator // nil if source has no parent
	pending bool      // whether parent is positioned on an entry not yet consumed
	key     string
	value   interface{}
	err     error
}

func newIterator(m *Map) *Iterator {
	it := &Iterator{
		source:  m,
		version: m.version,
	}
	if m.parent != nil {
		it.parent = newIterator(m.parent)
	}
	return it
}

// Next advances to the next entry and returns true if there is one
func (it *Iterator) Next() bool {
	if it.err != nil {
		return false
	}
	for layer := it; layer != nil; layer = layer.parent {
		if layer.source.version != layer.version {
			it.fail(layer)
			return false
		}
	}

	if it.parent != nil && !it.pending {
		it.pending = it.parent.Next()
		if err := it.parent.Err(); err != nil {
			it.err = err
			return false
		}
	}

	local := it.source.entries
	hasLocal := it.index < len(local)
	switch {
	case hasLocal && it.pending:
		localEntry := local[it.index]
		parentKey := it.parent.Key()
		switch {
		case localEntry.key < parentKey:
			it.emitLocal(localEntry)
		case localEntry.key == parentKey:
			it.emitLocal(localEntry)
			it.pending = false // shadowed
		default:
			it.emitParent()
		}
	case hasLocal:
		it.emitLocal(local[it.index])
	case it.pending:
		it.emitParent()
	default:
		return false
	}
	return true
}

// Key returns the key of current entry
func (it *Iterator) Key() string {
	return it.key
}

// Value returns the value of current entry
func (it *Iterator) Value() interface{} {
	return it.value
}

// Err returns the error which stopped iteration, or nil
func (it *Iterator) Err() error {
	return it.err
}

func (it *Iterator) emitLocal(e entry) {
	it.key = e.key
	it.value = e.value
	it.index++
}

func (it *Iterator) emitParent() {
	it.key = it.parent.Key()
	it.value = it.parent.Value()
	it.pending = false
}

// fail stops the iteration because the given layer has been modified
func (it *Iterator) fail(layer *Iterator) {
	it.err = fmt.Errorf("parameter map modified after iterator creation (version %d => %d): %w",
		layer.version, layer.source.version, defs.ErrConcurrentModification)
}
