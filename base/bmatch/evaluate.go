package bmatch

import (
	"reflect"

	"github.com/relex/gotils/logger"
	"github.com/relex/slog-protocol/base"
)

// Matches checks whether the message matches, as seen at the given level limit
//
// The level limit caps the message's level for level atoms: a WARN message seen at INFO does not match IsWarn().
func (m *Matcher) Matches(levelLimit base.Level, msg base.Message) bool {
	switch m.kind {
	case KindAny:
		return true
	case KindNone:
		return false
	case KindAnyTag, KindTag, KindAnyOf, KindAllOf, KindNoneOf:
		return m.matchTagAtom(msg.Tags())
	case KindLevel:
		return base.CompareLevels(base.MinLevel(msg.Level(), levelLimit), m.level) >= 0
	case KindParam:
		return msg.Params().Has(m.key)
	case KindParamValue:
		value, found := msg.Params().Get(m.key)
		return found && valuesEqual(value, m.value)
	case KindMessageID:
		return msg.MessageID() == m.key
	case KindMessageLike:
		return m.glob.Match(msg.MessageID())
	case KindThrowable:
		err := msg.Throwable()
		if m.errType == nil {
			return err != nil
		}
		return errorChainHasType(err, m.errType)
	case KindNot:
		return !m.children[0].Matches(levelLimit, msg)
	case KindAnd:
		for _, c := range m.children {
			if !c.Matches(levelLimit, msg) {
				return false
			}
		}
		return true
	case KindOr:
		for _, c := range m.children {
			if c.Matches(levelLimit, msg) {
				return true
			}
		}
		return false
	default:
		logger.Panicf("unsupported matcher kind %d: %s", m.kind, m.text)
		return false
	}
}

// matchTags evaluates a tag-only tree
func (m *Matcher) matchTags(tags base.TagSet) bool {
	switch m.kind {
	case KindAny:
		return true
	case KindNone:
		return false
	case KindAnyTag, KindTag, KindAnyOf, KindAllOf, KindNoneOf:
		return m.matchTagAtom(tags)
	case KindNot:
		return !m.children[0].matchTags(tags)
	case KindAnd:
		for _, c := range m.children {
			if !c.matchTags(tags) {
				return false
			}
		}
		return true
	case KindOr:
		for _, c := range m.children {
			if c.matchTags(tags) {
				return true
			}
		}
		return false
	default:
		logger.Panicf("matcher kind %s is not tag-related: %s", m.kind, m.text)
		return false
	}
}

func (m *Matcher) matchTagAtom(tags base.TagSet) bool {
	switch m.kind {
	case KindAnyTag:
		return !tags.IsEmpty()
	case KindTag:
		return tags.Has(m.names[0])
	case KindAnyOf:
		for _, name := range m.names {
			if tags.Has(name) {
				return true
			}
		}
		return false
	case KindAllOf:
		for _, name := range m.names {
			if !tags.Has(name) {
				return false
			}
		}
		return true
	case KindNoneOf:
		for _, name := range m.names {
			if tags.Has(name) {
				return false
			}
		}
		return true
	default:
		logger.Panicf("matcher kind %s is not a tag atom: %s", m.kind, m.text)
		return false
	}
}

func valuesEqual(actual interface{}, expected interface{}) bool {
	if actual == nil || expected == nil {
		return actual == nil && expected == nil
	}
	actualType := reflect.TypeOf(actual)
	if actualType != reflect.TypeOf(expected) {
		return false
	}
	if isScalarKind(actualType.Kind()) {
		return actual == expected
	}
	// == may panic on structs or arrays holding uncomparable values in interface fields
	return reflect.DeepEqual(actual, expected)
}

func isScalarKind(kind reflect.Kind) bool {
	switch kind {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128,
		reflect.Pointer, reflect.Chan, reflect.UnsafePointer:
		return true
	default:
		return false
	}
}

// errorChainHasType walks the error and the errors it wraps, like errors.As without a target variable
func errorChainHasType(err error, errType reflect.Type) bool {
	for err != nil {
		if reflect.TypeOf(err).AssignableTo(errType) {
			return true
		}
		switch wrapper := err.(type) {
		case interface{ Unwrap() error }:
			err = wrapper.Unwrap()
		case interface{ Unwrap() []error }:
			for _, inner := range wrapper.Unwrap() {
				if errorChainHasType(inner, errType) {
					return true
				}
			}
			return false
		default:
			return false
		}
	}
	return false
}
