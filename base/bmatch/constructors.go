package bmatch

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/gobwas/glob"
	"github.com/relex/slog-protocol/base"
	"github.com/relex/slog-protocol/defs"
	"github.com/relex/slog-protocol/util"
)

var (
	anyMatcher    = &Matcher{kind: KindAny, tagOnly: true, text: "true()"}
	noneMatcher   = &Matcher{kind: KindNone, tagOnly: true, text: "false()"}
	anyTagMatcher = &Matcher{kind: KindAnyTag, tagOnly: true, cost: 1, text: "any()"}
)

// Any returns the matcher which always matches
func Any() *Matcher {
	return anyMatcher
}

// None returns the matcher which never matches
func None() *Matcher {
	return noneMatcher
}

// HasAnyTag matches messages with at least one tag
func HasAnyTag() *Matcher {
	return anyTagMatcher
}

// HasTag matches messages with the given tag
func HasTag(name string) *Matcher {
	return &Matcher{
		kind:    KindTag,
		names:   []string{name},
		tagOnly: true,
		cost:    1,
		text:    QuoteName(name),
	}
}

// AnyOf matches messages with any of the given tags
func AnyOf(names ...string) *Matcher {
	sorted := util.SortedUniqueStrings(names)
	switch len(sorted) {
	case 0:
		return noneMatcher
	case 1:
		return HasTag(sorted[0])
	}
	return newTagList(KindAnyOf, sorted)
}

// AllOf matches messages with all of the given tags
func AllOf(names ...string) *Matcher {
	sorted := util.SortedUniqueStrings(names)
	switch len(sorted) {
	case 0:
		return anyMatcher
	case 1:
		return HasTag(sorted[0])
	}
	return newTagList(KindAllOf, sorted)
}

// NoneOf matches messages with none of the given tags
func NoneOf(names ...string) *Matcher {
	sorted := util.SortedUniqueStrings(names)
	switch len(sorted) {
	case 0:
		return anyMatcher
	case 1:
		return Not(HasTag(sorted[0]))
	}
	return newTagList(KindNoneOf, sorted)
}

func newTagList(kind Kind, sorted []string) *Matcher {
	return &Matcher{
		kind:    kind,
		names:   sorted,
		tagOnly: true,
		cost:    1 + len(sorted)/8,
		text:    renderNames(kind.String(), sorted),
	}
}

// Level matches messages whose level, capped by the level limit at evaluation, is at least the given level
func Level(level base.Level) *Matcher {
	return &Matcher{
		kind:  KindLevel,
		level: level,
		cost:  1,
		text:  renderLevel(level),
	}
}

// IsDebug matches messages of level DEBUG or above
func IsDebug() *Matcher {
	return Level(base.LevelDebug)
}

// IsInfo matches messages of level INFO or above
func IsInfo() *Matcher {
	return Level(base.LevelInfo)
}

// IsWarn matches messages of level WARN or above
func IsWarn() *Matcher {
	return Level(base.LevelWarn)
}

// IsError matches messages of level ERROR or above
func IsError() *Matcher {
	return Level(base.LevelError)
}

// HasParam matches messages which have the parameter, own or inherited
func HasParam(key string) *Matcher {
	return &Matcher{
		kind: KindParam,
		key:  key,
		cost: 5,
		text: "hasParam(" + QuoteName(key) + ")",
	}
}

// HasParamValue matches messages which have the parameter with a value equal to the given one, which may be nil
func HasParamValue(key string, value interface{}) *Matcher {
	return &Matcher{
		kind:  KindParamValue,
		key:   key,
		value: value,
		cost:  10,
		text:  "param(" + QuoteName(key) + "," + renderValue(value) + ")",
		id:    "param(" + QuoteName(key) + "," + valueIdentity(value) + ")",
	}
}

// HasMessageID matches messages of the given id
func HasMessageID(id string) *Matcher {
	return &Matcher{
		kind: KindMessageID,
		key:  id,
		cost: 2 + len(id)/2,
		text: "messageId(" + QuoteName(id) + ")",
	}
}

// MessageLike matches messages whose id matches the glob pattern, e.g. "disk.*"
func MessageLike(pattern string) (*Matcher, error) {
	g, err := glob.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern '%s': %w", pattern, err)
	}
	return &Matcher{
		kind: KindMessageLike,
		key:  pattern,
		glob: g,
		cost: 2000 + len(pattern),
		text: "messageLike(" + QuoteName(pattern) + ")",
	}, nil
}

// HasThrowable matches messages with any throwable
func HasThrowable() *Matcher {
	return &Matcher{
		kind: KindThrowable,
		cost: 20,
		text: "throwable()",
	}
}

// HasThrowableOf matches messages with a throwable of the given type in its chain of wrapped errors
//
// An interface type matches all errors implementing it. A nil type matches any throwable.
func HasThrowableOf(errType reflect.Type) *Matcher {
	if errType == nil {
		return HasThrowable()
	}
	return &Matcher{
		kind:    KindThrowable,
		errType: errType,
		cost:    50,
		text:    "throwable(" + QuoteName(errType.String()) + ")",
		id:      "throwable(" + QuoteName(qualifiedTypeName(errType)) + ")",
	}
}

// ThrowableOf matches messages with a throwable of type E in its chain of wrapped errors
func ThrowableOf[E error]() *Matcher {
	return HasThrowableOf(reflect.TypeOf((*E)(nil)).Elem())
}

// Not negates the given matcher, eliminating double negation and constants
func Not(m *Matcher) *Matcher {
	switch m.kind {
	case KindAny:
		return noneMatcher
	case KindNone:
		return anyMatcher
	case KindNot:
		return m.children[0]
	}
	negation := &Matcher{
		kind:     KindNot,
		children: []*Matcher{m},
		tagOnly:  m.tagOnly,
		cost:     m.cost + 1,
		text:     "not(" + m.text + ")",
	}
	if m.id != "" {
		negation.id = "not(" + m.id + ")"
	}
	return negation
}

// And creates a conjunction of the given matchers
//
// Nested conjunctions are flattened, duplicates removed, true() dropped and false() absorbs all.
// A single remaining member is returned as-is. An empty list is an error.
func And(matchers ...*Matcher) (*Matcher, error) {
	return newJunction(KindAnd, noneMatcher, anyMatcher, matchers)
}

// Or creates a disjunction of the given matchers
//
// Nested disjunctions are flattened, duplicates removed, false() dropped and true() absorbs all.
// A single remaining member is returned as-is. An empty list is an error.
func Or(matchers ...*Matcher) (*Matcher, error) {
	return newJunction(KindOr, anyMatcher, noneMatcher, matchers)
}

// MustAnd is And which panics on error
func MustAnd(matchers ...*Matcher) *Matcher {
	m, err := And(matchers...)
	if err != nil {
		panic(err)
	}
	return m
}

// MustOr is Or which panics on error
func MustOr(matchers ...*Matcher) *Matcher {
	m, err := Or(matchers...)
	if err != nil {
		panic(err)
	}
	return m
}

// And combines this matcher with others by conjunction
func (m *Matcher) And(others ...*Matcher) *Matcher {
	return MustAnd(append([]*Matcher{m}, others...)...)
}

// Or combines this matcher with others by disjunction
func (m *Matcher) Or(others ...*Matcher) *Matcher {
	return MustOr(append([]*Matcher{m}, others...)...)
}

// Not negates this matcher
func (m *Matcher) Not() *Matcher {
	return Not(m)
}

func newJunction(kind Kind, absorbing *Matcher, neutral *Matcher, matchers []*Matcher) (*Matcher, error) {
	if len(matchers) == 0 {
		return nil, fmt.Errorf("%s of no matcher: %w", kind, defs.ErrInvalidArgument)
	}

	members := make([]*Matcher, 0, len(matchers)+4)
	seen := make(map[string]bool, len(matchers)+4)
	addMember := func(m *Matcher) {
		if !seen[m.identity()] {
			seen[m.identity()] = true
			members = append(members, m)
		}
	}
	for i, m := range matchers {
		if m == nil {
			return nil, fmt.Errorf("%s of nil matcher at %d: %w", kind, i, defs.ErrInvalidArgument)
		}
		switch m.kind {
		case absorbing.kind:
			return absorbing, nil
		case kind:
			for _, c := range m.children {
				addMember(c)
			}
		default:
			addMember(m)
		}
	}

	if len(members) > 1 && seen[neutral.identity()] {
		filtered := members[:0]
		for _, m := range members {
			if m.kind != neutral.kind {
				filtered = append(filtered, m)
			}
		}
		members = filtered
	}
	if len(members) == 1 {
		return members[0], nil
	}

	sort.Slice(members, func(i, j int) bool {
		if members[i].cost != members[j].cost {
			return members[i].cost < members[j].cost
		}
		if members[i].text != members[j].text {
			return members[i].text < members[j].text
		}
		return members[i].identity() < members[j].identity()
	})
	junction := &Matcher{
		kind:     kind,
		children: members,
		tagOnly:  true,
		text:     renderChildren(kind.String(), members),
	}
	qualified := false
	for _, m := range members {
		junction.tagOnly = junction.tagOnly && m.tagOnly
		junction.cost += m.cost
		qualified = qualified || m.id != ""
	}
	if qualified {
		junction.id = renderIdentities(kind.String(), members)
	}
	return junction, nil
}
