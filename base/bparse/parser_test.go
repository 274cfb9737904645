package bparse

import (
	"errors"
	"io/fs"
	"reflect"
	"testing"

	"github.com/relex/slog-protocol/base"
	"github.com/relex/slog-protocol/base/bmatch"
	"github.com/stretchr/testify/assert"
)

func TestParseTagSelector(t *testing.T) {
	anyOf := MustParseTagSelector("anyOf(system, test, hello)")
	assert.True(t, anyOf.MatchNames("system", "default"))
	assert.False(t, anyOf.MatchNames("default"))
	assert.False(t, anyOf.Match(base.EmptyTagSet))

	noneOf := MustParseTagSelector("noneOf(system, test, hello)")
	assert.True(t, noneOf.Match(base.EmptyTagSet))
	assert.False(t, noneOf.MatchNames("system"))

	anyTag := MustParseTagSelector("any( )")
	assert.True(t, anyTag.MatchNames("whatever"))
	assert.False(t, anyTag.Match(base.EmptyTagSet))

	dedup := MustParseTagSelector("allOf('default', default)")
	assert.True(t, dedup.Matcher().Equal(bmatch.HasTag("default")))
	assert.Equal(t, "default", dedup.String())
	assert.True(t, dedup.MatchNames("x", "default"))

	assert.True(t, MustParseTagSelector("true()").MatchNames())
	assert.False(t, MustParseTagSelector("false()").MatchNames("a"))
	assert.True(t, MustParseTagSelector("tag('my tag')").MatchNames("my tag"))
}

func TestParseTagSelectorNesting(t *testing.T) {
	s := MustParseTagSelector("and(all-of(a, b), not(c), or(d, any-of(e, f)))")
	expected := bmatch.MustAnd(
		bmatch.AllOf("a", "b"),
		bmatch.Not(bmatch.HasTag("c")),
		bmatch.MustOr(bmatch.HasTag("d"), bmatch.AnyOf("e", "f")),
	)
	assert.True(t, s.Matcher().Equal(expected), s.String())
	assert.True(t, s.MatchNames("a", "b", "e"))
	assert.False(t, s.MatchNames("a", "b", "c", "d"))
	assert.False(t, s.MatchNames("a", "d"))

	flat := MustParseTagSelector("and(and(a, b), c)")
	assert.True(t, flat.Matcher().Equal(bmatch.MustAnd(bmatch.HasTag("a"), bmatch.HasTag("b"), bmatch.HasTag("c"))))
	assert.Equal(t, "a", MustParseTagSelector("and(true(), a)").String())
	assert.Equal(t, "false()", MustParseTagSelector("and(false(), a)").String())
	assert.Equal(t, "a", MustParseTagSelector("not(not(a))").String())
}

func TestParseErrorSpans(t *testing.T) {
	cases := []struct {
		input   string
		start   int
		end     int
		message string
	}{
		{"allOf(", 7, 7, "unexpected end of input, expected name"},
		{"any( ) test", 7, 10, "unexpected trailing name 'test'"},
		{"", 1, 1, "unexpected end of input, expected expression"},
		{"anyOf(a,)", 8, 8, "unexpected ')', expected name"},
		{"anyOf(a b)", 8, 8, "unexpected name 'b', expected ',' or ')'"},
		{"anyOf(and)", 6, 8, "unexpected 'and', expected name"},
		{"not(a, b)", 5, 5, "unexpected ',', expected ')'"},
		{"and()", 4, 4, "unexpected ')', expected expression"},
		{"level(WARN)", 5, 5, "unexpected trailing '('"},
	}
	for _, c := range cases {
		t.Run(c.input, func(t *testing.T) {
			_, err := ParseTagSelector(c.input)
			var syntaxErr *SyntaxError
			if assert.True(t, errors.As(err, &syntaxErr), "%v", err) {
				assert.Equal(t, c.start, syntaxErr.Start)
				assert.Equal(t, c.end, syntaxErr.End)
				assert.Equal(t, c.message, syntaxErr.Message)
			}
		})
	}
}

func TestSyntaxErrorMarker(t *testing.T) {
	_, err := ParseTagSelector("any( ) test")
	var syntaxErr *SyntaxError
	assert.True(t, errors.As(err, &syntaxErr))
	assert.Equal(t, "any( ) test\n       ^^^^", syntaxErr.Marker())
	assert.Equal(t, "syntax error at 7-10: unexpected trailing name 'test'", syntaxErr.Error())

	_, err = ParseTagSelector("allOf(")
	assert.True(t, errors.As(err, &syntaxErr))
	assert.Equal(t, "allOf(\n      ^", syntaxErr.Marker())
	assert.Equal(t, "syntax error at 7: unexpected end of input, expected name", syntaxErr.Error())

	_, err = ParseTagSelector("anyOf(\na,)")
	assert.True(t, errors.As(err, &syntaxErr))
	assert.Equal(t, "", syntaxErr.Marker())
}

type customError struct{}

func (customError) Error() string { return "custom" }

func TestParseMatcher(t *testing.T) {
	m := MustParseMatcher("and(tag(db), level(WARN), hasParam(query))")
	assert.True(t, m.Equal(bmatch.MustAnd(bmatch.HasTag("db"), bmatch.Level(base.LevelWarn), bmatch.HasParam("query"))), m.String())

	assert.True(t, MustParseMatcher("warn()").Equal(bmatch.IsWarn()))
	assert.True(t, MustParseMatcher("level(warn)").Equal(bmatch.IsWarn()))
	assert.True(t, MustParseMatcher("level(400)").Equal(bmatch.IsWarn()))
	assert.True(t, MustParseMatcher("trace()").Equal(bmatch.Level(base.LevelTrace)))
	assert.True(t, MustParseMatcher("hasTag(x)").Equal(bmatch.HasTag("x")))
	assert.Equal(t, "level(350)", MustParseMatcher("level(350)").String())
	assert.Equal(t, "level(350)", MustParseMatcher("level(notice)", WithLevels(base.NewLevel("NOTICE", 350))).String())

	assert.True(t, MustParseMatcher("param(user, bob)").Equal(bmatch.HasParamValue("user", "bob")))
	assert.True(t, MustParseMatcher("param(user, null)").Equal(bmatch.HasParamValue("user", nil)))
	assert.True(t, MustParseMatcher("param(user, 'null')").Equal(bmatch.HasParamValue("user", "null")))
	assert.True(t, MustParseMatcher("messageId(disk.full)").Equal(bmatch.HasMessageID("disk.full")))

	like := MustParseMatcher("messageLike('disk.*')")
	assert.Equal(t, bmatch.KindMessageLike, like.Kind())
	assert.True(t, like.Matches(base.LevelHighest, &base.StaticMessage{MsgLevel: base.LevelInfo, MsgID: "disk.full"}))

	assert.True(t, MustParseMatcher("throwable()").Equal(bmatch.HasThrowable()))
	pathErr := MustParseMatcher("throwable(*fs.PathError)", WithThrowableTypes(reflect.TypeOf(&fs.PathError{})))
	assert.True(t, pathErr.Equal(bmatch.ThrowableOf[*fs.PathError]()))
	custom := MustParseMatcher("throwable(custom)", WithThrowableType("custom", reflect.TypeOf(customError{})))
	assert.True(t, custom.Matches(base.LevelHighest, &base.StaticMessage{MsgLevel: base.LevelError, MsgThrowable: customError{}}))
}

func TestParseMatcherErrors(t *testing.T) {
	cases := []struct {
		input string
		start int
		end   int
	}{
		{"level(bogus)", 6, 10},
		{"level()", 6, 6},
		{"throwable(*fs.PathError)", 10, 22},
		{"param(a)", 7, 7},
		{"param(a, and)", 9, 11},
		{"warn(x)", 5, 5},
		{"hasParam(a, b)", 10, 10},
	}
	for _, c := range cases {
		t.Run(c.input, func(t *testing.T) {
			_, err := ParseMatcher(c.input)
			var syntaxErr *SyntaxError
			if assert.True(t, errors.As(err, &syntaxErr), "%v", err) {
				assert.Equal(t, c.start, syntaxErr.Start)
				assert.Equal(t, c.end, syntaxErr.End)
			}
		})
	}
}

func TestCanonicalTextRoundTrip(t *testing.T) {
	options := []Option{WithThrowableTypes(reflect.TypeOf(&fs.PathError{}))}
	inputs := []string{
		"anyOf(b, a, b)",
		"noneOf('and', 'my tag')",
		"or(c, and(a, b))",
		"and(not(x), any(), param(k, 'v w'), hasParam(k))",
		"or(messageLike('disk.*'), messageId(boot), level(350), error())",
		"and(throwable(*fs.PathError), tag('it\\'s'), tag('tab\\there'))",
		"not(param(k, null))",
		"true()",
		"false()",
	}
	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			m := MustParseMatcher(input, options...)
			again, err := ParseMatcher(m.String(), options...)
			if assert.Nil(t, err, m.String()) {
				assert.True(t, m.Equal(again))
				assert.Equal(t, m.String(), again.String())
			}
		})
	}
	assert.Equal(t, "anyOf(a,b)", MustParseMatcher("anyOf(b, a, b)").String())
}
