package bmatch

import (
	"errors"
	"fmt"
	htmltemplate "html/template"
	"io/fs"
	"reflect"
	"testing"
	texttemplate "text/template"

	"github.com/relex/slog-protocol/base"
	"github.com/relex/slog-protocol/base/parammap"
	"github.com/relex/slog-protocol/defs"
	"github.com/stretchr/testify/assert"
)

func newTestMessage(level base.Level, tags ...string) *base.StaticMessage {
	return &base.StaticMessage{
		MsgLevel:  level,
		MsgTags:   base.NewTagSet(tags...),
		MsgParams: parammap.New(nil),
	}
}

func TestConjunctionNormalization(t *testing.T) {
	a, b, c := HasTag("a"), IsWarn(), HasParam("c")

	t.Run("flatten", func(tt *testing.T) {
		nested := MustAnd(MustAnd(a, b), c)
		flat := MustAnd(a, b, c)
		assert.True(tt, nested.Equal(flat))
		assert.Equal(tt, KindAnd, nested.Kind())
		assert.Len(tt, nested.Children(), 3)
		assert.Equal(tt, "and(a,level(WARN),hasParam(c))", nested.String())
	})
	t.Run("order insensitive", func(tt *testing.T) {
		assert.True(tt, MustAnd(c, b, a).Equal(MustAnd(a, b, c)))
	})
	t.Run("any dropped", func(tt *testing.T) {
		assert.Same(tt, a, MustAnd(Any(), a))
		assert.Same(tt, a, MustAnd(Any(), a, Any()))
		assert.Same(tt, Any(), MustAnd(Any(), Any()))
	})
	t.Run("none absorbs", func(tt *testing.T) {
		assert.Same(tt, None(), MustAnd(None(), a))
		assert.Same(tt, None(), MustAnd(a, MustAnd(b, c), None()))
	})
	t.Run("singleton", func(tt *testing.T) {
		assert.Same(tt, a, MustAnd(a))
		assert.Same(tt, a, MustAnd(a, HasTag("a")), "duplicates collapse")
	})
	t.Run("empty", func(tt *testing.T) {
		_, err := And()
		assert.True(tt, errors.Is(err, defs.ErrInvalidArgument))
		_, err = And(a, nil)
		assert.True(tt, errors.Is(err, defs.ErrInvalidArgument))
	})
}

func TestDisjunctionNormalization(t *testing.T) {
	a, b, c := HasTag("a"), HasTag("b"), HasMessageID("c")

	assert.True(t, MustOr(MustOr(a, b), c).Equal(MustOr(a, b, c)))
	assert.Same(t, Any(), MustOr(a, Any()))
	assert.Same(t, b, MustOr(None(), b))
	assert.Same(t, None(), MustOr(None(), None()))
	assert.Equal(t, "or(a,b,messageId(c))", MustOr(c, b, a).String())

	mixed := MustOr(MustAnd(a, b), c)
	assert.Equal(t, KindOr, mixed.Kind())
	assert.Len(t, mixed.Children(), 2, "and is not flattened into or")

	_, err := Or()
	assert.True(t, errors.Is(err, defs.ErrInvalidArgument))
}

func TestNegation(t *testing.T) {
	m := MustAnd(HasTag("x"), IsError())
	assert.Same(t, m, Not(Not(m)))
	assert.Same(t, None(), Not(Any()))
	assert.Same(t, Any(), Not(None()))
	assert.Equal(t, "not(x)", HasTag("x").Not().String())
}

func TestJunctionMethods(t *testing.T) {
	m := HasTag("a").And(HasTag("b")).Or(HasTag("c"))
	assert.Equal(t, "or(c,and(a,b))", m.String())
	assert.True(t, m.IsTagSelector())
	assert.False(t, m.And(IsInfo()).IsTagSelector())
}

func TestTagLists(t *testing.T) {
	m := AnyOf("b", "a", "b")
	assert.Equal(t, KindAnyOf, m.Kind())
	assert.Equal(t, []string{"a", "b"}, m.TagNames())
	assert.True(t, m.Matches(base.LevelInfo, newTestMessage(base.LevelInfo, "a")))
	assert.True(t, m.Matches(base.LevelInfo, newTestMessage(base.LevelInfo, "b")))
	assert.False(t, m.Matches(base.LevelInfo, newTestMessage(base.LevelInfo, "c")))

	assert.Equal(t, KindTag, AllOf("default", "default").Kind())
	assert.Equal(t, KindTag, AnyOf("x").Kind())
	assert.Equal(t, "not(x)", NoneOf("x").String())
	assert.Same(t, None(), AnyOf())
	assert.Same(t, Any(), AllOf())
	assert.Same(t, Any(), NoneOf())

	assert.Equal(t, "allOf(a,b)", AllOf("b", "a").String())
	assert.Equal(t, "noneOf('and','my tag')", NoneOf("my tag", "and").String())
}

func TestLevelMatching(t *testing.T) {
	warnMessage := newTestMessage(base.LevelWarn)

	assert.True(t, IsWarn().Matches(base.LevelHighest, warnMessage))
	assert.True(t, IsInfo().Matches(base.LevelHighest, warnMessage))
	assert.False(t, IsError().Matches(base.LevelHighest, warnMessage))

	assert.False(t, IsError().Matches(base.LevelInfo, warnMessage), "limit caps visibility")
	assert.False(t, IsWarn().Matches(base.LevelInfo, warnMessage))
	assert.True(t, IsInfo().Matches(base.LevelInfo, warnMessage))

	assert.True(t, Level(base.NewLevel("NOTICE", 400)).Equal(IsWarn()), "levels compare by severity")
	assert.Equal(t, "level(350)", Level(base.NewLevel("CUSTOM", 350)).String())
}

func TestParamMatching(t *testing.T) {
	group := parammap.New(nil)
	assert.NoError(t, group.Put("host", "db-1"))
	params := parammap.New(group)
	assert.NoError(t, params.Put("retries", 3))
	assert.NoError(t, params.Put("cause", nil))
	msg := &base.StaticMessage{MsgLevel: base.LevelInfo, MsgParams: params}

	assert.True(t, HasParam("host").Matches(base.LevelInfo, msg), "inherited")
	assert.True(t, HasParam("cause").Matches(base.LevelInfo, msg))
	assert.False(t, HasParam("missing").Matches(base.LevelInfo, msg))

	assert.True(t, HasParamValue("host", "db-1").Matches(base.LevelInfo, msg))
	assert.True(t, HasParamValue("retries", 3).Matches(base.LevelInfo, msg))
	assert.False(t, HasParamValue("retries", "3").Matches(base.LevelInfo, msg))
	assert.False(t, HasParamValue("retries", int64(3)).Matches(base.LevelInfo, msg))
	assert.True(t, HasParamValue("cause", nil).Matches(base.LevelInfo, msg))
	assert.False(t, HasParamValue("missing", nil).Matches(base.LevelInfo, msg), "absent is not null")
	assert.False(t, HasParamValue("host", nil).Matches(base.LevelInfo, msg))

	assert.True(t, HasParamValue("list", []string{"a"}).Matches(base.LevelInfo, &base.StaticMessage{
		MsgParams: func() *parammap.Map {
			m := parammap.New(nil)
			assert.NoError(t, m.Put("list", []string{"a"}))
			return m
		}(),
	}))

	assert.Equal(t, "param(retries,int(3))", HasParamValue("retries", 3).String())
	assert.Equal(t, "param(cause,null)", HasParamValue("cause", nil).String())
	assert.False(t, HasParamValue("x", "1").Equal(HasParamValue("x", 1)))
}

type boxedValue struct {
	V interface{}
}

func TestParamMatchingWithUncomparableFields(t *testing.T) {
	params := parammap.New(nil)
	assert.NoError(t, params.Put("box", boxedValue{[]int{1}}))
	msg := &base.StaticMessage{MsgLevel: base.LevelInfo, MsgParams: params}

	assert.NotPanics(t, func() {
		assert.True(t, HasParamValue("box", boxedValue{[]int{1}}).Matches(base.LevelInfo, msg))
		assert.False(t, HasParamValue("box", boxedValue{[]int{2}}).Matches(base.LevelInfo, msg))
		assert.False(t, HasParamValue("box", boxedValue{"1"}).Matches(base.LevelInfo, msg))
	})
}

func TestMessageIDMatching(t *testing.T) {
	msg := newTestMessage(base.LevelInfo)
	msg.MsgID = "disk.full"

	assert.True(t, HasMessageID("disk.full").Matches(base.LevelInfo, msg))
	assert.False(t, HasMessageID("disk").Matches(base.LevelInfo, msg))

	like, err := MessageLike("disk.*")
	if assert.NoError(t, err) {
		assert.True(t, like.Matches(base.LevelInfo, msg))
		assert.Equal(t, "messageLike(disk.*)", like.String())
	}
}

type testError struct{ code int }

func (e *testError) Error() string { return fmt.Sprintf("test error %d", e.code) }

func TestThrowableMatching(t *testing.T) {
	plain := newTestMessage(base.LevelError)
	wrapped := newTestMessage(base.LevelError)
	wrapped.MsgThrowable = fmt.Errorf("saving: %w", &testError{1})
	pathErr := newTestMessage(base.LevelError)
	pathErr.MsgThrowable = errors.Join(errors.New("first"), &fs.PathError{Op: "open", Path: "/x", Err: fs.ErrNotExist})

	assert.False(t, HasThrowable().Matches(base.LevelError, plain))
	assert.True(t, HasThrowable().Matches(base.LevelError, wrapped))

	assert.True(t, ThrowableOf[*testError]().Matches(base.LevelError, wrapped))
	assert.False(t, ThrowableOf[*testError]().Matches(base.LevelError, pathErr))
	assert.True(t, ThrowableOf[*fs.PathError]().Matches(base.LevelError, pathErr))

	type coded interface {
		error
		Code() int
	}
	assert.False(t, ThrowableOf[coded]().Matches(base.LevelError, wrapped), "testError has no Code()")
	assert.True(t, ThrowableOf[error]().Matches(base.LevelError, wrapped), "interface matches implementations")

	assert.Equal(t, "throwable(*bmatch.testError)", ThrowableOf[*testError]().String())
	assert.True(t, HasThrowableOf(nil).Equal(HasThrowable()))
}

func TestSameNamedTypesFromDifferentPackages(t *testing.T) {
	textType := reflect.TypeOf((*texttemplate.Template)(nil))
	htmlType := reflect.TypeOf((*htmltemplate.Template)(nil))

	textThrowable := HasThrowableOf(textType)
	htmlThrowable := HasThrowableOf(htmlType)
	assert.Equal(t, textThrowable.String(), htmlThrowable.String())
	assert.False(t, textThrowable.Equal(htmlThrowable))
	assert.True(t, textThrowable.Equal(HasThrowableOf(textType)))
	assert.Len(t, MustOr(textThrowable, htmlThrowable).Children(), 2)
	assert.False(t, Not(textThrowable).Equal(Not(htmlThrowable)))

	textValue := HasParamValue("tpl", (*texttemplate.Template)(nil))
	htmlValue := HasParamValue("tpl", (*htmltemplate.Template)(nil))
	assert.Equal(t, textValue.String(), htmlValue.String())
	assert.False(t, textValue.Equal(htmlValue))
	assert.Len(t, MustAnd(textValue, htmlValue, HasParam("tpl")).Children(), 3)
	assert.False(t, MustAnd(textValue, HasParam("tpl")).Equal(MustAnd(htmlValue, HasParam("tpl"))))
}

func TestIsTagSelector(t *testing.T) {
	assert.True(t, Any().IsTagSelector())
	assert.True(t, MustOr(HasTag("a"), Not(AllOf("b", "c")), HasAnyTag()).IsTagSelector())
	assert.False(t, MustOr(HasTag("a"), HasParam("b")).IsTagSelector())
	assert.False(t, Not(HasThrowable()).IsTagSelector())
}

func TestCombinedMatching(t *testing.T) {
	m := MustAnd(AnyOf("system", "audit"), Not(HasTag("debug")), IsWarn())
	msg := newTestMessage(base.LevelError, "system")
	assert.True(t, m.Matches(base.LevelHighest, msg))
	assert.False(t, m.Matches(base.LevelInfo, msg))

	msg.MsgTags = base.NewTagSet("system", "debug")
	assert.False(t, m.Matches(base.LevelHighest, msg))
}
