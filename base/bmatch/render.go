package bmatch

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"unicode"

	"github.com/relex/slog-protocol/base"
)

// reservedNames are the keywords of the matcher grammar, which need quotes to be used as names
var reservedNames = map[string]bool{
	"any": true, "anyOf": true, "any-of": true, "allOf": true, "all-of": true, "noneOf": true, "none-of": true,
	"and": true, "or": true, "not": true, "true": true, "false": true, "tag": true, "hasTag": true,
	"level": true, "trace": true, "debug": true, "info": true, "warn": true, "error": true,
	"hasParam": true, "param": true, "null": true, "messageId": true, "messageLike": true, "throwable": true,
}

// IsReservedName checks whether the given name is a keyword in the matcher or selector grammar
func IsReservedName(name string) bool {
	return reservedNames[name]
}

// IsBareNameChar checks whether the char may appear in names without quotes
func IsBareNameChar(c rune) bool {
	switch c {
	case '(', ')', ',', '\'', '\\':
		return false
	default:
		return !unicode.IsSpace(c) && unicode.IsPrint(c)
	}
}

// QuoteName returns the name as-is if it can be written bare in expressions, or quoted and escaped otherwise
func QuoteName(name string) string {
	if name != "" && !reservedNames[name] && strings.IndexFunc(name, func(c rune) bool { return !IsBareNameChar(c) }) == -1 {
		return name
	}
	builder := strings.Builder{}
	builder.Grow(len(name) + 2)
	builder.WriteByte('\'')
	for _, c := range name {
		switch c {
		case '\'', '\\':
			builder.WriteByte('\\')
			builder.WriteRune(c)
		case '\n':
			builder.WriteString(`\n`)
		case '\t':
			builder.WriteString(`\t`)
		default:
			if unicode.IsPrint(c) || c > 0xFFFF {
				builder.WriteRune(c)
			} else {
				fmt.Fprintf(&builder, `\u%04X`, c)
			}
		}
	}
	builder.WriteByte('\'')
	return builder.String()
}

func renderNames(function string, names []string) string {
	quoted := make([]string, len(names))
	for i, name := range names {
		quoted[i] = QuoteName(name)
	}
	return function + "(" + strings.Join(quoted, ",") + ")"
}

// renderLevel writes standard levels by name and others by severity, so equal severities render equally
func renderLevel(level base.Level) string {
	standard, err := base.ParseLevel(strconv.Itoa(level.Severity()))
	if err != nil {
		return "level(" + strconv.Itoa(level.Severity()) + ")"
	}
	return "level(" + standard.String() + ")"
}

func renderValue(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return "null"
	case string:
		return QuoteName(v)
	default:
		return fmt.Sprintf("%T(%v)", v, v)
	}
}

func renderChildren(function string, children []*Matcher) string {
	parts := make([]string, len(children))
	for i, c := range children {
		parts[i] = c.text
	}
	return function + "(" + strings.Join(parts, ",") + ")"
}

func renderIdentities(function string, children []*Matcher) string {
	parts := make([]string, len(children))
	for i, c := range children {
		parts[i] = c.identity()
	}
	return function + "(" + strings.Join(parts, ",") + ")"
}

// valueIdentity is renderValue with package-qualified type names
func valueIdentity(value interface{}) string {
	switch v := value.(type) {
	case nil, string:
		return renderValue(v)
	default:
		return fmt.Sprintf("%s(%v)", qualifiedTypeName(reflect.TypeOf(v)), v)
	}
}

// qualifiedTypeName names the type with full import paths, e.g. "*example.com/app/store.Error"
func qualifiedTypeName(t reflect.Type) string {
	if t.Name() != "" && t.PkgPath() != "" {
		return t.PkgPath() + "." + t.Name()
	}
	switch t.Kind() {
	case reflect.Pointer:
		return "*" + qualifiedTypeName(t.Elem())
	case reflect.Slice:
		return "[]" + qualifiedTypeName(t.Elem())
	case reflect.Array:
		return fmt.Sprintf("[%d]%s", t.Len(), qualifiedTypeName(t.Elem()))
	case reflect.Map:
		return "map[" + qualifiedTypeName(t.Key()) + "]" + qualifiedTypeName(t.Elem())
	default:
		return t.String()
	}
}
