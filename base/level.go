package base

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/relex/slog-protocol/defs"
	"github.com/relex/slog-protocol/util"
	"gopkg.in/yaml.v3"
)

// Level is the severity of a message
//
// Levels are ordered by severity only; two levels of the same severity are considered equal regardless of names.
// Use CompareLevels and MinLevel instead of the == operator.
type Level struct {
	name     string
	severity int
}

// Standard levels
var (
	LevelLowest  = Level{"LOWEST", defs.SeverityLowest}
	LevelTrace   = Level{defs.LevelNameTrace, defs.SeverityTrace}
	LevelDebug   = Level{defs.LevelNameDebug, defs.SeverityDebug}
	LevelInfo    = Level{defs.LevelNameInfo, defs.SeverityInfo}
	LevelWarn    = Level{defs.LevelNameWarn, defs.SeverityWarn}
	LevelError   = Level{defs.LevelNameError, defs.SeverityError}
	LevelHighest = Level{"HIGHEST", defs.SeverityHighest}
)

var standardLevels = []Level{LevelLowest, LevelTrace, LevelDebug, LevelInfo, LevelWarn, LevelError, LevelHighest}

// NewLevel creates a custom level
func NewLevel(name string, severity int) Level {
	return Level{name, severity}
}

// Name returns the symbolic name, which may be empty for levels created from plain severities
func (l Level) Name() string {
	return l.name
}

// Severity returns the severity by which levels are ordered
func (l Level) Severity() int {
	return l.severity
}

func (l Level) String() string {
	if l.name == "" {
		return strconv.Itoa(l.severity)
	}
	return l.name
}

// MarshalYAML exports the level by its name or severity
func (l Level) MarshalYAML() (interface{}, error) {
	return l.String(), nil
}

// UnmarshalYAML parses level from name or severity
func (l *Level) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return util.NewYamlError(value, "level must be a scalar")
	}
	parsed, err := ParseLevel(value.Value)
	if err != nil {
		return util.NewYamlError(value, err.Error())
	}
	*l = parsed
	return nil
}

// CompareLevels compares two levels by severity, returning -1, 0 or +1
func CompareLevels(a Level, b Level) int {
	switch {
	case a.severity < b.severity:
		return -1
	case a.severity > b.severity:
		return 1
	default:
		return 0
	}
}

// MinLevel returns the level of lower severity, or a if both are equal
func MinLevel(a Level, b Level) Level {
	if b.severity < a.severity {
		return b
	}
	return a
}

// ParseLevel parses a standard level name (case-insensitive) or an integer severity
func ParseLevel(text string) (Level, error) {
	if severity, err := strconv.Atoi(text); err == nil {
		for _, l := range standardLevels {
			if l.severity == severity {
				return l, nil
			}
		}
		return Level{"", severity}, nil
	}
	for _, l := range standardLevels {
		if strings.EqualFold(l.name, text) {
			return l, nil
		}
	}
	return Level{}, fmt.Errorf("unknown level '%s'", text)
}
