// Package format defines formatters which render protocols as seen through a level limit and a matcher
package format

import (
	"io"

	"github.com/relex/gotils/logger"
	"github.com/relex/slog-protocol/base"
	"github.com/relex/slog-protocol/base/bconfig"
	"github.com/relex/slog-protocol/base/bmatch"
	"github.com/relex/slog-protocol/protocol"
)

// Formatter renders the visible contents of a protocol
type Formatter interface {
	Format(writer io.Writer, source *protocol.Protocol, levelLimit base.Level, matcher *bmatch.Matcher) error
}

// Config provides an interface for the configuration of Formatter(s)
//
// All the implementations should support YAML unmarshalling
type Config interface {
	bconfig.BaseConfig

	NewFormatter(parentLogger logger.Logger) Formatter
}

// ConfigHolder holds Config
type ConfigHolder = bconfig.ConfigHolder[Config]

// ConfigCreatorTable defines the table of constructors for Config implementations
type ConfigCreatorTable = bconfig.ConfigCreatorTable[Config]
