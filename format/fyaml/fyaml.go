// Package fyaml renders protocols as YAML documents
package fyaml

import (
	"io"

	"github.com/relex/gotils/logger"
	"github.com/relex/slog-protocol/base"
	"github.com/relex/slog-protocol/base/bconfig"
	"github.com/relex/slog-protocol/base/bmatch"
	"github.com/relex/slog-protocol/defs"
	"github.com/relex/slog-protocol/format"
	"github.com/relex/slog-protocol/protocol"
	"github.com/relex/slog-protocol/util"
)

// Config configures the YAML formatter
type Config struct {
	bconfig.Header `yaml:",inline"`
}

// NewFormatter creates a YAML formatter
func (cfg *Config) NewFormatter(parentLogger logger.Logger) format.Formatter {
	return &Formatter{
		logger: parentLogger.WithField(defs.LabelComponent, "YamlFormatter"),
	}
}

// VerifyConfig checks the configuration
func (cfg *Config) VerifyConfig() error {
	return nil
}

// Formatter writes format.Document as YAML
type Formatter struct {
	logger logger.Logger
}

// Format writes the visible contents of the protocol
func (f *Formatter) Format(writer io.Writer, source *protocol.Protocol, levelLimit base.Level, matcher *bmatch.Matcher) error {
	doc, err := format.NewDocument(source, levelLimit, matcher)
	if err != nil {
		return err
	}
	f.logger.Debugf("encoding %d entries", len(doc.Entries))
	return util.EncodeYaml(writer, doc)
}
