// Package ftext renders protocols as indented plain text
package ftext

import (
	"fmt"

	"github.com/c2h5oh/datasize"
	"github.com/relex/gotils/logger"
	"github.com/relex/slog-protocol/base/bconfig"
	"github.com/relex/slog-protocol/defs"
	"github.com/relex/slog-protocol/format"
)

// Config configures the text formatter
type Config struct {
	bconfig.Header `yaml:",inline"`
	Indent         string            `yaml:"indent"`       // indentation per group level, default two spaces
	MaxValueSize   datasize.ByteSize `yaml:"maxValueSize"` // truncate longer param values, 0 for no limit
	ShowTags       bool              `yaml:"showTags"`
	HideParams     bool              `yaml:"hideParams"`
}

// NewFormatter creates a text formatter
func (cfg *Config) NewFormatter(parentLogger logger.Logger) format.Formatter {
	indent := cfg.Indent
	if indent == "" {
		indent = defs.TextIndent
	}
	maxValueSize := int(cfg.MaxValueSize.Bytes())
	if maxValueSize == 0 {
		maxValueSize = defs.TextMaxValueSize
	}
	return &Formatter{
		logger:       parentLogger.WithField(defs.LabelComponent, "TextFormatter"),
		indent:       indent,
		maxValueSize: maxValueSize,
		showTags:     cfg.ShowTags,
		showParams:   !cfg.HideParams,
	}
}

// VerifyConfig checks the configuration
func (cfg *Config) VerifyConfig() error {
	if cfg.MaxValueSize > 0 && cfg.MaxValueSize < 4*datasize.B {
		return fmt.Errorf("maxValueSize must be at least 4 bytes: %s", cfg.MaxValueSize.HR())
	}
	return nil
}
