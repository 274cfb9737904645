// Package fmsgpack renders protocols as MessagePack documents, optionally compressed by gzip
package fmsgpack

import (
	"fmt"

	"github.com/klauspost/compress/gzip"
	"github.com/relex/gotils/logger"
	"github.com/relex/slog-protocol/base/bconfig"
	"github.com/relex/slog-protocol/defs"
	"github.com/relex/slog-protocol/format"
)

// Config configures the MessagePack formatter
type Config struct {
	bconfig.Header   `yaml:",inline"`
	Compress         bool `yaml:"compress"`
	CompressionLevel int  `yaml:"compressionLevel"` // gzip level, default BestSpeed
}

// NewFormatter creates a MessagePack formatter
func (cfg *Config) NewFormatter(parentLogger logger.Logger) format.Formatter {
	level := cfg.CompressionLevel
	if level == 0 {
		level = gzip.BestSpeed
	}
	return &Formatter{
		logger:           parentLogger.WithField(defs.LabelComponent, "MsgpackFormatter"),
		compress:         cfg.Compress,
		compressionLevel: level,
	}
}

// VerifyConfig checks the configuration
func (cfg *Config) VerifyConfig() error {
	if cfg.CompressionLevel != 0 && (cfg.CompressionLevel < gzip.HuffmanOnly || cfg.CompressionLevel > gzip.BestCompression) {
		return fmt.Errorf("invalid compressionLevel: %d", cfg.CompressionLevel)
	}
	if cfg.CompressionLevel != 0 && !cfg.Compress {
		return fmt.Errorf("compressionLevel requires compress: true")
	}
	return nil
}
