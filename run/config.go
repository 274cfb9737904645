package run

import (
	"fmt"

	"github.com/relex/slog-protocol/base"
	"github.com/relex/slog-protocol/base/bconfig"
	"github.com/relex/slog-protocol/base/bparse"
	"github.com/relex/slog-protocol/format"
	"github.com/relex/slog-protocol/format/formats"
	"github.com/relex/slog-protocol/format/ftext"
	"github.com/relex/slog-protocol/process"
	"github.com/relex/slog-protocol/protocol"
	"github.com/relex/slog-protocol/util"
)

// Config defines the root of configuration file
type Config struct {
	LevelLimit   *base.Level          `yaml:"levelLimit"` // default HIGHEST, i.e. no limit
	Filter       bparse.MatcherConfig `yaml:"filter"`     // default true()
	Messages     *process.Bundle      `yaml:"messages"`
	Propagations []PropagationConfig  `yaml:"propagations"`
	Output       format.ConfigHolder  `yaml:"output"` // default text
}

// PropagationConfig defines a tag propagation rule, see protocol.Protocol.Propagate
type PropagationConfig struct {
	Selector bparse.SelectorConfig `yaml:"selector"`
	Tags     []string              `yaml:"tags"`
}

func init() {
	formats.Register()
}

// LoadConfigFile loads config from the path and verifies it
func LoadConfigFile(filepath string) (*Config, error) {
	cref := &Config{}
	if err := util.UnmarshalYamlFile(filepath, cref); err != nil {
		return nil, err
	}
	if err := cref.VerifyConfig(); err != nil {
		return nil, fmt.Errorf("%s: %w", filepath, err)
	}
	return cref, nil
}

// VerifyConfig checks the configuration and fills defaults
func (cfg *Config) VerifyConfig() error {
	for i, prop := range cfg.Propagations {
		if !prop.Selector.IsDefined() {
			return fmt.Errorf("propagations[%d].selector is undefined", i)
		}
		if len(prop.Tags) == 0 {
			return fmt.Errorf("propagations[%d].tags is empty", i)
		}
	}
	if cfg.Messages == nil {
		cfg.Messages = process.EmptyBundle
	}
	if !cfg.Output.IsDefined() {
		cfg.Output.Value = &ftext.Config{Header: bconfig.Header{Type: "text"}}
	}
	return nil
}

// GetLevelLimit returns the level limit
func (cfg *Config) GetLevelLimit() base.Level {
	if cfg.LevelLimit == nil {
		return base.LevelHighest
	}
	return *cfg.LevelLimit
}

// ApplyPropagations adds the configured propagation rules to the protocol
func (cfg *Config) ApplyPropagations(p *protocol.Protocol) error {
	for i, prop := range cfg.Propagations {
		if err := p.Propagate(prop.Selector.Selector(), prop.Tags...); err != nil {
			return fmt.Errorf("propagations[%d]: %w", i, err)
		}
	}
	return nil
}
