package run

import (
	"io"

	"github.com/relex/gotils/logger"
	"github.com/relex/slog-protocol/base"
	"github.com/relex/slog-protocol/base/bparse"
	"github.com/relex/slog-protocol/defs"
	"github.com/relex/slog-protocol/format"
	"github.com/relex/slog-protocol/process"
	"github.com/relex/slog-protocol/protocol"
)

// Loader loads configuration from file and prepares the factory and formatter to render protocols
type Loader struct {
	*Config
	MetricFactory *base.MetricFactory
	Factory       *protocol.Factory
	Formatter     format.Formatter
	Expressions   *bparse.Cache // selectors of documents
}

// NewLoaderFromConfigFile loads configuration and creates a Loader with metrics registered by the given prefix
func NewLoaderFromConfigFile(filepath string, metricPrefix string) (*Loader, error) {
	config, err := LoadConfigFile(filepath)
	if err != nil {
		return nil, err
	}
	return NewLoader(config, base.NewMetricFactory(metricPrefix, nil, nil)), nil
}

// NewLoader creates a Loader from verified config
func NewLoader(config *Config, metricFactory *base.MetricFactory) *Loader {
	llogger := logger.WithField(defs.LabelComponent, "Loader")
	llogger.Infof("loaded %d messages, output: %s", config.Messages.Len(), config.Output.Value.GetType())
	return &Loader{
		Config:        config,
		MetricFactory: metricFactory,
		Factory:       protocol.NewFactory(logger.Root(), metricFactory, process.NewProcessor(logger.Root(), config.Messages)),
		Formatter:     config.Output.Value.NewFormatter(logger.Root()),
		Expressions:   bparse.NewCache(logger.Root(), metricFactory.NewSubFactory("", []string{defs.LabelPart}, []string{"document"})),
	}
}

// NewProtocol creates a protocol with the configured propagation rules
func (loader *Loader) NewProtocol() (*protocol.Protocol, error) {
	p := loader.Factory.NewProtocol()
	if err := loader.ApplyPropagations(p); err != nil {
		return nil, err
	}
	return p, nil
}

// LoadDocumentFile loads a protocol document into a new protocol
func (loader *Loader) LoadDocumentFile(filepath string) (*protocol.Protocol, error) {
	doc, err := LoadDocumentFile(filepath)
	if err != nil {
		return nil, err
	}
	p, err := loader.NewProtocol()
	if err != nil {
		return nil, err
	}
	if err := doc.Build(p, loader.Expressions); err != nil {
		return nil, err
	}
	return p, nil
}

// Render writes the protocol with the configured level limit, filter and output
func (loader *Loader) Render(writer io.Writer, p *protocol.Protocol) error {
	return loader.Formatter.Format(writer, p, loader.GetLevelLimit(), loader.Filter.Matcher())
}
