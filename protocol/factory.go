// Package protocol collects leveled, tagged and parameterized messages in a tree of groups
package protocol

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/relex/gotils/logger"
	"github.com/relex/slog-protocol/base"
	"github.com/relex/slog-protocol/base/parammap"
	"github.com/relex/slog-protocol/defs"
	"github.com/relex/slog-protocol/process"
)

// Factory creates protocols sharing the same message processor and metrics
type Factory struct {
	logger         logger.Logger
	processor      *process.Processor
	messageCounter *prometheus.CounterVec
}

// NewFactory creates a Factory
func NewFactory(parentLogger logger.Logger, metricFactory *base.MetricFactory, processor *process.Processor) *Factory {
	return &Factory{
		logger:         parentLogger.WithField(defs.LabelComponent, "ProtocolFactory"),
		processor:      processor,
		messageCounter: metricFactory.AddOrGetCounterVec("protocol_messages_total", "Numbers of messages added to protocols", []string{"level"}, nil),
	}
}

// NewProtocol creates an empty root protocol
func (f *Factory) NewProtocol() *Protocol {
	return &Protocol{
		factory: f,
		params:  parammap.New(nil),
	}
}

// Processor returns the processor for message texts
func (f *Factory) Processor() *process.Processor {
	return f.processor
}

// MessageCounter returns the counter of added messages by level
func (f *Factory) MessageCounter() *prometheus.CounterVec {
	return f.messageCounter
}
