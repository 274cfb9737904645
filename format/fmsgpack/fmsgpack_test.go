package fmsgpack

import (
	"bytes"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/relex/gotils/logger"
	"github.com/relex/slog-protocol/base"
	"github.com/relex/slog-protocol/base/bmatch"
	"github.com/relex/slog-protocol/process"
	"github.com/relex/slog-protocol/protocol"
	"github.com/stretchr/testify/assert"
)

func newTestProtocol() *protocol.Protocol {
	metricFactory := base.NewMetricFactoryWithRegisterer(prometheus.NewRegistry(), "test_", nil, nil)
	factory := protocol.NewFactory(logger.Root(), metricFactory, process.NewProcessor(logger.Root(), nil))
	p := factory.NewProtocol()
	_, _ = p.Info().WithTags("boot").Message("started")
	group := p.Group().SetHeader("shutdown")
	_, _ = group.Warn().WithParam("pid", "42").Message("killing $pid")
	return p
}

func TestMsgpackFormatter(t *testing.T) {
	for _, compress := range []bool{false, true} {
		cfg := &Config{Compress: compress}
		assert.Nil(t, cfg.VerifyConfig())
		buf := &bytes.Buffer{}
		assert.Nil(t, cfg.NewFormatter(logger.Root()).Format(buf, newTestProtocol(), base.LevelHighest, bmatch.Any()))
		if compress {
			assert.Equal(t, []byte{0x1f, 0x8b}, buf.Bytes()[:2])
		}

		doc, err := Decode(buf, compress)
		assert.Nil(t, err)
		assert.Equal(t, "true()", doc.Filter)
		if assert.Len(t, doc.Entries, 2) {
			assert.Equal(t, "started", doc.Entries[0].Text)
			assert.Equal(t, []string{"boot"}, doc.Entries[0].Tags)
			assert.Equal(t, "shutdown", doc.Entries[1].Text)
			if assert.Len(t, doc.Entries[1].Entries, 1) {
				assert.Equal(t, "killing 42", doc.Entries[1].Entries[0].Text)
				assert.Equal(t, "WARN", doc.Entries[1].Entries[0].Level)
				assert.Equal(t, map[string]interface{}{"pid": "42"}, doc.Entries[1].Entries[0].Params)
			}
		}
	}
}

func TestMsgpackConfig(t *testing.T) {
	assert.Error(t, (&Config{CompressionLevel: 5}).VerifyConfig())
	assert.Error(t, (&Config{Compress: true, CompressionLevel: 42}).VerifyConfig())
	assert.Nil(t, (&Config{Compress: true, CompressionLevel: 9}).VerifyConfig())
}
