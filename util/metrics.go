package util

import (
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/relex/gotils/logger"
)

// SumMetricValues sums all the values of a given Prometheus Collector (GaugeVec or CounterVec)
func SumMetricValues(c prometheus.Collector) float64 {
	mChan := make(chan prometheus.Metric)
	go func() {
		c.Collect(mChan)
		close(mChan)
	}()

	sum := 0.0
	for m := range mChan {
		pb := &dto.Metric{}
		if err := m.Write(pb); err != nil {
			logger.Errorf("failed to read metric '%s': %s", m.Desc(), err.Error())
			continue
		}
		switch {
		case pb.Gauge != nil:
			sum += pb.Gauge.GetValue()
		case pb.Counter != nil:
			sum += pb.Counter.GetValue()
		case pb.Untyped != nil:
			sum += pb.Untyped.GetValue()
		}
	}
	return sum
}

// WriteMetricsFile writes all metrics of the default registry in Prometheus text format
func WriteMetricsFile(path string) error {
	return prometheus.WriteToTextfile(path, prometheus.DefaultGatherer)
}
