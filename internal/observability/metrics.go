// Package observability reports the exrate command's Prometheus metrics
// through its structured logger.
package observability

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
)

// LogMetrics writes one log line per collected sample of g. Counters and
// gauges carry their value, histograms their sample count and sum.
func LogMetrics(logger *slog.Logger, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			attrs := []any{"name", mf.GetName()}
			for _, lp := range m.GetLabel() {
				attrs = append(attrs, lp.GetName(), lp.GetValue())
			}
			switch {
			case m.GetCounter() != nil:
				attrs = append(attrs, "value", m.GetCounter().GetValue())
			case m.GetGauge() != nil:
				attrs = append(attrs, "value", m.GetGauge().GetValue())
			case m.GetHistogram() != nil:
				attrs = append(attrs, "count", m.GetHistogram().GetSampleCount(), "sum", m.GetHistogram().GetSampleSum())
			}
			logger.Info("metric", attrs...)
		}
	}

	return nil
}
