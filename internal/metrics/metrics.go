// Package metrics exposes the pipeline's data-quality counters. Malformed
// rows and unknown devices are not errors, but they are the first thing to
// look at when a chart goes flat.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry *prometheus.Registry

	pollCycles      *prometheus.CounterVec
	feedFailures    *prometheus.CounterVec
	rowsParsed      prometheus.Counter
	rowsDropped     prometheus.Counter
	malformedFields prometheus.Counter
	unknownDevices  prometheus.Counter
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		pollCycles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "air_poll_cycles_total",
			Help: "Total poll cycles by outcome (success, degraded, failure).",
		}, []string{"outcome"}),
		feedFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "air_feed_failures_total",
			Help: "Total fetch failures by feed.",
		}, []string{"feed"}),
		rowsParsed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "air_rows_parsed_total",
			Help: "Total CSV data rows seen across all fetches.",
		}),
		rowsDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "air_rows_dropped_total",
			Help: "Total rows dropped for unparsable date or time.",
		}),
		malformedFields: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "air_malformed_fields_total",
			Help: "Total numeric fields that failed to parse.",
		}),
		unknownDevices: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "air_unknown_devices_total",
			Help: "Total rows whose device id matched no known station.",
		}),
	}

	m.registry.MustRegister(
		m.pollCycles,
		m.feedFailures,
		m.rowsParsed,
		m.rowsDropped,
		m.malformedFields,
		m.unknownDevices,
	)
	return m
}

func (m *Metrics) ObserveCycle(outcome string) {
	m.pollCycles.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveFeedFailure(feed string) {
	m.feedFailures.WithLabelValues(feed).Inc()
}

func (m *Metrics) ObserveParse(rows, dropped, malformed, unknown int) {
	m.rowsParsed.Add(float64(rows))
	m.rowsDropped.Add(float64(dropped))
	m.malformedFields.Add(float64(malformed))
	m.unknownDevices.Add(float64(unknown))
}

// Handler serves the registry for scraping at /metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
