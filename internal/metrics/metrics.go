package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics exposes Prometheus observability primitives for the pipeline.
type Metrics struct {
	registry *prometheus.Registry

	readingsIngested    prometheus.Counter
	recordsProcessed    prometheus.Counter
	recordsAcked        prometheus.Counter
	transformFailures   prometheus.Counter
	queryDecodeFailures prometheus.Counter
}

// NewMetrics registers and returns Prometheus metrics on a private registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	readingsIngested := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "gridstream_readings_ingested_total",
		Help: "Readings accepted by the producer endpoint and appended to the log.",
	})

	recordsProcessed := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "gridstream_consumer_records_processed_total",
		Help: "Log records claimed and run through the consumer transform.",
	})

	recordsAcked := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "gridstream_consumer_records_acked_total",
		Help: "Log records acknowledged against the consumer group.",
	})

	transformFailures := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "gridstream_consumer_transform_failures_total",
		Help: "Claimed records that could not be reconstructed into a stored reading.",
	})

	queryDecodeFailures := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "gridstream_query_decode_failures_total",
		Help: "Stored values skipped by the query endpoint because they failed to decode.",
	})

	registry.MustRegister(
		readingsIngested,
		recordsProcessed,
		recordsAcked,
		transformFailures,
		queryDecodeFailures,
	)

	return &Metrics{
		registry:            registry,
		readingsIngested:    readingsIngested,
		recordsProcessed:    recordsProcessed,
		recordsAcked:        recordsAcked,
		transformFailures:   transformFailures,
		queryDecodeFailures: queryDecodeFailures,
	}
}

func (m *Metrics) IncReadingsIngested() {
	if m == nil {
		return
	}
	m.readingsIngested.Inc()
}

func (m *Metrics) IncRecordsProcessed() {
	if m == nil {
		return
	}
	m.recordsProcessed.Inc()
}

func (m *Metrics) IncRecordsAcked() {
	if m == nil {
		return
	}
	m.recordsAcked.Inc()
}

func (m *Metrics) IncTransformFailures() {
	if m == nil {
		return
	}
	m.transformFailures.Inc()
}

func (m *Metrics) IncQueryDecodeFailures() {
	if m == nil {
		return
	}
	m.queryDecodeFailures.Inc()
}

// Handler serves the registry for the /metrics route.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
