// Package telemetry provides Prometheus metrics and OpenTelemetry tracing
// for the FIR extraction service.
package telemetry

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/dharma-project/fir-extractor/internal/domain"
)

const serviceName = "fir-extractor"

// Metrics holds all service Prometheus metrics.
type Metrics struct {
	// Pipeline metrics
	ExtractionsTotal   *prometheus.CounterVec
	ExtractionDuration prometheus.Histogram
	BatchSize          prometheus.Histogram

	// Detection metrics
	OffencesDetected *prometheus.CounterVec
	KeywordHits      prometheus.Counter
	EmptyRecords     prometheus.Counter

	// Store metrics
	RecordsAppended prometheus.Counter
	AppendFailures  prometheus.Counter
}

// Provider wraps telemetry providers.
type Provider struct {
	Tracer  trace.Tracer
	Metrics *Metrics
}

// NewProvider initializes telemetry with Prometheus metrics.
// Metrics register against promauto's global registry; construct one
// provider per process.
func NewProvider() *Provider {
	return &Provider{
		Tracer:  otel.Tracer(serviceName),
		Metrics: initMetrics(),
	}
}

// Handler returns the Prometheus HTTP handler for the /metrics endpoint.
func (p *Provider) Handler() http.Handler {
	return promhttp.Handler()
}

func initMetrics() *Metrics {
	m := &Metrics{}
	initPipelineMetrics(m)
	initDetectionMetrics(m)
	initStoreMetrics(m)
	return m
}

func initPipelineMetrics(m *Metrics) {
	m.ExtractionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fir_extractions_total",
		Help: "Total extraction runs by input source (api, file, batch, cli)",
	}, []string{"input"})

	m.ExtractionDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "fir_extraction_duration_seconds",
		Help:    "Time to extract one FIR record",
		Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
	})

	m.BatchSize = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "fir_batch_size",
		Help:    "Number of texts per batch extraction",
		Buckets: []float64{1, 5, 10, 25, 50, 100},
	})
}

func initDetectionMetrics(m *Metrics) {
	m.OffencesDetected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fir_offences_detected_total",
		Help: "Total offence tags detected, by tag",
	}, []string{"offence"})

	m.KeywordHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fir_keyword_hits_total",
		Help: "Total trigger keywords found by the automaton",
	})

	m.EmptyRecords = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fir_empty_records_total",
		Help: "Extractions where no field pattern matched at all",
	})
}

func initStoreMetrics(m *Metrics) {
	m.RecordsAppended = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fir_records_appended_total",
		Help: "Records appended to the persistent store",
	})

	m.AppendFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fir_record_append_failures_total",
		Help: "Failed store appends",
	})
}

// RecordExtraction records metrics for a single extraction run.
func (p *Provider) RecordExtraction(ctx context.Context, input string, duration time.Duration, keywordHits int, offences []domain.OffenceTag) {
	p.Metrics.ExtractionsTotal.WithLabelValues(input).Inc()
	p.Metrics.ExtractionDuration.Observe(duration.Seconds())
	p.Metrics.KeywordHits.Add(float64(keywordHits))
	for _, tag := range offences {
		p.Metrics.OffencesDetected.WithLabelValues(string(tag)).Inc()
	}
}

// RecordEmpty counts an extraction that produced an all-default record.
func (p *Provider) RecordEmpty(ctx context.Context) {
	p.Metrics.EmptyRecords.Inc()
}

// RecordBatch records the size of a batch extraction.
func (p *Provider) RecordBatch(ctx context.Context, size int) {
	p.Metrics.BatchSize.Observe(float64(size))
}

// RecordAppend records the outcome of a store append.
func (p *Provider) RecordAppend(ctx context.Context, err error) {
	if err != nil {
		p.Metrics.AppendFailures.Inc()
		return
	}
	p.Metrics.RecordsAppended.Inc()
}
