// Package metrics exposes Prometheus instrumentation for analysis runs.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"SignalScope/internal/model"
)

// Metrics holds all Prometheus metrics for the analysis pipeline.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	AnalysesTotal       prometheus.Counter
	AnalysisErrors      prometheus.Counter
	AnalysisDur         prometheus.Histogram
	IndicatorComputeDur *prometheus.HistogramVec // labels: indicator
	SignalsTotal        *prometheus.CounterVec   // labels: side
	BarsAnalysed        prometheus.Gauge
	FetchErrors         *prometheus.CounterVec // labels: source
	CacheHits           prometheus.Counter
	CacheMisses         prometheus.Counter
}

// NewMetrics creates the metrics and registers them on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		AnalysesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "signalscope_analyses_total",
			Help: "Total completed analysis runs",
		}),
		AnalysisErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "signalscope_analysis_errors_total",
			Help: "Total analysis runs that failed",
		}),
		AnalysisDur: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "signalscope_analysis_duration_seconds",
			Help:    "Wall time of a full fetch-and-analyse run",
			Buckets: prometheus.DefBuckets,
		}),
		IndicatorComputeDur: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "signalscope_indicator_compute_duration_seconds",
			Help:    "Time spent computing one indicator kind",
			Buckets: []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05},
		}, []string{"indicator"}),
		SignalsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "signalscope_latest_signals_total",
			Help: "Signals present on the most recent bar of a run",
		}, []string{"side"}),
		BarsAnalysed: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "signalscope_bars_analysed",
			Help: "Number of bars in the most recent run",
		}),
		FetchErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "signalscope_fetch_errors_total",
			Help: "Price history fetch failures",
		}, []string{"source"}),
		CacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "signalscope_cache_hits_total",
			Help: "Price history requests served from the local cache",
		}),
		CacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "signalscope_cache_misses_total",
			Help: "Price history requests forwarded upstream",
		}),
	}

	reg.MustRegister(
		m.AnalysesTotal,
		m.AnalysisErrors,
		m.AnalysisDur,
		m.IndicatorComputeDur,
		m.SignalsTotal,
		m.BarsAnalysed,
		m.FetchErrors,
		m.CacheHits,
		m.CacheMisses,
	)
	return m
}

// Handler serves the metrics gathered by g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

// ObserveIndicator records the compute time of one indicator kind.
func (m *Metrics) ObserveIndicator(indicator string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.IndicatorComputeDur.WithLabelValues(indicator).Observe(elapsed.Seconds())
}

// RecordRun records a completed run.
func (m *Metrics) RecordRun(run *model.AnalysisRun) {
	if m == nil {
		return
	}
	m.AnalysesTotal.Inc()
	m.AnalysisDur.Observe(run.Elapsed.Seconds())
	m.BarsAnalysed.Set(float64(len(run.Analysis.Rows)))
	if latest, ok := run.Analysis.Latest(); ok {
		if latest.Buy {
			m.SignalsTotal.WithLabelValues("buy").Inc()
		}
		if latest.Sell {
			m.SignalsTotal.WithLabelValues("sell").Inc()
		}
	}
}

// RecordFailure records a failed run; source is set when the fetch itself failed.
func (m *Metrics) RecordFailure(source string) {
	if m == nil {
		return
	}
	m.AnalysisErrors.Inc()
	if source != "" {
		m.FetchErrors.WithLabelValues(source).Inc()
	}
}

// CacheHit records a request served from the local price cache.
func (m *Metrics) CacheHit() {
	if m == nil {
		return
	}
	m.CacheHits.Inc()
}

// CacheMiss records a request forwarded to the upstream source.
func (m *Metrics) CacheMiss() {
	if m == nil {
		return
	}
	m.CacheMisses.Inc()
}
