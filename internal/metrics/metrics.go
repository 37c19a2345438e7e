// Package metrics records run statistics in a private Prometheus registry
// and can dump them in the text exposition format for node_exporter's
// textfile collector.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "fractaljoke"

// Recorder owns the registry and the collectors of one run.
type Recorder struct {
	registry *prometheus.Registry

	fetchRequests    *prometheus.CounterVec
	fetchDuration    *prometheus.HistogramVec
	renderDuration   prometheus.Histogram
	renderIterations prometheus.Counter
	renderBounded    prometheus.Gauge
	runInfo          *prometheus.GaugeVec
}

// NewRecorder builds a registry for the run identified by runID.
func NewRecorder(runID, version string) *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		fetchRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "fetch_requests_total",
				Help:      "Joke requests by HTTP status code and method.",
			},
			[]string{"code", "method"},
		),
		fetchDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "fetch_request_duration_seconds",
				Help:      "Joke request latency in seconds.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"code", "method"},
		),
		renderDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "render_duration_seconds",
			Help:      "Time spent computing the escape-time pass.",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 12),
		}),
		renderIterations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "render_iterations_total",
			Help:      "Quadratic map iterations performed by the renderer.",
		}),
		renderBounded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "render_bounded_pixels",
			Help:      "Pixels that never left the escape radius.",
		}),
		runInfo: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "run_info",
			Help:      "Constant 1, labelled with the run identifier and build version.",
		}, []string{"run_id", "version"}),
	}

	r.registry.MustRegister(r.fetchRequests, r.fetchDuration, r.renderDuration,
		r.renderIterations, r.renderBounded, r.runInfo)
	r.registry.MustRegister(NewMemoryCollector().gauges()...)
	r.runInfo.WithLabelValues(runID, version).Set(1)
	return r
}

// InstrumentRoundTripper wraps next so each request is counted and timed.
// A nil next wraps http.DefaultTransport.
func (r *Recorder) InstrumentRoundTripper(next http.RoundTripper) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}
	return promhttp.InstrumentRoundTripperCounter(r.fetchRequests,
		promhttp.InstrumentRoundTripperDuration(r.fetchDuration, next))
}

// ObserveRender records one completed escape-time pass.
func (r *Recorder) ObserveRender(d time.Duration, iterations uint64, bounded int) {
	r.renderDuration.Observe(d.Seconds())
	r.renderIterations.Add(float64(iterations))
	r.renderBounded.Set(float64(bounded))
}

// WriteTextfile atomically writes every metric to path.
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}
