package inkwell

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts what the UI loop does. A nil *Metrics is valid and records
// nothing.
type Metrics struct {
	EventsDispatched prometheus.Counter
	Refreshes        *prometheus.CounterVec
	RefreshErrors    *prometheus.CounterVec
	WaitErrors       prometheus.Counter
	MergedRects      prometheus.Histogram
	InFlight         prometheus.Gauge
	WaitSeconds      prometheus.Histogram
}

// NewMetrics creates the UI metrics and registers them on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		EventsDispatched: f.NewCounter(prometheus.CounterOpts{
			Namespace: "inkwell",
			Name:      "events_dispatched_total",
			Help:      "Events delivered to the view tree.",
		}),
		Refreshes: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "inkwell",
			Name:      "refreshes_total",
			Help:      "Panel refreshes accepted by the display driver.",
		}, []string{"mode"}),
		RefreshErrors: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "inkwell",
			Name:      "refresh_errors_total",
			Help:      "Panel refreshes rejected by the display driver.",
		}, []string{"mode"}),
		WaitErrors: f.NewCounter(prometheus.CounterOpts{
			Namespace: "inkwell",
			Name:      "wait_errors_total",
			Help:      "Waits on in-flight refreshes that returned an error.",
		}),
		MergedRects: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: "inkwell",
			Name:      "merged_rects",
			Help:      "Regions refreshed per render queue group after merging.",
			Buckets:   []float64{0, 1, 2, 4, 8, 16},
		}),
		InFlight: f.NewGauge(prometheus.GaugeOpts{
			Namespace: "inkwell",
			Name:      "refreshes_in_flight",
			Help:      "Refreshes issued and not yet waited on.",
		}),
		WaitSeconds: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: "inkwell",
			Name:      "wait_seconds",
			Help:      "Time spent blocked on in-flight refreshes.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 7),
		}),
	}
}

func (m *Metrics) dispatched() {
	if m == nil {
		return
	}
	m.EventsDispatched.Inc()
}

func (m *Metrics) refreshed(mode UpdateMode) {
	if m == nil {
		return
	}
	m.Refreshes.WithLabelValues(mode.String()).Inc()
}

func (m *Metrics) refreshError(mode UpdateMode) {
	if m == nil {
		return
	}
	m.RefreshErrors.WithLabelValues(mode.String()).Inc()
}

func (m *Metrics) waitError() {
	if m == nil {
		return
	}
	m.WaitErrors.Inc()
}

func (m *Metrics) observeMerged(n int) {
	if m == nil {
		return
	}
	m.MergedRects.Observe(float64(n))
}

func (m *Metrics) observeWait(d time.Duration) {
	if m == nil {
		return
	}
	m.WaitSeconds.Observe(d.Seconds())
}

func (m *Metrics) setInFlight(n int) {
	if m == nil {
		return
	}
	m.InFlight.Set(float64(n))
}
