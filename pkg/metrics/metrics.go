package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "price_radar"

// Metrics holds the collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	gatherer prometheus.Gatherer

	adapterRequests *prometheus.CounterVec
	adapterDuration *prometheus.HistogramVec
	searches        *prometheus.CounterVec
	cacheFallbacks  *prometheus.CounterVec
	priceChanges    prometheus.Counter
	alertsTriggered prometheus.Counter
	refreshCycles   prometheus.Counter
}

func New(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		gatherer: reg,
		adapterRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "adapter_requests_total",
			Help:      "Marketplace adapter calls by outcome.",
		}, []string{"marketplace", "outcome"}),
		adapterDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "adapter_request_duration_seconds",
			Help:      "Marketplace adapter latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"marketplace"}),
		searches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "searches_total",
			Help:      "Searches by mode.",
		}, []string{"mode"}),
		cacheFallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_fallbacks_total",
			Help:      "Failed adapter calls served from the result cache.",
		}, []string{"marketplace"}),
		priceChanges: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "price_changes_total",
			Help:      "Catalog price changes applied by refresh cycles.",
		}),
		alertsTriggered: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "alerts_triggered_total",
			Help:      "Price alerts that fired.",
		}),
		refreshCycles: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "refresh_cycles_total",
			Help:      "Completed price refresh cycles.",
		}),
	}
	reg.MustRegister(
		m.adapterRequests,
		m.adapterDuration,
		m.searches,
		m.cacheFallbacks,
		m.priceChanges,
		m.alertsTriggered,
		m.refreshCycles,
	)
	return m
}

func (m *Metrics) ObserveAdapter(marketplace string, err error, elapsed time.Duration) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.adapterRequests.WithLabelValues(marketplace, outcome).Inc()
	m.adapterDuration.WithLabelValues(marketplace).Observe(elapsed.Seconds())
}

func (m *Metrics) Search(mode string) {
	if m == nil {
		return
	}
	m.searches.WithLabelValues(mode).Inc()
}

func (m *Metrics) CacheFallback(marketplace string) {
	if m == nil {
		return
	}
	m.cacheFallbacks.WithLabelValues(marketplace).Inc()
}

func (m *Metrics) RefreshCycle(priceChanges, alertsTriggered int) {
	if m == nil {
		return
	}
	m.refreshCycles.Inc()
	m.priceChanges.Add(float64(priceChanges))
	m.alertsTriggered.Add(float64(alertsTriggered))
}

func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
