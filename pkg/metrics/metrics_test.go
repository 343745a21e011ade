package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Record(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveAdapter("flipkart", nil, 20*time.Millisecond)
	m.ObserveAdapter("flipkart", errors.New("boom"), 5*time.Millisecond)
	m.RefreshCycle(3, 1)
	m.CacheFallback("amazon")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.adapterRequests.WithLabelValues("flipkart", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.adapterRequests.WithLabelValues("flipkart", "error")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.priceChanges))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.alertsTriggered))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.cacheFallbacks.WithLabelValues("amazon")))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveAdapter("amazon", nil, time.Second)
		m.Search("all")
		m.RefreshCycle(1, 1)
	})
}

func TestMetrics_Handler(t *testing.T) {
	m := New(prometheus.NewRegistry())
	m.Search("all")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `price_radar_searches_total{mode="all"} 1`)
}
