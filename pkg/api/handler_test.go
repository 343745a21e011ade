package api

import (
	"context"
	"encoding/json"
	"io"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"price-radar/pkg/adapters"
	"price-radar/pkg/alerts"
	"price-radar/pkg/catalog"
	"price-radar/pkg/clock"
	"price-radar/pkg/deals"
	"price-radar/pkg/metrics"
	"price-radar/pkg/models"
	"price-radar/pkg/search"
	"price-radar/pkg/stats"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

type stubRefresher struct {
	calls int
}

func (s *stubRefresher) Cycle(context.Context) alerts.CycleReport {
	s.calls++
	return alerts.CycleReport{PricesChanged: 2, AlertsTriggered: 1}
}

func newTestServer(t *testing.T) (*httptest.Server, *catalog.MemoryStore, *stubRefresher) {
	t.Helper()
	store := catalog.NewSeededStore(now)
	clk := clock.NewFake(now)
	m := metrics.New(prometheus.NewRegistry())
	registry := adapters.NewRegistry()
	refresher := &stubRefresher{}

	h := NewHandler(Deps{
		Search:    search.NewAggregator(registry, store, search.Options{Metrics: m}),
		Catalog:   catalog.NewService(store, clk, rand.New(rand.NewSource(1))),
		Deals:     deals.NewService(store, clk),
		Alerts:    alerts.NewService(store, clk),
		Stats:     stats.NewService(store, clk),
		Registry:  registry,
		Refresher: refresher,
		Metrics:   m,
	})
	ts := httptest.NewServer(NewRouter(h))
	t.Cleanup(ts.Close)
	return ts, store, refresher
}

func do(t *testing.T, method, url, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func TestProblemResponses(t *testing.T) {
	ts, _, _ := newTestServer(t)

	tests := []struct {
		name           string
		method         string
		path           string
		body           string
		expectedStatus int
		expectedDetail string
	}{
		{
			name:           "Unknown product",
			method:         http.MethodGet,
			path:           "/api/v1/products/999",
			expectedStatus: http.StatusNotFound,
			expectedDetail: "product not found",
		},
		{
			name:           "Malformed price filter",
			method:         http.MethodGet,
			path:           "/api/v1/products/search?q=phone&minPrice=cheap",
			expectedStatus: http.StatusBadRequest,
			expectedDetail: "minPrice",
		},
		{
			name:           "Rating out of range",
			method:         http.MethodGet,
			path:           "/api/v1/products/advanced-search?q=phone&minRating=7",
			expectedStatus: http.StatusBadRequest,
			expectedDetail: "minRating",
		},
		{
			name:           "Alert for unknown product",
			method:         http.MethodPost,
			path:           "/api/v1/alerts",
			body:           `{"productId":"999","targetPrice":100,"userId":"u1"}`,
			expectedStatus: http.StatusNotFound,
			expectedDetail: "product not found",
		},
		{
			name:           "Alert with zero target",
			method:         http.MethodPost,
			path:           "/api/v1/alerts",
			body:           `{"productId":"1","targetPrice":0,"userId":"u1"}`,
			expectedStatus: http.StatusBadRequest,
			expectedDetail: "target price",
		},
		{
			name:           "Alert with bad JSON",
			method:         http.MethodPost,
			path:           "/api/v1/alerts",
			body:           `{"productId":`,
			expectedStatus: http.StatusBadRequest,
			expectedDetail: "Invalid JSON body",
		},
		{
			name:           "Delete unknown alert",
			method:         http.MethodDelete,
			path:           "/api/v1/alerts/nope",
			expectedStatus: http.StatusNotFound,
			expectedDetail: "price alert not found",
		},
		{
			name:           "Products without ids",
			method:         http.MethodGet,
			path:           "/api/v1/products",
			expectedStatus: http.StatusBadRequest,
			expectedDetail: "ids",
		},
		{
			name:           "Unknown route",
			method:         http.MethodGet,
			path:           "/api/v1/nothing",
			expectedStatus: http.StatusNotFound,
			expectedDetail: "no route",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := do(t, tt.method, ts.URL+tt.path, tt.body)

			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
			assert.Equal(t, "application/problem+json", resp.Header.Get("Content-Type"))

			pd := decode[ProblemDetails](t, resp)
			assert.Equal(t, tt.expectedStatus, pd.Status)
			assert.Equal(t, "about:blank", pd.Type)
			assert.Contains(t, pd.Detail, tt.expectedDetail)
		})
	}
}

func TestSearchEndpoint(t *testing.T) {
	ts, _, _ := newTestServer(t)

	resp := do(t, http.MethodGet, ts.URL+"/api/v1/products/search?q=iPhone&platform=flipkart&minRating=4", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	products := decode[[]models.Product](t, resp)
	require.Len(t, products, 1)
	assert.Equal(t, "1", products[0].ID)

	resp = do(t, http.MethodGet, ts.URL+"/api/v1/products/search?q=", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, decode[[]models.Product](t, resp))
}

func TestAdvancedSearchEndpoint(t *testing.T) {
	ts, _, _ := newTestServer(t)

	resp := do(t, http.MethodGet, ts.URL+"/api/v1/products/advanced-search?q=a&category=electronics&inStockOnly=true&sortBy=price-low", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	products := decode[[]models.Product](t, resp)
	require.NotEmpty(t, products)
	for i, p := range products {
		assert.True(t, p.InStock)
		if i > 0 {
			assert.LessOrEqual(t, products[i-1].Price, p.Price)
		}
	}
}

func TestProductEndpoints(t *testing.T) {
	ts, _, _ := newTestServer(t)

	resp := do(t, http.MethodGet, ts.URL+"/api/v1/products/5", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Nike", decode[models.Product](t, resp).Brand)

	resp = do(t, http.MethodGet, ts.URL+"/api/v1/products?ids=2,8", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode[[]models.Product](t, resp), 2)

	resp = do(t, http.MethodGet, ts.URL+"/api/v1/products/3/history", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode[[]models.PriceHistoryPoint](t, resp), 31)
}

func TestBulkUpdatePrices(t *testing.T) {
	ts, store, _ := newTestServer(t)

	resp := do(t, http.MethodPost, ts.URL+"/api/v1/products/prices", `[{"productId":"1","newPrice":120000},{"productId":"x","newPrice":5}]`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, map[string]int{"updated": 1}, decode[map[string]int](t, resp))

	p, _ := store.Product("1")
	assert.Equal(t, int64(120000), p.Price)
}

func TestAlertLifecycle(t *testing.T) {
	ts, _, _ := newTestServer(t)

	resp := do(t, http.MethodPost, ts.URL+"/api/v1/alerts", `{"productId":"3","targetPrice":18000,"userId":"u1"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[models.PriceAlert](t, resp)
	assert.Equal(t, int64(19990), created.CurrentPrice)

	resp = do(t, http.MethodGet, ts.URL+"/api/v1/alerts?userId=u1", "")
	assert.Len(t, decode[[]models.PriceAlert](t, resp), 1)

	resp = do(t, http.MethodPost, ts.URL+"/api/v1/alerts/"+created.ID+"/deactivate", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.False(t, decode[models.PriceAlert](t, resp).IsActive)

	resp = do(t, http.MethodDelete, ts.URL+"/api/v1/alerts/"+created.ID, "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = do(t, http.MethodGet, ts.URL+"/api/v1/alerts?userId=u1", "")
	assert.Empty(t, decode[[]models.PriceAlert](t, resp))
}

func TestDealsAndStats(t *testing.T) {
	ts, _, _ := newTestServer(t)

	resp := do(t, http.MethodGet, ts.URL+"/api/v1/deals?category=electronics", "")
	assert.Len(t, decode[[]models.Deal](t, resp), 2)

	resp = do(t, http.MethodGet, ts.URL+"/api/v1/deals/hot", "")
	assert.Len(t, decode[[]models.Deal](t, resp), 2)

	resp = do(t, http.MethodGet, ts.URL+"/api/v1/deals/trending", "")
	assert.Len(t, decode[[]models.Deal](t, resp), 2)

	resp = do(t, http.MethodGet, ts.URL+"/api/v1/users/u1/stats", "")
	stats := decode[models.UserStats](t, resp)
	assert.Equal(t, 8, stats.ProductsTracked)
	assert.Equal(t, 8, stats.PlatformsConnected)

	resp = do(t, http.MethodGet, ts.URL+"/api/v1/users/u1/recommendations?category=fashion", "")
	assert.Len(t, decode[[]models.Recommendation](t, resp), 1)
}

func TestPlatformStatusAndRefresh(t *testing.T) {
	ts, _, refresher := newTestServer(t)

	resp := do(t, http.MethodGet, ts.URL+"/api/v1/platforms/status", "")
	status := decode[map[string]adapters.PlatformStatus](t, resp)
	assert.Len(t, status, 8)
	assert.Equal(t, "static", status["snapdeal"].Source)

	resp = do(t, http.MethodPost, ts.URL+"/api/v1/prices/refresh", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 2, decode[alerts.CycleReport](t, resp).PricesChanged)
	assert.Equal(t, 1, refresher.calls)
}

func TestHealthAndMetrics(t *testing.T) {
	ts, _, _ := newTestServer(t)

	resp := do(t, http.MethodGet, ts.URL+"/healthz", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	do(t, http.MethodGet, ts.URL+"/api/v1/products/search?q=sony", "")
	resp = do(t, http.MethodGet, ts.URL+"/metrics", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body strings.Builder
	_, err := io.Copy(&body, resp.Body)
	require.NoError(t, err)
	assert.Contains(t, body.String(), "price_radar_searches_total")
}
