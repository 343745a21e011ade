package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"price-radar/pkg/adapters"
	"price-radar/pkg/alerts"
	"price-radar/pkg/catalog"
	"price-radar/pkg/deals"
	"price-radar/pkg/logger"
	"price-radar/pkg/metrics"
	"price-radar/pkg/models"
	"price-radar/pkg/search"
	"price-radar/pkg/stats"

	scalargo "github.com/bdpiprava/scalar-go"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Refresher runs one price refresh and alert evaluation cycle.
type Refresher interface {
	Cycle(ctx context.Context) alerts.CycleReport
}

type Deps struct {
	Search    *search.Aggregator
	Catalog   *catalog.Service
	Deals     *deals.Service
	Alerts    *alerts.Service
	Stats     *stats.Service
	Registry  *adapters.Registry
	Refresher Refresher
	Metrics   *metrics.Metrics
	// SpecDir holds the OpenAPI document rendered at "/".
	SpecDir string
}

type Handler struct {
	Deps
}

func NewHandler(deps Deps) *Handler {
	if deps.SpecDir == "" {
		deps.SpecDir = "./"
	}
	return &Handler{Deps: deps}
}

// NewRouter wires middleware and every route.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	h.RegisterRoutes(r)
	return r
}

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Get("/", h.docs)
	r.Get("/healthz", h.health)
	r.Handle("/metrics", h.Metrics.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", h.productsByIDs)
			r.Get("/search", h.search)
			r.Get("/advanced-search", h.advancedSearch)
			r.Post("/prices", h.bulkUpdatePrices)
			r.Get("/{id}", h.product)
			r.Get("/{id}/history", h.priceHistory)
		})

		r.Route("/deals", func(r chi.Router) {
			r.Get("/", h.listDeals)
			r.Get("/hot", h.hotDeals)
			r.Get("/trending", h.trendingDeals)
		})

		r.Route("/alerts", func(r chi.Router) {
			r.Post("/", h.createAlert)
			r.Get("/", h.listAlerts)
			r.Delete("/{id}", h.deleteAlert)
			r.Post("/{id}/deactivate", h.deactivateAlert)
		})

		r.Get("/users/{userId}/stats", h.userStats)
		r.Get("/users/{userId}/recommendations", h.recommendations)
		r.Get("/platforms/status", h.platformStatus)
		r.Post("/prices/refresh", h.refreshPrices)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		WriteNotFound(w, "no route for "+r.URL.Path, r.URL.Path)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, http.StatusMethodNotAllowed, "Method Not Allowed", r.Method+" is not supported here", r.URL.Path)
	})
}

// requestLogger logs each request with zerolog and exposes a request-scoped logger.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		reqLog := logger.Logger.With().Str("request_id", middleware.GetReqID(r.Context())).Logger()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r.WithContext(logger.WithContext(r.Context(), reqLog)))

		reqLog.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}

func (h *Handler) docs(w http.ResponseWriter, r *http.Request) {
	html, err := scalargo.NewV2(
		scalargo.WithSpecDir(h.SpecDir),
		scalargo.WithMetaDataOpts(
			scalargo.WithTitle("Price Radar API"),
		),
	)
	if err != nil {
		WriteInternalServerError(w, err, r.URL.Path)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, html)
}

func (h *Handler) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) search(w http.ResponseWriter, r *http.Request) {
	params, err := parseSearchParams(r.URL.Query())
	if err != nil {
		WriteBadRequest(w, err.Error(), r.URL.Path)
		return
	}
	results := h.Search.Search(r.Context(), params)
	if results == nil {
		results = []models.Product{}
	}
	writeJSON(w, http.StatusOK, results)
}

func (h *Handler) advancedSearch(w http.ResponseWriter, r *http.Request) {
	params, err := parseSearchParams(r.URL.Query())
	if err != nil {
		WriteBadRequest(w, err.Error(), r.URL.Path)
		return
	}
	writeJSON(w, http.StatusOK, h.Search.AdvancedSearch(r.Context(), params))
}

func (h *Handler) product(w http.ResponseWriter, r *http.Request) {
	p, err := h.Catalog.Product(chi.URLParam(r, "id"))
	if err != nil {
		WriteDomainError(w, err, r.URL.Path)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *Handler) productsByIDs(w http.ResponseWriter, r *http.Request) {
	ids := splitIDs(r.URL.Query().Get("ids"))
	if len(ids) == 0 {
		WriteBadRequest(w, "ids query parameter is required", r.URL.Path)
		return
	}
	writeJSON(w, http.StatusOK, h.Catalog.ProductsByIDs(ids))
}

func (h *Handler) priceHistory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := h.Catalog.Product(id); err != nil {
		WriteDomainError(w, err, r.URL.Path)
		return
	}
	writeJSON(w, http.StatusOK, h.Catalog.PriceHistory(id))
}

func (h *Handler) bulkUpdatePrices(w http.ResponseWriter, r *http.Request) {
	var updates []models.PriceUpdate
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		WriteBadRequest(w, "Invalid JSON body. Expected array of {productId, newPrice}.", r.URL.Path)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"updated": h.Catalog.BulkUpdatePrices(updates)})
}

func (h *Handler) listDeals(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	writeJSON(w, http.StatusOK, h.Deals.List(q.Get("category"), q.Get("dealType")))
}

func (h *Handler) hotDeals(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.Deals.Hot())
}

func (h *Handler) trendingDeals(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.Deals.Trending())
}

type createAlertRequest struct {
	ProductID   string `json:"productId"`
	TargetPrice int64  `json:"targetPrice"`
	UserID      string `json:"userId"`
}

func (h *Handler) createAlert(w http.ResponseWriter, r *http.Request) {
	var req createAlertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "Invalid JSON body. Expected {productId, targetPrice, userId}.", r.URL.Path)
		return
	}
	alert, err := h.Alerts.Create(req.ProductID, req.TargetPrice, req.UserID)
	if err != nil {
		logger.FromContext(r.Context()).Warn().Err(err).Str("product_id", req.ProductID).Msg("alert rejected")
		WriteDomainError(w, err, r.URL.Path)
		return
	}
	writeJSON(w, http.StatusCreated, alert)
}

func (h *Handler) listAlerts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Alerts.List(r.URL.Query().Get("userId")))
}

func (h *Handler) deleteAlert(w http.ResponseWriter, r *http.Request) {
	if err := h.Alerts.Delete(chi.URLParam(r, "id")); err != nil {
		WriteDomainError(w, err, r.URL.Path)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) deactivateAlert(w http.ResponseWriter, r *http.Request) {
	alert, err := h.Alerts.Deactivate(chi.URLParam(r, "id"))
	if err != nil {
		WriteDomainError(w, err, r.URL.Path)
		return
	}
	writeJSON(w, http.StatusOK, alert)
}

func (h *Handler) userStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Stats.UserStats(chi.URLParam(r, "userId")))
}

func (h *Handler) recommendations(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Stats.Recommendations(chi.URLParam(r, "userId"), r.URL.Query().Get("category")))
}

func (h *Handler) platformStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.Registry.Status())
}

func (h *Handler) refreshPrices(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Refresher.Cycle(r.Context()))
}
