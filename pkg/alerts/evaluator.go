package alerts

import (
	"context"
	"math"
	"math/rand"
	"sync"
	"time"

	"price-radar/pkg/catalog"
	"price-radar/pkg/clock"
	"price-radar/pkg/logger"
	"price-radar/pkg/metrics"
	"price-radar/pkg/notify"
)

type EvaluatorConfig struct {
	Interval          time.Duration
	ChangeProbability float64
	MaxSwing          int64
	Floor             int64
}

// CycleReport summarizes one refresh cycle.
type CycleReport struct {
	PricesChanged   int `json:"pricesChanged"`
	AlertsTriggered int `json:"alertsTriggered"`
	AlertsSkipped   int `json:"alertsSkipped"`
}

// Evaluator periodically moves catalog prices and fires alerts whose target was reached.
type Evaluator struct {
	store      catalog.Store
	dispatcher notify.Dispatcher
	clock      clock.Clock
	metrics    *metrics.Metrics
	cfg        EvaluatorConfig

	mu  sync.Mutex // serializes cycles; also guards rng
	rng *rand.Rand
}

func NewEvaluator(store catalog.Store, dispatcher notify.Dispatcher, clk clock.Clock, rng *rand.Rand, cfg EvaluatorConfig, m *metrics.Metrics) *Evaluator {
	if dispatcher == nil {
		dispatcher = notify.LogDispatcher{}
	}
	return &Evaluator{
		store:      store,
		dispatcher: dispatcher,
		clock:      clk,
		metrics:    m,
		cfg:        cfg,
		rng:        rng,
	}
}

// Run ticks until ctx is cancelled.
func (e *Evaluator) Run(ctx context.Context) {
	ticker := time.NewTicker(e.cfg.Interval)
	defer ticker.Stop()

	logger.Logger.Info().Dur("interval", e.cfg.Interval).Msg("price refresh loop started")
	for {
		select {
		case <-ctx.Done():
			logger.Logger.Info().Msg("price refresh loop stopped")
			return
		case <-ticker.C:
			e.Cycle(ctx)
		}
	}
}

// Cycle performs one price refresh followed by one alert evaluation pass.
func (e *Evaluator) Cycle(ctx context.Context) CycleReport {
	e.mu.Lock()
	defer e.mu.Unlock()

	var report CycleReport
	now := e.clock.Now()
	// A triggered alert is already marked sent, so delivery must outlive the caller.
	dispatchCtx := context.WithoutCancel(ctx)

	for _, p := range e.store.Products() {
		if e.rng.Float64() >= e.cfg.ChangeProbability {
			continue
		}
		change := (e.rng.Float64() - 0.5) * 2 * float64(e.cfg.MaxSwing)
		if _, ok := e.store.AdjustPrice(p.ID, func(current int64) int64 {
			return max(e.cfg.Floor, int64(math.Round(float64(current)+change)))
		}, now); ok {
			report.PricesChanged++
		}
	}

	for _, a := range e.store.Alerts() {
		if !a.Pending() {
			continue
		}
		product, ok := e.store.Product(a.ProductID)
		if !ok {
			report.AlertsSkipped++
			continue
		}
		if product.Price > a.TargetPrice {
			e.store.RefreshAlertPrice(a.ID, product.Price)
			continue
		}
		triggered, won := e.store.TriggerAlert(a.ID, product.Price, now)
		if !won {
			continue
		}
		report.AlertsTriggered++
		if err := e.dispatcher.Notify(dispatchCtx, triggered); err != nil {
			logger.Logger.Error().Err(err).Str("alert_id", a.ID).Msg("notification dispatch failed")
		}
	}

	e.metrics.RefreshCycle(report.PricesChanged, report.AlertsTriggered)
	logger.Logger.Debug().
		Int("prices_changed", report.PricesChanged).
		Int("alerts_triggered", report.AlertsTriggered).
		Int("alerts_skipped", report.AlertsSkipped).
		Msg("price refresh cycle complete")
	return report
}
