package catalog

import (
	"fmt"
	"math"
	"math/rand"
	"sync"

	"price-radar/pkg/clock"
	"price-radar/pkg/logger"
	"price-radar/pkg/models"
)

const historyDays = 30

// Service exposes product lookups and admin price operations over a Store.
type Service struct {
	store Store
	clock clock.Clock

	rngMu sync.Mutex
	rng   *rand.Rand
}

func NewService(store Store, clk clock.Clock, rng *rand.Rand) *Service {
	return &Service{store: store, clock: clk, rng: rng}
}

func (s *Service) Product(id string) (models.Product, error) {
	p, ok := s.store.Product(id)
	if !ok {
		return models.Product{}, fmt.Errorf("product %q: %w", id, models.ErrProductNotFound)
	}
	return p, nil
}

// ProductsByIDs returns the known products among ids in catalog order.
func (s *Service) ProductsByIDs(ids []string) []models.Product {
	wanted := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}
	out := []models.Product{}
	for _, p := range s.store.Products() {
		if _, ok := wanted[p.ID]; ok {
			out = append(out, p)
		}
	}
	return out
}

// PriceHistory synthesizes a daily series ending today. Each point varies
// up to ±10% around the current price and never drops below 80% of it.
func (s *Service) PriceHistory(productID string) []models.PriceHistoryPoint {
	p, ok := s.store.Product(productID)
	if !ok {
		return []models.PriceHistoryPoint{}
	}

	today := s.clock.Now()
	base := float64(p.Price)
	history := make([]models.PriceHistoryPoint, 0, historyDays+1)

	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	for i := historyDays; i >= 0; i-- {
		variation := (s.rng.Float64() - 0.5) * 0.2 * base
		price := math.Max(base*0.8, base+variation)
		history = append(history, models.PriceHistoryPoint{
			Date:     today.AddDate(0, 0, -i).Format("2006-01-02"),
			Price:    int64(math.Round(price)),
			Platform: p.Platform,
		})
	}
	return history
}

// BulkUpdatePrices applies admin price overrides. Unknown ids and negative
// prices are skipped. Returns the number of products updated.
func (s *Service) BulkUpdatePrices(updates []models.PriceUpdate) int {
	now := s.clock.Now()
	updated := 0
	for _, u := range updates {
		if u.NewPrice < 0 {
			logger.Logger.Warn().Str("product_id", u.ProductID).Int64("price", u.NewPrice).Msg("skipping negative price")
			continue
		}
		if _, ok := s.store.UpdatePrice(u.ProductID, u.NewPrice, now); !ok {
			logger.Logger.Warn().Str("product_id", u.ProductID).Msg("skipping unknown product")
			continue
		}
		updated++
	}
	return updated
}
