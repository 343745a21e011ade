package stats

import (
	"strings"
	"time"

	"price-radar/pkg/catalog"
	"price-radar/pkg/clock"
	"price-radar/pkg/models"
)

// Service derives user statistics and recommendations from the store on demand.
type Service struct {
	store catalog.Store
	clock clock.Clock
}

func NewService(store catalog.Store, clk clock.Clock) *Service {
	return &Service{store: store, clock: clk}
}

func (s *Service) UserStats(userID string) models.UserStats {
	products := s.store.Products()
	byID := make(map[string]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	var (
		tracked  []models.Product
		seen     = map[string]struct{}{}
		active   int
		earliest time.Time
	)
	for _, a := range s.store.Alerts() {
		if a.UserID != userID {
			continue
		}
		if a.IsActive {
			active++
		}
		if earliest.IsZero() || a.CreatedAt.Before(earliest) {
			earliest = a.CreatedAt
		}
		if _, dup := seen[a.ProductID]; dup {
			continue
		}
		seen[a.ProductID] = struct{}{}
		if p, ok := byID[a.ProductID]; ok {
			tracked = append(tracked, p)
		}
	}

	var savings int64
	for _, p := range tracked {
		savings += p.Savings()
	}

	basis := tracked
	if len(basis) == 0 {
		basis = products
	}

	return models.UserStats{
		TotalSavings:       savings,
		ProductsTracked:    len(products),
		ActiveAlerts:       active,
		PlatformsConnected: len(models.Marketplaces),
		AvgSavingsPerMonth: savings / monthsSince(earliest, s.clock.Now()),
		TopCategory:        mostFrequent(basis, func(p models.Product) string { return p.Category }),
		FavoritePlatform:   models.Marketplace(mostFrequent(basis, func(p models.Product) string { return string(p.Platform) })),
	}
}

// monthsSince counts whole calendar months between from and to, at least 1.
func monthsSince(from, to time.Time) int64 {
	if from.IsZero() || !to.After(from) {
		return 1
	}
	months := int64(to.Year()-from.Year())*12 + int64(to.Month()-from.Month())
	if to.Day() < from.Day() {
		months--
	}
	return max(months, 1)
}

// mostFrequent returns the most common key; ties go to the key seen first.
func mostFrequent(products []models.Product, key func(models.Product) string) string {
	counts := map[string]int{}
	var order []string
	for _, p := range products {
		k := key(p)
		if k == "" {
			continue
		}
		if _, ok := counts[k]; !ok {
			order = append(order, k)
		}
		counts[k]++
	}
	best := ""
	for _, k := range order {
		if best == "" || counts[k] > counts[best] {
			best = k
		}
	}
	return best
}

// Recommendations returns the static candidates, optionally narrowed to a category.
// The list is not personalized; userID is accepted for the API shape only.
func (s *Service) Recommendations(_ string, category string) []models.Recommendation {
	out := []models.Recommendation{}
	for _, r := range s.store.Recommendations() {
		if !models.IsWildcard(category) && !strings.EqualFold(r.Category, strings.TrimSpace(category)) {
			continue
		}
		if p, ok := s.store.Product(r.ProductID); ok {
			r.Product = &p
		}
		out = append(out, r)
	}
	return out
}
