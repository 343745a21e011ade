package deals

import (
	"strings"

	"price-radar/pkg/catalog"
	"price-radar/pkg/clock"
	"price-radar/pkg/models"
)

type Service struct {
	store catalog.Store
	clock clock.Clock
}

func NewService(store catalog.Store, clk clock.Clock) *Service {
	return &Service{store: store, clock: clk}
}

// List returns deals filtered by category (case-insensitive) and deal type.
// Empty or "all" disables a filter.
func (s *Service) List(category, dealType string) []models.Deal {
	return s.filter(func(d models.Deal) bool {
		if !models.IsWildcard(category) && !strings.EqualFold(d.Category, strings.TrimSpace(category)) {
			return false
		}
		if !models.IsWildcard(dealType) && string(d.DealType) != strings.TrimSpace(dealType) {
			return false
		}
		return true
	})
}

func (s *Service) Hot() []models.Deal {
	return s.filter(func(d models.Deal) bool { return d.IsHot })
}

func (s *Service) Trending() []models.Deal {
	return s.filter(func(d models.Deal) bool { return d.IsTrending })
}

func (s *Service) filter(keep func(models.Deal) bool) []models.Deal {
	now := s.clock.Now()
	out := []models.Deal{}
	for _, d := range s.store.Deals() {
		if !keep(d) {
			continue
		}
		d.TimeLeft = models.FormatTimeLeft(d.ExpiresAt, now)
		out = append(out, d)
	}
	return out
}
