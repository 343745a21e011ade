package catalog

import (
	"maps"
	"slices"
	"sync"
	"time"

	"price-radar/pkg/models"
)

// Store holds products, deals, alerts and recommendations.
// Reads return copies; every mutation is a single locked step.
type Store interface {
	Products() []models.Product
	Product(id string) (models.Product, bool)
	UpdatePrice(id string, price int64, at time.Time) (models.Product, bool)
	// AdjustPrice applies fn to the current price atomically.
	AdjustPrice(id string, fn func(current int64) int64, at time.Time) (models.Product, bool)

	Deals() []models.Deal

	Alerts() []models.PriceAlert
	Alert(id string) (models.PriceAlert, bool)
	AddAlert(alert models.PriceAlert)
	DeleteAlert(id string) bool
	DeactivateAlert(id string) (models.PriceAlert, bool)
	RefreshAlertPrice(id string, price int64) (models.PriceAlert, bool)
	// TriggerAlert flips NotificationSent from false to true. Only the caller
	// that performs the flip gets true back.
	TriggerAlert(id string, price int64, at time.Time) (models.PriceAlert, bool)

	Recommendations() []models.Recommendation
}

type MemoryStore struct {
	mu              sync.RWMutex
	products        []models.Product
	index           map[string]int
	deals           []models.Deal
	alerts          []models.PriceAlert
	recommendations []models.Recommendation
}

func NewMemoryStore(products []models.Product, deals []models.Deal, recs []models.Recommendation) *MemoryStore {
	s := &MemoryStore{
		index:           make(map[string]int, len(products)),
		deals:           slices.Clone(deals),
		recommendations: slices.Clone(recs),
	}
	for _, p := range products {
		s.index[p.ID] = len(s.products)
		s.products = append(s.products, cloneProduct(p))
	}
	return s
}

func cloneProduct(p models.Product) models.Product {
	p.Images = slices.Clone(p.Images)
	p.Specifications = maps.Clone(p.Specifications)
	return p
}

func cloneAlert(a models.PriceAlert) models.PriceAlert {
	if a.TriggeredAt != nil {
		t := *a.TriggeredAt
		a.TriggeredAt = &t
	}
	return a
}

func (s *MemoryStore) Products() []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Product, len(s.products))
	for i, p := range s.products {
		out[i] = cloneProduct(p)
	}
	return out
}

func (s *MemoryStore) Product(id string) (models.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.index[id]
	if !ok {
		return models.Product{}, false
	}
	return cloneProduct(s.products[i]), true
}

func (s *MemoryStore) UpdatePrice(id string, price int64, at time.Time) (models.Product, bool) {
	return s.AdjustPrice(id, func(int64) int64 { return price }, at)
}

func (s *MemoryStore) AdjustPrice(id string, fn func(current int64) int64, at time.Time) (models.Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.index[id]
	if !ok {
		return models.Product{}, false
	}
	p := &s.products[i]
	p.Price = fn(p.Price)
	p.LastUpdated = at
	return cloneProduct(*p), true
}

func (s *MemoryStore) Deals() []models.Deal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.deals)
}

func (s *MemoryStore) Alerts() []models.PriceAlert {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.PriceAlert, len(s.alerts))
	for i, a := range s.alerts {
		out[i] = cloneAlert(a)
	}
	return out
}

func (s *MemoryStore) alertIndex(id string) int {
	return slices.IndexFunc(s.alerts, func(a models.PriceAlert) bool { return a.ID == id })
}

func (s *MemoryStore) Alert(id string) (models.PriceAlert, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.alertIndex(id)
	if i < 0 {
		return models.PriceAlert{}, false
	}
	return cloneAlert(s.alerts[i]), true
}

func (s *MemoryStore) AddAlert(alert models.PriceAlert) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.alerts = append(s.alerts, cloneAlert(alert))
}

func (s *MemoryStore) DeleteAlert(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.alertIndex(id)
	if i < 0 {
		return false
	}
	s.alerts = slices.Delete(s.alerts, i, i+1)
	return true
}

func (s *MemoryStore) DeactivateAlert(id string) (models.PriceAlert, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.alertIndex(id)
	if i < 0 {
		return models.PriceAlert{}, false
	}
	s.alerts[i].IsActive = false
	return cloneAlert(s.alerts[i]), true
}

func (s *MemoryStore) RefreshAlertPrice(id string, price int64) (models.PriceAlert, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.alertIndex(id)
	if i < 0 {
		return models.PriceAlert{}, false
	}
	s.alerts[i].CurrentPrice = price
	return cloneAlert(s.alerts[i]), true
}

func (s *MemoryStore) TriggerAlert(id string, price int64, at time.Time) (models.PriceAlert, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.alertIndex(id)
	if i < 0 {
		return models.PriceAlert{}, false
	}
	a := &s.alerts[i]
	if !a.Pending() {
		return cloneAlert(*a), false
	}
	a.CurrentPrice = price
	a.NotificationSent = true
	a.TriggeredAt = &at
	return cloneAlert(*a), true
}

func (s *MemoryStore) Recommendations() []models.Recommendation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.recommendations)
}
