package adapters

import (
	"context"
	"sync"

	"price-radar/pkg/models"
)

// Adapter fetches live search results from one marketplace.
type Adapter interface {
	Marketplace() models.Marketplace
	Search(ctx context.Context, query string) ([]models.Product, error)
}

// Registry is the marketplace lookup table: every marketplace has a display
// name, and a live adapter when one is configured.
type Registry struct {
	mu       sync.RWMutex
	adapters map[models.Marketplace]Adapter
}

func NewRegistry(adapters ...Adapter) *Registry {
	r := &Registry{adapters: make(map[models.Marketplace]Adapter)}
	for _, a := range adapters {
		r.Register(a)
	}
	return r
}

// Register installs an adapter, replacing any previous one for the same marketplace.
func (r *Registry) Register(a Adapter) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.adapters[a.Marketplace()] = a
}

func (r *Registry) Get(m models.Marketplace) (Adapter, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.adapters[m]
	return a, ok
}

// Live returns the registered adapters in marketplace display order.
func (r *Registry) Live() []Adapter {
	r.mu.RLock()
	defer r.mu.RUnlock()
	live := make([]Adapter, 0, len(r.adapters))
	for _, m := range models.Marketplaces {
		if a, ok := r.adapters[m]; ok {
			live = append(live, a)
		}
	}
	return live
}

type PlatformStatus struct {
	Name string `json:"name"`
	Live bool   `json:"live"`
	// Source is "live" for a registered adapter and "static" otherwise.
	Source string `json:"source"`
}

// Status reports every known marketplace, live or served from the static dataset.
func (r *Registry) Status() map[models.Marketplace]PlatformStatus {
	r.mu.RLock()
	defer r.mu.RUnlock()
	status := make(map[models.Marketplace]PlatformStatus, len(models.Marketplaces))
	for _, m := range models.Marketplaces {
		_, live := r.adapters[m]
		source := "static"
		if live {
			source = "live"
		}
		status[m] = PlatformStatus{Name: m.DisplayName(), Live: live, Source: source}
	}
	return status
}
