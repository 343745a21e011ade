package search

import (
	"context"
	"strings"
	"time"

	"price-radar/pkg/adapters"
	"price-radar/pkg/logger"
	"price-radar/pkg/metrics"
	"price-radar/pkg/models"

	"golang.org/x/sync/errgroup"
)

// Catalog is the static dataset the aggregator falls back to.
type Catalog interface {
	Products() []models.Product
}

// ResultCache stores the last good adapter result per marketplace and query.
type ResultCache interface {
	Get(marketplace models.Marketplace, query string) ([]models.Product, bool)
	Set(marketplace models.Marketplace, query string, products []models.Product)
}

type Options struct {
	Timeout        time.Duration
	MaxConcurrency int
	Cache          ResultCache
	Metrics        *metrics.Metrics
}

type Aggregator struct {
	registry *adapters.Registry
	catalog  Catalog
	cache    ResultCache
	metrics  *metrics.Metrics
	timeout  time.Duration
	limit    int
}

func NewAggregator(registry *adapters.Registry, catalog Catalog, opts Options) *Aggregator {
	limit := opts.MaxConcurrency
	if limit <= 0 {
		limit = len(models.Marketplaces)
	}
	return &Aggregator{
		registry: registry,
		catalog:  catalog,
		cache:    opts.Cache,
		metrics:  opts.Metrics,
		timeout:  opts.Timeout,
		limit:    limit,
	}
}

// Search fans out to the live adapters, falls back to cached or static data,
// then filters and sorts. An empty query returns nil without calling any adapter.
func (a *Aggregator) Search(ctx context.Context, params models.SearchParams) []models.Product {
	query := strings.TrimSpace(params.Query)
	if query == "" {
		return nil
	}

	var results []models.Product
	if models.IsWildcard(params.Platform) {
		a.metrics.Search("all")
		results = append(a.fanOut(ctx, query), a.staticMatches(query, "")...)
		results = dedupe(results)
	} else {
		marketplace, ok := models.ParseMarketplace(params.Platform)
		if !ok {
			return []models.Product{}
		}
		a.metrics.Search("single")
		results = a.searchOne(ctx, marketplace, query)
	}

	results = Filter(results, params)
	Sort(results, params.SortBy)
	return results
}

// AdvancedSearch evaluates the same predicates over the catalog only.
func (a *Aggregator) AdvancedSearch(_ context.Context, params models.SearchParams) []models.Product {
	query := strings.TrimSpace(params.Query)
	if query == "" {
		return []models.Product{}
	}
	a.metrics.Search("advanced")

	results := Filter(a.staticMatches(query, ""), params)
	Sort(results, params.SortBy)
	return results
}

func (a *Aggregator) fanOut(ctx context.Context, query string) []models.Product {
	live := a.registry.Live()
	slots := make([][]models.Product, len(live))

	var g errgroup.Group
	g.SetLimit(a.limit)
	for i, adapter := range live {
		g.Go(func() error {
			products, err := a.call(ctx, adapter, query)
			if err != nil {
				if cached, ok := a.cached(adapter.Marketplace(), query); ok {
					slots[i] = cached
				}
				return nil
			}
			slots[i] = products
			return nil
		})
	}
	g.Wait()

	var merged []models.Product
	for _, s := range slots {
		merged = append(merged, s...)
	}
	return merged
}

func (a *Aggregator) searchOne(ctx context.Context, marketplace models.Marketplace, query string) []models.Product {
	adapter, ok := a.registry.Get(marketplace)
	if !ok {
		return a.staticMatches(query, marketplace)
	}
	products, err := a.call(ctx, adapter, query)
	if err == nil {
		return products
	}
	if cached, ok := a.cached(marketplace, query); ok {
		return cached
	}
	return a.staticMatches(query, marketplace)
}

// call runs one adapter under the per-adapter timeout and records the outcome.
func (a *Aggregator) call(ctx context.Context, adapter adapters.Adapter, query string) ([]models.Product, error) {
	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	marketplace := adapter.Marketplace()
	start := time.Now()
	products, err := adapter.Search(ctx, query)
	a.metrics.ObserveAdapter(string(marketplace), err, time.Since(start))
	if err != nil {
		logger.Dedup("adapter %s failed: %v", marketplace, err)
		return nil, err
	}

	if a.cache != nil {
		a.cache.Set(marketplace, query, products)
	}
	return products, nil
}

func (a *Aggregator) cached(marketplace models.Marketplace, query string) ([]models.Product, bool) {
	if a.cache == nil {
		return nil, false
	}
	products, ok := a.cache.Get(marketplace, query)
	if ok {
		a.metrics.CacheFallback(string(marketplace))
		logger.Logger.Info().Str("marketplace", string(marketplace)).Str("query", query).Msg("serving cached results")
	}
	return products, ok
}

// staticMatches returns catalog entries matching the query, optionally limited to one marketplace.
func (a *Aggregator) staticMatches(query string, marketplace models.Marketplace) []models.Product {
	var out []models.Product
	for _, p := range a.catalog.Products() {
		if marketplace != "" && p.Platform != marketplace {
			continue
		}
		if MatchesQuery(p, query) {
			out = append(out, p)
		}
	}
	return out
}

// dedupe drops repeated (platform, id) pairs. The first occurrence wins.
func dedupe(products []models.Product) []models.Product {
	seen := make(map[string]struct{}, len(products))
	out := products[:0]
	for _, p := range products {
		key := p.Key()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, p)
	}
	return out
}
