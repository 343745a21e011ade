package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"price-radar/pkg/adapters"
	"price-radar/pkg/adapters/amazon"
	"price-radar/pkg/adapters/flipkart"
	"price-radar/pkg/adapters/myntra"
	"price-radar/pkg/adapters/snapdeal"
	"price-radar/pkg/alerts"
	"price-radar/pkg/api"
	"price-radar/pkg/cache"
	"price-radar/pkg/catalog"
	"price-radar/pkg/clock"
	"price-radar/pkg/config"
	"price-radar/pkg/deals"
	"price-radar/pkg/logger"
	"price-radar/pkg/metrics"
	"price-radar/pkg/notify"
	"price-radar/pkg/search"
	"price-radar/pkg/stats"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger.Init("price-radar", cfg.IsDevelopment())
	logger.SetLevel(cfg.LogLevel)
	log := logger.Logger

	clk := clock.RealClock{}

	resultCache, err := cache.New(cfg.CacheDBPath, cfg.CacheTTL, clk)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize cache")
	}
	defer resultCache.Close()
	log.Info().Str("path", cfg.CacheDBPath).Dur("ttl", cfg.CacheTTL).Msg("cache initialized")

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	registry := adapters.NewRegistry(buildAdapters(cfg)...)
	for name, status := range registry.Status() {
		log.Info().Str("marketplace", string(name)).Str("source", status.Source).Msg("marketplace registered")
	}

	store := catalog.NewSeededStore(clk.Now())
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	dispatcher, redisClient := buildDispatcher(cfg)
	if redisClient != nil {
		defer redisClient.Close()
	}

	evaluator := alerts.NewEvaluator(store, dispatcher, clk, rng, alerts.EvaluatorConfig{
		Interval:          cfg.Pricing.RefreshInterval,
		ChangeProbability: cfg.Pricing.ChangeProbability,
		MaxSwing:          cfg.Pricing.MaxSwing,
		Floor:             cfg.Pricing.Floor,
	}, m)

	handler := api.NewHandler(api.Deps{
		Search: search.NewAggregator(registry, store, search.Options{
			Timeout:        cfg.AdapterTimeout,
			MaxConcurrency: cfg.MaxConcurrentAdapters,
			Cache:          resultCache,
			Metrics:        m,
		}),
		// history gets its own source so the evaluator's sequence stays independent
		Catalog:   catalog.NewService(store, clk, rand.New(rand.NewSource(rng.Int63()))),
		Deals:     deals.NewService(store, clk),
		Alerts:    alerts.NewService(store, clk),
		Stats:     stats.NewService(store, clk),
		Registry:  registry,
		Refresher: evaluator,
		Metrics:   m,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go evaluator.Run(ctx)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           api.NewRouter(handler),
		ReadHeaderTimeout: 15 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	if ip := GetOutboundIP(); ip != nil {
		log.Info().Msgf("Local Network URL: http://%s:%s", ip.String(), cfg.Port)
	}
	log.Info().Msgf("API Docs: http://localhost:%s/", cfg.Port)

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

// buildAdapters constructs a live adapter for every marketplace the configuration enables.
func buildAdapters(cfg *config.Config) []adapters.Adapter {
	var live []adapters.Adapter
	if cfg.Flipkart.Enabled() {
		live = append(live, flipkart.NewClient(cfg.Flipkart.BaseURL, cfg.Flipkart.AffiliateID, cfg.Flipkart.Token, cfg.AdapterTimeout))
	}
	if cfg.Amazon.Enabled() {
		live = append(live, amazon.NewClient(cfg.Amazon.BaseURL, cfg.Amazon.AccessKey, cfg.Amazon.PartnerTag, cfg.AdapterTimeout))
	}
	if cfg.Snapdeal.Enabled {
		live = append(live, snapdeal.NewScraper(cfg.Snapdeal.BaseURL))
	}
	if cfg.Myntra.Enabled {
		live = append(live, myntra.NewScraper(cfg.Myntra.BaseURL, cfg.AdapterTimeout))
	}
	return live
}

// buildDispatcher always logs notifications and also publishes them when redis is configured.
func buildDispatcher(cfg *config.Config) (notify.Dispatcher, *redis.Client) {
	if !cfg.Redis.Enabled() {
		return notify.LogDispatcher{}, nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
	})
	return notify.Multi{notify.LogDispatcher{}, notify.NewRedisDispatcher(client, cfg.Redis.Channel)}, client
}

func GetOutboundIP() net.IP {
	conn, err := net.Dial("udp", "8.8.8.8:80")
	if err != nil {
		addrs, _ := net.InterfaceAddrs()
		for _, addr := range addrs {
			if ipnet, ok := addr.(*net.IPNet); ok && !ipnet.IP.IsLoopback() {
				if ipnet.IP.To4() != nil {
					return ipnet.IP
				}
			}
		}
		return nil
	}
	defer conn.Close()

	localAddr := conn.LocalAddr().(*net.UDPAddr)

	return localAddr.IP
}
