package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	Environment string
	LogLevel    string

	CacheDBPath string
	CacheTTL    time.Duration

	AdapterTimeout        time.Duration
	MaxConcurrentAdapters int

	Pricing  PricingConfig
	Flipkart FlipkartConfig
	Amazon   AmazonConfig
	Snapdeal ScraperConfig
	Myntra   ScraperConfig
	Redis    RedisConfig
}

// PricingConfig tunes the periodic price refresh. The defaults are demo values.
type PricingConfig struct {
	RefreshInterval   time.Duration
	ChangeProbability float64
	MaxSwing          int64
	Floor             int64
}

type FlipkartConfig struct {
	BaseURL     string
	AffiliateID string
	Token       string
}

func (c FlipkartConfig) Enabled() bool {
	return c.AffiliateID != "" && c.Token != ""
}

type AmazonConfig struct {
	BaseURL    string
	AccessKey  string
	PartnerTag string
}

func (c AmazonConfig) Enabled() bool {
	return c.AccessKey != "" && c.PartnerTag != ""
}

type ScraperConfig struct {
	Enabled bool
	BaseURL string
}

type RedisConfig struct {
	Addr     string
	Password string
	Channel  string
}

func (c RedisConfig) Enabled() bool {
	return c.Addr != ""
}

func (c Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	return FromEnv(), nil
}

// FromEnv builds the configuration from environment variables only.
func FromEnv() *Config {
	return &Config{
		Port:        getEnv("PORT", "9090"),
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),

		CacheDBPath: getEnv("CACHE_DB_PATH", "./cache.db"),
		CacheTTL:    time.Duration(getEnvInt("CACHE_TTL_MINUTES", 60)) * time.Minute,

		AdapterTimeout:        getEnvDuration("ADAPTER_TIMEOUT", 5*time.Second),
		MaxConcurrentAdapters: getEnvInt("MAX_CONCURRENT_ADAPTERS", 4),

		Pricing: PricingConfig{
			RefreshInterval:   getEnvDuration("PRICE_REFRESH_INTERVAL", 30*time.Second),
			ChangeProbability: getEnvProbability("PRICE_CHANGE_PROBABILITY", 0.1),
			MaxSwing:          int64(getEnvInt("PRICE_MAX_SWING", 500)),
			Floor:             int64(getEnvInt("PRICE_FLOOR", 100)),
		},
		Flipkart: FlipkartConfig{
			BaseURL:     getEnv("FLIPKART_BASE_URL", "https://affiliate-api.flipkart.net/affiliate/api"),
			AffiliateID: os.Getenv("FLIPKART_TRACKING_ID"),
			Token:       os.Getenv("FLIPKART_API_KEY"),
		},
		Amazon: AmazonConfig{
			BaseURL:    getEnv("AMAZON_BASE_URL", "https://webservices.amazon.in/paapi5"),
			AccessKey:  os.Getenv("AMAZON_ACCESS_KEY"),
			PartnerTag: os.Getenv("AMAZON_PARTNER_TAG"),
		},
		Snapdeal: ScraperConfig{
			Enabled: getEnvBool("SNAPDEAL_ENABLED", false),
			BaseURL: getEnv("SNAPDEAL_BASE_URL", "https://www.snapdeal.com/search"),
		},
		Myntra: ScraperConfig{
			Enabled: getEnvBool("MYNTRA_ENABLED", false),
			BaseURL: getEnv("MYNTRA_BASE_URL", "https://www.myntra.com/"),
		},
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			Channel:  getEnv("REDIS_ALERT_CHANNEL", "price-alerts"),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil && parsed > 0 {
			return parsed
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil && parsed > 0 {
			return parsed
		}
	}
	return defaultValue
}

func getEnvProbability(key string, defaultValue float64) float64 {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.ParseFloat(val, 64); err == nil && parsed >= 0 && parsed <= 1 {
			return parsed
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.ParseBool(val); err == nil {
			return parsed
		}
	}
	return defaultValue
}
