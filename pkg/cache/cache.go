package cache

import (
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"price-radar/pkg/clock"
	"price-radar/pkg/logger"
	"price-radar/pkg/models"

	_ "modernc.org/sqlite"
)

// Cache keeps the last good result of each marketplace search in sqlite.
// The aggregator falls back to it when a live adapter call fails.
type Cache struct {
	db    *sql.DB
	ttl   time.Duration
	clock clock.Clock
}

func New(dbPath string, ttl time.Duration, clk clock.Clock) (*Cache, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}
	// sqlite serializes writers; one connection avoids SQLITE_BUSY under fan-out.
	db.SetMaxOpenConns(1)

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS search_results (
			marketplace TEXT NOT NULL,
			query TEXT NOT NULL,
			data TEXT NOT NULL,
			fetched_at DATETIME NOT NULL,
			PRIMARY KEY (marketplace, query)
		)
	`)
	if err != nil {
		db.Close()
		return nil, err
	}

	if clk == nil {
		clk = clock.RealClock{}
	}
	return &Cache{db: db, ttl: ttl, clock: clk}, nil
}

func normalizeQuery(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}

// Get returns the cached products for a marketplace/query pair if still fresh.
func (c *Cache) Get(marketplace models.Marketplace, query string) ([]models.Product, bool) {
	var data string
	var fetchedAt time.Time

	err := c.db.QueryRow(
		`SELECT data, fetched_at FROM search_results WHERE marketplace = ? AND query = ?`,
		string(marketplace), normalizeQuery(query),
	).Scan(&data, &fetchedAt)
	if err != nil {
		return nil, false
	}

	if c.clock.Now().Sub(fetchedAt) > c.ttl {
		return nil, false
	}

	var products []models.Product
	if err := json.Unmarshal([]byte(data), &products); err != nil {
		logger.Logger.Error().Err(err).
			Str("marketplace", string(marketplace)).
			Str("query", query).
			Msg("cache: failed to unmarshal search result")
		return nil, false
	}

	return products, true
}

func (c *Cache) Set(marketplace models.Marketplace, query string, products []models.Product) {
	data, err := json.Marshal(products)
	if err != nil {
		logger.Logger.Error().Err(err).Str("marketplace", string(marketplace)).Msg("cache: failed to marshal search result")
		return
	}

	_, err = c.db.Exec(
		`INSERT INTO search_results (marketplace, query, data, fetched_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(marketplace, query)
		 DO UPDATE SET data = excluded.data, fetched_at = excluded.fetched_at`,
		string(marketplace), normalizeQuery(query), string(data), c.clock.Now(),
	)
	if err != nil {
		logger.Logger.Error().Err(err).Str("marketplace", string(marketplace)).Msg("cache: failed to store search result")
	}
}

func (c *Cache) Close() error {
	return c.db.Close()
}
