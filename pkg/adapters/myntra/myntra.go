package myntra

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"price-radar/pkg/clock"
	"price-radar/pkg/logger"
	"price-radar/pkg/models"

	"github.com/chromedp/chromedp"
)

const BaseURL = "https://www.myntra.com/"

// Scraper renders the Myntra listing in headless Chrome and reads the embedded search state.
type Scraper struct {
	BaseURL string
	Timeout time.Duration
	Clock   clock.Clock
}

func NewScraper(baseURL string, timeout time.Duration) *Scraper {
	if baseURL == "" {
		baseURL = BaseURL
	}
	return &Scraper{BaseURL: baseURL, Timeout: timeout, Clock: clock.RealClock{}}
}

func (s *Scraper) Marketplace() models.Marketplace {
	return models.Myntra
}

const searchStateJS = `
	(function() {
		const state = window.__myx;
		if (!state || !state.searchData || !state.searchData.results) {
			return "[]";
		}
		return JSON.stringify(state.searchData.results.products || []);
	})()
`

// listingURL builds the slug path Myntra uses for search, e.g. /nike-shoes.
func (s *Scraper) listingURL(query string) string {
	slug := strings.Join(strings.Fields(strings.ToLower(query)), "-")
	return strings.TrimRight(s.BaseURL, "/") + "/" + slug
}

func (s *Scraper) Search(ctx context.Context, query string) ([]models.Product, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.UserAgent("Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"),
		chromedp.WindowSize(1920, 1080),
	)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	if s.Timeout > 0 {
		var cancelScrape context.CancelFunc
		browserCtx, cancelScrape = context.WithTimeout(browserCtx, s.Timeout)
		defer cancelScrape()
	}

	target := s.listingURL(query)
	logger.Logger.Debug().Str("marketplace", "myntra").Str("url", target).Msg("navigating")

	var raw string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(target),
		chromedp.WaitReady(`body`, chromedp.ByQuery),
		chromedp.Evaluate(searchStateJS, &raw),
	)
	if err != nil {
		return nil, fmt.Errorf("chromedp execution failed: %w", err)
	}

	items, err := ParseListing(raw)
	if err != nil {
		return nil, err
	}

	now := s.Clock.Now()
	products := make([]models.Product, 0, len(items))
	for _, item := range items {
		products = append(products, Normalize(item, now))
	}
	return products, nil
}

// ParseListing decodes the JSON array produced by the in-page script.
func ParseListing(raw string) ([]Item, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	var items []Item
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("myntra search state: %w", err)
	}
	return items, nil
}
