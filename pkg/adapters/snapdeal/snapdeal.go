package snapdeal

import (
	"context"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"price-radar/pkg/clock"
	"price-radar/pkg/logger"
	"price-radar/pkg/models"

	"github.com/gocolly/colly/v2"
)

const BaseURL = "https://www.snapdeal.com/search"

// Scraper reads the Snapdeal search listing page.
type Scraper struct {
	Collector *colly.Collector
	BaseURL   string
	Clock     clock.Clock
}

func NewScraper(baseURL string) *Scraper {
	if baseURL == "" {
		baseURL = BaseURL
	}
	c := colly.NewCollector(
		colly.AllowedDomains(allowedDomains(baseURL)...),
		colly.UserAgent("Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"),
	)
	return &Scraper{
		Collector: c,
		BaseURL:   baseURL,
		Clock:     clock.RealClock{},
	}
}

// allowedDomains limits the collector to the host of the configured search page.
func allowedDomains(baseURL string) []string {
	u, err := url.Parse(baseURL)
	if err != nil || u.Hostname() == "" {
		return []string{"www.snapdeal.com", "snapdeal.com"}
	}
	host := u.Hostname()
	if bare, ok := strings.CutPrefix(host, "www."); ok {
		return []string{host, bare}
	}
	return []string{host}
}

func (s *Scraper) Marketplace() models.Marketplace {
	return models.Snapdeal
}

var (
	digits      = regexp.MustCompile(`[\d,]+(\.\d+)?`)
	widthPct    = regexp.MustCompile(`width:\s*([\d.]+)%`)
	reviewCount = regexp.MustCompile(`\d[\d,]*`)
)

// Card is the raw data of one listing tile.
type Card struct {
	ID            string
	Title         string
	Href          string
	Image         string
	Price         string
	OriginalPrice string
	RatingWidth   string
	Reviews       string
	SoldOut       bool
}

func (s *Scraper) Search(ctx context.Context, query string) ([]models.Product, error) {
	// A fresh clone per search keeps callbacks from piling up across calls.
	c := s.Collector.Clone()
	c.Context = ctx

	var (
		mu    sync.Mutex
		cards []Card
	)

	c.OnHTML(".product-tuple-listing", func(e *colly.HTMLElement) {
		card := Card{
			ID:            firstNonEmpty(e.Attr("data-pogid"), e.Attr("id")),
			Title:         strings.TrimSpace(e.ChildText(".product-title")),
			Href:          e.ChildAttr("a.dp-widget-link", "href"),
			Image:         firstNonEmpty(e.ChildAttr("img.product-image", "src"), e.ChildAttr("img.product-image", "data-src")),
			Price:         firstNonEmpty(e.ChildAttr(".product-price", "data-price"), e.ChildText(".product-price")),
			OriginalPrice: e.ChildText(".product-desc-price"),
			RatingWidth:   e.ChildAttr(".filled-stars", "style"),
			Reviews:       e.ChildText(".product-rating-count"),
			SoldOut:       e.DOM.Find(".sold-out-err").Length() > 0,
		}
		mu.Lock()
		cards = append(cards, card)
		mu.Unlock()
	})

	searchURL := s.BaseURL + "?" + url.Values{"keyword": {query}}.Encode()
	logger.Logger.Debug().Str("marketplace", "snapdeal").Str("url", searchURL).Msg("navigating")

	if err := c.Visit(searchURL); err != nil {
		return nil, err
	}
	c.Wait()

	now := s.Clock.Now()
	products := make([]models.Product, 0, len(cards))
	for _, card := range cards {
		if card.ID == "" || card.Title == "" {
			continue
		}
		products = append(products, Normalize(card, now))
	}
	return products, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

// parseRupees reads amounts like "Rs. 1,299" or "1299".
func parseRupees(text string) int64 {
	match := digits.FindString(text)
	if match == "" {
		return 0
	}
	val, err := strconv.ParseFloat(strings.ReplaceAll(match, ",", ""), 64)
	if err != nil {
		return 0
	}
	return models.RoundRupees(val)
}

// parseRating converts the star bar width (percent of five stars) to a rating.
func parseRating(style string) float64 {
	m := widthPct.FindStringSubmatch(style)
	if len(m) < 2 {
		return 0
	}
	pct, err := strconv.ParseFloat(m[1], 64)
	if err != nil || pct < 0 {
		return 0
	}
	if pct > 100 {
		pct = 100
	}
	return float64(int(pct/20*10+0.5)) / 10
}

func parseCount(text string) int {
	n, err := strconv.Atoi(strings.ReplaceAll(reviewCount.FindString(text), ",", ""))
	if err != nil {
		return 0
	}
	return n
}
