package flipkart

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"price-radar/pkg/clock"
	"price-radar/pkg/logger"
	"price-radar/pkg/models"
)

const (
	BaseURL     = "https://affiliate-api.flipkart.net/affiliate/api"
	resultCount = 20
)

// Client searches the Flipkart Affiliate API.
type Client struct {
	BaseURL     string
	AffiliateID string
	Token       string
	HTTPClient  *http.Client
	Clock       clock.Clock
}

func NewClient(baseURL, affiliateID, token string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = BaseURL
	}
	return &Client{
		BaseURL:     baseURL,
		AffiliateID: affiliateID,
		Token:       token,
		HTTPClient:  &http.Client{Timeout: timeout},
		Clock:       clock.RealClock{},
	}
}

func (c *Client) Marketplace() models.Marketplace {
	return models.Flipkart
}

type searchRequest struct {
	Query       string `json:"query"`
	ResultCount int    `json:"resultCount"`
}

type searchResponse struct {
	Products []Item `json:"products"`
}

func (c *Client) Search(ctx context.Context, query string) ([]models.Product, error) {
	body, err := json.Marshal(searchRequest{Query: query, ResultCount: resultCount})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/search", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Fk-Affiliate-Id", c.AffiliateID)
	req.Header.Set("Fk-Affiliate-Token", c.Token)

	logger.Logger.Debug().Str("marketplace", "flipkart").Str("query", query).Msg("searching")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("flipkart request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("flipkart api returned status %d", resp.StatusCode)
	}

	var data searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("flipkart decode: %w", err)
	}

	now := c.Clock.Now()
	products := make([]models.Product, 0, len(data.Products))
	for _, item := range data.Products {
		products = append(products, Normalize(item, now))
	}
	return products, nil
}
