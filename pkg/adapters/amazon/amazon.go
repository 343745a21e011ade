package amazon

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
	BaseURL    = "https://webservices.amazon.in/paapi5"
	target     = "com.amazon.paapi5.v1.ProductAdvertisingAPIv1.SearchItems"
	storeFront = "www.amazon.in"
)

// Client calls the Product Advertising API SearchItems operation.
// Requests carry the partner headers only; SigV4 signing is left to a fronting proxy.
type Client struct {
	BaseURL    string
	AccessKey  string
	PartnerTag string
	HTTPClient *http.Client
	Clock      clock.Clock
}

func NewClient(baseURL, accessKey, partnerTag string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = BaseURL
	}
	return &Client{
		BaseURL:    baseURL,
		AccessKey:  accessKey,
		PartnerTag: partnerTag,
		HTTPClient: &http.Client{Timeout: timeout},
		Clock:      clock.RealClock{},
	}
}

func (c *Client) Marketplace() models.Marketplace {
	return models.Amazon
}

type searchItemsRequest struct {
	Keywords    string   `json:"Keywords"`
	SearchIndex string   `json:"SearchIndex"`
	PartnerTag  string   `json:"PartnerTag"`
	PartnerType string   `json:"PartnerType"`
	Marketplace string   `json:"Marketplace"`
	Resources   []string `json:"Resources"`
}

type searchItemsResponse struct {
	SearchResult struct {
		Items []Item `json:"Items"`
	} `json:"SearchResult"`
}

var resources = []string{
	"ItemInfo.Title",
	"ItemInfo.Features",
	"ItemInfo.ByLineInfo",
	"Offers.Listings.Price",
	"Offers.Listings.SavingBasis",
	"Offers.Listings.Availability.Type",
	"Images.Primary.Large",
	"BrowseNodeInfo.BrowseNodes",
	"CustomerReviews.StarRating",
	"CustomerReviews.Count",
}

func (c *Client) Search(ctx context.Context, query string) ([]models.Product, error) {
	body, err := json.Marshal(searchItemsRequest{
		Keywords:    query,
		SearchIndex: "All",
		PartnerTag:  c.PartnerTag,
		PartnerType: "Associates",
		Marketplace: storeFront,
		Resources:   resources,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/searchitems", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	req.Header.Set("Content-Encoding", "amz-1.0")
	req.Header.Set("X-Amz-Target", target)
	if c.AccessKey != "" {
		req.Header.Set("X-Amz-Access-Key", c.AccessKey)
	}

	logger.Logger.Debug().Str("marketplace", "amazon").Str("query", query).Msg("searching")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("amazon request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("amazon api returned status %d", resp.StatusCode)
	}

	var data searchItemsResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("amazon decode: %w", err)
	}

	now := c.Clock.Now()
	products := make([]models.Product, 0, len(data.SearchResult.Items))
	for _, item := range data.SearchResult.Items {
		products = append(products, Normalize(item, now))
	}
	return products, nil
}
