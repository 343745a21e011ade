package flipkart

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"price-radar/pkg/clock"
	"price-radar/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const searchFixture = `{
  "products": [
    {
      "productId": "MOBGTAGPTB3VS24W",
      "productBaseInfoV1": {
        "title": "Apple iPhone 15 Pro (Natural Titanium, 128 GB)",
        "productDescription": "A17 Pro chip",
        "imageUrls": {"400x400": "https://img.example/400.jpg", "800x800": "https://img.example/800.jpg"},
        "productFamily": "Mobiles",
        "maximumRetailPrice": {"amount": 139900, "currency": "INR"},
        "flipkartSellingPrice": {"amount": 136900, "currency": "INR"},
        "flipkartSpecialPrice": {"amount": 134900.4, "currency": "INR"},
        "productUrl": "https://dl.flipkart.com/dl/apple-iphone-15-pro",
        "productBrand": "Apple",
        "inStock": true,
        "averageRating": 4.5,
        "totalRatingCount": 2847,
        "keySpecs": {"Storage": "128 GB"}
      }
    }
  ]
}`

func TestClient_Search(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "tracker", r.Header.Get("Fk-Affiliate-Id"))
		assert.Equal(t, "secret", r.Header.Get("Fk-Affiliate-Token"))

		var body searchRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "iphone", body.Query)
		assert.Equal(t, 20, body.ResultCount)

		fmt.Fprint(w, searchFixture)
	}))
	defer ts.Close()

	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	client := NewClient(ts.URL, "tracker", "secret", time.Second)
	client.Clock = clock.NewFake(now)

	products, err := client.Search(context.Background(), "iphone")
	require.NoError(t, err)
	require.Len(t, products, 1)

	p := products[0]
	assert.Equal(t, "MOBGTAGPTB3VS24W", p.ID)
	assert.Equal(t, models.Flipkart, p.Platform)
	assert.Equal(t, int64(134900), p.Price)
	assert.Equal(t, int64(139900), p.OriginalPrice)
	assert.Equal(t, "Mobiles", p.Category)
	assert.Equal(t, "Apple", p.Brand)
	assert.Equal(t, "https://img.example/400.jpg", p.Image)
	assert.Len(t, p.Images, 2)
	assert.Equal(t, "Flipkart", p.Seller)
	assert.Equal(t, now, p.LastUpdated)
}

func TestClient_SearchUpstreamError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	client := NewClient(ts.URL, "tracker", "secret", time.Second)

	_, err := client.Search(context.Background(), "iphone")
	assert.Error(t, err)
}

func TestNormalize_Defaults(t *testing.T) {
	now := time.Now()
	p := Normalize(Item{ProductID: "X1"}, now)

	assert.Equal(t, "X1", p.ID)
	assert.Equal(t, "General", p.Category)
	assert.Equal(t, "Flipkart", p.Seller)
	assert.Equal(t, models.PlaceholderImage, p.Image)
	assert.NotNil(t, p.Images)
	assert.NotNil(t, p.Specifications)
	assert.Zero(t, p.Price)
	assert.Zero(t, p.OriginalPrice)
	assert.False(t, p.InStock)
}

func TestNormalize_SellingPriceFallback(t *testing.T) {
	p := Normalize(Item{
		ProductID: "X2",
		ProductBaseInfo: BaseInfo{
			FlipkartSellingPrice: &amount{Amount: 1299.6},
		},
	}, time.Now())

	assert.Equal(t, int64(1300), p.Price)
	assert.Zero(t, p.OriginalPrice)
}
