package flipkart

import (
	"sort"
	"time"

	"price-radar/pkg/models"
)

type amount struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

type BaseInfo struct {
	ProductID            string            `json:"productId"`
	Title                string            `json:"title"`
	ProductDescription   string            `json:"productDescription"`
	ImageURLs            map[string]string `json:"imageUrls"`
	ProductFamily        string            `json:"productFamily"`
	MaximumRetailPrice   *amount           `json:"maximumRetailPrice"`
	FlipkartSellingPrice *amount           `json:"flipkartSellingPrice"`
	FlipkartSpecialPrice *amount           `json:"flipkartSpecialPrice"`
	ProductURL           string            `json:"productUrl"`
	ProductBrand         string            `json:"productBrand"`
	Brand                string            `json:"brand"`
	InStock              bool              `json:"inStock"`
	CodAvailable         bool              `json:"codAvailable"`
	AverageRating        float64           `json:"averageRating"`
	TotalRatingCount     int               `json:"totalRatingCount"`
	KeySpecs             map[string]string `json:"keySpecs"`
	SellerName           string            `json:"sellerName"`
}

// Item is one entry of the affiliate search response.
type Item struct {
	ProductID       string   `json:"productId"`
	ProductBaseInfo BaseInfo `json:"productBaseInfoV1"`
}

func (a *amount) value() float64 {
	if a == nil {
		return 0
	}
	return a.Amount
}

// Normalize maps an affiliate API item to a Product with safe defaults.
// The special price wins over the selling price; MRP is the original price.
func Normalize(item Item, now time.Time) models.Product {
	info := item.ProductBaseInfo

	id := item.ProductID
	if id == "" {
		id = info.ProductID
	}

	price := models.RoundRupees(info.FlipkartSpecialPrice.value())
	if price == 0 {
		price = models.RoundRupees(info.FlipkartSellingPrice.value())
	}
	original := models.RoundRupees(info.MaximumRetailPrice.value())
	if original == 0 {
		original = models.RoundRupees(info.FlipkartSellingPrice.value())
	}
	if original <= price {
		original = 0
	}

	brand := info.ProductBrand
	if brand == "" {
		brand = info.Brand
	}

	category := info.ProductFamily
	if category == "" {
		category = "General"
	}

	seller := info.SellerName
	if seller == "" {
		seller = models.Flipkart.DisplayName()
	}

	images := imageList(info.ImageURLs)
	image := info.ImageURLs["400x400"]
	if image == "" && len(images) > 0 {
		image = images[0]
	}
	if image == "" {
		image = models.PlaceholderImage
	}

	specs := info.KeySpecs
	if specs == nil {
		specs = map[string]string{}
	}

	shipping := "Free delivery"
	if info.CodAvailable {
		shipping = "Free delivery, Cash on delivery"
	}

	return models.Product{
		ID:             id,
		SKU:            id,
		Platform:       models.Flipkart,
		Name:           info.Title,
		Description:    info.ProductDescription,
		Brand:          brand,
		Category:       category,
		Image:          image,
		Images:         images,
		Price:          price,
		OriginalPrice:  original,
		Rating:         info.AverageRating,
		Reviews:        info.TotalRatingCount,
		InStock:        info.InStock,
		Seller:         seller,
		Shipping:       shipping,
		Specifications: specs,
		AffiliateURL:   info.ProductURL,
		LastUpdated:    now,
	}
}

// imageList returns the image urls ordered by size key for stable output.
func imageList(urls map[string]string) []string {
	keys := make([]string, 0, len(urls))
	for k := range urls {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	images := make([]string, 0, len(keys))
	for _, k := range keys {
		if urls[k] != "" {
			images = append(images, urls[k])
		}
	}
	return images
}
