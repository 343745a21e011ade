package models

import (
	"math"
	"time"
)

// PlaceholderImage is used whenever a source does not provide a product image.
const PlaceholderImage = "/placeholder.svg"

type Product struct {
	ID             string            `json:"id"`
	SKU            string            `json:"sku"`
	Platform       Marketplace       `json:"platform"`
	Name           string            `json:"name"`
	Description    string            `json:"description"`
	Brand          string            `json:"brand"`
	Category       string            `json:"category"`
	Image          string            `json:"image"`
	Images         []string          `json:"images"`
	Price          int64             `json:"price"`
	OriginalPrice  int64             `json:"originalPrice,omitempty"`
	Rating         float64           `json:"rating"`
	Reviews        int               `json:"reviews"`
	InStock        bool              `json:"inStock"`
	Seller         string            `json:"seller"`
	Shipping       string            `json:"shipping"`
	Specifications map[string]string `json:"specifications"`
	AffiliateURL   string            `json:"affiliateUrl"`
	LastUpdated    time.Time         `json:"lastUpdated"`
}

// DiscountPercent returns the rounded discount against OriginalPrice.
// Products without an original price, or priced above it, report 0.
func (p Product) DiscountPercent() int {
	return DiscountPercent(p.OriginalPrice, p.Price)
}

// Savings is the absolute amount saved against OriginalPrice, never negative.
func (p Product) Savings() int64 {
	if p.OriginalPrice <= p.Price {
		return 0
	}
	return p.OriginalPrice - p.Price
}

// Key identifies a product across marketplaces.
func (p Product) Key() string {
	return string(p.Platform) + ":" + p.ID
}

// DiscountPercent computes round((original-sale)/original*100) clamped to [0,100].
func DiscountPercent(original, sale int64) int {
	if original <= 0 || sale >= original {
		return 0
	}
	pct := math.Round(float64(original-sale) / float64(original) * 100)
	if pct > 100 {
		return 100
	}
	return int(pct)
}

// RoundRupees converts an upstream amount to whole rupees.
func RoundRupees(amount float64) int64 {
	if amount <= 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0
	}
	return int64(math.Round(amount))
}

type PriceHistoryPoint struct {
	Date     string      `json:"date"`
	Price    int64       `json:"price"`
	Platform Marketplace `json:"platform"`
}

type PriceUpdate struct {
	ProductID string `json:"productId"`
	NewPrice  int64  `json:"newPrice"`
}
