package models

import (
	"fmt"
	"time"
)

type DealType string

const (
	DealFlash     DealType = "flash"
	DealFestival  DealType = "festival"
	DealClearance DealType = "clearance"
	DealBulk      DealType = "bulk"
)

type Deal struct {
	ID            string      `json:"id"`
	ProductID     string      `json:"productId"`
	Title         string      `json:"title"`
	OriginalPrice int64       `json:"originalPrice"`
	SalePrice     int64       `json:"salePrice"`
	Discount      int         `json:"discount"`
	Platform      Marketplace `json:"platform"`
	Category      string      `json:"category"`
	Image         string      `json:"image"`
	TimeLeft      string      `json:"timeLeft"`
	Rating        float64     `json:"rating"`
	IsHot         bool        `json:"isHot"`
	IsTrending    bool        `json:"isTrending"`
	ExpiresAt     time.Time   `json:"expiresAt"`
	DealType      DealType    `json:"dealType"`
}

// NewDeal derives a deal from a product's current pricing.
func NewDeal(id string, p Product, dealType DealType, expiresAt time.Time, hot, trending bool) Deal {
	original := p.OriginalPrice
	if original < p.Price {
		original = p.Price
	}
	return Deal{
		ID:            id,
		ProductID:     p.ID,
		Title:         p.Name,
		OriginalPrice: original,
		SalePrice:     p.Price,
		Discount:      DiscountPercent(original, p.Price),
		Platform:      p.Platform,
		Category:      p.Category,
		Image:         p.Image,
		Rating:        p.Rating,
		IsHot:         hot,
		IsTrending:    trending,
		ExpiresAt:     expiresAt,
		DealType:      dealType,
	}
}

// FormatTimeLeft renders the remaining time until expiry, e.g. "2h 15m" or "1d 5h".
func FormatTimeLeft(expiresAt, now time.Time) string {
	d := expiresAt.Sub(now)
	if d <= 0 {
		return "expired"
	}
	days := int(d / (24 * time.Hour))
	hours := int(d%(24*time.Hour)) / int(time.Hour)
	minutes := int(d%time.Hour) / int(time.Minute)

	if days > 0 {
		return fmt.Sprintf("%dd %dh", days, hours)
	}
	return fmt.Sprintf("%dh %dm", hours, minutes)
}
