package snapdeal

import (
	"time"

	"price-radar/pkg/models"
)

// Normalize maps a listing tile to a Product. The listing carries no brand or category.
func Normalize(card Card, now time.Time) models.Product {
	price := parseRupees(card.Price)
	original := parseRupees(card.OriginalPrice)
	if original <= price {
		original = 0
	}

	image := card.Image
	if image == "" {
		image = models.PlaceholderImage
	}

	return models.Product{
		ID:             card.ID,
		SKU:            card.ID,
		Platform:       models.Snapdeal,
		Name:           card.Title,
		Category:       "General",
		Image:          image,
		Images:         []string{},
		Price:          price,
		OriginalPrice:  original,
		Rating:         parseRating(card.RatingWidth),
		Reviews:        parseCount(card.Reviews),
		InStock:        !card.SoldOut && price > 0,
		Seller:         models.Snapdeal.DisplayName(),
		Specifications: map[string]string{},
		AffiliateURL:   card.Href,
		LastUpdated:    now,
	}
}
