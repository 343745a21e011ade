package search

import (
	"cmp"
	"slices"

	"price-radar/pkg/models"
)

var comparators = map[string]func(a, b models.Product) int{
	models.SortPriceLow: func(a, b models.Product) int {
		return cmp.Compare(a.Price, b.Price)
	},
	models.SortPriceHigh: func(a, b models.Product) int {
		return cmp.Compare(b.Price, a.Price)
	},
	models.SortRating: func(a, b models.Product) int {
		return cmp.Compare(b.Rating, a.Rating)
	},
	models.SortPopularity: byReviews,
	models.SortReviews:    byReviews,
	models.SortDiscount: func(a, b models.Product) int {
		return cmp.Compare(discountRatio(b), discountRatio(a))
	},
	models.SortNewest: func(a, b models.Product) int {
		return b.LastUpdated.Compare(a.LastUpdated)
	},
}

func byReviews(a, b models.Product) int {
	return cmp.Compare(b.Reviews, a.Reviews)
}

// discountRatio is the unrounded discount so near-equal discounts still order correctly.
func discountRatio(p models.Product) float64 {
	if p.OriginalPrice <= 0 || p.Price >= p.OriginalPrice {
		return 0
	}
	return float64(p.OriginalPrice-p.Price) / float64(p.OriginalPrice)
}

// Sort orders products in place by key. Unknown or empty keys keep the current order.
func Sort(products []models.Product, key string) {
	less, ok := comparators[key]
	if !ok {
		return
	}
	slices.SortStableFunc(products, less)
}
