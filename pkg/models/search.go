package models

// SearchParams carries one search request. Zero values mean "not given".
type SearchParams struct {
	Query       string  `json:"query"`
	Platform    string  `json:"platform,omitempty"`
	Category    string  `json:"category,omitempty"`
	MinPrice    int64   `json:"minPrice,omitempty"`
	MaxPrice    int64   `json:"maxPrice,omitempty"`
	MinRating   float64 `json:"minRating,omitempty"`
	Brand       string  `json:"brand,omitempty"`
	InStockOnly bool    `json:"inStockOnly,omitempty"`
	SortBy      string  `json:"sortBy,omitempty"`
}

const (
	SortPriceLow   = "price-low"
	SortPriceHigh  = "price-high"
	SortRating     = "rating"
	SortPopularity = "popularity"
	SortReviews    = "reviews"
	SortDiscount   = "discount"
	SortNewest     = "newest"
)
