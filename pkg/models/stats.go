package models

type UserStats struct {
	TotalSavings       int64       `json:"totalSavings"`
	ProductsTracked    int         `json:"productsTracked"`
	ActiveAlerts       int         `json:"activeAlerts"`
	PlatformsConnected int         `json:"platformsConnected"`
	AvgSavingsPerMonth int64       `json:"avgSavingsPerMonth"`
	TopCategory        string      `json:"topCategory"`
	FavoritePlatform   Marketplace `json:"favoritePlatform"`
}

type Recommendation struct {
	ID         string   `json:"id"`
	ProductID  string   `json:"productId"`
	Reason     string   `json:"reason"`
	Confidence float64  `json:"confidence"`
	Category   string   `json:"category"`
	Product    *Product `json:"product,omitempty"`
}
