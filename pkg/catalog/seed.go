package catalog

import (
	"time"

	"price-radar/pkg/models"
)

const seedImage = "/placeholder.svg?height=400&width=400"

// SeedProducts returns the static dataset served for marketplaces without a live adapter.
func SeedProducts(now time.Time) []models.Product {
	images := func() []string { return []string{seedImage, seedImage} }
	return []models.Product{
		{
			ID: "1", SKU: "MOBGTAGPAQNVFZZY", Platform: models.Flipkart,
			Name:        "Apple iPhone 15 Pro 128GB Natural Titanium",
			Description: "Latest iPhone with A17 Pro chip, titanium design, and advanced camera system with Action Button",
			Brand:       "Apple", Category: "Electronics", Image: seedImage, Images: images(),
			Price: 134900, OriginalPrice: 139900, Rating: 4.8, Reviews: 2847, InStock: true,
			Seller: "Apple Store", Shipping: "Free delivery by tomorrow",
			Specifications: map[string]string{
				"Display": "6.1-inch Super Retina XDR",
				"Chip":    "A17 Pro",
				"Storage": "128GB",
				"Camera":  "48MP Main + 12MP Ultra Wide + 12MP Telephoto",
				"Battery": "Up to 23 hours video playback",
			},
			AffiliateURL: "https://flipkart.com/apple-iphone-15-pro", LastUpdated: now,
		},
		{
			ID: "2", SKU: "B0CMDRCZBZ", Platform: models.Amazon,
			Name:        "Samsung Galaxy S24 Ultra 256GB Titanium Black",
			Description: "AI-powered smartphone with S Pen, 200MP camera, and Galaxy AI features",
			Brand:       "Samsung", Category: "Electronics", Image: seedImage, Images: images(),
			Price: 124999, OriginalPrice: 129999, Rating: 4.5, Reviews: 3421, InStock: true,
			Seller: "Samsung India", Shipping: "Free delivery",
			Specifications: map[string]string{
				"Display":   "6.8-inch Dynamic AMOLED 2X",
				"Processor": "Snapdragon 8 Gen 3",
				"Storage":   "256GB",
				"Camera":    "200MP + 50MP + 12MP + 10MP",
				"Battery":   "5000mAh with 45W fast charging",
			},
			AffiliateURL: "https://amazon.in/samsung-galaxy-s24-ultra", LastUpdated: now,
		},
		{
			ID: "3", SKU: "WH1000XM4B", Platform: models.Amazon,
			Name:        "Sony WH-1000XM4 Wireless Noise Canceling Headphones",
			Description: "Industry-leading noise canceling with Dual Noise Sensor technology and 30-hour battery life",
			Brand:       "Sony", Category: "Electronics", Image: seedImage, Images: images(),
			Price: 19990, OriginalPrice: 29990, Rating: 4.9, Reviews: 5432, InStock: true,
			Seller: "Sony India", Shipping: "Free delivery",
			Specifications: map[string]string{
				"Type":            "Over-ear wireless",
				"Noise Canceling": "Industry-leading with Dual Noise Sensor",
				"Battery":         "30 hours with ANC",
				"Connectivity":    "Bluetooth 5.0, NFC",
				"Features":        "Touch controls, Quick Attention mode",
			},
			AffiliateURL: "https://amazon.in/sony-wh-1000xm4", LastUpdated: now,
		},
		{
			ID: "4", SKU: "MLY33HN/A", Platform: models.Flipkart,
			Name:        "MacBook Air 13-inch M2 Chip 256GB Midnight",
			Description: "Supercharged by M2 chip with 8-core CPU and 8-core GPU, up to 18 hours battery life",
			Brand:       "Apple", Category: "Electronics", Image: seedImage, Images: images(),
			Price: 99900, OriginalPrice: 114900, Rating: 4.6, Reviews: 892, InStock: false,
			Seller: "Apple India", Shipping: "Free delivery",
			Specifications: map[string]string{
				"Chip":    "Apple M2 with 8-core CPU",
				"Memory":  "8GB unified memory",
				"Storage": "256GB SSD",
				"Display": "13.6-inch Liquid Retina",
				"Battery": "Up to 18 hours",
			},
			AffiliateURL: "https://flipkart.com/macbook-air-m2", LastUpdated: now,
		},
		{
			ID: "5", SKU: "AH8050-100", Platform: models.Myntra,
			Name:        "Nike Air Max 270 Running Shoes",
			Description: "Comfortable running shoes with Air Max technology and breathable mesh upper",
			Brand:       "Nike", Category: "Fashion", Image: seedImage, Images: images(),
			Price: 7495, OriginalPrice: 9995, Rating: 4.3, Reviews: 1876, InStock: true,
			Seller: "Nike India", Shipping: "Free delivery above ₹799",
			Specifications: map[string]string{
				"Type":     "Running shoes",
				"Material": "Mesh and synthetic",
				"Sole":     "Air Max cushioning",
				"Closure":  "Lace-up",
				"Care":     "Wipe with clean, dry cloth",
			},
			AffiliateURL: "https://myntra.com/nike-air-max-270", LastUpdated: now,
		},
		{
			ID: "6", SKU: "AD141", Platform: models.Flipkart,
			Name:        "Boat Airdopes 141 Bluetooth True Wireless Earbuds",
			Description: "True wireless earbuds with 42H playtime, ENx technology, and BEAST mode for gaming",
			Brand:       "Boat", Category: "Electronics", Image: seedImage, Images: images(),
			Price: 1299, OriginalPrice: 2990, Rating: 4.1, Reviews: 12543, InStock: true,
			Seller: "Boat Official Store", Shipping: "Free delivery",
			Specifications: map[string]string{
				"Type":         "True wireless earbuds",
				"Playtime":     "42 hours total",
				"Drivers":      "8mm dynamic drivers",
				"Connectivity": "Bluetooth v5.2",
				"Features":     "ENx technology, BEAST mode",
			},
			AffiliateURL: "https://flipkart.com/boat-airdopes-141", LastUpdated: now,
		},
		{
			ID: "7", SKU: "LAK001", Platform: models.Nykaa,
			Name:        "Lakme Absolute Perfect Radiance Skin Brightening Foundation",
			Description: "Long-lasting foundation with SPF 20 and skin brightening formula for natural glow",
			Brand:       "Lakme", Category: "Beauty", Image: seedImage, Images: images(),
			Price: 675, OriginalPrice: 750, Rating: 4.2, Reviews: 2341, InStock: true,
			Seller: "Nykaa", Shipping: "Free delivery above ₹499",
			Specifications: map[string]string{
				"Type":      "Liquid foundation",
				"Coverage":  "Medium to full",
				"Finish":    "Natural radiant",
				"SPF":       "SPF 20",
				"Skin Type": "All skin types",
			},
			AffiliateURL: "https://nykaa.com/lakme-absolute-perfect-radiance", LastUpdated: now,
		},
		{
			ID: "8", SKU: "CPH2609", Platform: models.Amazon,
			Name:        "OnePlus 12R 256GB Cool Blue",
			Description: "Flagship performance with Snapdragon 8 Gen 2, 100W SUPERVOOC charging, and Trinity Engine",
			Brand:       "OnePlus", Category: "Electronics", Image: seedImage, Images: images(),
			Price: 42999, OriginalPrice: 45999, Rating: 4.4, Reviews: 1567, InStock: true,
			Seller: "OnePlus Store", Shipping: "Free delivery",
			Specifications: map[string]string{
				"Display":   "6.78-inch LTPO4 AMOLED",
				"Processor": "Snapdragon 8 Gen 2",
				"Storage":   "256GB UFS 4.0",
				"Camera":    "50MP + 8MP + 2MP",
				"Battery":   "5400mAh with 100W charging",
			},
			AffiliateURL: "https://amazon.in/oneplus-12r", LastUpdated: now,
		},
	}
}

type dealSeed struct {
	id        string
	productID string
	title     string
	dealType  models.DealType
	expiresIn time.Duration
	hot       bool
	trending  bool
}

var dealSeeds = []dealSeed{
	{"1", "3", "Sony WH-1000XM4 Wireless Headphones", models.DealFlash, 2 * time.Hour, true, true},
	{"2", "5", "Nike Air Max 270 Running Shoes", models.DealFestival, 29 * time.Hour, false, true},
	{"3", "6", "Boat Airdopes 141 Bluetooth Earbuds", models.DealClearance, 3 * time.Hour, true, false},
}

// SeedDeals derives the promotional deals from the seeded products.
func SeedDeals(products []models.Product, now time.Time) []models.Deal {
	byID := make(map[string]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	deals := make([]models.Deal, 0, len(dealSeeds))
	for _, s := range dealSeeds {
		p, ok := byID[s.productID]
		if !ok {
			continue
		}
		d := models.NewDeal(s.id, p, s.dealType, now.Add(s.expiresIn), s.hot, s.trending)
		d.Title = s.title
		d.Image = "/placeholder.svg?height=200&width=200"
		deals = append(deals, d)
	}
	return deals
}

func SeedRecommendations() []models.Recommendation {
	return []models.Recommendation{
		{ID: "1", ProductID: "1", Reason: "Based on your recent smartphone searches", Confidence: 0.85, Category: "Electronics"},
		{ID: "2", ProductID: "3", Reason: "Frequently bought with your recent purchases", Confidence: 0.78, Category: "Electronics"},
		{ID: "3", ProductID: "5", Reason: "Popular in your area", Confidence: 0.72, Category: "Fashion"},
	}
}

// NewSeededStore builds a MemoryStore with the full static dataset.
func NewSeededStore(now time.Time) *MemoryStore {
	products := SeedProducts(now)
	return NewMemoryStore(products, SeedDeals(products, now), SeedRecommendations())
}
