package myntra

import (
	"strconv"
	"strings"
	"time"

	"price-radar/pkg/models"
)

// Item is one product of the embedded search state.
type Item struct {
	ProductID      int64   `json:"productId"`
	ProductName    string  `json:"productName"`
	Brand          string  `json:"brand"`
	Category       string  `json:"category"`
	Gender         string  `json:"gender"`
	PrimaryColour  string  `json:"primaryColour"`
	Sizes          string  `json:"sizes"`
	Price          float64 `json:"price"`
	MRP            float64 `json:"mrp"`
	Rating         float64 `json:"rating"`
	RatingCount    int     `json:"ratingCount"`
	SearchImage    string  `json:"searchImage"`
	LandingPageURL string  `json:"landingPageUrl"`
	Images         []struct {
		Src string `json:"src"`
	} `json:"images"`
	InventoryInfo []struct {
		Available bool `json:"available"`
	} `json:"inventoryInfo"`
}

func Normalize(item Item, now time.Time) models.Product {
	id := ""
	if item.ProductID > 0 {
		id = strconv.FormatInt(item.ProductID, 10)
	}

	price := models.RoundRupees(item.Price)
	original := models.RoundRupees(item.MRP)
	if original <= price {
		original = 0
	}

	category := item.Category
	if category == "" {
		category = "General"
	}

	images := make([]string, 0, len(item.Images))
	for _, img := range item.Images {
		if img.Src != "" {
			images = append(images, img.Src)
		}
	}
	image := item.SearchImage
	if image == "" && len(images) > 0 {
		image = images[0]
	}
	if image == "" {
		image = models.PlaceholderImage
	}

	inStock := len(item.InventoryInfo) == 0 && price > 0
	for _, inv := range item.InventoryInfo {
		if inv.Available {
			inStock = true
			break
		}
	}

	specs := map[string]string{}
	if item.Gender != "" {
		specs["Gender"] = item.Gender
	}
	if item.PrimaryColour != "" {
		specs["Colour"] = item.PrimaryColour
	}
	if item.Sizes != "" {
		specs["Sizes"] = item.Sizes
	}

	url := item.LandingPageURL
	if url != "" && !strings.HasPrefix(url, "http") {
		url = BaseURL + strings.TrimLeft(url, "/")
	}

	return models.Product{
		ID:             id,
		SKU:            id,
		Platform:       models.Myntra,
		Name:           item.ProductName,
		Brand:          item.Brand,
		Category:       category,
		Image:          image,
		Images:         images,
		Price:          price,
		OriginalPrice:  original,
		Rating:         item.Rating,
		Reviews:        item.RatingCount,
		InStock:        inStock,
		Seller:         models.Myntra.DisplayName(),
		Specifications: specs,
		AffiliateURL:   url,
		LastUpdated:    now,
	}
}
