package amazon

import (
	"strings"
	"time"

	"price-radar/pkg/models"
)

type displayValue struct {
	DisplayValue string `json:"DisplayValue"`
}

type money struct {
	Amount float64 `json:"Amount"`
}

type image struct {
	URL string `json:"URL"`
}

type Listing struct {
	Price        *money `json:"Price"`
	SavingBasis  *money `json:"SavingBasis"`
	Availability struct {
		Type string `json:"Type"`
	} `json:"Availability"`
	MerchantInfo struct {
		Name string `json:"Name"`
	} `json:"MerchantInfo"`
	DeliveryInfo struct {
		IsFreeShippingEligible bool `json:"IsFreeShippingEligible"`
		IsPrimeEligible        bool `json:"IsPrimeEligible"`
	} `json:"DeliveryInfo"`
}

// Item is one SearchItems result.
type Item struct {
	ASIN          string `json:"ASIN"`
	DetailPageURL string `json:"DetailPageURL"`
	ItemInfo      struct {
		Title      displayValue `json:"Title"`
		ByLineInfo struct {
			Brand displayValue `json:"Brand"`
		} `json:"ByLineInfo"`
		Features struct {
			DisplayValues []string `json:"DisplayValues"`
		} `json:"Features"`
	} `json:"ItemInfo"`
	Offers struct {
		Listings []Listing `json:"Listings"`
	} `json:"Offers"`
	Images struct {
		Primary struct {
			Large image `json:"Large"`
		} `json:"Primary"`
		Variants []struct {
			Large image `json:"Large"`
		} `json:"Variants"`
	} `json:"Images"`
	BrowseNodeInfo struct {
		BrowseNodes []struct {
			DisplayName string `json:"DisplayName"`
		} `json:"BrowseNodes"`
	} `json:"BrowseNodeInfo"`
	CustomerReviews struct {
		Count      int `json:"Count"`
		StarRating struct {
			Value float64 `json:"Value"`
		} `json:"StarRating"`
	} `json:"CustomerReviews"`
}

func (m *money) value() float64 {
	if m == nil {
		return 0
	}
	return m.Amount
}

// Normalize maps a SearchItems result to a Product. Only the first offer listing is used.
func Normalize(item Item, now time.Time) models.Product {
	var listing Listing
	if len(item.Offers.Listings) > 0 {
		listing = item.Offers.Listings[0]
	}

	price := models.RoundRupees(listing.Price.value())
	original := models.RoundRupees(listing.SavingBasis.value())
	if original <= price {
		original = 0
	}

	category := "General"
	if nodes := item.BrowseNodeInfo.BrowseNodes; len(nodes) > 0 && nodes[0].DisplayName != "" {
		category = nodes[0].DisplayName
	}

	img := item.Images.Primary.Large.URL
	if img == "" {
		img = models.PlaceholderImage
	}
	images := make([]string, 0, len(item.Images.Variants))
	for _, v := range item.Images.Variants {
		if v.Large.URL != "" {
			images = append(images, v.Large.URL)
		}
	}

	seller := listing.MerchantInfo.Name
	if seller == "" {
		seller = models.Amazon.DisplayName()
	}

	shipping := "Standard delivery"
	switch {
	case listing.DeliveryInfo.IsPrimeEligible:
		shipping = "Prime delivery"
	case listing.DeliveryInfo.IsFreeShippingEligible:
		shipping = "Free delivery"
	}

	return models.Product{
		ID:             item.ASIN,
		SKU:            item.ASIN,
		Platform:       models.Amazon,
		Name:           item.ItemInfo.Title.DisplayValue,
		Description:    strings.Join(item.ItemInfo.Features.DisplayValues, ", "),
		Brand:          item.ItemInfo.ByLineInfo.Brand.DisplayValue,
		Category:       category,
		Image:          img,
		Images:         images,
		Price:          price,
		OriginalPrice:  original,
		Rating:         item.CustomerReviews.StarRating.Value,
		Reviews:        item.CustomerReviews.Count,
		InStock:        listing.Availability.Type == "Now",
		Seller:         seller,
		Shipping:       shipping,
		Specifications: map[string]string{},
		AffiliateURL:   item.DetailPageURL,
		LastUpdated:    now,
	}
}
