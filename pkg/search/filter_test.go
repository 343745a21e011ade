package search

import (
	"testing"

	"price-radar/pkg/models"

	"github.com/stretchr/testify/assert"
)

func TestMatches(t *testing.T) {
	p := models.Product{
		Platform: models.Myntra,
		Name:     "Nike Air Max 270",
		Brand:    "Nike",
		Category: "Fashion",
		Price:    7495,
		Rating:   4.3,
		InStock:  false,
	}

	tests := []struct {
		name   string
		params models.SearchParams
		want   bool
	}{
		{"no filters", models.SearchParams{}, true},
		{"platform wildcard", models.SearchParams{Platform: "all"}, true},
		{"platform match", models.SearchParams{Platform: "Myntra"}, true},
		{"platform mismatch", models.SearchParams{Platform: "amazon"}, false},
		{"category case-insensitive", models.SearchParams{Category: "fashion"}, true},
		{"category all", models.SearchParams{Category: "all"}, true},
		{"category mismatch", models.SearchParams{Category: "Beauty"}, false},
		{"price inside bounds", models.SearchParams{MinPrice: 7495, MaxPrice: 7495}, true},
		{"price below min", models.SearchParams{MinPrice: 8000}, false},
		{"price above max", models.SearchParams{MaxPrice: 5000}, false},
		{"rating", models.SearchParams{MinRating: 4.3}, true},
		{"rating too high", models.SearchParams{MinRating: 4.5}, false},
		{"brand substring", models.SearchParams{Brand: "nik"}, true},
		{"brand mismatch", models.SearchParams{Brand: "adidas"}, false},
		{"in stock only", models.SearchParams{InStockOnly: true}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Matches(p, tt.params))
		})
	}
}

func TestMatchesQuery(t *testing.T) {
	p := models.Product{Name: "Apple iPhone 15 Pro", Description: "A17 Pro chip"}

	assert.True(t, MatchesQuery(p, "IPHONE"))
	assert.True(t, MatchesQuery(p, " a17 "))
	assert.False(t, MatchesQuery(p, "galaxy"))
	assert.False(t, MatchesQuery(p, ""))
}
