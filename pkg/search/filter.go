package search

import (
	"strings"

	"price-radar/pkg/models"
)

// MatchesQuery is the text predicate used for static and catalog data:
// name or description contains the query, ignoring case.
func MatchesQuery(p models.Product, query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return false
	}
	return strings.Contains(strings.ToLower(p.Name), q) ||
		strings.Contains(strings.ToLower(p.Description), q)
}

// Matches applies every filter in params conjunctively. The query itself is not checked.
func Matches(p models.Product, params models.SearchParams) bool {
	if !models.IsWildcard(params.Platform) && !strings.EqualFold(string(p.Platform), strings.TrimSpace(params.Platform)) {
		return false
	}
	if !models.IsWildcard(params.Category) && !strings.EqualFold(p.Category, strings.TrimSpace(params.Category)) {
		return false
	}
	if params.MinPrice > 0 && p.Price < params.MinPrice {
		return false
	}
	if params.MaxPrice > 0 && p.Price > params.MaxPrice {
		return false
	}
	if params.MinRating > 0 && p.Rating < params.MinRating {
		return false
	}
	if b := strings.TrimSpace(params.Brand); b != "" && !strings.Contains(strings.ToLower(p.Brand), strings.ToLower(b)) {
		return false
	}
	if params.InStockOnly && !p.InStock {
		return false
	}
	return true
}

// Filter keeps the products matching params, preserving order.
func Filter(products []models.Product, params models.SearchParams) []models.Product {
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if Matches(p, params) {
			out = append(out, p)
		}
	}
	return out
}
