package api

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"price-radar/pkg/models"
)

// parseSearchParams reads the search query string. Malformed numbers are rejected.
func parseSearchParams(q url.Values) (models.SearchParams, error) {
	params := models.SearchParams{
		Query:    q.Get("q"),
		Platform: q.Get("platform"),
		Category: q.Get("category"),
		Brand:    q.Get("brand"),
		SortBy:   q.Get("sortBy"),
	}
	if params.Query == "" {
		params.Query = q.Get("query")
	}

	var err error
	if params.MinPrice, err = parseAmount(q, "minPrice"); err != nil {
		return params, err
	}
	if params.MaxPrice, err = parseAmount(q, "maxPrice"); err != nil {
		return params, err
	}
	if raw := q.Get("minRating"); raw != "" {
		params.MinRating, err = strconv.ParseFloat(raw, 64)
		if err != nil || params.MinRating < 0 || params.MinRating > 5 {
			return params, fmt.Errorf("minRating must be a number between 0 and 5")
		}
	}
	if raw := q.Get("inStockOnly"); raw != "" {
		params.InStockOnly, err = strconv.ParseBool(raw)
		if err != nil {
			return params, fmt.Errorf("inStockOnly must be true or false")
		}
	}
	return params, nil
}

func parseAmount(q url.Values, key string) (int64, error) {
	raw := q.Get(key)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("%s must be a non-negative whole number", key)
	}
	return v, nil
}

func splitIDs(raw string) []string {
	var ids []string
	for _, id := range strings.Split(raw, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}
