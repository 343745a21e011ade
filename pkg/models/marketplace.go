package models

import "strings"

// Marketplace is one of the e-commerce sites integrated as a data source.
type Marketplace string

const (
	Flipkart Marketplace = "flipkart"
	Amazon   Marketplace = "amazon"
	Myntra   Marketplace = "myntra"
	Snapdeal Marketplace = "snapdeal"
	Paytm    Marketplace = "paytm"
	Ajio     Marketplace = "ajio"
	Nykaa    Marketplace = "nykaa"
	Meesho   Marketplace = "meesho"
)

// AllMarketplaces is the wildcard accepted wherever a platform selector is expected.
const AllMarketplaces = "all"

var displayNames = map[Marketplace]string{
	Flipkart: "Flipkart",
	Amazon:   "Amazon",
	Myntra:   "Myntra",
	Snapdeal: "Snapdeal",
	Paytm:    "Paytm Mall",
	Ajio:     "AJIO",
	Nykaa:    "Nykaa",
	Meesho:   "Meesho",
}

// Marketplaces lists every known marketplace in display order.
var Marketplaces = []Marketplace{Flipkart, Amazon, Myntra, Snapdeal, Paytm, Ajio, Nykaa, Meesho}

func (m Marketplace) DisplayName() string {
	return displayNames[m]
}

func (m Marketplace) Valid() bool {
	_, ok := displayNames[m]
	return ok
}

// ParseMarketplace resolves a case-insensitive name. The second result is false
// for the "all" wildcard, empty input and unknown names alike.
func ParseMarketplace(s string) (Marketplace, bool) {
	m := Marketplace(strings.ToLower(strings.TrimSpace(s)))
	if !m.Valid() {
		return "", false
	}
	return m, true
}

// IsWildcard reports whether a platform selector means "every marketplace".
func IsWildcard(selector string) bool {
	s := strings.TrimSpace(selector)
	return s == "" || strings.EqualFold(s, AllMarketplaces)
}
