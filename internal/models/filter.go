package models

// SortMode selects the ordering of the visible product list.
type SortMode string

const (
	SortLatest     SortMode = "latest"
	SortPriceLow   SortMode = "price-low"
	SortPriceHigh  SortMode = "price-high"
	SortPopularity SortMode = "popularity"
	SortName       SortMode = "name"
)

// Price bounds used when a client does not send any.
const (
	DefaultPriceMin = 5
	DefaultPriceMax = 399
)

// FilterConfig describes which products are visible and how they are ordered.
// Empty sets mean "no restriction"; an empty PetType means unset.
type FilterConfig struct {
	PriceMin   float64  `json:"priceMin"`
	PriceMax   float64  `json:"priceMax"`
	Categories []string `json:"categories"`
	Brands     []string `json:"brands"`
	Tags       []string `json:"tags"`
	PetType    string   `json:"petType"`
	Search     string   `json:"search"`
	Sort       SortMode `json:"sort"`
}

// DefaultFilterConfig returns the configuration of a freshly opened shop page.
func DefaultFilterConfig() FilterConfig {
	return FilterConfig{
		PriceMin: DefaultPriceMin,
		PriceMax: DefaultPriceMax,
		Sort:     SortLatest,
	}
}

// FacetCount is a filter option together with the number of products carrying it.
type FacetCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Facets are the available filter options derived from the full product list.
type Facets struct {
	Categories []FacetCount `json:"categories"`
	Brands     []FacetCount `json:"brands"`
	Tags       []string     `json:"tags"`
	Popular    []Product    `json:"popular"`
}
