package catalog

import (
	"sort"

	"petstore/internal/models"
)

// DefaultPopularLimit is the number of products in the "popular" sidebar.
const DefaultPopularLimit = 5

// CategoryCounts returns each distinct category with its product count, in
// order of first appearance.
func CategoryCounts(all []models.Product) []models.FacetCount {
	return countBy(all, func(p models.Product) string { return p.Category })
}

// BrandCounts returns each distinct brand with its product count, in order of
// first appearance.
func BrandCounts(all []models.Product) []models.FacetCount {
	return countBy(all, func(p models.Product) string { return p.Brand })
}

func countBy(all []models.Product, key func(models.Product) string) []models.FacetCount {
	counts := make([]models.FacetCount, 0)
	index := make(map[string]int)
	for _, p := range all {
		k := key(p)
		if i, ok := index[k]; ok {
			counts[i].Count++
			continue
		}
		index[k] = len(counts)
		counts = append(counts, models.FacetCount{Name: k, Count: 1})
	}
	return counts
}

// AllTags returns the sorted union of every product's tags.
func AllTags(all []models.Product) []string {
	seen := make(map[string]struct{})
	tags := make([]string, 0)
	for _, p := range all {
		for _, t := range p.Tags {
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			tags = append(tags, t)
		}
	}
	sort.Strings(tags)
	return tags
}

// PopularProducts returns at most n products ordered by rating, highest
// first. Products without a rating count as 0; ties keep input order.
func PopularProducts(all []models.Product, n int) []models.Product {
	if n <= 0 {
		return []models.Product{}
	}
	ranked := make([]models.Product, len(all))
	copy(ranked, all)
	SortProducts(ranked, models.SortPopularity)
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// BuildFacets derives every filter option from all.
func BuildFacets(all []models.Product, popularLimit int) models.Facets {
	return models.Facets{
		Categories: CategoryCounts(all),
		Brands:     BrandCounts(all),
		Tags:       AllTags(all),
		Popular:    PopularProducts(all, popularLimit),
	}
}
