// Package catalog computes the visible product list and the available filter
// options from an in-memory product list. Every function is pure: inputs are
// never modified and results depend only on the arguments.
package catalog

import (
	"sort"
	"strings"

	"petstore/internal/models"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// VisibleProducts returns the products of all that satisfy cfg, ordered by
// cfg.Sort. The result is a new slice.
func VisibleProducts(all []models.Product, cfg models.FilterConfig) []models.Product {
	m := newMatcher(cfg)
	visible := make([]models.Product, 0, len(all))
	for _, p := range all {
		if m.matches(p) {
			visible = append(visible, p)
		}
	}
	SortProducts(visible, cfg.Sort)
	return visible
}

// Matches reports whether p satisfies every active predicate of cfg.
func Matches(p models.Product, cfg models.FilterConfig) bool {
	return newMatcher(cfg).matches(p)
}

type matcher struct {
	cfg        models.FilterConfig
	fold       cases.Caser
	search     string
	categories map[string]struct{}
	brands     map[string]struct{}
	tags       []string
}

func newMatcher(cfg models.FilterConfig) *matcher {
	m := &matcher{
		cfg:        cfg,
		fold:       cases.Fold(),
		categories: toSet(cfg.Categories),
		brands:     toSet(cfg.Brands),
		tags:       cfg.Tags,
	}
	if cfg.Search != "" {
		m.search = m.fold.String(cfg.Search)
	}
	return m
}

func (m *matcher) matches(p models.Product) bool {
	if m.search != "" && !strings.Contains(m.fold.String(p.Name), m.search) {
		return false
	}
	if p.Price < m.cfg.PriceMin || p.Price > m.cfg.PriceMax {
		return false
	}
	if m.cfg.PetType != "" && p.PetType != m.cfg.PetType && p.PetType != models.PetTypeAll {
		return false
	}
	if !inSet(m.categories, p.Category) {
		return false
	}
	if !inSet(m.brands, p.Brand) {
		return false
	}
	if len(m.tags) > 0 && !anyTag(p, m.tags) {
		return false
	}
	return true
}

// SortProducts orders products in place. The sort is stable; SortLatest and
// unknown modes keep the current order.
func SortProducts(products []models.Product, mode models.SortMode) {
	switch mode {
	case models.SortPriceLow:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price < products[j].Price
		})
	case models.SortPriceHigh:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price > products[j].Price
		})
	case models.SortPopularity:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].RatingOrZero() > products[j].RatingOrZero()
		})
	case models.SortName:
		c := collate.New(language.English)
		sort.SliceStable(products, func(i, j int) bool {
			return c.CompareString(products[i].Name, products[j].Name) < 0
		})
	}
}

// ParseSortMode maps a client value to a SortMode, falling back to SortLatest.
func ParseSortMode(s string) models.SortMode {
	switch mode := models.SortMode(s); mode {
	case models.SortPriceLow, models.SortPriceHigh, models.SortPopularity, models.SortName:
		return mode
	default:
		return models.SortLatest
	}
}

func toSet(values []string) map[string]struct{} {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

// inSet treats an empty set as "no restriction".
func inSet(set map[string]struct{}, v string) bool {
	if len(set) == 0 {
		return true
	}
	_, ok := set[v]
	return ok
}

func anyTag(p models.Product, tags []string) bool {
	for _, t := range tags {
		if p.HasTag(t) {
			return true
		}
	}
	return false
}
