package usecase

import (
	"fmt"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/procurelens/backend/internal/domain"
)

const (
	defaultSearchLimit = 50

	// Fuzzy matching is restricted to longer tokens to avoid false
	// positives on short words.
	fuzzyMinTokenLen     = 5
	fuzzyMaxEditDistance = 1
)

// CatalogService provides browsing, search and filtering over offer
// snapshots for the dashboard collaborator. All methods are pure functions
// of their snapshot argument.
type CatalogService struct{}

// NewCatalogService builds a catalog service.
func NewCatalogService() *CatalogService {
	return &CatalogService{}
}

// Search matches the query against product name, brand, category and
// subcategory, case-insensitively. Exact substring containment matches
// first; tokens that miss fall back to an edit-distance-1 comparison so
// small typos ("basmoti") still find their product. Results are deduplicated
// by product ID in input order and capped at limit (default 50).
func (s *CatalogService) Search(offers []domain.Offer, query string, limit int) []domain.Offer {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	seen := make(map[int]struct{})
	results := []domain.Offer{}
	for _, o := range offers {
		if _, dup := seen[o.ProductID]; dup {
			continue
		}
		if !matchesQuery(o, query) {
			continue
		}
		seen[o.ProductID] = struct{}{}
		results = append(results, o)
		if len(results) >= limit {
			break
		}
	}
	return results
}

func matchesQuery(o domain.Offer, query string) bool {
	haystack := strings.ToLower(o.ProductName + " " + o.Brand + " " + o.Category + " " + o.Subcategory)
	if strings.Contains(haystack, query) {
		return true
	}

	// Every query token must hit some haystack token, fuzzily or exactly.
	queryTokens := strings.Fields(query)
	if len(queryTokens) == 0 {
		return false
	}
	haystackTokens := strings.Fields(haystack)
	for _, qt := range queryTokens {
		if !tokenMatches(qt, haystackTokens) {
			return false
		}
	}
	return true
}

func tokenMatches(token string, candidates []string) bool {
	for _, c := range candidates {
		if strings.Contains(c, token) {
			return true
		}
		if len(token) >= fuzzyMinTokenLen && len(c) >= fuzzyMinTokenLen &&
			levenshtein.ComputeDistance(token, c) <= fuzzyMaxEditDistance {
			return true
		}
	}
	return false
}

// ByCategory returns the offers of each product in a category, one row per
// product (first offer seen).
func (s *CatalogService) ByCategory(offers []domain.Offer, category string) []domain.Offer {
	return dedupeByProduct(offers, func(o domain.Offer) bool { return o.Category == category })
}

// BySubcategory returns one row per product in a subcategory.
func (s *CatalogService) BySubcategory(offers []domain.Offer, subcategory string) []domain.Offer {
	return dedupeByProduct(offers, func(o domain.Offer) bool { return o.Subcategory == subcategory })
}

// ByBrand returns one row per product of a brand, optionally narrowed to a
// category.
func (s *CatalogService) ByBrand(offers []domain.Offer, brand, category string) []domain.Offer {
	return dedupeByProduct(offers, func(o domain.Offer) bool {
		if o.Brand != brand {
			return false
		}
		return category == "" || o.Category == category
	})
}

// FilterByPriceRange returns one row per product whose selling price falls
// in [minPrice, maxPrice].
func (s *CatalogService) FilterByPriceRange(offers []domain.Offer, minPrice, maxPrice float64) []domain.Offer {
	return dedupeByProduct(offers, func(o domain.Offer) bool {
		return o.SellingPrice >= minPrice && o.SellingPrice <= maxPrice
	})
}

// FilterByPackSize returns one row per product matching the unit and the
// optional size bounds (zero bound means unbounded).
func (s *CatalogService) FilterByPackSize(offers []domain.Offer, unit string, minSize, maxSize float64) []domain.Offer {
	return dedupeByProduct(offers, func(o domain.Offer) bool {
		if o.Unit != unit {
			return false
		}
		if minSize > 0 && o.PackSize < minSize {
			return false
		}
		if maxSize > 0 && o.PackSize > maxSize {
			return false
		}
		return true
	})
}

func dedupeByProduct(offers []domain.Offer, keep func(domain.Offer) bool) []domain.Offer {
	seen := make(map[int]struct{})
	out := []domain.Offer{}
	for _, o := range offers {
		if !keep(o) {
			continue
		}
		if _, dup := seen[o.ProductID]; dup {
			continue
		}
		seen[o.ProductID] = struct{}{}
		out = append(out, o)
	}
	return out
}

// ProductDetail returns every supplier offer for a product, cheapest first.
func (s *CatalogService) ProductDetail(offers []domain.Offer, productID int) ([]domain.Offer, error) {
	product := offersForProduct(offers, productID)
	if len(product) == 0 {
		return nil, fmt.Errorf("%w: product %d", domain.ErrProductNotFound, productID)
	}
	sortStableBy(product, func(a, b domain.Offer) bool { return a.SellingPrice < b.SellingPrice })
	return product, nil
}

// Summary reduces the snapshot to catalog-wide counts and price bounds.
func (s *CatalogService) Summary(offers []domain.Offer) domain.CatalogSummary {
	if len(offers) == 0 {
		return domain.CatalogSummary{Units: []string{}}
	}

	products := make(map[int]struct{})
	suppliers := make(map[string]struct{})
	categories := make(map[string]struct{})
	brands := make(map[string]struct{})
	unitSet := make(map[string]struct{})
	for _, o := range offers {
		products[o.ProductID] = struct{}{}
		suppliers[o.SupplierName] = struct{}{}
		categories[o.Category] = struct{}{}
		brands[o.Brand] = struct{}{}
		unitSet[o.Unit] = struct{}{}
	}

	units := make([]string, 0, len(unitSet))
	for u := range unitSet {
		units = append(units, u)
	}
	sort.Strings(units)

	prices := sellingPrices(offers)
	lo, hi := minMax(prices)
	return domain.CatalogSummary{
		TotalRecords:   len(offers),
		UniqueProducts: len(products),
		Suppliers:      len(suppliers),
		Categories:     len(categories),
		Brands:         len(brands),
		Units:          units,
		AvgPrice:       round2(mean(prices)),
		MinPrice:       round2(lo),
		MaxPrice:       round2(hi),
	}
}

// Composition maps each category to its sorted subcategories.
func (s *CatalogService) Composition(offers []domain.Offer) map[string][]string {
	sets := make(map[string]map[string]struct{})
	for _, o := range offers {
		if sets[o.Category] == nil {
			sets[o.Category] = make(map[string]struct{})
		}
		sets[o.Category][o.Subcategory] = struct{}{}
	}

	out := make(map[string][]string, len(sets))
	for cat, subs := range sets {
		list := make([]string, 0, len(subs))
		for sub := range subs {
			list = append(list, sub)
		}
		sort.Strings(list)
		out[cat] = list
	}
	return out
}
