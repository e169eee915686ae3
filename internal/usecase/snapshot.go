package usecase

import (
	"sort"

	"github.com/procurelens/backend/internal/domain"
)

// productGroup collects the offers of one product in input order.
type productGroup struct {
	id     int
	name   string
	offers []domain.Offer
}

// groupByProduct partitions a snapshot by product ID, preserving first-seen
// product order and per-product offer order. Downstream rankings rely on
// this for their stable tie-break.
func groupByProduct(offers []domain.Offer) []productGroup {
	index := make(map[int]int, len(offers))
	groups := make([]productGroup, 0, len(offers))
	for _, o := range offers {
		i, ok := index[o.ProductID]
		if !ok {
			i = len(groups)
			index[o.ProductID] = i
			groups = append(groups, productGroup{id: o.ProductID, name: o.ProductName})
		}
		groups[i].offers = append(groups[i].offers, o)
	}
	return groups
}

func offersForProduct(offers []domain.Offer, productID int) []domain.Offer {
	var out []domain.Offer
	for _, o := range offers {
		if o.ProductID == productID {
			out = append(out, o)
		}
	}
	return out
}

func sellingPrices(offers []domain.Offer) []float64 {
	prices := make([]float64, len(offers))
	for i, o := range offers {
		prices[i] = o.SellingPrice
	}
	return prices
}

// sortStableBy keeps input order for equal elements, which is the documented
// tie-break for every ranking table.
func sortStableBy[T any](items []T, less func(a, b T) bool) {
	sort.SliceStable(items, func(i, j int) bool { return less(items[i], items[j]) })
}

func uniqueSuppliers(offers []domain.Offer) int {
	seen := make(map[string]struct{}, len(offers))
	for _, o := range offers {
		seen[o.SupplierName] = struct{}{}
	}
	return len(seen)
}
