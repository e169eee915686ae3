package usecase

import "github.com/procurelens/backend/internal/domain"

// PortfolioService computes cross-product market analytics. Every method is
// a pure reduction over the snapshot it is handed; empty snapshots yield
// empty results, never errors.
type PortfolioService struct{}

// NewPortfolioService builds a portfolio analytics service.
func NewPortfolioService() *PortfolioService {
	return &PortfolioService{}
}

// MarketConcentration computes the Herfindahl-Hirschman Index per category:
// each supplier's share of offer count within the category as a percentage,
// squared and summed. Range [0, 10000]; a single-supplier category scores
// exactly 10000.
func (s *PortfolioService) MarketConcentration(offers []domain.Offer) domain.ConcentrationReport {
	byCategory := make(map[string]map[string]int)
	order := []string{}
	for _, o := range offers {
		if _, ok := byCategory[o.Category]; !ok {
			byCategory[o.Category] = make(map[string]int)
			order = append(order, o.Category)
		}
		byCategory[o.Category][o.SupplierName]++
	}

	report := make(domain.ConcentrationReport, len(order))
	for _, cat := range order {
		counts := byCategory[cat]
		var total int
		for _, c := range counts {
			total += c
		}
		var hhi float64
		for _, c := range counts {
			share := float64(c) / float64(total) * 100
			hhi += share * share
		}
		report[cat] = round2(hhi)
	}
	return report
}

// Competitiveness scores each product's price dispersion as CV x 100.
// Single-offer products have zero variance and rank lowest; that is a
// defined outcome, not an error. Descending by score, input order on ties.
func (s *PortfolioService) Competitiveness(offers []domain.Offer) []domain.CompetitivenessEntry {
	entries := []domain.CompetitivenessEntry{}
	for _, g := range groupByProduct(offers) {
		prices := sellingPrices(g.offers)
		m := mean(prices)
		sd := stdDev(prices)
		var score float64
		if m > 0 {
			score = sd / m * 100
		}
		entries = append(entries, domain.CompetitivenessEntry{
			ProductID:   g.id,
			ProductName: g.name,
			AvgPrice:    round2(m),
			StdDev:      round2(sd),
			Score:       round2(score),
		})
	}
	sortStableBy(entries, func(a, b domain.CompetitivenessEntry) bool { return a.Score > b.Score })
	return entries
}

// StrategicProducts ranks products for negotiation focus: supplier breadth
// times price dispersion (supplierCount x CV x 100).
func (s *PortfolioService) StrategicProducts(offers []domain.Offer) []domain.StrategicEntry {
	entries := []domain.StrategicEntry{}
	for _, g := range groupByProduct(offers) {
		prices := sellingPrices(g.offers)
		m := mean(prices)
		sd := stdDev(prices)
		suppliers := uniqueSuppliers(g.offers)
		var score float64
		if m > 0 {
			score = float64(suppliers) * (sd / m) * 100
		}
		entries = append(entries, domain.StrategicEntry{
			ProductID:     g.id,
			ProductName:   g.name,
			SupplierCount: suppliers,
			AvgPrice:      round2(m),
			StdDev:        round2(sd),
			Score:         round2(score),
		})
	}
	sortStableBy(entries, func(a, b domain.StrategicEntry) bool { return a.Score > b.Score })
	return entries
}

// SavingsPotential applies the savings-opportunity computation to every
// product with more than one offer, ranked descending by savings percentage.
// Products whose suppliers are all tied appear as zero-savings rows at the
// bottom.
func (s *PortfolioService) SavingsPotential(offers []domain.Offer) []domain.SavingsOpportunity {
	out := []domain.SavingsOpportunity{}
	for _, g := range groupByProduct(offers) {
		if len(g.offers) < 2 {
			continue
		}
		out = append(out, *savingsFor(g.offers))
	}
	sortStableBy(out, func(a, b domain.SavingsOpportunity) bool {
		return a.SavingsPercentage > b.SavingsPercentage
	})
	return out
}

// MarketOverview reduces the snapshot to headline counts and price moments.
func (s *PortfolioService) MarketOverview(offers []domain.Offer) domain.MarketOverview {
	if len(offers) == 0 {
		return domain.MarketOverview{}
	}

	products := make(map[int]struct{})
	suppliers := make(map[string]struct{})
	categories := make(map[string]struct{})
	brands := make(map[string]struct{})
	for _, o := range offers {
		products[o.ProductID] = struct{}{}
		suppliers[o.SupplierName] = struct{}{}
		categories[o.Category] = struct{}{}
		brands[o.Brand] = struct{}{}
	}

	prices := sellingPrices(offers)
	return domain.MarketOverview{
		TotalProducts:  len(products),
		TotalSuppliers: len(suppliers),
		Categories:     len(categories),
		Brands:         len(brands),
		AvgPrice:       round2(mean(prices)),
		MedianPrice:    round2(median(prices)),
		PriceStdDev:    round2(stdDev(prices)),
	}
}
