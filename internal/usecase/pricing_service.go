package usecase

import (
	"fmt"

	"github.com/procurelens/backend/internal/domain"
)

// Pricing defaults. A zero value in PricingConfig means "use the default";
// negative values and values >= 1 are rejected at construction.
const (
	defaultNegotiationMargin = 0.05
	defaultVarianceThreshold = 0.20
)

// PricingConfig holds configuration for the pricing service.
type PricingConfig struct {
	NegotiationMargin float64
	VarianceThreshold float64
}

// PricingService computes fair-market pricing, anomaly flags and savings
// opportunities over caller-supplied offer snapshots. Every method
// recomputes from its arguments; nothing is cached between calls.
type PricingService struct {
	negotiationMargin float64
	varianceThreshold float64
}

// NewPricingService validates configuration and builds a pricing service.
func NewPricingService(cfg PricingConfig) (*PricingService, error) {
	margin := cfg.NegotiationMargin
	if margin == 0 {
		margin = defaultNegotiationMargin
	}
	if margin < 0 || margin >= 1 {
		return nil, fmt.Errorf("%w: got %v", domain.ErrInvalidMargin, cfg.NegotiationMargin)
	}

	threshold := cfg.VarianceThreshold
	if threshold == 0 {
		threshold = defaultVarianceThreshold
	}
	if threshold < 0 || threshold >= 1 {
		return nil, fmt.Errorf("%w: got %v", domain.ErrInvalidThreshold, cfg.VarianceThreshold)
	}

	return &PricingService{
		negotiationMargin: margin,
		varianceThreshold: threshold,
	}, nil
}

// Summarize builds the PriceSummary for one product from the snapshot.
// A product ID with zero offers yields ErrProductNotFound.
func (s *PricingService) Summarize(offers []domain.Offer, productID int) (*domain.PriceSummary, error) {
	product := offersForProduct(offers, productID)
	if len(product) == 0 {
		return nil, fmt.Errorf("%w: product %d", domain.ErrProductNotFound, productID)
	}

	prices := sellingPrices(product)
	lo, hi := minMax(prices)

	var mrpSum, discountSum float64
	quotes := make([]domain.SupplierQuote, len(product))
	for i, o := range product {
		mrpSum += o.MRP
		if o.MRP > 0 {
			discountSum += (o.MRP - o.SellingPrice) / o.MRP * 100
		}
		quotes[i] = domain.SupplierQuote{Supplier: o.SupplierName, Price: o.SellingPrice}
	}
	n := float64(len(product))

	return &domain.PriceSummary{
		ProductID:      productID,
		ProductName:    product[0].ProductName,
		Mean:           round2(mean(prices)),
		Median:         round2(median(prices)),
		StdDev:         round2(stdDev(prices)),
		Min:            round2(lo),
		Max:            round2(hi),
		FairPrice:      s.FairPrice(prices),
		AvgMRP:         round2(mrpSum / n),
		AvgDiscountPct: round2(discountSum / n),
		SupplierCount:  len(product),
		Quotes:         quotes,
	}, nil
}

// FairPrice estimates the fair market price: selling prices outside
// [Q1-1.5*IQR, Q3+1.5*IQR] are discarded and the median of the survivors is
// returned. If filtering removes everything the median of the unfiltered set
// is used, so a degenerate distribution still produces a price.
func (s *PricingService) FairPrice(prices []float64) float64 {
	if len(prices) == 0 {
		return 0
	}

	q1 := percentile(prices, 25)
	q3 := percentile(prices, 75)
	iqr := q3 - q1
	lo := q1 - 1.5*iqr
	hi := q3 + 1.5*iqr

	filtered := make([]float64, 0, len(prices))
	for _, p := range prices {
		if p >= lo && p <= hi {
			filtered = append(filtered, p)
		}
	}

	if len(filtered) == 0 {
		return round2(median(prices))
	}
	return round2(median(filtered))
}

// DetectAnomalies scans the whole snapshot and flags products whose
// coefficient of variation exceeds the configured threshold. Products with a
// single offer have no definable variance and are never flagged.
func (s *PricingService) DetectAnomalies(offers []domain.Offer) []domain.PriceAnomaly {
	anomalies := []domain.PriceAnomaly{}
	for _, g := range groupByProduct(offers) {
		if len(g.offers) < 2 {
			continue
		}
		prices := sellingPrices(g.offers)
		m := mean(prices)
		if m <= 0 {
			continue
		}
		cv := stdDev(prices) / m
		if cv <= s.varianceThreshold {
			continue
		}
		lo, hi := minMax(prices)
		anomalies = append(anomalies, domain.PriceAnomaly{
			ProductID:   g.id,
			ProductName: g.name,
			MinPrice:    round2(lo),
			MaxPrice:    round2(hi),
			VariancePct: round2(cv * 100),
			Status:      domain.AnomalyHighVariance,
		})
	}
	return anomalies
}

// SavingsOpportunity reports the spread between the cheapest and most
// expensive supplier for a product. Tied prices produce a zero-savings
// record rather than an error; a missing product yields ErrProductNotFound.
func (s *PricingService) SavingsOpportunity(offers []domain.Offer, productID int) (*domain.SavingsOpportunity, error) {
	product := offersForProduct(offers, productID)
	if len(product) == 0 {
		return nil, fmt.Errorf("%w: product %d", domain.ErrProductNotFound, productID)
	}
	return savingsFor(product), nil
}

// savingsFor assumes a non-empty offer group. First offer at the extreme
// price wins ties, so results are stable in input order.
func savingsFor(product []domain.Offer) *domain.SavingsOpportunity {
	prices := sellingPrices(product)
	lo, hi := minMax(prices)

	// First supplier at the min is "best", first at the max is "current".
	best, current := product[0].SupplierName, product[0].SupplierName
	for _, o := range product {
		if o.SellingPrice == lo {
			best = o.SupplierName
			break
		}
	}
	for _, o := range product {
		if o.SellingPrice == hi {
			current = o.SupplierName
			break
		}
	}

	savings := hi - lo
	var pct float64
	if hi > 0 {
		pct = savings / hi * 100
	}

	return &domain.SavingsOpportunity{
		ProductID:         product[0].ProductID,
		ProductName:       product[0].ProductName,
		Category:          product[0].Category,
		CurrentSupplier:   current,
		BestSupplier:      best,
		CurrentPrice:      round2(hi),
		BestPrice:         round2(lo),
		SavingsPerUnit:    round2(savings),
		SavingsPercentage: round2(pct),
	}
}

// NegotiatedPrice applies the configured negotiation margin to a fair price.
func (s *PricingService) NegotiatedPrice(fairPrice float64) float64 {
	return round2(fairPrice * (1 - s.negotiationMargin))
}

// NegotiatedPriceWithMargin applies a caller-supplied margin, rejecting
// values outside [0,1).
func (s *PricingService) NegotiatedPriceWithMargin(fairPrice, margin float64) (float64, error) {
	if margin < 0 || margin >= 1 {
		return 0, fmt.Errorf("%w: got %v", domain.ErrInvalidMargin, margin)
	}
	return round2(fairPrice * (1 - margin)), nil
}

// CompareSuppliers aggregates per-supplier pricing across the snapshot,
// cheapest average first. An empty snapshot returns an empty slice.
func (s *PricingService) CompareSuppliers(offers []domain.Offer) []domain.SupplierStats {
	index := make(map[string]int, len(offers))
	order := []string{}
	grouped := map[string][]float64{}
	for _, o := range offers {
		if _, ok := index[o.SupplierName]; !ok {
			index[o.SupplierName] = len(order)
			order = append(order, o.SupplierName)
		}
		grouped[o.SupplierName] = append(grouped[o.SupplierName], o.SellingPrice)
	}

	stats := make([]domain.SupplierStats, 0, len(order))
	for _, name := range order {
		prices := grouped[name]
		lo, hi := minMax(prices)
		stats = append(stats, domain.SupplierStats{
			SupplierName: name,
			AvgPrice:     round2(mean(prices)),
			MinPrice:     round2(lo),
			MaxPrice:     round2(hi),
			OfferCount:   len(prices),
		})
	}
	sortStableBy(stats, func(a, b domain.SupplierStats) bool { return a.AvgPrice < b.AvgPrice })
	return stats
}
