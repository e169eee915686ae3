package domain

import "strings"

// Decision is the three-way procurement recommendation.
type Decision string

const (
	DecisionBuyNow         Decision = "Buy Now"
	DecisionConsiderBuying Decision = "Consider Buying"
	DecisionWait           Decision = "Wait"
)

// StockCategory buckets a raw stock quantity.
type StockCategory string

const (
	StockLow    StockCategory = "Low"
	StockMedium StockCategory = "Medium"
	StockHigh   StockCategory = "High"
)

// Stock level thresholds in units.
const (
	LowStockThreshold    = 50
	MediumStockThreshold = 150
)

// CategorizeStock maps a stock quantity onto its category.
func CategorizeStock(stock int) StockCategory {
	switch {
	case stock < LowStockThreshold:
		return StockLow
	case stock < MediumStockThreshold:
		return StockMedium
	default:
		return StockHigh
	}
}

// DemandLevel is externally supplied market demand.
type DemandLevel string

const (
	DemandLow    DemandLevel = "Low"
	DemandMedium DemandLevel = "Medium"
	DemandHigh   DemandLevel = "High"
)

// ParseDemandLevel validates a raw demand string at the boundary. The rule
// table never sees an unknown level, so its conservative default only covers
// stock/demand combinations listed as defaults, not bad input.
func ParseDemandLevel(s string) (DemandLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return DemandLow, nil
	case "medium":
		return DemandMedium, nil
	case "high":
		return DemandHigh, nil
	default:
		return "", ErrInvalidDemandLevel
	}
}

// Recommendation is the immutable output of one decision evaluation.
// Reasoning is pipe-delimited; each fact is its own segment.
type Recommendation struct {
	Decision       Decision `json:"decision"`
	Supplier       string   `json:"supplier"`
	Price          float64  `json:"price"`
	BestSupplier   string   `json:"bestSupplier"`
	BestPrice      float64  `json:"bestPrice"`
	AveragePrice   float64  `json:"averagePrice"`
	SuggestedPrice float64  `json:"suggestedPrice"`
	Reasoning      string   `json:"reasoning"`
}
