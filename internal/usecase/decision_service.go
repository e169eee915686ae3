package usecase

import (
	"fmt"
	"strings"

	"github.com/procurelens/backend/internal/domain"
)

// Preferred-price thresholds. The general threshold gates "is this supplier
// meaningfully below market", the override threshold gates the high-stock
// exception. They are deliberately distinct constants: the asymmetry is a
// policy choice carried over from the original rule set, not something
// derivable from the other numbers.
const (
	defaultGeneralPreferenceThreshold = 0.10
	defaultHighStockOverrideThreshold = 0.15
)

// DecisionConfig holds configuration for the decision service. Zero values
// select the defaults; values outside [0,1) are rejected.
type DecisionConfig struct {
	NegotiationMargin          float64
	GeneralPreferenceThreshold float64
	HighStockOverrideThreshold float64
}

// decisionInput is the categorical state one rule row is matched against.
type decisionInput struct {
	stock   domain.StockCategory
	demand  domain.DemandLevel
	price   float64
	average float64
}

// decisionRule is one (predicate, outcome) row. Rules live in an ordered
// slice and are evaluated first-match-wins; later rows are exceptions and
// defaults for earlier ones, so the order is part of the contract.
type decisionRule struct {
	name    string
	when    func(decisionInput) bool
	outcome domain.Decision
}

// RecommendationInput carries the five inputs of one evaluation. Quotes is a
// slice, not a map, so best-supplier ties resolve by input order.
type RecommendationInput struct {
	Supplier   string
	Price      float64
	Quotes     []domain.SupplierQuote
	StockLevel int
	Demand     domain.DemandLevel
}

// DecisionService emits procurement recommendations from an ordered rule
// table over stock category and demand level, with a price-preference check.
// Pure: no state survives between calls.
type DecisionService struct {
	margin            float64
	generalThreshold  float64
	overrideThreshold float64
	rules             []decisionRule
}

// NewDecisionService validates configuration and builds the rule table.
func NewDecisionService(cfg DecisionConfig) (*DecisionService, error) {
	margin := cfg.NegotiationMargin
	if margin == 0 {
		margin = defaultNegotiationMargin
	}
	if margin < 0 || margin >= 1 {
		return nil, fmt.Errorf("%w: got %v", domain.ErrInvalidMargin, cfg.NegotiationMargin)
	}

	general := cfg.GeneralPreferenceThreshold
	if general == 0 {
		general = defaultGeneralPreferenceThreshold
	}
	override := cfg.HighStockOverrideThreshold
	if override == 0 {
		override = defaultHighStockOverrideThreshold
	}
	for _, t := range []float64{general, override} {
		if t < 0 || t >= 1 {
			return nil, fmt.Errorf("%w: got %v", domain.ErrInvalidThreshold, t)
		}
	}

	s := &DecisionService{
		margin:            margin,
		generalThreshold:  general,
		overrideThreshold: override,
	}
	s.rules = []decisionRule{
		{
			name: "low stock, high demand",
			when: func(in decisionInput) bool {
				return in.stock == domain.StockLow && in.demand == domain.DemandHigh
			},
			outcome: domain.DecisionBuyNow,
		},
		{
			name: "medium stock, high demand",
			when: func(in decisionInput) bool {
				return in.stock == domain.StockMedium && in.demand == domain.DemandHigh
			},
			outcome: domain.DecisionConsiderBuying,
		},
		{
			name: "high stock override: high demand at preferred price",
			when: func(in decisionInput) bool {
				return in.stock == domain.StockHigh && in.demand == domain.DemandHigh &&
					isPreferredPrice(in.price, in.average, s.overrideThreshold)
			},
			outcome: domain.DecisionConsiderBuying,
		},
		{
			name: "high stock",
			when: func(in decisionInput) bool {
				return in.stock == domain.StockHigh
			},
			outcome: domain.DecisionWait,
		},
		{
			name: "medium stock, low or medium demand",
			when: func(in decisionInput) bool {
				return in.stock == domain.StockMedium
			},
			outcome: domain.DecisionWait,
		},
	}

	return s, nil
}

// isPreferredPrice reports whether price is strictly below average by more
// than the given fraction.
func isPreferredPrice(price, average, threshold float64) bool {
	return price < average*(1-threshold)
}

// IsPreferred applies the general preference threshold.
func (s *DecisionService) IsPreferred(price, average float64) bool {
	return isPreferredPrice(price, average, s.generalThreshold)
}

// Decide runs the rule table. Remaining combinations (low stock with low or
// medium demand) fall through to the conservative default.
func (s *DecisionService) Decide(stock domain.StockCategory, demand domain.DemandLevel, price, average float64) domain.Decision {
	in := decisionInput{stock: stock, demand: demand, price: price, average: average}
	for _, rule := range s.rules {
		if rule.when(in) {
			return rule.outcome
		}
	}
	return domain.DecisionWait
}

// Recommend is the main entry point: it derives the market metrics from the
// quote table, runs the rule table and assembles the reasoning string.
func (s *DecisionService) Recommend(in RecommendationInput) (*domain.Recommendation, error) {
	switch in.Demand {
	case domain.DemandLow, domain.DemandMedium, domain.DemandHigh:
	default:
		return nil, fmt.Errorf("%w: got %q", domain.ErrInvalidDemandLevel, in.Demand)
	}
	if len(in.Quotes) == 0 {
		return nil, domain.ErrEmptyOfferSet
	}

	prices := make([]float64, len(in.Quotes))
	for i, q := range in.Quotes {
		prices[i] = q.Price
	}
	average := round2(mean(prices))

	best := in.Quotes[0]
	for _, q := range in.Quotes[1:] {
		if q.Price < best.Price {
			best = q
		}
	}

	stockCat := domain.CategorizeStock(in.StockLevel)
	decision := s.Decide(stockCat, in.Demand, in.Price, average)

	return &domain.Recommendation{
		Decision:       decision,
		Supplier:       in.Supplier,
		Price:          round2(in.Price),
		BestSupplier:   best.Supplier,
		BestPrice:      round2(best.Price),
		AveragePrice:   average,
		SuggestedPrice: round2(average * (1 - s.margin)),
		Reasoning:      buildReasoning(decision, stockCat, in.StockLevel, in.Demand, in.Price, average, best.Supplier),
	}, nil
}

// buildReasoning emits one pipe-delimited segment per reported fact: stock
// category, demand level, chosen price vs average, savings when below
// average, best supplier, and the decision rationale.
func buildReasoning(
	decision domain.Decision,
	stockCat domain.StockCategory,
	stockLevel int,
	demand domain.DemandLevel,
	price, average float64,
	bestSupplier string,
) string {
	parts := []string{
		fmt.Sprintf("Stock Level: %s (%d units)", stockCat, stockLevel),
		fmt.Sprintf("Demand: %s", demand),
		fmt.Sprintf("Supplier selected at $%.2f vs market average of $%.2f", price, average),
	}

	if price < average && average > 0 {
		parts = append(parts, fmt.Sprintf("Savings: %.1f%% below average", (average-price)/average*100))
	}

	parts = append(parts, fmt.Sprintf("Best supplier available: %s", bestSupplier))

	switch decision {
	case domain.DecisionBuyNow:
		parts = append(parts, "Low inventory with high demand requires immediate procurement")
	case domain.DecisionConsiderBuying:
		parts = append(parts, "Consider purchase if pricing remains favorable")
	default:
		parts = append(parts, "Current stock levels are sufficient; monitor for price improvements")
	}

	return strings.Join(parts, " | ")
}
