package domain

// AnomalyStatus labels why a product was flagged.
const AnomalyHighVariance = "High Variance"

// PriceAnomaly flags a product whose supplier prices disperse beyond the
// configured coefficient-of-variation threshold. Single-offer products are
// never anomalies.
type PriceAnomaly struct {
	ProductID   int     `json:"productId"`
	ProductName string  `json:"productName"`
	MinPrice    float64 `json:"minPrice"`
	MaxPrice    float64 `json:"maxPrice"`
	VariancePct float64 `json:"variancePct"`
	Status      string  `json:"status"`
}

// SavingsOpportunity quantifies the spread between the most and least
// expensive supplier for a product. All-tied prices yield a well-formed
// zero-savings record.
type SavingsOpportunity struct {
	ProductID         int     `json:"productId"`
	ProductName       string  `json:"productName"`
	Category          string  `json:"category,omitempty"`
	CurrentSupplier   string  `json:"currentSupplier"`
	BestSupplier      string  `json:"bestSupplier"`
	CurrentPrice      float64 `json:"currentPrice"`
	BestPrice         float64 `json:"bestPrice"`
	SavingsPerUnit    float64 `json:"savingsPerUnit"`
	SavingsPercentage float64 `json:"savingsPercentage"`
}

// ConcentrationReport maps category to its Herfindahl-Hirschman Index,
// each value in [0, 10000].
type ConcentrationReport map[string]float64

// CompetitivenessEntry scores one product's price dispersion. Higher score
// means more room for procurement leverage.
type CompetitivenessEntry struct {
	ProductID   int     `json:"productId"`
	ProductName string  `json:"productName"`
	AvgPrice    float64 `json:"avgPrice"`
	StdDev      float64 `json:"stdDev"`
	Score       float64 `json:"score"`
}

// StrategicEntry ranks a product for negotiation focus, rewarding both
// supplier breadth and price dispersion.
type StrategicEntry struct {
	ProductID     int     `json:"productId"`
	ProductName   string  `json:"productName"`
	SupplierCount int     `json:"supplierCount"`
	AvgPrice      float64 `json:"avgPrice"`
	StdDev        float64 `json:"stdDev"`
	Score         float64 `json:"score"`
}

// MarketOverview is the portfolio-wide headline view.
type MarketOverview struct {
	TotalProducts  int     `json:"totalProducts"`
	TotalSuppliers int     `json:"totalSuppliers"`
	Categories     int     `json:"categories"`
	Brands         int     `json:"brands"`
	AvgPrice       float64 `json:"avgPrice"`
	MedianPrice    float64 `json:"medianPrice"`
	PriceStdDev    float64 `json:"priceStdDev"`
}

// CatalogSummary describes the loaded offer table.
type CatalogSummary struct {
	TotalRecords   int      `json:"totalRecords"`
	UniqueProducts int      `json:"uniqueProducts"`
	Suppliers      int      `json:"suppliers"`
	Categories     int      `json:"categories"`
	Brands         int      `json:"brands"`
	Units          []string `json:"units"`
	AvgPrice       float64  `json:"avgPrice"`
	MinPrice       float64  `json:"minPrice"`
	MaxPrice       float64  `json:"maxPrice"`
}
