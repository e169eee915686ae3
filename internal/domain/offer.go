package domain

// Offer is one supplier's listing of one product. Multiple offers share a
// product ID, one row per supplier. Selling price above MRP is unusual but
// valid; nothing corrects it silently.
type Offer struct {
	ProductID    int     `json:"productId"`
	ProductName  string  `json:"productName"`
	Category     string  `json:"category"`
	Subcategory  string  `json:"subcategory"`
	Brand        string  `json:"brand"`
	SupplierName string  `json:"supplierName"`
	MRP          float64 `json:"mrp"`
	SellingPrice float64 `json:"sellingPrice"`
	PackSize     float64 `json:"packSize"`
	Unit         string  `json:"unit"`
}

// SupplierQuote is a single supplier/price pair. Used instead of a map so
// that iteration order, and therefore tie-breaking, follows input order.
type SupplierQuote struct {
	Supplier string  `json:"supplier"`
	Price    float64 `json:"price"`
}

// PriceSummary is the derived pricing view of one product across its
// current suppliers. Recomputed on demand, never cached.
type PriceSummary struct {
	ProductID      int     `json:"productId"`
	ProductName    string  `json:"productName"`
	Mean           float64 `json:"mean"`
	Median         float64 `json:"median"`
	StdDev         float64 `json:"stdDev"`
	Min            float64 `json:"min"`
	Max            float64 `json:"max"`
	FairPrice      float64 `json:"fairPrice"`
	AvgMRP         float64 `json:"avgMrp"`
	AvgDiscountPct float64 `json:"avgDiscountPct"`
	SupplierCount  int     `json:"supplierCount"`

	Quotes []SupplierQuote `json:"quotes,omitempty"`
}

// SupplierStats aggregates one supplier's pricing across an offer set.
type SupplierStats struct {
	SupplierName string  `json:"supplierName"`
	AvgPrice     float64 `json:"avgPrice"`
	MinPrice     float64 `json:"minPrice"`
	MaxPrice     float64 `json:"maxPrice"`
	OfferCount   int     `json:"offerCount"`
}
