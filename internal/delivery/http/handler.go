package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/procurelens/backend/internal/domain"
	"github.com/procurelens/backend/internal/metrics"
	"github.com/procurelens/backend/internal/usecase"
)

// Handler holds dependencies for HTTP handlers. The offer snapshot is loaded
// once at startup and treated as immutable, so handlers can share it across
// concurrent requests without locking.
type Handler struct {
	offers     []domain.Offer
	classifier *usecase.ClassifierService
	pricing    *usecase.PricingService
	decision   *usecase.DecisionService
	portfolio  *usecase.PortfolioService
	catalog    *usecase.CatalogService
	collector  *metrics.Collector
}

// NewHandler creates a new HTTP handler.
func NewHandler(
	offers []domain.Offer,
	classifier *usecase.ClassifierService,
	pricing *usecase.PricingService,
	decision *usecase.DecisionService,
	portfolio *usecase.PortfolioService,
	catalog *usecase.CatalogService,
	collector *metrics.Collector,
) *Handler {
	return &Handler{
		offers:     offers,
		classifier: classifier,
		pricing:    pricing,
		decision:   decision,
		portfolio:  portfolio,
		catalog:    catalog,
		collector:  collector,
	}
}

// HealthCheck returns the health status of the API.
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "procurelens-backend",
		"offers":  len(h.offers),
	})
}

// ClassifyRequest is the body of POST /classify.
type ClassifyRequest struct {
	ProductName string `json:"productName" binding:"required"`
}

// Classify maps a product name onto the category taxonomy.
func (h *Handler) Classify(c *gin.Context) {
	var req ClassifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "productName is required"})
		return
	}

	category, subcategory := h.classifier.Classify(req.ProductName)
	if h.collector != nil {
		h.collector.ObserveClassification(category)
	}
	c.JSON(http.StatusOK, gin.H{
		"productName": req.ProductName,
		"category":    category,
		"subcategory": subcategory,
	})
}

// ListProducts browses the catalog. Exactly one view is applied, chosen from
// the query params in priority order: q (search), category, subcategory,
// brand, price range, unit. With no params it lists every product once.
func (h *Handler) ListProducts(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))

	switch {
	case c.Query("q") != "":
		c.JSON(http.StatusOK, h.catalog.Search(h.offers, c.Query("q"), limit))
	case c.Query("category") != "" && c.Query("brand") != "":
		c.JSON(http.StatusOK, h.catalog.ByBrand(h.offers, c.Query("brand"), c.Query("category")))
	case c.Query("category") != "":
		c.JSON(http.StatusOK, h.catalog.ByCategory(h.offers, c.Query("category")))
	case c.Query("subcategory") != "":
		c.JSON(http.StatusOK, h.catalog.BySubcategory(h.offers, c.Query("subcategory")))
	case c.Query("brand") != "":
		c.JSON(http.StatusOK, h.catalog.ByBrand(h.offers, c.Query("brand"), ""))
	case c.Query("minPrice") != "" || c.Query("maxPrice") != "":
		minPrice, _ := strconv.ParseFloat(c.DefaultQuery("minPrice", "0"), 64)
		maxPrice, err := strconv.ParseFloat(c.Query("maxPrice"), 64)
		if err != nil {
			maxPrice = 1e12
		}
		c.JSON(http.StatusOK, h.catalog.FilterByPriceRange(h.offers, minPrice, maxPrice))
	case c.Query("unit") != "":
		minSize, _ := strconv.ParseFloat(c.Query("minSize"), 64)
		maxSize, _ := strconv.ParseFloat(c.Query("maxSize"), 64)
		c.JSON(http.StatusOK, h.catalog.FilterByPackSize(h.offers, c.Query("unit"), minSize, maxSize))
	default:
		c.JSON(http.StatusOK, h.catalog.FilterByPriceRange(h.offers, 0, 1e12))
	}
}

// ProductDetail returns every supplier offer for a product, cheapest first.
func (h *Handler) ProductDetail(c *gin.Context) {
	id, ok := h.productID(c)
	if !ok {
		return
	}
	detail, err := h.catalog.ProductDetail(h.offers, id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// ProductSummary returns the pricing summary plus the negotiated target
// price derived from the fair price.
func (h *Handler) ProductSummary(c *gin.Context) {
	id, ok := h.productID(c)
	if !ok {
		return
	}
	summary, err := h.pricing.Summarize(h.offers, id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"summary":         summary,
		"negotiatedPrice": h.pricing.NegotiatedPrice(summary.FairPrice),
	})
}

// ProductSavings returns the savings opportunity for a product.
func (h *Handler) ProductSavings(c *gin.Context) {
	id, ok := h.productID(c)
	if !ok {
		return
	}
	savings, err := h.pricing.SavingsOpportunity(h.offers, id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, savings)
}

// RecommendRequest is the body of POST /products/:id/recommendation.
type RecommendRequest struct {
	Supplier    string `json:"supplier" binding:"required"`
	StockLevel  int    `json:"stockLevel"`
	DemandLevel string `json:"demandLevel" binding:"required"`
}

// Recommend evaluates the procurement rule table for a product and a chosen
// supplier.
func (h *Handler) Recommend(c *gin.Context) {
	id, ok := h.productID(c)
	if !ok {
		return
	}

	var req RecommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "supplier and demandLevel are required"})
		return
	}

	demand, err := domain.ParseDemandLevel(req.DemandLevel)
	if err != nil {
		h.writeError(c, err)
		return
	}

	product := []domain.Offer{}
	for _, o := range h.offers {
		if o.ProductID == id {
			product = append(product, o)
		}
	}
	if len(product) == 0 {
		h.writeError(c, domain.ErrProductNotFound)
		return
	}

	quotes := make([]domain.SupplierQuote, len(product))
	var price float64
	found := false
	for i, o := range product {
		quotes[i] = domain.SupplierQuote{Supplier: o.SupplierName, Price: o.SellingPrice}
		if strings.EqualFold(o.SupplierName, req.Supplier) && !found {
			price = o.SellingPrice
			found = true
		}
	}
	if !found {
		c.JSON(http.StatusBadRequest, gin.H{"error": "supplier has no offer for this product"})
		return
	}

	rec, err := h.decision.Recommend(usecase.RecommendationInput{
		Supplier:   req.Supplier,
		Price:      price,
		Quotes:     quotes,
		StockLevel: req.StockLevel,
		Demand:     demand,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	if h.collector != nil {
		h.collector.ObserveRecommendation(string(rec.Decision))
	}
	c.JSON(http.StatusOK, rec)
}

// Anomalies lists products whose supplier prices disperse beyond the
// variance threshold.
func (h *Handler) Anomalies(c *gin.Context) {
	c.JSON(http.StatusOK, h.pricing.DetectAnomalies(h.offers))
}

// Suppliers compares supplier pricing across the catalog, cheapest first.
func (h *Handler) Suppliers(c *gin.Context) {
	c.JSON(http.StatusOK, h.pricing.CompareSuppliers(h.offers))
}

// CatalogSummary describes the loaded snapshot.
func (h *Handler) CatalogSummary(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalog.Summary(h.offers))
}

// Categories returns the taxonomy order plus the catalog's observed
// category/subcategory composition.
func (h *Handler) Categories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"taxonomy":    h.classifier.Categories(),
		"composition": h.catalog.Composition(h.offers),
	})
}

// PortfolioOverview returns the market overview reduction.
func (h *Handler) PortfolioOverview(c *gin.Context) {
	c.JSON(http.StatusOK, h.portfolio.MarketOverview(h.offers))
}

// PortfolioConcentration returns HHI per category.
func (h *Handler) PortfolioConcentration(c *gin.Context) {
	c.JSON(http.StatusOK, h.portfolio.MarketConcentration(h.offers))
}

// PortfolioCompetitiveness returns the price-dispersion ranking.
func (h *Handler) PortfolioCompetitiveness(c *gin.Context) {
	c.JSON(http.StatusOK, h.portfolio.Competitiveness(h.offers))
}

// PortfolioStrategic returns the negotiation-focus ranking.
func (h *Handler) PortfolioStrategic(c *gin.Context) {
	c.JSON(http.StatusOK, h.portfolio.StrategicProducts(h.offers))
}

// PortfolioSavings returns the portfolio-wide savings ranking.
func (h *Handler) PortfolioSavings(c *gin.Context) {
	c.JSON(http.StatusOK, h.portfolio.SavingsPotential(h.offers))
}

func (h *Handler) productID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "product id must be an integer"})
		return 0, false
	}
	return id, true
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrProductNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrInvalidDemandLevel),
		errors.Is(err, domain.ErrInvalidMargin),
		errors.Is(err, domain.ErrInvalidThreshold),
		errors.Is(err, domain.ErrInvalidRequest),
		errors.Is(err, domain.ErrEmptyOfferSet):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
