package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/procurelens/backend/config"
	"github.com/procurelens/backend/internal/domain"
	"github.com/procurelens/backend/internal/usecase"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func testOffers() []domain.Offer {
	return []domain.Offer{
		{ProductID: 1, ProductName: "India Gate Basmati Rice 5kg", Category: "Rice & Grains", Subcategory: "Basmati", Brand: "India Gate", SupplierName: "Alpha Traders", MRP: 600, SellingPrice: 520, PackSize: 5, Unit: "kg"},
		{ProductID: 1, ProductName: "India Gate Basmati Rice 5kg", Category: "Rice & Grains", Subcategory: "Basmati", Brand: "India Gate", SupplierName: "Beta Wholesale", MRP: 600, SellingPrice: 560, PackSize: 5, Unit: "kg"},
		{ProductID: 2, ProductName: "Fortune Sunflower Oil 1L", Category: "Edible Oil", Subcategory: "Sunflower Oil", Brand: "Fortune", SupplierName: "Alpha Traders", MRP: 200, SellingPrice: 180, PackSize: 1, Unit: "L"},
	}
}

// setupTestRouter wires real services over a small fixed snapshot. The
// metrics endpoint is disabled; MetricsMiddleware is exercised separately.
func setupTestRouter(t *testing.T) *gin.Engine {
	t.Helper()

	cfg := &config.Config{
		Server: config.ServerConfig{
			Port:           "8080",
			Environment:    "test",
			AllowedOrigins: []string{"http://localhost:*"},
		},
		RateLimit: config.RateLimitConfig{PerClient: 1000, Burst: 1000},
	}

	pricing, err := usecase.NewPricingService(usecase.PricingConfig{})
	if err != nil {
		t.Fatalf("NewPricingService() error = %v", err)
	}
	decision, err := usecase.NewDecisionService(usecase.DecisionConfig{})
	if err != nil {
		t.Fatalf("NewDecisionService() error = %v", err)
	}

	handler := NewHandler(
		testOffers(),
		usecase.NewClassifierService(),
		pricing,
		decision,
		usecase.NewPortfolioService(),
		usecase.NewCatalogService(),
		nil,
	)
	return SetupRouter(cfg, handler, nil)
}

func TestHealthCheckEndpoint(t *testing.T) {
	router := setupTestRouter(t)

	req, _ := http.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Status = %d, want %d", w.Code, http.StatusOK)
	}

	var response map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response["status"] != "healthy" {
		t.Errorf("status = %v, want healthy", response["status"])
	}
	if response["service"] != "procurelens-backend" {
		t.Errorf("service = %v, want procurelens-backend", response["service"])
	}
	if response["offers"] != float64(3) {
		t.Errorf("offers = %v, want 3", response["offers"])
	}
}

func TestClassifyEndpoint(t *testing.T) {
	router := setupTestRouter(t)

	t.Run("classifies a product name", func(t *testing.T) {
		payload := `{"productName":"Daawat Basmati Rice 1kg"}`
		req, _ := http.NewRequest("POST", "/api/v1/classify", strings.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Status = %d, want %d: %s", w.Code, http.StatusOK, w.Body.String())
		}

		var response map[string]interface{}
		if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
			t.Fatalf("Failed to unmarshal response: %v", err)
		}
		if response["category"] != "Rice & Grains" {
			t.Errorf("category = %v, want Rice & Grains", response["category"])
		}
		if response["subcategory"] != "Basmati" {
			t.Errorf("subcategory = %v, want Basmati", response["subcategory"])
		}
	})

	t.Run("rejects a missing product name", func(t *testing.T) {
		req, _ := http.NewRequest("POST", "/api/v1/classify", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusBadRequest)
		}
	})
}

func TestListProductsEndpoint(t *testing.T) {
	router := setupTestRouter(t)

	t.Run("lists every product once by default", func(t *testing.T) {
		req, _ := http.NewRequest("GET", "/api/v1/products", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Status = %d, want %d", w.Code, http.StatusOK)
		}

		var products []domain.Offer
		if err := json.Unmarshal(w.Body.Bytes(), &products); err != nil {
			t.Fatalf("Failed to unmarshal response: %v", err)
		}
		if len(products) != 2 {
			t.Errorf("len(products) = %d, want 2", len(products))
		}
	})

	t.Run("search takes priority over other filters", func(t *testing.T) {
		req, _ := http.NewRequest("GET", "/api/v1/products?q=sunflower&category=Rice+%26+Grains", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		var products []domain.Offer
		if err := json.Unmarshal(w.Body.Bytes(), &products); err != nil {
			t.Fatalf("Failed to unmarshal response: %v", err)
		}
		if len(products) != 1 || products[0].ProductID != 2 {
			t.Errorf("products = %v, want the oil product only", products)
		}
	})

	t.Run("filters by category", func(t *testing.T) {
		req, _ := http.NewRequest("GET", "/api/v1/products?category=Rice+%26+Grains", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		var products []domain.Offer
		if err := json.Unmarshal(w.Body.Bytes(), &products); err != nil {
			t.Fatalf("Failed to unmarshal response: %v", err)
		}
		if len(products) != 1 || products[0].ProductID != 1 {
			t.Errorf("products = %v, want the rice product only", products)
		}
	})

	t.Run("filters by price range", func(t *testing.T) {
		req, _ := http.NewRequest("GET", "/api/v1/products?minPrice=100&maxPrice=200", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		var products []domain.Offer
		if err := json.Unmarshal(w.Body.Bytes(), &products); err != nil {
			t.Fatalf("Failed to unmarshal response: %v", err)
		}
		if len(products) != 1 || products[0].ProductID != 2 {
			t.Errorf("products = %v, want the oil product only", products)
		}
	})
}

func TestProductDetailEndpoint(t *testing.T) {
	router := setupTestRouter(t)

	t.Run("returns offers cheapest first", func(t *testing.T) {
		req, _ := http.NewRequest("GET", "/api/v1/products/1", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Status = %d, want %d", w.Code, http.StatusOK)
		}

		var detail []domain.Offer
		if err := json.Unmarshal(w.Body.Bytes(), &detail); err != nil {
			t.Fatalf("Failed to unmarshal response: %v", err)
		}
		if len(detail) != 2 {
			t.Fatalf("len(detail) = %d, want 2", len(detail))
		}
		if detail[0].SupplierName != "Alpha Traders" {
			t.Errorf("detail[0].SupplierName = %q, want Alpha Traders", detail[0].SupplierName)
		}
	})

	t.Run("unknown product is a 404", func(t *testing.T) {
		req, _ := http.NewRequest("GET", "/api/v1/products/999", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusNotFound)
		}
	})

	t.Run("non-integer id is a 400", func(t *testing.T) {
		req, _ := http.NewRequest("GET", "/api/v1/products/abc", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusBadRequest)
		}
	})
}

func TestProductSummaryEndpoint(t *testing.T) {
	router := setupTestRouter(t)

	req, _ := http.NewRequest("GET", "/api/v1/products/1/summary", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Status = %d, want %d", w.Code, http.StatusOK)
	}

	var response struct {
		Summary         domain.PriceSummary `json:"summary"`
		NegotiatedPrice float64             `json:"negotiatedPrice"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if response.Summary.SupplierCount != 2 {
		t.Errorf("SupplierCount = %d, want 2", response.Summary.SupplierCount)
	}
	if response.Summary.Mean != 540 {
		t.Errorf("Mean = %v, want 540", response.Summary.Mean)
	}
	// Fair price 540, default 5% margin.
	if response.NegotiatedPrice != 513 {
		t.Errorf("NegotiatedPrice = %v, want 513", response.NegotiatedPrice)
	}
}

func TestProductSavingsEndpoint(t *testing.T) {
	router := setupTestRouter(t)

	req, _ := http.NewRequest("GET", "/api/v1/products/1/savings", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Status = %d, want %d", w.Code, http.StatusOK)
	}

	var savings domain.SavingsOpportunity
	if err := json.Unmarshal(w.Body.Bytes(), &savings); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if savings.BestSupplier != "Alpha Traders" {
		t.Errorf("BestSupplier = %q, want Alpha Traders", savings.BestSupplier)
	}
	if savings.SavingsPerUnit != 40 {
		t.Errorf("SavingsPerUnit = %v, want 40", savings.SavingsPerUnit)
	}
}

func TestRecommendEndpoint(t *testing.T) {
	router := setupTestRouter(t)

	t.Run("recommends for a known supplier", func(t *testing.T) {
		payload := `{"supplier":"alpha traders","stockLevel":30,"demandLevel":"High"}`
		req, _ := http.NewRequest("POST", "/api/v1/products/1/recommendation", strings.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Status = %d, want %d: %s", w.Code, http.StatusOK, w.Body.String())
		}

		var rec domain.Recommendation
		if err := json.Unmarshal(w.Body.Bytes(), &rec); err != nil {
			t.Fatalf("Failed to unmarshal response: %v", err)
		}
		if rec.Decision != domain.DecisionBuyNow {
			t.Errorf("Decision = %q, want Buy Now", rec.Decision)
		}
		if rec.Price != 520 {
			t.Errorf("Price = %v, want 520 (case-insensitive supplier match)", rec.Price)
		}
		if !strings.Contains(rec.Reasoning, "Stock Level: Low (30 units)") {
			t.Errorf("Reasoning = %q, missing stock segment", rec.Reasoning)
		}
	})

	t.Run("rejects a supplier with no offer", func(t *testing.T) {
		payload := `{"supplier":"Nobody","stockLevel":30,"demandLevel":"High"}`
		req, _ := http.NewRequest("POST", "/api/v1/products/1/recommendation", strings.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusBadRequest)
		}
	})

	t.Run("rejects an unknown demand level", func(t *testing.T) {
		payload := `{"supplier":"Alpha Traders","stockLevel":30,"demandLevel":"Extreme"}`
		req, _ := http.NewRequest("POST", "/api/v1/products/1/recommendation", strings.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusBadRequest)
		}
	})

	t.Run("unknown product is a 404", func(t *testing.T) {
		payload := `{"supplier":"Alpha Traders","stockLevel":30,"demandLevel":"High"}`
		req, _ := http.NewRequest("POST", "/api/v1/products/999/recommendation", strings.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusNotFound)
		}
	})
}

func TestCatalogEndpoints(t *testing.T) {
	router := setupTestRouter(t)

	t.Run("catalog summary", func(t *testing.T) {
		req, _ := http.NewRequest("GET", "/api/v1/catalog/summary", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Status = %d, want %d", w.Code, http.StatusOK)
		}

		var summary domain.CatalogSummary
		if err := json.Unmarshal(w.Body.Bytes(), &summary); err != nil {
			t.Fatalf("Failed to unmarshal response: %v", err)
		}
		if summary.TotalRecords != 3 || summary.UniqueProducts != 2 {
			t.Errorf("summary = %+v, want 3 records, 2 products", summary)
		}
	})

	t.Run("categories include taxonomy and composition", func(t *testing.T) {
		req, _ := http.NewRequest("GET", "/api/v1/categories", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		var response struct {
			Taxonomy    []string            `json:"taxonomy"`
			Composition map[string][]string `json:"composition"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
			t.Fatalf("Failed to unmarshal response: %v", err)
		}
		if len(response.Taxonomy) != 12 {
			t.Errorf("len(taxonomy) = %d, want 12", len(response.Taxonomy))
		}
		if subs := response.Composition["Rice & Grains"]; len(subs) != 1 || subs[0] != "Basmati" {
			t.Errorf("composition[Rice & Grains] = %v, want [Basmati]", subs)
		}
	})

	t.Run("suppliers sorted by average price", func(t *testing.T) {
		req, _ := http.NewRequest("GET", "/api/v1/suppliers", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		var stats []domain.SupplierStats
		if err := json.Unmarshal(w.Body.Bytes(), &stats); err != nil {
			t.Fatalf("Failed to unmarshal response: %v", err)
		}
		if len(stats) != 2 {
			t.Fatalf("len(stats) = %d, want 2", len(stats))
		}
		if stats[0].SupplierName != "Alpha Traders" {
			t.Errorf("stats[0] = %q, want Alpha Traders (cheaper on average)", stats[0].SupplierName)
		}
	})
}

func TestPortfolioEndpoints(t *testing.T) {
	router := setupTestRouter(t)

	t.Run("overview", func(t *testing.T) {
		req, _ := http.NewRequest("GET", "/api/v1/portfolio/overview", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		var overview domain.MarketOverview
		if err := json.Unmarshal(w.Body.Bytes(), &overview); err != nil {
			t.Fatalf("Failed to unmarshal response: %v", err)
		}
		if overview.TotalProducts != 2 || overview.TotalSuppliers != 2 {
			t.Errorf("overview = %+v, want 2 products, 2 suppliers", overview)
		}
	})

	t.Run("concentration", func(t *testing.T) {
		req, _ := http.NewRequest("GET", "/api/v1/portfolio/concentration", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		var report map[string]float64
		if err := json.Unmarshal(w.Body.Bytes(), &report); err != nil {
			t.Fatalf("Failed to unmarshal response: %v", err)
		}
		if report["Edible Oil"] != 10000 {
			t.Errorf("HHI[Edible Oil] = %v, want 10000 (single supplier)", report["Edible Oil"])
		}
		if report["Rice & Grains"] != 5000 {
			t.Errorf("HHI[Rice & Grains] = %v, want 5000 (two even suppliers)", report["Rice & Grains"])
		}
	})

	t.Run("savings ranking", func(t *testing.T) {
		req, _ := http.NewRequest("GET", "/api/v1/portfolio/savings", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		var out []domain.SavingsOpportunity
		if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
			t.Fatalf("Failed to unmarshal response: %v", err)
		}
		if len(out) != 1 || out[0].ProductID != 1 {
			t.Errorf("out = %v, want the rice product only", out)
		}
	})
}
