package main

import (
	"fmt"
	"log"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/procurelens/backend/config"
	httpDelivery "github.com/procurelens/backend/internal/delivery/http"
	"github.com/procurelens/backend/internal/infrastructure/catalog"
	"github.com/procurelens/backend/internal/metrics"
	"github.com/procurelens/backend/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting ProcureLens Backend")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)
	log.Printf("Catalog: %s", cfg.Catalog.CSVPath)

	// Load the offer snapshot. It is immutable for the life of the process;
	// every analysis recomputes from it.
	loader := catalog.NewLoader(cfg.Catalog.CSVPath)
	loaded, err := loader.Load()
	if err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}
	if loaded.RowsSkipped > 0 {
		log.Printf("WARNING: skipped %d of %d catalog rows with bad numeric fields", loaded.RowsSkipped, loaded.RowsTotal)
	}

	classifier := usecase.NewClassifierService()
	offers := classifier.Enrich(loaded.Offers)

	pricing, err := usecase.NewPricingService(usecase.PricingConfig{
		NegotiationMargin: cfg.Pricing.NegotiationMargin,
		VarianceThreshold: cfg.Pricing.VarianceThreshold,
	})
	if err != nil {
		log.Fatalf("Invalid pricing configuration: %v", err)
	}

	decision, err := usecase.NewDecisionService(usecase.DecisionConfig{
		NegotiationMargin:          cfg.Pricing.NegotiationMargin,
		GeneralPreferenceThreshold: cfg.Decision.GeneralPreferenceThreshold,
		HighStockOverrideThreshold: cfg.Decision.HighStockOverrideThreshold,
	})
	if err != nil {
		log.Fatalf("Invalid decision configuration: %v", err)
	}

	portfolio := usecase.NewPortfolioService()
	catalogSvc := usecase.NewCatalogService()

	registry := prometheus.NewRegistry()
	collector := metrics.New()
	collector.Register(registry)

	summary := catalogSvc.Summary(offers)
	collector.SetCatalogSize(summary.TotalRecords, summary.UniqueProducts)
	log.Printf("Catalog loaded: %d offers, %d products, %d suppliers, %d categories",
		summary.TotalRecords, summary.UniqueProducts, summary.Suppliers, summary.Categories)

	handler := httpDelivery.NewHandler(offers, classifier, pricing, decision, portfolio, catalogSvc, collector)
	router := httpDelivery.SetupRouter(cfg, handler, promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func init() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
