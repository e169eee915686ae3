package metrics

import "github.com/prometheus/client_golang/prometheus"

// Collector holds the service's prometheus instruments.
type Collector struct {
	requestsTotal        *prometheus.CounterVec
	classificationsTotal *prometheus.CounterVec
	recommendationsTotal *prometheus.CounterVec

	catalogOffers   prometheus.Gauge
	catalogProducts prometheus.Gauge
}

// New creates the collector with all instruments.
func New() *Collector {
	c := &Collector{}

	c.requestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "procurelens",
		Name:      "http_requests_total",
		Help:      "HTTP requests by route and status code",
	}, []string{"route", "status"})

	c.classificationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "procurelens",
		Name:      "classifications_total",
		Help:      "Product classifications by resulting category",
	}, []string{"category"})

	c.recommendationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "procurelens",
		Name:      "recommendations_total",
		Help:      "Procurement recommendations by decision",
	}, []string{"decision"})

	c.catalogOffers = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "procurelens",
		Name:      "catalog_offers",
		Help:      "Offer rows in the loaded catalog snapshot",
	})
	c.catalogProducts = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "procurelens",
		Name:      "catalog_products",
		Help:      "Unique products in the loaded catalog snapshot",
	})

	return c
}

// Register registers all instruments with the given registerer.
func (c *Collector) Register(reg prometheus.Registerer) {
	reg.MustRegister(
		c.requestsTotal,
		c.classificationsTotal,
		c.recommendationsTotal,
		c.catalogOffers,
		c.catalogProducts,
	)
}

func (c *Collector) ObserveRequest(route, status string) {
	c.requestsTotal.WithLabelValues(route, status).Inc()
}

func (c *Collector) ObserveClassification(category string) {
	c.classificationsTotal.WithLabelValues(category).Inc()
}

func (c *Collector) ObserveRecommendation(decision string) {
	c.recommendationsTotal.WithLabelValues(decision).Inc()
}

// SetCatalogSize records the loaded snapshot dimensions.
func (c *Collector) SetCatalogSize(offers, products int) {
	c.catalogOffers.Set(float64(offers))
	c.catalogProducts.Set(float64(products))
}
