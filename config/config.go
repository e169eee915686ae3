package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Catalog   CatalogConfig
	Pricing   PricingConfig
	Decision  DecisionConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// CatalogConfig points at the offer table source
type CatalogConfig struct {
	CSVPath string `mapstructure:"csv_path"`
}

// PricingConfig holds pricing-analysis knobs. Both values are fractions and
// must stay in [0,1).
type PricingConfig struct {
	NegotiationMargin float64 `mapstructure:"negotiation_margin"`
	VarianceThreshold float64 `mapstructure:"variance_threshold"`
}

// DecisionConfig holds the decision engine's preference thresholds. The
// general and high-stock values are independent knobs, not one shared
// constant.
type DecisionConfig struct {
	GeneralPreferenceThreshold float64 `mapstructure:"general_preference_threshold"`
	HighStockOverrideThreshold float64 `mapstructure:"high_stock_override_threshold"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	PerClient int `mapstructure:"per_client"`
	Burst     int `mapstructure:"burst"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/procurelens/")

	v.SetEnvPrefix("PROCURELENS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Config file is optional; env vars and defaults cover everything.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:*"})

	v.SetDefault("catalog.csv_path", "data/catalog.csv")

	v.SetDefault("pricing.negotiation_margin", 0.05)
	v.SetDefault("pricing.variance_threshold", 0.20)

	v.SetDefault("decision.general_preference_threshold", 0.10)
	v.SetDefault("decision.high_stock_override_threshold", 0.15)

	v.SetDefault("ratelimit.per_client", 50)
	v.SetDefault("ratelimit.burst", 100)
}

// validate validates the configuration. Fractional knobs outside [0,1) are
// rejected here, before any engine is constructed with them.
func validate(config *Config) error {
	if config.Catalog.CSVPath == "" {
		return fmt.Errorf("catalog CSV path is required (set PROCURELENS_CATALOG_CSV_PATH)")
	}

	fractions := map[string]float64{
		"pricing.negotiation_margin":             config.Pricing.NegotiationMargin,
		"pricing.variance_threshold":             config.Pricing.VarianceThreshold,
		"decision.general_preference_threshold":  config.Decision.GeneralPreferenceThreshold,
		"decision.high_stock_override_threshold": config.Decision.HighStockOverrideThreshold,
	}
	for name, val := range fractions {
		if val < 0 || val >= 1 {
			return fmt.Errorf("%s must be in [0,1), got %v", name, val)
		}
	}

	return nil
}
