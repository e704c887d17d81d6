package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"

	"github.com/noah-isme/backend-mandi/internal/rating"
)

// Config holds application configuration loaded from the environment.
type Config struct {
	AppEnv             string
	Port               string
	DatabaseURL        string
	RedisURL           string
	CORSAllowedOrigins []string

	MigrationsDir string

	CatalogPath     string
	CatalogCacheTTL time.Duration

	ShippingProfile rating.Profile

	QuoteRateLimitPeriod time.Duration
	QuoteRateLimitMax    int64

	PricingTaxRateBPS int
	CurrencyCode      string

	PaymentProvider        string
	PaymentCallbackBaseURL string

	NotifyEmailFrom   string
	NotifyOnApproval  bool
	TaskQueueName     string
	WorkerConcurrency int
}

// Load reads configuration from environment variables and optional .env files.
func Load() (*Config, error) {
	_ = godotenv.Load()

	k := koanf.New(".")
	if err := k.Load(env.Provider("", ".", func(s string) string { return s }), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	cfg := &Config{
		AppEnv:             valueOrDefault(k.String("APP_ENV"), "development"),
		Port:               valueOrDefault(k.String("PORT"), "8080"),
		DatabaseURL:        k.String("DATABASE_URL"),
		RedisURL:           k.String("REDIS_URL"),
		CORSAllowedOrigins: splitAndTrim(k.String("CORS_ALLOWED_ORIGINS")),

		MigrationsDir: strings.TrimSpace(k.String("MIGRATIONS_DIR")),

		CatalogPath:     valueOrDefault(k.String("CATALOG_PATH"), "data/commodity_data.json"),
		CatalogCacheTTL: parseDuration(k.String("CATALOG_CACHE_TTL"), "10m"),

		ShippingProfile: loadShippingProfile(k),

		QuoteRateLimitPeriod: parseDuration(k.String("QUOTE_RATE_LIMIT_PERIOD"), "1m"),
		QuoteRateLimitMax:    int64(parseInt(k.String("QUOTE_RATE_LIMIT_MAX"), 120)),

		PricingTaxRateBPS: parseInt(k.String("PRICING_TAX_RATE_BPS"), 0),
		CurrencyCode:      valueOrDefault(k.String("CURRENCY_CODE"), "INR"),

		PaymentProvider:        valueOrDefault(k.String("PAYMENT_PROVIDER"), "mock"),
		PaymentCallbackBaseURL: strings.TrimSpace(k.String("PAYMENT_CALLBACK_BASE_URL")),

		NotifyEmailFrom:   valueOrDefault(k.String("NOTIFY_EMAIL_FROM"), "no-reply@mandi.local"),
		NotifyOnApproval:  parseBool(valueOrDefault(k.String("NOTIFY_ON_APPROVAL"), "true")),
		TaskQueueName:     valueOrDefault(k.String("TASK_QUEUE_NAME"), "default"),
		WorkerConcurrency: parseInt(k.String("WORKER_CONCURRENCY"), 4),
	}

	if cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL is required")
	}
	if cfg.RedisURL == "" {
		return nil, errors.New("REDIS_URL is required")
	}

	return cfg, nil
}

// loadShippingProfile builds the rating profile from the environment,
// falling back to the default rate card. The defaults are midpoints of
// Indian agricultural freight ranges; individual values can be tuned
// without a release.
func loadShippingProfile(k *koanf.Koanf) rating.Profile {
	p := rating.DefaultProfile()
	p.IntraStateRoadRate = parseFloat(k.String("SHIPPING_INTRA_ROAD_RATE"), p.IntraStateRoadRate)
	p.IntraStateRailRate = parseFloat(k.String("SHIPPING_INTRA_RAIL_RATE"), p.IntraStateRailRate)
	p.InterStateRoadRate = parseFloat(k.String("SHIPPING_INTER_ROAD_RATE"), p.InterStateRoadRate)
	p.InterStateRailRate = parseFloat(k.String("SHIPPING_INTER_RAIL_RATE"), p.InterStateRailRate)
	p.RoadWeight = parseFloat(k.String("SHIPPING_ROAD_WEIGHT"), p.RoadWeight)
	p.RailWeight = parseFloat(k.String("SHIPPING_RAIL_WEIGHT"), p.RailWeight)
	p.PerishableUplift = parseFloat(k.String("SHIPPING_PERISHABLE_UPLIFT"), p.PerishableUplift)
	p.MinCharge = parseFloat(k.String("SHIPPING_MIN_CHARGE"), p.MinCharge)
	p.MaxWeightKg = parseFloat(k.String("SHIPPING_MAX_WEIGHT_KG"), p.MaxWeightKg)
	p.MinOrderValue = parseFloat(k.String("MIN_ORDER_VALUE"), p.MinOrderValue)
	if tiers := parseTiers(k.String("SHIPPING_TIERS")); len(tiers) > 0 {
		p.Tiers = tiers
	}
	return p
}

// parseTiers reads tier pairs from a "break:multiplier,break:multiplier"
// string, e.g. "0:1.0,10:0.95,50:0.85". Malformed entries are skipped.
func parseTiers(value string) []rating.Tier {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	var tiers []rating.Tier
	for _, pair := range strings.Split(value, ",") {
		parts := strings.SplitN(strings.TrimSpace(pair), ":", 2)
		if len(parts) != 2 {
			continue
		}
		breakKg, err1 := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		mult, err2 := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err1 != nil || err2 != nil {
			continue
		}
		tiers = append(tiers, rating.Tier{BreakKg: breakKg, Multiplier: mult})
	}
	return tiers
}

// HTTPAddr returns the address the HTTP server should bind to.
func (c *Config) HTTPAddr() string {
	port := strings.TrimSpace(c.Port)
	if port == "" {
		port = "8080"
	}
	if strings.HasPrefix(port, ":") {
		return port
	}
	return ":" + port
}

func splitAndTrim(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func valueOrDefault(value, fallback string) string {
	if strings.TrimSpace(value) != "" {
		return value
	}
	return fallback
}

func parseDuration(value, fallback string) time.Duration {
	base := strings.TrimSpace(value)
	if base == "" {
		base = fallback
	}
	d, err := time.ParseDuration(base)
	if err != nil {
		d, _ = time.ParseDuration(fallback)
	}
	return d
}

func parseBool(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

func parseInt(value string, fallback int) int {
	if parsed, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
		return parsed
	}
	return fallback
}

func parseFloat(value string, fallback float64) float64 {
	if parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64); err == nil {
		return parsed
	}
	return fallback
}

// MustLoad behaves like Load but panics on error. Useful for tests and command entrypoints.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

// LoadForTests allows tests to override environment variables without touching the real environment.
func LoadForTests(env map[string]string) (*Config, error) {
	original := make(map[string]string, len(env))
	for key := range env {
		original[key] = os.Getenv(key)
		if err := setEnvVar(key, env[key]); err != nil {
			return nil, err
		}
	}
	cfg, err := Load()
	restoreErr := restoreEnv(original)
	if err != nil {
		return nil, err
	}
	return cfg, restoreErr
}

func setEnvVar(key, value string) error {
	if value == "" {
		return os.Unsetenv(key)
	}
	return os.Setenv(key, value)
}

func restoreEnv(values map[string]string) error {
	var errs []string
	for key, value := range values {
		if err := setEnvVar(key, value); err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", key, err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("restore env: %s", strings.Join(errs, "; "))
	}
	return nil
}
