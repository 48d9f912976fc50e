package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"order_report/internal/pricing"
)

var envKeys = []string{
	"DATA_SOURCE", "DATA_DIR", "OUTPUT_PATH", "REPORT_PATH", "DATABASE_URL", "REDIS_URL",
	"SERVER_PORT", "CACHE_TTL", "LOG_LEVEL", "LOG_FILE",
	"TAX_RATE", "SHIPPING_LIMIT", "HANDLING_FEE", "MAX_DISCOUNT", "LOYALTY_RATIO",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	cfg := Load()

	assert.Equal(t, SourceCSV, cfg.DataSource)
	assert.Equal(t, "data", cfg.DataDir)
	assert.Equal(t, "output.json", cfg.OutputPath)
	assert.Empty(t, cfg.ReportPath)
	assert.Empty(t, cfg.RedisURL)
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, 5*time.Minute, cfg.CacheDuration())
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.LogFile)
	assert.Equal(t, pricing.DefaultRules(), cfg.PricingRules())
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATA_SOURCE", SourcePostgres)
	t.Setenv("CACHE_TTL", "60")
	t.Setenv("TAX_RATE", "0.1")
	t.Setenv("MAX_DISCOUNT", "150")
	t.Setenv("HANDLING_FEE", "not-a-number")

	cfg := Load()
	assert.Equal(t, SourcePostgres, cfg.DataSource)
	assert.Equal(t, time.Minute, cfg.CacheDuration())

	rules := cfg.PricingRules()
	assert.Equal(t, 0.1, rules.TaxRate)
	assert.Equal(t, 150.0, rules.MaxDiscount)
	assert.Equal(t, pricing.DefaultRules().HandlingFee, rules.HandlingFee)
	assert.Equal(t, 1.1, rules.CurrencyRate("USD"))
}
