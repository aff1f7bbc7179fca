package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaultsAndEnvOverrides(t *testing.T) {
	t.Setenv("PRICING_TAX_POLICY", "flat10")
	t.Setenv("LOW_STOCK_THRESHOLD", "5")
	t.Setenv("NOTIFY_DRIVER", "resend")

	cfg := Load()

	assert.Equal(t, "flat10", cfg.Pricing.TaxPolicy)
	assert.Equal(t, "0.10", cfg.Pricing.TaxRate)
	assert.Equal(t, 5, cfg.Store.LowStockThreshold)
	assert.Equal(t, "resend", cfg.Notify.Driver)
	assert.Equal(t, "SLE", cfg.Store.Currency)
	assert.Equal(t, 10*time.Second, cfg.Notify.Timeout)
}

func TestLocationFallsBackToUTC(t *testing.T) {
	app := AppConfig{Timezone: "Not/AZone"}
	assert.Equal(t, time.UTC, app.Location())
}

func TestDSN(t *testing.T) {
	db := DatabaseConfig{Host: "db", Port: "5432", Name: "shop", User: "u", Password: "p", SSLMode: "disable", Timezone: "UTC"}
	assert.Equal(t, "host=db user=u password=p dbname=shop port=5432 sslmode=disable TimeZone=UTC", db.DSN())
}
