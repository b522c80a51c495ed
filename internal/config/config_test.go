package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
)

func TestDecodeDefaults(t *testing.T) {
	cfg, err := decode(viper.New())
	if err != nil {
		t.Fatalf("decode defaults failed: %v", err)
	}
	if cfg.Server.Port != "8080" || cfg.Database.Driver != "sqlite" {
		t.Fatalf("unexpected server/database defaults: %+v %+v", cfg.Server, cfg.Database)
	}
	if cfg.Server.Addr() != "0.0.0.0:8080" || cfg.Server.ReadHeaderTimeoutSeconds != 5 || cfg.Server.WriteTimeoutSeconds != 30 {
		t.Fatalf("unexpected server timeouts: %+v", cfg.Server)
	}
	if cfg.Pricing.Currency() != "CNY" || cfg.Pricing.Timezone() != "UTC" {
		t.Fatalf("unexpected pricing defaults: %+v", cfg.Pricing)
	}
	if cfg.Pricing.RuleCacheTTL() != 5*time.Minute {
		t.Fatalf("rule cache ttl want 5m got %s", cfg.Pricing.RuleCacheTTL())
	}
	if cfg.Pricing.MaxQuoteDuration() != 24*time.Hour {
		t.Fatalf("max quote duration want 24h got %s", cfg.Pricing.MaxQuoteDuration())
	}
	if cfg.Queue.Queues["pricing"] != 10 {
		t.Fatalf("pricing queue weight want 10 got %d", cfg.Queue.Queues["pricing"])
	}
	if !cfg.Metrics.Enabled || cfg.Metrics.Path != "/metrics" {
		t.Fatalf("unexpected metrics defaults: %+v", cfg.Metrics)
	}
}

func TestDecodeEnvOverride(t *testing.T) {
	t.Setenv("PRICING_DEFAULT_CURRENCY", "usd")
	t.Setenv("PRICING_STATUS_SYNC_INTERVAL_SECONDS", "15")
	t.Setenv("SERVER_MODE", "release")

	cfg, err := decode(viper.New())
	if err != nil {
		t.Fatalf("decode with env failed: %v", err)
	}
	if cfg.Server.Mode != "release" {
		t.Fatalf("server mode want release got %s", cfg.Server.Mode)
	}
	if cfg.Pricing.Currency() != "USD" {
		t.Fatalf("currency want USD got %s", cfg.Pricing.Currency())
	}
	if cfg.Pricing.StatusSyncInterval() != 15*time.Second {
		t.Fatalf("status sync interval want 15s got %s", cfg.Pricing.StatusSyncInterval())
	}
}

func TestPricingConfigFallbacks(t *testing.T) {
	var cfg PricingConfig
	if cfg.RuleCacheTTL() != 5*time.Minute || cfg.StatusSyncInterval() != time.Minute {
		t.Fatalf("zero pricing config should fall back to defaults")
	}
	if cfg.Currency() != "CNY" || cfg.Timezone() != "UTC" {
		t.Fatalf("zero pricing config currency/timezone fallback mismatch")
	}
}
