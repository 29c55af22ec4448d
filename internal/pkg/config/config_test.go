package config

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "8080" || cfg.StoreDriver != StoreMongo {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.Auth.SessionTTL != 24*time.Hour || cfg.Auth.ResetTokenTTL != time.Hour {
		t.Fatalf("unexpected auth TTLs: %+v", cfg.Auth)
	}
	if cfg.Weather.CacheTTL != 5*time.Minute || cfg.Weather.City != "London" {
		t.Fatalf("unexpected weather config: %+v", cfg.Weather)
	}
	if cfg.Mongo.Database != "user_registration_db" {
		t.Fatalf("unexpected mongo db: %s", cfg.Mongo.Database)
	}
	if cfg.Production() {
		t.Fatalf("default env must not be production")
	}
}

func TestLoad_Overrides(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"ENV":             "production",
		"STORE_DRIVER":    "memory",
		"BCRYPT_COST":     "12",
		"RESET_TOKEN_TTL": "30m",
		"RATE_LIMIT_RPS":  "0.5",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !cfg.Production() || cfg.StoreDriver != StoreMemory {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if cfg.Auth.BcryptCost != 12 || cfg.Auth.ResetTokenTTL != 30*time.Minute {
		t.Fatalf("auth overrides not applied: %+v", cfg.Auth)
	}
	if cfg.RateLimit.RPS != 0.5 {
		t.Fatalf("rate limit override not applied: %v", cfg.RateLimit.RPS)
	}
}

func TestLoad_RejectsUnknownDriver(t *testing.T) {
	_, err := load(context.Background(), envconfig.MapLookuper(map[string]string{"STORE_DRIVER": "sqlite"}))
	if err == nil || !strings.Contains(err.Error(), "STORE_DRIVER") {
		t.Fatalf("expected STORE_DRIVER error, got %v", err)
	}
}

func TestLoad_RejectsBadCost(t *testing.T) {
	_, err := load(context.Background(), envconfig.MapLookuper(map[string]string{"BCRYPT_COST": "2"}))
	if err == nil {
		t.Fatalf("expected error for bcrypt cost 2")
	}
}
