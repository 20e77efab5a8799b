package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET": "secret",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "8080" || !cfg.Development() || cfg.TokenTTL != 24*time.Hour {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.Audit.Workers != 4 || cfg.Mongo.Database != "invoice_dashboard" || cfg.Bootstrap.Name != "Administrator" {
		t.Fatalf("unexpected nested defaults: %+v", cfg)
	}
}

func TestLoad_Overrides(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET":               "secret",
		"ENV":                      "production",
		"TOKEN_TTL":                "90m",
		"DATABASE_URL":             "postgres://u:p@db:5432/x",
		"REDIS_DB":                 "2",
		"BOOTSTRAP_ADMIN_EMAIL":    "root@example.com",
		"BOOTSTRAP_ADMIN_PASSWORD": "123456",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Development() || cfg.TokenTTL != 90*time.Minute || cfg.Redis.DB != 2 {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if cfg.Postgres.URL != "postgres://u:p@db:5432/x" || cfg.Bootstrap.Email != "root@example.com" {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
}

func TestLoad_MissingSecret(t *testing.T) {
	if _, err := load(context.Background(), envconfig.MapLookuper(map[string]string{})); err == nil {
		t.Fatal("expected error when JWT_SECRET is missing")
	}
}

func TestLoad_BootstrapNeedsPassword(t *testing.T) {
	_, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET":            "secret",
		"BOOTSTRAP_ADMIN_EMAIL": "root@example.com",
	}))
	if err == nil {
		t.Fatal("expected error when bootstrap password is missing")
	}
}
