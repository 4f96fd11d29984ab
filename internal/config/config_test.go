package config

import (
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "memory")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.HTTPPort != "8080" {
		t.Fatalf("expected default port, got %q", cfg.HTTPPort)
	}
	if cfg.StrengthAbove != 3 || cfg.WeaknessBelow != 3 {
		t.Fatalf("unexpected thresholds %v/%v", cfg.StrengthAbove, cfg.WeaknessBelow)
	}
	if cfg.EvaluationType != "Social Enterprise" {
		t.Fatalf("unexpected evaluation type %q", cfg.EvaluationType)
	}
	if cfg.RevalidateOnAccept {
		t.Fatalf("expected revalidation off by default")
	}
	if cfg.RequestRateWindow != time.Hour {
		t.Fatalf("unexpected rate window %v", cfg.RequestRateWindow)
	}

	mc := cfg.MatchingConfig()
	if mc.Thresholds.StrengthAbove != 3 || mc.EvaluationType != "Social Enterprise" {
		t.Fatalf("unexpected matching config %+v", mc)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("STRENGTH_ABOVE", "3.5")
	t.Setenv("WEAKNESS_BELOW", "2.5")
	t.Setenv("FALLBACK_LIMIT", "5")
	t.Setenv("REVALIDATE_ON_ACCEPT", "true")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	mc := cfg.MatchingConfig()
	if mc.Thresholds.StrengthAbove != 3.5 || mc.Thresholds.WeaknessBelow != 2.5 || mc.FallbackLimit != 5 {
		t.Fatalf("unexpected matching config %+v", mc)
	}
	if !cfg.RevalidateOnAccept {
		t.Fatalf("expected revalidation on")
	}
}

func TestValidate(t *testing.T) {
	base := func() Config {
		return Config{
			StorageDriver:  StorageMemory,
			StrengthAbove:  3,
			WeaknessBelow:  3,
			EvaluationType: "Social Enterprise",
		}
	}
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"memory ok", func(*Config) {}, false},
		{"postgres without url", func(c *Config) { c.StorageDriver = StoragePostgres }, true},
		{"postgres with url", func(c *Config) { c.StorageDriver = StoragePostgres; c.DatabaseURL = "postgres://localhost/db" }, false},
		{"unknown driver", func(c *Config) { c.StorageDriver = "sqlite" }, true},
		{"inverted thresholds", func(c *Config) { c.StrengthAbove = 2; c.WeaknessBelow = 4 }, true},
		{"negative fallback", func(c *Config) { c.FallbackLimit = -1 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
