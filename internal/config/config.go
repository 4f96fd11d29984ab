package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"

	"mentor-collab/internal/matching"
)

const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// Config centraliza la configuracion del servicio.
type Config struct {
	HTTPPort      string `env:"HTTP_PORT" envDefault:"8080"`
	LogLevel      string `env:"LOG_LEVEL" envDefault:"info"`
	StorageDriver string `env:"STORAGE_DRIVER" envDefault:"postgres"`
	DatabaseURL   string `env:"DATABASE_URL"`
	DBAutoMigrate bool   `env:"DB_AUTO_MIGRATE" envDefault:"false"`
	SeedFile      string `env:"SEED_FILE"`

	StrengthAbove      float64 `env:"STRENGTH_ABOVE" envDefault:"3"`
	WeaknessBelow      float64 `env:"WEAKNESS_BELOW" envDefault:"3"`
	EvaluationType     string  `env:"EVALUATION_TYPE" envDefault:"Social Enterprise"`
	FallbackLimit      int     `env:"FALLBACK_LIMIT" envDefault:"0"`
	RevalidateOnAccept bool    `env:"REVALIDATE_ON_ACCEPT" envDefault:"false"`

	RequestRateWindow time.Duration `env:"REQUEST_RATE_WINDOW" envDefault:"1h"`
	RequestRateMax    int           `env:"REQUEST_RATE_MAX" envDefault:"20"`

	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	SMTPHost     string `env:"SMTP_HOST"`
	SMTPPort     int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUser     string `env:"SMTP_USER"`
	SMTPPass     string `env:"SMTP_PASS"`
	SMTPFrom     string `env:"SMTP_FROM"`
	SMTPFromName string `env:"SMTP_FROM_NAME"`
	SMTPUseTLS   bool   `env:"SMTP_USE_TLS" envDefault:"false"`

	JWTSecret string `env:"JWT_SECRET"`
}

// LoadConfig carga la configuracion desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.StorageDriver {
	case StorageMemory:
	case StoragePostgres:
		if strings.TrimSpace(c.DatabaseURL) == "" {
			return fmt.Errorf("DATABASE_URL is required for storage driver %q", c.StorageDriver)
		}
	default:
		return fmt.Errorf("unknown storage driver %q", c.StorageDriver)
	}
	if err := c.MatchingConfig().Thresholds.Validate(); err != nil {
		return err
	}
	if c.FallbackLimit < 0 {
		return fmt.Errorf("FALLBACK_LIMIT must be >= 0, got %d", c.FallbackLimit)
	}
	if c.RequestRateMax < 0 || c.RequestRateWindow < 0 {
		return fmt.Errorf("request rate limit must not be negative")
	}
	return nil
}

// MatchingConfig traduce la configuracion al motor de recomendaciones.
func (c *Config) MatchingConfig() matching.Config {
	return matching.Config{
		Thresholds: matching.Thresholds{
			StrengthAbove: c.StrengthAbove,
			WeaknessBelow: c.WeaknessBelow,
		},
		EvaluationType: c.EvaluationType,
		FallbackLimit:  c.FallbackLimit,
	}
}
