package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Budget ceiling policies applied when a budget category has no ceiling configured.
const (
	UnsetCeilingUnconstrained = "unconstrained"
	UnsetCeilingDeny          = "deny"
)

// Budget accounting periods
const (
	BudgetPeriodMonth = "month"
	BudgetPeriodYear  = "year"
)

type Config struct {
	App struct {
		Name        string   `envconfig:"APP_NAME" default:"Portal Approvals"`
		Port        int      `envconfig:"PORT" default:"8080"`
		Env         string   `envconfig:"APP_ENV" default:"development"`
		CORSOrigins []string `envconfig:"CORS_ORIGINS" default:"http://localhost:5173,http://127.0.0.1:5173"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:"postgres"`
		Name     string `envconfig:"DB_NAME" default:"postgres"`
		SSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`

		LockTimeout time.Duration `envconfig:"DB_LOCK_TIMEOUT" default:"5s"`
	}

	Auth struct {
		JWTSecret string `envconfig:"JWT_SECRET"`
	}

	Log struct {
		Level  string `envconfig:"LOG_LEVEL" default:"info"`
		Pretty bool   `envconfig:"LOG_PRETTY" default:"false"`
	}

	NATS struct {
		URL           string `envconfig:"NATS_URL"`
		SubjectPrefix string `envconfig:"NATS_SUBJECT_PREFIX" default:"approvals"`
	}

	Workflow struct {
		StockRequisitionCategory string `envconfig:"STOCK_REQUISITION_CATEGORY" default:"Stock Requisition"`
		DefaultSourceLocation    string `envconfig:"DEFAULT_SOURCE_LOCATION" default:"WH/Stock"`
		MainStockLocation        string `envconfig:"MAIN_STOCK_LOCATION" default:"WH/Stock"`
		BudgetPeriod             string `envconfig:"BUDGET_PERIOD" default:"month"`
		UnsetCeiling             string `envconfig:"BUDGET_UNSET_CEILING" default:"unconstrained"`
		TimeZone                 string `envconfig:"BUDGET_TIME_ZONE" default:"UTC"`
		SeedFile                 string `envconfig:"SEED_FILE" default:"configs/seed.yaml"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name, c.DB.SSLMode)
}

// IsProduction reports whether the service runs with release settings.
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

// Location resolves the configured budget time zone.
func (c *Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.Workflow.TimeZone)
}

func (c *Config) validate() error {
	switch c.Workflow.BudgetPeriod {
	case BudgetPeriodMonth, BudgetPeriodYear:
	default:
		return fmt.Errorf("BUDGET_PERIOD must be %q or %q, got %q", BudgetPeriodMonth, BudgetPeriodYear, c.Workflow.BudgetPeriod)
	}
	switch c.Workflow.UnsetCeiling {
	case UnsetCeilingUnconstrained, UnsetCeilingDeny:
	default:
		return fmt.Errorf("BUDGET_UNSET_CEILING must be %q or %q, got %q", UnsetCeilingUnconstrained, UnsetCeilingDeny, c.Workflow.UnsetCeiling)
	}
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("BUDGET_TIME_ZONE: %w", err)
	}
	if c.IsProduction() && strings.TrimSpace(c.Auth.JWTSecret) == "" {
		return fmt.Errorf("JWT_SECRET is required in production")
	}
	return nil
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if cfg.Auth.JWTSecret == "" {
		cfg.Auth.JWTSecret = "default_super_secret_key" // development only
	}

	return &cfg, nil
}
