package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"GoalVault"`
		Port int    `envconfig:"PORT" default:"8080"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"goalvault"`

		MaxOpenConns    int           `envconfig:"DB_MAX_OPEN_CONNS" default:"25"`
		MaxIdleConns    int           `envconfig:"DB_MAX_IDLE_CONNS" default:"5"`
		ConnMaxLifetime time.Duration `envconfig:"DB_CONN_MAX_LIFETIME" default:"5m"`
	}

	Server struct {
		Timeout time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
	}

	Auth struct {
		Secret   string        `envconfig:"AUTH_SECRET" default:"dev-secret-change-me"`
		TokenTTL time.Duration `envconfig:"AUTH_TOKEN_TTL" default:"24h"`
		// AdminID is the principal allowed to call admin entry points.
		AdminID string `envconfig:"AUTH_ADMIN_ID" default:"00000000-0000-0000-0000-000000000001"`
	}

	Goals struct {
		MinDuration time.Duration `envconfig:"GOAL_MIN_DURATION" default:"168h"`
	}

	Faucet struct {
		DripAmount int64         `envconfig:"FAUCET_DRIP_AMOUNT" default:"100000"`
		Interval   time.Duration `envconfig:"FAUCET_INTERVAL" default:"1m"`
		Burst      int           `envconfig:"FAUCET_BURST" default:"3"`
	}

	// Vaults lists the vaults to bring up at start, one entry per
	// (currency, mode) pair as "CURRENCY/mode/reserveAPRbps",
	// e.g. "BRL/lite/450,BRL/pro/800".
	Vaults []string `envconfig:"VAULTS" default:"BRL/lite/450,BRL/pro/800"`
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
