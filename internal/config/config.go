package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr string `env:"LEARNLOG_HTTP_ADDR" envDefault:":8080"`
	GRPCAddr string `env:"LEARNLOG_GRPC_ADDR"` // empty disables gRPC

	Env   string `env:"LEARNLOG_ENV" envDefault:"dev"` // "dev" | "prod"
	Debug bool   `env:"LEARNLOG_DEBUG" envDefault:"false"`

	// Storage
	Store    string `env:"LEARNLOG_STORE" envDefault:"sqlite"` // "sqlite" | "memory"
	DBPath   string `env:"LEARNLOG_DB_PATH" envDefault:"./data/learnlog.db"`
	SeedFile string `env:"LEARNLOG_SEED_FILE"`

	// Empty secret disables API authentication.
	JWTSecret string `env:"LEARNLOG_JWT_SECRET"`

	// Interaction retention
	RetentionDays      int `env:"LEARNLOG_RETENTION_DAYS" envDefault:"0"` // 0 = keep forever
	PruneIntervalHours int `env:"LEARNLOG_PRUNE_INTERVAL_HOURS" envDefault:"6"`
}

// FromEnv reads the environment, after loading .env files when present.
// Values already set in the process environment win over .env.
func FromEnv(dotenvFiles ...string) (Config, error) {
	for _, f := range dotenvFiles {
		// A missing .env is normal outside local development.
		_ = godotenv.Load(f)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	cfg.normalize()
	return cfg, nil
}

// normalize is fail-soft: unknown enums and negative numbers fall back to
// defaults instead of refusing to start.
func (c *Config) normalize() {
	c.Env = strings.ToLower(strings.TrimSpace(c.Env))
	if c.Env != "dev" && c.Env != "prod" {
		c.Env = "dev"
	}

	c.Store = strings.ToLower(strings.TrimSpace(c.Store))
	if c.Store != "sqlite" && c.Store != "memory" {
		c.Store = "sqlite"
	}

	if strings.TrimSpace(c.DBPath) == "" {
		c.DBPath = "./data/learnlog.db"
	}
	if c.RetentionDays < 0 {
		c.RetentionDays = 0
	}
	if c.PruneIntervalHours <= 0 {
		c.PruneIntervalHours = 6
	}
}

func (c Config) IsDev() bool { return c.Env == "dev" }
