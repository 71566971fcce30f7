package main

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/BrandonDHaskell/learnlog/internal/config"
	"github.com/BrandonDHaskell/learnlog/internal/db"
	"github.com/BrandonDHaskell/learnlog/internal/learnlog/store"
	"github.com/BrandonDHaskell/learnlog/internal/learnlog/store/memory"
	"github.com/BrandonDHaskell/learnlog/internal/learnlog/store/sqlite"
)

// app holds what every subcommand needs: config, logger and the configured
// interaction store.
type app struct {
	cfg    config.Config
	logger zerolog.Logger
	store  store.InteractionStore
	sqlDB  *sql.DB // nil for the memory store

	closers []func()
}

func loadConfig() (config.Config, error) {
	return config.FromEnv(envFile)
}

func openApp(ctx context.Context, cfg config.Config, logger zerolog.Logger) (*app, error) {
	a := &app{cfg: cfg, logger: logger}

	switch cfg.Store {
	case "memory":
		a.store = memory.NewInteractionStore()
		logger.Warn().Msg("using in-memory store; interactions are lost on exit")

	default:
		sqlDB, err := db.Open(ctx, db.Config{Path: cfg.DBPath, Env: cfg.Env}, logger)
		if err != nil {
			return nil, fmt.Errorf("open database: %w", err)
		}
		writer := db.NewWorker(sqlDB)

		a.sqlDB = sqlDB
		a.store = sqlite.NewInteractionStore(sqlDB, writer)
		a.closers = append(a.closers, writer.Close, func() { _ = sqlDB.Close() })

		if v, err := db.SchemaVersion(ctx, sqlDB); err == nil {
			logger.Info().Str("path", cfg.DBPath).Int64("schema_version", v).Msg("sqlite store ready")
		}
	}

	return a, nil
}

// Close stops the write worker before closing the database.
func (a *app) Close() {
	for _, fn := range a.closers {
		fn()
	}
	a.closers = nil
}
