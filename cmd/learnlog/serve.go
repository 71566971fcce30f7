package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/BrandonDHaskell/learnlog/internal/auth"
	"github.com/BrandonDHaskell/learnlog/internal/db"
	"github.com/BrandonDHaskell/learnlog/internal/grpcapi"
	"github.com/BrandonDHaskell/learnlog/internal/httpapi"
	"github.com/BrandonDHaskell/learnlog/internal/learnlog/fixtures"
	"github.com/BrandonDHaskell/learnlog/internal/learnlog/service"
	"github.com/BrandonDHaskell/learnlog/internal/logging"
)

const shutdownTimeout = 5 * time.Second

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP and gRPC servers",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, flush := logging.NewStdout(cfg.Debug, cfg.IsDev())
	defer flush()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := openApp(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	if cfg.IsDev() && a.sqlDB != nil {
		n, err := db.SeedDev(ctx, a.sqlDB)
		if err != nil {
			return fmt.Errorf("seed dev data: %w", err)
		}
		if n > 0 {
			logger.Info().Int("rows", n).Msg("seeded dev interactions")
		}
	}

	interactionSvc := service.NewInteractionService(a.store)

	if cfg.SeedFile != "" {
		reqs, err := fixtures.LoadFile(cfg.SeedFile)
		if err != nil {
			return err
		}
		n, err := interactionSvc.Import(ctx, reqs)
		if err != nil {
			return fmt.Errorf("seed file: %w", err)
		}
		logger.Info().Str("file", cfg.SeedFile).Int("rows", n).Msg("imported seed file")
	}

	verifier := auth.New(cfg.JWTSecret)
	if verifier == nil {
		logger.Warn().Msg("LEARNLOG_JWT_SECRET is empty; API authentication disabled")
	}

	pruner := service.NewInteractionPruner(a.store, service.PrunerConfig{
		RetentionDays: cfg.RetentionDays,
		IntervalHours: cfg.PruneIntervalHours,
	}, logger)
	pruner.Start(ctx)
	defer pruner.Stop()

	httpSrv := httpapi.NewServer(httpapi.Dependencies{
		Logger:             logger,
		Addr:               cfg.HTTPAddr,
		InteractionService: interactionSvc,
		Auth:               verifier,
	})

	errCh := make(chan error, 2)

	go func() {
		logger.Info().Str("addr", cfg.HTTPAddr).Msg("http listening")
		if err := httpSrv.Start(); err != nil {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	var grpcSrv *grpcapi.Server
	if cfg.GRPCAddr != "" {
		lis, err := net.Listen("tcp", cfg.GRPCAddr)
		if err != nil {
			return fmt.Errorf("grpc listen: %w", err)
		}
		grpcSrv = grpcapi.NewServer(grpcapi.Dependencies{
			Logger:             logger,
			InteractionService: interactionSvc,
			Auth:               verifier,
		})
		go func() {
			logger.Info().Str("addr", lis.Addr().String()).Msg("grpc listening")
			if err := grpcSrv.Serve(lis); err != nil {
				errCh <- fmt.Errorf("grpc server: %w", err)
			}
		}()
	}

	var runErr error
	select {
	case <-ctx.Done():
		logger.Info().Msg("shutting down")
	case runErr = <-errCh:
		logger.Error().Err(runErr).Msg("server stopped unexpectedly")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if grpcSrv != nil {
		grpcSrv.Stop(shutdownCtx)
	}
	if err := httpSrv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		logger.Error().Err(err).Msg("http shutdown")
	}

	return runErr
}
