package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"timberd/internal/config"
	"timberd/internal/db"
	"timberd/internal/httpapi"
	"timberd/internal/otel"
	"timberd/internal/version"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "timberd",
		Short:         "Timber supply-chain record-keeping service",
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(newServeCommand())
	cmd.AddCommand(newMigrateCommand())
	cmd.AddCommand(newSeedCommand())
	return cmd
}

func setup(ctx context.Context) (config.Config, zerolog.Logger, error) {
	_ = godotenv.Load()

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	logger := log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load(ctx)
	if err != nil {
		return config.Config{}, logger, err
	}
	if cfg.Production() {
		logger = log.Logger
	}
	return cfg, logger, nil
}

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Migrate, seed, and run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			cfg, logger, err := setup(ctx)
			if err != nil {
				return err
			}

			cleanup, err := otel.Init(ctx, version.Name, version.Version, cfg.OTLPEndpoint)
			if err != nil {
				return fmt.Errorf("init otel: %w", err)
			}
			defer func() {
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := cleanup(shutdownCtx); err != nil {
					logger.Error().Err(err).Msg("shutdown otel")
				}
			}()

			database, err := db.Connect(ctx, cfg.DBDSN)
			if err != nil {
				return fmt.Errorf("connect database: %w", err)
			}
			defer func() {
				if err := db.Close(database); err != nil {
					logger.Error().Err(err).Msg("close database")
				}
			}()

			if err := db.Migrate(ctx, database); err != nil {
				return fmt.Errorf("migrate database: %w", err)
			}
			if _, err := db.Seed(ctx, database, cfg.SeedAdminEmail, cfg.SeedAdminPass); err != nil {
				return fmt.Errorf("seed database: %w", err)
			}

			api, err := httpapi.New(cfg, database, logger)
			if err != nil {
				return err
			}

			srv := &http.Server{
				Addr:              cfg.Addr,
				Handler:           api.Routes(),
				ReadHeaderTimeout: 10 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				logger.Info().Str("addr", cfg.Addr).Str("env", cfg.Env).Msg("starting timberd")
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- err
				}
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}
}

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the schema and exit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg, logger, err := setup(ctx)
			if err != nil {
				return err
			}

			database, err := db.Connect(ctx, cfg.DBDSN)
			if err != nil {
				return fmt.Errorf("connect database: %w", err)
			}
			defer func() {
				if err := db.Close(database); err != nil {
					logger.Error().Err(err).Msg("close database")
				}
			}()

			if err := db.Migrate(ctx, database); err != nil {
				return fmt.Errorf("migrate database: %w", err)
			}
			logger.Info().Msg("schema migrated")
			return nil
		},
	}
}

func newSeedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert baseline roles, permissions, and the bootstrap admin",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg, logger, err := setup(ctx)
			if err != nil {
				return err
			}

			database, err := db.Connect(ctx, cfg.DBDSN)
			if err != nil {
				return fmt.Errorf("connect database: %w", err)
			}
			defer func() {
				if err := db.Close(database); err != nil {
					logger.Error().Err(err).Msg("close database")
				}
			}()

			ids, err := db.Seed(ctx, database, cfg.SeedAdminEmail, cfg.SeedAdminPass)
			if err != nil {
				return fmt.Errorf("seed database: %w", err)
			}
			logger.Info().Int("roles", len(ids.Roles)).Int("permissions", len(ids.Permissions)).Msg("baseline data seeded")
			return nil
		},
	}
}
