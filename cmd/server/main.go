package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/vsinha/transferplan/pkg/application/services/catalog"
	"github.com/vsinha/transferplan/pkg/application/services/optimization"
	"github.com/vsinha/transferplan/pkg/config"
	"github.com/vsinha/transferplan/pkg/domain/repositories"
	"github.com/vsinha/transferplan/pkg/infrastructure/events"
	"github.com/vsinha/transferplan/pkg/infrastructure/repositories/gormrepo"
	"github.com/vsinha/transferplan/pkg/infrastructure/repositories/memory"
	"github.com/vsinha/transferplan/pkg/interfaces/api/router"
	"github.com/vsinha/transferplan/pkg/lp/simplex"
)

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: .env file not loaded: %v\n", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	// Structured logger: dev pretty, prod JSON
	zerolog.SetGlobalLevel(cfg.Level())
	if !cfg.IsProduction() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	if err := run(cfg); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

// run serves until SIGINT or SIGTERM. Errors are returned rather than fatal
// so the deferred database close and unsubscribe always execute.
func run(cfg *config.Config) error {
	var (
		products repositories.ProductRepository
		plants   repositories.PlantRepository
		db       *gorm.DB
	)
	if cfg.DatabaseURL != "" {
		var err error
		db, err = gormrepo.Open(cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("connect to postgres: %w", err)
		}
		defer func() {
			if err := gormrepo.Close(db); err != nil {
				log.Error().Err(err).Msg("failed to close postgres")
			}
		}()
		products, plants = gormrepo.NewProductRepository(db), gormrepo.NewPlantRepository(db)
		log.Info().Msg("catalogs stored in postgres")
	} else {
		products, plants = memory.NewProductRepository(0), memory.NewPlantRepository(0)
		log.Info().Msg("catalogs stored in memory")
	}

	history := events.NewMemoryLog()
	unsubscribe := history.Subscribe(events.NewLogHandler(), events.AllCatalogEvents...)
	defer unsubscribe()

	catalogService := catalog.NewCatalogService(products, plants, history)
	if db != nil {
		catalogService.WithReplacer(gormrepo.NewCatalog(db))
	}

	deps := router.Dependencies{
		Catalog: catalogService,
		Engine: optimization.NewTransferPlanServiceWithConfig(
			optimization.EngineConfig{TimeLimit: cfg.SolverTimeLimit(), RelativeGap: cfg.SolverRelativeGap},
			simplex.New(),
		),
		Events: history,
	}
	if db != nil {
		deps.Ping = func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		}
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router.New(cfg, deps),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.SolverTimeLimit() + 30*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info().Msgf("%s listening on :%d", cfg.ProjectName, cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	// Graceful shutdown on SIGINT / SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-quit:
	}

	log.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server exited")
	return nil
}
