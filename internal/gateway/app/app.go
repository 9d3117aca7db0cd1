package app

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"metabridge/internal/gateway/config"
	"metabridge/internal/gateway/handler"
	"metabridge/internal/gateway/handler/rpc"
	"metabridge/internal/gateway/server"
	"metabridge/internal/gateway/service/contributor"
	"metabridge/internal/logging"
	"metabridge/internal/taxonomy"
)

type App struct {
	server   *server.Server
	resolver *contributor.Service
	logger   *zap.Logger
	close    func() error
}

// New loads configuration from the environment and command line flags.
func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return NewWithConfig(context.Background(), cfg, logger)
}

func NewWithConfig(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	// Dependencies
	roles, err := loadRoles(cfg.TaxonomyFile)
	if err != nil {
		return nil, err
	}
	stores, err := initStores(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	resolver := contributor.New(stores.loader, roles, logger.Named("contributor"))

	datasetRPC := rpc.NewDatasetHandler(resolver)
	datasetHandler := handler.NewDatasetHandler(resolver, logger)
	healthHandler := handler.NewHealthHandler(stores.pinger)

	// Routing & Server
	mux := server.NewMux(datasetRPC, datasetHandler, healthHandler, logger.Named("access"))
	srv := server.New(cfg.Port, mux, logger)

	return &App{
		server:   srv,
		resolver: resolver,
		logger:   logger,
		close:    stores.close,
	}, nil
}

func loadRoles(path string) (*taxonomy.Mapper, error) {
	if strings.TrimSpace(path) == "" {
		return taxonomy.Default(), nil
	}
	roles, err := taxonomy.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load role taxonomy: %w", err)
	}
	return roles, nil
}

// Resolver exposes the contributor service for in-process callers such as
// the CLI.
func (a *App) Resolver() *contributor.Service { return a.resolver }

func (a *App) Logger() *zap.Logger { return a.logger }

func (a *App) Start() error {
	return a.server.Start()
}

// Shutdown stops the server and releases the legacy store.
func (a *App) Shutdown(ctx context.Context) error {
	err := a.server.Shutdown(ctx)
	if cerr := a.Close(); err == nil {
		err = cerr
	}
	return err
}

func (a *App) Close() error {
	if a.close == nil {
		return nil
	}
	c := a.close
	a.close = nil
	return c()
}
