package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/DimpleKundu/incubyte-sweet-shop/config"
	"github.com/DimpleKundu/incubyte-sweet-shop/internal/adapters/shopapi"
	httpx "github.com/DimpleKundu/incubyte-sweet-shop/internal/http"
	"github.com/DimpleKundu/incubyte-sweet-shop/internal/service"
)

// shutdownWaitTimeout is the maximum time to wait for the server to drain.
const shutdownWaitTimeout = 15 * time.Second

// ServiceDeps holds infrastructure needed to build the storefront services.
type ServiceDeps struct {
	Config      *config.AppConfig
	RedisClient redis.UniversalClient // nil when SESSION_STORE=memory
	Logger      *slog.Logger
	// HTTPClient overrides the Shop API transport (tests).
	HTTPClient *http.Client
}

// ServiceContainer holds the wired storefront services.
type ServiceContainer struct {
	API          *shopapi.Client
	Auth         *service.AuthService
	Inventory    *service.InventoryService
	HealthChecks []httpx.HealthCheck
}

// NewServices wires the Shop API client, the stores and the services on top of them.
func NewServices(deps *ServiceDeps) (ServiceContainer, error) {
	if deps == nil || deps.Config == nil {
		return ServiceContainer{}, errors.New("service config is required")
	}
	cfg := deps.Config
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	api, err := NewShopAPIClient(cfg.ShopAPI, deps.HTTPClient, logger)
	if err != nil {
		return ServiceContainer{}, err
	}

	stores, err := NewStores(cfg.Session, deps.RedisClient)
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("build stores: %w", err)
	}

	return ServiceContainer{
		API: api,
		Auth: service.NewAuthService(service.AuthServiceOptions{
			API:      api,
			Sessions: stores.Sessions,
			Config: service.AuthConfig{
				SessionTTL: cfg.Session.TTL,
				Logger:     logger,
			},
		}),
		Inventory: service.NewInventoryService(service.InventoryServiceOptions{
			API:     api,
			Mirrors: stores.Mirrors,
			Logger:  logger,
		}),
		HealthChecks: stores.HealthChecks,
	}, nil
}

// NewShopAPIClient builds the remote API client from configuration.
func NewShopAPIClient(cfg config.ShopAPIConfig, hc *http.Client, logger *slog.Logger) (*shopapi.Client, error) {
	api, err := shopapi.NewClient(shopapi.Options{
		BaseURL:         cfg.BaseURL,
		Timeout:         cfg.Timeout,
		HTTPClient:      hc,
		ErrorDetailPath: cfg.ErrorDetailPath,
		Logger:          logger,
	})
	if err != nil {
		return nil, fmt.Errorf("build shop api client: %w", err)
	}
	return api, nil
}

// RunConfig is what Run needs to serve the storefront.
type RunConfig struct {
	Config   *config.AppConfig
	Services ServiceContainer
	Logger   *slog.Logger
	// Listener replaces binding to Config.HTTP.Addr (tests).
	Listener net.Listener
}

// Run serves HTTP until ctx is canceled, SIGINT or SIGTERM arrives, or the
// listener fails. It then drains the server for up to shutdownWaitTimeout.
func Run(ctx context.Context, cfg *RunConfig) error {
	if cfg == nil || cfg.Config == nil {
		return errors.New("run config is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := NewServer(cfg.Config.HTTP.Addr, NewHandler(cfg.Config, cfg.Services, logger))
	serveErr := Serve(srv, cfg.Listener, logger)

	var failed error
	select {
	case <-ctx.Done():
		logger.Info("shutting down storefront", "reason", context.Cause(ctx))
	case failed = <-serveErr:
	}

	// ctx is already done here; drain on a detached deadline.
	drainCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownWaitTimeout)
	defer cancel()
	if err := Shutdown(drainCtx, srv, logger); err != nil {
		if failed != nil {
			logger.Error("graceful stop failed", "error", err)
			return failed
		}
		return err
	}
	return failed
}
