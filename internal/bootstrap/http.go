package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/DimpleKundu/incubyte-sweet-shop/config"
	httpx "github.com/DimpleKundu/incubyte-sweet-shop/internal/http"
)

const defaultAddr = ":8080"

// NewHandler builds the storefront router and wraps it, outermost first, in
// panic recovery, request logging and optional compression.
func NewHandler(cfg *config.AppConfig, svcs ServiceContainer, logger *slog.Logger) http.Handler {
	rs := httpx.RouterServices{
		CookieDomain:  cfg.HTTP.CookieDomain,
		RestockAmount: cfg.Dashboard.RestockAmount,
		HealthChecks:  svcs.HealthChecks,
		IsDev:         cfg.IsDev,
		Logger:        logger,
	}
	// Assigning a nil *service.X would hand the router a non-nil interface.
	if svcs.Auth != nil {
		rs.Auth = svcs.Auth
	}
	if svcs.Inventory != nil {
		rs.Inventory = svcs.Inventory
	}

	var h http.Handler = httpx.NewRouter(rs)
	if cfg.HTTP.CompressionEnabled {
		logger.Info("HTTP compression enabled", "level", cfg.HTTP.CompressionLevel)
		h = httpx.Compression(httpx.CompressionConfig{Level: cfg.HTTP.CompressionLevel})(h)
	}
	h = httpx.Logging(logger)(h)
	return httpx.Recover(logger)(h)
}

// NewServer returns an http.Server with the storefront's timeouts.
func NewServer(addr string, h http.Handler) *http.Server {
	if addr == "" {
		addr = defaultAddr
	}
	return &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}
}

// Serve runs srv in the background, on ln when given and srv.Addr otherwise.
// The returned channel yields at most one error: why serving stopped, unless
// the server was shut down on purpose.
func Serve(srv *http.Server, ln net.Listener, logger *slog.Logger) <-chan error {
	errCh := make(chan error, 1)
	go func() {
		defer close(errCh)
		var err error
		if ln != nil {
			logger.Info("starting HTTP server", "addr", ln.Addr().String())
			err = srv.Serve(ln)
		} else {
			logger.Info("starting HTTP server", "addr", srv.Addr)
			err = srv.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server failed", "error", err)
			errCh <- err
		}
	}()
	return errCh
}

// Shutdown drains srv, giving in-flight requests until ctx expires.
func Shutdown(ctx context.Context, srv *http.Server, logger *slog.Logger) error {
	if srv == nil {
		return nil
	}
	logger.Info("shutting down HTTP server")
	if err := srv.Shutdown(ctx); err != nil {
		return err
	}
	logger.Info("HTTP server stopped")
	return nil
}
