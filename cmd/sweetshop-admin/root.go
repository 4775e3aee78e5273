package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/DimpleKundu/incubyte-sweet-shop/config"
	"github.com/DimpleKundu/incubyte-sweet-shop/internal/adapters/memory"
	"github.com/DimpleKundu/incubyte-sweet-shop/internal/bootstrap"
	domainauth "github.com/DimpleKundu/incubyte-sweet-shop/internal/domain/auth"
	"github.com/DimpleKundu/incubyte-sweet-shop/internal/ports"
	"github.com/DimpleKundu/incubyte-sweet-shop/internal/service"
)

const (
	envAPIURL        = "SHOP_API_URL"
	envAdminEmail    = "SHOP_ADMIN_EMAIL"
	envAdminPassword = "SHOP_ADMIN_PASSWORD"
)

// commandContext carries what every subcommand shares.
type commandContext struct {
	Logger *slog.Logger
	// NewAPI builds the Shop API client; tests swap in a mock.
	NewAPI func(cfg config.ShopAPIConfig, logger *slog.Logger) (ports.ShopAPI, error)

	apiURL   string
	email    string
	password string
	timeout  time.Duration
}

func newShopAPI(cfg config.ShopAPIConfig, logger *slog.Logger) (ports.ShopAPI, error) {
	return bootstrap.NewShopAPIClient(cfg, nil, logger)
}

func newRootCmd(cc *commandContext) *cobra.Command {
	root := &cobra.Command{
		Use:           "sweetshop-admin",
		Short:         "Administer the Sweet Shop catalog through its API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&cc.apiURL, "api-url", os.Getenv(envAPIURL), "Shop API base URL (env "+envAPIURL+")")
	flags.StringVar(&cc.email, "email", os.Getenv(envAdminEmail), "admin email (env "+envAdminEmail+")")
	flags.StringVar(&cc.password, "password", os.Getenv(envAdminPassword), "admin password (env "+envAdminPassword+")")
	flags.DurationVar(&cc.timeout, "timeout", 10*time.Second, "timeout for each API call")

	root.AddCommand(
		newSeedCmd(cc),
		newListCmd(cc),
		newRestockCmd(cc),
		newPurchaseCmd(cc),
	)
	return root
}

// session is a signed-in API connection for one command run.
type session struct {
	api       ports.ShopAPI
	token     string
	inventory *service.InventoryService
}

// connect builds the API client and exchanges the admin credentials for a token.
func (cc *commandContext) connect(ctx context.Context) (*session, error) {
	apiCfg := config.ShopAPIConfig{BaseURL: cc.apiURL, Timeout: cc.timeout}
	apiCfg.Sanitize()
	if apiCfg.BaseURL == "" {
		return nil, fmt.Errorf("api url is required (--api-url or %s)", envAPIURL)
	}

	creds := domainauth.Credentials{Email: strings.TrimSpace(cc.email), Password: cc.password}
	if creds.Email == "" || creds.Password == "" {
		return nil, fmt.Errorf("credentials are required (--email/--password or %s/%s)", envAdminEmail, envAdminPassword)
	}

	logger := cc.Logger
	if logger == nil {
		logger = slog.Default()
	}
	api, err := cc.NewAPI(apiCfg, logger)
	if err != nil {
		return nil, err
	}

	token, err := api.Login(ctx, creds)
	if err != nil {
		return nil, fmt.Errorf("login as %s: %w", creds.Email, err)
	}
	if token == "" {
		return nil, errors.New("login returned an empty token")
	}

	return &session{
		api:   api,
		token: token,
		// The CLI holds no dashboard mirror; List and BulkCreate never touch it.
		inventory: service.NewInventoryService(service.InventoryServiceOptions{
			API:     api,
			Mirrors: memory.NewMirrorStore(time.Minute),
			Logger:  logger,
		}),
	}, nil
}
