package httpx

import (
	"io/fs"
	"log/slog"
	"net/http"
	"os"

	sweetshop "github.com/DimpleKundu/incubyte-sweet-shop"
	domainauth "github.com/DimpleKundu/incubyte-sweet-shop/internal/domain/auth"
)

const staticDir = "frontend/static"

// RouterServices holds everything NewRouter wires into handlers.
type RouterServices struct {
	Auth          AuthServiceInterface
	Inventory     InventoryServiceInterface
	CookieDomain  string
	RestockAmount int
	HealthChecks  []HealthCheck
	TemplateFS    fs.FS // overrides the template source; tests point it at disk
	IsDev         bool  // serve templates and assets from disk
	Logger        *slog.Logger
}

// NewRouter builds the storefront handler: pages, dashboard actions, session
// endpoints, health and static assets, behind CSRF and browser detection.
func NewRouter(services RouterServices) http.Handler {
	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}
	mux := http.NewServeMux()

	health := healthHandler(services.HealthChecks...)
	mux.Handle("GET /healthz", health)
	mux.Handle("HEAD /healthz", health)
	mux.Handle("GET /static/", staticHandler(services.IsDev, logger))

	session := &AuthHandlers{
		Svc:          services.Auth,
		CookieDomain: services.CookieDomain,
		Logger:       logger,
	}
	if services.Inventory != nil {
		session.Mirrors = services.Inventory
	}
	mux.HandleFunc("POST /logout", session.Logout)
	mux.HandleFunc("GET /auth/status", session.Status)

	ui, err := newUIHandlers(services, logger)
	if err != nil {
		// Without templates only the JSON and static routes can work.
		logger.Error("storefront pages disabled", slog.Any("error", err))
		mux.Handle("/", http.NotFoundHandler())
	} else {
		registerPages(mux, ui, services.Auth)
	}

	csrf := CSRFProtection(CSRFConfig{CookieDomain: services.CookieDomain})
	return BrowserDetection()(csrf(mux))
}

// registerPages wires pages and dashboard actions with their guards. The "/"
// pattern only sees requests no other route matched.
func registerPages(mux *http.ServeMux, h *UIHandlers, auth SessionLookup) {
	anyone := OptionalSession(auth)
	member := RequireSession(auth)
	admin := RequireRole(auth, domainauth.RoleAdmin)

	routes := []struct {
		pattern string
		guard   func(http.Handler) http.Handler
		handler http.HandlerFunc
	}{
		{"GET /{$}", anyone, h.Home},
		{"GET /login", anyone, h.LoginPage},
		{"POST /login", nil, h.LoginPost},
		{"GET /register", anyone, h.RegisterPage},
		{"POST /register", nil, h.RegisterPost},

		{"GET /dashboard", member, h.Dashboard},
		{"GET /dashboard/sweets", member, h.SweetsGrid},
		{"POST /sweets/{id}/purchase", member, h.Purchase},

		{"GET /sweets/new", admin, h.SweetNew},
		{"GET /sweets/{id}/edit", admin, h.SweetEdit},
		{"POST /sweets", admin, h.SweetCreate},
		{"POST /sweets/{id}", admin, h.SweetUpdate},
		{"POST /sweets/{id}/delete", admin, h.SweetDelete},
		{"POST /sweets/{id}/restock", admin, h.Restock},

		{"/", anyone, h.NotFound},
	}
	for _, rt := range routes {
		var handler http.Handler = rt.handler
		if rt.guard != nil {
			handler = rt.guard(handler)
		}
		mux.Handle(rt.pattern, handler)
	}
}

func newUIHandlers(services RouterServices, logger *slog.Logger) (*UIHandlers, error) {
	tr, err := NewTemplateRenderer(TemplateRendererConfig{
		TemplateFS: templateSource(services),
		Logger:     logger,
	})
	if err != nil {
		return nil, err
	}
	return &UIHandlers{
		T:             tr,
		Auth:          services.Auth,
		Inventory:     services.Inventory,
		CookieDomain:  services.CookieDomain,
		RestockAmount: services.RestockAmount,
		IsDev:         services.IsDev,
		Logger:        logger,
	}, nil
}

// templateSource prefers an explicit override, then disk in dev mode, then
// the copy embedded in the binary.
func templateSource(services RouterServices) fs.FS {
	switch {
	case services.TemplateFS != nil:
		return services.TemplateFS
	case services.IsDev:
		return os.DirFS(TemplatePathFromRoot)
	}
	sub, err := fs.Sub(sweetshop.TemplateFS, TemplatePathFromRoot)
	if err != nil {
		return os.DirFS(TemplatePathFromRoot)
	}
	return sub
}

// staticHandler serves /static/. Embedded assets are cacheable for an hour;
// disk assets in dev mode are never cached.
func staticHandler(isDev bool, logger *slog.Logger) http.Handler {
	var (
		files     http.FileSystem = http.Dir(staticDir)
		cacheable bool
	)
	if !isDev {
		if sub, err := fs.Sub(sweetshop.StaticFS, staticDir); err == nil {
			files, cacheable = http.FS(sub), true
		} else {
			logger.Warn("embedded assets unavailable, serving from disk", slog.Any("error", err))
		}
	}

	cacheControl := "no-cache, no-store, must-revalidate"
	if cacheable {
		cacheControl = "public, max-age=3600"
	}
	fileServer := http.StripPrefix("/static/", http.FileServer(files))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", cacheControl)
		fileServer.ServeHTTP(w, r)
	})
}
