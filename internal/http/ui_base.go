package httpx

import (
	"context"
	"fmt"
	"html"
	"io"
	"log/slog"
	"net/http"

	domainauth "github.com/DimpleKundu/incubyte-sweet-shop/internal/domain/auth"
	"github.com/DimpleKundu/incubyte-sweet-shop/internal/domain/model"
	"github.com/DimpleKundu/incubyte-sweet-shop/internal/http/ui/viewmodel"
	"github.com/DimpleKundu/incubyte-sweet-shop/internal/service"
)

// AuthServiceInterface is what the auth pages and guards need from the auth service.
type AuthServiceInterface interface {
	Register(ctx context.Context, creds domainauth.Credentials) error
	Login(ctx context.Context, creds domainauth.Credentials) (*service.LoginResult, error)
	GetSession(ctx context.Context, sessionID string) (*domainauth.Session, error)
	SyncRole(ctx context.Context, sess domainauth.Session, role domainauth.Role) (domainauth.Session, error)
	Logout(ctx context.Context, sessionID string) error
}

// InventoryServiceInterface is what the dashboard needs from the inventory service.
type InventoryServiceInterface interface {
	Load(ctx context.Context, sess domainauth.Session) (*service.Dashboard, error)
	Search(ctx context.Context, sess domainauth.Session, query string) ([]model.Sweet, error)
	Get(ctx context.Context, sess domainauth.Session, id string) (model.Sweet, error)
	Purchase(ctx context.Context, sess domainauth.Session, id string) (model.Mirror, error)
	Restock(ctx context.Context, sess domainauth.Session, id string, amount int) (model.Mirror, error)
	Create(ctx context.Context, sess domainauth.Session, in model.SweetInput) (model.Sweet, error)
	Update(ctx context.Context, sess domainauth.Session, id string, in model.SweetInput) (model.Sweet, error)
	Delete(ctx context.Context, sess domainauth.Session, id string) (model.Mirror, error)
	Forget(ctx context.Context, sessionID string) error
}

// Compile-time interface assertions to ensure concrete services satisfy their UI interfaces.
var (
	_ AuthServiceInterface      = (*service.AuthService)(nil)
	_ InventoryServiceInterface = (*service.InventoryService)(nil)
)

// UIHandlers serves browser-facing routes.
type UIHandlers struct {
	T             *TemplateRenderer
	Auth          AuthServiceInterface
	Inventory     InventoryServiceInterface
	CookieDomain  string
	RestockAmount int  // Default units added by the restock control
	IsDev         bool // Development mode flag for enhanced error reporting
	Logger        *slog.Logger
}

// logger returns the configured logger or falls back to slog.Default().
func (h *UIHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// PageMeta names a page for the layout.
type PageMeta struct {
	Title       string
	PageTitle   string
	CurrentPage string
}

// buildLayout fills the page chrome from meta and the visitor's session.
func buildLayout(r *http.Request, meta PageMeta) viewmodel.Layout {
	l := viewmodel.Layout{
		Title:       meta.Title,
		PageTitle:   meta.PageTitle,
		CurrentPage: meta.CurrentPage,
		CSRFToken:   GetCSRFToken(r),
	}
	if s := CurrentSession(r.Context()); s != nil {
		l.IsAuthenticated = true
		l.IsAdmin = s.IsAdmin()
		l.User = &viewmodel.User{Email: s.Email, Role: string(s.Role)}
	}
	return l
}

// basePageData flattens the layout into the map form used by untyped pages.
func basePageData(r *http.Request, meta PageMeta) pageData {
	l := buildLayout(r, meta)
	d := pageData{
		"Title":           l.Title,
		"PageTitle":       l.PageTitle,
		"CurrentPage":     l.CurrentPage,
		"IsAuthenticated": l.IsAuthenticated,
		"IsAdmin":         l.IsAdmin,
		"CSRFToken":       l.CSRFToken,
	}
	if l.User != nil {
		d["User"] = l.User
	}
	return d
}

// renderPage renders the whole layout, or for htmx navigation just the
// content area preceded by a <title> that htmx copies into the tab.
func (h *UIHandlers) renderPage(w http.ResponseWriter, r *http.Request, data any) {
	if !IsHTMX(r) {
		if err := h.T.RenderFull(w, r, data); err != nil {
			h.templateFailed(w, r, "layout", err)
		}
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := io.WriteString(w, "<title>"+html.EscapeString(documentTitle(data))+"</title>"); err != nil {
		h.logger().WarnContext(r.Context(), "write partial title", "error", err)
		return
	}
	if err := h.T.RenderPartial(w, r, data); err != nil {
		h.templateFailed(w, r, "content", err)
	}
}

// renderFragment renders one named template, e.g. the sweet grid after a mutation.
func (h *UIHandlers) renderFragment(w http.ResponseWriter, r *http.Request, name string, data any) {
	if err := h.T.RenderNamed(w, name, data); err != nil {
		h.templateFailed(w, r, name, err)
	}
}

func documentTitle(data any) string {
	switch v := data.(type) {
	case viewmodel.Titled:
		return v.DocumentTitle()
	case pageData:
		t, _ := v["Title"].(string)
		return t
	case map[string]any:
		t, _ := v["Title"].(string)
		return t
	}
	return ""
}

// forceLogout ends the visitor's session after the API rejected its token or
// the dashboard could not be loaded, and sends the browser to the login page.
func (h *UIHandlers) forceLogout(w http.ResponseWriter, r *http.Request, cause error) {
	ctx := r.Context()
	if id := sessionIDFromRequest(r); id != "" {
		if err := h.Auth.Logout(ctx, id); err != nil {
			h.logger().WarnContext(ctx, "forced logout: delete session failed", "error", err)
		}
		if err := h.Inventory.Forget(ctx, id); err != nil {
			h.logger().WarnContext(ctx, "forced logout: delete mirror failed", "error", err)
		}
	}
	h.logger().InfoContext(ctx, "session ended by server", "path", r.URL.Path, "cause", cause)

	clearSessionCookie(w, r, h.CookieDomain)
	redirect(w, r, "/login")
}

// templateFailed answers a failed render with a 500. Development builds show
// the template error inline.
func (h *UIHandlers) templateFailed(w http.ResponseWriter, r *http.Request, template string, err error) {
	h.logger().ErrorContext(r.Context(), "render template",
		"template", template,
		"path", r.URL.Path,
		"error", err,
	)
	if !h.IsDev {
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusInternalServerError)
	_, _ = fmt.Fprintf(w, `<div class="dev-error"><h2>Template error in %s</h2><p>%s</p><pre>%s</pre></div>`,
		html.EscapeString(template), html.EscapeString(r.URL.Path), html.EscapeString(err.Error()))
}
