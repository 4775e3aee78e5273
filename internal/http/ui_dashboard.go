package httpx

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	domainauth "github.com/DimpleKundu/incubyte-sweet-shop/internal/domain/auth"
	"github.com/DimpleKundu/incubyte-sweet-shop/internal/domain/model"
	apperrors "github.com/DimpleKundu/incubyte-sweet-shop/internal/errors"
	"github.com/DimpleKundu/incubyte-sweet-shop/internal/http/ui/inventory"
)

const (
	sweetGridTemplate = "sweet-grid"
	defaultRestock    = 10
	maxRestock        = 10000
)

//nolint:gochecknoglobals // static page metadata
var dashboardMeta = PageMeta{Title: "Sweet Shop - Dashboard", PageTitle: "Sweets", CurrentPage: PageDashboard}

// Dashboard loads the catalog and the current user, stores the list mirror,
// and renders the inventory. Any load failure ends the session.
// GET /dashboard.
func (h *UIHandlers) Dashboard(w http.ResponseWriter, r *http.Request) {
	sess := CurrentSession(r.Context())
	if sess == nil {
		redirectToLogin(w, r)
		return
	}

	dash, err := h.Inventory.Load(r.Context(), *sess)
	if err != nil {
		h.forceLogout(w, r, err)
		return
	}

	if synced, syncErr := h.Auth.SyncRole(r.Context(), *sess, dash.User.Role()); syncErr != nil {
		h.logger().WarnContext(r.Context(), "sync role failed", "error", syncErr)
	} else if synced.Role != sess.Role {
		r = r.WithContext(WithSession(r.Context(), &synced))
	}

	query := strings.TrimSpace(r.URL.Query().Get("q"))
	page := h.inventoryPage(r, dash.Mirror, query)
	page.Notice = r.URL.Query().Get("notice")
	h.renderPage(w, r, page)
}

// SweetsGrid answers a search from the session's mirror without calling the API.
// GET /dashboard/sweets?q=.
func (h *UIHandlers) SweetsGrid(w http.ResponseWriter, r *http.Request) {
	sess := CurrentSession(r.Context())
	if sess == nil {
		redirectToLogin(w, r)
		return
	}

	query := strings.TrimSpace(r.URL.Query().Get("q"))
	sweets, err := h.Inventory.Search(r.Context(), *sess, query)
	if err != nil {
		h.forceLogout(w, r, err)
		return
	}

	if !IsHTMX(r) {
		http.Redirect(w, r, dashboardURL(query, ""), http.StatusSeeOther)
		return
	}
	page := h.inventoryPage(r, model.Mirror{Sweets: sweets}, "")
	page.Query = query
	pushURL(w, dashboardURL(query, ""))
	h.renderFragment(w, r, sweetGridTemplate, page)
}

// Purchase buys one unit of a sweet.
// POST /sweets/{id}/purchase.
func (h *UIHandlers) Purchase(w http.ResponseWriter, r *http.Request) {
	sess, id, ok := h.mutationTarget(w, r)
	if !ok {
		return
	}
	m, err := h.Inventory.Purchase(r.Context(), *sess, id)
	if err != nil {
		h.mutationFailed(w, r, err, msgPurchaseFailed)
		return
	}
	h.mutationDone(w, r, m, msgPurchaseOK)
}

// Restock adds units to a sweet (admin).
// POST /sweets/{id}/restock.
func (h *UIHandlers) Restock(w http.ResponseWriter, r *http.Request) {
	sess, id, ok := h.mutationTarget(w, r)
	if !ok {
		return
	}
	amount, err := h.restockAmount(r)
	if err != nil {
		h.mutationFailed(w, r, err, msgRestockFailed)
		return
	}
	m, err := h.Inventory.Restock(r.Context(), *sess, id, amount)
	if err != nil {
		h.mutationFailed(w, r, err, msgRestockFailed)
		return
	}
	h.mutationDone(w, r, m, msgRestockOK)
}

// SweetDelete removes a sweet (admin).
// POST /sweets/{id}/delete.
func (h *UIHandlers) SweetDelete(w http.ResponseWriter, r *http.Request) {
	sess, id, ok := h.mutationTarget(w, r)
	if !ok {
		return
	}
	m, err := h.Inventory.Delete(r.Context(), *sess, id)
	if err != nil {
		h.mutationFailed(w, r, err, msgDeleteFailed)
		return
	}
	h.mutationDone(w, r, m, msgDeleteOK)
}

func (h *UIHandlers) mutationTarget(w http.ResponseWriter, r *http.Request) (*domainauth.Session, string, bool) {
	sess := CurrentSession(r.Context())
	if sess == nil {
		redirectToLogin(w, r)
		return nil, "", false
	}
	id := strings.TrimSpace(r.PathValue("id"))
	if id == "" {
		h.NotFound(w, r)
		return nil, "", false
	}
	return sess, id, true
}

// restockAmount reads the optional amount field, falling back to the configured default.
func (h *UIHandlers) restockAmount(r *http.Request) (int, error) {
	raw := strings.TrimSpace(r.PostFormValue("amount"))
	if raw == "" {
		if h.RestockAmount > 0 {
			return h.RestockAmount, nil
		}
		return defaultRestock, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 || n > maxRestock {
		return 0, apperrors.ValidationField("amount", "Amount must be between 1 and 10000.")
	}
	return n, nil
}

// mutationDone re-renders the grid from the patched mirror for htmx, or
// redirects back to the dashboard with a notice. Without a list to render the
// htmx caller is sent to the dashboard, which refetches.
func (h *UIHandlers) mutationDone(w http.ResponseWriter, r *http.Request, m model.Mirror, notice string) {
	query := strings.TrimSpace(r.PostFormValue("q"))
	if !IsHTMX(r) {
		http.Redirect(w, r, dashboardURL(query, notice), http.StatusSeeOther)
		return
	}
	if !m.Loaded() {
		redirect(w, r, dashboardURL(query, notice))
		return
	}
	triggerToast(w, notice, "success")
	h.renderFragment(w, r, sweetGridTemplate, h.inventoryPage(r, m, query))
}

// mutationFailed reports a failed mutation. The mirror was not touched. A
// rejected token ends the session instead.
func (h *UIHandlers) mutationFailed(w http.ResponseWriter, r *http.Request, err error, msg string) {
	if apperrors.IsUnauthorized(err) {
		h.forceLogout(w, r, err)
		return
	}
	h.logger().WarnContext(r.Context(), "mutation failed",
		"path", r.URL.Path,
		"error", err,
	)
	if !IsHTMX(r) {
		http.Redirect(w, r, dashboardURL(strings.TrimSpace(r.PostFormValue("q")), msg), http.StatusSeeOther)
		return
	}
	triggerToast(w, msg, "error")
	w.WriteHeader(http.StatusNoContent)
}

func (h *UIHandlers) inventoryPage(r *http.Request, m model.Mirror, query string) *inventory.Page {
	sweets := m.Sweets
	if query != "" {
		sweets = m.Filter(query)
	}
	amount := h.RestockAmount
	if amount <= 0 {
		amount = defaultRestock
	}
	return &inventory.Page{
		Layout:        buildLayout(r, dashboardMeta),
		Sweets:        inventory.CardsFrom(sweets),
		Query:         query,
		RestockAmount: amount,
		FetchedAt:     m.FetchedAt,
	}
}

func dashboardURL(query, notice string) string {
	q := url.Values{}
	if query != "" {
		q.Set("q", query)
	}
	if notice != "" {
		q.Set("notice", notice)
	}
	if enc := q.Encode(); enc != "" {
		return "/dashboard?" + enc
	}
	return "/dashboard"
}
