package httpx

import (
	"net/http"
	"strconv"
)

//nolint:gochecknoglobals // static page metadata
var homeMeta = PageMeta{Title: "Sweet Shop", PageTitle: "Welcome", CurrentPage: PageHome}

// Home renders the landing page with links to log in or register.
// GET /.
func (h *UIHandlers) Home(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, r, newPage(r, homeMeta))
}

// errorPage feeds the standalone error-layout template.
type errorPage struct {
	Title     string
	Code      string
	Message   string
	ShowLogin bool
}

// NotFound answers unmatched routes: an HTML page for browsers, JSON otherwise.
func (h *UIHandlers) NotFound(w http.ResponseWriter, r *http.Request) {
	if !IsBrowserRequest(r) {
		WriteError(w, http.StatusNotFound, "not_found", "not found")
		return
	}
	h.renderErrorPage(w, r, http.StatusNotFound, "The page you're looking for doesn't exist.")
}

func (h *UIHandlers) renderErrorPage(w http.ResponseWriter, r *http.Request, status int, message string) {
	if h.T == nil {
		http.Error(w, message, status)
		return
	}
	page := errorPage{
		Title:     http.StatusText(status) + " - Sweet Shop",
		Code:      strconv.Itoa(status),
		Message:   message,
		ShowLogin: CurrentSession(r.Context()) == nil,
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := h.T.RenderError(w, r, page); err != nil {
		h.logger().Error("render error page", "status", status, "error", err)
	}
}
