package httpx

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// MirrorForgetter drops a session's cached sweet list.
type MirrorForgetter interface {
	Forget(ctx context.Context, sessionID string) error
}

// AuthHandlers serves the non-page auth endpoints: sign-out and the JSON
// session probe.
type AuthHandlers struct {
	Svc          AuthServiceInterface
	Mirrors      MirrorForgetter // optional
	CookieDomain string
	Logger       *slog.Logger
}

type statusUser struct {
	Email   string `json:"email"`
	Role    string `json:"role"`
	IsAdmin bool   `json:"is_admin"`
}

type statusResponse struct {
	Authenticated bool        `json:"authenticated"`
	User          *statusUser `json:"user,omitempty"`
	ExpiresAt     *time.Time  `json:"expires_at,omitempty"`
}

func (h *AuthHandlers) log() *slog.Logger {
	if h.Logger == nil {
		return slog.Default()
	}
	return h.Logger
}

// Logout ends the session, drops its mirror and clears the cookie. Scripts
// asking for JSON get a JSON answer; everyone else is sent to /login.
// POST /logout.
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if id := sessionIDFromRequest(r); id != "" {
		if err := h.Svc.Logout(ctx, id); err != nil {
			h.log().WarnContext(ctx, "logout: delete session", "error", err)
		}
		if h.Mirrors != nil {
			if err := h.Mirrors.Forget(ctx, id); err != nil {
				h.log().WarnContext(ctx, "logout: delete mirror", "error", err)
			}
		}
	}
	clearSessionCookie(w, r, h.CookieDomain)

	if !IsHTMX(r) && strings.Contains(r.Header.Get("Accept"), "application/json") {
		WriteJSON(w, http.StatusOK, map[string]string{"status": "success", "redirect_to": "/login"})
		return
	}
	redirect(w, r, "/login")
}

// Status reports whether the request carries a live session.
// GET /auth/status.
func (h *AuthHandlers) Status(w http.ResponseWriter, r *http.Request) {
	var resp statusResponse
	if id := sessionIDFromRequest(r); id != "" {
		sess, err := h.Svc.GetSession(r.Context(), id)
		if err != nil {
			clearSessionCookie(w, r, h.CookieDomain)
		} else {
			resp.Authenticated = true
			resp.User = &statusUser{Email: sess.Email, Role: string(sess.Role), IsAdmin: sess.IsAdmin()}
			resp.ExpiresAt = &sess.ExpiresAt
		}
	}
	WriteJSON(w, http.StatusOK, resp)
}
