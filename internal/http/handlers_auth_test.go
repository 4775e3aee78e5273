package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	domainauth "github.com/DimpleKundu/incubyte-sweet-shop/internal/domain/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMirrors struct{ forgotten []string }

func (f *fakeMirrors) Forget(_ context.Context, id string) error {
	f.forgotten = append(f.forgotten, id)
	return nil
}

func TestAuthHandlers_Logout(t *testing.T) {
	t.Run("browser", func(t *testing.T) {
		auth := newFakeAuth(testSession("alice", domainauth.RoleUser))
		mirrors := &fakeMirrors{}
		h := &AuthHandlers{Svc: auth, Mirrors: mirrors, Logger: discardLogger()}

		req := httptest.NewRequest(http.MethodPost, "/logout", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "alice"})
		rec := httptest.NewRecorder()
		h.Logout(rec, req)

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/login", rec.Header().Get("Location"))
		assert.Equal(t, []string{"alice"}, auth.loggedOut)
		assert.Equal(t, []string{"alice"}, mirrors.forgotten)
		if c := findCookie(rec, SessionCookieName); assert.NotNil(t, c) {
			assert.Empty(t, c.Value)
			assert.Negative(t, c.MaxAge)
		}
	})

	t.Run("htmx", func(t *testing.T) {
		h := &AuthHandlers{Svc: newFakeAuth(), Logger: discardLogger()}
		req := httptest.NewRequest(http.MethodPost, "/logout", nil)
		req.Header.Set("Hx-Request", "true")
		rec := httptest.NewRecorder()
		h.Logout(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "/login", rec.Header().Get("Hx-Redirect"))
	})

	t.Run("json", func(t *testing.T) {
		h := &AuthHandlers{Svc: newFakeAuth(), Logger: discardLogger()}
		req := httptest.NewRequest(http.MethodPost, "/logout", nil)
		req.Header.Set("Accept", "application/json")
		rec := httptest.NewRecorder()
		h.Logout(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"status":"success","redirect_to":"/login"}`, rec.Body.String())
	})

	t.Run("store failure still clears the cookie", func(t *testing.T) {
		auth := newFakeAuth(testSession("bob", domainauth.RoleUser))
		auth.logoutErr = errors.New("redis down")
		h := &AuthHandlers{Svc: auth, Logger: discardLogger()}

		req := httptest.NewRequest(http.MethodPost, "/logout", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "bob"})
		rec := httptest.NewRecorder()
		h.Logout(rec, req)

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.NotNil(t, findCookie(rec, SessionCookieName))
	})
}

func TestAuthHandlers_Status(t *testing.T) {
	h := &AuthHandlers{Svc: newFakeAuth(testSession("root", domainauth.RoleAdmin)), Logger: discardLogger()}

	status := func(cookie string) (map[string]any, *httptest.ResponseRecorder) {
		req := httptest.NewRequest(http.MethodGet, "/auth/status", nil)
		if cookie != "" {
			req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: cookie})
		}
		rec := httptest.NewRecorder()
		h.Status(rec, req)
		var body map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		return body, rec
	}

	t.Run("authenticated", func(t *testing.T) {
		body, _ := status("root")
		assert.Equal(t, true, body["authenticated"])
		user, ok := body["user"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "root@example.com", user["email"])
		assert.Equal(t, "admin", user["role"])
		assert.Equal(t, true, user["is_admin"])
		assert.NotEmpty(t, body["expires_at"])
	})

	t.Run("no cookie", func(t *testing.T) {
		body, rec := status("")
		assert.Equal(t, false, body["authenticated"])
		assert.Nil(t, findCookie(rec, SessionCookieName))
	})

	t.Run("stale cookie is cleared", func(t *testing.T) {
		body, rec := status("gone")
		assert.Equal(t, false, body["authenticated"])
		assert.NotNil(t, findCookie(rec, SessionCookieName))
	})
}
