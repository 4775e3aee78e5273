package httpx

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	domainauth "github.com/DimpleKundu/incubyte-sweet-shop/internal/domain/auth"
	"github.com/DimpleKundu/incubyte-sweet-shop/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAuth is a hand-rolled AuthServiceInterface backed by a map of sessions.
type fakeAuth struct {
	sessions  map[string]*domainauth.Session
	logoutErr error
	loggedOut []string
}

func newFakeAuth(sessions ...*domainauth.Session) *fakeAuth {
	f := &fakeAuth{sessions: map[string]*domainauth.Session{}}
	for _, s := range sessions {
		f.sessions[s.ID] = s
	}
	return f
}

func (f *fakeAuth) Register(context.Context, domainauth.Credentials) error { return nil }

func (f *fakeAuth) Login(context.Context, domainauth.Credentials) (*service.LoginResult, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeAuth) GetSession(_ context.Context, id string) (*domainauth.Session, error) {
	s, ok := f.sessions[id]
	if !ok {
		return nil, errors.New("session not found")
	}
	return s, nil
}

func (f *fakeAuth) SyncRole(_ context.Context, s domainauth.Session, role domainauth.Role) (domainauth.Session, error) {
	s.Role = role
	return s, nil
}

func (f *fakeAuth) Logout(_ context.Context, id string) error {
	f.loggedOut = append(f.loggedOut, id)
	delete(f.sessions, id)
	return f.logoutErr
}

func testSession(id string, role domainauth.Role) *domainauth.Session {
	return &domainauth.Session{
		ID:        id,
		Email:     id + "@example.com",
		Token:     "token-" + id,
		Role:      role,
		ExpiresAt: time.Now().Add(time.Hour),
	}
}

func echoSession(t *testing.T) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s := CurrentSession(r.Context())
		if s == nil {
			_, _ = w.Write([]byte("anonymous"))
			return
		}
		_, _ = w.Write([]byte(s.ID))
	})
}

func TestRequireSession(t *testing.T) {
	auth := newFakeAuth(testSession("alice", domainauth.RoleUser))
	handler := BrowserDetection()(RequireSession(auth)(echoSession(t)))

	tests := []struct {
		name         string
		path         string
		cookie       string
		headers      map[string]string
		wantStatus   int
		wantLocation string
		wantHXRedir  string
		wantBody     string
	}{
		{
			name:       "valid session passes through",
			path:       "/dashboard",
			cookie:     "alice",
			wantStatus: http.StatusOK,
			wantBody:   "alice",
		},
		{
			name:         "browser without session is redirected",
			path:         "/dashboard?q=kaju",
			wantStatus:   http.StatusSeeOther,
			wantLocation: "/login?redirect_uri=%2Fdashboard%3Fq%3Dkaju",
		},
		{
			name:         "unknown session is redirected",
			path:         "/dashboard",
			cookie:       "mallory",
			wantStatus:   http.StatusSeeOther,
			wantLocation: "/login?redirect_uri=%2Fdashboard",
		},
		{
			name:        "htmx request gets Hx-Redirect to the current page",
			path:        "/dashboard/sweets?q=k",
			headers:     map[string]string{"Hx-Request": "true", "Hx-Current-Url": "https://shop.example.com/dashboard?q=k"},
			wantStatus:  http.StatusOK,
			wantHXRedir: "/login?redirect_uri=%2Fdashboard%3Fq%3Dk",
		},
		{
			name:       "json client gets 401",
			path:       "/dashboard",
			headers:    map[string]string{"Accept": "application/json"},
			wantStatus: http.StatusUnauthorized,
			wantBody:   "authentication_required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: tt.cookie})
			}
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantLocation != "" {
				assert.Equal(t, tt.wantLocation, rec.Header().Get("Location"))
			}
			if tt.wantHXRedir != "" {
				assert.Equal(t, tt.wantHXRedir, rec.Header().Get("Hx-Redirect"))
				assert.Empty(t, rec.Header().Get("Location"))
			}
			if tt.wantBody != "" {
				assert.Contains(t, rec.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	auth := newFakeAuth(
		testSession("alice", domainauth.RoleUser),
		testSession("root", domainauth.RoleAdmin),
	)
	handler := BrowserDetection()(RequireRole(auth, domainauth.RoleAdmin)(echoSession(t)))

	serve := func(cookie string, headers map[string]string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/sweets/new", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: cookie})
		for k, v := range headers {
			req.Header.Set(k, v)
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	t.Run("admin passes", func(t *testing.T) {
		rec := serve("root", nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "root", rec.Body.String())
	})

	t.Run("user is denied", func(t *testing.T) {
		rec := serve("alice", nil)
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Contains(t, rec.Body.String(), "Access Denied")
	})

	t.Run("htmx user is denied with a toast", func(t *testing.T) {
		rec := serve("alice", map[string]string{"Hx-Request": "true"})
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Contains(t, rec.Header().Get("Hx-Trigger"), "Admins only")
	})

	t.Run("json user gets 403", func(t *testing.T) {
		rec := serve("alice", map[string]string{"Accept": "application/json"})
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Contains(t, rec.Body.String(), "insufficient_permissions")
	})
}

func TestOptionalSession(t *testing.T) {
	auth := newFakeAuth(testSession("alice", domainauth.RoleUser))
	handler := OptionalSession(auth)(echoSession(t))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "alice"})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, "alice", rec.Body.String())

	anon := httptest.NewRecorder()
	handler.ServeHTTP(anon, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, anon.Code)
	assert.Equal(t, "anonymous", anon.Body.String())
}

func TestReturnPath(t *testing.T) {
	tests := []struct {
		name    string
		method  string
		target  string
		headers map[string]string
		want    string
	}{
		{
			name:    "prefers htmx current url",
			target:  "/dashboard/sweets",
			headers: map[string]string{"Hx-Request": "true", "Hx-Current-Url": "https://shop.example.com/dashboard?q=fudge"},
			want:    "/dashboard?q=fudge",
		},
		{
			name:    "falls back to referer",
			target:  "/dashboard/sweets",
			headers: map[string]string{"Hx-Request": "true", "Referer": "https://shop.example.com/dashboard"},
			want:    "/dashboard",
		},
		{
			name:   "rejects scheme-relative current url",
			target: "/dashboard/sweets",
			headers: map[string]string{
				"Hx-Request":     "true",
				"Hx-Current-Url": "//evil.example.com/steal",
				"Referer":        "https://shop.example.com/sweets/new",
			},
			want: "/sweets/new",
		},
		{
			name:   "malformed headers fall back to the request uri",
			target: "/dashboard?q=rasgulla",
			headers: map[string]string{
				"Hx-Request":     "true",
				"Hx-Current-Url": "http://%zz",
				"Referer":        "http://%zz",
			},
			want: "/dashboard?q=rasgulla",
		},
		{
			name:   "non-GET without htmx hints has no redirect",
			method: http.MethodPost,
			target: "/sweets/s1/purchase",
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			method := tt.method
			if method == "" {
				method = http.MethodGet
			}
			req := httptest.NewRequest(method, tt.target, nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, returnPath(req))
		})
	}
}

func TestRedirectToLogin_DefaultsToDashboard(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/sweets/s1/purchase", nil)
	rec := httptest.NewRecorder()

	redirectToLogin(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login?redirect_uri=%2Fdashboard", rec.Header().Get("Location"))
}

func TestRecover(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&logs, nil))
	handler := Recover(logger)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("kaboom")
	}))

	rec := httptest.NewRecorder()
	require.NotPanics(t, func() {
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dashboard", nil))
	})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, logs.String(), "kaboom")
}

func TestLogging(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&logs, nil))
	handler := Logging(logger)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	line := logs.String()
	assert.True(t, strings.Contains(line, `"status":418`), line)
	assert.Contains(t, line, `"path":"/healthz"`)
}
