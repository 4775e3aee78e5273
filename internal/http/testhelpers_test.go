package httpx

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/DimpleKundu/incubyte-sweet-shop/internal/adapters/memory"
	domainauth "github.com/DimpleKundu/incubyte-sweet-shop/internal/domain/auth"
	"github.com/DimpleKundu/incubyte-sweet-shop/internal/domain/model"
	"github.com/DimpleKundu/incubyte-sweet-shop/internal/mocks"
	"github.com/DimpleKundu/incubyte-sweet-shop/internal/service"
	"github.com/DimpleKundu/incubyte-sweet-shop/internal/testutil"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const testCSRFToken = "test-csrf"

// RequireTemplateRenderer loads the real templates from disk.
func RequireTemplateRenderer(t *testing.T) *TemplateRenderer {
	t.Helper()
	tr, err := NewTemplateRenderer(TemplateRendererConfig{TemplateFS: os.DirFS(TemplatePathFromTest)})
	require.NoError(t, err, "templates must parse")
	return tr
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// testEnv is a full router backed by in-memory stores and a mocked Shop API.
type testEnv struct {
	api      *mocks.MockShopAPI
	sessions *memory.SessionStore
	mirrors  *memory.MirrorStore
	router   http.Handler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctrl := gomock.NewController(t)
	api := mocks.NewMockShopAPI(ctrl)
	sessions := memory.NewSessionStore()
	mirrors := memory.NewMirrorStore(time.Hour)
	logger := discardLogger()

	auth := service.NewAuthService(service.AuthServiceOptions{
		API:      api,
		Sessions: sessions,
		Config:   service.AuthConfig{SessionTTL: time.Hour, Logger: logger},
	})
	inv := service.NewInventoryService(service.InventoryServiceOptions{
		API:     api,
		Mirrors: mirrors,
		Logger:  logger,
	})

	return &testEnv{
		api:      api,
		sessions: sessions,
		mirrors:  mirrors,
		router: NewRouter(RouterServices{
			Auth:          auth,
			Inventory:     inv,
			RestockAmount: 10,
			TemplateFS:    os.DirFS(TemplatePathFromTest),
			Logger:        logger,
		}),
	}
}

// login stores a session for role and returns it.
func (e *testEnv) login(t *testing.T, role domainauth.Role) domainauth.Session {
	t.Helper()
	sess := testutil.NewSession("sess-"+string(role), role)
	require.NoError(t, e.sessions.Save(context.Background(), sess))
	return sess
}

// seedMirror stores the sample catalog as the session's mirror.
func (e *testEnv) seedMirror(t *testing.T, sess domainauth.Session) {
	t.Helper()
	m := model.NewMirror(testutil.SampleSweets(), time.Now())
	require.NoError(t, e.mirrors.Save(context.Background(), sess.ID, m))
}

func (e *testEnv) mirror(t *testing.T, sess domainauth.Session) model.Mirror {
	t.Helper()
	m, err := e.mirrors.Get(context.Background(), sess.ID)
	require.NoError(t, err)
	return m
}

func (e *testEnv) serve(r *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, r)
	return rec
}

type reqOpt func(*http.Request)

func withSession(sess domainauth.Session) reqOpt {
	return func(r *http.Request) { r.AddCookie(&http.Cookie{Name: SessionCookieName, Value: sess.ID}) }
}

func asHTMX() reqOpt {
	return func(r *http.Request) { r.Header.Set("Hx-Request", "true") }
}

func getReq(target string, opts ...reqOpt) *http.Request {
	r := httptest.NewRequest(http.MethodGet, target, nil)
	for _, o := range opts {
		o(r)
	}
	return r
}

// postForm builds a CSRF-valid form POST.
func postForm(target string, form url.Values, opts ...reqOpt) *http.Request {
	r := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	r.AddCookie(&http.Cookie{Name: DefaultCSRFCookieName, Value: testCSRFToken})
	r.Header.Set(DefaultCSRFHeaderName, testCSRFToken)
	for _, o := range opts {
		o(r)
	}
	return r
}

func findCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// cardHTML returns the rendered article for one sweet.
func cardHTML(t *testing.T, body, id string) string {
	t.Helper()
	start := strings.Index(body, `id="sweet-`+id+`"`)
	require.GreaterOrEqual(t, start, 0, "card %s not rendered", id)
	end := strings.Index(body[start:], "</article>")
	require.Greater(t, end, 0)
	return body[start : start+end]
}
