package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	mr "github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/crossingbook/crossingbook/internal/config"
	"github.com/crossingbook/crossingbook/internal/models"
	"github.com/crossingbook/crossingbook/internal/recipes"
	"github.com/crossingbook/crossingbook/internal/sessions"
	"github.com/crossingbook/crossingbook/internal/taxonomy"
	"github.com/crossingbook/crossingbook/internal/users"
	"github.com/crossingbook/crossingbook/pkg/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// testApp wires the full route surface against in-memory repositories and a
// miniredis-backed session store.
type testApp struct {
	router      *gin.Engine
	cfg         *config.Config
	sessionsSvc *sessions.Service
	usersSvc    *users.Service
	recipesSvc  *recipes.Service
	taxonomySvc *taxonomy.Service
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	m, err := mr.Run()
	require.NoError(t, err)
	t.Cleanup(m.Close)
	client := redis.NewClient(&redis.Options{Addr: m.Addr()})

	cfg := &config.Config{}
	cfg.Session.CookieName = "cb_session"
	cfg.Session.TTL = time.Hour
	cfg.JWT.Secret = "handlers-test-secret"
	cfg.JWT.AccessTokenTTL = time.Minute

	app := &testApp{
		cfg:         cfg,
		sessionsSvc: sessions.NewService(sessions.NewRedisRepository(client, "session:")),
		usersSvc:    users.NewService(users.NewMemoryRepository()),
		recipesSvc:  recipes.NewService(recipes.NewMemoryRepository()),
		taxonomySvc: taxonomy.NewService(taxonomy.NewMemoryRepository()),
	}

	r := gin.New()
	r.Use(middleware.ResolveIdentity(cfg, app.sessionsSvc))
	RegisterPages(r, app.sessionsSvc)
	NewAuthHandler(cfg, app.usersSvc, app.sessionsSvc, app.recipesSvc).Register(r)
	NewRecipeHandler(app.recipesSvc, app.taxonomySvc, app.sessionsSvc).Register(r)
	NewTypeHandler(app.taxonomySvc, app.sessionsSvc).Register(r)
	NewUploadHandler(nil).Register(r)
	app.router = r
	return app
}

func (a *testApp) do(t *testing.T, method, path string, form url.Values, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

// signup registers a fresh account and returns its session cookie.
func (a *testApp) signup(t *testing.T, username, password string) *http.Cookie {
	t.Helper()
	w := a.do(t, http.MethodPost, "/register", url.Values{"username": {username}, "password": {password}}, nil)
	require.Equal(t, http.StatusFound, w.Code)
	return sessionCookie(t, a.cfg, w)
}

// adminCookie starts a session with the admin role directly in the store;
// accounts created through /register are always plain members.
func (a *testApp) adminCookie(t *testing.T) *http.Cookie {
	t.Helper()
	tok, err := a.sessionsSvc.Create(t.Context(), "resetti", models.RoleAdmin, time.Hour)
	require.NoError(t, err)
	return &http.Cookie{Name: a.cfg.Session.CookieName, Value: tok}
}

func sessionCookie(t *testing.T, cfg *config.Config, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, ck := range w.Result().Cookies() {
		if ck.Name == cfg.Session.CookieName && ck.Value != "" {
			return ck
		}
	}
	t.Fatal("response carries no session cookie")
	return nil
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var v map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	return v
}
