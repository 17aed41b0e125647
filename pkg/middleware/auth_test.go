package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	mr "github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/crossingbook/crossingbook/internal/config"
	"github.com/crossingbook/crossingbook/internal/models"
	"github.com/crossingbook/crossingbook/internal/sessions"
	"github.com/crossingbook/crossingbook/internal/tokens"
)

func testSetup(t *testing.T) (*config.Config, *sessions.Service) {
	t.Helper()
	m, err := mr.Run()
	require.NoError(t, err)
	t.Cleanup(m.Close)
	client := redis.NewClient(&redis.Options{Addr: m.Addr()})

	cfg := &config.Config{}
	cfg.Session.CookieName = "cb_session"
	cfg.JWT.Secret = "middleware-test-secret"
	return cfg, sessions.NewService(sessions.NewRedisRepository(client, ""))
}

func whoami(c *gin.Context) {
	id, _ := CurrentIdentity(c)
	c.JSON(http.StatusOK, gin.H{"username": id.Username, "role": id.Role})
}

func TestResolveIdentity_SessionCookie(t *testing.T) {
	cfg, sessionsSvc := testSetup(t)
	token, err := sessionsSvc.Create(t.Context(), "tomnook", models.RoleMember, time.Minute)
	require.NoError(t, err)

	r := gin.New()
	r.Use(ResolveIdentity(cfg, sessionsSvc))
	r.GET("/me", RequireUser(), whoami)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: cfg.Session.CookieName, Value: token})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "tomnook")
}

func TestResolveIdentity_BearerToken(t *testing.T) {
	cfg, sessionsSvc := testSetup(t)

	raw, err := tokens.GenerateAccessToken(cfg, &models.User{Username: "isabelle", Role: models.RoleAdmin}, time.Minute)
	require.NoError(t, err)

	r := gin.New()
	r.Use(ResolveIdentity(cfg, sessionsSvc))
	r.GET("/me", RequireUser(), whoami)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+raw)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "isabelle")
	require.Contains(t, w.Body.String(), models.RoleAdmin)
}

func TestRequireUser_Anonymous(t *testing.T) {
	cfg, sessionsSvc := testSetup(t)

	r := gin.New()
	r.Use(ResolveIdentity(cfg, sessionsSvc))
	r.GET("/me", RequireUser(), whoami)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireUser_ExpiredSession(t *testing.T) {
	cfg, sessionsSvc := testSetup(t)
	token, err := sessionsSvc.Create(t.Context(), "tomnook", models.RoleMember, -time.Minute)
	require.NoError(t, err)

	r := gin.New()
	r.Use(ResolveIdentity(cfg, sessionsSvc))
	r.GET("/me", RequireUser(), whoami)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: cfg.Session.CookieName, Value: token})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAdmin(t *testing.T) {
	cfg, sessionsSvc := testSetup(t)

	memberTok, err := sessionsSvc.Create(t.Context(), "tomnook", models.RoleMember, time.Minute)
	require.NoError(t, err)
	adminTok, err := sessionsSvc.Create(t.Context(), "admin", models.RoleAdmin, time.Minute)
	require.NoError(t, err)

	r := gin.New()
	r.Use(ResolveIdentity(cfg, sessionsSvc))
	r.GET("/types", RequireAdmin(), whoami)

	// member -> forbidden
	req := httptest.NewRequest(http.MethodGet, "/types", nil)
	req.AddCookie(&http.Cookie{Name: cfg.Session.CookieName, Value: memberTok})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusForbidden, w.Code)

	// anonymous -> unauthorized
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/types", nil))
	require.Equal(t, http.StatusUnauthorized, w.Code)

	// admin -> ok
	req = httptest.NewRequest(http.MethodGet, "/types", nil)
	req.AddCookie(&http.Cookie{Name: cfg.Session.CookieName, Value: adminTok})
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
}
