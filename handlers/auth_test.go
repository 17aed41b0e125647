package handlers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegisterRedirectsToProfile(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, http.MethodPost, "/register", url.Values{"username": {"Marshal"}, "password": {"sekrit1"}}, nil)
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/profile/marshal", w.Header().Get("Location"))

	ck := sessionCookie(t, app.cfg, w)
	w = app.do(t, http.MethodGet, "/profile/marshal", nil, ck)
	require.Equal(t, http.StatusOK, w.Code)

	v := decode(t, w)
	require.Equal(t, "marshal", v["username"])
	require.Equal(t, false, v["is_admin"], "registered accounts are plain members")
	require.Contains(t, w.Body.String(), "Registration Complete!")
}

func TestRegisterDuplicateUsername(t *testing.T) {
	app := newTestApp(t)
	app.signup(t, "marshal", "sekrit1")

	w := app.do(t, http.MethodPost, "/register", url.Values{"username": {"MARSHAL"}, "password": {"other-pass"}}, nil)
	require.Equal(t, http.StatusConflict, w.Code)
	require.Contains(t, w.Body.String(), "Username is Taken")
}

func TestRegisterValidation(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, http.MethodPost, "/register", url.Values{"username": {"ab"}, "password": {"sekrit1"}}, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = app.do(t, http.MethodPost, "/register", url.Values{"username": {"marshal"}, "password": {"short"}}, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginWrongPassword(t *testing.T) {
	app := newTestApp(t)
	app.signup(t, "marshal", "sekrit1")

	w := app.do(t, http.MethodPost, "/login", url.Values{"username": {"marshal"}, "password": {"wrong"}}, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Contains(t, w.Body.String(), "Incorrect Username and/or Password")
}

func TestLoginUnknownUser(t *testing.T) {
	app := newTestApp(t)

	// unknown username and wrong password are indistinguishable
	w := app.do(t, http.MethodPost, "/login", url.Values{"username": {"nobody"}, "password": {"whatever"}}, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Contains(t, w.Body.String(), "Incorrect Username and/or Password")
}

func TestLoginFlashOnProfile(t *testing.T) {
	app := newTestApp(t)
	app.signup(t, "marshal", "sekrit1")

	w := app.do(t, http.MethodPost, "/login", url.Values{"username": {"marshal"}, "password": {"sekrit1"}}, nil)
	require.Equal(t, http.StatusFound, w.Code)
	ck := sessionCookie(t, app.cfg, w)

	w = app.do(t, http.MethodGet, "/profile/marshal", nil, ck)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "Good day, marshal")

	// flashes are one-shot
	w = app.do(t, http.MethodGet, "/profile/marshal", nil, ck)
	require.NotContains(t, w.Body.String(), "Good day, marshal")
}

func TestLogoutDestroysSession(t *testing.T) {
	app := newTestApp(t)
	ck := app.signup(t, "marshal", "sekrit1")

	w := app.do(t, http.MethodGet, "/logout", nil, ck)
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/login", w.Header().Get("Location"))

	w = app.do(t, http.MethodGet, "/profile/marshal", nil, ck)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProfileWithoutAccount(t *testing.T) {
	app := newTestApp(t)

	// a session whose account does not exist in the user store
	ck := app.adminCookie(t)
	w := app.do(t, http.MethodGet, "/profile/resetti", nil, ck)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestProfileRequiresSession(t *testing.T) {
	app := newTestApp(t)
	w := app.do(t, http.MethodGet, "/profile/anyone", nil, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestIssueTokenAndBearerAccess(t *testing.T) {
	app := newTestApp(t)
	app.signup(t, "marshal", "sekrit1")

	body := []byte(`{"username":"marshal","password":"sekrit1"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/token", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	app.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	access, ok := decode(t, w)["accessToken"].(string)
	require.True(t, ok)
	require.NotEmpty(t, access)

	req = httptest.NewRequest(http.MethodGet, "/add_recipe", nil)
	req.Header.Set("Authorization", "Bearer "+access)
	w = httptest.NewRecorder()
	app.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestIssueTokenBadCredentials(t *testing.T) {
	app := newTestApp(t)

	body := []byte(`{"username":"marshal","password":"nope"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/token", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	app.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}
