package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHomePage(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, http.MethodGet, "/", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	v := decode(t, w)
	require.Equal(t, "index", v["page"])
	_, loggedIn := v["user"]
	require.False(t, loggedIn)
}

func TestHomePageShowsUser(t *testing.T) {
	app := newTestApp(t)
	ck := app.signup(t, "marshal", "sekrit1")

	w := app.do(t, http.MethodGet, "/index", nil, ck)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "marshal", decode(t, w)["user"])
}

func TestUnknownRouteIs404(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, http.MethodGet, "/definitely/not/a/route", nil, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Contains(t, w.Body.String(), "page not found")
}

func TestUploadUnavailableWithoutStore(t *testing.T) {
	app := newTestApp(t)
	ck := app.signup(t, "marshal", "sekrit1")

	w := app.do(t, http.MethodPost, "/upload_image", nil, ck)
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
}
