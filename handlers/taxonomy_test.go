package handlers

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTypeRoutesAreAdminOnly(t *testing.T) {
	app := newTestApp(t)
	memberCk := app.signup(t, "marshal", "sekrit1")

	paths := []string{"/get_types", "/add_types", "/edit_types/x", "/delete_types/x"}
	for _, p := range paths {
		w := app.do(t, http.MethodGet, p, nil, nil)
		require.Equal(t, http.StatusUnauthorized, w.Code, "anonymous %s", p)

		w = app.do(t, http.MethodGet, p, nil, memberCk)
		require.Equal(t, http.StatusForbidden, w.Code, "member %s", p)
	}

	w := app.do(t, http.MethodPost, "/add_types", url.Values{"recipe_type": {"Furniture"}}, memberCk)
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestTypeLifecycle(t *testing.T) {
	app := newTestApp(t)
	ck := app.adminCookie(t)

	w := app.do(t, http.MethodPost, "/add_types", url.Values{"recipe_type": {"Wallpaper"}}, ck)
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/get_types", w.Header().Get("Location"))

	app.do(t, http.MethodPost, "/add_types", url.Values{"recipe_type": {"Furniture"}}, ck)

	// listing is sorted by name and carries the queued flash
	w = app.do(t, http.MethodGet, "/get_types", nil, ck)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "New Type Added")
	types, err := app.taxonomySvc.List(t.Context())
	require.NoError(t, err)
	require.Len(t, types, 2)
	require.Equal(t, "Furniture", types[0].Name)
	require.Equal(t, "Wallpaper", types[1].Name)

	w = app.do(t, http.MethodPost, "/edit_types/"+types[1].ID, url.Values{"recipe_type": {"Flooring"}}, ck)
	require.Equal(t, http.StatusFound, w.Code)
	got, err := app.taxonomySvc.Get(t.Context(), types[1].ID)
	require.NoError(t, err)
	require.Equal(t, "Flooring", got.Name)

	w = app.do(t, http.MethodGet, "/delete_types/"+types[0].ID, nil, ck)
	require.Equal(t, http.StatusFound, w.Code)
	remaining, err := app.taxonomySvc.List(t.Context())
	require.NoError(t, err)
	require.Len(t, remaining, 1)
}

func TestEditTypeUnknownID(t *testing.T) {
	app := newTestApp(t)
	ck := app.adminCookie(t)

	w := app.do(t, http.MethodGet, "/edit_types/no-such-type", nil, ck)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestAddTypeValidation(t *testing.T) {
	app := newTestApp(t)
	ck := app.adminCookie(t)

	w := app.do(t, http.MethodPost, "/add_types", url.Values{}, ck)
	require.Equal(t, http.StatusBadRequest, w.Code)
}
