package router

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"moviesgo/internal/apperror"
	"moviesgo/internal/media"
	"moviesgo/internal/service"
	"moviesgo/internal/store/memstore"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func newServer() *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = apperror.HTTPErrorHandler(nil)
	Setup(e, Deps{
		Store:  memstore.New(),
		Tokens: service.NewTokenService("secret", time.Hour),
		Media:  &media.FakeUploader{},
		Folder: "moviesgo",
	})
	return e
}

func TestSetupRoutes(t *testing.T) {
	e := newServer()

	got := map[string]struct{}{}
	for _, r := range e.Routes() {
		got[r.Method+" "+r.Path] = struct{}{}
	}

	expected := []string{
		http.MethodGet + " /api/ping",
		http.MethodPost + " /api/contact",
		http.MethodGet + " /api/contact",
		http.MethodPut + " /api/contact/:id",
		http.MethodDelete + " /api/contact/:id",
		http.MethodGet + " /api/movies",
		http.MethodGet + " /api/movies/:id",
		http.MethodPost + " /api/movies",
		http.MethodPut + " /api/movies/:id",
		http.MethodDelete + " /api/movies/:id",
		http.MethodPost + " /api/users",
		http.MethodPost + " /api/users/login",
		http.MethodGet + " /api/users",
		http.MethodGet + " /api/users/me",
		http.MethodPut + " /api/users/:id",
		http.MethodDelete + " /api/users/:id",
		http.MethodPut + " /api/users/:id/password",
	}

	require.Equal(t, len(expected), len(got))
	for _, k := range expected {
		_, ok := got[k]
		require.True(t, ok, "missing route %s", k)
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	e := newServer()
	id := "0b8f3c8e-3f4a-4f0e-9d59-0c1c2f6f4a10"

	protected := [][2]string{
		{http.MethodGet, "/api/contact"},
		{http.MethodPut, "/api/contact/" + id},
		{http.MethodDelete, "/api/contact/" + id},
		{http.MethodPost, "/api/movies"},
		{http.MethodPut, "/api/movies/" + id},
		{http.MethodDelete, "/api/movies/" + id},
		{http.MethodGet, "/api/users"},
		{http.MethodGet, "/api/users/me"},
		{http.MethodPut, "/api/users/" + id},
		{http.MethodDelete, "/api/users/" + id},
		{http.MethodPut, "/api/users/" + id + "/password"},
	}
	for _, p := range protected {
		req := httptest.NewRequest(p[0], p[1], nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		require.Equal(t, http.StatusUnauthorized, rec.Code, p[0]+" "+p[1])
		require.Contains(t, rec.Body.String(), "not authorized")
	}

	public := [][2]string{
		{http.MethodGet, "/api/movies"},
		{http.MethodGet, "/api/ping"},
	}
	for _, p := range public {
		req := httptest.NewRequest(p[0], p[1], nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, p[0]+" "+p[1])
	}
}
