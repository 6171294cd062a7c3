package users

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"moviesgo/internal/api"
	"moviesgo/internal/apperror"
	"moviesgo/internal/cache"
	"moviesgo/internal/middleware"
	"moviesgo/internal/model"
	"moviesgo/internal/service"
	"moviesgo/internal/store"
	"moviesgo/internal/store/memstore"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	e      *echo.Echo
	store  *memstore.Store
	tokens *service.TokenService
}

func newFixture(t *testing.T, limiter *service.LoginLimiter) *fixture {
	t.Helper()
	s := memstore.New()
	tokens := service.NewTokenService("test-secret", time.Hour)
	d := Deps{Users: s, Tokens: tokens, Limiter: limiter}

	e := echo.New()
	e.Validator = api.NewValidator()
	e.HTTPErrorHandler = apperror.HTTPErrorHandler(nil)
	auth := middleware.RequireAuth(s, tokens)

	e.POST("/api/users", RegisterHandler(d))
	e.POST("/api/users/login", LoginHandler(d))
	e.GET("/api/users", ListUsersHandler(d), auth)
	e.GET("/api/users/me", GetMeHandler(), auth)
	e.PUT("/api/users/:id", UpdateUserHandler(d), auth)
	e.DELETE("/api/users/:id", DeleteUserHandler(d), auth)
	e.PUT("/api/users/:id/password", UpdatePasswordHandler(d), auth)
	return &fixture{e: e, store: s, tokens: tokens}
}

func (f *fixture) do(method, target, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.e.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func (f *fixture) register(t *testing.T, username, email, password string) api.AuthResponse {
	t.Helper()
	body := `{"username":"` + username + `","email":"` + email + `","password":"` + password + `"}`
	rec := f.do(http.MethodPost, "/api/users", "", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var auth api.AuthResponse
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &auth))
	return auth
}

func TestRegister(t *testing.T) {
	f := newFixture(t, nil)
	auth := f.register(t, "alice", "Alice@Example.com", "secret1")
	require.NotEmpty(t, auth.Token)
	require.Equal(t, "alice@example.com", auth.Email)

	id, err := f.tokens.Verify(auth.Token)
	require.NoError(t, err)
	require.Equal(t, auth.ID, id)

	stored, err := f.store.GetUserByID(context.Background(), auth.ID, store.ActiveOnly)
	require.NoError(t, err)
	require.NotEqual(t, "secret1", stored.PasswordHash)
	require.NoError(t, service.ComparePassword(stored.PasswordHash, "secret1"))

	cases := []struct {
		body string
		msg  string
	}{
		{`{"username":"bob","email":"alice@example.com","password":"secret1"}`, "user already exists"},
		{`{"username":"alice","email":"bob@example.com","password":"secret1"}`, "username already in use"},
		{`{"username":"bob","email":"bob@example.com"}`, "missing required fields"},
		{`{"username":"bob","email":"bob-at-example","password":"secret1"}`, "invalid email"},
		{`{"username":"bob","email":"bob@example.com","password":"12345"}`, "password must be at least 6 characters"},
		{`{"username":"bo","email":"bob@example.com","password":"secret1"}`, "username must be between 3 and 30 characters"},
	}
	for _, tc := range cases {
		rec := f.do(http.MethodPost, "/api/users", "", tc.body)
		require.Equal(t, http.StatusBadRequest, rec.Code, tc.body)
		require.Equal(t, tc.msg, decode(t, rec).Message, tc.body)
	}
}

func TestLoginGenericFailure(t *testing.T) {
	f := newFixture(t, nil)
	f.register(t, "alice", "alice@example.com", "secret1")

	rec := f.do(http.MethodPost, "/api/users/login", "", `{"email":"ALICE@example.com","password":"secret1"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var auth api.AuthResponse
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &auth))
	require.NotEmpty(t, auth.Token)

	wrong := f.do(http.MethodPost, "/api/users/login", "", `{"email":"alice@example.com","password":"nope!!"}`)
	missing := f.do(http.MethodPost, "/api/users/login", "", `{"email":"ghost@example.com","password":"secret1"}`)
	require.Equal(t, http.StatusUnauthorized, wrong.Code)
	require.Equal(t, http.StatusUnauthorized, missing.Code)
	require.Equal(t, wrong.Body.String(), missing.Body.String())
	require.Equal(t, invalidCredentials, decode(t, wrong).Message)

	rec = f.do(http.MethodPost, "/api/users/login", "", `{"email":"alice@example.com"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLoginThrottle(t *testing.T) {
	counts := map[string]int64{}
	c := &cache.FakeCache{
		GetFn: func(_ context.Context, key string) *redis.StringCmd {
			n, ok := counts[key]
			if !ok {
				return redis.NewStringResult("", redis.Nil)
			}
			return redis.NewStringResult(strconv.FormatInt(n, 10), nil)
		},
		IncrFn: func(_ context.Context, key string) *redis.IntCmd {
			counts[key]++
			return redis.NewIntResult(counts[key], nil)
		},
		ExpireFn: func(context.Context, string, time.Duration) *redis.BoolCmd {
			return redis.NewBoolResult(true, nil)
		},
		DelFn: func(_ context.Context, keys ...string) *redis.IntCmd {
			for _, k := range keys {
				delete(counts, k)
			}
			return redis.NewIntResult(1, nil)
		},
	}
	f := newFixture(t, service.NewLoginLimiter(c, 2, time.Minute, nil))
	f.register(t, "alice", "alice@example.com", "secret1")

	for i := 0; i < 2; i++ {
		rec := f.do(http.MethodPost, "/api/users/login", "", `{"email":"alice@example.com","password":"bad-password"}`)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	}
	rec := f.do(http.MethodPost, "/api/users/login", "", `{"email":"alice@example.com","password":"secret1"}`)
	require.Equal(t, http.StatusTooManyRequests, rec.Code)

	delete(counts, "moviesgo:login:alice@example.com")
	rec = f.do(http.MethodPost, "/api/users/login", "", `{"email":"alice@example.com","password":"secret1"}`)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestListUsersAndMe(t *testing.T) {
	f := newFixture(t, nil)
	alice := f.register(t, "alice", "alice@example.com", "secret1")
	f.register(t, "bob", "bob@example.com", "secret1")

	require.Equal(t, http.StatusUnauthorized, f.do(http.MethodGet, "/api/users", "", "").Code)

	rec := f.do(http.MethodGet, "/api/users?limit=1", alice.Token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotContains(t, rec.Body.String(), "password")
	var users []model.User
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &users))
	require.Len(t, users, 1)
	require.Equal(t, "bob", users[0].Username)

	rec = f.do(http.MethodGet, "/api/users/me", alice.Token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var me model.User
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &me))
	require.Equal(t, alice.ID, me.ID)
}

func TestUpdateUser(t *testing.T) {
	f := newFixture(t, nil)
	alice := f.register(t, "alice", "alice@example.com", "secret1")
	bob := f.register(t, "bob", "bob@example.com", "secret1")

	rec := f.do(http.MethodPut, "/api/users/"+bob.ID, alice.Token, `{"username":"hacked"}`)
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = f.do(http.MethodPut, "/api/users/"+alice.ID, alice.Token, `{"username":"bob"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "username already in use", decode(t, rec).Message)

	rec = f.do(http.MethodPut, "/api/users/"+alice.ID, alice.Token, `{"email":"BOB@example.com"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "email already registered", decode(t, rec).Message)

	rec = f.do(http.MethodPut, "/api/users/"+alice.ID, alice.Token, `{"username":"alicia","password":"ignored"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var got model.User
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &got))
	require.Equal(t, "alicia", got.Username)
	require.Equal(t, "alice@example.com", got.Email)

	stored, _ := f.store.GetUserByID(context.Background(), alice.ID, store.ActiveOnly)
	require.NoError(t, service.ComparePassword(stored.PasswordHash, "secret1"))
}

func TestUpdatePassword(t *testing.T) {
	f := newFixture(t, nil)
	alice := f.register(t, "alice", "alice@example.com", "secret1")
	bob := f.register(t, "bob", "bob@example.com", "secret1")

	rec := f.do(http.MethodPut, "/api/users/"+bob.ID+"/password", alice.Token, `{"oldPassword":"secret1","newPassword":"another1"}`)
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = f.do(http.MethodPut, "/api/users/"+alice.ID+"/password", alice.Token, `{"oldPassword":"wrong!!","newPassword":"another1"}`)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "current password is incorrect", decode(t, rec).Message)

	rec = f.do(http.MethodPut, "/api/users/"+alice.ID+"/password", alice.Token, `{"oldPassword":"secret1","newPassword":"123"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(http.MethodPut, "/api/users/"+alice.ID+"/password", alice.Token, `{"oldPassword":"secret1","newPassword":"another1"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "password updated successfully", decode(t, rec).Message)

	rec = f.do(http.MethodPost, "/api/users/login", "", `{"email":"alice@example.com","password":"another1"}`)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestDeleteUser(t *testing.T) {
	f := newFixture(t, nil)
	alice := f.register(t, "alice", "alice@example.com", "secret1")
	bob := f.register(t, "bob", "bob@example.com", "secret1")

	rec := f.do(http.MethodDelete, "/api/users/"+bob.ID, alice.Token, "")
	require.Equal(t, http.StatusForbidden, rec.Code)

	// 管理員可刪除他人
	admin, _ := model.NewUser("root", "root@example.com", "hash")
	admin.IsAdmin = true
	require.NoError(t, f.store.CreateUser(context.Background(), admin))
	adminToken, _ := f.tokens.Issue(admin.ID)
	rec = f.do(http.MethodDelete, "/api/users/"+bob.ID, adminToken, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "user marked as deleted", decode(t, rec).Message)

	// 本人刪除後令牌失效
	rec = f.do(http.MethodDelete, "/api/users/"+alice.ID, alice.Token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	rec = f.do(http.MethodGet, "/api/users/me", alice.Token, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	// 已刪除的 email 可以重新註冊
	f.register(t, "alice", "alice@example.com", "secret1")

	rec = f.do(http.MethodDelete, "/api/users/"+bob.ID, adminToken, "")
	require.Equal(t, http.StatusNotFound, rec.Code)
}
