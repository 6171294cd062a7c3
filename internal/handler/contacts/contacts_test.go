package contacts

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"moviesgo/internal/api"
	"moviesgo/internal/apperror"
	"moviesgo/internal/model"
	"moviesgo/internal/store"
	"moviesgo/internal/store/memstore"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func newServer(s *memstore.Store) *echo.Echo {
	e := echo.New()
	e.Validator = api.NewValidator()
	e.HTTPErrorHandler = apperror.HTTPErrorHandler(nil)
	e.POST("/api/contact", CreateContactHandler(s))
	e.GET("/api/contact", ListContactsHandler(s))
	e.PUT("/api/contact/:id", UpdateContactHandler(s))
	e.DELETE("/api/contact/:id", DeleteContactHandler(s))
	return e
}

func do(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Success    bool            `json:"success"`
	Data       json.RawMessage `json:"data"`
	Pagination *api.Pagination `json:"pagination"`
	Message    string          `json:"message"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func TestCreateContact(t *testing.T) {
	s := memstore.New()
	e := newServer(s)

	rec := do(e, http.MethodPost, "/api/contact", `{"name":"Ann","email":"ann@example.com","message":"Hello"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	env := decode(t, rec)
	require.True(t, env.Success)
	var got model.Contact
	require.NoError(t, json.Unmarshal(env.Data, &got))
	require.NotEmpty(t, got.ID)
	require.Equal(t, "Hello", got.Message)
	require.NotContains(t, string(env.Data), "deleted")

	rec = do(e, http.MethodPost, "/api/contact", `{"name":"Ann","message":"Hello"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "missing required fields", decode(t, rec).Message)

	rec = do(e, http.MethodPost, "/api/contact", `{"name":"Ann","email":"not-mail","message":"Hello"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "invalid email", decode(t, rec).Message)

	// 只有空白視為缺少
	rec = do(e, http.MethodPost, "/api/contact", `{"name":"  ","email":"ann@example.com","message":"Hello"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	_, total, _ := s.ListContacts(context.Background(), store.Page{Number: 1, Limit: 10})
	require.EqualValues(t, 1, total)
}

func TestListContacts(t *testing.T) {
	s := memstore.New()
	e := newServer(s)
	for i := 0; i < 12; i++ {
		c, _ := model.NewContact("n", "n@example.com", "m")
		require.NoError(t, s.CreateContact(context.Background(), c))
	}

	rec := do(e, http.MethodGet, "/api/contact?page=2&limit=5", "")
	require.Equal(t, http.StatusOK, rec.Code)
	env := decode(t, rec)
	require.Equal(t, &api.Pagination{CurrentPage: 2, TotalPages: 3, TotalItems: 12, ItemsPerPage: 5}, env.Pagination)
	var items []model.Contact
	require.NoError(t, json.Unmarshal(env.Data, &items))
	require.Len(t, items, 5)

	rec = do(e, http.MethodGet, "/api/contact?limit=500", "")
	require.Equal(t, 50, decode(t, rec).Pagination.ItemsPerPage)

	rec = do(e, http.MethodGet, "/api/contact?page=0", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(e, http.MethodGet, "/api/contact?limit=-5", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateAndDeleteContact(t *testing.T) {
	s := memstore.New()
	e := newServer(s)
	msg, _ := model.NewContact("n", "n@example.com", "m")
	require.NoError(t, s.CreateContact(context.Background(), msg))

	rec := do(e, http.MethodPut, "/api/contact/"+msg.ID, `{"name":"N2","email":"n2@example.com","message":"m2"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	got, _ := s.GetContactByID(context.Background(), msg.ID, store.ActiveOnly)
	require.Equal(t, "N2", got.Name)
	require.Equal(t, "m2", got.Message)

	// 取代需要完整三個欄位
	rec = do(e, http.MethodPut, "/api/contact/"+msg.ID, `{"name":"N3"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	got, _ = s.GetContactByID(context.Background(), msg.ID, store.ActiveOnly)
	require.Equal(t, "N2", got.Name)

	rec = do(e, http.MethodPut, "/api/contact/not-a-uuid", `{"name":"a","email":"a@example.com","message":"m"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(e, http.MethodDelete, "/api/contact/"+msg.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	env := decode(t, rec)
	require.Equal(t, "message marked as deleted", env.Message)
	require.JSONEq(t, `{"id":"`+msg.ID+`"}`, string(env.Data))

	// 軟刪除後不可見，但資料仍在
	rec = do(e, http.MethodDelete, "/api/contact/"+msg.ID, "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	rec = do(e, http.MethodPut, "/api/contact/"+msg.ID, `{"name":"a","email":"a@example.com","message":"m"}`)
	require.Equal(t, http.StatusNotFound, rec.Code)
	rec = do(e, http.MethodGet, "/api/contact", "")
	require.JSONEq(t, `[]`, string(decode(t, rec).Data))

	deleted, err := s.GetContactByID(context.Background(), msg.ID, store.IncludeDeleted)
	require.NoError(t, err)
	require.True(t, deleted.Deleted)
}
