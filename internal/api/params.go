package api

import (
	"strconv"
	"strings"

	"moviesgo/internal/apperror"
	"moviesgo/internal/store"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 50
)

// ParsePagination 讀取 page 與 limit；非數字或小於 1 回傳 BadRequest，limit 上限 50
func ParsePagination(c echo.Context) (store.Page, error) {
	page, err := positiveQuery(c, "page", DefaultPage)
	if err != nil {
		return store.Page{}, err
	}
	limit, err := positiveQuery(c, "limit", DefaultLimit)
	if err != nil {
		return store.Page{}, err
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return store.Page{Number: page, Limit: limit}, nil
}

func positiveQuery(c echo.Context, name string, def int) (int, error) {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, apperror.BadRequest("invalid pagination parameters")
	}
	return n, nil
}

// ParseID 讀取路徑參數並確認為 UUID
func ParseID(c echo.Context, name string) (string, error) {
	id := c.Param(name)
	if err := uuid.Validate(id); err != nil {
		return "", apperror.BadRequest("invalid id")
	}
	return id, nil
}

// Bind 綁定並驗證請求內容
func Bind(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return apperror.BadRequest("invalid request body")
	}
	return c.Validate(req)
}
