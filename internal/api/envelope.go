package api

import (
	"math"
	"net/http"

	"moviesgo/internal/store"

	"github.com/labstack/echo/v4"
)

// Envelope 成功回應的統一格式
// swagger:model api.Envelope
type Envelope struct {
	Success    bool        `json:"success" example:"true"`
	Data       any         `json:"data,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
	Message    string      `json:"message,omitempty" example:"operation completed"`
}

// Pagination 列表的分頁資訊
// swagger:model api.Pagination
type Pagination struct {
	CurrentPage  int   `json:"currentPage" example:"1"`
	TotalPages   int   `json:"totalPages" example:"3"`
	TotalItems   int64 `json:"totalItems" example:"25"`
	ItemsPerPage int   `json:"itemsPerPage" example:"10"`
}

// NewPagination totalPages = ceil(total / limit)
func NewPagination(p store.Page, total int64) *Pagination {
	pages := 0
	if p.Limit > 0 {
		pages = int(math.Ceil(float64(total) / float64(p.Limit)))
	}
	return &Pagination{
		CurrentPage:  p.Number,
		TotalPages:   pages,
		TotalItems:   total,
		ItemsPerPage: p.Limit,
	}
}

// IDResponse 刪除後回傳的識別資料
// swagger:model api.IDResponse
type IDResponse struct {
	ID string `json:"id" example:"0b8f3c8e-3f4a-4f0e-9d59-0c1c2f6f4a10"`
}

// OK 回傳單筆資料
func OK(c echo.Context, status int, data any) error {
	return c.JSON(status, Envelope{Success: true, Data: data})
}

// List 回傳列表與分頁資訊
func List[T any](c echo.Context, items []T, p store.Page, total int64) error {
	if items == nil {
		items = []T{}
	}
	return c.JSON(http.StatusOK, Envelope{
		Success:    true,
		Data:       items,
		Pagination: NewPagination(p, total),
	})
}

// Message 回傳資料與說明文字
func Message(c echo.Context, status int, data any, msg string) error {
	return c.JSON(status, Envelope{Success: true, Data: data, Message: msg})
}
