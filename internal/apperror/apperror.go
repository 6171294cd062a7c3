// Package apperror 定義 API 的錯誤分類，並在單一邊界轉換為 HTTP 回應
package apperror

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
)

// Kind 錯誤類別
type Kind int

const (
	KindInternal Kind = iota
	KindBadRequest
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindTooManyRequests
	KindUpload
	KindUnavailable
)

// Status 回傳類別對應的 HTTP 狀態碼
func (k Kind) Status() int {
	switch k {
	case KindBadRequest:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindTooManyRequests:
		return http.StatusTooManyRequests
	case KindUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (k Kind) String() string {
	switch k {
	case KindBadRequest:
		return "bad_request"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	case KindTooManyRequests:
		return "too_many_requests"
	case KindUpload:
		return "upload"
	case KindUnavailable:
		return "unavailable"
	default:
		return "internal"
	}
}

// Error 分類後的錯誤；Message 會直接回給呼叫端，Err 只寫入日誌
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func newError(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

func BadRequest(msg string) *Error      { return newError(KindBadRequest, msg) }
func Unauthorized(msg string) *Error    { return newError(KindUnauthorized, msg) }
func Forbidden(msg string) *Error       { return newError(KindForbidden, msg) }
func NotFound(msg string) *Error        { return newError(KindNotFound, msg) }
func TooManyRequests(msg string) *Error { return newError(KindTooManyRequests, msg) }

// Upload 包裝媒體服務的失敗
func Upload(msg string, err error) *Error {
	return &Error{Kind: KindUpload, Message: msg, Err: err}
}

// Unavailable 相依服務無法使用
func Unavailable(msg string, err error) *Error {
	return &Error{Kind: KindUnavailable, Message: msg, Err: err}
}

// Internal 包裝未分類的錯誤，對外只顯示通用訊息
func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: "internal server error", Err: err}
}

// KindOf 取得錯誤類別；非 *Error 一律視為 KindInternal
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// StatusOf 錯誤最終會回傳的狀態碼，供日誌與指標使用
func StatusOf(err error) int {
	status, _ := resolve(err)
	return status
}

// Response 錯誤回應格式
// swagger:model apperror.Response
type Response struct {
	Success bool   `json:"success" example:"false"`
	Message string `json:"message" example:"movie not found"`
}

// HTTPErrorHandler 取代 echo 預設的錯誤處理，所有錯誤都在這裡轉成狀態碼
func HTTPErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, msg := resolve(err)
		if status >= http.StatusInternalServerError {
			logger.Error("request failed",
				"method", c.Request().Method,
				"path", c.Path(),
				"status", status,
				"error", err,
			)
		}

		var werr error
		if c.Request().Method == http.MethodHead {
			werr = c.NoContent(status)
		} else {
			werr = c.JSON(status, Response{Success: false, Message: msg})
		}
		if werr != nil {
			logger.Error("write error response", "error", werr)
		}
	}
}

func resolve(err error) (int, string) {
	var appErr *Error
	if errors.As(err, &appErr) {
		status := appErr.Kind.Status()
		if status >= http.StatusInternalServerError && appErr.Kind != KindUpload && appErr.Kind != KindUnavailable {
			return status, "internal server error"
		}
		return status, appErr.Message
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		if he.Code >= http.StatusInternalServerError {
			return he.Code, "internal server error"
		}
		if m, ok := he.Message.(string); ok {
			return he.Code, m
		}
		return he.Code, http.StatusText(he.Code)
	}

	return http.StatusInternalServerError, "internal server error"
}
