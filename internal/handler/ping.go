// File: internal/handler/ping.go
package handler

import (
	"context"
	"net/http"

	"moviesgo/internal/api"
	"moviesgo/internal/apperror"
	"moviesgo/internal/cache"

	"github.com/labstack/echo/v4"
)

// Pinger 可回報連線狀態的儲存後端
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingResponse 健康檢查回應模型
// swagger:model PingResponse
type PingResponse struct {
	// 回應訊息
	Message string `json:"message" example:"pong"`
}

// PingHandler 健康檢查
// @Summary     Health Check
// @Description 回傳 pong，並檢查資料庫與 Redis 連線是否正常
// @Tags        health
// @Produce     json
// @Success     200 {object} api.Envelope{data=PingResponse}
// @Failure     503 {object} apperror.Response
// @Router      /ping [get]
func PingHandler(db Pinger, rdb cache.Cache) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		if err := db.Ping(ctx); err != nil {
			return apperror.Unavailable("database unhealthy", err)
		}
		// 未設定 Redis 時略過
		if rdb != nil {
			if err := rdb.Ping(ctx).Err(); err != nil {
				return apperror.Unavailable("cache unhealthy", err)
			}
		}
		return api.OK(c, http.StatusOK, PingResponse{Message: "pong"})
	}
}
