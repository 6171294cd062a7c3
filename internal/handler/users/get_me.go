// File: internal/handler/users/get_me.go
package users

import (
	"net/http"

	"moviesgo/internal/api"
	"moviesgo/internal/apperror"
	"moviesgo/internal/middleware"

	"github.com/labstack/echo/v4"
)

// GetMeHandler 取得當前使用者資訊
// @Summary     Get current user info
// @Description 透過 JWT Token 取得當前使用者詳細資訊
// @Tags        users
// @Produce     json
// @Success     200 {object} api.Envelope{data=model.User}
// @Failure     401 {object} apperror.Response
// @Security    ApiKeyAuth
// @Router      /users/me [get]
func GetMeHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			return apperror.Unauthorized("not authorized")
		}
		return api.OK(c, http.StatusOK, user)
	}
}
