package users

import (
	"errors"
	"net/http"

	"moviesgo/internal/api"
	"moviesgo/internal/apperror"
	"moviesgo/internal/model"
	"moviesgo/internal/service"
	"moviesgo/internal/store"

	"github.com/labstack/echo/v4"
)

// invalidCredentials 帳號不存在與密碼錯誤共用
const invalidCredentials = "invalid credentials"

// LoginHandler 以 email 與密碼登入
// @Summary     Log in
// @Tags        users
// @Accept      json
// @Accept      application/x-www-form-urlencoded
// @Produce     json
// @Param       body body     api.LoginRequest true "登入資料"
// @Success     200  {object} api.Envelope{data=api.AuthResponse}
// @Failure     400  {object} apperror.Response
// @Failure     401  {object} apperror.Response
// @Failure     429  {object} apperror.Response
// @Router      /users/login [post]
func LoginHandler(d Deps) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.LoginRequest
		if err := api.Bind(c, &req); err != nil {
			return err
		}
		ctx := c.Request().Context()
		email := model.NormalizeEmail(req.Email)

		if !d.Limiter.Allow(ctx, email) {
			return apperror.TooManyRequests("too many login attempts, try again later")
		}

		user, err := d.Users.GetUserByEmail(ctx, email)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return apperror.Internal(err)
		}
		if err != nil || service.AuthenticateUser(user, req.Password) != nil {
			d.Limiter.Fail(ctx, email)
			return apperror.Unauthorized(invalidCredentials)
		}
		d.Limiter.Reset(ctx, email)

		token, err := d.Tokens.Issue(user.ID)
		if err != nil {
			return apperror.Internal(err)
		}
		return api.OK(c, http.StatusOK, api.AuthResponse{
			ID:       user.ID,
			Username: user.Username,
			Email:    user.Email,
			IsAdmin:  user.IsAdmin,
			Token:    token,
		})
	}
}
