// File: internal/handler/users/register_user.go
package users

import (
	"net/http"

	"moviesgo/internal/api"
	"moviesgo/internal/apperror"
	"moviesgo/internal/model"
	"moviesgo/internal/service"

	"github.com/labstack/echo/v4"
)

// RegisterHandler 註冊新帳號並回傳令牌
// @Summary     Register a user
// @Description Email 會轉為小寫；username 與 email 在未刪除帳號中必須唯一
// @Tags        users
// @Accept      json
// @Accept      application/x-www-form-urlencoded
// @Produce     json
// @Param       body body     api.RegisterRequest true "註冊資料"
// @Success     201  {object} api.Envelope{data=api.AuthResponse}
// @Failure     400  {object} apperror.Response
// @Failure     500  {object} apperror.Response
// @Router      /users [post]
func RegisterHandler(d Deps) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.RegisterRequest
		if err := api.Bind(c, &req); err != nil {
			return err
		}
		if err := model.ValidatePassword(req.Password); err != nil {
			return api.ValidationError(err)
		}

		hash, err := service.HashPassword(req.Password)
		if err != nil {
			return apperror.Internal(err)
		}
		user, err := model.NewUser(req.Username, req.Email, hash)
		if err != nil {
			return api.ValidationError(err)
		}
		if err := d.Users.CreateUser(c.Request().Context(), user); err != nil {
			return duplicateError(err, "user already exists", "username already in use")
		}

		token, err := d.Tokens.Issue(user.ID)
		if err != nil {
			return apperror.Internal(err)
		}
		return api.OK(c, http.StatusCreated, api.AuthResponse{
			ID:       user.ID,
			Username: user.Username,
			Email:    user.Email,
			IsAdmin:  user.IsAdmin,
			Token:    token,
		})
	}
}
