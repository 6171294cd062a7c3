// File: internal/handler/users/update_user.go
package users

import (
	"net/http"

	"moviesgo/internal/api"
	"moviesgo/internal/apperror"
	"moviesgo/internal/middleware"
	"moviesgo/internal/store"

	"github.com/labstack/echo/v4"
)

// UpdateUserHandler 更新自己的 username / email
// @Summary     Update a user
// @Description 只能修改自己的帳號；空白欄位保持不變，密碼請用 /users/{id}/password
// @Tags        users
// @Accept      json
// @Accept      application/x-www-form-urlencoded
// @Produce     json
// @Param       id   path     string                true "使用者 ID"
// @Param       body body     api.UpdateUserRequest true "更新資料"
// @Success     200  {object} api.Envelope{data=model.User}
// @Failure     400  {object} apperror.Response
// @Failure     401  {object} apperror.Response
// @Failure     403  {object} apperror.Response
// @Failure     404  {object} apperror.Response
// @Security    ApiKeyAuth
// @Router      /users/{id} [put]
func UpdateUserHandler(d Deps) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := api.ParseID(c, "id")
		if err != nil {
			return err
		}
		current, ok := middleware.CurrentUser(c)
		if !ok {
			return apperror.Unauthorized("not authorized")
		}
		if current.ID != id {
			return apperror.Forbidden("not authorized to update this user")
		}

		var req api.UpdateUserRequest
		if err := api.Bind(c, &req); err != nil {
			return err
		}

		ctx := c.Request().Context()
		user, err := d.Users.GetUserByID(ctx, id, store.ActiveOnly)
		if err != nil {
			return api.StoreError(err, notFoundMessage)
		}
		if err := user.ApplyProfile(req.Username, req.Email); err != nil {
			return api.ValidationError(err)
		}
		if err := d.Users.UpdateUser(ctx, user); err != nil {
			return duplicateError(err, "email already registered", "username already in use")
		}
		return api.OK(c, http.StatusOK, user.Public())
	}
}
