package users

import (
	"net/http"

	"moviesgo/internal/api"
	"moviesgo/internal/apperror"
	"moviesgo/internal/middleware"
	"moviesgo/internal/model"
	"moviesgo/internal/service"
	"moviesgo/internal/store"

	"github.com/labstack/echo/v4"
)

// UpdatePasswordHandler 驗證目前密碼後更換新密碼
// @Summary     Change password
// @Tags        users
// @Accept      json
// @Accept      application/x-www-form-urlencoded
// @Produce     json
// @Param       id   path     string                    true "使用者 ID"
// @Param       body body     api.UpdatePasswordRequest true "新舊密碼"
// @Success     200  {object} api.Envelope
// @Failure     400  {object} apperror.Response
// @Failure     401  {object} apperror.Response
// @Failure     403  {object} apperror.Response
// @Failure     404  {object} apperror.Response
// @Security    ApiKeyAuth
// @Router      /users/{id}/password [put]
func UpdatePasswordHandler(d Deps) echo.HandlerFunc {
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
			return apperror.Forbidden("not authorized to change this password")
		}

		var req api.UpdatePasswordRequest
		if err := api.Bind(c, &req); err != nil {
			return err
		}
		if err := model.ValidatePassword(req.NewPassword); err != nil {
			return api.ValidationError(err)
		}

		ctx := c.Request().Context()
		user, err := d.Users.GetUserByID(ctx, id, store.ActiveOnly)
		if err != nil {
			return api.StoreError(err, notFoundMessage)
		}
		if err := service.AuthenticateUser(user, req.OldPassword); err != nil {
			return apperror.Unauthorized("current password is incorrect")
		}

		hash, err := service.HashPassword(req.NewPassword)
		if err != nil {
			return apperror.Internal(err)
		}
		if err := d.Users.UpdateUserPassword(ctx, id, hash); err != nil {
			return api.StoreError(err, notFoundMessage)
		}
		return api.Message(c, http.StatusOK, nil, "password updated successfully")
	}
}
