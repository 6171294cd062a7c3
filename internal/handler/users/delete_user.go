package users

import (
	"net/http"

	"moviesgo/internal/api"
	"moviesgo/internal/apperror"
	"moviesgo/internal/middleware"

	"github.com/labstack/echo/v4"
)

// DeleteUserHandler 軟刪除帳號，本人或管理員可執行
// @Summary     Delete a user
// @Tags        users
// @Produce     json
// @Param       id  path     string true "使用者 ID"
// @Success     200 {object} api.Envelope{data=api.IDResponse}
// @Failure     400 {object} apperror.Response
// @Failure     401 {object} apperror.Response
// @Failure     403 {object} apperror.Response
// @Failure     404 {object} apperror.Response
// @Security    ApiKeyAuth
// @Router      /users/{id} [delete]
func DeleteUserHandler(d Deps) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := api.ParseID(c, "id")
		if err != nil {
			return err
		}
		current, ok := middleware.CurrentUser(c)
		if !ok {
			return apperror.Unauthorized("not authorized")
		}
		if current.ID != id && !current.IsAdmin {
			return apperror.Forbidden("not authorized to delete this user")
		}

		if err := d.Users.SoftDeleteUser(c.Request().Context(), id); err != nil {
			return api.StoreError(err, notFoundMessage)
		}
		if d.Logger != nil && current.ID != id {
			d.Logger.Info("admin deleted user", "admin_id", current.ID, "user_id", id)
		}
		return api.Message(c, http.StatusOK, api.IDResponse{ID: id}, "user marked as deleted")
	}
}
