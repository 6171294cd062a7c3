package users

import (
	"moviesgo/internal/api"
	"moviesgo/internal/apperror"

	"github.com/labstack/echo/v4"
)

// ListUsersHandler 分頁列出未刪除的帳號
// @Summary     List users
// @Tags        users
// @Produce     json
// @Param       page  query    int false "頁碼，預設 1"
// @Param       limit query    int false "每頁筆數，預設 10，上限 50"
// @Success     200   {object} api.Envelope{data=[]model.User}
// @Failure     400   {object} apperror.Response
// @Failure     401   {object} apperror.Response
// @Security    ApiKeyAuth
// @Router      /users [get]
func ListUsersHandler(d Deps) echo.HandlerFunc {
	return func(c echo.Context) error {
		page, err := api.ParsePagination(c)
		if err != nil {
			return err
		}
		items, total, err := d.Users.ListUsers(c.Request().Context(), page)
		if err != nil {
			return apperror.Internal(err)
		}
		return api.List(c, items, page, total)
	}
}
