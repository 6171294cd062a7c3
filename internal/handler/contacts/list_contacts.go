package contacts

import (
	"moviesgo/internal/api"
	"moviesgo/internal/apperror"
	"moviesgo/internal/store"

	"github.com/labstack/echo/v4"
)

// ListContactsHandler 分頁列出聯絡訊息，新到舊
// @Summary     List contact messages
// @Tags        contacts
// @Produce     json
// @Param       page  query    int false "頁碼，預設 1"
// @Param       limit query    int false "每頁筆數，預設 10，上限 50"
// @Success     200   {object} api.Envelope{data=[]model.Contact}
// @Failure     400   {object} apperror.Response
// @Failure     401   {object} apperror.Response
// @Security    ApiKeyAuth
// @Router      /contact [get]
func ListContactsHandler(contacts store.ContactStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		page, err := api.ParsePagination(c)
		if err != nil {
			return err
		}
		items, total, err := contacts.ListContacts(c.Request().Context(), page)
		if err != nil {
			return apperror.Internal(err)
		}
		return api.List(c, items, page, total)
	}
}
