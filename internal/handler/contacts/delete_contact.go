package contacts

import (
	"net/http"

	"moviesgo/internal/api"
	"moviesgo/internal/store"

	"github.com/labstack/echo/v4"
)

// DeleteContactHandler 軟刪除聯絡訊息
// @Summary     Delete a contact message
// @Tags        contacts
// @Produce     json
// @Param       id  path     string true "訊息 ID"
// @Success     200 {object} api.Envelope{data=api.IDResponse}
// @Failure     401 {object} apperror.Response
// @Failure     404 {object} apperror.Response
// @Security    ApiKeyAuth
// @Router      /contact/{id} [delete]
func DeleteContactHandler(contacts store.ContactStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := api.ParseID(c, "id")
		if err != nil {
			return err
		}
		if err := contacts.SoftDeleteContact(c.Request().Context(), id); err != nil {
			return api.StoreError(err, "message not found")
		}
		return api.Message(c, http.StatusOK, api.IDResponse{ID: id}, "message marked as deleted")
	}
}
