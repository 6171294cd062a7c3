package contacts

import (
	"net/http"

	"moviesgo/internal/api"
	"moviesgo/internal/store"

	"github.com/labstack/echo/v4"
)

// UpdateContactHandler 整筆取代聯絡訊息
// @Summary     Replace a contact message
// @Tags        contacts
// @Accept      json
// @Produce     json
// @Param       id   path     string             true "訊息 ID"
// @Param       body body     api.ContactRequest true "新內容"
// @Success     200  {object} api.Envelope{data=model.Contact}
// @Failure     400  {object} apperror.Response
// @Failure     401  {object} apperror.Response
// @Failure     404  {object} apperror.Response
// @Security    ApiKeyAuth
// @Router      /contact/{id} [put]
func UpdateContactHandler(contacts store.ContactStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := api.ParseID(c, "id")
		if err != nil {
			return err
		}
		ctx := c.Request().Context()

		msg, err := contacts.GetContactByID(ctx, id, store.ActiveOnly)
		if err != nil {
			return api.StoreError(err, "message not found")
		}

		var req api.ContactRequest
		if err := api.Bind(c, &req); err != nil {
			return err
		}
		if err := msg.Replace(req.Name, req.Email, req.Message); err != nil {
			return api.ValidationError(err)
		}
		if err := contacts.UpdateContact(ctx, msg); err != nil {
			return api.StoreError(err, "message not found")
		}
		return api.OK(c, http.StatusOK, msg)
	}
}
