// File: internal/handler/contacts/create_contact.go
package contacts

import (
	"net/http"

	"moviesgo/internal/api"
	"moviesgo/internal/model"
	"moviesgo/internal/store"

	"github.com/labstack/echo/v4"
)

// CreateContactHandler 送出聯絡訊息
// @Summary     Send a contact message
// @Description 公開端點，name / email / message 皆必填
// @Tags        contacts
// @Accept      json
// @Accept      application/x-www-form-urlencoded
// @Produce     json
// @Param       body body     api.ContactRequest true "聯絡訊息"
// @Success     201  {object} api.Envelope{data=model.Contact}
// @Failure     400  {object} apperror.Response
// @Failure     500  {object} apperror.Response
// @Router      /contact [post]
func CreateContactHandler(contacts store.ContactStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.ContactRequest
		if err := api.Bind(c, &req); err != nil {
			return err
		}

		msg, err := model.NewContact(req.Name, req.Email, req.Message)
		if err != nil {
			return api.ValidationError(err)
		}
		if err := contacts.CreateContact(c.Request().Context(), msg); err != nil {
			return api.StoreError(err, "message not found")
		}
		return api.OK(c, http.StatusCreated, msg)
	}
}
