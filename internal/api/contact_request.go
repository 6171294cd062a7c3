package api

// 建立與更新共用，三個欄位皆必填
// swagger:model api.ContactRequest
type ContactRequest struct {
	Name    string `json:"name" form:"name" validate:"required" example:"Alice"`
	Email   string `json:"email" form:"email" validate:"required,email" example:"alice@example.com"`
	Message string `json:"message" form:"message" validate:"required" example:"Great catalog!"`
}
