// File: internal/api/update_user_request.go
package api

// 空字串代表不修改
// swagger:model api.UpdateUserRequest
type UpdateUserRequest struct {
	Username string `json:"username" form:"username" example:"alice2"`
	Email    string `json:"email" form:"email" validate:"omitempty,email" example:"alice2@example.com"`
}
