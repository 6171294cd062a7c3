package api

// swagger:model api.UpdatePasswordRequest
type UpdatePasswordRequest struct {
	OldPassword string `json:"oldPassword" form:"oldPassword" example:"Secret123"`
	NewPassword string `json:"newPassword" form:"newPassword" example:"NewSecret456"`
}
