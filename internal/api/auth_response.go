package api

// AuthResponse 註冊與登入成功時回傳
// swagger:model api.AuthResponse
type AuthResponse struct {
	ID       string `json:"id" example:"0b8f3c8e-3f4a-4f0e-9d59-0c1c2f6f4a10"`
	Username string `json:"username" example:"alice"`
	Email    string `json:"email" example:"alice@example.com"`
	IsAdmin  bool   `json:"isAdmin" example:"false"`
	Token    string `json:"token" example:"eyJhbGciOiJIUzI1NiIs..."`
}
