package api

// CreateMovieRequest multipart 表單欄位，圖片另以 image 欄位上傳
// swagger:model api.CreateMovieRequest
type CreateMovieRequest struct {
	Title       string `form:"title" json:"title" validate:"required" example:"Heat"`
	Genre       string `form:"genre" json:"genre" validate:"required" example:"Crime"`
	Year        string `form:"year" json:"year" validate:"required" example:"1995"`
	Description string `form:"description" json:"description" example:"A group of professional bank robbers..."`
	Category    string `form:"category" json:"category" validate:"required" example:"action"`
}

// UpdateMovieRequest 空字串代表不修改，description 除外
// swagger:model api.UpdateMovieRequest
type UpdateMovieRequest struct {
	Title       string `form:"title" json:"title" example:"Heat"`
	Genre       string `form:"genre" json:"genre" example:"Crime"`
	Year        string `form:"year" json:"year" example:"1995"`
	Description string `form:"description" json:"description" example:"Updated description"`
	Category    string `form:"category" json:"category" example:"drama"`
}
