package api

import (
	"errors"
	"reflect"
	"strings"

	"moviesgo/internal/apperror"

	"github.com/go-playground/validator/v10"
)

// CustomValidator 把 go-playground/validator 接到 echo
// swagger:ignore
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator 欄位名稱使用 json tag，錯誤訊息使用 API 的用語
func NewValidator() *CustomValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return &CustomValidator{validator: v}
}

// Validate 回傳 apperror.BadRequest
func (cv *CustomValidator) Validate(i any) error {
	err := cv.validator.Struct(i)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return apperror.BadRequest("invalid request")
	}
	// required 優先，與其他欄位錯誤的順序無關
	for _, fe := range verrs {
		if fe.Tag() == "required" {
			return apperror.BadRequest("missing required fields")
		}
	}
	fe := verrs[0]
	switch fe.Tag() {
	case "email":
		return apperror.BadRequest("invalid email")
	case "min":
		return apperror.BadRequest(fe.Field() + " must be at least " + fe.Param() + " characters")
	default:
		return apperror.BadRequest("invalid " + fe.Field())
	}
}
