// Package users 帳號註冊、登入與個人資料維護
package users

import (
	"errors"
	"log/slog"

	"moviesgo/internal/api"
	"moviesgo/internal/apperror"
	"moviesgo/internal/service"
	"moviesgo/internal/store"
)

const notFoundMessage = "user not found"

// Deps users handler 的相依元件
type Deps struct {
	Users   store.UserStore
	Tokens  *service.TokenService
	Limiter *service.LoginLimiter
	Logger  *slog.Logger
}

// duplicateError 依衝突欄位回傳對應訊息
func duplicateError(err error, emailMsg, usernameMsg string) error {
	var de *store.DuplicateError
	if errors.As(err, &de) {
		if de.Field == "username" {
			return apperror.BadRequest(usernameMsg)
		}
		return apperror.BadRequest(emailMsg)
	}
	return api.StoreError(err, notFoundMessage)
}
