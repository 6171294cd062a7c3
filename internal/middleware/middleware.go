package middleware

import (
	"strings"

	"moviesgo/internal/apperror"
	"moviesgo/internal/model"
	"moviesgo/internal/service"
	"moviesgo/internal/store"

	"github.com/labstack/echo/v4"
)

const ContextUserKey = "user"

// unauthorizedMessage 不區分缺少、過期或使用者已刪除
const unauthorizedMessage = "not authorized"

func extractToken(c echo.Context) (string, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return "", apperror.Unauthorized(unauthorizedMessage)
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", apperror.Unauthorized(unauthorizedMessage)
	}
	return strings.TrimSpace(parts[1]), nil
}

// RequireAuth 驗證 Bearer 令牌並載入未刪除的使用者
func RequireAuth(users store.UserStore, tokens *service.TokenService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenString, err := extractToken(c)
			if err != nil {
				return err
			}
			userID, err := tokens.Verify(tokenString)
			if err != nil {
				return apperror.Unauthorized(unauthorizedMessage)
			}
			user, err := users.GetUserByID(c.Request().Context(), userID, store.ActiveOnly)
			if err != nil {
				return apperror.Unauthorized(unauthorizedMessage)
			}
			pub := user.Public()
			c.Set(ContextUserKey, &pub)
			return next(c)
		}
	}
}

// CurrentUser 取得 RequireAuth 放入的使用者
func CurrentUser(c echo.Context) (*model.User, bool) {
	u, ok := c.Get(ContextUserKey).(*model.User)
	return u, ok && u != nil
}
