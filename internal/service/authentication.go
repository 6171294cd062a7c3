// File: internal/service/authentication.go
package service

import (
	"errors"
	"fmt"
	"time"

	"moviesgo/internal/model"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenTTL 存取令牌有效期
const DefaultTokenTTL = 30 * 24 * time.Hour

var (
	ErrInvalidPassword = errors.New("invalid password")
	ErrInvalidToken    = errors.New("invalid token")
)

var parseWithClaims = jwt.ParseWithClaims

// CustomClaims 定義 JWT 負載內容
type CustomClaims struct {
	UserID string `json:"id"`
	jwt.RegisteredClaims
}

// TokenService 以 HS256 簽發與驗證存取令牌
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenService{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue 產生 subject 為使用者 ID 的 JWT
func (s *TokenService) Issue(userID string) (string, error) {
	if len(s.secret) == 0 {
		return "", fmt.Errorf("JWT secret not set")
	}
	now := s.now()
	claims := CustomClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify 驗證簽章與到期時間，回傳使用者 ID
// 所有失敗都包裝為 ErrInvalidToken
func (s *TokenService) Verify(tokenString string) (string, error) {
	token, err := parseWithClaims(tokenString, &CustomClaims{}, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid {
		return "", ErrInvalidToken
	}
	id := claims.Subject
	if id == "" {
		id = claims.UserID
	}
	if id == "" {
		return "", ErrInvalidToken
	}
	return id, nil
}

// AuthenticateUser 比對使用者密碼，失敗一律回傳 ErrInvalidPassword
func AuthenticateUser(user *model.User, password string) error {
	if user == nil || user.PasswordHash == "" {
		return ErrInvalidPassword
	}
	if err := ComparePassword(user.PasswordHash, password); err != nil {
		return ErrInvalidPassword
	}
	return nil
}
