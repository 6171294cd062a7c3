package service

import (
	"errors"
	"testing"
	"time"

	"moviesgo/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func restoreGlobals() {
	bcryptGenerateFromPassword = bcrypt.GenerateFromPassword
	bcryptCompareHashAndPassword = bcrypt.CompareHashAndPassword
	bcryptCost = bcrypt.DefaultCost
	parseWithClaims = jwt.ParseWithClaims
}

func TestHashPassword(t *testing.T) {
	t.Cleanup(restoreGlobals)
	bcryptCost = bcrypt.MinCost
	pwd := "secret"
	hash, err := HashPassword(pwd)
	require.NoError(t, err)
	require.NotEqual(t, pwd, hash)
	require.NoError(t, ComparePassword(hash, pwd))
	require.Error(t, ComparePassword(hash, "other"))

	bcryptGenerateFromPassword = func(_ []byte, _ int) ([]byte, error) {
		return nil, errors.New("gen")
	}
	_, err = HashPassword(pwd)
	require.Error(t, err)
}

func TestAuthenticateUser(t *testing.T) {
	t.Cleanup(restoreGlobals)
	bcryptCost = bcrypt.MinCost
	hash, _ := HashPassword("pw1234")
	u := &model.User{PasswordHash: hash}
	require.NoError(t, AuthenticateUser(u, "pw1234"))
	require.ErrorIs(t, AuthenticateUser(u, "bad"), ErrInvalidPassword)
	require.ErrorIs(t, AuthenticateUser(&model.User{}, ""), ErrInvalidPassword)
	require.ErrorIs(t, AuthenticateUser(nil, "pw1234"), ErrInvalidPassword)
}

func TestIssueAndVerify(t *testing.T) {
	t.Cleanup(restoreGlobals)
	_, err := NewTokenService("", time.Minute).Issue("u1")
	require.Error(t, err)

	svc := NewTokenService("s", 0)
	require.Equal(t, DefaultTokenTTL, svc.ttl)

	tok, err := svc.Issue("u1")
	require.NoError(t, err)

	claims := &CustomClaims{}
	_, err = jwt.ParseWithClaims(tok, claims, func(*jwt.Token) (any, error) { return []byte("s"), nil })
	require.NoError(t, err)
	require.Equal(t, "u1", claims.Subject)
	require.Equal(t, "u1", claims.UserID)
	require.WithinDuration(t, time.Now().Add(DefaultTokenTTL), claims.ExpiresAt.Time, time.Minute)

	id, err := svc.Verify(tok)
	require.NoError(t, err)
	require.Equal(t, "u1", id)
}

func TestVerifyRejects(t *testing.T) {
	t.Cleanup(restoreGlobals)
	svc := NewTokenService("s", time.Hour)

	_, err := svc.Verify("invalid")
	require.ErrorIs(t, err, ErrInvalidToken)

	// 簽章錯誤
	other, _ := NewTokenService("other", time.Hour).Issue("u1")
	_, err = svc.Verify(other)
	require.ErrorIs(t, err, ErrInvalidToken)

	// 不接受 none
	tokNone, _ := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"sub": "u1"}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	_, err = svc.Verify(tokNone)
	require.ErrorIs(t, err, ErrInvalidToken)

	// 缺少 exp
	noExp, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "u1"}).SignedString([]byte("s"))
	_, err = svc.Verify(noExp)
	require.ErrorIs(t, err, ErrInvalidToken)

	// 過期
	tok, _ := svc.Issue("u1")
	svc.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = svc.Verify(tok)
	require.ErrorIs(t, err, ErrInvalidToken)

	svc.now = time.Now
	parseWithClaims = func(string, jwt.Claims, jwt.Keyfunc, ...jwt.ParserOption) (*jwt.Token, error) {
		return &jwt.Token{Claims: &CustomClaims{}, Valid: true}, nil
	}
	_, err = svc.Verify("whatever")
	require.ErrorIs(t, err, ErrInvalidToken)
}
