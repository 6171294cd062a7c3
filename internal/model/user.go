// File: internal/model/user.go
package model

import (
	"strings"
	"time"

	"moviesgo/internal/validate"
)

const (
	MinUsernameLen = 3
	MaxUsernameLen = 30
	MinPasswordLen = 6
)

type User struct {
	ID           string    `db:"id" bson:"_id" json:"id"`
	Username     string    `db:"username" bson:"username" json:"username"`
	Email        string    `db:"email" bson:"email" json:"email"`
	PasswordHash string    `db:"password_hash" bson:"password" json:"-"`
	IsAdmin      bool      `db:"is_admin" bson:"is_admin" json:"isAdmin"`
	Deleted      bool      `db:"deleted" bson:"deleted" json:"-"`
	CreatedAt    time.Time `db:"created_at" bson:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `db:"updated_at" bson:"updated_at" json:"updatedAt"`
}

// NewUser 建立待寫入的使用者；Email 一律轉小寫，passwordHash 必須是已雜湊的值
func NewUser(username, email, passwordHash string) (*User, error) {
	u := &User{
		Username:     strings.TrimSpace(username),
		Email:        NormalizeEmail(email),
		PasswordHash: passwordHash,
	}
	if err := u.validate(); err != nil {
		return nil, err
	}
	if passwordHash == "" {
		return nil, invalid("password", "password is required")
	}
	return u, nil
}

// ApplyProfile 部分更新 username / email，空字串代表不修改
func (u *User) ApplyProfile(username, email string) error {
	next := *u
	if username = strings.TrimSpace(username); username != "" {
		next.Username = username
	}
	if email != "" {
		next.Email = NormalizeEmail(email)
	}
	if err := next.validate(); err != nil {
		return err
	}
	*u = next
	return nil
}

// Public 回傳去除密碼的副本
func (u User) Public() User {
	u.PasswordHash = ""
	return u
}

func (u *User) validate() error {
	if !validate.IsNonEmpty(u.Username) {
		return invalid("username", "username is required")
	}
	if !validate.LenBetween(u.Username, MinUsernameLen, MaxUsernameLen) {
		return invalid("username", "username must be between 3 and 30 characters")
	}
	if !validate.IsValidEmail(u.Email) {
		return invalid("email", "invalid email")
	}
	return nil
}

// ValidatePassword 檢查明文密碼長度
func ValidatePassword(plain string) error {
	if len([]rune(plain)) < MinPasswordLen {
		return invalid("password", "password must be at least 6 characters")
	}
	return nil
}

// NormalizeEmail 去除空白並轉小寫
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
