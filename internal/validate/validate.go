// Package validate 提供欄位層級的純函式檢查，在存取資料庫前使用
package validate

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	MinMovieYear       = 1900
	movieYearLookahead = 5
)

var v = validator.New()

// IsValidEmail 檢查 Email 格式
func IsValidEmail(s string) bool {
	if strings.TrimSpace(s) != s || s == "" {
		return false
	}
	return v.Var(s, "email") == nil
}

// IsNonEmpty 去除前後空白後不可為空
func IsNonEmpty(s string) bool {
	return strings.TrimSpace(s) != ""
}

// IsYearInRange min <= n <= max
func IsYearInRange(n, min, max int) bool {
	return n >= min && n <= max
}

// MaxMovieYear 電影年份上限：今年 + 5
func MaxMovieYear(now time.Time) int {
	return now.Year() + movieYearLookahead
}

// IsFourDigitYear 字串必須剛好是四位數字
func IsFourDigitYear(s string) bool {
	if len(s) != 4 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// LenBetween 以字元數計算長度
func LenBetween(s string, min, max int) bool {
	n := len([]rune(s))
	return n >= min && n <= max
}
