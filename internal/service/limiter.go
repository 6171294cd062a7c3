package service

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"moviesgo/internal/cache"

	"github.com/redis/go-redis/v9"
)

const loginKeyPrefix = "moviesgo:login:"

// LoginLimiter 以 Redis 計數每個 email 的登入失敗次數
// nil 的 LoginLimiter 代表停用；Redis 發生錯誤時放行請求
type LoginLimiter struct {
	cache       cache.Cache
	maxAttempts int64
	window      time.Duration
	logger      *slog.Logger
}

func NewLoginLimiter(c cache.Cache, maxAttempts int, window time.Duration, logger *slog.Logger) *LoginLimiter {
	if c == nil || maxAttempts <= 0 {
		return nil
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &LoginLimiter{cache: c, maxAttempts: int64(maxAttempts), window: window, logger: logger}
}

func loginKey(email string) string {
	return loginKeyPrefix + strings.ToLower(strings.TrimSpace(email))
}

// Allow 失敗次數未達上限時回傳 true
func (l *LoginLimiter) Allow(ctx context.Context, email string) bool {
	if l == nil {
		return true
	}
	val, err := l.cache.Get(ctx, loginKey(email)).Result()
	if errors.Is(err, redis.Nil) {
		return true
	}
	if err != nil {
		l.logger.Warn("login limiter get failed", "error", err)
		return true
	}
	n, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return true
	}
	return n < l.maxAttempts
}

// Fail 記錄一次失敗；第一次失敗時設定視窗到期時間
func (l *LoginLimiter) Fail(ctx context.Context, email string) {
	if l == nil {
		return
	}
	key := loginKey(email)
	n, err := l.cache.Incr(ctx, key).Result()
	if err != nil {
		l.logger.Warn("login limiter incr failed", "error", err)
		return
	}
	if n == 1 {
		if err := l.cache.Expire(ctx, key, l.window).Err(); err != nil {
			l.logger.Warn("login limiter expire failed", "error", err)
		}
	}
}

// Reset 登入成功後清除計數
func (l *LoginLimiter) Reset(ctx context.Context, email string) {
	if l == nil {
		return
	}
	if err := l.cache.Del(ctx, loginKey(email)).Err(); err != nil {
		l.logger.Warn("login limiter reset failed", "error", err)
	}
}
