// Package store 定義實體儲存介面
//
// 所有讀取、列表、更新與刪除預設只看 deleted = false 的資料；
// 需要包含已刪除資料時，呼叫端必須明確傳入 IncludeDeleted。
// 實作位於 mongostore、pgstore 與 memstore。
package store

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"moviesgo/internal/model"

	"github.com/google/uuid"
)

var (
	// ErrNotFound 資料不存在或已被軟刪除
	ErrNotFound = errors.New("entity not found")
	// ErrDuplicate 唯一鍵衝突
	ErrDuplicate = errors.New("duplicate: entity already exists")
)

// DuplicateError 指出衝突的欄位
type DuplicateError struct {
	Field string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("duplicate %s", e.Field)
}

func (e *DuplicateError) Is(target error) bool { return target == ErrDuplicate }

// Scope 讀取範圍
type Scope int

const (
	ActiveOnly Scope = iota
	IncludeDeleted
)

// Page 已驗證的分頁參數
type Page struct {
	Number int
	Limit  int
}

// Offset 超出 int 範圍時回傳 math.MaxInt，查詢結果為空頁
func (p Page) Offset() int {
	if p.Number < 1 || p.Limit < 1 {
		return 0
	}
	if p.Number-1 > math.MaxInt/p.Limit {
		return math.MaxInt
	}
	return (p.Number - 1) * p.Limit
}

// MovieFilter 列表過濾條件，空字串表示不過濾
type MovieFilter struct {
	Category string
	Title    string
}

type UserStore interface {
	CreateUser(ctx context.Context, u *model.User) error
	GetUserByID(ctx context.Context, id string, scope Scope) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	ListUsers(ctx context.Context, p Page) ([]model.User, int64, error)
	UpdateUser(ctx context.Context, u *model.User) error
	UpdateUserPassword(ctx context.Context, id, passwordHash string) error
	SoftDeleteUser(ctx context.Context, id string) error
}

type MovieStore interface {
	CreateMovie(ctx context.Context, m *model.Movie) error
	GetMovieByID(ctx context.Context, id string, scope Scope) (*model.Movie, error)
	ListMovies(ctx context.Context, f MovieFilter, p Page) ([]model.Movie, int64, error)
	UpdateMovie(ctx context.Context, m *model.Movie) error
	SoftDeleteMovie(ctx context.Context, id string) error
}

type ContactStore interface {
	CreateContact(ctx context.Context, c *model.Contact) error
	GetContactByID(ctx context.Context, id string, scope Scope) (*model.Contact, error)
	ListContacts(ctx context.Context, p Page) ([]model.Contact, int64, error)
	UpdateContact(ctx context.Context, c *model.Contact) error
	SoftDeleteContact(ctx context.Context, id string) error
}

// Backend 一個後端同時提供三種實體的儲存
type Backend interface {
	UserStore
	MovieStore
	ContactStore
	Ping(ctx context.Context) error
	Close() error
}

// NewID 與 Now 由各後端在建立資料時使用，測試可覆寫
var (
	NewID = uuid.NewString
	Now   = func() time.Time { return time.Now().UTC() }
)
