// Package pgstore 以 PostgreSQL 實作 store.Backend
package pgstore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"moviesgo/internal/database"
	"moviesgo/internal/store"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

type Store struct {
	db database.DB
}

var _ store.Backend = (*Store)(nil)

func New(db database.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Ping(ctx context.Context) error { return s.db.Ping(ctx) }

func (s *Store) Close() error {
	s.db.Close()
	return nil
}

// activeWhere 把呼叫端的條件與 NOT deleted 組合
func activeWhere(where string, scope store.Scope) string {
	if scope == store.IncludeDeleted {
		if where == "" {
			return "TRUE"
		}
		return where
	}
	if where == "" {
		return "NOT deleted"
	}
	return "(" + where + ") AND NOT deleted"
}

// escapeLike 跳脫 LIKE 的萬用字元
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

func wrapError(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, store.ErrNotFound)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return fmt.Errorf("%s: %w", op, &store.DuplicateError{Field: duplicateField(pgErr.ConstraintName)})
	}
	return fmt.Errorf("%s: %w", op, err)
}

func duplicateField(constraint string) string {
	switch constraint {
	case "users_email_active_key":
		return "email"
	case "users_username_active_key":
		return "username"
	default:
		return "key"
	}
}

// execActive 執行更新，沒有影響任何資料列時回傳 ErrNotFound
func (s *Store) execActive(ctx context.Context, op, sql string, args ...any) error {
	tag, err := s.db.Exec(ctx, sql, args...)
	if err != nil {
		return wrapError(op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, store.ErrNotFound)
	}
	return nil
}

func (s *Store) count(ctx context.Context, op, table, where string, args ...any) (int64, error) {
	var total int64
	q := fmt.Sprintf(`SELECT count(*) FROM %s WHERE %s`, table, where)
	if err := s.db.QueryRow(ctx, q, args...).Scan(&total); err != nil {
		return 0, wrapError(op, err)
	}
	return total, nil
}
