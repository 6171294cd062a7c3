package pgstore

import (
	"context"
	"fmt"

	"moviesgo/internal/model"
	"moviesgo/internal/store"

	"github.com/jackc/pgx/v5"
)

const userColumns = `id, username, email, password_hash, is_admin, deleted, created_at, updated_at`

func scanUser(row pgx.Row) (*model.User, error) {
	u := &model.User{}
	if err := row.Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.PasswordHash,
		&u.IsAdmin,
		&u.Deleted,
		&u.CreatedAt,
		&u.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *Store) CreateUser(ctx context.Context, u *model.User) error {
	u.ID = store.NewID()
	u.CreatedAt = store.Now()
	u.UpdatedAt = u.CreatedAt
	u.Deleted = false
	_, err := s.db.Exec(ctx,
		`INSERT INTO users (id, username, email, password_hash, is_admin, deleted, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, FALSE, $6, $7)`,
		u.ID,
		u.Username,
		u.Email,
		u.PasswordHash,
		u.IsAdmin,
		u.CreatedAt,
		u.UpdatedAt,
	)
	return wrapError("CreateUser", err)
}

func (s *Store) getUser(ctx context.Context, op, where string, scope store.Scope, arg any) (*model.User, error) {
	row := s.db.QueryRow(ctx,
		fmt.Sprintf(`SELECT %s FROM users WHERE %s`, userColumns, activeWhere(where, scope)),
		arg,
	)
	u, err := scanUser(row)
	if err != nil {
		return nil, wrapError(op, err)
	}
	return u, nil
}

func (s *Store) GetUserByID(ctx context.Context, id string, scope store.Scope) (*model.User, error) {
	return s.getUser(ctx, "GetUserByID", "id = $1", scope, id)
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	return s.getUser(ctx, "GetUserByEmail", "email = $1", store.ActiveOnly, email)
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	return s.getUser(ctx, "GetUserByUsername", "username = $1", store.ActiveOnly, username)
}

func (s *Store) ListUsers(ctx context.Context, p store.Page) ([]model.User, int64, error) {
	where := activeWhere("", store.ActiveOnly)
	total, err := s.count(ctx, "ListUsers", "users", where)
	if err != nil {
		return nil, 0, err
	}

	rows, err := s.db.Query(ctx,
		fmt.Sprintf(`SELECT %s FROM users WHERE %s ORDER BY created_at DESC, id DESC LIMIT $1 OFFSET $2`, userColumns, where),
		p.Limit,
		p.Offset(),
	)
	if err != nil {
		return nil, 0, wrapError("ListUsers", err)
	}
	defer rows.Close()

	users := make([]model.User, 0, p.Limit)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, wrapError("ListUsers", err)
		}
		users = append(users, u.Public())
	}
	if err := rows.Err(); err != nil {
		return nil, 0, wrapError("ListUsers", err)
	}
	return users, total, nil
}

func (s *Store) UpdateUser(ctx context.Context, u *model.User) error {
	u.UpdatedAt = store.Now()
	return s.execActive(ctx, "UpdateUser",
		`UPDATE users SET username = $1, email = $2, updated_at = $3
		 WHERE id = $4 AND NOT deleted`,
		u.Username,
		u.Email,
		u.UpdatedAt,
		u.ID,
	)
}

func (s *Store) UpdateUserPassword(ctx context.Context, id, passwordHash string) error {
	return s.execActive(ctx, "UpdateUserPassword",
		`UPDATE users
		 SET password_hash = $1, updated_at = $2
		 WHERE id = $3 AND NOT deleted`,
		passwordHash,
		store.Now(),
		id,
	)
}

func (s *Store) SoftDeleteUser(ctx context.Context, id string) error {
	return s.execActive(ctx, "SoftDeleteUser",
		`UPDATE users SET deleted = TRUE, updated_at = $1 WHERE id = $2 AND NOT deleted`,
		store.Now(),
		id,
	)
}
