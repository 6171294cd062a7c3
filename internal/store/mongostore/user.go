package mongostore

import (
	"context"
	"fmt"

	"moviesgo/internal/model"
	"moviesgo/internal/store"

	"go.mongodb.org/mongo-driver/v2/bson"
)

func (s *Store) CreateUser(ctx context.Context, u *model.User) error {
	u.ID = store.NewID()
	u.CreatedAt = store.Now()
	u.UpdatedAt = u.CreatedAt
	u.Deleted = false
	if _, err := s.col(ColUsers).InsertOne(ctx, u); err != nil {
		return fmt.Errorf("CreateUser: %w", wrapError(err))
	}
	return nil
}

func (s *Store) GetUserByID(ctx context.Context, id string, scope store.Scope) (*model.User, error) {
	return findOne[model.User](ctx, s.col(ColUsers), scoped(byID(id), scope))
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	return findOne[model.User](ctx, s.col(ColUsers), scoped(bson.D{{Key: "email", Value: email}}, store.ActiveOnly))
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	return findOne[model.User](ctx, s.col(ColUsers), scoped(bson.D{{Key: "username", Value: username}}, store.ActiveOnly))
}

func (s *Store) ListUsers(ctx context.Context, p store.Page) ([]model.User, int64, error) {
	return findPage[model.User](ctx, s.col(ColUsers), scoped(bson.D{}, store.ActiveOnly), p,
		bson.D{{Key: "password", Value: 0}})
}

func (s *Store) UpdateUser(ctx context.Context, u *model.User) error {
	u.UpdatedAt = store.Now()
	err := updateActive(ctx, s.col(ColUsers), u.ID, bson.D{
		{Key: "username", Value: u.Username},
		{Key: "email", Value: u.Email},
		{Key: "updated_at", Value: u.UpdatedAt},
	})
	if err != nil {
		return fmt.Errorf("UpdateUser: %w", err)
	}
	return nil
}

func (s *Store) UpdateUserPassword(ctx context.Context, id, passwordHash string) error {
	err := updateActive(ctx, s.col(ColUsers), id, bson.D{
		{Key: "password", Value: passwordHash},
		{Key: "updated_at", Value: store.Now()},
	})
	if err != nil {
		return fmt.Errorf("UpdateUserPassword: %w", err)
	}
	return nil
}

func (s *Store) SoftDeleteUser(ctx context.Context, id string) error {
	if err := softDelete(ctx, s.col(ColUsers), id); err != nil {
		return fmt.Errorf("SoftDeleteUser: %w", err)
	}
	return nil
}
