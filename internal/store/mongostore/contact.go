package mongostore

import (
	"context"
	"fmt"

	"moviesgo/internal/model"
	"moviesgo/internal/store"

	"go.mongodb.org/mongo-driver/v2/bson"
)

func (s *Store) CreateContact(ctx context.Context, c *model.Contact) error {
	c.ID = store.NewID()
	c.CreatedAt = store.Now()
	c.UpdatedAt = c.CreatedAt
	c.Deleted = false
	if _, err := s.col(ColContacts).InsertOne(ctx, c); err != nil {
		return fmt.Errorf("CreateContact: %w", wrapError(err))
	}
	return nil
}

func (s *Store) GetContactByID(ctx context.Context, id string, scope store.Scope) (*model.Contact, error) {
	return findOne[model.Contact](ctx, s.col(ColContacts), scoped(byID(id), scope))
}

func (s *Store) ListContacts(ctx context.Context, p store.Page) ([]model.Contact, int64, error) {
	return findPage[model.Contact](ctx, s.col(ColContacts), scoped(bson.D{}, store.ActiveOnly), p, nil)
}

func (s *Store) UpdateContact(ctx context.Context, c *model.Contact) error {
	c.UpdatedAt = store.Now()
	err := updateActive(ctx, s.col(ColContacts), c.ID, bson.D{
		{Key: "name", Value: c.Name},
		{Key: "email", Value: c.Email},
		{Key: "message", Value: c.Message},
		{Key: "updated_at", Value: c.UpdatedAt},
	})
	if err != nil {
		return fmt.Errorf("UpdateContact: %w", err)
	}
	return nil
}

func (s *Store) SoftDeleteContact(ctx context.Context, id string) error {
	if err := softDelete(ctx, s.col(ColContacts), id); err != nil {
		return fmt.Errorf("SoftDeleteContact: %w", err)
	}
	return nil
}
