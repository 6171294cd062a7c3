package pgstore

import (
	"context"
	"fmt"

	"moviesgo/internal/model"
	"moviesgo/internal/store"

	"github.com/jackc/pgx/v5"
)

const contactColumns = `id, name, email, message, deleted, created_at, updated_at`

func scanContact(row pgx.Row) (*model.Contact, error) {
	c := &model.Contact{}
	if err := row.Scan(
		&c.ID,
		&c.Name,
		&c.Email,
		&c.Message,
		&c.Deleted,
		&c.CreatedAt,
		&c.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Store) CreateContact(ctx context.Context, c *model.Contact) error {
	c.ID = store.NewID()
	c.CreatedAt = store.Now()
	c.UpdatedAt = c.CreatedAt
	c.Deleted = false
	_, err := s.db.Exec(ctx,
		`INSERT INTO contacts (id, name, email, message, deleted, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, FALSE, $5, $6)`,
		c.ID,
		c.Name,
		c.Email,
		c.Message,
		c.CreatedAt,
		c.UpdatedAt,
	)
	return wrapError("CreateContact", err)
}

func (s *Store) GetContactByID(ctx context.Context, id string, scope store.Scope) (*model.Contact, error) {
	row := s.db.QueryRow(ctx,
		fmt.Sprintf(`SELECT %s FROM contacts WHERE %s`, contactColumns, activeWhere("id = $1", scope)),
		id,
	)
	c, err := scanContact(row)
	if err != nil {
		return nil, wrapError("GetContactByID", err)
	}
	return c, nil
}

func (s *Store) ListContacts(ctx context.Context, p store.Page) ([]model.Contact, int64, error) {
	where := activeWhere("", store.ActiveOnly)
	total, err := s.count(ctx, "ListContacts", "contacts", where)
	if err != nil {
		return nil, 0, err
	}

	rows, err := s.db.Query(ctx,
		fmt.Sprintf(`SELECT %s FROM contacts WHERE %s ORDER BY created_at DESC, id DESC LIMIT $1 OFFSET $2`, contactColumns, where),
		p.Limit,
		p.Offset(),
	)
	if err != nil {
		return nil, 0, wrapError("ListContacts", err)
	}
	defer rows.Close()

	contacts := make([]model.Contact, 0, p.Limit)
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, 0, wrapError("ListContacts", err)
		}
		contacts = append(contacts, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, wrapError("ListContacts", err)
	}
	return contacts, total, nil
}

func (s *Store) UpdateContact(ctx context.Context, c *model.Contact) error {
	c.UpdatedAt = store.Now()
	return s.execActive(ctx, "UpdateContact",
		`UPDATE contacts SET name = $1, email = $2, message = $3, updated_at = $4
		 WHERE id = $5 AND NOT deleted`,
		c.Name,
		c.Email,
		c.Message,
		c.UpdatedAt,
		c.ID,
	)
}

func (s *Store) SoftDeleteContact(ctx context.Context, id string) error {
	return s.execActive(ctx, "SoftDeleteContact",
		`UPDATE contacts SET deleted = TRUE, updated_at = $1 WHERE id = $2 AND NOT deleted`,
		store.Now(),
		id,
	)
}
