package model

import (
	"strings"
	"time"

	"moviesgo/internal/validate"
)

type Contact struct {
	ID        string    `db:"id" bson:"_id" json:"id"`
	Name      string    `db:"name" bson:"name" json:"name"`
	Email     string    `db:"email" bson:"email" json:"email"`
	Message   string    `db:"message" bson:"message" json:"message"`
	Deleted   bool      `db:"deleted" bson:"deleted" json:"-"`
	CreatedAt time.Time `db:"created_at" bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" bson:"updated_at" json:"updatedAt"`
}

func NewContact(name, email, message string) (*Contact, error) {
	c := &Contact{}
	if err := c.Replace(name, email, message); err != nil {
		return nil, err
	}
	return c, nil
}

// Replace 整筆覆寫聯絡訊息內容，三個欄位皆為必填
func (c *Contact) Replace(name, email, message string) error {
	name, email, message = strings.TrimSpace(name), strings.TrimSpace(email), strings.TrimSpace(message)
	if !validate.IsNonEmpty(name) || !validate.IsNonEmpty(email) || !validate.IsNonEmpty(message) {
		return invalid("", "missing required fields")
	}
	if !validate.IsValidEmail(email) {
		return invalid("email", "invalid email")
	}
	c.Name, c.Email, c.Message = name, email, message
	return nil
}
