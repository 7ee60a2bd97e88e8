package domain

import (
	"time"

	"github.com/google/uuid"
)

// Comment is a free-text annotation a user attaches to a product.
// Only the author may edit or delete it.
type Comment struct {
	ID        uuid.UUID `json:"id" db:"id"`
	ProductID uuid.UUID `json:"product_id" db:"product_id"`
	AuthorID  uuid.UUID `json:"author_id" db:"author_id"`
	Text      string    `json:"text" db:"text"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
