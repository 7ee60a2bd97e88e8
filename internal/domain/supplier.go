package domain

import (
	"time"

	"github.com/google/uuid"
)

// Supplier links a user account to a company that provides products.
type Supplier struct {
	ID          uuid.UUID `json:"id" db:"id"`
	UserID      uuid.UUID `json:"user_id" db:"user_id"`
	CompanyName string    `json:"company_name" db:"company_name"`
	Description string    `json:"description" db:"description"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// SupplierContact is a submission from a supplier with an attached file.
// Contacts are immutable once created.
type SupplierContact struct {
	ID          uuid.UUID `json:"id" db:"id"`
	SupplierID  uuid.UUID `json:"supplier_id" db:"supplier_id"`
	Description string    `json:"description" db:"description"`
	FileRef     string    `json:"file_ref" db:"file_ref"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
