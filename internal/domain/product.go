package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Category is the fixed set of product categories offered by the store.
type Category string

const (
	CategoryPlayStation Category = "playstation"
	CategoryXbox        Category = "xbox"
	CategoryNintendo    Category = "nintendo"
	CategoryPC          Category = "pc"
	CategoryOther       Category = "other"
)

// Categories lists every valid category, in display order.
func Categories() []Category {
	return []Category{CategoryPlayStation, CategoryXbox, CategoryNintendo, CategoryPC, CategoryOther}
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryPlayStation, CategoryXbox, CategoryNintendo, CategoryPC, CategoryOther:
		return true
	}
	return false
}

// Product represents a product in the catalog. Stock is never negative;
// checkout is the only code path in this service that decrements it.
type Product struct {
	ID          uuid.UUID       `json:"id" db:"id"`
	Name        string          `json:"name" db:"name"`
	Category    Category        `json:"category" db:"category"`
	Cost        decimal.Decimal `json:"cost" db:"cost"`
	Stock       int             `json:"stock" db:"stock"`
	Description string          `json:"description" db:"description"`
	ImageURL    string          `json:"image_url" db:"image_url"`
	SupplierID  *uuid.UUID      `json:"supplier_id,omitempty" db:"supplier_id"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at" db:"updated_at"`
}
