package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"game-center/internal/domain"

	"github.com/google/uuid"
)

var (
	ErrSupplierNotFound = errors.New("supplier not found")
)

// SupplierRepository defines the interface for supplier data access.
type SupplierRepository interface {
	Create(ctx context.Context, supplier *domain.Supplier) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Supplier, error)
	FindByUser(ctx context.Context, userID uuid.UUID) (*domain.Supplier, error)
	CreateContact(ctx context.Context, contact *domain.SupplierContact) error
	ContactsBySupplier(ctx context.Context, supplierID uuid.UUID) ([]*domain.SupplierContact, error)
}

type supplierRepository struct {
	db *sql.DB
}

// NewSupplierRepository creates a new instance of SupplierRepository
func NewSupplierRepository(db *sql.DB) SupplierRepository {
	return &supplierRepository{db: db}
}

// Create inserts a new supplier into the database using parameterized queries
func (r *supplierRepository) Create(ctx context.Context, supplier *domain.Supplier) error {
	query := `
		INSERT INTO suppliers (id, user_id, company_name, description, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		supplier.ID,
		supplier.UserID,
		supplier.CompanyName,
		supplier.Description,
		supplier.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create supplier: %w", err)
	}

	return nil
}

// FindByID retrieves a supplier by ID using parameterized queries
func (r *supplierRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Supplier, error) {
	query := `
		SELECT id, user_id, company_name, description, created_at
		FROM suppliers
		WHERE id = $1
	`

	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

// FindByUser retrieves the supplier linked to a user account.
func (r *supplierRepository) FindByUser(ctx context.Context, userID uuid.UUID) (*domain.Supplier, error) {
	query := `
		SELECT id, user_id, company_name, description, created_at
		FROM suppliers
		WHERE user_id = $1
	`

	return r.scanOne(r.db.QueryRowContext(ctx, query, userID))
}

func (r *supplierRepository) scanOne(row *sql.Row) (*domain.Supplier, error) {
	supplier := &domain.Supplier{}
	err := row.Scan(
		&supplier.ID,
		&supplier.UserID,
		&supplier.CompanyName,
		&supplier.Description,
		&supplier.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSupplierNotFound
		}
		return nil, fmt.Errorf("failed to find supplier: %w", err)
	}

	return supplier, nil
}

// CreateContact inserts a supplier contact. Contacts are immutable; there is
// no update path.
func (r *supplierRepository) CreateContact(ctx context.Context, contact *domain.SupplierContact) error {
	query := `
		INSERT INTO supplier_contacts (id, supplier_id, description, file_ref, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		contact.ID,
		contact.SupplierID,
		contact.Description,
		contact.FileRef,
		contact.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create supplier contact: %w", err)
	}

	return nil
}

// ContactsBySupplier retrieves a supplier's contact submissions, newest first.
func (r *supplierRepository) ContactsBySupplier(ctx context.Context, supplierID uuid.UUID) ([]*domain.SupplierContact, error) {
	query := `
		SELECT id, supplier_id, description, file_ref, created_at
		FROM supplier_contacts
		WHERE supplier_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, supplierID)
	if err != nil {
		return nil, fmt.Errorf("failed to list supplier contacts: %w", err)
	}
	defer rows.Close()

	contacts := []*domain.SupplierContact{}
	for rows.Next() {
		contact := &domain.SupplierContact{}
		err := rows.Scan(
			&contact.ID,
			&contact.SupplierID,
			&contact.Description,
			&contact.FileRef,
			&contact.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan supplier contact: %w", err)
		}
		contacts = append(contacts, contact)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating supplier contacts: %w", err)
	}

	return contacts, nil
}
