package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"game-center/internal/domain"
	"game-center/internal/repository"
	"game-center/internal/storage"

	"github.com/google/uuid"
)

var (
	ErrContactIncomplete = errors.New("contact requires a description and a file")
)

const contactUploadPrefix = "supplier_contacts"

// SupplierService defines the business logic for the supplier-contact form.
// Only users linked to a supplier record may submit.
type SupplierService interface {
	SubmitContact(ctx context.Context, userID uuid.UUID, description, filename string, file io.Reader) (*domain.SupplierContact, error)
	ListContacts(ctx context.Context, userID uuid.UUID) ([]*domain.SupplierContact, error)
	GetByUser(ctx context.Context, userID uuid.UUID) (*domain.Supplier, error)
}

type supplierService struct {
	supplierRepo repository.SupplierRepository
	files        storage.FileStore
}

// NewSupplierService creates a new instance of SupplierService
func NewSupplierService(supplierRepo repository.SupplierRepository, files storage.FileStore) SupplierService {
	return &supplierService{
		supplierRepo: supplierRepo,
		files:        files,
	}
}

// SubmitContact stores the uploaded file and records the contact against the
// caller's supplier. Description and file are both required; the contact row
// keeps only the file reference, never the content.
func (s *supplierService) SubmitContact(ctx context.Context, userID uuid.UUID, description, filename string, file io.Reader) (*domain.SupplierContact, error) {
	supplier, err := s.supplierRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(description) == "" || file == nil {
		return nil, ErrContactIncomplete
	}

	ref, err := s.files.Save(contactUploadPrefix, filename, file)
	if err != nil {
		if errors.Is(err, storage.ErrEmptyFilename) {
			return nil, ErrContactIncomplete
		}
		return nil, fmt.Errorf("failed to store contact file: %w", err)
	}

	contact := &domain.SupplierContact{
		ID:          uuid.New(),
		SupplierID:  supplier.ID,
		Description: description,
		FileRef:     ref,
		CreatedAt:   time.Now(),
	}

	if err := s.supplierRepo.CreateContact(ctx, contact); err != nil {
		return nil, fmt.Errorf("failed to record contact: %w", err)
	}

	return contact, nil
}

// ListContacts returns the caller's own contact submissions, newest first.
func (s *supplierService) ListContacts(ctx context.Context, userID uuid.UUID) ([]*domain.SupplierContact, error) {
	supplier, err := s.supplierRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	return s.supplierRepo.ContactsBySupplier(ctx, supplier.ID)
}

// GetByUser returns the supplier record linked to a user account.
func (s *supplierService) GetByUser(ctx context.Context, userID uuid.UUID) (*domain.Supplier, error) {
	return s.supplierRepo.FindByUser(ctx, userID)
}
