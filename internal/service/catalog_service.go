package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"game-center/internal/domain"
	"game-center/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidCategory = errors.New("unknown product category")
)

// FeaturedCount is how many products the storefront landing page shows.
const FeaturedCount = 6

// ProductInput carries the attributes for catalog-management writes.
type ProductInput struct {
	Name        string
	Category    domain.Category
	Cost        decimal.Decimal
	Stock       int
	Description string
	ImageURL    string
	SupplierID  *uuid.UUID
}

// CatalogService defines the business logic for catalog browsing plus the
// admin-only management operations.
type CatalogService interface {
	Get(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	List(ctx context.Context, category *domain.Category, page, pageSize int, sortBy string, sortOrder repository.SortOrder) ([]*domain.Product, int, error)
	Featured(ctx context.Context) ([]*domain.Product, error)
	Search(ctx context.Context, query string, page, pageSize int) ([]*domain.Product, int, error)
	Create(ctx context.Context, input ProductInput) (*domain.Product, error)
	Update(ctx context.Context, id uuid.UUID, input ProductInput) (*domain.Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type catalogService struct {
	productRepo repository.ProductRepository
}

// NewCatalogService creates a new instance of CatalogService
func NewCatalogService(productRepo repository.ProductRepository) CatalogService {
	return &catalogService{productRepo: productRepo}
}

// Get retrieves a single product.
func (s *catalogService) Get(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	return s.productRepo.FindByID(ctx, id)
}

// List retrieves products with optional category filtering.
func (s *catalogService) List(ctx context.Context, category *domain.Category, page, pageSize int, sortBy string, sortOrder repository.SortOrder) ([]*domain.Product, int, error) {
	if category != nil && !category.Valid() {
		return nil, 0, ErrInvalidCategory
	}

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	return s.productRepo.List(ctx, category, page, pageSize, sortBy, sortOrder)
}

// Featured retrieves the landing-page selection.
func (s *catalogService) Featured(ctx context.Context) ([]*domain.Product, error) {
	return s.productRepo.Featured(ctx, FeaturedCount)
}

// Search retrieves products matching the query by name or description.
func (s *catalogService) Search(ctx context.Context, query string, page, pageSize int) ([]*domain.Product, int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	return s.productRepo.Search(ctx, query, page, pageSize)
}

// Create adds a product to the catalog.
func (s *catalogService) Create(ctx context.Context, input ProductInput) (*domain.Product, error) {
	if err := validateProductInput(input); err != nil {
		return nil, err
	}

	now := time.Now()
	product := &domain.Product{
		ID:          uuid.New(),
		Name:        input.Name,
		Category:    input.Category,
		Cost:        input.Cost,
		Stock:       input.Stock,
		Description: input.Description,
		ImageURL:    input.ImageURL,
		SupplierID:  input.SupplierID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return product, nil
}

// Update replaces a product's attributes.
func (s *catalogService) Update(ctx context.Context, id uuid.UUID, input ProductInput) (*domain.Product, error) {
	if err := validateProductInput(input); err != nil {
		return nil, err
	}

	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	product.Name = input.Name
	product.Category = input.Category
	product.Cost = input.Cost
	product.Stock = input.Stock
	product.Description = input.Description
	product.ImageURL = input.ImageURL
	product.SupplierID = input.SupplierID
	product.UpdatedAt = time.Now()

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	return product, nil
}

// Delete removes a product from the catalog.
func (s *catalogService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.productRepo.Delete(ctx, id)
}

func validateProductInput(input ProductInput) error {
	if !input.Category.Valid() {
		return ErrInvalidCategory
	}
	if input.Stock < 0 {
		return ErrInvalidQuantity
	}
	return nil
}
