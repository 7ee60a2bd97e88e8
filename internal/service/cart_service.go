package service

import (
	"context"
	"errors"
	"fmt"

	"game-center/internal/domain"
	"game-center/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidQuantity is returned for non-positive quantities, or for
	// quantity updates that exceed the product's available stock.
	ErrInvalidQuantity = errors.New("invalid quantity")
)

// CartView is a user's cart with display data and a running total.
type CartView struct {
	CartID uuid.UUID          `json:"cart_id"`
	Lines  []*domain.CartLine `json:"lines"`
	Total  decimal.Decimal    `json:"total"`
}

// CartService defines the business logic for cart mutation and display.
type CartService interface {
	Add(ctx context.Context, userID, productID uuid.UUID, quantity int) (*domain.CartItem, error)
	SetQuantity(ctx context.Context, userID, itemID uuid.UUID, quantity int) error
	Remove(ctx context.Context, userID, itemID uuid.UUID) error
	View(ctx context.Context, userID uuid.UUID) (*CartView, error)
}

type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

// NewCartService creates a new instance of CartService
func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository) CartService {
	return &cartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// Add puts quantity units of a product into the user's cart, creating the
// cart if needed. Adding a product already in the cart accumulates its
// quantity instead of creating a second row.
func (s *cartService) Add(ctx context.Context, userID, productID uuid.UUID, quantity int) (*domain.CartItem, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	// The product must exist; stock is not reserved until checkout.
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		return nil, err
	}

	cart, err := s.cartRepo.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}

	item, err := s.cartRepo.AddItem(ctx, cart.ID, productID, quantity)
	if err != nil {
		return nil, fmt.Errorf("failed to add item: %w", err)
	}

	return item, nil
}

// SetQuantity overwrites an item's quantity. The new quantity must be
// positive and within the product's current stock; on any failure the item
// is left untouched.
func (s *cartService) SetQuantity(ctx context.Context, userID, itemID uuid.UUID, quantity int) error {
	item, err := s.findOwnedItem(ctx, userID, itemID)
	if err != nil {
		return err
	}

	if quantity < 1 {
		return ErrInvalidQuantity
	}

	product, err := s.productRepo.FindByID(ctx, item.ProductID)
	if err != nil {
		return err
	}

	if quantity > product.Stock {
		return ErrInvalidQuantity
	}

	return s.cartRepo.UpdateItemQuantity(ctx, itemID, quantity)
}

// Remove deletes an item from the user's cart.
func (s *cartService) Remove(ctx context.Context, userID, itemID uuid.UUID) error {
	if _, err := s.findOwnedItem(ctx, userID, itemID); err != nil {
		return err
	}

	return s.cartRepo.DeleteItem(ctx, itemID)
}

// View returns the cart's contents with product names, unit costs, and the
// total. A user without a cart sees an empty view.
func (s *cartService) View(ctx context.Context, userID uuid.UUID) (*CartView, error) {
	cart, err := s.cartRepo.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}

	lines, err := s.cartRepo.Lines(ctx, cart.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart lines: %w", err)
	}

	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.Subtotal)
	}

	return &CartView{
		CartID: cart.ID,
		Lines:  lines,
		Total:  total,
	}, nil
}

// findOwnedItem loads an item and verifies it belongs to the requester's cart.
func (s *cartService) findOwnedItem(ctx context.Context, userID, itemID uuid.UUID) (*domain.CartItem, error) {
	item, err := s.cartRepo.FindItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	cart, err := s.cartRepo.FindByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrCartNotFound) {
			return nil, ErrPermissionDenied
		}
		return nil, err
	}

	if item.CartID != cart.ID {
		return nil, ErrPermissionDenied
	}

	return item, nil
}
