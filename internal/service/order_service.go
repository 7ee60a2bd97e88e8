package service

import (
	"context"

	"game-center/internal/domain"
	"game-center/internal/repository"

	"github.com/google/uuid"
)

// OrderService defines the business logic for checkout and order history.
type OrderService interface {
	Checkout(ctx context.Context, userID uuid.UUID) (*domain.Order, error)
	History(ctx context.Context, userID uuid.UUID) ([]*domain.Order, error)
	Get(ctx context.Context, userID, orderID uuid.UUID) (*domain.Order, error)
}

type orderService struct {
	orderRepo repository.OrderRepository
}

// NewOrderService creates a new instance of OrderService
func NewOrderService(orderRepo repository.OrderRepository) OrderService {
	return &orderService{orderRepo: orderRepo}
}

// Checkout converts the user's cart into an order. The whole conversion is
// one transaction: on any failure no order is created, stock is untouched,
// and the cart keeps its items. Checking out an empty or missing cart fails
// with repository.ErrEmptyCart.
func (s *orderService) Checkout(ctx context.Context, userID uuid.UUID) (*domain.Order, error) {
	return s.orderRepo.PlaceOrder(ctx, userID)
}

// History returns the user's past orders, newest first.
func (s *orderService) History(ctx context.Context, userID uuid.UUID) ([]*domain.Order, error) {
	return s.orderRepo.FindByUser(ctx, userID)
}

// Get returns a single order, restricted to its owner.
func (s *orderService) Get(ctx context.Context, userID, orderID uuid.UUID) (*domain.Order, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := requireOwner(order.UserID, userID); err != nil {
		return nil, err
	}

	return order, nil
}
