package service

import (
	"context"
	"errors"
	"testing"

	"game-center/internal/repository"

	"github.com/google/uuid"
)

func TestOrderService_GetEnforcesOwnership(t *testing.T) {
	orders := newMockOrderRepository()
	svc := NewOrderService(orders)
	ctx := context.Background()

	owner := uuid.New()
	order, err := svc.Checkout(ctx, owner)
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}

	got, err := svc.Get(ctx, owner, order.ID)
	if err != nil {
		t.Fatalf("owner get failed: %v", err)
	}
	if got.ID != order.ID {
		t.Fatalf("expected order %s, got %s", order.ID, got.ID)
	}

	if _, err := svc.Get(ctx, uuid.New(), order.ID); !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied for foreign order, got %v", err)
	}
	if _, err := svc.Get(ctx, owner, uuid.New()); !errors.Is(err, repository.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}

func TestOrderService_HistoryIsScopedToUser(t *testing.T) {
	orders := newMockOrderRepository()
	svc := NewOrderService(orders)
	ctx := context.Background()

	alice := uuid.New()
	bob := uuid.New()

	if _, err := svc.Checkout(ctx, alice); err != nil {
		t.Fatalf("checkout failed: %v", err)
	}
	if _, err := svc.Checkout(ctx, alice); err != nil {
		t.Fatalf("checkout failed: %v", err)
	}
	if _, err := svc.Checkout(ctx, bob); err != nil {
		t.Fatalf("checkout failed: %v", err)
	}

	aliceOrders, err := svc.History(ctx, alice)
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if len(aliceOrders) != 2 {
		t.Fatalf("expected 2 orders for alice, got %d", len(aliceOrders))
	}
	for _, o := range aliceOrders {
		if o.UserID != alice {
			t.Fatalf("history leaked a foreign order")
		}
	}

	bobOrders, err := svc.History(ctx, bob)
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if len(bobOrders) != 1 {
		t.Fatalf("expected 1 order for bob, got %d", len(bobOrders))
	}
}
