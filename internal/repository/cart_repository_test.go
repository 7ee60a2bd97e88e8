package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/shopspring/decimal"
)

func TestCartRepository_GetOrCreateIsIdempotent(t *testing.T) {
	repo := NewCartRepository(testDB)
	ctx := context.Background()

	userID := createTestUser(t)

	first, err := repo.GetOrCreate(ctx, userID)
	if err != nil {
		t.Fatalf("failed to create cart: %v", err)
	}
	second, err := repo.GetOrCreate(ctx, userID)
	if err != nil {
		t.Fatalf("failed to get cart: %v", err)
	}

	if first.ID != second.ID {
		t.Fatalf("expected the same cart on repeated calls, got %s and %s", first.ID, second.ID)
	}

	found, err := repo.FindByUser(ctx, userID)
	if err != nil {
		t.Fatalf("failed to find cart: %v", err)
	}
	if found.ID != first.ID {
		t.Fatalf("FindByUser returned a different cart")
	}
}

func TestCartRepository_FindByUserWithoutCart(t *testing.T) {
	repo := NewCartRepository(testDB)
	ctx := context.Background()

	userID := createTestUser(t)

	_, err := repo.FindByUser(ctx, userID)
	if !errors.Is(err, ErrCartNotFound) {
		t.Fatalf("expected ErrCartNotFound, got %v", err)
	}
}

func TestProperty_RepeatedAddsAccumulateQuantity(t *testing.T) {
	repo := NewCartRepository(testDB)

	properties := gopter.NewProperties(nil)

	properties.Property("adding the same product n times yields the summed quantity in one row", prop.ForAll(
		func(quantities []int) bool {
			ctx := context.Background()

			userID := createTestUser(t)
			product := createTestProduct(t, "9.99", 1000)

			cart, err := repo.GetOrCreate(ctx, userID)
			if err != nil {
				t.Logf("FAIL: failed to create cart: %v", err)
				return false
			}

			expected := 0
			for _, q := range quantities {
				item, err := repo.AddItem(ctx, cart.ID, product.ID, q)
				if err != nil {
					t.Logf("FAIL: failed to add item: %v", err)
					return false
				}
				expected += q
				if item.Quantity != expected {
					t.Logf("FAIL: expected accumulated quantity %d, got %d", expected, item.Quantity)
					return false
				}
			}

			// Still a single row for the (cart, product) pair.
			var rows int
			err = testDB.QueryRow(
				`SELECT COUNT(*) FROM cart_items WHERE cart_id = $1 AND product_id = $2`,
				cart.ID, product.ID,
			).Scan(&rows)
			if err != nil {
				t.Logf("FAIL: failed to count rows: %v", err)
				return false
			}
			return rows == 1
		},
		gen.SliceOfN(4, gen.IntRange(1, 10)),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestCartRepository_UpdateAndDeleteItem(t *testing.T) {
	repo := NewCartRepository(testDB)
	ctx := context.Background()

	userID := createTestUser(t)
	product := createTestProduct(t, "5.00", 100)

	cart, err := repo.GetOrCreate(ctx, userID)
	if err != nil {
		t.Fatalf("failed to create cart: %v", err)
	}
	item, err := repo.AddItem(ctx, cart.ID, product.ID, 2)
	if err != nil {
		t.Fatalf("failed to add item: %v", err)
	}

	if err := repo.UpdateItemQuantity(ctx, item.ID, 7); err != nil {
		t.Fatalf("failed to update quantity: %v", err)
	}
	updated, err := repo.FindItem(ctx, item.ID)
	if err != nil {
		t.Fatalf("failed to find item: %v", err)
	}
	if updated.Quantity != 7 {
		t.Fatalf("expected quantity 7, got %d", updated.Quantity)
	}

	if err := repo.DeleteItem(ctx, item.ID); err != nil {
		t.Fatalf("failed to delete item: %v", err)
	}
	if _, err := repo.FindItem(ctx, item.ID); !errors.Is(err, ErrCartItemNotFound) {
		t.Fatalf("expected ErrCartItemNotFound after delete, got %v", err)
	}
	if err := repo.UpdateItemQuantity(ctx, item.ID, 1); !errors.Is(err, ErrCartItemNotFound) {
		t.Fatalf("expected ErrCartItemNotFound updating deleted item, got %v", err)
	}
}

func TestCartRepository_LinesComputeSubtotals(t *testing.T) {
	repo := NewCartRepository(testDB)
	ctx := context.Background()

	userID := createTestUser(t)
	productA := createTestProduct(t, "10.50", 100)
	productB := createTestProduct(t, "3.25", 100)

	cart, err := repo.GetOrCreate(ctx, userID)
	if err != nil {
		t.Fatalf("failed to create cart: %v", err)
	}
	if _, err := repo.AddItem(ctx, cart.ID, productA.ID, 2); err != nil {
		t.Fatalf("failed to add item: %v", err)
	}
	if _, err := repo.AddItem(ctx, cart.ID, productB.ID, 4); err != nil {
		t.Fatalf("failed to add item: %v", err)
	}

	lines, err := repo.Lines(ctx, cart.ID)
	if err != nil {
		t.Fatalf("failed to list lines: %v", err)
	}
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}

	total := decimal.Zero
	subtotals := map[string]decimal.Decimal{}
	for _, line := range lines {
		subtotals[line.Item.ProductID.String()] = line.Subtotal
		total = total.Add(line.Subtotal)
	}

	if !subtotals[productA.ID.String()].Equal(decimal.RequireFromString("21.00")) {
		t.Fatalf("expected subtotal 21.00 for product A, got %s", subtotals[productA.ID.String()])
	}
	if !subtotals[productB.ID.String()].Equal(decimal.RequireFromString("13.00")) {
		t.Fatalf("expected subtotal 13.00 for product B, got %s", subtotals[productB.ID.String()])
	}
	if !total.Equal(decimal.RequireFromString("34.00")) {
		t.Fatalf("expected cart total 34.00, got %s", total)
	}
}
