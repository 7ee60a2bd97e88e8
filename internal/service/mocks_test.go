package service

import (
	"context"
	"sort"
	"time"

	"game-center/internal/domain"
	"game-center/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Mock repositories for testing

type mockUserRepository struct {
	users map[string]*domain.User
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{users: make(map[string]*domain.User)}
}

func (m *mockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if _, exists := m.users[user.Email]; exists {
		return repository.ErrUserAlreadyExists
	}
	m.users[user.Email] = user
	return nil
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, exists := m.users[email]
	if !exists {
		return nil, repository.ErrUserNotFound
	}
	return user, nil
}

func (m *mockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	for _, user := range m.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

type mockRefreshTokenRepository struct {
	tokens map[string]*domain.RefreshToken
}

func newMockRefreshTokenRepository() *mockRefreshTokenRepository {
	return &mockRefreshTokenRepository{tokens: make(map[string]*domain.RefreshToken)}
}

func (m *mockRefreshTokenRepository) Create(ctx context.Context, token *domain.RefreshToken) error {
	m.tokens[token.Token] = token
	return nil
}

func (m *mockRefreshTokenRepository) FindByToken(ctx context.Context, token string) (*domain.RefreshToken, error) {
	refreshToken, exists := m.tokens[token]
	if !exists {
		return nil, repository.ErrRefreshTokenNotFound
	}
	if refreshToken.Revoked {
		return nil, repository.ErrRefreshTokenRevoked
	}
	return refreshToken, nil
}

func (m *mockRefreshTokenRepository) Revoke(ctx context.Context, token string) error {
	refreshToken, exists := m.tokens[token]
	if !exists {
		return repository.ErrRefreshTokenNotFound
	}
	refreshToken.Revoked = true
	return nil
}

type mockProductRepository struct {
	products map[uuid.UUID]*domain.Product
}

func newMockProductRepository() *mockProductRepository {
	return &mockProductRepository{products: make(map[uuid.UUID]*domain.Product)}
}

func (m *mockProductRepository) Create(ctx context.Context, product *domain.Product) error {
	m.products[product.ID] = product
	return nil
}

func (m *mockProductRepository) Update(ctx context.Context, product *domain.Product) error {
	if _, ok := m.products[product.ID]; !ok {
		return repository.ErrProductNotFound
	}
	m.products[product.ID] = product
	return nil
}

func (m *mockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := m.products[id]; !ok {
		return repository.ErrProductNotFound
	}
	delete(m.products, id)
	return nil
}

func (m *mockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	product, ok := m.products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	return product, nil
}

func (m *mockProductRepository) List(ctx context.Context, category *domain.Category, page, pageSize int, sortBy string, sortOrder repository.SortOrder) ([]*domain.Product, int, error) {
	results := []*domain.Product{}
	for _, p := range m.products {
		if category == nil || p.Category == *category {
			results = append(results, p)
		}
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Name < results[j].Name })
	return results, len(results), nil
}

func (m *mockProductRepository) Featured(ctx context.Context, limit int) ([]*domain.Product, error) {
	results := []*domain.Product{}
	for _, p := range m.products {
		results = append(results, p)
	}
	sort.Slice(results, func(i, j int) bool { return results[i].CreatedAt.After(results[j].CreatedAt) })
	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

func (m *mockProductRepository) Search(ctx context.Context, query string, page, pageSize int) ([]*domain.Product, int, error) {
	return m.List(ctx, nil, page, pageSize, "name", repository.SortOrderAsc)
}

type mockCartRepository struct {
	carts map[uuid.UUID]*domain.Cart     // by user id
	items map[uuid.UUID]*domain.CartItem // by item id

	products *mockProductRepository
}

func newMockCartRepository(products *mockProductRepository) *mockCartRepository {
	return &mockCartRepository{
		carts:    make(map[uuid.UUID]*domain.Cart),
		items:    make(map[uuid.UUID]*domain.CartItem),
		products: products,
	}
}

func (m *mockCartRepository) GetOrCreate(ctx context.Context, userID uuid.UUID) (*domain.Cart, error) {
	if cart, ok := m.carts[userID]; ok {
		return cart, nil
	}
	cart := &domain.Cart{ID: uuid.New(), UserID: userID, CreatedAt: time.Now()}
	m.carts[userID] = cart
	return cart, nil
}

func (m *mockCartRepository) FindByUser(ctx context.Context, userID uuid.UUID) (*domain.Cart, error) {
	cart, ok := m.carts[userID]
	if !ok {
		return nil, repository.ErrCartNotFound
	}
	return cart, nil
}

func (m *mockCartRepository) AddItem(ctx context.Context, cartID, productID uuid.UUID, quantity int) (*domain.CartItem, error) {
	for _, item := range m.items {
		if item.CartID == cartID && item.ProductID == productID {
			item.Quantity += quantity
			item.UpdatedAt = time.Now()
			return item, nil
		}
	}
	item := &domain.CartItem{
		ID:        uuid.New(),
		CartID:    cartID,
		ProductID: productID,
		Quantity:  quantity,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	m.items[item.ID] = item
	return item, nil
}

func (m *mockCartRepository) FindItem(ctx context.Context, itemID uuid.UUID) (*domain.CartItem, error) {
	item, ok := m.items[itemID]
	if !ok {
		return nil, repository.ErrCartItemNotFound
	}
	return item, nil
}

func (m *mockCartRepository) UpdateItemQuantity(ctx context.Context, itemID uuid.UUID, quantity int) error {
	item, ok := m.items[itemID]
	if !ok {
		return repository.ErrCartItemNotFound
	}
	item.Quantity = quantity
	item.UpdatedAt = time.Now()
	return nil
}

func (m *mockCartRepository) DeleteItem(ctx context.Context, itemID uuid.UUID) error {
	if _, ok := m.items[itemID]; !ok {
		return repository.ErrCartItemNotFound
	}
	delete(m.items, itemID)
	return nil
}

func (m *mockCartRepository) Lines(ctx context.Context, cartID uuid.UUID) ([]*domain.CartLine, error) {
	lines := []*domain.CartLine{}
	for _, item := range m.items {
		if item.CartID != cartID {
			continue
		}
		product, ok := m.products.products[item.ProductID]
		if !ok {
			continue
		}
		line := &domain.CartLine{
			Item:        *item,
			ProductName: product.Name,
			UnitCost:    product.Cost,
		}
		line.Subtotal = line.UnitCost.Mul(decimal.NewFromInt(int64(item.Quantity)))
		lines = append(lines, line)
	}
	sort.Slice(lines, func(i, j int) bool {
		return lines[i].Item.CreatedAt.Before(lines[j].Item.CreatedAt)
	})
	return lines, nil
}

type mockCommentRepository struct {
	comments map[uuid.UUID]*domain.Comment
}

func newMockCommentRepository() *mockCommentRepository {
	return &mockCommentRepository{comments: make(map[uuid.UUID]*domain.Comment)}
}

func (m *mockCommentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	m.comments[comment.ID] = comment
	return nil
}

func (m *mockCommentRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	comment, ok := m.comments[id]
	if !ok {
		return nil, repository.ErrCommentNotFound
	}
	return comment, nil
}

func (m *mockCommentRepository) UpdateText(ctx context.Context, id uuid.UUID, text string) error {
	comment, ok := m.comments[id]
	if !ok {
		return repository.ErrCommentNotFound
	}
	comment.Text = text
	comment.UpdatedAt = time.Now()
	return nil
}

func (m *mockCommentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := m.comments[id]; !ok {
		return repository.ErrCommentNotFound
	}
	delete(m.comments, id)
	return nil
}

func (m *mockCommentRepository) ListByProduct(ctx context.Context, productID uuid.UUID) ([]*domain.Comment, error) {
	comments := []*domain.Comment{}
	for _, c := range m.comments {
		if c.ProductID == productID {
			comments = append(comments, c)
		}
	}
	sort.Slice(comments, func(i, j int) bool {
		return comments[i].CreatedAt.After(comments[j].CreatedAt)
	})
	return comments, nil
}

type mockOrderRepository struct {
	orders map[uuid.UUID]*domain.Order
}

func newMockOrderRepository() *mockOrderRepository {
	return &mockOrderRepository{orders: make(map[uuid.UUID]*domain.Order)}
}

func (m *mockOrderRepository) PlaceOrder(ctx context.Context, userID uuid.UUID) (*domain.Order, error) {
	order := &domain.Order{ID: uuid.New(), UserID: userID, CreatedAt: time.Now()}
	m.orders[order.ID] = order
	return order, nil
}

func (m *mockOrderRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Order, error) {
	orders := []*domain.Order{}
	for _, o := range m.orders {
		if o.UserID == userID {
			orders = append(orders, o)
		}
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].CreatedAt.After(orders[j].CreatedAt) })
	return orders, nil
}

func (m *mockOrderRepository) FindByID(ctx context.Context, orderID uuid.UUID) (*domain.Order, error) {
	order, ok := m.orders[orderID]
	if !ok {
		return nil, repository.ErrOrderNotFound
	}
	return order, nil
}

type mockSupplierRepository struct {
	suppliers map[uuid.UUID]*domain.Supplier // by user id
	contacts  map[uuid.UUID]*domain.SupplierContact
}

func newMockSupplierRepository() *mockSupplierRepository {
	return &mockSupplierRepository{
		suppliers: make(map[uuid.UUID]*domain.Supplier),
		contacts:  make(map[uuid.UUID]*domain.SupplierContact),
	}
}

func (m *mockSupplierRepository) Create(ctx context.Context, supplier *domain.Supplier) error {
	m.suppliers[supplier.UserID] = supplier
	return nil
}

func (m *mockSupplierRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Supplier, error) {
	for _, s := range m.suppliers {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, repository.ErrSupplierNotFound
}

func (m *mockSupplierRepository) FindByUser(ctx context.Context, userID uuid.UUID) (*domain.Supplier, error) {
	supplier, ok := m.suppliers[userID]
	if !ok {
		return nil, repository.ErrSupplierNotFound
	}
	return supplier, nil
}

func (m *mockSupplierRepository) CreateContact(ctx context.Context, contact *domain.SupplierContact) error {
	m.contacts[contact.ID] = contact
	return nil
}

func (m *mockSupplierRepository) ContactsBySupplier(ctx context.Context, supplierID uuid.UUID) ([]*domain.SupplierContact, error) {
	contacts := []*domain.SupplierContact{}
	for _, c := range m.contacts {
		if c.SupplierID == supplierID {
			contacts = append(contacts, c)
		}
	}
	sort.Slice(contacts, func(i, j int) bool {
		return contacts[i].CreatedAt.After(contacts[j].CreatedAt)
	})
	return contacts, nil
}
