package transport

import (
	"errors"
	"net/http"

	"game-center/internal/middleware"
	"game-center/internal/repository"
	"game-center/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// OrderHandler handles HTTP requests for checkout and order history
type OrderHandler struct {
	orders service.OrderService
	logger *zap.Logger
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orders service.OrderService, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{
		orders: orders,
		logger: logger,
	}
}

// RegisterRoutes registers checkout and order routes; all require auth.
func (h *OrderHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Post("/api/checkout", h.Checkout)
		r.Get("/api/orders", h.History)
		r.Get("/api/orders/{id}", h.Get)
	})
}

// Checkout converts the caller's cart into an order. Failure leaves the
// cart, stock, and order history exactly as they were.
func (h *OrderHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		middleware.RespondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	order, err := h.orders.Checkout(r.Context(), userID)
	if err != nil {
		var stockErr *repository.InsufficientStockError

		switch {
		case errors.Is(err, repository.ErrEmptyCart):
			middleware.RespondWithError(w, http.StatusConflict, "cart is empty")
		case errors.As(err, &stockErr):
			middleware.RespondWithErrorDetails(w, http.StatusConflict, "insufficient stock", map[string]interface{}{
				"product_id":   stockErr.ProductID.String(),
				"product_name": stockErr.ProductName,
				"requested":    stockErr.Requested,
				"available":    stockErr.Available,
			})
		default:
			h.logger.Error("Checkout failed", zap.Error(err))
			middleware.RespondWithError(w, http.StatusInternalServerError, "checkout failed")
		}
		return
	}

	h.logger.Info("Checkout completed",
		zap.String("order_id", order.ID.String()),
		zap.String("user_id", userID.String()),
		zap.Int("lines", len(order.Lines)),
	)
	middleware.RespondWithJSON(w, http.StatusCreated, order)
}

// History handles listing the caller's past orders, newest first.
func (h *OrderHandler) History(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		middleware.RespondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	orders, err := h.orders.History(r.Context(), userID)
	if err != nil {
		h.logger.Error("Failed to list orders", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list orders")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, orders)
}

// Get handles retrieving a single order, restricted to its owner.
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		middleware.RespondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	orderID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid order id")
		return
	}

	order, err := h.orders.Get(r.Context(), userID, orderID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrOrderNotFound):
			middleware.RespondWithError(w, http.StatusNotFound, "order not found")
		case errors.Is(err, service.ErrPermissionDenied):
			middleware.RespondWithError(w, http.StatusForbidden, "order belongs to another user")
		default:
			h.logger.Error("Failed to get order", zap.Error(err))
			middleware.RespondWithError(w, http.StatusInternalServerError, "failed to get order")
		}
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, order)
}
