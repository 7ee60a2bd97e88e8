package transport

import (
	"errors"
	"net/http"
	"strconv"

	"game-center/internal/domain"
	"game-center/internal/middleware"
	"game-center/internal/repository"
	"game-center/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ProductRequest represents the catalog-management write payload.
type ProductRequest struct {
	Name        string  `json:"name" validate:"required,max=100"`
	Category    string  `json:"category" validate:"required"`
	Cost        string  `json:"cost" validate:"required"`
	Stock       int     `json:"stock" validate:"gte=0"`
	Description string  `json:"description"`
	ImageURL    string  `json:"image_url" validate:"omitempty,max=500"`
	SupplierID  *string `json:"supplier_id"`
}

// ProductListResponse is a page of products with the total match count.
type ProductListResponse struct {
	Products []*domain.Product `json:"products"`
	Total    int               `json:"total"`
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`
}

// ProductHandler handles HTTP requests for catalog operations
type ProductHandler struct {
	catalog service.CatalogService
	logger  *zap.Logger
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(catalog service.CatalogService, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		catalog: catalog,
		logger:  logger,
	}
}

// RegisterRoutes registers all catalog routes. Browsing is public;
// management requires an authenticated admin.
func (h *ProductHandler) RegisterRoutes(r chi.Router, authMiddleware, adminMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/featured", h.Featured)
		r.Get("/search", h.Search)
		r.Get("/{id}", h.Get)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)
			r.Use(adminMiddleware)
			r.Post("/", h.Create)
			r.Put("/{id}", h.Update)
			r.Delete("/{id}", h.Delete)
		})
	})
}

// List handles catalog browsing with optional category filter.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := paginationParams(r)

	var category *domain.Category
	if raw := r.URL.Query().Get("category"); raw != "" {
		c := domain.Category(raw)
		category = &c
	}

	sortBy := r.URL.Query().Get("sort_by")
	sortOrder := repository.SortOrder(r.URL.Query().Get("sort_order"))

	products, total, err := h.catalog.List(r.Context(), category, page, pageSize, sortBy, sortOrder)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCategory) {
			middleware.RespondWithError(w, http.StatusBadRequest, "unknown category")
			return
		}

		h.logger.Error("Failed to list products", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list products")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, ProductListResponse{
		Products: products,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	})
}

// Featured handles the landing-page selection.
func (h *ProductHandler) Featured(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.Featured(r.Context())
	if err != nil {
		h.logger.Error("Failed to list featured products", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list featured products")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, products)
}

// Search handles free-text catalog search.
func (h *ProductHandler) Search(w http.ResponseWriter, r *http.Request) {
	page, pageSize := paginationParams(r)

	products, total, err := h.catalog.Search(r.Context(), r.URL.Query().Get("q"), page, pageSize)
	if err != nil {
		h.logger.Error("Failed to search products", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to search products")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, ProductListResponse{
		Products: products,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	})
}

// Get handles single-product retrieval.
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	product, err := h.catalog.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "product not found")
			return
		}

		h.logger.Error("Failed to get product", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to get product")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, product)
}

// Create handles catalog-management product creation.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	input, ok := h.decodeProductInput(w, r)
	if !ok {
		return
	}

	product, err := h.catalog.Create(r.Context(), *input)
	if err != nil {
		h.respondProductWriteError(w, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusCreated, product)
}

// Update handles catalog-management product updates.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	input, ok := h.decodeProductInput(w, r)
	if !ok {
		return
	}

	product, err := h.catalog.Update(r.Context(), id, *input)
	if err != nil {
		h.respondProductWriteError(w, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, product)
}

// Delete handles catalog-management product removal.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	if err := h.catalog.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "product not found")
			return
		}

		h.logger.Error("Failed to delete product", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to delete product")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "product deleted"})
}

func (h *ProductHandler) decodeProductInput(w http.ResponseWriter, r *http.Request) (*service.ProductInput, bool) {
	var req ProductRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return nil, false
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return nil, false
	}

	cost, err := decimal.NewFromString(req.Cost)
	if err != nil || cost.IsNegative() {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid cost")
		return nil, false
	}

	input := &service.ProductInput{
		Name:        req.Name,
		Category:    domain.Category(req.Category),
		Cost:        cost,
		Stock:       req.Stock,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	}

	if req.SupplierID != nil {
		supplierID, err := uuid.Parse(*req.SupplierID)
		if err != nil {
			middleware.RespondWithError(w, http.StatusBadRequest, "invalid supplier id")
			return nil, false
		}
		input.SupplierID = &supplierID
	}

	return input, true
}

func (h *ProductHandler) respondProductWriteError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidCategory):
		middleware.RespondWithError(w, http.StatusBadRequest, "unknown category")
	case errors.Is(err, service.ErrInvalidQuantity):
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid stock quantity")
	case errors.Is(err, repository.ErrProductNotFound):
		middleware.RespondWithError(w, http.StatusNotFound, "product not found")
	default:
		h.logger.Error("Product write failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to save product")
	}
}

// paginationParams reads page/page_size query params, clamped to sane bounds.
func paginationParams(r *http.Request) (int, int) {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		page = 1
	}

	pageSize, err := strconv.Atoi(r.URL.Query().Get("page_size"))
	if err != nil || pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	return page, pageSize
}
