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

// CommentRequest represents the comment create/update payload.
type CommentRequest struct {
	Text string `json:"text" validate:"required,max=2000"`
}

// CommentHandler handles HTTP requests for product comments
type CommentHandler struct {
	comments service.CommentService
	logger   *zap.Logger
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(comments service.CommentService, logger *zap.Logger) *CommentHandler {
	return &CommentHandler{
		comments: comments,
		logger:   logger,
	}
}

// RegisterRoutes registers all comment routes
func (h *CommentHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Get("/api/products/{id}/comments", h.ListByProduct)

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Post("/api/products/{id}/comments", h.Create)
		r.Put("/api/comments/{id}", h.Update)
		r.Delete("/api/comments/{id}", h.Delete)
	})
}

// ListByProduct handles listing a product's comments, newest first.
func (h *CommentHandler) ListByProduct(w http.ResponseWriter, r *http.Request) {
	productID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	comments, err := h.comments.ListByProduct(r.Context(), productID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "product not found")
			return
		}

		h.logger.Error("Failed to list comments", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list comments")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, comments)
}

// Create handles attaching a comment to a product.
func (h *CommentHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		middleware.RespondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	productID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	var req CommentRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	comment, err := h.comments.Create(r.Context(), productID, userID, req.Text)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "product not found")
			return
		}

		h.logger.Error("Failed to create comment", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to create comment")
		return
	}

	middleware.RespondWithJSON(w, http.StatusCreated, comment)
}

// Update handles editing a comment; only the author may edit.
func (h *CommentHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		middleware.RespondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	commentID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid comment id")
		return
	}

	var req CommentRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	comment, err := h.comments.Update(r.Context(), commentID, userID, req.Text)
	if err != nil {
		h.respondCommentError(w, err, "failed to update comment")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, comment)
}

// Delete handles removing a comment; only the author may delete.
func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		middleware.RespondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	commentID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid comment id")
		return
	}

	if err := h.comments.Delete(r.Context(), commentID, userID); err != nil {
		h.respondCommentError(w, err, "failed to delete comment")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "comment deleted"})
}

func (h *CommentHandler) respondCommentError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, repository.ErrCommentNotFound):
		middleware.RespondWithError(w, http.StatusNotFound, "comment not found")
	case errors.Is(err, service.ErrPermissionDenied):
		middleware.RespondWithError(w, http.StatusForbidden, "you are not the author of this comment")
	default:
		h.logger.Error("Comment mutation failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, fallback)
	}
}
