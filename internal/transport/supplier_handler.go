package transport

import (
	"errors"
	"net/http"
	"strings"

	"game-center/internal/middleware"
	"game-center/internal/repository"
	"game-center/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// SupplierHandler handles HTTP requests for the supplier-contact form
type SupplierHandler struct {
	suppliers     service.SupplierService
	maxUploadSize int64
	logger        *zap.Logger
}

// NewSupplierHandler creates a new SupplierHandler
func NewSupplierHandler(suppliers service.SupplierService, maxUploadSize int64, logger *zap.Logger) *SupplierHandler {
	return &SupplierHandler{
		suppliers:     suppliers,
		maxUploadSize: maxUploadSize,
		logger:        logger,
	}
}

// RegisterRoutes registers supplier routes; all require auth. The service
// itself rejects users without a supplier record.
func (h *SupplierHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/supplier/contacts", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Post("/", h.SubmitContact)
		r.Get("/", h.ListContacts)
	})
}

// SubmitContact accepts a multipart form with a description field and a
// file attachment; both are required.
func (h *SupplierHandler) SubmitContact(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		middleware.RespondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	description := strings.TrimSpace(r.FormValue("description"))

	file, header, err := r.FormFile("file")
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "a file attachment is required")
		return
	}
	defer file.Close()

	contact, err := h.suppliers.SubmitContact(r.Context(), userID, description, header.Filename, file)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrSupplierNotFound):
			middleware.RespondWithError(w, http.StatusForbidden, "you are not registered as a supplier")
		case errors.Is(err, service.ErrContactIncomplete):
			middleware.RespondWithError(w, http.StatusBadRequest, "description and file are both required")
		default:
			h.logger.Error("Contact submission failed", zap.Error(err))
			middleware.RespondWithError(w, http.StatusInternalServerError, "failed to submit contact")
		}
		return
	}

	middleware.RespondWithJSON(w, http.StatusCreated, contact)
}

// ListContacts handles listing the caller's own contact submissions.
func (h *SupplierHandler) ListContacts(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		middleware.RespondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	contacts, err := h.suppliers.ListContacts(r.Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrSupplierNotFound) {
			middleware.RespondWithError(w, http.StatusForbidden, "you are not registered as a supplier")
			return
		}

		h.logger.Error("Failed to list contacts", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list contacts")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, contacts)
}
