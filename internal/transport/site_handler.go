package transport

import (
	"net/http"

	"game-center/internal/config"
	"game-center/internal/domain"
	"game-center/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// SiteInfo is the storefront branding block plus the category list the
// catalog pages filter by.
type SiteInfo struct {
	Name       string            `json:"name"`
	Tagline    string            `json:"tagline"`
	Categories []domain.Category `json:"categories"`
}

// SiteHandler serves the immutable site configuration.
type SiteHandler struct {
	info SiteInfo
}

// NewSiteHandler creates a new SiteHandler from config. The value is fixed
// at startup; nothing mutates it afterward.
func NewSiteHandler(site config.SiteConfig) *SiteHandler {
	return &SiteHandler{
		info: SiteInfo{
			Name:       site.Name,
			Tagline:    site.Tagline,
			Categories: domain.Categories(),
		},
	}
}

// RegisterRoutes registers the site info route.
func (h *SiteHandler) RegisterRoutes(r chi.Router) {
	r.Get("/api/site", h.Get)
}

// Get returns the site branding and category list.
func (h *SiteHandler) Get(w http.ResponseWriter, r *http.Request) {
	middleware.RespondWithJSON(w, http.StatusOK, h.info)
}
