package transport

import (
	"net/http"

	"ortofrutticola/internal/catalog"
	"ortofrutticola/internal/domain"
	"ortofrutticola/internal/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ProductListResponse is the shopper-facing product view. Loading stays true
// until the catalog has completed its first successful load, so the frontend
// can tell a spinner apart from an empty shop.
type ProductListResponse struct {
	Loading  bool             `json:"loading"`
	Products []domain.Product `json:"products"`
}

// StorefrontHandler serves the public catalog endpoints.
type StorefrontHandler struct {
	store  *catalog.Store
	logger *zap.Logger
}

// NewStorefrontHandler creates a new StorefrontHandler
func NewStorefrontHandler(store *catalog.Store, logger *zap.Logger) *StorefrontHandler {
	return &StorefrontHandler{
		store:  store,
		logger: logger,
	}
}

// RegisterRoutes registers the public catalog routes
func (h *StorefrontHandler) RegisterRoutes(r chi.Router) {
	r.Get("/api/products", h.ListProducts)
	r.Get("/api/categories", h.ListCategories)
}

// ListProducts returns the filtered shopper view. Search and category come in
// as query parameters and feed the catalog's filter state before the derived
// view is read.
func (h *StorefrontHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	if !h.store.Loaded() {
		// Retry the initial load on demand; until one succeeds the shop
		// stays in its loading state.
		if err := h.store.Load(r.Context()); err != nil {
			h.logger.Error("Catalog load failed", zap.Error(err))
			middleware.RespondWithJSON(w, http.StatusServiceUnavailable, ProductListResponse{
				Loading:  true,
				Products: []domain.Product{},
			})
			return
		}
	}

	h.store.SetSearchTerm(r.URL.Query().Get("search"))
	h.store.SetCategory(r.URL.Query().Get("category"))

	middleware.RespondWithJSON(w, http.StatusOK, ProductListResponse{
		Loading:  false,
		Products: h.store.FilteredProducts(),
	})
}

// ListCategories returns the derived category set, sentinel first.
func (h *StorefrontHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	middleware.RespondWithJSON(w, http.StatusOK, h.store.Categories())
}
