package transport

import (
	"errors"
	"net/http"
	"time"

	"ortofrutticola/internal/admin"
	"ortofrutticola/internal/catalog"
	"ortofrutticola/internal/middleware"
	"ortofrutticola/internal/pricelist"
	"ortofrutticola/internal/repository"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// LoginRequest carries the admin credential.
type LoginRequest struct {
	Password string `json:"password" validate:"required"`
}

// LoginResponse returns the session token.
type LoginResponse struct {
	Token string `json:"token"`
}

// SaveProductRequest is the admin product form. Price travels as text and is
// validated by the catalog store, not coerced here. A present id means
// update, an absent one insert.
type SaveProductRequest struct {
	ID          *string `json:"id,omitempty"`
	Name        string  `json:"name" validate:"required"`
	Category    string  `json:"category" validate:"required"`
	Price       string  `json:"price" validate:"required"`
	Unit        string  `json:"unit" validate:"required"`
	Image       string  `json:"image"`
	Description string  `json:"description"`
	Origin      string  `json:"origin"`
	InStock     bool    `json:"in_stock"`
}

// AdminHandler serves the catalog-mutating endpoints behind the admin gate.
type AdminHandler struct {
	store    *catalog.Store
	sessions *admin.Sessions
	logger   *zap.Logger
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(store *catalog.Store, sessions *admin.Sessions, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		store:    store,
		sessions: sessions,
		logger:   logger,
	}
}

// RegisterRoutes registers admin routes. Login sits outside the auth group
// and behind the rate limiter; everything else requires a live session.
func (h *AdminHandler) RegisterRoutes(r chi.Router, authMiddleware, loginLimiter func(http.Handler) http.Handler) {
	r.Route("/api/admin", func(r chi.Router) {
		r.With(loginLimiter).Post("/login", h.Login)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)
			r.Post("/logout", h.Logout)
			r.Get("/products", h.ListProducts)
			r.Post("/products", h.SaveProduct)
			r.Delete("/products/{id}", h.DeleteProduct)
			r.Get("/products/export", h.ExportPriceList)
			r.Get("/draft", h.GetDraft)
			r.Put("/draft", h.PutDraft)
			r.Delete("/draft", h.DeleteDraft)
		})
	})
}

// Login checks the credential against the gate and issues a session token.
// A wrong credential is a rejected input, not a server error.
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, err := h.sessions.Login(req.Password)
	if err != nil {
		if errors.Is(err, admin.ErrInvalidCredential) {
			h.logger.Warn("Rejected admin login", zap.String("remote_addr", r.RemoteAddr))
			middleware.RespondWithError(w, http.StatusUnauthorized, "wrong password")
			return
		}
		h.logger.Error("Failed to create admin session", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "could not create session")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, LoginResponse{Token: token})
}

// Logout ends the session and discards its staged draft.
func (h *AdminHandler) Logout(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := middleware.GetSessionID(r.Context())
	if !ok {
		middleware.RespondWithError(w, http.StatusUnauthorized, "no session")
		return
	}

	h.sessions.Logout(sessionID)
	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}

// ListProducts returns the full catalog, out-of-stock products included.
func (h *AdminHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	middleware.RespondWithJSON(w, http.StatusOK, h.store.Products())
}

// SaveProduct inserts or updates a product and waits for the catalog to
// resynchronize before answering.
func (h *AdminHandler) SaveProduct(w http.ResponseWriter, r *http.Request) {
	var req SaveProductRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	input := catalog.ProductInput{
		Name:        req.Name,
		Category:    req.Category,
		Price:       req.Price,
		Unit:        req.Unit,
		Image:       req.Image,
		Description: req.Description,
		Origin:      req.Origin,
		InStock:     req.InStock,
	}

	if req.ID != nil && *req.ID != "" {
		id, err := uuid.Parse(*req.ID)
		if err != nil {
			middleware.RespondWithError(w, http.StatusBadRequest, "invalid product id")
			return
		}
		input.ID = &id
	}

	if err := h.store.Save(r.Context(), input); err != nil {
		h.respondCatalogError(w, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "saved"})
}

// DeleteProduct removes a product. Confirmation happens in the frontend.
func (h *AdminHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	if err := h.store.Remove(r.Context(), id); err != nil {
		h.respondCatalogError(w, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// ExportPriceList streams the catalog as an XLSX price list.
func (h *AdminHandler) ExportPriceList(w http.ResponseWriter, r *http.Request) {
	filename := "listino-" + time.Now().Format("2006-01-02") + ".xlsx"
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)

	if err := pricelist.Write(w, h.store.Products()); err != nil {
		h.logger.Error("Failed to export price list", zap.Error(err))
	}
}

// GetDraft returns the session's staged product form, if any.
func (h *AdminHandler) GetDraft(w http.ResponseWriter, r *http.Request) {
	sessionID, _ := middleware.GetSessionID(r.Context())
	draft := h.sessions.Draft(sessionID)
	if draft == nil {
		middleware.RespondWithError(w, http.StatusNotFound, "no draft")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, draft)
}

// PutDraft stages product form state for the session.
func (h *AdminHandler) PutDraft(w http.ResponseWriter, r *http.Request) {
	sessionID, _ := middleware.GetSessionID(r.Context())

	var draft admin.Draft
	if err := middleware.DecodeAndValidate(r, &draft); err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	h.sessions.SetDraft(sessionID, &draft)
	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "staged"})
}

// DeleteDraft discards the staged form without logging out.
func (h *AdminHandler) DeleteDraft(w http.ResponseWriter, r *http.Request) {
	sessionID, _ := middleware.GetSessionID(r.Context())
	h.sessions.ClearDraft(sessionID)
	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}

// respondCatalogError maps the catalog error taxonomy onto HTTP statuses.
// Remote store failures surface as 502: the process stays up and the catalog
// keeps its last known good list.
func (h *AdminHandler) respondCatalogError(w http.ResponseWriter, err error) {
	switch {
	case catalog.IsKind(err, catalog.KindValidation):
		middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, repository.ErrProductNotFound):
		middleware.RespondWithError(w, http.StatusNotFound, "product not found")
	case catalog.IsKind(err, catalog.KindSave),
		catalog.IsKind(err, catalog.KindDelete),
		catalog.IsKind(err, catalog.KindLoad):
		h.logger.Error("Catalog operation failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusBadGateway, "product store unavailable")
	default:
		h.logger.Error("Unexpected catalog error", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "internal server error")
	}
}
