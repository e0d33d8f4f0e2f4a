package transport

import (
	"net/http"

	"ortofrutticola/internal/cart"
	"ortofrutticola/internal/catalog"
	"ortofrutticola/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const cartCookieName = "cart_id"

// AddItemRequest asks for one more of a product.
type AddItemRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
}

// ChangeQuantityRequest moves a line's quantity by delta; reaching zero
// removes the line.
type ChangeQuantityRequest struct {
	Delta int `json:"delta" validate:"required"`
}

// CartResponse is the cart view: lines plus recomputed totals.
type CartResponse struct {
	Items      []cart.Line `json:"items"`
	TotalItems int         `json:"total_items"`
	TotalPrice string      `json:"total_price"`
}

// CartHandler serves the guest cart endpoints. Carts are keyed by an opaque
// uuid cookie and live only in memory.
type CartHandler struct {
	registry *cart.Registry
	store    *catalog.Store
	logger   *zap.Logger
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(registry *cart.Registry, store *catalog.Store, logger *zap.Logger) *CartHandler {
	return &CartHandler{
		registry: registry,
		store:    store,
		logger:   logger,
	}
}

// RegisterRoutes registers the cart routes
func (h *CartHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/cart", func(r chi.Router) {
		r.Get("/", h.GetCart)
		r.Delete("/", h.ClearCart)
		r.Post("/items", h.AddItem)
		r.Patch("/items/{id}", h.ChangeQuantity)
	})
}

// guestCart resolves the caller's cart from the cookie, issuing a fresh guest
// id on first touch.
func (h *CartHandler) guestCart(w http.ResponseWriter, r *http.Request) *cart.Cart {
	var guestID uuid.UUID

	cookie, err := r.Cookie(cartCookieName)
	if err == nil {
		guestID, err = uuid.Parse(cookie.Value)
	}
	if err != nil {
		guestID = uuid.New()
		http.SetCookie(w, &http.Cookie{
			Name:     cartCookieName,
			Value:    guestID.String(),
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}

	return h.registry.GetOrCreate(guestID)
}

func (h *CartHandler) respondCart(w http.ResponseWriter, c *cart.Cart) {
	totals := c.ComputeTotals()
	middleware.RespondWithJSON(w, http.StatusOK, CartResponse{
		Items:      c.Lines(),
		TotalItems: totals.Items,
		TotalPrice: totals.Price.StringFixed(2),
	})
}

// GetCart returns the current cart contents and totals.
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	h.respondCart(w, h.guestCart(w, r))
}

// AddItem puts one more of a product in the cart, snapshotting its current
// price and name. Only in-stock catalog products can be added.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	for _, p := range h.store.Products() {
		if p.ID == productID && p.InStock {
			c := h.guestCart(w, r)
			c.Add(p)
			h.respondCart(w, c)
			return
		}
	}

	middleware.RespondWithError(w, http.StatusNotFound, "product not available")
}

// ChangeQuantity applies a quantity delta to a cart line.
func (h *CartHandler) ChangeQuantity(w http.ResponseWriter, r *http.Request) {
	productID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	var req ChangeQuantityRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	c := h.guestCart(w, r)
	c.ChangeQuantity(productID, req.Delta)
	h.respondCart(w, c)
}

// ClearCart empties the cart.
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	c := h.guestCart(w, r)
	c.Clear()
	h.respondCart(w, c)
}
