package transport

import (
	"encoding/json"
	"errors"
	"net/http"

	"printshop-be/internal/cart"
	"printshop-be/internal/product"
	"printshop-be/internal/utils"
)

// CartHandler exposes cart CRUD. Every route requires an identified
// customer; the cart is keyed by the token's customer id, never by a
// client-supplied one.
type CartHandler struct {
	svc cart.Service
}

func NewCartHandler(svc cart.Service) *CartHandler {
	return &CartHandler{svc: svc}
}

func (h *CartHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/cart", h.getCart)
	mux.HandleFunc("POST /api/cart/items", h.addItem)
	mux.HandleFunc("PATCH /api/cart/items/{id}", h.updateItem)
	mux.HandleFunc("DELETE /api/cart/items/{id}", h.removeItem)
	mux.HandleFunc("DELETE /api/cart", h.clearCart)
}

func (h *CartHandler) getCart(w http.ResponseWriter, r *http.Request) {
	customerID, ok := utils.GetCustomerIDFromContext(r.Context())
	if !ok {
		utils.WriteJSONError(w, "authentication required", http.StatusUnauthorized)
		return
	}

	items, err := h.svc.GetCart(r.Context(), customerID)
	if err != nil {
		writeCartError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]any{"items": items})
}

type addItemRequest struct {
	ProductID  string          `json:"product_id"`
	Quantity   int             `json:"quantity"`
	Selections cart.Selections `json:"selections"`
}

func (h *CartHandler) addItem(w http.ResponseWriter, r *http.Request) {
	customerID, ok := utils.GetCustomerIDFromContext(r.Context())
	if !ok {
		utils.WriteJSONError(w, "authentication required", http.StatusUnauthorized)
		return
	}

	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	item, err := h.svc.AddItem(r.Context(), cart.AddItemParams{
		CustomerID: customerID,
		ProductID:  req.ProductID,
		Quantity:   req.Quantity,
		Selections: req.Selections,
	})
	if err != nil {
		writeCartError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, item)
}

type updateItemRequest struct {
	Quantity   *int             `json:"quantity"`
	Selections *cart.Selections `json:"selections"`
}

func (h *CartHandler) updateItem(w http.ResponseWriter, r *http.Request) {
	customerID, ok := utils.GetCustomerIDFromContext(r.Context())
	if !ok {
		utils.WriteJSONError(w, "authentication required", http.StatusUnauthorized)
		return
	}

	var req updateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	item, err := h.svc.UpdateItem(r.Context(), cart.UpdateItemParams{
		CustomerID: customerID,
		ItemID:     r.PathValue("id"),
		Quantity:   req.Quantity,
		Selections: req.Selections,
	})
	if err != nil {
		writeCartError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, item)
}

func (h *CartHandler) removeItem(w http.ResponseWriter, r *http.Request) {
	customerID, ok := utils.GetCustomerIDFromContext(r.Context())
	if !ok {
		utils.WriteJSONError(w, "authentication required", http.StatusUnauthorized)
		return
	}

	if err := h.svc.RemoveItem(r.Context(), customerID, r.PathValue("id")); err != nil {
		writeCartError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *CartHandler) clearCart(w http.ResponseWriter, r *http.Request) {
	customerID, ok := utils.GetCustomerIDFromContext(r.Context())
	if !ok {
		utils.WriteJSONError(w, "authentication required", http.StatusUnauthorized)
		return
	}

	if err := h.svc.ClearCart(r.Context(), customerID); err != nil {
		writeCartError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeCartError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, cart.ErrCartItemNotFound):
		utils.WriteJSONError(w, "cart item not found", http.StatusNotFound)
	case errors.Is(err, cart.ErrProductNotFound), errors.Is(err, product.ErrNotFound):
		utils.WriteJSONError(w, "product not found", http.StatusNotFound)
	case errors.Is(err, cart.ErrInvalidQuantity), errors.Is(err, cart.ErrNothingToUpdate):
		utils.WriteJSONError(w, err.Error(), http.StatusUnprocessableEntity)
	default:
		utils.WriteJSONError(w, "internal server error", http.StatusInternalServerError)
	}
}
