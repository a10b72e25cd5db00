package transport

import (
	"encoding/json"
	"errors"
	"net/http"

	"printshop-be/internal/address"
	"printshop-be/internal/cart"
	"printshop-be/internal/checkout"
	"printshop-be/internal/logger"
	"printshop-be/internal/payment"
	"printshop-be/internal/shipping"
	"printshop-be/internal/utils"

	"go.uber.org/zap"
)

// Handler exposes the checkout API surface as JSON over HTTP.
type Handler struct {
	checkoutSvc checkout.Service
	cartSvc     cart.Service
}

func NewHandler(checkoutSvc checkout.Service, cartSvc cart.Service) *Handler {
	return &Handler{checkoutSvc: checkoutSvc, cartSvc: cartSvc}
}

// Register mounts the checkout routes on the mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/checkout/sessions", h.createSession)
	mux.HandleFunc("GET /api/checkout/sessions/{id}", h.getSession)
	mux.HandleFunc("PATCH /api/checkout/sessions/{id}", h.updateSession)
	mux.HandleFunc("GET /api/checkout/sessions/{id}/wizard", h.wizardState)
	mux.HandleFunc("POST /api/checkout/sessions/{id}/payment", h.processPayment)
	mux.HandleFunc("POST /api/addresses/validate", h.validateAddress)
	mux.HandleFunc("POST /api/shipping/rates", h.calculateShipping)
}

func (h *Handler) createSession(w http.ResponseWriter, r *http.Request) {
	customerID, ok := utils.GetCustomerIDFromContext(r.Context())
	if !ok {
		utils.WriteJSONError(w, "authentication required", http.StatusUnauthorized)
		return
	}

	items, err := h.cartSvc.GetCart(r.Context(), customerID)
	if err != nil {
		writeCheckoutError(w, r, err)
		return
	}

	session, err := h.checkoutSvc.CreateSession(r.Context(), customerID, items)
	if err != nil {
		writeCheckoutError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, session)
}

func (h *Handler) getSession(w http.ResponseWriter, r *http.Request) {
	customerID, ok := utils.GetCustomerIDFromContext(r.Context())
	if !ok {
		utils.WriteJSONError(w, "authentication required", http.StatusUnauthorized)
		return
	}

	session, err := h.checkoutSvc.GetSession(r.Context(), r.PathValue("id"), customerID)
	if err != nil {
		writeCheckoutError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, session)
}

type updateSessionRequest struct {
	ShippingAddress       *address.Address `json:"shipping_address"`
	BillingAddress        *address.Address `json:"billing_address"`
	BillingSameAsShipping *bool            `json:"billing_same_as_shipping"`
	ShippingMethod        *shipping.Method `json:"shipping_method"`
	PaymentMethod         *payment.Method  `json:"payment_method"`
	DiscountAmount        *float64         `json:"discount_amount"`
}

func (h *Handler) updateSession(w http.ResponseWriter, r *http.Request) {
	customerID, ok := utils.GetCustomerIDFromContext(r.Context())
	if !ok {
		utils.WriteJSONError(w, "authentication required", http.StatusUnauthorized)
		return
	}

	var req updateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	session, err := h.checkoutSvc.UpdateSession(r.Context(), r.PathValue("id"), customerID, checkout.UpdateSessionParams{
		ShippingAddress:       req.ShippingAddress,
		BillingAddress:        req.BillingAddress,
		BillingSameAsShipping: req.BillingSameAsShipping,
		ShippingMethod:        req.ShippingMethod,
		PaymentMethod:         req.PaymentMethod,
		DiscountAmount:        req.DiscountAmount,
	})
	if err != nil {
		writeCheckoutError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, session)
}

type wizardStepView struct {
	ID        checkout.StepID `json:"id"`
	Title     string          `json:"title"`
	Completed bool            `json:"completed"`
	Reachable bool            `json:"reachable"`
}

type wizardStateResponse struct {
	Steps    []wizardStepView `json:"steps"`
	Progress float64          `json:"progress"`
}

// wizardState reports per-step completion for the session so the client can
// render the checkout stepper without duplicating the gating rules.
func (h *Handler) wizardState(w http.ResponseWriter, r *http.Request) {
	customerID, ok := utils.GetCustomerIDFromContext(r.Context())
	if !ok {
		utils.WriteJSONError(w, "authentication required", http.StatusUnauthorized)
		return
	}

	session, err := h.checkoutSvc.GetSession(r.Context(), r.PathValue("id"), customerID)
	if err != nil {
		writeCheckoutError(w, r, err)
		return
	}

	wizard := checkout.NewWizard(checkout.DefaultSteps())

	// Park the cursor on the furthest step the session has unlocked so the
	// progress ratio reflects actual completion.
	var resp wizardStateResponse
	for i, step := range wizard.Steps() {
		reachable := wizard.CanProceedToStep(session, i)
		if reachable {
			wizard.GoToStep(session, i)
		}
		resp.Steps = append(resp.Steps, wizardStepView{
			ID:        step.ID,
			Title:     step.Title,
			Completed: wizard.IsStepCompleted(session, step.ID),
			Reachable: reachable,
		})
	}
	resp.Progress = wizard.Progress()
	utils.WriteJSON(w, http.StatusOK, resp)
}

type processPaymentRequest struct {
	Method       payment.Method `json:"method"`
	PaymentToken string         `json:"payment_token"`
	SaveMethod   bool           `json:"save_method"`
}

func (h *Handler) processPayment(w http.ResponseWriter, r *http.Request) {
	customerID, ok := utils.GetCustomerIDFromContext(r.Context())
	if !ok {
		utils.WriteJSONError(w, "authentication required", http.StatusUnauthorized)
		return
	}

	var req processPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	result, err := h.checkoutSvc.ProcessPayment(r.Context(), checkout.ProcessPaymentParams{
		SessionID:    r.PathValue("id"),
		CustomerID:   customerID,
		Method:       req.Method,
		PaymentToken: req.PaymentToken,
		SaveMethod:   req.SaveMethod,
	})
	if err != nil {
		writeCheckoutError(w, r, err)
		return
	}

	// A decline is a successful API call; the session stays open for retry.
	status := http.StatusOK
	if !result.Success {
		status = http.StatusPaymentRequired
	}
	utils.WriteJSON(w, status, result)
}

func (h *Handler) validateAddress(w http.ResponseWriter, r *http.Request) {
	var addr address.Address
	if err := json.NewDecoder(r.Body).Decode(&addr); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	verdict, err := h.checkoutSvc.ValidateAddress(r.Context(), addr)
	if err != nil {
		writeCheckoutError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, verdict)
}

type calculateShippingRequest struct {
	Destination address.Address  `json:"destination"`
	Items       []*cart.CartItem `json:"items"`
}

func (h *Handler) calculateShipping(w http.ResponseWriter, r *http.Request) {
	var req calculateShippingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	methods, err := h.checkoutSvc.CalculateShipping(r.Context(), req.Destination, req.Items)
	if err != nil {
		writeCheckoutError(w, r, err)
		return
	}
	// No methods for this destination is a normal outcome, not an error.
	utils.WriteJSON(w, http.StatusOK, map[string]any{"methods": methods})
}

// writeCheckoutError maps domain errors onto HTTP statuses.
func writeCheckoutError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, checkout.ErrInvalidCart):
		// Terminal empty-cart condition: the client should leave checkout
		// and show the empty-cart view.
		utils.WriteJSON(w, http.StatusConflict, map[string]string{
			"error": "cart is empty",
			"view":  "empty_cart",
		})
	case errors.Is(err, checkout.ErrSessionNotFound):
		utils.WriteJSONError(w, "checkout session not found", http.StatusNotFound)
	case errors.Is(err, checkout.ErrSessionExpired):
		utils.WriteJSONError(w, "checkout session expired", http.StatusGone)
	case errors.Is(err, checkout.ErrForbidden):
		utils.WriteJSONError(w, "forbidden", http.StatusForbidden)
	case errors.Is(err, checkout.ErrNoPaymentMethod), errors.Is(err, checkout.ErrNoShippingMethod):
		utils.WriteJSONError(w, err.Error(), http.StatusUnprocessableEntity)
	case errors.Is(err, address.ErrVerifierUnavailable),
		errors.Is(err, payment.ErrGatewayUnavailable):
		utils.WriteJSONError(w, "upstream service unavailable", http.StatusServiceUnavailable)
	default:
		logger.FromCtx(r.Context()).Error("unhandled checkout error",
			zap.String("path", r.URL.Path),
			zap.Error(err))
		utils.WriteJSONError(w, "internal server error", http.StatusInternalServerError)
	}
}
