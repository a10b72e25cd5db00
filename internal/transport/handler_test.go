package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"printshop-be/internal/address"
	"printshop-be/internal/cart"
	"printshop-be/internal/checkout"
	"printshop-be/internal/payment"
	"printshop-be/internal/shipping"
	"printshop-be/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockCheckoutService is a mock implementation of the checkout service
type MockCheckoutService struct {
	mock.Mock
}

func (m *MockCheckoutService) CreateSession(ctx context.Context, customerID string, items []*cart.CartItem) (*checkout.CheckoutSession, error) {
	args := m.Called(ctx, customerID, items)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*checkout.CheckoutSession), args.Error(1)
}

func (m *MockCheckoutService) GetSession(ctx context.Context, sessionID, customerID string) (*checkout.CheckoutSession, error) {
	args := m.Called(ctx, sessionID, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*checkout.CheckoutSession), args.Error(1)
}

func (m *MockCheckoutService) UpdateSession(ctx context.Context, sessionID, customerID string, params checkout.UpdateSessionParams) (*checkout.CheckoutSession, error) {
	args := m.Called(ctx, sessionID, customerID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*checkout.CheckoutSession), args.Error(1)
}

func (m *MockCheckoutService) ValidateAddress(ctx context.Context, addr address.Address) (*address.Verification, error) {
	args := m.Called(ctx, addr)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*address.Verification), args.Error(1)
}

func (m *MockCheckoutService) CalculateShipping(ctx context.Context, dest address.Address, items []*cart.CartItem) ([]shipping.Method, error) {
	args := m.Called(ctx, dest, items)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]shipping.Method), args.Error(1)
}

func (m *MockCheckoutService) ProcessPayment(ctx context.Context, params checkout.ProcessPaymentParams) (*payment.ProcessResult, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.ProcessResult), args.Error(1)
}

// MockCartService is a mock implementation of the cart service
type MockCartService struct {
	mock.Mock
}

func (m *MockCartService) AddItem(ctx context.Context, params cart.AddItemParams) (*cart.CartItem, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.CartItem), args.Error(1)
}

func (m *MockCartService) GetCart(ctx context.Context, customerID string) ([]*cart.CartItem, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*cart.CartItem), args.Error(1)
}

func (m *MockCartService) UpdateItem(ctx context.Context, params cart.UpdateItemParams) (*cart.CartItem, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.CartItem), args.Error(1)
}

func (m *MockCartService) RemoveItem(ctx context.Context, customerID, itemID string) error {
	args := m.Called(ctx, customerID, itemID)
	return args.Error(0)
}

func (m *MockCartService) ClearCart(ctx context.Context, customerID string) error {
	args := m.Called(ctx, customerID)
	return args.Error(0)
}

func newTestMux(checkoutSvc checkout.Service, cartSvc cart.Service) *http.ServeMux {
	mux := http.NewServeMux()
	NewHandler(checkoutSvc, cartSvc).Register(mux)
	return mux
}

func authed(req *http.Request) *http.Request {
	ctx := utils.SetCustomerContext(req.Context(), "cust-1", "jo@example.com", "customer")
	return req.WithContext(ctx)
}

func TestHandler_CreateSession(t *testing.T) {
	t.Run("should create a session from the customer's cart", func(t *testing.T) {
		checkoutSvc := new(MockCheckoutService)
		cartSvc := new(MockCartService)
		mux := newTestMux(checkoutSvc, cartSvc)

		items := []*cart.CartItem{{ID: "item-1", Quantity: 500}}
		cartSvc.On("GetCart", mock.Anything, "cust-1").Return(items, nil)
		checkoutSvc.On("CreateSession", mock.Anything, "cust-1", items).
			Return(&checkout.CheckoutSession{ID: "sess-1", CustomerID: "cust-1"}, nil)

		req := authed(httptest.NewRequest("POST", "/api/checkout/sessions", nil))
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		var session checkout.CheckoutSession
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &session))
		assert.Equal(t, "sess-1", session.ID)
	})

	t.Run("should return the empty-cart view on an empty cart", func(t *testing.T) {
		checkoutSvc := new(MockCheckoutService)
		cartSvc := new(MockCartService)
		mux := newTestMux(checkoutSvc, cartSvc)

		cartSvc.On("GetCart", mock.Anything, "cust-1").Return([]*cart.CartItem{}, nil)
		checkoutSvc.On("CreateSession", mock.Anything, "cust-1", mock.Anything).
			Return(nil, checkout.ErrInvalidCart)

		req := authed(httptest.NewRequest("POST", "/api/checkout/sessions", nil))
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "empty_cart")
	})

	t.Run("should reject anonymous requests", func(t *testing.T) {
		mux := newTestMux(new(MockCheckoutService), new(MockCartService))

		req := httptest.NewRequest("POST", "/api/checkout/sessions", nil)
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestHandler_GetSession(t *testing.T) {
	t.Run("should map domain errors to statuses", func(t *testing.T) {
		cases := []struct {
			name string
			err  error
			want int
		}{
			{"not found", checkout.ErrSessionNotFound, http.StatusNotFound},
			{"expired", checkout.ErrSessionExpired, http.StatusGone},
			{"forbidden", checkout.ErrForbidden, http.StatusForbidden},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				checkoutSvc := new(MockCheckoutService)
				mux := newTestMux(checkoutSvc, new(MockCartService))

				checkoutSvc.On("GetSession", mock.Anything, "sess-1", "cust-1").
					Return(nil, tc.err)

				req := authed(httptest.NewRequest("GET", "/api/checkout/sessions/sess-1", nil))
				w := httptest.NewRecorder()
				mux.ServeHTTP(w, req)

				assert.Equal(t, tc.want, w.Code)
			})
		}
	})
}

func TestHandler_UpdateSession(t *testing.T) {
	t.Run("should pass explicit nulls through to the service", func(t *testing.T) {
		checkoutSvc := new(MockCheckoutService)
		mux := newTestMux(checkoutSvc, new(MockCartService))

		checkoutSvc.On("UpdateSession", mock.Anything, "sess-1", "cust-1",
			mock.MatchedBy(func(p checkout.UpdateSessionParams) bool {
				return p.BillingSameAsShipping != nil && *p.BillingSameAsShipping &&
					p.BillingAddress == nil
			})).Return(&checkout.CheckoutSession{ID: "sess-1"}, nil)

		body := strings.NewReader(`{"billing_same_as_shipping": true}`)
		req := authed(httptest.NewRequest("PATCH", "/api/checkout/sessions/sess-1", body))
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		checkoutSvc.AssertExpectations(t)
	})

	t.Run("should reject malformed bodies", func(t *testing.T) {
		mux := newTestMux(new(MockCheckoutService), new(MockCartService))

		body := strings.NewReader(`{not json`)
		req := authed(httptest.NewRequest("PATCH", "/api/checkout/sessions/sess-1", body))
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandler_ProcessPayment(t *testing.T) {
	paymentBody := func() *bytes.Reader {
		raw, _ := json.Marshal(processPaymentRequest{
			Method: payment.Method{
				Kind: payment.MethodCard,
				Card: &payment.CardDetails{LastFour: "4242", ExpMonth: 12, ExpYear: 2030, Token: "tok_1"},
			},
			PaymentToken: "tok_1",
		})
		return bytes.NewReader(raw)
	}

	t.Run("should return 200 on approval", func(t *testing.T) {
		checkoutSvc := new(MockCheckoutService)
		mux := newTestMux(checkoutSvc, new(MockCartService))

		checkoutSvc.On("ProcessPayment", mock.Anything, mock.MatchedBy(func(p checkout.ProcessPaymentParams) bool {
			return p.SessionID == "sess-1" && p.CustomerID == "cust-1"
		})).Return(&payment.ProcessResult{Success: true, ReferenceNumber: "ref-9"}, nil)

		req := authed(httptest.NewRequest("POST", "/api/checkout/sessions/sess-1/payment", paymentBody()))
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "ref-9")
	})

	t.Run("should return 402 on decline and keep the session retryable", func(t *testing.T) {
		checkoutSvc := new(MockCheckoutService)
		mux := newTestMux(checkoutSvc, new(MockCartService))

		checkoutSvc.On("ProcessPayment", mock.Anything, mock.Anything).
			Return(&payment.ProcessResult{Success: false, Error: "card declined"}, nil)

		req := authed(httptest.NewRequest("POST", "/api/checkout/sessions/sess-1/payment", paymentBody()))
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)

		assert.Equal(t, http.StatusPaymentRequired, w.Code)
		assert.Contains(t, w.Body.String(), "card declined")
	})

	t.Run("should return 503 when the gateway is unreachable", func(t *testing.T) {
		checkoutSvc := new(MockCheckoutService)
		mux := newTestMux(checkoutSvc, new(MockCartService))

		checkoutSvc.On("ProcessPayment", mock.Anything, mock.Anything).
			Return(nil, payment.ErrGatewayUnavailable)

		req := authed(httptest.NewRequest("POST", "/api/checkout/sessions/sess-1/payment", paymentBody()))
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}

func TestHandler_ValidateAddress(t *testing.T) {
	t.Run("should return the suggestion without applying it", func(t *testing.T) {
		checkoutSvc := new(MockCheckoutService)
		mux := newTestMux(checkoutSvc, new(MockCartService))

		corrected := &address.Address{Address1: "123 Main St", City: "Portland", State: "OR", Postal: "97201", Country: "US"}
		checkoutSvc.On("ValidateAddress", mock.Anything, mock.Anything).
			Return(&address.Verification{IsValid: true, CorrectedAddress: corrected}, nil)

		body := strings.NewReader(`{"address1": "123 main street", "city": "Portland", "state": "OR", "postal": "97201", "country": "US"}`)
		req := httptest.NewRequest("POST", "/api/addresses/validate", body)
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "123 Main St")
		checkoutSvc.AssertNotCalled(t, "UpdateSession", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestHandler_CalculateShipping(t *testing.T) {
	t.Run("should treat an empty rate list as a normal outcome", func(t *testing.T) {
		checkoutSvc := new(MockCheckoutService)
		mux := newTestMux(checkoutSvc, new(MockCartService))

		checkoutSvc.On("CalculateShipping", mock.Anything, mock.Anything, mock.Anything).
			Return([]shipping.Method{}, nil)

		body := strings.NewReader(`{"destination": {"state": "AK", "postal": "99501", "country": "US"}, "items": []}`)
		req := httptest.NewRequest("POST", "/api/shipping/rates", body)
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"methods":[]`)
	})
}

func TestHandler_WizardState(t *testing.T) {
	t.Run("should report completion and reachability per step", func(t *testing.T) {
		checkoutSvc := new(MockCheckoutService)
		mux := newTestMux(checkoutSvc, new(MockCartService))

		session := &checkout.CheckoutSession{
			ID:         "sess-1",
			CustomerID: "cust-1",
			ShippingAddress: &address.Address{
				Address1: "1 Pine St", City: "Seattle", State: "WA", Postal: "98101", Country: "US",
			},
			BillingSameAsShipping: true,
		}
		checkoutSvc.On("GetSession", mock.Anything, "sess-1", "cust-1").Return(session, nil)

		req := authed(httptest.NewRequest("GET", "/api/checkout/sessions/sess-1/wizard", nil))
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp wizardStateResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp.Steps, 5)
		assert.Equal(t, checkout.StepShipping, resp.Steps[0].ID)
		assert.True(t, resp.Steps[0].Completed)
		assert.True(t, resp.Steps[1].Completed)  // billing via same-as-shipping
		assert.False(t, resp.Steps[2].Completed) // no shipping method yet
		assert.True(t, resp.Steps[2].Reachable)
		assert.False(t, resp.Steps[3].Reachable)
		assert.InDelta(t, 0.6, resp.Progress, 1e-9)
	})
}
