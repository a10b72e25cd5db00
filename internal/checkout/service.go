package checkout

import (
	"context"
	"fmt"
	"strings"
	"time"

	"printshop-be/internal/address"
	"printshop-be/internal/cart"
	"printshop-be/internal/logger"
	"printshop-be/internal/payment"
	"printshop-be/internal/shipping"
	"printshop-be/internal/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service drives a checkout from cart snapshot to processed payment.
type Service interface {
	CreateSession(ctx context.Context, customerID string, items []*cart.CartItem) (*CheckoutSession, error)
	GetSession(ctx context.Context, sessionID, customerID string) (*CheckoutSession, error)
	UpdateSession(ctx context.Context, sessionID, customerID string, params UpdateSessionParams) (*CheckoutSession, error)
	ValidateAddress(ctx context.Context, addr address.Address) (*address.Verification, error)
	CalculateShipping(ctx context.Context, dest address.Address, items []*cart.CartItem) ([]shipping.Method, error)
	ProcessPayment(ctx context.Context, params ProcessPaymentParams) (*payment.ProcessResult, error)
}

type service struct {
	repo       Repository
	cartSvc    cart.Service
	verifier   address.Verifier
	rates      shipping.RateProvider
	payments   payment.Gateway
	sessionTTL time.Duration
	taxRates   map[string]float64
}

type Option func(*service)

// WithTaxRates installs per-state tax rates (keyed by 2-letter code). With no
// rates configured every destination is untaxed.
func WithTaxRates(rates map[string]float64) Option {
	return func(s *service) { s.taxRates = rates }
}

func NewService(
	repo Repository,
	cartSvc cart.Service,
	verifier address.Verifier,
	rates shipping.RateProvider,
	payments payment.Gateway,
	sessionTTL time.Duration,
	opts ...Option,
) Service {
	s := &service{
		repo:       repo,
		cartSvc:    cartSvc,
		verifier:   verifier,
		rates:      rates,
		payments:   payments,
		sessionTTL: sessionTTL,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) CreateSession(ctx context.Context, customerID string, items []*cart.CartItem) (*CheckoutSession, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("service", "Checkout"),
		zap.String("method", "CreateSession"),
		zap.Int("item_count", len(items)),
	)

	if len(items) == 0 {
		log.Warn("refusing to create session for empty cart")
		return nil, ErrInvalidCart
	}

	snapshot := make([]cart.CartItem, 0, len(items))
	subtotal := 0.0
	for _, item := range items {
		snapshot = append(snapshot, *item)
		subtotal += item.TotalPrice
	}

	session := &CheckoutSession{
		ID:         uuid.New().String(),
		CustomerID: customerID,
		CartItems:  snapshot,
		Subtotal:   subtotal,
		ExpiresAt:  time.Now().Add(s.sessionTTL),
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
	session.recomputeTotals()

	created, err := s.repo.Create(ctx, session)
	if err != nil {
		log.Error("failed to persist checkout session", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	log.Info("checkout session created",
		zap.String("session_id", created.ID),
		zap.Float64("subtotal", created.Subtotal),
	)
	return created, nil
}

func (s *service) GetSession(ctx context.Context, sessionID, customerID string) (*CheckoutSession, error) {
	session, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if session.CustomerID != "" && session.CustomerID != customerID {
		return nil, ErrForbidden
	}

	if time.Now().After(session.ExpiresAt) {
		return nil, ErrSessionExpired
	}

	return session, nil
}

// UpdateSession merges the given fields into the session, recomputes the
// priced fields, and persists in one gateway write. Calls are applied in the
// order issued; each write carries the full cumulative state.
func (s *service) UpdateSession(ctx context.Context, sessionID, customerID string, params UpdateSessionParams) (*CheckoutSession, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("service", "Checkout"),
		zap.String("method", "UpdateSession"),
		zap.String("session_id", sessionID),
	)

	session, err := s.GetSession(ctx, sessionID, customerID)
	if err != nil {
		return nil, err
	}

	if params.ShippingAddress != nil {
		session.ShippingAddress = params.ShippingAddress
	}
	if params.BillingSameAsShipping != nil {
		session.BillingSameAsShipping = *params.BillingSameAsShipping
		if session.BillingSameAsShipping {
			// Alias: drop any independent billing record.
			session.BillingAddress = nil
		}
	}
	if params.BillingAddress != nil {
		session.BillingAddress = params.BillingAddress
		session.BillingSameAsShipping = false
	}
	if params.ShippingMethod != nil {
		session.ShippingMethod = params.ShippingMethod
	}
	if params.PaymentMethod != nil {
		if err := params.PaymentMethod.Validate(); err != nil {
			return nil, err
		}
		session.PaymentMethod = params.PaymentMethod
	}
	if params.DiscountAmount != nil {
		session.DiscountAmount = *params.DiscountAmount
	}

	session.TaxAmount = s.taxFor(session)
	session.recomputeTotals()
	session.UpdatedAt = time.Now()

	patch, err := sessionToRow(session)
	if err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, session.ID, patch)
	if err != nil {
		log.Error("failed to persist session update", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	log.Info("session updated",
		zap.Float64("shipping_cost", updated.ShippingCost),
		zap.Float64("total_amount", updated.TotalAmount),
	)
	return updated, nil
}

// ValidateAddress is a pure boundary call: it never touches the session.
// Corrections in the verdict are suggestions the caller must apply
// explicitly via UpdateSession.
func (s *service) ValidateAddress(ctx context.Context, addr address.Address) (*address.Verification, error) {
	return s.verifier.Verify(ctx, addr)
}

func (s *service) CalculateShipping(ctx context.Context, dest address.Address, items []*cart.CartItem) ([]shipping.Method, error) {
	return s.rates.Rates(ctx, dest, items)
}

// ProcessPayment is the point of no return. On success the cart is cleared
// and the session discarded; the caller infers "placed" from the discard. On
// a decline the session stays fully intact and re-attemptable.
func (s *service) ProcessPayment(ctx context.Context, params ProcessPaymentParams) (*payment.ProcessResult, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("service", "Checkout"),
		zap.String("method", "ProcessPayment"),
		zap.String("session_id", params.SessionID),
	)

	session, err := s.GetSession(ctx, params.SessionID, params.CustomerID)
	if err != nil {
		return nil, err
	}

	if session.ShippingMethod == nil {
		return nil, ErrNoShippingMethod
	}
	if err := params.Method.Validate(); err != nil {
		return nil, err
	}

	result, err := s.payments.Process(ctx, payment.ProcessRequest{
		SessionID:    session.ID,
		Method:       params.Method,
		PaymentToken: params.PaymentToken,
		SaveMethod:   params.SaveMethod,
		Amount:       utils.Round2(session.TotalAmount),
		Currency:     "USD",
	})
	if err != nil {
		log.Error("payment processing failed", zap.Error(err))
		return nil, err
	}

	if !result.Success {
		log.Warn("payment declined", zap.String("reason", result.Error))
		return result, nil
	}

	// Order placed: clear the cart and discard the session. Neither cleanup
	// failing un-places the order, so log and carry on.
	if err := s.cartSvc.ClearCart(ctx, params.CustomerID); err != nil {
		log.Error("failed to clear cart after payment", zap.Error(err))
	}
	if err := s.repo.Delete(ctx, session.ID); err != nil {
		log.Error("failed to discard session after payment", zap.Error(err))
	}

	log.Info("payment processed",
		zap.String("reference", result.ReferenceNumber),
		zap.Float64("amount", utils.Round2(session.TotalAmount)),
	)
	return result, nil
}

func (s *service) taxFor(session *CheckoutSession) float64 {
	if session.ShippingAddress == nil || len(s.taxRates) == 0 {
		return 0
	}
	rate := s.taxRates[strings.ToUpper(session.ShippingAddress.State)]
	return session.Subtotal * rate
}
