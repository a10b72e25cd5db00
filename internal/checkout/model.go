package checkout

import (
	"time"

	"printshop-be/internal/address"
	"printshop-be/internal/cart"
	"printshop-be/internal/payment"
	"printshop-be/internal/shipping"
)

// CheckoutSession is the aggregate root for one in-progress checkout. Cart
// items are snapshotted at creation. Optional fields fill in additively as
// the customer moves through the wizard; there is no explicit state enum.
//
// BillingAddress == nil with BillingSameAsShipping set means billing aliases
// the shipping address: no independent record exists to drift out of sync.
type CheckoutSession struct {
	ID         string `json:"id"`
	CustomerID string `json:"customer_id"`

	CartItems []cart.CartItem `json:"cart_items"`

	// Optional fields marshal as explicit nulls so a persisted patch can
	// clear them; the gateway's jsonb merge would otherwise keep stale
	// values.
	ShippingAddress       *address.Address `json:"shipping_address"`
	BillingAddress        *address.Address `json:"billing_address"`
	BillingSameAsShipping bool             `json:"billing_same_as_shipping"`
	ShippingMethod        *shipping.Method `json:"shipping_method"`
	PaymentMethod         *payment.Method  `json:"payment_method"`

	Subtotal       float64 `json:"subtotal"`
	ShippingCost   float64 `json:"shipping_cost"`
	TaxAmount      float64 `json:"tax_amount"`
	DiscountAmount float64 `json:"discount_amount"`
	TotalAmount    float64 `json:"total_amount"`

	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EffectiveBillingAddress resolves the alias: billing when set, otherwise
// shipping.
func (s *CheckoutSession) EffectiveBillingAddress() *address.Address {
	if s.BillingAddress != nil {
		return s.BillingAddress
	}
	return s.ShippingAddress
}

// recomputeTotals re-derives the priced fields. shipping_cost always comes
// from the selected method; total_amount is never set independently.
func (s *CheckoutSession) recomputeTotals() {
	if s.ShippingMethod != nil {
		s.ShippingCost = s.ShippingMethod.Cost
	} else {
		s.ShippingCost = 0
	}
	s.TotalAmount = s.Subtotal + s.ShippingCost + s.TaxAmount - s.DiscountAmount
}

// UpdateSessionParams is the partial-update surface: nil fields are left
// untouched. Setting BillingSameAsShipping true clears any stored billing
// address so the alias holds.
type UpdateSessionParams struct {
	ShippingAddress       *address.Address
	BillingAddress        *address.Address
	BillingSameAsShipping *bool
	ShippingMethod        *shipping.Method
	PaymentMethod         *payment.Method
	DiscountAmount        *float64
}

type ProcessPaymentParams struct {
	SessionID    string
	CustomerID   string
	Method       payment.Method
	PaymentToken string
	SaveMethod   bool
}
