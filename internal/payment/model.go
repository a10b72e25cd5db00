package payment

import "errors"

var (
	ErrUnknownMethodKind  = errors.New("unknown payment method kind")
	ErrMissingCardDetails = errors.New("card payment requires card details")
	ErrMissingCardToken   = errors.New("card payment requires a tokenized reference")
)

type MethodKind string

const (
	MethodCard    MethodKind = "card"
	MethodPayPal  MethodKind = "paypal"
	MethodCashApp MethodKind = "cashapp"
)

// CardDetails never holds raw card data; Token is the opaque reference the
// client-side tokenization step produced.
type CardDetails struct {
	LastFour string `json:"last_four"`
	ExpMonth int    `json:"exp_month"`
	ExpYear  int    `json:"exp_year"`
	Token    string `json:"token"`
}

// Method is a tagged union over the supported gateway types. Only the card
// variant carries a payload.
type Method struct {
	Kind MethodKind   `json:"kind"`
	Card *CardDetails `json:"card,omitempty"`
}

func (m Method) Validate() error {
	switch m.Kind {
	case MethodCard:
		if m.Card == nil {
			return ErrMissingCardDetails
		}
		if m.Card.Token == "" {
			return ErrMissingCardToken
		}
		return nil
	case MethodPayPal, MethodCashApp:
		return nil
	default:
		return ErrUnknownMethodKind
	}
}

// DisplayName is what receipts and the review step show.
func (m Method) DisplayName() string {
	switch m.Kind {
	case MethodCard:
		if m.Card != nil {
			return "Card ending in " + m.Card.LastFour
		}
		return "Card"
	case MethodPayPal:
		return "PayPal"
	case MethodCashApp:
		return "Cash App Pay"
	default:
		return string(m.Kind)
	}
}
