package cart

import (
	"time"
)

// Selections are the print configuration choices for one cart item. Each id
// references a catalog entity; the cart treats them as opaque.
type Selections struct {
	PaperStockID string   `json:"paper_stock_id"`
	PrintSizeID  string   `json:"print_size_id"`
	TurnaroundID string   `json:"turnaround_id"`
	AddOnIDs     []string `json:"add_on_ids"`
}

type PriceBreakdown struct {
	Base      float64 `json:"base"`
	Modifiers float64 `json:"modifiers"`
	Savings   float64 `json:"savings"`
}

type CartItem struct {
	ID         string         `json:"id"`
	CustomerID string         `json:"customer_id"`
	ProductID  string         `json:"product_id"`
	Quantity   int            `json:"quantity"`
	Selections Selections     `json:"selections"`
	TotalPrice float64        `json:"total_price"`
	Breakdown  PriceBreakdown `json:"price_breakdown"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

type AddItemParams struct {
	CustomerID string
	ProductID  string
	Quantity   int
	Selections Selections
}

type UpdateItemParams struct {
	CustomerID string
	ItemID     string
	Quantity   *int
	Selections *Selections
}
