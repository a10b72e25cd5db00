package product

import "time"

// ProductType keys per-type behavior such as upload limits and pricing
// sheets: business_cards, flyers, posters, banners.
type ProductType string

type Product struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Slug        string      `json:"slug"`
	Type        ProductType `json:"type"`
	BasePrice   float64     `json:"base_price"`
	Description string      `json:"description"`
	IsActive    bool        `json:"is_active"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// PaperStock, PrintSize and Turnaround are catalog entities referenced from
// cart selections. Only the fields pricing needs are mapped here; admin CRUD
// over the full rows happens elsewhere.
type PaperStock struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	PricePerUnit  float64 `json:"price_per_unit"`
	WeightGSM     int     `json:"weight_gsm"`
	IsActive      bool    `json:"is_active"`
}

type PrintSize struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	WidthInches  float64 `json:"width_inches"`
	HeightInches float64 `json:"height_inches"`
	PricePerUnit float64 `json:"price_per_unit"`
	IsActive     bool    `json:"is_active"`
}

type Turnaround struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	BusinessDays int     `json:"business_days"`
	Multiplier   float64 `json:"multiplier"`
}
