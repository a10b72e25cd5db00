package product

import (
	"context"
	"encoding/json"
	"errors"

	"printshop-be/internal/gateway"
)

var ErrNotFound = errors.New("product not found")

// AddOn is the catalog row for a product add-on. PricingModel discriminates
// how Fee/Rate are interpreted: "flat" and "per_unit" use Fee, "percentage"
// uses Rate.
type AddOn struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	PricingModel string  `json:"pricing_model"`
	Fee          float64 `json:"fee"`
	Rate         float64 `json:"rate"`
	IsActive     bool    `json:"is_active"`
}

type Repository interface {
	GetByID(ctx context.Context, id string) (*Product, error)
	GetPaperStock(ctx context.Context, id string) (*PaperStock, error)
	GetPrintSize(ctx context.Context, id string) (*PrintSize, error)
	GetTurnaround(ctx context.Context, id string) (*Turnaround, error)
	GetAddOns(ctx context.Context, ids []string) ([]AddOn, error)
}

type repository struct {
	store gateway.Store
}

func NewRepository(store gateway.Store) Repository {
	return &repository{store: store}
}

func (r *repository) GetByID(ctx context.Context, id string) (*Product, error) {
	var p Product
	if err := r.getOne(ctx, "products", id, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) GetPaperStock(ctx context.Context, id string) (*PaperStock, error) {
	var ps PaperStock
	if err := r.getOne(ctx, "paper_stocks", id, &ps); err != nil {
		return nil, err
	}
	return &ps, nil
}

func (r *repository) GetPrintSize(ctx context.Context, id string) (*PrintSize, error) {
	var sz PrintSize
	if err := r.getOne(ctx, "print_sizes", id, &sz); err != nil {
		return nil, err
	}
	return &sz, nil
}

func (r *repository) GetTurnaround(ctx context.Context, id string) (*Turnaround, error) {
	var ta Turnaround
	if err := r.getOne(ctx, "turnarounds", id, &ta); err != nil {
		return nil, err
	}
	return &ta, nil
}

func (r *repository) GetAddOns(ctx context.Context, ids []string) ([]AddOn, error) {
	addOns := make([]AddOn, 0, len(ids))
	for _, id := range ids {
		var a AddOn
		if err := r.getOne(ctx, "add_ons", id, &a); err != nil {
			return nil, err
		}
		addOns = append(addOns, a)
	}
	return addOns, nil
}

func (r *repository) getOne(ctx context.Context, table, id string, dest any) error {
	rows, err := r.store.Query(ctx, table, gateway.Filters{"id": id})
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return ErrNotFound
	}
	return decodeRow(rows[0], dest)
}

func decodeRow(row gateway.Row, dest any) error {
	raw, err := json.Marshal(row)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, dest)
}
