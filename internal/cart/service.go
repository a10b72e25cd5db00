package cart

import (
	"context"
	"time"

	"printshop-be/internal/gateway"
	"printshop-be/internal/logger"
	"printshop-be/internal/product"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service defines the business logic for carts.
type Service interface {
	AddItem(ctx context.Context, params AddItemParams) (*CartItem, error)
	GetCart(ctx context.Context, customerID string) ([]*CartItem, error)
	UpdateItem(ctx context.Context, params UpdateItemParams) (*CartItem, error)
	RemoveItem(ctx context.Context, customerID, itemID string) error
	ClearCart(ctx context.Context, customerID string) error
}

type service struct {
	repo     Repository
	products product.Repository
}

func NewService(repo Repository, products product.Repository) Service {
	return &service{repo: repo, products: products}
}

func (s *service) AddItem(ctx context.Context, params AddItemParams) (*CartItem, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("service", "Cart"),
		zap.String("method", "AddItem"),
		zap.String("product_id", params.ProductID),
	)

	if params.CustomerID == "" {
		return nil, ErrCustomerNotAuthenticated
	}
	if params.Quantity <= 0 {
		log.Warn("invalid quantity", zap.Int("quantity", params.Quantity))
		return nil, ErrInvalidQuantity
	}

	total, breakdown, err := s.price(ctx, params.ProductID, params.Quantity, params.Selections)
	if err != nil {
		log.Error("pricing failed", zap.Error(err))
		return nil, err
	}

	item := &CartItem{
		ID:         uuid.New().String(),
		CustomerID: params.CustomerID,
		ProductID:  params.ProductID,
		Quantity:   params.Quantity,
		Selections: params.Selections,
		TotalPrice: total,
		Breakdown:  breakdown,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}

	created, err := s.repo.CreateItem(ctx, item)
	if err != nil {
		return nil, err
	}

	log.Info("cart item added",
		zap.String("item_id", created.ID),
		zap.Float64("total_price", created.TotalPrice),
	)
	return created, nil
}

func (s *service) GetCart(ctx context.Context, customerID string) ([]*CartItem, error) {
	if customerID == "" {
		return nil, ErrCustomerNotAuthenticated
	}
	return s.repo.GetItems(ctx, customerID)
}

// UpdateItem changes quantity and/or configuration. Any change re-prices the
// line; total_price is never patched directly.
func (s *service) UpdateItem(ctx context.Context, params UpdateItemParams) (*CartItem, error) {
	if params.CustomerID == "" {
		return nil, ErrCustomerNotAuthenticated
	}
	if params.Quantity == nil && params.Selections == nil {
		return nil, ErrNothingToUpdate
	}

	item, err := s.repo.GetItem(ctx, params.CustomerID, params.ItemID)
	if err != nil {
		return nil, err
	}

	quantity := item.Quantity
	if params.Quantity != nil {
		if *params.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}
		quantity = *params.Quantity
	}

	selections := item.Selections
	if params.Selections != nil {
		selections = *params.Selections
	}

	total, breakdown, err := s.price(ctx, item.ProductID, quantity, selections)
	if err != nil {
		return nil, err
	}

	return s.repo.UpdateItem(ctx, item.ID, gateway.Row{
		"quantity":        quantity,
		"selections":      selections,
		"total_price":     total,
		"price_breakdown": breakdown,
		"updated_at":      time.Now(),
	})
}

func (s *service) RemoveItem(ctx context.Context, customerID, itemID string) error {
	if customerID == "" {
		return ErrCustomerNotAuthenticated
	}

	// Ownership check before the delete.
	if _, err := s.repo.GetItem(ctx, customerID, itemID); err != nil {
		return err
	}
	return s.repo.RemoveItem(ctx, itemID)
}

func (s *service) ClearCart(ctx context.Context, customerID string) error {
	if customerID == "" {
		return ErrCustomerNotAuthenticated
	}
	return s.repo.Clear(ctx, customerID)
}

// price assembles the price sheet from catalog rows and computes the line
// total with the configured add-on modifiers.
func (s *service) price(ctx context.Context, productID string, quantity int, sel Selections) (float64, PriceBreakdown, error) {
	prod, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return 0, PriceBreakdown{}, err
	}
	if !prod.IsActive {
		return 0, PriceBreakdown{}, ErrProductNotFound
	}

	sheet := PriceSheet{UnitBase: prod.BasePrice, TurnaroundMultiplier: 1}

	if sel.PaperStockID != "" {
		paper, err := s.products.GetPaperStock(ctx, sel.PaperStockID)
		if err != nil {
			return 0, PriceBreakdown{}, err
		}
		sheet.UnitBase += paper.PricePerUnit
	}

	if sel.PrintSizeID != "" {
		size, err := s.products.GetPrintSize(ctx, sel.PrintSizeID)
		if err != nil {
			return 0, PriceBreakdown{}, err
		}
		sheet.UnitBase += size.PricePerUnit
	}

	if sel.TurnaroundID != "" {
		ta, err := s.products.GetTurnaround(ctx, sel.TurnaroundID)
		if err != nil {
			return 0, PriceBreakdown{}, err
		}
		if ta.Multiplier > 0 {
			sheet.TurnaroundMultiplier = ta.Multiplier
		}
	}

	sheet.Breaks = volumeBreaks(sheet.UnitBase)

	rows, err := s.products.GetAddOns(ctx, sel.AddOnIDs)
	if err != nil {
		return 0, PriceBreakdown{}, err
	}

	addOns := make([]AddOn, 0, len(rows))
	for _, row := range rows {
		addOns = append(addOns, AddOn{
			ID:       row.ID,
			Name:     row.Name,
			Modifier: modifierFor(row),
		})
	}

	total, breakdown := Price(sheet, quantity, addOns)
	return total, breakdown, nil
}

// modifierFor maps a stored pricing-model tag to its typed variant.
func modifierFor(row product.AddOn) Modifier {
	switch row.PricingModel {
	case "flat":
		return FlatFee{Fee: row.Fee}
	case "per_unit":
		return PerUnit{Fee: row.Fee}
	case "percentage":
		return Percentage{Rate: row.Rate}
	default:
		return nil
	}
}

// volumeBreaks derives the standard tier discounts: 5% off from 250 units,
// 12% off from 1000.
func volumeBreaks(unitBase float64) []QuantityBreak {
	return []QuantityBreak{
		{MinQuantity: 250, UnitPrice: unitBase * 0.95},
		{MinQuantity: 1000, UnitPrice: unitBase * 0.88},
	}
}
