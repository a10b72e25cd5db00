package shipping

import (
	"context"
	"encoding/json"

	"printshop-be/internal/address"
	"printshop-be/internal/cart"
	"printshop-be/internal/gateway"
	"printshop-be/internal/logger"

	"go.uber.org/zap"
)

// RateProvider returns the shipping methods available for a destination and
// cart contents. An empty result means no shipping serves that destination;
// it is not an error.
type RateProvider interface {
	Rates(ctx context.Context, dest address.Address, items []*cart.CartItem) ([]Method, error)
}

type rpcRateProvider struct {
	store gateway.Store
}

// NewRPCRateProvider rates through the gateway's remote calculate_shipping
// procedure; the carrier integrations live behind it.
func NewRPCRateProvider(store gateway.Store) RateProvider {
	return &rpcRateProvider{store: store}
}

func (p *rpcRateProvider) Rates(ctx context.Context, dest address.Address, items []*cart.CartItem) ([]Method, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("service", "Shipping"),
		zap.String("state", dest.State),
		zap.String("postal", dest.Postal),
		zap.Int("item_count", len(items)),
	)

	lines := make([]map[string]any, 0, len(items))
	for _, item := range items {
		lines = append(lines, map[string]any{
			"product_id": item.ProductID,
			"quantity":   item.Quantity,
		})
	}

	raw, err := p.store.RPC(ctx, "calculate_shipping", map[string]any{
		"address": dest,
		"items":   lines,
	})
	if err != nil {
		log.Error("shipping rate call failed", zap.Error(err))
		return nil, err
	}

	var methods []Method
	if err := json.Unmarshal(raw, &methods); err != nil {
		return nil, err
	}

	log.Info("shipping rates resolved", zap.Int("method_count", len(methods)))
	return methods, nil
}
