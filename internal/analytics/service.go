package analytics

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"printshop-be/internal/gateway"
	"printshop-be/internal/logger"

	"go.uber.org/zap"
)

// RevenueSummary is the shape the reporting procedures return. All numbers
// are computed server-side; this package never aggregates rows itself.
type RevenueSummary struct {
	PeriodStart  time.Time `json:"period_start"`
	PeriodEnd    time.Time `json:"period_end"`
	GrossRevenue float64   `json:"gross_revenue"`
	OrderCount   int       `json:"order_count"`
	AvgOrderSize float64   `json:"avg_order_size"`
}

type ProductTypeCount struct {
	ProductType string `json:"product_type"`
	Orders      int    `json:"orders"`
	Units       int    `json:"units"`
}

type Service interface {
	Revenue(ctx context.Context, from, to time.Time) (*RevenueSummary, error)
	OrdersByProductType(ctx context.Context, from, to time.Time) ([]ProductTypeCount, error)
}

type service struct {
	store gateway.Store
}

func NewService(store gateway.Store) Service {
	return &service{store: store}
}

func (s *service) Revenue(ctx context.Context, from, to time.Time) (*RevenueSummary, error) {
	raw, err := s.store.RPC(ctx, "revenue_summary", map[string]any{
		"from": from.Format(time.RFC3339),
		"to":   to.Format(time.RFC3339),
	})
	if err != nil {
		logger.FromCtx(ctx).Error("revenue summary rpc failed",
			zap.String("service", "analytics"),
			zap.Error(err))
		return nil, fmt.Errorf("revenue summary: %w", err)
	}

	var summary RevenueSummary
	if err := json.Unmarshal(raw, &summary); err != nil {
		return nil, fmt.Errorf("decode revenue summary: %w", err)
	}
	return &summary, nil
}

func (s *service) OrdersByProductType(ctx context.Context, from, to time.Time) ([]ProductTypeCount, error) {
	raw, err := s.store.RPC(ctx, "orders_by_product_type", map[string]any{
		"from": from.Format(time.RFC3339),
		"to":   to.Format(time.RFC3339),
	})
	if err != nil {
		return nil, fmt.Errorf("orders by product type: %w", err)
	}

	var counts []ProductTypeCount
	if err := json.Unmarshal(raw, &counts); err != nil {
		return nil, fmt.Errorf("decode product type counts: %w", err)
	}
	return counts, nil
}
