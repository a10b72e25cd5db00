package product

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"printshop-be/internal/gateway"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockStore is a mock implementation of the gateway store
type MockStore struct {
	mock.Mock
}

func (m *MockStore) Query(ctx context.Context, table string, filters gateway.Filters) ([]gateway.Row, error) {
	args := m.Called(ctx, table, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]gateway.Row), args.Error(1)
}

func (m *MockStore) Insert(ctx context.Context, table string, row gateway.Row) (gateway.Row, error) {
	args := m.Called(ctx, table, row)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(gateway.Row), args.Error(1)
}

func (m *MockStore) Update(ctx context.Context, table string, id string, patch gateway.Row) (gateway.Row, error) {
	args := m.Called(ctx, table, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(gateway.Row), args.Error(1)
}

func (m *MockStore) Delete(ctx context.Context, table string, id string) error {
	args := m.Called(ctx, table, id)
	return args.Error(0)
}

func (m *MockStore) RPC(ctx context.Context, name string, rpcArgs map[string]any) (json.RawMessage, error) {
	args := m.Called(ctx, name, rpcArgs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(json.RawMessage), args.Error(1)
}

func (m *MockStore) Download(ctx context.Context, bucket, key string) ([]byte, error) {
	args := m.Called(ctx, bucket, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockStore) Upload(ctx context.Context, bucket, key string, blob []byte) error {
	args := m.Called(ctx, bucket, key, blob)
	return args.Error(0)
}

func TestRepository_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("should decode the product row", func(t *testing.T) {
		mockStore := new(MockStore)
		repo := NewRepository(mockStore)

		mockStore.On("Query", ctx, "products", gateway.Filters{"id": "prod-1"}).
			Return([]gateway.Row{{
				"id":         "prod-1",
				"name":       "Standard Business Cards",
				"type":       "business_cards",
				"base_price": 19.99,
				"is_active":  true,
			}}, nil)

		p, err := repo.GetByID(ctx, "prod-1")

		require.NoError(t, err)
		assert.Equal(t, ProductType("business_cards"), p.Type)
		assert.InDelta(t, 19.99, p.BasePrice, 1e-6)
	})

	t.Run("should return ErrNotFound for unknown products", func(t *testing.T) {
		mockStore := new(MockStore)
		repo := NewRepository(mockStore)

		mockStore.On("Query", ctx, "products", gateway.Filters{"id": "ghost"}).
			Return([]gateway.Row{}, nil)

		_, err := repo.GetByID(ctx, "ghost")

		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("should propagate store failures", func(t *testing.T) {
		mockStore := new(MockStore)
		repo := NewRepository(mockStore)

		mockStore.On("Query", ctx, "products", mock.Anything).
			Return(nil, errors.New("connection reset"))

		_, err := repo.GetByID(ctx, "prod-1")

		assert.ErrorContains(t, err, "connection reset")
	})
}

func TestRepository_GetAddOns(t *testing.T) {
	ctx := context.Background()

	t.Run("should fetch every requested add-on", func(t *testing.T) {
		mockStore := new(MockStore)
		repo := NewRepository(mockStore)

		mockStore.On("Query", ctx, "add_ons", gateway.Filters{"id": "ao-1"}).
			Return([]gateway.Row{{"id": "ao-1", "name": "Rounded Corners", "pricing_model": "flat", "fee": 5.0}}, nil)
		mockStore.On("Query", ctx, "add_ons", gateway.Filters{"id": "ao-2"}).
			Return([]gateway.Row{{"id": "ao-2", "name": "UV Coating", "pricing_model": "percentage", "rate": 0.1}}, nil)

		addOns, err := repo.GetAddOns(ctx, []string{"ao-1", "ao-2"})

		require.NoError(t, err)
		require.Len(t, addOns, 2)
		assert.Equal(t, "flat", addOns[0].PricingModel)
		assert.InDelta(t, 0.1, addOns[1].Rate, 1e-6)
	})

	t.Run("should fail fast on a missing add-on", func(t *testing.T) {
		mockStore := new(MockStore)
		repo := NewRepository(mockStore)

		mockStore.On("Query", ctx, "add_ons", gateway.Filters{"id": "ghost"}).
			Return([]gateway.Row{}, nil)

		_, err := repo.GetAddOns(ctx, []string{"ghost"})

		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestRepository_CatalogLookups(t *testing.T) {
	ctx := context.Background()

	t.Run("should decode paper stock, print size and turnaround", func(t *testing.T) {
		mockStore := new(MockStore)
		repo := NewRepository(mockStore)

		mockStore.On("Query", ctx, "paper_stocks", gateway.Filters{"id": "ps-1"}).
			Return([]gateway.Row{{"id": "ps-1", "name": "14pt Gloss", "price_per_unit": 0.02}}, nil)
		mockStore.On("Query", ctx, "print_sizes", gateway.Filters{"id": "sz-1"}).
			Return([]gateway.Row{{"id": "sz-1", "name": `3.5" x 2"`, "price_per_unit": 0.01}}, nil)
		mockStore.On("Query", ctx, "turnarounds", gateway.Filters{"id": "ta-1"}).
			Return([]gateway.Row{{"id": "ta-1", "name": "Rush", "business_days": float64(2), "multiplier": 1.5}}, nil)

		ps, err := repo.GetPaperStock(ctx, "ps-1")
		require.NoError(t, err)
		assert.InDelta(t, 0.02, ps.PricePerUnit, 1e-6)

		sz, err := repo.GetPrintSize(ctx, "sz-1")
		require.NoError(t, err)
		assert.InDelta(t, 0.01, sz.PricePerUnit, 1e-6)

		ta, err := repo.GetTurnaround(ctx, "ta-1")
		require.NoError(t, err)
		assert.Equal(t, 2, ta.BusinessDays)
		assert.InDelta(t, 1.5, ta.Multiplier, 1e-6)
	})
}
