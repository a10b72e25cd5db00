package cart

import (
	"context"
	"encoding/json"

	"printshop-be/internal/gateway"
)

const cartTable = "cart_items"

type Repository interface {
	GetItems(ctx context.Context, customerID string) ([]*CartItem, error)
	GetItem(ctx context.Context, customerID, itemID string) (*CartItem, error)
	CreateItem(ctx context.Context, item *CartItem) (*CartItem, error)
	UpdateItem(ctx context.Context, itemID string, patch gateway.Row) (*CartItem, error)
	RemoveItem(ctx context.Context, itemID string) error
	Clear(ctx context.Context, customerID string) error
}

type repository struct {
	store gateway.Store
}

func NewRepository(store gateway.Store) Repository {
	return &repository{store: store}
}

func (r *repository) GetItems(ctx context.Context, customerID string) ([]*CartItem, error) {
	rows, err := r.store.Query(ctx, cartTable, gateway.Filters{"customer_id": customerID})
	if err != nil {
		return nil, err
	}

	items := make([]*CartItem, 0, len(rows))
	for _, row := range rows {
		item, err := rowToItem(row)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func (r *repository) GetItem(ctx context.Context, customerID, itemID string) (*CartItem, error) {
	rows, err := r.store.Query(ctx, cartTable, gateway.Filters{
		"id":          itemID,
		"customer_id": customerID,
	})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrCartItemNotFound
	}
	return rowToItem(rows[0])
}

func (r *repository) CreateItem(ctx context.Context, item *CartItem) (*CartItem, error) {
	row, err := itemToRow(item)
	if err != nil {
		return nil, err
	}

	created, err := r.store.Insert(ctx, cartTable, row)
	if err != nil {
		return nil, err
	}
	return rowToItem(created)
}

func (r *repository) UpdateItem(ctx context.Context, itemID string, patch gateway.Row) (*CartItem, error) {
	updated, err := r.store.Update(ctx, cartTable, itemID, patch)
	if err != nil {
		return nil, err
	}
	return rowToItem(updated)
}

func (r *repository) RemoveItem(ctx context.Context, itemID string) error {
	return r.store.Delete(ctx, cartTable, itemID)
}

func (r *repository) Clear(ctx context.Context, customerID string) error {
	rows, err := r.store.Query(ctx, cartTable, gateway.Filters{"customer_id": customerID})
	if err != nil {
		return err
	}
	for _, row := range rows {
		id, _ := row["id"].(string)
		if err := r.store.Delete(ctx, cartTable, id); err != nil {
			return err
		}
	}
	return nil
}

func rowToItem(row gateway.Row) (*CartItem, error) {
	raw, err := json.Marshal(row)
	if err != nil {
		return nil, err
	}
	var item CartItem
	if err := json.Unmarshal(raw, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func itemToRow(item *CartItem) (gateway.Row, error) {
	raw, err := json.Marshal(item)
	if err != nil {
		return nil, err
	}
	row := gateway.Row{}
	if err := json.Unmarshal(raw, &row); err != nil {
		return nil, err
	}
	return row, nil
}
