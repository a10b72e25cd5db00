package checkout

import (
	"context"
	"encoding/json"

	"printshop-be/internal/gateway"
)

const sessionTable = "checkout_sessions"

type Repository interface {
	Create(ctx context.Context, session *CheckoutSession) (*CheckoutSession, error)
	Get(ctx context.Context, sessionID string) (*CheckoutSession, error)
	Update(ctx context.Context, sessionID string, patch gateway.Row) (*CheckoutSession, error)
	Delete(ctx context.Context, sessionID string) error
}

type repository struct {
	store gateway.Store
}

func NewRepository(store gateway.Store) Repository {
	return &repository{store: store}
}

func (r *repository) Create(ctx context.Context, session *CheckoutSession) (*CheckoutSession, error) {
	row, err := sessionToRow(session)
	if err != nil {
		return nil, err
	}

	created, err := r.store.Insert(ctx, sessionTable, row)
	if err != nil {
		return nil, err
	}
	return rowToSession(created)
}

func (r *repository) Get(ctx context.Context, sessionID string) (*CheckoutSession, error) {
	rows, err := r.store.Query(ctx, sessionTable, gateway.Filters{"id": sessionID})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrSessionNotFound
	}
	return rowToSession(rows[0])
}

func (r *repository) Update(ctx context.Context, sessionID string, patch gateway.Row) (*CheckoutSession, error) {
	updated, err := r.store.Update(ctx, sessionTable, sessionID, patch)
	if err != nil {
		return nil, err
	}
	return rowToSession(updated)
}

func (r *repository) Delete(ctx context.Context, sessionID string) error {
	return r.store.Delete(ctx, sessionTable, sessionID)
}

func rowToSession(row gateway.Row) (*CheckoutSession, error) {
	raw, err := json.Marshal(row)
	if err != nil {
		return nil, err
	}
	var session CheckoutSession
	if err := json.Unmarshal(raw, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func sessionToRow(session *CheckoutSession) (gateway.Row, error) {
	raw, err := json.Marshal(session)
	if err != nil {
		return nil, err
	}
	row := gateway.Row{}
	if err := json.Unmarshal(raw, &row); err != nil {
		return nil, err
	}
	return row, nil
}
