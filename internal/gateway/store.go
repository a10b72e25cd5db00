package gateway

import (
	"context"
	"encoding/json"
	"errors"
)

var (
	ErrRowNotFound  = errors.New("row not found")
	ErrBlobNotFound = errors.New("blob not found")
	ErrInvalidTable = errors.New("invalid table name")
)

// Row is one record as the remote store returns it.
type Row map[string]any

// Filters are equality constraints applied to a query.
type Filters map[string]any

// Store is the remote data gateway boundary: tabular rows, remote procedure
// invocation for server-side aggregation, and blob storage. The rest of the
// codebase never assumes a particular wire protocol behind it.
type Store interface {
	Query(ctx context.Context, table string, filters Filters) ([]Row, error)
	Insert(ctx context.Context, table string, row Row) (Row, error)
	Update(ctx context.Context, table string, id string, patch Row) (Row, error)
	Delete(ctx context.Context, table string, id string) error

	RPC(ctx context.Context, name string, args map[string]any) (json.RawMessage, error)

	Download(ctx context.Context, bucket, key string) ([]byte, error)
	Upload(ctx context.Context, bucket, key string, blob []byte) error
}
