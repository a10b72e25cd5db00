package gateway

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"printshop-be/internal/logger"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

// Rows live in document tables: (id uuid primary key, data jsonb,
// created_at, updated_at). Blobs live in blobs(bucket, key, content bytea).
// RPCs map to SQL functions named rpc_<name>(jsonb) returning jsonb.

var tableNameRe = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

type postgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) Store {
	return &postgresStore{db: db}
}

func (s *postgresStore) Query(ctx context.Context, table string, filters Filters) ([]Row, error) {
	if !tableNameRe.MatchString(table) {
		return nil, ErrInvalidTable
	}

	query := fmt.Sprintf(`SELECT id, data FROM %s`, pq.QuoteIdentifier(table))

	clauses := make([]string, 0, len(filters))
	args := make([]any, 0, len(filters))
	for key, value := range filters {
		args = append(args, fmt.Sprint(value))
		if key == "id" {
			clauses = append(clauses, fmt.Sprintf(`id = $%d`, len(args)))
			continue
		}
		clauses = append(clauses, fmt.Sprintf(`data->>%s = $%d`, pq.QuoteLiteral(key), len(args)))
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY created_at"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.FromCtx(ctx).Error("gateway query failed",
			zap.String("table", table),
			zap.Error(err),
		)
		return nil, err
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		var id string
		var raw []byte
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, err
		}
		row, err := decodeRow(id, raw)
		if err != nil {
			return nil, err
		}
		out = append(out, row)
	}

	return out, rows.Err()
}

func (s *postgresStore) Insert(ctx context.Context, table string, row Row) (Row, error) {
	if !tableNameRe.MatchString(table) {
		return nil, ErrInvalidTable
	}

	id, _ := row["id"].(string)
	if id == "" {
		id = uuid.New().String()
	}

	data, err := json.Marshal(stripID(row))
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(
		`INSERT INTO %s (id, data, created_at, updated_at) VALUES ($1, $2, NOW(), NOW()) RETURNING id, data`,
		pq.QuoteIdentifier(table),
	)

	var outID string
	var raw []byte
	if err := s.db.QueryRowContext(ctx, query, id, data).Scan(&outID, &raw); err != nil {
		logger.FromCtx(ctx).Error("gateway insert failed",
			zap.String("table", table),
			zap.Error(err),
		)
		return nil, err
	}

	return decodeRow(outID, raw)
}

func (s *postgresStore) Update(ctx context.Context, table string, id string, patch Row) (Row, error) {
	if !tableNameRe.MatchString(table) {
		return nil, ErrInvalidTable
	}

	data, err := json.Marshal(stripID(patch))
	if err != nil {
		return nil, err
	}

	// jsonb || merges the patch over the stored document.
	query := fmt.Sprintf(
		`UPDATE %s SET data = data || $2, updated_at = NOW() WHERE id = $1 RETURNING id, data`,
		pq.QuoteIdentifier(table),
	)

	var outID string
	var raw []byte
	err = s.db.QueryRowContext(ctx, query, id, data).Scan(&outID, &raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRowNotFound
	}
	if err != nil {
		logger.FromCtx(ctx).Error("gateway update failed",
			zap.String("table", table),
			zap.String("id", id),
			zap.Error(err),
		)
		return nil, err
	}

	return decodeRow(outID, raw)
}

func (s *postgresStore) Delete(ctx context.Context, table string, id string) error {
	if !tableNameRe.MatchString(table) {
		return ErrInvalidTable
	}

	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, pq.QuoteIdentifier(table))

	res, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrRowNotFound
	}

	return nil
}

func (s *postgresStore) RPC(ctx context.Context, name string, args map[string]any) (json.RawMessage, error) {
	if !tableNameRe.MatchString(name) {
		return nil, fmt.Errorf("invalid rpc name %q", name)
	}

	payload, err := json.Marshal(args)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`SELECT rpc_%s($1::jsonb)`, name)

	var raw []byte
	if err := s.db.QueryRowContext(ctx, query, payload).Scan(&raw); err != nil {
		logger.FromCtx(ctx).Error("gateway rpc failed",
			zap.String("rpc", name),
			zap.Error(err),
		)
		return nil, err
	}

	return json.RawMessage(raw), nil
}

func (s *postgresStore) Download(ctx context.Context, bucket, key string) ([]byte, error) {
	var content []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT content FROM blobs WHERE bucket = $1 AND key = $2`,
		bucket, key,
	).Scan(&content)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBlobNotFound
	}
	if err != nil {
		return nil, err
	}
	return content, nil
}

func (s *postgresStore) Upload(ctx context.Context, bucket, key string, blob []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO blobs (bucket, key, content, created_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (bucket, key) DO UPDATE SET content = EXCLUDED.content
	`, bucket, key, blob)
	return err
}

func decodeRow(id string, raw []byte) (Row, error) {
	row := Row{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &row); err != nil {
			return nil, err
		}
	}
	row["id"] = id
	return row, nil
}

// stripID keeps the id out of the jsonb document; it lives in its own column.
func stripID(row Row) Row {
	out := make(Row, len(row))
	for k, v := range row {
		if k == "id" {
			continue
		}
		out[k] = v
	}
	return out
}
