package artwork

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"printshop-be/internal/gateway"

	"github.com/google/uuid"
)

const (
	fileTable   = "artwork_files"
	configTable = "upload_configs"
	blobBucket  = "artwork"
)

var (
	ErrFileNotFound      = errors.New("artwork file not found")
	ErrConfigNotFound    = errors.New("upload config not found")
	ErrInvalidTransition = errors.New("invalid validation status transition")
)

type Repository interface {
	SaveFile(ctx context.Context, file *ArtworkFile, content []byte) (*ArtworkFile, error)
	GetFile(ctx context.Context, fileID string) (*ArtworkFile, error)
	ListByOrderItem(ctx context.Context, orderItemID string) ([]ArtworkFile, error)
	UpdateStatus(ctx context.Context, fileID string, status ValidationStatus, notes string) (*ArtworkFile, error)
	DownloadContent(ctx context.Context, fileID string) ([]byte, error)
	GetUploadConfig(ctx context.Context, productType string) (*UploadConfig, error)
}

type repository struct {
	store gateway.Store
}

func NewRepository(store gateway.Store) Repository {
	return &repository{store: store}
}

// SaveFile persists the metadata row and uploads the content blob under the
// row's id. New files always start at pending.
func (r *repository) SaveFile(ctx context.Context, file *ArtworkFile, content []byte) (*ArtworkFile, error) {
	if file.ID == "" {
		file.ID = uuid.NewString()
	}
	file.ValidationStatus = StatusPending
	file.CreatedAt = time.Now().UTC()

	row, err := fileToRow(file)
	if err != nil {
		return nil, err
	}

	created, err := r.store.Insert(ctx, fileTable, row)
	if err != nil {
		return nil, err
	}
	saved, err := rowToFile(created)
	if err != nil {
		return nil, err
	}

	if err := r.store.Upload(ctx, blobBucket, saved.ID, content); err != nil {
		return nil, fmt.Errorf("upload artwork content: %w", err)
	}
	return saved, nil
}

func (r *repository) GetFile(ctx context.Context, fileID string) (*ArtworkFile, error) {
	rows, err := r.store.Query(ctx, fileTable, gateway.Filters{"id": fileID})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrFileNotFound
	}
	return rowToFile(rows[0])
}

func (r *repository) ListByOrderItem(ctx context.Context, orderItemID string) ([]ArtworkFile, error) {
	rows, err := r.store.Query(ctx, fileTable, gateway.Filters{"order_item_id": orderItemID})
	if err != nil {
		return nil, err
	}
	files := make([]ArtworkFile, 0, len(rows))
	for _, row := range rows {
		f, err := rowToFile(row)
		if err != nil {
			return nil, err
		}
		files = append(files, *f)
	}
	return files, nil
}

// UpdateStatus moves a file through the validation lifecycle. Pending is the
// entry state only; once a file has been judged it never goes back.
func (r *repository) UpdateStatus(ctx context.Context, fileID string, status ValidationStatus, notes string) (*ArtworkFile, error) {
	current, err := r.GetFile(ctx, fileID)
	if err != nil {
		return nil, err
	}
	if status == StatusPending && current.ValidationStatus != StatusPending {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current.ValidationStatus, status)
	}

	patch := gateway.Row{
		"validation_status": string(status),
		"validation_notes":  notes,
	}
	updated, err := r.store.Update(ctx, fileTable, fileID, patch)
	if err != nil {
		return nil, err
	}
	return rowToFile(updated)
}

func (r *repository) DownloadContent(ctx context.Context, fileID string) ([]byte, error) {
	return r.store.Download(ctx, blobBucket, fileID)
}

func (r *repository) GetUploadConfig(ctx context.Context, productType string) (*UploadConfig, error) {
	rows, err := r.store.Query(ctx, configTable, gateway.Filters{"product_type": productType})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrConfigNotFound
	}

	raw, err := json.Marshal(rows[0])
	if err != nil {
		return nil, err
	}
	var cfg UploadConfig
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func rowToFile(row gateway.Row) (*ArtworkFile, error) {
	raw, err := json.Marshal(row)
	if err != nil {
		return nil, err
	}
	var file ArtworkFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, err
	}
	return &file, nil
}

func fileToRow(file *ArtworkFile) (gateway.Row, error) {
	raw, err := json.Marshal(file)
	if err != nil {
		return nil, err
	}
	row := gateway.Row{}
	if err := json.Unmarshal(raw, &row); err != nil {
		return nil, err
	}
	return row, nil
}
