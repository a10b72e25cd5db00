package artwork

import (
	"context"
	"strings"

	"printshop-be/internal/logger"

	"go.uber.org/zap"
)

// Service is the upload-time entry point: it resolves the product's limits,
// judges the whole selection, and stores only the files that passed.
type Service interface {
	ValidateFiles(ctx context.Context, productType string, files []FileInput) ([]FileValidationResult, error)
	AttachFiles(ctx context.Context, orderItemID, productType string, files []FileInput) ([]ArtworkFile, []FileValidationResult, error)
	FilesForOrderItem(ctx context.Context, orderItemID string) ([]ArtworkFile, error)
	ReviewFile(ctx context.Context, fileID string, status ValidationStatus, notes string) (*ArtworkFile, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// ValidateFiles runs the pipeline without persisting anything. The checkout
// client calls this as the customer picks files.
func (s *service) ValidateFiles(ctx context.Context, productType string, files []FileInput) ([]FileValidationResult, error) {
	cfg, err := s.repo.GetUploadConfig(ctx, productType)
	if err != nil {
		logger.FromCtx(ctx).Error("load upload config failed",
			zap.String("service", "artwork"),
			zap.String("product_type", productType),
			zap.Error(err))
		return nil, err
	}
	return ValidateBatch(ctx, files, *cfg), nil
}

// AttachFiles validates the selection and persists every passing file against
// the order item. Files with warnings are stored as needs_review so a human
// can look before production; clean files go straight to valid. Rejected
// files are never stored.
func (s *service) AttachFiles(ctx context.Context, orderItemID, productType string, files []FileInput) ([]ArtworkFile, []FileValidationResult, error) {
	cfg, err := s.repo.GetUploadConfig(ctx, productType)
	if err != nil {
		return nil, nil, err
	}

	results := ValidateBatch(ctx, files, *cfg)

	var stored []ArtworkFile
	for i, result := range results {
		if !result.IsValid {
			continue
		}
		input := files[i]

		record := &ArtworkFile{
			OrderItemID:      orderItemID,
			OriginalFilename: input.Filename,
			MimeType:         input.DeclaredType,
			FileSize:         input.Size,
			Dimensions:       input.Dimensions,
			ColorSpace:       input.ColorSpace,
		}
		saved, err := s.repo.SaveFile(ctx, record, input.Content)
		if err != nil {
			logger.FromCtx(ctx).Error("persist artwork file failed",
				zap.String("service", "artwork"),
				zap.String("filename", input.Filename),
				zap.Error(err))
			return stored, results, err
		}

		status, notes := StatusValid, ""
		if len(result.Warnings) > 0 {
			status = StatusNeedsReview
			notes = strings.Join(result.Warnings, "; ")
		}
		saved, err = s.repo.UpdateStatus(ctx, saved.ID, status, notes)
		if err != nil {
			return stored, results, err
		}
		stored = append(stored, *saved)
	}

	logger.FromCtx(ctx).Info("artwork selection processed",
		zap.String("service", "artwork"),
		zap.String("order_item_id", orderItemID),
		zap.Int("submitted", len(files)),
		zap.Int("stored", len(stored)))
	return stored, results, nil
}

func (s *service) FilesForOrderItem(ctx context.Context, orderItemID string) ([]ArtworkFile, error) {
	return s.repo.ListByOrderItem(ctx, orderItemID)
}

// ReviewFile records a reviewer's verdict on a needs_review file.
func (s *service) ReviewFile(ctx context.Context, fileID string, status ValidationStatus, notes string) (*ArtworkFile, error) {
	return s.repo.UpdateStatus(ctx, fileID, status, notes)
}
