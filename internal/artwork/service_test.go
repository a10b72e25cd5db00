package artwork

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockRepository is a mock implementation of the artwork repository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) SaveFile(ctx context.Context, file *ArtworkFile, content []byte) (*ArtworkFile, error) {
	args := m.Called(ctx, file, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ArtworkFile), args.Error(1)
}

func (m *MockRepository) GetFile(ctx context.Context, fileID string) (*ArtworkFile, error) {
	args := m.Called(ctx, fileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ArtworkFile), args.Error(1)
}

func (m *MockRepository) ListByOrderItem(ctx context.Context, orderItemID string) ([]ArtworkFile, error) {
	args := m.Called(ctx, orderItemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ArtworkFile), args.Error(1)
}

func (m *MockRepository) UpdateStatus(ctx context.Context, fileID string, status ValidationStatus, notes string) (*ArtworkFile, error) {
	args := m.Called(ctx, fileID, status, notes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ArtworkFile), args.Error(1)
}

func (m *MockRepository) DownloadContent(ctx context.Context, fileID string) ([]byte, error) {
	args := m.Called(ctx, fileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockRepository) GetUploadConfig(ctx context.Context, productType string) (*UploadConfig, error) {
	args := m.Called(ctx, productType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*UploadConfig), args.Error(1)
}

func TestService_ValidateFiles(t *testing.T) {
	ctx := context.Background()

	t.Run("should validate against the product's config", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		cfg := flyerConfig()
		mockRepo.On("GetUploadConfig", ctx, "flyer").Return(&cfg, nil)

		results, err := svc.ValidateFiles(ctx, "flyer", []FileInput{
			pdfInput("front.pdf", 2*mb),
			pdfInput("huge.pdf", 9*mb),
		})

		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.True(t, results[0].IsValid)
		assert.False(t, results[1].IsValid)
	})

	t.Run("should fail when the product type has no config", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		mockRepo.On("GetUploadConfig", ctx, "hologram").Return(nil, ErrConfigNotFound)

		_, err := svc.ValidateFiles(ctx, "hologram", nil)

		assert.ErrorIs(t, err, ErrConfigNotFound)
	})
}

func TestService_AttachFiles(t *testing.T) {
	ctx := context.Background()

	t.Run("should store passing files and skip rejected ones", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		cfg := flyerConfig()
		mockRepo.On("GetUploadConfig", ctx, "flyer").Return(&cfg, nil)

		mockRepo.On("SaveFile", ctx, mock.MatchedBy(func(f *ArtworkFile) bool {
			return f.OriginalFilename == "front.pdf" && f.OrderItemID == "item-1"
		}), mock.Anything).Return(&ArtworkFile{ID: "file-1", ValidationStatus: StatusPending}, nil)
		mockRepo.On("UpdateStatus", ctx, "file-1", StatusValid, "").
			Return(&ArtworkFile{ID: "file-1", ValidationStatus: StatusValid}, nil)

		stored, results, err := svc.AttachFiles(ctx, "item-1", "flyer", []FileInput{
			pdfInput("front.pdf", 2*mb),
			pdfInput("huge.pdf", 9*mb),
		})

		require.NoError(t, err)
		require.Len(t, results, 2)
		require.Len(t, stored, 1)
		assert.Equal(t, StatusValid, stored[0].ValidationStatus)
		mockRepo.AssertNotCalled(t, "SaveFile", ctx, mock.MatchedBy(func(f *ArtworkFile) bool {
			return f.OriginalFilename == "huge.pdf"
		}), mock.Anything)
	})

	t.Run("should mark files with warnings as needs_review", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		cfg := flyerConfig()
		mockRepo.On("GetUploadConfig", ctx, "flyer").Return(&cfg, nil)

		// Declared png, content is pdf, pdf is allowed: warning, not error.
		mislabeled := FileInput{
			Filename:     "scan.png",
			DeclaredType: "image/png",
			Size:         1 * mb,
			Content:      pdfBytes,
		}

		mockRepo.On("SaveFile", ctx, mock.Anything, mock.Anything).
			Return(&ArtworkFile{ID: "file-9", ValidationStatus: StatusPending}, nil)
		mockRepo.On("UpdateStatus", ctx, "file-9", StatusNeedsReview, mock.MatchedBy(func(notes string) bool {
			return notes != ""
		})).Return(&ArtworkFile{ID: "file-9", ValidationStatus: StatusNeedsReview}, nil)

		stored, _, err := svc.AttachFiles(ctx, "item-1", "flyer", []FileInput{mislabeled})

		require.NoError(t, err)
		require.Len(t, stored, 1)
		assert.Equal(t, StatusNeedsReview, stored[0].ValidationStatus)
		mockRepo.AssertExpectations(t)
	})

	t.Run("should stop and surface persistence failure", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		cfg := flyerConfig()
		mockRepo.On("GetUploadConfig", ctx, "flyer").Return(&cfg, nil)
		mockRepo.On("SaveFile", ctx, mock.Anything, mock.Anything).
			Return(nil, assert.AnError)

		_, results, err := svc.AttachFiles(ctx, "item-1", "flyer", []FileInput{
			pdfInput("front.pdf", 2*mb),
		})

		assert.Error(t, err)
		assert.Len(t, results, 1)
	})
}
