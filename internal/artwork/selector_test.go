package artwork

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pdfInput(name string, size int64) FileInput {
	return FileInput{
		Filename:     name,
		DeclaredType: "application/pdf",
		Size:         size,
		Content:      pdfBytes,
	}
}

func pngInput(name string, size int64) FileInput {
	return FileInput{
		Filename:     name,
		DeclaredType: "image/png",
		Size:         size,
		Content:      pngBytes,
	}
}

func TestValidateBatch(t *testing.T) {
	ctx := context.Background()

	t.Run("should accept a mixed selection under the total limit", func(t *testing.T) {
		cfg := flyerConfig()
		cfg.MaxTotalSize = 4 * mb

		files := []FileInput{
			pdfInput("front.pdf", 2*mb),
			pngInput("back.png", 1*mb),
		}

		results := ValidateBatch(ctx, files, cfg)

		require.Len(t, results, 2)
		assert.True(t, results[0].IsValid)
		assert.True(t, results[1].IsValid)
	})

	t.Run("should reject the file that pushes the running total over", func(t *testing.T) {
		cfg := flyerConfig()
		cfg.MaxTotalSize = 4 * mb

		files := []FileInput{
			pdfInput("front.pdf", 2*mb),
			pngInput("back.png", 3*mb),
		}

		results := ValidateBatch(ctx, files, cfg)

		require.Len(t, results, 2)
		assert.True(t, results[0].IsValid)
		assert.False(t, results[1].IsValid)
		require.Contains(t, errorCodes(results[1]), CodeTotalSizeExceeded)
		for _, e := range results[1].Errors {
			if e.Code == CodeTotalSizeExceeded {
				assert.Equal(t, "5MB exceeds 4MB", e.Message)
			}
		}
	})

	t.Run("should not count rejected files against the running total", func(t *testing.T) {
		cfg := flyerConfig()
		cfg.MaxFileSize = 4 * mb
		cfg.MaxTotalSize = 6 * mb

		files := []FileInput{
			pdfInput("front.pdf", 3*mb),
			pdfInput("oversized.pdf", 5*mb), // fails per-file limit on its own
			pngInput("back.png", 2*mb),      // still fits: 3MB + 2MB <= 6MB
		}

		results := ValidateBatch(ctx, files, cfg)

		require.Len(t, results, 3)
		assert.True(t, results[0].IsValid)
		assert.False(t, results[1].IsValid)
		assert.Contains(t, errorCodes(results[1]), CodeFileTooLarge)
		assert.True(t, results[2].IsValid)
	})

	t.Run("should follow selection order not file size order", func(t *testing.T) {
		cfg := flyerConfig()
		cfg.MaxTotalSize = 4 * mb

		files := []FileInput{
			pdfInput("first-picked.pdf", 3*mb),
			pngInput("second-picked.png", 2*mb),
		}

		results := ValidateBatch(ctx, files, cfg)

		// The earlier pick wins the budget even though it is larger.
		assert.True(t, results[0].IsValid)
		assert.False(t, results[1].IsValid)
	})

	t.Run("should flag files beyond the max file count", func(t *testing.T) {
		cfg := flyerConfig()
		cfg.MaxFiles = 2

		files := []FileInput{
			pdfInput("a.pdf", 1*mb),
			pdfInput("b.pdf", 1*mb),
			pdfInput("c.pdf", 1*mb),
		}

		results := ValidateBatch(ctx, files, cfg)

		require.Len(t, results, 3)
		assert.True(t, results[0].IsValid)
		assert.True(t, results[1].IsValid)
		assert.False(t, results[2].IsValid)
		assert.Contains(t, errorCodes(results[2]), CodeTooManyFiles)
	})

	t.Run("should return empty results for empty selection", func(t *testing.T) {
		results := ValidateBatch(ctx, nil, flyerConfig())

		assert.Empty(t, results)
	})

	t.Run("should be deterministic across repeated runs", func(t *testing.T) {
		cfg := flyerConfig()
		cfg.MaxTotalSize = 5 * mb

		files := []FileInput{
			pdfInput("a.pdf", 2*mb),
			pngInput("b.png", 2*mb),
			pngInput("c.png", 2*mb),
		}

		first := ValidateBatch(ctx, files, cfg)
		for i := 0; i < 20; i++ {
			again := ValidateBatch(ctx, files, cfg)
			assert.Equal(t, first, again)
		}
	})
}
