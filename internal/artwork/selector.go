package artwork

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// maxConcurrentValidations bounds signature sniffing, which reads file
// content and is the expensive part of the pipeline.
const maxConcurrentValidations = 4

// ValidateBatch validates a selection of files against the product config.
// Results line up with the input order. Per-file stages run concurrently;
// the aggregate-size stage then runs sequentially in selection order, so the
// running total only counts files that were individually acceptable and the
// verdict never depends on goroutine scheduling.
func ValidateBatch(ctx context.Context, files []FileInput, cfg UploadConfig) []FileValidationResult {
	results := make([]FileValidationResult, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentValidations)

	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			r := FileValidationResult{}
			validateSecurity(file, cfg, &r)
			validateType(file, cfg, &r)
			validateSize(file, cfg, &r)
			appendSuggestions(file, cfg, &r)
			results[i] = r
			return nil
		})
	}
	// Validation stages never return errors themselves, only a cancelled
	// context can surface here.
	if err := g.Wait(); err != nil {
		for i := range results {
			results[i].IsValid = false
		}
		return results
	}

	var runningTotal int64
	for i, file := range files {
		r := &results[i]

		if cfg.MaxFiles > 0 && i >= cfg.MaxFiles {
			r.addError(CodeTooManyFiles,
				fmt.Sprintf("at most %d files can be uploaded for this product", cfg.MaxFiles),
				"count")
		}

		if len(r.Errors) == 0 {
			validateAggregateSize(file, cfg, runningTotal, r)
			if len(r.Errors) == 0 {
				runningTotal += file.Size
			}
		}

		r.IsValid = len(r.Errors) == 0
	}

	return results
}
