package artwork

import (
	"fmt"
	"path/filepath"
	"strings"

	"printshop-be/internal/utils"

	"github.com/gabriel-vasile/mimetype"
)

// Content types the signature sniffer may report that never belong in a
// print order, regardless of what the product config allows.
var blockedContentTypes = []string{
	"application/x-executable",
	"application/vnd.microsoft.portable-executable",
	"application/x-mach-binary",
	"application/x-msdownload",
	"application/x-sh",
	"application/x-ms-shortcut",
	"text/javascript",
}

const defaultMinDPI = 300

// Validate runs the full pipeline over one candidate file. All stages run
// and all errors accumulate, so the caller sees every problem at once.
// batchTotal is the byte total of files already accepted into the current
// selection; the aggregate stage checks batchTotal plus this file.
//
// The verdict is deterministic for a given (file, config, batchTotal).
func Validate(file FileInput, cfg UploadConfig, batchTotal int64) FileValidationResult {
	result := FileValidationResult{}

	validateSecurity(file, cfg, &result)
	validateType(file, cfg, &result)
	validateSize(file, cfg, &result)
	validateAggregateSize(file, cfg, batchTotal, &result)
	appendSuggestions(file, cfg, &result)

	result.IsValid = len(result.Errors) == 0
	return result
}

// validateSecurity inspects the file signature rather than trusting the
// declared MIME type. Executable content blocks; a declared/sniffed mismatch
// is only a warning when the sniffed type is itself allowed.
func validateSecurity(file FileInput, cfg UploadConfig, result *FileValidationResult) {
	if len(file.Content) == 0 {
		result.Warnings = append(result.Warnings, "file content unavailable, signature check skipped")
		return
	}

	sniffed := mimetype.Detect(file.Content)

	for _, blocked := range blockedContentTypes {
		if sniffed.Is(blocked) {
			result.addError(CodeExecutableContent,
				fmt.Sprintf("file content is %s, executable content is not allowed", sniffed.String()),
				"content")
			return
		}
	}

	if file.DeclaredType == "" || sniffed.Is(file.DeclaredType) {
		return
	}

	if typeAllowed(sniffed.String(), cfg.AllowedTypes) {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("declared type %s but content looks like %s", file.DeclaredType, sniffed.String()))
		return
	}

	result.addError(CodeContentMismatch,
		fmt.Sprintf("declared type %s does not match detected content type %s", file.DeclaredType, sniffed.String()),
		"content")
}

// validateType accepts a file when either its declared MIME type or its
// extension is configured for the product type.
func validateType(file FileInput, cfg UploadConfig, result *FileValidationResult) {
	if typeAllowed(file.DeclaredType, cfg.AllowedTypes) {
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	for _, allowed := range cfg.AllowedExtensions {
		if ext == normalizeExt(allowed) {
			return
		}
	}

	result.addError(CodeInvalidType,
		fmt.Sprintf("file type %s (%s) is not accepted for this product", file.DeclaredType, ext),
		"type")
}

func validateSize(file FileInput, cfg UploadConfig, result *FileValidationResult) {
	if cfg.MaxFileSize > 0 && file.Size > cfg.MaxFileSize {
		result.addError(CodeFileTooLarge,
			fmt.Sprintf("file is %s, limit is %s", utils.FormatBytes(file.Size), utils.FormatBytes(cfg.MaxFileSize)),
			"size")
	}
}

func validateAggregateSize(file FileInput, cfg UploadConfig, batchTotal int64, result *FileValidationResult) {
	if cfg.MaxTotalSize <= 0 {
		return
	}
	if combined := batchTotal + file.Size; combined > cfg.MaxTotalSize {
		result.addError(CodeTotalSizeExceeded,
			fmt.Sprintf("%s exceeds %s", utils.FormatBytes(combined), utils.FormatBytes(cfg.MaxTotalSize)),
			"size")
	}
}

// appendSuggestions adds content-type-specific print-quality tips. These are
// advisory only and appear regardless of validity.
func appendSuggestions(file FileInput, cfg UploadConfig, result *FileValidationResult) {
	minDPI := cfg.MinDPI
	if minDPI <= 0 {
		minDPI = defaultMinDPI
	}

	switch {
	case strings.HasPrefix(file.DeclaredType, "image/"):
		if file.Dimensions != nil && file.Dimensions.DPI > 0 && file.Dimensions.DPI < minDPI {
			result.Suggestions = append(result.Suggestions,
				fmt.Sprintf("image is %d DPI; use at least %d DPI for sharp print results", file.Dimensions.DPI, minDPI))
		}
		if strings.EqualFold(file.ColorSpace, "RGB") {
			result.Suggestions = append(result.Suggestions,
				"convert RGB artwork to CMYK to avoid color shifts on press")
		}
	case file.DeclaredType == "application/pdf":
		result.Suggestions = append(result.Suggestions,
			"embed all fonts in the PDF to avoid text reflow during printing")
	}
}

func typeAllowed(mimeType string, allowed []string) bool {
	if mimeType == "" {
		return false
	}
	for _, t := range allowed {
		if strings.EqualFold(t, mimeType) {
			return true
		}
	}
	return false
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
