package artwork

import "time"

type ValidationStatus string

const (
	StatusPending     ValidationStatus = "pending"
	StatusValid       ValidationStatus = "valid"
	StatusInvalid     ValidationStatus = "invalid"
	StatusNeedsReview ValidationStatus = "needs_review"
)

// Dimensions of a raster or page-based file. DPI 0 means unknown.
type Dimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
	DPI    int `json:"dpi,omitempty"`
}

// ArtworkFile is the persisted record for an accepted upload. Its
// validation_status starts at pending and never returns there.
type ArtworkFile struct {
	ID               string           `json:"id"`
	OrderItemID      string           `json:"order_item_id,omitempty"`
	OriginalFilename string           `json:"original_filename"`
	MimeType         string           `json:"mime_type"`
	FileSize         int64            `json:"file_size"`
	Dimensions       *Dimensions      `json:"dimensions,omitempty"`
	ColorSpace       string           `json:"color_space,omitempty"`
	ValidationStatus ValidationStatus `json:"validation_status"`
	ValidationNotes  string           `json:"validation_notes,omitempty"`
	CreatedAt        time.Time        `json:"created_at"`
}

// FileInput is a candidate file before acceptance: declared metadata plus
// content bytes for signature inspection.
type FileInput struct {
	Filename     string
	DeclaredType string
	Size         int64
	Content      []byte
	Dimensions   *Dimensions
	ColorSpace   string
}

// UploadConfig carries the per-product-type limits. The validator never
// hardcodes product specifics; callers inject the config row.
type UploadConfig struct {
	ProductType       string   `json:"product_type"`
	MaxFiles          int      `json:"max_files"`
	MaxFileSize       int64    `json:"max_file_size"`
	MaxTotalSize      int64    `json:"max_total_size"`
	AllowedTypes      []string `json:"allowed_types"`
	AllowedExtensions []string `json:"allowed_extensions"`
	MinDPI            int      `json:"min_dpi,omitempty"`
}

// Validation error codes.
const (
	CodeInvalidType       = "INVALID_TYPE"
	CodeFileTooLarge      = "FILE_TOO_LARGE"
	CodeTotalSizeExceeded = "TOTAL_SIZE_EXCEEDED"
	CodeExecutableContent = "EXECUTABLE_CONTENT"
	CodeContentMismatch   = "CONTENT_MISMATCH"
	CodeTooManyFiles      = "TOO_MANY_FILES"
)

type ValidationError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field"`
}

// FileValidationResult is the verdict for one file. Errors block acceptance;
// warnings and suggestions never do.
type FileValidationResult struct {
	IsValid     bool              `json:"is_valid"`
	Errors      []ValidationError `json:"errors"`
	Warnings    []string          `json:"warnings"`
	Suggestions []string          `json:"suggestions"`
}

func (r *FileValidationResult) addError(code, message, field string) {
	r.Errors = append(r.Errors, ValidationError{Code: code, Message: message, Field: field})
}
