package transport

import (
	"errors"
	"io"
	"net/http"

	"printshop-be/internal/artwork"
	"printshop-be/internal/logger"
	"printshop-be/internal/utils"

	"go.uber.org/zap"
)

// uploads beyond this are rejected before validation even starts
const maxUploadMemory = 64 << 20

// ArtworkHandler exposes artwork validation and upload endpoints.
type ArtworkHandler struct {
	svc artwork.Service
}

func NewArtworkHandler(svc artwork.Service) *ArtworkHandler {
	return &ArtworkHandler{svc: svc}
}

func (h *ArtworkHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/artwork/validate", h.validateFiles)
	mux.HandleFunc("POST /api/orders/items/{id}/artwork", h.attachFiles)
	mux.HandleFunc("GET /api/orders/items/{id}/artwork", h.listFiles)
}

// validateFiles judges a selection without storing anything, so the client
// can show problems while the customer is still picking files.
func (h *ArtworkHandler) validateFiles(w http.ResponseWriter, r *http.Request) {
	productType := r.URL.Query().Get("product_type")
	if productType == "" {
		utils.WriteJSONError(w, "product_type is required", http.StatusBadRequest)
		return
	}

	files, err := filesFromRequest(r)
	if err != nil {
		utils.WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	results, err := h.svc.ValidateFiles(r.Context(), productType, files)
	if err != nil {
		writeArtworkError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]any{"results": results})
}

func (h *ArtworkHandler) attachFiles(w http.ResponseWriter, r *http.Request) {
	if _, ok := utils.GetCustomerIDFromContext(r.Context()); !ok {
		utils.WriteJSONError(w, "authentication required", http.StatusUnauthorized)
		return
	}

	productType := r.URL.Query().Get("product_type")
	if productType == "" {
		utils.WriteJSONError(w, "product_type is required", http.StatusBadRequest)
		return
	}

	files, err := filesFromRequest(r)
	if err != nil {
		utils.WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	stored, results, err := h.svc.AttachFiles(r.Context(), r.PathValue("id"), productType, files)
	if err != nil {
		writeArtworkError(w, r, err)
		return
	}

	status := http.StatusCreated
	if len(stored) == 0 {
		status = http.StatusUnprocessableEntity
	}
	utils.WriteJSON(w, status, map[string]any{
		"files":   stored,
		"results": results,
	})
}

func (h *ArtworkHandler) listFiles(w http.ResponseWriter, r *http.Request) {
	if _, ok := utils.GetCustomerIDFromContext(r.Context()); !ok {
		utils.WriteJSONError(w, "authentication required", http.StatusUnauthorized)
		return
	}

	files, err := h.svc.FilesForOrderItem(r.Context(), r.PathValue("id"))
	if err != nil {
		writeArtworkError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]any{"files": files})
}

// filesFromRequest reads every part named "files" from the multipart body.
func filesFromRequest(r *http.Request) ([]artwork.FileInput, error) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		return nil, errors.New("invalid multipart body")
	}

	headers := r.MultipartForm.File["files"]
	if len(headers) == 0 {
		return nil, errors.New("no files submitted")
	}

	inputs := make([]artwork.FileInput, 0, len(headers))
	for _, header := range headers {
		f, err := header.Open()
		if err != nil {
			return nil, errors.New("unreadable file part")
		}
		content, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, errors.New("unreadable file part")
		}

		inputs = append(inputs, artwork.FileInput{
			Filename:     header.Filename,
			DeclaredType: header.Header.Get("Content-Type"),
			Size:         header.Size,
			Content:      content,
		})
	}
	return inputs, nil
}

func writeArtworkError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, artwork.ErrConfigNotFound):
		utils.WriteJSONError(w, "unknown product type", http.StatusNotFound)
	case errors.Is(err, artwork.ErrFileNotFound):
		utils.WriteJSONError(w, "artwork file not found", http.StatusNotFound)
	case errors.Is(err, artwork.ErrInvalidTransition):
		utils.WriteJSONError(w, err.Error(), http.StatusConflict)
	default:
		logger.FromCtx(r.Context()).Error("unhandled artwork error",
			zap.String("path", r.URL.Path),
			zap.Error(err))
		utils.WriteJSONError(w, "internal server error", http.StatusInternalServerError)
	}
}
