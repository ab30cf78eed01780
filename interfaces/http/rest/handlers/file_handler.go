package handlers

import (
	"net/http"
	"path/filepath"

	"library-backend/application/queries"
	querybus "library-backend/application/queries/bus"
	"library-backend/pkg/common"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// FileHandler handles download and cover HTTP requests.
type FileHandler struct {
	queryBus *querybus.QueryBus
	logger   *zap.Logger
}

// NewFileHandler creates a new file handler.
func NewFileHandler(queryBus *querybus.QueryBus, logger *zap.Logger) *FileHandler {
	return &FileHandler{queryBus: queryBus, logger: logger}
}

// GetFile handles GET /files/{filename}: a presigned download URL plus
// whatever catalog metadata exists for the file.
func (h *FileHandler) GetFile(w http.ResponseWriter, r *http.Request) {
	filename := sanitizeFilename(chi.URLParam(r, "filename"))
	if filename == "" {
		common.RespondError(w, http.StatusBadRequest, "INVALID_FILENAME", "Invalid filename")
		return
	}

	result, err := h.queryBus.Ask(r.Context(), queries.GetBookFileQuery{Filename: filename})
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, result)
}

// GetCover handles GET /files/{filename}/cover.
func (h *FileHandler) GetCover(w http.ResponseWriter, r *http.Request) {
	filename := sanitizeFilename(chi.URLParam(r, "filename"))
	if filename == "" {
		common.RespondError(w, http.StatusBadRequest, "INVALID_FILENAME", "Invalid filename")
		return
	}

	result, err := h.queryBus.Ask(r.Context(), queries.GetCoverQuery{Filename: filename})
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, result)
}

// ExtractCover handles POST /files/{filename}/cover/extract, forcing a
// fresh render even when a cover already exists.
func (h *FileHandler) ExtractCover(w http.ResponseWriter, r *http.Request) {
	filename := sanitizeFilename(chi.URLParam(r, "filename"))
	if filename == "" {
		common.RespondError(w, http.StatusBadRequest, "INVALID_FILENAME", "Invalid filename")
		return
	}

	result, err := h.queryBus.Ask(r.Context(), queries.GetCoverQuery{Filename: filename, Force: true})
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, result)
}

// sanitizeFilename strips any path components so keys cannot escape the
// books prefix.
func sanitizeFilename(raw string) string {
	name := filepath.Base(raw)
	if name == "." || name == "/" || name == ".." {
		return ""
	}
	return name
}
