package handlers

import (
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"library-backend/application/commands"
	"library-backend/application/commands/bus"
	"library-backend/application/queries"
	querybus "library-backend/application/queries/bus"
	"library-backend/pkg/auth"
	"library-backend/pkg/common"
	apperrors "library-backend/pkg/errors"
	"library-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BookHandler handles catalog HTTP requests.
type BookHandler struct {
	commandBus     *bus.CommandBus
	queryBus       *querybus.QueryBus
	maxUploadBytes int64
	logger         *zap.Logger
}

// NewBookHandler creates a new book handler.
func NewBookHandler(
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	maxUploadBytes int64,
	logger *zap.Logger,
) *BookHandler {
	return &BookHandler{
		commandBus:     commandBus,
		queryBus:       queryBus,
		maxUploadBytes: maxUploadBytes,
		logger:         logger,
	}
}

// UpdateBookRequest represents the request body for metadata updates.
type UpdateBookRequest struct {
	Title       string   `json:"title" validate:"max=300"`
	Author      string   `json:"author" validate:"max=200"`
	Genre       string   `json:"genre" validate:"max=100"`
	Language    string   `json:"language" validate:"max=50"`
	Year        int      `json:"year"`
	ISBN        string   `json:"isbn" validate:"max=20"`
	Description string   `json:"description" validate:"max=5000"`
	Tags        []string `json:"tags" validate:"max=20,dive,max=50"`
}

// RateBookRequest represents the request body for rating a book.
type RateBookRequest struct {
	Rating  int    `json:"rating" validate:"required,gte=1,lte=5"`
	Comment string `json:"comment" validate:"max=2000"`
}

// ListBooks handles GET /books.
func (h *BookHandler) ListBooks(w http.ResponseWriter, r *http.Request) {
	limit := parseLimit(r, 0)

	result, err := h.queryBus.Ask(r.Context(), queries.ListBooksQuery{Limit: limit})
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, result)
}

// SearchBooks handles GET /books/search.
func (h *BookHandler) SearchBooks(w http.ResponseWriter, r *http.Request) {
	query := queries.SearchBooksQuery{
		Query:    strings.TrimSpace(r.URL.Query().Get("q")),
		Author:   strings.TrimSpace(r.URL.Query().Get("author")),
		Genre:    strings.TrimSpace(r.URL.Query().Get("genre")),
		Language: strings.TrimSpace(r.URL.Query().Get("language")),
		Limit:    parseLimit(r, 0),
	}

	result, err := h.queryBus.Ask(r.Context(), query)
	if err != nil {
		common.RespondAppError(w, apperrors.NewValidationError(err.Error()))
		return
	}

	common.RespondJSON(w, http.StatusOK, result)
}

// GetBook handles GET /books/{bookID}.
func (h *BookHandler) GetBook(w http.ResponseWriter, r *http.Request) {
	bookID := chi.URLParam(r, "bookID")

	result, err := h.queryBus.Ask(r.Context(), queries.GetBookQuery{BookID: bookID})
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, result)
}

// UpdateBook handles PUT /books/{bookID}.
func (h *BookHandler) UpdateBook(w http.ResponseWriter, r *http.Request) {
	bookID := chi.URLParam(r, "bookID")

	var req UpdateBookRequest
	if err := common.ParseJSONBody(r, &req, 1<<20); err != nil {
		common.RespondError(w, http.StatusBadRequest, "INVALID_BODY", "Invalid request body")
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondAppError(w, apperrors.NewValidationError(err.Error()))
		return
	}

	cmd := commands.UpdateBookCommand{
		BookID:      bookID,
		Title:       req.Title,
		Author:      req.Author,
		Genre:       req.Genre,
		Language:    req.Language,
		Year:        req.Year,
		ISBN:        req.ISBN,
		Description: req.Description,
		Tags:        req.Tags,
	}

	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, map[string]string{
		"id":      bookID,
		"message": "book updated",
	})
}

// UploadBook handles POST /books. The PDF arrives as the multipart field
// "file"; metadata fields are optional and fall back to filename parsing.
func (h *BookHandler) UploadBook(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		common.RespondError(w, http.StatusBadRequest, "INVALID_UPLOAD", "Could not parse upload")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		common.RespondError(w, http.StatusBadRequest, "MISSING_FILE", "A PDF file is required")
		return
	}
	defer file.Close()

	filename := filepath.Base(header.Filename)
	if !strings.HasSuffix(strings.ToLower(filename), ".pdf") {
		common.RespondError(w, http.StatusBadRequest, "INVALID_FILE_TYPE", "Only PDF files are accepted")
		return
	}

	content, err := io.ReadAll(file)
	if err != nil {
		common.RespondError(w, http.StatusBadRequest, "INVALID_UPLOAD", "Could not read upload")
		return
	}

	year := 0
	if y := r.FormValue("year"); y != "" {
		year, _ = strconv.Atoi(y)
	}

	cmd := commands.UploadBookCommand{
		BookID:      uuid.New().String(),
		UserID:      userCtx.UserID,
		Filename:    filename,
		Title:       r.FormValue("title"),
		Author:      r.FormValue("author"),
		Genre:       r.FormValue("genre"),
		Language:    r.FormValue("language"),
		Year:        year,
		ISBN:        r.FormValue("isbn"),
		Description: r.FormValue("description"),
		Content:     content,
		ContentType: header.Header.Get("Content-Type"),
	}

	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusCreated, map[string]string{
		"id":       cmd.BookID,
		"filename": filename,
		"message":  "book uploaded",
	})
}

// RateBook handles POST /books/{bookID}/rate.
func (h *BookHandler) RateBook(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized")
		return
	}

	bookID := chi.URLParam(r, "bookID")

	var req RateBookRequest
	if err := common.ParseJSONBody(r, &req, 1<<20); err != nil {
		common.RespondError(w, http.StatusBadRequest, "INVALID_BODY", "Invalid request body")
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondAppError(w, apperrors.NewValidationError(err.Error()))
		return
	}

	cmd := commands.RateBookCommand{
		BookID:   bookID,
		UserID:   userCtx.UserID,
		UserName: userCtx.Name,
		Rating:   req.Rating,
		Comment:  req.Comment,
	}

	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"book_id": bookID,
		"rating":  req.Rating,
		"message": "rating recorded",
	})
}

// ListReviews handles GET /books/{bookID}/reviews.
func (h *BookHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	bookID := chi.URLParam(r, "bookID")

	result, err := h.queryBus.Ask(r.Context(), queries.ListReviewsQuery{BookID: bookID})
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, result)
}

// ListGenres handles GET /genres.
func (h *BookHandler) ListGenres(w http.ResponseWriter, r *http.Request) {
	result, err := h.queryBus.Ask(r.Context(), queries.ListGenresQuery{})
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, result)
}

func parseLimit(r *http.Request, fallback int32) int32 {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return fallback
	}
	limit, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || limit < 0 {
		return fallback
	}
	return int32(limit)
}
