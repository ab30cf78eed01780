package handlers

import (
	"net/http"

	"library-backend/application/commands"
	"library-backend/application/commands/bus"
	"library-backend/application/queries"
	querybus "library-backend/application/queries/bus"
	"library-backend/pkg/auth"
	"library-backend/pkg/common"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BookmarkHandler handles bookmark HTTP requests.
type BookmarkHandler struct {
	commandBus *bus.CommandBus
	queryBus   *querybus.QueryBus
	logger     *zap.Logger
}

// NewBookmarkHandler creates a new bookmark handler.
func NewBookmarkHandler(
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	logger *zap.Logger,
) *BookmarkHandler {
	return &BookmarkHandler{
		commandBus: commandBus,
		queryBus:   queryBus,
		logger:     logger,
	}
}

// ListBookmarks handles GET /bookmarks.
func (h *BookmarkHandler) ListBookmarks(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized")
		return
	}

	result, err := h.queryBus.Ask(r.Context(), queries.ListBookmarksQuery{UserID: userCtx.UserID})
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, result)
}

// AddBookmark handles POST /bookmarks/{bookID}.
func (h *BookmarkHandler) AddBookmark(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized")
		return
	}

	bookID := chi.URLParam(r, "bookID")
	cmd := commands.AddBookmarkCommand{UserID: userCtx.UserID, BookID: bookID}

	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusCreated, map[string]string{
		"book_id": bookID,
		"message": "bookmark added",
	})
}

// RemoveBookmark handles DELETE /bookmarks/{bookID}.
func (h *BookmarkHandler) RemoveBookmark(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized")
		return
	}

	bookID := chi.URLParam(r, "bookID")
	cmd := commands.RemoveBookmarkCommand{UserID: userCtx.UserID, BookID: bookID}

	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, map[string]string{
		"book_id": bookID,
		"message": "bookmark removed",
	})
}
