package handlers

import (
	"net/http"
	"strings"

	"library-backend/application/queries"
	querybus "library-backend/application/queries/bus"
	"library-backend/domain/assistant"
	"library-backend/pkg/common"

	"go.uber.org/zap"
)

// AssistantHandler handles library assistant queries.
type AssistantHandler struct {
	assistant *assistant.Assistant
	queryBus  *querybus.QueryBus
	logger    *zap.Logger
}

// NewAssistantHandler creates a new assistant handler.
func NewAssistantHandler(
	a *assistant.Assistant,
	queryBus *querybus.QueryBus,
	logger *zap.Logger,
) *AssistantHandler {
	return &AssistantHandler{assistant: a, queryBus: queryBus, logger: logger}
}

// AssistantRequest represents the request body for the assistant.
type AssistantRequest struct {
	Query string `json:"query" validate:"required,max=1000"`
}

// Query handles POST /assistant.
func (h *AssistantHandler) Query(w http.ResponseWriter, r *http.Request) {
	var req AssistantRequest
	if err := common.ParseJSONBody(r, &req, 1<<20); err != nil {
		common.RespondError(w, http.StatusBadRequest, "INVALID_BODY", "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		common.RespondError(w, http.StatusBadRequest, "EMPTY_QUERY", "Query cannot be empty")
		return
	}

	result, err := h.queryBus.Ask(r.Context(), queries.ListBooksQuery{})
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	books, ok := result.(*queries.BooksResult)
	if !ok {
		common.RespondError(w, http.StatusInternalServerError, "INTERNAL", "Unexpected query result")
		return
	}

	reply := h.assistant.Respond(req.Query, books.Books)

	common.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"query": req.Query,
		"reply": reply,
	})
}
