package common

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "library-backend/pkg/errors"
)

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) APIResponse {
	t.Helper()

	var response APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	return response
}

func TestRespondAppErrorUsesAttachedCode(t *testing.T) {
	rec := httptest.NewRecorder()
	err := pkgerrors.NewUnauthorizedError("account not confirmed").WithCode("USER_NOT_CONFIRMED")

	RespondAppError(rec, err)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	response := decodeResponse(t, rec)
	assert.False(t, response.Success)
	assert.Equal(t, "USER_NOT_CONFIRMED", response.Error.Code)
	assert.Equal(t, "account not confirmed", response.Error.Message)
}

func TestRespondAppErrorFallsBackToType(t *testing.T) {
	rec := httptest.NewRecorder()

	RespondAppError(rec, pkgerrors.NewNotFoundError("book"))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	response := decodeResponse(t, rec)
	assert.Equal(t, "NOT_FOUND", response.Error.Code)
}

func TestRespondAppErrorUnknownError(t *testing.T) {
	rec := httptest.NewRecorder()

	RespondAppError(rec, errors.New("boom"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	response := decodeResponse(t, rec)
	assert.Equal(t, "INTERNAL", response.Error.Code)
	assert.NotContains(t, response.Error.Message, "boom")
}
