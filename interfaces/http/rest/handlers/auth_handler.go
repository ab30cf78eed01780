package handlers

import (
	"net/http"

	"library-backend/application/ports"
	"library-backend/pkg/common"
	apperrors "library-backend/pkg/errors"
	"library-backend/pkg/utils"

	"go.uber.org/zap"
)

const authBodyLimit = 1 << 20

// AuthHandler handles sign-up, login and confirmation requests.
type AuthHandler struct {
	provider ports.IdentityProvider
	logger   *zap.Logger
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(provider ports.IdentityProvider, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{provider: provider, logger: logger}
}

// SignUpRequest represents the request body for registration.
type SignUpRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name" validate:"max=100"`
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ConfirmRequest represents the request body for sign-up confirmation.
type ConfirmRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required"`
}

// SignUp handles POST /auth/signup.
func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req SignUpRequest
	if err := common.ParseJSONBody(r, &req, authBodyLimit); err != nil {
		common.RespondError(w, http.StatusBadRequest, "INVALID_BODY", "Invalid request body")
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondAppError(w, apperrors.NewValidationError(err.Error()))
		return
	}
	if err := utils.ValidatePassword(req.Password); err != nil {
		common.RespondAppError(w, apperrors.NewValidationError(err.Error()))
		return
	}

	result, err := h.provider.SignUp(r.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	h.logger.Info("user signed up", zap.String("userID", result.UserID))
	common.RespondJSON(w, http.StatusCreated, result)
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := common.ParseJSONBody(r, &req, authBodyLimit); err != nil {
		common.RespondError(w, http.StatusBadRequest, "INVALID_BODY", "Invalid request body")
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondAppError(w, apperrors.NewValidationError(err.Error()))
		return
	}

	tokens, err := h.provider.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, tokens)
}

// Confirm handles POST /auth/confirm.
func (h *AuthHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	var req ConfirmRequest
	if err := common.ParseJSONBody(r, &req, authBodyLimit); err != nil {
		common.RespondError(w, http.StatusBadRequest, "INVALID_BODY", "Invalid request body")
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondAppError(w, apperrors.NewValidationError(err.Error()))
		return
	}

	if err := h.provider.Confirm(r.Context(), req.Email, req.Code); err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, map[string]string{
		"message": "account confirmed",
	})
}

// Health handles GET /auth/health.
func (h *AuthHandler) Health(w http.ResponseWriter, r *http.Request) {
	common.RespondJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "auth",
	})
}
