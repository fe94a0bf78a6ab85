package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/xavierca1/dealflow/internal/infra/http/middleware"
	"github.com/xavierca1/dealflow/internal/usecase"
)

type AuthHandler struct {
	UC     *usecase.AuthUseCase
	Logger *zap.Logger
}

func NewAuthHandler(uc *usecase.AuthUseCase, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{UC: uc, Logger: orNop(logger)}
}

// CurrentUser (GET /auth/user)
func (h *AuthHandler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	u := middleware.UserFrom(r.Context())
	if u == nil {
		writeErrorResponse(w, http.StatusUnauthorized, usecase.CodeUnauthorized, "not signed in")
		return
	}
	writeJSON(w, http.StatusOK, u)
}

// ForgotPassword (POST /auth/forgot-password) answers the same way whether
// or not the address exists.
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.UC.ForgotPassword(r.Context(), req.Email); err != nil {
		writeUseCaseError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "If the address is registered, a reset link is on its way."})
}

// ResetPassword (POST /auth/reset-password)
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Password        string `json:"password"`
		ConfirmPassword string `json:"confirmPassword"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.UC.ResetPassword(r.Context(), callerFrom(r), req.Password, req.ConfirmPassword); err != nil {
		writeUseCaseError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Password updated."})
}
