package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/xavierca1/dealflow/internal/infra/http/middleware"
	"github.com/xavierca1/dealflow/internal/usecase"
)

const maxBodyBytes = 1 << 20

type errorResponse struct {
	Error   string                    `json:"error"`
	Message string                    `json:"message"`
	Fields  []usecase.ValidationError `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErrorResponse(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Error: code, Message: message})
}

// decodeJSON reads a bounded JSON body into v. An empty body leaves v as is.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v)
	if err == nil || errors.Is(err, io.EOF) {
		return true
	}
	writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "invalid JSON body")
	return false
}

// writeUseCaseError maps use-case errors to HTTP. Technical details are
// logged, never returned.
func writeUseCaseError(w http.ResponseWriter, logger *zap.Logger, err error) {
	var de *usecase.DomainError
	if errors.As(err, &de) {
		status := http.StatusBadRequest
		switch de.Code {
		case usecase.CodeUnauthorized:
			status = http.StatusUnauthorized
		case usecase.CodeNotFound:
			status = http.StatusNotFound
		}
		writeJSON(w, status, errorResponse{Error: de.Code, Message: de.Message, Fields: de.Fields})
		return
	}

	var te *usecase.TechnicalError
	if errors.As(err, &te) {
		status := http.StatusInternalServerError
		service := "database"
		if te.Code == usecase.CodeUpstream {
			status = http.StatusBadGateway
			service = "crm_api"
		}
		middleware.RecordIntegrationError(service)
		logger.Error(te.Message, zap.String("code", te.Code), zap.Error(te.Err))
		writeErrorResponse(w, status, te.Code, te.Message)
		return
	}

	logger.Error("unexpected error", zap.Error(err))
	writeErrorResponse(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal error")
}

func callerFrom(r *http.Request) usecase.Caller {
	ctx := r.Context()
	return usecase.Caller{
		User:      middleware.UserFrom(ctx),
		Token:     middleware.TokenFrom(ctx),
		SessionID: middleware.SessionFrom(ctx),
	}
}

func orNop(logger *zap.Logger) *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
