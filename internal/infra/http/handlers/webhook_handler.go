package handlers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/xavierca1/dealflow/internal/usecase"
)

const SignatureHeader = "X-Signature"

// WebhookHandler accepts change notifications from the CRM API. The body
// must be signed with HMAC-SHA256 over the raw bytes.
type WebhookHandler struct {
	Secret []byte
	Notify *usecase.NotifyLeadChangedUseCase
	Logger *zap.Logger
}

func NewWebhookHandler(secret string, notify *usecase.NotifyLeadChangedUseCase, logger *zap.Logger) *WebhookHandler {
	return &WebhookHandler{Secret: []byte(secret), Notify: notify, Logger: orNop(logger)}
}

type webhookPayload struct {
	Event  string `json:"event"`
	LeadID string `json:"leadId"`
}

// Handle (POST /webhooks/crm)
func (h *WebhookHandler) Handle(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "could not read body")
		return
	}

	if !h.validSignature(body, r.Header.Get(SignatureHeader)) {
		h.Logger.Warn("webhook signature rejected", zap.String("remote", r.RemoteAddr))
		writeErrorResponse(w, http.StatusUnauthorized, "INVALID_SIGNATURE", "invalid signature")
		return
	}

	var event webhookPayload
	if err := json.Unmarshal(body, &event); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "invalid JSON body")
		return
	}

	if err := h.Notify.Execute(r.Context(), event.LeadID); err != nil {
		writeUseCaseError(w, h.Logger, err)
		return
	}

	h.Logger.Info("upstream change received", zap.String("event", event.Event), zap.String("lead_id", event.LeadID))
	w.WriteHeader(http.StatusAccepted)
}

func (h *WebhookHandler) validSignature(body []byte, header string) bool {
	if len(h.Secret) == 0 {
		return false
	}
	got, err := hex.DecodeString(strings.TrimPrefix(strings.TrimSpace(header), "sha256="))
	if err != nil || len(got) == 0 {
		return false
	}
	return hmac.Equal(got, Sign(h.Secret, body))
}

// Sign returns the raw HMAC-SHA256 of body.
func Sign(secret, body []byte) []byte {
	mac := hmac.New(sha256.New, secret)
	mac.Write(body)
	return mac.Sum(nil)
}
