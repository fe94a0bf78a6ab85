package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/xavierca1/dealflow/internal/usecase"
)

type InterventionHandler struct {
	Reminders *usecase.RemindersUseCase
	Outreach  *usecase.OutreachUseCase
	Logger    *zap.Logger
}

func NewInterventionHandler(reminders *usecase.RemindersUseCase, outreach *usecase.OutreachUseCase, logger *zap.Logger) *InterventionHandler {
	return &InterventionHandler{Reminders: reminders, Outreach: outreach, Logger: orNop(logger)}
}

// TodayReminders (GET /interventions/reminders)
func (h *InterventionHandler) TodayReminders(w http.ResponseWriter, r *http.Request) {
	out, err := h.Reminders.Today(r.Context(), callerFrom(r))
	if err != nil {
		writeUseCaseError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// Complete (PUT /interventions/{id}/complete)
func (h *InterventionHandler) Complete(w http.ResponseWriter, r *http.Request) {
	id, ok := interventionID(w, r)
	if !ok {
		return
	}
	var in usecase.OutreachInput
	if !decodeJSON(w, r, &in) {
		return
	}
	if err := h.Outreach.Complete(r.Context(), callerFrom(r), id, in); err != nil {
		writeUseCaseError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "completed"})
}

// GetOutreachDraft (GET /interventions/{id}/outreach-draft)
func (h *InterventionHandler) GetOutreachDraft(w http.ResponseWriter, r *http.Request) {
	id, ok := interventionID(w, r)
	if !ok {
		return
	}
	d, err := h.Outreach.GetDraft(r.Context(), callerFrom(r), id)
	if err != nil {
		writeUseCaseError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// SaveOutreachDraft (PUT /interventions/{id}/outreach-draft)
func (h *InterventionHandler) SaveOutreachDraft(w http.ResponseWriter, r *http.Request) {
	id, ok := interventionID(w, r)
	if !ok {
		return
	}
	var in usecase.OutreachInput
	if !decodeJSON(w, r, &in) {
		return
	}
	d, err := h.Outreach.SaveDraft(r.Context(), callerFrom(r), id, in)
	if err != nil {
		writeUseCaseError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func interventionID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeErrorResponse(w, http.StatusBadRequest, usecase.CodeValidation, "intervention id must be a positive integer")
		return 0, false
	}
	return id, true
}
