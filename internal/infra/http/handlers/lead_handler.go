package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/xavierca1/dealflow/internal/entity"
	"github.com/xavierca1/dealflow/internal/infra/http/middleware"
	"github.com/xavierca1/dealflow/internal/usecase"
)

type LeadHandler struct {
	Create  *usecase.CreateLeadUseCase
	Drafts  *usecase.LeadDraftUseCase
	Details *usecase.LeadDetailsUseCase
	Notes   *usecase.NotesUseCase
	Logger  *zap.Logger
}

func NewLeadHandler(
	create *usecase.CreateLeadUseCase,
	drafts *usecase.LeadDraftUseCase,
	details *usecase.LeadDetailsUseCase,
	notes *usecase.NotesUseCase,
	logger *zap.Logger,
) *LeadHandler {
	return &LeadHandler{
		Create:  create,
		Drafts:  drafts,
		Details: details,
		Notes:   notes,
		Logger:  orNop(logger),
	}
}

// CreateIndividual (POST /leads/individual)
func (h *LeadHandler) CreateIndividual(w http.ResponseWriter, r *http.Request) {
	var form entity.LeadForm
	if !decodeJSON(w, r, &form) {
		return
	}

	out, err := h.Create.Execute(r.Context(), callerFrom(r), form)
	if err != nil {
		writeUseCaseError(w, h.Logger, err)
		return
	}

	middleware.RecordLeadCreated()
	writeJSON(w, http.StatusCreated, out)
}

// GetDraft (GET /leads/individual/draft)
func (h *LeadHandler) GetDraft(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Drafts.Get(callerFrom(r)))
}

// SaveDraft (PUT /leads/individual/draft)
func (h *LeadHandler) SaveDraft(w http.ResponseWriter, r *http.Request) {
	var form entity.LeadForm
	if !decodeJSON(w, r, &form) {
		return
	}
	writeJSON(w, http.StatusOK, h.Drafts.Save(callerFrom(r), form))
}

// ClearDraft (DELETE /leads/individual/draft)
func (h *LeadHandler) ClearDraft(w http.ResponseWriter, r *http.Request) {
	h.Drafts.Clear(callerFrom(r))
	w.WriteHeader(http.StatusNoContent)
}

// GetDetails (GET /leads/{id}/details)
func (h *LeadHandler) GetDetails(w http.ResponseWriter, r *http.Request) {
	out, err := h.Details.Execute(r.Context(), callerFrom(r), chi.URLParam(r, "id"))
	if err != nil {
		writeUseCaseError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

type remarkRequest struct {
	Remark string `json:"remark"`
}

type actionableRequest struct {
	Actionable string `json:"actionable"`
}

// AddRemark (POST /leads/{id}/remarks)
func (h *LeadHandler) AddRemark(w http.ResponseWriter, r *http.Request) {
	var req remarkRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	out, err := h.Notes.AddRemark(r.Context(), callerFrom(r), chi.URLParam(r, "id"), req.Remark)
	if err != nil {
		writeUseCaseError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, out)
}

// DeleteRemark (DELETE /leads/{id}/remarks/{remarkId})
func (h *LeadHandler) DeleteRemark(w http.ResponseWriter, r *http.Request) {
	err := h.Notes.DeleteRemark(r.Context(), callerFrom(r), chi.URLParam(r, "id"), chi.URLParam(r, "remarkId"))
	if err != nil {
		writeUseCaseError(w, h.Logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AddActionable (POST /leads/{id}/actionables)
func (h *LeadHandler) AddActionable(w http.ResponseWriter, r *http.Request) {
	var req actionableRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	out, err := h.Notes.AddActionable(r.Context(), callerFrom(r), chi.URLParam(r, "id"), req.Actionable)
	if err != nil {
		writeUseCaseError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, out)
}

// DeleteActionable (DELETE /leads/{id}/actionables/{actionableId})
func (h *LeadHandler) DeleteActionable(w http.ResponseWriter, r *http.Request) {
	err := h.Notes.DeleteActionable(r.Context(), callerFrom(r), chi.URLParam(r, "id"), chi.URLParam(r, "actionableId"))
	if err != nil {
		writeUseCaseError(w, h.Logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
