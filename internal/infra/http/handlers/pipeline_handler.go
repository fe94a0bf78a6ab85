package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/xavierca1/dealflow/internal/entity"
	"github.com/xavierca1/dealflow/internal/infra/http/middleware"
	"github.com/xavierca1/dealflow/internal/pipeline"
	"github.com/xavierca1/dealflow/internal/usecase"
)

type PipelineHandler struct {
	UC     *usecase.PipelineUseCase
	Logger *zap.Logger
}

func NewPipelineHandler(uc *usecase.PipelineUseCase, logger *zap.Logger) *PipelineHandler {
	return &PipelineHandler{UC: uc, Logger: orNop(logger)}
}

type countsResponse struct {
	Criteria pipeline.Criteria `json:"criteria"`
	Counts   pipeline.Counts   `json:"counts"`
}

type leadsResponse struct {
	Criteria pipeline.Criteria `json:"criteria"`
	Counts   pipeline.Counts   `json:"counts"`
	Stage    string            `json:"stage"`
	Leads    []entity.Lead     `json:"leads"`
}

// Counts (GET /pipeline/counts)
func (h *PipelineHandler) Counts(w http.ResponseWriter, r *http.Request) {
	middleware.RecordFilterRequest("counts")

	ov, err := h.UC.Counts(r.Context(), callerFrom(r))
	if err != nil {
		writeUseCaseError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, countsResponse{Criteria: ov.Criteria, Counts: ov.Counts})
}

// Leads (GET /pipeline/leads?stage=)
func (h *PipelineHandler) Leads(w http.ResponseWriter, r *http.Request) {
	stage := r.URL.Query().Get("stage")
	if stage != "" && stage != pipeline.All {
		st, ok := entity.ParseStage(stage)
		if !ok {
			writeErrorResponse(w, http.StatusBadRequest, usecase.CodeValidation, "unknown stage: "+stage)
			return
		}
		stage = string(st)
	}

	ov, err := h.UC.List(r.Context(), callerFrom(r), stage)
	if err != nil {
		writeUseCaseError(w, h.Logger, err)
		return
	}

	effective := stage
	if effective == "" {
		effective = ov.Criteria.Stage
	}
	middleware.RecordFilterRequest(boundedStage(effective))

	leads := ov.Leads
	if leads == nil {
		leads = []entity.Lead{}
	}
	writeJSON(w, http.StatusOK, leadsResponse{
		Criteria: ov.Criteria,
		Counts:   ov.Counts,
		Stage:    effective,
		Leads:    leads,
	})
}

// GetFilters (GET /pipeline/filters)
func (h *PipelineHandler) GetFilters(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.UC.Filters(callerFrom(r)))
}

// UpdateFilters (PUT /pipeline/filters) merges the body over the current
// criteria.
func (h *PipelineHandler) UpdateFilters(w http.ResponseWriter, r *http.Request) {
	var p pipeline.Patch
	if !decodeJSON(w, r, &p) {
		return
	}
	writeJSON(w, http.StatusOK, h.UC.UpdateFilters(callerFrom(r), p))
}

// ResetFilters (DELETE /pipeline/filters)
func (h *PipelineHandler) ResetFilters(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.UC.ResetFilters(callerFrom(r)))
}

// boundedStage keeps the metric label set closed: a stored filterStage can
// hold any string.
func boundedStage(stage string) string {
	if stage == "" || stage == pipeline.All {
		return pipeline.All
	}
	if st, ok := entity.ParseStage(stage); ok {
		return string(st)
	}
	return "other"
}
