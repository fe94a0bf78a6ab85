package usecase

import (
	"context"

	"github.com/xavierca1/dealflow/internal/pipeline"
)

// PipelineUseCase serves the navigation counters and the filtered list views
// from the session's criteria.
type PipelineUseCase struct {
	Leads    LeadSource
	Criteria CriteriaStore
}

func NewPipelineUseCase(leads LeadSource, criteria CriteriaStore) *PipelineUseCase {
	return &PipelineUseCase{Leads: leads, Criteria: criteria}
}

// Counts aggregates the filtered collection across every stage. The
// criteria's stage is ignored here.
func (uc *PipelineUseCase) Counts(ctx context.Context, caller Caller) (*pipeline.Overview, error) {
	ov, err := uc.compute(ctx, caller)
	if err != nil {
		return nil, err
	}
	ov.Leads = nil
	return ov, nil
}

// List returns the filtered leads narrowed to stage. An empty stage falls
// back to the criteria's filterStage.
func (uc *PipelineUseCase) List(ctx context.Context, caller Caller, stage string) (*pipeline.Overview, error) {
	ov, err := uc.compute(ctx, caller)
	if err != nil {
		return nil, err
	}
	if stage == "" {
		stage = ov.Criteria.Stage
	}
	ov.Leads = pipeline.ByStage(ov.Leads, stage)
	return ov, nil
}

func (uc *PipelineUseCase) compute(ctx context.Context, caller Caller) (*pipeline.Overview, error) {
	c := uc.Criteria.Criteria(caller.SessionID)

	leads, err := uc.Leads.Leads(ctx, caller.UserID(), caller.Token)
	if err != nil {
		return nil, upstreamError("failed to load leads", err)
	}

	ov := pipeline.Compute(leads, c)
	return &ov, nil
}

func (uc *PipelineUseCase) Filters(caller Caller) pipeline.Criteria {
	return uc.Criteria.Criteria(caller.SessionID)
}

// UpdateFilters merges p over the current criteria and stores the result.
func (uc *PipelineUseCase) UpdateFilters(caller Caller, p pipeline.Patch) pipeline.Criteria {
	next := uc.Criteria.Criteria(caller.SessionID).Apply(p)
	uc.Criteria.SaveCriteria(caller.SessionID, next)
	return next
}

func (uc *PipelineUseCase) ResetFilters(caller Caller) pipeline.Criteria {
	uc.Criteria.ResetCriteria(caller.SessionID)
	return pipeline.DefaultCriteria()
}
