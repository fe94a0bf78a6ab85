package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/xavierca1/dealflow/internal/entity"
	"github.com/xavierca1/dealflow/internal/infra/integration/crmapi"
)

const defaultInterventionStatus = "scheduled"

var errDraftStore = errors.New("outreach draft store")

type OutreachUseCase struct {
	Interventions InterventionGateway
	Drafts        entity.OutreachDraftRepositoryInterface
	Cache         CacheInvalidator
	Events        EventPublisher
	Logger        *zap.Logger
	Now           func() time.Time
}

func NewOutreachUseCase(
	interventions InterventionGateway,
	drafts entity.OutreachDraftRepositoryInterface,
	cache CacheInvalidator,
	events EventPublisher,
	logger *zap.Logger,
) *OutreachUseCase {
	return &OutreachUseCase{
		Interventions: interventions,
		Drafts:        drafts,
		Cache:         cache,
		Events:        events,
		Logger:        logger,
		Now:           time.Now,
	}
}

// GetDraft prefers the caller's saved draft and falls back to the values
// recorded on the intervention itself.
func (uc *OutreachUseCase) GetDraft(ctx context.Context, caller Caller, interventionID int64) (*entity.OutreachDraft, error) {
	d, err := uc.Drafts.Find(ctx, caller.UserID(), interventionID)
	if err == nil {
		return d, nil
	}
	if !errors.Is(err, entity.ErrDraftNotFound) {
		return nil, &TechnicalError{Code: CodeDatabase, Message: "failed to load outreach draft", Err: err}
	}

	iv, err := uc.findIntervention(ctx, caller, interventionID)
	if err != nil {
		return nil, err
	}
	return &entity.OutreachDraft{
		UserID:         caller.UserID(),
		InterventionID: interventionID,
		Notes:          iv.Notes,
		FollowUpDate:   iv.FollowUpDate,
		FollowUpTime:   iv.FollowUpTime,
	}, nil
}

func (uc *OutreachUseCase) SaveDraft(ctx context.Context, caller Caller, interventionID int64, in OutreachInput) (*entity.OutreachDraft, error) {
	d := &entity.OutreachDraft{
		UserID:         caller.UserID(),
		InterventionID: interventionID,
		Notes:          in.Notes,
		FollowUpDate:   in.FollowUpDate,
		FollowUpTime:   in.FollowUpTime,
		UpdatedAt:      uc.Now().UTC(),
	}
	if err := uc.Drafts.Upsert(ctx, d); err != nil {
		return nil, &TechnicalError{Code: CodeDatabase, Message: "failed to save outreach draft", Err: err}
	}
	return d, nil
}

// Complete marks the intervention completed upstream and keeps the notes
// locally. If the local write fails, the upstream status is put back.
func (uc *OutreachUseCase) Complete(ctx context.Context, caller Caller, interventionID int64, in OutreachInput) error {
	iv, err := uc.findIntervention(ctx, caller, interventionID)
	if err != nil {
		return err
	}
	if iv.IsCompleted() {
		return nil
	}

	previous := iv.Status
	if previous == "" {
		previous = defaultInterventionStatus
	}
	completed := entity.InterventionCompleted

	upd := crmapi.InterventionUpdate{Status: &completed}
	if in.Notes != "" {
		upd.Notes = &in.Notes
	}
	if in.FollowUpDate != "" {
		upd.FollowUpDate = &in.FollowUpDate
	}
	if in.FollowUpTime != "" {
		upd.FollowUpTime = &in.FollowUpTime
	}

	draft := &entity.OutreachDraft{
		UserID:         caller.UserID(),
		InterventionID: interventionID,
		Notes:          in.Notes,
		FollowUpDate:   in.FollowUpDate,
		FollowUpTime:   in.FollowUpTime,
		UpdatedAt:      uc.Now().UTC(),
	}

	tx := NewTransaction(uc.Logger)
	tx.Add("update intervention",
		func(ctx context.Context) error {
			return uc.Interventions.UpdateIntervention(ctx, caller.Token, interventionID, upd)
		},
		func(ctx context.Context) error {
			return uc.Interventions.UpdateIntervention(ctx, caller.Token, interventionID, crmapi.InterventionUpdate{Status: &previous})
		},
	)
	tx.Add("save outreach notes",
		func(ctx context.Context) error {
			if err := uc.Drafts.Upsert(ctx, draft); err != nil {
				return fmt.Errorf("%w: %w", errDraftStore, err)
			}
			return nil
		},
		nil,
	)

	if err := tx.Execute(ctx); err != nil {
		if errors.Is(err, errDraftStore) {
			return &TechnicalError{Code: CodeDatabase, Message: "failed to save outreach notes", Err: err}
		}
		return upstreamError("failed to complete intervention", err)
	}

	uc.Cache.Invalidate()

	ev := entity.LeadEvent{
		Type:           entity.EventInterventionCompleted,
		LeadID:         iv.LeadID.String(),
		InterventionID: interventionID,
		OccurredAt:     uc.Now().UTC(),
	}
	if err := uc.Events.PublishLeadEvent(ctx, ev); err != nil {
		uc.Logger.Warn("intervention completed but event not published",
			zap.Int64("intervention_id", interventionID), zap.Error(err))
	}
	return nil
}

func (uc *OutreachUseCase) findIntervention(ctx context.Context, caller Caller, id int64) (*entity.Intervention, error) {
	list, err := uc.Interventions.ListScheduledInterventions(ctx, caller.Token)
	if err != nil {
		return nil, upstreamError("failed to load interventions", err)
	}
	for i := range list {
		if list[i].ID == id {
			return &list[i], nil
		}
	}
	return nil, &DomainError{Code: CodeNotFound, Message: fmt.Sprintf("intervention %d not found", id)}
}
