package usecase

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/xavierca1/dealflow/internal/entity"
)

// NotesUseCase manages the remarks and actionables attached to a lead.
type NotesUseCase struct {
	Gateway LeadGateway
	Events  EventPublisher
	Logger  *zap.Logger
}

func NewNotesUseCase(gateway LeadGateway, events EventPublisher, logger *zap.Logger) *NotesUseCase {
	return &NotesUseCase{Gateway: gateway, Events: events, Logger: logger}
}

func (uc *NotesUseCase) AddRemark(ctx context.Context, caller Caller, leadID, remark string) (*entity.Remark, error) {
	remark = strings.TrimSpace(remark)
	if remark == "" {
		return nil, validationFailed([]ValidationError{{"remark", "is required"}})
	}

	r, err := uc.Gateway.AddRemark(ctx, caller.Token, leadID, remark)
	if err != nil {
		return nil, upstreamError("failed to add remark", err)
	}
	uc.publish(ctx, entity.EventRemarkChanged, leadID)
	return r, nil
}

func (uc *NotesUseCase) DeleteRemark(ctx context.Context, caller Caller, leadID, remarkID string) error {
	if err := uc.Gateway.DeleteRemark(ctx, caller.Token, leadID, remarkID); err != nil {
		return upstreamError("failed to delete remark", err)
	}
	uc.publish(ctx, entity.EventRemarkChanged, leadID)
	return nil
}

func (uc *NotesUseCase) AddActionable(ctx context.Context, caller Caller, leadID, actionable string) (*entity.Actionable, error) {
	actionable = strings.TrimSpace(actionable)
	if actionable == "" {
		return nil, validationFailed([]ValidationError{{"actionable", "is required"}})
	}

	a, err := uc.Gateway.AddActionable(ctx, caller.Token, leadID, actionable)
	if err != nil {
		return nil, upstreamError("failed to save actionable", err)
	}
	uc.publish(ctx, entity.EventActionableChanged, leadID)
	return a, nil
}

func (uc *NotesUseCase) DeleteActionable(ctx context.Context, caller Caller, leadID, actionableID string) error {
	if err := uc.Gateway.DeleteActionable(ctx, caller.Token, leadID, actionableID); err != nil {
		return upstreamError("failed to delete actionable", err)
	}
	uc.publish(ctx, entity.EventActionableChanged, leadID)
	return nil
}

func (uc *NotesUseCase) publish(ctx context.Context, eventType, leadID string) {
	err := uc.Events.PublishLeadEvent(ctx, entity.LeadEvent{
		Type:       eventType,
		LeadID:     leadID,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		uc.Logger.Warn("event not published", zap.String("type", eventType), zap.String("lead_id", leadID), zap.Error(err))
	}
}
