package usecase

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/xavierca1/dealflow/internal/entity"
)

// ProcessLeadEventUseCase reacts to events from the queue: every event
// drops the cached collection, and a new assigned lead notifies its owner.
type ProcessLeadEventUseCase struct {
	Cache        CacheInvalidator
	Users        UserDirectory
	Mailer       EmailService
	ServiceToken string
	Logger       *zap.Logger
}

func NewProcessLeadEventUseCase(
	cache CacheInvalidator,
	users UserDirectory,
	mailer EmailService,
	serviceToken string,
	logger *zap.Logger,
) *ProcessLeadEventUseCase {
	return &ProcessLeadEventUseCase{
		Cache:        cache,
		Users:        users,
		Mailer:       mailer,
		ServiceToken: serviceToken,
		Logger:       logger,
	}
}

func (uc *ProcessLeadEventUseCase) Execute(ctx context.Context, ev entity.LeadEvent) error {
	uc.Cache.Invalidate()

	if ev.Type != entity.EventLeadCreated || ev.AssignedTo == "" || uc.Mailer == nil {
		return nil
	}

	users, err := uc.Users.ListUsers(ctx, uc.ServiceToken)
	if err != nil {
		return fmt.Errorf("load users for assignment e-mail: %w", err)
	}
	for _, u := range users {
		if u.ID != ev.AssignedTo {
			continue
		}
		if u.Email == "" {
			return nil
		}
		if err := uc.Mailer.SendLeadAssigned(u.Email, u.FullName(), ev.CompanyName, ev.LeadID); err != nil {
			return fmt.Errorf("send assignment e-mail: %w", err)
		}
		uc.Logger.Info("assignment e-mail sent", zap.String("lead_id", ev.LeadID), zap.String("user_id", u.ID))
		return nil
	}

	uc.Logger.Warn("assignee not found", zap.String("assigned_to", ev.AssignedTo))
	return nil
}

// NotifyLeadChangedUseCase handles verified upstream change notifications.
type NotifyLeadChangedUseCase struct {
	Cache  CacheInvalidator
	Events EventPublisher
}

func NewNotifyLeadChangedUseCase(cache CacheInvalidator, events EventPublisher) *NotifyLeadChangedUseCase {
	return &NotifyLeadChangedUseCase{Cache: cache, Events: events}
}

func (uc *NotifyLeadChangedUseCase) Execute(ctx context.Context, leadID string) error {
	uc.Cache.Invalidate()
	ev := entity.LeadEvent{
		Type:       entity.EventLeadUpdated,
		LeadID:     leadID,
		OccurredAt: time.Now().UTC(),
	}
	if err := uc.Events.PublishLeadEvent(ctx, ev); err != nil {
		return &TechnicalError{Code: CodeUpstream, Message: "failed to publish lead event", Err: err}
	}
	return nil
}
