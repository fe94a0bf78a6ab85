package usecase

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/xavierca1/dealflow/internal/entity"
)

type CreateLeadUseCase struct {
	Gateway LeadGateway
	Drafts  DraftStore
	Cache   CacheInvalidator
	Events  EventPublisher
	Logger  *zap.Logger
}

func NewCreateLeadUseCase(
	gateway LeadGateway,
	drafts DraftStore,
	cache CacheInvalidator,
	events EventPublisher,
	logger *zap.Logger,
) *CreateLeadUseCase {
	return &CreateLeadUseCase{
		Gateway: gateway,
		Drafts:  drafts,
		Cache:   cache,
		Events:  events,
		Logger:  logger,
	}
}

func (uc *CreateLeadUseCase) Execute(ctx context.Context, caller Caller, input entity.LeadForm) (*CreateLeadOutput, error) {
	input.CompanyName = strings.TrimSpace(input.CompanyName)
	input.Sector = strings.TrimSpace(input.Sector)
	input.SubSector = strings.TrimSpace(input.SubSector)
	input.Website = strings.TrimSpace(input.Website)

	if errs := ValidateCreateLeadInput(input); len(errs) > 0 {
		return nil, validationFailed(errs)
	}

	created, err := uc.Gateway.CreateIndividualLead(ctx, caller.Token, input)
	if err != nil {
		return nil, upstreamError("failed to create lead", err)
	}

	uc.Drafts.ClearDraft(caller.SessionID)
	uc.Cache.Invalidate()

	ev := entity.LeadEvent{
		Type:        entity.EventLeadCreated,
		AssignedTo:  input.AssignedTo,
		CompanyName: input.CompanyName,
		OccurredAt:  time.Now().UTC(),
	}
	if created.Lead != nil {
		ev.LeadID = created.Lead.ID.String()
	}
	if err := uc.Events.PublishLeadEvent(ctx, ev); err != nil {
		// The lead exists upstream; a lost event only delays other replicas.
		uc.Logger.Warn("lead created but event not published",
			zap.String("company", input.CompanyName), zap.Error(err))
	}

	msg := created.Message
	if msg == "" {
		msg = "Lead and company created successfully"
	}
	uc.Logger.Info("lead created",
		zap.String("lead_id", ev.LeadID),
		zap.String("user_id", caller.UserID()),
	)

	return &CreateLeadOutput{Message: msg, Lead: created.Lead}, nil
}
