package usecase

import (
	"context"
	"time"

	"github.com/xavierca1/dealflow/internal/entity"
	"github.com/xavierca1/dealflow/internal/infra/integration/crmapi"
	"github.com/xavierca1/dealflow/internal/pipeline"
)

// Caller identifies who is acting: the verified user, the access token to
// forward upstream and the browsing session.
type Caller struct {
	User      *entity.User
	Token     string
	SessionID string
}

func (c Caller) UserID() string {
	if c.User == nil {
		return ""
	}
	return c.User.ID
}

// LeadGateway is the CRM API surface the use cases need.
type LeadGateway interface {
	CreateIndividualLead(ctx context.Context, token string, form entity.LeadForm) (*crmapi.CreateLeadOutput, error)
	GetLeadDetails(ctx context.Context, token, leadID string) (*entity.LeadDetails, error)
	ListRemarks(ctx context.Context, token, leadID string) ([]entity.Remark, error)
	AddRemark(ctx context.Context, token, leadID, remark string) (*entity.Remark, error)
	DeleteRemark(ctx context.Context, token, leadID, remarkID string) error
	ListActionables(ctx context.Context, token, leadID string) ([]entity.Actionable, error)
	AddActionable(ctx context.Context, token, leadID, actionable string) (*entity.Actionable, error)
	DeleteActionable(ctx context.Context, token, leadID, actionableID string) error
}

type InterventionGateway interface {
	ListScheduledInterventions(ctx context.Context, token string) ([]entity.Intervention, error)
	UpdateIntervention(ctx context.Context, token string, id int64, upd crmapi.InterventionUpdate) error
}

type UserDirectory interface {
	ListUsers(ctx context.Context, token string) ([]entity.User, error)
}

// LeadSource returns the full lead collection visible to key, fetching with
// token when it is not cached.
type LeadSource interface {
	Leads(ctx context.Context, key, token string) ([]entity.Lead, error)
}

type CacheInvalidator interface {
	Invalidate()
}

type EventPublisher interface {
	PublishLeadEvent(ctx context.Context, ev entity.LeadEvent) error
}

type CriteriaStore interface {
	Criteria(sessionID string) pipeline.Criteria
	SaveCriteria(sessionID string, c pipeline.Criteria)
	ResetCriteria(sessionID string)
}

type DraftStore interface {
	Draft(sessionID string) (*entity.LeadForm, bool)
	SaveDraft(sessionID string, form entity.LeadForm)
	ClearDraft(sessionID string)
}

type AuthProvider interface {
	GetUser(ctx context.Context, accessToken string) (*entity.User, error)
	RecoverPassword(ctx context.Context, email, redirectTo string) error
	UpdatePassword(ctx context.Context, accessToken, newPassword string) error
}

type EmailService interface {
	SendReminder(to, name, activity, company string, at time.Time) error
	SendLeadAssigned(to, name, company, leadID string) error
}
