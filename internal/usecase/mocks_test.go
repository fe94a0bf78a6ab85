package usecase

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/xavierca1/dealflow/internal/entity"
	"github.com/xavierca1/dealflow/internal/infra/integration/crmapi"
	"github.com/xavierca1/dealflow/internal/pipeline"
)

type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) CreateIndividualLead(ctx context.Context, token string, form entity.LeadForm) (*crmapi.CreateLeadOutput, error) {
	args := m.Called(ctx, token, form)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*crmapi.CreateLeadOutput), args.Error(1)
}

func (m *MockGateway) GetLeadDetails(ctx context.Context, token, leadID string) (*entity.LeadDetails, error) {
	args := m.Called(ctx, token, leadID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.LeadDetails), args.Error(1)
}

func (m *MockGateway) ListRemarks(ctx context.Context, token, leadID string) ([]entity.Remark, error) {
	args := m.Called(ctx, token, leadID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Remark), args.Error(1)
}

func (m *MockGateway) AddRemark(ctx context.Context, token, leadID, remark string) (*entity.Remark, error) {
	args := m.Called(ctx, token, leadID, remark)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Remark), args.Error(1)
}

func (m *MockGateway) DeleteRemark(ctx context.Context, token, leadID, remarkID string) error {
	return m.Called(ctx, token, leadID, remarkID).Error(0)
}

func (m *MockGateway) ListActionables(ctx context.Context, token, leadID string) ([]entity.Actionable, error) {
	args := m.Called(ctx, token, leadID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Actionable), args.Error(1)
}

func (m *MockGateway) AddActionable(ctx context.Context, token, leadID, actionable string) (*entity.Actionable, error) {
	args := m.Called(ctx, token, leadID, actionable)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Actionable), args.Error(1)
}

func (m *MockGateway) DeleteActionable(ctx context.Context, token, leadID, actionableID string) error {
	return m.Called(ctx, token, leadID, actionableID).Error(0)
}

func (m *MockGateway) ListScheduledInterventions(ctx context.Context, token string) ([]entity.Intervention, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Intervention), args.Error(1)
}

func (m *MockGateway) UpdateIntervention(ctx context.Context, token string, id int64, upd crmapi.InterventionUpdate) error {
	return m.Called(ctx, token, id, upd).Error(0)
}

func (m *MockGateway) ListUsers(ctx context.Context, token string) ([]entity.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.User), args.Error(1)
}

type MockLeadSource struct {
	mock.Mock
}

func (m *MockLeadSource) Leads(ctx context.Context, key, token string) ([]entity.Lead, error) {
	args := m.Called(ctx, key, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Lead), args.Error(1)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) Invalidate() {
	m.Called()
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishLeadEvent(ctx context.Context, ev entity.LeadEvent) error {
	return m.Called(ctx, ev).Error(0)
}

type MockDraftRepository struct {
	mock.Mock
}

func (m *MockDraftRepository) Upsert(ctx context.Context, d *entity.OutreachDraft) error {
	return m.Called(ctx, d).Error(0)
}

func (m *MockDraftRepository) Find(ctx context.Context, userID string, interventionID int64) (*entity.OutreachDraft, error) {
	args := m.Called(ctx, userID, interventionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.OutreachDraft), args.Error(1)
}

func (m *MockDraftRepository) Delete(ctx context.Context, userID string, interventionID int64) error {
	return m.Called(ctx, userID, interventionID).Error(0)
}

type MockReminderLog struct {
	mock.Mock
}

func (m *MockReminderLog) SentAmong(ctx context.Context, ids []int64, day string) (map[int64]bool, error) {
	args := m.Called(ctx, ids, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]bool), args.Error(1)
}

func (m *MockReminderLog) Record(ctx context.Context, id int64, day, recipient string) error {
	return m.Called(ctx, id, day, recipient).Error(0)
}

type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendReminder(to, name, activity, company string, at time.Time) error {
	return m.Called(to, name, activity, company, at).Error(0)
}

func (m *MockEmailService) SendLeadAssigned(to, name, company, leadID string) error {
	return m.Called(to, name, company, leadID).Error(0)
}

type MockAuthProvider struct {
	mock.Mock
}

func (m *MockAuthProvider) GetUser(ctx context.Context, token string) (*entity.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockAuthProvider) RecoverPassword(ctx context.Context, email, redirectTo string) error {
	return m.Called(ctx, email, redirectTo).Error(0)
}

func (m *MockAuthProvider) UpdatePassword(ctx context.Context, token, password string) error {
	return m.Called(ctx, token, password).Error(0)
}

// memoryStore is a CriteriaStore and DraftStore backed by maps.
type memoryStore struct {
	criteria map[string]pipeline.Criteria
	drafts   map[string]entity.LeadForm
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		criteria: map[string]pipeline.Criteria{},
		drafts:   map[string]entity.LeadForm{},
	}
}

func (s *memoryStore) Criteria(sid string) pipeline.Criteria {
	if c, ok := s.criteria[sid]; ok {
		return c
	}
	return pipeline.DefaultCriteria()
}

func (s *memoryStore) SaveCriteria(sid string, c pipeline.Criteria) { s.criteria[sid] = c }
func (s *memoryStore) ResetCriteria(sid string)                     { delete(s.criteria, sid) }

func (s *memoryStore) Draft(sid string) (*entity.LeadForm, bool) {
	f, ok := s.drafts[sid]
	if !ok {
		return nil, false
	}
	return &f, true
}

func (s *memoryStore) SaveDraft(sid string, f entity.LeadForm) { s.drafts[sid] = f }
func (s *memoryStore) ClearDraft(sid string)                   { delete(s.drafts, sid) }

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }

var testCaller = Caller{
	User:      &entity.User{ID: "u-1", FirstName: "Priya", LastName: "Nair", Email: "priya@bank.in"},
	Token:     "tok",
	SessionID: "sid-1",
}
