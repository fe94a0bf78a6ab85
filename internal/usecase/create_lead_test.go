package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/xavierca1/dealflow/internal/entity"
	"github.com/xavierca1/dealflow/internal/infra/integration/crmapi"
)

func TestCreateLeadSuccess(t *testing.T) {
	gw := new(MockGateway)
	cache := new(MockCache)
	pub := new(MockPublisher)
	store := newMemoryStore()
	store.SaveDraft(testCaller.SessionID, entity.LeadForm{CompanyName: "Acm"})

	form := entity.LeadForm{CompanyName: "  Acme Polymers ", Sector: "Specialty Chemicals", AssignedTo: "u-2"}
	gw.On("CreateIndividualLead", mock.Anything, "tok", mock.MatchedBy(func(f entity.LeadForm) bool {
		return f.CompanyName == "Acme Polymers"
	})).Return(&crmapi.CreateLeadOutput{Lead: &entity.Lead{ID: "77"}}, nil)
	cache.On("Invalidate").Return()
	pub.On("PublishLeadEvent", mock.Anything, mock.MatchedBy(func(ev entity.LeadEvent) bool {
		return ev.Type == entity.EventLeadCreated && ev.LeadID == "77" && ev.AssignedTo == "u-2" && ev.CompanyName == "Acme Polymers"
	})).Return(nil)

	uc := NewCreateLeadUseCase(gw, store, cache, pub, zap.NewNop())
	out, err := uc.Execute(context.Background(), testCaller, form)

	require.NoError(t, err)
	assert.Equal(t, "Lead and company created successfully", out.Message)
	_, hasDraft := store.Draft(testCaller.SessionID)
	assert.False(t, hasDraft, "draft is cleared after creation")
	gw.AssertExpectations(t)
	cache.AssertExpectations(t)
	pub.AssertExpectations(t)
}

func TestCreateLeadValidationFailure(t *testing.T) {
	gw := new(MockGateway)
	uc := NewCreateLeadUseCase(gw, newMemoryStore(), new(MockCache), new(MockPublisher), zap.NewNop())

	_, err := uc.Execute(context.Background(), testCaller, entity.LeadForm{Website: "nope"})

	var de *DomainError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, CodeValidation, de.Code)
	assert.Equal(t, []string{"companyName", "sector", "website"}, fields(de.Fields))
	gw.AssertNotCalled(t, "CreateIndividualLead", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateLeadKeepsDraftOnUpstreamError(t *testing.T) {
	gw := new(MockGateway)
	store := newMemoryStore()
	store.SaveDraft(testCaller.SessionID, entity.LeadForm{CompanyName: "Acme"})
	gw.On("CreateIndividualLead", mock.Anything, "tok", mock.Anything).
		Return(nil, &crmapi.StatusError{Status: 409, Body: "company already exists"})

	uc := NewCreateLeadUseCase(gw, store, new(MockCache), new(MockPublisher), zap.NewNop())
	_, err := uc.Execute(context.Background(), testCaller, entity.LeadForm{CompanyName: "Acme", Sector: "IT"})

	var de *DomainError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, "company already exists", de.Message)
	_, hasDraft := store.Draft(testCaller.SessionID)
	assert.True(t, hasDraft)
}

func TestCreateLeadPublishFailureIsNotFatal(t *testing.T) {
	gw := new(MockGateway)
	cache := new(MockCache)
	pub := new(MockPublisher)
	gw.On("CreateIndividualLead", mock.Anything, "tok", mock.Anything).
		Return(&crmapi.CreateLeadOutput{Message: "created"}, nil)
	cache.On("Invalidate").Return()
	pub.On("PublishLeadEvent", mock.Anything, mock.Anything).Return(errors.New("channel closed"))

	uc := NewCreateLeadUseCase(gw, newMemoryStore(), cache, pub, zap.NewNop())
	out, err := uc.Execute(context.Background(), testCaller, entity.LeadForm{CompanyName: "Acme", Sector: "IT"})

	require.NoError(t, err)
	assert.Equal(t, "created", out.Message)
}
