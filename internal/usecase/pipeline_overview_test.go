package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/dealflow/internal/entity"
	"github.com/xavierca1/dealflow/internal/infra/integration/crmapi"
	"github.com/xavierca1/dealflow/internal/pipeline"
)

func pipelineLeads() []entity.Lead {
	return []entity.Lead{
		{ID: "1", Stage: "qualified", Company: entity.Company{Name: "Acme", Sector: "IT", Location: "Pune"}},
		{ID: "2", Stage: "universe", Company: entity.Company{Name: "Beta", Sector: "IT"}},
		{ID: "3", Stage: "outreach", AssignedTo: strPtr("u-9"), Company: entity.Company{Name: "Gamma", Sector: "Logistics"}},
	}
}

func TestPipelineCountsUsesSessionCriteria(t *testing.T) {
	src := new(MockLeadSource)
	src.On("Leads", mock.Anything, "u-1", "tok").Return(pipelineLeads(), nil)
	store := newMemoryStore()
	uc := NewPipelineUseCase(src, store)

	uc.UpdateFilters(testCaller, pipeline.Patch{Sector: strPtr("it")})

	ov, err := uc.Counts(context.Background(), testCaller)

	require.NoError(t, err)
	assert.Nil(t, ov.Leads)
	assert.Equal(t, pipeline.Counts{Universe: 2, Qualified: 1}, ov.Counts)
	assert.Equal(t, "it", ov.Criteria.Sector)
	src.AssertExpectations(t)
}

func TestPipelineListNarrowsByStage(t *testing.T) {
	src := new(MockLeadSource)
	src.On("Leads", mock.Anything, "u-1", "tok").Return(pipelineLeads(), nil)
	store := newMemoryStore()
	uc := NewPipelineUseCase(src, store)

	ov, err := uc.List(context.Background(), testCaller, "outreach")
	require.NoError(t, err)
	require.Len(t, ov.Leads, 1)
	assert.Equal(t, entity.ID("3"), ov.Leads[0].ID)
	assert.Equal(t, 3, ov.Counts.Universe, "counts ignore the stage narrowing")

	ov, err = uc.List(context.Background(), testCaller, "universe")
	require.NoError(t, err)
	assert.Len(t, ov.Leads, 3)

	uc.UpdateFilters(testCaller, pipeline.Patch{Stage: strPtr("qualified")})
	ov, err = uc.List(context.Background(), testCaller, "")
	require.NoError(t, err)
	require.Len(t, ov.Leads, 1)
	assert.Equal(t, entity.ID("1"), ov.Leads[0].ID)
}

func TestPipelineFiltersLifecycle(t *testing.T) {
	uc := NewPipelineUseCase(new(MockLeadSource), newMemoryStore())

	assert.True(t, uc.Filters(testCaller).IsDefault())

	got := uc.UpdateFilters(testCaller, pipeline.Patch{AssignedTo: strPtr(pipeline.Unassigned), SearchTerm: strPtr("ac")})
	assert.Equal(t, pipeline.Unassigned, got.AssignedTo)
	assert.Equal(t, got, uc.Filters(testCaller))

	other := Caller{User: testCaller.User, Token: "tok", SessionID: "sid-2"}
	assert.True(t, uc.Filters(other).IsDefault(), "criteria are per session")

	assert.True(t, uc.ResetFilters(testCaller).IsDefault())
	assert.True(t, uc.Filters(testCaller).IsDefault())
}

func TestPipelineUpstreamFailure(t *testing.T) {
	src := new(MockLeadSource)
	src.On("Leads", mock.Anything, "u-1", "tok").Return(nil, &crmapi.StatusError{Status: 500, Body: "db down"})
	uc := NewPipelineUseCase(src, newMemoryStore())

	_, err := uc.Counts(context.Background(), testCaller)

	var te *TechnicalError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, CodeUpstream, te.Code)
}

func TestPipelineUpstreamUnauthorized(t *testing.T) {
	src := new(MockLeadSource)
	src.On("Leads", mock.Anything, "u-1", "tok").Return(nil, &crmapi.StatusError{Status: 401, Body: "expired"})
	uc := NewPipelineUseCase(src, newMemoryStore())

	_, err := uc.List(context.Background(), testCaller, "")

	var de *DomainError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, CodeUnauthorized, de.Code)
}
