package usecase

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/xavierca1/dealflow/internal/entity"
	"github.com/xavierca1/dealflow/internal/text"
)

type LeadDetailsUseCase struct {
	Gateway LeadGateway
}

func NewLeadDetailsUseCase(gateway LeadGateway) *LeadDetailsUseCase {
	return &LeadDetailsUseCase{Gateway: gateway}
}

// Execute loads the details, remarks and actionables of one lead
// concurrently. Any failure fails the whole view.
func (uc *LeadDetailsUseCase) Execute(ctx context.Context, caller Caller, leadID string) (*LeadDetailsOutput, error) {
	var (
		details     *entity.LeadDetails
		remarks     []entity.Remark
		actionables []entity.Actionable
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		details, err = uc.Gateway.GetLeadDetails(gctx, caller.Token, leadID)
		return err
	})
	g.Go(func() error {
		var err error
		remarks, err = uc.Gateway.ListRemarks(gctx, caller.Token, leadID)
		return err
	})
	g.Go(func() error {
		var err error
		actionables, err = uc.Gateway.ListActionables(gctx, caller.Token, leadID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, upstreamError("failed to load lead details", err)
	}

	out := &LeadDetailsOutput{
		Lead:          details.Lead,
		UpcomingTasks: nonNil(details.UpcomingTasks),
		Remarks:       nonNil(remarks),
		Actionables:   nonNil(actionables),
		Description:   []text.Part{},
	}
	if details.Lead != nil {
		if parts := text.SplitURLs(details.Lead.Company.BusinessDescription); parts != nil {
			out.Description = parts
		}
	}
	return out, nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
