package usecase

import (
	"github.com/xavierca1/dealflow/internal/entity"
	"github.com/xavierca1/dealflow/internal/vocabulary"
)

// LeadDraftUseCase keeps the half-filled individual lead form of a session.
type LeadDraftUseCase struct {
	Drafts     DraftStore
	Vocabulary *vocabulary.Vocabulary
}

func NewLeadDraftUseCase(drafts DraftStore, vocab *vocabulary.Vocabulary) *LeadDraftUseCase {
	if vocab == nil {
		vocab = vocabulary.Default
	}
	return &LeadDraftUseCase{Drafts: drafts, Vocabulary: vocab}
}

// Get returns the saved draft, or an empty form when there is none.
func (uc *LeadDraftUseCase) Get(caller Caller) LeadDraftOutput {
	form, ok := uc.Drafts.Draft(caller.SessionID)
	if !ok || form == nil {
		return LeadDraftOutput{}
	}
	return LeadDraftOutput{
		Form:            *form,
		CustomSector:    uc.Vocabulary.IsCustomSector(form.Sector),
		CustomSubSector: uc.Vocabulary.IsCustomSubSector(form.Sector, form.SubSector),
	}
}

// Save stores the form as-is; drafts are not validated.
func (uc *LeadDraftUseCase) Save(caller Caller, form entity.LeadForm) LeadDraftOutput {
	uc.Drafts.SaveDraft(caller.SessionID, form)
	return uc.Get(caller)
}

func (uc *LeadDraftUseCase) Clear(caller Caller) {
	uc.Drafts.ClearDraft(caller.SessionID)
}
