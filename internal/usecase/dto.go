package usecase

import (
	"github.com/xavierca1/dealflow/internal/entity"
	"github.com/xavierca1/dealflow/internal/text"
)

type CreateLeadOutput struct {
	Message string       `json:"message"`
	Lead    *entity.Lead `json:"lead,omitempty"`
}

type LeadDetailsOutput struct {
	Lead          *entity.Lead          `json:"lead,omitempty"`
	Description   []text.Part           `json:"description"`
	UpcomingTasks []entity.Intervention `json:"upcomingTasks"`
	Remarks       []entity.Remark       `json:"remarks"`
	Actionables   []entity.Actionable   `json:"actionables"`
}

// LeadDraftOutput is a saved lead form plus whether its values fall outside
// the advisory vocabulary, so the form can reopen in free-text mode.
type LeadDraftOutput struct {
	Form            entity.LeadForm `json:"form"`
	CustomSector    bool            `json:"customSector"`
	CustomSubSector bool            `json:"customSubSector"`
}

type Reminder struct {
	entity.Intervention
	ActivityLabel string `json:"activityLabel"`
}

type OutreachInput struct {
	Notes        string `json:"notes"`
	FollowUpDate string `json:"followUpDate"`
	FollowUpTime string `json:"followUpTime"`
}
