package entity

import (
	"context"
	"time"
)

const InterventionCompleted = "completed"

// Intervention is a scheduled outreach activity against a lead.
type Intervention struct {
	ID           int64      `json:"id"`
	LeadID       ID         `json:"leadId"`
	UserID       string     `json:"userId,omitempty"`
	Type         string     `json:"type"`
	Status       string     `json:"status"`
	Notes        string     `json:"notes,omitempty"`
	ScheduledAt  *time.Time `json:"scheduledAt,omitempty"`
	FollowUpDate string     `json:"followUpDate,omitempty"`
	FollowUpTime string     `json:"followUpTime,omitempty"`
	Lead         *Lead      `json:"lead,omitempty"`
	User         *User      `json:"user,omitempty"`
}

// IsCompleted reports whether the activity has been closed out.
func (i *Intervention) IsCompleted() bool {
	return i.Status == InterventionCompleted
}

type Remark struct {
	ID        ID     `json:"id"`
	LeadID    ID     `json:"leadId,omitempty"`
	Remark    string `json:"remark"`
	CreatedBy string `json:"createdBy,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
}

type Actionable struct {
	ID         ID     `json:"id"`
	LeadID     ID     `json:"leadId,omitempty"`
	Actionable string `json:"actionable"`
	CreatedBy  string `json:"createdBy,omitempty"`
	CreatedAt  string `json:"createdAt,omitempty"`
}

// LeadDetails is the upstream /leads/{id}/details payload.
type LeadDetails struct {
	Lead          *Lead          `json:"lead,omitempty"`
	UpcomingTasks []Intervention `json:"upcomingTasks"`
}

// OutreachDraft holds the notes a user has typed while completing an
// outreach task. It outlives the browser session.
type OutreachDraft struct {
	UserID         string    `json:"-"`
	InterventionID int64     `json:"interventionId"`
	Notes          string    `json:"notes"`
	FollowUpDate   string    `json:"followUpDate"`
	FollowUpTime   string    `json:"followUpTime"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

type OutreachDraftRepositoryInterface interface {
	Upsert(ctx context.Context, d *OutreachDraft) error
	Find(ctx context.Context, userID string, interventionID int64) (*OutreachDraft, error)
	Delete(ctx context.Context, userID string, interventionID int64) error
}

// ReminderLogRepositoryInterface records which reminders were already e-mailed.
type ReminderLogRepositoryInterface interface {
	SentAmong(ctx context.Context, interventionIDs []int64, day string) (map[int64]bool, error)
	Record(ctx context.Context, interventionID int64, day, recipient string) error
}
