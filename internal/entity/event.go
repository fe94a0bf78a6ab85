package entity

import "time"

const (
	EventLeadCreated           = "lead.created"
	EventLeadUpdated           = "lead.updated"
	EventInterventionCompleted = "intervention.completed"
	EventRemarkChanged         = "remark.changed"
	EventActionableChanged     = "actionable.changed"
)

// LeadEvent notifies other replicas and workers that pipeline data changed.
type LeadEvent struct {
	Type           string    `json:"type"`
	LeadID         string    `json:"leadId,omitempty"`
	InterventionID int64     `json:"interventionId,omitempty"`
	AssignedTo     string    `json:"assignedTo,omitempty"`
	CompanyName    string    `json:"companyName,omitempty"`
	OccurredAt     time.Time `json:"occurredAt"`
}

// KnownEventType reports whether t is one of the published event types.
func KnownEventType(t string) bool {
	switch t {
	case EventLeadCreated, EventLeadUpdated, EventInterventionCompleted,
		EventRemarkChanged, EventActionableChanged:
		return true
	}
	return false
}
