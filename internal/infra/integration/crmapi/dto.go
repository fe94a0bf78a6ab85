package crmapi

import (
	"fmt"

	"github.com/xavierca1/dealflow/internal/entity"
)

// StatusError is a non-2xx answer from the CRM API.
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Body)
}

type CreateLeadOutput struct {
	Message string       `json:"message"`
	Lead    *entity.Lead `json:"lead,omitempty"`
}

// InterventionUpdate is a partial PUT body; nil fields are left out.
type InterventionUpdate struct {
	Status       *string `json:"status,omitempty"`
	Notes        *string `json:"notes,omitempty"`
	FollowUpDate *string `json:"followUpDate,omitempty"`
	FollowUpTime *string `json:"followUpTime,omitempty"`
}

type remarkBody struct {
	Remark string `json:"remark"`
}

type actionableBody struct {
	Actionable string `json:"actionable"`
}
