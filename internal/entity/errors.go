package entity

import "errors"

var (
	ErrDraftNotFound    = errors.New("draft not found")
	ErrReminderRecorded = errors.New("reminder already recorded")
)
