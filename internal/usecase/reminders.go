package usecase

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/xavierca1/dealflow/internal/entity"
)

var activityTypeLabels = map[string]string{
	"linkedin_request_self":    "LinkedIn Request (Self)",
	"linkedin_messages_self":   "LinkedIn Messages (Self)",
	"linkedin_request_dinesh":  "LinkedIn Request (Dinesh)",
	"linkedin_messages_dinesh": "LinkedIn Messages (Dinesh)",
	"linkedin_request_kvs":     "LinkedIn Request (KVS)",
	"linkedin_messages_kvs":    "LinkedIn Messages (KVS)",
	"whatsapp_kvs":             "WhatsApp (KVS)",
	"whatsapp_dinesh":          "WhatsApp (Dinesh)",
	"email_d0_analyst":         "Email D0 (Analyst)",
	"email_d3_analyst":         "Email D3 (Analyst)",
	"email_d7_kvs":             "Email D7 (KVS)",
	"call_d1_dinesh":           "Call D1 (Dinesh)",
	"channel_partner":          "Channel Partner",
}

// ActivityLabel names an activity type code; unknown codes are shown as is.
func ActivityLabel(code string) string {
	if l, ok := activityTypeLabels[code]; ok {
		return l
	}
	return code
}

// TodayReminders keeps the open interventions scheduled on now's calendar
// day, in now's location, preserving input order.
func TodayReminders(interventions []entity.Intervention, now time.Time) []Reminder {
	y, m, d := now.Date()
	out := make([]Reminder, 0)
	for _, iv := range interventions {
		if iv.IsCompleted() || iv.ScheduledAt == nil {
			continue
		}
		sy, sm, sd := iv.ScheduledAt.In(now.Location()).Date()
		if sy != y || sm != m || sd != d {
			continue
		}
		out = append(out, Reminder{Intervention: iv, ActivityLabel: ActivityLabel(iv.Type)})
	}
	return out
}

// DueReminders narrows today's reminders to those whose time has come.
func DueReminders(interventions []entity.Intervention, now time.Time) []Reminder {
	today := TodayReminders(interventions, now)
	out := today[:0]
	for _, r := range today {
		if !r.ScheduledAt.After(now) {
			out = append(out, r)
		}
	}
	return out
}

type RemindersUseCase struct {
	Interventions InterventionGateway
	Now           func() time.Time
}

func NewRemindersUseCase(interventions InterventionGateway) *RemindersUseCase {
	return &RemindersUseCase{Interventions: interventions, Now: time.Now}
}

func (uc *RemindersUseCase) Today(ctx context.Context, caller Caller) ([]Reminder, error) {
	list, err := uc.Interventions.ListScheduledInterventions(ctx, caller.Token)
	if err != nil {
		return nil, upstreamError("failed to load reminders", err)
	}
	return TodayReminders(list, uc.Now()), nil
}

// SendRemindersUseCase e-mails each assignee once per due reminder and day.
// It runs with the service token, outside any user request.
type SendRemindersUseCase struct {
	Interventions InterventionGateway
	Log           entity.ReminderLogRepositoryInterface
	Mailer        EmailService
	ServiceToken  string
	Logger        *zap.Logger
	Now           func() time.Time
}

func NewSendRemindersUseCase(
	interventions InterventionGateway,
	log entity.ReminderLogRepositoryInterface,
	mailer EmailService,
	serviceToken string,
	logger *zap.Logger,
) *SendRemindersUseCase {
	return &SendRemindersUseCase{
		Interventions: interventions,
		Log:           log,
		Mailer:        mailer,
		ServiceToken:  serviceToken,
		Logger:        logger,
		Now:           time.Now,
	}
}

// Execute returns how many e-mails went out.
func (uc *SendRemindersUseCase) Execute(ctx context.Context) (int, error) {
	list, err := uc.Interventions.ListScheduledInterventions(ctx, uc.ServiceToken)
	if err != nil {
		return 0, upstreamError("failed to load scheduled interventions", err)
	}

	now := uc.Now()
	due := DueReminders(list, now)
	if len(due) == 0 {
		return 0, nil
	}

	day := now.Format(time.DateOnly)
	ids := make([]int64, 0, len(due))
	for _, r := range due {
		ids = append(ids, r.ID)
	}
	sent, err := uc.Log.SentAmong(ctx, ids, day)
	if err != nil {
		return 0, &TechnicalError{Code: CodeDatabase, Message: "failed to read reminder log", Err: err}
	}

	count := 0
	for _, r := range due {
		if sent[r.ID] {
			continue
		}
		if r.User == nil || r.User.Email == "" {
			uc.Logger.Debug("reminder without recipient", zap.Int64("intervention_id", r.ID))
			continue
		}

		company := ""
		if r.Lead != nil {
			company = r.Lead.Company.Name
		}
		if err := uc.Mailer.SendReminder(r.User.Email, r.User.FullName(), r.ActivityLabel, company, *r.ScheduledAt); err != nil {
			uc.Logger.Error("failed to send reminder", zap.Int64("intervention_id", r.ID), zap.Error(err))
			continue
		}

		if err := uc.Log.Record(ctx, r.ID, day, r.User.Email); err != nil && !errors.Is(err, entity.ErrReminderRecorded) {
			uc.Logger.Error("reminder sent but not recorded", zap.Int64("intervention_id", r.ID), zap.Error(err))
		}
		count++
	}
	return count, nil
}
