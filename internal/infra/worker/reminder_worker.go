package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/xavierca1/dealflow/internal/infra/http/middleware"
)

type ReminderSender interface {
	Execute(ctx context.Context) (int, error)
}

// ReminderWorker e-mails due outreach reminders on a fixed tick.
type ReminderWorker struct {
	sender       ReminderSender
	tickInterval time.Duration
	logger       *zap.Logger
}

func NewReminderWorker(sender ReminderSender, interval time.Duration, logger *zap.Logger) *ReminderWorker {
	if interval <= 0 {
		interval = time.Minute
	}
	return &ReminderWorker{
		sender:       sender,
		tickInterval: interval,
		logger:       logger,
	}
}

// Start runs one pass immediately and then one per tick until ctx is done.
func (w *ReminderWorker) Start(ctx context.Context) {
	w.logger.Info("reminder worker started", zap.Duration("interval", w.tickInterval))

	ticker := time.NewTicker(w.tickInterval)
	defer ticker.Stop()

	w.sendDue(ctx)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("reminder worker stopped")
			return
		case <-ticker.C:
			w.sendDue(ctx)
		}
	}
}

func (w *ReminderWorker) sendDue(ctx context.Context) {
	sent, err := w.sender.Execute(ctx)
	if err != nil {
		if ctx.Err() == nil {
			middleware.RecordIntegrationError("reminders")
			w.logger.Error("reminder pass failed", zap.Error(err))
		}
		return
	}
	if sent > 0 {
		middleware.RecordRemindersSent(sent)
		w.logger.Info("reminders sent", zap.Int("count", sent))
	}
}
