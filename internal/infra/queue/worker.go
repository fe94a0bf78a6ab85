package queue

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/xavierca1/dealflow/internal/entity"
)

type LeadEventHandler interface {
	Execute(ctx context.Context, ev entity.LeadEvent) error
}

// Worker consumes lead events. Malformed messages and handler failures are
// rejected without requeue and end up in the DLQ.
type Worker struct {
	Channel *amqp.Channel
	Handler LeadEventHandler
	Logger  *zap.Logger
}

func NewWorker(ch *amqp.Channel, handler LeadEventHandler, logger *zap.Logger) *Worker {
	return &Worker{Channel: ch, Handler: handler, Logger: logger}
}

// Start registers the consumer and blocks until ctx is done or the
// delivery channel closes.
func (w *Worker) Start(ctx context.Context, queueName string) error {
	msgs, err := w.Channel.ConsumeWithContext(ctx,
		queueName,
		"",    // consumer
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("register consumer on %s: %w", queueName, err)
	}

	w.Logger.Info("worker consuming", zap.String("queue", queueName))
	return w.Run(ctx, msgs)
}

func (w *Worker) Run(ctx context.Context, msgs <-chan amqp.Delivery) error {
	for {
		select {
		case <-ctx.Done():
			w.Logger.Info("worker stopped")
			return nil
		case d, ok := <-msgs:
			if !ok {
				return fmt.Errorf("delivery channel closed")
			}
			w.handle(ctx, d)
		}
	}
}

func (w *Worker) handle(ctx context.Context, d amqp.Delivery) {
	var ev entity.LeadEvent
	if err := json.Unmarshal(d.Body, &ev); err != nil {
		w.Logger.Warn("discarding malformed event", zap.String("message_id", d.MessageId), zap.Error(err))
		_ = d.Nack(false, false)
		return
	}

	if !entity.KnownEventType(ev.Type) {
		w.Logger.Warn("unknown event type", zap.String("type", ev.Type))
		_ = d.Ack(false)
		return
	}

	if err := w.Handler.Execute(ctx, ev); err != nil {
		w.Logger.Error("event handler failed",
			zap.String("type", ev.Type), zap.String("lead_id", ev.LeadID), zap.Error(err))
		_ = d.Nack(false, false)
		return
	}

	w.Logger.Debug("event processed", zap.String("type", ev.Type), zap.String("lead_id", ev.LeadID))
	_ = d.Ack(false)
}
