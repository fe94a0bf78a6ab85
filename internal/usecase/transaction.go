package usecase

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Transaction runs a sequence of steps across systems that share no
// database transaction. When a step fails, the undo functions of the steps
// that already succeeded run in reverse order.
type Transaction struct {
	steps  []step
	logger *zap.Logger
}

type step struct {
	name string
	do   func(context.Context) error
	undo func(context.Context) error
}

func NewTransaction(logger *zap.Logger) *Transaction {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Transaction{logger: logger}
}

// Add appends a step. undo may be nil for steps with nothing to revert.
func (t *Transaction) Add(name string, do, undo func(context.Context) error) {
	t.steps = append(t.steps, step{name: name, do: do, undo: undo})
}

func (t *Transaction) Execute(ctx context.Context) error {
	for i, s := range t.steps {
		if err := s.do(ctx); err != nil {
			t.rollback(ctx, i)
			return fmt.Errorf("operation '%s' failed: %w (rolled back %d operations)", s.name, err, i)
		}
	}
	return nil
}

func (t *Transaction) rollback(ctx context.Context, failedAt int) {
	// Compensations must still run when the request context is gone.
	ctx = context.WithoutCancel(ctx)

	for i := failedAt - 1; i >= 0; i-- {
		s := t.steps[i]
		if s.undo == nil {
			continue
		}
		if err := s.undo(ctx); err != nil {
			t.logger.Error("compensation failed, data may be inconsistent",
				zap.String("step", s.name), zap.Error(err))
		}
	}
}
