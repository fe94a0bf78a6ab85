package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

type countingSender struct {
	calls atomic.Int32
	err   error
}

func (s *countingSender) Execute(ctx context.Context) (int, error) {
	s.calls.Add(1)
	return 1, s.err
}

func TestReminderWorkerTicks(t *testing.T) {
	defer goleak.VerifyNone(t)

	s := &countingSender{}
	w := NewReminderWorker(s, 10*time.Millisecond, zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool { return s.calls.Load() >= 3 }, time.Second, 5*time.Millisecond)
	cancel()
	<-done
}

func TestReminderWorkerSurvivesErrors(t *testing.T) {
	defer goleak.VerifyNone(t)

	s := &countingSender{err: errors.New("upstream 502")}
	w := NewReminderWorker(s, 10*time.Millisecond, zap.NewNop())
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Millisecond)
	defer cancel()

	w.Start(ctx)

	assert.GreaterOrEqual(t, s.calls.Load(), int32(2))
}

func TestReminderWorkerDefaultInterval(t *testing.T) {
	w := NewReminderWorker(&countingSender{}, 0, zap.NewNop())
	assert.Equal(t, time.Minute, w.tickInterval)
}
