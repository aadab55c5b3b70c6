package worker

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/propflow/followup-notifier/internal/model"
)

type countingSweeper struct {
	calls atomic.Int32
}

func (c *countingSweeper) Sweep(ctx context.Context, now time.Time) (model.SweepResult, error) {
	c.calls.Add(1)
	return model.SweepResult{}, nil
}

func TestSweeper_RunsImmediatelyThenOnTick(t *testing.T) {
	d := &countingSweeper{}
	s := NewSweeper(d, 20*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go s.Run(ctx)

	time.Sleep(70 * time.Millisecond)
	cancel()
	time.Sleep(30 * time.Millisecond)

	calls := d.calls.Load()
	assert.GreaterOrEqual(t, calls, int32(2), "expected the initial sweep plus at least one tick")

	after := d.calls.Load()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, after, d.calls.Load(), "no sweeps after cancellation")
}
