package worker

import (
	"context"
	"time"

	"github.com/wb-go/wbf/zlog"

	"github.com/propflow/followup-notifier/internal/model"
)

type sweeper interface {
	Sweep(ctx context.Context, now time.Time) (model.SweepResult, error)
}

// Sweeper triggers the reminder dispatcher on a fixed cadence. Each
// tick is one stateless sweep; a failed sweep is only retried by the
// next tick.
type Sweeper struct {
	dispatcher sweeper
	interval   time.Duration
}

func NewSweeper(d sweeper, interval time.Duration) *Sweeper {
	return &Sweeper{dispatcher: d, interval: interval}
}

// Run sweeps once immediately, then on every tick until the context is
// cancelled.
func (s *Sweeper) Run(ctx context.Context) {
	s.sweep(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			zlog.Logger.Print("sweeper stopped")
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *Sweeper) sweep(ctx context.Context) {
	if _, err := s.dispatcher.Sweep(ctx, time.Now().UTC()); err != nil {
		zlog.Logger.Error().Err(err).Msg("sweep failed")
	}
}
