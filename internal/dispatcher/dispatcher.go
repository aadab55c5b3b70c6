// Package dispatcher runs the reminder sweep: it pulls every follow-up
// currently due, renders a notification for each, pushes it through the
// configured channel, and records the send. Failures are isolated per
// follow-up; one bad record never blocks the rest of the sweep.
package dispatcher

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"

	"github.com/propflow/followup-notifier/internal/model"
	"github.com/propflow/followup-notifier/internal/rabbitmq/queue"
)

//go:generate mockgen -source=dispatcher.go -destination=../mocks/dispatcher/mock.go -package=mocks

// Channel delivers one rendered reminder to the fixed recipient
// configured out-of-band. A nil error means channel-confirmed delivery.
type Channel interface {
	Send(msg string) error
}

type followUpRepo interface {
	DueForReminder(ctx context.Context, now time.Time) ([]model.FollowUp, error)
	MarkReminded(ctx context.Context, id string, sentAt time.Time) error
}

type backlogPublisher interface {
	Publish(msg queue.ReminderMessage, strategy retry.Strategy) error
}

// Dispatcher sweeps due follow-ups and notifies on each one.
type Dispatcher struct {
	repo     followUpRepo
	channel  Channel
	backlog  backlogPublisher
	strategy retry.Strategy
}

func New(repo followUpRepo, channel Channel, backlog backlogPublisher, strategy retry.Strategy) *Dispatcher {
	return &Dispatcher{
		repo:     repo,
		channel:  channel,
		backlog:  backlog,
		strategy: strategy,
	}
}

// Sweep processes every follow-up due at the given moment. It returns
// an error only when the repository itself is unreachable; per-entity
// notification failures are tallied in the result and pushed to the
// backlog for re-attempts, never propagated.
func (d *Dispatcher) Sweep(ctx context.Context, now time.Time) (model.SweepResult, error) {
	result := model.SweepResult{
		SweepID:   uuid.New(),
		StartedAt: now,
	}

	due, err := d.repo.DueForReminder(ctx, now)
	if err != nil {
		return result, fmt.Errorf("query due follow-ups: %w", err)
	}

	for _, f := range due {
		result.Processed++

		payload := Render(f, now)

		if err := d.channel.Send(payload); err != nil {
			result.Failed++
			result.Failures = append(result.Failures, model.SweepFailure{
				ID:     f.ID,
				Title:  f.Title,
				Reason: err.Error(),
			})

			zlog.Logger.Error().Err(err).Str("id", f.ID).Msg("failed to send reminder")

			d.enqueueRetry(f.ID, payload, now)
			continue
		}

		result.Sent++

		if err := d.repo.MarkReminded(ctx, f.ID, now); err != nil {
			// The notification went out; losing the counter bump is
			// logged but must not fail the entity or the sweep.
			zlog.Logger.Error().Err(err).Str("id", f.ID).Msg("failed to mark follow-up reminded")
		}
	}

	zlog.Logger.Info().
		Str("sweep_id", result.SweepID.String()).
		Int("processed", result.Processed).
		Int("sent", result.Sent).
		Int("failed", result.Failed).
		Msg("sweep finished")

	return result, nil
}

func (d *Dispatcher) enqueueRetry(id, payload string, now time.Time) {
	if d.backlog == nil {
		return
	}

	msg := queue.ReminderMessage{
		FollowUpID: id,
		Payload:    payload,
		FailedAt:   now,
	}

	if err := d.backlog.Publish(msg, d.strategy); err != nil {
		zlog.Logger.Error().Err(err).Str("id", id).Msg("failed to publish reminder to backlog")
	}
}
