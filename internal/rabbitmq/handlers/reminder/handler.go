// Package reminder handles backlog messages: reminders whose channel
// send failed during a sweep and are waiting for a re-attempt.
package reminder

import (
	"context"
	"time"

	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"

	"github.com/propflow/followup-notifier/internal/rabbitmq/queue"
)

type channel interface {
	Send(msg string) error
}

type reminderMarker interface {
	MarkReminded(ctx context.Context, id string, sentAt time.Time) error
}

type Handler struct {
	channel channel
	repo    reminderMarker
}

func NewHandler(ch channel, repo reminderMarker) *Handler {
	return &Handler{channel: ch, repo: repo}
}

// HandleMessage re-attempts one failed reminder with the configured
// backoff. A confirmed send still goes through MarkReminded, so the
// escalation counter only ever counts delivered notifications. After
// the attempts are exhausted the message is left to dead-letter.
func (h *Handler) HandleMessage(ctx context.Context, msg queue.ReminderMessage, strategy retry.Strategy) {
	attempt := 0
	currentDelay := strategy.Delay

	for attempt < strategy.Attempts {
		err := h.channel.Send(msg.Payload)
		if err == nil {
			zlog.Logger.Printf("reminder for %s sent from backlog", msg.FollowUpID)

			if err := h.repo.MarkReminded(ctx, msg.FollowUpID, time.Now().UTC()); err != nil {
				zlog.Logger.Error().Err(err).Str("id", msg.FollowUpID).Msg("failed to mark follow-up reminded")
			}
			return
		}

		attempt++
		zlog.Logger.Printf("failed to send reminder for %s: %v, retry %d/%d",
			msg.FollowUpID, err, attempt, strategy.Attempts,
		)

		time.Sleep(currentDelay)
		currentDelay = time.Duration(float64(currentDelay) * strategy.Backoff)
	}

	zlog.Logger.Printf("reminder for %s failed after %d attempts, moving to DLQ", msg.FollowUpID, attempt)
}
