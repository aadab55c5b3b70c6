package worker

import (
	"context"

	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"

	"github.com/propflow/followup-notifier/internal/model"
	"github.com/propflow/followup-notifier/internal/rabbitmq/queue"
)

//go:generate mockgen -source=backlog.go -destination=../mocks/worker/mock.go -package=mocks

type backlogQueue interface {
	Consume(out chan<- queue.ReminderMessage, strategy retry.Strategy) error
}

type messageHandler interface {
	HandleMessage(ctx context.Context, msg queue.ReminderMessage, strategy retry.Strategy)
}

type statusService interface {
	GetFollowUpStatusByID(ctx context.Context, strategy retry.Strategy, id string) (string, error)
}

// Backlog drains the failed-reminder queue with a pool of consumer
// goroutines.
type Backlog struct {
	queue   backlogQueue
	handler messageHandler
	service statusService
}

func NewBacklog(q backlogQueue, h messageHandler, s statusService) *Backlog {
	return &Backlog{
		queue:   q,
		handler: h,
		service: s,
	}
}

// Run consumes backlog messages until the context is cancelled. A
// follow-up completed since its send failed is skipped, not re-sent.
func (b *Backlog) Run(ctx context.Context, strategy retry.Strategy, workerCount int) {
	msgChan := make(chan queue.ReminderMessage)

	go func() {
		if err := b.queue.Consume(msgChan, strategy); err != nil {
			zlog.Logger.Fatal().Err(err).Msg("failed to consume messages")
		}
	}()

	for i := 0; i < workerCount; i++ {
		go func(id int) {
			zlog.Logger.Printf("backlog worker-%d started", id)

			for {
				select {
				case <-ctx.Done():
					zlog.Logger.Printf("backlog worker-%d shutting down", id)
					return
				case msg := <-msgChan:
					status, err := b.service.GetFollowUpStatusByID(ctx, strategy, msg.FollowUpID)
					if err != nil {
						zlog.Logger.Printf("failed to get status for %s: %v", msg.FollowUpID, err)
						continue
					}

					if status == string(model.StatusCompleted) {
						zlog.Logger.Printf("follow-up %s completed, skipping backlog reminder", msg.FollowUpID)
						continue
					}

					b.handler.HandleMessage(ctx, msg, strategy)
				}
			}
		}(i)
	}

	<-ctx.Done()
	zlog.Logger.Print("backlog consumer stopped")
}
