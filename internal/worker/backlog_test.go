package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wb-go/wbf/retry"

	mocks "github.com/propflow/followup-notifier/internal/mocks/worker"
	"github.com/propflow/followup-notifier/internal/rabbitmq/queue"
)

func TestBacklog_Run_HandleMessage(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockQueue := mocks.NewMockbacklogQueue(ctrl)
	mockHandler := mocks.NewMockmessageHandler(ctrl)
	mockService := mocks.NewMockstatusService(ctrl)

	b := NewBacklog(mockQueue, mockHandler, mockService)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	strategy := retry.Strategy{Attempts: 1, Delay: time.Millisecond}

	msg := queue.ReminderMessage{
		FollowUpID: "appfolio:maintenance:101",
		Payload:    "🔴 URGENT follow-up",
		FailedAt:   time.Now(),
	}

	mockQueue.EXPECT().Consume(gomock.Any(), strategy).DoAndReturn(
		func(out chan<- queue.ReminderMessage, _ retry.Strategy) error {
			out <- msg
			return nil
		},
	)

	mockService.EXPECT().GetFollowUpStatusByID(gomock.Any(), strategy, msg.FollowUpID).Return("PENDING", nil)
	mockHandler.EXPECT().HandleMessage(gomock.Any(), msg, strategy)

	go b.Run(ctx, strategy, 1)

	time.Sleep(50 * time.Millisecond)
	cancel()
	time.Sleep(50 * time.Millisecond)
}

func TestBacklog_Run_CompletedSkipped(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockQueue := mocks.NewMockbacklogQueue(ctrl)
	mockHandler := mocks.NewMockmessageHandler(ctrl)
	mockService := mocks.NewMockstatusService(ctrl)

	b := NewBacklog(mockQueue, mockHandler, mockService)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	strategy := retry.Strategy{Attempts: 1, Delay: time.Millisecond}
	msg := queue.ReminderMessage{FollowUpID: "appfolio:maintenance:7"}

	mockQueue.EXPECT().Consume(gomock.Any(), strategy).DoAndReturn(
		func(out chan<- queue.ReminderMessage, _ retry.Strategy) error {
			out <- msg
			return nil
		},
	)

	// Completed since the send failed: no re-notification.
	mockService.EXPECT().GetFollowUpStatusByID(gomock.Any(), strategy, msg.FollowUpID).Return("COMPLETED", nil)

	go b.Run(ctx, strategy, 1)
	time.Sleep(50 * time.Millisecond)
	cancel()
	time.Sleep(50 * time.Millisecond)
}

func TestBacklog_Run_GetStatusError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockQueue := mocks.NewMockbacklogQueue(ctrl)
	mockHandler := mocks.NewMockmessageHandler(ctrl)
	mockService := mocks.NewMockstatusService(ctrl)

	b := NewBacklog(mockQueue, mockHandler, mockService)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	strategy := retry.Strategy{Attempts: 1, Delay: time.Millisecond}
	msg := queue.ReminderMessage{FollowUpID: "appfolio:maintenance:8"}

	mockQueue.EXPECT().Consume(gomock.Any(), strategy).DoAndReturn(
		func(out chan<- queue.ReminderMessage, _ retry.Strategy) error {
			out <- msg
			return nil
		},
	)

	mockService.EXPECT().GetFollowUpStatusByID(gomock.Any(), strategy, msg.FollowUpID).Return("", errors.New("db error"))

	go b.Run(ctx, strategy, 1)
	time.Sleep(50 * time.Millisecond)
	cancel()
	time.Sleep(50 * time.Millisecond)
}

func TestBacklog_Run_ContextCancelled(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockQueue := mocks.NewMockbacklogQueue(ctrl)
	mockHandler := mocks.NewMockmessageHandler(ctrl)
	mockService := mocks.NewMockstatusService(ctrl)

	b := NewBacklog(mockQueue, mockHandler, mockService)

	ctx, cancel := context.WithCancel(context.Background())

	strategy := retry.Strategy{Attempts: 1, Delay: time.Millisecond}

	mockQueue.EXPECT().Consume(gomock.Any(), strategy).Return(nil)

	go b.Run(ctx, strategy, 1)

	cancel()

	require.Eventually(t, func() bool { return true }, time.Second, 50*time.Millisecond)
	assert.True(t, true, "backlog consumer stopped cleanly")
}
