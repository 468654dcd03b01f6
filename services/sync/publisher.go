package sync

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"beresin/models"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// Task types on the sync queue.
const (
	TaskOrderEvent   = "order:event"
	TaskSweepExpired = "order:sweep-expired"
)

// OrderEvent carries the before/after snapshots of one order write. Either
// side may be nil (create and delete).
type OrderEvent struct {
	Before *models.Order `json:"before"`
	After  *models.Order `json:"after"`
}

// EventPublisher emits an order-write event for the triggered handlers.
// Delivery is at-least-once; consumers must be idempotent.
type EventPublisher interface {
	PublishOrderEvent(ctx context.Context, before, after *models.Order) error
}

// AsynqPublisher enqueues order events onto the redis-backed sync queue.
type AsynqPublisher struct {
	client *asynq.Client
	logger *zap.Logger
}

func NewAsynqPublisher(client *asynq.Client, logger *zap.Logger) *AsynqPublisher {
	return &AsynqPublisher{client: client, logger: logger}
}

func (p *AsynqPublisher) PublishOrderEvent(ctx context.Context, before, after *models.Order) error {
	payload, err := json.Marshal(OrderEvent{Before: before, After: after})
	if err != nil {
		return fmt.Errorf("marshal order event: %w", err)
	}

	task := asynq.NewTask(TaskOrderEvent, payload)
	_, err = p.client.EnqueueContext(ctx, task,
		asynq.MaxRetry(10),
		asynq.Timeout(30*time.Second),
	)
	if err != nil {
		p.logger.Error("failed to enqueue order event", zap.Error(err))
		return fmt.Errorf("enqueue order event: %w", err)
	}
	return nil
}
