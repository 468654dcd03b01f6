package cron

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"beresin/config"
	ordersvc "beresin/services/order"
	syncsvc "beresin/services/sync"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

// WorkerDeps bundles the handlers the sync worker fans events out to.
type WorkerDeps struct {
	Sync      *syncsvc.AvailabilitySyncEngine
	Recompute *syncsvc.BusyDatesRecomputer
	Refund    *syncsvc.CancellationRefundHandler
	Orders    ordersvc.OrderService
}

func redisOpts() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisSyncQueueDB,
	}
}

// NewSyncQueueClient returns the asynq client publishers enqueue onto.
func NewSyncQueueClient() *asynq.Client {
	return asynq.NewClient(redisOpts())
}

// InitSyncWorker runs the async worker and the periodic sweep scheduler in
// the background.
func InitSyncWorker(deps WorkerDeps) {
	srv := asynq.NewServer(
		redisOpts(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(syncsvc.TaskOrderEvent, handleOrderEvent(deps))
	mux.HandleFunc(syncsvc.TaskSweepExpired, handleSweepExpired(deps))

	// Start Redis health monitor
	go monitorRedisConnection()

	// Start async worker with retry logic
	go func() {
		log.Println("[SyncWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[SyncWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[SyncWorker] max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()

	startSweepScheduler()
}

// handleOrderEvent fans one order write out to the sync engine, the busy
// dates recomputer and the refund handler. Any error triggers an asynq
// redelivery; all three consumers are idempotent.
func handleOrderEvent(deps WorkerDeps) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var evt syncsvc.OrderEvent
		if err := json.Unmarshal(task.Payload(), &evt); err != nil {
			log.Printf("[OrderEventHandler] invalid payload: %v", err)
			return fmt.Errorf("invalid order event payload: %w", err)
		}

		if err := deps.Sync.HandleOrderEvent(ctx, evt.Before, evt.After); err != nil {
			return err
		}
		if err := deps.Recompute.HandleOrderEvent(ctx, evt.Before, evt.After); err != nil {
			return err
		}
		return deps.Refund.HandleOrderEvent(ctx, evt.Before, evt.After)
	}
}

func handleSweepExpired(deps WorkerDeps) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		swept, err := deps.Orders.SweepExpired(ctx)
		if err != nil {
			return err
		}
		log.Printf("[SweepHandler] swept %d expired orders", swept)
		return nil
	}
}

// startSweepScheduler registers the periodic expired-order sweep.
func startSweepScheduler() {
	scheduler := asynq.NewScheduler(redisOpts(), nil)

	spec := fmt.Sprintf("@every %dm", config.AppConfig.SweepIntervalMinutes)
	if _, err := scheduler.Register(spec, asynq.NewTask(syncsvc.TaskSweepExpired, nil)); err != nil {
		log.Fatalf("[SyncWorker] failed to register sweep schedule: %v", err)
	}

	go func() {
		if err := scheduler.Run(); err != nil {
			log.Fatalf("[SyncWorker] sweep scheduler failed: %v", err)
		}
	}()
}

// monitorRedisConnection pings Redis periodically to detect failures at runtime.
func monitorRedisConnection() {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisSyncQueueDB,
	})

	ctx := context.Background()

	for {
		if err := client.Ping(ctx).Err(); err != nil {
			log.Printf("[SyncWorker] redis connection lost: %v", err)
		}
		time.Sleep(10 * time.Second)
	}
}
