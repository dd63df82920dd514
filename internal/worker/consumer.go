package worker

import (
	"context"
	"sync"

	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"

	"github.com/aliskhannn/workspace-notifier/internal/rabbitmq/queue"
)

//go:generate mockgen -source=consumer.go -destination=../mocks/worker/mock.go -package=mocks

type notificationConsumer interface {
	Consume(ctx context.Context, out chan<- queue.NotificationMessage, strategy retry.Strategy) error
}

type messageHandler interface {
	HandleMessage(ctx context.Context, msg queue.NotificationMessage)
}

// Consumer runs the process's bus consumer loop: it drains the instance
// queue into a channel and fans messages out through the handler workers.
type Consumer struct {
	queue   notificationConsumer
	handler messageHandler
}

// NewConsumer creates a new bus consumer.
func NewConsumer(q notificationConsumer, h messageHandler) *Consumer {
	return &Consumer{
		queue:   q,
		handler: h,
	}
}

// Run consumes bus messages until the context is cancelled. workerCount
// controls how many fan-out passes may run concurrently; delivery order to
// one connection is preserved within a single pass regardless.
func (c *Consumer) Run(ctx context.Context, strategy retry.Strategy, workerCount int) {
	var wg sync.WaitGroup
	msgChan := make(chan queue.NotificationMessage, workerCount*10)

	go func() {
		if err := c.queue.Consume(ctx, msgChan, strategy); err != nil {
			zlog.Logger.Error().Err(err).Msg("failed to consume messages")
		}
	}()

	wg.Add(workerCount)
	for i := 0; i < workerCount; i++ {
		go func(id int) {
			defer wg.Done()

			zlog.Logger.Printf("worker-%d started", id)

			for {
				select {
				case <-ctx.Done():
					zlog.Logger.Printf("worker-%d shutting down", id)
					return
				case msg, ok := <-msgChan:
					if !ok {
						zlog.Logger.Printf("worker-%d channel closed, shutting down", id)
						return
					}

					c.handler.HandleMessage(ctx, msg)
				}
			}
		}(i)
	}

	<-ctx.Done()
	wg.Wait()
	zlog.Logger.Print("bus consumer stopped")
}
