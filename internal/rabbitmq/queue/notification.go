package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/rabbitmq"
	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"

	"github.com/aliskhannn/workspace-notifier/internal/model"
)

const (
	// ExchangeName is the shared bus topic every instance publishes to and
	// consumes from.
	ExchangeName = "notification-channel"
)

// NotificationMessage is the bus payload: the event itself plus the routing
// fields the consumer needs before it looks inside.
type NotificationMessage struct {
	WorkspaceID  int64              `json:"workspaceId"`
	ChannelID    *int64             `json:"channelId"`
	Notification model.Notification `json:"notification"`
}

// NotificationQueue binds one process to the notification bus. The exchange
// fans every published message out to all instances; each instance consumes
// from its own transient queue, so connections held anywhere receive events
// produced anywhere.
type NotificationQueue struct {
	Publisher *rabbitmq.Publisher
	Consumer  *rabbitmq.Consumer
}

// NewNotificationQueue declares the fan-out exchange and a per-instance
// queue bound to it.
func NewNotificationQueue(ch *rabbitmq.Channel) (*NotificationQueue, error) {
	exchange := rabbitmq.NewExchange(ExchangeName, "fanout")
	if err := exchange.BindToChannel(ch); err != nil {
		return nil, fmt.Errorf("failed to bind to exchange: %w", err)
	}

	qm := rabbitmq.NewQueueManager(ch)

	// One transient queue per process; its name only needs to be unique.
	queueName := fmt.Sprintf("%s.%s", ExchangeName, uuid.NewString())

	q, err := qm.DeclareQueue(queueName, rabbitmq.QueueConfig{
		Durable: false,
		Args: map[string]interface{}{
			"x-expires": int32(60_000),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to declare instance queue: %w", err)
	}

	if err := ch.QueueBind(q.Name, "", exchange.Name(), false, nil); err != nil {
		return nil, fmt.Errorf("failed to bind the exchange to the instance queue: %w", err)
	}

	pub := rabbitmq.NewPublisher(ch, exchange.Name())
	cons := rabbitmq.NewConsumer(ch, rabbitmq.NewConsumerConfig(q.Name))

	return &NotificationQueue{Publisher: pub, Consumer: cons}, nil
}

// Publish serializes the message onto the bus. Errors surface to the caller;
// retrying beyond the given strategy is the caller's decision.
func (q *NotificationQueue) Publish(msg NotificationMessage, strategy retry.Strategy) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	return q.Publisher.PublishWithRetry(body, "", "application/json", strategy)
}

// Consume decodes bus messages into out until the context ends. A message
// that fails to decode is logged and dropped; the consumer loop never stops
// over one bad payload.
func (q *NotificationQueue) Consume(ctx context.Context, out chan<- NotificationMessage, strategy retry.Strategy) error {
	msgChan := make(chan []byte)

	go func() {
		for m := range msgChan {
			var msg NotificationMessage
			if err := json.Unmarshal(m, &msg); err != nil {
				zlog.Logger.Warn().Err(err).Msg("failed to unmarshal bus message, skipping")
				continue
			}

			select {
			case out <- msg:
			case <-ctx.Done():
				return
			}
		}
	}()

	return q.Consumer.ConsumeWithRetry(msgChan, strategy)
}
