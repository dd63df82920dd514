package notification

import (
	"context"

	"github.com/wb-go/wbf/zlog"

	"github.com/aliskhannn/workspace-notifier/internal/rabbitmq/queue"
)

//go:generate mockgen -source=handler.go -destination=../../../mocks/rabbitmq/handlers/notification/mock.go -package=mocks
type notificationService interface {
	FanOut(ctx context.Context, msg queue.NotificationMessage)
}

// Handler processes one bus message on the consumer side of the broadcaster.
type Handler struct {
	service notificationService
}

// NewHandler creates a new bus message handler.
func NewHandler(svc notificationService) *Handler {
	return &Handler{
		service: svc,
	}
}

// HandleMessage fans the received notification out to the local registry.
// Nothing here is fatal: delivery failures are isolated per connection
// inside the fan-out.
func (h *Handler) HandleMessage(ctx context.Context, msg queue.NotificationMessage) {
	zlog.Logger.Info().
		Int64("workspace_id", msg.WorkspaceID).
		Int64("member_id", msg.Notification.UserID).
		Msg("Handle Message: got notification from bus")

	h.service.FanOut(ctx, msg)
}
