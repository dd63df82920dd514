package notification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"

	"github.com/aliskhannn/workspace-notifier/internal/model"
	"github.com/aliskhannn/workspace-notifier/internal/rabbitmq/queue"
	"github.com/aliskhannn/workspace-notifier/internal/registry"
)

//go:generate mockgen -source=service.go -destination=../../mocks/service/notification/mock.go -package=mocks

// ErrNotWorkspaceMember is returned by Subscribe when the caller does not
// belong to the workspace it tries to subscribe to.
var ErrNotWorkspaceMember = errors.New("member does not belong to workspace")

type notificationPublisher interface {
	Publish(msg queue.NotificationMessage, strategy retry.Strategy) error
}

type connectionRegistry interface {
	Subscribe(workspaceID, memberID int64, stream registry.Stream) (*registry.Connection, error)
	Unsubscribe(workspaceID, memberID int64)
	ForEachIn(workspaceID int64, fn func(conn *registry.Connection))
	Count(workspaceID int64) int
}

type membershipGate interface {
	IsEntitled(ctx context.Context, memberID, channelID int64) (bool, error)
	IsWorkspaceMember(ctx context.Context, memberID, workspaceID int64) (bool, error)
}

type unreadStore interface {
	Increment(ctx context.Context, memberID, channelID int64) error
	Get(ctx context.Context, memberID, channelID int64) (int64, error)
	MarkRead(ctx context.Context, memberID, channelID int64) error
}

// Service is the broadcaster: it publishes outgoing events onto the shared
// bus and, on the consumer side, fans received events out to the local
// connection registry, gated per recipient by channel membership.
type Service struct {
	registry connectionRegistry
	queue    notificationPublisher
	gate     membershipGate
	unread   unreadStore
}

// NewService creates a new broadcaster service.
func NewService(
	reg connectionRegistry,
	q notificationPublisher,
	gate membershipGate,
	unread unreadStore,
) *Service {
	return &Service{registry: reg, queue: q, gate: gate, unread: unread}
}

// Subscribe opens a live notification stream for the member within the
// workspace after confirming workspace membership. The returned connection
// has already received its welcome event.
func (s *Service) Subscribe(ctx context.Context, workspaceID, memberID int64, stream registry.Stream) (*registry.Connection, error) {
	member, err := s.gate.IsWorkspaceMember(ctx, memberID, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("check workspace membership: %w", err)
	}
	if !member {
		return nil, ErrNotWorkspaceMember
	}

	return s.registry.Subscribe(workspaceID, memberID, stream)
}

// Unsubscribe drops the member's connection in the workspace, if any.
func (s *Service) Unsubscribe(workspaceID, memberID int64) {
	s.registry.Unsubscribe(workspaceID, memberID)
}

// Publish serializes the event onto the shared bus topic and records one
// unread increment for the addressed (recipient, channel) pair. Local
// connections are deliberately not written here: delivery happens only on
// the consumer path, the same way for local and remote producers.
//
// A bus publish failure is returned to the caller; retrying beyond the
// strategy is the caller's policy. The unread increment is independent
// best-effort state and never fails the publish.
func (s *Service) Publish(ctx context.Context, strategy retry.Strategy, n model.Notification) error {
	msg := queue.NotificationMessage{
		WorkspaceID:  n.WorkspaceID,
		ChannelID:    n.ChannelID,
		Notification: n,
	}

	if err := s.queue.Publish(msg, strategy); err != nil {
		return fmt.Errorf("publish notification: %w", err)
	}

	zlog.Logger.Info().
		Int64("workspace_id", n.WorkspaceID).
		Int64("member_id", n.UserID).
		Msg("notification published")

	if n.Targeted() && n.ChannelID != nil {
		if err := s.unread.Increment(ctx, n.UserID, *n.ChannelID); err != nil {
			zlog.Logger.Error().Err(err).
				Int64("member_id", n.UserID).
				Int64("channel_id", *n.ChannelID).
				Msg("failed to increment unread count")
		}
	}

	return nil
}

// FanOut delivers one bus message to every local connection it addresses.
// Entitlement is re-checked per recipient at delivery time. A failed write
// terminates only that connection; the pass continues for the rest.
func (s *Service) FanOut(ctx context.Context, msg queue.NotificationMessage) {
	data, err := json.Marshal(msg.Notification)
	if err != nil {
		zlog.Logger.Error().Err(err).
			Int64("workspace_id", msg.WorkspaceID).
			Msg("failed to marshal notification, skipping fan-out")
		return
	}

	delivered := 0
	s.registry.ForEachIn(msg.WorkspaceID, func(conn *registry.Connection) {
		if msg.Notification.Targeted() && conn.MemberID() != msg.Notification.UserID {
			return
		}

		if msg.ChannelID != nil {
			entitled, err := s.gate.IsEntitled(ctx, conn.MemberID(), *msg.ChannelID)
			if err != nil {
				zlog.Logger.Warn().Err(err).
					Int64("member_id", conn.MemberID()).
					Int64("channel_id", *msg.ChannelID).
					Msg("entitlement check failed, skipping recipient")
				return
			}
			if !entitled {
				zlog.Logger.Debug().
					Int64("member_id", conn.MemberID()).
					Int64("channel_id", *msg.ChannelID).
					Msg("member not subscribed to channel, skipping")
				return
			}
		}

		if err := conn.Send(registry.EventName, data); err != nil {
			zlog.Logger.Error().Err(err).
				Int64("member_id", conn.MemberID()).
				Int64("workspace_id", conn.WorkspaceID()).
				Msg("failed to send notification, removing connection")
			s.registry.Unsubscribe(conn.WorkspaceID(), conn.MemberID())
			return
		}
		delivered++
	})

	zlog.Logger.Info().
		Int64("workspace_id", msg.WorkspaceID).
		Int("delivered", delivered).
		Msg("notification fanned out")
}

// GetUnreadCount returns the member's unread count for the channel, 0 if no
// counter exists.
func (s *Service) GetUnreadCount(ctx context.Context, memberID, channelID int64) (int64, error) {
	count, err := s.unread.Get(ctx, memberID, channelID)
	if err != nil {
		return 0, fmt.Errorf("get unread count: %w", err)
	}

	return count, nil
}

// MarkAsRead resets the member's unread counter for the channel.
func (s *Service) MarkAsRead(ctx context.Context, memberID, channelID int64) error {
	if err := s.unread.MarkRead(ctx, memberID, channelID); err != nil {
		return fmt.Errorf("mark notifications read: %w", err)
	}

	return nil
}

// ConnectionCount reports the number of live connections in the workspace.
// Observability only.
func (s *Service) ConnectionCount(workspaceID int64) int {
	return s.registry.Count(workspaceID)
}
