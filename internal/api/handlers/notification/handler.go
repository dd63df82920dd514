package notification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/websocket"
	"github.com/wb-go/wbf/ginext"
	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"

	"github.com/aliskhannn/workspace-notifier/internal/api/dto"
	"github.com/aliskhannn/workspace-notifier/internal/api/respond"
	"github.com/aliskhannn/workspace-notifier/internal/config"
	"github.com/aliskhannn/workspace-notifier/internal/middlewares"
	"github.com/aliskhannn/workspace-notifier/internal/model"
	"github.com/aliskhannn/workspace-notifier/internal/registry"
	notifsvc "github.com/aliskhannn/workspace-notifier/internal/service/notification"
	"github.com/aliskhannn/workspace-notifier/internal/stream"
)

// notificationService defines the interface that the Handler depends on.
//
// It abstracts subscribing live streams, publishing events onto the bus and
// querying unread counters.
//
//go:generate mockgen -source=handler.go -destination=../../../mocks/api/handlers/notification/mock.go -package=mocks
type notificationService interface {
	Subscribe(ctx context.Context, workspaceID, memberID int64, s registry.Stream) (*registry.Connection, error)
	Publish(ctx context.Context, strategy retry.Strategy, n model.Notification) error
	GetUnreadCount(ctx context.Context, memberID, channelID int64) (int64, error)
	MarkAsRead(ctx context.Context, memberID, channelID int64) error
	ConnectionCount(workspaceID int64) int
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Handler handles HTTP requests for the notification core: stream
// subscriptions, producer publishes and the unread-counter query surface.
type Handler struct {
	service   notificationService
	validator *validator.Validate
	cfg       *config.Config
}

// NewHandler creates a new Handler instance.
func NewHandler(
	s notificationService,
	v *validator.Validate,
	cfg *config.Config,
) *Handler {
	return &Handler{service: s, validator: v, cfg: cfg}
}

// Subscribe handles HTTP GET requests to open a server-sent-events stream.
//
// The first event on the stream is always the welcome notification. The
// request blocks for the lifetime of the stream; disconnect, idle timeout
// or a superseding subscribe all end it.
func (h *Handler) Subscribe(c *ginext.Context) {
	memberID := middlewares.MemberID(c)
	workspaceID, ok := h.workspaceID(c, c.Query("workspace_id"))
	if !ok {
		return
	}

	s := stream.NewSSE()
	if _, err := h.service.Subscribe(c.Request.Context(), workspaceID, memberID, s); err != nil {
		if errors.Is(err, notifsvc.ErrNotWorkspaceMember) {
			zlog.Logger.Warn().Int64("member_id", memberID).Int64("workspace_id", workspaceID).
				Msg("subscribe refused: not a workspace member")
			respond.Fail(c.Writer, http.StatusForbidden, fmt.Errorf("not a workspace member"))
			return
		}

		zlog.Logger.Error().Err(err).Int64("member_id", memberID).Msg("failed to subscribe")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	if err := s.Run(c.Request.Context(), c.Writer); err != nil {
		zlog.Logger.Debug().Err(err).
			Int64("member_id", memberID).
			Int64("workspace_id", workspaceID).
			Msg("sse stream ended with error")
	}
}

// SubscribeWS handles HTTP GET requests to open a WebSocket stream bound to
// the same registry contract as the SSE variant.
func (h *Handler) SubscribeWS(c *ginext.Context) {
	memberID := middlewares.MemberID(c)
	workspaceID, ok := h.workspaceID(c, c.Query("workspace_id"))
	if !ok {
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		zlog.Logger.Error().Err(err).Msg("websocket upgrade failed")
		return
	}

	s := stream.NewWS(conn)
	if _, err := h.service.Subscribe(context.Background(), workspaceID, memberID, s); err != nil {
		// Past the upgrade there is no HTTP status to return; close the
		// socket and let the client observe the disconnect.
		zlog.Logger.Warn().Err(err).
			Int64("member_id", memberID).
			Int64("workspace_id", workspaceID).
			Msg("websocket subscribe refused")
		_ = s.Close()
	}
}

// Publish handles HTTP POST requests from producers to publish a
// notification event onto the bus.
func (h *Handler) Publish(c *ginext.Context) {
	var req dto.PublishRequest

	// Decode JSON request body into PublishRequest struct.
	if err := json.NewDecoder(c.Request.Body).Decode(&req); err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to decode request body")
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("invalid request body"))
		return
	}

	// Validate request fields using go-playground/validator.
	if err := h.validator.Struct(req); err != nil {
		zlog.Logger.Warn().Err(err).Msg("failed to validate request body")
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("validation error: %s", err.Error()))
		return
	}

	n := model.Notification{
		UserID:         req.RecipientID,
		WorkspaceID:    req.WorkspaceID,
		ChannelID:      req.ChannelID,
		ChannelName:    req.ChannelName,
		ThreadID:       req.ThreadID,
		ParentThreadID: req.ParentThreadID,
		Message:        req.Message,
		MemberName:     req.SenderName,
	}

	if err := h.service.Publish(c.Request.Context(), h.cfg.Retry, n); err != nil {
		zlog.Logger.Error().Err(err).Int64("workspace_id", n.WorkspaceID).Msg("failed to publish notification")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	respond.Created(c.Writer, "notification published")
}

// GetUnreadCount handles HTTP GET requests for the authenticated member's
// unread count in a channel. Absent counters read as 0.
func (h *Handler) GetUnreadCount(c *ginext.Context) {
	memberID := middlewares.MemberID(c)
	channelID, ok := h.channelID(c)
	if !ok {
		return
	}

	count, err := h.service.GetUnreadCount(c.Request.Context(), memberID, channelID)
	if err != nil {
		zlog.Logger.Error().Err(err).
			Int64("member_id", memberID).
			Int64("channel_id", channelID).
			Msg("failed to get unread count")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	respond.OK(c.Writer, count)
}

// MarkAsRead handles HTTP DELETE requests resetting the authenticated
// member's unread counter for a channel.
func (h *Handler) MarkAsRead(c *ginext.Context) {
	memberID := middlewares.MemberID(c)
	channelID, ok := h.channelID(c)
	if !ok {
		return
	}

	if err := h.service.MarkAsRead(c.Request.Context(), memberID, channelID); err != nil {
		zlog.Logger.Error().Err(err).
			Int64("member_id", memberID).
			Int64("channel_id", channelID).
			Msg("failed to mark notifications read")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	respond.OK(c.Writer, "marked as read")
}

// Stats handles HTTP GET requests for the live-connection count of a
// workspace. Observability only, no side effects.
func (h *Handler) Stats(c *ginext.Context) {
	workspaceID, ok := h.workspaceID(c, c.Param("workspace_id"))
	if !ok {
		return
	}

	respond.OK(c.Writer, map[string]interface{}{
		"workspace_id": workspaceID,
		"connections":  h.service.ConnectionCount(workspaceID),
	})
}

func (h *Handler) workspaceID(c *ginext.Context, raw string) (int64, bool) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		zlog.Logger.Warn().Str("workspace_id", raw).Msg("invalid workspace id")
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("invalid workspace id"))
		return 0, false
	}

	return id, true
}

func (h *Handler) channelID(c *ginext.Context) (int64, bool) {
	raw := c.Param("channel_id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		zlog.Logger.Warn().Str("channel_id", raw).Msg("invalid channel id")
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("invalid channel id"))
		return 0, false
	}

	return id, true
}
