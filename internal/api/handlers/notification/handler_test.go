package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wb-go/wbf/retry"

	"github.com/aliskhannn/workspace-notifier/internal/config"
	mocks "github.com/aliskhannn/workspace-notifier/internal/mocks/api/handlers/notification"
	"github.com/aliskhannn/workspace-notifier/internal/model"
)

func newTestContext(t *testing.T, method, target string, body []byte) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	c.Request = req

	return c, w
}

func TestHandler_Publish(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	serviceMock := mocks.NewMocknotificationService(ctrl)
	cfg := &config.Config{Retry: retry.Strategy{Attempts: 3}}
	handler := NewHandler(serviceMock, validator.New(), cfg)

	channelID := int64(5)
	body, err := json.Marshal(map[string]interface{}{
		"recipient_id": 1,
		"workspace_id": 10,
		"channel_id":   channelID,
		"message":      "new reply in thread",
		"sender_name":  "alice",
	})
	require.NoError(t, err)

	serviceMock.EXPECT().
		Publish(gomock.Any(), cfg.Retry, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ retry.Strategy, n model.Notification) error {
			assert.Equal(t, int64(1), n.UserID)
			assert.Equal(t, int64(10), n.WorkspaceID)
			require.NotNil(t, n.ChannelID)
			assert.Equal(t, channelID, *n.ChannelID)
			assert.Equal(t, "alice", n.MemberName)
			return nil
		})

	c, w := newTestContext(t, http.MethodPost, "/api/notifications", body)
	handler.Publish(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "notification published")
}

func TestHandler_Publish_InvalidBody(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	serviceMock := mocks.NewMocknotificationService(ctrl)
	handler := NewHandler(serviceMock, validator.New(), &config.Config{})

	c, w := newTestContext(t, http.MethodPost, "/api/notifications", []byte("{not json"))
	handler.Publish(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_Publish_MissingRequiredFields(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	serviceMock := mocks.NewMocknotificationService(ctrl)
	handler := NewHandler(serviceMock, validator.New(), &config.Config{})

	// No workspace, no message, no sender.
	body, err := json.Marshal(map[string]interface{}{"recipient_id": 1})
	require.NoError(t, err)

	c, w := newTestContext(t, http.MethodPost, "/api/notifications", body)
	handler.Publish(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "validation error")
}

func TestHandler_GetUnreadCount(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	serviceMock := mocks.NewMocknotificationService(ctrl)
	handler := NewHandler(serviceMock, validator.New(), &config.Config{})

	serviceMock.EXPECT().GetUnreadCount(gomock.Any(), int64(7), int64(5)).Return(int64(3), nil)

	c, w := newTestContext(t, http.MethodGet, "/api/notifications/unread/5", nil)
	c.Set("member_id", int64(7))
	c.Params = gin.Params{{Key: "channel_id", Value: "5"}}
	handler.GetUnreadCount(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "3")
}

func TestHandler_GetUnreadCount_InvalidChannel(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	serviceMock := mocks.NewMocknotificationService(ctrl)
	handler := NewHandler(serviceMock, validator.New(), &config.Config{})

	c, w := newTestContext(t, http.MethodGet, "/api/notifications/unread/abc", nil)
	c.Set("member_id", int64(7))
	c.Params = gin.Params{{Key: "channel_id", Value: "abc"}}
	handler.GetUnreadCount(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_MarkAsRead(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	serviceMock := mocks.NewMocknotificationService(ctrl)
	handler := NewHandler(serviceMock, validator.New(), &config.Config{})

	serviceMock.EXPECT().MarkAsRead(gomock.Any(), int64(7), int64(5)).Return(nil)

	c, w := newTestContext(t, http.MethodDelete, "/api/notifications/unread/5", nil)
	c.Set("member_id", int64(7))
	c.Params = gin.Params{{Key: "channel_id", Value: "5"}}
	handler.MarkAsRead(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "marked as read")
}

func TestHandler_Stats(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	serviceMock := mocks.NewMocknotificationService(ctrl)
	handler := NewHandler(serviceMock, validator.New(), &config.Config{})

	serviceMock.EXPECT().ConnectionCount(int64(10)).Return(2)

	c, w := newTestContext(t, http.MethodGet, "/api/notifications/stats/10", nil)
	c.Params = gin.Params{{Key: "workspace_id", Value: "10"}}
	handler.Stats(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Result struct {
			WorkspaceID int64 `json:"workspace_id"`
			Connections int   `json:"connections"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(10), resp.Result.WorkspaceID)
	assert.Equal(t, 2, resp.Result.Connections)
}

func TestHandler_Subscribe_InvalidWorkspace(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	serviceMock := mocks.NewMocknotificationService(ctrl)
	handler := NewHandler(serviceMock, validator.New(), &config.Config{})

	c, w := newTestContext(t, http.MethodGet, "/api/notifications/subscribe?workspace_id=zero", nil)
	c.Set("member_id", int64(7))
	handler.Subscribe(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
