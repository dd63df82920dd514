package notification

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wb-go/wbf/retry"

	mocks "github.com/aliskhannn/workspace-notifier/internal/mocks/service/notification"
	"github.com/aliskhannn/workspace-notifier/internal/model"
	"github.com/aliskhannn/workspace-notifier/internal/rabbitmq/queue"
	"github.com/aliskhannn/workspace-notifier/internal/registry"
)

// fakeStream implements registry.Stream for fan-out tests.
type fakeStream struct {
	mu       sync.Mutex
	data     [][]byte
	sendErr  error
	terminal chan struct{}
	once     sync.Once
}

func newFakeStream() *fakeStream {
	return &fakeStream{terminal: make(chan struct{})}
}

func (s *fakeStream) Send(_ string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sendErr != nil {
		return s.sendErr
	}
	s.data = append(s.data, data)
	return nil
}

func (s *fakeStream) Close() error {
	s.once.Do(func() { close(s.terminal) })
	return nil
}

func (s *fakeStream) Terminal() <-chan struct{} { return s.terminal }

func (s *fakeStream) failNextSends(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sendErr = err
}

// received returns payloads written after the welcome event.
func (s *fakeStream) received(t *testing.T) []model.Notification {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []model.Notification
	for _, d := range s.data[1:] {
		var n model.Notification
		require.NoError(t, json.Unmarshal(d, &n))
		out = append(out, n)
	}
	return out
}

func int64Ptr(v int64) *int64 { return &v }

func TestService_Publish_IncrementsOncePerPublish(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	queueMock := mocks.NewMocknotificationPublisher(ctrl)
	gateMock := mocks.NewMockmembershipGate(ctrl)
	unreadMock := mocks.NewMockunreadStore(ctrl)

	svc := NewService(registry.New(), queueMock, gateMock, unreadMock)

	strategy := retry.Strategy{}
	n := model.Notification{
		UserID:      1,
		WorkspaceID: 10,
		ChannelID:   int64Ptr(5),
		Message:     "hi",
		MemberName:  "alice",
	}
	msg := queue.NotificationMessage{WorkspaceID: 10, ChannelID: n.ChannelID, Notification: n}

	queueMock.EXPECT().Publish(msg, strategy).Return(nil)
	unreadMock.EXPECT().Increment(gomock.Any(), int64(1), int64(5)).Return(nil)

	err := svc.Publish(context.Background(), strategy, n)
	assert.NoError(t, err)
}

func TestService_Publish_BusErrorSurfacesWithoutIncrement(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	queueMock := mocks.NewMocknotificationPublisher(ctrl)
	unreadMock := mocks.NewMockunreadStore(ctrl)

	svc := NewService(registry.New(), queueMock, mocks.NewMockmembershipGate(ctrl), unreadMock)

	n := model.Notification{UserID: 1, WorkspaceID: 10, ChannelID: int64Ptr(5), Message: "hi"}
	queueMock.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(errors.New("broker down"))

	err := svc.Publish(context.Background(), retry.Strategy{}, n)
	assert.Error(t, err)
}

func TestService_Publish_WorkspaceWideSkipsIncrement(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	queueMock := mocks.NewMocknotificationPublisher(ctrl)
	svc := NewService(registry.New(), queueMock, mocks.NewMockmembershipGate(ctrl), mocks.NewMockunreadStore(ctrl))

	n := model.Notification{WorkspaceID: 10, Message: "maintenance tonight", MemberName: "system"}
	queueMock.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

	err := svc.Publish(context.Background(), retry.Strategy{}, n)
	assert.NoError(t, err)
}

func TestService_FanOut_GatesByEntitlement(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	gateMock := mocks.NewMockmembershipGate(ctrl)
	reg := registry.New()
	svc := NewService(reg, mocks.NewMocknotificationPublisher(ctrl), gateMock, mocks.NewMockunreadStore(ctrl))

	entitled := newFakeStream()
	outsider := newFakeStream()
	_, err := reg.Subscribe(10, 1, entitled)
	require.NoError(t, err)
	_, err = reg.Subscribe(10, 2, outsider)
	require.NoError(t, err)

	gateMock.EXPECT().IsEntitled(gomock.Any(), int64(1), int64(5)).Return(true, nil)
	gateMock.EXPECT().IsEntitled(gomock.Any(), int64(2), int64(5)).Return(false, nil)

	n := model.Notification{WorkspaceID: 10, ChannelID: int64Ptr(5), Message: "hi", MemberName: "alice"}
	svc.FanOut(context.Background(), queue.NotificationMessage{WorkspaceID: 10, ChannelID: n.ChannelID, Notification: n})

	got := entitled.received(t)
	require.Len(t, got, 1)
	assert.Equal(t, "hi", got[0].Message)
	require.Equal(t, int64(5), *got[0].ChannelID)

	// The unentitled member receives nothing but keeps its connection.
	assert.Empty(t, outsider.received(t))
	assert.Equal(t, 2, reg.Count(10))
}

func TestService_FanOut_TargetedDeliversOnlyToRecipient(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	gateMock := mocks.NewMockmembershipGate(ctrl)
	reg := registry.New()
	svc := NewService(reg, mocks.NewMocknotificationPublisher(ctrl), gateMock, mocks.NewMockunreadStore(ctrl))

	target := newFakeStream()
	bystander := newFakeStream()
	_, err := reg.Subscribe(10, 1, target)
	require.NoError(t, err)
	_, err = reg.Subscribe(10, 2, bystander)
	require.NoError(t, err)

	// The gate is consulted only for the addressed recipient.
	gateMock.EXPECT().IsEntitled(gomock.Any(), int64(1), int64(5)).Return(true, nil)

	n := model.Notification{UserID: 1, WorkspaceID: 10, ChannelID: int64Ptr(5), Message: "reply posted"}
	svc.FanOut(context.Background(), queue.NotificationMessage{WorkspaceID: 10, ChannelID: n.ChannelID, Notification: n})

	assert.Len(t, target.received(t), 1)
	assert.Empty(t, bystander.received(t))
}

func TestService_FanOut_WriteFailureIsolated(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	reg := registry.New()
	svc := NewService(reg, mocks.NewMocknotificationPublisher(ctrl), mocks.NewMockmembershipGate(ctrl), mocks.NewMockunreadStore(ctrl))

	broken := newFakeStream()
	healthy := newFakeStream()
	_, err := reg.Subscribe(10, 1, broken)
	require.NoError(t, err)
	_, err = reg.Subscribe(10, 2, healthy)
	require.NoError(t, err)

	broken.failNextSends(errors.New("broken pipe"))

	// Workspace-wide event, no channel gate involved.
	n := model.Notification{WorkspaceID: 10, Message: "hello all", MemberName: "system"}
	svc.FanOut(context.Background(), queue.NotificationMessage{WorkspaceID: 10, Notification: n})

	// The healthy recipient got the event in the same pass; the broken
	// connection was removed from the registry.
	assert.Len(t, healthy.received(t), 1)
	assert.Equal(t, 1, reg.Count(10))

	select {
	case <-broken.Terminal():
	default:
		t.Fatal("broken connection was not closed")
	}
}

func TestService_FanOut_EntitlementErrorSkipsRecipient(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	gateMock := mocks.NewMockmembershipGate(ctrl)
	reg := registry.New()
	svc := NewService(reg, mocks.NewMocknotificationPublisher(ctrl), gateMock, mocks.NewMockunreadStore(ctrl))

	stream := newFakeStream()
	_, err := reg.Subscribe(10, 1, stream)
	require.NoError(t, err)

	gateMock.EXPECT().IsEntitled(gomock.Any(), int64(1), int64(5)).Return(false, errors.New("membership store down"))

	n := model.Notification{WorkspaceID: 10, ChannelID: int64Ptr(5), Message: "hi"}
	svc.FanOut(context.Background(), queue.NotificationMessage{WorkspaceID: 10, ChannelID: n.ChannelID, Notification: n})

	assert.Empty(t, stream.received(t))
	assert.Equal(t, 1, reg.Count(10))
}

func TestService_Subscribe_RefusesNonMembers(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	gateMock := mocks.NewMockmembershipGate(ctrl)
	reg := registry.New()
	svc := NewService(reg, mocks.NewMocknotificationPublisher(ctrl), gateMock, mocks.NewMockunreadStore(ctrl))

	gateMock.EXPECT().IsWorkspaceMember(gomock.Any(), int64(1), int64(10)).Return(false, nil)

	_, err := svc.Subscribe(context.Background(), 10, 1, newFakeStream())
	assert.ErrorIs(t, err, ErrNotWorkspaceMember)
	assert.Equal(t, 0, reg.Count(10))
}

func TestService_Subscribe_Member(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	gateMock := mocks.NewMockmembershipGate(ctrl)
	reg := registry.New()
	svc := NewService(reg, mocks.NewMocknotificationPublisher(ctrl), gateMock, mocks.NewMockunreadStore(ctrl))

	gateMock.EXPECT().IsWorkspaceMember(gomock.Any(), int64(1), int64(10)).Return(true, nil)

	conn, err := svc.Subscribe(context.Background(), 10, 1, newFakeStream())
	require.NoError(t, err)
	assert.Equal(t, int64(1), conn.MemberID())
	assert.Equal(t, 1, svc.ConnectionCount(10))
}

func TestService_UnreadQueries(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	unreadMock := mocks.NewMockunreadStore(ctrl)
	svc := NewService(registry.New(), mocks.NewMocknotificationPublisher(ctrl), mocks.NewMockmembershipGate(ctrl), unreadMock)

	unreadMock.EXPECT().Get(gomock.Any(), int64(1), int64(5)).Return(int64(3), nil)
	unreadMock.EXPECT().MarkRead(gomock.Any(), int64(1), int64(5)).Return(nil)

	count, err := svc.GetUnreadCount(context.Background(), 1, 5)
	assert.NoError(t, err)
	assert.Equal(t, int64(3), count)

	assert.NoError(t, svc.MarkAsRead(context.Background(), 1, 5))
}
