package registry

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/wb-go/wbf/zlog"

	"github.com/aliskhannn/workspace-notifier/internal/model"
)

// IdleTimeout is how long a connection may sit without a successful write
// before it is closed and removed.
const IdleTimeout = 30 * time.Minute

// EventName is the wire name every pushed event is delivered under.
const EventName = "notification"

var (
	// ErrConnectionClosed is returned by Connection.Send after the
	// connection reached a terminal state.
	ErrConnectionClosed = errors.New("connection closed")
)

// Stream is the transport-side capability set a connection is built on.
// Any one-way push transport (SSE, WebSocket, long-poll) can implement it.
//
// Send must not block indefinitely on a slow client: implementations queue
// the frame and fail fast when the client cannot keep up. Terminal returns a
// channel that is closed once the underlying transport ended for any reason
// (client gone, write error, explicit Close).
type Stream interface {
	Send(event string, data []byte) error
	Close() error
	Terminal() <-chan struct{}
}

// Connection is one live outbound stream for a (workspace, member) pair.
// It is owned exclusively by the Registry; callers only write to it and
// never mutate its lifecycle directly.
type Connection struct {
	workspaceID int64
	memberID    int64
	stream      Stream
	createdAt   time.Time

	idle *time.Timer

	mu     sync.Mutex
	closed bool
}

// WorkspaceID returns the workspace the connection is registered under.
func (c *Connection) WorkspaceID() int64 { return c.workspaceID }

// MemberID returns the member the connection belongs to.
func (c *Connection) MemberID() int64 { return c.memberID }

// CreatedAt returns when the connection was installed.
func (c *Connection) CreatedAt() time.Time { return c.createdAt }

// Send writes one named event to the underlying stream and rearms the idle
// timer. It fails with ErrConnectionClosed once the connection is terminal.
func (c *Connection) Send(event string, data []byte) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrConnectionClosed
	}
	c.mu.Unlock()

	if err := c.stream.Send(event, data); err != nil {
		return fmt.Errorf("stream send: %w", err)
	}

	c.mu.Lock()
	if !c.closed && c.idle != nil {
		c.idle.Reset(IdleTimeout)
	}
	c.mu.Unlock()

	return nil
}

// terminal reports whether the underlying stream already ended.
func (c *Connection) terminal() bool {
	c.mu.Lock()
	closed := c.closed
	c.mu.Unlock()
	if closed {
		return true
	}

	select {
	case <-c.stream.Terminal():
		return true
	default:
		return false
	}
}

// close moves the connection to its terminal state. Safe to call more than
// once; only the first call closes the stream and stops the idle timer.
func (c *Connection) close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	if c.idle != nil {
		c.idle.Stop()
	}
	c.mu.Unlock()

	if err := c.stream.Close(); err != nil {
		zlog.Logger.Debug().Err(err).
			Int64("member_id", c.memberID).
			Int64("workspace_id", c.workspaceID).
			Msg("failed to close stream")
	}
}

type connKey struct {
	workspaceID int64
	memberID    int64
}

// bucket is the per-workspace member index used for fan-out iteration.
// dead marks a bucket that was removed from the index after draining; an
// insert that raced the removal retries against a fresh bucket instead of
// resurrecting this one.
type bucket struct {
	mu      sync.Mutex
	members map[int64]struct{}
	dead    bool
}

// Registry is the process-wide table of live connections. It is safe for
// concurrent use by subscribers, transport callbacks, the bus consumer and
// the sweeper without external locking.
//
// Connections live in a flat composite-key map; a secondary
// workspace -> member-set index drives per-workspace iteration so that the
// two maps never need to be locked together.
type Registry struct {
	conns   sync.Map // connKey -> *Connection
	buckets sync.Map // int64 workspaceID -> *bucket
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{}
}

// Subscribe installs a new connection for the (workspace, member) pair on
// top of the given stream and immediately sends the welcome event on it.
//
// If a connection already exists for the pair it is superseded: the old one
// is terminated and the new one takes its place atomically. If the welcome
// write fails, the fresh connection is torn down and an error is returned.
func (r *Registry) Subscribe(workspaceID, memberID int64, stream Stream) (*Connection, error) {
	conn := &Connection{
		workspaceID: workspaceID,
		memberID:    memberID,
		stream:      stream,
		createdAt:   time.Now(),
	}
	conn.idle = time.AfterFunc(IdleTimeout, func() {
		zlog.Logger.Info().
			Int64("member_id", memberID).
			Int64("workspace_id", workspaceID).
			Msg("connection idle timeout, removing")
		r.drop(conn)
	})

	key := connKey{workspaceID: workspaceID, memberID: memberID}
	if prev, ok := r.conns.Swap(key, conn); ok {
		zlog.Logger.Warn().
			Int64("member_id", memberID).
			Int64("workspace_id", workspaceID).
			Msg("connection already exists, superseding")
		prev.(*Connection).close()
	}
	r.indexMember(workspaceID, memberID)

	// Completion and error on the transport surface through the stream's
	// terminal channel; both funnel into the same removal path as timeout.
	go func() {
		<-stream.Terminal()
		r.drop(conn)
	}()

	if err := r.sendWelcome(conn); err != nil {
		r.drop(conn)
		return nil, fmt.Errorf("send welcome notification: %w", err)
	}

	zlog.Logger.Info().
		Int64("member_id", memberID).
		Int64("workspace_id", workspaceID).
		Int("workspace_connections", r.Count(workspaceID)).
		Msg("connection subscribed")

	return conn, nil
}

// Unsubscribe removes the pair's connection if one is present and closes its
// stream. It is idempotent; removing an unknown pair is a no-op.
func (r *Registry) Unsubscribe(workspaceID, memberID int64) {
	key := connKey{workspaceID: workspaceID, memberID: memberID}
	if v, ok := r.conns.Load(key); ok {
		r.drop(v.(*Connection))
	}
}

// Count returns the number of live connections registered under the
// workspace. Diagnostic only.
func (r *Registry) Count(workspaceID int64) int {
	v, ok := r.buckets.Load(workspaceID)
	if !ok {
		return 0
	}
	b := v.(*bucket)
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.members)
}

// ForEachIn calls fn for every connection currently registered under the
// workspace. Iteration is safe under concurrent removal: a connection
// removed mid-pass is simply skipped, never re-delivered to.
func (r *Registry) ForEachIn(workspaceID int64, fn func(conn *Connection)) {
	v, ok := r.buckets.Load(workspaceID)
	if !ok {
		return
	}

	b := v.(*bucket)
	b.mu.Lock()
	members := make([]int64, 0, len(b.members))
	for id := range b.members {
		members = append(members, id)
	}
	b.mu.Unlock()

	for _, memberID := range members {
		if c, ok := r.conns.Load(connKey{workspaceID: workspaceID, memberID: memberID}); ok {
			fn(c.(*Connection))
		}
	}
}

// Sweep removes every connection whose stream is already terminal but whose
// removal hook was missed. Active connections are never touched; sweeping a
// clean registry is a no-op.
func (r *Registry) Sweep() {
	r.conns.Range(func(_, v any) bool {
		conn := v.(*Connection)
		if conn.terminal() {
			zlog.Logger.Info().
				Int64("member_id", conn.memberID).
				Int64("workspace_id", conn.workspaceID).
				Msg("removing terminal connection")
			r.drop(conn)
		}
		return true
	})
}

// Close terminates every live connection and empties the registry. Called on
// process shutdown so clients see an explicit close instead of a timeout.
func (r *Registry) Close() {
	r.conns.Range(func(_, v any) bool {
		r.drop(v.(*Connection))
		return true
	})
	zlog.Logger.Info().Msg("connection registry closed")
}

// drop removes exactly the given connection. A connection that was already
// superseded by a newer one for the same pair is closed without touching the
// newer entry.
func (r *Registry) drop(conn *Connection) {
	key := connKey{workspaceID: conn.workspaceID, memberID: conn.memberID}
	if r.conns.CompareAndDelete(key, conn) {
		r.unindexMember(conn.workspaceID, conn.memberID)
		zlog.Logger.Info().
			Int64("member_id", conn.memberID).
			Int64("workspace_id", conn.workspaceID).
			Int("workspace_connections", r.Count(conn.workspaceID)).
			Msg("connection removed")
	}
	conn.close()
}

func (r *Registry) sendWelcome(conn *Connection) error {
	welcome := model.Notification{
		UserID:      conn.memberID,
		WorkspaceID: conn.workspaceID,
		Message:     fmt.Sprintf("Welcome to workspace %d!", conn.workspaceID),
		MemberName:  "system",
	}

	data, err := json.Marshal(welcome)
	if err != nil {
		return fmt.Errorf("marshal welcome notification: %w", err)
	}

	return conn.Send(EventName, data)
}

// indexMember records the member under its workspace bucket, retrying if it
// raced a concurrent removal of the bucket's last entry.
func (r *Registry) indexMember(workspaceID, memberID int64) {
	for {
		v, _ := r.buckets.LoadOrStore(workspaceID, &bucket{members: make(map[int64]struct{})})
		b := v.(*bucket)

		b.mu.Lock()
		if b.dead {
			b.mu.Unlock()
			continue
		}
		b.members[memberID] = struct{}{}
		b.mu.Unlock()
		return
	}
}

// unindexMember drops the member from its workspace bucket and removes the
// bucket itself once it drains. The dead flag is flipped under the bucket
// lock so a concurrent insert cannot land in a bucket that is being deleted.
func (r *Registry) unindexMember(workspaceID, memberID int64) {
	v, ok := r.buckets.Load(workspaceID)
	if !ok {
		return
	}
	b := v.(*bucket)

	b.mu.Lock()
	delete(b.members, memberID)
	if len(b.members) == 0 {
		b.dead = true
		r.buckets.CompareAndDelete(workspaceID, v)
	}
	b.mu.Unlock()
}
