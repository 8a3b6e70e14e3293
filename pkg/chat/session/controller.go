package session

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"lexcircle-be/internal/constant"
	"lexcircle-be/internal/entity"
	"lexcircle-be/internal/pkg/logger"
	"lexcircle-be/internal/pkg/serverutils"
	"lexcircle-be/pkg/bus"

	"github.com/google/uuid"
)

// State of a chat session. Left is terminal.
type State int

const (
	StateNotJoined State = iota
	StateJoining
	StateJoined
	StateSwitching
	StateLeft
)

func (s State) String() string {
	switch s {
	case StateNotJoined:
		return "not_joined"
	case StateJoining:
		return "joining"
	case StateJoined:
		return "joined"
	case StateSwitching:
		return "switching"
	case StateLeft:
		return "left"
	}
	return "unknown"
}

var (
	ErrAlreadyJoined = errors.New("chat session already joined")
	ErrNotJoined     = errors.New("chat session not joined")
)

// Identity is the read-only identity input supplied by the auth collaborator.
type Identity struct {
	UserID   uuid.UUID
	Username string
}

// MessageLog is the append-only per-channel history the controller composes.
type MessageLog interface {
	Append(ctx context.Context, channel string, userId uuid.UUID, username, body string) (*entity.ChatMessage, error)
	History(ctx context.Context, channel string, limit int) ([]*entity.ChatMessage, error)
}

// Presence is the heartbeat/online-count collaborator. Heartbeat is
// best-effort and never fails the session.
type Presence interface {
	Heartbeat(ctx context.Context, userId uuid.UUID, username string)
	OnlineCount(ctx context.Context, window time.Duration) (int64, error)
	Leave(ctx context.Context, userId uuid.UUID) error
}

// Controller drives one user's chat session: join, channel switching, send
// and teardown. All message rendering goes through the bus subscription;
// Send never touches local state directly, the sender's own message arrives
// like everyone else's.
type Controller struct {
	messageLog MessageLog
	presence   Presence
	deliveries bus.DeliveryBus
	logger     logger.ILogger

	identity Identity

	heartbeatEvery time.Duration
	pollEvery      time.Duration
	window         time.Duration
	historyLimit   int

	mu            sync.Mutex
	state         State
	activeChannel string
	sub           bus.Subscription
	messages      []*entity.ChatMessage

	online   atomic.Int64
	stop     chan struct{}
	stopOnce sync.Once
}

type Option func(*Controller)

func WithHeartbeatInterval(d time.Duration) Option {
	return func(c *Controller) { c.heartbeatEvery = d }
}

func WithPollInterval(d time.Duration) Option {
	return func(c *Controller) { c.pollEvery = d }
}

func WithPresenceWindow(d time.Duration) Option {
	return func(c *Controller) { c.window = d }
}

func WithHistoryLimit(n int) Option {
	return func(c *Controller) { c.historyLimit = n }
}

func WithLogger(log logger.ILogger) Option {
	return func(c *Controller) { c.logger = log }
}

func NewController(messageLog MessageLog, presence Presence, deliveries bus.DeliveryBus, identity Identity, opts ...Option) *Controller {
	c := &Controller{
		messageLog:     messageLog,
		presence:       presence,
		deliveries:     deliveries,
		identity:       identity,
		heartbeatEvery: constant.HeartbeatInterval,
		pollEvery:      constant.OnlinePollInterval,
		window:         constant.PresenceWindow,
		historyLimit:   constant.HistoryLimit,
		state:          StateNotJoined,
		stop:           make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Join enters the global channel. The immediate heartbeat and the two timers
// start first; history is fetched fail-soft (an empty list never blocks the
// join); the subscription is established last. A failed subscribe leaves the
// session Joined without live delivery and surfaces the error; Switch to the
// same channel acts as the manual retry.
func (c *Controller) Join(ctx context.Context) error {
	if c.identity.UserID == uuid.Nil {
		return serverutils.NewAuthRequired("joining chat requires an authenticated user")
	}

	c.mu.Lock()
	if c.state != StateNotJoined {
		c.mu.Unlock()
		return ErrAlreadyJoined
	}
	c.state = StateJoining
	c.mu.Unlock()

	c.presence.Heartbeat(ctx, c.identity.UserID, c.identity.Username)
	go c.runTimers()

	messages, err := c.messageLog.History(ctx, constant.MainChannelID, c.historyLimit)
	if err != nil {
		c.warn("history fetch failed on join, starting empty", err)
		messages = nil
	}

	sub, subErr := c.deliveries.Subscribe(context.Background(), constant.MainChannelID, c.onMessage)

	c.mu.Lock()
	if c.state != StateJoining {
		// Leave ran while history or subscribe was in flight. Left is
		// terminal: drop the fresh subscription instead of resurrecting.
		c.mu.Unlock()
		if sub != nil {
			sub.Close()
		}
		return nil
	}
	c.activeChannel = constant.MainChannelID
	c.messages = messages
	c.sub = sub
	c.state = StateJoined
	c.mu.Unlock()

	if subErr != nil {
		return serverutils.NewTransientIOError("failed to subscribe to channel", subErr)
	}
	return nil
}

// Switch moves the session to another channel. The ordering is load-bearing:
// unsubscribe, clear the message list, fetch history, then subscribe.
// Subscribing before unsubscribing is the duplicate-delivery defect this
// method exists to prevent.
func (c *Controller) Switch(ctx context.Context, target string) error {
	if strings.TrimSpace(target) == "" {
		return serverutils.NewValidationError("channel id is required")
	}

	c.mu.Lock()
	if c.state != StateJoined {
		c.mu.Unlock()
		return ErrNotJoined
	}
	c.state = StateSwitching
	oldSub := c.sub
	c.sub = nil
	c.messages = nil
	c.activeChannel = target
	c.mu.Unlock()

	if oldSub != nil {
		oldSub.Close()
	}

	messages, err := c.messageLog.History(ctx, target, c.historyLimit)
	if err != nil {
		c.warn("history fetch failed on switch, starting empty", err)
		messages = nil
	}

	sub, subErr := c.deliveries.Subscribe(context.Background(), target, c.onMessage)

	c.mu.Lock()
	if c.state != StateSwitching {
		c.mu.Unlock()
		if sub != nil {
			sub.Close()
		}
		return nil
	}
	c.messages = messages
	c.sub = sub
	c.state = StateJoined
	c.mu.Unlock()

	if subErr != nil {
		return serverutils.NewTransientIOError("failed to subscribe to channel", subErr)
	}
	return nil
}

// Send appends to the active channel. The stored message comes back through
// the subscription; Send itself never mutates the visible list.
func (c *Controller) Send(ctx context.Context, body string) error {
	c.mu.Lock()
	if c.state != StateJoined {
		c.mu.Unlock()
		return ErrNotJoined
	}
	channel := c.activeChannel
	c.mu.Unlock()

	_, err := c.messageLog.Append(ctx, channel, c.identity.UserID, c.identity.Username, body)
	return err
}

// Leave tears the session down: timers stopped, subscription closed, presence
// row deleted. Idempotent; the session cannot be rejoined.
func (c *Controller) Leave() {
	c.mu.Lock()
	if c.state == StateLeft {
		c.mu.Unlock()
		return
	}
	sub := c.sub
	c.sub = nil
	c.state = StateLeft
	c.mu.Unlock()

	c.stopOnce.Do(func() { close(c.stop) })
	if sub != nil {
		sub.Close()
	}

	if err := c.presence.Leave(context.Background(), c.identity.UserID); err != nil {
		// Best-effort: a missed leave just lets the row age out of the window.
		c.warn("presence leave failed", err)
	}
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) ActiveChannel() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.activeChannel
}

// Messages returns a snapshot of the visible message list.
func (c *Controller) Messages() []*entity.ChatMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]*entity.ChatMessage, len(c.messages))
	copy(out, c.messages)
	return out
}

// OnlineCount returns the last polled online-user count.
func (c *Controller) OnlineCount() int64 {
	return c.online.Load()
}

func (c *Controller) onMessage(msg *entity.ChatMessage) {
	c.mu.Lock()
	defer c.mu.Unlock()
	// A delivery already queued when a subscription closes may still land
	// here; drop anything not matching the active channel.
	if c.state != StateJoined || msg.Channel != c.activeChannel {
		return
	}
	c.messages = append(c.messages, msg)
}

func (c *Controller) runTimers() {
	ctx := context.Background()

	if n, err := c.presence.OnlineCount(ctx, c.window); err == nil {
		c.online.Store(n)
	}

	heartbeat := time.NewTicker(c.heartbeatEvery)
	poll := time.NewTicker(c.pollEvery)
	defer heartbeat.Stop()
	defer poll.Stop()

	for {
		select {
		case <-c.stop:
			return
		case <-heartbeat.C:
			c.presence.Heartbeat(ctx, c.identity.UserID, c.identity.Username)
		case <-poll.C:
			// Poll failures are swallowed: presence is best-effort.
			if n, err := c.presence.OnlineCount(ctx, c.window); err == nil {
				c.online.Store(n)
			}
		}
	}
}

func (c *Controller) warn(message string, err error) {
	if c.logger == nil {
		return
	}
	c.logger.Warn("ChatSession", message, map[string]interface{}{
		"user_id": c.identity.UserID,
		"error":   err,
	})
}
