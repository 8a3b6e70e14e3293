package websocket

import (
	"sync"
	"testing"

	"lexcircle-be/pkg/bus"

	"github.com/google/uuid"
)

// nopLogger satisfies logger.ILogger for tests that do not inspect logs.
type nopLogger struct{}

func (nopLogger) Debug(module string, message string, details map[string]interface{}) {}
func (nopLogger) Info(module string, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module string, message string, details map[string]interface{})  {}
func (nopLogger) Error(module string, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                         { return nil }

func newTestHub() *Hub {
	return NewHub(bus.NewChannelBus(nil), nil, nil, "test-1", nopLogger{})
}

func newTestClient(h *Hub, channel string, buffer int) *Client {
	return &Client{
		Hub:      h,
		UserID:   uuid.New(),
		Username: "amicus",
		Channel:  channel,
		Send:     make(chan []byte, buffer),
		done:     make(chan struct{}),
	}
}

// A fanout that snapshotted the room before teardown landed must neither
// panic nor block on the torn-down client's full buffer.
func TestSendToRoomSkipsTornDownClient(t *testing.T) {
	h := newTestHub()
	defer h.deliveries.Close()

	client := newTestClient(h, "main", 1)
	h.addToRoom(client, "main")

	client.Send <- []byte("queued")
	client.shutdown()

	// With the buffer full only the done case is ready; the drop path would
	// block on the unregister channel since no hub loop is running.
	h.sendToRoom("main", []byte("late delivery"))

	if got := len(client.Send); got != 1 {
		t.Errorf("queued messages = %d, want the pre-teardown message only", got)
	}
}

func TestShutdownIsIdempotent(t *testing.T) {
	h := newTestHub()
	defer h.deliveries.Close()

	client := newTestClient(h, "main", 1)
	client.shutdown()
	client.shutdown()

	select {
	case <-client.done:
	default:
		t.Fatal("done not closed after shutdown")
	}
}

func TestFanoutRacesTeardown(t *testing.T) {
	h := newTestHub()
	defer h.deliveries.Close()

	data := []byte(`{"type":"message"}`)
	for i := 0; i < 200; i++ {
		client := newTestClient(h, "main", 8)
		h.addToRoom(client, "main")

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-client.Send:
				case <-client.done:
					return
				}
			}
		}()
		go func() {
			defer wg.Done()
			h.removeFromRoom(client, true)
		}()

		for j := 0; j < 8; j++ {
			h.sendToRoom("main", data)
		}
		wg.Wait()
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	if len(h.clients) != 0 || len(h.subs) != 0 {
		t.Errorf("rooms not drained: %d rooms, %d subscriptions", len(h.clients), len(h.subs))
	}
}
