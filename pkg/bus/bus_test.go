package bus

import (
	"context"
	"testing"
	"time"

	"lexcircle-be/internal/entity"

	"github.com/google/uuid"
)

func newTestMessage(channel, body string) *entity.ChatMessage {
	return &entity.ChatMessage{
		Id:        uuid.New(),
		Channel:   channel,
		UserId:    uuid.New(),
		Username:  "tester",
		Body:      body,
		CreatedAt: time.Now(),
	}
}

func collect(t *testing.T, ch <-chan *entity.ChatMessage, n int) []*entity.ChatMessage {
	t.Helper()
	out := make([]*entity.ChatMessage, 0, n)
	for len(out) < n {
		select {
		case msg := <-ch:
			out = append(out, msg)
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for delivery %d of %d", len(out)+1, n)
		}
	}
	return out
}

func TestPublishSubscribeOrdering(t *testing.T) {
	b := NewChannelBus(nil)
	defer b.Close()

	received := make(chan *entity.ChatMessage, 10)
	sub, err := b.Subscribe(context.Background(), "moot-court", func(msg *entity.ChatMessage) {
		received <- msg
	})
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}
	defer sub.Close()

	bodies := []string{"first", "second", "third"}
	for _, body := range bodies {
		if err := b.Publish(context.Background(), newTestMessage("moot-court", body)); err != nil {
			t.Fatalf("Publish failed: %v", err)
		}
	}

	got := collect(t, received, len(bodies))
	for i, want := range bodies {
		if got[i].Body != want {
			t.Errorf("delivery %d = %q, want %q", i, got[i].Body, want)
		}
	}
}

func TestNoCrossChannelLeak(t *testing.T) {
	b := NewChannelBus(nil)
	defer b.Close()

	contracts := make(chan *entity.ChatMessage, 10)
	torts := make(chan *entity.ChatMessage, 10)

	subA, err := b.Subscribe(context.Background(), "contracts", func(msg *entity.ChatMessage) {
		contracts <- msg
	})
	if err != nil {
		t.Fatalf("Subscribe contracts failed: %v", err)
	}
	defer subA.Close()

	subB, err := b.Subscribe(context.Background(), "torts", func(msg *entity.ChatMessage) {
		torts <- msg
	})
	if err != nil {
		t.Fatalf("Subscribe torts failed: %v", err)
	}
	defer subB.Close()

	if err := b.Publish(context.Background(), newTestMessage("contracts", "offer and acceptance")); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}

	got := collect(t, contracts, 1)
	if got[0].Channel != "contracts" {
		t.Errorf("delivered channel = %q, want %q", got[0].Channel, "contracts")
	}

	select {
	case msg := <-torts:
		t.Errorf("torts subscriber received %q from channel %q", msg.Body, msg.Channel)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestSubscriptionCloseIsIdempotent(t *testing.T) {
	b := NewChannelBus(nil)
	defer b.Close()

	sub, err := b.Subscribe(context.Background(), "evidence", func(*entity.ChatMessage) {})
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}

	// Must not panic or block.
	sub.Close()
	sub.Close()
	sub.Close()
}

func TestNoDeliveryAfterClose(t *testing.T) {
	b := NewChannelBus(nil)
	defer b.Close()

	received := make(chan *entity.ChatMessage, 10)
	sub, err := b.Subscribe(context.Background(), "property", func(msg *entity.ChatMessage) {
		received <- msg
	})
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}

	sub.Close()
	// Give the cancelled stream a moment to drain.
	time.Sleep(100 * time.Millisecond)

	if err := b.Publish(context.Background(), newTestMessage("property", "fee simple")); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}

	select {
	case msg := <-received:
		t.Errorf("received %q after Close", msg.Body)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestResubscribeMissesGapMessages(t *testing.T) {
	b := NewChannelBus(nil)
	defer b.Close()

	// Nobody listening: this one is lost by design, history covers the gap.
	if err := b.Publish(context.Background(), newTestMessage("crim", "lost")); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}

	received := make(chan *entity.ChatMessage, 10)
	sub, err := b.Subscribe(context.Background(), "crim", func(msg *entity.ChatMessage) {
		received <- msg
	})
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}
	defer sub.Close()

	if err := b.Publish(context.Background(), newTestMessage("crim", "seen")); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}

	got := collect(t, received, 1)
	if got[0].Body != "seen" {
		t.Errorf("first delivery = %q, want %q", got[0].Body, "seen")
	}
}
