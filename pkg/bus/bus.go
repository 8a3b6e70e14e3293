package bus

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"lexcircle-be/internal/entity"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// Handler receives every message appended to a subscribed channel.
type Handler func(msg *entity.ChatMessage)

// Subscription is a live channel subscription. Close is idempotent. A single
// delivery already in flight when Close returns may still invoke the handler;
// callers must tolerate at most one stray callback.
type Subscription interface {
	Close()
}

// DeliveryBus is the channel-scoped fanout for chat messages. Delivery is
// asynchronous and per-channel ordered; a subscriber that is not connected
// misses messages published during the gap and recovers via history.
type DeliveryBus interface {
	Publish(ctx context.Context, msg *entity.ChatMessage) error
	Subscribe(ctx context.Context, channel string, fn Handler) (Subscription, error)
	Close() error
}

// ChannelBus implements DeliveryBus on watermill's in-process GoChannel
// pub/sub, one topic per chat channel.
type ChannelBus struct {
	pubSub *gochannel.GoChannel
}

func NewChannelBus(logger watermill.LoggerAdapter) *ChannelBus {
	if logger == nil {
		logger = watermill.NopLogger{}
	}
	return &ChannelBus{
		pubSub: gochannel.NewGoChannel(gochannel.Config{}, logger),
	}
}

func topicFor(channel string) string {
	return "chat." + channel
}

func (b *ChannelBus) Publish(ctx context.Context, msg *entity.ChatMessage) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal chat message: %w", err)
	}
	return b.pubSub.Publish(topicFor(msg.Channel), message.NewMessage(watermill.NewUUID(), payload))
}

func (b *ChannelBus) Subscribe(ctx context.Context, channel string, fn Handler) (Subscription, error) {
	subCtx, cancel := context.WithCancel(ctx)
	messages, err := b.pubSub.Subscribe(subCtx, topicFor(channel))
	if err != nil {
		cancel()
		return nil, err
	}

	go func() {
		// GoChannel closes the stream when subCtx is cancelled.
		for msg := range messages {
			var chatMsg entity.ChatMessage
			if err := json.Unmarshal(msg.Payload, &chatMsg); err != nil {
				msg.Ack() // Ack malformed payloads to avoid redelivery loops
				continue
			}
			fn(&chatMsg)
			msg.Ack()
		}
	}()

	return &subscription{cancel: cancel}, nil
}

func (b *ChannelBus) Close() error {
	return b.pubSub.Close()
}

type subscription struct {
	cancel context.CancelFunc
	once   sync.Once
}

func (s *subscription) Close() {
	s.once.Do(s.cancel)
}
