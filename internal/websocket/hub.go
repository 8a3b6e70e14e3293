package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"lexcircle-be/internal/entity"
	"lexcircle-be/internal/pkg/logger"
	"lexcircle-be/pkg/bus"
	"lexcircle-be/pkg/events"
	pktNats "lexcircle-be/pkg/nats"

	"github.com/redis/go-redis/v9"
)

// Hub owns the channel rooms. Each room holds the clients currently watching
// one chat channel; the first client into a room opens a delivery bus
// subscription for that channel, the last one out closes it.
type Hub struct {
	// Registered clients map: channel id -> list of clients
	clients map[string][]*Client

	// One live bus subscription per non-empty room
	subs map[string]bus.Subscription

	// Register requests from the clients.
	register chan *Client

	// Unregister requests from clients.
	unregister chan *Client

	// Channel switch requests from client read pumps.
	switches chan switchRequest

	// Lock for safe map access
	mu sync.RWMutex

	deliveries bus.DeliveryBus

	// Redis connection for cross-instance fanout
	rdb *redis.Client

	// Identifies this process in cluster payloads so it can skip its own echo
	instanceID string

	// Join/leave audit events, nil when NATS is down
	eventsPub *pktNats.Publisher

	logger logger.ILogger
}

type switchRequest struct {
	client  *Client
	channel string
}

// clusterPayload is the envelope published on Redis so sibling instances can
// deliver to their own local rooms.
type clusterPayload struct {
	Origin  string          `json:"origin"`
	Channel string          `json:"channel"`
	Message json.RawMessage `json:"message"`
}

const clusterChannel = "chat_cluster_events"

func NewHub(deliveries bus.DeliveryBus, rdb *redis.Client, eventsPub *pktNats.Publisher, instanceID string, log logger.ILogger) *Hub {
	return &Hub{
		clients:    make(map[string][]*Client),
		subs:       make(map[string]bus.Subscription),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		switches:   make(chan switchRequest),
		deliveries: deliveries,
		rdb:        rdb,
		eventsPub:  eventsPub,
		instanceID: instanceID,
		logger:     log,
	}
}

func (h *Hub) Run() {
	if h.rdb != nil {
		go h.subscribeToRedis()
	}

	for {
		select {
		case client := <-h.register:
			h.addToRoom(client, client.Channel)
			h.logger.Info("Hub", "Client registered", map[string]interface{}{
				"user_id": client.UserID,
				"channel": client.Channel,
			})
			h.publishEvent(events.NewChatUserJoined(client.UserID, client.Username))

		case client := <-h.unregister:
			h.removeFromRoom(client, true)
			h.publishEvent(events.NewChatUserLeft(client.UserID))

		case req := <-h.switches:
			if req.channel == req.client.Channel {
				continue
			}
			// Leave the old room first so its subscription can close before
			// the new one opens.
			h.removeFromRoom(req.client, false)
			req.client.Channel = req.channel
			h.addToRoom(req.client, req.channel)
			h.logger.Info("Hub", "Client switched channel", map[string]interface{}{
				"user_id": req.client.UserID,
				"channel": req.channel,
			})
		}
	}
}

func (h *Hub) addToRoom(client *Client, channelId string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	roomWasEmpty := len(h.clients[channelId]) == 0
	h.clients[channelId] = append(h.clients[channelId], client)

	if roomWasEmpty {
		sub, err := h.deliveries.Subscribe(context.Background(), channelId, func(msg *entity.ChatMessage) {
			h.deliverLocal(channelId, msg)
		})
		if err != nil {
			h.logger.Error("Hub", "failed to open room subscription", map[string]interface{}{
				"channel": channelId,
				"error":   err,
			})
			return
		}
		h.subs[channelId] = sub
	}
}

// removeFromRoom drops the client from its current room. When shutdown is
// false the client is switching rooms and its pumps keep running.
func (h *Hub) removeFromRoom(client *Client, shutdown bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	channelId := client.Channel
	clients, ok := h.clients[channelId]
	if !ok {
		return
	}
	for i, c := range clients {
		if c == client {
			h.clients[channelId] = append(clients[:i], clients[i+1:]...)
			if shutdown {
				client.shutdown()
			}
			break
		}
	}
	if len(h.clients[channelId]) == 0 {
		delete(h.clients, channelId)
		if sub, ok := h.subs[channelId]; ok {
			sub.Close()
			delete(h.subs, channelId)
		}
		h.logger.Info("Hub", "Room drained", map[string]interface{}{"channel": channelId})
	}
}

// deliverLocal fans a bus delivery out to the local room, then mirrors it to
// Redis so sibling instances can do the same for their rooms.
func (h *Hub) deliverLocal(channelId string, msg *entity.ChatMessage) {
	data, err := json.Marshal(map[string]interface{}{
		"type": "message",
		"data": msg,
	})
	if err != nil {
		return
	}

	h.sendToRoom(channelId, data)

	if h.rdb != nil {
		payload, _ := json.Marshal(clusterPayload{
			Origin:  h.instanceID,
			Channel: channelId,
			Message: data,
		})
		if err := h.rdb.Publish(context.Background(), clusterChannel, payload).Err(); err != nil {
			h.logger.Warn("Hub", "cluster publish failed", map[string]interface{}{
				"channel": channelId,
				"error":   err,
			})
		}
	}
}

func (h *Hub) sendToRoom(channelId string, data []byte) {
	h.mu.RLock()
	clients := make([]*Client, len(h.clients[channelId]))
	copy(clients, h.clients[channelId])
	h.mu.RUnlock()

	for _, client := range clients {
		select {
		case <-client.done:
			// Torn down between the snapshot and this send.
		case client.Send <- data:
		default:
			h.logger.Warn("Hub", "Client Send buffer full, dropping connection", map[string]interface{}{
				"user_id": client.UserID,
				"channel": channelId,
			})
			h.unregister <- client
		}
	}
}

func (h *Hub) publishEvent(evt events.BaseEvent) {
	if h.eventsPub == nil {
		return
	}
	if err := h.eventsPub.Publish(context.Background(), evt); err != nil {
		h.logger.Warn("Hub", "audit event publish failed", map[string]interface{}{
			"type":  evt.Type,
			"error": err,
		})
	}
}

func (h *Hub) subscribeToRedis() {
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, clusterChannel)
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		var payload clusterPayload
		if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
			h.logger.Warn("Hub", "cluster payload parse error", map[string]interface{}{"error": err})
			continue
		}
		// Local clients already got this one through the bus.
		if payload.Origin == h.instanceID {
			continue
		}
		h.sendToRoom(payload.Channel, payload.Message)
	}
}
