// internal/broadcast/hub.go

// Package broadcast fans session events out to every live connection
// subscribed to a session code. Delivery is fire-and-forget and
// at-most-once: there is no queue, no replay for late subscribers, and
// publishers never learn whether anyone received a message.
package broadcast

import (
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// outChanSize buffers outgoing messages per subscriber so a slow reader
// stalls only itself.
const outChanSize = 16

// Subscriber is one live connection's receiving end. The transport
// layer drains OutChan and owns the connection's lifecycle.
type Subscriber struct {
	ID      uuid.UUID
	OutChan chan map[string]interface{}

	log *logrus.Logger
}

// NewSubscriber allocates a subscriber with a buffered outgoing channel.
func NewSubscriber(log *logrus.Logger) *Subscriber {
	return &Subscriber{
		ID:      uuid.New(),
		OutChan: make(chan map[string]interface{}, outChanSize),
		log:     log,
	}
}

// Write pushes a message onto the subscriber's channel without
// blocking. If the channel is full the message is dropped and logged;
// a subscriber that cannot keep up forfeits events rather than stalling
// the publisher.
func (sub *Subscriber) Write(msg map[string]interface{}) {
	select {
	case sub.OutChan <- msg:
	default:
		msgType, _ := msg["type"].(string)
		sub.log.WithFields(logrus.Fields{
			"subscriber": sub.ID,
			"msg_type":   msgType,
		}).Warn("subscriber channel full, dropping message")
	}
}

// WriteError sends an error envelope to this subscriber only.
func (sub *Subscriber) WriteError(message string) {
	sub.Write(map[string]interface{}{
		"type":    "error",
		"message": message,
	})
}

// Hub tracks which subscribers listen on which session code. It holds
// no session state; room membership is purely connection-local.
type Hub struct {
	mu    sync.Mutex
	rooms map[string]map[*Subscriber]struct{}
}

// NewHub returns an empty hub.
func NewHub() *Hub {
	return &Hub{
		rooms: make(map[string]map[*Subscriber]struct{}),
	}
}

// Subscribe adds sub to the channel for the given session code.
func (h *Hub) Subscribe(code string, sub *Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	room, ok := h.rooms[code]
	if !ok {
		room = make(map[*Subscriber]struct{})
		h.rooms[code] = room
	}
	room[sub] = struct{}{}
}

// Unsubscribe removes sub from one session's channel.
func (h *Hub) Unsubscribe(code string, sub *Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if room, ok := h.rooms[code]; ok {
		delete(room, sub)
		if len(room) == 0 {
			delete(h.rooms, code)
		}
	}
}

// UnsubscribeAll removes sub from every channel it joined. Called when
// a connection closes; session state is never rolled back on
// disconnect.
func (h *Hub) UnsubscribeAll(sub *Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for code, room := range h.rooms {
		delete(room, sub)
		if len(room) == 0 {
			delete(h.rooms, code)
		}
	}
}

// Publish delivers msg to every current subscriber of the session code.
// Sends are non-blocking, and two publishes from the same goroutine
// land on each subscriber's channel in call order.
func (h *Hub) Publish(code string, msg map[string]interface{}) {
	h.mu.Lock()
	subs := make([]*Subscriber, 0, len(h.rooms[code]))
	for sub := range h.rooms[code] {
		subs = append(subs, sub)
	}
	h.mu.Unlock()

	for _, sub := range subs {
		sub.Write(msg)
	}
}
