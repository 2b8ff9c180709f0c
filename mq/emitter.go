package mq

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"mesa/rdx"
)

const channel = "mesa:events"

// Event describes an entity change broadcast to subscribers.
type Event struct {
	EntityType string    `json:"entity_type"`
	Method     string    `json:"method"`
	EntityID   string    `json:"entity_id"`
	At         time.Time `json:"at"`
}

var hub *Hub

// SetHub wires the websocket hub that receives emitted events.
func SetHub(h *Hub) {
	hub = h
}

// Emit publishes an entity-change event to the Redis channel and to any
// connected websocket subscribers. Delivery is best-effort; emitting never
// fails the originating request.
func Emit(entityType, method, entityID string) {
	event := Event{
		EntityType: entityType,
		Method:     method,
		EntityID:   entityID,
		At:         time.Now().UTC(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		log.Printf("mq: marshal event: %v", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	rdx.Publish(ctx, channel, payload)

	if hub != nil {
		hub.Broadcast(payload)
	}
}
