package mq

import (
	"context"
	"encoding/json"
	"log"

	"tripcart/live"
	"tripcart/models"
	"tripcart/rdx"
)

const feedChannel = "item-changes"

// Emit publishes an item change to Redis so every instance can relay it
// to its own websocket subscribers. Failures are logged, the mutating
// request has already succeeded by the time Emit runs.
func Emit(ctx context.Context, change models.ItemChange) {
	data, err := json.Marshal(change)
	if err != nil {
		log.Printf("[Emit] Failed to marshal item change: %v", err)
		return
	}

	if err := rdx.Conn.Publish(ctx, feedChannel, data).Err(); err != nil {
		log.Printf("[Emit] Failed to publish item change: %v", err)
	}
}

// StartFeedWorker relays published item changes to the hub, fanning
// them out to the websocket clients of the affected trip.
func StartFeedWorker(hub *live.Hub) {
	ctx := context.Background()
	sub := rdx.Conn.Subscribe(ctx, feedChannel)
	ch := sub.Channel()

	log.Println("[FeedWorker] Listening for item changes...")

	for msg := range ch {
		var change models.ItemChange
		if err := json.Unmarshal([]byte(msg.Payload), &change); err != nil {
			log.Printf("[FeedWorker] Failed to parse item change: %v", err)
			continue
		}
		if change.TripID == "" {
			continue
		}
		hub.Broadcast(change.TripID, []byte(msg.Payload))
	}
}
