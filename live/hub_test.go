package live

import (
	"encoding/json"
	"testing"
	"time"

	"tripcart/models"
)

func TestHubRegisterBroadcastUnregister(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	client := &Client{
		Send:   make(chan []byte, 10),
		TripID: "trip1",
	}

	hub.Register(client)

	change := models.ItemChange{Event: models.ChangeUpdate, TripID: "trip1", ItemID: "i1", Purchased: true}
	data, _ := json.Marshal(change)
	hub.Broadcast("trip1", data)

	select {
	case got := <-client.Send:
		if string(got) != string(data) {
			t.Fatalf("expected %s, got %s", data, got)
		}
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for message")
	}

	hub.Unregister(client)
}

func TestHubRegisterAfterStopReturns(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	hub.Stop()

	// a connection upgraded while shutdown is in flight must not hang
	client := &Client{Send: make(chan []byte, 10), TripID: "trip1"}
	released := make(chan struct{})
	go func() {
		hub.Register(client)
		hub.Unregister(client)
		close(released)
	}()

	select {
	case <-released:
	case <-time.After(1 * time.Second):
		t.Fatal("Register/Unregister blocked after Stop")
	}
}

func TestHubBroadcastIsScopedToTrip(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	a := &Client{Send: make(chan []byte, 10), TripID: "trip-a"}
	b := &Client{Send: make(chan []byte, 10), TripID: "trip-b"}
	hub.Register(a)
	hub.Register(b)

	hub.Broadcast("trip-a", []byte(`{"event":"UPDATE"}`))

	select {
	case <-a.Send:
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for message on trip-a")
	}

	select {
	case msg := <-b.Send:
		t.Fatalf("trip-b should not receive trip-a events, got %s", msg)
	case <-time.After(100 * time.Millisecond):
	}
}
