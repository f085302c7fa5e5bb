package live

import (
	"sync"

	"github.com/gorilla/websocket"
)

// Client is one connected device following a trip's change feed.
type Client struct {
	Conn   *websocket.Conn
	Send   chan []byte
	TripID string
	UserID string
}

type broadcastMsg struct {
	TripID string
	Data   []byte
}

// Hub fans item-change events out to every device subscribed to a trip.
type Hub struct {
	trips      map[string]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan broadcastMsg
	done       chan struct{}
	mu         sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		trips:      make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan broadcastMsg, 64),
		done:       make(chan struct{}),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case c := <-h.register:
			h.mu.Lock()
			if h.trips[c.TripID] == nil {
				h.trips[c.TripID] = make(map[*Client]bool)
			}
			h.trips[c.TripID][c] = true
			h.mu.Unlock()

		case c := <-h.unregister:
			h.mu.Lock()
			if conns := h.trips[c.TripID]; conns != nil && conns[c] {
				delete(conns, c)
				close(c.Send)
			}
			h.mu.Unlock()

		case m := <-h.broadcast:
			h.mu.Lock()
			for c := range h.trips[m.TripID] {
				select {
				case c.Send <- m.Data:
				default:
					close(c.Send)
					delete(h.trips[m.TripID], c)
				}
			}
			h.mu.Unlock()

		case <-h.done:
			h.mu.Lock()
			for trip, conns := range h.trips {
				for c := range conns {
					close(c.Send)
				}
				delete(h.trips, trip)
			}
			h.mu.Unlock()
			return
		}
	}
}

// Stop closes every client channel and ends the Run loop.
func (h *Hub) Stop() {
	close(h.done)
}

// Broadcast queues an event for every subscriber of the trip.
func (h *Hub) Broadcast(tripID string, data []byte) {
	select {
	case h.broadcast <- broadcastMsg{TripID: tripID, Data: data}:
	case <-h.done:
	}
}

// Register and Unregister are exported for the websocket handler. Both
// return immediately once the hub is stopped, so a connection upgraded
// mid-shutdown never blocks its handler goroutine.
func (h *Hub) Register(c *Client) {
	select {
	case h.register <- c:
	case <-h.done:
	}
}

func (h *Hub) Unregister(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}
