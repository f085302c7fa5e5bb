package live

import (
	"log"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"

	"tripcart/middleware"
	"tripcart/utils"
)

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

// FeedHandler upgrades the connection and subscribes it to the trip's
// item-change feed. Browsers cannot set an Authorization header on a
// WebSocket, so the token arrives as a ?token= query param instead.
// Clients only listen, inbound frames are drained so pings and close
// frames are handled.
func FeedHandler(hub *Hub) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		tripID := ps.ByName("tripid")

		userID := utils.GetUserIDFromRequest(r)
		if userID == "" {
			claims, err := middleware.ValidateJWT(r.URL.Query().Get("token"))
			if err != nil {
				http.Error(w, "Invalid token", http.StatusUnauthorized)
				return
			}
			userID = claims.UserID
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Println("upgrade:", err)
			return
		}
		client := &Client{
			Conn:   conn,
			Send:   make(chan []byte, 256),
			TripID: tripID,
			UserID: userID,
		}

		hub.Register(client)
		go writePump(client)
		go readPump(client, hub)
	}
}

func writePump(c *Client) {
	defer c.Conn.Close()
	for msg := range c.Send {
		if err := c.Conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			break
		}
	}
}

func readPump(c *Client, hub *Hub) {
	defer func() {
		hub.Unregister(c)
		c.Conn.Close()
	}()
	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			break
		}
	}
}
