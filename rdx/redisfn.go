package rdx

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

var Conn *redis.Client

func init() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	Conn = redis.NewClient(&redis.Options{
		Addr: addr,
	})
}

// Session snapshots live for a week; the remote mirror is the longer-lived
// copy, this is only for session resumption.
const sessionTTL = 7 * 24 * time.Hour

func sessionKey(userID, field string) string {
	return fmt.Sprintf("session:%s:%s", userID, field)
}

// SaveSessionJSON stores a session value (travelInfo, shoppingPlan) for the
// user. Best effort: failures are logged, never returned to the caller's flow.
func SaveSessionJSON(ctx context.Context, userID, field string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		log.Printf("session marshal error for %s/%s: %v", userID, field, err)
		return
	}
	if err := Conn.Set(ctx, sessionKey(userID, field), data, sessionTTL).Err(); err != nil {
		log.Printf("session save error for %s/%s: %v", userID, field, err)
	}
}

// LoadSessionJSON loads a session value into out. Returns false when the key
// is absent or unreadable.
func LoadSessionJSON(ctx context.Context, userID, field string, out any) bool {
	data, err := Conn.Get(ctx, sessionKey(userID, field)).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("session load error for %s/%s: %v", userID, field, err)
		}
		return false
	}
	if err := json.Unmarshal(data, out); err != nil {
		log.Printf("session decode error for %s/%s: %v", userID, field, err)
		return false
	}
	return true
}

// ClearSession drops both session keys for the user.
func ClearSession(ctx context.Context, userID string) {
	Conn.Del(ctx, sessionKey(userID, "travelInfo"), sessionKey(userID, "shoppingPlan"))
}
