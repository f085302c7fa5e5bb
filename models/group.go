package models

// GroupMember is one person splitting the shopping list. The creator is
// seeded as "나" and travel companions become members automatically.
type GroupMember struct {
	ID     string         `json:"id" bson:"id"`
	TripID string         `json:"tripId" bson:"trip_id"`
	Name   string         `json:"name" bson:"name"`
	Emoji  string         `json:"emoji" bson:"emoji"`
	Items  []ShoppingItem `json:"items" bson:"items"`
}

// ChatMessage is a lightweight group chat line relayed over the live feed.
type ChatMessage struct {
	Type    string `json:"type"`
	TripID  string `json:"tripId"`
	Member  string `json:"member"`
	Message string `json:"message"`
}
