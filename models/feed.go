package models

// Item change-feed event kinds.
const (
	ChangeInsert = "INSERT"
	ChangeUpdate = "UPDATE"
	ChangeDelete = "DELETE"
)

// ItemChange is one entry on the shopping_items change feed, published over
// redis and fanned out to websocket subscribers of the trip.
type ItemChange struct {
	Event       string `json:"event"`
	TripID      string `json:"trip_id"`
	ItemID      string `json:"item_id"`
	ProductName string `json:"product_name,omitempty"`
	LocationID  string `json:"location_id,omitempty"`
	Purchased   bool   `json:"purchased"`
	PurchasedBy string `json:"purchased_by,omitempty"`
}
