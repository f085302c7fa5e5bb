package models

// Item priorities as the generator emits them.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// Item sources. Guide items come from the curated reference data, AI items
// are the model's own suggestions.
const (
	SourceGuide = "guide"
	SourceAI    = "ai"
)

// ShoppingItem is a single planned purchase. EstimatedPrice is always in KRW;
// LocalPrice/CurrencyCode, when both present, are the authoritative pair and
// EstimatedPrice is recomputed from them whenever exchange rates change.
type ShoppingItem struct {
	ID             string   `json:"id" bson:"id"`
	Category       string   `json:"category" bson:"category"`
	Product        string   `json:"product" bson:"product"`
	Brand          string   `json:"brand,omitempty" bson:"brand,omitempty"`
	EstimatedPrice int      `json:"estimatedPrice" bson:"estimated_price"`
	LocalPrice     int      `json:"localPrice,omitempty" bson:"local_price,omitempty"`
	CurrencyCode   string   `json:"currencyCode,omitempty" bson:"currency_code,omitempty"`
	Reason         string   `json:"reason" bson:"reason"`
	Priority       string   `json:"priority" bson:"priority"`
	Alternatives   []string `json:"alternatives,omitempty" bson:"alternatives,omitempty"`
	ShopName       string   `json:"shopName,omitempty" bson:"shop_name,omitempty"`
	Address        string   `json:"address,omitempty" bson:"address,omitempty"`
	MallName       string   `json:"mallName,omitempty" bson:"mall_name,omitempty"`
	Purchased      bool     `json:"purchased" bson:"purchased"`
	PurchasedBy    string   `json:"purchasedBy,omitempty" bson:"purchased_by,omitempty"`
	Memo           string   `json:"memo,omitempty" bson:"memo,omitempty"`
	IsRecommended  *bool    `json:"isRecommended,omitempty" bson:"is_recommended,omitempty"`
	Source         string   `json:"source,omitempty" bson:"source,omitempty"`
}

// ShoppingLocation is one shopping bucket: a duty-free counter or a per-day,
// per-city stop. Subtotal always equals the sum of item EstimatedPrice.
type ShoppingLocation struct {
	ID       string         `json:"id" bson:"id"`
	Location string         `json:"location" bson:"location"`
	Timing   string         `json:"timing" bson:"timing"`
	Day      int            `json:"day,omitempty" bson:"day,omitempty"`
	FreeTime int            `json:"freeTime,omitempty" bson:"free_time,omitempty"`
	Items    []ShoppingItem `json:"items" bson:"items"`
	Subtotal int            `json:"subtotal" bson:"subtotal"`
	Tips     []string       `json:"tips,omitempty" bson:"tips,omitempty"`
	Route    string         `json:"route,omitempty" bson:"route,omitempty"`
	Warnings []string       `json:"warnings,omitempty" bson:"warnings,omitempty"`
}

// DutyFree holds the two fixed buckets that every plan carries.
type DutyFree struct {
	Departure ShoppingLocation `json:"departure" bson:"departure"`
	Arrival   ShoppingLocation `json:"arrival" bson:"arrival"`
}

// BudgetSummary is derived data only; it is recomputed from item prices and
// never taken from the generator's arithmetic.
type BudgetSummary struct {
	DutyFree     int `json:"dutyFree" bson:"duty_free"`
	CityShopping int `json:"cityShopping" bson:"city_shopping"`
	Total        int `json:"total" bson:"total"`
	Remaining    int `json:"remaining" bson:"remaining"`
}

// ShoppingPlan aggregates everything shown to the traveler. CityShopping is
// keyed by synthetic ids of the form day_<n>_<city>.
type ShoppingPlan struct {
	DutyFree      DutyFree                    `json:"dutyFree" bson:"duty_free"`
	CityShopping  map[string]ShoppingLocation `json:"cityShopping" bson:"city_shopping"`
	BudgetSummary BudgetSummary               `json:"budgetSummary" bson:"budget_summary"`
	Timeline      []string                    `json:"timeline" bson:"timeline"`
}

// Fixed location ids for the duty-free buckets.
const (
	LocationDeparture = "departure"
	LocationArrival   = "arrival"
)

// MirrorItem is the denormalized shopping_items row mirrored to the store.
type MirrorItem struct {
	ID             string `json:"id" bson:"id"`
	TripID         string `json:"trip_id" bson:"trip_id"`
	LocationID     string `json:"location_id" bson:"location_id"`
	LocationName   string `json:"location_name" bson:"location_name"`
	Category       string `json:"category" bson:"category"`
	ProductName    string `json:"product_name" bson:"product_name"`
	Brand          string `json:"brand,omitempty" bson:"brand,omitempty"`
	EstimatedPrice int    `json:"estimated_price" bson:"estimated_price"`
	LocalPrice     int    `json:"local_price,omitempty" bson:"local_price,omitempty"`
	CurrencyCode   string `json:"currency_code,omitempty" bson:"currency_code,omitempty"`
	Reason         string `json:"reason,omitempty" bson:"reason,omitempty"`
	Priority       string `json:"priority,omitempty" bson:"priority,omitempty"`
	Purchased      bool   `json:"purchased" bson:"purchased"`
	PurchasedBy    string `json:"purchased_by,omitempty" bson:"purchased_by,omitempty"`
	ShopName       string `json:"shop_name,omitempty" bson:"shop_name,omitempty"`
	IsRecommended  bool   `json:"is_recommended" bson:"is_recommended"`
}
