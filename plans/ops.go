package plans

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"tripcart/currency"
	"tripcart/models"
	"tripcart/planner"

	"github.com/google/uuid"
)

// getLocation fetches a location by id, covering the two fixed duty-free
// buckets and the city map.
func getLocation(plan *models.ShoppingPlan, locationID string) (models.ShoppingLocation, bool) {
	switch locationID {
	case models.LocationDeparture:
		return plan.DutyFree.Departure, true
	case models.LocationArrival:
		return plan.DutyFree.Arrival, true
	default:
		loc, ok := plan.CityShopping[locationID]
		return loc, ok
	}
}

func setLocation(plan *models.ShoppingPlan, locationID string, loc models.ShoppingLocation) {
	switch locationID {
	case models.LocationDeparture:
		plan.DutyFree.Departure = loc
	case models.LocationArrival:
		plan.DutyFree.Arrival = loc
	default:
		plan.CityShopping[locationID] = loc
	}
}

func allLocationIDs(plan *models.ShoppingPlan) []string {
	ids := []string{models.LocationDeparture, models.LocationArrival}
	for id := range plan.CityShopping {
		ids = append(ids, id)
	}
	return ids
}

// ToggleItem flips an item's purchased flag. The location id is a hint; when
// the item is not there (merged views reshuffle buckets) every location is
// searched. Returns the updated item and the id of the location that held it.
func ToggleItem(plan *models.ShoppingPlan, locationID, itemID, purchasedBy string) (models.ShoppingItem, string, bool) {
	tryLocation := func(id string) (models.ShoppingItem, bool) {
		loc, ok := getLocation(plan, id)
		if !ok {
			return models.ShoppingItem{}, false
		}
		for i := range loc.Items {
			if loc.Items[i].ID != itemID {
				continue
			}
			loc.Items[i].Purchased = !loc.Items[i].Purchased
			if purchasedBy != "" {
				loc.Items[i].PurchasedBy = purchasedBy
			}
			setLocation(plan, id, loc)
			return loc.Items[i], true
		}
		return models.ShoppingItem{}, false
	}

	if item, ok := tryLocation(locationID); ok {
		return item, locationID, true
	}
	for _, id := range allLocationIDs(plan) {
		if id == locationID {
			continue
		}
		if item, ok := tryLocation(id); ok {
			return item, id, true
		}
	}
	return models.ShoppingItem{}, "", false
}

// NewItemInput is a user-added item. Location "NEW:<day>:<name>" creates a
// fresh city bucket for that day.
type NewItemInput struct {
	Product      string `json:"product"`
	Price        int    `json:"price"`
	LocationID   string `json:"locationId"`
	Memo         string `json:"memo,omitempty"`
	LocalPrice   int    `json:"localPrice,omitempty"`
	CurrencyCode string `json:"currencyCode,omitempty"`
}

// AddItem appends a user item and recomputes all totals.
func AddItem(plan *models.ShoppingPlan, budget int, in NewItemInput) (models.ShoppingItem, string, error) {
	if plan.CityShopping == nil {
		plan.CityShopping = make(map[string]models.ShoppingLocation)
	}

	notRecommended := false
	item := models.ShoppingItem{
		ID:             uuid.NewString(),
		Category:       "기타",
		Product:        in.Product,
		EstimatedPrice: in.Price,
		LocalPrice:     in.LocalPrice,
		CurrencyCode:   in.CurrencyCode,
		Reason:         "사용자 추가 아이템",
		Priority:       models.PriorityMedium,
		Memo:           in.Memo,
		IsRecommended:  &notRecommended,
	}

	locationID := in.LocationID
	if strings.HasPrefix(locationID, "NEW:") {
		id, loc, err := newBucketFromSpec(locationID)
		if err != nil {
			return models.ShoppingItem{}, "", err
		}
		plan.CityShopping[id] = loc
		locationID = id
	}

	loc, ok := getLocation(plan, locationID)
	if !ok {
		return models.ShoppingItem{}, "", fmt.Errorf("unknown location %q", in.LocationID)
	}
	loc.Items = append(loc.Items, item)
	setLocation(plan, locationID, loc)

	planner.RecomputeTotals(plan, budget)
	return item, locationID, nil
}

// newBucketFromSpec parses "NEW:<day>:<name...>" into an empty bucket. The
// name may itself contain colons.
func newBucketFromSpec(spec string) (string, models.ShoppingLocation, error) {
	parts := strings.SplitN(spec, ":", 3)
	if len(parts) != 3 || parts[2] == "" {
		return "", models.ShoppingLocation{}, fmt.Errorf("invalid new-location spec %q", spec)
	}
	day, err := strconv.Atoi(parts[1])
	if err != nil {
		return "", models.ShoppingLocation{}, fmt.Errorf("invalid day in %q", spec)
	}
	name := parts[2]
	id := fmt.Sprintf("day_%d_%s_%d", day, strings.ReplaceAll(name, " ", "_"), time.Now().UnixMilli())
	return id, models.ShoppingLocation{
		ID:       id,
		Location: name,
		Day:      day,
		Timing:   "여행 중",
		Items:    []models.ShoppingItem{},
	}, nil
}

// EditItemInput updates an item in place, possibly moving it between
// locations.
type EditItemInput struct {
	LocationID    string `json:"locationId"`
	NewLocationID string `json:"newLocationId,omitempty"`
	Product       string `json:"product"`
	Price         int    `json:"price"`
	Memo          string `json:"memo,omitempty"`
	LocalPrice    int    `json:"localPrice,omitempty"`
	CurrencyCode  string `json:"currencyCode,omitempty"`
}

// EditItem removes the item from its location, applies the edits, and
// reinserts it at the target location (same one unless a move is requested).
func EditItem(plan *models.ShoppingPlan, budget int, itemID string, in EditItemInput) (models.ShoppingItem, error) {
	if plan.CityShopping == nil {
		plan.CityShopping = make(map[string]models.ShoppingLocation)
	}
	orig, ok := getLocation(plan, in.LocationID)
	if !ok {
		return models.ShoppingItem{}, fmt.Errorf("unknown location %q", in.LocationID)
	}
	idx := -1
	for i := range orig.Items {
		if orig.Items[i].ID == itemID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return models.ShoppingItem{}, fmt.Errorf("item %q not in location %q", itemID, in.LocationID)
	}

	item := orig.Items[idx]
	orig.Items = append(orig.Items[:idx], orig.Items[idx+1:]...)
	setLocation(plan, in.LocationID, orig)

	item.Product = in.Product
	item.EstimatedPrice = in.Price
	item.Memo = in.Memo
	item.LocalPrice = in.LocalPrice
	item.CurrencyCode = in.CurrencyCode

	targetID := in.NewLocationID
	if targetID == "" {
		targetID = in.LocationID
	}
	target, ok := getLocation(plan, targetID)
	if !ok {
		return models.ShoppingItem{}, fmt.Errorf("unknown location %q", targetID)
	}
	target.Items = append(target.Items, item)
	setLocation(plan, targetID, target)

	planner.RecomputeTotals(plan, budget)
	return item, nil
}

// DeleteItem removes an item and recomputes all totals.
func DeleteItem(plan *models.ShoppingPlan, budget int, locationID, itemID string) (models.ShoppingItem, bool) {
	loc, ok := getLocation(plan, locationID)
	if !ok {
		return models.ShoppingItem{}, false
	}
	for i := range loc.Items {
		if loc.Items[i].ID != itemID {
			continue
		}
		item := loc.Items[i]
		loc.Items = append(loc.Items[:i], loc.Items[i+1:]...)
		setLocation(plan, locationID, loc)
		planner.RecomputeTotals(plan, budget)
		return item, true
	}
	return models.ShoppingItem{}, false
}

// ApplyRates recomputes KRW prices from local prices under a rate snapshot,
// then rebuilds all totals. Items without a localPrice/currencyCode pair are
// untouched. Idempotent for an unchanged snapshot.
func ApplyRates(plan *models.ShoppingPlan, budget int, rates currency.Rates) {
	convert := func(loc models.ShoppingLocation) models.ShoppingLocation {
		for i := range loc.Items {
			it := &loc.Items[i]
			if it.LocalPrice > 0 && it.CurrencyCode != "" {
				it.EstimatedPrice = rates.Convert(it.LocalPrice, it.CurrencyCode)
			}
		}
		return loc
	}
	plan.DutyFree.Departure = convert(plan.DutyFree.Departure)
	plan.DutyFree.Arrival = convert(plan.DutyFree.Arrival)
	for id, loc := range plan.CityShopping {
		plan.CityShopping[id] = convert(loc)
	}
	planner.RecomputeTotals(plan, budget)
}
