package planner

import (
	"fmt"
	"regexp"
	"strings"

	"tripcart/models"
	"tripcart/utils"

	"github.com/google/uuid"
)

// citySeparatorRe splits a schedule location label that names several cities
// in one string ("Napoli, Pompeii", "다낭/호이안").
var citySeparatorRe = regexp.MustCompile(`[,/·&+|]+`)

// SplitCities breaks a location label into individual city tokens.
func SplitCities(label string) []string {
	var cities []string
	for _, tok := range citySeparatorRe.Split(label, -1) {
		if tok = strings.TrimSpace(tok); tok != "" {
			cities = append(cities, tok)
		}
	}
	return cities
}

// Reconcile finalizes a normalized plan against the trip schedule:
// regenerate item ids, dedup items per city bucket, and synthesize empty
// buckets for scheduled cities the generator skipped. Running it twice with
// the same input adds nothing the second time.
func Reconcile(plan *models.ShoppingPlan, info models.TravelInfo) {
	regenerateItemIDs(plan)
	dedupCityItems(plan)
	ensureScheduledBuckets(plan, info)
	RecomputeTotals(plan, info.Budget)
}

// Generators occasionally emit duplicate or colliding ids across locations;
// every item gets a fresh one.
func regenerateItemIDs(plan *models.ShoppingPlan) {
	freshen := func(items []models.ShoppingItem) {
		for i := range items {
			items[i].ID = uuid.NewString()
		}
	}
	freshen(plan.DutyFree.Departure.Items)
	freshen(plan.DutyFree.Arrival.Items)
	for _, loc := range plan.CityShopping {
		freshen(loc.Items)
	}
}

// Within each city bucket, items with the same trimmed lowercased product
// name collapse to the first occurrence.
func dedupCityItems(plan *models.ShoppingPlan) {
	for key, loc := range plan.CityShopping {
		seen := make(map[string]bool)
		kept := loc.Items[:0]
		for _, item := range loc.Items {
			name := strings.ToLower(strings.TrimSpace(item.Product))
			if seen[name] {
				continue
			}
			seen[name] = true
			kept = append(kept, item)
		}
		loc.Items = kept
		plan.CityShopping[key] = loc
	}
}

// Every scheduled day/city pair gets a bucket, empty if the generator gave
// it none. Bucket ids are deterministic so re-running never duplicates.
func ensureScheduledBuckets(plan *models.ShoppingPlan, info models.TravelInfo) {
	if plan.CityShopping == nil {
		plan.CityShopping = make(map[string]models.ShoppingLocation)
	}
	for _, entry := range info.Schedule {
		for _, city := range SplitCities(entry.Location) {
			if hasBucketFor(plan, entry.Day, city) {
				continue
			}
			id := fmt.Sprintf("day_%d_%s", entry.Day, utils.SanitizeCityID(city))
			if _, exists := plan.CityShopping[id]; exists {
				continue
			}
			plan.CityShopping[id] = models.ShoppingLocation{
				ID:       id,
				Location: city,
				Day:      entry.Day,
				Timing:   "여행 중",
				Items:    []models.ShoppingItem{},
			}
		}
	}
}

// Fuzzy match: a bucket covers the city when either label contains the
// other, same day only.
func hasBucketFor(plan *models.ShoppingPlan, day int, city string) bool {
	for _, loc := range plan.CityShopping {
		if loc.Day != day {
			continue
		}
		if utils.ContainsIgnoreCase(loc.Location, city) || utils.ContainsIgnoreCase(city, loc.Location) {
			return true
		}
	}
	return false
}
