package plans

import (
	"strings"
	"testing"

	"tripcart/currency"
	"tripcart/models"
	"tripcart/planner"
)

func samplePlan() *models.ShoppingPlan {
	plan := &models.ShoppingPlan{
		DutyFree: models.DutyFree{
			Departure: models.ShoppingLocation{
				ID: models.LocationDeparture, Location: "인천공항 면세점",
				Items: []models.ShoppingItem{
					{ID: "whisky", Product: "위스키", EstimatedPrice: 50000},
				},
			},
			Arrival: models.ShoppingLocation{ID: models.LocationArrival, Items: []models.ShoppingItem{}},
		},
		CityShopping: map[string]models.ShoppingLocation{
			"day_1_bangkok": {
				ID: "day_1_bangkok", Location: "방콕", Day: 1,
				Items: []models.ShoppingItem{
					{ID: "mango", Product: "말린 망고", EstimatedPrice: 5000, LocalPrice: 150, CurrencyCode: "THB"},
					{ID: "toothpaste", Product: "달리 치약", EstimatedPrice: 2000},
				},
			},
		},
	}
	planner.RecomputeTotals(plan, 200000)
	return plan
}

func TestToggleItemDoubleToggleRestores(t *testing.T) {
	plan := samplePlan()
	before := plan.BudgetSummary

	item, loc, ok := ToggleItem(plan, "day_1_bangkok", "mango", "엄마")
	if !ok || loc != "day_1_bangkok" {
		t.Fatalf("toggle failed: ok=%v loc=%q", ok, loc)
	}
	if !item.Purchased || item.PurchasedBy != "엄마" {
		t.Errorf("toggle result: %+v", item)
	}

	item, _, ok = ToggleItem(plan, "day_1_bangkok", "mango", "")
	if !ok || item.Purchased {
		t.Errorf("second toggle should restore purchased=false, got %+v", item)
	}

	planner.RecomputeTotals(plan, 200000)
	if plan.BudgetSummary != before {
		t.Errorf("totals changed by toggling: %+v != %+v", plan.BudgetSummary, before)
	}
}

func TestToggleItemSearchesAllLocations(t *testing.T) {
	plan := samplePlan()

	// wrong hint: item actually lives in duty free departure
	item, loc, ok := ToggleItem(plan, "day_1_bangkok", "whisky", "")
	if !ok {
		t.Fatal("item should be found despite the wrong location hint")
	}
	if loc != models.LocationDeparture {
		t.Errorf("actual location = %q, want %q", loc, models.LocationDeparture)
	}
	if !item.Purchased {
		t.Error("item should be marked purchased")
	}
}

func TestAddItemToExistingLocation(t *testing.T) {
	plan := samplePlan()

	item, loc, err := AddItem(plan, 200000, NewItemInput{
		Product: "망고스틴", Price: 3000, LocationID: "day_1_bangkok", Memo: "시장에서",
	})
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if loc != "day_1_bangkok" {
		t.Errorf("location = %q", loc)
	}
	if item.Category != "기타" || item.Priority != models.PriorityMedium {
		t.Errorf("user item defaults wrong: %+v", item)
	}
	if item.IsRecommended == nil || *item.IsRecommended {
		t.Error("user items must carry isRecommended=false")
	}
	if got := plan.CityShopping["day_1_bangkok"].Subtotal; got != 10000 {
		t.Errorf("subtotal = %d, want 10000", got)
	}
	if plan.BudgetSummary.Total != 60000 {
		t.Errorf("total = %d, want 60000", plan.BudgetSummary.Total)
	}
}

func TestAddItemNewBucket(t *testing.T) {
	plan := samplePlan()

	_, loc, err := AddItem(plan, 200000, NewItemInput{
		Product: "라탄 가방", Price: 15000, LocationID: "NEW:2:치앙마이 야시장",
	})
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if !strings.HasPrefix(loc, "day_2_치앙마이_야시장") {
		t.Errorf("bucket id = %q", loc)
	}
	bucket := plan.CityShopping[loc]
	if bucket.Day != 2 || bucket.Location != "치앙마이 야시장" || len(bucket.Items) != 1 {
		t.Errorf("bucket malformed: %+v", bucket)
	}
}

func TestAddItemInitializesCityShopping(t *testing.T) {
	// Plans saved via PUT /api/plan may omit cityShopping entirely.
	plan := &models.ShoppingPlan{}

	item, loc, err := AddItem(plan, 100000, NewItemInput{
		Product: "쌀국수 라면", Price: 1000, LocationID: "NEW:1:Hanoi",
	})
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if !strings.HasPrefix(loc, "day_1_Hanoi") {
		t.Errorf("bucket id = %q", loc)
	}
	bucket := plan.CityShopping[loc]
	if len(bucket.Items) != 1 || bucket.Items[0].ID != item.ID {
		t.Errorf("bucket malformed: %+v", bucket)
	}
	if plan.BudgetSummary.Total != 1000 {
		t.Errorf("Total = %d, want 1000", plan.BudgetSummary.Total)
	}
}

func TestEditItemNilCityShopping(t *testing.T) {
	plan := &models.ShoppingPlan{
		DutyFree: models.DutyFree{
			Departure: models.ShoppingLocation{
				Location: "인천공항 면세점",
				Items:    []models.ShoppingItem{{ID: "it-1", Product: "위스키", EstimatedPrice: 50000}},
			},
		},
	}

	_, err := EditItem(plan, 200000, "it-1", EditItemInput{
		LocationID: models.LocationDeparture, Product: "위스키 700ml", Price: 55000,
	})
	if err != nil {
		t.Fatalf("EditItem: %v", err)
	}
	if _, err := EditItem(plan, 200000, "it-1", EditItemInput{
		LocationID: models.LocationDeparture, NewLocationID: "day_1_하노이", Price: 55000,
	}); err == nil {
		t.Fatal("expected error moving to a location that does not exist")
	}
}

func TestAddItemUnknownLocation(t *testing.T) {
	plan := samplePlan()
	if _, _, err := AddItem(plan, 200000, NewItemInput{Product: "x", Price: 1, LocationID: "nope"}); err == nil {
		t.Fatal("expected error for unknown location")
	}
}

func TestEditItemMove(t *testing.T) {
	plan := samplePlan()

	item, err := EditItem(plan, 200000, "toothpaste", EditItemInput{
		LocationID:    "day_1_bangkok",
		NewLocationID: models.LocationArrival,
		Product:       "달리 치약 3개입",
		Price:         6000,
	})
	if err != nil {
		t.Fatalf("EditItem: %v", err)
	}
	if item.Product != "달리 치약 3개입" || item.EstimatedPrice != 6000 {
		t.Errorf("edit not applied: %+v", item)
	}
	if len(plan.CityShopping["day_1_bangkok"].Items) != 1 {
		t.Error("item still in the old location")
	}
	if len(plan.DutyFree.Arrival.Items) != 1 {
		t.Error("item missing from the new location")
	}
	if got := plan.DutyFree.Arrival.Subtotal; got != 6000 {
		t.Errorf("arrival subtotal = %d, want 6000", got)
	}
}

func TestDeleteItemAdjustsTotalsExactly(t *testing.T) {
	plan := samplePlan()
	before := plan.BudgetSummary

	item, ok := DeleteItem(plan, 200000, "day_1_bangkok", "mango")
	if !ok {
		t.Fatal("delete failed")
	}

	if got := plan.CityShopping["day_1_bangkok"].Subtotal; got != before.CityShopping-item.EstimatedPrice {
		t.Errorf("city subtotal = %d, want %d", got, before.CityShopping-item.EstimatedPrice)
	}
	if plan.BudgetSummary.Total != before.Total-item.EstimatedPrice {
		t.Errorf("total = %d, want %d", plan.BudgetSummary.Total, before.Total-item.EstimatedPrice)
	}
	if plan.BudgetSummary.Remaining != before.Remaining+item.EstimatedPrice {
		t.Errorf("remaining = %d, want %d", plan.BudgetSummary.Remaining, before.Remaining+item.EstimatedPrice)
	}
}

func TestApplyRatesIdempotent(t *testing.T) {
	plan := samplePlan()
	rates := currency.Rates{"THB": 40}

	ApplyRates(plan, 200000, rates)
	if got := findItem(t, plan, "mango").EstimatedPrice; got != 6000 {
		t.Fatalf("mango price = %d, want 150*40", got)
	}
	// item without a local price is untouched
	if got := findItem(t, plan, "toothpaste").EstimatedPrice; got != 2000 {
		t.Errorf("toothpaste price = %d, want 2000", got)
	}
	firstTotal := plan.BudgetSummary.Total

	ApplyRates(plan, 200000, rates)
	if plan.BudgetSummary.Total != firstTotal {
		t.Errorf("second apply changed total: %d -> %d", firstTotal, plan.BudgetSummary.Total)
	}
}

func findItem(t *testing.T, plan *models.ShoppingPlan, id string) models.ShoppingItem {
	t.Helper()
	for _, locID := range allLocationIDs(plan) {
		loc, _ := getLocation(plan, locID)
		for _, item := range loc.Items {
			if item.ID == id {
				return item
			}
		}
	}
	t.Fatalf("item %s not found", id)
	return models.ShoppingItem{}
}
