package planner

import "tripcart/models"

func locationSubtotal(loc *models.ShoppingLocation) int {
	sum := 0
	for _, item := range loc.Items {
		sum += item.EstimatedPrice
	}
	loc.Subtotal = sum
	return sum
}

// RecomputeTotals rebuilds every subtotal and the budget summary from item
// prices. Idempotent; safe to run after any mutation.
func RecomputeTotals(plan *models.ShoppingPlan, budget int) {
	dutyFreeTotal := locationSubtotal(&plan.DutyFree.Departure)
	dutyFreeTotal += locationSubtotal(&plan.DutyFree.Arrival)

	cityTotal := 0
	for key, loc := range plan.CityShopping {
		cityTotal += locationSubtotal(&loc)
		plan.CityShopping[key] = loc
	}

	plan.BudgetSummary = models.BudgetSummary{
		DutyFree:     dutyFreeTotal,
		CityShopping: cityTotal,
		Total:        dutyFreeTotal + cityTotal,
		Remaining:    budget - (dutyFreeTotal + cityTotal),
	}
}
