package planner

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"tripcart/models"
)

// ErrMalformedResponse marks a generation response that survived transport
// but could not be parsed as a plan. The caller can suggest "try again"
// instead of implying a user input mistake.
var ErrMalformedResponse = errors.New("malformed AI response")

var (
	codeFenceRe     = regexp.MustCompile("```json\n?|\n?```")
	trailingCommaRe = regexp.MustCompile(`,\s*([\]}])`)
)

// ExtractJSON strips the formatting artifacts generators commonly add around
// a JSON body: code fences, leading/trailing prose, trailing commas.
func ExtractJSON(raw string) string {
	s := strings.TrimSpace(codeFenceRe.ReplaceAllString(raw, ""))

	first := strings.Index(s, "{")
	last := strings.LastIndex(s, "}")
	if first != -1 && last != -1 && last > first {
		s = s[first : last+1]
	}

	return trailingCommaRe.ReplaceAllString(s, "$1")
}

// Normalize parses the raw generator output into a plan and recomputes every
// derived total from the item-level prices. The generator's own arithmetic
// is never propagated.
func Normalize(raw string, budget int) (*models.ShoppingPlan, error) {
	jsonStr := ExtractJSON(raw)

	var plan models.ShoppingPlan
	if err := json.Unmarshal([]byte(jsonStr), &plan); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if plan.CityShopping == nil {
		plan.CityShopping = make(map[string]models.ShoppingLocation)
	}

	RecomputeTotals(&plan, budget)
	return &plan, nil
}
