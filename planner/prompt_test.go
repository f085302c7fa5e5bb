package planner

import (
	"strings"
	"testing"

	"tripcart/models"
)

func TestBuildPromptEmbedsTripDetails(t *testing.T) {
	info := models.TravelInfo{
		Destination: "방콕",
		StartDate:   "2026-09-01",
		EndDate:     "2026-09-05",
		Budget:      500000,
		Preferences: []string{"뷰티", "간식"},
		Purposes:    []string{"기념품"},
		Companions:  []string{"엄마"},
		Schedule: []models.ScheduleEntry{
			{Day: 1, Date: "2026-09-01", Location: "방콕"},
			{Day: 2, Date: "2026-09-02", Location: "파타야"},
		},
	}

	prompt := BuildPrompt(info, "**LOCAL GUIDE RECOMMENDATIONS for 방콕**:\n- 야돔")

	for _, want := range []string{
		"trip to 방콕",
		"2026-09-01 to 2026-09-05",
		"Budget: 500000 KRW",
		"Companions: 엄마",
		"뷰티, 간식",
		"Day 1 (2026-09-01): 방콕",
		"Day 2 (2026-09-02): 파타야",
		"LOCAL GUIDE RECOMMENDATIONS for 방콕",
		"30:70 Rule",
		"MUST NOT exceed 500000 KRW",
		`"day_1_bangkok"`,
		"JSON RESPONSE FORMAT",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}

	// fmt verbs must all be consumed
	if strings.Contains(prompt, "%!") || strings.Contains(prompt, "(MISSING)") {
		t.Error("prompt contains unconsumed format verbs")
	}
}

func TestBuildPromptDefaults(t *testing.T) {
	prompt := BuildPrompt(models.TravelInfo{Destination: "도쿄", Budget: 100000}, "")

	if !strings.Contains(prompt, "Companions: None") {
		t.Error("empty companions should render as None")
	}
	if !strings.Contains(prompt, "Not specified") {
		t.Error("empty schedule should render as Not specified")
	}
}
