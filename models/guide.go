package models

// GuideItem is a curated must-buy item for a city, sourced offline.
type GuideItem struct {
	Name           string `json:"name"`
	Description    string `json:"description"`
	Shop           string `json:"shop"`
	EstimatedPrice int    `json:"estimatedPrice"`
	LocalPrice     int    `json:"localPrice"`
	Currency       string `json:"currency"`
	Category       string `json:"category"`
}

// GuideRecommendation is the static reference entry for one city. SearchTerms
// carries alias spellings used for lookup.
type GuideRecommendation struct {
	City        string      `json:"city"`
	Country     string      `json:"country"`
	SearchTerms []string    `json:"searchTerms"`
	Items       []GuideItem `json:"items"`
}
