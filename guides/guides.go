package guides

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"tripcart/models"
)

// Store holds the static guide reference data, loaded once at startup and
// never mutated.
type Store struct {
	recommendations []models.GuideRecommendation
}

type guideFile struct {
	Recommendations []models.GuideRecommendation `json:"recommendations"`
}

// Load reads the guide data asset produced offline from the curator
// spreadsheet.
func Load(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading guide data %s: %w", path, err)
	}
	var f guideFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing guide data %s: %w", path, err)
	}
	return &Store{recommendations: f.Recommendations}, nil
}

// NewStore wraps already-decoded recommendations, mainly for tests.
func NewStore(recs []models.GuideRecommendation) *Store {
	return &Store{recommendations: recs}
}

// Match finds the guide entry for a city label. The label matches an entry
// when it contains one of the entry's search terms, or when the entry's city
// or country name contains the label; comparisons are case-insensitive.
// More than one entry can match an ambiguous label; the first entry in list
// order wins.
func (s *Store) Match(city string) (models.GuideRecommendation, bool) {
	needle := strings.ToLower(strings.TrimSpace(city))
	if needle == "" {
		return models.GuideRecommendation{}, false
	}
	for _, rec := range s.recommendations {
		for _, term := range rec.SearchTerms {
			if strings.Contains(needle, strings.ToLower(term)) {
				return rec, true
			}
		}
		if strings.Contains(strings.ToLower(rec.City), needle) {
			return rec, true
		}
		if strings.Contains(strings.ToLower(rec.Country), needle) {
			return rec, true
		}
	}
	return models.GuideRecommendation{}, false
}

// Excerpt builds the guide block embedded in the generation prompt: one
// section per distinct city found in the destination and schedule. Cities
// with no guide entry contribute nothing.
func (s *Store) Excerpt(info models.TravelInfo) string {
	seen := make(map[string]bool)
	var cities []string
	add := func(c string) {
		c = strings.TrimSpace(c)
		if c != "" && !seen[c] {
			seen[c] = true
			cities = append(cities, c)
		}
	}
	add(info.Destination)
	for _, entry := range info.Schedule {
		add(entry.Location)
	}

	var sections []string
	matched := make(map[string]bool)
	for _, city := range cities {
		rec, ok := s.Match(city)
		if !ok || matched[rec.City] {
			continue
		}
		matched[rec.City] = true

		items, err := json.MarshalIndent(rec.Items, "", "  ")
		if err != nil {
			continue
		}
		sections = append(sections, fmt.Sprintf(
			"**LOCAL GUIDE RECOMMENDATIONS for %s**:\nThe following items are highly recommended by local experts. Please consider including them:\n%s",
			rec.City, string(items)))
	}
	return strings.Join(sections, "\n\n")
}
