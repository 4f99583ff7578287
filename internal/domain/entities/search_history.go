package entities

import (
	"strings"
	"time"
)

// Cost scenario names produced per calculation.
const (
	ScenarioAmbitious    = "Ambitious"
	ScenarioAverage      = "Average"
	ScenarioConservative = "Conservative"
)

// DemoIDPrefix marks seeded demo records so they can be told apart from
// genuine user submissions.
const DemoIDPrefix = "demo-"

// CostPoint is one named estimate scenario with its cost.
type CostPoint struct {
	Name string  `json:"name"`
	Cost float64 `json:"cost"`
}

// LocationDetails describes the reference location drawn for an estimate.
type LocationDetails struct {
	Name             string `json:"name"`
	Country          string `json:"country"`
	RockType         string `json:"rockType"`
	ConfidenceRating int    `json:"confidenceRating"` // 1-10
}

// Terrain describes the terrain record drawn for an estimate.
type Terrain struct {
	Type      string `json:"type"`
	Elevation string `json:"elevation"`
}

// CostBreakdown splits the average cost into labor and hardware.
type CostBreakdown struct {
	Labor    float64 `json:"labor"`
	Hardware float64 `json:"hardware"`
}

// BudgetAnalysis holds the figures derived from a user budget.
type BudgetAnalysis struct {
	MaxMeters int `json:"maxMeters"`
	MaxHoles  int `json:"maxHoles"`
}

// SearchHistoryItem is one user-submitted exploration query and its derived
// estimate. The derived fields are computed once at submission and stay
// immutable until the item is reloaded and recalculated.
type SearchHistoryItem struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Latitude  string    `json:"latitude"`
	Longitude string    `json:"longitude"`
	Depth     string    `json:"depth"`
	Budget    string    `json:"budget,omitempty"`
	Timestamp time.Time `json:"timestamp"`

	SelectedMinerals []MineralType `json:"selectedMinerals"`

	LocationDetails   LocationDetails `json:"locationDetails"`
	CostData          []CostPoint     `json:"costData"`
	CostPerMeterData  []CostPoint     `json:"costPerMeterData"`
	CostRange         string          `json:"costRange"`
	CostPerMeterRange string          `json:"costPerMeterRange"`
	CostBreakdown     CostBreakdown   `json:"costBreakdown"`
	DrillingMethod    string          `json:"drillingMethod"`
	Terrain           Terrain         `json:"terrain"`
	TimeEstimation    string          `json:"timeEstimation"`
	BudgetAnalysis    *BudgetAnalysis `json:"budgetAnalysis,omitempty"`
}

// IsDemo reports whether the item was seeded rather than user-submitted.
func (i *SearchHistoryItem) IsDemo() bool {
	return strings.HasPrefix(i.ID, DemoIDPrefix)
}

// Matches reports whether the item matches a case-insensitive search term
// against its name, location name, or country.
func (i *SearchHistoryItem) Matches(term string) bool {
	if term == "" {
		return true
	}
	needle := strings.ToLower(term)
	return strings.Contains(strings.ToLower(i.Name), needle) ||
		strings.Contains(strings.ToLower(i.LocationDetails.Name), needle) ||
		strings.Contains(strings.ToLower(i.LocationDetails.Country), needle)
}
