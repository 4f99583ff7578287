package entities

// EstimateResult is the fully-populated record produced by one estimation
// run. Its fields become the derived portion of a SearchHistoryItem.
type EstimateResult struct {
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
