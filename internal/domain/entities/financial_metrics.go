package entities

import "time"

// SliderValueKind distinguishes a single-position slider from a range slider.
type SliderValueKind string

const (
	SliderValueSingle SliderValueKind = "single"
	SliderValueRange  SliderValueKind = "range"
)

// SliderValue is a tagged variant: either a single position or a low/high
// pair. Consumers switch on Kind so every shape is handled explicitly.
type SliderValue struct {
	Kind  SliderValueKind `json:"kind"`
	Value float64         `json:"value,omitempty"`
	Low   float64         `json:"low,omitempty"`
	High  float64         `json:"high,omitempty"`
}

// SingleValue builds a single-position slider value.
func SingleValue(v float64) SliderValue {
	return SliderValue{Kind: SliderValueSingle, Value: v}
}

// RangeValue builds a low/high slider value.
func RangeValue(low, high float64) SliderValue {
	return SliderValue{Kind: SliderValueRange, Low: low, High: high}
}

// Effective returns the position used in calculations: the value itself for a
// single slider, the midpoint for a range.
func (v SliderValue) Effective() float64 {
	if v.Kind == SliderValueRange {
		return (v.Low + v.High) / 2
	}
	return v.Value
}

// SliderPosition is one named slider with its current value.
type SliderPosition struct {
	ID    string      `json:"id"`
	Value SliderValue `json:"value"`
}

// SliderConfig describes one project-input slider.
type SliderConfig struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Step    float64 `json:"step"`
	Default float64 `json:"default"`
	Unit    string  `json:"unit"`
}

// Slider identifiers used by the project details calculator.
const (
	SliderDepositSize    = "deposit-size"
	SliderMineralQuality = "mineral-quality"
	SliderCapex          = "capex-investment"
	SliderProjectTime    = "time-of-project"
)

// DefaultSliders returns the project-input sliders with their initial values.
func DefaultSliders() []SliderConfig {
	return []SliderConfig{
		{ID: SliderDepositSize, Name: "Deposit Size", Min: 0, Max: 1000, Step: 10, Default: 500, Unit: "tonnes"},
		{ID: SliderMineralQuality, Name: "Mineral Quality", Min: 0, Max: 100, Step: 1, Default: 70, Unit: "%"},
		{ID: SliderCapex, Name: "CAPEX Investment", Min: 0, Max: 100, Step: 1, Default: 50, Unit: "M$"},
		{ID: SliderProjectTime, Name: "Time of Project", Min: 1, Max: 10, Step: 1, Default: 5, Unit: "years"},
	}
}

// YearValue is one point of a yearly cash-flow series.
type YearValue struct {
	Year  int     `json:"year"`
	Value float64 `json:"value"`
}

// FinancialMetrics is the per-project side record produced by the NPV slider
// calculator. When present it overrides the project's displayed NPV.
type FinancialMetrics struct {
	ProjectID     string           `json:"projectId"`
	NPV           float64          `json:"npv"`
	IRR           float64          `json:"irr"`
	PaybackPeriod float64          `json:"paybackPeriod"`
	Sliders       []SliderPosition `json:"sliders"`
	NPVData       []YearValue      `json:"npvData"`
	PaybackData   []YearValue      `json:"paybackData"`
	UpdatedAt     time.Time        `json:"updatedAt"`
}
