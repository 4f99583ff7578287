package entities

import (
	"crypto/rand"
	"encoding/hex"
	"time"
)

// TimePeriod selects the span of a simulated price history series.
type TimePeriod string

const (
	Period1D TimePeriod = "1D"
	Period5D TimePeriod = "5D"
	Period1M TimePeriod = "1M"
	Period1Y TimePeriod = "1Y"
	Period5Y TimePeriod = "5Y"
)

// ParsePeriod resolves a time period string, defaulting to one year.
func ParsePeriod(value string) TimePeriod {
	switch TimePeriod(value) {
	case Period1D, Period5D, Period1M, Period1Y, Period5Y:
		return TimePeriod(value)
	default:
		return Period1Y
	}
}

// PricePoint is one point of a price history series.
type PricePoint struct {
	Date      string  `json:"date"`
	Price     float64 `json:"price"`
	Timestamp int64   `json:"timestamp"`
}

// MarketEvent is a simulated live price update for one mineral.
type MarketEvent struct {
	ID        string      `json:"id"`
	Mineral   MineralType `json:"mineral"`
	Price     float64     `json:"price"`
	Unit      string      `json:"unit"`
	Timestamp time.Time   `json:"timestamp"`
}

// NewMarketEvent creates a price update event for a mineral.
func NewMarketEvent(mineral MineralType, price float64, unit string) *MarketEvent {
	return &MarketEvent{
		ID:        generateEventID(),
		Mineral:   mineral,
		Price:     price,
		Unit:      unit,
		Timestamp: time.Now(),
	}
}

// generateEventID generates a unique event ID
func generateEventID() string {
	return time.Now().Format("20060102150405") + "-" + randomString(8)
}

// randomString generates a random string of specified length
func randomString(length int) string {
	bytes := make([]byte, length/2+1)
	if _, err := rand.Read(bytes); err != nil {
		// Fallback to timestamp-based if crypto/rand fails
		return time.Now().Format("150405.000")
	}
	return hex.EncodeToString(bytes)[:length]
}
