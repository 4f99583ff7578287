package entities

import "strings"

// MineralType is one of the fixed mineral tags used to label exploration targets.
type MineralType string

const (
	MineralCopper    MineralType = "Copper"
	MineralGold      MineralType = "Gold"
	MineralSilver    MineralType = "Silver"
	MineralCobalt    MineralType = "Cobalt"
	MineralManganese MineralType = "Manganese"
	MineralIron      MineralType = "Iron"
)

// AllMinerals lists every supported mineral tag in display order.
var AllMinerals = []MineralType{
	MineralCopper,
	MineralGold,
	MineralSilver,
	MineralCobalt,
	MineralManganese,
	MineralIron,
}

// ParseMineral resolves a mineral tag case-insensitively. The stored value is
// always the canonical capitalized name.
func ParseMineral(value string) (MineralType, bool) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	for _, mineral := range AllMinerals {
		if strings.ToLower(string(mineral)) == normalized {
			return mineral, true
		}
	}
	return "", false
}

// MineralQuote is a reference unit price for a mineral.
type MineralQuote struct {
	Mineral MineralType `json:"mineral"`
	Price   float64     `json:"price"`
	Unit    string      `json:"unit"`
}

// BaselineQuotes holds the reference price band each mineral reverts to.
var BaselineQuotes = map[MineralType]MineralQuote{
	MineralCopper:    {Mineral: MineralCopper, Price: 8750, Unit: "$/tonne"},
	MineralGold:      {Mineral: MineralGold, Price: 2045.30, Unit: "$/oz"},
	MineralSilver:    {Mineral: MineralSilver, Price: 24.85, Unit: "$/oz"},
	MineralCobalt:    {Mineral: MineralCobalt, Price: 33500, Unit: "$/tonne"},
	MineralManganese: {Mineral: MineralManganese, Price: 1750, Unit: "$/tonne"},
	MineralIron:      {Mineral: MineralIron, Price: 118, Unit: "$/tonne"},
}
