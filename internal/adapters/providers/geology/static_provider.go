package geology

import (
	"github.com/geognosis/orecast/internal/domain/entities"
	"github.com/geognosis/orecast/internal/domain/providers"
)

// StaticProvider serves the fixed reference lists the estimator draws from.
// The lists stand in for ingested NI 43-101 reports and terrain analysis;
// draws are uniform using the caller's random source.
type StaticProvider struct {
	locations []entities.LocationDetails
	methods   []string
	terrains  []entities.Terrain
}

// NewStaticProvider creates a provider over the built-in reference lists.
func NewStaticProvider() providers.GeologyProvider {
	return &StaticProvider{
		locations: referenceLocations,
		methods:   referenceMethods,
		terrains:  referenceTerrains,
	}
}

// DrawLocation draws one candidate location record
func (p *StaticProvider) DrawLocation(rng providers.RandomSource) entities.LocationDetails {
	return p.locations[rng.Intn(len(p.locations))]
}

// DrawDrillingMethod draws one drilling method
func (p *StaticProvider) DrawDrillingMethod(rng providers.RandomSource) string {
	return p.methods[rng.Intn(len(p.methods))]
}

// DrawTerrain draws one terrain record
func (p *StaticProvider) DrawTerrain(rng providers.RandomSource) entities.Terrain {
	return p.terrains[rng.Intn(len(p.terrains))]
}

var referenceLocations = []entities.LocationDetails{
	{Name: "Red Lake District", Country: "Canada", RockType: "Granite/Metamorphic", ConfidenceRating: 9},
	{Name: "Pilbara Craton", Country: "Australia", RockType: "Banded Iron Formation", ConfidenceRating: 8},
	{Name: "Carlin Trend", Country: "United States", RockType: "Sedimentary Carbonate", ConfidenceRating: 8},
	{Name: "Atacama Belt", Country: "Chile", RockType: "Porphyry/Volcanic", ConfidenceRating: 7},
	{Name: "Witwatersrand Basin", Country: "South Africa", RockType: "Quartzite Conglomerate", ConfidenceRating: 9},
	{Name: "Norrbotten Province", Country: "Sweden", RockType: "Magnetite/Apatite", ConfidenceRating: 6},
	{Name: "Copperbelt Province", Country: "Zambia", RockType: "Sedimentary Shale", ConfidenceRating: 7},
	{Name: "Yukon Plateau", Country: "Canada", RockType: "Schist/Gneiss", ConfidenceRating: 5},
}

var referenceMethods = []string{
	"Diamond Core Drilling",
	"Reverse Circulation",
	"Rotary Air Blast",
	"Sonic Drilling",
}

var referenceTerrains = []entities.Terrain{
	{Type: "Mountainous", Elevation: "1,800-2,400m"},
	{Type: "Rolling Hills", Elevation: "400-900m"},
	{Type: "Flat Plains", Elevation: "100-300m"},
	{Type: "High Desert", Elevation: "900-1,500m"},
	{Type: "Boreal Forest", Elevation: "300-700m"},
}
