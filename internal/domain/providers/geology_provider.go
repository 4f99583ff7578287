package providers

import (
	"github.com/geognosis/orecast/internal/domain/entities"
)

// GeologyProvider supplies the reference records an estimate draws from.
// Draws are uniform over fixed reference lists.
type GeologyProvider interface {
	// DrawLocation draws one candidate location record.
	DrawLocation(rng RandomSource) entities.LocationDetails

	// DrawDrillingMethod draws one drilling method.
	DrawDrillingMethod(rng RandomSource) string

	// DrawTerrain draws one terrain record.
	DrawTerrain(rng RandomSource) entities.Terrain
}

// RandomSource is the injectable random source behind every randomized
// calculation. Tests fix the seed and assert exact outputs.
type RandomSource interface {
	// Float64 returns a pseudo-random number in [0.0, 1.0).
	Float64() float64

	// Intn returns a pseudo-random number in [0, n).
	Intn(n int) int
}
