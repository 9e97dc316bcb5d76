package domain

import (
	"fmt"
	"math"
)

// Band is a discrete saturation level, 0 (none) to 5 (saturated).
type Band int

const (
	BandNone Band = iota
	BandLow
	BandBuilding
	BandModerate
	BandHigh
	BandSaturated
)

var bandUpperBounds = [...]float64{0.1, 0.2, 0.4, 0.6, 0.8}

var bandClasses = [...]string{
	"bg-gray-200",
	"bg-green-300",
	"bg-green-400",
	"bg-green-500",
	"bg-green-600",
	"bg-green-700",
}

const FutureClass = "bg-gray-100"

func BandFor(sat float64) Band {
	for i, upper := range bandUpperBounds {
		if sat < upper {
			return Band(i)
		}
	}
	return BandSaturated
}

func (b Band) ColorClass() string {
	if b < BandNone || b > BandSaturated {
		return bandClasses[BandNone]
	}
	return bandClasses[b]
}

// ShadeFor maps saturation onto a continuous 300-700 shade scale.
// Values below the first band threshold have no shade (0).
func ShadeFor(sat float64) int {
	if sat < bandUpperBounds[0] {
		return 0
	}
	clamped := math.Max(0, math.Min(sat, 1))
	return int(math.Round((300+400*clamped)/100)) * 100
}

func ShadeClass(sat float64) string {
	shade := ShadeFor(sat)
	if shade == 0 {
		return bandClasses[BandNone]
	}
	return fmt.Sprintf("bg-green-%d", shade)
}

// Percent rounds a saturation to a whole percentage.
func Percent(sat float64) int {
	return int(math.Round(sat * 100))
}
