package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBandFor(t *testing.T) {
	tests := []struct {
		sat   float64
		band  Band
		class string
	}{
		{0, BandNone, "bg-gray-200"},
		{0.099, BandNone, "bg-gray-200"},
		{0.1, BandLow, "bg-green-300"},
		{0.19, BandLow, "bg-green-300"},
		{0.2, BandBuilding, "bg-green-400"},
		{0.45, BandModerate, "bg-green-500"},
		{0.79, BandHigh, "bg-green-600"},
		{0.8, BandSaturated, "bg-green-700"},
		{1, BandSaturated, "bg-green-700"},
	}

	for _, tt := range tests {
		band := BandFor(tt.sat)
		assert.Equal(t, tt.band, band, "sat=%v", tt.sat)
		assert.Equal(t, tt.class, band.ColorClass(), "sat=%v", tt.sat)
	}
}

func TestBand_ColorClassOutOfRange(t *testing.T) {
	assert.Equal(t, "bg-gray-200", Band(-1).ColorClass())
	assert.Equal(t, "bg-gray-200", Band(42).ColorClass())
}

func TestShadeFor(t *testing.T) {
	assert.Equal(t, 0, ShadeFor(0.05))
	assert.Equal(t, 300, ShadeFor(0.1))
	assert.Equal(t, 500, ShadeFor(0.5))
	assert.Equal(t, 700, ShadeFor(1))
	assert.Equal(t, 700, ShadeFor(3))

	assert.Equal(t, "bg-gray-200", ShadeClass(0))
	assert.Equal(t, "bg-green-600", ShadeClass(0.7))
}

func TestPercent(t *testing.T) {
	assert.Equal(t, 19, Percent(0.19))
	assert.Equal(t, 19, Percent(0.1862))
	assert.Equal(t, 100, Percent(1))
}

func TestBandIncreasesWithCompliance(t *testing.T) {
	m := DefaultModel
	s := 0.0
	prev := BandFor(s)
	for i := 0; i < 40; i++ {
		s = m.Step(s, true)
		b := BandFor(s)
		assert.GreaterOrEqual(t, b, prev)
		prev = b
	}
	assert.Equal(t, BandSaturated, prev)
}
