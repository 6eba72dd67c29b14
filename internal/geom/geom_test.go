package geom

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScreenToWorldAppliesPan(t *testing.T) {
	// A 3-cell horizontal pan moves the world point under the surface
	// origin to x=3.
	pan := WorldPoint{X: 3, Y: 0}
	w := ScreenToWorld(ScreenPoint{X: 0, Y: 0}, 20, pan)
	assert.Equal(t, WorldPoint{X: 3, Y: 0}, w)

	// The shape that was at the origin now renders 60px to the left.
	s := WorldToScreen(WorldPoint{X: 0, Y: 0}, 20, pan)
	assert.Equal(t, ScreenPoint{X: -60, Y: 0}, s)
}

func TestScreenWorldRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 1000; i++ {
		cellSize := 0.1 + rng.Float64()*500
		pan := WorldPoint{X: rng.Float64()*2000 - 1000, Y: rng.Float64()*2000 - 1000}
		s := ScreenPoint{X: rng.Float64()*4000 - 2000, Y: rng.Float64()*4000 - 2000}

		back := WorldToScreen(ScreenToWorld(s, cellSize, pan), cellSize, pan)
		assert.InDelta(t, s.X, back.X, 1e-9)
		assert.InDelta(t, s.Y, back.Y, 1e-9)

		w := WorldPoint{X: rng.Float64()*2000 - 1000, Y: rng.Float64()*2000 - 1000}
		backW := ScreenToWorld(WorldToScreen(w, cellSize, pan), cellSize, pan)
		assert.InDelta(t, w.X, backW.X, 1e-9)
		assert.InDelta(t, w.Y, backW.Y, 1e-9)
	}
}

func TestWorldToCellFloors(t *testing.T) {
	assert.Equal(t, CellPoint{X: 2, Y: 3}, WorldToCell(WorldPoint{X: 2.9, Y: 3.1}))
	assert.Equal(t, CellPoint{X: -3, Y: -1}, WorldToCell(WorldPoint{X: -2.1, Y: -0.5}))
	assert.Equal(t, CellPoint{X: 5, Y: -4}, WorldToCell(WorldPoint{X: 5, Y: -4}))
}

func TestScreenToCell(t *testing.T) {
	// 45px into 20px cells with no pan lands in cell 2.
	c := ScreenToCell(ScreenPoint{X: 45, Y: 45}, 20, WorldPoint{})
	assert.Equal(t, CellPoint{X: 2, Y: 2}, c)

	// Panning shifts which cell sits under the same pixel.
	c = ScreenToCell(ScreenPoint{X: 45, Y: 45}, 20, WorldPoint{X: 3, Y: 0})
	assert.Equal(t, CellPoint{X: 5, Y: 2}, c)
}

func TestWorldPointHelpers(t *testing.T) {
	p := WorldPoint{X: 1, Y: 2}
	assert.Equal(t, WorldPoint{X: 4, Y: 0}, p.Add(3, -2))

	dx, dy := WorldPoint{X: 5, Y: 5}.Sub(p)
	assert.Equal(t, 4.0, dx)
	assert.Equal(t, 3.0, dy)

	assert.Equal(t, 5.0, WorldPoint{X: 0, Y: 0}.Distance(WorldPoint{X: 3, Y: 4}))

	assert.True(t, p.IsFinite())
	assert.False(t, WorldPoint{X: math.NaN(), Y: 0}.IsFinite())
	assert.False(t, WorldPoint{X: 0, Y: math.Inf(1)}.IsFinite())
}
