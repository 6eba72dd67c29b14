package shape

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridboard/gridboard/backend-go/internal/geom"
)

func TestGenerateRectangle(t *testing.T) {
	p := Params{Kind: KindRectangle, Center: geom.WorldPoint{X: 5, Y: 5}, Width: 4, Height: 2}

	want := []geom.WorldPoint{
		{X: 3, Y: 4}, // TL
		{X: 7, Y: 4}, // TR
		{X: 7, Y: 6}, // BR
		{X: 3, Y: 6}, // BL
	}
	assert.Equal(t, want, Generate(p))
}

func TestGenerateDiamond(t *testing.T) {
	p := Params{Kind: KindDiamond, Center: geom.WorldPoint{X: 0, Y: 0}, Width: 6, Height: 4}

	want := []geom.WorldPoint{
		{X: -3, Y: 0}, // W
		{X: 0, Y: -2}, // N
		{X: 3, Y: 0},  // E
		{X: 0, Y: 2},  // S
	}
	assert.Equal(t, want, Generate(p))
}

func TestGenerateCircle(t *testing.T) {
	p := Params{Kind: KindCircle, Center: geom.WorldPoint{X: 2, Y: 3}, Radius: 5}
	vertices := Generate(p)

	require.Len(t, vertices, CircleSegments)

	// Vertex 0 sits at angle 0, exactly center + (radius, 0).
	assert.Equal(t, geom.WorldPoint{X: 7, Y: 3}, vertices[0])

	// Every sample lies on the circumference.
	for i, v := range vertices {
		assert.InDelta(t, 5, p.Center.Distance(v), 1e-12, "vertex %d", i)
	}
}

func TestGenerateLineAndPoint(t *testing.T) {
	line := Params{Kind: KindLine, Start: geom.WorldPoint{X: 1, Y: 1}, End: geom.WorldPoint{X: 4, Y: 5}}
	assert.Equal(t, []geom.WorldPoint{{X: 1, Y: 1}, {X: 4, Y: 5}}, Generate(line))

	point := Params{Kind: KindPoint, Center: geom.WorldPoint{X: -2, Y: 9}}
	assert.Equal(t, []geom.WorldPoint{{X: -2, Y: 9}}, Generate(point))
}

func TestDeriveVertexEditCircleRadius(t *testing.T) {
	p := Params{Kind: KindCircle, Center: geom.WorldPoint{X: 0, Y: 0}, Radius: 10}

	// Dragging the angle-0 handle straight out doubles the radius and
	// leaves the center alone.
	out, err := DeriveVertexEdit(p, 0, geom.WorldPoint{X: 20, Y: 0})
	require.NoError(t, err)
	assert.Equal(t, geom.WorldPoint{X: 0, Y: 0}, out.Center)
	assert.Equal(t, 20.0, out.Radius)

	// Any handle works the same way, in any direction.
	p.Radius = 5
	out, err = DeriveVertexEdit(p, 3, geom.WorldPoint{X: 0, Y: -15})
	require.NoError(t, err)
	assert.Equal(t, geom.WorldPoint{X: 0, Y: 0}, out.Center)
	assert.Equal(t, 15.0, out.Radius)
}

func TestDeriveVertexEditRectangle(t *testing.T) {
	p := Params{Kind: KindRectangle, Center: geom.WorldPoint{X: 5, Y: 5}, Width: 4, Height: 2}

	// Dragging TL while BR (7,6) stays anchored.
	out, err := DeriveVertexEdit(p, 0, geom.WorldPoint{X: 1, Y: 2})
	require.NoError(t, err)
	assert.Equal(t, geom.WorldPoint{X: 4, Y: 4}, out.Center)
	assert.Equal(t, 6.0, out.Width)
	assert.Equal(t, 4.0, out.Height)

	// Crossing past the anchor flips the corner but keeps dimensions
	// positive.
	out, err = DeriveVertexEdit(p, 0, geom.WorldPoint{X: 9, Y: 8})
	require.NoError(t, err)
	assert.Equal(t, 2.0, out.Width)
	assert.Equal(t, 2.0, out.Height)
}

func TestDeriveVertexEditDiamondAxes(t *testing.T) {
	p := Params{Kind: KindDiamond, Center: geom.WorldPoint{X: 0, Y: 0}, Width: 6, Height: 4}

	// West handle: only the width axis responds; the east point (3,0)
	// anchors.
	out, err := DeriveVertexEdit(p, 0, geom.WorldPoint{X: -7, Y: 0})
	require.NoError(t, err)
	assert.Equal(t, 10.0, out.Width)
	assert.Equal(t, 4.0, out.Height)
	assert.Equal(t, geom.WorldPoint{X: -2, Y: 0}, out.Center)

	// North handle: only the height axis responds; the south point (0,2)
	// anchors.
	out, err = DeriveVertexEdit(p, 1, geom.WorldPoint{X: 0, Y: -6})
	require.NoError(t, err)
	assert.Equal(t, 6.0, out.Width)
	assert.Equal(t, 8.0, out.Height)
	assert.Equal(t, geom.WorldPoint{X: 0, Y: -2}, out.Center)
}

func TestDeriveVertexEditLinePoint(t *testing.T) {
	line := Params{Kind: KindLine, Start: geom.WorldPoint{X: 0, Y: 0}, End: geom.WorldPoint{X: 4, Y: 0}}

	out, err := DeriveVertexEdit(line, 1, geom.WorldPoint{X: 8, Y: 2})
	require.NoError(t, err)
	assert.Equal(t, geom.WorldPoint{X: 0, Y: 0}, out.Start)
	assert.Equal(t, geom.WorldPoint{X: 8, Y: 2}, out.End)

	point := Params{Kind: KindPoint, Center: geom.WorldPoint{X: 1, Y: 1}}
	out, err = DeriveVertexEdit(point, 0, geom.WorldPoint{X: -3, Y: 7})
	require.NoError(t, err)
	assert.Equal(t, geom.WorldPoint{X: -3, Y: 7}, out.Center)
}

func TestDeriveVertexEditRoundTripIsExact(t *testing.T) {
	// Re-committing any generated vertex of any shape must reproduce the
	// parameters bit for bit.
	params := []Params{
		{Kind: KindPoint, Center: geom.WorldPoint{X: 0.1, Y: -0.7}},
		{Kind: KindLine, Start: geom.WorldPoint{X: 1.3, Y: 2.7}, End: geom.WorldPoint{X: -4.9, Y: 0.003}},
		{Kind: KindCircle, Center: geom.WorldPoint{X: 3.14159, Y: -2.71828}, Radius: 7.77},
		{Kind: KindRectangle, Center: geom.WorldPoint{X: 5, Y: 5}, Width: 4, Height: 2},
		{Kind: KindDiamond, Center: geom.WorldPoint{X: -1.5, Y: 9.25}, Width: 0.625, Height: 11},
	}

	for _, p := range params {
		vertices := Generate(p)
		for i, v := range vertices {
			out, err := DeriveVertexEdit(p, i, v)
			require.NoError(t, err, "%s vertex %d", p.Kind, i)
			assert.Equal(t, p, out, "%s vertex %d", p.Kind, i)
		}
	}
}

func TestDeriveVertexEditDegenerate(t *testing.T) {
	circle := Params{Kind: KindCircle, Center: geom.WorldPoint{X: 2, Y: 2}, Radius: 5}
	_, err := DeriveVertexEdit(circle, 0, geom.WorldPoint{X: 2, Y: 2})
	assert.ErrorIs(t, err, ErrDegenerateEdit)

	rect := Params{Kind: KindRectangle, Center: geom.WorldPoint{X: 5, Y: 5}, Width: 4, Height: 2}
	// Dragging TL onto BR's column collapses the width.
	_, err = DeriveVertexEdit(rect, 0, geom.WorldPoint{X: 7, Y: 2})
	assert.ErrorIs(t, err, ErrDegenerateEdit)

	diamond := Params{Kind: KindDiamond, Center: geom.WorldPoint{}, Width: 6, Height: 4}
	_, err = DeriveVertexEdit(diamond, 0, geom.WorldPoint{X: 3, Y: 0})
	assert.ErrorIs(t, err, ErrDegenerateEdit)
}

func TestDeriveVertexEditRejectsNonFinite(t *testing.T) {
	p := Params{Kind: KindCircle, Center: geom.WorldPoint{}, Radius: 5}
	_, err := DeriveVertexEdit(p, 0, geom.WorldPoint{X: math.NaN(), Y: 0})
	assert.ErrorIs(t, err, ErrInvalidParams)
}

func TestDeriveVertexEditPanicsOnBadIndex(t *testing.T) {
	p := Params{Kind: KindLine, Start: geom.WorldPoint{}, End: geom.WorldPoint{X: 1, Y: 1}}
	assert.Panics(t, func() { DeriveVertexEdit(p, 2, geom.WorldPoint{}) })
	assert.Panics(t, func() { DeriveVertexEdit(p, -1, geom.WorldPoint{}) })
}

func TestValidate(t *testing.T) {
	valid := []Params{
		{Kind: KindPoint},
		{Kind: KindLine, Start: geom.WorldPoint{X: 1, Y: 1}, End: geom.WorldPoint{X: 1, Y: 1}},
		{Kind: KindCircle, Radius: 0.001},
		{Kind: KindRectangle, Width: 1, Height: 1},
		{Kind: KindDiamond, Width: 2, Height: 3},
	}
	for _, p := range valid {
		assert.NoError(t, p.Validate(), "%s", p.Kind)
	}

	invalid := []Params{
		{Kind: KindCircle, Radius: 0},
		{Kind: KindCircle, Radius: -1},
		{Kind: KindCircle, Radius: math.NaN()},
		{Kind: KindRectangle, Width: 0, Height: 1},
		{Kind: KindRectangle, Width: 1, Height: math.Inf(1)},
		{Kind: KindDiamond, Width: -2, Height: 3},
		{Kind: KindPoint, Center: geom.WorldPoint{X: math.NaN()}},
		{Kind: KindLine, End: geom.WorldPoint{Y: math.Inf(-1)}},
		{Kind: "triangle"},
		{},
	}
	for _, p := range invalid {
		assert.ErrorIs(t, p.Validate(), ErrInvalidParams, "%s", p.Kind)
	}
}

func TestTranslate(t *testing.T) {
	circle := Params{Kind: KindCircle, Center: geom.WorldPoint{X: 1, Y: 2}, Radius: 5}
	out := circle.Translate(3, -1)
	assert.Equal(t, geom.WorldPoint{X: 4, Y: 1}, out.Center)
	assert.Equal(t, 5.0, out.Radius)

	line := Params{Kind: KindLine, Start: geom.WorldPoint{X: 0, Y: 0}, End: geom.WorldPoint{X: 2, Y: 2}}
	out = line.Translate(1, 1)
	assert.Equal(t, geom.WorldPoint{X: 1, Y: 1}, out.Start)
	assert.Equal(t, geom.WorldPoint{X: 3, Y: 3}, out.End)

	// Translating there and back is exact.
	back := out.Translate(-1, -1)
	assert.Equal(t, line, back)
}

func TestFromDrag(t *testing.T) {
	anchor := geom.WorldPoint{X: 2, Y: 2}

	circle := FromDrag(KindCircle, anchor, geom.WorldPoint{X: 5, Y: 6})
	assert.Equal(t, anchor, circle.Center)
	assert.Equal(t, 5.0, circle.Radius)

	rect := FromDrag(KindRectangle, anchor, geom.WorldPoint{X: 6, Y: 0})
	assert.Equal(t, geom.WorldPoint{X: 4, Y: 1}, rect.Center)
	assert.Equal(t, 4.0, rect.Width)
	assert.Equal(t, 2.0, rect.Height)

	line := FromDrag(KindLine, anchor, geom.WorldPoint{X: 0, Y: 0})
	assert.Equal(t, anchor, line.Start)
	assert.Equal(t, geom.WorldPoint{X: 0, Y: 0}, line.End)

	point := FromDrag(KindPoint, anchor, geom.WorldPoint{X: 9, Y: 9})
	assert.Equal(t, geom.WorldPoint{X: 9, Y: 9}, point.Center)

	// A no-motion drag yields degenerate parameters that fail validation.
	assert.Error(t, FromDrag(KindCircle, anchor, anchor).Validate())
	assert.Error(t, FromDrag(KindRectangle, anchor, anchor).Validate())
}
