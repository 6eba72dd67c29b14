package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridboard/gridboard/backend-go/internal/document"
	"github.com/gridboard/gridboard/backend-go/internal/geom"
	"github.com/gridboard/gridboard/backend-go/internal/shape"
)

func TestRenderSVG(t *testing.T) {
	doc := &document.BoardDocument{
		Board: document.Board{ID: "board_test", Name: "Test"},
		Nav:   document.Nav{CellSizePx: 20},
		Shapes: []document.Shape{
			{
				ID:      "shape_rect",
				Params:  shape.Params{Kind: shape.KindRectangle, Center: geom.WorldPoint{X: 5, Y: 5}, Width: 4, Height: 2},
				Style:   shape.Style{StrokeColor: "#ff0000", StrokeWidth: 2, StrokeAlpha: 1},
				Visible: true,
			},
			{
				ID:      "shape_circle",
				Params:  shape.Params{Kind: shape.KindCircle, Center: geom.WorldPoint{X: 10, Y: 10}, Radius: 3},
				Style:   shape.Style{StrokeColor: "#00ff00", StrokeWidth: 1, StrokeAlpha: 1, FillColor: "#00ff00", FillAlpha: 0.5},
				Visible: true,
			},
			{
				ID:      "shape_hidden",
				Params:  shape.Params{Kind: shape.KindLine, Start: geom.WorldPoint{}, End: geom.WorldPoint{X: 1, Y: 1}},
				Style:   shape.Style{StrokeColor: "#0000ff", StrokeWidth: 1, StrokeAlpha: 1},
				Visible: false,
			},
		},
	}

	svg, err := RenderSVG(doc)
	require.NoError(t, err)
	out := string(svg)

	assert.Contains(t, out, "<svg xmlns=")
	assert.Contains(t, out, "<polygon points=")
	assert.Contains(t, out, `<circle cx="10" cy="10" r="3"`)
	assert.Contains(t, out, `fill-opacity="0.5"`)
	assert.NotContains(t, out, "#0000ff", "hidden shapes do not render")
}

func TestRenderSVGEmptyBoard(t *testing.T) {
	doc := &document.BoardDocument{Nav: document.Nav{CellSizePx: 20}}

	svg, err := RenderSVG(doc)
	require.NoError(t, err)
	assert.Contains(t, string(svg), "<svg")
	assert.Contains(t, string(svg), "</svg>")
}
