package document

import (
	"time"

	"github.com/gridboard/gridboard/backend-go/internal/geom"
	"github.com/gridboard/gridboard/backend-go/internal/shape"
	"github.com/gridboard/gridboard/backend-go/internal/typeid"
	"github.com/gridboard/gridboard/backend-go/internal/viewport"
)

func panPoint(n Nav) geom.WorldPoint {
	return geom.WorldPoint{X: n.PanX, Y: n.PanY}
}

// NewSampleDocument builds the playground board: a handful of shapes near
// the origin so a first visitor sees something on screen.
func NewSampleDocument(boardID string) *BoardDocument {
	now := time.Now().UTC()

	stroke := shape.Style{StrokeColor: "#4fc3f7", StrokeWidth: 2, StrokeAlpha: 1}
	filled := shape.Style{
		StrokeColor: "#ffb74d", StrokeWidth: 2, StrokeAlpha: 1,
		FillColor: "#ffb74d", FillAlpha: 0.25,
	}

	return &BoardDocument{
		Board: Board{ID: boardID, Name: "Playground", Version: 1},
		Nav:   Nav{CellSizePx: viewport.DefaultCellSizePx},
		Shapes: []Shape{
			{
				ID: typeid.NewShapeID(),
				Params: shape.Params{
					Kind:   shape.KindRectangle,
					Center: geom.WorldPoint{X: 8, Y: 6},
					Width:  6, Height: 4,
				},
				Style: filled, Visible: true, CreatedAt: now,
			},
			{
				ID: typeid.NewShapeID(),
				Params: shape.Params{
					Kind:   shape.KindCircle,
					Center: geom.WorldPoint{X: 18, Y: 7},
					Radius: 3,
				},
				Style: stroke, Visible: true, CreatedAt: now,
			},
			{
				ID: typeid.NewShapeID(),
				Params: shape.Params{
					Kind:   shape.KindDiamond,
					Center: geom.WorldPoint{X: 13, Y: 14},
					Width:  5, Height: 3,
				},
				Style: stroke, Visible: true, CreatedAt: now,
			},
			{
				ID: typeid.NewShapeID(),
				Params: shape.Params{
					Kind:  shape.KindLine,
					Start: geom.WorldPoint{X: 4, Y: 12},
					End:   geom.WorldPoint{X: 10, Y: 16},
				},
				Style: stroke, Visible: true, CreatedAt: now,
			},
		},
	}
}
