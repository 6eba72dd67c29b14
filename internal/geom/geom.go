// Package geom defines the three coordinate spaces the editor operates in
// and the pure conversions between them. Screen space is device pixels with
// the origin at the output surface's top-left. World space is the
// pan-independent canonical space all shape geometry is stored in; one world
// unit is one grid cell. Cell space is the integer grid index of a world
// position.
//
// Every conversion depends on exactly two values — the cell size in pixels
// and the pan offset — passed in explicitly. No conversion reads any other
// state.
package geom

import "math"

// ScreenPoint is a position in device pixels on the output surface.
type ScreenPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// CellPoint is an integer grid-cell index.
type CellPoint struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// WorldPoint is a position in the canonical, pan-independent world space.
type WorldPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns p shifted by (dx, dy).
func (p WorldPoint) Add(dx, dy float64) WorldPoint {
	return WorldPoint{X: p.X + dx, Y: p.Y + dy}
}

// Sub returns the component-wise difference p - q.
func (p WorldPoint) Sub(q WorldPoint) (dx, dy float64) {
	return p.X - q.X, p.Y - q.Y
}

// Distance returns the Euclidean distance between p and q.
func (p WorldPoint) Distance(q WorldPoint) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// IsFinite reports whether both coordinates are finite numbers.
func (p WorldPoint) IsFinite() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) &&
		!math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

// ScreenToWorld converts a screen position to world space.
func ScreenToWorld(s ScreenPoint, cellSizePx float64, pan WorldPoint) WorldPoint {
	return WorldPoint{
		X: s.X/cellSizePx + pan.X,
		Y: s.Y/cellSizePx + pan.Y,
	}
}

// WorldToScreen converts a world position to screen space.
func WorldToScreen(w WorldPoint, cellSizePx float64, pan WorldPoint) ScreenPoint {
	return ScreenPoint{
		X: (w.X - pan.X) * cellSizePx,
		Y: (w.Y - pan.Y) * cellSizePx,
	}
}

// WorldToCell returns the grid cell containing a world position.
func WorldToCell(w WorldPoint) CellPoint {
	return CellPoint{X: int(math.Floor(w.X)), Y: int(math.Floor(w.Y))}
}

// ScreenToCell returns the grid cell under a screen position.
func ScreenToCell(s ScreenPoint, cellSizePx float64, pan WorldPoint) CellPoint {
	return WorldToCell(ScreenToWorld(s, cellSizePx, pan))
}
