// Package viewport owns the editor's navigation state — the grid cell size
// in pixels and the world-space pan offset — and derives the sampling
// window, the world rectangle currently visible on the output surface.
// These two scalars are the only inputs any coordinate conversion depends
// on.
package viewport

import (
	"fmt"
	"math"

	"github.com/gridboard/gridboard/backend-go/internal/geom"
	"github.com/gridboard/gridboard/backend-go/internal/shape"
)

// DefaultCellSizePx is the grid cell size a fresh viewport starts with.
const DefaultCellSizePx = 20

// Viewport holds navigation state plus the output-surface size in pixels.
type Viewport struct {
	cellSizePx float64
	pan        geom.WorldPoint
	surfaceW   float64
	surfaceH   float64
}

// New creates a viewport at the world origin with the default cell size.
func New() *Viewport {
	return &Viewport{cellSizePx: DefaultCellSizePx}
}

// CellSizePx returns the current cell size in device pixels.
func (v *Viewport) CellSizePx() float64 { return v.cellSizePx }

// PanOffset returns the current pan offset in world units.
func (v *Viewport) PanOffset() geom.WorldPoint { return v.pan }

// SurfaceSize returns the output-surface size in pixels.
func (v *Viewport) SurfaceSize() (w, h float64) { return v.surfaceW, v.surfaceH }

// SetCellSize sets the cell size in pixels. It rejects non-positive or
// non-finite values and leaves the viewport unchanged on error.
func (v *Viewport) SetCellSize(px float64) error {
	if px <= 0 || math.IsNaN(px) || math.IsInf(px, 0) {
		return fmt.Errorf("%w: cell size must be > 0 px, got %v", shape.ErrInvalidParams, px)
	}
	v.cellSizePx = px
	return nil
}

// SetSurfaceSize records the output-surface size in pixels. Negative values
// clamp to zero.
func (v *Viewport) SetSurfaceSize(w, h float64) {
	v.surfaceW = math.Max(0, w)
	v.surfaceH = math.Max(0, h)
}

// SetPanOffset jumps the pan offset to an absolute world position.
func (v *Viewport) SetPanOffset(p geom.WorldPoint) {
	if p.IsFinite() {
		v.pan = p
	}
}

// Pan accumulates a continuous pan delta in world units. Deltas arrive
// per-tick from keyboard or drag input, already scaled by the caller so the
// result is resolution-independent.
func (v *Viewport) Pan(dx, dy float64) {
	next := v.pan.Add(dx, dy)
	if next.IsFinite() {
		v.pan = next
	}
}

// SnapToCell rounds the pan offset to the nearest integer cell boundary.
// Callers invoke this on the input-released edge, never mid-drag.
func (v *Viewport) SnapToCell() {
	v.pan = geom.WorldPoint{X: math.Round(v.pan.X), Y: math.Round(v.pan.Y)}
}

// Window returns the world rectangle currently visible: the pan offset at
// the top-left, extended by the surface size divided by the cell size.
func (v *Viewport) Window() geom.Rect {
	return geom.Rect{
		MinX: v.pan.X,
		MinY: v.pan.Y,
		MaxX: v.pan.X + v.surfaceW/v.cellSizePx,
		MaxY: v.pan.Y + v.surfaceH/v.cellSizePx,
	}
}

// ToWorld converts a screen position using the viewport's navigation state.
func (v *Viewport) ToWorld(s geom.ScreenPoint) geom.WorldPoint {
	return geom.ScreenToWorld(s, v.cellSizePx, v.pan)
}

// ToScreen converts a world position using the viewport's navigation state.
func (v *Viewport) ToScreen(w geom.WorldPoint) geom.ScreenPoint {
	return geom.WorldToScreen(w, v.cellSizePx, v.pan)
}

// ToCell returns the grid cell under a screen position.
func (v *Viewport) ToCell(s geom.ScreenPoint) geom.CellPoint {
	return geom.ScreenToCell(s, v.cellSizePx, v.pan)
}
