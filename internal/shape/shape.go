// Package shape defines the drawable shape kinds, their canonical authoring
// parameters, and the two pure functions that relate parameters to geometry:
// a generator (parameters → vertices) and an exact per-kind inverse for
// vertex-driven edits (edited vertex → parameters).
//
// Parameters are the single source of truth. Vertices are always regenerated
// from parameters; they are never used to recover parameters except through
// DeriveVertexEdit, which is an exact affine relationship — never a
// statistical fit over sampled points.
package shape

import (
	"errors"
	"fmt"
	"math"

	"github.com/gridboard/gridboard/backend-go/internal/geom"
)

var (
	// ErrInvalidParams marks parameters a shape cannot be built from:
	// non-positive radius/width/height or non-finite coordinates.
	ErrInvalidParams = errors.New("invalid shape parameters")

	// ErrDegenerateEdit marks a vertex edit that would collapse the shape,
	// e.g. a radius handle dropped exactly on the circle's center.
	ErrDegenerateEdit = errors.New("degenerate vertex edit")
)

// Kind identifies a shape kind.
type Kind string

const (
	KindPoint     Kind = "point"
	KindLine      Kind = "line"
	KindCircle    Kind = "circle"
	KindRectangle Kind = "rectangle"
	KindDiamond   Kind = "diamond"
)

// CircleSegments is the number of vertices sampled around a circle's
// circumference. Every sampled vertex doubles as a radius handle.
const CircleSegments = 8

// Params is the canonical, authoritative description of a shape. Which
// fields are meaningful depends on Kind:
//
//	point:     Center
//	line:      Start, End
//	circle:    Center, Radius
//	rectangle: Center, Width, Height
//	diamond:   Center, Width, Height (axis-aligned rhombus)
type Params struct {
	Kind   Kind            `json:"kind"`
	Center geom.WorldPoint `json:"center,omitzero"`
	Start  geom.WorldPoint `json:"start,omitzero"`
	End    geom.WorldPoint `json:"end,omitzero"`
	Radius float64         `json:"radius,omitempty"`
	Width  float64         `json:"width,omitempty"`
	Height float64         `json:"height,omitempty"`
}

// Style carries the presentation attributes stored alongside a shape.
// The engine never interprets these; they pass through to renderers.
type Style struct {
	StrokeColor string  `json:"strokeColor"`
	StrokeWidth float64 `json:"strokeWidth"`
	StrokeAlpha float64 `json:"strokeAlpha"`
	FillColor   string  `json:"fillColor,omitempty"`
	FillAlpha   float64 `json:"fillAlpha,omitempty"`
}

// Validate checks that p describes a buildable shape. It returns
// ErrInvalidParams (wrapped with detail) for non-finite coordinates and
// non-positive dimensions.
func (p Params) Validate() error {
	switch p.Kind {
	case KindPoint:
		if !p.Center.IsFinite() {
			return fmt.Errorf("%w: point center must be finite", ErrInvalidParams)
		}
	case KindLine:
		if !p.Start.IsFinite() || !p.End.IsFinite() {
			return fmt.Errorf("%w: line endpoints must be finite", ErrInvalidParams)
		}
	case KindCircle:
		if !p.Center.IsFinite() {
			return fmt.Errorf("%w: circle center must be finite", ErrInvalidParams)
		}
		if !isPositive(p.Radius) {
			return fmt.Errorf("%w: circle radius must be > 0, got %v", ErrInvalidParams, p.Radius)
		}
	case KindRectangle, KindDiamond:
		if !p.Center.IsFinite() {
			return fmt.Errorf("%w: %s center must be finite", ErrInvalidParams, p.Kind)
		}
		if !isPositive(p.Width) || !isPositive(p.Height) {
			return fmt.Errorf("%w: %s width/height must be > 0, got %vx%v",
				ErrInvalidParams, p.Kind, p.Width, p.Height)
		}
	default:
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidParams, p.Kind)
	}
	return nil
}

// Translate returns p with every world-point field shifted by (dx, dy).
// Radius, width, and height are carried over untouched.
func (p Params) Translate(dx, dy float64) Params {
	out := p
	out.Center = p.Center.Add(dx, dy)
	if p.Kind == KindLine {
		out.Start = p.Start.Add(dx, dy)
		out.End = p.End.Add(dx, dy)
	}
	return out
}

// Generate produces the renderable vertex list for p. It is deterministic
// and total for valid parameters; callers validate first.
func Generate(p Params) []geom.WorldPoint {
	switch p.Kind {
	case KindPoint:
		return []geom.WorldPoint{p.Center}

	case KindLine:
		return []geom.WorldPoint{p.Start, p.End}

	case KindCircle:
		vertices := make([]geom.WorldPoint, CircleSegments)
		for i := range vertices {
			theta := 2 * math.Pi * float64(i) / CircleSegments
			vertices[i] = geom.WorldPoint{
				X: p.Center.X + p.Radius*math.Cos(theta),
				Y: p.Center.Y + p.Radius*math.Sin(theta),
			}
		}
		return vertices

	case KindRectangle:
		hw, hh := p.Width/2, p.Height/2
		// Corner order: TL, TR, BR, BL.
		return []geom.WorldPoint{
			{X: p.Center.X - hw, Y: p.Center.Y - hh},
			{X: p.Center.X + hw, Y: p.Center.Y - hh},
			{X: p.Center.X + hw, Y: p.Center.Y + hh},
			{X: p.Center.X - hw, Y: p.Center.Y + hh},
		}

	case KindDiamond:
		hw, hh := p.Width/2, p.Height/2
		// Cardinal order: West, North, East, South.
		return []geom.WorldPoint{
			{X: p.Center.X - hw, Y: p.Center.Y},
			{X: p.Center.X, Y: p.Center.Y - hh},
			{X: p.Center.X + hw, Y: p.Center.Y},
			{X: p.Center.X, Y: p.Center.Y + hh},
		}
	}
	return nil
}

// DeriveVertexEdit recovers new parameters after vertex editedIndex of the
// shape described by p is moved to next. It is the only legal way to turn an
// edited vertex back into parameters, and each kind's rule is exact:
//
//   - circle: the edited vertex is a radius handle; the new radius is its
//     distance from the center. The center is never recomputed from the
//     sampled circumference.
//   - rectangle: the opposite corner is the fixed anchor; the new center is
//     the midpoint of anchor and edited corner.
//   - diamond: the opposite cardinal point anchors one axis; the other axis
//     is untouched.
//   - line/point: direct endpoint assignment.
//
// Moving a vertex to its own current position is a bit-for-bit no-op on
// parameters. An out-of-range editedIndex is a caller bug and panics.
func DeriveVertexEdit(p Params, editedIndex int, next geom.WorldPoint) (Params, error) {
	vertices := Generate(p)
	if editedIndex < 0 || editedIndex >= len(vertices) {
		panic(fmt.Sprintf("shape: vertex index %d out of range for %s with %d vertices",
			editedIndex, p.Kind, len(vertices)))
	}
	if !next.IsFinite() {
		return Params{}, fmt.Errorf("%w: edited vertex must be finite", ErrInvalidParams)
	}
	if next == vertices[editedIndex] {
		return p, nil
	}

	out := p
	switch p.Kind {
	case KindPoint:
		out.Center = next

	case KindLine:
		if editedIndex == 0 {
			out.Start = next
		} else {
			out.End = next
		}

	case KindCircle:
		radius := p.Center.Distance(next)
		if radius == 0 {
			return Params{}, fmt.Errorf("%w: radius handle on circle center", ErrDegenerateEdit)
		}
		out.Radius = radius

	case KindRectangle:
		anchor := vertices[(editedIndex+2)%4]
		width := math.Abs(next.X - anchor.X)
		height := math.Abs(next.Y - anchor.Y)
		if width == 0 || height == 0 {
			return Params{}, fmt.Errorf("%w: rectangle corner collapsed onto opposite corner axis", ErrDegenerateEdit)
		}
		out.Center = geom.WorldPoint{X: (next.X + anchor.X) / 2, Y: (next.Y + anchor.Y) / 2}
		out.Width = width
		out.Height = height

	case KindDiamond:
		anchor := vertices[(editedIndex+2)%4]
		if editedIndex%2 == 0 {
			// West/East handle: width axis only.
			width := math.Abs(next.X - anchor.X)
			if width == 0 {
				return Params{}, fmt.Errorf("%w: diamond width collapsed", ErrDegenerateEdit)
			}
			out.Width = width
			out.Center.X = (next.X + anchor.X) / 2
		} else {
			// North/South handle: height axis only.
			height := math.Abs(next.Y - anchor.Y)
			if height == 0 {
				return Params{}, fmt.Errorf("%w: diamond height collapsed", ErrDegenerateEdit)
			}
			out.Height = height
			out.Center.Y = (next.Y + anchor.Y) / 2
		}
	}

	return out, nil
}

// FromDrag builds authoring parameters from the two points of a click-drag
// gesture: the pointer-down anchor and the current pointer position.
func FromDrag(kind Kind, anchor, current geom.WorldPoint) Params {
	switch kind {
	case KindPoint:
		return Params{Kind: KindPoint, Center: current}

	case KindLine:
		return Params{Kind: KindLine, Start: anchor, End: current}

	case KindCircle:
		return Params{Kind: KindCircle, Center: anchor, Radius: anchor.Distance(current)}

	case KindRectangle, KindDiamond:
		return Params{
			Kind:   kind,
			Center: geom.WorldPoint{X: (anchor.X + current.X) / 2, Y: (anchor.Y + current.Y) / 2},
			Width:  math.Abs(current.X - anchor.X),
			Height: math.Abs(current.Y - anchor.Y),
		}
	}
	return Params{Kind: kind}
}

func isPositive(v float64) bool {
	return v > 0 && !math.IsInf(v, 1) && !math.IsNaN(v)
}
