package shape

import (
	"math"

	"github.com/gridboard/gridboard/backend-go/internal/geom"
)

// Hits reports whether a world-space point falls on the shape described by
// p, within a world-unit tolerance. Open shapes (point, line) test distance
// to their geometry; closed shapes (circle, rectangle, diamond) test
// containment grown by the tolerance.
func Hits(p Params, pt geom.WorldPoint, tolerance float64) bool {
	switch p.Kind {
	case KindPoint:
		return p.Center.Distance(pt) <= tolerance

	case KindLine:
		return segmentDistance(p.Start, p.End, pt) <= tolerance

	case KindCircle:
		return p.Center.Distance(pt) <= p.Radius+tolerance

	case KindRectangle:
		hw, hh := p.Width/2+tolerance, p.Height/2+tolerance
		return math.Abs(pt.X-p.Center.X) <= hw && math.Abs(pt.Y-p.Center.Y) <= hh

	case KindDiamond:
		hw, hh := p.Width/2+tolerance, p.Height/2+tolerance
		if hw <= 0 || hh <= 0 {
			return false
		}
		return math.Abs(pt.X-p.Center.X)/hw+math.Abs(pt.Y-p.Center.Y)/hh <= 1
	}
	return false
}

// segmentDistance returns the distance from pt to the closed segment ab.
func segmentDistance(a, b, pt geom.WorldPoint) float64 {
	abx, aby := b.X-a.X, b.Y-a.Y
	lenSq := abx*abx + aby*aby
	if lenSq == 0 {
		return a.Distance(pt)
	}
	t := ((pt.X-a.X)*abx + (pt.Y-a.Y)*aby) / lenSq
	t = math.Max(0, math.Min(1, t))
	return pt.Distance(geom.WorldPoint{X: a.X + t*abx, Y: a.Y + t*aby})
}
