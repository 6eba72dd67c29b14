package geom

import "math"

// Rect is an axis-aligned bounding box in world space.
type Rect struct {
	MinX float64 `json:"minX"`
	MinY float64 `json:"minY"`
	MaxX float64 `json:"maxX"`
	MaxY float64 `json:"maxY"`
}

// BoundsOf returns the axis-aligned bounds of a vertex list.
// An empty list yields the zero Rect.
func BoundsOf(vertices []WorldPoint) Rect {
	if len(vertices) == 0 {
		return Rect{}
	}

	r := Rect{
		MinX: vertices[0].X, MaxX: vertices[0].X,
		MinY: vertices[0].Y, MaxY: vertices[0].Y,
	}
	for _, v := range vertices[1:] {
		r.MinX = math.Min(r.MinX, v.X)
		r.MaxX = math.Max(r.MaxX, v.X)
		r.MinY = math.Min(r.MinY, v.Y)
		r.MaxY = math.Max(r.MaxY, v.Y)
	}
	return r
}

// Intersects reports whether r and other overlap. Boxes that merely touch
// on an edge count as overlapping — culling must never produce a false
// negative.
func (r Rect) Intersects(other Rect) bool {
	return !(r.MaxX < other.MinX || r.MinX > other.MaxX ||
		r.MaxY < other.MinY || r.MinY > other.MaxY)
}

// Contains reports whether the point lies inside r (edges inclusive).
func (r Rect) Contains(p WorldPoint) bool {
	return p.X >= r.MinX && p.X <= r.MaxX && p.Y >= r.MinY && p.Y <= r.MaxY
}

// Union returns the smallest Rect containing both r and other.
func (r Rect) Union(other Rect) Rect {
	return Rect{
		MinX: math.Min(r.MinX, other.MinX),
		MinY: math.Min(r.MinY, other.MinY),
		MaxX: math.Max(r.MaxX, other.MaxX),
		MaxY: math.Max(r.MaxY, other.MaxY),
	}
}

// Expand returns r grown by pad on every side.
func (r Rect) Expand(pad float64) Rect {
	return Rect{
		MinX: r.MinX - pad,
		MinY: r.MinY - pad,
		MaxX: r.MaxX + pad,
		MaxY: r.MaxY + pad,
	}
}

// Width returns the horizontal extent of r.
func (r Rect) Width() float64 { return r.MaxX - r.MinX }

// Height returns the vertical extent of r.
func (r Rect) Height() float64 { return r.MaxY - r.MinY }
