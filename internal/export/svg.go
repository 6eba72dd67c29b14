// Package export renders a board document to a standalone SVG file.
package export

import (
	"fmt"
	"strings"

	"github.com/gridboard/gridboard/backend-go/internal/document"
	"github.com/gridboard/gridboard/backend-go/internal/geom"
	"github.com/gridboard/gridboard/backend-go/internal/shape"
	"github.com/gridboard/gridboard/backend-go/internal/store"
)

// contentPad is the world-unit margin around the exported shapes.
const contentPad = 1.0

// RenderSVG regenerates each shape's geometry from its parameters and draws
// the visible shapes in painter's order. The viewBox covers the union of
// shape bounds; an empty board exports a single empty cell.
func RenderSVG(doc *document.BoardDocument) ([]byte, error) {
	st := store.New()
	doc.Populate(st)

	scale := doc.Nav.CellSizePx
	if scale <= 0 {
		scale = 20
	}

	objects := st.All()
	bounds := geom.Rect{MaxX: 1, MaxY: 1}
	first := true
	for _, obj := range objects {
		if !obj.Visible {
			continue
		}
		if first {
			bounds = obj.Bounds
			first = false
		} else {
			bounds = bounds.Union(obj.Bounds)
		}
	}
	bounds = bounds.Expand(contentPad)

	var b strings.Builder
	fmt.Fprintf(&b,
		`<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="%s %s %s %s">`+"\n",
		num(bounds.Width()*scale), num(bounds.Height()*scale),
		num(bounds.MinX), num(bounds.MinY), num(bounds.Width()), num(bounds.Height()))

	for _, obj := range objects {
		if !obj.Visible {
			continue
		}
		writeShape(&b, obj, scale)
	}

	b.WriteString("</svg>\n")
	return []byte(b.String()), nil
}

func writeShape(b *strings.Builder, obj store.Object, scale float64) {
	style := styleAttrs(obj.Style, scale)

	switch obj.Params.Kind {
	case shape.KindPoint:
		c := obj.Params.Center
		fmt.Fprintf(b, `  <circle cx="%s" cy="%s" r="%s" fill="%s"/>`+"\n",
			num(c.X), num(c.Y), num(obj.Style.StrokeWidth/scale), obj.Style.StrokeColor)
	case shape.KindCircle:
		c := obj.Params.Center
		fmt.Fprintf(b, `  <circle cx="%s" cy="%s" r="%s" %s/>`+"\n",
			num(c.X), num(c.Y), num(obj.Params.Radius), style)
	case shape.KindLine:
		fmt.Fprintf(b, `  <line x1="%s" y1="%s" x2="%s" y2="%s" %s/>`+"\n",
			num(obj.Params.Start.X), num(obj.Params.Start.Y),
			num(obj.Params.End.X), num(obj.Params.End.Y), style)
	default:
		// rectangle and diamond draw as closed polygons over their
		// generated vertices
		points := make([]string, 0, len(obj.Vertices))
		for _, v := range obj.Vertices {
			points = append(points, num(v.X)+","+num(v.Y))
		}
		fmt.Fprintf(b, `  <polygon points="%s" %s/>`+"\n", strings.Join(points, " "), style)
	}
}

func styleAttrs(s shape.Style, scale float64) string {
	fill := "none"
	attrs := fmt.Sprintf(`stroke="%s" stroke-width="%s"`, s.StrokeColor, num(s.StrokeWidth/scale))
	if s.StrokeAlpha > 0 && s.StrokeAlpha < 1 {
		attrs += fmt.Sprintf(` stroke-opacity="%s"`, num(s.StrokeAlpha))
	}
	if s.FillColor != "" {
		fill = s.FillColor
		if s.FillAlpha > 0 && s.FillAlpha < 1 {
			attrs += fmt.Sprintf(` fill-opacity="%s"`, num(s.FillAlpha))
		}
	}
	return attrs + fmt.Sprintf(` fill="%s"`, fill)
}

func num(f float64) string {
	s := fmt.Sprintf("%.4f", f)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}
