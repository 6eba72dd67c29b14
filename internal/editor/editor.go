// Package editor sequences pointer and keyboard input into draw, select,
// drag, and parameter-edit operations. It is a finite state machine: every
// legal transition and its side effect on the object store is enumerated in
// the handlers below, and the store is only touched on commit — previews
// are ephemeral, so cancelling at any point is always safe.
package editor

import (
	"time"

	"github.com/gridboard/gridboard/backend-go/internal/geom"
	"github.com/gridboard/gridboard/backend-go/internal/shape"
	"github.com/gridboard/gridboard/backend-go/internal/store"
	"github.com/gridboard/gridboard/backend-go/internal/viewport"
)

// State identifies the interaction state machine's current state.
type State string

const (
	StateIdle          State = "idle"
	StateDrawing       State = "drawing"
	StatePreviewing    State = "previewing"
	StateSelected      State = "selected"
	StateDragging      State = "dragging"
	StateEditingParams State = "editingParams"
)

// hitPadPx is the selection slop around thin geometry, in screen pixels.
// It is divided by the cell size so hit tolerance tracks zoom.
const hitPadPx = 6

// Editor drives one user's interaction with a board. It owns the viewport
// and shares the store; all mutations flow through the store's API.
type Editor struct {
	store *store.Store
	view  *viewport.Viewport

	state    State
	tool     shape.Kind // empty string = selection mode
	style    shape.Style
	anchor   geom.WorldPoint
	cursor   geom.WorldPoint
	selected string
}

// New creates an editor over the given store and viewport.
func New(st *store.Store, vp *viewport.Viewport) *Editor {
	return &Editor{
		store: st,
		view:  vp,
		state: StateIdle,
		style: shape.Style{StrokeColor: "#e8e8e8", StrokeWidth: 2, StrokeAlpha: 1},
	}
}

// State returns the current interaction state.
func (e *Editor) State() State { return e.state }

// SelectedID returns the selected shape's id, or "" when nothing is
// selected.
func (e *Editor) SelectedID() string {
	switch e.state {
	case StateSelected, StateDragging, StateEditingParams:
		return e.selected
	}
	return ""
}

// SetTool switches the drawing tool. An empty kind enters selection mode.
// Switching tools abandons any in-progress gesture.
func (e *Editor) SetTool(kind shape.Kind) {
	e.tool = kind
	e.resetToIdle()
}

// Tool returns the active drawing tool ("" in selection mode).
func (e *Editor) Tool() shape.Kind { return e.tool }

// SetStyle sets the stroke/fill style applied to newly drawn shapes.
func (e *Editor) SetStyle(style shape.Style) { e.style = style }

// Style returns the current authoring style.
func (e *Editor) Style() shape.Style { return e.style }

// PointerDown handles a primary-button press at a screen position.
func (e *Editor) PointerDown(s geom.ScreenPoint) {
	w := e.view.ToWorld(s)

	if e.tool != "" {
		if e.state == StateIdle {
			e.anchor = w
			e.cursor = w
			e.state = StateDrawing
		}
		return
	}

	hit := e.HitTest(s)
	switch e.state {
	case StateIdle:
		if hit != "" {
			e.selected = hit
			e.state = StateSelected
		}
	case StateSelected:
		switch {
		case hit == e.selected:
			// Single-press drag of an already-selected shape.
			e.cursor = w
			e.state = StateDragging
		case hit != "":
			e.selected = hit
		default:
			e.resetToIdle()
		}
	}
}

// PointerMove handles pointer motion at a screen position.
func (e *Editor) PointerMove(s geom.ScreenPoint) {
	w := e.view.ToWorld(s)

	switch e.state {
	case StateDrawing, StatePreviewing:
		e.cursor = w
		e.state = StatePreviewing

	case StateDragging:
		dx, dy := w.Sub(e.cursor)
		// A drag landing on non-finite coordinates is ignored; the shape
		// stays where the last valid move left it.
		if err := e.store.Translate(e.selected, dx, dy); err == nil {
			e.cursor = w
		}
	}
}

// PointerUp handles a primary-button release at a screen position.
func (e *Editor) PointerUp(s geom.ScreenPoint) {
	w := e.view.ToWorld(s)

	switch e.state {
	case StateDrawing, StatePreviewing:
		e.cursor = w
		params := shape.FromDrag(e.tool, e.anchor, e.cursor)
		// A degenerate gesture (zero-radius circle, zero-area rectangle)
		// simply does not commit.
		_, _ = e.store.Create(e.tool, params, e.style)
		e.resetToIdle()

	case StateDragging:
		e.state = StateSelected
	}
}

// Escape abandons any in-progress gesture or selection and returns to Idle.
// Uncommitted previews are discarded; the store is untouched.
func (e *Editor) Escape() {
	e.resetToIdle()
}

// Pan accumulates a continuous keyboard/drag pan delta in world units.
func (e *Editor) Pan(dx, dy float64) {
	e.view.Pan(dx, dy)
}

// PanReleased snaps the pan offset to the nearest cell boundary. It fires
// on the input-released edge only.
func (e *Editor) PanReleased() {
	e.view.SnapToCell()
}

// BeginParamsEdit opens parameter editing for the selected shape. It is a
// no-op unless a shape is selected.
func (e *Editor) BeginParamsEdit() {
	if e.state == StateSelected {
		e.state = StateEditingParams
	}
}

// CommitParams applies edited parameters to the selected shape and returns
// to Selected. Invalid parameters are ignored: the edit panel stays open
// and the shape keeps its current parameters.
func (e *Editor) CommitParams(params shape.Params) error {
	if e.state != StateEditingParams {
		return nil
	}
	if err := e.store.UpdateByParams(e.selected, params); err != nil {
		return err
	}
	e.state = StateSelected
	return nil
}

// CancelParamsEdit closes the edit panel without applying anything.
func (e *Editor) CancelParamsEdit() {
	if e.state == StateEditingParams {
		e.state = StateSelected
	}
}

// DragVertex applies a free-hand vertex-handle drag on the selected shape.
// Degenerate edits (e.g. a radius handle dropped on the center) are
// ignored, leaving the shape unchanged.
func (e *Editor) DragVertex(vertexIndex int, s geom.ScreenPoint) error {
	if e.SelectedID() == "" {
		return nil
	}
	return e.store.UpdateByVertexEdit(e.selected, vertexIndex, e.view.ToWorld(s))
}

// VisibleShapes returns the shapes intersecting the current sampling
// window, culled and in painter's order, ready for a renderer.
func (e *Editor) VisibleShapes() []store.Object {
	return e.store.VisibleIn(e.view.Window())
}

// CurrentPreview returns the ephemeral in-progress shape while previewing,
// or nil. The preview is never written to the store; renderers draw it
// translucent.
func (e *Editor) CurrentPreview() *store.Object {
	if e.state != StatePreviewing {
		return nil
	}
	params := shape.FromDrag(e.tool, e.anchor, e.cursor)
	if params.Validate() != nil {
		return nil
	}
	vertices := shape.Generate(params)
	return &store.Object{
		Kind:      e.tool,
		Vertices:  vertices,
		Params:    params,
		Style:     e.style,
		Bounds:    geom.BoundsOf(vertices),
		Visible:   true,
		CreatedAt: time.Time{},
	}
}

// HitTest returns the id of the topmost visible shape under a screen
// position, or "" if none. Containment is shape-specific; thin geometry
// gets a zoom-adjusted tolerance.
func (e *Editor) HitTest(s geom.ScreenPoint) string {
	w := e.view.ToWorld(s)
	tolerance := hitPadPx / e.view.CellSizePx()

	objects := e.store.All()
	for i := len(objects) - 1; i >= 0; i-- {
		obj := objects[i]
		if !obj.Visible {
			continue
		}
		if !obj.Bounds.Expand(tolerance).Contains(w) {
			continue
		}
		if shape.Hits(obj.Params, w, tolerance) {
			return obj.ID
		}
	}
	return ""
}

// ToWorld exposes the viewport's screen→world conversion for collaborators
// such as cursor overlays.
func (e *Editor) ToWorld(s geom.ScreenPoint) geom.WorldPoint { return e.view.ToWorld(s) }

// ToScreen exposes the viewport's world→screen conversion.
func (e *Editor) ToScreen(w geom.WorldPoint) geom.ScreenPoint { return e.view.ToScreen(w) }

// ToCell exposes the viewport's screen→cell conversion.
func (e *Editor) ToCell(s geom.ScreenPoint) geom.CellPoint { return e.view.ToCell(s) }

// Viewport returns the editor's viewport for navigation adjustments
// (cell size, surface size).
func (e *Editor) Viewport() *viewport.Viewport { return e.view }

// Store returns the shared object store for read-only consumers and
// document load/save.
func (e *Editor) Store() *store.Store { return e.store }

func (e *Editor) resetToIdle() {
	e.state = StateIdle
	e.selected = ""
}
