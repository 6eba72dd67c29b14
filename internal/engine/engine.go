package engine

import (
	"encoding/json"

	"github.com/gridboard/gridboard/backend-go/internal/document"
	"github.com/gridboard/gridboard/backend-go/internal/editor"
	"github.com/gridboard/gridboard/backend-go/internal/geom"
	"github.com/gridboard/gridboard/backend-go/internal/shape"
	"github.com/gridboard/gridboard/backend-go/internal/store"
	"github.com/gridboard/gridboard/backend-go/internal/viewport"
)

// Engine is the editing engine that owns the authoritative board state:
// object store, viewport, and interaction state machine. It processes
// commands from the frontend and returns query results as JSON.
type Engine struct {
	board document.Board

	store  *store.Store
	view   *viewport.Viewport
	editor *editor.Editor
}

// NewEngine creates an engine with an empty board.
func NewEngine() *Engine {
	st := store.New()
	vp := viewport.New()
	return &Engine{
		store:  st,
		view:   vp,
		editor: editor.New(st, vp),
	}
}

// --- Commands (frontend → backend) ---

// LoadDocument replaces the board state with a document parsed from JSON.
// Shape vertices are regenerated from parameters; persisted vertex data is
// never trusted.
func (e *Engine) LoadDocument(jsonData string) error {
	var doc document.BoardDocument
	if err := json.Unmarshal([]byte(jsonData), &doc); err != nil {
		return err
	}

	// Invalid shapes are skipped; the rest of the document still loads.
	doc.Populate(e.store)
	doc.ApplyNav(e.view)
	e.board = doc.Board
	e.editor.Escape()

	return nil
}

// LoadSampleDocument loads the built-in playground board.
func (e *Engine) LoadSampleDocument(boardID string) {
	doc := document.NewSampleDocument(boardID)
	doc.Populate(e.store)
	doc.ApplyNav(e.view)
	e.board = doc.Board
	e.editor.Escape()
}

// SaveDocument serializes the board state. Only shape parameters are
// persisted; vertices are derived data.
func (e *Engine) SaveDocument() string {
	doc := document.FromStore(e.board, e.store, e.view)
	data, err := json.Marshal(doc)
	if err != nil {
		return "{}"
	}
	return string(data)
}

func (e *Engine) SetTool(kind string) {
	e.editor.SetTool(shape.Kind(kind))
}

func (e *Engine) SetStyle(jsonData string) error {
	var style shape.Style
	if err := json.Unmarshal([]byte(jsonData), &style); err != nil {
		return err
	}
	e.editor.SetStyle(style)
	return nil
}

func (e *Engine) PointerDown(x, y float64) {
	e.editor.PointerDown(geom.ScreenPoint{X: x, Y: y})
}

func (e *Engine) PointerMove(x, y float64) {
	e.editor.PointerMove(geom.ScreenPoint{X: x, Y: y})
}

func (e *Engine) PointerUp(x, y float64) {
	e.editor.PointerUp(geom.ScreenPoint{X: x, Y: y})
}

func (e *Engine) Escape() {
	e.editor.Escape()
}

// Pan shifts the viewport by a world-unit delta.
func (e *Engine) Pan(dx, dy float64) {
	e.editor.Pan(dx, dy)
}

func (e *Engine) PanReleased() {
	e.editor.PanReleased()
}

func (e *Engine) SetCellSize(px float64) error {
	return e.view.SetCellSize(px)
}

func (e *Engine) SetSurfaceSize(w, h float64) {
	e.view.SetSurfaceSize(w, h)
}

func (e *Engine) DragVertex(vertexIndex int, x, y float64) error {
	return e.editor.DragVertex(vertexIndex, geom.ScreenPoint{X: x, Y: y})
}

func (e *Engine) BeginParamsEdit() {
	e.editor.BeginParamsEdit()
}

func (e *Engine) CommitParams(jsonData string) error {
	var params shape.Params
	if err := json.Unmarshal([]byte(jsonData), &params); err != nil {
		return err
	}
	return e.editor.CommitParams(params)
}

func (e *Engine) CancelParamsEdit() {
	e.editor.CancelParamsEdit()
}

// --- Queries (frontend ← backend) ---

// VisibleShapes returns the shapes intersecting the viewport window, in
// painter's order, as JSON.
func (e *Engine) VisibleShapes() string {
	shapes := e.editor.VisibleShapes()
	data, err := json.Marshal(shapes)
	if err != nil {
		return "[]"
	}
	return string(data)
}

// CurrentPreview returns the in-progress drawing preview as JSON, or "null"
// when no gesture is active.
func (e *Engine) CurrentPreview() string {
	preview := e.editor.CurrentPreview()
	data, err := json.Marshal(preview)
	if err != nil {
		return "null"
	}
	return string(data)
}

// HitTest returns the id of the topmost shape at a screen point, or "".
func (e *Engine) HitTest(x, y float64) string {
	return e.editor.HitTest(geom.ScreenPoint{X: x, Y: y})
}

func (e *Engine) SelectedID() string {
	return e.editor.SelectedID()
}

func (e *Engine) State() string {
	return string(e.editor.State())
}

func (e *Engine) ToWorld(x, y float64) string {
	return marshalPoint(e.editor.ToWorld(geom.ScreenPoint{X: x, Y: y}))
}

func (e *Engine) ToScreen(x, y float64) string {
	return marshalPoint(e.editor.ToScreen(geom.WorldPoint{X: x, Y: y}))
}

func (e *Engine) ToCell(x, y float64) string {
	return marshalPoint(e.editor.ToCell(geom.ScreenPoint{X: x, Y: y}))
}

// Window returns the current viewport sampling window as JSON.
func (e *Engine) Window() string {
	data, err := json.Marshal(e.view.Window())
	if err != nil {
		return "{}"
	}
	return string(data)
}

func marshalPoint(p interface{}) string {
	data, err := json.Marshal(p)
	if err != nil {
		return "{}"
	}
	return string(data)
}
