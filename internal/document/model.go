// Package document defines the serialized form of a board. Only canonical
// shape parameters are persisted — never vertices or bounds, which are
// regenerated through the object store on load. Stale persisted geometry is
// therefore impossible by construction.
package document

import (
	"time"

	"github.com/gridboard/gridboard/backend-go/internal/shape"
	"github.com/gridboard/gridboard/backend-go/internal/store"
	"github.com/gridboard/gridboard/backend-go/internal/viewport"
)

type BoardDocument struct {
	Board  Board   `json:"board"`
	Nav    Nav     `json:"nav"`
	Shapes []Shape `json:"shapes"`
}

type Board struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Version int    `json:"version"`
}

// Nav records the navigation state a board opens with.
type Nav struct {
	CellSizePx float64 `json:"cellSizePx"`
	PanX       float64 `json:"panX"`
	PanY       float64 `json:"panY"`
}

type Shape struct {
	ID        string       `json:"id"`
	Params    shape.Params `json:"params"`
	Style     shape.Style  `json:"style"`
	Visible   bool         `json:"visible"`
	CreatedAt time.Time    `json:"createdAt"`
}

// NewEmptyDocument creates the document a fresh board starts from.
func NewEmptyDocument(boardID, name string) *BoardDocument {
	return &BoardDocument{
		Board: Board{ID: boardID, Name: name, Version: 1},
		Nav:   Nav{CellSizePx: viewport.DefaultCellSizePx},
	}
}

// FromStore captures the current board contents and navigation state as a
// document ready for snapshotting.
func FromStore(board Board, st *store.Store, vp *viewport.Viewport) *BoardDocument {
	doc := &BoardDocument{Board: board}
	if vp != nil {
		pan := vp.PanOffset()
		doc.Nav = Nav{CellSizePx: vp.CellSizePx(), PanX: pan.X, PanY: pan.Y}
	} else {
		doc.Nav = Nav{CellSizePx: viewport.DefaultCellSizePx}
	}
	for _, obj := range st.All() {
		doc.Shapes = append(doc.Shapes, Shape{
			ID:        obj.ID,
			Params:    obj.Params,
			Style:     obj.Style,
			Visible:   obj.Visible,
			CreatedAt: obj.CreatedAt,
		})
	}
	return doc
}

// Populate clears the store and inserts every shape in the document,
// regenerating vertices and bounds from parameters. Shapes whose persisted
// parameters no longer validate are skipped rather than aborting the load.
func (d *BoardDocument) Populate(st *store.Store) []error {
	st.Clear()
	var errs []error
	for _, sh := range d.Shapes {
		if err := st.Insert(sh.ID, sh.Params, sh.Style, sh.Visible, sh.CreatedAt); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

// ApplyNav restores the document's navigation state onto a viewport.
// Invalid persisted values fall back to the viewport's current state.
func (d *BoardDocument) ApplyNav(vp *viewport.Viewport) {
	if err := vp.SetCellSize(d.Nav.CellSizePx); err != nil {
		_ = vp.SetCellSize(viewport.DefaultCellSizePx)
	}
	vp.SetPanOffset(panPoint(d.Nav))
}
