package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridboard/gridboard/backend-go/internal/geom"
	"github.com/gridboard/gridboard/backend-go/internal/shape"
	"github.com/gridboard/gridboard/backend-go/internal/store"
	"github.com/gridboard/gridboard/backend-go/internal/viewport"
)

func newTestEditor(t *testing.T) (*Editor, *store.Store) {
	t.Helper()
	st := store.New()
	vp := viewport.New()
	vp.SetSurfaceSize(800, 600)
	return New(st, vp), st
}

// screen translates whole world coordinates to screen pixels at the default
// 20 px cell size with no pan.
func screen(wx, wy float64) geom.ScreenPoint {
	return geom.ScreenPoint{X: wx * 20, Y: wy * 20}
}

func TestDrawCommitFlow(t *testing.T) {
	e, st := newTestEditor(t)
	e.SetTool(shape.KindRectangle)

	assert.Equal(t, StateIdle, e.State())

	e.PointerDown(screen(2, 2))
	assert.Equal(t, StateDrawing, e.State())
	assert.Nil(t, e.CurrentPreview(), "no preview before motion")

	e.PointerMove(screen(6, 4))
	assert.Equal(t, StatePreviewing, e.State())

	preview := e.CurrentPreview()
	require.NotNil(t, preview)
	assert.Equal(t, shape.KindRectangle, preview.Kind)
	assert.Equal(t, 0, st.Len(), "preview must not touch the store")

	e.PointerUp(screen(6, 4))
	assert.Equal(t, StateIdle, e.State())
	require.Equal(t, 1, st.Len())

	obj := st.All()[0]
	assert.Equal(t, geom.WorldPoint{X: 4, Y: 3}, obj.Params.Center)
	assert.Equal(t, 4.0, obj.Params.Width)
	assert.Equal(t, 2.0, obj.Params.Height)
}

func TestEscapeDiscardsPreview(t *testing.T) {
	e, st := newTestEditor(t)
	e.SetTool(shape.KindCircle)

	e.PointerDown(screen(5, 5))
	e.PointerMove(screen(8, 5))
	require.NotNil(t, e.CurrentPreview())

	e.Escape()
	assert.Equal(t, StateIdle, e.State())
	assert.Nil(t, e.CurrentPreview())
	assert.Equal(t, 0, st.Len(), "escape must leave the store untouched")
}

func TestDegenerateGestureDoesNotCommit(t *testing.T) {
	e, st := newTestEditor(t)
	e.SetTool(shape.KindCircle)

	// Press and release at the same point: zero radius, no shape.
	e.PointerDown(screen(3, 3))
	e.PointerUp(screen(3, 3))

	assert.Equal(t, StateIdle, e.State())
	assert.Equal(t, 0, st.Len())
}

func TestSelectAndDrag(t *testing.T) {
	e, st := newTestEditor(t)

	id, err := st.Create(shape.KindRectangle,
		shape.Params{Kind: shape.KindRectangle, Center: geom.WorldPoint{X: 5, Y: 5}, Width: 4, Height: 2},
		e.Style())
	require.NoError(t, err)

	e.SetTool("") // selection mode

	// Miss: stays idle.
	e.PointerDown(screen(20, 20))
	assert.Equal(t, StateIdle, e.State())

	// Hit: selects.
	e.PointerDown(screen(5, 5))
	assert.Equal(t, StateSelected, e.State())
	assert.Equal(t, id, e.SelectedID())

	// Pressing the selected shape again starts a drag; movement
	// translates it.
	e.PointerDown(screen(5, 5))
	assert.Equal(t, StateDragging, e.State())

	e.PointerMove(screen(8, 6))
	e.PointerUp(screen(8, 6))
	assert.Equal(t, StateSelected, e.State())

	obj, _ := st.Get(id)
	assert.Equal(t, geom.WorldPoint{X: 8, Y: 6}, obj.Params.Center)
	assert.Equal(t, 4.0, obj.Params.Width, "drag never rescales")
}

func TestClickAwayDeselects(t *testing.T) {
	e, st := newTestEditor(t)

	_, err := st.Create(shape.KindCircle,
		shape.Params{Kind: shape.KindCircle, Center: geom.WorldPoint{X: 5, Y: 5}, Radius: 2}, e.Style())
	require.NoError(t, err)

	e.PointerDown(screen(5, 5))
	require.Equal(t, StateSelected, e.State())

	e.PointerDown(screen(30, 20))
	assert.Equal(t, StateIdle, e.State())
	assert.Empty(t, e.SelectedID())
}

func TestParamsEditCommitAndCancel(t *testing.T) {
	e, st := newTestEditor(t)

	id, err := st.Create(shape.KindCircle,
		shape.Params{Kind: shape.KindCircle, Center: geom.WorldPoint{X: 5, Y: 5}, Radius: 2}, e.Style())
	require.NoError(t, err)

	e.PointerDown(screen(5, 5))
	require.Equal(t, StateSelected, e.State())

	e.BeginParamsEdit()
	assert.Equal(t, StateEditingParams, e.State())

	// Invalid parameters keep the panel open and the shape unchanged.
	err = e.CommitParams(shape.Params{Center: geom.WorldPoint{X: 5, Y: 5}, Radius: -1})
	assert.ErrorIs(t, err, shape.ErrInvalidParams)
	assert.Equal(t, StateEditingParams, e.State())
	obj, _ := st.Get(id)
	assert.Equal(t, 2.0, obj.Params.Radius)

	// A valid commit applies and returns to Selected.
	require.NoError(t, e.CommitParams(shape.Params{Center: geom.WorldPoint{X: 5, Y: 5}, Radius: 4}))
	assert.Equal(t, StateSelected, e.State())
	obj, _ = st.Get(id)
	assert.Equal(t, 4.0, obj.Params.Radius)

	// Cancel never writes.
	e.BeginParamsEdit()
	e.CancelParamsEdit()
	assert.Equal(t, StateSelected, e.State())
	obj, _ = st.Get(id)
	assert.Equal(t, 4.0, obj.Params.Radius)
}

func TestDragVertexOnSelection(t *testing.T) {
	e, st := newTestEditor(t)

	id, err := st.Create(shape.KindCircle,
		shape.Params{Kind: shape.KindCircle, Center: geom.WorldPoint{X: 5, Y: 5}, Radius: 2}, e.Style())
	require.NoError(t, err)

	e.PointerDown(screen(5, 5))
	require.Equal(t, id, e.SelectedID())

	// Drag the angle-0 handle from (7,5) out to (10,5).
	require.NoError(t, e.DragVertex(0, screen(10, 5)))
	obj, _ := st.Get(id)
	assert.Equal(t, 5.0, obj.Params.Radius)
	assert.Equal(t, geom.WorldPoint{X: 5, Y: 5}, obj.Params.Center)

	// Dropping the handle on the center is ignored as degenerate.
	err = e.DragVertex(0, screen(5, 5))
	assert.ErrorIs(t, err, shape.ErrDegenerateEdit)
	obj, _ = st.Get(id)
	assert.Equal(t, 5.0, obj.Params.Radius)
}

func TestHitTestTopmostWins(t *testing.T) {
	e, st := newTestEditor(t)

	bottom, err := st.Create(shape.KindRectangle,
		shape.Params{Kind: shape.KindRectangle, Center: geom.WorldPoint{X: 5, Y: 5}, Width: 6, Height: 6}, e.Style())
	require.NoError(t, err)
	top, err := st.Create(shape.KindRectangle,
		shape.Params{Kind: shape.KindRectangle, Center: geom.WorldPoint{X: 5, Y: 5}, Width: 2, Height: 2}, e.Style())
	require.NoError(t, err)

	assert.Equal(t, top, e.HitTest(screen(5, 5)), "later shapes draw on top")
	assert.Equal(t, bottom, e.HitTest(screen(7.5, 5)))
	assert.Empty(t, e.HitTest(screen(20, 20)))

	// Hidden shapes are transparent to hits.
	require.NoError(t, st.SetVisible(top, false))
	assert.Equal(t, bottom, e.HitTest(screen(5, 5)))
}

func TestVisibleShapesCulls(t *testing.T) {
	e, st := newTestEditor(t)

	onscreen, err := st.Create(shape.KindCircle,
		shape.Params{Kind: shape.KindCircle, Center: geom.WorldPoint{X: 10, Y: 10}, Radius: 2}, e.Style())
	require.NoError(t, err)
	_, err = st.Create(shape.KindCircle,
		shape.Params{Kind: shape.KindCircle, Center: geom.WorldPoint{X: 500, Y: 500}, Radius: 2}, e.Style())
	require.NoError(t, err)

	// 800x600 at 20px/cell with no pan: window is (0,0)-(40,30).
	visible := e.VisibleShapes()
	require.Len(t, visible, 1)
	assert.Equal(t, onscreen, visible[0].ID)

	// Panning to the far shape swaps which one samples.
	e.Pan(490, 490)
	visible = e.VisibleShapes()
	require.Len(t, visible, 1)
	assert.NotEqual(t, onscreen, visible[0].ID)
}

func TestSwitchingToolAbandonsGesture(t *testing.T) {
	e, st := newTestEditor(t)
	e.SetTool(shape.KindLine)

	e.PointerDown(screen(1, 1))
	e.PointerMove(screen(5, 5))
	require.Equal(t, StatePreviewing, e.State())

	e.SetTool(shape.KindCircle)
	assert.Equal(t, StateIdle, e.State())
	assert.Equal(t, 0, st.Len())
}

func TestPanReleasedSnaps(t *testing.T) {
	e, _ := newTestEditor(t)

	e.Pan(2.6, -0.4)
	e.PanReleased()
	assert.Equal(t, geom.WorldPoint{X: 3, Y: -0}, e.Viewport().PanOffset())
}
