package collab

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gridboard/gridboard/backend-go/internal/document"
	"github.com/gridboard/gridboard/backend-go/internal/shape"
	"github.com/gridboard/gridboard/backend-go/internal/store"
	"github.com/gridboard/gridboard/backend-go/internal/typeid"
)

// BoardState holds the authoritative state for one board room. All remote
// edits funnel through Apply, which routes every operation to the object
// store's mutation API — parameters in, vertices regenerated, never the
// reverse.
type BoardState struct {
	mu        sync.Mutex
	board     document.Board
	nav       document.Nav
	shapes    *store.Store
	serverSeq int64
	opLog     []Operation
	dirty     bool
}

// NewBoardState loads a board state from a persisted document. Shapes whose
// persisted parameters no longer validate are dropped with a count returned
// for logging.
func NewBoardState(doc *document.BoardDocument) (*BoardState, int) {
	st := store.New()
	errs := doc.Populate(st)
	return &BoardState{
		board:  doc.Board,
		nav:    doc.Nav,
		shapes: st,
	}, len(errs)
}

// Store exposes the authoritative store for read-only consumers.
func (bs *BoardState) Store() *store.Store { return bs.shapes }

// Document captures the current state as a persistable document.
func (bs *BoardState) Document() *document.BoardDocument {
	bs.mu.Lock()
	board := bs.board
	nav := bs.nav
	bs.mu.Unlock()

	doc := document.FromStore(board, bs.shapes, nil)
	doc.Nav = nav
	return doc
}

// ServerSeq returns the sequence number of the last applied operation.
func (bs *BoardState) ServerSeq() int64 {
	bs.mu.Lock()
	defer bs.mu.Unlock()
	return bs.serverSeq
}

// Dirty reports whether the board changed since the last MarkSaved.
func (bs *BoardState) Dirty() bool {
	bs.mu.Lock()
	defer bs.mu.Unlock()
	return bs.dirty
}

// MarkSaved clears the dirty flag after a successful snapshot, bumping the
// document version.
func (bs *BoardState) MarkSaved() {
	bs.mu.Lock()
	defer bs.mu.Unlock()
	bs.dirty = false
	bs.board.Version++
}

// Apply validates and applies an operation, assigning the server sequence.
// shape.create fills in op.ShapeID so the assigned id reaches both the
// submitter (ack) and the broadcast. A rejected operation leaves the board
// untouched and unsequenced.
func (bs *BoardState) Apply(op *Operation) (int64, error) {
	bs.mu.Lock()
	defer bs.mu.Unlock()

	if err := bs.applyLocked(op); err != nil {
		return 0, err
	}

	bs.serverSeq++
	bs.opLog = append(bs.opLog, *op)
	bs.dirty = true
	return bs.serverSeq, nil
}

func (bs *BoardState) applyLocked(op *Operation) error {
	switch op.Type {
	case OpShapeCreate:
		return bs.applyCreate(op)

	case OpShapeParams:
		if op.Params == nil {
			return errors.New("shape.params requires params")
		}
		return bs.shapes.UpdateByParams(op.ShapeID, *op.Params)

	case OpShapeVertex:
		if op.VertexIndex == nil || op.Vertex == nil {
			return errors.New("shape.vertex requires vertexIndex and vertex")
		}
		n, err := bs.vertexCount(op.ShapeID)
		if err != nil {
			return err
		}
		// Remote indices are untrusted input, not caller bugs; reject
		// rather than fail fast.
		if *op.VertexIndex < 0 || *op.VertexIndex >= n {
			return fmt.Errorf("vertex index %d out of range", *op.VertexIndex)
		}
		return bs.shapes.UpdateByVertexEdit(op.ShapeID, *op.VertexIndex, *op.Vertex)

	case OpShapeTranslate:
		return bs.shapes.Translate(op.ShapeID, op.DX, op.DY)

	case OpShapeDelete:
		return bs.shapes.Remove(op.ShapeID)

	case OpShapeStyle:
		if op.Style == nil {
			return errors.New("shape.style requires style")
		}
		return bs.shapes.SetStyle(op.ShapeID, *op.Style)

	case OpShapeVisibility:
		if op.Visible == nil {
			return errors.New("shape.visibility requires visible")
		}
		return bs.shapes.SetVisible(op.ShapeID, *op.Visible)

	case OpBoardClear:
		bs.shapes.Clear()
		return nil

	case OpBoardRename:
		if op.Name == "" {
			return errors.New("board.rename requires name")
		}
		bs.board.Name = op.Name
		return nil

	default:
		return fmt.Errorf("unknown operation type: %s", op.Type)
	}
}

func (bs *BoardState) applyCreate(op *Operation) error {
	if op.Params == nil {
		return errors.New("shape.create requires params")
	}
	style := shape.Style{}
	if op.Style != nil {
		style = *op.Style
	}
	if op.ShapeID == "" {
		op.ShapeID = typeid.NewShapeID()
	}
	createdAt := time.UnixMilli(op.Timestamp)
	if op.Timestamp == 0 {
		createdAt = time.Now()
	}
	return bs.shapes.Insert(op.ShapeID, *op.Params, style, true, createdAt)
}

func (bs *BoardState) vertexCount(shapeID string) (int, error) {
	obj, err := bs.shapes.Get(shapeID)
	if err != nil {
		return 0, err
	}
	return len(obj.Vertices), nil
}

// GetServerTimestamp returns the current server timestamp.
func GetServerTimestamp() int64 {
	return time.Now().UnixMilli()
}
