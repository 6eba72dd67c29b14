package collab

import (
	"encoding/json"

	"github.com/gridboard/gridboard/backend-go/internal/geom"
	"github.com/gridboard/gridboard/backend-go/internal/shape"
)

type Message struct {
	Type     string          `json:"type"`
	BoardID  string          `json:"boardId,omitempty"`
	ClientID string          `json:"clientId,omitempty"`
	UserID   string          `json:"userId,omitempty"`
	Seq      int64           `json:"seq,omitempty"`
	Payload  json.RawMessage `json:"payload"`
}

type PresencePayload struct {
	Cursor      *geom.WorldPoint `json:"cursor,omitempty"`
	Selection   []string         `json:"selection,omitempty"`
	DisplayName string           `json:"displayName,omitempty"`
}

type PresenceStatePayload struct {
	Presences map[string]*PresencePayload `json:"presences"`
}

type WelcomePayload struct {
	ClientID  string `json:"clientId"`
	UserID    string `json:"userId"`
	ServerSeq int64  `json:"serverSeq"`
}

type PresenceJoinPayload struct {
	UserID      string `json:"userId"`
	DisplayName string `json:"displayName"`
}

type PresenceLeavePayload struct {
	UserID string `json:"userId"`
}

const (
	TypePresenceUpdate = "presence.update"
	TypePresenceState  = "presence.state"
	TypePresenceJoin   = "presence.join"
	TypePresenceLeave  = "presence.leave"
	TypeError          = "error"

	// Connection
	TypeWelcome = "welcome"

	// Document sync
	TypeDocSync = "doc.sync"

	// Operation message types
	TypeOpSubmit    = "op.submit"
	TypeOpAck       = "op.ack"
	TypeOpNack      = "op.nack"
	TypeOpBroadcast = "op.broadcast"
)

// Operation type tags. Every tag maps to exactly one object-store mutation;
// there is no other way a remote edit can touch a board.
const (
	OpShapeCreate     = "shape.create"
	OpShapeParams     = "shape.params"
	OpShapeVertex     = "shape.vertex"
	OpShapeTranslate  = "shape.translate"
	OpShapeDelete     = "shape.delete"
	OpShapeStyle      = "shape.style"
	OpShapeVisibility = "shape.visibility"
	OpBoardClear      = "board.clear"
	OpBoardRename     = "board.rename"
)

// Operation is a single board mutation submitted by a client.
type Operation struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	Timestamp int64  `json:"timestamp"`
	ClientSeq int64  `json:"clientSeq"`

	// Target shape; assigned by the server for shape.create.
	ShapeID string `json:"shapeId,omitempty"`

	// For shape.create / shape.params
	Params *shape.Params `json:"params,omitempty"`

	// For shape.create / shape.style
	Style *shape.Style `json:"style,omitempty"`

	// For shape.vertex
	VertexIndex *int             `json:"vertexIndex,omitempty"`
	Vertex      *geom.WorldPoint `json:"vertex,omitempty"`

	// For shape.translate (world-unit delta)
	DX float64 `json:"dx,omitempty"`
	DY float64 `json:"dy,omitempty"`

	// For shape.visibility
	Visible *bool `json:"visible,omitempty"`

	// For board.rename
	Name string `json:"name,omitempty"`
}

// OperationSubmitPayload is the payload for op.submit messages.
type OperationSubmitPayload struct {
	Operation Operation `json:"operation"`
}

// OperationAckPayload is the payload for op.ack messages.
type OperationAckPayload struct {
	OperationID     string `json:"operationId"`
	ShapeID         string `json:"shapeId,omitempty"`
	ServerSeq       int64  `json:"serverSeq"`
	ServerTimestamp int64  `json:"serverTimestamp"`
}

// OperationNackPayload is the payload for op.nack messages.
type OperationNackPayload struct {
	OperationID string `json:"operationId"`
	Reason      string `json:"reason"`
}

// OperationBroadcastPayload is the payload for op.broadcast messages.
type OperationBroadcastPayload struct {
	Operation Operation `json:"operation"`
	UserID    string    `json:"userId"`
	ServerSeq int64     `json:"serverSeq"`
}
