package collab

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/gridboard/gridboard/backend-go/internal/document"
	"github.com/gridboard/gridboard/backend-go/internal/typeid"
)

// saveInterval is how often dirty boards are flushed to snapshots while
// clients are connected.
const saveInterval = 30 * time.Second

// DocumentLoader fetches the latest persisted document for a board.
type DocumentLoader func(boardID string) (*document.BoardDocument, error)

// DocumentSaver persists a board document as a new snapshot.
type DocumentSaver func(boardID string, doc *document.BoardDocument) error

type Room struct {
	boardID  string
	clients  map[string]*Client // clientID -> client
	presence *PresenceManager
	state    *BoardState
}

func NewRoom(boardID string, state *BoardState) *Room {
	return &Room{
		boardID:  boardID,
		clients:  make(map[string]*Client),
		presence: NewPresenceManager(),
		state:    state,
	}
}

type Hub struct {
	mu         sync.RWMutex
	rooms      map[string]*Room // boardID -> room
	register   chan *Client
	unregister chan *Client
	stop       chan chan struct{}
	loader     DocumentLoader
	saver      DocumentSaver
}

func NewHub(loader DocumentLoader, saver DocumentSaver) *Hub {
	return &Hub{
		rooms:      make(map[string]*Room),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		stop:       make(chan chan struct{}),
		loader:     loader,
		saver:      saver,
	}
}

func (h *Hub) Run() {
	ticker := time.NewTicker(saveInterval)
	defer ticker.Stop()

	for {
		select {
		case client := <-h.register:
			h.addClient(client)
		case client := <-h.unregister:
			h.removeClient(client)
		case <-ticker.C:
			h.saveDirtyRooms()
			h.pruneStalePresence()
		case done := <-h.stop:
			h.saveDirtyRooms()
			close(done)
			return
		}
	}
}

// Register adds a client to its board's room, loading the board if the room
// does not exist yet.
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Stop flushes every dirty board and halts the hub loop.
func (h *Hub) Stop() {
	done := make(chan struct{})
	h.stop <- done
	<-done
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	room, ok := h.rooms[client.BoardID]
	if !ok {
		doc, err := h.loader(client.BoardID)
		if err != nil {
			h.mu.Unlock()
			slog.Error("load board", "board", client.BoardID, "error", err)
			client.SendError("board unavailable")
			client.closeSend()
			return
		}
		state, skipped := NewBoardState(doc)
		if skipped > 0 {
			slog.Warn("skipped invalid persisted shapes", "board", client.BoardID, "count", skipped)
		}
		room = NewRoom(client.BoardID, state)
		h.rooms[client.BoardID] = room
	}
	room.clients[client.ClientID] = client
	h.mu.Unlock()

	// Welcome + full document sync so the client starts from the
	// authoritative state.
	welcomePayload, _ := json.Marshal(WelcomePayload{
		ClientID:  client.ClientID,
		UserID:    client.UserID,
		ServerSeq: room.state.ServerSeq(),
	})
	client.Send(&Message{Type: TypeWelcome, BoardID: client.BoardID, Payload: welcomePayload})

	docPayload, err := json.Marshal(room.state.Document())
	if err != nil {
		slog.Error("marshal document", "board", client.BoardID, "error", err)
	} else {
		client.Send(&Message{Type: TypeDocSync, BoardID: client.BoardID, Payload: docPayload})
	}

	if stateMsg := room.presence.StateMessage(); stateMsg != nil {
		client.Send(stateMsg)
	}

	joinPayload, _ := json.Marshal(PresenceJoinPayload{
		UserID:      client.UserID,
		DisplayName: client.DisplayName,
	})
	joinMsg := &Message{
		Type:    TypePresenceJoin,
		UserID:  client.UserID,
		Payload: joinPayload,
	}
	h.broadcastToRoom(client.BoardID, joinMsg, client.ClientID)

	slog.Info("client joined", "user", client.UserID, "board", client.BoardID)
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	room, ok := h.rooms[client.BoardID]
	if !ok {
		h.mu.Unlock()
		client.closeSend()
		return
	}

	// A client rejected at admission still unregisters when its read pump
	// exits. It was never in the room, so there is nothing to evict or
	// announce, even if the room has since been created by someone else.
	if _, admitted := room.clients[client.ClientID]; !admitted {
		h.mu.Unlock()
		client.closeSend()
		return
	}

	delete(room.clients, client.ClientID)
	client.closeSend()
	room.presence.Remove(client.UserID)

	var emptied *Room
	if len(room.clients) == 0 {
		delete(h.rooms, client.BoardID)
		emptied = room
	}
	h.mu.Unlock()

	// Last client out: persist the room before dropping it.
	if emptied != nil && emptied.state.Dirty() {
		h.saveRoom(emptied)
	}

	leavePayload, _ := json.Marshal(PresenceLeavePayload{UserID: client.UserID})
	leaveMsg := &Message{
		Type:    TypePresenceLeave,
		UserID:  client.UserID,
		Payload: leavePayload,
	}
	h.broadcastToRoom(client.BoardID, leaveMsg, "")

	slog.Info("client left", "user", client.UserID, "board", client.BoardID)
}

func (h *Hub) handleMessage(sender *Client, msg *Message) {
	switch msg.Type {
	case TypePresenceUpdate:
		h.handlePresenceUpdate(sender, msg)
	case TypeOpSubmit:
		h.handleOpSubmit(sender, msg)
	default:
		slog.Warn("unknown message type", "type", msg.Type, "user", sender.UserID)
	}
}

func (h *Hub) handleOpSubmit(sender *Client, msg *Message) {
	var payload OperationSubmitPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		slog.Warn("invalid op payload", "error", err, "user", sender.UserID)
		return
	}
	op := payload.Operation

	// Operation ids come from untrusted clients. Assign one when missing,
	// reject anything that is not a well-formed op id.
	if op.ID == "" {
		op.ID = typeid.NewOpID()
	} else if err := typeid.Validate(op.ID, typeid.PrefixOp); err != nil {
		nack, _ := json.Marshal(OperationNackPayload{
			OperationID: op.ID,
			Reason:      "invalid operation id",
		})
		sender.Send(&Message{Type: TypeOpNack, Payload: nack})
		return
	}

	h.mu.RLock()
	room, ok := h.rooms[sender.BoardID]
	h.mu.RUnlock()
	if !ok {
		return
	}

	serverSeq, err := room.state.Apply(&op)
	if err != nil {
		nack, _ := json.Marshal(OperationNackPayload{
			OperationID: op.ID,
			Reason:      err.Error(),
		})
		sender.Send(&Message{Type: TypeOpNack, Payload: nack})
		return
	}

	ack, _ := json.Marshal(OperationAckPayload{
		OperationID:     op.ID,
		ShapeID:         op.ShapeID,
		ServerSeq:       serverSeq,
		ServerTimestamp: GetServerTimestamp(),
	})
	sender.Send(&Message{Type: TypeOpAck, Payload: ack})

	broadcast, _ := json.Marshal(OperationBroadcastPayload{
		Operation: op,
		UserID:    sender.UserID,
		ServerSeq: serverSeq,
	})
	h.broadcastToRoom(sender.BoardID, &Message{
		Type:    TypeOpBroadcast,
		UserID:  sender.UserID,
		Seq:     serverSeq,
		Payload: broadcast,
	}, sender.ClientID)
}

func (h *Hub) handlePresenceUpdate(sender *Client, msg *Message) {
	var presence PresencePayload
	if err := json.Unmarshal(msg.Payload, &presence); err != nil {
		slog.Warn("invalid presence payload", "error", err)
		return
	}

	presence.DisplayName = sender.DisplayName

	h.mu.RLock()
	room, ok := h.rooms[sender.BoardID]
	h.mu.RUnlock()
	if !ok {
		return
	}

	room.presence.Update(sender.UserID, &presence)

	outPayload, _ := json.Marshal(presence)
	outMsg := &Message{
		Type:    TypePresenceUpdate,
		UserID:  sender.UserID,
		Payload: outPayload,
	}
	h.broadcastToRoom(sender.BoardID, outMsg, sender.ClientID)
}

func (h *Hub) broadcastToRoom(boardID string, msg *Message, excludeClientID string) {
	h.mu.RLock()
	room, ok := h.rooms[boardID]
	if !ok {
		h.mu.RUnlock()
		return
	}

	clients := make([]*Client, 0, len(room.clients))
	for _, c := range room.clients {
		if c.ClientID != excludeClientID {
			clients = append(clients, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range clients {
		c.Send(msg)
	}
}

func (h *Hub) saveDirtyRooms() {
	h.mu.RLock()
	rooms := make([]*Room, 0, len(h.rooms))
	for _, room := range h.rooms {
		if room.state.Dirty() {
			rooms = append(rooms, room)
		}
	}
	h.mu.RUnlock()

	for _, room := range rooms {
		h.saveRoom(room)
	}
}

func (h *Hub) pruneStalePresence() {
	h.mu.RLock()
	rooms := make([]*Room, 0, len(h.rooms))
	for _, room := range h.rooms {
		rooms = append(rooms, room)
	}
	h.mu.RUnlock()

	for _, room := range rooms {
		if pruned := room.presence.Prune(); pruned > 0 {
			slog.Info("pruned stale presence", "board", room.boardID, "count", pruned)
		}
	}
}

func (h *Hub) saveRoom(room *Room) {
	if err := h.saver(room.boardID, room.state.Document()); err != nil {
		slog.Error("save board", "board", room.boardID, "error", err)
		return
	}
	room.state.MarkSaved()
	slog.Info("board saved", "board", room.boardID)
}
