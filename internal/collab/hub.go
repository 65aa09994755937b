package collab

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/inamate/sketchboard/internal/document"
	"github.com/inamate/sketchboard/internal/engine"
)

// ErrHubStopped is returned by queries issued after Stop.
var ErrHubStopped = errors.New("hub stopped")

// Room is one board: the shared shape list plus the clients drawing on it.
type Room struct {
	boardID  string
	store    *engine.Store
	renderer *engine.CommandRenderer
	clients  map[string]*Client // clientID -> client
}

func NewRoom(boardID string) *Room {
	room := &Room{
		boardID:  boardID,
		renderer: engine.NewCommandRenderer(),
		clients:  make(map[string]*Client),
	}
	room.renderer.OnFrame = room.broadcastFrame
	room.store = engine.NewStore(room.renderer)
	return room
}

func (r *Room) broadcastFrame(seq int64, commands []engine.DrawCommand) {
	payload, err := json.Marshal(FramePayload{Commands: commands})
	if err != nil {
		slog.Error("marshal frame", "error", err, "board", r.boardID)
		return
	}
	msg := &Message{Type: TypeFrame, BoardID: r.boardID, Seq: seq, Payload: payload}
	for _, c := range r.clients {
		c.Send(msg)
	}
}

type inbound struct {
	client *Client
	msg    *Message
}

// Hub owns every room. All room state is touched only by the Run goroutine,
// so pointer events are handled one at a time, each to completion.
type Hub struct {
	rooms       map[string]*Room // boardID -> room
	defaultTool engine.Tool

	register   chan *Client
	unregister chan *Client
	inbound    chan inbound
	calls      chan func()

	quit     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

func NewHub(defaultTool engine.Tool) *Hub {
	return &Hub{
		rooms:       make(map[string]*Room),
		defaultTool: defaultTool,
		register:    make(chan *Client),
		unregister:  make(chan *Client),
		inbound:     make(chan inbound, 64),
		calls:       make(chan func()),
		quit:        make(chan struct{}),
		done:        make(chan struct{}),
	}
}

func (h *Hub) Run() {
	defer close(h.done)
	for {
		select {
		case client := <-h.register:
			h.addClient(client)
		case client := <-h.unregister:
			h.removeClient(client)
		case in := <-h.inbound:
			h.handleMessage(in.client, in.msg)
		case fn := <-h.calls:
			fn()
		case <-h.quit:
			h.closeAll()
			return
		}
	}
}

// Stop ends the Run loop and disconnects every client.
func (h *Hub) Stop() {
	h.stopOnce.Do(func() { close(h.quit) })
	<-h.done
}

func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.done:
	}
}

func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Dispatch queues a client message for the hub goroutine. It reports false
// once the hub or ctx is done.
func (h *Hub) Dispatch(ctx context.Context, client *Client, msg *Message) bool {
	select {
	case h.inbound <- inbound{client: client, msg: msg}:
		return true
	case <-h.done:
		return false
	case <-ctx.Done():
		return false
	}
}

// do runs fn on the hub goroutine and waits for it.
func (h *Hub) do(ctx context.Context, fn func()) error {
	finished := make(chan struct{})
	call := func() {
		defer close(finished)
		fn()
	}
	select {
	case h.calls <- call:
	case <-h.done:
		return ErrHubStopped
	case <-ctx.Done():
		return ctx.Err()
	}
	<-finished
	return nil
}

// CreateBoard opens an empty board so it can be exported before anyone joins.
func (h *Hub) CreateBoard(ctx context.Context, boardID string) error {
	return h.do(ctx, func() { h.room(boardID) })
}

// Shapes returns a snapshot of a board's shapes in creation order.
func (h *Hub) Shapes(ctx context.Context, boardID string) ([]document.Shape, error) {
	var shapes []document.Shape
	found := false
	err := h.do(ctx, func() {
		if room, ok := h.rooms[boardID]; ok {
			shapes, found = room.store.Shapes(), true
		}
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%w: %s", document.ErrBoardNotFound, boardID)
	}
	return shapes, nil
}

// room returns the board's room, opening it on first use. Rooms outlive
// their clients for the life of the process.
func (h *Hub) room(boardID string) *Room {
	room, ok := h.rooms[boardID]
	if !ok {
		room = NewRoom(boardID)
		h.rooms[boardID] = room
		slog.Info("board opened", "board", boardID)
	}
	return room
}

func (h *Hub) addClient(client *Client) {
	room := h.room(client.BoardID)
	room.clients[client.ClientID] = client
	client.app = engine.NewAppContext(room.store, h.defaultTool)

	shapes := room.store.Shapes()
	if shapes == nil {
		shapes = []document.Shape{}
	}
	client.sendPayload(TypeWelcome, WelcomePayload{
		ClientID: client.ClientID,
		Tool:     string(client.app.Tool),
		Shapes:   shapes,
	})
	client.sendPayload(TypeFrame, FramePayload{Commands: room.renderer.Frame()})

	slog.Info("client joined", "client", client.ClientID, "board", client.BoardID)
}

func (h *Hub) removeClient(client *Client) {
	room, ok := h.rooms[client.BoardID]
	if !ok {
		return
	}
	if _, ok := room.clients[client.ClientID]; !ok {
		return
	}

	// A dropped connection ends its gesture as if the pointer was released.
	if client.app.Session.Active() {
		engine.PointerUp(client.app)
	}
	delete(room.clients, client.ClientID)
	// Messages still queued from this client are dropped by handleMessage.
	client.app = nil
	close(client.send)

	slog.Info("client left", "client", client.ClientID, "board", client.BoardID)
}

func (h *Hub) closeAll() {
	for _, room := range h.rooms {
		for id, c := range room.clients {
			delete(room.clients, id)
			close(c.send)
		}
	}
}

func (h *Hub) handleMessage(sender *Client, msg *Message) {
	if sender.app == nil {
		slog.Warn("message from unregistered client", "client", sender.ClientID, "type", msg.Type)
		return
	}

	switch msg.Type {
	case TypeToolSet:
		h.handleToolSet(sender, msg)
	case TypePointerDown, TypePointerMove:
		h.handlePointer(sender, msg)
	case TypePointerUp:
		engine.PointerUp(sender.app)
		h.setHover(sender, false)
	default:
		slog.Warn("unknown message type", "type", msg.Type, "client", sender.ClientID)
	}
}

func (h *Hub) handleToolSet(sender *Client, msg *Message) {
	var p ToolPayload
	if err := json.Unmarshal(msg.Payload, &p); err != nil {
		slog.Warn("invalid tool payload", "error", err)
		sender.sendPayload(TypeError, ErrorPayload{Reason: "invalid tool payload"})
		return
	}
	tool, err := engine.ParseTool(p.Tool)
	if err != nil {
		sender.sendPayload(TypeError, ErrorPayload{Reason: err.Error()})
		return
	}
	sender.app.Tool = tool
	if tool != engine.ToolSelection {
		h.setHover(sender, false)
	}
}

func (h *Hub) handlePointer(sender *Client, msg *Message) {
	var p PointerPayload
	if err := json.Unmarshal(msg.Payload, &p); err != nil {
		slog.Warn("invalid pointer payload", "error", err)
		sender.sendPayload(TypeError, ErrorPayload{Reason: "invalid pointer payload"})
		return
	}

	var (
		out engine.Outcome
		err error
	)
	if msg.Type == TypePointerDown {
		out, err = engine.PointerDown(sender.app, p.X, p.Y)
	} else {
		out, err = engine.PointerMove(sender.app, p.X, p.Y)
	}

	switch {
	case errors.Is(err, engine.ErrConcurrentGesture):
		sender.sendPayload(TypeGestureRejected, ErrorPayload{Reason: err.Error()})
		return
	case err != nil:
		slog.Error("pointer event", "error", err, "type", msg.Type, "client", sender.ClientID, "board", sender.BoardID)
		sender.sendPayload(TypeError, ErrorPayload{Reason: err.Error()})
		return
	}

	if msg.Type == TypePointerMove && sender.app.Tool == engine.ToolSelection && !sender.app.Session.Active() {
		h.setHover(sender, out.Hover)
	}
}

// setHover tells the client about a change of the movable affordance.
// client.hover always holds the value the client was last sent.
func (h *Hub) setHover(client *Client, movable bool) {
	if movable == client.hover {
		return
	}
	client.hover = movable
	client.sendPayload(TypeHover, HoverPayload{Movable: movable})
}
