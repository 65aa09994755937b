package collab

import (
	"encoding/json"

	"github.com/inamate/sketchboard/internal/document"
	"github.com/inamate/sketchboard/internal/engine"
)

type Message struct {
	Type     string          `json:"type"`
	BoardID  string          `json:"boardId,omitempty"`
	ClientID string          `json:"clientId,omitempty"`
	Seq      int64           `json:"seq,omitempty"`
	Payload  json.RawMessage `json:"payload"`
}

const (
	// Client → server
	TypeToolSet     = "tool.set"
	TypePointerDown = "pointer.down"
	TypePointerMove = "pointer.move"
	TypePointerUp   = "pointer.up"

	// Server → client
	TypeWelcome         = "welcome"
	TypeFrame           = "frame"
	TypeHover           = "hover"
	TypeGestureRejected = "gesture.rejected"
	TypeError           = "error"
)

type ToolPayload struct {
	Tool string `json:"tool"`
}

type PointerPayload struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type WelcomePayload struct {
	ClientID string           `json:"clientId"`
	Tool     string           `json:"tool"`
	Shapes   []document.Shape `json:"shapes"`
}

type FramePayload struct {
	Commands []engine.DrawCommand `json:"commands"`
}

type HoverPayload struct {
	Movable bool `json:"movable"`
}

type ErrorPayload struct {
	Reason string `json:"reason"`
}
