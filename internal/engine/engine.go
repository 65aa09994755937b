package engine

import (
	"encoding/json"

	"github.com/inamate/sketchboard/internal/document"
)

// Engine owns one board: the shape store, the interaction context driving it,
// and the command renderer the store redraws through.
// It processes commands from the frontend and returns query results.
type Engine struct {
	app      *AppContext
	store    *Store
	renderer *CommandRenderer
}

// NewEngine creates an engine with an empty board and the given tool selected.
func NewEngine(tool Tool) *Engine {
	renderer := NewCommandRenderer()
	store := NewStore(renderer)
	return &Engine{
		app:      NewAppContext(store, tool),
		store:    store,
		renderer: renderer,
	}
}

// --- Commands (frontend → backend) ---

// SetTool changes the tool read at the next pointer-down.
func (e *Engine) SetTool(name string) error {
	tool, err := ParseTool(name)
	if err != nil {
		return err
	}
	e.app.Tool = tool
	return nil
}

func (e *Engine) PointerDown(x, y float64) (Outcome, error) {
	return PointerDown(e.app, x, y)
}

func (e *Engine) PointerMove(x, y float64) (Outcome, error) {
	return PointerMove(e.app, x, y)
}

func (e *Engine) PointerUp() Outcome {
	return PointerUp(e.app)
}

// LoadSampleBoard appends the built-in sample shapes.
func (e *Engine) LoadSampleBoard() error {
	return e.store.Load(document.NewSampleBoard())
}

// --- Queries (frontend ← backend) ---

// Render returns the latest frame of draw commands as JSON.
func (e *Engine) Render() string {
	result, _ := DrawCommandsToJSON(e.renderer.Frame())
	return result
}

// HitTest returns the id of the first shape under (x, y), or empty string.
func (e *Engine) HitTest(x, y float64) string {
	shape, ok, err := FindShapeAt(x, y, e.store.All())
	if err != nil || !ok {
		return ""
	}
	return shape.ID
}

// GetShapes returns the shape list as JSON.
func (e *Engine) GetShapes() string {
	shapes := e.store.Shapes()
	if shapes == nil {
		shapes = []document.Shape{}
	}
	data, _ := json.Marshal(shapes)
	return string(data)
}

// GetSession returns the gesture state as JSON.
func (e *Engine) GetSession() string {
	s := e.app.Session
	data, _ := json.Marshal(map[string]interface{}{
		"mode":          s.Mode.String(),
		"activeShapeId": s.ActiveShapeID,
		"dragAnchor":    s.DragAnchor,
	})
	return string(data)
}

func (e *Engine) GetTool() string {
	return string(e.app.Tool)
}

// GetFrameCount returns the number of frames drawn so far.
func (e *Engine) GetFrameCount() int64 {
	return e.renderer.FrameCount()
}

// Shapes returns a copy of the shape list.
func (e *Engine) Shapes() []document.Shape {
	return e.store.Shapes()
}

// Session returns the gesture state.
func (e *Engine) Session() Session {
	return e.app.Session
}
