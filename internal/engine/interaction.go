package engine

import (
	"errors"
	"fmt"
	"math"

	"github.com/inamate/sketchboard/internal/document"
	"github.com/inamate/sketchboard/internal/typeid"
)

var (
	// ErrConcurrentGesture is returned for a pointer-down while a gesture is
	// already in progress. The in-progress gesture is left untouched.
	ErrConcurrentGesture = errors.New("gesture already in progress")
	// ErrInvalidPoint is returned for NaN or infinite pointer coordinates.
	ErrInvalidPoint = errors.New("invalid pointer coordinates")
	// ErrInvalidTool is returned when selecting a tool outside the known set.
	ErrInvalidTool = errors.New("invalid tool")
)

// Tool is the externally selected pointer tool.
type Tool string

const (
	ToolSelection Tool = "selection"
	ToolLine      Tool = "line"
	ToolRectangle Tool = "rectangle"
)

func ParseTool(s string) (Tool, error) {
	switch t := Tool(s); t {
	case ToolSelection, ToolLine, ToolRectangle:
		return t, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidTool, s)
	}
}

// Kind returns the shape kind a drawing tool creates.
func (t Tool) Kind() (document.Kind, bool) {
	switch t {
	case ToolLine:
		return document.KindLine, true
	case ToolRectangle:
		return document.KindRectangle, true
	default:
		return "", false
	}
}

type Mode int

const (
	ModeIdle Mode = iota
	ModeDrawing
	ModeMoving
)

func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "idle"
	case ModeDrawing:
		return "drawing"
	case ModeMoving:
		return "moving"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Session is the state of the gesture in progress, if any.
type Session struct {
	Mode          Mode
	ActiveShapeID string

	// DragAnchor is the pointer offset from the dragged shape's (X1, Y1).
	DragAnchor Point

	// extent of the dragged shape, captured once at pointer-down
	dragWidth  float64
	dragHeight float64
}

// Active reports whether a gesture is in progress.
func (s Session) Active() bool {
	return s.Mode != ModeIdle
}

// AppContext carries everything the state machine reads and mutates for one
// pointer stream.
type AppContext struct {
	Tool    Tool
	Session Session
	Store   *Store

	// NewID allocates shape ids; defaults to typeid shape ids.
	NewID func() string
}

// NewAppContext returns an idle context drawing into store.
func NewAppContext(store *Store, tool Tool) *AppContext {
	return &AppContext{
		Tool:  tool,
		Store: store,
		NewID: typeid.NewShapeID,
	}
}

// Outcome reports what handling a pointer event did.
type Outcome struct {
	// Mutated is true when the store changed (and therefore redrew).
	Mutated bool
	// Hover is the advisory "movable" affordance: the selection tool is
	// active, no gesture is running, and a shape lies under the pointer.
	Hover bool
}

// PointerDown starts a gesture: selecting and dragging a shape with the
// selection tool, or creating a zero-length shape with a drawing tool.
func PointerDown(app *AppContext, x, y float64) (Outcome, error) {
	if err := checkPoint(x, y); err != nil {
		return Outcome{}, err
	}
	if app.Session.Active() {
		return Outcome{}, fmt.Errorf("pointer down at (%g, %g): %w: %s %s",
			x, y, ErrConcurrentGesture, app.Session.Mode, app.Session.ActiveShapeID)
	}

	if app.Tool == ToolSelection {
		shape, ok, err := FindShapeAt(x, y, app.Store.All())
		if err != nil || !ok {
			return Outcome{}, err
		}
		width, height := shape.Size()
		app.Session = Session{
			Mode:          ModeMoving,
			ActiveShapeID: shape.ID,
			DragAnchor:    Point{X: x - shape.X1, Y: y - shape.Y1},
			dragWidth:     width,
			dragHeight:    height,
		}
		return Outcome{}, nil
	}

	kind, ok := app.Tool.Kind()
	if !ok {
		return Outcome{}, fmt.Errorf("pointer down: %w: %q", ErrInvalidTool, app.Tool)
	}
	shape, err := document.NewShape(app.newID(), kind, x, y, x, y)
	if err != nil {
		return Outcome{}, err
	}
	if err := app.Store.Append(shape); err != nil {
		return Outcome{}, err
	}
	app.Session = Session{Mode: ModeDrawing, ActiveShapeID: shape.ID}
	return Outcome{Mutated: true}, nil
}

// PointerMove extends the shape being drawn, translates the shape being
// dragged, or reports hover feedback when no gesture is active.
func PointerMove(app *AppContext, x, y float64) (Outcome, error) {
	if err := checkPoint(x, y); err != nil {
		return Outcome{}, err
	}

	switch app.Session.Mode {
	case ModeDrawing:
		shape, err := app.activeShape()
		if err != nil {
			return Outcome{}, err
		}
		if err := app.Store.Replace(shape.ID, shape.WithFreePoint(x, y)); err != nil {
			return Outcome{}, err
		}
		return Outcome{Mutated: true}, nil

	case ModeMoving:
		shape, err := app.activeShape()
		if err != nil {
			return Outcome{}, err
		}
		s := app.Session
		moved := shape.MovedTo(x-s.DragAnchor.X, y-s.DragAnchor.Y, s.dragWidth, s.dragHeight)
		if err := app.Store.Replace(shape.ID, moved); err != nil {
			return Outcome{}, err
		}
		return Outcome{Mutated: true}, nil
	}

	if app.Tool != ToolSelection {
		return Outcome{}, nil
	}
	_, hover, err := FindShapeAt(x, y, app.Store.All())
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{Hover: hover}, nil
}

// PointerUp ends the active gesture. Corners are committed as drawn.
func PointerUp(app *AppContext) Outcome {
	app.Session = Session{}
	return Outcome{}
}

func (app *AppContext) activeShape() (document.Shape, error) {
	id := app.Session.ActiveShapeID
	shape, ok := app.Store.Get(id)
	if !ok {
		return document.Shape{}, fmt.Errorf("%s gesture: %w: %s", app.Session.Mode, ErrUnknownShapeID, id)
	}
	return shape, nil
}

func (app *AppContext) newID() string {
	if app.NewID != nil {
		return app.NewID()
	}
	return typeid.NewShapeID()
}

func checkPoint(x, y float64) error {
	if math.IsNaN(x) || math.IsNaN(y) || math.IsInf(x, 0) || math.IsInf(y, 0) {
		return fmt.Errorf("%w: (%g, %g)", ErrInvalidPoint, x, y)
	}
	return nil
}
