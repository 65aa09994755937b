package engine

import (
	"encoding/json"
	"fmt"

	"github.com/inamate/sketchboard/internal/document"
)

const (
	defaultStroke      = "#000000"
	defaultStrokeWidth = 1.0
)

// Renderer turns the full ordered shape list into a fresh frame. Draw must
// clear the previous frame before drawing.
type Renderer interface {
	Draw(shapes []document.Shape) error
}

// RendererFunc adapts a function to the Renderer interface.
type RendererFunc func(shapes []document.Shape) error

func (f RendererFunc) Draw(shapes []document.Shape) error {
	return f(shapes)
}

// PathCommand represents a single path segment for rendering.
// Format matches Canvas2D: ["M", x, y], ["L", x, y], ["Z"].
type PathCommand []interface{}

// Describe derives the render path of a shape from its kind and points.
func Describe(shape document.Shape) ([]PathCommand, error) {
	switch shape.Kind {
	case document.KindLine:
		return []PathCommand{
			{"M", shape.X1, shape.Y1},
			{"L", shape.X2, shape.Y2},
		}, nil
	case document.KindRectangle:
		return []PathCommand{
			{"M", shape.X1, shape.Y1},
			{"L", shape.X2, shape.Y1},
			{"L", shape.X2, shape.Y2},
			{"L", shape.X1, shape.Y2},
			{"Z"},
		}, nil
	default:
		return nil, fmt.Errorf("describe shape %s: %w: %q", shape.ID, document.ErrInvalidShapeKind, shape.Kind)
	}
}

// DrawCommand represents a single drawing operation for the frontend to execute.
// The frontend receives a list of these and executes them on a Canvas2D context.
type DrawCommand struct {
	Op          string        `json:"op"`                    // "clear" or "path"
	ObjectID    string        `json:"objectId,omitempty"`    // For hit correlation
	Kind        string        `json:"kind,omitempty"`        // Shape kind
	Path        []PathCommand `json:"path,omitempty"`        // Path data for "path" ops
	Stroke      string        `json:"stroke,omitempty"`      // Stroke color
	StrokeWidth float64       `json:"strokeWidth,omitempty"` // Stroke width
}

type cachedPath struct {
	shape document.Shape
	path  []PathCommand
}

// CommandRenderer compiles frames of draw commands. Paths are derived lazily
// at draw time and reused while a shape's geometry is unchanged.
type CommandRenderer struct {
	cache  map[string]cachedPath
	frame  []DrawCommand
	frames int64

	// OnFrame, if set, receives every compiled frame.
	OnFrame func(seq int64, commands []DrawCommand)
}

func NewCommandRenderer() *CommandRenderer {
	return &CommandRenderer{
		cache: make(map[string]cachedPath),
		frame: []DrawCommand{{Op: "clear"}},
	}
}

// Draw compiles a complete frame in painter's order (creation order). A
// failing shape aborts the frame and the previous frame is kept.
func (r *CommandRenderer) Draw(shapes []document.Shape) error {
	commands := make([]DrawCommand, 0, len(shapes)+1)
	commands = append(commands, DrawCommand{Op: "clear"})

	for _, shape := range shapes {
		path, err := r.path(shape)
		if err != nil {
			return err
		}
		commands = append(commands, DrawCommand{
			Op:          "path",
			ObjectID:    shape.ID,
			Kind:        string(shape.Kind),
			Path:        path,
			Stroke:      defaultStroke,
			StrokeWidth: defaultStrokeWidth,
		})
	}

	r.frame = commands
	r.frames++
	if r.OnFrame != nil {
		r.OnFrame(r.frames, commands)
	}
	return nil
}

func (r *CommandRenderer) path(shape document.Shape) ([]PathCommand, error) {
	if c, ok := r.cache[shape.ID]; ok && c.shape == shape {
		return c.path, nil
	}
	path, err := Describe(shape)
	if err != nil {
		return nil, err
	}
	r.cache[shape.ID] = cachedPath{shape: shape, path: path}
	return path, nil
}

// Frame returns the most recently compiled frame.
func (r *CommandRenderer) Frame() []DrawCommand {
	return r.frame
}

// FrameCount returns how many frames have been compiled.
func (r *CommandRenderer) FrameCount() int64 {
	return r.frames
}

// DrawCommandsToJSON serializes draw commands to JSON.
func DrawCommandsToJSON(commands []DrawCommand) (string, error) {
	data, err := json.Marshal(commands)
	if err != nil {
		return "[]", err
	}
	return string(data), nil
}
