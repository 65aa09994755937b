package engine

import (
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"slices"

	"github.com/inamate/sketchboard/internal/document"
)

var (
	// ErrUnknownShapeID is returned when Replace targets an id the store does not hold.
	ErrUnknownShapeID = errors.New("unknown shape id")
	// ErrDuplicateShapeID is returned when Append would create a second record for an id.
	ErrDuplicateShapeID = errors.New("duplicate shape id")
)

// Store is the ordered shape list. Order is creation order and never changes.
// A Store is not safe for concurrent use; callers serialise events.
type Store struct {
	shapes   []document.Shape
	index    map[string]int // id -> position in shapes
	renderer Renderer
}

// NewStore creates an empty store that redraws through r after every
// mutation. r may be nil.
func NewStore(r Renderer) *Store {
	return &Store{
		index:    make(map[string]int),
		renderer: r,
	}
}

// Append adds a new shape at the end of the sequence.
func (s *Store) Append(shape document.Shape) error {
	if !shape.Kind.Valid() {
		return fmt.Errorf("append shape %s: %w: %q", shape.ID, document.ErrInvalidShapeKind, shape.Kind)
	}
	if _, ok := s.index[shape.ID]; ok {
		return fmt.Errorf("append shape: %w: %s", ErrDuplicateShapeID, shape.ID)
	}

	s.index[shape.ID] = len(s.shapes)
	s.shapes = append(s.shapes, shape)
	s.redraw()
	return nil
}

// Replace overwrites the shape with the given id in place.
func (s *Store) Replace(id string, shape document.Shape) error {
	i, ok := s.index[id]
	if !ok {
		return fmt.Errorf("replace shape: %w: %s", ErrUnknownShapeID, id)
	}
	if shape.ID != id {
		return fmt.Errorf("replace shape %s: replacement carries id %s", id, shape.ID)
	}
	if !shape.Kind.Valid() {
		return fmt.Errorf("replace shape %s: %w: %q", id, document.ErrInvalidShapeKind, shape.Kind)
	}

	s.shapes[i] = shape
	s.redraw()
	return nil
}

// Load appends every shape and redraws once for the whole batch.
func (s *Store) Load(shapes []document.Shape) error {
	seen := make(map[string]bool, len(shapes))
	for _, shape := range shapes {
		if !shape.Kind.Valid() {
			return fmt.Errorf("load shape %s: %w: %q", shape.ID, document.ErrInvalidShapeKind, shape.Kind)
		}
		if _, ok := s.index[shape.ID]; ok || seen[shape.ID] {
			return fmt.Errorf("load shape: %w: %s", ErrDuplicateShapeID, shape.ID)
		}
		seen[shape.ID] = true
	}
	for _, shape := range shapes {
		s.index[shape.ID] = len(s.shapes)
		s.shapes = append(s.shapes, shape)
	}
	s.redraw()
	return nil
}

// All returns a snapshot sequence of the shapes in creation order. The
// sequence may be ranged over any number of times.
func (s *Store) All() iter.Seq[document.Shape] {
	return slices.Values(s.Shapes())
}

// Shapes returns a copy of the shapes in creation order.
func (s *Store) Shapes() []document.Shape {
	return slices.Clone(s.shapes)
}

func (s *Store) Get(id string) (document.Shape, bool) {
	i, ok := s.index[id]
	if !ok {
		return document.Shape{}, false
	}
	return s.shapes[i], true
}

func (s *Store) Len() int {
	return len(s.shapes)
}

func (s *Store) redraw() {
	if s.renderer == nil {
		return
	}
	if err := s.renderer.Draw(s.Shapes()); err != nil {
		slog.Error("draw frame", "error", err, "shapes", len(s.shapes))
	}
}
