package document

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidShapeKind is returned when a shape carries a kind outside the
	// closed set of drawable kinds.
	ErrInvalidShapeKind = errors.New("invalid shape kind")
	// ErrBoardNotFound is returned when a board id names no live board.
	ErrBoardNotFound = errors.New("board not found")
)

type Kind string

const (
	KindLine      Kind = "line"
	KindRectangle Kind = "rectangle"
)

func (k Kind) Valid() bool {
	switch k {
	case KindLine, KindRectangle:
		return true
	default:
		return false
	}
}

func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if !k.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidShapeKind, s)
	}
	return k, nil
}

// Shape is a stored line or rectangle. (X1, Y1) is the anchor point and
// (X2, Y2) the free point. Rectangle corners are never normalised, so X1 may be
// greater than X2.
type Shape struct {
	ID   string  `json:"id"`
	Kind Kind    `json:"type"`
	X1   float64 `json:"x1"`
	Y1   float64 `json:"y1"`
	X2   float64 `json:"x2"`
	Y2   float64 `json:"y2"`
}

// NewShape builds a shape after checking its kind.
func NewShape(id string, kind Kind, x1, y1, x2, y2 float64) (Shape, error) {
	if !kind.Valid() {
		return Shape{}, fmt.Errorf("%w: %q", ErrInvalidShapeKind, kind)
	}
	return Shape{ID: id, Kind: kind, X1: x1, Y1: y1, X2: x2, Y2: y2}, nil
}

// WithFreePoint returns a copy with (X2, Y2) moved; the anchor stays put.
func (s Shape) WithFreePoint(x2, y2 float64) Shape {
	s.X2, s.Y2 = x2, y2
	return s
}

// MovedTo returns a copy whose anchor sits at (x1, y1) with the given extent.
func (s Shape) MovedTo(x1, y1, width, height float64) Shape {
	s.X1, s.Y1 = x1, y1
	s.X2, s.Y2 = x1+width, y1+height
	return s
}

// Size returns the signed extent from the anchor to the free point.
func (s Shape) Size() (float64, float64) {
	return s.X2 - s.X1, s.Y2 - s.Y1
}

// Bounds returns the axis-aligned box spanned by the two points.
func (s Shape) Bounds() Rect {
	minX, maxX := min(s.X1, s.X2), max(s.X1, s.X2)
	minY, maxY := min(s.Y1, s.Y2), max(s.Y1, s.Y2)
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// Rect represents an axis-aligned bounding box.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Contains checks if a point is inside the rect, edges included.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width && y >= r.Y && y <= r.Y+r.Height
}
