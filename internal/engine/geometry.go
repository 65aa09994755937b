package engine

import (
	"fmt"
	"iter"
	"math"

	"github.com/inamate/sketchboard/internal/document"
)

// LineTolerance is the slack, in pixels, allowed between |AB| and |AP|+|PB|
// when hit-testing a line segment.
const LineTolerance = 1.0

// Point is a canvas position in pointer-event coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Distance returns the Euclidean distance between p and q.
func Distance(p, q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// PointInShape reports whether (x, y) lies within a rectangle (edges included)
// or on a line segment within LineTolerance.
func PointInShape(x, y float64, shape document.Shape) (bool, error) {
	switch shape.Kind {
	case document.KindRectangle:
		return shape.Bounds().Contains(x, y), nil
	case document.KindLine:
		a := Point{shape.X1, shape.Y1}
		b := Point{shape.X2, shape.Y2}
		p := Point{x, y}
		offset := Distance(a, b) - (Distance(a, p) + Distance(b, p))
		return math.Abs(offset) < LineTolerance, nil
	default:
		return false, fmt.Errorf("hit-test shape %s: %w: %q", shape.ID, document.ErrInvalidShapeKind, shape.Kind)
	}
}

// FindShapeAt returns the first shape in sequence order containing (x, y).
// Earlier shapes win over later ones that overlap them.
func FindShapeAt(x, y float64, shapes iter.Seq[document.Shape]) (document.Shape, bool, error) {
	for shape := range shapes {
		hit, err := PointInShape(x, y, shape)
		if err != nil {
			return document.Shape{}, false, err
		}
		if hit {
			return shape, true, nil
		}
	}
	return document.Shape{}, false, nil
}
