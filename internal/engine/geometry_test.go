package engine

import (
	"errors"
	"slices"
	"testing"

	"github.com/inamate/sketchboard/internal/document"
)

func rect(id string, x1, y1, x2, y2 float64) document.Shape {
	return document.Shape{ID: id, Kind: document.KindRectangle, X1: x1, Y1: y1, X2: x2, Y2: y2}
}

func line(id string, x1, y1, x2, y2 float64) document.Shape {
	return document.Shape{ID: id, Kind: document.KindLine, X1: x1, Y1: y1, X2: x2, Y2: y2}
}

func TestDistance(t *testing.T) {
	if got := Distance(Point{0, 0}, Point{3, 4}); got != 5 {
		t.Fatalf("Distance = %v, want 5", got)
	}
	if got := Distance(Point{-2, 7}, Point{-2, 7}); got != 0 {
		t.Fatalf("Distance to self = %v, want 0", got)
	}
}

func TestPointInRectangleAnyCornerOrder(t *testing.T) {
	shapes := []document.Shape{
		rect("a", 10, 20, 50, 80),
		rect("b", 50, 80, 10, 20),
		rect("c", 50, 20, 10, 80),
		rect("d", 10, 80, 50, 20),
	}
	inside := []Point{{11, 21}, {30, 50}, {49, 79}, {10, 20}, {50, 80}}
	outside := []Point{{9, 50}, {51, 50}, {30, 19}, {30, 81}}

	for _, s := range shapes {
		for _, p := range inside {
			hit, err := PointInShape(p.X, p.Y, s)
			if err != nil || !hit {
				t.Errorf("%s: expected %v inside, got %v (%v)", s.ID, p, hit, err)
			}
		}
		for _, p := range outside {
			hit, err := PointInShape(p.X, p.Y, s)
			if err != nil || hit {
				t.Errorf("%s: expected %v outside, got %v (%v)", s.ID, p, hit, err)
			}
		}
	}
}

func TestPointOnLineSegment(t *testing.T) {
	l := line("l", 0, 0, 100, 40)
	for i := 0; i <= 20; i++ {
		tt := float64(i) / 20
		x, y := l.X1+tt*(l.X2-l.X1), l.Y1+tt*(l.Y2-l.Y1)
		hit, err := PointInShape(x, y, l)
		if err != nil || !hit {
			t.Errorf("expected (%v, %v) on segment, got %v (%v)", x, y, hit, err)
		}
	}
}

func TestPointOffLineSegment(t *testing.T) {
	tests := []struct {
		name string
		l    document.Shape
		p    Point
	}{
		{"beyond end on same line", line("l", 0, 0, 100, 40), Point{110, 44}},
		{"before start on same line", line("l", 0, 0, 100, 40), Point{-10, -4}},
		{"perpendicular off midpoint", line("l", 0, 0, 10, 0), Point{5, 5}},
		{"perpendicular off endpoint", line("l", 0, 0, 100, 0), Point{0, 2}},
		{"far away", line("l", 0, 0, 10, 10), Point{200, -30}},
	}
	for _, tt := range tests {
		hit, err := PointInShape(tt.p.X, tt.p.Y, tt.l)
		if err != nil {
			t.Fatalf("%s: %v", tt.name, err)
		}
		if hit {
			t.Errorf("%s: %v unexpectedly hit", tt.name, tt.p)
		}
	}
}

func TestPointInZeroLengthLine(t *testing.T) {
	l := line("l", 10, 10, 10, 10)
	if hit, _ := PointInShape(10, 10, l); !hit {
		t.Error("expected the single point to hit")
	}
	if hit, _ := PointInShape(12, 10, l); hit {
		t.Error("expected a point 2px away to miss")
	}
}

func TestPointInShapeUnknownKind(t *testing.T) {
	s := document.Shape{ID: "x", Kind: document.Kind("ellipse")}
	if _, err := PointInShape(0, 0, s); !errors.Is(err, document.ErrInvalidShapeKind) {
		t.Fatalf("expected ErrInvalidShapeKind, got %v", err)
	}
}

func TestFindShapeAtPrefersEarliest(t *testing.T) {
	shapes := []document.Shape{
		rect("a", 0, 0, 20, 20),
		rect("b", 10, 10, 30, 30),
	}
	got, ok, err := FindShapeAt(15, 15, slices.Values(shapes))
	if err != nil || !ok {
		t.Fatalf("expected a hit, got ok=%v err=%v", ok, err)
	}
	if got.ID != "a" {
		t.Fatalf("FindShapeAt returned %s, want a", got.ID)
	}

	got, ok, _ = FindShapeAt(25, 25, slices.Values(shapes))
	if !ok || got.ID != "b" {
		t.Fatalf("expected b at (25,25), got %v %v", got.ID, ok)
	}
}

func TestFindShapeAtMiss(t *testing.T) {
	shapes := []document.Shape{rect("a", 0, 0, 20, 20), line("b", 40, 40, 80, 40)}
	if _, ok, err := FindShapeAt(60, 60, slices.Values(shapes)); ok || err != nil {
		t.Fatalf("expected miss, got ok=%v err=%v", ok, err)
	}
	if _, ok, _ := FindShapeAt(0, 0, slices.Values([]document.Shape(nil))); ok {
		t.Fatal("expected miss on empty sequence")
	}
}

func TestFindShapeAtReportsInvalidKind(t *testing.T) {
	shapes := []document.Shape{{ID: "bad", Kind: "blob"}, rect("a", 0, 0, 20, 20)}
	if _, _, err := FindShapeAt(5, 5, slices.Values(shapes)); !errors.Is(err, document.ErrInvalidShapeKind) {
		t.Fatalf("expected ErrInvalidShapeKind, got %v", err)
	}
}

func TestLineToleranceBoundary(t *testing.T) {
	if LineTolerance != 1.0 {
		t.Fatalf("LineTolerance = %v", LineTolerance)
	}
	// Slack of exactly the tolerance is a miss: P on the extension 0.5px
	// past B gives |AB| - (|AP| + |BP|) = -1.
	l := line("l", 0, 0, 10, 0)
	if hit, _ := PointInShape(10.5, 0, l); hit {
		t.Error("expected miss at exactly the tolerance")
	}
	if hit, _ := PointInShape(10.4, 0, l); !hit {
		t.Error("expected hit inside the tolerance")
	}
}
