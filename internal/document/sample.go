package document

import "github.com/inamate/sketchboard/internal/typeid"

// NewSampleBoard returns a couple of shapes for demos and smoke tests. The
// rectangle is drawn right-to-left so its corners are un-normalised.
func NewSampleBoard() []Shape {
	return []Shape{
		{
			ID:   typeid.NewShapeID(),
			Kind: KindLine,
			X1:   80,
			Y1:   80,
			X2:   320,
			Y2:   200,
		},
		{
			ID:   typeid.NewShapeID(),
			Kind: KindRectangle,
			X1:   640,
			Y1:   120,
			X2:   420,
			Y2:   360,
		},
	}
}
