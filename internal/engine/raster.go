package engine

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/vector"

	"github.com/inamate/sketchboard/internal/document"
)

// RasterRenderer repaints an RGBA surface from scratch on every frame.
type RasterRenderer struct {
	Background  color.Color
	Stroke      color.Color
	StrokeWidth float64

	img    *image.RGBA
	raster *vector.Rasterizer
}

func NewRasterRenderer(width, height int) *RasterRenderer {
	return &RasterRenderer{
		Background:  color.White,
		Stroke:      color.Black,
		StrokeWidth: 2,
		img:         image.NewRGBA(image.Rect(0, 0, width, height)),
		raster:      vector.NewRasterizer(width, height),
	}
}

// Image returns the surface holding the last frame.
func (r *RasterRenderer) Image() *image.RGBA {
	return r.img
}

func (r *RasterRenderer) Draw(shapes []document.Shape) error {
	bounds := r.img.Bounds()
	draw.Draw(r.img, bounds, image.NewUniform(r.Background), image.Point{}, draw.Src)

	r.raster.Reset(bounds.Dx(), bounds.Dy())
	// Segments are clipped to the surface grown by one stroke width, so
	// huge coordinates never reach the float32 rasterizer.
	pad := r.StrokeWidth
	clip := document.Rect{
		X:      float64(bounds.Min.X) - pad,
		Y:      float64(bounds.Min.Y) - pad,
		Width:  float64(bounds.Dx()) + 2*pad,
		Height: float64(bounds.Dy()) + 2*pad,
	}
	for _, shape := range shapes {
		path, err := r.segments(shape)
		if err != nil {
			return err
		}
		for _, seg := range path {
			if a, b, ok := clipSegment(seg[0], seg[1], clip); ok {
				r.strokeSegment(a, b)
			}
		}
	}
	r.raster.Draw(r.img, bounds, image.NewUniform(r.Stroke), image.Point{})
	return nil
}

func (r *RasterRenderer) segments(shape document.Shape) ([][2]Point, error) {
	path, err := Describe(shape)
	if err != nil {
		return nil, err
	}

	var segs [][2]Point
	var start, cur Point
	for _, cmd := range path {
		switch cmd[0] {
		case "M":
			cur = Point{X: cmd[1].(float64), Y: cmd[2].(float64)}
			start = cur
		case "L":
			next := Point{X: cmd[1].(float64), Y: cmd[2].(float64)}
			segs = append(segs, [2]Point{cur, next})
			cur = next
		case "Z":
			segs = append(segs, [2]Point{cur, start})
			cur = start
		}
	}
	return segs, nil
}

// strokeSegment adds the quad covering a segment of the stroke width.
// Zero-length segments become a square dot so fresh shapes stay visible.
func (r *RasterRenderer) strokeSegment(a, b Point) {
	half := r.StrokeWidth / 2
	dx, dy := b.X-a.X, b.Y-a.Y
	length := math.Hypot(dx, dy)

	var nx, ny float64
	if length == 0 {
		nx, ny = 0, half
		a.X -= half
		b.X += half
	} else {
		nx, ny = -dy/length*half, dx/length*half
	}

	r.raster.MoveTo(float32(a.X+nx), float32(a.Y+ny))
	r.raster.LineTo(float32(b.X+nx), float32(b.Y+ny))
	r.raster.LineTo(float32(b.X-nx), float32(b.Y-ny))
	r.raster.LineTo(float32(a.X-nx), float32(a.Y-ny))
	r.raster.ClosePath()
}

// clipSegment trims a to b to the rect (Liang-Barsky). It reports false when
// no part of the segment lies inside.
func clipSegment(a, b Point, rect document.Rect) (Point, Point, bool) {
	dx, dy := b.X-a.X, b.Y-a.Y
	t0, t1 := 0.0, 1.0
	edges := [4][2]float64{
		{-dx, a.X - rect.X},
		{dx, rect.X + rect.Width - a.X},
		{-dy, a.Y - rect.Y},
		{dy, rect.Y + rect.Height - a.Y},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return a, b, false
			}
			continue
		}
		t := q / p
		if p < 0 {
			if t > t1 {
				return a, b, false
			}
			t0 = max(t0, t)
		} else {
			if t < t0 {
				return a, b, false
			}
			t1 = min(t1, t)
		}
	}
	return Point{X: a.X + t0*dx, Y: a.Y + t0*dy}, Point{X: a.X + t1*dx, Y: a.Y + t1*dy}, true
}
