package export

import (
	"fmt"
	"image/png"
	"io"

	"github.com/jung-kurt/gofpdf"

	"github.com/inamate/sketchboard/internal/document"
	"github.com/inamate/sketchboard/internal/engine"
)

const pdfLineWidth = 1.0

// WritePDF writes the board as a single-page PDF sized to the canvas, one
// point per canvas pixel.
func WritePDF(w io.Writer, shapes []document.Shape, width, height int) error {
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: float64(width), Ht: float64(height)},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(pdfLineWidth)

	for _, s := range shapes {
		switch s.Kind {
		case document.KindLine:
			pdf.Line(s.X1, s.Y1, s.X2, s.Y2)
		case document.KindRectangle:
			b := s.Bounds()
			pdf.Rect(b.X, b.Y, b.Width, b.Height, "D")
		default:
			return fmt.Errorf("export shape %s: %w: %q", s.ID, document.ErrInvalidShapeKind, s.Kind)
		}
	}

	return pdf.Output(w)
}

// WritePNG rasterises the board onto a width x height canvas.
func WritePNG(w io.Writer, shapes []document.Shape, width, height int) error {
	r := engine.NewRasterRenderer(width, height)
	if err := r.Draw(shapes); err != nil {
		return err
	}
	return png.Encode(w, r.Image())
}
