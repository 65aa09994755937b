package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/inamate/sketchboard/internal/document"
)

// ShapeSource yields a snapshot of a board's shapes. Unknown boards report
// document.ErrBoardNotFound.
type ShapeSource interface {
	Shapes(ctx context.Context, boardID string) ([]document.Shape, error)
}

type Handler struct {
	source ShapeSource
	width  int
	height int
}

func NewHandler(source ShapeSource, width, height int) *Handler {
	return &Handler{source: source, width: width, height: height}
}

func (h *Handler) ExportPDF(w http.ResponseWriter, r *http.Request) {
	h.export(w, r, "application/pdf", "pdf", WritePDF)
}

func (h *Handler) ExportPNG(w http.ResponseWriter, r *http.Request) {
	h.export(w, r, "image/png", "png", WritePNG)
}

type writeFunc func(w io.Writer, shapes []document.Shape, width, height int) error

func (h *Handler) export(w http.ResponseWriter, r *http.Request, contentType, ext string, write writeFunc) {
	boardID := mux.Vars(r)["boardId"]

	shapes, err := h.source.Shapes(r.Context(), boardID)
	if errors.Is(err, document.ErrBoardNotFound) {
		http.Error(w, "board not found", http.StatusNotFound)
		return
	}
	if err != nil {
		slog.Error("load board for export", "error", err, "board", boardID)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	// Render fully before writing headers so failures still get a 500.
	var buf bytes.Buffer
	if err := write(&buf, shapes, h.width, h.height); err != nil {
		slog.Error("export board", "error", err, "board", boardID, "format", ext)
		http.Error(w, "export failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.%s"`, boardID, ext))
	if _, err := w.Write(buf.Bytes()); err != nil {
		slog.Debug("write export", "error", err, "board", boardID)
	}
	slog.Info("board exported", "board", boardID, "format", ext, "shapes", len(shapes), "bytes", buf.Len())
}
