package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/inamate/sketchboard/internal/collab"
	"github.com/inamate/sketchboard/internal/config"
	"github.com/inamate/sketchboard/internal/discovery"
	"github.com/inamate/sketchboard/internal/document"
	"github.com/inamate/sketchboard/internal/engine"
	"github.com/inamate/sketchboard/internal/export"
	"github.com/inamate/sketchboard/internal/typeid"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	defaultTool, err := engine.ParseTool(cfg.DefaultTool)
	if err != nil {
		slog.Error("invalid default tool", "error", err)
		os.Exit(1)
	}

	hub := collab.NewHub(defaultTool)
	go hub.Run()

	exportHandler := export.NewHandler(hub, cfg.CanvasWidth, cfg.CanvasHeight)

	r := mux.NewRouter()

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	r.HandleFunc("/boards", func(w http.ResponseWriter, r *http.Request) {
		boardID := typeid.NewBoardID()
		if err := hub.CreateBoard(r.Context(), boardID); err != nil {
			slog.Error("create board", "error", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]string{"id": boardID})
	}).Methods("POST")

	boards := r.PathPrefix("/boards/{boardId}").Subrouter()
	boards.Use(validBoardID)
	boards.HandleFunc("/shapes", func(w http.ResponseWriter, r *http.Request) {
		shapes, err := hub.Shapes(r.Context(), mux.Vars(r)["boardId"])
		if errors.Is(err, document.ErrBoardNotFound) {
			http.Error(w, "board not found", http.StatusNotFound)
			return
		}
		if err != nil {
			slog.Error("list shapes", "error", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		if shapes == nil {
			shapes = []document.Shape{}
		}
		writeJSON(w, http.StatusOK, shapes)
	}).Methods("GET")
	boards.HandleFunc("/export.pdf", exportHandler.ExportPDF).Methods("GET")
	boards.HandleFunc("/export.png", exportHandler.ExportPNG).Methods("GET")

	// WebSocket endpoint
	r.Handle("/ws/board/{boardId}", validBoardID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handleWebSocket(w, r, hub, cfg.AllowedOrigins)
	})))

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	if cfg.MDNSEnabled {
		mdnsServer, err := discovery.Advertise(cfg.MDNSInstance, cfg.Port)
		if err != nil {
			slog.Warn("mdns advertisement disabled", "error", err)
		} else {
			defer mdnsServer.Shutdown()
		}
	}

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down server")
		hub.Stop()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		srv.Shutdown(shutdownCtx)
	}()

	slog.Info("server starting", "addr", addr, "canvas", fmt.Sprintf("%dx%d", cfg.CanvasWidth, cfg.CanvasHeight))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}

func validBoardID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := typeid.Validate(mux.Vars(r)["boardId"], typeid.PrefixBoard); err != nil {
			http.Error(w, "invalid board id", http.StatusBadRequest)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Debug("write response", "error", err)
	}
}

func handleWebSocket(w http.ResponseWriter, r *http.Request, hub *collab.Hub, origins []string) {
	boardID := mux.Vars(r)["boardId"]

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: origins,
	})
	if err != nil {
		slog.Error("websocket accept", "error", err)
		return
	}

	clientID := uuid.New().String()
	client := collab.NewClient(hub, conn, boardID, clientID)

	hub.Register(client)

	ctx := r.Context()
	go client.WritePump(ctx)
	client.ReadPump(ctx)
}
