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
	"github.com/jackc/pgx/v5"

	"github.com/gridboard/gridboard/backend-go/internal/auth"
	"github.com/gridboard/gridboard/backend-go/internal/board"
	"github.com/gridboard/gridboard/backend-go/internal/collab"
	"github.com/gridboard/gridboard/backend-go/internal/config"
	"github.com/gridboard/gridboard/backend-go/internal/db"
	"github.com/gridboard/gridboard/backend-go/internal/document"
	"github.com/gridboard/gridboard/backend-go/internal/export"
	mw "github.com/gridboard/gridboard/backend-go/internal/middleware"
	"github.com/gridboard/gridboard/backend-go/internal/typeid"
)

// playgroundBoardID is an ephemeral board anyone can join without an account.
const playgroundBoardID = "board_playground"

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})))

	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	queries := db.New(pool)

	authService := auth.NewService(queries, cfg.JWTSecret)
	authHandler := auth.NewHandler(authService)

	boardService := board.NewService(queries, cfg.CellSizePx)
	boardHandler := board.NewHandler(boardService)

	// Document loader for the collaboration hub
	docLoader := func(boardID string) (*document.BoardDocument, error) {
		// Use a background context since this runs in the hub goroutine
		snap, err := queries.GetLatestSnapshot(context.Background(), boardID)
		if err != nil {
			if boardID == playgroundBoardID && errors.Is(err, pgx.ErrNoRows) {
				return document.NewSampleDocument(playgroundBoardID), nil
			}
			return nil, err
		}
		var doc document.BoardDocument
		if err := json.Unmarshal(snap.Document, &doc); err != nil {
			return nil, err
		}
		return &doc, nil
	}

	// Document saver for the collaboration hub
	docSaver := func(boardID string, doc *document.BoardDocument) error {
		docJSON, err := json.Marshal(doc)
		if err != nil {
			return fmt.Errorf("marshal document: %w", err)
		}

		// Get current version to increment
		currentSnap, err := queries.GetLatestSnapshot(context.Background(), boardID)
		nextVersion := int32(1)
		if err == nil {
			nextVersion = currentSnap.Version + 1
		}

		_, err = queries.CreateSnapshot(context.Background(), db.CreateSnapshotParams{
			ID:       typeid.NewSnapshotID(),
			BoardID:  boardID,
			Version:  nextVersion,
			Document: docJSON,
		})
		if err != nil {
			return fmt.Errorf("create snapshot: %w", err)
		}

		// Renames arrive through the collaboration protocol and land in the
		// document. Keep the boards row in sync so listings show the new
		// name. The playground has no row; the update is a no-op there.
		if boardID != playgroundBoardID && doc.Board.Name != "" {
			if err := queries.RenameBoard(context.Background(), boardID, doc.Board.Name); err != nil {
				return fmt.Errorf("sync board name: %w", err)
			}
		}

		return nil
	}

	hub := collab.NewHub(docLoader, docSaver)
	go hub.Run()

	exportHandler := export.NewHandler()

	r := mux.NewRouter()

	// Global middleware
	r.Use(mw.Recovery)
	r.Use(mw.Logger)
	r.Use(mw.CORS(cfg.AllowedOrigins))

	// Auth routes (public)
	r.HandleFunc("/auth/register", authHandler.Register).Methods("POST")
	r.HandleFunc("/auth/login", authHandler.Login).Methods("POST")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Export endpoint (public — used by playground and authenticated users)
	r.HandleFunc("/export/svg", exportHandler.ExportSVG).Methods("POST", "OPTIONS")

	// Protected API routes
	api := r.PathPrefix("/api").Subrouter()
	api.Use(authService.AuthMiddleware)

	api.HandleFunc("/boards", boardHandler.List).Methods("GET")
	api.HandleFunc("/boards", boardHandler.Create).Methods("POST")
	api.HandleFunc("/boards/{boardId}", boardHandler.Get).Methods("GET")
	api.HandleFunc("/boards/{boardId}", boardHandler.Delete).Methods("DELETE")
	api.HandleFunc("/boards/{boardId}/invite", boardHandler.Invite).Methods("POST")
	api.HandleFunc("/boards/{boardId}/members", boardHandler.ListMembers).Methods("GET")
	api.HandleFunc("/boards/{boardId}/members/{userId}", boardHandler.RemoveMember).Methods("DELETE")
	api.HandleFunc("/boards/{boardId}/snapshots/latest", boardHandler.GetLatestSnapshot).Methods("GET")

	// WebSocket endpoint
	r.HandleFunc("/ws/board/{boardId}", func(w http.ResponseWriter, r *http.Request) {
		handleWebSocket(w, r, hub, authService, queries)
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down server")

		// Stop hub first to save all dirty boards
		slog.Info("saving all boards...")
		hub.Stop()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		srv.Shutdown(shutdownCtx)
	}()

	slog.Info("server starting", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}

func handleWebSocket(w http.ResponseWriter, r *http.Request, hub *collab.Hub, authSvc *auth.Service, queries *db.Queries) {
	vars := mux.Vars(r)
	boardID := vars["boardId"]

	var userID string
	var displayName string

	// Playground board allows anonymous access
	if boardID == playgroundBoardID {
		userID = "anon-" + uuid.New().String()[:8]
		displayName = "Anonymous"
	} else {
		// Auth via query param for real boards
		token := r.URL.Query().Get("token")
		if token == "" {
			http.Error(w, "missing token", http.StatusUnauthorized)
			return
		}

		var err error
		userID, err = authSvc.ValidateToken(token)
		if err != nil {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}

		// Check membership
		_, err = queries.GetBoardMember(r.Context(), db.GetBoardMemberParams{
			BoardID: boardID,
			UserID:  userID,
		})
		if err != nil {
			http.Error(w, "not a board member", http.StatusForbidden)
			return
		}

		// Get user display name
		user, err := authSvc.GetUser(r.Context(), userID)
		if err != nil {
			http.Error(w, "user not found", http.StatusInternalServerError)
			return
		}
		displayName = user.DisplayName
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"localhost:5173", "localhost:3000"},
	})
	if err != nil {
		slog.Error("websocket accept", "error", err)
		return
	}

	clientID := uuid.New().String()
	client := collab.NewClient(hub, conn, userID, displayName, boardID, clientID)

	hub.Register(client)

	ctx := r.Context()
	go client.WritePump(ctx)
	client.ReadPump(ctx)
}
