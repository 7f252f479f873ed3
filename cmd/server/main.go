package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/postcraft/postcraft/backend-go/internal/auth"
	"github.com/postcraft/postcraft/backend-go/internal/config"
	"github.com/postcraft/postcraft/backend-go/internal/export"
	"github.com/postcraft/postcraft/backend-go/internal/media"
	mw "github.com/postcraft/postcraft/backend-go/internal/middleware"
	"github.com/postcraft/postcraft/backend-go/internal/session"
	"github.com/postcraft/postcraft/backend-go/internal/store"
	"github.com/postcraft/postcraft/backend-go/internal/typeid"
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})))

	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	st, err := store.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("open store", "error", err)
		os.Exit(1)
	}
	defer st.Close()

	authService := auth.NewService(st, cfg.JWTSecret)
	authHandler := auth.NewHandler(authService)

	hub := session.NewHub(st)
	go hub.Run()

	mediaHandler := media.NewHandler(cfg.MediaDir, st)
	exportHandler := export.NewHandler(st)

	origins := splitOrigins(cfg.AllowedOrigins)

	r := mux.NewRouter()

	// Global middleware
	r.Use(mw.Recovery)
	r.Use(mw.Logger)
	r.Use(mw.CORS(origins))

	// Auth routes (public)
	r.HandleFunc("/auth/register", authHandler.Register).Methods("POST")
	r.HandleFunc("/auth/login", authHandler.Login).Methods("POST")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Media endpoints (public so the playground can use them)
	r.HandleFunc("/media/upload", mediaHandler.Upload).Methods("POST", "OPTIONS")
	r.HandleFunc("/media", mediaHandler.List).Methods("GET")
	r.PathPrefix("/media/").Handler(mediaHandler.Serve()).Methods("GET")

	// Code download (public, same reason)
	r.HandleFunc("/export/{canvasId}", exportHandler.Download).Methods("GET")

	// Protected API routes
	api := r.PathPrefix("/api").Subrouter()
	api.Use(authService.RequireAuth)

	api.HandleFunc("/canvases/{canvasId}/snapshot", exportHandler.LatestSnapshot).Methods("GET")
	api.HandleFunc("/synthesize", exportHandler.Synthesize).Methods("POST")
	api.HandleFunc("/ingest", exportHandler.Ingest).Methods("POST")
	api.HandleFunc("/media/{mediaId}", mediaHandler.Delete).Methods("DELETE")

	// WebSocket endpoint
	r.HandleFunc("/ws/canvas/{canvasId}", func(w http.ResponseWriter, r *http.Request) {
		handleWebSocket(w, r, hub, authService, origins)
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

		// Stop the hub first to flush every open session to storage
		slog.Info("saving all canvases...")
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

func handleWebSocket(w http.ResponseWriter, r *http.Request, hub *session.Hub, authSvc *auth.Service, origins []string) {
	vars := mux.Vars(r)
	canvasID := vars["canvasId"]

	var userID string
	var displayName string

	// The playground canvas allows anonymous access
	if canvasID == session.PlaygroundCanvasID {
		userID = "anon-" + uuid.New().String()[:8]
		displayName = "Anonymous"
	} else {
		// Auth via query param for real canvases
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

		user, err := authSvc.GetUser(r.Context(), userID)
		if err != nil {
			http.Error(w, "user not found", http.StatusInternalServerError)
			return
		}
		displayName = user.DisplayName
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: originPatterns(origins),
	})
	if err != nil {
		slog.Error("websocket accept", "error", err)
		return
	}

	clientID := typeid.NewSessionID()
	client := session.NewClient(hub, conn, userID, displayName, canvasID, clientID)

	hub.Register(client)

	ctx := r.Context()
	go client.WritePump(ctx)
	client.ReadPump(ctx)
}

func splitOrigins(raw string) []string {
	var out []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// originPatterns strips schemes because websocket.AcceptOptions matches on
// host patterns, not full origins.
func originPatterns(origins []string) []string {
	out := make([]string, 0, len(origins))
	for _, o := range origins {
		o = strings.TrimPrefix(o, "http://")
		o = strings.TrimPrefix(o, "https://")
		out = append(out, o)
	}
	return out
}
