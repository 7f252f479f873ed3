package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/postcraft/postcraft/backend-go/internal/engine"
	"github.com/postcraft/postcraft/backend-go/internal/scene"
	"github.com/postcraft/postcraft/backend-go/internal/store"
)

// PlaygroundCanvasID is the shared anonymous canvas. It starts from the
// sample scene instead of an empty canvas.
const PlaygroundCanvasID = "canvas_playground"

// Hub tracks one Session per open canvas.
type Hub struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	store    store.Store

	register   chan *Client
	unregister chan *Client
}

func NewHub(st store.Store) *Hub {
	return &Hub{
		sessions:   make(map[string]*Session),
		store:      st,
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			session := h.getOrCreate(client.CanvasID)
			session.join <- client
		case client := <-h.unregister:
			h.mu.RLock()
			session, ok := h.sessions[client.CanvasID]
			h.mu.RUnlock()
			if ok {
				session.leave <- client
			}
		}
	}
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

func (h *Hub) route(sender *Client, msg *Message) {
	h.mu.RLock()
	session, ok := h.sessions[sender.CanvasID]
	h.mu.RUnlock()
	if !ok {
		return
	}
	session.inbound <- envelope{sender: sender, msg: msg}
}

func (h *Hub) getOrCreate(canvasID string) *Session {
	h.mu.Lock()
	defer h.mu.Unlock()

	if session, ok := h.sessions[canvasID]; ok {
		return session
	}

	session := NewSession(canvasID, h.loadState(canvasID), h.store)
	h.sessions[canvasID] = session
	go session.Run()
	return session
}

// loadState restores the latest snapshot for the canvas. Missing snapshots
// start fresh, the playground from the sample scene.
func (h *Hub) loadState(canvasID string) *engine.State {
	doc, err := h.store.LatestSnapshot(context.Background(), canvasID)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			slog.Error("load snapshot", "error", err, "canvas", canvasID)
		}
		if canvasID == PlaygroundCanvasID {
			return engine.NewState(scene.SampleCanvas(canvasID))
		}
		return engine.NewState(scene.DefaultCanvas(canvasID))
	}
	return engine.StateFromSnapshot(engine.DecodeSnapshot(doc), canvasID)
}

// Stop persists every open session and shuts its loop down.
func (h *Hub) Stop() {
	h.mu.Lock()
	sessions := make([]*Session, 0, len(h.sessions))
	for _, s := range h.sessions {
		sessions = append(sessions, s)
	}
	h.sessions = make(map[string]*Session)
	h.mu.Unlock()

	for _, s := range sessions {
		done := make(chan struct{})
		s.quit <- done
		<-done
	}
}
