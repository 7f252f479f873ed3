package session

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/postcraft/postcraft/backend-go/internal/codegen"
	"github.com/postcraft/postcraft/backend-go/internal/codeparse"
	"github.com/postcraft/postcraft/backend-go/internal/engine"
	"github.com/postcraft/postcraft/backend-go/internal/store"
)

const persistTimeout = 5 * time.Second

type envelope struct {
	sender *Client
	msg    *Message
}

// Session owns the editor state for one canvas. All commands are applied by
// the Run goroutine, so at most one mutation is in flight at a time.
type Session struct {
	canvasID string
	state    *engine.State
	store    store.Store

	clients  map[string]*Client
	presence map[string]*PresencePayload

	join    chan *Client
	leave   chan *Client
	inbound chan envelope
	quit    chan chan struct{}
}

func NewSession(canvasID string, st *engine.State, storage store.Store) *Session {
	return &Session{
		canvasID: canvasID,
		state:    st,
		store:    storage,
		clients:  make(map[string]*Client),
		presence: make(map[string]*PresencePayload),
		join:     make(chan *Client),
		leave:    make(chan *Client),
		inbound:  make(chan envelope, 64),
		quit:     make(chan chan struct{}),
	}
}

func (s *Session) Run() {
	for {
		select {
		case client := <-s.join:
			s.addClient(client)
		case client := <-s.leave:
			s.removeClient(client)
		case env := <-s.inbound:
			s.handleMessage(env.sender, env.msg)
		case done := <-s.quit:
			s.persistNow()
			close(done)
			return
		}
	}
}

func (s *Session) addClient(client *Client) {
	s.clients[client.ClientID] = client

	payload, _ := json.Marshal(WelcomePayload{ClientID: client.ClientID, State: s.state})
	client.Send(&Message{Type: TypeWelcome, CanvasID: s.canvasID, Payload: payload})

	slog.Info("client joined", "user", client.UserID, "canvas", s.canvasID)
}

func (s *Session) removeClient(client *Client) {
	if _, ok := s.clients[client.ClientID]; !ok {
		return
	}
	delete(s.clients, client.ClientID)
	close(client.send)
	delete(s.presence, client.UserID)

	// A vanished pointer finishes any capture in progress.
	if s.state.Capture != nil {
		s.apply(engine.Command{Type: engine.CmdPointerLeave})
		s.broadcastState()
	}

	slog.Info("client left", "user", client.UserID, "canvas", s.canvasID)
}

func (s *Session) handleMessage(sender *Client, msg *Message) {
	switch msg.Type {
	case TypeCmdApply:
		var cmd engine.Command
		if err := json.Unmarshal(msg.Payload, &cmd); err != nil {
			s.sendError(sender, "invalid command payload")
			return
		}
		s.apply(cmd)
		s.broadcastState()

	case TypeCodeRequest:
		var req CodeRequestPayload
		if err := json.Unmarshal(msg.Payload, &req); err != nil {
			s.sendError(sender, "invalid code request payload")
			return
		}
		s.sendCode(sender, req.Dialect, req.Variant)

	case TypeCodeIngest:
		var req CodeIngestPayload
		if err := json.Unmarshal(msg.Payload, &req); err != nil {
			s.sendError(sender, "invalid ingest payload")
			return
		}
		if req.Source == "" {
			s.apply(engine.Command{Type: engine.CmdClearCanvas})
		} else {
			s.apply(engine.Command{Type: engine.CmdLoadCanvas, Canvas: codeparse.Ingest(req.Source)})
		}
		s.broadcastState()

	case TypePresenceUpdate:
		var p PresencePayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			return
		}
		p.DisplayName = sender.DisplayName
		s.presence[sender.UserID] = &p

	default:
		slog.Warn("unknown message type", "type", msg.Type, "user", sender.UserID)
	}
}

func (s *Session) apply(cmd engine.Command) {
	next, effects := engine.Apply(s.state, cmd)
	s.state = next

	for _, eff := range effects {
		switch e := eff.(type) {
		case engine.PersistSnapshot:
			go s.persist(e.Snapshot)
		}
	}
}

// persist writes a snapshot without blocking the command loop. The snapshot
// holds a deep copy of the canvas, so later commands cannot race the write.
func (s *Session) persist(snap engine.Snapshot) {
	data, err := engine.EncodeSnapshot(snap)
	if err != nil {
		slog.Error("encode snapshot", "error", err, "canvas", s.canvasID)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()
	if err := s.store.SaveSnapshot(ctx, s.canvasID, data); err != nil {
		slog.Error("persist snapshot", "error", err, "canvas", s.canvasID)
	}
}

func (s *Session) persistNow() {
	s.persist(engine.SnapshotOf(s.state))
}

func (s *Session) broadcastState() {
	payload, err := json.Marshal(StateSyncPayload{State: s.state})
	if err != nil {
		slog.Error("marshal state", "error", err, "canvas", s.canvasID)
		return
	}
	msg := &Message{Type: TypeStateSync, CanvasID: s.canvasID, Payload: payload}
	for _, c := range s.clients {
		c.Send(msg)
	}
}

func (s *Session) sendCode(client *Client, dialect, variant string) {
	code := codegen.Synthesize(s.state.Canvas, codegen.Dialect(dialect), codegen.Variant(variant))
	payload, _ := json.Marshal(CodeSyncPayload{Dialect: dialect, Variant: variant, Code: code})
	client.Send(&Message{Type: TypeCodeSync, CanvasID: s.canvasID, Payload: payload})
}

func (s *Session) sendError(client *Client, message string) {
	payload, _ := json.Marshal(ErrorPayload{Message: message})
	client.Send(&Message{Type: TypeError, CanvasID: s.canvasID, Payload: payload})
}
