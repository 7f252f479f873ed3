package session

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/postcraft/postcraft/backend-go/internal/engine"
	"github.com/postcraft/postcraft/backend-go/internal/scene"
	"github.com/postcraft/postcraft/backend-go/internal/store"
)

// memStore is an in-memory Store for session tests.
type memStore struct {
	mu        sync.Mutex
	snapshots map[string][]json.RawMessage
}

func newMemStore() *memStore {
	return &memStore{snapshots: make(map[string][]json.RawMessage)}
}

func (m *memStore) SaveSnapshot(ctx context.Context, canvasID string, document json.RawMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snapshots[canvasID] = append(m.snapshots[canvasID], document)
	return nil
}

func (m *memStore) LatestSnapshot(ctx context.Context, canvasID string) (json.RawMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	snaps := m.snapshots[canvasID]
	if len(snaps) == 0 {
		return nil, store.ErrNotFound
	}
	return snaps[len(snaps)-1], nil
}

func (m *memStore) saveCount(canvasID string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.snapshots[canvasID])
}

func (m *memStore) CreateUser(ctx context.Context, u store.User) error { return nil }
func (m *memStore) GetUserByEmail(ctx context.Context, email string) (store.User, error) {
	return store.User{}, store.ErrNotFound
}
func (m *memStore) GetUserByID(ctx context.Context, id string) (store.User, error) {
	return store.User{}, store.ErrNotFound
}
func (m *memStore) PutMedia(ctx context.Context, item engine.MediaItem) error { return nil }
func (m *memStore) ListMedia(ctx context.Context) ([]engine.MediaItem, error) { return nil, nil }
func (m *memStore) DeleteMedia(ctx context.Context, id string) error          { return nil }
func (m *memStore) Close() error                                              { return nil }

func testClient(id string) *Client {
	return &Client{
		send:        make(chan []byte, 16),
		UserID:      "user_" + id,
		DisplayName: "User " + id,
		CanvasID:    "canvas_test",
		ClientID:    id,
	}
}

func receive(t *testing.T, c *Client) Message {
	t.Helper()
	select {
	case data := <-c.send:
		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		return msg
	case <-time.After(time.Second):
		t.Fatal("no message received")
		return Message{}
	}
}

func newTestSession() (*Session, *memStore) {
	st := newMemStore()
	s := NewSession("canvas_test", engine.NewState(scene.DefaultCanvas("canvas_test")), st)
	return s, st
}

func TestJoinSendsWelcome(t *testing.T) {
	s, _ := newTestSession()
	c := testClient("c1")

	s.addClient(c)

	msg := receive(t, c)
	if msg.Type != TypeWelcome {
		t.Fatalf("type = %q, want welcome", msg.Type)
	}
	var p WelcomePayload
	if err := json.Unmarshal(msg.Payload, &p); err != nil {
		t.Fatal(err)
	}
	if p.ClientID != "c1" || p.State == nil || p.State.Canvas.ID != "canvas_test" {
		t.Errorf("payload = %+v", p)
	}
}

func TestCommandBroadcastsToAllClients(t *testing.T) {
	s, _ := newTestSession()
	c1, c2 := testClient("c1"), testClient("c2")
	s.addClient(c1)
	s.addClient(c2)
	receive(t, c1)
	receive(t, c2)

	cmd, _ := json.Marshal(engine.Command{
		Type:    engine.CmdAddElement,
		Element: &scene.Element{Kind: scene.KindText, Content: "hi"},
	})
	s.handleMessage(c1, &Message{Type: TypeCmdApply, Payload: cmd})

	for _, c := range []*Client{c1, c2} {
		msg := receive(t, c)
		if msg.Type != TypeStateSync {
			t.Fatalf("type = %q, want state.sync", msg.Type)
		}
		var p StateSyncPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			t.Fatal(err)
		}
		if len(p.State.Canvas.Elements) != 1 {
			t.Errorf("synced canvas has %d elements", len(p.State.Canvas.Elements))
		}
	}
}

func TestCodeRequestRepliesToSenderOnly(t *testing.T) {
	s, _ := newTestSession()
	c1, c2 := testClient("c1"), testClient("c2")
	s.addClient(c1)
	s.addClient(c2)
	receive(t, c1)
	receive(t, c2)

	req, _ := json.Marshal(CodeRequestPayload{Dialect: "markup"})
	s.handleMessage(c1, &Message{Type: TypeCodeRequest, Payload: req})

	msg := receive(t, c1)
	if msg.Type != TypeCodeSync {
		t.Fatalf("type = %q", msg.Type)
	}
	var p CodeSyncPayload
	if err := json.Unmarshal(msg.Payload, &p); err != nil {
		t.Fatal(err)
	}
	if p.Dialect != "markup" || p.Code == "" {
		t.Errorf("payload = %+v", p)
	}

	select {
	case <-c2.send:
		t.Error("code.sync leaked to a non-requesting client")
	default:
	}
}

func TestIngestEmptySourceClearsCanvas(t *testing.T) {
	s, _ := newTestSession()
	c := testClient("c1")
	s.addClient(c)
	receive(t, c)

	s.state.Canvas.Add(&scene.Element{ID: "el_x", Kind: scene.KindShape, Visible: true, ZIndex: 1})

	req, _ := json.Marshal(CodeIngestPayload{Source: ""})
	s.handleMessage(c, &Message{Type: TypeCodeIngest, Payload: req})

	receive(t, c)
	if len(s.state.Canvas.Elements) != 0 {
		t.Error("empty ingest did not clear the canvas")
	}
}

func TestIngestSourceReplacesCanvas(t *testing.T) {
	s, _ := newTestSession()
	c := testClient("c1")
	s.addClient(c)
	receive(t, c)

	src := `<div style={{ position: 'relative', width: 640, height: 480 }}>
  <p style={{ position: 'absolute', left: 10, top: 10 }}>imported</p>
</div>`
	req, _ := json.Marshal(CodeIngestPayload{Source: src})
	s.handleMessage(c, &Message{Type: TypeCodeIngest, Payload: req})

	receive(t, c)
	if s.state.Canvas.Width != 640 || len(s.state.Canvas.Elements) != 1 {
		t.Errorf("canvas = %dx%d with %d elements", s.state.Canvas.Width, s.state.Canvas.Height, len(s.state.Canvas.Elements))
	}
}

func TestInvalidPayloadSendsError(t *testing.T) {
	s, _ := newTestSession()
	c := testClient("c1")
	s.addClient(c)
	receive(t, c)

	s.handleMessage(c, &Message{Type: TypeCmdApply, Payload: json.RawMessage(`{broken`)})

	msg := receive(t, c)
	if msg.Type != TypeError {
		t.Fatalf("type = %q, want error", msg.Type)
	}
}

func TestQuitPersists(t *testing.T) {
	s, st := newTestSession()
	go s.Run()

	done := make(chan struct{})
	s.quit <- done
	<-done

	if st.saveCount("canvas_test") == 0 {
		t.Error("session quit did not persist a snapshot")
	}
}

func TestRemoveClientFinishesCapture(t *testing.T) {
	s, _ := newTestSession()
	c := testClient("c1")
	s.addClient(c)
	receive(t, c)

	s.state.ActiveTool = engine.ToolPen
	s.state.Capture = &engine.Capture{
		Mode:   engine.ToolPen,
		Points: []scene.Point{{X: 0, Y: 0}, {X: 50, Y: 50}},
	}

	s.removeClient(c)

	if s.state.Capture != nil {
		t.Error("capture survived client disconnect")
	}
	if len(s.state.Canvas.Elements) != 1 {
		t.Error("captured stroke not committed on disconnect")
	}
}
