package engine

import (
	"encoding/json"

	"github.com/postcraft/postcraft/backend-go/internal/scene"
)

// Snapshot is the serializable resume state written after every command and
// read once at editor startup.
type Snapshot struct {
	CurrentCanvas    *scene.Canvas   `json:"currentCanvas"`
	Zoom             float64         `json:"zoom"`
	Scale            float64         `json:"scale"`
	Offset           Offset          `json:"offset"`
	LayersPanelState map[string]bool `json:"layersPanelState,omitempty"`
}

type Offset struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// SnapshotOf captures the persistable slice of the state. The canvas is deep
// copied so the fire-and-forget persistence write never races later commands.
func SnapshotOf(st *State) Snapshot {
	expanded := make(map[string]bool, len(st.Expanded))
	for k, v := range st.Expanded {
		if v {
			expanded[k] = v
		}
	}
	return Snapshot{
		CurrentCanvas:    st.Canvas.Clone(),
		Zoom:             st.Zoom,
		Scale:            st.Scale,
		Offset:           Offset{X: st.OffsetX, Y: st.OffsetY},
		LayersPanelState: expanded,
	}
}

// StateFromSnapshot rebuilds editor state from a persisted snapshot, falling
// back to the default canvas when the snapshot is empty.
func StateFromSnapshot(snap Snapshot, canvasID string) *State {
	c := snap.CurrentCanvas
	if c == nil {
		c = scene.DefaultCanvas(canvasID)
	} else {
		c.Repair()
	}
	st := NewState(c)
	if snap.Zoom > 0 {
		st.Zoom = snap.Zoom
	}
	if snap.Scale > 0 {
		st.Scale = snap.Scale
	}
	st.OffsetX = snap.Offset.X
	st.OffsetY = snap.Offset.Y
	if snap.LayersPanelState != nil {
		st.Expanded = snap.LayersPanelState
	}
	return st
}

// DecodeSnapshot parses a stored snapshot document. A missing or malformed
// document yields the zero snapshot so callers fall back to the default canvas.
func DecodeSnapshot(data []byte) Snapshot {
	var snap Snapshot
	if len(data) == 0 {
		return Snapshot{}
	}
	if err := json.Unmarshal(data, &snap); err != nil {
		return Snapshot{}
	}
	return snap
}

// EncodeSnapshot serializes a snapshot for storage.
func EncodeSnapshot(snap Snapshot) ([]byte, error) {
	return json.Marshal(snap)
}
