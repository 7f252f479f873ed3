package engine

import (
	"github.com/postcraft/postcraft/backend-go/internal/scene"
)

// Tool is the active editing tool.
type Tool string

const (
	ToolSelect   Tool = "select"
	ToolText     Tool = "text"
	ToolShape    Tool = "shape"
	ToolImage    Tool = "image"
	ToolPen      Tool = "pen"
	ToolLine     Tool = "line"
	ToolPolyline Tool = "polyline"
	ToolBezier   Tool = "bezier"
)

// IsDrawingTool reports whether the tool captures pointer strokes.
func (t Tool) IsDrawingTool() bool {
	switch t {
	case ToolPen, ToolLine, ToolPolyline, ToolBezier:
		return true
	}
	return false
}

// MouseMode is the high-level pointer interpretation.
type MouseMode string

const (
	ModeEdit     MouseMode = "edit"
	ModeComment  MouseMode = "comment"
	ModeNavigate MouseMode = "navigate"
)

// MediaItem is an entry in the editor's media library.
type MediaItem struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Type      string `json:"type"` // "image" or "video"
	URL       string `json:"url"`
	Size      int64  `json:"size"`
	Width     int    `json:"width,omitempty"`
	Height    int    `json:"height,omitempty"`
	CreatedAt int64  `json:"createdAt"`
	Favorite  bool   `json:"favorite"`
}

// Comment is a positioned annotation on the canvas.
type Comment struct {
	ID        string  `json:"id"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Text      string  `json:"text"`
	Author    string  `json:"author,omitempty"`
	CreatedAt int64   `json:"createdAt"`
	Resolved  bool    `json:"resolved"`
}

// State is the full editor state owned by the mutation engine.
//
// The engine is single-threaded: exactly one command is applied at a time and
// the state has a single owner (a session loop or the wasm bridge).
type State struct {
	Canvas *scene.Canvas `json:"canvas"`

	Selection []string `json:"selection,omitempty"`

	ActiveTool    Tool      `json:"activeTool"`
	MouseMode     MouseMode `json:"mouseMode"`
	StrokeColor   string    `json:"strokeColor"`
	StrokeWidth   float64   `json:"strokeWidth"`
	StrokeOpacity float64   `json:"strokeOpacity"`
	Brush         string    `json:"brush"`

	Zoom    float64 `json:"zoom"`
	Scale   float64 `json:"scale"`
	OffsetX float64 `json:"offsetX"`
	OffsetY float64 `json:"offsetY"`

	// Expanded is the layer-panel expansion set, keyed by element id.
	Expanded map[string]bool `json:"expanded,omitempty"`

	Capture *Capture `json:"capture,omitempty"`

	Media    []MediaItem `json:"media,omitempty"`
	Comments []Comment   `json:"comments,omitempty"`

	// Undo/Redo stacks are modeled but no command consumes them yet.
	Undo []Snapshot `json:"-"`
	Redo []Snapshot `json:"-"`
}

// NewState creates editor state around the given canvas with default tool settings.
func NewState(c *scene.Canvas) *State {
	if c == nil {
		c = scene.DefaultCanvas("")
	}
	return &State{
		Canvas:        c,
		ActiveTool:    ToolSelect,
		MouseMode:     ModeEdit,
		StrokeColor:   "#000000",
		StrokeWidth:   2,
		StrokeOpacity: 1,
		Brush:         "round",
		Zoom:          1,
		Scale:         1,
		Expanded:      make(map[string]bool),
	}
}

// IsSelected reports whether the element id is in the selection set.
func (st *State) IsSelected(id string) bool {
	for _, s := range st.Selection {
		if s == id {
			return true
		}
	}
	return false
}

// SelectionBounds returns the union of the selected elements' bounding boxes,
// or an empty rect when nothing is selected.
func (st *State) SelectionBounds() scene.Rect {
	var bounds scene.Rect
	for _, id := range st.Selection {
		el := st.Canvas.Element(id)
		if el == nil {
			continue
		}
		bounds = bounds.Union(scene.Rect{X: el.X, Y: el.Y, Width: el.Width, Height: el.Height})
	}
	return bounds
}

// syncSelectionFlags keeps each element's Selected flag in lockstep with the
// selection set.
func (st *State) syncSelectionFlags() {
	for _, el := range st.Canvas.Elements {
		el.Selected = st.IsSelected(el.ID)
	}
}
