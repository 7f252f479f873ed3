package engine

import (
	"github.com/postcraft/postcraft/backend-go/internal/scene"
)

// Command is a single edit submitted to the engine. One flat struct covers the
// whole closed command set; fields are populated per Type.
type Command struct {
	Type string `json:"type"`

	// element.select / element.delete / element.rename / element.style /
	// element.visibility / element.lock / layer.move / layer.toggle
	ElementID string            `json:"elementId,omitempty"`
	Additive  bool              `json:"additive,omitempty"`
	Label     string            `json:"label,omitempty"`
	Style     map[string]string `json:"style,omitempty"`

	// layer.move
	TargetID string       `json:"targetId,omitempty"`
	Position DropPosition `json:"position,omitempty"`

	// tool.set / mode.set / stroke.* / brush.set
	Tool    Tool      `json:"tool,omitempty"`
	Mode    MouseMode `json:"mode,omitempty"`
	Color   string    `json:"color,omitempty"`
	Width   float64   `json:"width,omitempty"`
	Opacity float64   `json:"opacity,omitempty"`
	Brush   string    `json:"brush,omitempty"`

	// pointer.*
	X     float64 `json:"x,omitempty"`
	Y     float64 `json:"y,omitempty"`
	Shift bool    `json:"shift,omitempty"`

	// element.add / canvas.load / canvas.background
	Element    *scene.Element    `json:"element,omitempty"`
	Canvas     *scene.Canvas     `json:"canvas,omitempty"`
	Background *scene.Background `json:"background,omitempty"`

	// canvas.resize
	CanvasWidth  int `json:"canvasWidth,omitempty"`
	CanvasHeight int `json:"canvasHeight,omitempty"`

	// viewport.set
	Zoom    float64 `json:"zoom,omitempty"`
	Scale   float64 `json:"scale,omitempty"`
	OffsetX float64 `json:"offsetX,omitempty"`
	OffsetY float64 `json:"offsetY,omitempty"`

	// media.*
	Media   *MediaItem `json:"media,omitempty"`
	MediaID string     `json:"mediaId,omitempty"`

	// comment.*
	CommentID string `json:"commentId,omitempty"`
	Text      string `json:"text,omitempty"`
	Author    string `json:"author,omitempty"`
}

const (
	CmdSelectElement = "element.select"
	CmdDeselectAll   = "selection.clear"

	CmdSetTool          = "tool.set"
	CmdSetMouseMode     = "mode.set"
	CmdSetStrokeColor   = "stroke.color"
	CmdSetStrokeWidth   = "stroke.width"
	CmdSetStrokeOpacity = "stroke.opacity"
	CmdSetBrush         = "brush.set"

	CmdPointerDown  = "pointer.down"
	CmdPointerMove  = "pointer.move"
	CmdPointerUp    = "pointer.up"
	CmdPointerLeave = "pointer.leave"

	CmdAddElement    = "element.add"
	CmdDeleteElement = "element.delete"
	CmdUpdateStyle   = "element.style"
	CmdRenameElement = "element.rename"
	CmdToggleVisible = "element.visibility"
	CmdToggleLocked  = "element.lock"

	CmdMoveLayer   = "layer.move"
	CmdToggleLayer = "layer.toggle"

	CmdClearCanvas   = "canvas.clear"
	CmdResizeCanvas  = "canvas.resize"
	CmdSetBackground = "canvas.background"
	CmdLoadCanvas    = "canvas.load"

	CmdSetViewport = "viewport.set"

	CmdAddMedia       = "media.add"
	CmdRemoveMedia    = "media.remove"
	CmdToggleFavorite = "media.favorite"
	CmdInsertMedia    = "media.insert"

	CmdAddComment     = "comment.add"
	CmdResolveComment = "comment.resolve"
	CmdDeleteComment  = "comment.delete"
)

// Effect is a side effect requested by a command, run by the caller after
// Apply returns. The engine itself never does I/O.
type Effect interface{ effect() }

// PersistSnapshot asks the effect runner to durably store the snapshot.
// Runners execute it fire-and-forget; a failed write is logged, never
// surfaced, and never rolls back the in-memory state.
type PersistSnapshot struct {
	Snapshot Snapshot
}

func (PersistSnapshot) effect() {}
