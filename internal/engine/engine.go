// Package engine is the single-threaded command processor for the design
// surface. Apply takes the current editor state and one command and returns
// the next state plus the effects the caller should run. Commands never fail:
// unknown or inapplicable commands leave the state unchanged.
package engine

import (
	"time"

	"github.com/postcraft/postcraft/backend-go/internal/scene"
	"github.com/postcraft/postcraft/backend-go/internal/typeid"
)

// Apply processes one command. The state is mutated in place and returned;
// there is exactly one command in flight at a time, enforced by the caller
// being single-threaded.
//
// Every recognized command is followed by a PersistSnapshot effect, except
// pointer.move: it runs once per pointer event during freehand capture and
// must stay O(1) with no I/O.
func Apply(st *State, cmd Command) (*State, []Effect) {
	switch cmd.Type {
	case CmdSelectElement:
		st.selectElement(cmd.ElementID, cmd.Additive)
	case CmdDeselectAll:
		st.deselectAll()

	case CmdSetTool:
		if cmd.Tool != "" {
			st.ActiveTool = cmd.Tool
		}
	case CmdSetMouseMode:
		if cmd.Mode != "" {
			st.MouseMode = cmd.Mode
		}
	case CmdSetStrokeColor:
		if cmd.Color != "" {
			st.StrokeColor = cmd.Color
		}
	case CmdSetStrokeWidth:
		if cmd.Width > 0 {
			st.StrokeWidth = cmd.Width
		}
	case CmdSetStrokeOpacity:
		if cmd.Opacity > 0 && cmd.Opacity <= 1 {
			st.StrokeOpacity = cmd.Opacity
		}
	case CmdSetBrush:
		if cmd.Brush != "" {
			st.Brush = cmd.Brush
		}

	case CmdPointerDown:
		st.pointerDown(cmd.X, cmd.Y, cmd.Shift)
	case CmdPointerMove:
		st.pointerMove(cmd.X, cmd.Y)
		return st, nil
	case CmdPointerUp:
		st.pointerUp()
	case CmdPointerLeave:
		st.pointerLeave()

	case CmdAddElement:
		st.addElement(cmd.Element)
	case CmdDeleteElement:
		st.deleteElement(cmd.ElementID)
	case CmdUpdateStyle:
		st.updateStyle(cmd.ElementID, cmd.Style)
	case CmdRenameElement:
		if el := st.Canvas.Element(cmd.ElementID); el != nil {
			el.Label = cmd.Label
		}
	case CmdToggleVisible:
		if el := st.Canvas.Element(cmd.ElementID); el != nil {
			el.Visible = !el.Visible
		}
	case CmdToggleLocked:
		if el := st.Canvas.Element(cmd.ElementID); el != nil {
			el.Locked = !el.Locked
		}

	case CmdMoveLayer:
		st.moveLayer(cmd.ElementID, cmd.TargetID, cmd.Position)
	case CmdToggleLayer:
		if st.Canvas.Element(cmd.ElementID) != nil {
			st.Expanded[cmd.ElementID] = !st.Expanded[cmd.ElementID]
		}

	case CmdClearCanvas:
		st.clearCanvas()
	case CmdResizeCanvas:
		// Dimensions only; element geometry is intentionally untouched.
		if cmd.CanvasWidth > 0 && cmd.CanvasHeight > 0 {
			st.Canvas.Width = cmd.CanvasWidth
			st.Canvas.Height = cmd.CanvasHeight
		}
	case CmdSetBackground:
		if cmd.Background != nil {
			st.Canvas.Background = *cmd.Background
		}
	case CmdLoadCanvas:
		st.loadCanvas(cmd.Canvas)

	case CmdSetViewport:
		if cmd.Zoom > 0 {
			st.Zoom = cmd.Zoom
		}
		if cmd.Scale > 0 {
			st.Scale = cmd.Scale
		}
		st.OffsetX = cmd.OffsetX
		st.OffsetY = cmd.OffsetY

	case CmdAddMedia:
		st.addMedia(cmd.Media)
	case CmdRemoveMedia:
		st.removeMedia(cmd.MediaID)
	case CmdToggleFavorite:
		for i := range st.Media {
			if st.Media[i].ID == cmd.MediaID {
				st.Media[i].Favorite = !st.Media[i].Favorite
			}
		}
	case CmdInsertMedia:
		st.insertMedia(cmd.MediaID)

	case CmdAddComment:
		st.Comments = append(st.Comments, Comment{
			ID:        typeid.NewCommentID(),
			X:         cmd.X,
			Y:         cmd.Y,
			Text:      cmd.Text,
			Author:    cmd.Author,
			CreatedAt: time.Now().Unix(),
		})
	case CmdResolveComment:
		for i := range st.Comments {
			if st.Comments[i].ID == cmd.CommentID {
				st.Comments[i].Resolved = true
			}
		}
	case CmdDeleteComment:
		kept := st.Comments[:0]
		for _, c := range st.Comments {
			if c.ID != cmd.CommentID {
				kept = append(kept, c)
			}
		}
		st.Comments = kept

	default:
		return st, nil
	}

	return st, []Effect{PersistSnapshot{Snapshot: SnapshotOf(st)}}
}

func (st *State) selectElement(id string, additive bool) {
	el := st.Canvas.Element(id)
	if el == nil || el.Locked {
		return
	}
	if additive {
		if !st.IsSelected(id) {
			st.Selection = append(st.Selection, id)
		}
	} else {
		st.Selection = []string{id}
	}
	st.syncSelectionFlags()
}

func (st *State) deselectAll() {
	st.Selection = nil
	st.syncSelectionFlags()
}

func (st *State) addElement(el *scene.Element) {
	if el == nil {
		return
	}
	added := el.Clone()
	if added.ID == "" {
		added.ID = typeid.NewElementID()
	}
	if added.ZIndex == 0 {
		added.ZIndex = st.Canvas.NextZIndex()
	}
	added.Visible = true
	st.Canvas.Add(added)
	st.Canvas.Repair()
}

func (st *State) deleteElement(id string) {
	if st.Canvas.Element(id) == nil {
		return
	}
	st.Canvas.Remove(id)
	kept := st.Selection[:0]
	for _, s := range st.Selection {
		if st.Canvas.Element(s) != nil {
			kept = append(kept, s)
		}
	}
	st.Selection = kept
	delete(st.Expanded, id)
}

func (st *State) updateStyle(id string, patch map[string]string) {
	el := st.Canvas.Element(id)
	if el == nil {
		return
	}
	for k, v := range patch {
		el.Style.Set(k, v)
	}
}

func (st *State) clearCanvas() {
	st.Canvas.Clear()
	st.Selection = nil
	st.Capture = nil
	st.Expanded = make(map[string]bool)
}

func (st *State) loadCanvas(c *scene.Canvas) {
	if c == nil {
		return
	}
	replacement := c.Clone()
	replacement.Repair()
	st.Canvas = replacement
	st.Selection = nil
	st.Capture = nil
	st.Expanded = make(map[string]bool)
}

func (st *State) addMedia(item *MediaItem) {
	if item == nil {
		return
	}
	added := *item
	if added.ID == "" {
		added.ID = typeid.NewMediaID()
	}
	if added.CreatedAt == 0 {
		added.CreatedAt = time.Now().Unix()
	}
	st.Media = append(st.Media, added)
}

func (st *State) removeMedia(id string) {
	kept := st.Media[:0]
	for _, m := range st.Media {
		if m.ID != id {
			kept = append(kept, m)
		}
	}
	st.Media = kept
}

// insertMedia creates an image or video element centered on the canvas.
func (st *State) insertMedia(id string) {
	var item *MediaItem
	for i := range st.Media {
		if st.Media[i].ID == id {
			item = &st.Media[i]
			break
		}
	}
	if item == nil {
		return
	}

	kind := scene.KindImage
	w, h := 300.0, 300.0
	if item.Type == "video" {
		kind = scene.KindVideo
		w, h = 480.0, 270.0
	}
	if item.Width > 0 && item.Height > 0 {
		w, h = float64(item.Width), float64(item.Height)
	}

	st.Canvas.Add(&scene.Element{
		ID:      typeid.NewElementID(),
		Kind:    kind,
		Content: item.URL,
		X:       (float64(st.Canvas.Width) - w) / 2,
		Y:       (float64(st.Canvas.Height) - h) / 2,
		Width:   w,
		Height:  h,
		ZIndex:  st.Canvas.NextZIndex(),
		Visible: true,
		Label:   item.Name,
	})
}
