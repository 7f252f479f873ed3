package engine

import (
	"fmt"
	"math"

	"github.com/postcraft/postcraft/backend-go/internal/scene"
	"github.com/postcraft/postcraft/backend-go/internal/typeid"
)

// polylineCloseBox is the double-click proximity box: a polyline finishes when
// its last two committed points land within this many pixels of each other on
// both axes.
const polylineCloseBox = 10.0

// Capture is the in-progress drawing state. A nil Capture on the State means
// the machine is Idle.
//
// Points holds committed points only. For the click-driven modes (line,
// polyline, bezier) Preview carries the rubber-band point that follows the
// pointer between clicks; it is never part of the finished path.
type Capture struct {
	Mode    Tool          `json:"mode"`
	Points  []scene.Point `json:"points"`
	Preview *scene.Point  `json:"preview,omitempty"`
}

func (st *State) pointerDown(x, y float64, shift bool) {
	if st.MouseMode != ModeEdit {
		return
	}
	p := scene.Point{X: x, Y: y}

	if cur := st.Capture; cur != nil {
		// Click-driven modes commit a control point per click.
		switch cur.Mode {
		case ToolLine:
			cur.Points = append(cur.Points, p)
			if len(cur.Points) >= 2 {
				st.finishCapture()
			}
		case ToolPolyline:
			cur.Points = append(cur.Points, p)
			if n := len(cur.Points); n >= 2 && withinCloseBox(cur.Points[n-2], cur.Points[n-1]) {
				st.finishCapture()
			}
		case ToolBezier:
			cur.Points = append(cur.Points, p)
			if len(cur.Points) >= 4 {
				st.finishCapture()
			}
		}
		return
	}

	if st.ActiveTool.IsDrawingTool() {
		st.Capture = &Capture{Mode: st.ActiveTool, Points: []scene.Point{p}}
		return
	}

	if st.ActiveTool == ToolSelect {
		if el := st.Canvas.ElementAt(x, y); el != nil {
			st.selectElement(el.ID, shift)
		} else if !shift {
			st.deselectAll()
		}
	}
}

// pointerMove is the hot path: one append (freehand) or one preview update.
func (st *State) pointerMove(x, y float64) {
	cur := st.Capture
	if cur == nil {
		return
	}
	p := scene.Point{X: x, Y: y}
	if cur.Mode == ToolPen {
		cur.Points = append(cur.Points, p)
	} else {
		cur.Preview = &p
	}
}

func (st *State) pointerUp() {
	if cur := st.Capture; cur != nil && cur.Mode == ToolPen {
		st.finishCapture()
	}
}

// pointerLeave force-finishes with whatever was captured. There is no
// cancel-without-commit path; a capture with fewer than two points is
// discarded by finishCapture anyway.
func (st *State) pointerLeave() {
	if st.Capture != nil {
		st.finishCapture()
	}
}

// finishCapture turns the committed points into a drawing element. Fewer than
// two points discards the attempt with no element created.
func (st *State) finishCapture() {
	cur := st.Capture
	st.Capture = nil
	if cur == nil || len(cur.Points) < 2 {
		return
	}

	bounds := scene.BoundsOf(cur.Points)
	path := make([]scene.Point, len(cur.Points))
	for i, p := range cur.Points {
		path[i] = scene.Point{X: p.X - bounds.X, Y: p.Y - bounds.Y}
	}

	n := st.Canvas.CountKind(scene.KindDrawing) + 1
	st.Canvas.Add(&scene.Element{
		ID:      typeid.NewElementID(),
		Kind:    scene.KindDrawing,
		X:       bounds.X,
		Y:       bounds.Y,
		Width:   bounds.Width,
		Height:  bounds.Height,
		ZIndex:  st.Canvas.NextZIndex(),
		Visible: true,
		Label:   fmt.Sprintf("Drawing %d", n),
		Style: scene.Style{
			StrokeColor:   st.StrokeColor,
			StrokeWidth:   st.StrokeWidth,
			StrokeOpacity: st.StrokeOpacity,
			Brush:         st.Brush,
			Path:          path,
		},
	})
}

func withinCloseBox(a, b scene.Point) bool {
	return math.Abs(a.X-b.X) <= polylineCloseBox && math.Abs(a.Y-b.Y) <= polylineCloseBox
}
