package scene

// Kind discriminates the element union.
type Kind string

const (
	KindText      Kind = "text"
	KindImage     Kind = "image"
	KindShape     Kind = "shape"
	KindVideo     Kind = "video"
	KindDrawing   Kind = "drawing"
	KindGroup     Kind = "group"
	KindContainer Kind = "container"
)

// CanHaveChildren reports whether elements of this kind own an ordered child list.
func (k Kind) CanHaveChildren() bool {
	return k == KindGroup || k == KindContainer
}

// Point is a coordinate in canvas pixel space. Drawing path points are stored
// relative to the element's own origin, so 0 <= X <= Width and 0 <= Y <= Height.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Element is one visual node in the scene graph.
//
// Content carries the text string for text elements and the media URL for
// image/video elements; it is empty for shapes, drawings, groups and containers.
type Element struct {
	ID       string   `json:"id"`
	Kind     Kind     `json:"kind"`
	Content  string   `json:"content,omitempty"`
	X        float64  `json:"x"`
	Y        float64  `json:"y"`
	Width    float64  `json:"width"`
	Height   float64  `json:"height"`
	ZIndex   int      `json:"zIndex"`
	Visible  bool     `json:"visible"`
	Locked   bool     `json:"locked"`
	Selected bool     `json:"selected,omitempty"`
	Label    string   `json:"label,omitempty"`
	ParentID string   `json:"parentId,omitempty"`
	Children []string `json:"children,omitempty"`
	Style    Style    `json:"style"`
}

// Bounds returns the element's axis-aligned box, ignoring rotation.
func (e *Element) Bounds() Rect {
	return Rect{X: e.X, Y: e.Y, Width: e.Width, Height: e.Height}
}

// Clone returns a deep copy.
func (e *Element) Clone() *Element {
	out := *e
	if e.Children != nil {
		out.Children = append([]string(nil), e.Children...)
	}
	out.Style = e.Style.Clone()
	return &out
}
