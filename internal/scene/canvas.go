package scene

import "sort"

const (
	BackgroundSolid    = "solid"
	BackgroundImage    = "image"
	BackgroundGradient = "gradient"
)

// Background describes the canvas backdrop.
type Background struct {
	Kind     string `json:"kind"`
	Color    string `json:"color,omitempty"`
	URL      string `json:"url,omitempty"`
	Gradient string `json:"gradient,omitempty"`
}

// Canvas is the sized design surface containing the element tree.
//
// Elements maps id -> element; Order is the flat insertion order used to break
// z-index ties and as the splice target for layer drag/drop.
type Canvas struct {
	ID         string              `json:"id"`
	Name       string              `json:"name"`
	Width      int                 `json:"width"`
	Height     int                 `json:"height"`
	Background Background          `json:"background"`
	Elements   map[string]*Element `json:"elements"`
	Order      []string            `json:"order"`
}

// NewCanvas creates an empty canvas of the given size with a solid background.
func NewCanvas(id, name string, width, height int, color string) *Canvas {
	return &Canvas{
		ID:         id,
		Name:       name,
		Width:      width,
		Height:     height,
		Background: Background{Kind: BackgroundSolid, Color: color},
		Elements:   make(map[string]*Element),
	}
}

// DefaultCanvas is the built-in fallback when no snapshot can be restored.
func DefaultCanvas(id string) *Canvas {
	return NewCanvas(id, "Untitled", 1080, 1080, "#ffffff")
}

// Element returns the element with the given id, or nil.
func (c *Canvas) Element(id string) *Element {
	if c.Elements == nil {
		return nil
	}
	return c.Elements[id]
}

// Add inserts the element at the end of the flat order. Re-adding an existing
// id replaces the element but keeps its order slot.
func (c *Canvas) Add(el *Element) {
	if el == nil || el.ID == "" {
		return
	}
	if c.Elements == nil {
		c.Elements = make(map[string]*Element)
	}
	_, existed := c.Elements[el.ID]
	c.Elements[el.ID] = el
	if !existed {
		c.Order = append(c.Order, el.ID)
	}
}

// Remove deletes the element and its entire subtree, detaching it from its
// parent's child list.
func (c *Canvas) Remove(id string) {
	el := c.Element(id)
	if el == nil {
		return
	}
	for _, childID := range append([]string(nil), el.Children...) {
		c.Remove(childID)
	}
	if parent := c.Element(el.ParentID); parent != nil {
		parent.Children = removeID(parent.Children, id)
	}
	delete(c.Elements, id)
	c.Order = removeID(c.Order, id)
}

// Clear empties the element collection. The background is preserved.
func (c *Canvas) Clear() {
	c.Elements = make(map[string]*Element)
	c.Order = nil
}

// InZOrder returns all elements sorted by z-index, insertion order breaking ties.
func (c *Canvas) InZOrder() []*Element {
	out := make([]*Element, 0, len(c.Order))
	for _, id := range c.Order {
		if el := c.Element(id); el != nil {
			out = append(out, el)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ZIndex < out[j].ZIndex })
	return out
}

// RootsInZOrder returns elements with no parent, sorted like InZOrder.
func (c *Canvas) RootsInZOrder() []*Element {
	all := c.InZOrder()
	out := all[:0:0]
	for _, el := range all {
		if el.ParentID == "" {
			out = append(out, el)
		}
	}
	return out
}

// NextZIndex returns the z-order assigned to a newly created element.
func (c *Canvas) NextZIndex() int {
	return len(c.Elements) + 1
}

// CountKind returns how many elements of the given kind exist.
func (c *Canvas) CountKind(k Kind) int {
	n := 0
	for _, el := range c.Elements {
		if el.Kind == k {
			n++
		}
	}
	return n
}

// Clone returns a deep copy of the canvas.
func (c *Canvas) Clone() *Canvas {
	out := *c
	out.Elements = make(map[string]*Element, len(c.Elements))
	for id, el := range c.Elements {
		out.Elements[id] = el.Clone()
	}
	out.Order = append([]string(nil), c.Order...)
	return &out
}

func removeID(ids []string, id string) []string {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
