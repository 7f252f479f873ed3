package codeparse

import (
	"strings"

	"github.com/postcraft/postcraft/backend-go/internal/scene"
	"github.com/postcraft/postcraft/backend-go/internal/typeid"
)

// geometry keys resolve into element position/size rather than the style record.
var geometryKeys = map[string]bool{
	"left":     true,
	"top":      true,
	"width":    true,
	"height":   true,
	"position": true,
	"zIndex":   true,
}

type builder struct {
	c *scene.Canvas
	z int
}

// buildCanvas turns a parsed forest into a canvas. When the first top-level
// node looks like a canvas wrapper (position: relative, or a childbearing tag
// with no left/top of its own) its style sizes the canvas and its children
// become the root elements; otherwise every top-level node is an element on a
// default canvas. The canvas itself plays the synthetic root container role
// for anything without a detected parent.
func buildCanvas(roots []*node) *scene.Canvas {
	c := scene.DefaultCanvas(typeid.NewCanvasID())
	c.Name = "Imported"
	b := &builder{c: c, z: 1}

	rest := roots
	if wrapper := findWrapper(roots); wrapper != nil {
		applyCanvasStyle(c, styleMap(wrapper))
		for _, child := range wrapper.children {
			b.convert(child, nil, 0, 0, 0, float64(c.Width), float64(c.Height))
		}
		rest = withoutNode(roots, wrapper)
	}
	for _, n := range rest {
		if n.isText() {
			continue
		}
		b.convert(n, nil, 0, 0, 0, float64(c.Width), float64(c.Height))
	}

	c.Repair()
	return c
}

func findWrapper(roots []*node) *node {
	for _, n := range roots {
		if n.isText() {
			continue
		}
		raw := styleMap(n)
		if raw["position"] == "relative" {
			return n
		}
		if n.hasTagChildren() && raw["left"] == "" && raw["top"] == "" {
			return n
		}
		return nil
	}
	return nil
}

func withoutNode(roots []*node, drop *node) []*node {
	out := roots[:0:0]
	for _, n := range roots {
		if n != drop {
			out = append(out, n)
		}
	}
	return out
}

func styleMap(n *node) map[string]string {
	raw := make(map[string]string)
	for _, p := range parseStyleText(n.attr("style")) {
		raw[p.key] = p.value
	}
	return raw
}

func applyCanvasStyle(c *scene.Canvas, raw map[string]string) {
	if w, ok := scene.ParseNumber(raw["width"]); ok && w > 0 {
		c.Width = int(w)
	}
	if h, ok := scene.ParseNumber(raw["height"]); ok && h > 0 {
		c.Height = int(h)
	}
	switch {
	case raw["backgroundImage"] != "":
		c.Background = scene.Background{Kind: scene.BackgroundImage, URL: stripURL(raw["backgroundImage"])}
	case strings.Contains(raw["background"], "gradient"):
		c.Background = scene.Background{Kind: scene.BackgroundGradient, Gradient: raw["background"]}
	case raw["backgroundColor"] != "":
		c.Background = scene.Background{Kind: scene.BackgroundSolid, Color: raw["backgroundColor"]}
	case raw["background"] != "":
		c.Background = scene.Background{Kind: scene.BackgroundSolid, Color: raw["background"]}
	}
}

// convert builds one element (and its subtree). originX/originY/pad come from
// the enclosing span: absolute position = parent position + inline left/top +
// parent padding. attachTo is the nearest enclosing element that can own
// children; nil means the element is a root.
func (b *builder) convert(n *node, attachTo *scene.Element, originX, originY, pad, parentW, parentH float64) {
	if n.isText() {
		b.addTextLeaf(n, attachTo, originX+pad, originY+pad)
		return
	}

	pairs := parseStyleText(n.attr("style"))
	raw := make(map[string]string, len(pairs))
	for _, p := range pairs {
		raw[p.key] = p.value
	}

	left, _ := scene.ParseNumber(raw["left"])
	top, _ := scene.ParseNumber(raw["top"])
	text := n.innerText()
	kind := classifyKind(n.tag, text, n.hasTagChildren(), raw)

	el := &scene.Element{
		ID:      typeid.NewElementID(),
		Kind:    kind,
		X:       originX + left + pad,
		Y:       originY + top + pad,
		Width:   resolveSize(raw["width"], parentW, defaultWidth(kind)),
		Height:  resolveSize(raw["height"], parentH, defaultHeight(kind)),
		ZIndex:  b.nextZ(raw),
		Visible: true,
	}

	switch kind {
	case scene.KindText:
		el.Content = text
	case scene.KindImage, scene.KindVideo:
		el.Content = n.attr("src")
		if el.Content == "" {
			el.Content = stripURL(raw["backgroundImage"])
		}
	}

	for _, p := range pairs {
		if geometryKeys[p.key] {
			continue
		}
		el.Style.Set(p.key, p.value)
	}

	b.attach(el, attachTo)

	if !n.hasTagChildren() {
		return
	}
	childAttach := attachTo
	if el.Kind.CanHaveChildren() {
		childAttach = el
	}
	for _, child := range n.children {
		b.convert(child, childAttach, el.X, el.Y, el.Style.Padding, el.Width, el.Height)
	}
}

// addTextLeaf turns a bare text run between tags into its own text element.
func (b *builder) addTextLeaf(n *node, attachTo *scene.Element, x, y float64) {
	content := strings.TrimSpace(n.text)
	if content == "" {
		return
	}
	el := &scene.Element{
		ID:      typeid.NewElementID(),
		Kind:    scene.KindText,
		Content: content,
		X:       x,
		Y:       y,
		Width:   defaultWidth(scene.KindText),
		Height:  defaultHeight(scene.KindText),
		ZIndex:  b.nextZ(nil),
		Visible: true,
	}
	b.attach(el, attachTo)
}

func (b *builder) attach(el *scene.Element, attachTo *scene.Element) {
	b.c.Add(el)
	if attachTo != nil && attachTo.Kind.CanHaveChildren() {
		el.ParentID = attachTo.ID
		attachTo.Children = append(attachTo.Children, el.ID)
	}
}

func (b *builder) nextZ(raw map[string]string) int {
	if z, ok := scene.ParseNumber(raw["zIndex"]); ok && z != 0 {
		b.z++
		return int(z)
	}
	z := b.z
	b.z++
	return z
}

// resolveSize handles explicit pixel values, percentage-of-parent values and
// type-based defaults, in that order.
func resolveSize(raw string, parentDim, def float64) float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def
	}
	if strings.HasSuffix(raw, "%") {
		if pct, ok := scene.ParseNumber(raw); ok {
			return parentDim * pct / 100
		}
		return def
	}
	if v, ok := scene.ParseNumber(raw); ok {
		return v
	}
	return def
}

func defaultWidth(k scene.Kind) float64 {
	switch k {
	case scene.KindText:
		return 200
	case scene.KindImage:
		return 300
	case scene.KindVideo:
		return 480
	case scene.KindShape:
		return 100
	default:
		return 400
	}
}

func defaultHeight(k scene.Kind) float64 {
	switch k {
	case scene.KindText:
		return 40
	case scene.KindImage:
		return 300
	case scene.KindVideo:
		return 270
	case scene.KindShape:
		return 100
	default:
		return 300
	}
}

func stripURL(v string) string {
	v = strings.TrimSpace(v)
	if strings.HasPrefix(v, "url(") && strings.HasSuffix(v, ")") {
		v = strings.TrimSpace(v[4 : len(v)-1])
		v = unquote(v)
	}
	return v
}
