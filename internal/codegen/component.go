package codegen

import (
	"html"
	"strings"

	"github.com/postcraft/postcraft/backend-go/internal/scene"
)

// Component renders the declarative-component dialect: a recursive walk of
// the parent/child tree emitting nested tags with object-literal styles.
// Children are positioned relative to their parent so nesting stays editable.
//
// The typed variant differs only in its imports and function signature; the
// tag grammar is identical, which keeps both variants ingestible.
func Component(c *scene.Canvas, typed bool) string {
	var b strings.Builder

	if typed {
		b.WriteString("import * as React from 'react';\n\n")
		b.WriteString("export default function Design(): React.JSX.Element {\n")
	} else {
		b.WriteString("export default function Design() {\n")
	}
	b.WriteString("  return (\n")

	b.WriteString("    <div style={{ ")
	writeStyleObject(&b, canvasProps(c))
	b.WriteString(" }}>\n")

	for _, el := range c.RootsInZOrder() {
		writeComponentElement(&b, c, el, 0, 0, 3)
	}

	b.WriteString("    </div>\n")
	b.WriteString("  );\n")
	b.WriteString("}\n")
	return b.String()
}

func writeComponentElement(b *strings.Builder, c *scene.Canvas, el *scene.Element, originX, originY float64, depth int) {
	if !el.Visible {
		return
	}
	indent := strings.Repeat("  ", depth)
	tag := tagFor(el.Kind)

	b.WriteString(indent)
	b.WriteString("<")
	b.WriteString(tag)
	switch el.Kind {
	case scene.KindImage, scene.KindVideo:
		b.WriteString(` src="`)
		b.WriteString(html.EscapeString(el.Content))
		b.WriteString(`"`)
	}
	b.WriteString(" style={{ ")
	writeStyleObject(b, elementProps(el, originX, originY))
	b.WriteString(" }}")

	children := childElements(c, el)
	switch {
	case el.Kind == scene.KindImage:
		b.WriteString(" />\n")
	case el.Kind == scene.KindText:
		b.WriteString(">")
		b.WriteString(html.EscapeString(el.Content))
		b.WriteString("</")
		b.WriteString(tag)
		b.WriteString(">\n")
	case len(children) > 0:
		b.WriteString(">\n")
		for _, child := range children {
			writeComponentElement(b, c, child, el.X, el.Y, depth+1)
		}
		b.WriteString(indent)
		b.WriteString("</")
		b.WriteString(tag)
		b.WriteString(">\n")
	default:
		b.WriteString("></")
		b.WriteString(tag)
		b.WriteString(">\n")
	}
}

func childElements(c *scene.Canvas, el *scene.Element) []*scene.Element {
	out := make([]*scene.Element, 0, len(el.Children))
	for _, id := range el.Children {
		if child := c.Element(id); child != nil {
			out = append(out, child)
		}
	}
	return out
}

// writeStyleObject emits `key: value` pairs in object-literal syntax.
func writeStyleObject(b *strings.Builder, props []prop) {
	for i, p := range props {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.key)
		b.WriteString(": ")
		b.WriteString(p.jsxValue())
	}
}
