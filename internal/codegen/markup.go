package codegen

import (
	"html"
	"strings"

	"github.com/postcraft/postcraft/backend-go/internal/scene"
)

// Markup renders the canvas as a flat HTML document fragment: one tag per
// element in paint order, wrapped in a root container sized to the canvas.
func Markup(c *scene.Canvas) string {
	var b strings.Builder
	b.WriteString(`<div id="canvas" style="`)
	writeInline(&b, canvasProps(c))
	b.WriteString("\">\n")

	for _, el := range c.InZOrder() {
		if !el.Visible {
			continue
		}
		writeMarkupElement(&b, el)
	}

	b.WriteString("</div>\n")
	return b.String()
}

func writeMarkupElement(b *strings.Builder, el *scene.Element) {
	tag := tagFor(el.Kind)
	b.WriteString("  <")
	b.WriteString(tag)
	switch el.Kind {
	case scene.KindImage, scene.KindVideo:
		b.WriteString(` src="`)
		b.WriteString(html.EscapeString(el.Content))
		b.WriteString(`"`)
	}
	b.WriteString(` style="`)
	writeInline(b, elementProps(el, 0, 0))
	b.WriteString(`"`)

	switch el.Kind {
	case scene.KindImage:
		b.WriteString(" />\n")
	case scene.KindText:
		b.WriteString(">")
		b.WriteString(html.EscapeString(el.Content))
		b.WriteString("</")
		b.WriteString(tag)
		b.WriteString(">\n")
	default:
		b.WriteString("></")
		b.WriteString(tag)
		b.WriteString(">\n")
	}
}

// writeInline emits `key: value;` declarations with hyphenated keys.
func writeInline(b *strings.Builder, props []prop) {
	for i, p := range props {
		if i > 0 {
			b.WriteString(" ")
		}
		b.WriteString(hyphenate(p.key))
		b.WriteString(": ")
		b.WriteString(p.cssValue())
		b.WriteString(";")
	}
}
