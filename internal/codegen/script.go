package codegen

import (
	"fmt"
	"strings"

	"github.com/postcraft/postcraft/backend-go/internal/scene"
)

// Script renders imperative statements that build the same DOM tree as the
// markup dialect, for environments without templating.
func Script(c *scene.Canvas) string {
	var b strings.Builder

	b.WriteString("const canvas = document.createElement('div');\n")
	for _, p := range canvasProps(c) {
		fmt.Fprintf(&b, "canvas.style.%s = %s;\n", p.key, jsString(p.cssValue()))
	}

	for i, el := range c.InZOrder() {
		if !el.Visible {
			continue
		}
		name := fmt.Sprintf("el%d", i+1)
		b.WriteString("\n")
		fmt.Fprintf(&b, "const %s = document.createElement('%s');\n", name, tagFor(el.Kind))
		switch el.Kind {
		case scene.KindText:
			fmt.Fprintf(&b, "%s.textContent = %s;\n", name, jsString(el.Content))
		case scene.KindImage, scene.KindVideo:
			fmt.Fprintf(&b, "%s.src = %s;\n", name, jsString(el.Content))
		}
		for _, p := range elementProps(el, 0, 0) {
			fmt.Fprintf(&b, "%s.style.%s = %s;\n", name, p.key, jsString(p.cssValue()))
		}
		fmt.Fprintf(&b, "canvas.appendChild(%s);\n", name)
	}

	b.WriteString("\ndocument.body.appendChild(canvas);\n")
	return b.String()
}

func jsString(v string) string {
	return "'" + strings.ReplaceAll(strings.ReplaceAll(v, "\\", "\\\\"), "'", "\\'") + "'"
}
