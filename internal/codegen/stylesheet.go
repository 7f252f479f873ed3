package codegen

import (
	"fmt"
	"strings"

	"github.com/postcraft/postcraft/backend-go/internal/scene"
)

// Stylesheet renders one CSS rule per visible element, with every style-record
// entry translated to its hyphenated property name. Rules are indexed by paint
// position so .element-N matches the script dialect's elN variable.
func Stylesheet(c *scene.Canvas) string {
	var b strings.Builder

	b.WriteString(".canvas {\n")
	writeRule(&b, canvasProps(c))
	b.WriteString("}\n")

	for i, el := range c.InZOrder() {
		if !el.Visible {
			continue
		}
		fmt.Fprintf(&b, "\n.element-%d {\n", i+1)
		writeRule(&b, elementProps(el, 0, 0))
		b.WriteString("}\n")
	}

	return b.String()
}

func writeRule(b *strings.Builder, props []prop) {
	for _, p := range props {
		b.WriteString("  ")
		b.WriteString(hyphenate(p.key))
		b.WriteString(": ")
		b.WriteString(p.cssValue())
		b.WriteString(";\n")
	}
}
