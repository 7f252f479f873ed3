// Package codegen renders a canvas into one of four textual dialects. All
// renderers are pure: they never mutate the scene and produce byte-identical
// output for identical input.
package codegen

import (
	"github.com/postcraft/postcraft/backend-go/internal/scene"
)

// Dialect selects the output language of the code panel.
type Dialect string

const (
	DialectMarkup     Dialect = "markup"
	DialectStylesheet Dialect = "stylesheet"
	DialectScript     Dialect = "script"
	DialectComponent  Dialect = "component"
)

// Variant selects the component dialect's syntax flavor.
type Variant string

const (
	VariantUntyped Variant = "jsx"
	VariantTyped   Variant = "tsx"
)

// Synthesize renders the canvas in the requested dialect. Unknown dialects
// fall back to the component dialect, which is the round-trippable one.
func Synthesize(c *scene.Canvas, d Dialect, v Variant) string {
	switch d {
	case DialectMarkup:
		return Markup(c)
	case DialectStylesheet:
		return Stylesheet(c)
	case DialectScript:
		return Script(c)
	default:
		return Component(c, v == VariantTyped)
	}
}

// Extension returns the download file extension for a dialect.
func Extension(d Dialect, v Variant) string {
	switch d {
	case DialectMarkup:
		return "html"
	case DialectStylesheet:
		return "css"
	case DialectScript:
		return "js"
	default:
		if v == VariantTyped {
			return "tsx"
		}
		return "jsx"
	}
}

// tagFor maps an element kind to its emitted tag name.
func tagFor(k scene.Kind) string {
	switch k {
	case scene.KindText:
		return "p"
	case scene.KindImage:
		return "img"
	case scene.KindVideo:
		return "video"
	default:
		return "div"
	}
}
