package codegen

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/postcraft/postcraft/backend-go/internal/scene"
)

// prop is one style declaration, kept in camelCase; each dialect decides how
// to spell the key and whether the value carries a px unit.
type prop struct {
	key     string
	str     string
	num     float64
	numeric bool
}

// pxKeys are the numeric properties that carry a px unit in the markup,
// stylesheet and script dialects. The component dialect emits bare numbers.
var pxKeys = map[string]bool{
	"left":         true,
	"top":          true,
	"width":        true,
	"height":       true,
	"fontSize":     true,
	"borderRadius": true,
	"borderWidth":  true,
	"padding":      true,
	"strokeWidth":  true,
}

func numProp(key string, v float64) prop { return prop{key: key, num: v, numeric: true} }
func strProp(key, v string) prop         { return prop{key: key, str: v} }

// canvasProps describes the root container sized to the canvas.
func canvasProps(c *scene.Canvas) []prop {
	props := []prop{
		strProp("position", "relative"),
		numProp("width", float64(c.Width)),
		numProp("height", float64(c.Height)),
	}
	switch c.Background.Kind {
	case scene.BackgroundImage:
		props = append(props, strProp("backgroundImage", "url("+c.Background.URL+")"))
	case scene.BackgroundGradient:
		props = append(props, strProp("background", c.Background.Gradient))
	default:
		if c.Background.Color != "" {
			props = append(props, strProp("backgroundColor", c.Background.Color))
		}
	}
	return props
}

// elementProps lists an element's declarations in a fixed order: placement
// first, then rotation/opacity, then the typed style fields, then Extra keys
// sorted. originX/originY shift the emitted left/top (the component dialect
// positions children relative to their parent).
func elementProps(el *scene.Element, originX, originY float64) []prop {
	s := el.Style
	props := []prop{
		strProp("position", "absolute"),
		numProp("left", el.X-originX),
		numProp("top", el.Y-originY),
		numProp("width", el.Width),
		numProp("height", el.Height),
	}
	if s.Rotation != 0 {
		props = append(props, strProp("transform", fmt.Sprintf("rotate(%sdeg)", fmtNum(s.Rotation))))
	}
	if s.Opacity != 0 && s.Opacity != 1 {
		props = append(props, numProp("opacity", s.Opacity))
	}

	add := func(key, v string) {
		if v != "" {
			props = append(props, strProp(key, v))
		}
	}
	addNum := func(key string, v float64) {
		if v != 0 {
			props = append(props, numProp(key, v))
		}
	}

	add("color", s.Color)
	add("backgroundColor", s.BackgroundColor)
	add("backgroundImage", s.BackgroundImage)
	addNum("fontSize", s.FontSize)
	add("fontFamily", s.FontFamily)
	add("fontWeight", s.FontWeight)
	add("textAlign", s.TextAlign)
	addNum("borderRadius", s.BorderRadius)
	addNum("borderWidth", s.BorderWidth)
	add("borderColor", s.BorderColor)
	add("border", s.Border)
	add("boxShadow", s.BoxShadow)
	addNum("padding", s.Padding)
	add("strokeColor", s.StrokeColor)
	addNum("strokeWidth", s.StrokeWidth)
	if s.StrokeOpacity != 0 && s.StrokeOpacity != 1 {
		props = append(props, numProp("strokeOpacity", s.StrokeOpacity))
	}
	add("brush", s.Brush)

	extraKeys := make([]string, 0, len(s.Extra))
	for k := range s.Extra {
		extraKeys = append(extraKeys, k)
	}
	sort.Strings(extraKeys)
	for _, k := range extraKeys {
		props = append(props, strProp(k, s.Extra[k]))
	}

	return props
}

// cssValue renders a declaration value for the hyphenated dialects.
func (p prop) cssValue() string {
	if !p.numeric {
		return p.str
	}
	v := fmtNum(p.num)
	if pxKeys[p.key] {
		return v + "px"
	}
	return v
}

// jsxValue renders a declaration value for the component dialect.
func (p prop) jsxValue() string {
	if p.numeric {
		return fmtNum(p.num)
	}
	return "'" + strings.ReplaceAll(p.str, "'", "\\'") + "'"
}

// hyphenate converts a camelCase property name to css-case.
func hyphenate(key string) string {
	var b strings.Builder
	for _, r := range key {
		if r >= 'A' && r <= 'Z' {
			b.WriteByte('-')
			b.WriteRune(r - 'A' + 'a')
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func fmtNum(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
