package scene

import "strconv"

// Style is the per-element visual attribute record: a closed set of well-known
// typed fields plus Extra for anything else the code panel round-trips verbatim.
type Style struct {
	Color           string  `json:"color,omitempty"`
	BackgroundColor string  `json:"backgroundColor,omitempty"`
	BackgroundImage string  `json:"backgroundImage,omitempty"`
	FontSize        float64 `json:"fontSize,omitempty"`
	FontFamily      string  `json:"fontFamily,omitempty"`
	FontWeight      string  `json:"fontWeight,omitempty"`
	TextAlign       string  `json:"textAlign,omitempty"`
	BorderRadius    float64 `json:"borderRadius,omitempty"`
	BorderWidth     float64 `json:"borderWidth,omitempty"`
	BorderColor     string  `json:"borderColor,omitempty"`
	Border          string  `json:"border,omitempty"`
	BoxShadow       string  `json:"boxShadow,omitempty"`
	Padding         float64 `json:"padding,omitempty"`
	Opacity         float64 `json:"opacity,omitempty"`
	Rotation        float64 `json:"rotation,omitempty"`

	// Stroke settings for drawing elements.
	StrokeColor   string  `json:"strokeColor,omitempty"`
	StrokeWidth   float64 `json:"strokeWidth,omitempty"`
	StrokeOpacity float64 `json:"strokeOpacity,omitempty"`
	Brush         string  `json:"brush,omitempty"`

	// Path is the drawing's point list, normalized to the element's own
	// bounding box (minimum x/y translated to zero).
	Path []Point `json:"path,omitempty"`

	Extra map[string]string `json:"extra,omitempty"`
}

// Clone returns a deep copy.
func (s Style) Clone() Style {
	out := s
	if s.Path != nil {
		out.Path = append([]Point(nil), s.Path...)
	}
	if s.Extra != nil {
		out.Extra = make(map[string]string, len(s.Extra))
		for k, v := range s.Extra {
			out.Extra[k] = v
		}
	}
	return out
}

// numericKeys are style properties whose values are coerced to numbers when
// they arrive as text (pixel-suffixed or bare).
var numericKeys = map[string]bool{
	"left":          true,
	"top":           true,
	"width":         true,
	"height":        true,
	"fontSize":      true,
	"opacity":       true,
	"borderRadius":  true,
	"borderWidth":   true,
	"padding":       true,
	"rotation":      true,
	"strokeWidth":   true,
	"strokeOpacity": true,
	"zIndex":        true,
}

// IsNumericKey reports whether values for the given camelCase property are numeric.
func IsNumericKey(key string) bool { return numericKeys[key] }

// ParseNumber strips a trailing px/% suffix and parses the remainder.
func ParseNumber(value string) (float64, bool) {
	v := value
	if n := len(v); n > 2 && v[n-2:] == "px" {
		v = v[:n-2]
	} else if n > 1 && v[n-1] == '%' {
		v = v[:n-1]
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// Set assigns a single camelCase property from its textual value, coercing
// known-numeric keys. Unknown keys land in Extra.
func (s *Style) Set(key, value string) {
	num := 0.0
	if IsNumericKey(key) {
		if f, ok := ParseNumber(value); ok {
			num = f
		}
	}

	switch key {
	case "color":
		s.Color = value
	case "backgroundColor", "background":
		s.BackgroundColor = value
	case "backgroundImage":
		s.BackgroundImage = value
	case "fontSize":
		s.FontSize = num
	case "fontFamily":
		s.FontFamily = value
	case "fontWeight":
		s.FontWeight = value
	case "textAlign":
		s.TextAlign = value
	case "borderRadius":
		s.BorderRadius = num
	case "borderWidth":
		s.BorderWidth = num
	case "borderColor":
		s.BorderColor = value
	case "border":
		s.Border = value
	case "boxShadow":
		s.BoxShadow = value
	case "padding":
		s.Padding = num
	case "opacity":
		s.Opacity = num
	case "rotation":
		s.Rotation = num
	case "strokeColor":
		s.StrokeColor = value
	case "strokeWidth":
		s.StrokeWidth = num
	case "strokeOpacity":
		s.StrokeOpacity = num
	case "brush":
		s.Brush = value
	default:
		if s.Extra == nil {
			s.Extra = make(map[string]string)
		}
		s.Extra[key] = value
	}
}

// EffectiveOpacity treats the zero value as fully opaque.
func (s Style) EffectiveOpacity() float64 {
	if s.Opacity == 0 {
		return 1
	}
	return s.Opacity
}
