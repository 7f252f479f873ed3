package codeparse

import "github.com/postcraft/postcraft/backend-go/internal/scene"

// textTags always classify as text, even when empty, so an empty paragraph
// survives a round trip through the code panel.
var textTags = map[string]bool{
	"p": true, "span": true, "label": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
}

// classifyKind recovers an element kind from a tag name, its inner text and
// its style record:
//
//	image tag or backgroundImage style  -> image
//	inner text with no nested tags      -> text
//	background/border/shadow styling    -> shape (container when it has children)
//	anything else                       -> container
func classifyKind(tag, text string, hasTagChildren bool, raw map[string]string) scene.Kind {
	switch {
	case tag == "img":
		return scene.KindImage
	case tag == "video":
		return scene.KindVideo
	case textTags[tag]:
		return scene.KindText
	case raw["backgroundImage"] != "":
		return scene.KindImage
	case text != "" && !hasTagChildren:
		return scene.KindText
	case hasShapeStyling(raw):
		if hasTagChildren {
			return scene.KindContainer
		}
		return scene.KindShape
	default:
		return scene.KindContainer
	}
}

func hasShapeStyling(raw map[string]string) bool {
	for _, key := range []string{"backgroundColor", "background", "border", "borderColor", "borderWidth", "borderRadius", "boxShadow"} {
		if raw[key] != "" {
			return true
		}
	}
	return false
}
