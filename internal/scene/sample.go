package scene

import "github.com/postcraft/postcraft/backend-go/internal/typeid"

// SampleCanvas builds the canvas served to anonymous playground sessions.
func SampleCanvas(canvasID string) *Canvas {
	c := NewCanvas(canvasID, "Playground", 1080, 1080, "#f5f5f5")

	headerID := typeid.NewElementID()
	titleID := typeid.NewElementID()
	accentID := typeid.NewElementID()

	c.Add(&Element{
		ID:      headerID,
		Kind:    KindContainer,
		X:       90,
		Y:       120,
		Width:   900,
		Height:  260,
		ZIndex:  1,
		Visible: true,
		Label:   "Header",
		Style: Style{
			BackgroundColor: "#1a1a2e",
			BorderRadius:    16,
			Padding:         24,
		},
	})
	c.Add(&Element{
		ID:       titleID,
		Kind:     KindText,
		Content:  "Make something",
		X:        130,
		Y:        180,
		Width:    600,
		Height:   80,
		ZIndex:   2,
		Visible:  true,
		Label:    "Title",
		ParentID: headerID,
		Style: Style{
			Color:      "#ffffff",
			FontSize:   56,
			FontWeight: "700",
		},
	})
	c.Add(&Element{
		ID:      accentID,
		Kind:    KindShape,
		X:       90,
		Y:       460,
		Width:   240,
		Height:  240,
		ZIndex:  3,
		Visible: true,
		Label:   "Accent",
		Style: Style{
			BackgroundColor: "#e94560",
			BorderRadius:    120,
		},
	})

	if header := c.Element(headerID); header != nil {
		header.Children = []string{titleID}
	}
	return c
}
