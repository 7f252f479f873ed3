package codeparse

import (
	"strings"
	"testing"

	"github.com/postcraft/postcraft/backend-go/internal/codegen"
	"github.com/postcraft/postcraft/backend-go/internal/scene"
)

func onlyElement(t *testing.T, c *scene.Canvas) *scene.Element {
	t.Helper()
	if len(c.Elements) != 1 {
		t.Fatalf("elements = %d, want 1", len(c.Elements))
	}
	for _, el := range c.Elements {
		return el
	}
	return nil
}

func TestIngestBareElement(t *testing.T) {
	src := `<div style={{position: 'absolute', left: 10, top: 10, width: 100, height: 50, backgroundColor: '#ff0000'}} />`

	c := Ingest(src)

	el := onlyElement(t, c)
	if el.Kind != scene.KindShape {
		t.Errorf("kind = %s, want shape", el.Kind)
	}
	if el.X != 10 || el.Y != 10 || el.Width != 100 || el.Height != 50 {
		t.Errorf("geometry = (%v,%v) %vx%v", el.X, el.Y, el.Width, el.Height)
	}
	if el.Style.BackgroundColor != "#ff0000" {
		t.Errorf("backgroundColor = %q", el.Style.BackgroundColor)
	}
	// The bare element lands on a default-sized canvas.
	if c.Width != 1080 || c.Height != 1080 {
		t.Errorf("canvas = %dx%d, want default", c.Width, c.Height)
	}
}

func TestIngestWrapperBecomesCanvas(t *testing.T) {
	src := `export default function Design() {
  return (
    <div style={{ position: 'relative', width: 800, height: 600, backgroundColor: '#fafafa' }}>
      <p style={{ position: 'absolute', left: 50, top: 40, width: 200, height: 40, fontSize: 24 }}>Hello</p>
    </div>
  );
}`

	c := Ingest(src)

	if c.Width != 800 || c.Height != 600 {
		t.Fatalf("canvas = %dx%d, want 800x600", c.Width, c.Height)
	}
	if c.Background.Color != "#fafafa" {
		t.Errorf("background = %+v", c.Background)
	}

	el := onlyElement(t, c)
	if el.Kind != scene.KindText || el.Content != "Hello" {
		t.Errorf("element = %+v", el)
	}
	if el.X != 50 || el.Y != 40 {
		t.Errorf("position = (%v,%v)", el.X, el.Y)
	}
	if el.Style.FontSize != 24 {
		t.Errorf("fontSize = %v", el.Style.FontSize)
	}
}

func TestIngestNestedContainer(t *testing.T) {
	src := `<div style={{ position: 'relative', width: 800, height: 600 }}>
  <div style={{ position: 'absolute', left: 100, top: 100, width: 400, height: 300 }}>
    <span style={{ position: 'absolute', left: 20, top: 30 }}>Inside</span>
  </div>
</div>`

	c := Ingest(src)

	if len(c.Elements) != 2 {
		t.Fatalf("elements = %d, want container plus child", len(c.Elements))
	}

	var box, inner *scene.Element
	for _, el := range c.Elements {
		switch el.Kind {
		case scene.KindContainer:
			box = el
		case scene.KindText:
			inner = el
		}
	}
	if box == nil || inner == nil {
		t.Fatalf("kinds wrong: %+v", c.Elements)
	}
	if inner.ParentID != box.ID {
		t.Error("child not attached to container")
	}
	// Child position is parent origin + inline offset.
	if inner.X != 120 || inner.Y != 130 {
		t.Errorf("child at (%v,%v), want (120,130)", inner.X, inner.Y)
	}
	if !c.CheckTree() {
		t.Error("tree invariant broken after ingest")
	}
}

func TestIngestPercentSizes(t *testing.T) {
	src := `<div style={{ position: 'relative', width: 1000, height: 500 }}>
  <div style={{ position: 'absolute', left: 0, top: 0, width: '50%', height: '20%', backgroundColor: '#000' }} />
</div>`

	c := Ingest(src)
	el := onlyElement(t, c)
	if el.Width != 500 || el.Height != 100 {
		t.Errorf("size = %vx%v, want 500x100", el.Width, el.Height)
	}
}

func TestIngestKindDefaults(t *testing.T) {
	src := `<div style={{ position: 'relative', width: 800, height: 600 }}>
  <img src="/media/pic.png" style={{ position: 'absolute', left: 0, top: 0 }} />
  <p style={{ position: 'absolute', left: 0, top: 0 }}>words</p>
</div>`

	c := Ingest(src)
	if len(c.Elements) != 2 {
		t.Fatalf("elements = %d", len(c.Elements))
	}
	for _, el := range c.Elements {
		switch el.Kind {
		case scene.KindImage:
			if el.Width != 300 || el.Height != 300 || el.Content != "/media/pic.png" {
				t.Errorf("image = %+v", el)
			}
		case scene.KindText:
			if el.Width != 200 || el.Height != 40 {
				t.Errorf("text size = %vx%v", el.Width, el.Height)
			}
		default:
			t.Errorf("unexpected kind %s", el.Kind)
		}
	}
}

func TestIngestBareTextLeaf(t *testing.T) {
	src := `<div style={{ position: 'relative', width: 800, height: 600 }}>
  stray words
</div>`

	c := Ingest(src)
	el := onlyElement(t, c)
	if el.Kind != scene.KindText || el.Content != "stray words" {
		t.Errorf("element = %+v", el)
	}
}

func TestIngestEmptyClears(t *testing.T) {
	c := Ingest("   \n  ")
	if len(c.Elements) != 0 {
		t.Errorf("elements = %d, want empty canvas", len(c.Elements))
	}
	if c.Width != 1080 || c.Height != 1080 {
		t.Errorf("canvas = %dx%d, want default size", c.Width, c.Height)
	}
}

func TestIngestGarbageYieldsErrorScene(t *testing.T) {
	c := Ingest("const x = nothing here resembles markup;")

	el := onlyElement(t, c)
	if el.Kind != scene.KindText || !strings.Contains(el.Content, "Unable to parse code") {
		t.Errorf("element = %+v", el)
	}
	if el.Label != "Parse error" {
		t.Errorf("label = %q", el.Label)
	}
}

func TestIngestUnclosedTagsRecover(t *testing.T) {
	src := `<div style={{ position: 'relative', width: 800, height: 600 }}>
  <p style={{ position: 'absolute', left: 10, top: 10 }}>never closed
  <span style={{ position: 'absolute', left: 10, top: 60 }}>also open`

	c := Ingest(src)
	if len(c.Elements) == 0 {
		t.Fatal("nothing recovered from unclosed markup")
	}
	if !c.CheckTree() {
		t.Error("tree invariant broken")
	}
}

func TestIngestSkipsExpressionStyles(t *testing.T) {
	src := `<div style={{ position: 'relative', width: 800, height: 600 }}>
  <div style={styles.box}>boxed</div>
</div>`

	c := Ingest(src)
	el := onlyElement(t, c)
	// No parsable pairs: geometry falls back to defaults, content survives.
	if el.Content != "boxed" {
		t.Errorf("content = %q", el.Content)
	}
}

func TestRoundTrip(t *testing.T) {
	c := scene.NewCanvas("canvas_rt", "RT", 800, 600, "#ffffff")
	c.Add(&scene.Element{
		ID: "t1", Kind: scene.KindText, Content: "Title",
		X: 50, Y: 40, Width: 200, Height: 40, ZIndex: 1, Visible: true,
		Style: scene.Style{Color: "#111111", FontSize: 32},
	})
	c.Add(&scene.Element{
		ID: "box", Kind: scene.KindContainer,
		X: 100, Y: 120, Width: 400, Height: 300, ZIndex: 2, Visible: true,
		Children: []string{"s1"},
		Style:    scene.Style{BackgroundColor: "#eeeeee"},
	})
	c.Add(&scene.Element{
		ID: "s1", Kind: scene.KindShape, ParentID: "box",
		X: 150, Y: 170, Width: 80, Height: 80, ZIndex: 3, Visible: true,
		Style: scene.Style{BackgroundColor: "#e94560", BorderRadius: 40},
	})

	for _, variant := range []codegen.Variant{codegen.VariantUntyped, codegen.VariantTyped} {
		src := codegen.Component(c, variant == codegen.VariantTyped)
		got := Ingest(src)

		if got.Width != 800 || got.Height != 600 {
			t.Errorf("%s: canvas = %dx%d", variant, got.Width, got.Height)
		}
		if len(got.Elements) != len(c.Elements) {
			t.Fatalf("%s: elements = %d, want %d\n%s", variant, len(got.Elements), len(c.Elements), src)
		}

		wantKinds := map[scene.Kind]int{}
		for _, el := range c.Elements {
			wantKinds[el.Kind]++
		}
		gotKinds := map[scene.Kind]int{}
		for _, el := range got.Elements {
			gotKinds[el.Kind]++
		}
		for k, n := range wantKinds {
			if gotKinds[k] != n {
				t.Errorf("%s: kind %s count = %d, want %d", variant, k, gotKinds[k], n)
			}
		}
		if !got.CheckTree() {
			t.Errorf("%s: tree invariant broken", variant)
		}
	}
}

// Synthesis writes a child's offset from its parent's corner, while ingestion
// reads offsets from the padded content box. Positions inside padded
// containers therefore drift by the padding on every cycle; only element count
// and kind are stable. This pins the drift so a change to it is deliberate.
func TestRoundTripShiftsPaddedChildren(t *testing.T) {
	c := scene.NewCanvas("canvas_pad", "Pad", 800, 600, "#ffffff")
	c.Add(&scene.Element{
		ID: "box", Kind: scene.KindContainer,
		X: 100, Y: 100, Width: 400, Height: 300, ZIndex: 1, Visible: true,
		Children: []string{"s1"},
		Style:    scene.Style{BackgroundColor: "#eeeeee", Padding: 24},
	})
	c.Add(&scene.Element{
		ID: "s1", Kind: scene.KindShape, ParentID: "box",
		X: 130, Y: 150, Width: 50, Height: 50, ZIndex: 2, Visible: true,
		Style: scene.Style{BackgroundColor: "#e94560"},
	})

	got := Ingest(codegen.Component(c, false))

	var shape *scene.Element
	for _, el := range got.Elements {
		if el.Kind == scene.KindShape {
			shape = el
		}
	}
	if shape == nil {
		t.Fatal("shape lost in round trip")
	}
	if shape.X != 154 || shape.Y != 174 {
		t.Errorf("child at (%g,%g), want (154,174): offsets inside a padded container shift by the padding", shape.X, shape.Y)
	}
}
