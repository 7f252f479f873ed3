package engine

import (
	"testing"

	"github.com/postcraft/postcraft/backend-go/internal/scene"
)

func layerFixture() *State {
	st := newTestState()
	st.Canvas.Add(&scene.Element{ID: "box", Kind: scene.KindContainer, ZIndex: 1, Visible: true, Children: []string{"a", "b"}})
	st.Canvas.Add(&scene.Element{ID: "a", Kind: scene.KindShape, ParentID: "box", ZIndex: 2, Visible: true})
	st.Canvas.Add(&scene.Element{ID: "b", Kind: scene.KindShape, ParentID: "box", ZIndex: 3, Visible: true})
	st.Canvas.Add(&scene.Element{ID: "loose", Kind: scene.KindShape, ZIndex: 4, Visible: true})
	st.Canvas.Add(&scene.Element{ID: "grp", Kind: scene.KindGroup, ZIndex: 5, Visible: true})
	return st
}

func TestMoveLayerInside(t *testing.T) {
	st := layerFixture()

	Apply(st, Command{Type: CmdMoveLayer, ElementID: "loose", TargetID: "grp", Position: "inside"})

	if st.Canvas.Element("loose").ParentID != "grp" {
		t.Fatal("element not reparented")
	}
	if !st.Expanded["grp"] {
		t.Error("drop target not auto-expanded")
	}
	if !st.Canvas.CheckTree() {
		t.Error("tree invariant broken")
	}

	// Repeating the drop does not duplicate the child entry.
	Apply(st, Command{Type: CmdMoveLayer, ElementID: "loose", TargetID: "grp", Position: "inside"})
	if n := len(st.Canvas.Element("grp").Children); n != 1 {
		t.Errorf("children = %v, want one entry", st.Canvas.Element("grp").Children)
	}
}

func TestMoveLayerBeforeSibling(t *testing.T) {
	st := layerFixture()

	Apply(st, Command{Type: CmdMoveLayer, ElementID: "loose", TargetID: "b", Position: "before"})

	box := st.Canvas.Element("box")
	if st.Canvas.Element("loose").ParentID != "box" {
		t.Fatal("element did not adopt the target's parent")
	}
	want := []string{"a", "loose", "b"}
	if len(box.Children) != 3 {
		t.Fatalf("children = %v", box.Children)
	}
	for i, id := range want {
		if box.Children[i] != id {
			t.Fatalf("children = %v, want %v", box.Children, want)
		}
	}
	if !st.Canvas.CheckTree() {
		t.Error("tree invariant broken")
	}
}

func TestMoveLayerAfterRoot(t *testing.T) {
	st := layerFixture()

	Apply(st, Command{Type: CmdMoveLayer, ElementID: "a", TargetID: "loose", Position: "after"})

	if st.Canvas.Element("a").ParentID != "" {
		t.Fatal("element did not become a root")
	}
	order := st.Canvas.Order
	ai, li := -1, -1
	for i, id := range order {
		switch id {
		case "a":
			ai = i
		case "loose":
			li = i
		}
	}
	if ai != li+1 {
		t.Errorf("order = %v, want a directly after loose", order)
	}
	if containsIDIn(st.Canvas.Element("box").Children, "a") {
		t.Error("old parent still lists the moved element")
	}
	if !st.Canvas.CheckTree() {
		t.Error("tree invariant broken")
	}
}

func TestMoveLayerRejections(t *testing.T) {
	st := layerFixture()
	before := len(st.Canvas.Element("box").Children)

	tests := []struct {
		name string
		cmd  Command
	}{
		{"onto itself", Command{Type: CmdMoveLayer, ElementID: "a", TargetID: "a", Position: "inside"}},
		{"missing source", Command{Type: CmdMoveLayer, ElementID: "ghost", TargetID: "box", Position: "inside"}},
		{"missing target", Command{Type: CmdMoveLayer, ElementID: "a", TargetID: "ghost", Position: "inside"}},
		{"into own descendant", Command{Type: CmdMoveLayer, ElementID: "box", TargetID: "a", Position: "before"}},
		{"inside a leaf", Command{Type: CmdMoveLayer, ElementID: "loose", TargetID: "a", Position: "inside"}},
		{"unknown position", Command{Type: CmdMoveLayer, ElementID: "a", TargetID: "b", Position: "sideways"}},
	}
	for _, tt := range tests {
		Apply(st, tt.cmd)
		if !st.Canvas.CheckTree() {
			t.Errorf("%s: tree invariant broken", tt.name)
		}
	}

	if st.Canvas.Element("box").ParentID != "" {
		t.Error("container reparented into its own descendant")
	}
	if st.Canvas.Element("a").ParentID != "box" {
		t.Errorf("a.ParentID = %q, detached by a rejected move", st.Canvas.Element("a").ParentID)
	}
	if len(st.Canvas.Element("box").Children) != before {
		t.Errorf("children changed by rejected moves: %v", st.Canvas.Element("box").Children)
	}
}

func TestMoveLayerAllCombinations(t *testing.T) {
	ids := []string{"box", "a", "b", "loose", "grp"}
	positions := []DropPosition{DropBefore, DropAfter, DropInside}

	for _, src := range ids {
		for _, tgt := range ids {
			for _, pos := range positions {
				st := layerFixture()
				Apply(st, Command{Type: CmdMoveLayer, ElementID: src, TargetID: tgt, Position: pos})
				if !st.Canvas.CheckTree() {
					t.Errorf("move %s %s %s broke the tree invariant", src, pos, tgt)
				}
				if len(st.Canvas.Elements) != 5 {
					t.Errorf("move %s %s %s lost elements", src, pos, tgt)
				}
			}
		}
	}
}

func TestToggleLayer(t *testing.T) {
	st := layerFixture()

	Apply(st, Command{Type: CmdToggleLayer, ElementID: "box"})
	if !st.Expanded["box"] {
		t.Error("layer not expanded")
	}
	Apply(st, Command{Type: CmdToggleLayer, ElementID: "box"})
	if st.Expanded["box"] {
		t.Error("layer not collapsed")
	}

	Apply(st, Command{Type: CmdToggleLayer, ElementID: "ghost"})
	if st.Expanded["ghost"] {
		t.Error("expansion recorded for a missing element")
	}
}
