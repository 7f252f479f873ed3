package scene

import "testing"

func buildCanvas(els ...*Element) *Canvas {
	c := NewCanvas("canvas_test", "Test", 800, 600, "#ffffff")
	for _, el := range els {
		c.Add(el)
	}
	return c
}

func TestRepairDanglingParent(t *testing.T) {
	c := buildCanvas(
		&Element{ID: "a", Kind: KindShape, ParentID: "missing"},
	)
	c.Repair()

	if c.Element("a").ParentID != "" {
		t.Errorf("dangling parent not cleared: %q", c.Element("a").ParentID)
	}
	if !c.CheckTree() {
		t.Error("tree invariant broken after repair")
	}
}

func TestRepairNonContainerParent(t *testing.T) {
	c := buildCanvas(
		&Element{ID: "txt", Kind: KindText},
		&Element{ID: "a", Kind: KindShape, ParentID: "txt"},
	)
	c.Repair()

	if c.Element("a").ParentID != "" {
		t.Error("parent reference to a text element should be cleared")
	}
}

func TestRepairRebuildsChildren(t *testing.T) {
	c := buildCanvas(
		&Element{ID: "grp", Kind: KindGroup, Children: []string{"ghost", "a", "a"}},
		&Element{ID: "a", Kind: KindShape, ParentID: "grp"},
		&Element{ID: "b", Kind: KindShape, ParentID: "grp"},
	)
	c.Repair()

	grp := c.Element("grp")
	if len(grp.Children) != 2 {
		t.Fatalf("children = %v, want [a b]", grp.Children)
	}
	if grp.Children[0] != "a" || grp.Children[1] != "b" {
		t.Errorf("children = %v, want a first (valid order kept), b appended", grp.Children)
	}
	if !c.CheckTree() {
		t.Error("tree invariant broken after repair")
	}
}

func TestRepairBreaksParentCycle(t *testing.T) {
	c := buildCanvas(
		&Element{ID: "g1", Kind: KindGroup, ParentID: "g2", Children: []string{"g2"}},
		&Element{ID: "g2", Kind: KindGroup, ParentID: "g1", Children: []string{"g1"}},
	)
	c.Repair()

	if c.Element("g1").ParentID != "" && c.Element("g2").ParentID != "" {
		t.Error("parent cycle not broken")
	}
	if !c.CheckTree() {
		t.Error("tree invariant broken after repair")
	}
}

func TestRepairClearsLeafChildren(t *testing.T) {
	c := buildCanvas(
		&Element{ID: "txt", Kind: KindText, Children: []string{"a"}},
		&Element{ID: "a", Kind: KindShape},
	)
	c.Repair()

	if c.Element("txt").Children != nil {
		t.Error("leaf element kept a child list")
	}
}

func TestIsDescendant(t *testing.T) {
	c := buildCanvas(
		&Element{ID: "root", Kind: KindContainer, Children: []string{"mid"}},
		&Element{ID: "mid", Kind: KindGroup, ParentID: "root", Children: []string{"leaf"}},
		&Element{ID: "leaf", Kind: KindShape, ParentID: "mid"},
	)

	tests := []struct {
		id, ancestor string
		want         bool
	}{
		{"leaf", "root", true},
		{"leaf", "mid", true},
		{"mid", "root", true},
		{"root", "leaf", false},
		{"root", "root", false},
		{"leaf", "leaf", false},
	}
	for _, tt := range tests {
		if got := c.IsDescendant(tt.id, tt.ancestor); got != tt.want {
			t.Errorf("IsDescendant(%q, %q) = %v, want %v", tt.id, tt.ancestor, got, tt.want)
		}
	}
}

func TestRemoveSubtree(t *testing.T) {
	c := buildCanvas(
		&Element{ID: "root", Kind: KindContainer, Children: []string{"mid"}},
		&Element{ID: "mid", Kind: KindGroup, ParentID: "root", Children: []string{"leaf"}},
		&Element{ID: "leaf", Kind: KindShape, ParentID: "mid"},
		&Element{ID: "other", Kind: KindShape},
	)

	c.Remove("mid")

	if c.Element("mid") != nil || c.Element("leaf") != nil {
		t.Error("subtree not fully removed")
	}
	if c.Element("root") == nil || c.Element("other") == nil {
		t.Error("unrelated elements removed")
	}
	if len(c.Element("root").Children) != 0 {
		t.Errorf("parent still lists removed child: %v", c.Element("root").Children)
	}
	if len(c.Order) != 2 {
		t.Errorf("order = %v, want 2 entries", c.Order)
	}
}

func TestInZOrderStable(t *testing.T) {
	c := buildCanvas(
		&Element{ID: "a", Kind: KindShape, ZIndex: 2},
		&Element{ID: "b", Kind: KindShape, ZIndex: 1},
		&Element{ID: "c", Kind: KindShape, ZIndex: 2},
	)

	got := c.InZOrder()
	want := []string{"b", "a", "c"}
	for i, el := range got {
		if el.ID != want[i] {
			t.Fatalf("InZOrder[%d] = %q, want %q", i, el.ID, want[i])
		}
	}
}

func TestCloneIsDeep(t *testing.T) {
	c := buildCanvas(&Element{ID: "a", Kind: KindShape, X: 10})
	clone := c.Clone()

	clone.Element("a").X = 99
	clone.Order[0] = "mutated"

	if c.Element("a").X != 10 {
		t.Error("clone shares element with original")
	}
	if c.Order[0] != "a" {
		t.Error("clone shares order slice with original")
	}
}
