package scene

// The element tree keeps a bidirectional invariant: for every container or
// group C, C.Children and the set of elements whose ParentID == C.ID are
// identical, and every non-empty ParentID references an existing container
// or group.

// IsDescendant reports whether id sits somewhere below ancestorID.
func (c *Canvas) IsDescendant(id, ancestorID string) bool {
	seen := 0
	for cur := c.Element(id); cur != nil && cur.ParentID != ""; cur = c.Element(cur.ParentID) {
		if cur.ParentID == ancestorID {
			return true
		}
		// Guard against a corrupted cycle.
		seen++
		if seen > len(c.Elements) {
			return false
		}
	}
	return false
}

// Repair re-establishes the bidirectional parent/child invariant.
//
// Parent pointers win: child lists are rebuilt from them, preserving the
// existing child order where it is still valid and appending strays in flat
// order. Dangling parent references are cleared, child lists on leaf kinds
// are dropped.
func (c *Canvas) Repair() {
	for _, el := range c.Elements {
		if el.ParentID == "" {
			continue
		}
		parent := c.Element(el.ParentID)
		if parent == nil || !parent.Kind.CanHaveChildren() || el.ParentID == el.ID {
			el.ParentID = ""
		}
	}

	// Break parent cycles: anything that cannot reach a root gets detached.
	for _, el := range c.Elements {
		if el.ParentID != "" && c.inParentCycle(el.ID) {
			el.ParentID = ""
		}
	}

	for _, el := range c.Elements {
		if !el.Kind.CanHaveChildren() {
			el.Children = nil
			continue
		}
		kept := el.Children[:0]
		seen := make(map[string]bool, len(el.Children))
		for _, childID := range el.Children {
			child := c.Element(childID)
			if child == nil || child.ParentID != el.ID || seen[childID] {
				continue
			}
			seen[childID] = true
			kept = append(kept, childID)
		}
		el.Children = kept
	}

	for _, id := range c.Order {
		el := c.Element(id)
		if el == nil || el.ParentID == "" {
			continue
		}
		parent := c.Element(el.ParentID)
		if !containsID(parent.Children, id) {
			parent.Children = append(parent.Children, id)
		}
	}
}

func (c *Canvas) inParentCycle(id string) bool {
	cur := c.Element(id)
	for i := 0; i <= len(c.Elements); i++ {
		if cur == nil || cur.ParentID == "" {
			return false
		}
		cur = c.Element(cur.ParentID)
		if cur != nil && cur.ID == id {
			return true
		}
	}
	return true
}

// CheckTree returns false if any part of the bidirectional invariant is broken.
func (c *Canvas) CheckTree() bool {
	for _, el := range c.Elements {
		if el.ParentID != "" {
			parent := c.Element(el.ParentID)
			if parent == nil || !parent.Kind.CanHaveChildren() || !containsID(parent.Children, el.ID) {
				return false
			}
		}
		if len(el.Children) > 0 && !el.Kind.CanHaveChildren() {
			return false
		}
		seen := make(map[string]bool, len(el.Children))
		for _, childID := range el.Children {
			child := c.Element(childID)
			if child == nil || child.ParentID != el.ID || seen[childID] {
				return false
			}
			seen[childID] = true
		}
	}
	return true
}

func containsID(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
