package engine

// DropPosition says where a dragged layer lands relative to the drop target.
type DropPosition string

const (
	DropBefore DropPosition = "before"
	DropAfter  DropPosition = "after"
	DropInside DropPosition = "inside"
)

// moveLayer reparents and reorders an element after a layer-panel drag.
//
// Moving an element into its own descendant would create a cycle and is
// rejected as a no-op, as is any unrecognized drop position. The bidirectional
// parent/child invariant is repaired before returning on every accepted move.
func (st *State) moveLayer(srcID, tgtID string, pos DropPosition) {
	c := st.Canvas
	if srcID == tgtID {
		return
	}
	src := c.Element(srcID)
	tgt := c.Element(tgtID)
	if src == nil || tgt == nil {
		return
	}
	if c.IsDescendant(tgtID, srcID) {
		return
	}
	if pos == DropInside && !tgt.Kind.CanHaveChildren() {
		return
	}
	switch pos {
	case DropBefore, DropAfter, DropInside:
	default:
		return
	}

	if oldParent := c.Element(src.ParentID); oldParent != nil {
		oldParent.Children = removeIDFrom(oldParent.Children, srcID)
	}

	switch pos {
	case DropInside:
		src.ParentID = tgtID
		if !containsIDIn(tgt.Children, srcID) {
			tgt.Children = append(tgt.Children, srcID)
		}
		// Auto-expand so the drop is visible in the panel.
		st.Expanded[tgtID] = true

	case DropBefore, DropAfter:
		src.ParentID = tgt.ParentID
		if newParent := c.Element(tgt.ParentID); newParent != nil {
			newParent.Children = removeIDFrom(newParent.Children, srcID)
			idx := indexOf(newParent.Children, tgtID)
			if idx < 0 {
				newParent.Children = append(newParent.Children, srcID)
			} else {
				if pos == DropAfter {
					idx++
				}
				newParent.Children = insertAt(newParent.Children, idx, srcID)
			}
		}

		// Splice the flat ordering next to the target.
		c.Order = removeIDFrom(c.Order, srcID)
		oidx := indexOf(c.Order, tgtID)
		if oidx < 0 {
			c.Order = append(c.Order, srcID)
		} else {
			if pos == DropAfter {
				oidx++
			}
			c.Order = insertAt(c.Order, oidx, srcID)
		}
	}

	c.Repair()
}

func removeIDFrom(ids []string, id string) []string {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

func containsIDIn(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func indexOf(ids []string, id string) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}

func insertAt(ids []string, idx int, id string) []string {
	if idx < 0 || idx > len(ids) {
		return append(ids, id)
	}
	ids = append(ids, "")
	copy(ids[idx+1:], ids[idx:])
	ids[idx] = id
	return ids
}
