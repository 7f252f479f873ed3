package scene

// ElementAt returns the topmost visible, unlocked element containing the
// point, or nil. Rotated elements are tested in their own local space by
// inverting the rotation about the element center.
func (c *Canvas) ElementAt(x, y float64) *Element {
	ordered := c.InZOrder()
	for i := len(ordered) - 1; i >= 0; i-- {
		el := ordered[i]
		if !el.Visible || el.Locked {
			continue
		}
		if elementContains(el, x, y) {
			return el
		}
	}
	return nil
}

func elementContains(el *Element, x, y float64) bool {
	b := el.Bounds()
	if el.Style.Rotation != 0 {
		cx, cy := b.Center()
		inv := RotationAbout(el.Style.Rotation, cx, cy).Invert()
		x, y = inv.TransformPoint(x, y)
	}
	return b.Contains(x, y)
}
