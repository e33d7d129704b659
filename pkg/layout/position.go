package layout

// position returns the near coordinate (left or top) of a resolved box on
// axis a. The first rule that applies wins:
//
//  1. resolved near margin
//  2. resolved far margin minus size
//  3. percentage near margin
//  4. container extent minus size minus percentage far margin
//  5. fixed near margin
//  6. container extent minus size minus fixed far margin
//  7. zero
//
// An unspecified axis has no far edge until wrap, so rules 3 to 7 reduce to
// the static near margin there, matching what wrap counts as occupied.
func (p *pass) position(n *node, a axis) int {
	nearEdge, farEdge := a.near(), a.far()
	size := n.size.along(a)
	extent := p.extent[a]

	if m := n.margins[nearEdge]; m.Valid {
		return m.Px
	}
	if m := n.margins[farEdge]; m.Valid {
		return m.Px - size
	}

	near, far := n.box.Margin[nearEdge], n.box.Margin[farEdge]
	if p.constraint[a].Mode == ModeUnspecified {
		return near.resolve(0)
	}
	switch {
	case near.Percent != 0:
		return roundPx(float64(extent) * near.Percent)
	case far.Percent != 0:
		return extent - size - roundPx(float64(extent)*far.Percent)
	case near.Px != 0:
		return near.Px
	case far.Px != 0:
		return extent - size - far.Px
	}
	return 0
}

// place computes the final rectangle of every box in declaration order.
func (p *pass) place() []Placement {
	out := make([]Placement, len(p.nodes))
	for i, n := range p.nodes {
		pl := Placement{ID: n.box.ID, Index: i}
		if !n.collapsed() {
			x, y := p.position(n, xAxis), p.position(n, yAxis)
			pl.Visible = true
			pl.Size = n.size
			pl.Rect = Rect{Left: x, Top: y, Right: x + n.size.Width, Bottom: y + n.size.Height}
			pl.Margins = n.margins
		}
		out[i] = pl
	}
	return out
}
