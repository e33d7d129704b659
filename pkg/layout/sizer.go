package layout

// wrap sizes every axis the host did not fix exactly to the furthest extent
// any visible box occupies, capped by an at-most constraint. It runs once,
// after every visible box is resolved; boxes are not re-measured against the
// new size.
func (p *pass) wrap() {
	for _, a := range axes {
		c := p.constraint[a]
		if c.Mode == ModeExactly {
			continue
		}
		extent := 0
		for _, n := range p.nodes {
			if n.collapsed() {
				continue
			}
			extent = max(extent, p.occupied(n, a))
		}
		if c.Mode == ModeAtMost {
			extent = min(extent, c.Size)
		}
		p.extent[a] = extent
	}
}

// occupied is how far along axis a box n reaches, including its static far
// margin. Boxes placed only by a static far margin start at their static near
// margin, since their far-relative position depends on the size being
// computed.
func (p *pass) occupied(n *node, a axis) int {
	nearEdge, farEdge := a.near(), a.far()
	size := n.size.along(a)

	var start int
	switch {
	case n.margins[nearEdge].Valid:
		start = n.margins[nearEdge].Px
	case n.margins[farEdge].Valid:
		start = n.margins[farEdge].Px - size
	default:
		start = n.box.Margin[nearEdge].resolve(p.extent[a])
	}
	return start + size + n.box.Margin[farEdge].resolve(p.extent[a])
}
