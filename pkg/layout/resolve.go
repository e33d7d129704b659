package layout

import (
	"fmt"

	"github.com/matzehuels/anchorbox/pkg/errors"
)

// resolve brings n to the resolved state and returns the boundary value a
// dependent box anchoring through direction d needs:
//
//	Left   the right edge of n (dependent sits after it)
//	Top    the bottom edge of n
//	Right  the left edge of n (dependent sits before it)
//	Bottom the top edge of n
//	None   0
//
// Each visible box is measured once; later calls reuse its size. Collapsed
// boxes are never measured: they forward d to their own anchor on that edge,
// or, without one, report the container edge.
func (p *pass) resolve(n *node, d Direction) (int, error) {
	if n.state == resolved {
		return p.boundary(n, d), nil
	}
	if n.collapsed() {
		if next := n.anchor(d); next != nil {
			return p.resolve(next, d)
		}
		return p.containerBoundary(d), nil
	}
	// Unreachable after detectCycle; guards callers that skip it.
	if n.state == inProgress {
		return 0, errors.New(errors.ErrCodeCycleDetected,
			"box %s was reached again while resolving its own anchors", n.name())
	}

	n.state = inProgress
	var margins [4]Margin
	for _, e := range Edges {
		target := n.anchors[e]
		if target == nil {
			continue
		}
		v, err := p.resolve(target, e)
		if err != nil {
			return 0, err
		}
		static := n.box.Margin[e].resolve(p.extent[e.axis()])
		if e.Near() {
			margins[e] = Margin{Px: static + v, Valid: true}
		} else {
			margins[e] = Margin{Px: v - static, Valid: true}
		}
	}

	size, err := p.measure(n, margins)
	if err != nil {
		return 0, err
	}
	n.size = size
	n.margins = margins
	n.state = resolved

	p.logger.Debug("resolved box", "box", n.name(), "width", size.Width, "height", size.Height)
	return p.boundary(n, d), nil
}

// boundary reads the edge of a resolved box that faces a dependent anchoring
// through d.
func (p *pass) boundary(n *node, d Direction) int {
	switch d {
	case Left:
		return p.position(n, xAxis) + n.size.Width
	case Top:
		return p.position(n, yAxis) + n.size.Height
	case Right:
		return p.position(n, xAxis)
	case Bottom:
		return p.position(n, yAxis)
	}
	return 0
}

// containerBoundary is what a collapsed box without an onward anchor
// reports: the container's near edge for Left and Top, its far edge for
// Right and Bottom.
func (p *pass) containerBoundary(d Direction) int {
	switch d {
	case Right:
		return p.extent[xAxis]
	case Bottom:
		return p.extent[yAxis]
	}
	return 0
}

// measure builds the per-axis constraints for n and calls the measurer.
func (p *pass) measure(n *node, margins [4]Margin) (Size, error) {
	var cs [2]Constraint
	for _, a := range axes {
		inset := p.inset(n, margins, a.near()) + p.inset(n, margins, a.far())
		cs[a] = childConstraint(p.constraint[a], inset, n.box.dimension(a), p.extent[a])
	}

	size, err := p.measurer.Measure(n.box, cs[xAxis], cs[yAxis])
	p.measurements++
	if err != nil {
		// Host failures keep their own code, if any.
		return Size{}, fmt.Errorf("measure box %s: %w", n.name(), err)
	}
	if size.Width < 0 || size.Height < 0 {
		return Size{}, errors.New(errors.ErrCodeInvalidMeasurement,
			"box %s measured to negative size %dx%d", n.name(), size.Width, size.Height)
	}
	return size, nil
}

// inset is the space edge d takes away from the container when sizing n.
// A resolved far margin is a coordinate, so it becomes the distance to the
// container's far edge.
func (p *pass) inset(n *node, margins [4]Margin, d Direction) int {
	a := d.axis()
	if m := margins[d]; m.Valid {
		if d.Near() {
			return m.Px
		}
		return p.extent[a] - m.Px
	}
	return n.box.Margin[d].resolve(p.extent[a])
}
