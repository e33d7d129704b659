package layout

import (
	"strings"

	"github.com/matzehuels/anchorbox/pkg/errors"
)

// detectCycle runs a three-colour depth-first search over the anchor graph
// and reports the first cycle found, including its path. Collapsed boxes
// take part: a cycle through a collapsed box would still loop forever.
func (p *pass) detectCycle() error {
	const (
		white = iota
		gray
		black
	)
	color := make([]int, len(p.nodes))
	var stack []*node
	var cycle []*node

	var visit func(n *node) bool
	visit = func(n *node) bool {
		color[n.index] = gray
		stack = append(stack, n)
		for _, next := range n.anchors {
			if next == nil {
				continue
			}
			switch color[next.index] {
			case gray:
				cycle = closeCycle(stack, next)
				return true
			case white:
				if visit(next) {
					return true
				}
			}
		}
		stack = stack[:len(stack)-1]
		color[n.index] = black
		return false
	}

	for _, n := range p.nodes {
		if color[n.index] == white && visit(n) {
			return errors.New(errors.ErrCodeCycleDetected,
				"anchors form a cycle: %s", formatPath(cycle))
		}
	}
	return nil
}

// closeCycle returns the stack suffix starting at back, followed by back.
func closeCycle(stack []*node, back *node) []*node {
	for i, n := range stack {
		if n == back {
			path := append([]*node{}, stack[i:]...)
			return append(path, back)
		}
	}
	return []*node{back}
}

func formatPath(path []*node) string {
	names := make([]string, len(path))
	for i, n := range path {
		names[i] = n.name()
	}
	return strings.Join(names, " -> ")
}
