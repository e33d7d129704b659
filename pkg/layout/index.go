package layout

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/anchorbox/pkg/errors"
)

type state int

const (
	unvisited state = iota
	inProgress
	resolved
)

// node is the per-pass record of one box.
type node struct {
	box     *Box
	index   int
	anchors [4]*node

	state   state
	size    Size
	margins [4]Margin
}

func (n *node) collapsed() bool { return n.box.Visibility == Collapsed }

// anchor returns the target of edge d, or nil for None and unanchored edges.
func (n *node) anchor(d Direction) *node {
	if d == None {
		return nil
	}
	return n.anchors[d]
}

func (n *node) name() string { return BoxName(n.box.ID, n.index) }

// BoxName labels a box in errors and graphs; anonymous boxes use "#index".
func BoxName(id string, index int) string {
	if id != "" {
		return id
	}
	return fmt.Sprintf("#%d", index)
}

// pass holds the state of a single layout pass. It is discarded afterwards.
type pass struct {
	constraint [2]Constraint
	extent     [2]int

	nodes []*node
	byID  map[string]*node

	measurer     Measurer
	measurements int
	logger       *log.Logger
}

// newPass indexes the container's boxes and links every anchor to its target.
func newPass(c *Container) (*pass, error) {
	p := &pass{
		constraint: [2]Constraint{c.Width, c.Height},
		extent:     [2]int{c.Width.initial(), c.Height.initial()},
		nodes:      make([]*node, 0, len(c.Boxes)),
		byID:       make(map[string]*node, len(c.Boxes)),
		logger:     log.NewWithOptions(io.Discard, log.Options{}),
	}
	for _, a := range axes {
		if cs := p.constraint[a]; cs.Mode != ModeUnspecified && cs.Size < 0 {
			return nil, errors.New(errors.ErrCodeInvalidMeasurement, "container %s constraint %s is negative", a, cs)
		}
	}

	for i := range c.Boxes {
		b := &c.Boxes[i]
		n := &node{box: b, index: i}
		if err := b.validate(); err != nil {
			return nil, errors.Wrap(errors.GetCode(err), err, "box %s", n.name())
		}
		if b.ID != "" {
			if _, dup := p.byID[b.ID]; dup {
				return nil, errors.New(errors.ErrCodeDuplicateID, "box id %q is declared more than once", b.ID)
			}
			p.byID[b.ID] = n
		}
		p.nodes = append(p.nodes, n)
	}

	for _, n := range p.nodes {
		for _, d := range Edges {
			ref := n.box.Anchor[d]
			if ref == "" {
				continue
			}
			target, ok := p.byID[ref]
			if !ok {
				return nil, errors.New(errors.ErrCodeReferenceNotFound,
					"box %s anchors its %s edge to unknown box %q", n.name(), d, ref)
			}
			n.anchors[d] = target
		}
	}
	return p, nil
}
