package layout

import (
	"github.com/charmbracelet/log"

	"github.com/matzehuels/anchorbox/pkg/errors"
)

// Option configures a layout pass.
type Option func(*pass)

// WithLogger sets the logger used for per-box debug output.
func WithLogger(l *log.Logger) Option {
	return func(p *pass) {
		if l != nil {
			p.logger = l
		}
	}
}

// Placement is the outcome of a layout pass for one box.
type Placement struct {
	ID      string    `json:"id,omitempty"`
	Index   int       `json:"index"`
	Visible bool      `json:"visible"`
	Size    Size      `json:"size"`
	Rect    Rect      `json:"rect"`
	Margins [4]Margin `json:"margins"`
}

// Name returns the box id, or "#index" for anonymous boxes.
func (pl Placement) Name() string { return BoxName(pl.ID, pl.Index) }

// Result is the outcome of a layout pass.
type Result struct {
	Width        int         `json:"width"`
	Height       int         `json:"height"`
	Boxes        []Placement `json:"boxes"`
	Measurements int         `json:"measurements"`
}

// Lookup returns the placement of the box with the given id.
func (r *Result) Lookup(id string) (Placement, bool) {
	for _, pl := range r.Boxes {
		if pl.ID != "" && pl.ID == id {
			return pl, true
		}
	}
	return Placement{}, false
}

// Layout sizes and positions every box of c.
//
// The pass indexes the boxes, rejects dangling anchors, duplicate ids and
// anchor cycles before measuring anything, resolves each box once in
// declaration order, wraps the container on axes it does not fix exactly, and
// finally places every box against the container's final size.
//
// m is called exactly once per visible box. Collapsed boxes are never
// measured and come back with Visible set to false.
func Layout(c Container, m Measurer, opts ...Option) (*Result, error) {
	if m == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "layout requires a measurer")
	}
	p, err := newPass(&c)
	if err != nil {
		return nil, err
	}
	p.measurer = m
	for _, opt := range opts {
		opt(p)
	}

	if err := p.detectCycle(); err != nil {
		return nil, err
	}
	for _, n := range p.nodes {
		if _, err := p.resolve(n, None); err != nil {
			return nil, err
		}
	}
	p.wrap()

	p.logger.Debug("layout complete",
		"boxes", len(p.nodes),
		"width", p.extent[xAxis],
		"height", p.extent[yAxis],
		"measurements", p.measurements)

	return &Result{
		Width:        p.extent[xAxis],
		Height:       p.extent[yAxis],
		Boxes:        p.place(),
		Measurements: p.measurements,
	}, nil
}

// Validate runs the configuration checks of [Layout] without measuring.
func Validate(c Container) error {
	p, err := newPass(&c)
	if err != nil {
		return err
	}
	return p.detectCycle()
}

// Edge is one anchor declaration: the From box's edge Direction is anchored
// to the To box.
type Edge struct {
	From      string    `json:"from"`
	FromIndex int       `json:"from_index"`
	Direction Direction `json:"direction"`
	To        string    `json:"to"`
	ToIndex   int       `json:"to_index"`
}

// Graph returns the anchor edges of c in declaration order. It checks
// references but not cycles, so cyclic declarations can still be drawn.
func Graph(c Container) ([]Edge, error) {
	p, err := newPass(&c)
	if err != nil {
		return nil, err
	}
	var edges []Edge
	for _, n := range p.nodes {
		for _, d := range Edges {
			target := n.anchors[d]
			if target == nil {
				continue
			}
			edges = append(edges, Edge{
				From:      n.name(),
				FromIndex: n.index,
				Direction: d,
				To:        target.name(),
				ToIndex:   target.index,
			})
		}
	}
	return edges, nil
}
