package scene

import (
	"fmt"

	"github.com/matzehuels/anchorbox/pkg/errors"
	"github.com/matzehuels/anchorbox/pkg/layout"
)

// Scene is the file form of a [layout.Container].
type Scene struct {
	Name   string    `json:"name,omitempty" toml:"name,omitempty"`
	Width  string    `json:"width,omitempty" toml:"width,omitempty"`
	Height string    `json:"height,omitempty" toml:"height,omitempty"`
	Boxes  []BoxDecl `json:"boxes" toml:"boxes"`
}

// BoxDecl is the file form of a [layout.Box]. Sizes are "wrap", "match",
// pixels ("120") or percentages ("25%"); margins are pixels or percentages.
type BoxDecl struct {
	ID     string `json:"id,omitempty" toml:"id,omitempty"`
	Width  string `json:"width,omitempty" toml:"width,omitempty"`
	Height string `json:"height,omitempty" toml:"height,omitempty"`

	MinWidth  string `json:"min_width,omitempty" toml:"min_width,omitempty"`
	MaxWidth  string `json:"max_width,omitempty" toml:"max_width,omitempty"`
	MinHeight string `json:"min_height,omitempty" toml:"min_height,omitempty"`
	MaxHeight string `json:"max_height,omitempty" toml:"max_height,omitempty"`

	Margin *Edges `json:"margin,omitempty" toml:"margin,omitempty"`
	Anchor *Edges `json:"anchor,omitempty" toml:"anchor,omitempty"`

	Visibility string `json:"visibility,omitempty" toml:"visibility,omitempty"`

	// Content is the intrinsic size reported by the content measurer.
	Content *Content `json:"content,omitempty" toml:"content,omitempty"`
}

// Edges holds one string per box edge.
type Edges struct {
	Left   string `json:"left,omitempty" toml:"left,omitempty"`
	Top    string `json:"top,omitempty" toml:"top,omitempty"`
	Right  string `json:"right,omitempty" toml:"right,omitempty"`
	Bottom string `json:"bottom,omitempty" toml:"bottom,omitempty"`
}

func (e *Edges) array() [4]string {
	if e == nil {
		return [4]string{}
	}
	return [4]string{layout.Left: e.Left, layout.Top: e.Top, layout.Right: e.Right, layout.Bottom: e.Bottom}
}

// Content is an intrinsic content size in pixels.
type Content struct {
	Width  int `json:"width" toml:"width"`
	Height int `json:"height" toml:"height"`
}

// Container converts the scene to a layout container. Boxes with content
// carry a [layout.Size] in Box.Data for [layout.ContentMeasurer].
//
// Malformed values fail with INVALID_SCENE. Anchor references are not checked
// here; that is the layout pass's job.
func (s *Scene) Container() (layout.Container, error) {
	var c layout.Container
	var err error
	if c.Width, err = ParseConstraint(s.Width); err != nil {
		return c, errors.Wrap(errors.ErrCodeInvalidScene, err, "container width")
	}
	if c.Height, err = ParseConstraint(s.Height); err != nil {
		return c, errors.Wrap(errors.ErrCodeInvalidScene, err, "container height")
	}

	c.Boxes = make([]layout.Box, 0, len(s.Boxes))
	for i, d := range s.Boxes {
		b, err := d.box()
		if err != nil {
			name := d.ID
			if name == "" {
				name = fmt.Sprintf("#%d", i)
			}
			return c, errors.Wrap(errors.ErrCodeInvalidScene, err, "box %s", name)
		}
		c.Boxes = append(c.Boxes, b)
	}
	return c, nil
}

func (d BoxDecl) box() (layout.Box, error) {
	b := layout.Box{ID: d.ID}
	if err := errors.ValidateBoxID(d.ID); err != nil {
		return b, err
	}

	var err error
	if b.Width, err = parseAxis(d.Width, d.MinWidth, d.MaxWidth); err != nil {
		return b, err
	}
	if b.Height, err = parseAxis(d.Height, d.MinHeight, d.MaxHeight); err != nil {
		return b, err
	}

	margins := d.Margin.array()
	for _, e := range layout.Edges {
		if b.Margin[e], err = ParseMargin(margins[e]); err != nil {
			return b, err
		}
	}
	b.Anchor = d.Anchor.array()

	switch d.Visibility {
	case "", "visible":
		b.Visibility = layout.Visible
	case "collapsed":
		b.Visibility = layout.Collapsed
	default:
		return b, errors.New(errors.ErrCodeInvalidScene, "unknown visibility %q", d.Visibility)
	}

	if d.Content != nil {
		b.Data = layout.Size{Width: d.Content.Width, Height: d.Content.Height}
	}
	return b, nil
}

func parseAxis(size, lo, hi string) (layout.Dimension, error) {
	dim, err := ParseDimension(size)
	if err != nil {
		return dim, err
	}
	if dim.Min, err = parseFraction(lo); err != nil {
		return dim, err
	}
	if dim.Max, err = parseFraction(hi); err != nil {
		return dim, err
	}
	return dim, nil
}
