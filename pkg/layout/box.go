package layout

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/matzehuels/anchorbox/pkg/errors"
)

// SizeKind selects how a [Dimension] is turned into a measurement request.
type SizeKind int

const (
	// SizeWrap leaves the size to the [Measurer], bounded by the space left
	// after margins. It is the zero value.
	SizeWrap SizeKind = iota
	// SizeFixed requests Dimension.Px pixels.
	SizeFixed
	// SizePercent requests Dimension.Percent of the container's measured size.
	SizePercent
	// SizeMatchParent fills the space left after margins.
	SizeMatchParent
)

func (k SizeKind) String() string {
	switch k {
	case SizeFixed:
		return "fixed"
	case SizePercent:
		return "percent"
	case SizeMatchParent:
		return "match"
	}
	return "wrap"
}

// Dimension is the size spec of one axis of a box.
//
// Min and Max are percentage-of-container clamps (0 means unset). They apply
// to fixed and percentage sizes only; wrap and match sizes are whatever the
// measurer returns.
type Dimension struct {
	Kind    SizeKind
	Px      int
	Percent float64
	Min     float64
	Max     float64
}

// Fixed returns a fixed pixel dimension.
func Fixed(px int) Dimension { return Dimension{Kind: SizeFixed, Px: px} }

// Percent returns a dimension of p (0.0–1.0) of the container size.
func Percent(p float64) Dimension { return Dimension{Kind: SizePercent, Percent: p} }

// WrapContent returns a dimension sized by the measurer.
func WrapContent() Dimension { return Dimension{} }

// MatchParent returns a dimension that fills the available space.
func MatchParent() Dimension { return Dimension{Kind: SizeMatchParent} }

// WithMin returns d clamped below at p of the container size.
func (d Dimension) WithMin(p float64) Dimension { d.Min = p; return d }

// WithMax returns d clamped above at p of the container size.
func (d Dimension) WithMax(p float64) Dimension { d.Max = p; return d }

// exact reports whether the dimension resolves to a pixel value on its own.
func (d Dimension) exact() bool { return d.Kind == SizeFixed || d.Kind == SizePercent }

// resolve returns the requested pixel size for fixed and percentage kinds.
func (d Dimension) resolve(parent int) int {
	switch d.Kind {
	case SizeFixed:
		return d.clamp(d.Px, parent)
	case SizePercent:
		return d.clamp(roundPx(float64(parent)*d.Percent), parent)
	}
	return 0
}

// clamp applies the min clamp first and only then the max clamp, each
// against the same axis.
func (d Dimension) clamp(v, parent int) int {
	if d.Min > 0 {
		if lo := roundPx(float64(parent) * d.Min); v < lo {
			return lo
		}
	}
	if d.Max > 0 {
		if hi := roundPx(float64(parent) * d.Max); v > hi {
			return hi
		}
	}
	return v
}

func (d Dimension) validate(name string) error {
	if d.Kind == SizeFixed && d.Px < 0 {
		return errors.New(errors.ErrCodeInvalidMeasurement, "%s is negative (%dpx)", name, d.Px)
	}
	if d.Kind == SizePercent {
		if err := errors.ValidateFraction(name, d.Percent, 0, 1); err != nil {
			return err
		}
	}
	if err := errors.ValidateFraction(name+" min", d.Min, 0, 1); err != nil {
		return err
	}
	return errors.ValidateFraction(name+" max", d.Max, 0, 1)
}

// MarginSpec is the static margin of one edge. A non-zero Percent overrides Px.
type MarginSpec struct {
	Px      int
	Percent float64
}

// Px returns a fixed pixel margin.
func Px(px int) MarginSpec { return MarginSpec{Px: px} }

// Pct returns a margin of p of the container size on the edge's axis.
func Pct(p float64) MarginSpec { return MarginSpec{Percent: p} }

func (m MarginSpec) resolve(extent int) int {
	if m.Percent != 0 {
		return roundPx(float64(extent) * m.Percent)
	}
	return m.Px
}

// Margin is a resolved relative margin: the pixel offset an anchored edge
// resolved to. Valid is false for edges without an anchor, which fall back
// to the static [MarginSpec]. Near edges (Left, Top) hold the distance from
// the container's near edge; far edges (Right, Bottom) hold the coordinate of
// the box's far edge.
//
// Margin encodes to JSON as a number, or null when not valid.
type Margin struct {
	Px    int
	Valid bool
}

// MarshalJSON implements json.Marshaler.
func (m Margin) MarshalJSON() ([]byte, error) {
	if !m.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(m.Px)
}

// UnmarshalJSON implements json.Unmarshaler.
func (m *Margin) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*m = Margin{}
		return nil
	}
	if err := json.Unmarshal(b, &m.Px); err != nil {
		return err
	}
	m.Valid = true
	return nil
}

// Box is one child of a [Container].
//
// Each edge is placed either by its static Margin or, when Anchor names
// another box, relative to that box. Anchor[Left] = "a" places this box's
// left edge after a's right edge; Anchor[Right] = "a" places this box's right
// edge before a's left edge; Top and Bottom work the same way vertically.
type Box struct {
	// ID identifies the box among its siblings. The empty ID is anonymous:
	// the box may anchor to others but cannot be anchored to.
	ID string

	Width  Dimension
	Height Dimension

	Margin [4]MarginSpec
	Anchor [4]string

	Visibility Visibility

	// Data is an opaque host payload handed to the [Measurer].
	Data any
}

// Anchored reports whether the box anchors any of its edges.
func (b *Box) Anchored() bool {
	for _, ref := range b.Anchor {
		if ref != "" {
			return true
		}
	}
	return false
}

func (b *Box) dimension(a axis) Dimension {
	if a == yAxis {
		return b.Height
	}
	return b.Width
}

func (b *Box) validate() error {
	if err := b.Width.validate("width"); err != nil {
		return err
	}
	if err := b.Height.validate("height"); err != nil {
		return err
	}
	for _, d := range Edges {
		if err := errors.ValidateFraction(d.String()+" margin", b.Margin[d].Percent, -1, 1); err != nil {
			return err
		}
	}
	return nil
}

// Size is a measured width and height in pixels.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

func (s Size) along(a axis) int {
	if a == yAxis {
		return s.Height
	}
	return s.Width
}

// Rect is an absolute rectangle relative to the container's top-left corner.
type Rect struct {
	Left   int `json:"left"`
	Top    int `json:"top"`
	Right  int `json:"right"`
	Bottom int `json:"bottom"`
}

func (r Rect) String() string {
	return fmt.Sprintf("(%d,%d)-(%d,%d)", r.Left, r.Top, r.Right, r.Bottom)
}

// Container owns the boxes of one layout pass and the constraints the host
// imposes on the container's own size.
type Container struct {
	Width  Constraint
	Height Constraint
	Boxes  []Box
}

// roundPx rounds half up (2.5 -> 3, -2.5 -> -2).
func roundPx(v float64) int {
	return int(math.Floor(v + 0.5))
}
