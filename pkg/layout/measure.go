package layout

import "fmt"

// Mode is the kind of limit a [Constraint] places on a size.
type Mode int

const (
	// ModeUnspecified places no limit. It is the zero value.
	ModeUnspecified Mode = iota
	// ModeExactly requires exactly Size pixels.
	ModeExactly
	// ModeAtMost allows up to Size pixels.
	ModeAtMost
)

func (m Mode) String() string {
	switch m {
	case ModeExactly:
		return "exact"
	case ModeAtMost:
		return "at_most"
	}
	return "unspecified"
}

// Constraint is a (mode, size) pair bounding one axis of a measurement.
// Size is ignored for ModeUnspecified.
type Constraint struct {
	Mode Mode
	Size int
}

// Exactly returns a constraint requiring px pixels.
func Exactly(px int) Constraint { return Constraint{Mode: ModeExactly, Size: px} }

// AtMost returns a constraint allowing up to px pixels.
func AtMost(px int) Constraint { return Constraint{Mode: ModeAtMost, Size: px} }

// Unspecified returns an unbounded constraint.
func Unspecified() Constraint { return Constraint{} }

// String formats c as "exact:200", "at_most:200" or "unspecified".
func (c Constraint) String() string {
	if c.Mode == ModeUnspecified {
		return c.Mode.String()
	}
	return fmt.Sprintf("%s:%d", c.Mode, c.Size)
}

// initial is the container size the pass starts from.
func (c Constraint) initial() int {
	if c.Mode == ModeUnspecified {
		return 0
	}
	return c.Size
}

// ResolveSize reconciles a desired content size with a constraint: exact
// constraints win, at-most constraints cap, unspecified ones pass through.
func ResolveSize(c Constraint, desired int) int {
	switch c.Mode {
	case ModeExactly:
		return c.Size
	case ModeAtMost:
		return min(desired, c.Size)
	}
	return desired
}

// childConstraint derives the constraint handed to the measurer for one axis
// of a box. parent is the container's constraint, inset the margins on both
// sides of the axis and extent the container's current measured size.
//
//	parent \ child   fixed/percent   match          wrap
//	Exactly          Exactly(px)     Exactly(avail) AtMost(avail)
//	AtMost           Exactly(px)     AtMost(avail)  AtMost(avail)
//	Unspecified      Exactly(px)     Unspecified    Unspecified
func childConstraint(parent Constraint, inset int, d Dimension, extent int) Constraint {
	if d.exact() {
		return Exactly(d.resolve(extent))
	}
	avail := max(0, parent.Size-inset)
	switch parent.Mode {
	case ModeExactly:
		if d.Kind == SizeMatchParent {
			return Exactly(avail)
		}
		return AtMost(avail)
	case ModeAtMost:
		return AtMost(avail)
	}
	return Unspecified()
}

// Measurer produces the size of a box under the given constraints. It is
// called exactly once per visible box per layout pass. A negative result is
// rejected with INVALID_MEASUREMENT.
type Measurer interface {
	Measure(box *Box, width, height Constraint) (Size, error)
}

// MeasureFunc adapts a function to the [Measurer] interface.
type MeasureFunc func(box *Box, width, height Constraint) (Size, error)

// Measure calls f.
func (f MeasureFunc) Measure(box *Box, width, height Constraint) (Size, error) {
	return f(box, width, height)
}

// ContentMeasurer sizes boxes from an intrinsic content size carried in
// Box.Data as a [Size] or *Size. Boxes without one have empty content.
type ContentMeasurer struct{}

// Measure implements [Measurer].
func (ContentMeasurer) Measure(box *Box, width, height Constraint) (Size, error) {
	var content Size
	switch v := box.Data.(type) {
	case Size:
		content = v
	case *Size:
		if v != nil {
			content = *v
		}
	}
	return Size{
		Width:  ResolveSize(width, content.Width),
		Height: ResolveSize(height, content.Height),
	}, nil
}
