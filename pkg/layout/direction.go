package layout

import "fmt"

// Direction names one edge of a box. Left, Top, Right and Bottom index the
// per-edge arrays of a [Box]; None is the direction of a top-level
// resolution whose result nobody consumes.
type Direction int

const (
	Left Direction = iota
	Top
	Right
	Bottom
	None
)

// Edges lists the four box edges in index order.
var Edges = [4]Direction{Left, Top, Right, Bottom}

// String returns the lower-case edge name.
func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Top:
		return "top"
	case Right:
		return "right"
	case Bottom:
		return "bottom"
	}
	return "none"
}

// ParseDirection is the inverse of [Direction.String].
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "left":
		return Left, nil
	case "top":
		return Top, nil
	case "right":
		return Right, nil
	case "bottom":
		return Bottom, nil
	case "none", "":
		return None, nil
	}
	return None, fmt.Errorf("unknown direction %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (d Direction) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Direction) UnmarshalText(b []byte) error {
	v, err := ParseDirection(string(b))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// Near reports whether d is the leading edge of its axis (Left or Top).
func (d Direction) Near() bool { return d == Left || d == Top }

func (d Direction) axis() axis {
	if d == Top || d == Bottom {
		return yAxis
	}
	return xAxis
}

// axis selects the horizontal or vertical component of a two-axis value.
type axis int

const (
	xAxis axis = iota
	yAxis
)

var axes = [2]axis{xAxis, yAxis}

func (a axis) near() Direction {
	if a == yAxis {
		return Top
	}
	return Left
}

func (a axis) far() Direction {
	if a == yAxis {
		return Bottom
	}
	return Right
}

func (a axis) String() string {
	if a == yAxis {
		return "height"
	}
	return "width"
}

// Visibility controls whether a box takes part in sizing and placement.
type Visibility int

const (
	// Visible boxes are measured and placed.
	Visible Visibility = iota
	// Collapsed boxes contribute no size and no rectangle. Anchors through a
	// collapsed box are forwarded to whatever the collapsed box anchors to.
	Collapsed
)

func (v Visibility) String() string {
	if v == Collapsed {
		return "collapsed"
	}
	return "visible"
}
