package layout

import "testing"

func TestChildConstraint(t *testing.T) {
	tests := []struct {
		name   string
		parent Constraint
		inset  int
		dim    Dimension
		extent int
		want   Constraint
	}{
		{"exact parent fixed", Exactly(200), 30, Fixed(50), 200, Exactly(50)},
		{"exact parent percent", Exactly(200), 30, Percent(0.5), 200, Exactly(100)},
		{"exact parent match", Exactly(200), 30, MatchParent(), 200, Exactly(170)},
		{"exact parent wrap", Exactly(200), 30, WrapContent(), 200, AtMost(170)},
		{"at most parent fixed", AtMost(200), 30, Fixed(50), 200, Exactly(50)},
		{"at most parent match", AtMost(200), 30, MatchParent(), 200, AtMost(170)},
		{"at most parent wrap", AtMost(200), 30, WrapContent(), 200, AtMost(170)},
		{"unspecified parent fixed", Unspecified(), 30, Fixed(50), 0, Exactly(50)},
		{"unspecified parent match", Unspecified(), 30, MatchParent(), 0, Unspecified()},
		{"unspecified parent wrap", Unspecified(), 30, WrapContent(), 0, Unspecified()},
		{"margins exceed parent", Exactly(20), 30, MatchParent(), 20, Exactly(0)},
		{"percent uses extent", AtMost(200), 0, Percent(0.5), 120, Exactly(60)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := childConstraint(tt.parent, tt.inset, tt.dim, tt.extent)
			if got != tt.want {
				t.Errorf("childConstraint() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResolveSize(t *testing.T) {
	tests := []struct {
		c       Constraint
		desired int
		want    int
	}{
		{Exactly(100), 40, 100},
		{Exactly(100), 400, 100},
		{AtMost(100), 40, 40},
		{AtMost(100), 400, 100},
		{Unspecified(), 400, 400},
	}
	for _, tt := range tests {
		if got := ResolveSize(tt.c, tt.desired); got != tt.want {
			t.Errorf("ResolveSize(%v, %d) = %d, want %d", tt.c, tt.desired, got, tt.want)
		}
	}
}

func TestConstraintString(t *testing.T) {
	tests := []struct {
		c    Constraint
		want string
	}{
		{Exactly(200), "exact:200"},
		{AtMost(80), "at_most:80"},
		{Unspecified(), "unspecified"},
		{Constraint{Size: 12}, "unspecified"},
	}
	for _, tt := range tests {
		if got := tt.c.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestContentMeasurer(t *testing.T) {
	content := Size{Width: 30, Height: 300}
	tests := []struct {
		name string
		data any
		want Size
	}{
		{"value", content, Size{Width: 30, Height: 100}},
		{"pointer", &content, Size{Width: 30, Height: 100}},
		{"nil pointer", (*Size)(nil), Size{Width: 0, Height: 100}},
		{"other", "text", Size{Width: 0, Height: 100}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ContentMeasurer{}.Measure(&Box{Data: tt.data}, AtMost(50), Exactly(100))
			if err != nil {
				t.Fatalf("Measure() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Measure() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRoundPx(t *testing.T) {
	tests := []struct {
		in   float64
		want int
	}{
		{49.5, 50},
		{49.49, 49},
		{-2.5, -2},
		{-2.6, -3},
		{0, 0},
	}
	for _, tt := range tests {
		if got := roundPx(tt.in); got != tt.want {
			t.Errorf("roundPx(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestParseDirection(t *testing.T) {
	for _, d := range []Direction{Left, Top, Right, Bottom, None} {
		got, err := ParseDirection(d.String())
		if err != nil || got != d {
			t.Errorf("ParseDirection(%q) = %v, %v; want %v", d.String(), got, err, d)
		}
	}
	if _, err := ParseDirection("middle"); err == nil {
		t.Error("ParseDirection(middle) expected error")
	}
}
