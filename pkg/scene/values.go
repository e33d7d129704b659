package scene

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/matzehuels/anchorbox/pkg/layout"
)

// ParseConstraint parses "exact:200", "at_most:200", "unspecified" or a bare
// pixel count, which means exact. The empty string is unspecified.
func ParseConstraint(s string) (layout.Constraint, error) {
	s = strings.TrimSpace(s)
	switch s {
	case "", "unspecified":
		return layout.Unspecified(), nil
	}

	mode, value, found := strings.Cut(s, ":")
	if !found {
		mode, value = "exact", s
	}
	px, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return layout.Constraint{}, fmt.Errorf("invalid constraint %q", s)
	}
	if px < 0 {
		return layout.Constraint{}, fmt.Errorf("negative constraint %q", s)
	}
	switch mode {
	case "exact", "exactly":
		return layout.Exactly(px), nil
	case "at_most", "atmost":
		return layout.AtMost(px), nil
	}
	return layout.Constraint{}, fmt.Errorf("unknown constraint mode %q", mode)
}

// ParseDimension parses "wrap", "match", "120" or "25%".
func ParseDimension(s string) (layout.Dimension, error) {
	s = strings.TrimSpace(s)
	switch s {
	case "", "wrap", "wrap_content":
		return layout.WrapContent(), nil
	case "match", "match_parent":
		return layout.MatchParent(), nil
	}
	if strings.HasSuffix(s, "%") {
		p, err := parsePercent(s)
		if err != nil {
			return layout.Dimension{}, err
		}
		return layout.Percent(p), nil
	}
	px, err := strconv.Atoi(s)
	if err != nil {
		return layout.Dimension{}, fmt.Errorf("invalid size %q", s)
	}
	return layout.Fixed(px), nil
}

// ParseMargin parses "10", "-4" or "5%".
func ParseMargin(s string) (layout.MarginSpec, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return layout.MarginSpec{}, nil
	}
	if strings.HasSuffix(s, "%") {
		p, err := parsePercent(s)
		if err != nil {
			return layout.MarginSpec{}, err
		}
		return layout.Pct(p), nil
	}
	px, err := strconv.Atoi(s)
	if err != nil {
		return layout.MarginSpec{}, fmt.Errorf("invalid margin %q", s)
	}
	return layout.Px(px), nil
}

// parseFraction parses a min/max clamp, which must be a percentage.
func parseFraction(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	if !strings.HasSuffix(s, "%") {
		return 0, fmt.Errorf("clamp %q must be a percentage", s)
	}
	return parsePercent(s)
}

func parsePercent(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid percentage %q", s)
	}
	return v / 100, nil
}

// FormatConstraint is the inverse of [ParseConstraint].
func FormatConstraint(c layout.Constraint) string { return c.String() }

// FormatDimension is the inverse of [ParseDimension]. Clamps are not included.
func FormatDimension(d layout.Dimension) string {
	switch d.Kind {
	case layout.SizeFixed:
		return strconv.Itoa(d.Px)
	case layout.SizePercent:
		return formatPercent(d.Percent)
	case layout.SizeMatchParent:
		return "match"
	}
	return "wrap"
}

// FormatMargin is the inverse of [ParseMargin].
func FormatMargin(m layout.MarginSpec) string {
	if m.Percent != 0 {
		return formatPercent(m.Percent)
	}
	if m.Px == 0 {
		return ""
	}
	return strconv.Itoa(m.Px)
}

func formatPercent(p float64) string {
	return strconv.FormatFloat(p*100, 'g', 10, 64) + "%"
}
