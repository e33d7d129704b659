package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/anchorbox/pkg/layout"
)

// Options configures anchor graph rendering.
type Options struct {
	// Title is drawn above the graph when set.
	Title string

	// Detailed adds size specs to node labels and, when Placements is set,
	// the resolved rectangle of every visible box.
	Detailed bool

	// Placements is an optional layout result, index-aligned with the boxes.
	Placements []layout.Placement
}

// ToDOT converts a container's anchor graph to Graphviz DOT. Each box is a
// node; each anchor is an edge from the anchoring box to its target, labelled
// with the anchored edge. Collapsed boxes are dashed and grey, anonymous
// boxes italic.
func ToDOT(boxes []layout.Box, edges []layout.Edge, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  edge [fontsize=10, fontcolor=\"#555555\"];\n")
	if opts.Title != "" {
		fmt.Fprintf(&buf, "  label=%q;\n  labelloc=t;\n", opts.Title)
	}
	buf.WriteString("\n")

	for i, b := range boxes {
		name := layout.BoxName(b.ID, i)
		label := fmtLabel(name, b, placementAt(opts.Placements, i), opts.Detailed)
		fmt.Fprintf(&buf, "  %q [%s];\n", name, strings.Join(fmtAttrs(b, label), ", "))
	}

	buf.WriteString("\n")
	for _, e := range edges {
		fmt.Fprintf(&buf, "  %q -> %q [label=%q];\n", e.From, e.To, e.Direction.String())
	}

	buf.WriteString("}\n")
	return buf.String()
}

func placementAt(pls []layout.Placement, i int) *layout.Placement {
	if i < len(pls) {
		return &pls[i]
	}
	return nil
}

func fmtLabel(name string, b layout.Box, pl *layout.Placement, detailed bool) string {
	if !detailed {
		return name
	}
	parts := []string{
		name,
		fmt.Sprintf("w: %s  h: %s", fmtDimension(b.Width), fmtDimension(b.Height)),
	}
	if pl != nil && pl.Visible {
		parts = append(parts, pl.Rect.String())
	}
	return strings.Join(parts, "\n")
}

func fmtDimension(d layout.Dimension) string {
	switch d.Kind {
	case layout.SizeFixed:
		return strconv.Itoa(d.Px)
	case layout.SizePercent:
		return strconv.FormatFloat(d.Percent*100, 'g', 6, 64) + "%"
	}
	return d.Kind.String()
}

func fmtAttrs(b layout.Box, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if b.Visibility == layout.Collapsed {
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey", "fontcolor=\"#666666\"")
	}
	if b.ID == "" {
		attrs = append(attrs, "fontname=\"Helvetica-Oblique\"")
	}
	return attrs
}

// RenderSVG renders DOT source to SVG in-process.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's pt-sized root element with one whose
// width and height match the viewBox, so the SVG scales in browsers.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
