// Package nodelink draws a container's anchor graph as a node-link diagram.
//
// # Usage
//
//	edges, err := layout.Graph(c)
//	dot := nodelink.ToDOT(c.Boxes, edges, nodelink.Options{Detailed: true})
//	svg, err := nodelink.RenderSVG(dot)
//
// Every box becomes a node and every anchor an arrow from the anchoring box
// to its target, labelled left, top, right or bottom. The diagram is meant
// for debugging anchor declarations, so cyclic graphs render too.
//
// # Dependencies
//
// [RenderSVG] uses [github.com/goccy/go-graphviz], which runs Graphviz
// in-process; no system installation is needed.
package nodelink
