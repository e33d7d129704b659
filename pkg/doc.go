// Package pkg holds the anchorbox libraries.
//
// # Overview
//
// Anchorbox sizes and positions rectangular boxes inside a container. A box
// may anchor each of its four edges to a sibling; the engine resolves boxes
// in dependency order, measures each visible one exactly once and can wrap
// the container around its content.
//
//  1. [layout] - the engine: boxes, constraints, measurement, cycle checks
//  2. [scene] - TOML and JSON scene files
//  3. [pipeline] - cached layout and graph runs shared by CLI and API
//  4. [cache] - result caches (file, Redis, MongoDB)
//  5. [render/nodelink] - anchor graphs as DOT and SVG
//  6. [observability] - hooks for metrics and tracing
//  7. [errors] - coded errors
//
// # Data Flow
//
//	scene file (TOML/JSON)
//	         ↓
//	    [scene] package (decode, parse value strings)
//	         ↓
//	    [layout] package (validate, resolve, wrap, place)
//	         ↓
//	    layout.Result (JSON) or anchor graph (DOT/SVG)
//
// # Quick Start
//
//	s, err := scene.ReadFile("card.toml")
//	if err != nil {
//	    return err
//	}
//	c, err := s.Container()
//	if err != nil {
//	    return err
//	}
//	res, err := layout.Layout(c, layout.ContentMeasurer{})
//	if err != nil {
//	    return err
//	}
//	for _, pl := range res.Boxes {
//	    fmt.Println(pl.Name(), pl.Rect)
//	}
//
// Applications with real content (text, images) implement [layout.Measurer]
// instead of relying on intrinsic sizes in the scene.
package pkg
