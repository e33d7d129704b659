// Package layout implements an anchor-based box layout engine.
//
// # Overview
//
// A [Container] holds an ordered list of [Box] values. Each of a box's four
// edges is placed either by a static margin (pixels or a percentage of the
// container) or by an anchor to a sibling box: anchoring the left edge to
// "title" puts the box after title's right edge, anchoring the right edge
// puts it before title's left edge. Boxes are sized by their [Dimension]
// (fixed, percentage, match-parent or wrap-content) and by a host supplied
// [Measurer].
//
// # Basic Usage
//
//	res, err := layout.Layout(layout.Container{
//	    Width:  layout.Exactly(320),
//	    Height: layout.AtMost(480),
//	    Boxes: []layout.Box{
//	        {ID: "icon", Width: layout.Fixed(48), Height: layout.Fixed(48)},
//	        {ID: "label", Anchor: [4]string{layout.Left: "icon"}},
//	    },
//	}, measurer)
//
// [Layout] returns the container's final size and a [Placement] per box in
// declaration order. [Validate] runs only the configuration checks and
// [Graph] lists the anchor edges for diagnostics.
//
// # Layout Pass
//
// A pass runs in four steps on state it owns and discards on return:
//
//  1. Index: map ids to boxes and link anchors. Dangling anchors
//     (REFERENCE_NOT_FOUND), duplicate ids (DUPLICATE_ID) and invalid size
//     specs (INVALID_MEASUREMENT) fail here.
//  2. Cycle check: a depth-first search over anchors rejects any cycle,
//     self anchors included, with CYCLE_DETECTED. Nothing has been measured
//     at this point.
//  3. Resolve: each box is resolved in declaration order. Resolving a box
//     first resolves every box it anchors to, then measures it exactly once.
//  4. Wrap and place: axes constrained with AtMost or Unspecified shrink to
//     the furthest visible box, then every box gets its rectangle.
//
// Wrapping is a single pass. Boxes sized by percentage were sized against the
// container size known while they were resolved, and are not re-measured
// after the container shrinks.
//
// # Collapsed Boxes
//
// A [Collapsed] box is never measured and has no rectangle. Anchors that pass
// through it are forwarded: if the collapsed box anchors its left edge to A,
// a box anchored to the collapsed box's left edge lands where it would if
// anchored to A directly. Without an onward anchor the collapsed box reports
// the container's edge.
//
// # Concurrency
//
// A pass is synchronous and keeps no state between calls, so independent
// containers may be laid out from different goroutines. A [Measurer] shared
// between goroutines must be safe for concurrent use.
package layout
