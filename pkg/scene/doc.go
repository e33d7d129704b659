// Package scene reads and writes layout containers as TOML or JSON files.
//
// # Format
//
// A scene names the container constraints and lists its boxes in
// declaration order:
//
//	name   = "card"
//	width  = "exact:320"
//	height = "at_most:480"
//
//	[[boxes]]
//	id     = "icon"
//	width  = "48"
//	height = "48"
//	margin = { left = "8", top = "8" }
//
//	[[boxes]]
//	id      = "label"
//	anchor  = { left = "icon" }
//	margin  = { left = "12", top = "8" }
//	content = { width = 120, height = 20 }
//
// The same document in JSON uses identical keys.
//
// # Values
//
// Constraints are "exact:N", "at_most:N" or "unspecified" (a bare "N" is
// exact). Sizes are "wrap" (default), "match", pixels ("120") or a
// percentage of the container ("25%"). Margins are pixels, possibly
// negative, or percentages. min_width, max_width, min_height and max_height
// are percentages. visibility is "visible" (default) or "collapsed".
//
// content is the intrinsic size used by [layout.ContentMeasurer]; boxes
// without it have empty content.
//
// Unknown keys are rejected. All decoding errors carry INVALID_SCENE, or
// INVALID_FORMAT for an unsupported format.
package scene
