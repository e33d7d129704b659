// Package pipeline runs scenes through the layout engine with caching.
//
// The CLI and the API server share one [Runner], so both entry points cache,
// log and report the same way.
//
// # Stages
//
//  1. Decode: a [scene.Scene] becomes a [layout.Container]
//  2. Layout: the container is measured and placed ([Runner.Layout])
//  3. Graph: the anchor graph is drawn as DOT or SVG ([Runner.Graph])
//
// [Runner.Check] stops after the configuration checks of the layout stage.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	defer runner.Close()
//
//	res, err := runner.Layout(ctx, sc, pipeline.Options{})
//	svg, err := runner.Graph(ctx, sc, pipeline.Options{GraphFormat: "svg"})
//
// Results are cached by the content hash of the scene, so renaming a scene
// does not invalidate its entries.
package pipeline

import (
	"github.com/charmbracelet/log"

	"github.com/matzehuels/anchorbox/pkg/cache"
	"github.com/matzehuels/anchorbox/pkg/errors"
	"github.com/matzehuels/anchorbox/pkg/scene"
)

// Output formats.
const (
	FormatJSON = "json"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
)

// DefaultGraphFormat is used when Options.GraphFormat is empty.
const DefaultGraphFormat = FormatSVG

// GraphFormats lists the formats [Runner.Graph] can produce.
var GraphFormats = []string{FormatDOT, FormatSVG}

// Options configures a pipeline run.
type Options struct {
	// GraphFormat selects the anchor graph output, "dot" or "svg".
	GraphFormat string `json:"format,omitempty"`

	// Detailed adds size specs and resolved rectangles to graph nodes.
	Detailed bool `json:"detailed,omitempty"`

	// Refresh bypasses cached results. Fresh results are still stored.
	Refresh bool `json:"refresh,omitempty"`

	// Logger receives per-box debug output from the layout engine.
	Logger *log.Logger `json:"-"`
}

// SetDefaults fills unset options.
func (o *Options) SetDefaults() {
	if o.GraphFormat == "" {
		o.GraphFormat = DefaultGraphFormat
	}
}

// Validate checks option values. Call SetDefaults first.
func (o Options) Validate() error {
	return ValidateGraphFormat(o.GraphFormat)
}

// ValidateGraphFormat checks that format is one of [GraphFormats].
func ValidateGraphFormat(format string) error {
	return errors.ValidateFormat(format, GraphFormats...)
}

// SceneHash returns the content hash used in cache keys. The scene name is
// not part of it.
func SceneHash(s *scene.Scene) (string, error) {
	c := *s
	c.Name = ""
	return cache.HashJSON(c)
}
