package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/anchorbox/pkg/cache"
	"github.com/matzehuels/anchorbox/pkg/layout"
	"github.com/matzehuels/anchorbox/pkg/observability"
	"github.com/matzehuels/anchorbox/pkg/render/nodelink"
	"github.com/matzehuels/anchorbox/pkg/scene"
)

// Cache key types reported to [observability.CacheHooks].
const (
	keyTypeResult = "result"
	keyTypeGraph  = "graph"
)

// Runner executes pipeline stages with caching.
//
// A Runner holds no per-run state. Multiple goroutines may share one.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner. A nil cache disables caching, a nil keyer uses
// [cache.DefaultKeyer] and a nil logger uses log.Default().
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// LayoutWithCacheInfo lays out s and reports whether the result came from
// the cache. Boxes are measured with [layout.ContentMeasurer].
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, s *scene.Scene, opts Options) (*layout.Result, bool, error) {
	c, err := s.Container()
	if err != nil {
		return nil, false, err
	}
	hash, err := SceneHash(s)
	if err != nil {
		return nil, false, fmt.Errorf("hash scene: %w", err)
	}
	key := r.Keyer.ResultKey(hash)

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			var cached layout.Result
			if err := json.Unmarshal(data, &cached); err == nil {
				observability.Cache().OnCacheHit(ctx, keyTypeResult)
				return &cached, true, nil
			}
		}
	}
	observability.Cache().OnCacheMiss(ctx, keyTypeResult)

	logger := opts.Logger
	if logger == nil {
		logger = r.Logger
	}
	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, s.Name, len(c.Boxes))
	start := time.Now()
	res, err := layout.Layout(c, layout.ContentMeasurer{}, layout.WithLogger(logger))
	measurements := 0
	if res != nil {
		measurements = res.Measurements
	}
	hooks.OnLayoutComplete(ctx, s.Name, measurements, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	r.Logger.Debug("laid out scene",
		"scene", s.Name,
		"boxes", len(res.Boxes),
		"size", fmt.Sprintf("%dx%d", res.Width, res.Height),
		"duration", time.Since(start))

	if data, err := json.Marshal(res); err == nil {
		if err := r.Cache.Set(ctx, key, data, cache.TTLResult); err == nil {
			observability.Cache().OnCacheSet(ctx, keyTypeResult, len(data))
		} else {
			r.Logger.Warn("cache write failed", "key", key, "error", err)
		}
	}
	return res, false, nil
}

// Layout is [Runner.LayoutWithCacheInfo] without the cache hit flag.
func (r *Runner) Layout(ctx context.Context, s *scene.Scene, opts Options) (*layout.Result, error) {
	res, _, err := r.LayoutWithCacheInfo(ctx, s, opts)
	return res, err
}

// Check runs the configuration checks of a layout without measuring. It is
// never cached.
func (r *Runner) Check(_ context.Context, s *scene.Scene) error {
	c, err := s.Container()
	if err != nil {
		return err
	}
	return layout.Validate(c)
}

// GraphWithCacheInfo draws the anchor graph of s in opts.GraphFormat and
// reports whether the output came from the cache. Cyclic scenes are drawn
// too. With Detailed set, nodes carry resolved rectangles when the scene
// lays out.
func (r *Runner) GraphWithCacheInfo(ctx context.Context, s *scene.Scene, opts Options) ([]byte, bool, error) {
	opts.SetDefaults()
	if err := opts.Validate(); err != nil {
		return nil, false, err
	}
	c, err := s.Container()
	if err != nil {
		return nil, false, err
	}
	hash, err := SceneHash(s)
	if err != nil {
		return nil, false, fmt.Errorf("hash scene: %w", err)
	}
	variant := opts.GraphFormat
	if opts.Detailed {
		variant += ":detailed"
	}
	key := r.Keyer.GraphKey(hash, variant)

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, keyTypeGraph)
			return data, true, nil
		}
	}
	observability.Cache().OnCacheMiss(ctx, keyTypeGraph)

	edges, err := layout.Graph(c)
	if err != nil {
		return nil, false, err
	}
	ropts := nodelink.Options{Title: s.Name, Detailed: opts.Detailed}
	if opts.Detailed {
		if res, err := r.Layout(ctx, s, opts); err == nil {
			ropts.Placements = res.Boxes
		} else {
			r.Logger.Debug("graph without placements", "scene", s.Name, "error", err)
		}
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.GraphFormat)
	start := time.Now()
	data, err := render(c.Boxes, edges, ropts, opts.GraphFormat)
	hooks.OnRenderComplete(ctx, opts.GraphFormat, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	if err := r.Cache.Set(ctx, key, data, cache.TTLGraph); err == nil {
		observability.Cache().OnCacheSet(ctx, keyTypeGraph, len(data))
	} else {
		r.Logger.Warn("cache write failed", "key", key, "error", err)
	}
	return data, false, nil
}

// Graph is [Runner.GraphWithCacheInfo] without the cache hit flag.
func (r *Runner) Graph(ctx context.Context, s *scene.Scene, opts Options) ([]byte, error) {
	data, _, err := r.GraphWithCacheInfo(ctx, s, opts)
	return data, err
}

func render(boxes []layout.Box, edges []layout.Edge, opts nodelink.Options, format string) ([]byte, error) {
	dot := nodelink.ToDOT(boxes, edges, opts)
	if format == FormatDOT {
		return []byte(dot), nil
	}
	svg, err := nodelink.RenderSVG(dot)
	if err != nil {
		return nil, fmt.Errorf("render svg: %w", err)
	}
	return svg, nil
}

// Close releases the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
