package observability

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// Stats counts events in memory. It implements every hook interface and is
// what the API server exposes on /v1/stats.
type Stats struct {
	layouts      atomic.Int64
	layoutErrors atomic.Int64
	measurements atomic.Int64
	layoutNanos  atomic.Int64
	renders      atomic.Int64
	renderErrors atomic.Int64
	cacheHits    atomic.Int64
	cacheMisses  atomic.Int64
	cacheBytes   atomic.Int64
	requests     atomic.Int64

	mu       sync.Mutex
	statuses map[int]int64
}

// NewStats returns zeroed counters.
func NewStats() *Stats {
	return &Stats{statuses: make(map[int]int64)}
}

// Snapshot is a point-in-time copy of [Stats].
type Snapshot struct {
	Layouts        int64         `json:"layouts"`
	LayoutErrors   int64         `json:"layout_errors"`
	Measurements   int64         `json:"measurements"`
	LayoutTime     time.Duration `json:"layout_time_ns"`
	Renders        int64         `json:"renders"`
	RenderErrors   int64         `json:"render_errors"`
	CacheHits      int64         `json:"cache_hits"`
	CacheMisses    int64         `json:"cache_misses"`
	CacheBytes     int64         `json:"cache_bytes_written"`
	Requests       int64         `json:"requests"`
	ResponseStatus map[int]int64 `json:"response_status"`
}

// Snapshot copies the current counters.
func (s *Stats) Snapshot() Snapshot {
	s.mu.Lock()
	statuses := make(map[int]int64, len(s.statuses))
	for k, v := range s.statuses {
		statuses[k] = v
	}
	s.mu.Unlock()

	return Snapshot{
		Layouts:        s.layouts.Load(),
		LayoutErrors:   s.layoutErrors.Load(),
		Measurements:   s.measurements.Load(),
		LayoutTime:     time.Duration(s.layoutNanos.Load()),
		Renders:        s.renders.Load(),
		RenderErrors:   s.renderErrors.Load(),
		CacheHits:      s.cacheHits.Load(),
		CacheMisses:    s.cacheMisses.Load(),
		CacheBytes:     s.cacheBytes.Load(),
		Requests:       s.requests.Load(),
		ResponseStatus: statuses,
	}
}

func (s *Stats) OnLayoutStart(context.Context, string, int) {}

func (s *Stats) OnLayoutComplete(_ context.Context, _ string, measurements int, d time.Duration, err error) {
	s.layouts.Add(1)
	s.layoutNanos.Add(int64(d))
	if err != nil {
		s.layoutErrors.Add(1)
		return
	}
	s.measurements.Add(int64(measurements))
}

func (s *Stats) OnRenderStart(context.Context, string) {}

func (s *Stats) OnRenderComplete(_ context.Context, _ string, _ time.Duration, err error) {
	s.renders.Add(1)
	if err != nil {
		s.renderErrors.Add(1)
	}
}

func (s *Stats) OnCacheHit(context.Context, string)  { s.cacheHits.Add(1) }
func (s *Stats) OnCacheMiss(context.Context, string) { s.cacheMisses.Add(1) }

func (s *Stats) OnCacheSet(_ context.Context, _ string, size int) {
	s.cacheBytes.Add(int64(size))
}

func (s *Stats) OnRequest(context.Context, string, string, string) { s.requests.Add(1) }

func (s *Stats) OnResponse(_ context.Context, _, _ string, status int, _ time.Duration) {
	s.mu.Lock()
	s.statuses[status]++
	s.mu.Unlock()
}

var (
	_ PipelineHooks = (*Stats)(nil)
	_ CacheHooks    = (*Stats)(nil)
	_ HTTPHooks     = (*Stats)(nil)
)
