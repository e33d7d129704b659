package observability

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	p := NoopPipelineHooks{}
	p.OnLayoutStart(ctx, "card", 3)
	p.OnLayoutComplete(ctx, "card", 3, time.Millisecond, nil)
	p.OnRenderStart(ctx, "svg")
	p.OnRenderComplete(ctx, "svg", time.Millisecond, nil)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "result")
	c.OnCacheMiss(ctx, "graph")
	c.OnCacheSet(ctx, "result", 1024)

	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "POST", "/v1/layout", "req-1")
	h.OnResponse(ctx, "POST", "/v1/layout", 200, time.Millisecond)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()

	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Pipeline() should return NoopPipelineHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}

	stats := NewStats()
	SetPipelineHooks(stats)
	SetCacheHooks(stats)
	SetHTTPHooks(stats)
	if Pipeline() != PipelineHooks(stats) || Cache() != CacheHooks(stats) || HTTP() != HTTPHooks(stats) {
		t.Error("Set*Hooks should register stats")
	}

	Reset()
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Reset() should restore NoopPipelineHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()
	defer Reset()

	custom := &testPipelineHooks{}
	SetPipelineHooks(custom)
	SetPipelineHooks(nil)

	if Pipeline() != PipelineHooks(custom) {
		t.Error("SetPipelineHooks(nil) should be ignored")
	}
}

func TestStats(t *testing.T) {
	ctx := context.Background()
	s := NewStats()

	s.OnLayoutComplete(ctx, "a", 4, 2*time.Millisecond, nil)
	s.OnLayoutComplete(ctx, "b", 9, time.Millisecond, errors.New("cycle"))
	s.OnRenderComplete(ctx, "svg", time.Millisecond, nil)
	s.OnCacheHit(ctx, "result")
	s.OnCacheMiss(ctx, "result")
	s.OnCacheMiss(ctx, "graph")
	s.OnCacheSet(ctx, "result", 100)
	s.OnRequest(ctx, "POST", "/v1/layout", "r1")
	s.OnResponse(ctx, "POST", "/v1/layout", 200, time.Millisecond)
	s.OnResponse(ctx, "POST", "/v1/layout", 422, time.Millisecond)
	s.OnResponse(ctx, "POST", "/v1/layout", 200, time.Millisecond)

	got := s.Snapshot()
	if got.Layouts != 2 || got.LayoutErrors != 1 || got.Measurements != 4 {
		t.Errorf("layout counters = %+v", got)
	}
	if got.LayoutTime != 3*time.Millisecond {
		t.Errorf("LayoutTime = %v, want 3ms", got.LayoutTime)
	}
	if got.Renders != 1 || got.RenderErrors != 0 {
		t.Errorf("render counters = %+v", got)
	}
	if got.CacheHits != 1 || got.CacheMisses != 2 || got.CacheBytes != 100 {
		t.Errorf("cache counters = %+v", got)
	}
	if got.Requests != 1 || got.ResponseStatus[200] != 2 || got.ResponseStatus[422] != 1 {
		t.Errorf("http counters = %+v", got)
	}
}

func TestStatsConcurrent(t *testing.T) {
	ctx := context.Background()
	s := NewStats()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				s.OnCacheHit(ctx, "result")
				s.OnResponse(ctx, "GET", "/healthz", 200, 0)
			}
		}()
	}
	wg.Wait()

	got := s.Snapshot()
	if got.CacheHits != 1000 || got.ResponseStatus[200] != 1000 {
		t.Errorf("concurrent counters = %+v", got)
	}
}

type testPipelineHooks struct{ NoopPipelineHooks }
