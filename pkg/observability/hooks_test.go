package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	p := NoopPipelineHooks{}
	p.OnLevelsStart(ctx, 12)
	p.OnLevelsComplete(ctx, 3, time.Second, nil)
	p.OnLayoutStart(ctx, "layered", 12)
	p.OnLayoutComplete(ctx, "layered", time.Second, nil)
	p.OnRenderStart(ctx, []string{"svg"})
	p.OnRenderComplete(ctx, []string{"svg"}, time.Second, nil)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "levels")
	c.OnCacheMiss(ctx, "layout")
	c.OnCacheSet(ctx, "artifact", 1024)

	s := NoopServerHooks{}
	s.OnRequest(ctx, "POST", "/v1/layout")
	s.OnResponse(ctx, "POST", "/v1/layout", 200, time.Second)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()
	defer Reset()

	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Pipeline() should return NoopPipelineHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := Server().(NoopServerHooks); !ok {
		t.Error("Server() should return NoopServerHooks by default")
	}

	customPipeline := &testPipelineHooks{}
	SetPipelineHooks(customPipeline)
	if Pipeline() != customPipeline {
		t.Error("SetPipelineHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	customServer := &testServerHooks{}
	SetServerHooks(customServer)
	if Server() != customServer {
		t.Error("SetServerHooks should set custom hooks")
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

	if Pipeline() != custom {
		t.Error("SetPipelineHooks(nil) should be ignored")
	}
}

func TestPrometheusHooks(t *testing.T) {
	ctx := context.Background()
	reg := prometheus.NewRegistry()
	h := NewPrometheusHooks(reg)

	h.OnLevelsComplete(ctx, 4, 10*time.Millisecond, nil)
	h.OnLayoutComplete(ctx, "layered", 20*time.Millisecond, errors.New("boom"))
	h.OnRenderComplete(ctx, []string{"svg"}, 5*time.Millisecond, nil)

	h.OnCacheHit(ctx, "layout")
	h.OnCacheMiss(ctx, "layout")
	h.OnCacheMiss(ctx, "layout")
	h.OnCacheSet(ctx, "artifact", 2048)

	h.OnRequest(ctx, "POST", "/v1/render")
	if got := testutil.ToFloat64(h.HTTPInFlight); got != 1 {
		t.Errorf("in flight = %g, want 1", got)
	}
	h.OnResponse(ctx, "POST", "/v1/render", 422, time.Millisecond)

	tests := []struct {
		name string
		c    prometheus.Collector
		want float64
	}{
		{"LayoutErrors", h.StageErrors.WithLabelValues("layout"), 1},
		{"LevelErrors", h.StageErrors.WithLabelValues("levels"), 0},
		{"Hits", h.CacheEvents.WithLabelValues("layout", "hit"), 1},
		{"Misses", h.CacheEvents.WithLabelValues("layout", "miss"), 2},
		{"Sets", h.CacheEvents.WithLabelValues("artifact", "set"), 1},
		{"Requests", h.HTTPRequests.WithLabelValues("POST", "/v1/render", "422"), 1},
		{"InFlight", h.HTTPInFlight, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := testutil.ToFloat64(tt.c); got != tt.want {
				t.Errorf("got %g, want %g", got, tt.want)
			}
		})
	}

	if n := testutil.CollectAndCount(h.StageDuration); n != 3 {
		t.Errorf("stage duration series = %d, want 3", n)
	}
}

func TestPrometheusHooksDuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewPrometheusHooks(reg)

	defer func() {
		if recover() == nil {
			t.Error("registering twice on one registry should panic")
		}
	}()
	NewPrometheusHooks(reg)
}

type testPipelineHooks struct{ NoopPipelineHooks }
type testCacheHooks struct{ NoopCacheHooks }
type testServerHooks struct{ NoopServerHooks }
