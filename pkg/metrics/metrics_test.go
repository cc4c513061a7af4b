package metrics

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/matzehuels/fattree/pkg/observability"
)

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()
	if r.GetPrometheusRegistry() == nil {
		t.Fatal("GetPrometheusRegistry() = nil")
	}
	if r.LayoutsTotal == nil || r.CacheHitsTotal == nil || r.SelectionsTotal == nil || r.HTTPRequestsTotal == nil {
		t.Fatal("metrics not initialized")
	}
}

func TestDefaultRegistry(t *testing.T) {
	if DefaultRegistry() != DefaultRegistry() {
		t.Error("DefaultRegistry() returned different instances")
	}
}

func TestPipelineHooks(t *testing.T) {
	r := NewRegistry()
	ctx := context.Background()

	r.OnLayoutComplete(ctx, "depth=3 width=8", 208, time.Millisecond, nil)
	r.OnLayoutComplete(ctx, "depth=0 width=8", 0, time.Millisecond, errors.New("bad"))
	r.OnRenderComplete(ctx, []string{"svg", "png"}, time.Millisecond, nil)

	if got := testutil.ToFloat64(r.LayoutsTotal.WithLabelValues("success")); got != 1 {
		t.Errorf("layouts success = %v, want 1", got)
	}
	if got := testutil.ToFloat64(r.LayoutsTotal.WithLabelValues("error")); got != 1 {
		t.Errorf("layouts error = %v, want 1", got)
	}
	if got := testutil.ToFloat64(r.RendersTotal.WithLabelValues("png", "success")); got != 1 {
		t.Errorf("renders png = %v, want 1", got)
	}
}

func TestCacheHooks(t *testing.T) {
	r := NewRegistry()
	ctx := context.Background()

	r.OnCacheHit(ctx, "layout")
	r.OnCacheHit(ctx, "layout")
	r.OnCacheMiss(ctx, "artifact")
	r.OnCacheSet(ctx, "artifact", 1024)

	if got := testutil.ToFloat64(r.CacheHitsTotal.WithLabelValues("layout")); got != 2 {
		t.Errorf("cache hits = %v, want 2", got)
	}
	if got := testutil.ToFloat64(r.CacheMissesTotal.WithLabelValues("artifact")); got != 1 {
		t.Errorf("cache misses = %v, want 1", got)
	}
}

func TestSelectionHooks(t *testing.T) {
	r := NewRegistry()
	ctx := context.Background()

	r.OnSelect(ctx, "one-selected")
	r.OnSelect(ctx, "two-selected")
	r.OnRoute(ctx, 4, true)
	r.OnRoute(ctx, 2, false)
	r.OnReset(ctx, "third-selection")

	if got := testutil.ToFloat64(r.SelectionsTotal.WithLabelValues("two-selected")); got != 1 {
		t.Errorf("selections = %v, want 1", got)
	}
	if got := testutil.ToFloat64(r.IncompleteRoutesTotal); got != 1 {
		t.Errorf("incomplete routes = %v, want 1", got)
	}
	if got := testutil.ToFloat64(r.ResetsTotal.WithLabelValues("third-selection")); got != 1 {
		t.Errorf("resets = %v, want 1", got)
	}
}

func TestHTTPHooks(t *testing.T) {
	r := NewRegistry()
	ctx := context.Background()

	r.OnRequest(ctx, "GET", "/healthz")
	if got := testutil.ToFloat64(r.HTTPRequestsInFlight); got != 1 {
		t.Errorf("in flight = %v, want 1", got)
	}
	r.OnResponse(ctx, "GET", "/healthz", 200, time.Millisecond)
	if got := testutil.ToFloat64(r.HTTPRequestsInFlight); got != 0 {
		t.Errorf("in flight = %v, want 0", got)
	}
	if got := testutil.ToFloat64(r.HTTPRequestsTotal.WithLabelValues("GET", "/healthz", "200")); got != 1 {
		t.Errorf("requests = %v, want 1", got)
	}
}

func TestInstall(t *testing.T) {
	t.Cleanup(observability.Reset)

	r := NewRegistry()
	r.Install()
	observability.Selection().OnReset(context.Background(), "explicit")

	if got := testutil.ToFloat64(r.ResetsTotal.WithLabelValues("explicit")); got != 1 {
		t.Errorf("resets via hooks = %v, want 1", got)
	}
}

func TestHandler(t *testing.T) {
	r := NewRegistry()
	r.OnCacheHit(context.Background(), "layout")

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `fattree_cache_hits_total{key_type="layout"} 1`) {
		t.Errorf("exposition missing cache hit counter:\n%s", rec.Body.String())
	}
}
