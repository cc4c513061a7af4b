package metrics

import (
	"context"
	"strconv"
	"time"
)

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

// OnLayoutStart implements observability.PipelineHooks.
func (r *Registry) OnLayoutStart(context.Context, string) {}

// OnLayoutComplete implements observability.PipelineHooks.
func (r *Registry) OnLayoutComplete(_ context.Context, _ string, nodeCount int, duration time.Duration, err error) {
	r.LayoutsTotal.WithLabelValues(status(err)).Inc()
	if err == nil {
		r.LayoutDuration.Observe(duration.Seconds())
		r.LayoutNodes.Observe(float64(nodeCount))
	}
}

// OnRenderStart implements observability.PipelineHooks.
func (r *Registry) OnRenderStart(context.Context, []string) {}

// OnRenderComplete implements observability.PipelineHooks.
func (r *Registry) OnRenderComplete(_ context.Context, formats []string, duration time.Duration, err error) {
	for _, f := range formats {
		r.RendersTotal.WithLabelValues(f, status(err)).Inc()
		r.RenderDuration.WithLabelValues(f).Observe(duration.Seconds())
	}
}

// OnCacheHit implements observability.CacheHooks.
func (r *Registry) OnCacheHit(_ context.Context, keyType string) {
	r.CacheHitsTotal.WithLabelValues(keyType).Inc()
}

// OnCacheMiss implements observability.CacheHooks.
func (r *Registry) OnCacheMiss(_ context.Context, keyType string) {
	r.CacheMissesTotal.WithLabelValues(keyType).Inc()
}

// OnCacheSet implements observability.CacheHooks.
func (r *Registry) OnCacheSet(_ context.Context, keyType string, size int) {
	r.CacheSetBytes.WithLabelValues(keyType).Observe(float64(size))
}

// OnSelect implements observability.SelectionHooks.
func (r *Registry) OnSelect(_ context.Context, state string) {
	r.SelectionsTotal.WithLabelValues(state).Inc()
}

// OnRoute implements observability.SelectionHooks.
func (r *Registry) OnRoute(_ context.Context, hops int, complete bool) {
	r.RouteHops.Observe(float64(hops))
	if !complete {
		r.IncompleteRoutesTotal.Inc()
	}
}

// OnReset implements observability.SelectionHooks.
func (r *Registry) OnReset(_ context.Context, reason string) {
	r.ResetsTotal.WithLabelValues(reason).Inc()
}

// OnRequest implements observability.HTTPHooks.
func (r *Registry) OnRequest(context.Context, string, string) {
	r.HTTPRequestsInFlight.Inc()
}

// OnResponse implements observability.HTTPHooks.
func (r *Registry) OnResponse(_ context.Context, method, route string, statusCode int, duration time.Duration) {
	r.HTTPRequestsInFlight.Dec()
	r.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(statusCode)).Inc()
	r.HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}
