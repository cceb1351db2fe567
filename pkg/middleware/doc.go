// Package middleware provides render-cycle middleware for vdomkit renderers.
//
// This package includes:
//   - structured logging of every cycle with log/slog
//   - Prometheus metrics
//   - OpenTelemetry tracing
//
// Middleware is installed when the renderer is created:
//
//	r := render.New(doc,
//	    render.WithMiddleware(
//	        middleware.Logger(logger),
//	        middleware.Prometheus(middleware.WithNamespace("myapp")),
//	        middleware.OpenTelemetry(),
//	    ),
//	)
//
// # Prometheus Metrics
//
// The Prometheus middleware collects:
//   - vdomkit_renders_total: render cycles by kind and status
//   - vdomkit_render_duration_seconds: cycle duration histogram
//   - vdomkit_render_errors_total: failed cycles by error code
//   - vdomkit_regions_patched_total: host elements patched
//   - vdomkit_patch_bytes_total: markup bytes written
//   - vdomkit_hooks_attached_total: event handlers attached
//   - vdomkit_merge_points_total: merge points found by Diff
//
// The dev server adds vdomkit_stream_clients and
// vdomkit_patches_broadcast_total through RecordClientConnect,
// RecordClientDisconnect and RecordBroadcast.
//
// Expose the metrics with promhttp:
//
//	http.Handle("/metrics", promhttp.Handler())
//
// # OpenTelemetry
//
// The OpenTelemetry middleware starts a span per cycle and stores the span
// context in the cycle, so code running inside the cycle can reach it
// through Cycle.Context. The tracer comes from the global provider unless
// WithTracerProvider is given.
package middleware
