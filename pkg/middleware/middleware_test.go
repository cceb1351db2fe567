package middleware

import (
	"bytes"
	"context"
	stderrors "errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/vango-dev/vdomkit/internal/errors"
	"github.com/vango-dev/vdomkit/pkg/host/memdom"
	"github.com/vango-dev/vdomkit/pkg/render"
	"github.com/vango-dev/vdomkit/pkg/vdom"
)

func resetGlobalMetricsForTest() {
	globalMetricsMu.Lock()
	globalMetrics = nil
	globalMetricsMu.Unlock()
}

func list(last string) *vdom.Node {
	return vdom.El("ul", vdom.Attrs{"className": "list"},
		vdom.El("li", vdom.Attrs{"onClick": func(*vdom.Event) {}}, "first"),
		vdom.El("li", nil, last),
	)
}

// runCycles mounts a list and patches its last item once.
func runCycles(t *testing.T, mw ...render.Middleware) {
	t.Helper()
	doc := memdom.New()
	r := render.New(doc, render.WithMiddleware(mw...))
	if err := r.Render(list("a"), doc.Container("app")); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if err := r.Diff(list("b")); err != nil {
		t.Fatalf("Diff() error = %v", err)
	}
}

func TestPrometheusRecordsCycles(t *testing.T) {
	resetGlobalMetricsForTest()
	reg := prometheus.NewRegistry()

	runCycles(t, Prometheus(WithRegistry(reg)))

	m := GetMetrics()
	if m == nil {
		t.Fatal("expected GetMetrics to return collector after initialization")
	}
	if got := testutil.ToFloat64(m.rendersTotal.WithLabelValues("mount", "success")); got != 1 {
		t.Errorf("renders_total(mount)=%v, want 1", got)
	}
	if got := testutil.ToFloat64(m.rendersTotal.WithLabelValues("patch", "success")); got != 1 {
		t.Errorf("renders_total(patch)=%v, want 1", got)
	}
	if got := testutil.ToFloat64(m.regions.WithLabelValues("patch")); got != 1 {
		t.Errorf("regions_patched_total(patch)=%v, want 1", got)
	}
	if got := testutil.ToFloat64(m.hooksAttached); got != 2 {
		t.Errorf("hooks_attached_total=%v, want 2", got)
	}
	if got := testutil.ToFloat64(m.mergePoints); got != 1 {
		t.Errorf("merge_points_total=%v, want 1", got)
	}
	if got := testutil.ToFloat64(m.patchBytes); got == 0 {
		t.Error("patch_bytes_total should be positive")
	}

	if n := testutil.CollectAndCount(reg, "vdomkit_render_duration_seconds"); n != 2 {
		t.Errorf("render_duration_seconds series = %d, want 2", n)
	}
}

func TestPrometheusRecordsErrors(t *testing.T) {
	resetGlobalMetricsForTest()
	reg := prometheus.NewRegistry()
	mw := Prometheus(WithRegistry(reg), WithNamespace("test"))

	c := &render.Cycle{Kind: render.CyclePatch}
	err := mw.Handle(c, func() error { return errors.New("R001") })
	if err == nil {
		t.Fatal("error must pass through")
	}
	_ = mw.Handle(c, func() error { return stderrors.New("plain") })

	m := GetMetrics()
	if got := testutil.ToFloat64(m.renderErrors.WithLabelValues("patch", "R001")); got != 1 {
		t.Errorf("render_errors_total(R001)=%v, want 1", got)
	}
	if got := testutil.ToFloat64(m.renderErrors.WithLabelValues("patch", "internal")); got != 1 {
		t.Errorf("render_errors_total(internal)=%v, want 1", got)
	}
	if got := testutil.ToFloat64(m.rendersTotal.WithLabelValues("patch", "error")); got != 2 {
		t.Errorf("renders_total(error)=%v, want 2", got)
	}
	if n := testutil.CollectAndCount(reg, "test_renders_total"); n != 1 {
		t.Errorf("namespace not applied: %d series", n)
	}
}

func TestPrometheusKeepsFirstOptions(t *testing.T) {
	resetGlobalMetricsForTest()
	first := prometheus.NewRegistry()
	second := prometheus.NewRegistry()

	_ = Prometheus(WithRegistry(first), WithNamespace("first"))
	mw := Prometheus(WithRegistry(second), WithNamespace("second"))
	runCycles(t, mw)

	if n := testutil.CollectAndCount(first, "first_renders_total"); n != 2 {
		t.Errorf("first registry series = %d, want 2", n)
	}
	if n := testutil.CollectAndCount(second); n != 0 {
		t.Errorf("second registry series = %d, want 0", n)
	}
}

func TestStreamMetrics(t *testing.T) {
	resetGlobalMetricsForTest()
	RecordClientConnect() // no collector yet: ignored

	_ = Prometheus(WithRegistry(prometheus.NewRegistry()))
	RecordClientConnect()
	RecordClientConnect()
	RecordClientDisconnect()
	RecordBroadcast(3)

	m := GetMetrics()
	if got := testutil.ToFloat64(m.streamClients); got != 1 {
		t.Errorf("stream_clients=%v, want 1", got)
	}
	if got := testutil.ToFloat64(m.broadcasts); got != 3 {
		t.Errorf("patches_broadcast_total=%v, want 3", got)
	}
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	runCycles(t, Logger(logger))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d log lines, want 2:\n%s", len(lines), buf.String())
	}
	if !strings.Contains(lines[0], `"kind":"mount"`) || !strings.Contains(lines[0], `"regions":1`) {
		t.Errorf("mount line = %s", lines[0])
	}
	if !strings.Contains(lines[1], `"kind":"patch"`) || !strings.Contains(lines[1], `"merges":1`) {
		t.Errorf("patch line = %s", lines[1])
	}
}

func TestLoggerError(t *testing.T) {
	var buf bytes.Buffer
	mw := Logger(slog.New(slog.NewTextHandler(&buf, nil)))

	err := mw.Handle(&render.Cycle{Kind: render.CycleMount}, func() error { return errors.New("V003") })
	if err == nil {
		t.Fatal("error must pass through")
	}
	out := buf.String()
	if !strings.Contains(out, "level=ERROR") || !strings.Contains(out, "code=V003") {
		t.Errorf("log = %q", out)
	}
}

// recordingTracer records the spans it starts.
type recordingTracer struct {
	noop.Tracer
	spans []*recordingSpan
}

type recordingSpan struct {
	noop.Span
	name   string
	attrs  []attribute.KeyValue
	status codes.Code
	err    error
	ended  bool
}

func (s *recordingSpan) SetAttributes(kv ...attribute.KeyValue) { s.attrs = append(s.attrs, kv...) }
func (s *recordingSpan) SetStatus(code codes.Code, _ string)    { s.status = code }
func (s *recordingSpan) RecordError(err error, _ ...trace.EventOption) {
	s.err = err
}
func (s *recordingSpan) End(...trace.SpanEndOption) { s.ended = true }
func (s *recordingSpan) IsRecording() bool          { return true }

func (t *recordingTracer) Start(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	cfg := trace.NewSpanStartConfig(opts...)
	span := &recordingSpan{name: name, attrs: cfg.Attributes()}
	t.spans = append(t.spans, span)
	return trace.ContextWithSpan(ctx, span), span
}

type recordingProvider struct {
	noop.TracerProvider
	tracer *recordingTracer
}

func (p recordingProvider) Tracer(string, ...trace.TracerOption) trace.Tracer { return p.tracer }

func attr(span *recordingSpan, key string) (attribute.Value, bool) {
	for _, kv := range span.attrs {
		if string(kv.Key) == key {
			return kv.Value, true
		}
	}
	return attribute.Value{}, false
}

func TestOpenTelemetry(t *testing.T) {
	tracer := &recordingTracer{}
	var inside trace.Span
	inspect := render.MiddlewareFunc(func(c *render.Cycle, next func() error) error {
		inside = SpanFromCycle(c)
		return next()
	})

	runCycles(t, OpenTelemetry(WithTracerProvider(recordingProvider{tracer: tracer})), inspect)

	if len(tracer.spans) != 2 {
		t.Fatalf("started %d spans, want 2", len(tracer.spans))
	}
	mountSpan, patchSpan := tracer.spans[0], tracer.spans[1]
	if mountSpan.name != "vdomkit.render mount" || patchSpan.name != "vdomkit.render patch" {
		t.Errorf("span names = %q, %q", mountSpan.name, patchSpan.name)
	}
	if v, ok := attr(patchSpan, "vdomkit.merges"); !ok || v.AsInt64() != 1 {
		t.Errorf("vdomkit.merges = %v", v)
	}
	if v, ok := attr(mountSpan, "vdomkit.cycle"); !ok || v.AsString() != "mount" {
		t.Errorf("vdomkit.cycle = %v", v)
	}
	if !mountSpan.ended || mountSpan.status != codes.Ok {
		t.Errorf("mount span ended=%v status=%v", mountSpan.ended, mountSpan.status)
	}
	if inside != trace.Span(patchSpan) {
		t.Error("span should be reachable from inside the cycle")
	}
}

func TestOpenTelemetryRecordsError(t *testing.T) {
	tracer := &recordingTracer{}
	mw := OpenTelemetry(WithTracerProvider(recordingProvider{tracer: tracer}))

	boom := stderrors.New("boom")
	if err := mw.Handle(&render.Cycle{Kind: render.CycleMount}, func() error { return boom }); err != boom {
		t.Fatalf("error = %v", err)
	}
	span := tracer.spans[0]
	if span.status != codes.Error || span.err != boom {
		t.Errorf("status=%v err=%v", span.status, span.err)
	}
}

func TestOpenTelemetryFilter(t *testing.T) {
	tracer := &recordingTracer{}
	mw := OpenTelemetry(
		WithTracerProvider(recordingProvider{tracer: tracer}),
		WithCycleFilter(func(c *render.Cycle) bool { return c.Kind == render.CyclePatch }),
	)

	runCycles(t, mw)
	if len(tracer.spans) != 1 || tracer.spans[0].name != "vdomkit.render patch" {
		t.Errorf("spans = %d", len(tracer.spans))
	}
}

func TestSpanFromCycleUntraced(t *testing.T) {
	if span := SpanFromCycle(&render.Cycle{}); span != nil {
		t.Errorf("SpanFromCycle() = %v, want nil", span)
	}
}
